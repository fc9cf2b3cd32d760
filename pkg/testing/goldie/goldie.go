//go:build !windows

// Package goldie wraps the goldie golden file assertion library with the
// fixture directory layout used across this repository.
package goldie

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

func New(t *testing.T) *goldie.Goldie {
	return goldie.New(t, goldie.WithFixtureDir("fixtures"), goldie.WithNameSuffix(".golden"))
}

func Assert(t *testing.T, name string, actual []byte) {
	t.Helper()
	New(t).Assert(t, name, actual)
}

func Update(t *testing.T, name string, actual []byte) {
	t.Helper()
	if err := New(t).Update(t, name, actual); err != nil {
		t.Fatal(err)
	}
}
