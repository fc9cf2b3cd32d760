//go:build windows

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
	t.Fatalf("golden files should not be updated on windows")
}
