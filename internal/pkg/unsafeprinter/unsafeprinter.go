package unsafeprinter

import (
	"github.com/wundergraph/relay-go-tools/internal/pkg/unsafelower"
	"github.com/wundergraph/relay-go-tools/pkg/ir"
	"github.com/wundergraph/relay-go-tools/pkg/irprinter"
	"github.com/wundergraph/relay-go-tools/pkg/schema"
)

func PrintDocument(doc *ir.Document) string {
	str, err := irprinter.PrintDocument(doc)
	if err != nil {
		panic(err)
	}
	return str
}

func PrintDefinition(def *ir.Definition) string {
	str, err := irprinter.PrintDefinition(def)
	if err != nil {
		panic(err)
	}
	return str
}

// Prettify lowers a document against the schema pair and prints it, yielding
// the canonical text form tests compare against.
func Prettify(schemas *schema.Pair, document string) string {
	return PrintDocument(unsafelower.LowerDocumentString(schemas, document))
}
