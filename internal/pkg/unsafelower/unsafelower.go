// Package unsafelower is for testing purposes only when error handling is overhead and panics are ok
package unsafelower

import (
	"os"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/wundergraph/relay-go-tools/pkg/ir"
	"github.com/wundergraph/relay-go-tools/pkg/schema"
)

func ParseSchemaPair(serverSDL, clientSDL string) *schema.Pair {
	pair, err := schema.ParsePair(serverSDL, clientSDL)
	if err != nil {
		panic(err)
	}
	return pair
}

func ParseQueryDocumentString(input string) *ast.QueryDocument {
	doc, err := parser.ParseQuery(&ast.Source{Input: input})
	if err != nil {
		panic(err)
	}
	return doc
}

func LowerDocumentString(schemas *schema.Pair, input string) *ir.Document {
	doc, err := ir.Lower(ParseQueryDocumentString(input), schemas)
	if err != nil {
		panic(err)
	}
	return doc
}

func LowerDocumentFile(schemas *schema.Pair, filePath string) *ir.Document {
	fileBytes, err := os.ReadFile(filePath)
	if err != nil {
		panic(err)
	}
	return LowerDocumentString(schemas, string(fileBytes))
}
