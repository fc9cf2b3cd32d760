// Package irprinter renders IR documents back into a readable GraphQL style
// text form. The wrapper selection kinds print as the directives they desugar
// from, so printed output can be lowered again into an equivalent tree.
package irprinter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/wundergraph/relay-go-tools/pkg/ir"
)

// PrintDocument prints all definitions of the document, separated by blank
// lines.
func PrintDocument(doc *ir.Document) (string, error) {
	p := printer{}
	for i, def := range doc.Definitions {
		if i > 0 {
			p.out.WriteString("\n")
		}
		if err := p.printDefinition(def); err != nil {
			return "", err
		}
	}
	return p.out.String(), nil
}

// PrintDefinition prints a single definition.
func PrintDefinition(def *ir.Definition) (string, error) {
	p := printer{}
	if err := p.printDefinition(def); err != nil {
		return "", err
	}
	return p.out.String(), nil
}

type printer struct {
	out   strings.Builder
	depth int
}

func (p *printer) printDefinition(def *ir.Definition) error {
	switch def.Kind {
	case ir.DefinitionKindRoot:
		operation := string(def.Operation)
		if operation == "" {
			operation = string(ast.Query)
		}
		p.out.WriteString(operation)
		if def.Name != "" {
			p.out.WriteString(" ")
			p.out.WriteString(def.Name)
		}
	case ir.DefinitionKindFragment:
		fmt.Fprintf(&p.out, "fragment %s on %s", def.Name, def.TypeCondition)
	case ir.DefinitionKindSplitOperation:
		fmt.Fprintf(&p.out, "split %s on %s", def.Name, def.TypeName)
	default:
		return errors.Errorf("print: unknown definition kind %d", def.Kind)
	}
	return p.printBlock(def.Selections)
}

func (p *printer) printBlock(selections []ir.Selection) error {
	p.out.WriteString(" {\n")
	p.depth++
	for _, selection := range selections {
		p.indent()
		if err := p.printSelection(selection); err != nil {
			return err
		}
		p.out.WriteString("\n")
	}
	p.depth--
	p.indent()
	p.out.WriteString("}\n")
	return nil
}

func (p *printer) printSelection(selection ir.Selection) error {
	switch s := selection.(type) {
	case *ir.ScalarField:
		p.printFieldHead(s.Alias, s.Name, s.Arguments)
		return nil
	case *ir.LinkedField:
		p.printFieldHead(s.Alias, s.Name, s.Arguments)
		return p.printInlineBlock(s.Selections)
	case *ir.InlineFragment:
		fmt.Fprintf(&p.out, "... on %s", s.TypeCondition)
		return p.printInlineBlock(s.Selections)
	case *ir.FragmentSpread:
		p.out.WriteString("...")
		p.out.WriteString(s.FragmentName)
		return nil
	case *ir.Condition:
		name := "include"
		if !s.PassingValue {
			name = "skip"
		}
		if s.Variable != "" {
			fmt.Fprintf(&p.out, "... @%s(if: $%s)", name, s.Variable)
		} else {
			fmt.Fprintf(&p.out, "... @%s(if: %t)", name, s.Constant)
		}
		return p.printInlineBlock(s.Selections)
	case *ir.Defer:
		p.out.WriteString("... @defer")
		p.printDirectiveArgs(
			directiveArg{"label", quoted(s.Label), s.Label != ""},
			directiveArg{"if", "$" + s.If, s.If != ""},
		)
		return p.printInlineBlock(s.Selections)
	case *ir.Stream:
		p.out.WriteString("... @stream")
		p.printDirectiveArgs(
			directiveArg{"label", quoted(s.Label), s.Label != ""},
			directiveArg{"if", "$" + s.If, s.If != ""},
			directiveArg{"initialCount", strconv.Itoa(s.InitialCount), s.InitialCount > 0},
		)
		return p.printInlineBlock(s.Selections)
	case *ir.ModuleImport:
		p.out.WriteString("... @module")
		p.printDirectiveArgs(
			directiveArg{"name", quoted(s.Module), s.Module != ""},
			directiveArg{"key", quoted(s.Key), s.Key != ""},
		)
		return p.printInlineBlock(s.Selections)
	case *ir.ClientExtension:
		p.out.WriteString("... @clientExtension")
		return p.printInlineBlock(s.Selections)
	default:
		return errors.Errorf("print: unknown selection kind %s", selection.SelectionKind())
	}
}

// printInlineBlock prints a braced selection list continuing the current line.
func (p *printer) printInlineBlock(selections []ir.Selection) error {
	p.out.WriteString(" {\n")
	p.depth++
	for _, selection := range selections {
		p.indent()
		if err := p.printSelection(selection); err != nil {
			return err
		}
		p.out.WriteString("\n")
	}
	p.depth--
	p.indent()
	p.out.WriteString("}")
	return nil
}

func (p *printer) printFieldHead(alias, name string, arguments ast.ArgumentList) {
	if alias != "" && alias != name {
		p.out.WriteString(alias)
		p.out.WriteString(": ")
	}
	p.out.WriteString(name)
	if len(arguments) == 0 {
		return
	}
	p.out.WriteString("(")
	for i, argument := range arguments {
		if i > 0 {
			p.out.WriteString(", ")
		}
		p.out.WriteString(argument.Name)
		p.out.WriteString(": ")
		p.out.WriteString(argument.Value.String())
	}
	p.out.WriteString(")")
}

type directiveArg struct {
	name  string
	value string
	set   bool
}

func (p *printer) printDirectiveArgs(args ...directiveArg) {
	first := true
	for _, arg := range args {
		if !arg.set {
			continue
		}
		if first {
			p.out.WriteString("(")
			first = false
		} else {
			p.out.WriteString(", ")
		}
		p.out.WriteString(arg.name)
		p.out.WriteString(": ")
		p.out.WriteString(arg.value)
	}
	if !first {
		p.out.WriteString(")")
	}
}

func (p *printer) indent() {
	for i := 0; i < p.depth; i++ {
		p.out.WriteString("  ")
	}
}

func quoted(s string) string {
	return strconv.Quote(s)
}
