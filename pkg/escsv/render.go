package escsv

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Render converts an AST node to escaped CSV bytes.
//
// The node should have the shape produced by ToAST or Parse. When hasHeaders
// is true the first record is written as a header line: names joined
// literally, without quoting. Other string literals are quoted, nil literals
// become empty fields and numbers are written bare.
//
// Example:
//
//	node, _ := escsv.Parse("a,b\n\"x\",1\n", true)
//	out, _ := escsv.Render(node, true)
//	// out: a, b\n"x",1\n
func Render(node ast.SchemaNode, hasHeaders bool) ([]byte, error) {
	if node == nil {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	r := renderer{buf: &buf, header: hasHeaders}
	if err := r.renderNode(node); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type renderer struct {
	buf    *bytes.Buffer
	header bool
}

// renderNode recursively renders an AST node to the buffer.
func (r *renderer) renderNode(node ast.SchemaNode) error {
	switch n := node.(type) {
	case *ast.ArrayDataNode:
		return r.renderArrayData(n)
	case *ast.LiteralNode:
		return r.renderLiteral(n)
	default:
		return fmt.Errorf("unsupported node type for rendering: %T", node)
	}
}

// renderArrayData handles both the file level (array of records) and the
// record level (array of fields).
func (r *renderer) renderArrayData(node *ast.ArrayDataNode) error {
	elements := node.Elements()
	if len(elements) == 0 {
		return nil
	}

	switch elements[0].(type) {
	case *ast.ArrayDataNode:
		for i, elem := range elements {
			record, ok := elem.(*ast.ArrayDataNode)
			if !ok {
				return fmt.Errorf("record %d: expected *ast.ArrayDataNode, got %T", i, elem)
			}
			if i == 0 && r.header {
				if err := r.renderHeader(record); err != nil {
					return err
				}
			} else if err := r.renderArrayData(record); err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
			r.buf.WriteByte('\n')
		}
		return nil

	case *ast.LiteralNode:
		for i, elem := range elements {
			if i > 0 {
				r.buf.WriteByte(commaChar)
			}
			if err := r.renderNode(elem); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unexpected element type in array: %T", elements[0])
	}
}

func (r *renderer) renderHeader(node *ast.ArrayDataNode) error {
	names, err := headerFromAST(node)
	if err != nil {
		return err
	}
	r.buf.WriteString(strings.Join(names, headerSeparator))
	return nil
}

// renderLiteral renders a LiteralNode as one field.
func (r *renderer) renderLiteral(node *ast.LiteralNode) error {
	v, err := valueFromLiteral(node.Value())
	if err != nil {
		return err
	}
	r.buf.WriteString(v.String())
	return nil
}
