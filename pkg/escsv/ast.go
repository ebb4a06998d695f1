package escsv

import (
	"fmt"
	"strconv"

	"github.com/shapestone/shape-core/pkg/ast"
)

// ============================================================================
// AST Conversion (for integration with AST-based APIs)
// ============================================================================

// ToAST converts the Table to an AST ArrayDataNode.
//
// The result is an array of records. If the table has headers they form the
// first record, as string literals. Data cells become literals holding nil
// for null, string for string values, and int64 or float64 for numeric
// values (int64 whenever the text is a plain integer).
func (t *Table) ToAST() *ast.ArrayDataNode {
	records := make([]ast.SchemaNode, 0, len(t.rows)+1)

	if len(t.colNames) > 0 {
		headerNodes := make([]ast.SchemaNode, len(t.colNames))
		for i, name := range t.colNames {
			headerNodes[i] = ast.NewLiteralNode(name, ast.ZeroPosition())
		}
		records = append(records, ast.NewArrayDataNode(headerNodes, ast.ZeroPosition()))
	}

	for _, row := range t.rows {
		fieldNodes := make([]ast.SchemaNode, len(row.values))
		for i, v := range row.values {
			fieldNodes[i] = ast.NewLiteralNode(literalFromValue(v), ast.ZeroPosition())
		}
		records = append(records, ast.NewArrayDataNode(fieldNodes, ast.ZeroPosition()))
	}

	return ast.NewArrayDataNode(records, ast.ZeroPosition())
}

// FromAST creates a Table from an AST ArrayDataNode shaped like the output
// of ToAST. When hasHeaders is true the first record supplies column names.
// Table invariants are enforced as in ParseTable.
func FromAST(node ast.SchemaNode, hasHeaders bool) (*Table, error) {
	arrayNode, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("expected *ast.ArrayDataNode, got %T", node)
	}

	t := NewTable()
	for i, elem := range arrayNode.Elements() {
		recordNode, ok := elem.(*ast.ArrayDataNode)
		if !ok {
			return nil, fmt.Errorf("record %d: expected *ast.ArrayDataNode, got %T", i, elem)
		}

		if i == 0 && hasHeaders {
			names, err := headerFromAST(recordNode)
			if err != nil {
				return nil, err
			}
			if err := t.setHeaders(names); err != nil {
				return nil, err
			}
			continue
		}

		row, err := rowFromAST(recordNode)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if err := t.Append(row); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	return t, nil
}

func headerFromAST(node *ast.ArrayDataNode) ([]string, error) {
	names := make([]string, 0, node.Len())
	for _, fieldNode := range node.Elements() {
		literalNode, ok := fieldNode.(*ast.LiteralNode)
		if !ok {
			return nil, fmt.Errorf("header: expected *ast.LiteralNode, got %T", fieldNode)
		}
		name, ok := literalNode.Value().(string)
		if !ok {
			return nil, fmt.Errorf("header: expected string column name, got %T", literalNode.Value())
		}
		names = append(names, name)
	}
	return names, nil
}

func rowFromAST(node *ast.ArrayDataNode) (*Row, error) {
	row := &Row{values: make([]Value, 0, node.Len())}
	for _, fieldNode := range node.Elements() {
		literalNode, ok := fieldNode.(*ast.LiteralNode)
		if !ok {
			return nil, fmt.Errorf("expected field to be *ast.LiteralNode, got %T", fieldNode)
		}
		v, err := valueFromLiteral(literalNode.Value())
		if err != nil {
			return nil, err
		}
		row.values = append(row.values, v)
	}
	return row, nil
}

func literalFromValue(v Value) interface{} {
	switch v.kind {
	case KindString:
		return v.text
	case KindNumber:
		if i, err := strconv.ParseInt(v.text, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(v.text, 64); err == nil {
			return f
		}
		return v.text
	default:
		return nil
	}
}

func valueFromLiteral(lit interface{}) (Value, error) {
	switch x := lit.(type) {
	case nil:
		return Null(), nil
	case string:
		return Text(x), nil
	case int64:
		return Int64(x), nil
	case int:
		return Int(x), nil
	case float64:
		return Float(x), nil
	default:
		return Value{}, fmt.Errorf("unsupported literal type %T", lit)
	}
}
