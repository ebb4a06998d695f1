package escsv_test

import (
	"strings"
	"testing"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-escsv/pkg/escsv"
)

func TestRender_MatchesTableString(t *testing.T) {
	inputs := []struct {
		text   string
		header bool
	}{
		{"a,b\n\"x\",1\n", true},
		{"a,b,c\n,\"q\\\"uote\",3\n\"\",,\n", true},
		{"1,2\n3,4\n", false},
		{"only,header\n", true},
	}

	for _, in := range inputs {
		tbl, err := escsv.ParseTable(in.text, in.header)
		if err != nil {
			t.Fatalf("ParseTable(%q) error = %v", in.text, err)
		}
		out, err := escsv.Render(tbl.ToAST(), in.header)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if string(out) != tbl.String() {
			t.Errorf("Render(%q) = %q, want %q", in.text, out, tbl.String())
		}
	}
}

func TestRender_EmptyRows(t *testing.T) {
	tbl := escsv.NewTable()
	_ = tbl.Append(escsv.NewRow())
	_ = tbl.Append(escsv.NewRow(escsv.Int(1)))

	out, err := escsv.Render(tbl.ToAST(), false)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got, want := string(out), "\n1\n"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRender_Nil(t *testing.T) {
	out, err := escsv.Render(nil, false)
	if err != nil || len(out) != 0 {
		t.Errorf("Render(nil) = %q, %v", out, err)
	}
}

func TestRender_SingleRecord(t *testing.T) {
	pos := ast.ZeroPosition()
	record := ast.NewArrayDataNode([]ast.SchemaNode{
		ast.NewLiteralNode("a,b", pos),
		ast.NewLiteralNode(nil, pos),
		ast.NewLiteralNode(int64(3), pos),
	}, pos)

	out, err := escsv.Render(record, false)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got, want := string(out), `"a\,b",,3`; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRender_UnsupportedLiteral(t *testing.T) {
	pos := ast.ZeroPosition()
	node := ast.NewArrayDataNode([]ast.SchemaNode{
		ast.NewArrayDataNode([]ast.SchemaNode{ast.NewLiteralNode(true, pos)}, pos),
	}, pos)

	_, err := escsv.Render(node, false)
	if err == nil || !strings.Contains(err.Error(), "unsupported literal") {
		t.Errorf("Render() error = %v, want unsupported literal", err)
	}
}
