package escsv_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/shapestone/shape-escsv/pkg/escsv"
)

type person struct {
	Name    string    `escsv:"name"`
	Age     int       `escsv:"age,omitempty"`
	Score   float64   `escsv:"score"`
	Active  bool      `escsv:"active"`
	Nick    *string   `escsv:"nick"`
	Joined  time.Time `escsv:"joined"`
	Secret  string    `escsv:"-"`
	private int
}

func strPtr(s string) *string { return &s }

func TestMarshal(t *testing.T) {
	joined := time.Date(2024, 3, 1, 11, 30, 0, 0, time.UTC)
	people := []person{
		{Name: "Ann, Jr", Age: 31, Score: 1.5, Active: true, Nick: strPtr("a"), Joined: joined, Secret: "x"},
		{Name: "Bob", Score: 2, Joined: joined},
	}

	tbl, err := escsv.Marshal(people)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := "name, age, score, active, nick, joined\n" +
		"\"Ann\\, Jr\",31,1.500000,1,\"a\",1709292600\n" +
		"\"Bob\",,2.000000,0,,1709292600\n"
	if diff := cmp.Diff(want, tbl.String()); diff != "" {
		t.Errorf("Marshal() mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshal_Pointers(t *testing.T) {
	tbl, err := escsv.Marshal([]*person{{Name: "a"}, nil, {Name: "b"}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if tbl.RowCount() != 2 {
		t.Errorf("RowCount() = %d, want 2 (nil elements skipped)", tbl.RowCount())
	}
}

func TestMarshal_EmptySlice(t *testing.T) {
	tbl, err := escsv.Marshal([]person{})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got := tbl.String(); got != "name, age, score, active, nick, joined\n" {
		t.Errorf("String() = %q", got)
	}
}

func TestMarshal_Errors(t *testing.T) {
	type withMap struct {
		M map[string]int
	}
	type noFields struct {
		hidden int
	}

	tests := []struct {
		name string
		in   interface{}
	}{
		{"nil", nil},
		{"not a slice", person{}},
		{"slice of ints", []int{1}},
		{"unsupported field", []withMap{{M: map[string]int{}}}},
		{"overflowing uint", []struct{ U uint64 }{{U: 1 << 63}}},
		{"no exported fields", []noFields{{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := escsv.Marshal(tt.in); err == nil {
				t.Error("Marshal() expected error")
			}
		})
	}
}

func TestUnmarshal(t *testing.T) {
	text := "NAME,age,score,active,nick,joined,extra\n" +
		"\"Ann\\, Jr\",31,1.5,true,\"a\",1709292600,\"ignored\"\n" +
		"\n" +
		"\"Bob\",,2,0,,,\n"
	tbl, err := escsv.ParseTable(text, true)
	if err != nil {
		t.Fatalf("ParseTable() error = %v", err)
	}

	var got []person
	if err := escsv.Unmarshal(tbl, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	want := []person{
		{Name: "Ann, Jr", Age: 31, Score: 1.5, Active: true, Nick: strPtr("a"),
			Joined: time.Date(2024, 3, 1, 11, 30, 0, 0, time.UTC)},
		{Name: "Bob", Score: 2},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(person{})); diff != "" {
		t.Errorf("Unmarshal() mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshal_RoundTrip(t *testing.T) {
	in := []*person{
		{Name: `q"uote`, Age: 7, Score: 0.25, Nick: strPtr("")},
		{Name: "", Active: true},
	}

	tbl, err := escsv.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	parsed, err := escsv.ParseTable(tbl.String(), true)
	if err != nil {
		t.Fatalf("ParseTable() error = %v", err)
	}

	var out []*person
	if err := escsv.Unmarshal(parsed, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	// Zero times marshal to a large negative epoch and come back in UTC.
	for _, p := range in {
		p.Joined = p.Joined.UTC()
	}
	for _, p := range out {
		p.Joined = p.Joined.UTC()
	}
	if diff := cmp.Diff(in, out, cmp.AllowUnexported(person{})); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshal_Errors(t *testing.T) {
	headed, _ := escsv.ParseTable("age\n\"abc\"\n", true)
	small, _ := escsv.ParseTable("n\n300\n", true)
	flag, _ := escsv.ParseTable("active\n\"maybe\"\n", true)
	bare, _ := escsv.ParseTable("1\n", false)

	var people []person
	var tiny []struct {
		N int8 `escsv:"n"`
	}
	var unsigned []struct {
		Age uint `escsv:"age"`
	}

	tests := []struct {
		name    string
		tbl     *escsv.Table
		dst     interface{}
		wantErr error
	}{
		{"not numeric", headed, &people, escsv.ErrNumericParse},
		{"overflow", small, &tiny, escsv.ErrNumericParse},
		{"bad bool", flag, &people, escsv.ErrNumericParse},
		{"no headers", bare, &people, escsv.ErrNoHeaders},
		{"unsigned from text", headed, &unsigned, escsv.ErrNumericParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := escsv.Unmarshal(tt.tbl, tt.dst); !errors.Is(err, tt.wantErr) {
				t.Errorf("Unmarshal() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("bad destination", func(t *testing.T) {
		for _, dst := range []interface{}{nil, people, &[]int{}, new(int)} {
			if err := escsv.Unmarshal(headed, dst); err == nil {
				t.Errorf("Unmarshal(%T) expected error", dst)
			}
		}
	})
}
