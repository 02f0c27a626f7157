package tablecodec

import (
	"bytes"
	"strings"
	"testing"

	"fittingcore/pkg/domain"
)

func TestDecodeDropsPlaceholderColumns(t *testing.T) {
	doc := "dn;3,5;4;\n45;3,44;3,9;\n57;4,62;5,23;\n"
	table, err := Decode(strings.NewReader(doc), "ГОСТ 8732-78")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := table.Columns(); len(got) != 3 {
		t.Fatalf("columns: got %v, want dn and two thickness labels", got)
	}
	if table.Len() != 2 {
		t.Fatalf("rows: got %d, want 2", table.Len())
	}
	if v, ok := table.Value(1, 1).Number(); !ok || v != 4.62 {
		t.Fatalf("cell (1,1): got %v/%v, want 4.62", v, ok)
	}
}

func TestDecodeDropsUnnamedColumns(t *testing.T) {
	doc := "dn;Execution;mass;Unnamed: 3\n57;А11/АС11;1,37;x\n"
	table, err := Decode(strings.NewReader(doc), "КП ОСТ 36-146-88")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{"dn", "Execution", "mass"}
	got := table.Columns()
	if len(got) != len(want) {
		t.Fatalf("columns: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("column %d: got %q, want %q", i, got[i], want[i])
		}
	}
	if text := table.Value(0, 1).Text(); text != "А11/АС11" {
		t.Fatalf("execution cell: got %q", text)
	}
}

func TestDecodeColumnKinds(t *testing.T) {
	doc := "D;T;Execution\n57;3,5;А11\n76;4;АС11\n"
	table, err := Decode(strings.NewReader(doc), "test")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v, ok := table.Value(0, 1).Number(); !ok || v != 3.5 {
		t.Fatalf("decimal comma cell: got %v/%v, want 3.5", v, ok)
	}
	if table.Value(0, 2).Kind() != domain.KindText {
		t.Fatalf("execution column must decode as text")
	}
}

func TestDecodeMixedColumnFallsBackToText(t *testing.T) {
	doc := "D;code\n57;12\n76;А11\n"
	table, err := Decode(strings.NewReader(doc), "test")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if table.Value(0, 1).Kind() != domain.KindText {
		t.Fatalf("one non-numeric cell must make the whole column text")
	}
	if got := table.Value(0, 1).Text(); got != "12" {
		t.Fatalf("text cell: got %q, want \"12\"", got)
	}
}

func TestDecodePadsShortRows(t *testing.T) {
	doc := "dn;4;4,5\n45;3,9\n"
	table, err := Decode(strings.NewReader(doc), "test")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !table.Value(0, 2).IsNull() {
		t.Fatalf("missing trailing cell must decode as null")
	}
}

func TestDecodeEmptyDocument(t *testing.T) {
	if _, err := Decode(strings.NewReader(""), "test"); err == nil {
		t.Fatalf("expected error for empty document")
	}
	if _, err := Decode(strings.NewReader(";;\n"), "test"); err == nil {
		t.Fatalf("expected error for header without named columns")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	doc := "dn;Execution;mass;\n57;А11/АС11;1,37;\n76;;1,62;\n"
	table, err := Decode(strings.NewReader(doc), "КП ОСТ 36-146-88")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, table); err != nil {
		t.Fatalf("encode: %v", err)
	}
	again, err := Decode(&buf, table.Standard())
	if err != nil {
		t.Fatalf("decode round trip: %v", err)
	}
	if again.Len() != table.Len() || len(again.Columns()) != len(table.Columns()) {
		t.Fatalf("round trip changed shape: %dx%d", again.Len(), len(again.Columns()))
	}
	if v, ok := again.Value(0, 2).Number(); !ok || v != 1.37 {
		t.Fatalf("mass cell: got %v/%v, want 1.37", v, ok)
	}
	if !again.Value(1, 1).IsNull() {
		t.Fatalf("empty execution cell must stay null")
	}
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"3,5", 3.5, true},
		{"4", 4, true},
		{" 46,2 ", 46.2, true},
		{"4.5", 4.5, true},
		{"", 0, false},
		{"А11", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseNumber(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("parse %q: got %v/%v, want %v/%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
