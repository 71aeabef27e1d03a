package psa

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseProductLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "plain fields",
			line: "Product,123,desc",
			want: []string{"Product", "123", "desc"},
		},
		{
			name: "escaped comma stays in field",
			line: `Product,123,MS 6FT TBL\, WHT,4`,
			want: []string{"Product", "123", "MS 6FT TBL, WHT", "4"},
		},
		{
			name: "trailing comma yields empty field",
			line: "Product,123,",
			want: []string{"Product", "123", ""},
		},
		{
			name: "empty line",
			line: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseProductLine(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseProductLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestProductRows(t *testing.T) {
	data := []byte(strings.Join([]string{
		"header line 1",
		"header line 2",
		"header line 3",
		"Product,0001234567890,desc",
		"Planogram,MOD 1,x",
		"Product,0009876543210,other",
		"garbage",
	}, "\r\n"))

	rows := ProductRows(data)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0][0] != "Product" || rows[0][1] != "0001234567890" {
		t.Errorf("unexpected first row: %v", rows[0])
	}
}

func TestProductRowsSkipsPreamble(t *testing.T) {
	// A record inside the preamble must not be picked up.
	data := []byte("Product,should,be,skipped\nx\ny\nProduct,kept,1")
	rows := ProductRows(data)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0][1] != "kept" {
		t.Errorf("unexpected row: %v", rows[0])
	}
}

func TestSplitQuoteAware(t *testing.T) {
	got := splitQuoteAware(`Planogram,"MOD, ONE",48`)
	want := []string{"Planogram", "MOD, ONE", "48"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMergeLongText(t *testing.T) {
	long := strings.Repeat("x", 120)
	cont := strings.Repeat("y", 60)

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no merge needed",
			in:   []string{"a", "b", "c"},
			want: []string{"a", "b", "c"},
		},
		{
			name: "long field absorbs continuation",
			in:   []string{"a", long, cont, "end", "b"},
			want: []string{"a", long + " " + cont, "end", "b"},
		},
		{
			name: "brace opener absorbs brace continuation",
			in:   []string{"a", "{note part one", "<part two>", "end"},
			want: []string{"a", "{note part one <part two>", "end"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeLongText(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("mergeLongText(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPlanogramRows(t *testing.T) {
	data := []byte(strings.Join([]string{
		"Product,123",
		`Planogram,"MOD, ONE",F2,48`,
		"Fixture,0,SHELF",
		"Planogrammy,not a record",
	}, "\n"))

	rows := PlanogramRows(data)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0][0] != "Planogram" || rows[0][1] != "MOD, ONE" {
		t.Errorf("unexpected row: %v", rows[0])
	}
}

func TestFixtureRows(t *testing.T) {
	data := []byte("  Fixture,0,SHELF 1,x\nProduct,1\nFixture,4,ROD 1,y\n")

	rows := FixtureRows(data)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	// Token stripped
	if rows[0][0] != "0" || rows[0][1] != "SHELF 1" {
		t.Errorf("unexpected row: %v", rows[0])
	}
}

func TestDecodeWindows1252(t *testing.T) {
	// 0x96 is an en dash in Windows-1252, invalid as bare UTF-8.
	got := decodeWindows1252([]byte{'a', 0x96, 'b'})
	if got != "a–b" {
		t.Errorf("got %q", got)
	}
}
