package cli

import (
	"strings"
	"testing"

	"github.com/jmylchreest/colourtype/internal/colour"
)

func TestTableAddRow(t *testing.T) {
	table := NewTable("Name", "Hex")

	table.AddRow("red", "#ff0000")
	table.AddRow("short")
	table.AddRow("long", "#000000", "extra")

	if len(table.rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(table.rows))
	}
	for i, row := range table.rows {
		if len(row) != 2 {
			t.Errorf("row %d has %d cells, want 2", i, len(row))
		}
	}
	if table.rows[1][1] != "" {
		t.Errorf("Expected empty padded cell, got %q", table.rows[1][1])
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable("#", "Hex")
	table.AddRow("1", "#ff0000")
	table.AddRow("10", "#00ff00")

	want := "#   Hex\n" +
		"--  -------\n" +
		"1   #ff0000\n" +
		"10  #00ff00\n"
	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableRenderIgnoresANSIWidth(t *testing.T) {
	table := NewTable("Swatch", "Hex")
	table.AddRow(colour.Swatch(colour.New(0xff0000), 4), "#ff0000")

	lines := strings.Split(strings.TrimRight(table.Render(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Render() produced %d lines, want 3", len(lines))
	}
	if got := visibleWidth(lines[2]); got != visibleWidth(lines[1]) {
		t.Errorf("row width %d differs from separator width %d", got, visibleWidth(lines[1]))
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if got := NewTable().Render(); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}
}
