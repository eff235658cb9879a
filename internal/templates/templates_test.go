package templates

import (
	"strings"
	"testing"
)

func TestRenderBoard(t *testing.T) {
	var grid [8][8]string
	for i := range grid {
		for j := range grid[i] {
			grid[i][j] = "."
		}
	}
	grid[0][4] = "k"
	grid[7][4] = "K"

	html, err := RenderBoard(grid, map[string]string{"k": "♚", "K": "♔", ".": " "})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "<table") {
		t.Fatalf("expected a table, got:\n%s", html)
	}
	if !strings.Contains(html, "♚") || !strings.Contains(html, "♔") {
		t.Fatalf("expected both kings in output:\n%s", html)
	}
	if strings.Count(html, "<td") != 64 {
		t.Fatalf("expected 64 squares, got %d", strings.Count(html, "<td"))
	}
}

func TestRenderBoardUnknownLetterPassesThrough(t *testing.T) {
	var grid [8][8]string
	for i := range grid {
		for j := range grid[i] {
			grid[i][j] = "."
		}
	}
	grid[3][3] = "Z"

	html, err := RenderBoard(grid, map[string]string{".": " "})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "Z") {
		t.Fatalf("expected unmapped letter to pass through:\n%s", html)
	}
}
