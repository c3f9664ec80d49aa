package compose

import (
	"fmt"
	"testing"

	"github.com/scoutdeck/scoutdeck/internal/presentation"
)

func TestSummaryLabels(t *testing.T) {
	pages := []presentation.Page{
		{Title: "Estudio principal"},
		{},
		{Title: "Azotea"},
		{},
	}
	got := summaryLabels(pages)
	want := []string{"Estudio principal", "Página 2", "Azotea", "Página 4"}
	if len(got) != len(want) {
		t.Fatalf("expected %d labels, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("label %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRequiredSummaryPages(t *testing.T) {
	tests := []struct {
		lines, perPage, want int
	}{
		{0, 30, 1},  // an enabled summary always occupies a page
		{1, 30, 1},
		{30, 30, 1},
		{31, 30, 2},
		{60, 30, 2},
		{61, 30, 3},
		{5, 0, 5},   // degenerate capacity clamps to one line per page
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("%d lines at %d per page", tc.lines, tc.perPage), func(t *testing.T) {
			if got := requiredSummaryPages(tc.lines, tc.perPage); got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestFirstContentNumber(t *testing.T) {
	tests := []struct {
		name         string
		cover        bool
		summaryPages int
		want         int
	}{
		{"summary only", false, 1, 2},
		{"cover and summary", true, 1, 3},
		{"multi-page summary", false, 3, 4},
		{"cover and multi-page summary", true, 2, 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := firstContentNumber(tc.cover, tc.summaryPages); got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

// A summary long enough to spill onto extra pages must shift every printed
// number by exactly the number of pages it occupies, keeping the sequence
// contiguous.
func TestSummaryNumberingStaysContiguous(t *testing.T) {
	linesPerPage := DefaultProfile().LinesPerSummaryPage()
	if linesPerPage < 2 {
		t.Fatalf("profile yields %d lines per summary page, cannot exercise pagination", linesPerPage)
	}

	for _, pageCount := range []int{1, linesPerPage, linesPerPage + 1, 3*linesPerPage + 5} {
		t.Run(fmt.Sprintf("%d content pages", pageCount), func(t *testing.T) {
			summaryPages := requiredSummaryPages(pageCount, linesPerPage)
			first := firstContentNumber(true, summaryPages)

			// First content page sits right after cover + summary block.
			if want := 1 + summaryPages + 1; first != want {
				t.Errorf("first content number: got %d, want %d", first, want)
			}
			// Entry i prints first+i, so consecutive entries differ by 1.
			last := first + pageCount - 1
			if total := last; total != 1+summaryPages+pageCount {
				t.Errorf("last printed number %d does not match document length %d", total, 1+summaryPages+pageCount)
			}
		})
	}
}
