package compose

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/scoutdeck/scoutdeck/internal/presentation"
)

// The table of contents is self-referential: its own length shifts the page
// numbers it prints. The resolution is a closed-form fixed point — line
// capacity comes once from page geometry, the summary page count follows
// from the entry count, and only then are content page numbers assigned.
// Rendering must never feed back into the estimate.

// summaryLabels returns one ToC line per content page, in page order.
// Untitled pages display as "Página N".
func summaryLabels(pages []presentation.Page) []string {
	labels := make([]string, len(pages))
	for i, p := range pages {
		if p.Title != "" {
			labels[i] = p.Title
		} else {
			labels[i] = fmt.Sprintf("Página %d", i+1)
		}
	}
	return labels
}

// requiredSummaryPages returns ceil(lineCount/linesPerPage), minimum 1.
func requiredSummaryPages(lineCount, linesPerPage int) int {
	if linesPerPage < 1 {
		linesPerPage = 1
	}
	pages := (lineCount + linesPerPage - 1) / linesPerPage
	if pages < 1 {
		pages = 1
	}
	return pages
}

// firstContentNumber returns the absolute page number of the first content
// page: everything before it is the optional cover plus the summary pages.
func firstContentNumber(coverEnabled bool, summaryPages int) int {
	n := summaryPages + 1
	if coverEnabled {
		n++
	}
	return n
}

// renderSummary renders the table of contents across as many pages as the
// estimate requires. Each entry is a label, a dot leader sized from the
// font-measured label width, and a right-aligned absolute page number.
func (c *Composer) renderSummary(pdf *gofpdf.Fpdf, tr func(string) string, doc presentation.Document) {
	labels := summaryLabels(doc.Pages)
	linesPerPage := c.profile.LinesPerSummaryPage()
	first := firstContentNumber(doc.Cover.Enabled, requiredSummaryPages(len(labels), linesPerPage))

	c.startSummaryPage(pdf, tr, false)
	y := c.profile.ToC.Top
	line := 0

	for i, label := range labels {
		if line == linesPerPage {
			c.startSummaryPage(pdf, tr, true)
			y = c.profile.ToC.Top
			line = 0
		}
		c.drawSummaryEntry(pdf, tr, label, strconv.Itoa(first+i), y)
		y += c.profile.ToC.LineHeight
		line++
	}
}

// startSummaryPage opens a new ToC page with its heading; continuation
// pages are marked "(cont.)".
func (c *Composer) startSummaryPage(pdf *gofpdf.Fpdf, tr func(string) string, continued bool) {
	pdf.AddPage()
	heading := "Índice"
	if continued {
		heading += " (cont.)"
	}
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(30, 30, 30)
	pdf.Text(c.profile.Margins.Side, c.profile.ToC.HeadingY, tr(heading))
}

// drawSummaryEntry draws one line: label, dot leader, page number. The dot
// count comes from the remaining width so leaders never overlap the label
// or the number.
func (c *Composer) drawSummaryEntry(pdf *gofpdf.Fpdf, tr func(string) string, label, num string, y float64) {
	const pad = 6.0

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(30, 30, 30)

	left := c.profile.Margins.Side
	right := left + c.profile.ContentWidth()
	numW := pdf.GetStringWidth(num)

	maxLabelW := c.profile.ContentWidth() - numW - 2*pad
	display := truncateToWidth(pdf, tr(label), maxLabelW)
	labelW := pdf.GetStringWidth(display)

	pdf.Text(left, y, display)
	pdf.Text(right-numW, y, num)

	dotW := pdf.GetStringWidth(".")
	avail := right - numW - pad - (left + labelW + pad)
	if dots := int(avail / dotW); dots > 0 {
		pdf.Text(left+labelW+pad, y, strings.Repeat(".", dots))
	}
}

// truncateToWidth trims the string until it fits maxW, appending an
// ellipsis when anything was cut.
func truncateToWidth(pdf *gofpdf.Fpdf, s string, maxW float64) string {
	if pdf.GetStringWidth(s) <= maxW {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if pdf.GetStringWidth(candidate) <= maxW {
			return candidate
		}
	}
	return ""
}
