// Package compose turns a presentation document into paginated PDF bytes:
// optional cover, optional self-paginating table of contents and one content
// page per designed page, with images embedded from their source URLs.
package compose

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed layout.yaml
var layoutYAML []byte

// Profile holds the print geometry, loaded once from the embedded profile.
// All lengths are PostScript points (1/72 inch) on an A4 portrait page.
type Profile struct {
	Page struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"page"`
	Margins struct {
		Side   float64 `yaml:"side"`
		Bottom float64 `yaml:"bottom"`
	} `yaml:"margins"`
	Content struct {
		TopWithTitle    float64 `yaml:"top_with_title"`
		TopWithoutTitle float64 `yaml:"top_without_title"`
		Gutter          float64 `yaml:"gutter"`
	} `yaml:"content"`
	Cover struct {
		TitleY          float64 `yaml:"title_y"`
		SubtitleGap     float64 `yaml:"subtitle_gap"`
		ImageSideMargin float64 `yaml:"image_side_margin"`
		FooterYOffset   float64 `yaml:"footer_y_offset"`
	} `yaml:"cover"`
	ToC struct {
		Top        float64 `yaml:"top"`
		HeadingY   float64 `yaml:"heading_y"`
		LineHeight float64 `yaml:"line_height"`
	} `yaml:"toc"`
	Caption struct {
		Height   float64 `yaml:"height"`
		MaxChars int     `yaml:"max_chars"`
	} `yaml:"caption"`
	Notes struct {
		MaxChars int `yaml:"max_chars"`
	} `yaml:"notes"`
}

// DefaultProfile parses the embedded layout profile. The file ships inside
// the binary, so a parse failure is a build defect, not a runtime condition.
func DefaultProfile() Profile {
	var p Profile
	if err := yaml.Unmarshal(layoutYAML, &p); err != nil {
		panic("failed to unmarshal embedded layout.yaml: " + err.Error())
	}
	return p
}

// ContentWidth returns the usable horizontal space between the side margins.
func (p Profile) ContentWidth() float64 {
	return p.Page.Width - 2*p.Margins.Side
}

// ContentHeight returns the usable vertical space below the title zone.
// Pages with a title reserve more room at the top than pages without one.
func (p Profile) ContentHeight(hasTitle bool) float64 {
	return p.Page.Height - p.contentTop(hasTitle) - p.Margins.Bottom
}

func (p Profile) contentTop(hasTitle bool) float64 {
	if hasTitle {
		return p.Content.TopWithTitle
	}
	return p.Content.TopWithoutTitle
}

// LinesPerSummaryPage returns how many table-of-contents lines fit on one
// page, derived from the available vertical space and the fixed line height.
// The same constant drives both the page-count estimate and the rendering,
// which is what keeps the printed page numbers self-consistent.
func (p Profile) LinesPerSummaryPage() int {
	avail := p.Page.Height - p.ToC.Top - p.Margins.Bottom
	lines := int(avail / p.ToC.LineHeight)
	if lines < 1 {
		return 1
	}
	return lines
}
