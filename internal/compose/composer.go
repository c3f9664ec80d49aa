package compose

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/jung-kurt/gofpdf"
	"github.com/scoutdeck/scoutdeck/internal/presentation"
)

// defaultCoverTitle is the last fallback when neither the cover nor the
// document metadata carries a title.
const defaultCoverTitle = "Presentación de locaciones"

// Composer is a pure function from a presentation document to finished PDF
// bytes. Its only side effect is fetching image bytes for embedding; images
// are fetched sequentially in visual reading order, so the network call
// order is deterministic and memory stays bounded for large documents.
type Composer struct {
	fetcher  ImageFetcher
	profile  Profile
	progress func(done, total int)
}

// Option configures a Composer.
type Option func(*Composer)

// WithProfile overrides the embedded layout profile.
func WithProfile(p Profile) Option {
	return func(c *Composer) { c.profile = p }
}

// WithProgress installs a callback invoked after each attempted image embed.
func WithProgress(fn func(done, total int)) Option {
	return func(c *Composer) { c.progress = fn }
}

// New creates a composer that fetches images through the given fetcher.
func New(fetcher ImageFetcher, opts ...Option) *Composer {
	c := &Composer{fetcher: fetcher, profile: DefaultProfile()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose renders the document: optional cover, optional table of contents,
// then one content page per presentation page, in list order.
//
// Per-image fetch or embed failures degrade to a visible placeholder and
// never abort composition. A malformed layout value is a programmer error
// and fails the whole call. Cancelling the context aborts between fetches.
func (c *Composer) Compose(ctx context.Context, doc presentation.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if doc.Metadata.Title != "" {
		pdf.SetTitle(doc.Metadata.Title, true)
	}
	if doc.Metadata.Author != "" {
		pdf.SetAuthor(doc.Metadata.Author, true)
	}
	if !doc.Metadata.CreatedAt.IsZero() {
		pdf.SetCreationDate(doc.Metadata.CreatedAt)
	}

	assets := indexAssets(doc.Photos)
	tracker := &progressTracker{report: c.progress, total: countEmbeds(doc, assets)}

	if doc.Cover.Enabled {
		c.renderCover(ctx, pdf, tr, doc, assets, tracker)
	}
	if doc.Summary.Enabled {
		c.renderSummary(pdf, tr, doc)
	}
	for i, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := c.renderContentPage(ctx, pdf, tr, page, assets, tracker); err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
	}
	// A document with everything disabled and no pages still needs one page
	// to be a valid file.
	if pdf.PageCount() == 0 {
		pdf.AddPage()
	}

	if pdf.Err() {
		return nil, fmt.Errorf("composing document: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("serializing document: %w", err)
	}
	return buf.Bytes(), nil
}

// indexAssets builds the id lookup used to resolve page slots.
func indexAssets(photos []presentation.PhotoAsset) map[string]presentation.PhotoAsset {
	m := make(map[string]presentation.PhotoAsset, len(photos))
	for _, p := range photos {
		m[p.ID] = p
	}
	return m
}

// countEmbeds returns how many image embeds the document will attempt:
// every resolvable slot plus the cover feature image.
func countEmbeds(doc presentation.Document, assets map[string]presentation.PhotoAsset) int {
	total := 0
	if doc.Cover.Enabled {
		if _, ok := assets[doc.Cover.ImageID]; ok {
			total++
		}
	}
	for _, page := range doc.Pages {
		for _, id := range page.PhotoIDs {
			if _, ok := assets[id]; ok {
				total++
			}
		}
	}
	return total
}

type progressTracker struct {
	report func(done, total int)
	done   int
	total  int
}

func (p *progressTracker) step() {
	p.done++
	if p.report != nil {
		p.report(p.done, p.total)
	}
}

// renderCover draws the title block, the optional feature image aspect-fit
// into the lower half of the page, and the metadata timestamp. A failed
// feature image is swallowed; the cover renders without it.
func (c *Composer) renderCover(ctx context.Context, pdf *gofpdf.Fpdf, tr func(string) string, doc presentation.Document, assets map[string]presentation.PhotoAsset, tracker *progressTracker) {
	pdf.AddPage()

	title := doc.Cover.Title
	if title == "" {
		title = doc.Metadata.Title
	}
	if title == "" {
		title = defaultCoverTitle
	}

	p := c.profile
	contentW := p.ContentWidth()

	pdf.SetFont("Helvetica", "B", 28)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetXY(p.Margins.Side, p.Cover.TitleY)
	pdf.CellFormat(contentW, 32, tr(title), "", 0, "C", false, 0, "")

	if doc.Cover.Subtitle != "" {
		pdf.SetFont("Helvetica", "", 16)
		pdf.SetTextColor(90, 90, 90)
		pdf.SetXY(p.Margins.Side, p.Cover.TitleY+p.Cover.SubtitleGap)
		pdf.CellFormat(contentW, 20, tr(doc.Cover.Subtitle), "", 0, "C", false, 0, "")
	}

	if asset, ok := assets[doc.Cover.ImageID]; ok && doc.Cover.ImageID != "" {
		boxW := p.Page.Width - p.Cover.ImageSideMargin
		box := Rect{
			X: (p.Page.Width - boxW) / 2,
			Y: p.Page.Height / 2,
			W: boxW,
			H: p.Page.Height / 2,
		}
		if emb, err := c.fetchImage(ctx, asset); err != nil {
			log.Printf("WARNING: cover image %s: %v", asset.ID, err)
		} else {
			c.drawImage(pdf, asset.ID, emb, box)
		}
		tracker.step()
	}

	if !doc.Metadata.CreatedAt.IsZero() {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(120, 120, 120)
		pdf.SetXY(p.Margins.Side, p.Page.Height-p.Cover.FooterYOffset)
		pdf.CellFormat(contentW, 12, doc.Metadata.CreatedAt.Format("02/01/2006"), "", 0, "C", false, 0, "")
	}
}

// renderContentPage draws one designed page: optional title, the layout's
// cell grid with embedded photos, and optional notes near the bottom.
func (c *Composer) renderContentPage(ctx context.Context, pdf *gofpdf.Fpdf, tr func(string) string, page presentation.Page, assets map[string]presentation.PhotoAsset, tracker *progressTracker) error {
	p := c.profile
	hasTitle := page.Title != ""

	area := contentArea{
		left: p.Margins.Side,
		top:  p.contentTop(hasTitle),
		w:    p.ContentWidth(),
		h:    p.ContentHeight(hasTitle),
	}
	cells := slotRects(page.Layout, area.w, area.h, p.Content.Gutter)
	if cells == nil {
		return fmt.Errorf("invalid layout: %q", page.Layout)
	}

	pdf.AddPage()

	if hasTitle {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.SetTextColor(20, 20, 20)
		pdf.SetXY(p.Margins.Side, 32)
		pdf.CellFormat(area.w, 20, tr(page.Title), "", 0, "L", false, 0, "")
	}

	// Dangling ids are dropped and the remaining images compact into the
	// leading slots; a half-empty grid never shows a gap mid-page.
	resolved := resolveAssets(page.PhotoIDs, assets)
	for i, asset := range resolved {
		if i >= len(cells) {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		c.renderSlot(ctx, pdf, tr, area.abs(cells[i]), asset)
		tracker.step()
	}

	if page.Notes != "" {
		notes := truncateRunes(page.Notes, p.Notes.MaxChars)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(90, 90, 90)
		pdf.SetXY(p.Margins.Side, p.Page.Height-p.Margins.Bottom+12)
		pdf.MultiCell(area.w, 11, tr(notes), "", "L", false)
	}
	return nil
}

// resolveAssets maps photo ids to assets, silently skipping dangling ids.
func resolveAssets(ids []string, assets map[string]presentation.PhotoAsset) []presentation.PhotoAsset {
	resolved := make([]presentation.PhotoAsset, 0, len(ids))
	for _, id := range ids {
		if asset, ok := assets[id]; ok {
			resolved = append(resolved, asset)
		}
	}
	return resolved
}

// renderSlot embeds one photo into its cell, aspect-fit and centered, with
// its caption just below. Failures draw a placeholder instead.
func (c *Composer) renderSlot(ctx context.Context, pdf *gofpdf.Fpdf, tr func(string) string, cell Rect, asset presentation.PhotoAsset) {
	emb, err := c.fetchImage(ctx, asset)
	if err != nil {
		log.Printf("WARNING: photo %s: %v", asset.ID, err)
		c.drawPlaceholder(pdf, tr, cell)
		return
	}

	// Reserve the caption strip below the image.
	imgCell := cell
	caption := ""
	if asset.Caption != "" {
		caption = truncateRunes(asset.Caption, c.profile.Caption.MaxChars)
		imgCell.H -= c.profile.Caption.Height
	}

	draw, ok := c.drawImage(pdf, asset.ID, emb, imgCell)
	if !ok {
		c.drawPlaceholder(pdf, tr, cell)
		return
	}

	if caption != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(90, 90, 90)
		pdf.SetXY(cell.X, draw.Y+draw.H+2)
		pdf.CellFormat(cell.W, 11, tr(caption), "", 0, "C", false, 0, "")
	}
}

// fetchImage downloads and validates one asset, trying the candidate
// decoders in detection order.
func (c *Composer) fetchImage(ctx context.Context, asset presentation.PhotoAsset) (*embeddable, error) {
	data, contentType, err := c.fetcher.Fetch(ctx, asset.URL)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", asset.URL, err)
	}
	emb, err := prepareImage(data, detectFormat(asset.URL, contentType, data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", asset.URL, err)
	}
	return emb, nil
}

// drawImage registers the image and draws it aspect-fit into the cell.
// A registration failure is cleared from the PDF writer so one bad image
// cannot poison the rest of the document.
func (c *Composer) drawImage(pdf *gofpdf.Fpdf, assetID string, emb *embeddable, cell Rect) (Rect, bool) {
	name := "asset-" + assetID
	opts := gofpdf.ImageOptions{ImageType: emb.kind}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(emb.data))
	if !pdf.Ok() {
		log.Printf("WARNING: embedding asset %s: %v", assetID, pdf.Error())
		pdf.ClearError()
		return Rect{}, false
	}
	draw := fitInto(cell, emb.width, emb.height)
	pdf.ImageOptions(name, draw.X, draw.Y, draw.W, draw.H, false, opts, 0, "")
	return draw, true
}

// drawPlaceholder fills the cell with a neutral "image unavailable" marker.
func (c *Composer) drawPlaceholder(pdf *gofpdf.Fpdf, tr func(string) string, cell Rect) {
	pdf.SetFillColor(240, 240, 240)
	pdf.Rect(cell.X, cell.Y, cell.W, cell.H, "F")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(150, 150, 150)
	pdf.SetXY(cell.X, cell.Y+cell.H/2-7)
	pdf.CellFormat(cell.W, 14, tr("Imagen no disponible"), "", 0, "C", false, 0, "")
}

// truncateRunes caps user text at a fixed character budget.
func truncateRunes(s string, maxChars int) string {
	runes := []rune(s)
	if maxChars <= 0 || len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars]) + "..."
}
