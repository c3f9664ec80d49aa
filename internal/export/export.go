// Package export turns the current presentation into a deliverable artifact,
// either by composing the PDF in process or by delegating the render to the
// remote Studio service.
package export

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/scoutdeck/scoutdeck/internal/presentation"
	"github.com/scoutdeck/scoutdeck/internal/studio"
)

// Mode selects the export path.
type Mode string

const (
	ModeLocal  Mode = "local"
	ModeRemote Mode = "remote"
)

// ParseMode validates a user-supplied mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLocal, ModeRemote:
		return Mode(s), nil
	case "":
		return ModeLocal, nil
	}
	return "", fmt.Errorf("unknown export mode %q", s)
}

// Kind discriminates what an export produced.
type Kind int

const (
	// KindDocument is a finished PDF.
	KindDocument Kind = iota
	// KindHTMLFallback is standalone HTML markup from the remote service.
	KindHTMLFallback
)

// Result is the export outcome. Exactly one payload field is set, selected
// by Kind; Filename is the suggested download name for a document result.
type Result struct {
	Kind     Kind
	Filename string
	Document []byte
	HTML     string
}

// Composer renders a document to PDF bytes in process.
type Composer interface {
	Compose(ctx context.Context, doc presentation.Document) ([]byte, error)
}

// RemoteRenderer delegates the render to the Studio service.
type RemoteRenderer interface {
	Export(ctx context.Context, state presentation.State, opts studio.ExportOptions) (*studio.ExportResult, error)
}

// ErrRemoteUnavailable is returned when a remote export is requested but no
// Studio client is configured.
var ErrRemoteUnavailable = errors.New("remote export is not configured")

// Driver routes export requests. The remote renderer may be nil when the
// deployment has no Studio instance.
type Driver struct {
	composer Composer
	remote   RemoteRenderer
}

// New creates an export driver.
func New(composer Composer, remote RemoteRenderer) *Driver {
	return &Driver{composer: composer, remote: remote}
}

// Export produces the artifact for the given mode. Every failure inside
// either path surfaces here as a single error; there is no partial result.
func (d *Driver) Export(ctx context.Context, mode Mode, doc presentation.Document) (*Result, error) {
	switch mode {
	case ModeLocal:
		return d.local(ctx, doc)
	case ModeRemote:
		return d.remoteExport(ctx, doc)
	}
	return nil, fmt.Errorf("unknown export mode %q", mode)
}

func (d *Driver) local(ctx context.Context, doc presentation.Document) (*Result, error) {
	data, err := d.composer.Compose(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("local export: %w", err)
	}
	return &Result{
		Kind:     KindDocument,
		Filename: Filename(doc.Metadata.Title),
		Document: data,
	}, nil
}

func (d *Driver) remoteExport(ctx context.Context, doc presentation.Document) (*Result, error) {
	if d.remote == nil {
		return nil, ErrRemoteUnavailable
	}

	state := presentation.State{
		Photos:  doc.Photos,
		Pages:   doc.Pages,
		Cover:   doc.Cover,
		Summary: doc.Summary,
	}
	res, err := d.remote.Export(ctx, state, studio.ExportOptions{})
	if err != nil {
		return nil, fmt.Errorf("remote export: %w", err)
	}

	switch res.Kind {
	case studio.ExportDocument:
		return &Result{
			Kind:     KindDocument,
			Filename: Filename(doc.Metadata.Title),
			Document: res.Document,
		}, nil
	case studio.ExportHTMLFallback:
		return &Result{Kind: KindHTMLFallback, HTML: res.HTML}, nil
	}
	return nil, fmt.Errorf("unknown remote result kind %d", res.Kind)
}

// Filename derives the artifact name from the presentation title: whitespace
// collapses to underscores, an empty title falls back to a generic name.
func Filename(title string) string {
	name := strings.Join(strings.Fields(title), "_")
	if name == "" {
		name = "presentacion"
	}
	return name + ".pdf"
}
