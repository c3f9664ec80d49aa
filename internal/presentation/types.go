package presentation

import "time"

// LayoutType selects the grid shape of a page and fixes its photo capacity.
type LayoutType string

const (
	LayoutSingle LayoutType = "single"
	LayoutTwo    LayoutType = "two"
	LayoutGrid4  LayoutType = "grid4"
)

// SlotCount returns the photo capacity of the layout.
// Returns 0 for unknown layout values.
func (l LayoutType) SlotCount() int {
	switch l {
	case LayoutSingle:
		return 1
	case LayoutTwo:
		return 2
	case LayoutGrid4:
		return 4
	default:
		return 0
	}
}

// PhotoAsset is one photograph with its metadata. ID is the sole join key
// between the asset collection and page slots; it must be unique within a
// presentation.
type PhotoAsset struct {
	ID       string     `json:"id"`
	URL      string     `json:"url"`
	ThumbURL string     `json:"thumb_url,omitempty"`
	Caption  string     `json:"caption,omitempty"`
	Width    int        `json:"width,omitempty"`
	Height   int        `json:"height,omitempty"`
	TakenAt  *time.Time `json:"taken_at,omitempty"`
}

// Page is one designed output page: a layout, an ordered subset of asset ids
// and optional title/notes. PhotoIDs may reference assets that no longer
// exist; the composer skips dangling ids at composition time.
type Page struct {
	ID       string     `json:"id"`
	Layout   LayoutType `json:"layout"`
	PhotoIDs []string   `json:"photo_ids"`
	Title    string     `json:"title,omitempty"`
	Notes    string     `json:"notes,omitempty"`
}

// Cover configures the optional first page.
type Cover struct {
	Enabled  bool   `json:"enabled"`
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	ImageID  string `json:"image_id,omitempty"`
}

// Summary toggles the table of contents. Its content is derived entirely
// from the page list when the document is composed.
type Summary struct {
	Enabled bool `json:"enabled"`
}

// Metadata carries document-level information attached to the output file.
type Metadata struct {
	Title     string    `json:"title,omitempty"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Document is the single immutable unit passed to the composer.
type Document struct {
	Photos   []PhotoAsset
	Pages    []Page
	Cover    Cover
	Summary  Summary
	Metadata Metadata
}

// State is the persisted presentation tuple. It is also the unit of undo:
// callers snapshot and restore the whole tuple.
type State struct {
	Photos  []PhotoAsset `json:"photos"`
	Pages   []Page       `json:"pages"`
	Cover   Cover        `json:"cover"`
	Summary Summary      `json:"summary"`
}

// CoverPatch is a partial cover update. Nil fields are left untouched.
type CoverPatch struct {
	Enabled  *bool   `json:"enabled"`
	Title    *string `json:"title"`
	Subtitle *string `json:"subtitle"`
	ImageID  *string `json:"image_id"`
}

// SummaryPatch is a partial summary update.
type SummaryPatch struct {
	Enabled *bool `json:"enabled"`
}

// clone returns a deep copy of the state so callers can hold snapshots
// without aliasing the store's slices.
func (s State) clone() State {
	out := State{Cover: s.Cover, Summary: s.Summary}
	if s.Photos != nil {
		out.Photos = make([]PhotoAsset, len(s.Photos))
		copy(out.Photos, s.Photos)
	}
	if s.Pages != nil {
		out.Pages = make([]Page, len(s.Pages))
		for i, p := range s.Pages {
			out.Pages[i] = p
			if p.PhotoIDs != nil {
				out.Pages[i].PhotoIDs = make([]string, len(p.PhotoIDs))
				copy(out.Pages[i].PhotoIDs, p.PhotoIDs)
			}
		}
	}
	return out
}
