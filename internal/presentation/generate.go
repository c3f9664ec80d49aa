package presentation

import (
	"fmt"

	"github.com/google/uuid"
)

// GeneratePagesFromOrder partitions photos into consecutive chunks sized by
// the layout capacity (the last chunk may be shorter) and emits one page per
// chunk, in photo order, each with a fresh id and an empty title.
//
// The result is meant to replace the whole page list; per-page edits made
// before regeneration are discarded by design, so callers should warn the
// user when existing pages carry titles or notes.
func GeneratePagesFromOrder(photos []PhotoAsset, layout LayoutType) ([]Page, error) {
	size := layout.SlotCount()
	if size == 0 {
		return nil, fmt.Errorf("invalid layout: %q", layout)
	}

	pages := make([]Page, 0, (len(photos)+size-1)/size)
	for start := 0; start < len(photos); start += size {
		end := min(start+size, len(photos))
		ids := make([]string, 0, end-start)
		for _, p := range photos[start:end] {
			ids = append(ids, p.ID)
		}
		pages = append(pages, Page{
			ID:       uuid.NewString(),
			Layout:   layout,
			PhotoIDs: ids,
		})
	}
	return pages, nil
}
