package tasks

import (
	"context"

	"github.com/desertthunder/amsync/internal/services"
	"github.com/desertthunder/amsync/internal/shared"
)

// PageSize is the number of playlist items requested per page.
const PageSize = 100

// ExistingIndex is a snapshot of the destination playlist, keyed by track id and by normalized
// title/artist. It only grows.
type ExistingIndex struct {
	ids        map[string]shared.TrackKey
	normalized map[shared.TrackKey]struct{}
}

// NewExistingIndex returns an empty index.
func NewExistingIndex() *ExistingIndex {
	return &ExistingIndex{
		ids:        make(map[string]shared.TrackKey),
		normalized: make(map[shared.TrackKey]struct{}),
	}
}

// BuildIndex pages through playlistID until the catalog reports no further page or returns an empty one.
// Items without an id (local files, removed tracks) are skipped.
func BuildIndex(ctx context.Context, catalog services.Service, playlistID string) (*ExistingIndex, error) {
	idx := NewExistingIndex()

	offset := 0
	for {
		page, err := catalog.PlaylistItems(ctx, playlistID, offset, PageSize)
		if err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			if item.ID == "" {
				continue
			}
			idx.Record(item.ID, candidateKey(item))
		}

		if !page.HasNext || len(page.Items) == 0 {
			break
		}
		offset += len(page.Items)
	}

	return idx, nil
}

// Contains reports whether the track id is already present.
func (i *ExistingIndex) Contains(id string) bool {
	_, ok := i.ids[id]
	return ok
}

// ContainsNormalized reports whether a track with the same normalized title and artist is present.
func (i *ExistingIndex) ContainsNormalized(key shared.TrackKey) bool {
	_, ok := i.normalized[key]
	return ok
}

// Record adds a track to both views.
func (i *ExistingIndex) Record(id string, key shared.TrackKey) {
	i.ids[id] = key
	i.normalized[key] = struct{}{}
}

// Len returns the number of distinct track ids.
func (i *ExistingIndex) Len() int {
	return len(i.ids)
}
