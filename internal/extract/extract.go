package extract

import (
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/desertthunder/amsync/internal/models"
)

// Strategy names the extraction strategy that produced a [Result].
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategySerialized
	StrategyJSONLD
	StrategyMeta
)

func (s Strategy) String() string {
	switch s {
	case StrategySerialized:
		return "serialized"
	case StrategyJSONLD:
		return "json-ld"
	case StrategyMeta:
		return "meta"
	default:
		return "none"
	}
}

// Result is the track listing and playlist name recovered from a page.
type Result struct {
	Tracks       []models.Track
	PlaylistName string
	Strategy     Strategy
}

type strategy struct {
	kind Strategy
	run  func(*goquery.Document) []models.Track
}

var strategies = []strategy{
	{StrategySerialized, fromSerializedData},
	{StrategyJSONLD, fromJSONLD},
	{StrategyMeta, fromMetaTags},
}

// Extract runs the strategies in priority order and returns the first non-empty listing.
//
// Tracks is never nil.
func Extract(doc *goquery.Document) Result {
	result := Result{Tracks: []models.Track{}, PlaylistName: PlaylistName(doc)}
	for _, s := range strategies {
		if tracks := s.run(doc); len(tracks) > 0 {
			result.Tracks = tracks
			result.Strategy = s.kind
			return result
		}
	}
	return result
}

// ExtractHTML parses r as HTML and extracts from it.
func ExtractHTML(r io.Reader) (Result, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Result{Tracks: []models.Track{}}, err
	}
	return Extract(doc), nil
}
