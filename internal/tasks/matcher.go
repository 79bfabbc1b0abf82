package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/amsync/internal/models"
	"github.com/desertthunder/amsync/internal/services"
	"github.com/desertthunder/amsync/internal/shared"
	"github.com/hbollon/go-edlib"
)

const (
	fieldSearchLimit = 5
	broadSearchLimit = 3
)

// Confidence records which rule selected a match.
type Confidence string

const (
	// ConfidenceStrong: title and artist agree by normalized containment.
	ConfidenceStrong Confidence = "strong"
	// ConfidenceFallback: field search returned results but none agreed; the top result was taken.
	ConfidenceFallback Confidence = "fallback"
	// ConfidenceBroad: only the free-text search returned anything.
	ConfidenceBroad Confidence = "broad"
)

// Match is the candidate chosen for a source track.
type Match struct {
	Candidate  models.Candidate
	Confidence Confidence
	Similarity float64 // Levenshtein similarity of the normalized keys, 0..1
}

// Matcher resolves source tracks to catalog candidates.
type Matcher struct {
	catalog services.Service
}

// NewMatcher creates a matcher backed by catalog.
func NewMatcher(catalog services.Service) *Matcher {
	return &Matcher{catalog: catalog}
}

// Match finds the best candidate for (title, artist). It returns nil, nil when neither query has results.
//
// The field query `track:<title> artist:<artist>` runs first. Among its results the first candidate whose
// normalized title and first artist each contain, or are contained in, the normalized input wins. Without
// such a candidate the top result is accepted. Only when the field query is empty does the free-text
// query `<title> <artist>` run.
func (m *Matcher) Match(ctx context.Context, title, artist string) (*Match, error) {
	want := shared.NormalizeTrackKey(title, artist)

	results, err := m.catalog.SearchTracks(ctx, fmt.Sprintf("track:%s artist:%s", title, artist), fieldSearchLimit)
	if err != nil {
		return nil, err
	}

	if len(results) > 0 {
		for _, c := range results {
			if agrees(want, candidateKey(c)) {
				return newMatch(want, c, ConfidenceStrong), nil
			}
		}
		return newMatch(want, results[0], ConfidenceFallback), nil
	}

	results, err = m.catalog.SearchTracks(ctx, fmt.Sprintf("%s %s", title, artist), broadSearchLimit)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return newMatch(want, results[0], ConfidenceBroad), nil
}

func candidateKey(c models.Candidate) shared.TrackKey {
	return shared.NormalizeTrackKey(c.Name, c.FirstArtist())
}

func agrees(want, got shared.TrackKey) bool {
	return overlaps(want.Title, got.Title) && overlaps(want.Artist, got.Artist)
}

func overlaps(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func newMatch(want shared.TrackKey, c models.Candidate, confidence Confidence) *Match {
	return &Match{
		Candidate:  c,
		Confidence: confidence,
		Similarity: similarity(want, candidateKey(c)),
	}
}

func similarity(a, b shared.TrackKey) float64 {
	if a == b {
		return 1
	}
	score, err := edlib.StringsSimilarity(a.String(), b.String(), edlib.Levenshtein)
	if err != nil {
		return 0
	}
	return float64(score)
}
