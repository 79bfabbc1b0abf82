package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/desertthunder/amsync/internal/models"
)

// fromMetaTags reads song titles from music:song meta tags. Artists are unknown.
func fromMetaTags(doc *goquery.Document) []models.Track {
	tracks := []models.Track{}
	doc.Find(`meta[property="music:song"]`).Each(func(_ int, s *goquery.Selection) {
		if content := s.AttrOr("content", ""); content != "" {
			tracks = append(tracks, models.Track{Title: content})
		}
	})
	return tracks
}

// PlaylistName returns the og:title content, else the <title> text without its
// trailing " - Apple Music" style suffix, else "".
func PlaylistName(doc *goquery.Document) string {
	if content := doc.Find(`meta[property="og:title"]`).First().AttrOr("content", ""); content != "" {
		return content
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if idx := strings.LastIndex(title, " - "); idx >= 0 {
		return strings.TrimSpace(title[:idx])
	}
	return title
}
