package extract

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/desertthunder/amsync/internal/models"
)

// fromJSONLD reads tracks from MusicPlaylist JSON-LD blocks.
func fromJSONLD(doc *goquery.Document) []models.Track {
	tracks := []models.Track{}
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		data, err := Decode(s.Text())
		if err != nil || data.Get("@type").Text() != "MusicPlaylist" {
			return
		}

		for _, item := range data.Get("track").List() {
			name := item.Get("name").Text()
			if name == "" {
				continue
			}

			by := item.Get("byArtist")
			if list := by.List(); len(list) > 0 {
				by = list[0]
			}
			tracks = append(tracks, models.Track{Title: name, Artist: by.Get("name").Text()})
		}
	})
	return tracks
}
