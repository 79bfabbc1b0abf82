package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/desertthunder/amsync/internal/models"
)

const intentMarker = `[{"intent"`

// fromSerializedData walks the JSON embedded in every script element for track-lockup nodes.
func fromSerializedData(doc *goquery.Document) []models.Track {
	tracks := []models.Track{}
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		text := s.Text()
		if text == "" {
			return
		}
		for _, blob := range scriptValues(text) {
			tracks = walkTracks(blob, tracks)
		}
	})
	return tracks
}

// scriptValues decodes every [{"intent" array in text. When none decodes and the whole
// text looks like JSON, the whole text is decoded instead.
func scriptValues(text string) []*Value {
	var values []*Value
	for _, span := range intentSpans(text) {
		if v, err := Decode(span); err == nil {
			values = append(values, v)
		}
	}
	if len(values) > 0 {
		return values
	}

	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		if v, err := Decode(trimmed); err == nil {
			values = append(values, v)
		}
	}
	return values
}

// intentSpans returns the bracket-balanced spans that start at each [{"intent" occurrence.
func intentSpans(text string) []string {
	var spans []string
	for pos := 0; pos < len(text); {
		idx := strings.Index(text[pos:], intentMarker)
		if idx < 0 {
			break
		}
		start := pos + idx
		end := balancedEnd(text, start)
		if end < 0 {
			pos = start + 1
			continue
		}
		spans = append(spans, text[start:end])
		pos = end
	}
	return spans
}

// balancedEnd returns the index just past the bracket that closes the one at start,
// skipping brackets inside JSON strings. It returns -1 when the text ends first.
func balancedEnd(text string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// walkTracks appends the track nodes under root to tracks in document order.
// A track node's children are not visited.
func walkTracks(root *Value, tracks []models.Track) []models.Track {
	stack := []*Value{root}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch v.Kind {
		case Object:
			if track, ok := trackNode(v); ok {
				tracks = append(tracks, track)
				continue
			}
			for i := len(v.Fields) - 1; i >= 0; i-- {
				stack = append(stack, v.Fields[i].Value)
			}
		case Array:
			for i := len(v.Items) - 1; i >= 0; i-- {
				stack = append(stack, v.Items[i])
			}
		}
	}
	return tracks
}

// trackNode reports whether v describes a track, either by a track-lockup id with
// subtitle links or by itemKind trackLockup.
func trackNode(v *Value) (models.Track, bool) {
	title := v.Get("title").Text()
	if title == "" {
		return models.Track{}, false
	}

	links := v.Get("subtitleLinks").List()
	isLockup := strings.Contains(v.Get("id").Repr(), "track-lockup") && len(links) > 0
	if !isLockup && v.Get("itemKind").Text() != "trackLockup" {
		return models.Track{}, false
	}

	artist := ""
	if len(links) > 0 {
		artist = links[0].Get("title").Text()
	}
	return models.Track{Title: title, Artist: artist}, true
}
