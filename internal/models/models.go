package models

import (
	"fmt"
	"time"
)

// Model defines the base interface for all persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Track is a title/artist pair recovered from a source page. Artist may be empty.
type Track struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

func (t Track) String() string {
	return fmt.Sprintf("%s - %s", t.Title, t.Artist)
}

// Candidate is a destination catalog track.
type Candidate struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	ArtistNames []string `json:"artists"`
}

// FirstArtist returns the primary artist name, or "" when the candidate has none.
func (c Candidate) FirstArtist() string {
	if len(c.ArtistNames) == 0 {
		return ""
	}
	return c.ArtistNames[0]
}

// CandidatePage is one page of playlist items.
type CandidatePage struct {
	Items   []Candidate
	HasNext bool
}

// Playlist represents destination playlist metadata.
type Playlist struct {
	ID         string
	Name       string
	TrackCount int
}
