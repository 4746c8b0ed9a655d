package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategory is assigned to entries created without a category.
const DefaultCategory = "general"

// Region describes where a word is spoken. All fields are optional.
type Region struct {
	Name *string
	Lat  *float64
	Lng  *float64
}

// IsZero reports whether no region field is set.
func (r Region) IsZero() bool {
	return r.Name == nil && r.Lat == nil && r.Lng == nil
}

// Entry is one recorded word with its linguistic and aggregate metadata.
type Entry struct {
	ID              uuid.UUID
	OwnerID         *uuid.UUID
	Language        string
	Word            string
	Meaning         string
	Example         string
	Tags            []string
	Category        string
	AudioRef        *string
	Votes           int
	AvgRating       float64
	RatingCount     int
	ShareToken      string
	Region          Region
	SampleSentences []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsOwnedBy reports whether userID owns the entry. Anonymous entries are
// owned by nobody.
func (e *Entry) IsOwnedBy(userID uuid.UUID) bool {
	return e.OwnerID != nil && *e.OwnerID == userID
}

// Public returns the read-only projection used for share-token access.
func (e *Entry) Public() PublicEntry {
	return PublicEntry{
		Language:        e.Language,
		Word:            e.Word,
		Meaning:         e.Meaning,
		Example:         e.Example,
		Tags:            e.Tags,
		Category:        e.Category,
		AudioRef:        e.AudioRef,
		Votes:           e.Votes,
		AvgRating:       e.AvgRating,
		Region:          e.Region,
		SampleSentences: e.SampleSentences,
		CreatedAt:       e.CreatedAt,
	}
}

// PublicEntry is an entry without owner identity or internal bookkeeping.
type PublicEntry struct {
	Language        string
	Word            string
	Meaning         string
	Example         string
	Tags            []string
	Category        string
	AudioRef        *string
	Votes           int
	AvgRating       float64
	Region          Region
	SampleSentences []string
	CreatedAt       time.Time
}

// EntryFilter contains filtering/pagination parameters for entry listing.
// Limit 0 means no limit.
type EntryFilter struct {
	Query    string
	Category string
	Language string
	Limit    int
	Offset   int
}

// ExportRow is the tabular projection of an entry used for CSV export.
type ExportRow struct {
	Language  string
	Word      string
	Meaning   string
	Example   string
	Category  string
	Tags      []string
	Votes     int
	AvgRating float64
	CreatedAt time.Time
}
