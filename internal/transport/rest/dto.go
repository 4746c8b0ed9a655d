package rest

import (
	"time"

	"github.com/heartmarshall/langarchive/internal/domain"
)

type entryResponse struct {
	ID              string    `json:"id"`
	OwnerID         *string   `json:"owner_id"`
	Language        string    `json:"language"`
	Word            string    `json:"word"`
	Meaning         string    `json:"meaning"`
	Example         string    `json:"example"`
	Tags            []string  `json:"tags"`
	Category        string    `json:"category"`
	AudioRef        *string   `json:"audio_ref"`
	AudioURL        *string   `json:"audio_url"`
	Votes           int       `json:"votes"`
	AvgRating       float64   `json:"avg_rating"`
	ShareToken      string    `json:"share_token"`
	RegionName      *string   `json:"region_name"`
	RegionLat       *float64  `json:"region_lat"`
	RegionLng       *float64  `json:"region_lng"`
	SampleSentences []string  `json:"sample_sentences"`
	CreatedAt       time.Time `json:"created_at"`
}

type publicEntryResponse struct {
	Language        string    `json:"language"`
	Word            string    `json:"word"`
	Meaning         string    `json:"meaning"`
	Example         string    `json:"example"`
	Tags            []string  `json:"tags"`
	Category        string    `json:"category"`
	AudioURL        *string   `json:"audio_url"`
	Votes           int       `json:"votes"`
	AvgRating       float64   `json:"avg_rating"`
	RegionName      *string   `json:"region_name"`
	RegionLat       *float64  `json:"region_lat"`
	RegionLng       *float64  `json:"region_lng"`
	SampleSentences []string  `json:"sample_sentences"`
	CreatedAt       time.Time `json:"created_at"`
}

type commentResponse struct {
	ID          string    `json:"id"`
	EntryID     string    `json:"entry_id"`
	UserID      string    `json:"user_id"`
	Text        string    `json:"text"`
	Upvotes     int       `json:"upvotes"`
	AuthorEmail string    `json:"author_email"`
	CreatedAt   time.Time `json:"created_at"`
}

// audioURLFunc turns a stored audio reference into a client-facing URL.
type audioURLFunc func(ref string) string

// PublicAudioURL prefixes stored references with the path uploads are served from.
func PublicAudioURL(prefix string) func(ref string) string {
	return func(ref string) string {
		return prefix + "/" + ref
	}
}

func resolveAudioURL(ref *string, fn audioURLFunc) *string {
	if ref == nil || fn == nil {
		return nil
	}
	u := fn(*ref)
	return &u
}

func toEntryResponse(e *domain.Entry, audioURL audioURLFunc) entryResponse {
	resp := entryResponse{
		ID:              e.ID.String(),
		Language:        e.Language,
		Word:            e.Word,
		Meaning:         e.Meaning,
		Example:         e.Example,
		Tags:            nonNilStrings(e.Tags),
		Category:        e.Category,
		AudioRef:        e.AudioRef,
		AudioURL:        resolveAudioURL(e.AudioRef, audioURL),
		Votes:           e.Votes,
		AvgRating:       e.AvgRating,
		ShareToken:      e.ShareToken,
		RegionName:      e.Region.Name,
		RegionLat:       e.Region.Lat,
		RegionLng:       e.Region.Lng,
		SampleSentences: nonNilStrings(e.SampleSentences),
		CreatedAt:       e.CreatedAt,
	}
	if e.OwnerID != nil {
		owner := e.OwnerID.String()
		resp.OwnerID = &owner
	}
	return resp
}

func toEntryResponses(entries []domain.Entry, audioURL audioURLFunc) []entryResponse {
	out := make([]entryResponse, len(entries))
	for i := range entries {
		out[i] = toEntryResponse(&entries[i], audioURL)
	}
	return out
}

func toPublicEntryResponse(p *domain.PublicEntry, audioURL audioURLFunc) publicEntryResponse {
	return publicEntryResponse{
		Language:        p.Language,
		Word:            p.Word,
		Meaning:         p.Meaning,
		Example:         p.Example,
		Tags:            nonNilStrings(p.Tags),
		Category:        p.Category,
		AudioURL:        resolveAudioURL(p.AudioRef, audioURL),
		Votes:           p.Votes,
		AvgRating:       p.AvgRating,
		RegionName:      p.Region.Name,
		RegionLat:       p.Region.Lat,
		RegionLng:       p.Region.Lng,
		SampleSentences: nonNilStrings(p.SampleSentences),
		CreatedAt:       p.CreatedAt,
	}
}

func toCommentResponses(comments []domain.Comment) []commentResponse {
	out := make([]commentResponse, len(comments))
	for i, c := range comments {
		out[i] = toCommentResponse(&c)
	}
	return out
}

func toCommentResponse(c *domain.Comment) commentResponse {
	return commentResponse{
		ID:          c.ID.String(),
		EntryID:     c.EntryID.String(),
		UserID:      c.UserID.String(),
		Text:        c.Text,
		Upvotes:     c.Upvotes,
		AuthorEmail: c.AuthorEmail,
		CreatedAt:   c.CreatedAt,
	}
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
