package entry

import (
	"io"
	"math"
	"strings"

	"github.com/heartmarshall/langarchive/internal/domain"
)

const (
	maxLanguageLength = 100
	maxWordLength     = 200
	maxTextLength     = 5000
	maxTags           = 50
)

// AudioUpload is an optional audio attachment handed to the upload collaborator.
type AudioUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// CreateInput holds the fields accepted when recording a new word.
type CreateInput struct {
	Language string
	Word     string
	Meaning  string
	Example  string
	Tags     []string
	Category string
	Region   domain.Region
	Audio    *AudioUpload
}

func (i *CreateInput) normalize() {
	i.Language = strings.TrimSpace(i.Language)
	i.Word = strings.TrimSpace(i.Word)
	i.Meaning = strings.TrimSpace(i.Meaning)
	i.Example = strings.TrimSpace(i.Example)
	i.Category = strings.TrimSpace(i.Category)
	i.Tags = domain.ParseStringList(i.Tags)
	i.Region = normalizeRegion(i.Region)
}

// Validate checks all fields and collects all errors.
func (i *CreateInput) Validate() error {
	var errs []domain.FieldError

	errs = appendRequired(errs, "language", i.Language, maxLanguageLength)
	errs = appendRequired(errs, "word", i.Word, maxWordLength)
	errs = appendLength(errs, "meaning", i.Meaning, maxTextLength)
	errs = appendLength(errs, "example", i.Example, maxTextLength)
	if len(i.Tags) > maxTags {
		errs = append(errs, domain.FieldError{Field: "tags", Message: "too many (max 50)"})
	}
	errs = appendRegion(errs, i.Region)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput holds the owner-editable fields. Nil fields keep their stored
// value. Region, when set, replaces all three region fields together.
type UpdateInput struct {
	Language *string
	Word     *string
	Meaning  *string
	Example  *string
	Tags     *[]string
	Category *string
	Region   *domain.Region
	Audio    *AudioUpload
}

func (i *UpdateInput) normalize() {
	for _, p := range []*string{i.Language, i.Word, i.Meaning, i.Example, i.Category} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
	if i.Tags != nil {
		tags := domain.ParseStringList(*i.Tags)
		i.Tags = &tags
	}
	if i.Region != nil {
		r := normalizeRegion(*i.Region)
		i.Region = &r
	}
}

// Validate checks the fields present in the update.
func (i *UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.Language != nil {
		errs = appendRequired(errs, "language", *i.Language, maxLanguageLength)
	}
	if i.Word != nil {
		errs = appendRequired(errs, "word", *i.Word, maxWordLength)
	}
	if i.Meaning != nil {
		errs = appendLength(errs, "meaning", *i.Meaning, maxTextLength)
	}
	if i.Example != nil {
		errs = appendLength(errs, "example", *i.Example, maxTextLength)
	}
	if i.Tags != nil && len(*i.Tags) > maxTags {
		errs = append(errs, domain.FieldError{Field: "tags", Message: "too many (max 50)"})
	}
	if i.Region != nil {
		errs = appendRegion(errs, *i.Region)
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func appendRequired(errs []domain.FieldError, field, value string, max int) []domain.FieldError {
	if value == "" {
		return append(errs, domain.FieldError{Field: field, Message: "required"})
	}
	return appendLength(errs, field, value, max)
}

func appendLength(errs []domain.FieldError, field, value string, max int) []domain.FieldError {
	if len(value) > max {
		return append(errs, domain.FieldError{Field: field, Message: "too long"})
	}
	return errs
}

func appendRegion(errs []domain.FieldError, r domain.Region) []domain.FieldError {
	if r.Lat != nil && (math.IsNaN(*r.Lat) || *r.Lat < -90 || *r.Lat > 90) {
		errs = append(errs, domain.FieldError{Field: "region_lat", Message: "out of range"})
	}
	if r.Lng != nil && (math.IsNaN(*r.Lng) || *r.Lng < -180 || *r.Lng > 180) {
		errs = append(errs, domain.FieldError{Field: "region_lng", Message: "out of range"})
	}
	return errs
}

// normalizeRegion trims the region name and drops it when blank.
func normalizeRegion(r domain.Region) domain.Region {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			r.Name = nil
		} else {
			r.Name = &name
		}
	}
	return r
}
