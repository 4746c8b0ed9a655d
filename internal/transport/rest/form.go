package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/langarchive/internal/domain"
	"github.com/heartmarshall/langarchive/internal/service/entry"
)

const (
	audioFormField  = "audio"
	multipartMemory = 8 << 20
	regionNameField = "region_name"
	regionLatField  = "region_lat"
	regionLngField  = "region_lng"
)

var errUploadTooLarge = errors.New("upload too large")

// entryForm holds entry fields decoded from a multipart, urlencoded or JSON
// body. Only keys present in the request appear in values.
type entryForm struct {
	values map[string][]string
	audio  *entry.AudioUpload
	file   multipart.File
}

func (f *entryForm) Close() {
	if f.file != nil {
		_ = f.file.Close()
	}
}

func (f *entryForm) has(key string) bool {
	_, ok := f.values[key]
	return ok
}

func (f *entryForm) get(key string) string {
	if v := f.values[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

func (f *entryForm) optional(key string) *string {
	if !f.has(key) {
		return nil
	}
	v := f.get(key)
	return &v
}

func (f *entryForm) hasRegion() bool {
	return f.has(regionNameField) || f.has(regionLatField) || f.has(regionLngField)
}

// region parses the region group. Blank coordinates are treated as absent.
func (f *entryForm) region() (domain.Region, error) {
	var r domain.Region
	var errs []domain.FieldError

	if f.has(regionNameField) {
		name := f.get(regionNameField)
		r.Name = &name
	}
	for _, c := range []struct {
		field string
		dst   **float64
	}{
		{regionLatField, &r.Lat},
		{regionLngField, &r.Lng},
	} {
		raw := strings.TrimSpace(f.get(c.field))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: c.field, Message: "must be a number"})
			continue
		}
		*c.dst = &v
	}

	if len(errs) > 0 {
		return domain.Region{}, domain.NewValidationErrors(errs)
	}
	return r, nil
}

func (f *entryForm) createInput() (entry.CreateInput, error) {
	region, err := f.region()
	if err != nil {
		return entry.CreateInput{}, err
	}
	return entry.CreateInput{
		Language: f.get("language"),
		Word:     f.get("word"),
		Meaning:  f.get("meaning"),
		Example:  f.get("example"),
		Tags:     f.values["tags"],
		Category: f.get("category"),
		Region:   region,
		Audio:    f.audio,
	}, nil
}

func (f *entryForm) updateInput() (entry.UpdateInput, error) {
	in := entry.UpdateInput{
		Language: f.optional("language"),
		Word:     f.optional("word"),
		Meaning:  f.optional("meaning"),
		Example:  f.optional("example"),
		Category: f.optional("category"),
		Audio:    f.audio,
	}
	if f.has("tags") {
		tags := f.values["tags"]
		if tags == nil {
			tags = []string{}
		}
		in.Tags = &tags
	}
	if f.hasRegion() {
		region, err := f.region()
		if err != nil {
			return entry.UpdateInput{}, err
		}
		in.Region = &region
	}
	return in, nil
}

// parseEntryForm decodes the request body according to its content type.
// The caller must Close the returned form.
func parseEntryForm(w http.ResponseWriter, r *http.Request, maxUpload int64) (*entryForm, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, errUploadTooLarge
			}
			return nil, fmt.Errorf("parse multipart: %w", err)
		}
		form := &entryForm{values: r.MultipartForm.Value}
		file, header, err := r.FormFile(audioFormField)
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			return nil, fmt.Errorf("read audio: %w", err)
		default:
			form.file = file
			form.audio = &entry.AudioUpload{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Body:        file,
			}
		}
		return form, nil

	case "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("parse form: %w", err)
		}
		return &entryForm{values: r.PostForm}, nil

	default:
		var raw map[string]json.RawMessage
		if err := decodeJSON(w, r, &raw); err != nil {
			return nil, err
		}
		values := make(map[string][]string, len(raw))
		for k, v := range raw {
			values[k] = jsonValues(v)
		}
		return &entryForm{values: values}, nil
	}
}

// jsonValues flattens a JSON scalar or array into form-style values.
// null becomes an empty list.
func jsonValues(raw json.RawMessage) []string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	switch x := v.(type) {
	case nil:
		return []string{}
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if s, ok := scalarString(item); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		s, _ := scalarString(x)
		return []string{s}
	}
}

func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(x), true
	default:
		return "", false
	}
}
