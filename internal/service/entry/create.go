package entry

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/langarchive/internal/domain"
	"github.com/heartmarshall/langarchive/pkg/ctxutil"
)

const maxExtensionLength = 10

// Create records a new entry. The caller identity, when present, becomes the
// owner; anonymous entries have no owner and can never be edited.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Entry, error) {
	input.normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var ownerID *uuid.UUID
	if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
		ownerID = &userID
	}

	category := input.Category
	if category == "" {
		category = domain.DefaultCategory
	}

	audioRef, err := s.saveAudio(ctx, input.Audio)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	created, err := s.entries.Create(ctx, &domain.Entry{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		Language:        input.Language,
		Word:            input.Word,
		Meaning:         input.Meaning,
		Example:         input.Example,
		Tags:            input.Tags,
		Category:        category,
		AudioRef:        audioRef,
		ShareToken:      uuid.NewString(),
		Region:          input.Region,
		SampleSentences: []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return nil, fmt.Errorf("entry.Create: %w", err)
	}

	s.log.InfoContext(ctx, "entry created",
		slog.String("entry_id", created.ID.String()),
		slog.Bool("anonymous", ownerID == nil),
	)

	return created, nil
}

// saveAudio hands the upload to the store under a fresh name and returns the
// reference to persist. A nil upload yields a nil reference.
func (s *Service) saveAudio(ctx context.Context, upload *AudioUpload) (*string, error) {
	if upload == nil || upload.Body == nil {
		return nil, nil
	}

	ref, err := s.audio.Save(ctx, audioName(upload.Filename), upload.ContentType, upload.Body)
	if err != nil {
		return nil, fmt.Errorf("save audio: %w", err)
	}
	return &ref, nil
}

func audioName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(ext) > maxExtensionLength || strings.ContainsAny(ext, `/\`) {
		ext = ""
	}
	return uuid.NewString() + ext
}
