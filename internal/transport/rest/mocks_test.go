package rest

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/langarchive/internal/domain"
	"github.com/heartmarshall/langarchive/internal/service/auth"
	"github.com/heartmarshall/langarchive/internal/service/entry"
	"github.com/heartmarshall/langarchive/pkg/ctxutil"
)

var (
	_ authService        = &authServiceMock{}
	_ entryService       = &entryServiceMock{}
	_ aggregationService = &aggregationServiceMock{}
	_ socialService      = &socialServiceMock{}
	_ enrichmentService  = &enrichmentServiceMock{}
	_ tokenValidator     = &tokenValidatorMock{}
)

type authServiceMock struct {
	RegisterFunc func(ctx context.Context, input auth.CredentialsInput) (*auth.AuthResult, error)
	LoginFunc    func(ctx context.Context, input auth.CredentialsInput) (*auth.AuthResult, error)
	MeFunc       func(ctx context.Context) (*domain.User, error)
}

func (m *authServiceMock) Register(ctx context.Context, input auth.CredentialsInput) (*auth.AuthResult, error) {
	if m.RegisterFunc == nil {
		panic("authServiceMock.RegisterFunc: method is nil but authService.Register was just called")
	}
	return m.RegisterFunc(ctx, input)
}

func (m *authServiceMock) Login(ctx context.Context, input auth.CredentialsInput) (*auth.AuthResult, error) {
	if m.LoginFunc == nil {
		panic("authServiceMock.LoginFunc: method is nil but authService.Login was just called")
	}
	return m.LoginFunc(ctx, input)
}

func (m *authServiceMock) Me(ctx context.Context) (*domain.User, error) {
	if m.MeFunc == nil {
		panic("authServiceMock.MeFunc: method is nil but authService.Me was just called")
	}
	return m.MeFunc(ctx)
}

type entryServiceMock struct {
	CreateFunc        func(ctx context.Context, input entry.CreateInput) (*domain.Entry, error)
	GetFunc           func(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	ListFunc          func(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error)
	UpdateFunc        func(ctx context.Context, id uuid.UUID, input entry.UpdateInput) (*domain.Entry, error)
	DeleteFunc        func(ctx context.Context, id uuid.UUID) error
	ResolvePublicFunc func(ctx context.Context, token string) (*domain.PublicEntry, error)
	WordOfDayFunc     func(ctx context.Context) (*domain.Entry, error)
	ExportRowsFunc    func(ctx context.Context) ([]domain.ExportRow, error)
}

func (m *entryServiceMock) Create(ctx context.Context, input entry.CreateInput) (*domain.Entry, error) {
	if m.CreateFunc == nil {
		panic("entryServiceMock.CreateFunc: method is nil but entryService.Create was just called")
	}
	return m.CreateFunc(ctx, input)
}

func (m *entryServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	if m.GetFunc == nil {
		panic("entryServiceMock.GetFunc: method is nil but entryService.Get was just called")
	}
	return m.GetFunc(ctx, id)
}

func (m *entryServiceMock) List(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error) {
	if m.ListFunc == nil {
		panic("entryServiceMock.ListFunc: method is nil but entryService.List was just called")
	}
	return m.ListFunc(ctx, filter)
}

func (m *entryServiceMock) Update(ctx context.Context, id uuid.UUID, input entry.UpdateInput) (*domain.Entry, error) {
	if m.UpdateFunc == nil {
		panic("entryServiceMock.UpdateFunc: method is nil but entryService.Update was just called")
	}
	return m.UpdateFunc(ctx, id, input)
}

func (m *entryServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("entryServiceMock.DeleteFunc: method is nil but entryService.Delete was just called")
	}
	return m.DeleteFunc(ctx, id)
}

func (m *entryServiceMock) ResolvePublic(ctx context.Context, token string) (*domain.PublicEntry, error) {
	if m.ResolvePublicFunc == nil {
		panic("entryServiceMock.ResolvePublicFunc: method is nil but entryService.ResolvePublic was just called")
	}
	return m.ResolvePublicFunc(ctx, token)
}

func (m *entryServiceMock) WordOfDay(ctx context.Context) (*domain.Entry, error) {
	if m.WordOfDayFunc == nil {
		panic("entryServiceMock.WordOfDayFunc: method is nil but entryService.WordOfDay was just called")
	}
	return m.WordOfDayFunc(ctx)
}

func (m *entryServiceMock) ExportRows(ctx context.Context) ([]domain.ExportRow, error) {
	if m.ExportRowsFunc == nil {
		panic("entryServiceMock.ExportRowsFunc: method is nil but entryService.ExportRows was just called")
	}
	return m.ExportRowsFunc(ctx)
}

type aggregationServiceMock struct {
	VoteFunc   func(ctx context.Context, entryID uuid.UUID) (int, error)
	UnvoteFunc func(ctx context.Context, entryID uuid.UUID) (int, error)
	RateFunc   func(ctx context.Context, entryID uuid.UUID, value float64) (float64, error)
}

func (m *aggregationServiceMock) Vote(ctx context.Context, entryID uuid.UUID) (int, error) {
	if m.VoteFunc == nil {
		panic("aggregationServiceMock.VoteFunc: method is nil but aggregationService.Vote was just called")
	}
	return m.VoteFunc(ctx, entryID)
}

func (m *aggregationServiceMock) Unvote(ctx context.Context, entryID uuid.UUID) (int, error) {
	if m.UnvoteFunc == nil {
		panic("aggregationServiceMock.UnvoteFunc: method is nil but aggregationService.Unvote was just called")
	}
	return m.UnvoteFunc(ctx, entryID)
}

func (m *aggregationServiceMock) Rate(ctx context.Context, entryID uuid.UUID, value float64) (float64, error) {
	if m.RateFunc == nil {
		panic("aggregationServiceMock.RateFunc: method is nil but aggregationService.Rate was just called")
	}
	return m.RateFunc(ctx, entryID, value)
}

type socialServiceMock struct {
	FavoriteFunc      func(ctx context.Context, entryID uuid.UUID) error
	UnfavoriteFunc    func(ctx context.Context, entryID uuid.UUID) error
	ListFavoritesFunc func(ctx context.Context) ([]domain.Entry, error)
	ListRecentFunc    func(ctx context.Context) ([]domain.Entry, error)
	AddCommentFunc    func(ctx context.Context, entryID uuid.UUID, text string) (*domain.Comment, error)
	ListCommentsFunc  func(ctx context.Context, entryID uuid.UUID) ([]domain.Comment, error)
	UpvoteCommentFunc func(ctx context.Context, commentID uuid.UUID) (int, error)
}

func (m *socialServiceMock) Favorite(ctx context.Context, entryID uuid.UUID) error {
	if m.FavoriteFunc == nil {
		panic("socialServiceMock.FavoriteFunc: method is nil but socialService.Favorite was just called")
	}
	return m.FavoriteFunc(ctx, entryID)
}

func (m *socialServiceMock) Unfavorite(ctx context.Context, entryID uuid.UUID) error {
	if m.UnfavoriteFunc == nil {
		panic("socialServiceMock.UnfavoriteFunc: method is nil but socialService.Unfavorite was just called")
	}
	return m.UnfavoriteFunc(ctx, entryID)
}

func (m *socialServiceMock) ListFavorites(ctx context.Context) ([]domain.Entry, error) {
	if m.ListFavoritesFunc == nil {
		panic("socialServiceMock.ListFavoritesFunc: method is nil but socialService.ListFavorites was just called")
	}
	return m.ListFavoritesFunc(ctx)
}

func (m *socialServiceMock) ListRecent(ctx context.Context) ([]domain.Entry, error) {
	if m.ListRecentFunc == nil {
		panic("socialServiceMock.ListRecentFunc: method is nil but socialService.ListRecent was just called")
	}
	return m.ListRecentFunc(ctx)
}

func (m *socialServiceMock) AddComment(ctx context.Context, entryID uuid.UUID, text string) (*domain.Comment, error) {
	if m.AddCommentFunc == nil {
		panic("socialServiceMock.AddCommentFunc: method is nil but socialService.AddComment was just called")
	}
	return m.AddCommentFunc(ctx, entryID, text)
}

func (m *socialServiceMock) ListComments(ctx context.Context, entryID uuid.UUID) ([]domain.Comment, error) {
	if m.ListCommentsFunc == nil {
		panic("socialServiceMock.ListCommentsFunc: method is nil but socialService.ListComments was just called")
	}
	return m.ListCommentsFunc(ctx, entryID)
}

func (m *socialServiceMock) UpvoteComment(ctx context.Context, commentID uuid.UUID) (int, error) {
	if m.UpvoteCommentFunc == nil {
		panic("socialServiceMock.UpvoteCommentFunc: method is nil but socialService.UpvoteComment was just called")
	}
	return m.UpvoteCommentFunc(ctx, commentID)
}

type enrichmentServiceMock struct {
	EnrichMeaningFunc           func(ctx context.Context, language, word string) (*domain.Meaning, error)
	GenerateSampleSentencesFunc func(ctx context.Context, entryID uuid.UUID) ([]string, error)
}

func (m *enrichmentServiceMock) EnrichMeaning(ctx context.Context, language, word string) (*domain.Meaning, error) {
	if m.EnrichMeaningFunc == nil {
		panic("enrichmentServiceMock.EnrichMeaningFunc: method is nil but enrichmentService.EnrichMeaning was just called")
	}
	return m.EnrichMeaningFunc(ctx, language, word)
}

func (m *enrichmentServiceMock) GenerateSampleSentences(ctx context.Context, entryID uuid.UUID) ([]string, error) {
	if m.GenerateSampleSentencesFunc == nil {
		panic("enrichmentServiceMock.GenerateSampleSentencesFunc: method is nil but enrichmentService.GenerateSampleSentences was just called")
	}
	return m.GenerateSampleSentencesFunc(ctx, entryID)
}

// tokenValidatorMock accepts exactly one token.
type tokenValidatorMock struct {
	token    string
	identity ctxutil.Identity
}

func (m *tokenValidatorMock) ValidateToken(_ context.Context, token string) (ctxutil.Identity, error) {
	if token != m.token {
		return ctxutil.Identity{}, domain.ErrUnauthorized
	}
	return m.identity, nil
}
