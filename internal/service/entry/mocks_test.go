package entry

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/langarchive/internal/domain"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockEntryRepo struct {
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	GetByShareTokenFunc func(ctx context.Context, token string) (*domain.Entry, error)
	ListFunc            func(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error)
	RandomFunc          func(ctx context.Context) (*domain.Entry, error)
	ExportRowsFunc      func(ctx context.Context) ([]domain.ExportRow, error)
	CreateFunc          func(ctx context.Context, e *domain.Entry) (*domain.Entry, error)
	UpdateFunc          func(ctx context.Context, ownerID uuid.UUID, e *domain.Entry) (*domain.Entry, error)
	DeleteFunc          func(ctx context.Context, id, ownerID uuid.UUID) error

	mu          sync.Mutex
	createCalls []*domain.Entry
	updateCalls []*domain.Entry
	deleteCalls int
}

func (m *mockEntryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockEntryRepo) GetByShareToken(ctx context.Context, token string) (*domain.Entry, error) {
	if m.GetByShareTokenFunc != nil {
		return m.GetByShareTokenFunc(ctx, token)
	}
	return nil, domain.ErrNotFound
}

func (m *mockEntryRepo) List(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return []domain.Entry{}, nil
}

func (m *mockEntryRepo) Random(ctx context.Context) (*domain.Entry, error) {
	if m.RandomFunc != nil {
		return m.RandomFunc(ctx)
	}
	return nil, domain.ErrNotFound
}

func (m *mockEntryRepo) ExportRows(ctx context.Context) ([]domain.ExportRow, error) {
	if m.ExportRowsFunc != nil {
		return m.ExportRowsFunc(ctx)
	}
	return nil, nil
}

func (m *mockEntryRepo) Create(ctx context.Context, e *domain.Entry) (*domain.Entry, error) {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, e)
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, e)
	}
	out := *e
	return &out, nil
}

func (m *mockEntryRepo) Update(ctx context.Context, ownerID uuid.UUID, e *domain.Entry) (*domain.Entry, error) {
	m.mu.Lock()
	m.updateCalls = append(m.updateCalls, e)
	m.mu.Unlock()
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, ownerID, e)
	}
	out := *e
	return &out, nil
}

func (m *mockEntryRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	m.mu.Lock()
	m.deleteCalls++
	m.mu.Unlock()
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, ownerID)
	}
	return nil
}

type mockAudioStore struct {
	SaveFunc func(ctx context.Context, name, contentType string, body io.Reader) (string, error)
	names    []string
}

func (m *mockAudioStore) Save(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	m.names = append(m.names, name)
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, name, contentType, body)
	}
	return name, nil
}

type viewCall struct {
	UserID  uuid.UUID
	EntryID uuid.UUID
}

type mockViewRecorder struct {
	mu    sync.Mutex
	calls []viewCall
}

func (m *mockViewRecorder) RecordView(ctx context.Context, userID, entryID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, viewCall{UserID: userID, EntryID: entryID})
}

type mockTxManager struct {
	calls int
}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}
