package auth

import (
	"sync"

	"github.com/heartmarshall/langarchive/pkg/ctxutil"
)

var _ jwtManager = &jwtManagerMock{}

type jwtManagerMock struct {
	GenerateTokenFunc func(id ctxutil.Identity) (string, error)
	ValidateTokenFunc func(token string) (ctxutil.Identity, error)

	calls struct {
		GenerateToken []struct{ ID ctxutil.Identity }
		ValidateToken []struct{ Token string }
	}
	lockGenerateToken sync.RWMutex
	lockValidateToken sync.RWMutex
}

func (mock *jwtManagerMock) GenerateToken(id ctxutil.Identity) (string, error) {
	if mock.GenerateTokenFunc == nil {
		panic("jwtManagerMock.GenerateTokenFunc: method is nil but jwtManager.GenerateToken was just called")
	}
	mock.lockGenerateToken.Lock()
	mock.calls.GenerateToken = append(mock.calls.GenerateToken, struct{ ID ctxutil.Identity }{ID: id})
	mock.lockGenerateToken.Unlock()
	return mock.GenerateTokenFunc(id)
}

func (mock *jwtManagerMock) GenerateTokenCalls() []struct{ ID ctxutil.Identity } {
	mock.lockGenerateToken.RLock()
	defer mock.lockGenerateToken.RUnlock()
	return mock.calls.GenerateToken
}

func (mock *jwtManagerMock) ValidateToken(token string) (ctxutil.Identity, error) {
	if mock.ValidateTokenFunc == nil {
		panic("jwtManagerMock.ValidateTokenFunc: method is nil but jwtManager.ValidateToken was just called")
	}
	mock.lockValidateToken.Lock()
	mock.calls.ValidateToken = append(mock.calls.ValidateToken, struct{ Token string }{Token: token})
	mock.lockValidateToken.Unlock()
	return mock.ValidateTokenFunc(token)
}
