package auth

import (
	"strings"

	"github.com/heartmarshall/langarchive/internal/domain"
)

const maxPasswordLength = 72

// CredentialsInput holds the email and password for register and login.
type CredentialsInput struct {
	Email    string
	Password string
}

// Validate reports blank fields. Email is expected to be normalized already.
func (i CredentialsInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if !strings.Contains(i.Email, "@") {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
	}

	if strings.TrimSpace(i.Password) == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	} else if len(i.Password) > maxPasswordLength {
		errs = append(errs, domain.FieldError{Field: "password", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
