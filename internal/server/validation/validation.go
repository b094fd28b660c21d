// Package validation implements the credential policy applied to signup
// and signin payloads. All failing rules for a field are accumulated, so
// a response can report every problem at once.
package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/psidorov/interviewhub/internal/server/models"
)

// passwordSymbols is the accepted punctuation/symbol set for passwords.
const passwordSymbols = "!@#$%^&*()_+-=[]{}|;:,.<>?"

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Errors maps a field name to the list of reasons it failed validation.
// It is serialized as-is into 400 response bodies.
type Errors map[string][]string

func (e Errors) add(field, reason string) {
	e[field] = append(e[field], reason)
}

// SignupRequest is the signup payload. Email is normalized in place
// (trimmed, lowercased) during validation.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SigninRequest is the signin payload. Only shape is checked: password
// strength is not re-validated at signin.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NormalizeEmail trims surrounding whitespace and lowercases the address
// so that uniqueness is case-insensitive regardless of storage collation.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateSignup checks the full credential policy and returns nil when
// every rule passes. The request's name and email are normalized in place.
func ValidateSignup(req *SignupRequest) Errors {
	errs := Errors{}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = NormalizeEmail(req.Email)

	if len(req.Name) < 2 {
		errs.add("name", "Shorter than minimum length 2.")
	}

	if !emailRe.MatchString(req.Email) {
		errs.add("email", "Not a valid email address.")
	}

	validatePassword(req.Password, errs)

	if !models.ValidRole(req.Role) {
		errs.add("role", "Must be one of: candidate, interviewer, admin.")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateSignin checks payload shape only.
func ValidateSignin(req *SigninRequest) Errors {
	errs := Errors{}

	req.Email = NormalizeEmail(req.Email)

	if !emailRe.MatchString(req.Email) {
		errs.add("email", "Not a valid email address.")
	}
	if req.Password == "" {
		errs.add("password", "Missing data for required field.")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validatePassword(password string, errs Errors) {
	if len(password) < 8 {
		errs.add("password", "Shorter than minimum length 8.")
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	if !hasUpper {
		errs.add("password", "Must contain an uppercase letter.")
	}
	if !hasLower {
		errs.add("password", "Must contain a lowercase letter.")
	}
	if !hasDigit {
		errs.add("password", "Must contain a digit.")
	}
	if !hasSymbol {
		errs.add("password", "Must contain a special character.")
	}
}
