package common

import (
	"fmt"
	"regexp"
)

var (
	EmailRX = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

type ValidationError struct {
	Errors map[string]string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation errors: %+v", e.Errors)
}

type Validator struct {
	Errors map[string]string
}

func NewValidator() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(field, message string) {
	if _, ok := v.Errors[field]; !ok {
		v.Errors[field] = message
	}
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

func (v *Validator) CheckStringLength(s string, min, max int) bool {
	return len(s) >= min && len(s) <= max
}

// CheckMaxBytes reports whether s fits within max bytes. Used for the
// markdown content cap where the byte size matters, not the rune count.
func (v *Validator) CheckMaxBytes(s string, max int) bool {
	return len(s) <= max
}

func (v *Validator) CheckEmail(email string) bool {
	return EmailRX.MatchString(email)
}

func (v *Validator) ValidationError() error {
	return ValidationError{Errors: v.Errors}
}
