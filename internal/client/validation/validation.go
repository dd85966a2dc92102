// Package validation checks registration input before it is sent to the
// backend. Messages are user facing and localized.
package validation

import (
	"fmt"
	"regexp"
)

const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldGeneral  = "general"

	MinPasswordLength = 8
)

const (
	MsgInvalidEmail        = "Неверный формат email. Пожалуйста, введите корректный email-адрес"
	MsgPasswordTooShort    = "Минимальная длина пароля - 8 символов"
	MsgPasswordCharset     = "Пароль должен содержать только английские буквы, цифры и символы - _"
	MsgPasswordNoUppercase = "Пароль должен содержать хотя бы одну заглавную букву"
	MsgPasswordNoDigit     = "Пароль должен содержать хотя бы одну цифру"
)

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,64}$`)

// ValidationError reports the first failed rule for a form field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return &ValidationError{Field: FieldEmail, Reason: MsgInvalidEmail}
	}
	return nil
}

// ValidatePassword applies the rules in order: length, charset, uppercase,
// digit. Length counts runes.
func ValidatePassword(password string) error {
	fail := func(reason string) error {
		return &ValidationError{Field: FieldPassword, Reason: reason}
	}

	if len([]rune(password)) < MinPasswordLength {
		return fail(MsgPasswordTooShort)
	}

	var hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'a' && r <= 'z', r == '-', r == '_':
		default:
			return fail(MsgPasswordCharset)
		}
	}

	if !hasUpper {
		return fail(MsgPasswordNoUppercase)
	}
	if !hasDigit {
		return fail(MsgPasswordNoDigit)
	}
	return nil
}

// ValidateCredentials runs ValidateEmail then ValidatePassword.
func ValidateCredentials(email, password string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return ValidatePassword(password)
}
