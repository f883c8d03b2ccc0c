package services

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

const (
	maxNameLen     = 150
	minPasswordLen = 8
	// bcrypt ignores anything past 72 bytes.
	maxPasswordLen = 72
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

func normalizeInput(s string) string {
	return strings.TrimSpace(s)
}

func normalizeRegisterInput(in RegisterInput) RegisterInput {
	in.Email = strings.ToLower(normalizeInput(in.Email))
	in.Username = normalizeInput(in.Username)
	in.FirstName = normalizeInput(in.FirstName)
	in.LastName = normalizeInput(in.LastName)
	return in
}

func validateRegistration(dbc dbctx.Context, op string, userRepo repos.UserRepo, in RegisterInput) error {
	invalid := func(msg string) error {
		return domainagg.NewError(domainagg.CodeValidation, op, msg, nil)
	}
	if in.Email == "" {
		return invalid("an email is required to register")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return invalid("email is not valid")
	}
	if in.Username == "" || len(in.Username) > maxNameLen || !usernamePattern.MatchString(in.Username) {
		return invalid("username is not valid")
	}
	if in.FirstName == "" || len(in.FirstName) > maxNameLen {
		return invalid("a first name is required to register")
	}
	if in.LastName == "" || len(in.LastName) > maxNameLen {
		return invalid("a last name is required to register")
	}
	if err := validatePassword(op, in.Password); err != nil {
		return err
	}

	emailExists, err := userRepo.EmailExists(dbc, in.Email)
	if err != nil {
		return fmt.Errorf("check user email: %w", err)
	}
	if emailExists {
		return domainagg.NewError(domainagg.CodeConflict, op, "email is already in use", nil)
	}
	usernameExists, err := userRepo.UsernameExists(dbc, in.Username)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if usernameExists {
		return domainagg.NewError(domainagg.CodeConflict, op, "username is already in use", nil)
	}
	return nil
}

func validateLogin(op, email, password string) error {
	if email == "" {
		return domainagg.NewError(domainagg.CodeValidation, op, "email is required to login", nil)
	}
	if password == "" {
		return domainagg.NewError(domainagg.CodeValidation, op, "password is required to login", nil)
	}
	return nil
}

func validatePassword(op, password string) error {
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return domainagg.Errorf(domainagg.CodeValidation, op,
			"password must be between %d and %d bytes", minPasswordLen, maxPasswordLen)
	}
	return nil
}

func hashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}
