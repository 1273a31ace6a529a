package services

import (
	"errors"
	"fmt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account inactive")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidModeration  = errors.New("invalid moderation action")
)

// AccountBannedError carries the ban reason for the login failure message.
type AccountBannedError struct {
	Reason string
}

func (e *AccountBannedError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "Violation of terms"
	}
	return fmt.Sprintf("account banned: %s", reason)
}

// WeakPasswordError lists every strength rule the password violated.
type WeakPasswordError struct {
	Violations []string
}

func (e *WeakPasswordError) Error() string {
	return "password does not meet security requirements"
}
