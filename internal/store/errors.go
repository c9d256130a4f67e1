package store

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrAlreadyExists      = errors.New("identity already exists")
	ErrInviteNotFound     = errors.New("invite not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrTenantNotFound     = errors.New("tenant not found")
)
