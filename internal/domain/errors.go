package domain

import "errors"

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already in use")
	ErrNoUsersFound  = errors.New("no users matched the query")
	ErrNoAvatar      = errors.New("user has no avatar")
	ErrInvalidSearch = errors.New("search query is required")
)
