package domain

import "errors"

var (
	ErrChatNotFound     = errors.New("chat not found")
	ErrEntryNotFound    = errors.New("emotion entry not found")
	ErrPlanNotFound     = errors.New("safety plan not found")
	ErrSectionNotFound  = errors.New("safety plan section not found")
	ErrItemNotFound     = errors.New("safety plan item not found")
	ErrContactNotFound  = errors.New("emergency contact not found")
	ErrExerciseNotFound = errors.New("wellness exercise not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrWeakPassword     = errors.New("password is too short")
	ErrInvalidLogin     = errors.New("invalid email or password")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrRateLimited      = errors.New("too many requests")
	ErrSessionNotFound  = errors.New("session not found")
	ErrEmptyMessage     = errors.New("message is empty")
	ErrEmptyText        = errors.New("text is empty")
)
