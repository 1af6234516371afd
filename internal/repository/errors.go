package repository

import "errors"

// Common repository errors
var (
	// ErrUserNotFound is returned when a write targets a missing user
	ErrUserNotFound = errors.New("user not found")

	// ErrProjectNotFound is returned when a write targets a missing project
	ErrProjectNotFound = errors.New("project not found")

	ErrMilestoneNotFound = errors.New("milestone not found")
	ErrTaskNotFound      = errors.New("task not found")
	ErrSprintNotFound    = errors.New("sprint not found")
)
