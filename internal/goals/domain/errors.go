package domain

import "errors"

var (
	// ErrGoalNotFound indicates the requested goal was not found.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrMilestoneNotFound indicates the requested milestone was not found.
	ErrMilestoneNotFound = errors.New("milestone not found")

	// ErrNotOwner indicates the goal belongs to another user.
	ErrNotOwner = errors.New("user does not own this goal")

	// ErrInvalidStatusTransition indicates an invalid status transition was attempted.
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrInvalidTargetDate indicates the target date is not a valid date key.
	ErrInvalidTargetDate = errors.New("invalid target date")

	// ErrEmptyTitle indicates the title cannot be empty.
	ErrEmptyTitle = errors.New("title cannot be empty")
)
