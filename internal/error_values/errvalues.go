package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong name or password")
	ErrInvalidToken     = errors.New("invalid token")

	ErrGoalNotFound     = errors.New("goal doesn't exist")
	ErrOwnerNotFound    = errors.New("owner of the record doesn't exist")
	ErrWrongOwner       = errors.New("record belongs to another user")
	ErrFeedbackNotFound = errors.New("feedback doesn't exist")
	ErrLogNotFound      = errors.New("daily log doesn't exist")
)
