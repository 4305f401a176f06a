package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden access")
	ErrNotFound      = errors.New("resource not found")
	ErrInternalError = errors.New("internal server error")
)

// Auth errors
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Meeting errors
var (
	ErrMeetingNotFound      = errors.New("meeting not found")
	ErrMeetingNoContent     = errors.New("meeting has no content to analyze")
	ErrMeetingProcessing    = errors.New("meeting is already being processed")
	ErrInvalidMeetingStatus = errors.New("invalid meeting status for this operation")
)

// Action item errors
var (
	ErrActionItemNotFound      = errors.New("action item not found")
	ErrInvalidActionItemStatus = errors.New("invalid action item status")
	ErrInvalidPriority         = errors.New("invalid priority")
)

// AI errors
var (
	ErrSummaryGeneration    = errors.New("summary generation failed")
	ErrActionItemExtraction = errors.New("action item extraction failed")
	ErrAIResponseInvalid    = errors.New("AI response could not be parsed")
)
