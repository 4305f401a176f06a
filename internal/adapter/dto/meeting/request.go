package meeting

import (
	"time"
)

// CreateMeetingRequest represents the request to create a meeting
type CreateMeetingRequest struct {
	Title        string     `json:"title" validate:"required,min=1,max=255"`
	StartTime    *time.Time `json:"start_time,omitempty"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	Participants *string    `json:"participants,omitempty" validate:"omitempty,max=500"`
	OriginalText *string    `json:"original_text,omitempty" validate:"omitempty,max=50000"`
}

// UpdateMeetingRequest represents the request to update a meeting
type UpdateMeetingRequest struct {
	Title        *string    `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	StartTime    *time.Time `json:"start_time,omitempty"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	Participants *string    `json:"participants,omitempty" validate:"omitempty,max=500"`
	OriginalText *string    `json:"original_text,omitempty" validate:"omitempty,max=50000"`
}

// ListMeetingsRequest represents query parameters for listing meetings
type ListMeetingsRequest struct {
	Status    *string `query:"status" validate:"omitempty,oneof=draft processing completed"`
	Search    string  `query:"search"`
	Page      int     `query:"page" validate:"omitempty,min=1"`
	PageSize  int     `query:"page_size" validate:"omitempty,min=1,max=100"`
	SortBy    string  `query:"sort_by" validate:"omitempty,oneof=created_at start_time title"`
	SortOrder string  `query:"sort_order" validate:"omitempty,oneof=asc desc"`
}
