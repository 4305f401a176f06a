package actionitem

import (
	"time"

	"github.com/johnquangdev/meeting-notes/internal/adapter/dto/common"
)

// ItemResponse represents an action item in API responses
type ItemResponse struct {
	ID          string     `json:"id"`
	MeetingID   string     `json:"meeting_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Owner       string     `json:"owner"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ItemListResponse represents a paginated list of action items
type ItemListResponse struct {
	ActionItems []*ItemResponse            `json:"action_items"`
	Pagination  *common.PaginationResponse `json:"pagination"`
}

// ExtractionResponse represents the result of an AI extraction run
type ExtractionResponse struct {
	MeetingID   string          `json:"meeting_id"`
	ActionItems []*ItemResponse `json:"action_items"`
	Count       int             `json:"count"`
}
