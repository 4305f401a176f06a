package meeting

import (
	"time"

	"github.com/johnquangdev/meeting-notes/internal/adapter/dto/actionitem"
	"github.com/johnquangdev/meeting-notes/internal/adapter/dto/common"
)

// MeetingResponse represents a meeting in API responses
type MeetingResponse struct {
	ID               string                     `json:"id"`
	Title            string                     `json:"title"`
	StartTime        *time.Time                 `json:"start_time,omitempty"`
	EndTime          *time.Time                 `json:"end_time,omitempty"`
	Participants     *string                    `json:"participants,omitempty"`
	OriginalText     *string                    `json:"original_text,omitempty"`
	Summary          *string                    `json:"summary,omitempty"`
	Topics           []string                   `json:"topics"`
	Decisions        []string                   `json:"decisions"`
	DiscussionPoints []string                   `json:"discussion_points"`
	Status           string                     `json:"status"`
	ActionItems      []*actionitem.ItemResponse `json:"action_items,omitempty"`
	CreatedAt        time.Time                  `json:"created_at"`
	UpdatedAt        time.Time                  `json:"updated_at"`
}

// MeetingListResponse represents a paginated list of meetings
type MeetingListResponse struct {
	Meetings   []*MeetingResponse         `json:"meetings"`
	Pagination *common.PaginationResponse `json:"pagination"`
}

// SummaryStatusResponse reports where a meeting stands in the summary pipeline
type SummaryStatusResponse struct {
	MeetingID  string `json:"meeting_id"`
	Status     string `json:"status"`
	HasSummary bool   `json:"has_summary"`
	HasContent bool   `json:"has_content"`
}

// TranscriptUploadResponse confirms a transcript attach
type TranscriptUploadResponse struct {
	MeetingID string `json:"meeting_id"`
	Status    string `json:"status"`
	Size      int    `json:"size"`
}

// TranscriptArchiveListResponse lists archived transcript versions
type TranscriptArchiveListResponse struct {
	MeetingID string   `json:"meeting_id"`
	Archives  []string `json:"archives"`
	Count     int      `json:"count"`
}

// TranscriptArchiveResponse returns one archived transcript version
type TranscriptArchiveResponse struct {
	MeetingID string `json:"meeting_id"`
	Key       string `json:"key"`
	Content   string `json:"content"`
}
