package presenter

import (
	actionitemDTO "github.com/johnquangdev/meeting-notes/internal/adapter/dto/actionitem"
	"github.com/johnquangdev/meeting-notes/internal/adapter/dto/common"
	meetingDTO "github.com/johnquangdev/meeting-notes/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) *meetingDTO.MeetingResponse {
	if m == nil {
		return nil
	}

	response := &meetingDTO.MeetingResponse{
		ID:               m.ID.String(),
		Title:            m.Title,
		StartTime:        m.StartTime,
		EndTime:          m.EndTime,
		Participants:     m.Participants,
		OriginalText:     m.OriginalText,
		Summary:          m.Summary,
		Topics:           m.TopicList(),
		Decisions:        m.DecisionList(),
		DiscussionPoints: m.DiscussionPointList(),
		Status:           string(m.Status),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}

	// Include action items if loaded
	if len(m.ActionItems) > 0 {
		items := make([]*actionitemDTO.ItemResponse, len(m.ActionItems))
		for i := range m.ActionItems {
			items[i] = ToActionItemResponse(&m.ActionItems[i])
		}
		response.ActionItems = items
	}

	return response
}

// ToMeetingListResponse converts a slice of Meeting entities to MeetingListResponse
func ToMeetingListResponse(meetings []*entities.Meeting, total int64, page, pageSize int) *meetingDTO.MeetingListResponse {
	responses := make([]*meetingDTO.MeetingResponse, len(meetings))
	for i, m := range meetings {
		responses[i] = ToMeetingResponse(m)
	}

	return &meetingDTO.MeetingListResponse{
		Meetings:   responses,
		Pagination: common.NewPagination(total, page, pageSize),
	}
}
