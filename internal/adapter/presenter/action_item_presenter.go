package presenter

import (
	actionitemDTO "github.com/johnquangdev/meeting-notes/internal/adapter/dto/actionitem"
	"github.com/johnquangdev/meeting-notes/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// ToActionItemResponse converts an ActionItem entity to ItemResponse DTO
func ToActionItemResponse(a *entities.ActionItem) *actionitemDTO.ItemResponse {
	if a == nil {
		return nil
	}

	return &actionitemDTO.ItemResponse{
		ID:          a.ID.String(),
		MeetingID:   a.MeetingID.String(),
		Title:       a.Title,
		Description: a.Description,
		Owner:       a.Owner,
		DueDate:     a.DueDate,
		Priority:    string(a.Priority),
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ToActionItemListResponse converts a slice of ActionItem entities to ItemListResponse
func ToActionItemListResponse(items []*entities.ActionItem, total int64, page, pageSize int) *actionitemDTO.ItemListResponse {
	responses := make([]*actionitemDTO.ItemResponse, len(items))
	for i, item := range items {
		responses[i] = ToActionItemResponse(item)
	}

	return &actionitemDTO.ItemListResponse{
		ActionItems: responses,
		Pagination:  common.NewPagination(total, page, pageSize),
	}
}

// ToExtractionResponse wraps freshly extracted items for the API
func ToExtractionResponse(meetingID string, items []*entities.ActionItem) *actionitemDTO.ExtractionResponse {
	responses := make([]*actionitemDTO.ItemResponse, len(items))
	for i, item := range items {
		responses[i] = ToActionItemResponse(item)
	}

	return &actionitemDTO.ExtractionResponse{
		MeetingID:   meetingID,
		ActionItems: responses,
		Count:       len(responses),
	}
}
