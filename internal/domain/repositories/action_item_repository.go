package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// ActionItemRepository defines the interface for action item data access
type ActionItemRepository interface {
	// Create creates a new action item
	Create(ctx context.Context, item *entities.ActionItem) error

	// CreateBatch creates several action items in one transaction
	CreateBatch(ctx context.Context, items []*entities.ActionItem) error

	// FindByID retrieves an action item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ActionItem, error)

	// FindByMeetingID retrieves all action items of a meeting
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error)

	// Update updates an existing action item
	Update(ctx context.Context, item *entities.ActionItem) error

	// Delete removes an action item
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByMeetingID removes all action items of a meeting
	DeleteByMeetingID(ctx context.Context, meetingID uuid.UUID) error

	// List retrieves action items with filters and pagination
	List(ctx context.Context, filters ActionItemFilters) ([]*entities.ActionItem, int64, error)
}

// ActionItemFilters represents filter options for listing action items
type ActionItemFilters struct {
	MeetingID *uuid.UUID
	Status    *entities.ActionItemStatus
	Priority  *entities.ActionItemPriority
	Owner     string
	Limit     int
	Offset    int
	SortBy    string // "created_at", "due_date", "priority"
	SortOrder string // "asc", "desc"
}
