package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create creates a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// FindByIDWithActionItems retrieves a meeting with its action items preloaded
	FindByIDWithActionItems(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// Update updates an existing meeting
	Update(ctx context.Context, meeting *entities.Meeting) error

	// UpdateStatus updates only the meeting status
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.MeetingStatus) error

	// Delete removes a meeting and its action items
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves meetings with filters and pagination
	List(ctx context.Context, filters MeetingFilters) ([]*entities.Meeting, int64, error)
}

// MeetingFilters represents filter options for listing meetings
type MeetingFilters struct {
	Status    *entities.MeetingStatus
	Search    string // Search in title
	Limit     int
	Offset    int
	SortBy    string // "created_at", "start_time", "title"
	SortOrder string // "asc", "desc"
}
