package meeting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	uerrors "github.com/johnquangdev/meeting-notes/internal/usecase/errors"
)

// transcriptArchiver stores raw transcript uploads in object storage
// and reads archived versions back
type transcriptArchiver interface {
	ArchiveTranscript(ctx context.Context, meetingID uuid.UUID, content string) (string, error)
	FetchTranscript(ctx context.Context, objectName string) (string, error)
	ListTranscripts(ctx context.Context, meetingID uuid.UUID) ([]string, error)
}

// Service handles meeting business logic
type Service struct {
	meetingRepo repositories.MeetingRepository
	archiver    transcriptArchiver
	logger      *zap.Logger
}

// NewService creates a new meeting service. archiver may be nil when
// object storage is not configured.
func NewService(
	meetingRepo repositories.MeetingRepository,
	archiver transcriptArchiver,
	logger *zap.Logger,
) *Service {
	return &Service{
		meetingRepo: meetingRepo,
		archiver:    archiver,
		logger:      logger,
	}
}

// CreateMeetingInput represents input for creating a meeting
type CreateMeetingInput struct {
	Title        string
	StartTime    *time.Time
	EndTime      *time.Time
	Participants *string
	OriginalText *string
}

// CreateMeeting creates a new meeting in draft state
func (s *Service) CreateMeeting(ctx context.Context, input CreateMeetingInput) (*entities.Meeting, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, uerrors.ErrInvalidInput
	}

	meeting := entities.NewMeeting(input.Title)
	meeting.StartTime = input.StartTime
	meeting.EndTime = input.EndTime
	meeting.Participants = input.Participants
	meeting.OriginalText = input.OriginalText
	meeting.SetTopics(nil)
	meeting.SetDecisions(nil)
	meeting.SetDiscussionPoints(nil)

	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	s.logger.Info("✅ Created meeting",
		zap.String("meeting_id", meeting.ID.String()),
		zap.String("title", meeting.Title))

	return meeting, nil
}

// GetMeeting retrieves a meeting with its action items
func (s *Service) GetMeeting(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByIDWithActionItems(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uerrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	return meeting, nil
}

// ListMeetings retrieves meetings with filters
func (s *Service) ListMeetings(ctx context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	meetings, total, err := s.meetingRepo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, total, nil
}

// UpdateMeetingInput represents updatable meeting fields
type UpdateMeetingInput struct {
	Title        *string
	StartTime    *time.Time
	EndTime      *time.Time
	Participants *string
	OriginalText *string
}

// UpdateMeeting applies a partial update to a meeting. Replacing the
// original text of a completed meeting moves it back to draft so stale
// analysis is not served against new content.
func (s *Service) UpdateMeeting(ctx context.Context, id uuid.UUID, input UpdateMeetingInput) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uerrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}

	if meeting.IsProcessing() {
		return nil, uerrors.ErrMeetingProcessing
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, uerrors.ErrInvalidInput
		}
		meeting.Title = *input.Title
	}
	if input.StartTime != nil {
		meeting.StartTime = input.StartTime
	}
	if input.EndTime != nil {
		meeting.EndTime = input.EndTime
	}
	if input.Participants != nil {
		meeting.Participants = input.Participants
	}
	if input.OriginalText != nil {
		meeting.OriginalText = input.OriginalText
		if meeting.Status == entities.MeetingStatusCompleted {
			meeting.Status = entities.MeetingStatusDraft
		}
	}

	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to update meeting: %w", err)
	}
	return meeting, nil
}

// DeleteMeeting removes a meeting and its action items
func (s *Service) DeleteMeeting(ctx context.Context, id uuid.UUID) error {
	if _, err := s.meetingRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uerrors.ErrMeetingNotFound
		}
		return fmt.Errorf("failed to get meeting: %w", err)
	}

	if err := s.meetingRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete meeting: %w", err)
	}

	s.logger.Info("🗑️ Deleted meeting", zap.String("meeting_id", id.String()))
	return nil
}

// AttachTranscript sets a meeting's original text from an uploaded
// transcript and archives the raw file when object storage is
// configured. Archive failures are logged, not fatal.
func (s *Service) AttachTranscript(ctx context.Context, id uuid.UUID, content string) (*entities.Meeting, error) {
	if strings.TrimSpace(content) == "" {
		return nil, uerrors.ErrInvalidInput
	}

	meeting, err := s.meetingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uerrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}

	if meeting.IsProcessing() {
		return nil, uerrors.ErrMeetingProcessing
	}

	meeting.OriginalText = &content
	if meeting.Status == entities.MeetingStatusCompleted {
		meeting.Status = entities.MeetingStatusDraft
	}

	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to store transcript: %w", err)
	}

	if s.archiver != nil {
		key, archiveErr := s.archiver.ArchiveTranscript(ctx, meeting.ID, content)
		if archiveErr != nil {
			s.logger.Warn("failed to archive transcript",
				zap.String("meeting_id", meeting.ID.String()),
				zap.Error(archiveErr))
		} else {
			s.logger.Info("📦 Archived transcript",
				zap.String("meeting_id", meeting.ID.String()),
				zap.String("object_key", key))
		}
	}

	return meeting, nil
}

// ListTranscriptArchives lists the archived transcript versions of a
// meeting. Returns an empty list when object storage is not configured.
func (s *Service) ListTranscriptArchives(ctx context.Context, id uuid.UUID) ([]string, error) {
	if _, err := s.meetingRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uerrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}

	if s.archiver == nil {
		return []string{}, nil
	}

	keys, err := s.archiver.ListTranscripts(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list transcript archives: %w", err)
	}
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

// FetchTranscriptArchive reads one archived transcript version back.
// Keys outside the meeting's own prefix are rejected as not found.
func (s *Service) FetchTranscriptArchive(ctx context.Context, id uuid.UUID, key string) (string, error) {
	if _, err := s.meetingRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", uerrors.ErrMeetingNotFound
		}
		return "", fmt.Errorf("failed to get meeting: %w", err)
	}

	if s.archiver == nil || !strings.HasPrefix(key, fmt.Sprintf("transcripts/%s/", id)) {
		return "", uerrors.ErrNotFound
	}

	content, err := s.archiver.FetchTranscript(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to fetch archived transcript: %w", err)
	}
	return content, nil
}
