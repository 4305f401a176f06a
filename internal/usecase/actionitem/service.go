package actionitem

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	uerrors "github.com/johnquangdev/meeting-notes/internal/usecase/errors"
	"github.com/johnquangdev/meeting-notes/internal/usecase/prompts"
	"github.com/johnquangdev/meeting-notes/pkg/llm"
)

// Lower temperature keeps structured output consistent across runs.
const extractionTemperature = 0.3

const dueDateLayout = "2006-01-02"

// llmGenerator is the slice of the LLM facade this service needs
type llmGenerator interface {
	GenerateJSON(ctx context.Context, messages []llm.Message, maxTokens int, temperature float64, out any) error
}

// Service extracts and manages action items
type Service struct {
	meetingRepo repositories.MeetingRepository
	itemRepo    repositories.ActionItemRepository
	llm         llmGenerator
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewService creates a new action item service
func NewService(
	meetingRepo repositories.MeetingRepository,
	itemRepo repositories.ActionItemRepository,
	generator llmGenerator,
	logger *zap.Logger,
) *Service {
	return &Service{
		meetingRepo: meetingRepo,
		itemRepo:    itemRepo,
		llm:         generator,
		validate:    validator.New(),
		logger:      logger,
	}
}

// ExtractActionItems runs AI extraction over a meeting's content and
// persists the identified items. Nothing is written unless the whole
// response parses and validates.
func (s *Service) ExtractActionItems(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uerrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to load meeting: %w", err)
	}

	if !meeting.HasContent() {
		return nil, uerrors.ErrMeetingNoContent
	}

	output, err := s.extractFromLLM(ctx, meeting)
	if err != nil {
		s.logger.Error("❌ Action item extraction failed",
			zap.String("meeting_id", meetingID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", uerrors.ErrActionItemExtraction, err)
	}

	items := s.buildItems(meeting.ID, output.ActionItems)

	if err := s.itemRepo.CreateBatch(ctx, items); err != nil {
		return nil, fmt.Errorf("%w: failed to store action items: %v", uerrors.ErrActionItemExtraction, err)
	}

	s.logger.Info("✅ Extracted action items",
		zap.String("meeting_id", meetingID.String()),
		zap.Int("count", len(items)))

	return items, nil
}

func (s *Service) extractFromLLM(ctx context.Context, meeting *entities.Meeting) (*prompts.ExtractionOutput, error) {
	var meetingDate *time.Time
	if meeting.StartTime != nil {
		meetingDate = meeting.StartTime
	}

	participants := ""
	if meeting.Participants != nil {
		participants = *meeting.Participants
	}

	messages := prompts.BuildActionItemsPrompt(*meeting.OriginalText, participants, meetingDate)

	var output prompts.ExtractionOutput
	if err := s.llm.GenerateJSON(ctx, messages, 0, extractionTemperature, &output); err != nil {
		return nil, err
	}

	for i := range output.ActionItems {
		if err := s.validate.Struct(&output.ActionItems[i]); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", uerrors.ErrAIResponseInvalid, i, err)
		}
	}

	return &output, nil
}

// buildItems converts model output into entities. Malformed due dates
// are logged and stored as null rather than failing the extraction.
func (s *Service) buildItems(meetingID uuid.UUID, outputs []prompts.ActionItemOutput) []*entities.ActionItem {
	items := make([]*entities.ActionItem, 0, len(outputs))

	for _, out := range outputs {
		item := entities.NewActionItem(meetingID, out.Title)

		if out.Description != "" {
			desc := out.Description
			item.Description = &desc
		}

		if owner := strings.TrimSpace(out.Owner); owner != "" {
			item.Owner = owner
		}

		if out.DueDate != nil && *out.DueDate != "" && !strings.EqualFold(*out.DueDate, "null") {
			due, err := time.Parse(dueDateLayout, *out.DueDate)
			if err != nil {
				s.logger.Warn("invalid due_date from model, storing without deadline",
					zap.String("due_date", *out.DueDate))
			} else {
				item.DueDate = &due
			}
		}

		if p := entities.ActionItemPriority(out.Priority); entities.ValidActionItemPriority(p) {
			item.Priority = p
		}

		items = append(items, item)
	}

	return items
}

// GetActionItem retrieves a single action item
func (s *Service) GetActionItem(ctx context.Context, id uuid.UUID) (*entities.ActionItem, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uerrors.ErrActionItemNotFound
		}
		return nil, fmt.Errorf("failed to get action item: %w", err)
	}
	return item, nil
}

// ListActionItems retrieves action items with filters
func (s *Service) ListActionItems(ctx context.Context, filters repositories.ActionItemFilters) ([]*entities.ActionItem, int64, error) {
	items, total, err := s.itemRepo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list action items: %w", err)
	}
	return items, total, nil
}

// CreateActionItemInput represents input for creating an action item by hand
type CreateActionItemInput struct {
	MeetingID   uuid.UUID
	Title       string
	Description *string
	Owner       string
	DueDate     *time.Time
	Priority    entities.ActionItemPriority
}

// CreateActionItem creates an action item outside of AI extraction
func (s *Service) CreateActionItem(ctx context.Context, input CreateActionItemInput) (*entities.ActionItem, error) {
	if _, err := s.meetingRepo.FindByID(ctx, input.MeetingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uerrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to load meeting: %w", err)
	}

	item := entities.NewActionItem(input.MeetingID, input.Title)
	item.Description = input.Description
	item.DueDate = input.DueDate

	if owner := strings.TrimSpace(input.Owner); owner != "" {
		item.Owner = owner
	}
	if input.Priority != "" {
		if !entities.ValidActionItemPriority(input.Priority) {
			return nil, uerrors.ErrInvalidPriority
		}
		item.Priority = input.Priority
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create action item: %w", err)
	}
	return item, nil
}

// UpdateActionItemInput represents updatable action item fields
type UpdateActionItemInput struct {
	Title       *string
	Description *string
	Owner       *string
	DueDate     *time.Time
	ClearDue    bool
	Priority    *entities.ActionItemPriority
	Status      *entities.ActionItemStatus
}

// UpdateActionItem applies a partial update to an action item
func (s *Service) UpdateActionItem(ctx context.Context, id uuid.UUID, input UpdateActionItemInput) (*entities.ActionItem, error) {
	item, err := s.GetActionItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		item.Title = *input.Title
	}
	if input.Description != nil {
		item.Description = input.Description
	}
	if input.Owner != nil {
		owner := strings.TrimSpace(*input.Owner)
		if owner == "" {
			owner = entities.UnassignedOwner
		}
		item.Owner = owner
	}
	if input.DueDate != nil {
		item.DueDate = input.DueDate
	} else if input.ClearDue {
		item.DueDate = nil
	}
	if input.Priority != nil {
		if !entities.ValidActionItemPriority(*input.Priority) {
			return nil, uerrors.ErrInvalidPriority
		}
		item.Priority = *input.Priority
	}
	if input.Status != nil {
		if !entities.ValidActionItemStatus(*input.Status) {
			return nil, uerrors.ErrInvalidActionItemStatus
		}
		item.Status = *input.Status
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update action item: %w", err)
	}
	return item, nil
}

// UpdateStatus transitions an action item to a new workflow state
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ActionItemStatus) (*entities.ActionItem, error) {
	if !entities.ValidActionItemStatus(status) {
		return nil, uerrors.ErrInvalidActionItemStatus
	}

	item, err := s.GetActionItem(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Status = status
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update action item status: %w", err)
	}
	return item, nil
}

// DeleteActionItem removes an action item
func (s *Service) DeleteActionItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetActionItem(ctx, id); err != nil {
		return err
	}
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete action item: %w", err)
	}
	return nil
}
