package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/cache"
	uerrors "github.com/johnquangdev/meeting-notes/internal/usecase/errors"
	"github.com/johnquangdev/meeting-notes/internal/usecase/prompts"
	"github.com/johnquangdev/meeting-notes/pkg/llm"
)

// Lower temperature keeps structured output consistent across runs.
const analysisTemperature = 0.3

const (
	lockTTL        = 5 * time.Minute
	statusCacheTTL = 10 * time.Second
)

// llmGenerator is the slice of the LLM facade this service needs
type llmGenerator interface {
	GenerateJSON(ctx context.Context, messages []llm.Message, maxTokens int, temperature float64, out any) error
}

// Service generates AI summaries for meetings
type Service struct {
	meetingRepo repositories.MeetingRepository
	llm         llmGenerator
	store       cache.Store
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewService creates a new summary service
func NewService(
	meetingRepo repositories.MeetingRepository,
	generator llmGenerator,
	store cache.Store,
	logger *zap.Logger,
) *Service {
	return &Service{
		meetingRepo: meetingRepo,
		llm:         generator,
		store:       store,
		validate:    validator.New(),
		logger:      logger,
	}
}

// StatusReport describes where a meeting stands in the summary pipeline
type StatusReport struct {
	MeetingID  uuid.UUID              `json:"meeting_id"`
	Status     entities.MeetingStatus `json:"status"`
	HasSummary bool                   `json:"has_summary"`
	HasContent bool                   `json:"has_content"`
}

// GenerateSummary runs the full summary pipeline for a meeting: load,
// validate content, mark processing, call the model, persist results.
// On any failure after the processing transition the meeting reverts
// to draft so it can be retried.
func (s *Service) GenerateSummary(ctx context.Context, meetingID uuid.UUID) (*entities.Meeting, error) {
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

	// Best-effort lock so concurrent requests don't double-process.
	// Cache failures are logged and ignored.
	lockKey := fmt.Sprintf("summary:lock:%s", meetingID)
	if s.store != nil {
		acquired, lockErr := s.store.SetNX(ctx, lockKey, "1", lockTTL)
		if lockErr != nil {
			s.logger.Warn("summary lock unavailable, continuing without it",
				zap.String("meeting_id", meetingID.String()),
				zap.Error(lockErr))
		} else if !acquired {
			return nil, uerrors.ErrMeetingProcessing
		}
		defer func() {
			if delErr := s.store.Delete(context.WithoutCancel(ctx), lockKey); delErr != nil {
				s.logger.Warn("failed to release summary lock", zap.Error(delErr))
			}
			// Drop the cached status report so pollers see the new state
			// immediately instead of after the cache TTL.
			if delErr := s.store.Delete(context.WithoutCancel(ctx), statusCacheKey(meetingID)); delErr != nil {
				s.logger.Warn("failed to invalidate summary status cache", zap.Error(delErr))
			}
		}()
	}

	meeting.Status = entities.MeetingStatusProcessing
	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to mark meeting processing: %w", err)
	}

	output, err := s.generateFromLLM(ctx, meeting)
	if err != nil {
		s.revertToDraft(ctx, meeting)
		s.logger.Error("❌ Summary generation failed",
			zap.String("meeting_id", meetingID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", uerrors.ErrSummaryGeneration, err)
	}

	meeting.Summary = &output.Summary
	meeting.SetTopics(output.Topics)
	meeting.SetDecisions(output.Decisions)
	meeting.SetDiscussionPoints(output.DiscussionPoints)
	meeting.Status = entities.MeetingStatusCompleted

	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		s.revertToDraft(ctx, meeting)
		return nil, fmt.Errorf("%w: failed to store summary: %v", uerrors.ErrSummaryGeneration, err)
	}

	s.logger.Info("✅ Generated meeting summary",
		zap.String("meeting_id", meetingID.String()),
		zap.Int("topics", len(output.Topics)),
		zap.Int("decisions", len(output.Decisions)))

	return meeting, nil
}

// Status reports the summary pipeline state of a meeting. Results are
// cached briefly so polling clients don't hammer the database.
func (s *Service) Status(ctx context.Context, meetingID uuid.UUID) (*StatusReport, error) {
	cacheKey := statusCacheKey(meetingID)

	if s.store != nil {
		if raw, ok, err := s.store.Get(ctx, cacheKey); err == nil && ok {
			var report StatusReport
			if err := json.Unmarshal([]byte(raw), &report); err == nil {
				return &report, nil
			}
		}
	}

	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uerrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to load meeting: %w", err)
	}

	report := &StatusReport{
		MeetingID:  meeting.ID,
		Status:     meeting.Status,
		HasSummary: meeting.Summary != nil && *meeting.Summary != "",
		HasContent: meeting.HasContent(),
	}

	if s.store != nil {
		if data, err := json.Marshal(report); err == nil {
			if setErr := s.store.Set(ctx, cacheKey, string(data), statusCacheTTL); setErr != nil {
				s.logger.Warn("failed to cache summary status", zap.Error(setErr))
			}
		}
	}

	return report, nil
}

func (s *Service) generateFromLLM(ctx context.Context, meeting *entities.Meeting) (*prompts.SummaryOutput, error) {
	var participants []string
	if meeting.Participants != nil && *meeting.Participants != "" {
		participants = []string{*meeting.Participants}
	}

	messages := prompts.BuildSummaryPrompt(
		meeting.Title,
		*meeting.OriginalText,
		meeting.TimeRangeString(),
		participants,
	)

	var output prompts.SummaryOutput
	if err := s.llm.GenerateJSON(ctx, messages, 0, analysisTemperature, &output); err != nil {
		return nil, err
	}

	if err := s.validate.Struct(&output); err != nil {
		return nil, fmt.Errorf("%w: %v", uerrors.ErrAIResponseInvalid, err)
	}

	return &output, nil
}

func statusCacheKey(meetingID uuid.UUID) string {
	return fmt.Sprintf("summary:status:%s", meetingID)
}

// revertToDraft restores the draft status after a failed run so the
// meeting can be retried
func (s *Service) revertToDraft(ctx context.Context, meeting *entities.Meeting) {
	meeting.Status = entities.MeetingStatusDraft
	if err := s.meetingRepo.UpdateStatus(context.WithoutCancel(ctx), meeting.ID, entities.MeetingStatusDraft); err != nil {
		s.logger.Error("failed to revert meeting status to draft",
			zap.String("meeting_id", meeting.ID.String()),
			zap.Error(err))
	}
}
