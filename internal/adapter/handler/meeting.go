package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	meetingDTO "github.com/johnquangdev/meeting-notes/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-notes/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	meetingUsecase "github.com/johnquangdev/meeting-notes/internal/usecase/meeting"
	summaryUsecase "github.com/johnquangdev/meeting-notes/internal/usecase/summary"
)

// Transcript uploads are capped to keep prompt sizes sane.
const maxTranscriptBytes = 1 << 20

// Meeting handles meeting-related HTTP requests
type Meeting struct {
	meetingService *meetingUsecase.Service
	summaryService *summaryUsecase.Service
	logger         *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(
	meetingService *meetingUsecase.Service,
	summaryService *summaryUsecase.Service,
	logger *zap.Logger,
) *Meeting {
	return &Meeting{
		meetingService: meetingService,
		summaryService: summaryService,
		logger:         logger,
	}
}

// CreateMeeting handles POST /meetings
func (h *Meeting) CreateMeeting(c echo.Context) error {
	var req meetingDTO.CreateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	input := meetingUsecase.CreateMeetingInput{
		Title:        req.Title,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Participants: req.Participants,
		OriginalText: req.OriginalText,
	}

	meeting, err := h.meetingService.CreateMeeting(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, presenter.ToMeetingResponse(meeting))
}

// GetMeeting handles GET /meetings/:id
func (h *Meeting) GetMeeting(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	meeting, err := h.meetingService.GetMeeting(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToMeetingResponse(meeting))
}

// ListMeetings handles GET /meetings
func (h *Meeting) ListMeetings(c echo.Context) error {
	var req meetingDTO.ListMeetingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	page, pageSize := normalizePage(req.Page, req.PageSize)

	filters := repositories.MeetingFilters{
		Search:    req.Search,
		Limit:     pageSize,
		Offset:    (page - 1) * pageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}
	if req.Status != nil {
		status := entities.MeetingStatus(*req.Status)
		filters.Status = &status
	}

	meetings, total, err := h.meetingService.ListMeetings(c.Request().Context(), filters)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK,
		presenter.ToMeetingListResponse(meetings, total, page, pageSize))
}

// UpdateMeeting handles PUT /meetings/:id
func (h *Meeting) UpdateMeeting(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.UpdateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	input := meetingUsecase.UpdateMeetingInput{
		Title:        req.Title,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Participants: req.Participants,
		OriginalText: req.OriginalText,
	}

	meeting, err := h.meetingService.UpdateMeeting(c.Request().Context(), id, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToMeetingResponse(meeting))
}

// DeleteMeeting handles DELETE /meetings/:id
func (h *Meeting) DeleteMeeting(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.meetingService.DeleteMeeting(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, map[string]interface{}{
		"meeting_id": id.String(),
		"deleted":    true,
	})
}

// GenerateSummary handles POST /meetings/:id/generate-summary
func (h *Meeting) GenerateSummary(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	meeting, err := h.summaryService.GenerateSummary(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToMeetingResponse(meeting))
}

// SummaryStatus handles GET /meetings/:id/summary-status
func (h *Meeting) SummaryStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	report, err := h.summaryService.Status(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	response := &meetingDTO.SummaryStatusResponse{
		MeetingID:  report.MeetingID.String(),
		Status:     string(report.Status),
		HasSummary: report.HasSummary,
		HasContent: report.HasContent,
	}

	return HandleSuccess(h.logger, c, http.StatusOK, response)
}

// UploadTranscript handles POST /meetings/:id/transcript.
// Accepts either a multipart "file" part or a raw text body.
func (h *Meeting) UploadTranscript(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	content, err := readTranscript(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	meeting, err := h.meetingService.AttachTranscript(c.Request().Context(), id, content)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	response := &meetingDTO.TranscriptUploadResponse{
		MeetingID: meeting.ID.String(),
		Status:    string(meeting.Status),
		Size:      len(content),
	}

	return HandleSuccess(h.logger, c, http.StatusOK, response)
}

// ListTranscriptArchives handles GET /meetings/:id/transcripts.
// With a key query parameter it returns that archived version instead
// of the key listing.
func (h *Meeting) ListTranscriptArchives(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if key := c.QueryParam("key"); key != "" {
		content, err := h.meetingService.FetchTranscriptArchive(c.Request().Context(), id, key)
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		return HandleSuccess(h.logger, c, http.StatusOK, &meetingDTO.TranscriptArchiveResponse{
			MeetingID: id.String(),
			Key:       key,
			Content:   content,
		})
	}

	keys, err := h.meetingService.ListTranscriptArchives(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, &meetingDTO.TranscriptArchiveListResponse{
		MeetingID: id.String(),
		Archives:  keys,
		Count:     len(keys),
	})
}

func readTranscript(c echo.Context) (string, error) {
	if file, err := c.FormFile("file"); err == nil {
		src, err := file.Open()
		if err != nil {
			return "", err
		}
		defer src.Close()

		data, err := io.ReadAll(io.LimitReader(src, maxTranscriptBytes))
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := io.ReadAll(io.LimitReader(c.Request().Body, maxTranscriptBytes))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
