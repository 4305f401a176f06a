package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/errors"
	actionitemDTO "github.com/johnquangdev/meeting-notes/internal/adapter/dto/actionitem"
	"github.com/johnquangdev/meeting-notes/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	actionitemUsecase "github.com/johnquangdev/meeting-notes/internal/usecase/actionitem"
)

// ActionItem handles action item HTTP requests
type ActionItem struct {
	itemService *actionitemUsecase.Service
	logger      *zap.Logger
}

// NewActionItemHandler creates a new action item handler
func NewActionItemHandler(itemService *actionitemUsecase.Service, logger *zap.Logger) *ActionItem {
	return &ActionItem{
		itemService: itemService,
		logger:      logger,
	}
}

// ExtractActionItems handles POST /meetings/:id/extract-action-items
func (h *ActionItem) ExtractActionItems(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	items, err := h.itemService.ExtractActionItems(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK,
		presenter.ToExtractionResponse(id.String(), items))
}

// ListActionItems handles GET /action-items
func (h *ActionItem) ListActionItems(c echo.Context) error {
	var req actionitemDTO.ListItemsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	page, pageSize := normalizePage(req.Page, req.PageSize)

	filters := repositories.ActionItemFilters{
		Owner:     req.Owner,
		Limit:     pageSize,
		Offset:    (page - 1) * pageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}
	if req.MeetingID != nil {
		meetingID, err := uuid.Parse(*req.MeetingID)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting_id parameter"))
		}
		filters.MeetingID = &meetingID
	}
	if req.Status != nil {
		status := entities.ActionItemStatus(*req.Status)
		filters.Status = &status
	}
	if req.Priority != nil {
		priority := entities.ActionItemPriority(*req.Priority)
		filters.Priority = &priority
	}

	items, total, err := h.itemService.ListActionItems(c.Request().Context(), filters)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK,
		presenter.ToActionItemListResponse(items, total, page, pageSize))
}

// GetActionItem handles GET /action-items/:id
func (h *ActionItem) GetActionItem(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	item, err := h.itemService.GetActionItem(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToActionItemResponse(item))
}

// CreateActionItem handles POST /action-items
func (h *ActionItem) CreateActionItem(c echo.Context) error {
	var req actionitemDTO.CreateItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	meetingID, err := uuid.Parse(req.MeetingID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting_id"))
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	input := actionitemUsecase.CreateActionItemInput{
		MeetingID:   meetingID,
		Title:       req.Title,
		Description: req.Description,
		Owner:       req.Owner,
		DueDate:     dueDate,
		Priority:    entities.ActionItemPriority(req.Priority),
	}

	item, err := h.itemService.CreateActionItem(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, presenter.ToActionItemResponse(item))
}

// UpdateActionItem handles PUT /action-items/:id
func (h *ActionItem) UpdateActionItem(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req actionitemDTO.UpdateItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	input := actionitemUsecase.UpdateActionItemInput{
		Title:       req.Title,
		Description: req.Description,
		Owner:       req.Owner,
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			input.ClearDue = true
		} else {
			dueDate, err := parseDueDate(req.DueDate)
			if err != nil {
				return HandleError(h.logger, c, err)
			}
			input.DueDate = dueDate
		}
	}
	if req.Priority != nil {
		priority := entities.ActionItemPriority(*req.Priority)
		input.Priority = &priority
	}
	if req.Status != nil {
		status := entities.ActionItemStatus(*req.Status)
		input.Status = &status
	}

	item, err := h.itemService.UpdateActionItem(c.Request().Context(), id, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToActionItemResponse(item))
}

// UpdateActionItemStatus handles PATCH /action-items/:id/status
func (h *ActionItem) UpdateActionItemStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req actionitemDTO.UpdateItemStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	item, err := h.itemService.UpdateStatus(c.Request().Context(), id, entities.ActionItemStatus(req.Status))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToActionItemResponse(item))
}

// DeleteActionItem handles DELETE /action-items/:id
func (h *ActionItem) DeleteActionItem(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.itemService.DeleteActionItem(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, map[string]interface{}{
		"action_item_id": id.String(),
		"deleted":        true,
	})
}

// parseDueDate parses an optional YYYY-MM-DD date string
func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	due, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, errors.ErrInvalidArgument("due_date must be in YYYY-MM-DD format")
	}
	return &due, nil
}
