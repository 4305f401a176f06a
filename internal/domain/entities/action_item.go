package entities

import (
	"time"

	"github.com/google/uuid"
)

// ActionItemStatus represents the workflow state of an action item
type ActionItemStatus string

const (
	ActionItemStatusTodo       ActionItemStatus = "todo"
	ActionItemStatusInProgress ActionItemStatus = "in_progress"
	ActionItemStatusDone       ActionItemStatus = "done"
	ActionItemStatusCancelled  ActionItemStatus = "cancelled"
)

// ActionItemPriority represents how urgent an action item is
type ActionItemPriority string

const (
	ActionItemPriorityHigh   ActionItemPriority = "high"
	ActionItemPriorityMedium ActionItemPriority = "medium"
	ActionItemPriorityLow    ActionItemPriority = "low"
)

// UnassignedOwner is recorded when extraction finds no responsible person
const UnassignedOwner = "Unassigned"

// ActionItem is the stored action item model
type ActionItem struct {
	ID          uuid.UUID          `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID   uuid.UUID          `json:"meeting_id" gorm:"type:uuid;not null;index"`
	Title       string             `json:"title" gorm:"type:varchar(255);not null"`
	Description *string            `json:"description,omitempty" gorm:"type:text"`
	Owner       string             `json:"owner" gorm:"type:varchar(100);not null;default:'Unassigned'"`
	DueDate     *time.Time         `json:"due_date,omitempty"`
	Priority    ActionItemPriority `json:"priority" gorm:"type:varchar(20);not null;default:'medium';index"`
	Status      ActionItemStatus   `json:"status" gorm:"type:varchar(20);not null;default:'todo';index"`
	CreatedAt   time.Time          `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time          `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (ActionItem) TableName() string {
	return "action_items"
}

// NewActionItem creates a new action item with default workflow state
func NewActionItem(meetingID uuid.UUID, title string) *ActionItem {
	return &ActionItem{
		ID:        uuid.New(),
		MeetingID: meetingID,
		Title:     title,
		Owner:     UnassignedOwner,
		Priority:  ActionItemPriorityMedium,
		Status:    ActionItemStatusTodo,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// IsOpen checks if the item still requires work
func (a *ActionItem) IsOpen() bool {
	return a.Status == ActionItemStatusTodo || a.Status == ActionItemStatusInProgress
}

// ValidActionItemStatus reports whether s is a known workflow state
func ValidActionItemStatus(s ActionItemStatus) bool {
	switch s {
	case ActionItemStatusTodo, ActionItemStatusInProgress, ActionItemStatusDone, ActionItemStatusCancelled:
		return true
	}
	return false
}

// ValidActionItemPriority reports whether p is a known priority
func ValidActionItemPriority(p ActionItemPriority) bool {
	switch p {
	case ActionItemPriorityHigh, ActionItemPriorityMedium, ActionItemPriorityLow:
		return true
	}
	return false
}
