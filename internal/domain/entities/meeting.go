package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MeetingStatus represents the lifecycle state of a meeting
type MeetingStatus string

const (
	MeetingStatusDraft      MeetingStatus = "draft"
	MeetingStatusProcessing MeetingStatus = "processing"
	MeetingStatusCompleted  MeetingStatus = "completed"
)

// Meeting is the stored meeting model
type Meeting struct {
	ID               uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title            string        `json:"title" gorm:"type:varchar(255);not null;index"`
	StartTime        *time.Time    `json:"start_time,omitempty"`
	EndTime          *time.Time    `json:"end_time,omitempty"`
	Participants     *string       `json:"participants,omitempty" gorm:"type:varchar(500)"`
	OriginalText     *string       `json:"original_text,omitempty" gorm:"type:text"`
	Summary          *string       `json:"summary,omitempty" gorm:"type:text"`
	Topics           string        `json:"-" gorm:"type:text"`
	Decisions        string        `json:"-" gorm:"type:text"`
	DiscussionPoints string        `json:"-" gorm:"type:text"`
	Status           MeetingStatus `json:"status" gorm:"type:varchar(20);not null;default:'draft';index"`
	ActionItems      []ActionItem  `json:"action_items,omitempty" gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a new meeting in draft state
func NewMeeting(title string) *Meeting {
	return &Meeting{
		ID:        uuid.New(),
		Title:     title,
		Status:    MeetingStatusDraft,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// HasContent checks if the meeting carries transcript text to analyze
func (m *Meeting) HasContent() bool {
	return m.OriginalText != nil && strings.TrimSpace(*m.OriginalText) != ""
}

// IsProcessing checks if an AI run is currently in flight for this meeting
func (m *Meeting) IsProcessing() bool {
	return m.Status == MeetingStatusProcessing
}

// TopicList decodes the stored topics column
func (m *Meeting) TopicList() []string {
	return DecodeStringList(m.Topics)
}

// DecisionList decodes the stored decisions column
func (m *Meeting) DecisionList() []string {
	return DecodeStringList(m.Decisions)
}

// DiscussionPointList decodes the stored discussion points column
func (m *Meeting) DiscussionPointList() []string {
	return DecodeStringList(m.DiscussionPoints)
}

// SetTopics encodes and stores the topics column
func (m *Meeting) SetTopics(topics []string) {
	m.Topics = EncodeStringList(topics)
}

// SetDecisions encodes and stores the decisions column
func (m *Meeting) SetDecisions(decisions []string) {
	m.Decisions = EncodeStringList(decisions)
}

// SetDiscussionPoints encodes and stores the discussion points column
func (m *Meeting) SetDiscussionPoints(points []string) {
	m.DiscussionPoints = EncodeStringList(points)
}

// TimeRangeString formats the meeting time window for display, empty when unscheduled
func (m *Meeting) TimeRangeString() string {
	if m.StartTime == nil {
		return ""
	}
	s := m.StartTime.Format("2006-01-02 15:04")
	if m.EndTime != nil {
		s += " - " + m.EndTime.Format("15:04")
	}
	return s
}
