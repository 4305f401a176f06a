package prompts

// SummaryOutput is the expected JSON structure for summary generation
type SummaryOutput struct {
	Summary          string   `json:"summary" validate:"required"`
	Topics           []string `json:"topics" validate:"required"`
	Decisions        []string `json:"decisions"`
	DiscussionPoints []string `json:"discussion_points"`
}

// ActionItemOutput is a single action item identified by the model
type ActionItemOutput struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Owner       string  `json:"owner" validate:"required"`
	DueDate     *string `json:"due_date"`
	Priority    string  `json:"priority" validate:"omitempty,oneof=high medium low"`
}

// ExtractionOutput wraps the list of extracted action items
type ExtractionOutput struct {
	ActionItems []ActionItemOutput `json:"action_items"`
}
