package actionitem

// CreateItemRequest represents the request to create an action item by hand
type CreateItemRequest struct {
	MeetingID   string  `json:"meeting_id" validate:"required,uuid"`
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Owner       string  `json:"owner" validate:"omitempty,max=100"`
	DueDate     *string `json:"due_date,omitempty"`
	Priority    string  `json:"priority" validate:"omitempty,oneof=high medium low"`
}

// UpdateItemRequest represents the request to update an action item
type UpdateItemRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Owner       *string `json:"owner,omitempty" validate:"omitempty,max=100"`
	DueDate     *string `json:"due_date,omitempty"`
	Priority    *string `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=todo in_progress done cancelled"`
}

// UpdateItemStatusRequest represents the request to transition an item's status
type UpdateItemStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=todo in_progress done cancelled"`
}

// ListItemsRequest represents query parameters for listing action items
type ListItemsRequest struct {
	MeetingID *string `query:"meeting_id" validate:"omitempty,uuid"`
	Status    *string `query:"status" validate:"omitempty,oneof=todo in_progress done cancelled"`
	Priority  *string `query:"priority" validate:"omitempty,oneof=high medium low"`
	Owner     string  `query:"owner"`
	Page      int     `query:"page" validate:"omitempty,min=1"`
	PageSize  int     `query:"page_size" validate:"omitempty,min=1,max=100"`
	SortBy    string  `query:"sort_by" validate:"omitempty,oneof=created_at due_date priority"`
	SortOrder string  `query:"sort_order" validate:"omitempty,oneof=asc desc"`
}
