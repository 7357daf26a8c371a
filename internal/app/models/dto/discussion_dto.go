package dto

// CreateDiscussionRequest represents the body of POST /bootcamps/:bootcampId/discussions
type CreateDiscussionRequest struct {
	Day         int      `json:"day" binding:"required,min=1" example:"2"`
	Title       string   `json:"title" binding:"required,max=200" example:"What makes a good robot?"`
	Description string   `json:"description"`
	Prompts     []string `json:"prompts" binding:"omitempty,dive,required,max=500"`
}

// UpdateDiscussionRequest carries partial discussion changes
type UpdateDiscussionRequest struct {
	Day         *int     `json:"day,omitempty" binding:"omitempty,min=1"`
	Title       *string  `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Description *string  `json:"description,omitempty"`
	Prompts     []string `json:"prompts,omitempty" binding:"omitempty,dive,required,max=500"`
}
