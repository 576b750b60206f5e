package dto

// CreateAnnouncementRequest represents an announcement creation request.
type CreateAnnouncementRequest struct {
	Title         string `json:"title" binding:"required"`
	Content       string `json:"content" binding:"required"`
	Priority      string `json:"priority"` // Defaults to NORMAL
	CreatedBy     int64  `json:"createdBy" binding:"required"`
	CreatedByName string `json:"createdByName" binding:"required"`
}

// UpdateAnnouncementRequest represents a partial announcement update.
type UpdateAnnouncementRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Priority *string `json:"priority"`
}

// AnnouncementFilterRequest represents announcement list filter parameters.
type AnnouncementFilterRequest struct {
	Priority  string `form:"priority"`
	Search    string `form:"search"` // Matches title and content
	SortBy    string `form:"sortBy,default=createdAt"`
	SortOrder string `form:"sortOrder,default=desc"`
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=10"`
}
