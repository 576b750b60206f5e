package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelease/hostelease/internal/app/models/dto"
	"github.com/hostelease/hostelease/internal/app/services"
	"github.com/hostelease/hostelease/internal/middleware"
)

// AnnouncementController handles announcement related operations
type AnnouncementController struct {
	announcementService services.AnnouncementService
}

// NewAnnouncementController creates a new AnnouncementController
func NewAnnouncementController(announcementService services.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{announcementService: announcementService}
}

// CreateAnnouncement publishes a new announcement
// @Summary Create an announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAnnouncementRequest true "Announcement details"
// @Success 201 {object} dto.APIResponse{data=models.Announcement} "Announcement created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Router /announcements [post]
func (c *AnnouncementController) CreateAnnouncement(ctx *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	announcement, err := c.announcementService.CreateAnnouncement(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(announcement))
}

// GetAnnouncement retrieves one announcement
// @Summary Get an announcement
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} dto.APIResponse{data=models.Announcement} "Announcement"
// @Failure 404 {object} dto.ErrorResponse "Announcement not found"
// @Router /announcements/{id} [get]
func (c *AnnouncementController) GetAnnouncement(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	announcement, err := c.announcementService.GetAnnouncementByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(announcement))
}

// GetAllAnnouncements lists announcements with filtering and pagination
// @Summary List announcements
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param priority query string false "Filter by priority (NORMAL, IMPORTANT, URGENT)"
// @Param search query string false "Search title and content"
// @Param sortBy query string false "Sort field (default createdAt)"
// @Param sortOrder query string false "Sort order (default desc)"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} dto.APIResponse{data=[]models.Announcement,pagination=dto.PaginationInfo} "Announcements"
// @Router /announcements [get]
func (c *AnnouncementController) GetAllAnnouncements(ctx *gin.Context) {
	var filter dto.AnnouncementFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	announcements, pagination, err := c.announcementService.GetAllAnnouncements(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(announcements, pagination))
}

// UpdateAnnouncement applies a partial update to an announcement
// @Summary Update an announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Param request body dto.UpdateAnnouncementRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Announcement} "Announcement updated"
// @Failure 404 {object} dto.ErrorResponse "Announcement not found"
// @Router /announcements/{id} [put]
func (c *AnnouncementController) UpdateAnnouncement(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateAnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	announcement, err := c.announcementService.UpdateAnnouncement(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(announcement))
}

// DeleteAnnouncement removes an announcement
// @Summary Delete an announcement
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} dto.APIResponse "Announcement deleted"
// @Failure 404 {object} dto.ErrorResponse "Announcement not found"
// @Router /announcements/{id} [delete]
func (c *AnnouncementController) DeleteAnnouncement(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.announcementService.DeleteAnnouncement(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Announcement deleted successfully"))
}
