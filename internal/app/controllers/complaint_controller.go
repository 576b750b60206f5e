package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hostelease/hostelease/internal/app/models/dto"
	"github.com/hostelease/hostelease/internal/app/services"
	"github.com/hostelease/hostelease/internal/middleware"
	"github.com/hostelease/hostelease/internal/pkg/apperrors"
)

// ComplaintController handles complaint related operations
type ComplaintController struct {
	complaintService services.ComplaintService
}

// NewComplaintController creates a new ComplaintController
func NewComplaintController(complaintService services.ComplaintService) *ComplaintController {
	return &ComplaintController{complaintService: complaintService}
}

// parseIDParam reads the ":id" path parameter as int64.
func parseIDParam(ctx *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrBadRequest
	}
	return id, nil
}

// CreateComplaint files a new complaint
// @Summary Create a complaint
// @Description Files a complaint in PENDING status
// @Tags complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateComplaintRequest true "Complaint details"
// @Success 201 {object} dto.APIResponse{data=models.Complaint} "Complaint created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Router /complaints [post]
func (c *ComplaintController) CreateComplaint(ctx *gin.Context) {
	var req dto.CreateComplaintRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	complaint, err := c.complaintService.CreateComplaint(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(complaint))
}

// GetComplaint retrieves one complaint
// @Summary Get a complaint
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Success 200 {object} dto.APIResponse{data=models.Complaint} "Complaint"
// @Failure 404 {object} dto.ErrorResponse "Complaint not found"
// @Router /complaints/{id} [get]
func (c *ComplaintController) GetComplaint(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	complaint, err := c.complaintService.GetComplaintByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(complaint))
}

// GetAllComplaints lists complaints with filtering and pagination
// @Summary List complaints
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Param studentId query int false "Filter by student"
// @Param status query string false "Filter by status (PENDING, IN_PROGRESS, RESOLVED, REJECTED)"
// @Param category query string false "Filter by category"
// @Param roomNumber query string false "Filter by room number"
// @Param search query string false "Search title and description"
// @Param sortBy query string false "Sort field (default createdAt)"
// @Param sortOrder query string false "Sort order (default desc)"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} dto.APIResponse{data=[]models.Complaint,pagination=dto.PaginationInfo} "Complaints"
// @Router /complaints [get]
func (c *ComplaintController) GetAllComplaints(ctx *gin.Context) {
	var filter dto.ComplaintFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	complaints, pagination, err := c.complaintService.GetAllComplaints(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(complaints, pagination))
}

// UpdateStatus moves a complaint through its workflow
// @Summary Update complaint status
// @Description Transitions a complaint. RESOLVED and REJECTED are terminal.
// @Tags complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Param request body dto.UpdateComplaintStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=models.Complaint} "Complaint updated"
// @Failure 404 {object} dto.ErrorResponse "Complaint not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid status transition"
// @Router /complaints/{id}/status [put]
func (c *ComplaintController) UpdateStatus(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateComplaintStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	complaint, err := c.complaintService.UpdateStatus(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(complaint))
}

// DeleteComplaint removes a complaint
// @Summary Delete a complaint
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Success 200 {object} dto.APIResponse "Complaint deleted"
// @Failure 404 {object} dto.ErrorResponse "Complaint not found"
// @Router /complaints/{id} [delete]
func (c *ComplaintController) DeleteComplaint(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.complaintService.DeleteComplaint(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Complaint deleted successfully"))
}
