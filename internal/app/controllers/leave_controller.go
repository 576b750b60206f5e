package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelease/hostelease/internal/app/models/dto"
	"github.com/hostelease/hostelease/internal/app/services"
	"github.com/hostelease/hostelease/internal/middleware"
)

// LeaveController handles leave application related operations
type LeaveController struct {
	leaveService services.LeaveService
}

// NewLeaveController creates a new LeaveController
func NewLeaveController(leaveService services.LeaveService) *LeaveController {
	return &LeaveController{leaveService: leaveService}
}

// CreateLeave files a new leave application
// @Summary Apply for leave
// @Description Files a leave application in PENDING status
// @Tags leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLeaveRequest true "Leave details"
// @Success 201 {object} dto.APIResponse{data=models.Leave} "Leave application created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or date range"
// @Router /leaves [post]
func (c *LeaveController) CreateLeave(ctx *gin.Context) {
	var req dto.CreateLeaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	leave, err := c.leaveService.CreateLeave(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(leave))
}

// GetLeave retrieves one leave application
// @Summary Get a leave application
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave ID"
// @Success 200 {object} dto.APIResponse{data=models.Leave} "Leave application"
// @Failure 404 {object} dto.ErrorResponse "Leave application not found"
// @Router /leaves/{id} [get]
func (c *LeaveController) GetLeave(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	leave, err := c.leaveService.GetLeaveByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(leave))
}

// GetAllLeaves lists leave applications with filtering and pagination
// @Summary List leave applications
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Param studentId query int false "Filter by student"
// @Param status query string false "Filter by status (PENDING, APPROVED, REJECTED)"
// @Param roomNumber query string false "Filter by room number"
// @Param search query string false "Search reason and destination"
// @Param sortBy query string false "Sort field (default createdAt)"
// @Param sortOrder query string false "Sort order (default desc)"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} dto.APIResponse{data=[]models.Leave,pagination=dto.PaginationInfo} "Leave applications"
// @Router /leaves [get]
func (c *LeaveController) GetAllLeaves(ctx *gin.Context) {
	var filter dto.LeaveFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	leaves, pagination, err := c.leaveService.GetAllLeaves(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(leaves, pagination))
}

// ApproveLeave approves a pending leave application
// @Summary Approve a leave application
// @Description Approves a PENDING application; re-approving is a no-op, overturning a rejection fails with 409
// @Tags leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave ID"
// @Param request body dto.ApproveLeaveRequest true "Approving staff member"
// @Success 200 {object} dto.APIResponse{data=models.Leave} "Leave approved"
// @Failure 404 {object} dto.ErrorResponse "Leave application not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid status transition"
// @Router /leaves/{id}/approve [put]
func (c *LeaveController) ApproveLeave(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.ApproveLeaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	leave, err := c.leaveService.ApproveLeave(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(leave))
}

// RejectLeave rejects a pending leave application
// @Summary Reject a leave application
// @Tags leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave ID"
// @Param request body dto.RejectLeaveRequest true "Rejection details"
// @Success 200 {object} dto.APIResponse{data=models.Leave} "Leave rejected"
// @Failure 404 {object} dto.ErrorResponse "Leave application not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid status transition"
// @Router /leaves/{id}/reject [put]
func (c *LeaveController) RejectLeave(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.RejectLeaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	leave, err := c.leaveService.RejectLeave(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(leave))
}

// DeleteLeave removes a leave application
// @Summary Delete a leave application
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave ID"
// @Success 200 {object} dto.APIResponse "Leave deleted"
// @Failure 404 {object} dto.ErrorResponse "Leave application not found"
// @Router /leaves/{id} [delete]
func (c *LeaveController) DeleteLeave(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.leaveService.DeleteLeave(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Leave application deleted successfully"))
}
