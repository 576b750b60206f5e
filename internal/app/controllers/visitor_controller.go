package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelease/hostelease/internal/app/models/dto"
	"github.com/hostelease/hostelease/internal/app/services"
	"github.com/hostelease/hostelease/internal/middleware"
)

// VisitorController handles visitor log related operations
type VisitorController struct {
	visitorService services.VisitorService
}

// NewVisitorController creates a new VisitorController
func NewVisitorController(visitorService services.VisitorService) *VisitorController {
	return &VisitorController{visitorService: visitorService}
}

// CreateVisitor checks a visitor in
// @Summary Register a visitor
// @Description Creates a visitor entry; entry time is set to now
// @Tags visitors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateVisitorRequest true "Visitor details"
// @Success 201 {object} dto.APIResponse{data=models.Visitor} "Visitor registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Router /visitors [post]
func (c *VisitorController) CreateVisitor(ctx *gin.Context) {
	var req dto.CreateVisitorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	visitor, err := c.visitorService.CreateVisitor(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(visitor))
}

// GetVisitor retrieves one visitor entry
// @Summary Get a visitor entry
// @Tags visitors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Visitor ID"
// @Success 200 {object} dto.APIResponse{data=models.Visitor} "Visitor"
// @Failure 404 {object} dto.ErrorResponse "Visitor not found"
// @Router /visitors/{id} [get]
func (c *VisitorController) GetVisitor(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	visitor, err := c.visitorService.GetVisitorByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(visitor))
}

// GetAllVisitors lists visitor entries with filtering and pagination
// @Summary List visitors
// @Tags visitors
// @Produce json
// @Security BearerAuth
// @Param studentId query int false "Filter by student"
// @Param roomNumber query string false "Filter by room number"
// @Param hasExited query bool false "Filter by exit state"
// @Param search query string false "Search name, contact and purpose"
// @Param sortBy query string false "Sort field (default entryTime)"
// @Param sortOrder query string false "Sort order (default desc)"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} dto.APIResponse{data=[]models.Visitor,pagination=dto.PaginationInfo} "Visitors"
// @Router /visitors [get]
func (c *VisitorController) GetAllVisitors(ctx *gin.Context) {
	var filter dto.VisitorFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	visitors, pagination, err := c.visitorService.GetAllVisitors(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(visitors, pagination))
}

// MarkExit records a visitor's departure
// @Summary Mark visitor exit
// @Description Sets the exit time; a second exit attempt fails with 409
// @Tags visitors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Visitor ID"
// @Success 200 {object} dto.APIResponse{data=models.Visitor} "Exit recorded"
// @Failure 404 {object} dto.ErrorResponse "Visitor not found"
// @Failure 409 {object} dto.ErrorResponse "Visitor has already exited"
// @Router /visitors/{id}/exit [put]
func (c *VisitorController) MarkExit(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	visitor, err := c.visitorService.MarkExit(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(visitor))
}

// DeleteVisitor removes a visitor entry
// @Summary Delete a visitor entry
// @Tags visitors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Visitor ID"
// @Success 200 {object} dto.APIResponse "Visitor deleted"
// @Failure 404 {object} dto.ErrorResponse "Visitor not found"
// @Router /visitors/{id} [delete]
func (c *VisitorController) DeleteVisitor(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.visitorService.DeleteVisitor(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Visitor entry deleted successfully"))
}
