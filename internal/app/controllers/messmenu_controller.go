package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelease/hostelease/internal/app/models/dto"
	"github.com/hostelease/hostelease/internal/app/services"
	"github.com/hostelease/hostelease/internal/middleware"
)

// MessMenuController handles mess menu related operations
type MessMenuController struct {
	menuService services.MessMenuService
}

// NewMessMenuController creates a new MessMenuController
func NewMessMenuController(menuService services.MessMenuService) *MessMenuController {
	return &MessMenuController{menuService: menuService}
}

// UpsertMessMenu creates or replaces a meal slot
// @Summary Upsert a mess menu slot
// @Description Creates or replaces the items for one (day, mealType, weekStart) slot
// @Tags mess-menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpsertMessMenuRequest true "Menu slot"
// @Success 200 {object} dto.APIResponse{data=models.MessMenu} "Menu slot saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid day, meal type or week start"
// @Router /mess-menu [post]
func (c *MessMenuController) UpsertMessMenu(ctx *gin.Context) {
	var req dto.UpsertMessMenuRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	menu, err := c.menuService.UpsertMessMenu(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(menu))
}

// ListMessMenus lists menu slots
// @Summary List mess menu slots
// @Tags mess-menu
// @Produce json
// @Security BearerAuth
// @Param weekStart query string true "Week to list (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=[]models.MessMenu} "Menu slots"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid week start"
// @Router /mess-menu [get]
func (c *MessMenuController) ListMessMenus(ctx *gin.Context) {
	var filter dto.MessMenuFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	menus, err := c.menuService.ListMessMenus(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(menus))
}

// DeleteMessMenu removes a menu slot
// @Summary Delete a mess menu slot
// @Tags mess-menu
// @Produce json
// @Security BearerAuth
// @Param id path int true "Menu slot ID"
// @Success 200 {object} dto.APIResponse "Menu slot deleted"
// @Failure 404 {object} dto.ErrorResponse "Menu item not found"
// @Router /mess-menu/{id} [delete]
func (c *MessMenuController) DeleteMessMenu(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.menuService.DeleteMessMenu(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Menu slot deleted successfully"))
}
