package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelease/hostelease/internal/app/models/dto"
	"github.com/hostelease/hostelease/internal/app/services"
	"github.com/hostelease/hostelease/internal/middleware"
)

// RoomController handles room related operations
type RoomController struct {
	roomService services.RoomService
}

// NewRoomController creates a new RoomController
func NewRoomController(roomService services.RoomService) *RoomController {
	return &RoomController{roomService: roomService}
}

// CreateRoom registers a new room
// @Summary Create a room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRoomRequest true "Room details"
// @Success 201 {object} dto.APIResponse{data=models.Room} "Room created"
// @Failure 409 {object} dto.ErrorResponse "Room number already exists"
// @Router /rooms [post]
func (c *RoomController) CreateRoom(ctx *gin.Context) {
	var req dto.CreateRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	room, err := c.roomService.CreateRoom(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(room))
}

// GetRoom retrieves one room
// @Summary Get a room
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} dto.APIResponse{data=models.Room} "Room"
// @Failure 404 {object} dto.ErrorResponse "Room not found"
// @Router /rooms/{id} [get]
func (c *RoomController) GetRoom(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	room, err := c.roomService.GetRoomByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(room))
}

// GetAllRooms lists rooms with filtering and pagination
// @Summary List rooms
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (AVAILABLE, OCCUPIED, MAINTENANCE, RESERVED)"
// @Param floor query int false "Filter by floor"
// @Param minCapacity query int false "Minimum capacity"
// @Param maxCapacity query int false "Maximum capacity"
// @Param search query string false "Search room number"
// @Param sortBy query string false "Sort field (default roomNumber)"
// @Param sortOrder query string false "Sort order (default asc)"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} dto.APIResponse{data=[]models.Room,pagination=dto.PaginationInfo} "Rooms"
// @Router /rooms [get]
func (c *RoomController) GetAllRooms(ctx *gin.Context) {
	var filter dto.RoomFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	rooms, pagination, err := c.roomService.GetAllRooms(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(rooms, pagination))
}

// UpdateRoom applies a partial room update
// @Summary Update a room
// @Description Updates room fields; occupancy may never exceed capacity and the status is recomputed
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Param request body dto.UpdateRoomRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Room} "Room updated"
// @Failure 404 {object} dto.ErrorResponse "Room not found"
// @Failure 409 {object} dto.ErrorResponse "Occupancy exceeds capacity"
// @Router /rooms/{id} [put]
func (c *RoomController) UpdateRoom(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	room, err := c.roomService.UpdateRoom(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(room))
}

// AssignRoom places a student in a room
// @Summary Assign a student to a room
// @Description Moves the student, releasing any previous room in the same transaction
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AssignRoomRequest true "Assignment"
// @Success 200 {object} dto.APIResponse{data=models.Room} "Student assigned"
// @Failure 404 {object} dto.ErrorResponse "Room or student not found"
// @Failure 409 {object} dto.ErrorResponse "Room full or unavailable"
// @Router /rooms/assign [post]
func (c *RoomController) AssignRoom(ctx *gin.Context) {
	var req dto.AssignRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	room, err := c.roomService.AssignRoom(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(room))
}

// VacateRoom removes a student from their current room
// @Summary Vacate a student's room
// @Description Releases the student's slot and clears their room reference
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.VacateRoomRequest true "Vacate request"
// @Success 200 {object} dto.APIResponse{data=models.Room} "Room vacated"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "Student has no room assigned"
// @Router /rooms/vacate [post]
func (c *RoomController) VacateRoom(ctx *gin.Context) {
	var req dto.VacateRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	room, err := c.roomService.VacateRoom(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(room))
}

// DeleteRoom removes a room
// @Summary Delete a room
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} dto.APIResponse "Room deleted"
// @Failure 404 {object} dto.ErrorResponse "Room not found"
// @Router /rooms/{id} [delete]
func (c *RoomController) DeleteRoom(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.roomService.DeleteRoom(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Room deleted successfully"))
}
