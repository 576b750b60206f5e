package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelease/hostelease/internal/app/models/dto"
	"github.com/hostelease/hostelease/internal/app/services"
	"github.com/hostelease/hostelease/internal/middleware"
)

// FeePaymentController handles fee payment related operations
type FeePaymentController struct {
	feeService services.FeePaymentService
}

// NewFeePaymentController creates a new FeePaymentController
func NewFeePaymentController(feeService services.FeePaymentService) *FeePaymentController {
	return &FeePaymentController{feeService: feeService}
}

// CreateFeePayment records a new fee demand
// @Summary Create a fee payment
// @Description Creates a fee record in PENDING status; the amount must parse as a positive number
// @Tags fee-payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFeePaymentRequest true "Fee details"
// @Success 201 {object} dto.APIResponse{data=models.FeePayment} "Fee payment created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or amount"
// @Router /fee-payments [post]
func (c *FeePaymentController) CreateFeePayment(ctx *gin.Context) {
	var req dto.CreateFeePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	payment, err := c.feeService.CreateFeePayment(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(payment))
}

// GetFeePayment retrieves one fee payment
// @Summary Get a fee payment
// @Tags fee-payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fee payment ID"
// @Success 200 {object} dto.APIResponse{data=models.FeePayment} "Fee payment"
// @Failure 404 {object} dto.ErrorResponse "Fee payment not found"
// @Router /fee-payments/{id} [get]
func (c *FeePaymentController) GetFeePayment(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	payment, err := c.feeService.GetFeePaymentByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(payment))
}

// GetAllFeePayments lists fee payments with filtering and pagination
// @Summary List fee payments
// @Tags fee-payments
// @Produce json
// @Security BearerAuth
// @Param studentId query int false "Filter by student"
// @Param status query string false "Filter by status"
// @Param feeType query string false "Filter by fee type"
// @Param semester query string false "Filter by semester"
// @Param academicYear query string false "Filter by academic year"
// @Param search query string false "Search transaction id and remarks"
// @Param sortBy query string false "Sort field (default createdAt)"
// @Param sortOrder query string false "Sort order (default desc)"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} dto.APIResponse{data=[]models.FeePayment,pagination=dto.PaginationInfo} "Fee payments"
// @Router /fee-payments [get]
func (c *FeePaymentController) GetAllFeePayments(ctx *gin.Context) {
	var filter dto.FeePaymentFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	payments, pagination, err := c.feeService.GetAllFeePayments(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(payments, pagination))
}

// GetStats returns aggregate fee statistics
// @Summary Fee payment statistics
// @Description Aggregates counters and amounts, optionally scoped to a student and academic year
// @Tags fee-payments
// @Produce json
// @Security BearerAuth
// @Param studentId query int false "Scope to one student"
// @Param academicYear query string false "Scope to one academic year"
// @Success 200 {object} dto.APIResponse{data=models.FeeStats} "Statistics"
// @Router /fee-payments/stats [get]
func (c *FeePaymentController) GetStats(ctx *gin.Context) {
	var filter dto.FeeStatsFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	stats, err := c.feeService.GetStats(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(stats))
}

// UpdateFeePayment applies a partial update to a fee payment
// @Summary Update a fee payment
// @Tags fee-payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fee payment ID"
// @Param request body dto.UpdateFeePaymentRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.FeePayment} "Fee payment updated"
// @Failure 404 {object} dto.ErrorResponse "Fee payment not found"
// @Router /fee-payments/{id} [put]
func (c *FeePaymentController) UpdateFeePayment(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateFeePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	payment, err := c.feeService.UpdateFeePayment(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(payment))
}

// PayFee settles a fee payment
// @Summary Pay a fee
// @Description Marks the payment PAID with transaction evidence; paying twice fails with 409
// @Tags fee-payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fee payment ID"
// @Param request body dto.PayFeeRequest true "Payment evidence"
// @Success 200 {object} dto.APIResponse{data=models.FeePayment} "Payment settled"
// @Failure 404 {object} dto.ErrorResponse "Fee payment not found"
// @Failure 409 {object} dto.ErrorResponse "Fee payment is already paid"
// @Router /fee-payments/{id}/pay [put]
func (c *FeePaymentController) PayFee(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.PayFeeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	payment, err := c.feeService.PayFee(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(payment))
}

// UpdateStatus applies a staff status override
// @Summary Update fee payment status
// @Description Moves the record among non-PAID statuses; a PAID record cannot be moved
// @Tags fee-payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fee payment ID"
// @Param request body dto.UpdateFeeStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=models.FeePayment} "Status updated"
// @Failure 404 {object} dto.ErrorResponse "Fee payment not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid status transition"
// @Router /fee-payments/{id}/status [put]
func (c *FeePaymentController) UpdateStatus(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateFeeStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	payment, err := c.feeService.UpdateStatus(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(payment))
}

// DeleteFeePayment removes a fee payment
// @Summary Delete a fee payment
// @Tags fee-payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fee payment ID"
// @Success 200 {object} dto.APIResponse "Fee payment deleted"
// @Failure 404 {object} dto.ErrorResponse "Fee payment not found"
// @Router /fee-payments/{id} [delete]
func (c *FeePaymentController) DeleteFeePayment(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.feeService.DeleteFeePayment(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Fee payment deleted successfully"))
}
