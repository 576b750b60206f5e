package dto

// CreateFeePaymentRequest represents a fee payment creation request. Amount
// arrives as a string from forms and must parse as a positive number.
type CreateFeePaymentRequest struct {
	StudentID    int64   `json:"studentId" binding:"required"`
	FeeType      string  `json:"feeType" binding:"required"`
	Amount       string  `json:"amount" binding:"required"`
	DueDate      string  `json:"dueDate" binding:"required"`
	Semester     string  `json:"semester" binding:"required"`
	AcademicYear string  `json:"academicYear" binding:"required"`
	Remarks      *string `json:"remarks"`
}

// UpdateFeePaymentRequest represents a partial fee payment update.
type UpdateFeePaymentRequest struct {
	FeeType      *string `json:"feeType"`
	Amount       *string `json:"amount"`
	DueDate      *string `json:"dueDate"`
	Semester     *string `json:"semester"`
	AcademicYear *string `json:"academicYear"`
	Remarks      *string `json:"remarks"`
}

// PayFeeRequest marks a payment as PAID. PaidDate defaults to now.
type PayFeeRequest struct {
	TransactionID string  `json:"transactionId" binding:"required"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
	PaidDate      *string `json:"paidDate"`
}

// UpdateFeeStatusRequest is the staff status override.
type UpdateFeeStatusRequest struct {
	Status  string  `json:"status" binding:"required"`
	Remarks *string `json:"remarks"`
}

// FeePaymentFilterRequest represents fee payment list filter parameters.
type FeePaymentFilterRequest struct {
	StudentID    int64  `form:"studentId"`
	Status       string `form:"status"`
	FeeType      string `form:"feeType"`
	Semester     string `form:"semester"`
	AcademicYear string `form:"academicYear"`
	Search       string `form:"search"` // Matches transaction id and remarks
	SortBy       string `form:"sortBy,default=createdAt"`
	SortOrder    string `form:"sortOrder,default=desc"`
	Page         int    `form:"page,default=1"`
	Limit        int    `form:"limit,default=10"`
}

// FeeStatsFilterRequest scopes the aggregate statistics query.
type FeeStatsFilterRequest struct {
	StudentID    int64  `form:"studentId"`
	AcademicYear string `form:"academicYear"`
}
