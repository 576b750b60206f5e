package models

import "time"

// FeePayment defines the fee payment model based on the 'fee_payments' table.
// TransactionID, PaymentMethod and PaidDate are set only when the payment
// reaches PAID.
type FeePayment struct {
	ID            int64      `json:"id" db:"id"`
	StudentID     int64      `json:"studentId" db:"student_id"`
	FeeType       string     `json:"feeType" db:"fee_type" example:"HOSTEL"`
	Amount        float64    `json:"amount" db:"amount" example:"5000"`
	DueDate       time.Time  `json:"dueDate" db:"due_date"`
	Semester      string     `json:"semester" db:"semester" example:"FALL"`
	AcademicYear  string     `json:"academicYear" db:"academic_year" example:"2025-26"`
	Status        FeeStatus  `json:"status" db:"status" example:"PENDING"`
	TransactionID *string    `json:"transactionId" db:"transaction_id"`
	PaymentMethod *string    `json:"paymentMethod" db:"payment_method" example:"UPI"`
	PaidDate      *time.Time `json:"paidDate" db:"paid_date"`
	Remarks       *string    `json:"remarks" db:"remarks"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
	StudentName   string     `json:"studentName,omitempty" db:"-"`
	StudentEmail  string     `json:"studentEmail,omitempty" db:"-"`
	RoomNumber    string     `json:"roomNumber,omitempty" db:"-"` // Joined from the student's user record
}

// FeeStats aggregates payment counters for a filtered set of fee payments.
// PendingAmount is totalAmount - paidAmount, which lumps OVERDUE and WAIVED
// amounts in with pending ones; kept for parity with the reporting screens.
type FeeStats struct {
	TotalPaid     int64   `json:"totalPaid"`
	TotalPending  int64   `json:"totalPending"`
	TotalOverdue  int64   `json:"totalOverdue"`
	TotalAmount   float64 `json:"totalAmount"`
	PaidAmount    float64 `json:"paidAmount"`
	PendingAmount float64 `json:"pendingAmount"`
}
