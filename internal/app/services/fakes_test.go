package services

// In-memory fakes for the store interfaces. They mirror the repository
// semantics the services rely on: statuses forced on create, lifecycle
// validation before transitions, and typed errors for missing rows.

import (
	"context"
	"fmt"
	"time"

	"github.com/hostelease/hostelease/internal/app/lifecycle"
	"github.com/hostelease/hostelease/internal/app/models"
	"github.com/hostelease/hostelease/internal/pkg/apperrors"
)

type fakeComplaintStore struct {
	complaints map[int64]*models.Complaint
	nextID     int64
	listErr    error
}

func newFakeComplaintStore() *fakeComplaintStore {
	return &fakeComplaintStore{complaints: map[int64]*models.Complaint{}, nextID: 1}
}

func (f *fakeComplaintStore) CreateComplaint(_ context.Context, complaint *models.Complaint) (int64, error) {
	c := *complaint
	c.ID = f.nextID
	c.Status = models.ComplaintPending
	f.complaints[c.ID] = &c
	f.nextID++
	return c.ID, nil
}

func (f *fakeComplaintStore) GetComplaintByID(_ context.Context, id int64) (*models.Complaint, error) {
	c, ok := f.complaints[id]
	if !ok {
		return nil, apperrors.ErrComplaintNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeComplaintStore) GetAllComplaints(_ context.Context, page, pageSize int, _ map[string]interface{}) ([]models.Complaint, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	var all []models.Complaint
	for i := int64(1); i < f.nextID; i++ {
		if c, ok := f.complaints[i]; ok {
			all = append(all, *c)
		}
	}
	total := len(all)
	start := (page - 1) * pageSize
	if start >= total {
		return []models.Complaint{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (f *fakeComplaintStore) TransitionStatus(_ context.Context, id int64, to models.ComplaintStatus, resolutionNotes, resolvedBy *string) error {
	c, ok := f.complaints[id]
	if !ok {
		return apperrors.ErrComplaintNotFound
	}
	if err := lifecycle.ValidateComplaintTransition(c.Status, to); err != nil {
		return err
	}
	c.Status = to
	if resolutionNotes != nil {
		c.ResolutionNotes = resolutionNotes
	}
	if resolvedBy != nil {
		c.ResolvedBy = resolvedBy
	}
	return nil
}

func (f *fakeComplaintStore) DeleteComplaint(_ context.Context, id int64) error {
	if _, ok := f.complaints[id]; !ok {
		return apperrors.ErrComplaintNotFound
	}
	delete(f.complaints, id)
	return nil
}

type fakeLeaveStore struct {
	leaves map[int64]*models.Leave
	nextID int64
}

func newFakeLeaveStore() *fakeLeaveStore {
	return &fakeLeaveStore{leaves: map[int64]*models.Leave{}, nextID: 1}
}

func (f *fakeLeaveStore) CreateLeave(_ context.Context, leave *models.Leave) (int64, error) {
	l := *leave
	l.ID = f.nextID
	l.Status = models.LeavePending
	f.leaves[l.ID] = &l
	f.nextID++
	return l.ID, nil
}

func (f *fakeLeaveStore) GetLeaveByID(_ context.Context, id int64) (*models.Leave, error) {
	l, ok := f.leaves[id]
	if !ok {
		return nil, apperrors.ErrLeaveNotFound
	}
	copied := *l
	return &copied, nil
}

func (f *fakeLeaveStore) GetAllLeaves(_ context.Context, page, pageSize int, _ map[string]interface{}) ([]models.Leave, int, error) {
	var all []models.Leave
	for i := int64(1); i < f.nextID; i++ {
		if l, ok := f.leaves[i]; ok {
			all = append(all, *l)
		}
	}
	return all, len(all), nil
}

func (f *fakeLeaveStore) TransitionStatus(_ context.Context, id int64, to models.LeaveStatus, approvedBy string, rejectionReason *string) error {
	l, ok := f.leaves[id]
	if !ok {
		return apperrors.ErrLeaveNotFound
	}
	if err := lifecycle.ValidateLeaveTransition(l.Status, to); err != nil {
		return err
	}
	if l.Status == to {
		return nil
	}
	l.Status = to
	l.ApprovedBy = &approvedBy
	if to == models.LeaveRejected {
		l.RejectionReason = rejectionReason
	}
	return nil
}

func (f *fakeLeaveStore) DeleteLeave(_ context.Context, id int64) error {
	if _, ok := f.leaves[id]; !ok {
		return apperrors.ErrLeaveNotFound
	}
	delete(f.leaves, id)
	return nil
}

type fakeVisitorStore struct {
	visitors map[int64]*models.Visitor
	nextID   int64
}

func newFakeVisitorStore() *fakeVisitorStore {
	return &fakeVisitorStore{visitors: map[int64]*models.Visitor{}, nextID: 1}
}

func (f *fakeVisitorStore) CreateVisitor(_ context.Context, visitor *models.Visitor) (int64, error) {
	v := *visitor
	v.ID = f.nextID
	f.visitors[v.ID] = &v
	f.nextID++
	return v.ID, nil
}

func (f *fakeVisitorStore) GetVisitorByID(_ context.Context, id int64) (*models.Visitor, error) {
	v, ok := f.visitors[id]
	if !ok {
		return nil, apperrors.ErrVisitorNotFound
	}
	copied := *v
	return &copied, nil
}

func (f *fakeVisitorStore) GetAllVisitors(_ context.Context, page, pageSize int, _ map[string]interface{}) ([]models.Visitor, int, error) {
	var all []models.Visitor
	for i := int64(1); i < f.nextID; i++ {
		if v, ok := f.visitors[i]; ok {
			all = append(all, *v)
		}
	}
	return all, len(all), nil
}

func (f *fakeVisitorStore) MarkExit(_ context.Context, id int64, exitTime time.Time) error {
	v, ok := f.visitors[id]
	if !ok {
		return apperrors.ErrVisitorNotFound
	}
	if v.ExitTime != nil {
		return fmt.Errorf("%w: visitor already checked out", apperrors.ErrAlreadyExited)
	}
	v.ExitTime = &exitTime
	return nil
}

func (f *fakeVisitorStore) DeleteVisitor(_ context.Context, id int64) error {
	if _, ok := f.visitors[id]; !ok {
		return apperrors.ErrVisitorNotFound
	}
	delete(f.visitors, id)
	return nil
}

type fakeRoomStore struct {
	rooms       map[int64]*models.Room
	assignments map[int64]int64 // studentID -> roomID
	nextID      int64
}

func newFakeRoomStore() *fakeRoomStore {
	return &fakeRoomStore{
		rooms:       map[int64]*models.Room{},
		assignments: map[int64]int64{},
		nextID:      1,
	}
}

func (f *fakeRoomStore) CreateRoom(_ context.Context, room *models.Room) (int64, error) {
	for _, existing := range f.rooms {
		if existing.RoomNumber == room.RoomNumber {
			return 0, apperrors.ErrRoomNumberExists
		}
	}
	r := *room
	r.ID = f.nextID
	f.rooms[r.ID] = &r
	f.nextID++
	return r.ID, nil
}

func (f *fakeRoomStore) GetRoomByID(_ context.Context, id int64) (*models.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRoomStore) GetAllRooms(_ context.Context, page, pageSize int, _ map[string]interface{}) ([]models.Room, int, error) {
	var all []models.Room
	for i := int64(1); i < f.nextID; i++ {
		if r, ok := f.rooms[i]; ok {
			all = append(all, *r)
		}
	}
	return all, len(all), nil
}

func (f *fakeRoomStore) UpdateRoom(_ context.Context, id int64, mutate func(room *models.Room) error) (*models.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}
	updated := *r
	if err := mutate(&updated); err != nil {
		return nil, err
	}
	if updated.CurrentOccupancy < 0 || updated.CurrentOccupancy > updated.Capacity {
		return nil, fmt.Errorf("%w: occupancy %d exceeds capacity %d",
			apperrors.ErrOccupancyExceeded, updated.CurrentOccupancy, updated.Capacity)
	}
	updated.Status = models.DeriveRoomStatus(updated.CurrentOccupancy, updated.Capacity, updated.Status)
	f.rooms[id] = &updated
	copied := updated
	return &copied, nil
}

func (f *fakeRoomStore) AssignStudent(_ context.Context, roomID, studentID int64) (*models.Room, error) {
	r, ok := f.rooms[roomID]
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}
	if r.Status == models.RoomMaintenance || r.Status == models.RoomReserved {
		return nil, fmt.Errorf("%w: room is %s", apperrors.ErrRoomUnavailable, r.Status)
	}
	if prev, ok := f.assignments[studentID]; ok && prev == roomID {
		copied := *r
		return &copied, nil
	}
	if r.CurrentOccupancy >= r.Capacity {
		return nil, fmt.Errorf("%w: room %s is at capacity", apperrors.ErrRoomFull, r.RoomNumber)
	}
	if prev, ok := f.assignments[studentID]; ok {
		if prevRoom, ok := f.rooms[prev]; ok && prevRoom.CurrentOccupancy > 0 {
			prevRoom.CurrentOccupancy--
			prevRoom.Status = models.DeriveRoomStatus(prevRoom.CurrentOccupancy, prevRoom.Capacity, prevRoom.Status)
		}
	}
	r.CurrentOccupancy++
	r.Status = models.DeriveRoomStatus(r.CurrentOccupancy, r.Capacity, r.Status)
	f.assignments[studentID] = roomID
	copied := *r
	return &copied, nil
}

func (f *fakeRoomStore) VacateStudent(_ context.Context, studentID int64) (*models.Room, error) {
	roomID, ok := f.assignments[studentID]
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrConflict, "Student has no room assigned")
	}
	delete(f.assignments, studentID)
	r, ok := f.rooms[roomID]
	if !ok {
		return nil, nil
	}
	if r.CurrentOccupancy > 0 {
		r.CurrentOccupancy--
	}
	r.Status = models.DeriveRoomStatus(r.CurrentOccupancy, r.Capacity, r.Status)
	copied := *r
	return &copied, nil
}

func (f *fakeRoomStore) DeleteRoom(_ context.Context, id int64) error {
	if _, ok := f.rooms[id]; !ok {
		return apperrors.ErrRoomNotFound
	}
	delete(f.rooms, id)
	return nil
}

type fakeFeeStore struct {
	payments map[int64]*models.FeePayment
	nextID   int64
	stats    *models.FeeStats
}

func newFakeFeeStore() *fakeFeeStore {
	return &fakeFeeStore{payments: map[int64]*models.FeePayment{}, nextID: 1}
}

func (f *fakeFeeStore) CreateFeePayment(_ context.Context, payment *models.FeePayment) (int64, error) {
	p := *payment
	p.ID = f.nextID
	p.Status = models.FeePending
	f.payments[p.ID] = &p
	f.nextID++
	return p.ID, nil
}

func (f *fakeFeeStore) GetFeePaymentByID(_ context.Context, id int64) (*models.FeePayment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, apperrors.ErrFeePaymentNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeFeeStore) GetAllFeePayments(_ context.Context, page, pageSize int, _ map[string]interface{}) ([]models.FeePayment, int, error) {
	var all []models.FeePayment
	for i := int64(1); i < f.nextID; i++ {
		if p, ok := f.payments[i]; ok {
			all = append(all, *p)
		}
	}
	return all, len(all), nil
}

func (f *fakeFeeStore) UpdateFeePayment(_ context.Context, id int64, fields map[string]interface{}) error {
	p, ok := f.payments[id]
	if !ok {
		return apperrors.ErrFeePaymentNotFound
	}
	if amount, ok := fields["amount"].(float64); ok {
		p.Amount = amount
	}
	if feeType, ok := fields["fee_type"].(string); ok {
		p.FeeType = feeType
	}
	if remarks, ok := fields["remarks"].(string); ok {
		p.Remarks = &remarks
	}
	return nil
}

func (f *fakeFeeStore) MarkPaid(_ context.Context, id int64, transactionID, paymentMethod string, paidDate time.Time) error {
	p, ok := f.payments[id]
	if !ok {
		return apperrors.ErrFeePaymentNotFound
	}
	if p.Status == models.FeePaid {
		return fmt.Errorf("%w: payment already settled", apperrors.ErrAlreadyPaid)
	}
	p.Status = models.FeePaid
	p.TransactionID = &transactionID
	p.PaymentMethod = &paymentMethod
	p.PaidDate = &paidDate
	return nil
}

func (f *fakeFeeStore) TransitionStatus(_ context.Context, id int64, to models.FeeStatus, remarks *string) error {
	p, ok := f.payments[id]
	if !ok {
		return apperrors.ErrFeePaymentNotFound
	}
	if err := lifecycle.ValidateFeeTransition(p.Status, to); err != nil {
		return err
	}
	p.Status = to
	if remarks != nil {
		p.Remarks = remarks
	}
	return nil
}

func (f *fakeFeeStore) DeleteFeePayment(_ context.Context, id int64) error {
	if _, ok := f.payments[id]; !ok {
		return apperrors.ErrFeePaymentNotFound
	}
	delete(f.payments, id)
	return nil
}

func (f *fakeFeeStore) GetStats(_ context.Context, studentID int64, academicYear string) (*models.FeeStats, error) {
	if f.stats != nil {
		return f.stats, nil
	}
	return &models.FeeStats{}, nil
}
