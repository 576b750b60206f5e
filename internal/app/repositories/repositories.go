// Package repositories contains the database access layer. Each repository
// owns one table, builds its queries with squirrel against a shared pgx
// pool, and returns typed errors from the apperrors package.
package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all repository instances
type Repositories struct {
	Users         *UserRepository
	Rooms         *RoomRepository
	Complaints    *ComplaintRepository
	Visitors      *VisitorRepository
	Leaves        *LeaveRepository
	MessMenus     *MessMenuRepository
	Announcements *AnnouncementRepository
	FeePayments   *FeePaymentRepository
}

// NewRepositories creates all repositories sharing a single connection pool
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	users := NewUserRepository(pool)
	return &Repositories{
		Users:         users,
		Rooms:         NewRoomRepository(pool, users),
		Complaints:    NewComplaintRepository(pool),
		Visitors:      NewVisitorRepository(pool),
		Leaves:        NewLeaveRepository(pool),
		MessMenus:     NewMessMenuRepository(pool),
		Announcements: NewAnnouncementRepository(pool),
		FeePayments:   NewFeePaymentRepository(pool),
	}
}
