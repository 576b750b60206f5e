// Package services contains the business logic layer. Each service exposes
// an interface consumed by the controllers and depends on narrow store
// interfaces satisfied by the repositories, so unit tests can swap in fakes.
package services

import (
	"github.com/hostelease/hostelease/internal/app/repositories"
	"github.com/hostelease/hostelease/internal/pkg/auth"
)

// Services holds all service instances
type Services struct {
	Auth          AuthService
	Rooms         RoomService
	Complaints    ComplaintService
	Visitors      VisitorService
	Leaves        LeaveService
	MessMenus     MessMenuService
	Announcements AnnouncementService
	FeePayments   FeePaymentService
}

// NewServices creates all services over the repository layer
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService) *Services {
	return &Services{
		Auth:          NewAuthService(repos.Users, jwtService),
		Rooms:         NewRoomService(repos.Rooms),
		Complaints:    NewComplaintService(repos.Complaints),
		Visitors:      NewVisitorService(repos.Visitors),
		Leaves:        NewLeaveService(repos.Leaves),
		MessMenus:     NewMessMenuService(repos.MessMenus),
		Announcements: NewAnnouncementService(repos.Announcements),
		FeePayments:   NewFeePaymentService(repos.FeePayments),
	}
}
