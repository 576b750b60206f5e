// Package controllers contains the HTTP handlers. Controllers bind and
// validate requests, delegate to the service layer, and translate errors
// through the shared middleware error handler.
package controllers

import (
	"github.com/hostelease/hostelease/internal/app/services"
)

// Controllers holds all controller instances
type Controllers struct {
	Auth          *AuthController
	Rooms         *RoomController
	Complaints    *ComplaintController
	Visitors      *VisitorController
	Leaves        *LeaveController
	MessMenus     *MessMenuController
	Announcements *AnnouncementController
	FeePayments   *FeePaymentController
}

// NewControllers creates all controllers over the service layer
func NewControllers(svcs *services.Services) *Controllers {
	return &Controllers{
		Auth:          NewAuthController(svcs.Auth),
		Rooms:         NewRoomController(svcs.Rooms),
		Complaints:    NewComplaintController(svcs.Complaints),
		Visitors:      NewVisitorController(svcs.Visitors),
		Leaves:        NewLeaveController(svcs.Leaves),
		MessMenus:     NewMessMenuController(svcs.MessMenus),
		Announcements: NewAnnouncementController(svcs.Announcements),
		FeePayments:   NewFeePaymentController(svcs.FeePayments),
	}
}
