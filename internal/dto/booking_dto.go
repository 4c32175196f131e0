package dto

import "github.com/ahmetcoskunkizilkaya/talent-booking/internal/models"

type CreateBookingRequest struct {
	UserName      string `json:"userName"`
	Company       string `json:"company"`
	Event         string `json:"event"`
	EventDate     string `json:"eventDate"`
	EventTime     string `json:"eventTime"`
	Location      string `json:"location"`
	Notes         string `json:"notes"`
	ModelID       string `json:"modelId"`
	ModelName     string `json:"modelName"`
	ModelCategory string `json:"modelCategory"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

// BookingOwner is the joined user for admin listings; nil when the user
// has since been deleted.
type BookingOwner struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type BookingView struct {
	models.Booking
	User *BookingOwner `json:"user"`
}

type BookingResponse struct {
	Success bool            `json:"success"`
	Booking *models.Booking `json:"booking"`
}

type BookingListResponse struct {
	Success  bool          `json:"success"`
	Bookings []BookingView `json:"bookings"`
}
