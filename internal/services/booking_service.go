package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/dto"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/models"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db, now: time.Now}
}

// Create stores a pending booking for userID. The model id is taken as given
// and is not resolved against the catalog.
func (s *BookingService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateBookingRequest) (*models.Booking, error) {
	required := []struct {
		name  string
		value *string
	}{
		{"userName", &req.UserName},
		{"company", &req.Company},
		{"event", &req.Event},
		{"eventDate", &req.EventDate},
		{"eventTime", &req.EventTime},
		{"modelId", &req.ModelID},
		{"modelName", &req.ModelName},
		{"modelCategory", &req.ModelCategory},
	}
	var missing []string
	for _, f := range required {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, validationf("Missing required fields: %s", strings.Join(missing, ", "))
	}

	category := models.Category(req.ModelCategory)
	if !category.Valid() {
		return nil, validationf("modelCategory must be Local or Foreign")
	}

	booking := models.Booking{
		UserID:        userID,
		UserName:      req.UserName,
		Company:       req.Company,
		Event:         req.Event,
		EventDate:     req.EventDate,
		EventTime:     req.EventTime,
		Location:      strings.TrimSpace(req.Location),
		Notes:         strings.TrimSpace(req.Notes),
		ModelID:       req.ModelID,
		ModelName:     req.ModelName,
		ModelCategory: category,
		Status:        models.StatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&booking).Error; err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	slog.Info("booking created", "action", "booking.create", "user_id", userID.String(), "booking_id", booking.ID.String(), "model_id", booking.ModelID)
	return &booking, nil
}

type bookingRow struct {
	models.Booking
	OwnerUsername *string
	OwnerEmail    *string
}

// List returns bookings newest first. Admins see every booking with the
// owning user joined in; other callers only see their own.
func (s *BookingService) List(ctx context.Context, sess *session.Session) ([]dto.BookingView, error) {
	db := s.db.WithContext(ctx)

	if !sess.IsAdmin {
		var bookings []models.Booking
		if err := db.Scopes(sess.Visible()).Order("created_at DESC").Find(&bookings).Error; err != nil {
			return nil, err
		}
		views := make([]dto.BookingView, len(bookings))
		for i, b := range bookings {
			views[i] = dto.BookingView{Booking: b}
		}
		return views, nil
	}

	var rows []bookingRow
	err := db.Table("bookings").
		Select("bookings.*, users.username AS owner_username, users.email AS owner_email").
		Joins("LEFT JOIN users ON users.id = bookings.user_id").
		Order("bookings.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make([]dto.BookingView, len(rows))
	for i, r := range rows {
		views[i] = dto.BookingView{Booking: r.Booking}
		if r.OwnerUsername != nil {
			owner := &dto.BookingOwner{Username: *r.OwnerUsername}
			if r.OwnerEmail != nil {
				owner.Email = *r.OwnerEmail
			}
			views[i].User = owner
		}
	}
	return views, nil
}

func (s *BookingService) Get(ctx context.Context, sess *session.Session, id string) (*models.Booking, error) {
	bookingID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidBookingID
	}

	var booking models.Booking
	if err := s.db.WithContext(ctx).First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !sess.CanAccess(booking.UserID) {
		return nil, ErrNotOwner
	}
	return &booking, nil
}

// UpdateStatus moves a booking to a new status. Only pending->confirmed,
// pending->cancelled, confirmed->completed and confirmed->cancelled are
// allowed. The write is conditional on the status read, so a concurrent
// transition makes this call fail rather than overwrite it.
func (s *BookingService) UpdateStatus(ctx context.Context, sess *session.Session, id string, status string) (*models.Booking, error) {
	next := models.BookingStatus(status)
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}

	booking, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if !booking.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, next)
	}

	now := s.now().UTC()
	result := s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ? AND status = ?", booking.ID, booking.Status).
		Updates(map[string]any{"status": next, "updated_at": now})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: booking changed concurrently", ErrInvalidTransition)
	}

	slog.Info("booking status updated", "action", "booking.status", "user_id", sess.UserID.String(),
		"booking_id", booking.ID.String(), "from", string(booking.Status), "to", string(next))

	booking.Status = next
	booking.UpdatedAt = now
	return booking, nil
}

// Delete hard-deletes the booking.
func (s *BookingService) Delete(ctx context.Context, sess *session.Session, id string) error {
	booking, err := s.Get(ctx, sess, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(booking).Error; err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	slog.Info("booking deleted", "action", "booking.delete", "user_id", sess.UserID.String(), "booking_id", booking.ID.String())
	return nil
}
