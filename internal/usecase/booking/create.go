package booking

import (
	"context"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	UserID uint

	SalonID   uint
	ServiceID uint

	Date      string
	StartTime string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	if _, err := uc.repo.GetSalonByID(ctx, in.SalonID); err != nil {
		return nil, httperr.ErrBusiness("salon_not_found")
	}

	svc, err := uc.repo.GetSalonService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}

	end, err := domain.EndTime(in.StartTime, svc.DurationMin)
	if err != nil {
		return nil, err
	}

	// Service fields are copied, not referenced: later edits to the
	// salon's service list never change this booking.
	b := &models.Booking{
		UserID:  in.UserID,
		SalonID: in.SalonID,

		ServiceID:       svc.ID,
		ServiceName:     svc.Name,
		ServicePrice:    svc.Price,
		ServiceDuration: svc.DurationMin,

		Date:      date,
		StartTime: in.StartTime,
		EndTime:   end,

		Status:        string(domain.InitialStatus()),
		PaymentStatus: string(domain.InitialPaymentStatus()),
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
