package booking

import (
	"context"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/policy"
)

type Actor struct {
	ID   uint
	Role string
}

type UpdateBookingInput struct {
	Actor     Actor
	BookingID uint

	Date      *string
	StartTime *string
	ServiceID *uint
	Status    *string
}

type UpdateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateBooking {
	return &UpdateBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateBooking) Execute(
	ctx context.Context,
	in UpdateBookingInput,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByID(ctx, in.BookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if !policy.CanMutate(in.Actor.ID, b.UserID, in.Actor.Role) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	if in.Status != nil {
		if err := domain.CanTransition(domain.Status(b.Status), domain.Status(*in.Status)); err != nil {
			return nil, err
		}
		b.Status = *in.Status
	}

	reschedule := in.Date != nil || in.StartTime != nil || in.ServiceID != nil
	if reschedule {
		if err := domain.CanReschedule(domain.Status(b.Status)); err != nil {
			return nil, err
		}
	}

	if in.ServiceID != nil {
		svc, err := uc.repo.GetSalonService(ctx, b.SalonID, *in.ServiceID)
		if err != nil {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		// re-snapshot
		b.ServiceID = svc.ID
		b.ServiceName = svc.Name
		b.ServicePrice = svc.Price
		b.ServiceDuration = svc.DurationMin
	}

	if in.Date != nil {
		date, err := domain.ParseDate(*in.Date)
		if err != nil {
			return nil, err
		}
		b.Date = date
	}

	if in.StartTime != nil {
		b.StartTime = *in.StartTime
	}
	if in.StartTime != nil || in.ServiceID != nil {
		end, err := domain.EndTime(b.StartTime, b.ServiceDuration)
		if err != nil {
			return nil, err
		}
		b.EndTime = end
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.Actor.ID,
		Action:   "booking_updated",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
