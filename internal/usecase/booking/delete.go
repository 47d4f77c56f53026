package booking

import (
	"context"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/policy"
)

type DeleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteBooking {
	return &DeleteBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteBooking) Execute(
	ctx context.Context,
	actor Actor,
	bookingID uint,
) error {

	b, err := uc.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return httperr.ErrBusiness("booking_not_found")
	}

	if !policy.CanMutate(actor.ID, b.UserID, actor.Role) {
		return httperr.ErrBusiness("forbidden")
	}

	if err := uc.repo.DeleteBooking(ctx, b); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return nil
}
