package payments

import (
	"context"
	"fmt"
	"strconv"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// Service wraps the Mercado Pago client: a checkout preference per
// booking, and payment lookup for webhook notifications.
type Service struct {
	preferences preference.Client
	payments    payment.Client
}

func NewService(accessToken string) (*Service, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &Service{
		preferences: preference.NewClient(cfg),
		payments:    payment.NewClient(cfg),
	}, nil
}

// CreatePreference opens a checkout for the booking's service snapshot
// price. The booking ID travels as the external reference so the
// webhook can find its way back.
func (s *Service) CreatePreference(ctx context.Context, b *models.Booking) (string, error) {
	resp, err := s.preferences.Create(ctx, preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:     b.ServiceName,
				Quantity:  1,
				UnitPrice: b.ServicePrice,
			},
		},
		ExternalReference: strconv.FormatUint(uint64(b.ID), 10),
	})
	if err != nil {
		return "", fmt.Errorf("create preference: %w", err)
	}

	return resp.InitPoint, nil
}

// Resolve fetches a payment and maps its state onto the booking
// payment status. The bool is false for states we do not act on
// (in-process, rejected, ...).
func (s *Service) Resolve(ctx context.Context, paymentID int) (bookingID uint, status domain.PaymentStatus, ok bool, err error) {
	resp, err := s.payments.Get(ctx, paymentID)
	if err != nil {
		return 0, "", false, fmt.Errorf("get payment: %w", err)
	}

	ref, err := strconv.ParseUint(resp.ExternalReference, 10, 64)
	if err != nil {
		return 0, "", false, fmt.Errorf("bad external reference %q", resp.ExternalReference)
	}

	switch resp.Status {
	case "approved":
		return uint(ref), domain.PaymentPaid, true, nil
	case "refunded", "charged_back":
		return uint(ref), domain.PaymentRefunded, true, nil
	default:
		return uint(ref), "", false, nil
	}
}
