package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/payments"
	ucBooking "github.com/BruksfildServices01/salon-booking/internal/usecase/booking"
)

type PaymentHandler struct {
	db    *gorm.DB
	svc   *payments.Service
	getUC *ucBooking.GetBooking
}

func NewPaymentHandler(db *gorm.DB, svc *payments.Service, getUC *ucBooking.GetBooking) *PaymentHandler {
	return &PaymentHandler{db: db, svc: svc, getUC: getUC}
}

// Pay opens a checkout preference for a booking the actor owns.
func (h *PaymentHandler) Pay(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := h.getUC.Execute(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	if b.PaymentStatus == "paid" {
		httperr.BadRequest(c, "already_paid", "Booking is already paid.")
		return
	}

	initPoint, err := h.svc.CreatePreference(c.Request.Context(), b)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, gin.H{"init_point": initPoint})
}

// Webhook receives Mercado Pago payment notifications. Unknown or
// in-process payments are acknowledged without action so the gateway
// stops retrying.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	paymentID, err := strconv.Atoi(c.Query("data.id"))
	if err != nil {
		c.Status(http.StatusOK)
		return
	}

	bookingID, status, actionable, err := h.svc.Resolve(c.Request.Context(), paymentID)
	if err != nil {
		_ = c.Error(err)
		c.Status(http.StatusOK)
		return
	}
	if !actionable {
		c.Status(http.StatusOK)
		return
	}

	if err := h.db.Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("payment_status", string(status)).Error; err != nil {
		_ = c.Error(err)
	}

	c.Status(http.StatusOK)
}
