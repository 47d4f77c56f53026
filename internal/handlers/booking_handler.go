package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	ucBooking "github.com/BruksfildServices01/salon-booking/internal/usecase/booking"
)

type BookingHandler struct {
	createUC *ucBooking.CreateBooking
	getUC    *ucBooking.GetBooking
	updateUC *ucBooking.UpdateBooking
	deleteUC *ucBooking.DeleteBooking
	listUC   *ucBooking.ListBookings
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	getUC *ucBooking.GetBooking,
	updateUC *ucBooking.UpdateBooking,
	deleteUC *ucBooking.DeleteBooking,
	listUC *ucBooking.ListBookings,
) *BookingHandler {
	return &BookingHandler{
		createUC: createUC,
		getUC:    getUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		listUC:   listUC,
	}
}

// --------- Requests ---------

type CreateBookingRequest struct {
	SalonID   uint   `json:"salon_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
}

type UpdateBookingRequest struct {
	Date      *string `json:"date"`
	StartTime *string `json:"start_time"`
	ServiceID *uint   `json:"service_id"`
	Status    *string `json:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
}

// --------- Handlers ---------

func (h *BookingHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		UserID:    user.ID,
		SalonID:   req.SalonID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		StartTime: req.StartTime,
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.MessageData(c, http.StatusCreated, "Booking created successfully.", gin.H{"booking": b})
}

func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, gin.H{"bookings": bookings})
}

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := h.getUC.Execute(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, gin.H{"booking": b})
}

func (h *BookingHandler) Update(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	b, err := h.updateUC.Execute(c.Request.Context(), ucBooking.UpdateBookingInput{
		Actor:     actorFrom(c),
		BookingID: id,
		Date:      req.Date,
		StartTime: req.StartTime,
		ServiceID: req.ServiceID,
		Status:    req.Status,
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.MessageData(c, http.StatusOK, "Booking updated successfully.", gin.H{"booking": b})
}

func (h *BookingHandler) Delete(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), actorFrom(c), id); err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.Message(c, http.StatusOK, "Booking deleted successfully.")
}

// --------- Helpers ---------

func bookingID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid booking ID.")
		return 0, false
	}
	return uint(id), true
}

func actorFrom(c *gin.Context) ucBooking.Actor {
	user := middleware.CurrentUser(c)
	return ucBooking.Actor{ID: user.ID, Role: user.Role}
}
