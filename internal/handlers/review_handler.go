package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domainsalon "github.com/BruksfildServices01/salon-booking/internal/domain/salon"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// Review mutations require the reviewer identity; admins get no
// override here, unlike salons and bookings.
type ReviewHandler struct {
	db *gorm.DB
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

func (h *ReviewHandler) Add(c *gin.Context) {
	user := middleware.CurrentUser(c)

	salonID, ok := h.salonID(c)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var salon models.Salon
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&salon, salonID).Error; err != nil {
			return err
		}

		var count int64
		tx.Model(&models.Review{}).
			Where("salon_id = ? AND user_id = ?", salonID, user.ID).
			Count(&count)
		if count > 0 {
			return httperr.ErrBusiness("already_reviewed")
		}

		review := models.Review{
			SalonID: salonID,
			UserID:  user.ID,
			Rating:  req.Rating,
			Comment: req.Comment,
		}
		// The composite unique index backs up the pre-check under
		// concurrent inserts; 23505 surfaces as a Conflict.
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		return recomputeRating(tx, &salon)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "salon_not_found", "Salon not found.")
			return
		}
		if httperr.IsBusiness(err, "already_reviewed") {
			httperr.Conflict(c, "already_reviewed", "You have already reviewed this salon.")
			return
		}
		httperr.Handle(c, err)
		return
	}

	h.respondWithReviews(c, http.StatusCreated, "Review added successfully.", &salon)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	salonID, ok := h.salonID(c)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var salon models.Salon
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&salon, salonID).Error; err != nil {
			return err
		}

		var review models.Review
		if err := tx.
			Where("salon_id = ? AND user_id = ?", salonID, user.ID).
			First(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("review_not_found")
			}
			return err
		}

		review.Rating = req.Rating
		review.Comment = req.Comment
		if err := tx.Save(&review).Error; err != nil {
			return err
		}

		return recomputeRating(tx, &salon)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "salon_not_found", "Salon not found.")
			return
		}
		if httperr.IsBusiness(err, "review_not_found") {
			httperr.NotFound(c, "review_not_found", "Review not found.")
			return
		}
		httperr.Handle(c, err)
		return
	}

	h.respondWithReviews(c, http.StatusOK, "Review updated successfully.", &salon)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	salonID, ok := h.salonID(c)
	if !ok {
		return
	}

	var salon models.Salon
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&salon, salonID).Error; err != nil {
			return err
		}

		res := tx.Where("salon_id = ? AND user_id = ?", salonID, user.ID).
			Delete(&models.Review{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("review_not_found")
		}

		return recomputeRating(tx, &salon)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "salon_not_found", "Salon not found.")
			return
		}
		if httperr.IsBusiness(err, "review_not_found") {
			httperr.NotFound(c, "review_not_found", "Review not found.")
			return
		}
		httperr.Handle(c, err)
		return
	}

	h.respondWithReviews(c, http.StatusOK, "Review deleted successfully.", &salon)
}

// --------- Helpers ---------

func (h *ReviewHandler) salonID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid salon ID.")
		return 0, false
	}
	return uint(id), true
}

// recomputeRating refreshes the derived mean inside the caller's
// transaction, so the stored rating is never stale relative to the
// stored review set.
func recomputeRating(tx *gorm.DB, salon *models.Salon) error {
	var reviews []models.Review
	if err := tx.Where("salon_id = ?", salon.ID).Find(&reviews).Error; err != nil {
		return err
	}

	salon.Rating = domainsalon.MeanRating(reviews)
	return tx.Model(salon).Update("rating", salon.Rating).Error
}

func (h *ReviewHandler) respondWithReviews(c *gin.Context, status int, message string, salon *models.Salon) {
	var reviews []models.Review
	if err := h.db.Preload("User").Where("salon_id = ?", salon.ID).Find(&reviews).Error; err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.MessageData(c, status, message, gin.H{
		"rating":  salon.Rating,
		"reviews": reviews,
	})
}
