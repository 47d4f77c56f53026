package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

func reviewRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewReviewHandler(db)

	r := gin.New()
	salons := r.Group("/api/salons", asUser(db))
	{
		salons.POST("/:id/reviews", h.Add)
		salons.PUT("/:id/reviews", h.Update)
		salons.DELETE("/:id/reviews", h.Delete)
	}
	return r
}

func createSalon(t *testing.T, db *gorm.DB, owner *models.User) *models.Salon {
	s := models.Salon{
		OwnerID: owner.ID,
		Name:    "Studio Lumen",
		Address: "Rua Augusta 500",
		City:    "Sao Paulo",
	}
	require.NoError(t, db.Create(&s).Error)
	return &s
}

func asHeader(u *models.User) map[string]string {
	return map[string]string{"X-User-ID": fmt.Sprint(u.ID)}
}

func salonRating(t *testing.T, db *gorm.DB, id uint) float64 {
	var s models.Salon
	require.NoError(t, db.First(&s, id).Error)
	return s.Rating
}

func TestAddReview_RecomputesMeanRating(t *testing.T) {
	db := newTestDB(t)
	r := reviewRouter(db)

	owner := createUser(t, db, "Owner", "owner@example.com", models.RoleSalonOwner)
	salon := createSalon(t, db, owner)
	path := fmt.Sprintf("/api/salons/%d/reviews", salon.ID)

	for i, rating := range []int{5, 3, 4} {
		u := createUser(t, db, "Reviewer", fmt.Sprintf("rev%d@example.com", i), models.RoleClient)
		w := doJSON(t, r, "POST", path, gin.H{"rating": rating, "comment": "ok"}, asHeader(u))
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	assert.Equal(t, 4.0, salonRating(t, db, salon.ID))
}

func TestAddReview_SecondReviewBySameUserRejected(t *testing.T) {
	db := newTestDB(t)
	r := reviewRouter(db)

	owner := createUser(t, db, "Owner", "owner@example.com", models.RoleSalonOwner)
	salon := createSalon(t, db, owner)
	user := createUser(t, db, "Eve", "eve@example.com", models.RoleClient)
	path := fmt.Sprintf("/api/salons/%d/reviews", salon.ID)

	w := doJSON(t, r, "POST", path, gin.H{"rating": 5, "comment": "great"}, asHeader(user))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "POST", path, gin.H{"rating": 1, "comment": "changed my mind"}, asHeader(user))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already_reviewed")

	// the rejected insert left no trace
	var count int64
	db.Model(&models.Review{}).Where("salon_id = ?", salon.ID).Count(&count)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 5.0, salonRating(t, db, salon.ID))
}

func TestAddReview_SalonNotFound(t *testing.T) {
	db := newTestDB(t)
	r := reviewRouter(db)

	user := createUser(t, db, "Eve", "eve@example.com", models.RoleClient)

	w := doJSON(t, r, "POST", "/api/salons/999/reviews", gin.H{"rating": 5, "comment": "hi"}, asHeader(user))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "salon_not_found")
}

func TestUpdateReview_OnlyOwnReview(t *testing.T) {
	db := newTestDB(t)
	r := reviewRouter(db)

	owner := createUser(t, db, "Owner", "owner@example.com", models.RoleSalonOwner)
	salon := createSalon(t, db, owner)
	author := createUser(t, db, "Ana", "ana@example.com", models.RoleClient)
	admin := createUser(t, db, "Root", "root@example.com", models.RoleAdmin)
	path := fmt.Sprintf("/api/salons/%d/reviews", salon.ID)

	doJSON(t, r, "POST", path, gin.H{"rating": 2, "comment": "meh"}, asHeader(author))

	// the author can revise
	w := doJSON(t, r, "PUT", path, gin.H{"rating": 4, "comment": "improved"}, asHeader(author))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4.0, salonRating(t, db, salon.ID))

	// the lookup is keyed by reviewer, so even an admin without a
	// review of their own gets a 404
	w = doJSON(t, r, "PUT", path, gin.H{"rating": 1, "comment": "override"}, asHeader(admin))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "review_not_found")
	assert.Equal(t, 4.0, salonRating(t, db, salon.ID))
}

func TestDeleteReview_ResetsRatingWhenLastReviewGoes(t *testing.T) {
	db := newTestDB(t)
	r := reviewRouter(db)

	owner := createUser(t, db, "Owner", "owner@example.com", models.RoleSalonOwner)
	salon := createSalon(t, db, owner)
	user := createUser(t, db, "Ana", "ana@example.com", models.RoleClient)
	admin := createUser(t, db, "Root", "root@example.com", models.RoleAdmin)
	path := fmt.Sprintf("/api/salons/%d/reviews", salon.ID)

	doJSON(t, r, "POST", path, gin.H{"rating": 5, "comment": "top"}, asHeader(user))
	require.Equal(t, 5.0, salonRating(t, db, salon.ID))

	// admins hold no delete power over someone else's review
	w := doJSON(t, r, "DELETE", path, nil, asHeader(admin))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, "DELETE", path, nil, asHeader(user))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, salonRating(t, db, salon.ID))

	w = doJSON(t, r, "DELETE", path, nil, asHeader(user))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "review_not_found")
}
