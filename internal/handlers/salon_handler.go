package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/policy"
)

type SalonHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewSalonHandler(db *gorm.DB, audit *audit.Dispatcher) *SalonHandler {
	return &SalonHandler{db: db, audit: audit}
}

// --------- Requests ---------

type ServiceInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	DurationMin int     `json:"duration_min" binding:"required,gt=0"`
	Image       string  `json:"image"`
}

type OperatingHoursInput struct {
	Weekday int    `json:"weekday" binding:"min=0,max=6"`
	Open    string `json:"open" binding:"required"`
	Close   string `json:"close" binding:"required"`
}

type LocationInput struct {
	Address string   `json:"address" binding:"required"`
	City    string   `json:"city" binding:"required"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
}

type CreateSalonRequest struct {
	Name           string                `json:"name" binding:"required"`
	Location       LocationInput         `json:"location" binding:"required"`
	Services       []ServiceInput        `json:"services" binding:"required,min=1,dive"`
	OperatingHours []OperatingHoursInput `json:"operating_hours" binding:"dive"`
	Images         []string              `json:"images"`
}

type UpdateSalonRequest struct {
	Name           *string               `json:"name"`
	Location       *LocationInput        `json:"location"`
	Services       []ServiceInput        `json:"services" binding:"omitempty,dive"`
	OperatingHours []OperatingHoursInput `json:"operating_hours" binding:"omitempty,dive"`
	Images         []string              `json:"images"`
}

// --------- Handlers ---------

func (h *SalonHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := h.db.Model(&models.Salon{})

	if city := c.Query("city"); city != "" {
		query = query.Where("city ILIKE ?", "%"+city+"%")
	}
	if service := c.Query("service"); service != "" {
		query = query.Where(
			"id IN (?)",
			h.db.Model(&models.SalonService{}).
				Select("salon_id").
				Where("name ILIKE ?", "%"+service+"%"),
		)
	}
	if rating := c.Query("rating"); rating != "" {
		if minRating, err := strconv.ParseFloat(rating, 64); err == nil {
			query = query.Where("rating >= ?", minRating)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		httperr.Handle(c, err)
		return
	}

	var salons []models.Salon
	if err := query.
		Preload("Owner").
		Preload("Services").
		Preload("OperatingHours").
		Preload("Images").
		Order("rating DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&salons).Error; err != nil {
		httperr.Handle(c, err)
		return
	}

	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}

	httpresp.List(c, gin.H{"salons": salons}, httpresp.Pagination{
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	})
}

func (h *SalonHandler) Get(c *gin.Context) {
	salon, err := h.loadSalon(c)
	if err != nil {
		return
	}

	httpresp.OK(c, gin.H{"salon": salon})
}

func (h *SalonHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req CreateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	salon := models.Salon{
		Name:    req.Name,
		OwnerID: user.ID,
		Address: req.Location.Address,
		City:    req.Location.City,
		Lat:     req.Location.Lat,
		Lng:     req.Location.Lng,
	}
	salon.Services = buildServices(req.Services)
	salon.OperatingHours = buildHours(req.OperatingHours)
	salon.Images = buildImages(req.Images)

	if err := h.db.Create(&salon).Error; err != nil {
		httperr.Handle(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "salon_created",
		Entity:   "salon",
		EntityID: &salon.ID,
	})

	httpresp.Created(c, gin.H{"salon": salon})
}

func (h *SalonHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	salon, err := h.loadSalon(c)
	if err != nil {
		return
	}

	if !policy.CanMutate(user.ID, salon.OwnerID, user.Role) {
		httperr.Forbidden(c, "forbidden", "You are not authorized to update this salon.")
		return
	}

	var req UpdateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		salon.Name = *req.Name
	}
	if req.Location != nil {
		salon.Address = req.Location.Address
		salon.City = req.Location.City
		salon.Lat = req.Location.Lat
		salon.Lng = req.Location.Lng
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if req.Services != nil {
			if err := tx.Where("salon_id = ?", salon.ID).Delete(&models.SalonService{}).Error; err != nil {
				return err
			}
			salon.Services = buildServices(req.Services)
		}
		if req.OperatingHours != nil {
			if err := tx.Where("salon_id = ?", salon.ID).Delete(&models.OperatingHours{}).Error; err != nil {
				return err
			}
			salon.OperatingHours = buildHours(req.OperatingHours)
		}
		if req.Images != nil {
			if err := tx.Where("salon_id = ?", salon.ID).Delete(&models.SalonImage{}).Error; err != nil {
				return err
			}
			salon.Images = buildImages(req.Images)
		}
		return tx.Save(salon).Error
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "salon_updated",
		Entity:   "salon",
		EntityID: &salon.ID,
	})

	httpresp.MessageData(c, http.StatusOK, "Salon updated successfully.", gin.H{"salon": salon})
}

func (h *SalonHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	salon, err := h.loadSalon(c)
	if err != nil {
		return
	}

	if !policy.CanMutate(user.ID, salon.OwnerID, user.Role) {
		httperr.Forbidden(c, "forbidden", "You are not authorized to delete this salon.")
		return
	}

	if err := h.db.Select("Services", "OperatingHours", "Images", "Reviews").Delete(salon).Error; err != nil {
		httperr.Handle(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "salon_deleted",
		Entity:   "salon",
		EntityID: &salon.ID,
	})

	httpresp.Message(c, http.StatusOK, "Salon deleted successfully.")
}

// --------- Helpers ---------

// loadSalon resolves :id and answers 404 itself when absent.
func (h *SalonHandler) loadSalon(c *gin.Context) (*models.Salon, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid salon ID.")
		return nil, err
	}

	var salon models.Salon
	if err := h.db.
		Preload("Owner").
		Preload("Services").
		Preload("OperatingHours").
		Preload("Images").
		Preload("Reviews").
		Preload("Reviews.User").
		First(&salon, uint(id)).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return nil, err
	}

	return &salon, nil
}

func buildServices(in []ServiceInput) []models.SalonService {
	out := make([]models.SalonService, 0, len(in))
	for _, s := range in {
		out = append(out, models.SalonService{
			Name:        s.Name,
			Description: s.Description,
			Price:       s.Price,
			DurationMin: s.DurationMin,
			Image:       s.Image,
		})
	}
	return out
}

func buildHours(in []OperatingHoursInput) []models.OperatingHours {
	out := make([]models.OperatingHours, 0, len(in))
	for _, oh := range in {
		out = append(out, models.OperatingHours{
			Weekday: oh.Weekday,
			Open:    oh.Open,
			Close:   oh.Close,
		})
	}
	return out
}

func buildImages(in []string) []models.SalonImage {
	out := make([]models.SalonImage, 0, len(in))
	for _, url := range in {
		out = append(out, models.SalonImage{URL: url})
	}
	return out
}
