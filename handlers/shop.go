package handlers

import (
	"net/http"

	"sparklewash/models"
	"sparklewash/services/shop"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ShopHandler serves the shop catalog and owner schedule management.
type ShopHandler struct {
	Service shop.ShopService
	Logger  *zap.Logger
}

func NewShopHandler(service shop.ShopService, logger *zap.Logger) *ShopHandler {
	return &ShopHandler{Service: service, Logger: logger}
}

func (h *ShopHandler) GetShop(c *gin.Context) {
	shopID := c.Param("shopID")

	result, err := h.Service.GetShop(c.Request.Context(), shopID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shop": result})
}

// GetShopServices lists a shop's services, optionally filtered to those
// offered for the given vehicle category.
func (h *ShopHandler) GetShopServices(c *gin.Context) {
	shopID := c.Param("shopID")
	vehicle := c.Query("vehicleCategory")

	services, err := h.Service.GetShopServices(c.Request.Context(), shopID, vehicle)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

type publishRangeInput struct {
	ID       string `json:"id"`
	From     string `json:"from" binding:"required"`
	To       string `json:"to" binding:"required"`
	Capacity *int   `json:"capacity,omitempty"`
	// Pointer so an omitted flag defaults to an active range instead of
	// silently publishing a schedule that yields no slots.
	Active *bool `json:"active,omitempty"`
}

type publishScheduleInput struct {
	Date       string              `json:"date" binding:"required"`
	FreeRanges []publishRangeInput `json:"freeRanges" binding:"required"`
}

// PublishSchedule upserts the free ranges for one shop and date. Owner
// only.
func (h *ShopHandler) PublishSchedule(c *gin.Context) {
	ownerID := c.GetString("userID")
	var input publishScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	schedule := models.Schedule{
		ShopID: c.Param("shopID"),
		Date:   input.Date,
	}
	for _, fr := range input.FreeRanges {
		id := fr.ID
		if id == "" {
			id = uuid.New().String()
		}
		active := true
		if fr.Active != nil {
			active = *fr.Active
		}
		schedule.FreeRanges = append(schedule.FreeRanges, models.FreeRange{
			ID:       id,
			From:     fr.From,
			To:       fr.To,
			Capacity: fr.Capacity,
			Active:   active,
		})
	}

	if err := h.Service.PublishSchedule(c.Request.Context(), ownerID, &schedule); err != nil {
		h.Logger.Warn("failed to publish schedule",
			zap.String("shopID", schedule.ShopID),
			zap.String("date", schedule.Date),
			zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

func (h *ShopHandler) GetSchedule(c *gin.Context) {
	shopID := c.Param("shopID")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	schedule, err := h.Service.GetSchedule(c.Request.Context(), shopID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch schedule"})
		return
	}
	if schedule == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no schedule published for this date"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

// DeleteRange removes one free range from a published schedule.
func (h *ShopHandler) DeleteRange(c *gin.Context) {
	ownerID := c.GetString("userID")
	shopID := c.Param("shopID")
	date := c.Query("date")
	rangeID := c.Param("rangeID")

	if err := h.Service.DeleteRange(c.Request.Context(), ownerID, shopID, date, rangeID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": rangeID})
}
