package handlers

import (
	"errors"
	"net/http"

	bookingRepo "sparklewash/database/repository/booking"
	"sparklewash/models"
	"sparklewash/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking flow endpoints.
type BookingHandler struct {
	Sessions     *booking.SessionStore
	Availability *booking.AvailabilityService
	Orchestrator *booking.Orchestrator
	Bookings     bookingRepo.BookingRepository
	Logger       *zap.Logger
}

func NewBookingHandler(
	sessions *booking.SessionStore,
	availability *booking.AvailabilityService,
	orchestrator *booking.Orchestrator,
	bookings bookingRepo.BookingRepository,
	logger *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		Sessions:     sessions,
		Availability: availability,
		Orchestrator: orchestrator,
		Bookings:     bookings,
		Logger:       logger,
	}
}

// GetAvailability returns the bookable slots for a shop and date. A shop
// with no published schedule gets the default grid, never an error.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	var input struct {
		ShopID string `json:"shopId" binding:"required"`
		Date   string `json:"bookingDate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	groups, err := h.Availability.AvailableSlots(c.Request.Context(), input.ShopID, input.Date)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to fetch availability, try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": groups})
}

// StartSession creates a new booking draft for the caller.
func (h *BookingHandler) StartSession(c *gin.Context) {
	userID := c.GetString("userID")
	var input struct {
		ShopID          string `json:"shopId" binding:"required"`
		VehicleCategory string `json:"vehicleCategory"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	draft, err := h.Sessions.Create(c.Request.Context(), userID, input.ShopID, input.VehicleCategory)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start booking session", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionID": draft.SessionID, "draft": draft})
}

type updateSessionInput struct {
	VehicleCategory *string                 `json:"vehicleCategory,omitempty"`
	ToggleService   *models.SelectedService `json:"toggleService,omitempty"`
	Date            *string                 `json:"date,omitempty"`
	Time            *string                 `json:"time,omitempty"`
	FulfillmentMode *string                 `json:"fulfillmentMode,omitempty"`
}

// UpdateSession applies draft transitions: vehicle change, service
// toggle, date/time choice, fulfillment mode. The transition rules run
// server-side so reset semantics cannot be bypassed.
func (h *BookingHandler) UpdateSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input updateSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	draft, err := h.Sessions.Get(ctx, sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found or expired"})
		return
	}
	if draft.UserID != c.GetString("userID") {
		c.JSON(http.StatusForbidden, gin.H{"error": "session does not belong to this user"})
		return
	}

	if input.VehicleCategory != nil {
		booking.SetVehicleCategory(draft, *input.VehicleCategory)
	}
	if input.ToggleService != nil {
		booking.ToggleService(draft, *input.ToggleService)
	}
	if input.Date != nil {
		booking.SetDate(draft, *input.Date)
	}
	if input.Time != nil {
		if _, err := booking.ParseClock(*input.Time); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid time, expected 24-hour HH:MM"})
			return
		}
		booking.SetTime(draft, *input.Time)
	}
	if input.FulfillmentMode != nil {
		booking.SetFulfillmentMode(draft, *input.FulfillmentMode)
	}

	if err := h.Sessions.Save(ctx, draft); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update booking session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"draft":    draft,
		"totals":   booking.ComputeTotals(draft),
		"bookable": booking.IsBookable(draft),
	})
}

// GetSessionSlots computes availability for the session's current date,
// guarded by the schedule generation token: results for an abandoned
// selection come back 409 and must be discarded by the client.
func (h *BookingHandler) GetSessionSlots(c *gin.Context) {
	sessionID := c.Param("sessionID")

	groups, err := h.Availability.FetchForSession(c.Request.Context(), sessionID)
	if err != nil {
		h.writeFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": groups})
}

// Review opens the confirmation view.
func (h *BookingHandler) Review(c *gin.Context) {
	sessionID := c.Param("sessionID")

	draft, err := h.Orchestrator.Review(c.Request.Context(), sessionID)
	if err != nil {
		h.writeFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"draft":  draft,
		"totals": booking.ComputeTotals(draft),
	})
}

// CreateOrder confirms the review and opens the gateway order.
func (h *BookingHandler) CreateOrder(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		PaymentOption string `json:"paymentOption" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	order, err := h.Orchestrator.CreateOrder(c.Request.Context(), sessionID, input.PaymentOption)
	if err != nil {
		h.writeFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// VerifyPayment consumes the gateway widget's result: a dismissal
// preserves the draft, a reported success is verified and persisted.
func (h *BookingHandler) VerifyPayment(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var result models.GatewayResult
	if err := c.ShouldBindJSON(&result); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	bookingRec, err := h.Orchestrator.HandleGatewayResult(c.Request.Context(), sessionID, result)
	if err != nil {
		h.writeFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": bookingRec})
}

// CancelSession abandons the flow; refused once a charge is in flight.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	sessionID := c.Param("sessionID")

	if err := h.Orchestrator.Cancel(c.Request.Context(), sessionID); err != nil {
		h.writeFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

// MyBookings returns the caller's booking history, newest first.
func (h *BookingHandler) MyBookings(c *gin.Context) {
	userID := c.GetString("userID")

	bookings, err := h.Bookings.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bookings", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// writeFlowError maps the booking error taxonomy onto HTTP responses.
// Post-payment failures carry the identifiers support needs.
func (h *BookingHandler) writeFlowError(c *gin.Context, err error) {
	var validationErr *booking.ValidationError
	var transientErr *booking.TransientNetworkError
	var verificationErr *booking.VerificationError
	var postPaymentErr *booking.PostPaymentBookingError
	var capacityErr *booking.CapacityConflictError

	switch {
	case errors.Is(err, booking.ErrPaymentDismissed):
		c.JSON(http.StatusOK, gin.H{"dismissed": true})
	case errors.Is(err, booking.ErrStaleFetch):
		c.JSON(http.StatusConflict, gin.H{"error": "stale availability result", "code": "staleFetch"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message, "code": "validation"})
	case errors.As(err, &capacityErr):
		c.JSON(http.StatusConflict, gin.H{
			"error": "the selected slot is no longer available, please pick another",
			"code":  "capacityConflict",
		})
	case errors.As(err, &verificationErr):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":     "payment could not be verified; contact support with these identifiers",
			"code":      "verificationFailed",
			"orderId":   verificationErr.OrderID,
			"paymentId": verificationErr.PaymentID,
		})
	case errors.As(err, &postPaymentErr):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":     "payment succeeded but the booking could not be created; contact support with these identifiers",
			"code":      "bookingFailed",
			"orderId":   postPaymentErr.OrderID,
			"paymentId": postPaymentErr.PaymentID,
		})
	case errors.As(err, &transientErr):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporary failure, please try again", "code": "transient"})
	default:
		h.Logger.Warn("booking flow error", zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	}
}
