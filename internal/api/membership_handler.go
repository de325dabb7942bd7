package api

import (
	"errors"
	"net/http"
	"time"

	"studiofit/booking-app/internal/domain"
	"studiofit/booking-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MembershipHandler holds the membership service dependency.
type MembershipHandler struct {
	membershipService service.MembershipService
}

// NewMembershipHandler creates a new MembershipHandler.
func NewMembershipHandler(membershipService service.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService}
}

// --- DTOs ---

// MonthlyPaymentRequest records a monthly membership payment for the caller.
type MonthlyPaymentRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
}

// PaymentResponse is the DTO for returning payment details.
type PaymentResponse struct {
	ID            string               `json:"id"`
	UserID        string               `json:"userId"`
	Amount        float64              `json:"amount"`
	PaymentMethod string               `json:"paymentMethod"`
	Status        domain.PaymentStatus `json:"status"`
	Reference     string               `json:"reference"`
	PaymentDate   time.Time            `json:"paymentDate"`
	ExpiresAt     time.Time            `json:"expiresAt"`
}

// UpdateMembershipRequest is the admin's direct membership update.
// ExpiryDate accepts RFC 3339 or a bare "YYYY-MM-DD" day.
type UpdateMembershipRequest struct {
	Status     domain.MembershipStatus `json:"status" binding:"required,oneof=active inactive"`
	ExpiryDate string                  `json:"expiryDate"`
}

func parseExpiryDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateAvailabilityRequest replaces a trainer's availability wholesale.
// The pointer distinguishes a missing field from an empty list.
type UpdateAvailabilityRequest struct {
	Availability *[]string `json:"availability" binding:"required"`
}

// MapPaymentToResponse converts a domain.Payment to PaymentResponse DTO.
func MapPaymentToResponse(payment *domain.Payment) PaymentResponse {
	if payment == nil {
		return PaymentResponse{}
	}
	return PaymentResponse{
		ID:            payment.ID.Hex(),
		UserID:        payment.UserID.Hex(),
		Amount:        payment.Amount,
		PaymentMethod: payment.PaymentMethod,
		Status:        payment.Status,
		Reference:     payment.Reference,
		PaymentDate:   payment.PaymentDate,
		ExpiresAt:     payment.ExpiresAt,
	}
}

// --- Handler Methods ---

// CreateMonthlyPayment handles POST /payments/monthly. Records the payment
// and activates the caller's membership for one calendar month.
func (h *MembershipHandler) CreateMonthlyPayment(c *gin.Context) {
	var req MonthlyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := getCurrentUser(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify caller")
		return
	}

	payment, err := h.membershipService.RecordMonthlyPayment(c.Request.Context(), user.ID, req.Amount, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentValidation):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not record payment")
		}
		return
	}

	c.JSON(http.StatusCreated, MapPaymentToResponse(payment))
}

// GetMyPayments handles GET /payments/mine.
func (h *MembershipHandler) GetMyPayments(c *gin.Context) {
	user, err := getCurrentUser(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify caller")
		return
	}

	payments, err := h.membershipService.GetPaymentsForUser(c.Request.Context(), user.ID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not load payments")
		return
	}

	responses := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = MapPaymentToResponse(&p)
	}
	c.JSON(http.StatusOK, responses)
}

// UpdateMembership handles PUT /memberships/:id (admin only).
func (h *MembershipHandler) UpdateMembership(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var req UpdateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	expiry, err := parseExpiryDate(req.ExpiryDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid expiry date format")
		return
	}

	user, err := h.membershipService.SetMembership(c.Request.Context(), userID, req.Status, expiry)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not update membership")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// BlockUser handles PUT /users/:id/block (admin only).
func (h *MembershipHandler) BlockUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	user, err := h.membershipService.BlockUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not block user")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UpdateAvailability handles PUT /trainers/:id/availability (trainer or
// admin). A trainer may only update their own availability.
func (h *MembershipHandler) UpdateAvailability(c *gin.Context) {
	trainerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format")
		return
	}

	caller, err := getCurrentUser(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify caller")
		return
	}
	if caller.IsTrainer() && caller.ID != trainerID {
		abortWithError(c, http.StatusForbidden, "Trainers may only update their own availability")
		return
	}

	var req UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: availability must be an array")
		return
	}

	user, err := h.membershipService.UpdateAvailability(c.Request.Context(), trainerID, *req.Availability)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not update availability")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}
