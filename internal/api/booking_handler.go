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

// BookingHandler holds the booking service dependency.
type BookingHandler struct {
	bookingService service.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// --- DTOs ---

// CreateBookingRequest books the authenticated user into a class.
type CreateBookingRequest struct {
	ClassID string `json:"classId" binding:"required"`
}

// BookingResponse is the DTO for returning booking details.
type BookingResponse struct {
	ID       string               `json:"id"`
	ClassID  string               `json:"classId"`
	UserID   string               `json:"userId"`
	Status   domain.BookingStatus `json:"status"`
	BookedAt time.Time            `json:"bookedAt"`
}

// MapBookingToResponse converts a domain.Booking to BookingResponse DTO.
func MapBookingToResponse(booking *domain.Booking) BookingResponse {
	if booking == nil {
		return BookingResponse{}
	}
	return BookingResponse{
		ID:       booking.ID.Hex(),
		ClassID:  booking.ClassID.Hex(),
		UserID:   booking.UserID.Hex(),
		Status:   booking.Status,
		BookedAt: booking.BookedAt,
	}
}

// --- Handler Methods ---

// CreateBooking handles POST /bookings. The booking user is the
// authenticated subject.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	classID, err := primitive.ObjectIDFromHex(req.ClassID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid class ID format")
		return
	}

	user, err := getCurrentUser(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify caller")
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), user.ID, classID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateBooking):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrClassNotFound), errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not create booking")
		}
		return
	}

	c.JSON(http.StatusCreated, MapBookingToResponse(booking))
}

// GetMyBookings handles GET /bookings/mine.
func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	user, err := getCurrentUser(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify caller")
		return
	}

	bookings, err := h.bookingService.GetBookingsForUser(c.Request.Context(), user.ID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not load bookings")
		return
	}

	responses := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		responses[i] = MapBookingToResponse(&b)
	}
	c.JSON(http.StatusOK, responses)
}

// GetTrainerMembers handles GET /trainers/:id/members (trainer or admin).
// A trainer may only view their own roster; admins may view any.
func (h *BookingHandler) GetTrainerMembers(c *gin.Context) {
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
		abortWithError(c, http.StatusForbidden, "Trainers may only view their own members")
		return
	}

	roster, err := h.bookingService.GetTrainerRoster(c.Request.Context(), trainerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrainerNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotATrainer):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not load members")
		}
		return
	}

	c.JSON(http.StatusOK, roster)
}
