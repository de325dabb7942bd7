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

// ClassHandler holds the class service dependency.
type ClassHandler struct {
	classService service.ClassService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateClassRequest defines the expected JSON for creating a class.
type CreateClassRequest struct {
	Name            string    `json:"name" binding:"required"`
	Description     string    `json:"description"`
	Date            time.Time `json:"date" binding:"required"`
	Time            string    `json:"time" binding:"required"` // "HH:MM"
	DurationMinutes int       `json:"durationMinutes" binding:"required,gt=0"`
	MaxParticipants int       `json:"maxParticipants" binding:"required,gt=0"`
	TrainerID       string    `json:"trainerId" binding:"required"`
}

// UpdateClassRequest allows partial updates; trainerId is re-validated when present.
type UpdateClassRequest struct {
	Name            string    `json:"name" binding:"required"`
	Description     string    `json:"description"`
	Date            time.Time `json:"date"`
	Time            string    `json:"time"`
	DurationMinutes int       `json:"durationMinutes"`
	MaxParticipants int       `json:"maxParticipants"`
	TrainerID       string    `json:"trainerId"`
}

// ClassResponse is the DTO for returning class details.
type ClassResponse struct {
	ID              string    `json:"id"`
	TrainerID       string    `json:"trainerId"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Date            time.Time `json:"date"`
	Time            string    `json:"time"`
	DurationMinutes int       `json:"durationMinutes"`
	MaxParticipants int       `json:"maxParticipants"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// MapClassToResponse converts a domain.Class to ClassResponse DTO.
func MapClassToResponse(class *domain.Class) ClassResponse {
	if class == nil {
		return ClassResponse{}
	}
	return ClassResponse{
		ID:              class.ID.Hex(),
		TrainerID:       class.TrainerID.Hex(),
		Name:            class.Name,
		Description:     class.Description,
		Date:            class.Date,
		Time:            class.Time,
		DurationMinutes: class.DurationMinutes,
		MaxParticipants: class.MaxParticipants,
		CreatedAt:       class.CreatedAt,
		UpdatedAt:       class.UpdatedAt,
	}
}

// MapClassesToResponse converts a slice of domain.Class to response DTOs.
func MapClassesToResponse(classes []domain.Class) []ClassResponse {
	responses := make([]ClassResponse, len(classes))
	for i, class := range classes {
		responses[i] = MapClassToResponse(&class)
	}
	return responses
}

// --- Handler Methods ---

// CreateClass handles POST /classes (trainer or admin).
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, err := primitive.ObjectIDFromHex(req.TrainerID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format")
		return
	}

	class, err := h.classService.CreateClass(c.Request.Context(), service.ClassInput{
		Name:            req.Name,
		Description:     req.Description,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
		MaxParticipants: req.MaxParticipants,
		TrainerID:       trainerID,
	})
	if err != nil {
		handleClassError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapClassToResponse(class))
}

// UpdateClass handles PUT /classes/:id (trainer or admin).
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	classID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid class ID format")
		return
	}

	var req UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	input := service.ClassInput{
		Name:            req.Name,
		Description:     req.Description,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
		MaxParticipants: req.MaxParticipants,
	}
	if req.TrainerID != "" {
		trainerID, err := primitive.ObjectIDFromHex(req.TrainerID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format")
			return
		}
		input.TrainerID = trainerID
	}

	class, err := h.classService.UpdateClass(c.Request.Context(), classID, input)
	if err != nil {
		handleClassError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapClassToResponse(class))
}

// DeleteClass handles DELETE /classes/:id (trainer or admin). Refuses
// while any booking references the class.
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	classID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid class ID format")
		return
	}

	if err := h.classService.DeleteClass(c.Request.Context(), classID); err != nil {
		handleClassError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetSchedule handles GET /classes/schedule.
func (h *ClassHandler) GetSchedule(c *gin.Context) {
	classes, err := h.classService.GetSchedule(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not load schedule")
		return
	}
	c.JSON(http.StatusOK, MapClassesToResponse(classes))
}

func handleClassError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTrainerNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotATrainer):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrClassValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrClassHasBookings):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
