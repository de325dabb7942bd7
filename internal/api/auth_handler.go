package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"studiofit/booking-app/internal/domain"
	"studiofit/booking-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive" // For converting ID string
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// RegisterTrainerRequest adds the trainer-only profile fields.
type RegisterTrainerRequest struct {
	Name           string   `json:"name" binding:"required"`
	Email          string   `json:"email" binding:"required,email"`
	Password       string   `json:"password" binding:"required,min=8"`
	Specialization string   `json:"specialization"`
	Availability   []string `json:"availability"`
}

// UserResponse excludes sensitive info like password hash
type UserResponse struct {
	ID               string                  `json:"id"`
	Name             string                  `json:"name"`
	Email            string                  `json:"email"`
	Role             domain.Role             `json:"role"`
	IsActive         bool                    `json:"isActive"`
	MembershipStatus domain.MembershipStatus `json:"membershipStatus,omitempty"`
	MembershipExpiry *time.Time              `json:"membershipExpiry,omitempty"`
	Specialization   string                  `json:"specialization,omitempty"`
	Availability     []string                `json:"availability,omitempty"`
	CreatedAt        time.Time               `json:"createdAt"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// --- Handler Methods ---

// RegisterMember handles POST /users.
func (h *AuthHandler) RegisterMember(c *gin.Context) {
	h.register(c, domain.RoleMember)
}

// RegisterAdmin handles POST /admins.
func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	h.register(c, domain.RoleAdmin)
}

func (h *AuthHandler) register(c *gin.Context, role domain.Role) {
	var req RegisterRequest
	// Bind JSON request body and perform validation based on `binding` tags
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	input := service.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password}
	user, err := h.authService.Register(c.Request.Context(), input, role)
	if err != nil {
		handleRegisterError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// RegisterTrainer handles POST /trainers, accepting the trainer profile fields.
func (h *AuthHandler) RegisterTrainer(c *gin.Context) {
	var req RegisterTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	input := service.RegisterInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Specialization: req.Specialization,
		Availability:   req.Availability,
	}
	user, err := h.authService.Register(c.Request.Context(), input, domain.RoleTrainer)
	if err != nil {
		handleRegisterError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

func handleRegisterError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrUserAlreadyExists) {
		abortWithError(c, http.StatusConflict, err.Error())
	} else if errors.Is(err, service.ErrHashingFailed) {
		abortWithError(c, http.StatusInternalServerError, "Could not process registration")
	} else {
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during registration")
	}
}

// LoginMember handles POST /user/login.
func (h *AuthHandler) LoginMember(c *gin.Context) {
	h.login(c)
}

// LoginTrainer handles POST /trainer/login; the lookup is restricted to trainers.
func (h *AuthHandler) LoginTrainer(c *gin.Context) {
	h.login(c, domain.RoleTrainer)
}

// LoginAdmin handles POST /admin/login; the lookup is restricted to admins.
func (h *AuthHandler) LoginAdmin(c *gin.Context) {
	h.login(c, domain.RoleAdmin)
}

func (h *AuthHandler) login(c *gin.Context, roles ...domain.Role) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password, roles...)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else if errors.Is(err, service.ErrAccountBlocked) {
			abortWithError(c, http.StatusForbidden, err.Error())
		} else if errors.Is(err, service.ErrTokenGeneration) {
			abortWithError(c, http.StatusInternalServerError, "Could not process login")
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  MapUserToResponse(user),
	})
}

// ResetPassword handles POST /users/:id/reset-password. The caller must be
// an admin or the owner of the target account.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	actor, err := getCurrentUser(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify caller")
		return
	}

	err = h.authService.ResetPassword(c.Request.Context(), actor, targetID, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrResetNotAllowed) {
			abortWithError(c, http.StatusForbidden, err.Error())
		} else if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not reset password")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

// Me handles GET /me, returning the authenticated subject.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := getCurrentUser(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify caller")
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
// Crucially excludes PasswordHash and converts ObjectIDs to strings.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}

	return UserResponse{
		ID:               user.ID.Hex(),
		Name:             user.Name,
		Email:            user.Email,
		Role:             user.Role,
		IsActive:         user.IsActive,
		MembershipStatus: user.MembershipStatus,
		MembershipExpiry: user.MembershipExpiry,
		Specialization:   user.Specialization,
		Availability:     user.Availability,
		CreatedAt:        user.CreatedAt,
	}
}
