package service

import (
	"context"
	"errors"
	"time"

	"studiofit/booking-app/internal/domain"
	"studiofit/booking-app/internal/repository"

	"github.com/golang-jwt/jwt/v4" // Import JWT library
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt" // Import bcrypt
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrAccountBlocked       = errors.New("account is blocked")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrUserNotFound         = errors.New("user not found")
	ErrResetNotAllowed      = errors.New("only an admin or the account owner may reset this password")
)

// RegisterInput carries the fields accepted at registration time.
// Specialization and Availability only apply to trainers.
type RegisterInput struct {
	Name           string
	Email          string
	Password       string
	Specialization string
	Availability   []string
}

// --- Service Interface ---
type AuthService interface {
	Register(ctx context.Context, input RegisterInput, role domain.Role) (*domain.User, error)
	// Login authenticates by email and password. When roles are given, the
	// lookup is restricted to users holding one of them (trainer/admin login).
	Login(ctx context.Context, email, password string, roles ...domain.Role) (token string, user *domain.User, err error)
	ResetPassword(ctx context.Context, actor *domain.User, targetID primitive.ObjectID, newPassword string) error
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetJWTSecret() string
}

// --- Service Implementation ---

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 24 * time.Hour // Tokens default to a 24-hour window
	}
	return &authService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register handles new user registration for any role.
func (s *authService) Register(ctx context.Context, input RegisterInput, role domain.Role) (*domain.User, error) {
	// 1. Basic input validation (binding tags cover format; this guards direct calls)
	if input.Name == "" || input.Email == "" || input.Password == "" || role == "" {
		return nil, errors.New("name, email, password, and role cannot be empty")
	}

	// 2. Check if the email is already taken
	_, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err // Propagate unexpected repository errors
	}

	// 3. Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	// 4. Create the user domain object
	user := &domain.User{
		Name:             input.Name,
		Email:            input.Email,
		PasswordHash:     string(hashedPassword),
		Role:             role,
		IsActive:         true,
		MembershipStatus: domain.MembershipInactive,
		Specialization:   input.Specialization,
		Availability:     input.Availability,
		// ID, CreatedAt, UpdatedAt are set by the repository layer
	}

	// 5. Save the user. The unique email index catches the race where
	// another request registered the same email after the check above.
	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	user.ID = userID

	// Remove password hash before returning
	user.PasswordHash = ""
	return user, nil
}

// Login handles user authentication and JWT generation.
func (s *authService) Login(ctx context.Context, email, password string, roles ...domain.Role) (token string, user *domain.User, err error) {
	// 1. Basic input validation
	if email == "" || password == "" {
		err = errors.New("email and password cannot be empty")
		return
	}

	// 2. Fetch user by email (restricted by role for trainer/admin logins)
	if len(roles) > 0 {
		user, err = s.userRepo.GetByEmailAndRole(ctx, email, roles[0])
	} else {
		user, err = s.userRepo.GetByEmail(ctx, email)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = ErrAuthenticationFailed // User not found maps to auth failure
		}
		user = nil
		return
	}

	// 3. Compare the provided password with the stored hash
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		err = ErrAuthenticationFailed
		user = nil
		return
	}

	// 4. A blocked account never receives a token, even with valid credentials
	if !user.IsActive {
		err = ErrAccountBlocked
		user = nil
		return
	}

	// 5. Authentication successful - generate JWT
	token, err = s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	// Clear password hash before returning user object
	user.PasswordHash = ""
	return token, user, nil
}

// ResetPassword stores a freshly hashed password for the target user.
// Only an admin or the account owner may perform the reset.
func (s *authService) ResetPassword(ctx context.Context, actor *domain.User, targetID primitive.ObjectID, newPassword string) error {
	if newPassword == "" {
		return errors.New("new password cannot be empty")
	}
	if actor == nil {
		return ErrResetNotAllowed
	}
	if !actor.IsAdmin() && actor.ID != targetID {
		return ErrResetNotAllowed
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrHashingFailed
	}

	err = s.userRepo.UpdatePasswordHash(ctx, targetID, string(hashedPassword))
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// GetUserByID resolves a user by id. Used by the auth middleware to attach
// the token's subject to the request context.
func (s *authService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload. The user id is the
// only claim the server acts on; role is resolved from the store per request.
type jwtClaims struct {
	UserID string `json:"uid"` // User ID
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID: user.ID.Hex(), // Convert ObjectID to hex string
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "studio-booking",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
