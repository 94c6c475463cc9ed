package handler

import (
	"net/http"

	"marketplace-service/internal/middleware"
	"marketplace-service/internal/model"
	"marketplace-service/internal/profile"
	"marketplace-service/pkg/jwtutil"
	"marketplace-service/pkg/logger"
	"marketplace-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler serves registration, login and account deletion.
type AuthHandler struct {
	registry *profile.Registry
	jwt      *jwtutil.JWTUtil
}

// NewAuthHandler builds an AuthHandler.
func NewAuthHandler(registry *profile.Registry, jwt *jwtutil.JWTUtil) *AuthHandler {
	return &AuthHandler{registry: registry, jwt: jwt}
}

// Register creates a user identity together with its role profile. The two
// are one logical unit: a failed profile creation rolls the user back.
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Email       string               `json:"email"`
		Username    string               `json:"username"`
		Password    string               `json:"password"`
		RoleType    string               `json:"role_type"`
		ProfileData profile.ProfileInput `json:"profile_data"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Email == "" || req.Username == "" || req.Password == "" || req.RoleType == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "email, username, password, and role_type are required",
		})
	}

	role, err := model.ParseRole(req.RoleType)
	if err != nil || role == model.RoleAdmin {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid role_type. Must be one of: vendor, influencer, buyer",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	registration, err := h.registry.RegisterAccount(
		c.Request().Context(), req.Email, req.Username, string(hashedPassword), role, req.ProfileData)
	if err != nil {
		return respondError(c, log, err)
	}
	prometheus.RegisterCounter.WithLabelValues(role.String()).Inc()

	token, err := h.jwt.GenerateToken(registration.User.Email, registration.User.ID, role.String())
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	message := "Registration successful! Your application is pending admin approval."
	if role == model.RoleBuyer {
		message = "Registration successful! You can now start shopping."
	}

	log.Info("User registered",
		zap.String("email", registration.User.Email),
		zap.String("role", role.String()))
	return c.JSON(http.StatusCreated, echo.Map{
		"user":      registration.User,
		"profile":   registrationProfile(registration),
		"role_type": role.String(),
		"message":   message,
		"jwt":       token,
	})
}

// Login verifies credentials and issues a JWT carrying the user's role.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	user, err := h.registry.UserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		return respondError(c, log, err)
	}
	if user == nil {
		log.Warn("User not found", zap.String("email", req.Email))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := h.jwt.GenerateToken(user.Email, user.ID, user.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("User logged in", zap.String("email", user.Email))
	return c.JSON(http.StatusOK, echo.Map{"user": user, "jwt": token})
}

// DeleteAccount cascade-deletes the caller's profiles and then the user
// itself. Any failed profile deletion aborts and leaves the user in place.
func (h *AuthHandler) DeleteAccount(c echo.Context) error {
	log := logger.FromEcho(c)

	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	if err := h.registry.CascadeDeleteByUser(c.Request().Context(), identity.UserID); err != nil {
		log.Error("Cascade deletion failed", zap.Uint("user_id", identity.UserID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "failed to delete account; no data was removed beyond completed steps",
		})
	}

	log.Info("Account deleted", zap.Uint("user_id", identity.UserID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Account deleted successfully"})
}

func registrationProfile(registration *profile.Registration) interface{} {
	switch {
	case registration.Vendor != nil:
		return registration.Vendor
	case registration.Influencer != nil:
		return registration.Influencer
	case registration.Buyer != nil:
		return registration.Buyer
	default:
		return nil
	}
}
