package server

import (
	"fmt"
	"strconv"
	"time"

	"harnect/internal/models"
	"harnect/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Signup handles POST /api/auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Handle   string `json:"handle"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if req.Handle == "" || req.Password == "" {
		return models.RespondWithError(c,
			models.NewValidationError("Handle and password are required"))
	}

	user, err := s.identityService.Register(c.UserContext(), service.RegisterInput{
		Handle:   req.Handle,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Handle   string `json:"handle"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.identityService.Authenticate(c.UserContext(), service.AuthenticateInput{
		Handle:   req.Handle,
		Password: req.Password,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// GuestLogin handles POST /api/auth/guest. It mints an ephemeral account
// whose lifetime is exactly one session.
func (s *Server) GuestLogin(c *fiber.Ctx) error {
	user, err := s.identityService.CreateGuest(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /api/auth/logout. For a guest it destroys the
// account; for a registered user the token simply stops being presented.
func (s *Server) Logout(c *fiber.Ctx) error {
	deleted, err := s.identityService.DeleteGuest(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":       "Logged out",
		"guest_deleted": deleted,
	})
}

func (s *Server) generateToken(user *models.User) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":    strconv.FormatUint(uint64(user.ID), 10),
		"handle": user.Handle,
		"guest":  user.Guest,
		"iss":    "harnect-api",
		"aud":    "harnect-client",
		"exp":    now.Add(time.Hour * 24 * 7).Unix(),
		"iat":    now.Unix(),
		"nbf":    now.Unix(),
		"jti":    generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
