package api

import (
	"net/mail"
	"strings"
	"time"

	"github.com/fergcraven/coachline/internal/models"
	"github.com/fergcraven/coachline/internal/services"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Timezone  string `json:"timezone"`
	TrainerID *uint  `json:"trainer_id"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Timezone string `json:"timezone"`
}

func toUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Role:     user.Role,
		Timezone: user.Timezone,
	}
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	request := registerRequest{}
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid email")
	}
	if len(request.Password) < 8 {
		return apiError(c, fiber.StatusBadRequest, "password must be at least 8 characters")
	}

	role := request.Role
	if role != models.RoleTrainer {
		role = models.RoleClient
	}
	if request.Timezone != "" {
		if _, err := time.LoadLocation(request.Timezone); err != nil {
			return apiError(c, fiber.StatusBadRequest, "unknown timezone")
		}
	}

	existing, err := handler.repositories.Users.FindByEmail(email)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}
	if existing != nil {
		return apiError(c, fiber.StatusConflict, "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(request.Name),
		Role:         role,
		Timezone:     request.Timezone,
		TrainerID:    request.TrainerID,
	}
	if err := handler.repositories.Users.Create(user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}

	if err := handler.setAuthCookie(c, user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}
	return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	request := loginRequest{}
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))
	user, err := handler.repositories.Users.FindByEmail(email)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "login failed")
	}
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)) != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	if err := handler.setAuthCookie(c, user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "login failed")
	}
	return c.JSON(toUserResponse(user))
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) CurrentUser(c *fiber.Ctx) error {
	return c.JSON(toUserResponse(currentUser(c)))
}

type timezoneRequest struct {
	Timezone string `json:"timezone"`
}

func (handler *Handler) UpdateTimezone(c *fiber.Ctx) error {
	request := timezoneRequest{}
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if request.Timezone != "" {
		if _, err := time.LoadLocation(request.Timezone); err != nil {
			return apiError(c, fiber.StatusBadRequest, "unknown timezone")
		}
	}

	user := currentUser(c)
	if err := handler.repositories.Users.UpdateTimezone(user.ID, request.Timezone); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not update timezone")
	}
	return c.JSON(fiber.Map{
		"timezone": request.Timezone,
		"today":    services.Today(request.Timezone),
	})
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
