package api

import (
	"errors"

	"github.com/fergcraven/coachline/internal/models"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	c.Locals(contextUserKey, user)
	return c.Next()
}

func (handler *Handler) TrainerOnly(c *fiber.Ctx) error {
	if !models.IsTrainerUser(currentUser(c)) {
		return apiError(c, fiber.StatusForbidden, "trainer role required")
	}
	return c.Next()
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, error) {
	raw := requestToken(c)
	if raw == "" {
		return nil, errors.New("missing token")
	}

	claims, err := handler.parseToken(raw)
	if err != nil {
		return nil, err
	}

	user, err := handler.repositories.Users.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user no longer exists")
	}
	return user, nil
}

// requireClientAccess resolves which client a trainer-or-client request
// targets. Clients may only act on themselves; trainers only on their
// own clients.
func (handler *Handler) requireClientAccess(c *fiber.Ctx, clientID uint) (*models.User, error) {
	user := currentUser(c)
	if user == nil {
		return nil, errors.New("unauthenticated")
	}
	if user.ID == clientID && user.Role == models.RoleClient {
		return user, nil
	}
	if !models.IsTrainerUser(user) {
		return nil, errors.New("forbidden")
	}

	client, err := handler.repositories.Users.FindByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.TrainerID == nil || *client.TrainerID != user.ID {
		return nil, errors.New("not your client")
	}
	return client, nil
}
