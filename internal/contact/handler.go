package contact

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sentinelwatch/sentinel-backend/internal/store"
)

type Handler struct {
	Store store.Store
}

func NewHandler(st store.Store) *Handler {
	return &Handler{Store: st}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (r contactRequest) validate() error {
	checks := []struct {
		value, message string
	}{
		{r.Name, "Name is required"},
		{r.Email, "Email is required"},
		{r.Type, "Type is required"},
		{r.Message, "Message is required"},
	}
	for _, c := range checks {
		if c.value == "" {
			return fiber.NewError(fiber.StatusBadRequest, c.message)
		}
	}
	return nil
}

// Submit accepts a support inquiry. No authentication required; the
// timestamp is server-assigned.
func (h *Handler) Submit(c *fiber.Ctx) error {
	var body contactRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := body.validate(); err != nil {
		return err
	}

	req, err := h.Store.CreateContactRequest(userContext(c), store.ContactRequest{
		Name:      body.Name,
		Email:     body.Email,
		Type:      body.Type,
		Message:   body.Message,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("create contact request failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "An error occurred while processing your request")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": req.ID})
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
