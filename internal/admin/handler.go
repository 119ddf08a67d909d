package admin

import (
	"context"
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/sentinelwatch/sentinel-backend/internal/store"
)

type Handler struct {
	Store store.Store
}

func NewHandler(st store.Store) *Handler {
	return &Handler{Store: st}
}

// ListContactRequests returns every submitted inquiry, unresolved ones
// included, in insertion order.
func (h *Handler) ListContactRequests(c *fiber.Ctx) error {
	requests, err := h.Store.GetContactRequests(userContext(c))
	if err != nil {
		log.Printf("list contact requests failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list contact requests")
	}
	return c.JSON(requests)
}

type resolveRequest struct {
	Resolved bool `json:"resolved"`
}

// ResolveContactRequest toggles the resolved flag on one inquiry.
func (h *Handler) ResolveContactRequest(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid contact request id")
	}

	var body resolveRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	req, err := h.Store.UpdateContactRequest(userContext(c), id, body.Resolved)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Contact request not found")
		}
		log.Printf("update contact request %d failed: %v", id, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update contact request")
	}
	return c.JSON(req)
}

// Stats reports entity counts across the store.
func (h *Handler) Stats(c *fiber.Ctx) error {
	stats, err := h.Store.Counts(userContext(c))
	if err != nil {
		log.Printf("stats failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute stats")
	}
	return c.JSON(stats)
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
