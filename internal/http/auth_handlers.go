package http

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sentinelwatch/sentinel-backend/internal/store"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "sentinel_session"

const sessionTTL = 24 * time.Hour

type AuthHandler struct {
	Store  store.Store
	Secret []byte
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	OrgCode  string `json:"orgCode"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body registerRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if body.Username == "" || body.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Username and password are required")
	}

	ctx := userContext(c)

	// Uniqueness is lookup-before-insert; the Postgres store additionally
	// carries a UNIQUE constraint.
	if _, err := h.Store.GetUserByUsername(ctx, body.Username); err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Username already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("username lookup failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Registration failed")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Registration failed")
	}

	user, err := h.Store.CreateUser(ctx, store.User{
		Username: body.Username,
		Password: string(hashed),
		Email:    body.Email,
		OrgCode:  body.OrgCode,
	})
	if err != nil {
		log.Printf("create user failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Registration failed")
	}

	if err := h.startSession(c, user.ID); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.Store.GetUserByUsername(userContext(c), body.Username)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}

	if err := h.startSession(c, user.ID); err != nil {
		return err
	}
	return c.JSON(user)
}

// Logout deletes the server-side session so the token is dead even if the
// client keeps the cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sid, ok := c.Locals("session_id").(string); ok && sid != "" {
		if err := h.Store.DeleteSession(userContext(c), sid); err != nil {
			log.Printf("delete session failed: %v", err)
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.JSON(fiber.Map{"success": true})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(int)
	if !ok || userID <= 0 {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	user, err := h.Store.GetUser(userContext(c), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	return c.JSON(user)
}

func (h *AuthHandler) startSession(c *fiber.Ctx, userID int) error {
	sid := uuid.NewString()
	if err := h.Store.CreateSession(userContext(c), store.Session{
		ID:        sid,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		log.Printf("create session failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Could not create session")
	}

	token, err := GenerateToken(h.Secret, userID, sid, sessionTTL)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Could not create session")
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(sessionTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return nil
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
