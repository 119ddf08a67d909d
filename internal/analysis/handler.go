package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sentinelwatch/sentinel-backend/internal/store"
)

type Handler struct {
	Store store.Store
	Gen   ReportGenerator
}

func NewHandler(st store.Store, gen ReportGenerator) *Handler {
	return &Handler{Store: st, Gen: gen}
}

type analyzeRequest struct {
	AccountName   string `json:"accountName"`
	Password      string `json:"password"`
	TargetAccount string `json:"targetAccount"`
	ContentType   string `json:"contentType"`
	Content       string `json:"content"`
}

func (r analyzeRequest) validate() error {
	checks := []struct {
		value, message string
	}{
		{r.AccountName, "Account name is required"},
		{r.Password, "Password is required"},
		{r.TargetAccount, "Target account is required"},
		{r.ContentType, "Content type is required"},
		{r.Content, "Content is required"},
	}
	for _, c := range checks {
		if c.value == "" {
			return fiber.NewError(fiber.StatusBadRequest, c.message)
		}
	}
	return nil
}

type analyzeResponse struct {
	SemanticAnalysis string `json:"semanticAnalysis"`
	ThreatAnalysis   string `json:"threatAnalysis"`
}

// Analyze runs both generators over the submitted content and records the
// result. Persistence is best-effort: a store failure is logged but the
// already-generated reports are still returned.
func (h *Handler) Analyze(c *fiber.Ctx) error {
	userID, ok := getUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	var body analyzeRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := body.validate(); err != nil {
		return err
	}

	semantic := h.Gen.Semantic(body.Content)
	threat := h.Gen.Threat(body.Content)

	if _, err := h.Store.CreateAnalysis(userContext(c), store.Analysis{
		UserID:           userID,
		TargetAccount:    body.TargetAccount,
		ContentType:      body.ContentType,
		Content:          body.Content,
		SemanticAnalysis: semantic,
		ThreatAnalysis:   threat,
		CreatedAt:        time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		log.Printf("failed to save analysis for user %d: %v", userID, err)
	}

	return c.JSON(analyzeResponse{
		SemanticAnalysis: semantic,
		ThreatAnalysis:   threat,
	})
}

// History returns the caller's analysis records in insertion order.
func (h *Handler) History(c *fiber.Ctx) error {
	userID, ok := getUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	analyses, err := h.Store.GetAnalysesByUserID(userContext(c), userID)
	if err != nil {
		log.Printf("failed to load analysis history for user %d: %v", userID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to retrieve analysis history")
	}
	return c.JSON(analyses)
}

// Export renders one owned analysis record as a PDF download.
func (h *Handler) Export(c *fiber.Ctx) error {
	userID, ok := getUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid analysis id")
	}

	a, err := h.Store.GetAnalysisByID(userContext(c), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Analysis not found")
		}
		log.Printf("failed to load analysis %d: %v", id, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to retrieve analysis")
	}
	// Records owned by someone else look like they do not exist.
	if a.UserID != userID {
		return fiber.NewError(fiber.StatusNotFound, "Analysis not found")
	}

	pdf, err := BuildAnalysisPDF(&a)
	if err != nil {
		log.Printf("failed to build analysis pdf %d: %v", id, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate report")
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="analysis-%d.pdf"`, a.ID))
	return c.Send(pdf)
}

func getUserID(c *fiber.Ctx) (int, bool) {
	if v := c.Locals("user_id"); v != nil {
		if id, ok := v.(int); ok && id > 0 {
			return id, true
		}
	}
	return 0, false
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
