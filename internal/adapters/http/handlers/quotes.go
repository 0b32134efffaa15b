package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/growdaily/internal/adapters/http/dto"
	"github.com/jsamuelsen/growdaily/internal/app"
)

// QuoteHandler handles quote library endpoints: listing, custom quote CRUD,
// favorites, the one-shot seed import and the notification tap handoff.
type QuoteHandler struct {
	library *app.Library
	seeder  *app.Seeder
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(library *app.Library, seeder *app.Seeder) *QuoteHandler {
	if library == nil || seeder == nil {
		panic("QuoteHandler: library and seeder are required")
	}

	return &QuoteHandler{
		library: library,
		seeder:  seeder,
	}
}

// ListQuotes handles GET /v1/quotes. With ?favorites=true only favorite
// quotes are returned.
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	if c.Query("favorites") == "true" {
		favorites, err := h.library.Favorites(c.Request.Context())
		if err != nil {
			dto.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, dto.QuoteListFromDomain(favorites))
		return
	}

	all, err := h.library.All(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.QuoteListFromDomain(all))
}

// GetQuote handles GET /v1/quotes/:id.
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.library.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.QuoteFromDomain(quote))
}

// CreateQuote handles POST /v1/quotes. Only custom quotes are created this
// way; seeded quotes arrive through the import.
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req dto.CreateQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindingError(c, err)
		return
	}

	quote, err := h.library.CreateCustom(c.Request.Context(), req.Text, req.Author)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.QuoteFromDomain(quote))
}

// UpdateQuote handles PUT /v1/quotes/:id. Seeded quotes are read-only.
func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	var req dto.UpdateQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindingError(c, err)
		return
	}

	quote, err := h.library.UpdateCustom(c.Request.Context(), c.Param("id"), req.Text, req.Author)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.QuoteFromDomain(quote))
}

// DeleteQuote handles DELETE /v1/quotes/:id.
func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	if err := h.library.DeleteCustom(c.Request.Context(), c.Param("id")); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleFavorite handles POST /v1/quotes/:id/favorite.
func (h *QuoteHandler) ToggleFavorite(c *gin.Context) {
	quote, err := h.library.ToggleFavorite(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.QuoteFromDomain(quote))
}

// seedCategoriesResponse lists the categories available for import.
type seedCategoriesResponse struct {
	Categories []string `json:"categories"`
}

// SeedCategories handles GET /v1/seed/categories.
func (h *QuoteHandler) SeedCategories(c *gin.Context) {
	c.JSON(http.StatusOK, seedCategoriesResponse{
		Categories: h.seeder.Categories(),
	})
}

// ImportSeed handles POST /v1/seed/import, the one-shot first-launch import.
// A second import returns 403.
func (h *QuoteHandler) ImportSeed(c *gin.Context) {
	var req dto.SeedImportRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindingError(c, err)
		return
	}

	if err := h.seeder.ImportCategories(c.Request.Context(), req.Categories); err != nil {
		dto.HandleError(c, err)
		return
	}

	imported, err := h.library.All(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SeedImportResponse{
		Categories: req.Categories,
		Imported:   len(imported),
	})
}

// RecordTap handles POST /v1/notifications/tap. The mobile shell reports the
// quote id carried by a tapped notification here before the UI is up.
func (h *QuoteHandler) RecordTap(c *gin.Context) {
	var req dto.NotificationTapRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindingError(c, err)
		return
	}

	if err := h.library.RecordNotificationTap(c.Request.Context(), req.QuoteID); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// PendingQuote handles GET /v1/notifications/pending-quote. Returns the quote
// a tapped notification pointed at and clears the marker; Quote is null when
// nothing is pending.
func (h *QuoteHandler) PendingQuote(c *gin.Context) {
	quote, err := h.library.ResolvePendingQuote(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	resp := dto.PendingQuoteResponse{}
	if quote != nil {
		q := dto.QuoteFromDomain(quote)
		resp.Quote = &q
	}

	c.JSON(http.StatusOK, resp)
}

// RegisterQuoteRoutes registers quote library routes on the given router group.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.GET("", h.ListQuotes)
	quotes.POST("", h.CreateQuote)
	quotes.GET("/:id", h.GetQuote)
	quotes.PUT("/:id", h.UpdateQuote)
	quotes.DELETE("/:id", h.DeleteQuote)
	quotes.POST("/:id/favorite", h.ToggleFavorite)

	seed := rg.Group("/seed")
	seed.GET("/categories", h.SeedCategories)
	seed.POST("/import", h.ImportSeed)

	notifications := rg.Group("/notifications")
	notifications.POST("/tap", h.RecordTap)
	notifications.GET("/pending-quote", h.PendingQuote)
}
