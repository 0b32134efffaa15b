package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/growdaily/internal/adapters/http/dto"
	"github.com/jsamuelsen/growdaily/internal/app"
	"github.com/jsamuelsen/growdaily/internal/domain"
	"github.com/jsamuelsen/growdaily/internal/platform/logging"
	"github.com/jsamuelsen/growdaily/internal/ports"
)

// ScheduleHandler handles reminder slot configuration, quote pinning and the
// foreground refresh hook.
type ScheduleHandler struct {
	scheduler   *app.Scheduler
	pruner      *app.Pruner
	settings    ports.SettingsStore
	defaultSlot domain.TimeOfDay
	maxSlots    int
}

// ScheduleHandlerConfig contains configuration for the schedule handler.
type ScheduleHandlerConfig struct {
	Scheduler *app.Scheduler
	Pruner    *app.Pruner
	Settings  ports.SettingsStore

	// DefaultSlot is reported by GetSlots while the user has never
	// configured any slots.
	DefaultSlot domain.TimeOfDay

	// MaxSlots caps how many reminder slots one update may configure.
	MaxSlots int
}

// NewScheduleHandler creates a new schedule handler.
func NewScheduleHandler(cfg ScheduleHandlerConfig) *ScheduleHandler {
	if cfg.Scheduler == nil || cfg.Pruner == nil || cfg.Settings == nil {
		panic("ScheduleHandler: Scheduler, Pruner and Settings are required")
	}

	defaultSlot := cfg.DefaultSlot
	if defaultSlot == (domain.TimeOfDay{}) {
		defaultSlot = domain.DefaultTimeSlot
	}

	maxSlots := cfg.MaxSlots
	if maxSlots <= 0 {
		maxSlots = 2
	}

	return &ScheduleHandler{
		scheduler:   cfg.Scheduler,
		pruner:      cfg.Pruner,
		settings:    cfg.Settings,
		defaultSlot: defaultSlot,
		maxSlots:    maxSlots,
	}
}

// GetSlots handles GET /v1/schedule/slots. While slots were never configured
// the single default slot is reported, matching what reconcile schedules.
func (h *ScheduleHandler) GetSlots(c *gin.Context) {
	slots, err := h.settings.NotificationTimes(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if slots == nil {
		slots = []domain.TimeOfDay{h.defaultSlot}
	}

	c.JSON(http.StatusOK, dto.SlotsFromDomain(slots))
}

// UpdateSlots handles PUT /v1/schedule/slots. An empty list is valid and
// disables rotation reminders. The new configuration takes effect
// immediately through a reconcile.
func (h *ScheduleHandler) UpdateSlots(c *gin.Context) {
	var req dto.UpdateSlotsRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindingError(c, err)
		return
	}

	if req.Slots == nil {
		dto.RespondWithValidationErrors(c, map[string]string{
			"slots": "this field is required",
		})

		return
	}

	if len(req.Slots) > h.maxSlots {
		dto.RespondWithValidationErrors(c, map[string]string{
			"slots": fmt.Sprintf("at most %d slots can be configured", h.maxSlots),
		})

		return
	}

	slots := make([]domain.TimeOfDay, 0, len(req.Slots))
	for _, s := range req.Slots {
		slots = append(slots, s.SlotToDomain())
	}

	if err := h.settings.SetNotificationTimes(c.Request.Context(), slots); err != nil {
		dto.HandleError(c, err)
		return
	}

	if err := h.scheduler.Reconcile(c.Request.Context()); err != nil {
		// The configuration is saved; the next reconcile picks it up.
		logging.FromContext(c.Request.Context()).Warn("reconcile after slot update failed",
			"error", err.Error(),
		)
	}

	c.JSON(http.StatusOK, dto.SlotsFromDomain(slots))
}

// activeOverrideResponse carries the currently active pin. Override is null
// when no pin is active right now.
type activeOverrideResponse struct {
	Override *dto.OverrideResponse `json:"override"`
}

// GetOverride handles GET /v1/schedule/override.
func (h *ScheduleHandler) GetOverride(c *gin.Context) {
	override, err := h.scheduler.ActiveOverride(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	resp := activeOverrideResponse{}
	if override != nil {
		ov := dto.OverrideFromDomain(override)
		resp.Override = &ov
	}

	c.JSON(http.StatusOK, resp)
}

// PinQuote handles POST /v1/schedule/override. Pinning replaces any existing
// pin; only favorite quotes can be pinned.
func (h *ScheduleHandler) PinQuote(c *gin.Context) {
	var req dto.PinQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindingError(c, err)
		return
	}

	override := &domain.ScheduledOverride{
		QuoteID:          req.QuoteID,
		StartDate:        req.StartDate,
		DurationDays:     req.DurationDays,
		NotificationTime: req.NotificationTime.SlotToDomain(),
	}

	if err := h.scheduler.ScheduleOverride(c.Request.Context(), override); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OverrideFromDomain(override))
}

// UnpinQuote handles DELETE /v1/schedule/override/:quoteId. Safe to call for
// quotes that were never pinned.
func (h *ScheduleHandler) UnpinQuote(c *gin.Context) {
	if err := h.scheduler.UnscheduleOverride(c.Request.Context(), c.Param("quoteId")); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Foreground handles POST /v1/app/foreground. The mobile shell calls it when
// the app comes to the foreground: delivered notifications are pruned down to
// the newest one and the rotation schedule is rebuilt.
func (h *ScheduleHandler) Foreground(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.pruner.Prune(ctx); err != nil {
		logging.FromContext(ctx).Warn("pruning delivered notifications failed",
			"error", err.Error(),
		)
	}

	if err := h.scheduler.Reconcile(ctx); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterScheduleRoutes registers scheduling routes on the given router group.
func (h *ScheduleHandler) RegisterScheduleRoutes(rg *gin.RouterGroup) {
	schedule := rg.Group("/schedule")
	schedule.GET("/slots", h.GetSlots)
	schedule.PUT("/slots", h.UpdateSlots)
	schedule.GET("/override", h.GetOverride)
	schedule.POST("/override", h.PinQuote)
	schedule.DELETE("/override/:quoteId", h.UnpinQuote)

	rg.POST("/app/foreground", h.Foreground)
}
