package handler

import (
	"net/http"

	"marketplace-service/internal/model"
	"marketplace-service/internal/profile"
	"marketplace-service/pkg/logger"
	"marketplace-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// InfluencerHandler serves influencer profile endpoints.
type InfluencerHandler struct {
	registry *profile.Registry
}

// NewInfluencerHandler builds an InfluencerHandler.
func NewInfluencerHandler(registry *profile.Registry) *InfluencerHandler {
	return &InfluencerHandler{registry: registry}
}

// List returns influencers with optional filters.
func (h *InfluencerHandler) List(c echo.Context) error {
	log := logger.FromEcho(c)

	filter := profile.InfluencerFilter{
		Status: c.QueryParam("status"),
		Niche:  c.QueryParam("niche"),
		Search: c.QueryParam("search"),
	}
	if c.QueryParam("featured") == "true" {
		featured := true
		filter.Featured = &featured
		filter.Status = model.StatusApproved
	}
	if c.QueryParam("verified_creators") == "true" {
		verified := true
		filter.VerifiedCreator = &verified
		filter.Status = model.StatusApproved
	}

	influencers, err := h.registry.Influencers(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, log, err)
	}
	log.Info("Influencers listed", zap.Int("count", len(influencers)))
	return c.JSON(http.StatusOK, influencers)
}

// Get returns one influencer by ID.
func (h *InfluencerHandler) Get(c echo.Context) error {
	log := logger.FromEcho(c)
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	influencer, err := h.registry.Influencer(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, influencer)
}

// GetByUsername returns an influencer by username.
func (h *InfluencerHandler) GetByUsername(c echo.Context) error {
	log := logger.FromEcho(c)

	influencers, err := h.registry.Influencers(c.Request().Context(), profile.InfluencerFilter{
		Username: c.Param("username"),
	})
	if err != nil {
		return respondError(c, log, err)
	}
	if len(influencers) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "influencer not found"})
	}
	return c.JSON(http.StatusOK, influencers[0])
}

// GetByUser returns the influencer profile owned by a user.
func (h *InfluencerHandler) GetByUser(c echo.Context) error {
	log := logger.FromEcho(c)
	userID, err := pathID(c, "userId")
	if err != nil {
		return respondError(c, log, err)
	}

	influencer, err := h.registry.InfluencerByUser(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, influencer)
}

// Approve transitions an influencer to approved and verified.
func (h *InfluencerHandler) Approve(c echo.Context) error {
	log := logger.FromEcho(c)
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	if err := h.registry.Approve(c.Request().Context(), model.RoleInfluencer, id); err != nil {
		return respondError(c, log, err)
	}
	prometheus.ProfileTransitionCounter.WithLabelValues("influencer", "approve").Inc()

	influencer, err := h.registry.Influencer(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, influencer)
}

// Reject transitions an influencer to rejected.
func (h *InfluencerHandler) Reject(c echo.Context) error {
	log := logger.FromEcho(c)
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.Bind(&req)

	if err := h.registry.Reject(c.Request().Context(), model.RoleInfluencer, id, req.Reason); err != nil {
		return respondError(c, log, err)
	}
	prometheus.ProfileTransitionCounter.WithLabelValues("influencer", "reject").Inc()

	influencer, err := h.registry.Influencer(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, influencer)
}

// Suspend transitions an influencer to suspended.
func (h *InfluencerHandler) Suspend(c echo.Context) error {
	log := logger.FromEcho(c)
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.Bind(&req)

	if err := h.registry.Suspend(c.Request().Context(), model.RoleInfluencer, id, req.Reason); err != nil {
		return respondError(c, log, err)
	}
	prometheus.ProfileTransitionCounter.WithLabelValues("influencer", "suspend").Inc()

	influencer, err := h.registry.Influencer(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, influencer)
}

// Reactivate restores a suspended influencer to approved.
func (h *InfluencerHandler) Reactivate(c echo.Context) error {
	log := logger.FromEcho(c)
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	if err := h.registry.Reactivate(c.Request().Context(), model.RoleInfluencer, id); err != nil {
		return respondError(c, log, err)
	}
	prometheus.ProfileTransitionCounter.WithLabelValues("influencer", "reactivate").Inc()

	influencer, err := h.registry.Influencer(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, influencer)
}

// VerifyCreator flags an influencer as a verified creator.
func (h *InfluencerHandler) VerifyCreator(c echo.Context) error {
	log := logger.FromEcho(c)
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	influencer, err := h.registry.VerifyCreator(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, influencer)
}

// UpdateSocialMetrics applies per-platform follower/engagement updates.
func (h *InfluencerHandler) UpdateSocialMetrics(c echo.Context) error {
	log := logger.FromEcho(c)
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	var req struct {
		Updates []profile.SocialMetricUpdate `json:"updates"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	influencer, err := h.registry.UpdateSocialMetrics(c.Request().Context(), id, req.Updates)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, influencer)
}

// Stats returns the aggregate view of an influencer.
func (h *InfluencerHandler) Stats(c echo.Context) error {
	log := logger.FromEcho(c)
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	stats, err := h.registry.GetInfluencerStats(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, stats)
}
