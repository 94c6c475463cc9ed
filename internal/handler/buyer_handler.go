package handler

import (
	"net/http"

	"marketplace-service/internal/middleware"
	"marketplace-service/internal/model"
	"marketplace-service/internal/profile"
	"marketplace-service/pkg/logger"
	"marketplace-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// BuyerHandler serves buyer profile endpoints.
type BuyerHandler struct {
	registry *profile.Registry
}

// NewBuyerHandler builds a BuyerHandler.
func NewBuyerHandler(registry *profile.Registry) *BuyerHandler {
	return &BuyerHandler{registry: registry}
}

// Get returns one buyer by ID.
func (h *BuyerHandler) Get(c echo.Context) error {
	log := logger.FromEcho(c)
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	buyer, err := h.registry.Buyer(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, buyer)
}

// MyProfile returns the caller's buyer profile.
func (h *BuyerHandler) MyProfile(c echo.Context) error {
	log := logger.FromEcho(c)

	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	buyer, err := h.registry.BuyerByUser(c.Request().Context(), identity.UserID)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, buyer)
}

// UpdateMyProfile updates the caller's buyer profile fields.
func (h *BuyerHandler) UpdateMyProfile(c echo.Context) error {
	log := logger.FromEcho(c)

	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	buyer, err := h.registry.BuyerByUser(c.Request().Context(), identity.UserID)
	if err != nil {
		return respondError(c, log, err)
	}

	var req struct {
		FirstName            *string `json:"first_name"`
		LastName             *string `json:"last_name"`
		DisplayName          *string `json:"display_name"`
		Phone                *string `json:"phone"`
		NewsletterSubscribed *bool   `json:"newsletter_subscribed"`
		MarketingConsent     *bool   `json:"marketing_consent"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.FirstName != nil {
		buyer.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		buyer.LastName = *req.LastName
	}
	if req.DisplayName != nil {
		buyer.DisplayName = *req.DisplayName
	}
	if req.Phone != nil {
		buyer.Phone = *req.Phone
	}
	if req.NewsletterSubscribed != nil {
		buyer.NewsletterSubscribed = *req.NewsletterSubscribed
	}
	if req.MarketingConsent != nil {
		buyer.MarketingConsent = *req.MarketingConsent
	}

	if err := h.registry.SaveBuyer(c.Request().Context(), buyer); err != nil {
		return respondError(c, log, err)
	}
	log.Info("Buyer profile updated", zap.Uint("buyer_id", buyer.ID))
	return c.JSON(http.StatusOK, buyer)
}

// Suspend moves a buyer account to suspended.
func (h *BuyerHandler) Suspend(c echo.Context) error {
	log := logger.FromEcho(c)
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.Bind(&req)

	if err := h.registry.Suspend(c.Request().Context(), model.RoleBuyer, id, req.Reason); err != nil {
		return respondError(c, log, err)
	}
	prometheus.ProfileTransitionCounter.WithLabelValues("buyer", "suspend").Inc()

	buyer, err := h.registry.Buyer(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, buyer)
}

// Reactivate restores a suspended buyer account to active.
func (h *BuyerHandler) Reactivate(c echo.Context) error {
	log := logger.FromEcho(c)
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	if err := h.registry.Reactivate(c.Request().Context(), model.RoleBuyer, id); err != nil {
		return respondError(c, log, err)
	}
	prometheus.ProfileTransitionCounter.WithLabelValues("buyer", "reactivate").Inc()

	buyer, err := h.registry.Buyer(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, buyer)
}

// AddToWishlist adds a product to the caller's wishlist.
func (h *BuyerHandler) AddToWishlist(c echo.Context) error {
	log := logger.FromEcho(c)

	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	productID, err := pathID(c, "productId")
	if err != nil {
		return respondError(c, log, err)
	}

	buyer, err := h.registry.BuyerByUser(c.Request().Context(), identity.UserID)
	if err != nil {
		return respondError(c, log, err)
	}

	buyer, err = h.registry.AddToWishlist(c.Request().Context(), buyer.ID, productID)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, buyer)
}

// RemoveFromWishlist removes a product from the caller's wishlist.
func (h *BuyerHandler) RemoveFromWishlist(c echo.Context) error {
	log := logger.FromEcho(c)

	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	productID, err := pathID(c, "productId")
	if err != nil {
		return respondError(c, log, err)
	}

	buyer, err := h.registry.BuyerByUser(c.Request().Context(), identity.UserID)
	if err != nil {
		return respondError(c, log, err)
	}

	buyer, err = h.registry.RemoveFromWishlist(c.Request().Context(), buyer.ID, productID)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, buyer)
}

// Stats returns the aggregate view of a buyer.
func (h *BuyerHandler) Stats(c echo.Context) error {
	log := logger.FromEcho(c)
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	stats, err := h.registry.GetBuyerStats(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, stats)
}
