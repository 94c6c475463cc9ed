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

// VendorHandler serves vendor profile endpoints.
type VendorHandler struct {
	registry *profile.Registry
}

// NewVendorHandler builds a VendorHandler.
func NewVendorHandler(registry *profile.Registry) *VendorHandler {
	return &VendorHandler{registry: registry}
}

// List returns vendors with optional status/featured/search filters.
func (h *VendorHandler) List(c echo.Context) error {
	log := logger.FromEcho(c)

	filter := profile.VendorFilter{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
	}
	if c.QueryParam("featured") == "true" {
		featured := true
		filter.Featured = &featured
		// Featured listings only surface approved vendors.
		filter.Status = model.StatusApproved
	}

	vendors, err := h.registry.Vendors(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, log, err)
	}
	log.Info("Vendors listed", zap.Int("count", len(vendors)))
	return c.JSON(http.StatusOK, vendors)
}

// Get returns one vendor by ID.
func (h *VendorHandler) Get(c echo.Context) error {
	log := logger.FromEcho(c)
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	vendor, err := h.registry.Vendor(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, vendor)
}

// GetByUsername returns a vendor by username.
func (h *VendorHandler) GetByUsername(c echo.Context) error {
	log := logger.FromEcho(c)

	vendors, err := h.registry.Vendors(c.Request().Context(), profile.VendorFilter{
		Username: c.Param("username"),
	})
	if err != nil {
		return respondError(c, log, err)
	}
	if len(vendors) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "vendor not found"})
	}
	return c.JSON(http.StatusOK, vendors[0])
}

// GetByUser returns the vendor profile owned by a user.
func (h *VendorHandler) GetByUser(c echo.Context) error {
	log := logger.FromEcho(c)
	userID, err := pathID(c, "userId")
	if err != nil {
		return respondError(c, log, err)
	}

	vendor, err := h.registry.VendorByUser(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, vendor)
}

// Approve transitions a vendor to approved and verified.
func (h *VendorHandler) Approve(c echo.Context) error {
	log := logger.FromEcho(c)
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	if err := h.registry.Approve(c.Request().Context(), model.RoleVendor, id); err != nil {
		return respondError(c, log, err)
	}
	prometheus.ProfileTransitionCounter.WithLabelValues("vendor", "approve").Inc()

	vendor, err := h.registry.Vendor(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, vendor)
}

// Reject transitions a vendor to rejected.
func (h *VendorHandler) Reject(c echo.Context) error {
	log := logger.FromEcho(c)
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.Bind(&req)

	if err := h.registry.Reject(c.Request().Context(), model.RoleVendor, id, req.Reason); err != nil {
		return respondError(c, log, err)
	}
	prometheus.ProfileTransitionCounter.WithLabelValues("vendor", "reject").Inc()

	vendor, err := h.registry.Vendor(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, vendor)
}

// Suspend transitions a vendor to suspended without touching verification.
func (h *VendorHandler) Suspend(c echo.Context) error {
	log := logger.FromEcho(c)
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.Bind(&req)

	if err := h.registry.Suspend(c.Request().Context(), model.RoleVendor, id, req.Reason); err != nil {
		return respondError(c, log, err)
	}
	prometheus.ProfileTransitionCounter.WithLabelValues("vendor", "suspend").Inc()

	vendor, err := h.registry.Vendor(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, vendor)
}

// Reactivate restores a suspended vendor to approved.
func (h *VendorHandler) Reactivate(c echo.Context) error {
	log := logger.FromEcho(c)
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	if err := h.registry.Reactivate(c.Request().Context(), model.RoleVendor, id); err != nil {
		return respondError(c, log, err)
	}
	prometheus.ProfileTransitionCounter.WithLabelValues("vendor", "reactivate").Inc()

	vendor, err := h.registry.Vendor(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, vendor)
}

// Stats returns the aggregate view of a vendor.
func (h *VendorHandler) Stats(c echo.Context) error {
	log := logger.FromEcho(c)
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	stats, err := h.registry.GetVendorStats(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, stats)
}
