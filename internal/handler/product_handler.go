package handler

import (
	"net/http"
	"strconv"

	"marketplace-service/internal/catalog"
	"marketplace-service/internal/middleware"
	"marketplace-service/pkg/logger"
	"marketplace-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProductHandler serves catalog endpoints.
type ProductHandler struct {
	catalog *catalog.Service
}

// NewProductHandler builds a ProductHandler.
func NewProductHandler(svc *catalog.Service) *ProductHandler {
	return &ProductHandler{catalog: svc}
}

// List returns products matching the query filters.
func (h *ProductHandler) List(c echo.Context) error {
	log := logger.FromEcho(c)

	filter := catalog.ProductFilter{
		CreatedByType: c.QueryParam("created_by_type"),
		Category:      c.QueryParam("category"),
		ActiveOnly:    c.QueryParam("active") == "true",
	}
	if v := c.QueryParam("vendor_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vendor_id"})
		}
		vendorID := uint(id)
		filter.VendorID = &vendorID
	}
	if v := c.QueryParam("influencer_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid influencer_id"})
		}
		influencerID := uint(id)
		filter.InfluencerID = &influencerID
	}

	products, err := h.catalog.Products(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": products, "count": len(products)})
}

// Get returns one product with its slab pricing and commission settings.
func (h *ProductHandler) Get(c echo.Context) error {
	log := logger.FromEcho(c)
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	product, err := h.catalog.Product(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, product)
}

// Create creates a product for the authenticated seller. Vendors create
// originals; influencers create linked products when original_product_id is
// set, standalone products otherwise.
func (h *ProductHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)

	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var input catalog.ProductInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	product, err := h.catalog.CreateProduct(c.Request().Context(), identity.UserID, input)
	if err != nil {
		return respondError(c, log, err)
	}

	prometheus.ProductCreatedCounter.WithLabelValues(product.CreatedByType).Inc()
	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("sku", product.SKU),
		zap.String("created_by_type", product.CreatedByType))
	return c.JSON(http.StatusCreated, product)
}

// Link creates a linked product from a vendor original for the authenticated
// influencer.
func (h *ProductHandler) Link(c echo.Context) error {
	log := logger.FromEcho(c)

	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	originalID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	var overrides catalog.LinkOverrides
	if err := c.Bind(&overrides); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	input := catalog.ProductInput{
		Name:                     overrides.Name,
		Description:              overrides.Description,
		OriginalProductID:        &originalID,
		InfluencerCommissionRate: overrides.InfluencerCommissionRate,
	}
	if overrides.BasePrice != nil {
		input.BasePrice = *overrides.BasePrice
	}

	product, err := h.catalog.CreateProduct(c.Request().Context(), identity.UserID, input)
	if err != nil {
		return respondError(c, log, err)
	}

	prometheus.ProductLinkCounter.Inc()
	log.Info("Product linked",
		zap.Uint("product_id", product.ID),
		zap.Uint("original_product_id", originalID))
	return c.JSON(http.StatusCreated, product)
}

// Update modifies a mutable subset of a product's fields.
func (h *ProductHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	product, err := h.catalog.Product(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err)
	}

	var req struct {
		Name          *string  `json:"name"`
		Description   *string  `json:"description"`
		BasePrice     *float64 `json:"base_price"`
		IsActive      *bool    `json:"is_active"`
		StockQuantity *int     `json:"stock_quantity"`
		ShippingInfo  *string  `json:"shipping_info"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.BasePrice != nil {
		product.BasePrice = *req.BasePrice
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if req.ShippingInfo != nil {
		product.ShippingInfo = *req.ShippingInfo
	}

	if err := h.catalog.UpdateProduct(c.Request().Context(), product); err != nil {
		return respondError(c, log, err)
	}
	log.Info("Product updated", zap.Uint("product_id", product.ID))
	return c.JSON(http.StatusOK, product)
}

// Delete removes a product.
func (h *ProductHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	if err := h.catalog.DeleteProduct(c.Request().Context(), id); err != nil {
		return respondError(c, log, err)
	}
	log.Info("Product deleted", zap.Uint("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted"})
}

// ByVendor lists a vendor's products.
func (h *ProductHandler) ByVendor(c echo.Context) error {
	log := logger.FromEcho(c)
	vendorID, err := pathID(c, "vendorId")
	if err != nil {
		return respondError(c, log, err)
	}

	products, err := h.catalog.ProductsByVendor(c.Request().Context(), vendorID)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": products, "count": len(products)})
}

// ByInfluencer lists an influencer's products.
func (h *ProductHandler) ByInfluencer(c echo.Context) error {
	log := logger.FromEcho(c)
	influencerID, err := pathID(c, "influencerId")
	if err != nil {
		return respondError(c, log, err)
	}

	products, err := h.catalog.ProductsByInfluencer(c.Request().Context(), influencerID)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": products, "count": len(products)})
}

// LinkedProducts lists every product linked to one original.
func (h *ProductHandler) LinkedProducts(c echo.Context) error {
	log := logger.FromEcho(c)
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	products, err := h.catalog.LinkedProducts(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": products, "count": len(products)})
}

// Price resolves the unit price for a quantity against the product's slab
// pricing.
func (h *ProductHandler) Price(c echo.Context) error {
	log := logger.FromEcho(c)
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	quantity := 1
	if v := c.QueryParam("quantity"); v != "" {
		q, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid quantity"})
		}
		quantity = q
	}

	quote, err := h.catalog.Quote(c.Request().Context(), id, quantity)
	if err != nil {
		return respondError(c, log, err)
	}

	prometheus.PriceQuoteCounter.Inc()
	return c.JSON(http.StatusOK, quote)
}
