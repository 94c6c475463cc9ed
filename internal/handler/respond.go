package handler

import (
	"net/http"
	"strconv"

	"marketplace-service/internal/apperr"
	"marketplace-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// respondError translates a taxonomy error into the JSON error shape used by
// every handler. Internal errors are masked; taxonomy errors carry their
// message through.
func respondError(c echo.Context, log *zap.Logger, err error) error {
	status := apperr.HTTPStatus(err)
	switch status {
	case http.StatusBadRequest:
		prometheus.RecordError("validation")
	case http.StatusNotFound:
		prometheus.RecordError("not_found")
	case http.StatusForbidden:
		prometheus.RecordError("permission")
	case http.StatusConflict:
		prometheus.RecordError("conflict")
	default:
		prometheus.RecordError("internal")
		log.Error("Request failed", zap.Error(err))
		return c.JSON(status, echo.Map{"error": "internal server error"})
	}

	log.Warn("Request rejected", zap.Int("status", status), zap.Error(err))
	return c.JSON(status, echo.Map{"error": err.Error()})
}

// pathID parses the numeric :id style path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, apperr.Validationf("invalid %s parameter", name)
	}
	return uint(id), nil
}
