// Package handler exposes the HTTP surface of the sharing service.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shareloop/service-sharing/internal/domain/errs"
)

// statusFor maps an application error kind to an HTTP status. Authorization
// failures on bookings surface as 404 so callers cannot probe which booking
// ids exist.
func statusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound, errs.KindNotOwner, errs.KindNotAuthorized, errs.KindSelfBooking:
		return http.StatusNotFound
	case errs.KindValidation, errs.KindInvalidWindow, errs.KindUnavailable,
		errs.KindAlreadyDecided, errs.KindUnknownState, errs.KindNoCompletedBooking:
		return http.StatusBadRequest
	case errs.KindForbidden:
		return http.StatusForbidden
	case errs.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error response for a failed operation.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := statusFor(errs.KindOf(err))
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// parseWindow extracts the from/size paging query parameters. from defaults
// to 0; size defaults to 0, which means no limit.
func parseWindow(c *gin.Context) (int, int, error) {
	from, err := strconv.Atoi(c.DefaultQuery("from", "0"))
	if err != nil || from < 0 {
		return 0, 0, errors.New("from must be a non-negative integer")
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "0"))
	if err != nil || size < 0 {
		return 0, 0, errors.New("size must be a non-negative integer")
	}
	return from, size, nil
}
