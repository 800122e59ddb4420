package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"risk-advisor/internal/advisory"
	pkgErrors "risk-advisor/pkg/errors"
	"risk-advisor/pkg/response"
)

var errInvalidBody = errors.New("invalid request body")

// mapError translates use-case errors into HTTP errors from pkg/errors.
// Anything unmapped is reported as ErrInternalServerError.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, advisory.ErrEmptySessionID):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return pkgErrors.ErrInternalServerError
	}
}

// abort writes the mapped error. Internal failures never echo their cause.
func (h *handler) abort(c *gin.Context, err error) {
	mapped := h.mapError(err)
	if mapped == pkgErrors.ErrInternalServerError {
		response.InternalError(c, err)
		return
	}
	response.Error(c, mapped)
}
