package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/midnighthq/lottery-backend/internal/apperrors"
)

// respondError translates a business-layer error into the HTTP status the
// API contract promises: 404 for missing entities, 409 for uniqueness and
// integrity conflicts, 422 for resolver business failures, 400 for bad
// input. Nothing is swallowed; unknown errors become a 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrAlreadyResolved):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrNoBallotsCast):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrInvalidInput):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// pagination parses offset/limit query parameters. An offset past the end
// of a collection yields an empty list downstream, never an error.
func pagination(c *gin.Context) (offset, limit int64) {
	offset, err := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)
	if err != nil || offset < 0 {
		offset = 0
	}
	limit, err = strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return offset, limit
}
