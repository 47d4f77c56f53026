package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// businessStatus maps known business codes to HTTP statuses. Codes not
// listed here answer 400.
var businessStatus = map[string]int{
	"user_not_found":        http.StatusBadRequest,
	"salon_not_found":       http.StatusNotFound,
	"service_not_found":     http.StatusNotFound,
	"booking_not_found":     http.StatusNotFound,
	"review_not_found":      http.StatusNotFound,
	"forbidden":             http.StatusForbidden,
	"invalid_credentials":   http.StatusUnauthorized,
	"account_not_verified":  http.StatusUnauthorized,
	"invalid_state":         http.StatusBadRequest,
	"invalid_date_or_time":  http.StatusBadRequest,
	"already_reviewed":      http.StatusBadRequest,
	"email_already_exists":  http.StatusBadRequest,
	"invalid_otp":           http.StatusBadRequest,
	"otp_expired":           http.StatusBadRequest,
	"email_delivery_failed": http.StatusInternalServerError,
}

// Handle is the single funnel for handler-level failures: it maps known
// error shapes onto the taxonomy and emits the uniform envelope.
// Unrecognized errors default to internal/500.
func Handle(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		status, ok := businessStatus[be.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		Write(c, status, be.Code, be.Code)
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		NotFound(c, "not_found", "Resource not found.")
		return
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		Conflict(c, "duplicate_value", "A record with this value already exists.")
		return
	}

	if errors.Is(err, jwt.ErrTokenExpired) {
		Unauthorized(c, "token_expired", "Token expired.")
		return
	}
	if errors.Is(err, jwt.ErrTokenMalformed) || errors.Is(err, jwt.ErrSignatureInvalid) {
		Unauthorized(c, "invalid_token", "Invalid token.")
		return
	}

	_ = c.Error(err)
	Internal(c, "internal_error", "An unexpected error occurred.")
}
