package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/gadgetshop-backend/internal/app/service"
	apperrors "github.com/ikkim/gadgetshop-backend/internal/errors"
	"github.com/ikkim/gadgetshop-backend/internal/middleware"
)

type serviceError struct {
	target  error
	status  int
	code    string
	message string
}

// serviceErrors is checked in order; specific not-found errors come before
// the generic ErrNotFound they wrap.
var serviceErrors = []serviceError{
	{service.ErrUnknownVariant, http.StatusNotFound, apperrors.CatalogUnknownVariant, "Unknown product variant"},
	{service.ErrProductNotFound, http.StatusNotFound, apperrors.CatalogProductNotFound, "Product not found"},
	{service.ErrCategoryNotFound, http.StatusNotFound, apperrors.CatalogCategoryNotFound, "Category not found"},
	{service.ErrCustomerNotFound, http.StatusNotFound, apperrors.CartCustomerNotFound, "Customer not found"},
	{service.ErrCartNotFound, http.StatusNotFound, apperrors.CartNotFound, "No active cart"},
	{service.ErrCartLineNotFound, http.StatusNotFound, apperrors.CartLineNotFound, "Cart line not found"},
	{service.ErrUserNotFound, http.StatusNotFound, apperrors.ResourceNotFound, "User not found"},
	{service.ErrNotFound, http.StatusNotFound, apperrors.ResourceNotFound, "Not found"},
	{service.ErrEmailAlreadyExists, http.StatusConflict, apperrors.AuthEmailAlreadyExists, "This email is already registered"},
	{service.ErrDuplicateKey, http.StatusConflict, apperrors.CatalogSlugExists, "This slug is already in use"},
	{service.ErrDanglingReference, http.StatusConflict, apperrors.CartDanglingReference, "The cart refers to a product that no longer exists"},
	{service.ErrMultipleActiveCarts, http.StatusConflict, apperrors.CartMultipleActive, "The customer has more than one active cart"},
	{service.ErrCartClosed, http.StatusConflict, apperrors.CartClosed, "The cart has already been ordered"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Invalid email or password"},
}

// respondServiceError maps a service error to its HTTP reply. Errors the
// services do not define fall through to the database error parser.
func respondServiceError(c *gin.Context, err error, context string) {
	log := middleware.GetLoggerFromContext(c)

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		log.Warn("Request rejected by validation", map[string]interface{}{
			"field":  verr.Field,
			"reason": verr.Reason,
		})
		apperrors.RespondWithValidationError(c, map[string]string{verr.Field: verr.Reason})
		return
	}

	for _, se := range serviceErrors {
		if errors.Is(err, se.target) {
			log.Warn("Request failed", map[string]interface{}{
				"context": context,
				"error":   err.Error(),
			})
			apperrors.RespondWithError(c, se.status, se.code, se.message)
			return
		}
	}

	log.Error("Unexpected error", err, map[string]interface{}{
		"context": context,
	})
	apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, context)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// requireCustomer reads the customer profile of the authenticated account.
func requireCustomer(c *gin.Context) (uint, bool) {
	if _, ok := middleware.GetUserID(c); !ok {
		apperrors.Unauthorized(c, "")
		return 0, false
	}
	customerID, ok := middleware.GetCustomerID(c)
	if !ok {
		apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthNoCustomerProfile, "This account has no customer profile")
		return 0, false
	}
	return customerID, true
}
