package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a code plus a message safe to show to clients.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError turns an unexpected (usually database) error into something a
// client can act on without leaking driver details. context names the
// operation, e.g. "create product".
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Internal server error",
		}
	}

	errLower := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// unique violation: postgres 23505, mysql 1062, sqlite
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(errLower, "duplicate key") ||
		strings.Contains(errLower, "duplicate entry") ||
		strings.Contains(errLower, "unique constraint") {
		return parseDuplicateKeyError(errLower)
	}

	// foreign key violation: postgres 23503
	if errors.Is(err, gorm.ErrForeignKeyViolated) || strings.Contains(errLower, "foreign key constraint") {
		return parseForeignKeyError(errLower)
	}

	if strings.Contains(errLower, "numeric field overflow") || strings.Contains(errLower, "out of range") {
		return ErrorInfo{
			Code:    ValidationInvalidRange,
			Message: "A numeric value is too large",
		}
	}

	if strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "A backing service is unavailable, please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "This email is already registered",
		}
	}
	if strings.Contains(errLower, "slug") {
		return ErrorInfo{
			Code:    CatalogSlugExists,
			Message: "This slug is already in use",
		}
	}
	if strings.Contains(errLower, "active_owner_id") {
		return ErrorInfo{
			Code:    CartMultipleActive,
			Message: "The customer already has an active cart",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "The record already exists",
	}
}

func parseForeignKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "category_id") {
		return ErrorInfo{
			Code:    CatalogCategoryNotFound,
			Message: "The referenced category does not exist",
		}
	}
	if strings.Contains(errLower, "owner_id") || strings.Contains(errLower, "customer_id") {
		return ErrorInfo{
			Code:    CartCustomerNotFound,
			Message: "The referenced customer does not exist",
		}
	}

	return ErrorInfo{
		Code:    ResourceConflict,
		Message: "The record is linked to data that does not exist or still refers to it",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "product"):
		return "Product not found"
	case strings.Contains(contextLower, "category"):
		return "Category not found"
	case strings.Contains(contextLower, "cart"):
		return "Cart not found"
	case strings.Contains(contextLower, "user"):
		return "User not found"
	}
	return "The requested resource was not found"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create"):
		return "Failed to create the record, please try again later"
	case strings.Contains(contextLower, "update"):
		return "Failed to update the record, please try again later"
	case strings.Contains(contextLower, "delete"):
		return "Failed to delete the record, please try again later"
	}
	return "Internal server error, please try again later"
}

// ParseAndRespond writes the parsed error with the given status.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}
