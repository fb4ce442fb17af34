// Package i18n provides internationalization support for the basket service.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates a conflict with current state.
	ErrKeyConflict = "error.conflict"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
	// ErrKeyValidationBasket indicates an invalid basket payload.
	ErrKeyValidationBasket = "error.validation.basket"
	// ErrKeyProductNotFound indicates an unknown product.
	ErrKeyProductNotFound = "error.product_not_found"
	// ErrKeyPharmacyNotFound indicates an unknown pharmacy.
	ErrKeyPharmacyNotFound = "error.pharmacy_not_found"
	// ErrKeyDuplicateMinsan indicates a product with the same minsan code already exists.
	ErrKeyDuplicateMinsan = "error.duplicate_minsan"
	// ErrKeyItemNotPresent indicates the product is not in the basket.
	ErrKeyItemNotPresent = "error.item_not_present"
	// ErrKeyStorageUnavailable indicates the persistent store is not reachable.
	ErrKeyStorageUnavailable = "error.storage_unavailable"
)

// Success message translation keys.
const (
	// SuccessKeyBasketOptimized indicates a completed optimization run.
	SuccessKeyBasketOptimized = "success.basket_optimized"
)
