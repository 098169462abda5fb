package errors

// Error code constants surfaced to the presentation layer.
// Format: CATEGORY_SPECIFIC_DETAIL. The UI maps codes to display copy.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // session required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthSessionExpired     = "AUTH_SESSION_EXPIRED"     // stale token
	AuthNoRole             = "AUTH_NO_ROLE"             // user carries no roles

	// ==================== Validation (VALIDATION_) ====================
	ValidationRequired = "VALIDATION_REQUIRED" // missing or rejected form field

	// ==================== Cart (CART_) ====================
	CartItemNotFound = "CART_ITEM_NOT_FOUND" // no such line
	CartMergeFailed  = "CART_MERGE_FAILED"   // guest cart adoption rejected

	// ==================== Catalog (PRODUCT_) ====================
	ProductNotFound = "PRODUCT_NOT_FOUND" // no such product

	// ==================== Transport (NETWORK_) ====================
	NetworkUnavailable = "NETWORK_UNAVAILABLE" // backend unreachable

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR" // backend fault
	InternalError       = "INTERNAL_ERROR"        // anything else
)
