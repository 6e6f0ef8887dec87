// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyInternalError     = "error.internal"
	KeyValidationInvalid = "validation.invalid"
	KeyValidationFields  = "validation.missing_fields"
	KeyInvalidNumber     = "validation.invalid_number"
	KeyRateLimited       = "error.rate_limited"
	KeyNotFound          = "error.not_found"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthCredentialsMissing = "auth.credentials_missing"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthWeakPassword       = "auth.weak_password"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAuthForbidden          = "auth.forbidden"

	// Sellers
	KeySellerExists          = "seller.exists"
	KeySellerRegistered      = "seller.registered"
	KeySellerNotFound        = "seller.not_found"
	KeySellerProfileUpdated  = "seller.profile_updated"
	KeySellerNothingToUpdate = "seller.nothing_to_update"

	// Admin
	KeyAdminInvalidKey     = "admin.invalid_key"
	KeyAdminExists         = "admin.exists"
	KeyAdminWeakPassword   = "admin.weak_password"
	KeyAdminRegistered     = "admin.registered"
	KeyAdminWelcome        = "admin.welcome"
	KeyAdminFieldsRequired = "admin.fields_required"
	KeyAdminStatusUpdated  = "admin.status_updated"

	// Products
	KeyProductCreated      = "product.created"
	KeyProductUpdated      = "product.updated"
	KeyProductDeleted      = "product.deleted"
	KeyProductNotFound     = "product.not_found"
	KeyProductStockUpdated = "product.stock_updated"
	KeyProductImageMissing = "product.image_missing"

	// Preferences
	KeyPreferencesTooFew = "preferences.too_few"
	KeyPreferencesSaved  = "preferences.saved"

	// Chat
	KeyChatEmpty = "chat.empty"
	KeyChatBusy  = "chat.busy"
)
