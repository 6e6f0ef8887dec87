// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/retailx/retailx-backend/internal/i18n"
	"github.com/retailx/retailx-backend/internal/services"
	"github.com/retailx/retailx-backend/internal/utils"
)

// errorMessages overrides the default message key per sentinel for one
// endpoint family.
type errorMessages map[error]string

// respondError maps a service error onto the HTTP error body. Anything
// that is not a domain sentinel is logged and hidden behind a 500.
func respondError(c *gin.Context, err error, keys errorMessages) {
	lang := utils.GetLangFromContext(c)
	key := func(sentinel error, def string) string {
		if k, ok := keys[sentinel]; ok {
			return k
		}
		return def
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, key(services.ErrNotFound, i18n.KeyNotFound))
	case errors.Is(err, services.ErrInvalidNumber):
		utils.InvalidNumberResponse(c, services.Detail(err))
	case errors.Is(err, services.ErrValidation):
		var details interface{}
		if d := services.Detail(err); d != "" {
			details = d
		}
		utils.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR",
			i18n.T(lang, key(services.ErrValidation, i18n.KeyValidationFields)), details)
	case errors.Is(err, services.ErrWeakPassword):
		utils.ErrorResponse(c, http.StatusBadRequest, "WEAK_PASSWORD",
			i18n.T(lang, key(services.ErrWeakPassword, i18n.KeyAuthWeakPassword)), nil)
	case errors.Is(err, services.ErrNothingToUpdate):
		utils.BadRequestResponse(c, i18n.T(lang, key(services.ErrNothingToUpdate, i18n.KeySellerNothingToUpdate)), nil)
	case errors.Is(err, services.ErrAlreadyExists):
		utils.ConflictResponse(c, i18n.T(lang, key(services.ErrAlreadyExists, i18n.KeyAuthUserExists)))
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
	case errors.Is(err, services.ErrInvalidAdminKey):
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAdminInvalidKey))
	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("Request failed")
		utils.InternalErrorResponse(c)
	}
}

// bindJSON decodes the body into req, answering 400 on malformed input.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}
	return true
}

// principal returns the authenticated email. Routes using it sit behind
// AuthRequired, so a missing value is a wiring error.
func principal(c *gin.Context) (string, bool) {
	email, ok := utils.GetEmailFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
	}
	return email, ok
}
