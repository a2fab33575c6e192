package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call: both claims must be present, which
// proves the middleware ran and the token carried a usable subject.
func ctxIdentity(c echo.Context) (accountID, role string, err error) {
	accountID, _ = c.Get("account_id").(string)
	role, _ = c.Get("role").(string)
	if accountID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return accountID, role, nil
}
