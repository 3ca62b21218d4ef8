package routes

import (
	"github.com/jswan/mercantile/internal/handler"
	"github.com/jswan/mercantile/internal/router"
)

// Deps contains the handlers behind every route group.
type Deps struct {
	Auth     *handler.AuthHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Return   *handler.ReturnHandler
	Product  *handler.ProductHandler
	Account  *handler.AccountHandler
	Activity *handler.ActivityHandler

	// AuthLimit is applied to the signup and login routes only.
	AuthLimit []router.Middleware
}
