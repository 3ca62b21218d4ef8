package routes

import (
	"github.com/jswan/mercantile/internal/domain"
	"github.com/jswan/mercantile/internal/middleware"
	"github.com/jswan/mercantile/internal/router"
)

// Register wires every route. Public routes need no token; customer routes
// need any authenticated user; staff routes need an employee or admin role.
func Register(r *router.Router, deps Deps) {
	// Public. Credential endpoints get the stricter rate limit.
	r.Post("/auth/signup", deps.Auth.Signup, deps.AuthLimit...)
	r.Post("/auth/login", deps.Auth.Login, deps.AuthLimit...)
	r.Get("/products", deps.Product.List)
	r.Get("/products/{id}", deps.Product.Get)
	r.Get("/categories", deps.Product.ListCategories)
	r.Get("/sale-events", deps.Product.ListSaleEvents)

	// Authenticated customers
	customer := r.Group(middleware.RequireAuth)
	customer.Post("/shopping_cart/create", deps.Cart.Create)
	customer.Get("/cart", deps.Cart.Get)
	customer.Post("/cart-items/add", deps.Cart.AddItem)
	customer.Delete("/cart-items", deps.Cart.RemoveItem)
	customer.Post("/cart/merge", deps.Cart.Merge)

	customer.Post("/orders", deps.Order.Place)
	customer.Get("/orders", deps.Order.List)
	customer.Get("/orders/{id}", deps.Order.Get)

	customer.Post("/customer/returns", deps.Return.Request)
	customer.Get("/customer/returns/{id}", deps.Return.Get)

	customer.Post("/addresses", deps.Account.CreateAddress)
	customer.Post("/payment-methods", deps.Account.AddPaymentMethod)
	customer.Get("/payment-methods", deps.Account.ListPaymentMethods)
	customer.Delete("/payment-methods/{id}", deps.Account.RemovePaymentMethod)

	// Back office
	staff := r.Group(middleware.RequireStaff)
	staff.Put("/orders/{id}", deps.Order.UpdateStatus)
	staff.Get("/staff/returns", deps.Return.ListPending)
	staff.Put("/staff/returns/{id}", deps.Return.Decide)
	staff.Post("/products/{id}/restock", deps.Product.Restock)
	staff.Get("/staff/low-stock", deps.Product.ListLowStock)
	staff.Get("/staff/activity", deps.Activity.List)

	// Catalog management is admin only
	admin := r.Group(middleware.RequireRole(domain.RoleAdmin))
	admin.Post("/products", deps.Product.Create)
	admin.Put("/products/{id}", deps.Product.Update)
	admin.Post("/sale-events", deps.Product.CreateSaleEvent)
	admin.Delete("/sale-events/{id}", deps.Product.DeleteSaleEvent)
}
