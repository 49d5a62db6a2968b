package router

import (
	"roktoSheba/internal/rest"

	"github.com/labstack/echo/v4"
)

// Guards holds the access control chain shared by the route groups.
// AdminOnly is empty unless admin role enforcement is switched on.
type Guards struct {
	AuthRequired echo.MiddlewareFunc
	OwnerOnly    echo.MiddlewareFunc
	AdminOnly    []echo.MiddlewareFunc
}

func (g Guards) admin() []echo.MiddlewareFunc {
	return append([]echo.MiddlewareFunc{g.AuthRequired}, g.AdminOnly...)
}

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, guards Guards) {
	api.POST("/users", handler.Register)
	api.GET("/users", handler.GetAllUsers, guards.admin()...)
	api.GET("/users/role/:email", handler.GetUserRole)
	api.GET("/users/:email", handler.GetUserByEmail, guards.AuthRequired, guards.OwnerOnly)
	api.PATCH("/users/:email", handler.UpdateProfile, guards.AuthRequired, guards.OwnerOnly)
	api.PATCH("/user/status", handler.UpdateStatus, guards.admin()...)
}

func SetupRequestRoutes(api *echo.Group, handler *rest.RequestHandler, guards Guards) {
	api.POST("/request", handler.CreateRequest, guards.AuthRequired)
	api.GET("/my-requests", handler.MyRequests, guards.AuthRequired)
	api.GET("/all-requests", handler.AllRequests, guards.admin()...)

	requests := api.Group("/requests")
	requests.GET("/:id", handler.GetRequest, guards.AuthRequired)
	requests.PATCH("/:id", handler.UpdateRequest, guards.AuthRequired)
	requests.DELETE("/:id", handler.DeleteRequest, guards.admin()...)

	api.GET("/search-request", handler.SearchRequests)
	api.GET("/search-requests", handler.SearchRequests)
}

func SetupAdminRoutes(api *echo.Group, handler *rest.AdminHandler, guards Guards) {
	admin := api.Group("/admin", guards.admin()...)
	admin.GET("/stats", handler.Stats)
	admin.GET("/recent-activities", handler.RecentActivities)
}

func SetPaymentsRoutes(api *echo.Group, paymentsHandler *rest.PaymentsHandler) {
	api.POST("/create-payment-checkout", paymentsHandler.CreateCheckout)
	api.POST("/success-payment", paymentsHandler.SuccessPayment)
}

func SetHealthRoutes(api *echo.Group) {
	api.GET("/", rest.Liveness)
}
