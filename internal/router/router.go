package router

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"

	"bookshelf/internal/auth"
	"bookshelf/internal/handler"
	"bookshelf/internal/logger"
	"bookshelf/internal/service"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Item      *handler.ItemHandler
	Goal      *handler.GoalHandler
	Wishlist  *handler.WishlistHandler
	Loan      *handler.LoanHandler
	Dashboard *handler.DashboardHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	log *logrus.Logger,
	jwtService *auth.JWTService,
	users service.UserService,
	h Handlers,
) {
	e.Use(middleware.RequestID())
	e.Use(logger.Middleware(log))
	e.Use(middleware.Recover())

	e.Validator = handler.NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/logout", h.Auth.Logout)

	// Secured routes: a valid session token that resolves to an active user.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ,cookie:" + auth.CookieName,
		ContextKey:  handler.ClaimsContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return handler.AuthRequired()
		},
	}), handler.SessionGate(users))

	secured.GET("/me", h.User.GetMe)
	secured.PUT("/me", h.User.UpdateMe)

	// Item routes
	secured.GET("/items", h.Item.List)
	secured.POST("/items", h.Item.Create)
	secured.GET("/items/categories", h.Item.Categories)
	secured.GET("/items/:id", h.Item.Get)
	secured.PUT("/items/:id", h.Item.Update)
	secured.DELETE("/items/:id", h.Item.Delete)
	secured.PATCH("/items/:id/status", h.Item.SetStatus)
	secured.PATCH("/items/:id/rating", h.Item.SetRating)
	secured.POST("/items/:id/favorite", h.Item.ToggleFavorite)

	// Loan routes
	secured.POST("/items/:id/loans", h.Loan.Lend)
	secured.GET("/loans", h.Loan.List)
	secured.POST("/loans/:id/return", h.Loan.Return)

	// Goal routes
	secured.GET("/goals/current", h.Goal.Current)
	secured.PUT("/goals/:year", h.Goal.Set)

	// Wishlist routes
	secured.GET("/wishlist", h.Wishlist.List)
	secured.POST("/wishlist", h.Wishlist.Create)
	secured.DELETE("/wishlist/:id", h.Wishlist.Delete)

	secured.GET("/dashboard", h.Dashboard.Dashboard)
	secured.GET("/export", h.Dashboard.Export)
}
