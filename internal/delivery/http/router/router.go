// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"citynav/internal/delivery/http/middleware"
	"citynav/internal/delivery/http/router/handler"
	"citynav/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	HealthHandler   *handler.HealthHandler
	UserHandler     *handler.UserHandler
	CityHandler     *handler.CityHandler
	LocationHandler *handler.LocationHandler
	RoadHandler     *handler.RoadHandler
	RouteHandler    *handler.RouteHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	healthHandler   *handler.HealthHandler
	userHandler     *handler.UserHandler
	cityHandler     *handler.CityHandler
	locationHandler *handler.LocationHandler
	roadHandler     *handler.RoadHandler
	routeHandler    *handler.RouteHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		healthHandler:   params.HealthHandler,
		userHandler:     params.UserHandler,
		cityHandler:     params.CityHandler,
		locationHandler: params.LocationHandler,
		roadHandler:     params.RoadHandler,
		routeHandler:    params.RouteHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", r.healthHandler.Check)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.RegisterUser)
		authGroup.POST("/login", r.userHandler.Login)
	}

	// Reads are public; writes require a contributor role. The owner check
	// on updates and deletes happens in the service layer.
	contributor := []echo.MiddlewareFunc{
		r.authMiddleware.Authenticate,
		r.authMiddleware.RequireRole(string(entity.RoleAdmin), string(entity.RoleCollaborator)),
	}

	cityGroup := e.Group("/cities")
	{
		cityGroup.GET("", r.cityHandler.ListCities)
		cityGroup.GET("/:id", r.cityHandler.GetCity)
		cityGroup.POST("", r.cityHandler.CreateCity, contributor...)
		cityGroup.PUT("/:id", r.cityHandler.UpdateCity, contributor...)
		cityGroup.DELETE("/:id", r.cityHandler.DeleteCity, contributor...)
	}

	locationGroup := e.Group("/locations")
	{
		locationGroup.GET("", r.locationHandler.ListLocations)
		locationGroup.GET("/:id", r.locationHandler.GetLocation)
		locationGroup.POST("", r.locationHandler.CreateLocation, contributor...)
		locationGroup.PUT("/:id", r.locationHandler.UpdateLocation, contributor...)
		locationGroup.DELETE("/:id", r.locationHandler.DeleteLocation, contributor...)
	}

	roadGroup := e.Group("/roads")
	{
		roadGroup.GET("", r.roadHandler.ListRoads)
		roadGroup.GET("/:id", r.roadHandler.GetRoad)
		roadGroup.POST("", r.roadHandler.CreateRoad, contributor...)
		roadGroup.PUT("/:id", r.roadHandler.UpdateRoad, contributor...)
		roadGroup.DELETE("/:id", r.roadHandler.DeleteRoad, contributor...)
	}

	// Route planning works anonymously; a valid token saves the route to
	// the caller's history.
	routeGroup := e.Group("/routes")
	{
		routeGroup.POST("", r.routeHandler.PlanRoute, r.authMiddleware.OptionalAuthenticate)
		routeGroup.GET("/history", r.routeHandler.ListHistory, r.authMiddleware.Authenticate)
	}
}
