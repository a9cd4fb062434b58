package router

import (
	"net/http"
	"time"

	"github.com/pizza-nz/dish-admin/internal/api/handler"
	"github.com/pizza-nz/dish-admin/internal/config"
	"github.com/pizza-nz/dish-admin/internal/db/repository"
	"github.com/pizza-nz/dish-admin/internal/middleware"
	"github.com/pizza-nz/dish-admin/internal/models"
	"github.com/pizza-nz/dish-admin/internal/service"
	"github.com/pizza-nz/dish-admin/internal/websockets"
)

// Public marks a route that needs no login
const Public models.Role = ""

// route binds a method and path pattern to a handler and the least role
// allowed to call it
type route struct {
	method  string
	path    string
	role    models.Role
	handler http.Handler
}

// Router handles HTTP routing
type Router struct {
	mux     *http.ServeMux
	handler http.Handler
	auth    *service.AuthService
	cfg     config.JWT
}

// New creates a new router
func New(repos *repository.Repositories, hub *websockets.Hub, cfg *config.Config, hasher service.PasswordHasher) *Router {
	auth := service.NewAuthService(repos, service.JWTConfig{
		Secret:    cfg.JWT.Secret,
		ExpiresIn: cfg.JWT.ExpiresIn,
	}, hasher)

	r := &Router{
		mux:  http.NewServeMux(),
		auth: auth,
		cfg:  cfg.JWT,
	}

	// Set up routes
	r.register(r.routes(repos, hub))
	r.handler = middleware.Logger(r.mux)

	return r
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

// routes declares every endpoint with the role it requires
func (r *Router) routes(repos *repository.Repositories, hub *websockets.Hub) []route {
	dishService := service.NewDishService(repos)
	chefService := service.NewChefService(repos)

	dishes := handler.NewDishHandler(dishService, chefService, hub)
	chefs := handler.NewChefHandler(chefService, dishService, hub)
	users := handler.NewUserHandler(r.auth, r.cfg.CookieName, time.Duration(r.cfg.ExpiresIn)*time.Hour)
	health := handler.NewHealthHandler(repos.Ping)
	ws := handler.NewWebSocketHandler(hub)

	admin, user := models.RoleAdmin, models.RoleUser

	return []route{
		// Public routes
		{http.MethodGet, "/healthz", Public, health},
		{http.MethodGet, "/login", Public, http.HandlerFunc(users.LoginPage)},
		{http.MethodPost, "/login", Public, http.HandlerFunc(users.Login)},
		{http.MethodPost, "/logout", Public, http.HandlerFunc(users.Logout)},
		{http.MethodPost, "/register", Public, http.HandlerFunc(users.Register)},

		// Read routes
		{http.MethodGet, "/me", user, http.HandlerFunc(users.Me)},
		{http.MethodGet, "/dishes", user, http.HandlerFunc(dishes.List)},
		{http.MethodGet, "/dishes/{id}", user, http.HandlerFunc(dishes.Get)},
		{http.MethodGet, "/dishes/code/{code}", user, http.HandlerFunc(dishes.GetByCode)},
		{http.MethodGet, "/chefs", user, http.HandlerFunc(chefs.List)},
		{http.MethodGet, "/chefs/{id}", user, http.HandlerFunc(chefs.Get)},
		{http.MethodGet, "/chefs/dishes/{id}", user, http.HandlerFunc(chefs.Dishes)},
		{http.MethodGet, "/ws", user, ws},

		// Dish administration
		{http.MethodPost, "/dishes", admin, http.HandlerFunc(dishes.Create)},
		{http.MethodPut, "/dishes/{id}", admin, http.HandlerFunc(dishes.Update)},
		{http.MethodDelete, "/dishes/{id}", admin, http.HandlerFunc(dishes.Delete)},
		{http.MethodPost, "/dishes/add", admin, http.HandlerFunc(dishes.AddForm)},
		{http.MethodPost, "/dishes/edit/{id}", admin, http.HandlerFunc(dishes.EditForm)},
		{http.MethodPost, "/dishes/delete/{id}", admin, http.HandlerFunc(dishes.DeleteForm)},
		{http.MethodGet, "/dishes/dish-form", admin, http.HandlerFunc(dishes.FormData)},
		{http.MethodGet, "/dishes/dish-form/{id}", admin, http.HandlerFunc(dishes.FormData)},

		// Chef administration
		{http.MethodPost, "/chefs", admin, http.HandlerFunc(chefs.Create)},
		{http.MethodPut, "/chefs/{id}", admin, http.HandlerFunc(chefs.Update)},
		{http.MethodDelete, "/chefs/{id}", admin, http.HandlerFunc(chefs.Delete)},
		{http.MethodPost, "/chefs/add", admin, http.HandlerFunc(chefs.AddForm)},
		{http.MethodPost, "/chefs/edit/{id}", admin, http.HandlerFunc(chefs.EditForm)},
		{http.MethodPost, "/chefs/delete/{id}", admin, http.HandlerFunc(chefs.DeleteForm)},
		{http.MethodGet, "/chefs/chef-form", admin, http.HandlerFunc(chefs.FormData)},
		{http.MethodGet, "/chefs/chef-form/{id}", admin, http.HandlerFunc(chefs.FormData)},

		// User administration
		{http.MethodPost, "/users", admin, http.HandlerFunc(users.CreateUser)},
	}
}

// register mounts each route behind the authorization gate for its role
func (r *Router) register(routes []route) {
	for _, rt := range routes {
		gate := middleware.Authorize(r.auth, r.cfg.CookieName, rt.role)
		r.mux.Handle(rt.method+" "+rt.path, gate(rt.handler))
	}
}
