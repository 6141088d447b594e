package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/feastline/feastline-backend/api/controllers"
	"github.com/feastline/feastline-backend/api/middleware"
	cartsvc "github.com/feastline/feastline-backend/internal/cart"
	checkoutsvc "github.com/feastline/feastline-backend/internal/checkout"
	ordersvc "github.com/feastline/feastline-backend/internal/orders"
	"github.com/feastline/feastline-backend/internal/realtime"
	restaurantsvc "github.com/feastline/feastline-backend/internal/restaurants"
	"github.com/feastline/feastline-backend/pkg/config"
	"github.com/feastline/feastline-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          pinger
	Redis       pinger
	Carts       cartsvc.Service
	Checkout    checkoutsvc.Service
	Orders      ordersvc.Service
	Restaurants restaurantsvc.Service
	Hub         *realtime.Hub
	Metrics     prometheus.Gatherer
}

// NewRouter assembles the HTTP surface.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Get("/healthz", controllers.Health(deps.DB, deps.Redis, logg))
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireCustomer(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Post("/toggle", controllers.CartToggle(deps.Carts, logg))
				r.Post("/quantity", controllers.CartSetQuantity(deps.Carts, logg))
				r.Put("/lines/{lineID}/note", controllers.CartSetLineNote(deps.Carts, logg))
				r.Get("/{restaurantID}", controllers.CartItems(deps.Carts, logg))
			})
			r.Get("/carts", controllers.CartList(deps.Carts, logg))

			r.Post("/checkout", controllers.Checkout(deps.Checkout, logg))
			r.Get("/orders", controllers.UserOrders(deps.Orders, logg))
		})

		r.Get("/orders/{orderID}", controllers.OrderDetail(deps.Orders, logg))

		r.Route("/restaurant", func(r chi.Router) {
			r.Use(middleware.RequireRestaurant(logg))

			r.Get("/profile", controllers.RestaurantProfile(deps.Restaurants, logg))
			r.Post("/availability/toggle", controllers.RestaurantToggleClosed(deps.Restaurants, logg))
			r.Put("/availability/hours", controllers.RestaurantUpdateHours(deps.Restaurants, logg))

			r.Get("/dashboard", controllers.RestaurantDashboard(deps.Orders, logg))
			r.Post("/orders/{orderID}/advance", controllers.OrderAdvance(deps.Orders, logg))
			r.Post("/orders/{orderID}/delivering", controllers.OrderDelivering(deps.Orders, logg))
			r.Post("/orders/{orderID}/delivered", controllers.OrderDelivered(deps.Orders, logg))

			r.Get("/stream", controllers.OrderStream(deps.Hub, cfg.Realtime, logg))
		})
	})

	return r
}
