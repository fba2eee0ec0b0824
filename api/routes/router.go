package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/growly/growly-web/api/controllers"
	"github.com/growly/growly-web/api/middleware"
	"github.com/growly/growly-web/internal/auth"
	"github.com/growly/growly-web/internal/dashboard"
	"github.com/growly/growly-web/internal/growth"
	"github.com/growly/growly-web/internal/orders"
	"github.com/growly/growly-web/internal/plans"
	"github.com/growly/growly-web/internal/posts"
	"github.com/growly/growly-web/internal/reviews"
	"github.com/growly/growly-web/internal/subscribers"
	"github.com/growly/growly-web/internal/tickets"
	"github.com/growly/growly-web/internal/users"
	"github.com/growly/growly-web/pkg/auth/session"
	"github.com/growly/growly-web/pkg/config"
	"github.com/growly/growly-web/pkg/db"
	"github.com/growly/growly-web/pkg/enums"
	"github.com/growly/growly-web/pkg/logger"
	"github.com/growly/growly-web/pkg/metrics"
	"github.com/growly/growly-web/pkg/redis"
)

// Deps is everything the router wires into handlers. Redis and Metrics
// may be nil.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	UI       *controllers.UI
	DB       db.Pinger
	Redis    *redis.Client
	Sessions *session.Manager
	Registry prometheus.Gatherer
	Metrics  *metrics.HTTPMetrics

	Auth        auth.Service
	Users       users.Service
	Posts       posts.Service
	Plans       plans.Service
	Orders      orders.Service
	Tickets     tickets.Service
	Subscribers subscribers.Service
	Reviews     *reviews.Repository
	Growth      growth.Service
	Dashboard   dashboard.Service
}

func NewRouter(d Deps) http.Handler {
	cfg, logg, ui := d.Config, d.Logger, d.UI

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.Metrics),
	)

	ready := map[string]controllers.Pinger{"database": d.DB}
	if d.Redis != nil {
		ready["redis"] = d.Redis
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, ready))
	})
	if d.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	rl := cfg.AuthRateLimit
	loginLimit := middleware.NewAuthRateLimitPolicy("login", rl.LoginWindow, rl.LoginIPLimit, rl.LoginEmailLimit)
	signupLimit := middleware.NewAuthRateLimitPolicy("signup", rl.SignupWindow, rl.SignupIPLimit, rl.SignupEmailLimit)

	r.Group(func(r chi.Router) {
		r.Use(
			middleware.CSRF(cfg.CSRF, cfg.Session, logg),
			middleware.Session(d.Sessions, d.Users, logg),
		)

		r.Get("/", controllers.Home(d.Plans, d.Reviews, ui))
		r.Get("/faq", controllers.FAQ(ui))
		r.Get("/pricing", controllers.Pricing(d.Plans, ui))
		r.Get("/blogs", controllers.BlogList(d.Posts, ui))
		r.Get("/blog/{id}", controllers.BlogDetail(d.Posts, ui))

		r.Get("/login", controllers.LoginForm(ui))
		r.With(rateLimit(loginLimit, d.Redis, logg)).Post("/login", controllers.Login(d.Auth, d.Sessions, ui))
		r.Get("/signup", controllers.SignupForm(ui))
		r.With(rateLimit(signupLimit, d.Redis, logg)).Post("/signup", controllers.Signup(d.Auth, d.Sessions, ui))
		r.Get("/logout", controllers.Logout(d.Sessions, ui))

		r.Get("/contact", controllers.ContactForm(ui))
		r.Post("/contact_submit", controllers.ContactSubmit(d.Tickets, ui))
		r.Post("/subscribe", controllers.Subscribe(d.Subscribers, ui))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.RoleUser, enums.RoleStaff, enums.RoleAdmin))
			r.Get("/checkout", controllers.CheckoutPage(d.Plans, d.Orders, ui))
			r.Post("/checkout", controllers.CheckoutSubmit(d.Orders, d.Plans, ui))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.RoleAdmin))
			r.Get("/dashboard", controllers.Dashboard(d.Dashboard, ui))
			r.Route("/admin", func(r chi.Router) {
				r.Post("/create_post", controllers.CreatePost(d.Posts, d.Dashboard, ui))
				r.Post("/assign_role", controllers.AssignRole(d.Users, ui))
				r.Post("/orders/{id}/status", controllers.OrderStatus(d.Orders, ui))
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.RoleStaff, enums.RoleAdmin))
			r.Route("/staff", func(r chi.Router) {
				r.Get("/", controllers.StaffPanel(d.Users, d.Tickets, ui))
				r.Get("/user_detail/{id}", controllers.UserDetail(d.Users, ui))
				r.Post("/add", controllers.StaffAdd(d.Users, ui))
				r.Post("/promote", controllers.Promote(d.Users, ui))
				r.Post("/demote", controllers.Demote(d.Users, ui))
				r.Post("/delete", controllers.DeleteUser(d.Users, ui))
				r.Post("/metrics", controllers.AppendMetrics(d.Users, d.Growth, ui))
				r.Post("/toggle_unsubscribe", controllers.ToggleUnsubscribe(d.Users, ui))
				r.Post("/tickets/{id}/close", controllers.CloseTicket(d.Tickets, ui))
				r.Post("/status/{id}", controllers.UpdateStatus(d.Users, ui))
				r.Post("/targets/{id}", controllers.UpdateTargets(d.Users, ui))
			})
			r.Get("/performance", controllers.Performance(d.Users, d.Growth, ui))
			r.Get("/performance/{userId}", controllers.Performance(d.Users, d.Growth, ui))
		})
	})

	return r
}

// rateLimit skips throttling when redis is not configured.
func rateLimit(policy middleware.AuthRateLimitPolicy, store *redis.Client, logg *logger.Logger) func(http.Handler) http.Handler {
	if store == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return middleware.AuthRateLimit(policy, store, logg)
}
