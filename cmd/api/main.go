package main

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/samytrends/retail-api/internal/config"
	"github.com/samytrends/retail-api/internal/modules/auth"
	"github.com/samytrends/retail-api/internal/modules/cart"
	"github.com/samytrends/retail-api/internal/modules/catalog"
	"github.com/samytrends/retail-api/internal/modules/checkout"
	"github.com/samytrends/retail-api/internal/modules/media"
	"github.com/samytrends/retail-api/internal/modules/order"
	"github.com/samytrends/retail-api/internal/modules/payment"
	"github.com/samytrends/retail-api/internal/modules/pos"
	"github.com/samytrends/retail-api/internal/modules/report"
	"github.com/samytrends/retail-api/internal/modules/stock"
	"github.com/samytrends/retail-api/internal/modules/user"
	"github.com/samytrends/retail-api/pkg/logger"
)

func main() {
	log := logger.Must(logger.New())
	defer log.Sync()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.URL != "" {
		if err := db.Ping(); err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}
		log.Info("connected to database")
	} else {
		log.Warn("no DATABASE_URL set, running with the demo catalog only")
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// ── Phase 1: Identity & Access ──────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)

	authService := auth.NewService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	auth.NewHandler(authService).RegisterRoutes(router)

	authenticate := auth.Authenticate(authService)
	adminOnly := compose(authenticate, auth.RequireRole(string(user.RoleAdmin)))
	counter := compose(authenticate, auth.RequireRole(string(user.RoleAdmin), string(user.RoleCashier)))

	user.NewHandler(userService, adminOnly).RegisterRoutes(router)

	// ── Phase 2: Catalog & Stock ────────────────────────────
	var catalogRepo catalog.Repository
	if cfg.Catalog.DataSource == "fixture" {
		catalogRepo = catalog.NewFixtureRepository()
	} else {
		catalogRepo = catalog.NewPostgresRepository(db)
	}
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService, adminOnly).RegisterRoutes(router)

	stockRepo := stock.NewPostgresRepository(db)
	stockService := stock.NewService(catalogRepo, stockRepo)
	stock.NewHandler(stockService, adminOnly).RegisterRoutes(router)

	// ── Phase 3: Storefront Cart ────────────────────────────
	cartRepo := cart.NewPostgresRepository(db)
	cartService := cart.NewService(cartRepo, catalogRepo)
	cart.NewHandler(cartService, authenticate).RegisterRoutes(router)

	// ── Phase 4: Orders ─────────────────────────────────────
	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo)
	order.NewHandler(orderService, authenticate, adminOnly).RegisterRoutes(router)

	// ── Phase 5: Payments & Checkout ────────────────────────
	gateway := payment.NewRazorpayGateway(cfg.Razorpay)
	paymentRepo := payment.NewPostgresRepository(db)
	paymentService := payment.NewService(gateway, paymentRepo)
	payment.NewHandler(paymentService, adminOnly).RegisterRoutes(router)

	checkoutService := checkout.NewService(cartService, orderRepo, userRepo, paymentService, logger.Named(log, "checkout"))
	checkout.NewHandler(checkoutService, authenticate).RegisterRoutes(router)

	// ── Phase 6: POS Counter ────────────────────────────────
	posService := pos.NewService(catalogRepo, orderRepo, logger.Named(log, "pos"))
	pos.NewHandler(posService, counter).RegisterRoutes(router)

	// ── Phase 7: Media & Reports ────────────────────────────
	mediaStorage := media.NewDiskStorage(cfg.Media)
	media.NewHandler(mediaStorage, cfg.Media, adminOnly).RegisterRoutes(router)

	reportRepo := report.NewPostgresRepository(db)
	reportService := report.NewService(orderRepo, catalogRepo, reportRepo)
	report.NewHandler(reportService, adminOnly).RegisterRoutes(router)

	scheduler, err := report.NewScheduler(reportService, cfg.Report.CronSchedule, logger.Named(log, "report"))
	if err != nil {
		log.Fatal("invalid report schedule", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	// ── Start Server ────────────────────────────────────────
	addr := ":" + cfg.Server.Port
	log.Info("server listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// compose chains middlewares left to right, outermost first.
func compose(mws ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}
