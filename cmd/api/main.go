package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"panedelivery/internal/cache"
	"panedelivery/internal/config"
	"panedelivery/internal/database"
	"panedelivery/internal/events"
	"panedelivery/internal/logger"
	"panedelivery/internal/middleware"
	"panedelivery/internal/modules/admin"
	"panedelivery/internal/modules/adslot"
	"panedelivery/internal/modules/auth"
	"panedelivery/internal/modules/catalog"
	"panedelivery/internal/modules/order"
	jwtsvc "panedelivery/internal/pkg/jwt"
	"panedelivery/internal/repository"
	"panedelivery/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Setup(cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	rdb := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if rdb == nil {
		log.Warn("redis unavailable, display projection runs uncached")
	}
	displayCache := cache.NewDisplayCache(rdb)

	producer := events.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic, log)
	if producer == nil {
		log.Warn("kafka broker not configured, ad events are dropped")
	}
	defer producer.Close()

	hub := ws.NewHub()
	defer hub.Close()

	userRepo := repository.NewUserRepository(db)
	bakeryRepo := repository.NewBakeryRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	adSpaceRepo := repository.NewAdSpaceRepository(db)
	slotRepo := repository.NewSlotBookingRepository(db)
	impressionRepo := repository.NewImpressionRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.TokenTTL)

	authHandler := auth.NewHandler(auth.NewService(userRepo, j))
	catalogHandler := catalog.NewHandler(catalog.NewService(bakeryRepo, productRepo, userRepo))
	orderHandler := order.NewHandler(order.NewService(orderRepo, productRepo, bakeryRepo))

	slotService := adslot.NewService(slotRepo, adSpaceRepo, hub, log, nil)
	displayService := adslot.NewDisplayService(slotRepo, adSpaceRepo, displayCache, producer, log, nil)
	adslotHandler := adslot.NewHandler(slotService, displayService, hub, log)

	adminService := admin.NewService(userRepo, slotRepo, impressionRepo, statsRepo, hub, log, nil)
	adminHandler := admin.NewHandler(adminService)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/metrics", middleware.PrometheusHandler())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		adslotHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)

			customer := protected.Group("/")
			customer.Use(middleware.RequireRole("customer"))
			orderHandler.RegisterCustomerRoutes(customer)

			baker := protected.Group("/")
			baker.Use(middleware.BakerOnly())
			catalogHandler.RegisterBakerRoutes(baker)
			orderHandler.RegisterBakerRoutes(baker)

			sponsor := protected.Group("/")
			sponsor.Use(middleware.SponsorOnly())
			adslotHandler.RegisterSponsorRoutes(sponsor)

			adminGroup := protected.Group("/admin")
			adminGroup.Use(middleware.AdminOnly())
			adminHandler.RegisterRoutes(adminGroup)
		}
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown incomplete")
	}
}
