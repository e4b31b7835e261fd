package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"bookshelf/docs"
	"bookshelf/internal/auth"
	"bookshelf/internal/cache"
	"bookshelf/internal/config"
	"bookshelf/internal/db"
	"bookshelf/internal/handler"
	"bookshelf/internal/logger"
	"bookshelf/internal/repository"
	"bookshelf/internal/router"
	"bookshelf/internal/service"
)

// @title Bookshelf API
// @version 1.0
// @description Personal library: collection, reading statistics, goals, wishlist and loans.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log := logger.New(cfg.LogLevel)

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if cfg.ResetDB {
		log.Warn("RESET_DB set, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			log.Fatalf("reset database: %v", err)
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cache.Options{
		Addr:        cfg.RedisAddr,
		Password:    cfg.RedisPass,
		DB:          cfg.RedisDB,
		DialTimeout: 2 * time.Second,
	}, log)
	defer cacheClient.Close()
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.WithError(err).Warn("redis unavailable, continuing without cache")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	itemRepo := repository.NewItemRepository(gormDB)
	goalRepo := repository.NewGoalRepository(gormDB)
	wishlistRepo := repository.NewWishlistRepository(gormDB)
	loanRepo := repository.NewLoanRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.SessionSecret, cfg.SessionTTL, cfg.RememberTTL)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, cacheClient, log)
	userService := service.NewUserService(userRepo, cacheClient, log)
	itemService := service.NewItemService(itemRepo, log)
	goalService := service.NewGoalService(goalRepo, itemRepo)
	wishlistService := service.NewWishlistService(wishlistRepo)
	loanService := service.NewLoanService(loanRepo, itemRepo, log)
	dashboardService := service.NewDashboardService(itemRepo, goalRepo, wishlistRepo, loanRepo, cfg.RecentLimit)
	exportService := service.NewExportService(itemRepo)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, log, jwtService, userService, router.Handlers{
		Auth:      handler.NewAuthHandler(authService, cfg.CookieSecure),
		User:      handler.NewUserHandler(userService),
		Item:      handler.NewItemHandler(itemService),
		Goal:      handler.NewGoalHandler(goalService),
		Wishlist:  handler.NewWishlistHandler(wishlistService),
		Loan:      handler.NewLoanHandler(loanService),
		Dashboard: handler.NewDashboardHandler(dashboardService, exportService),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
	}
	log.Infof("swagger documentation available at http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
}
