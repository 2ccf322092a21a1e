package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"simpleshop/auth"
	"simpleshop/cache"
	"simpleshop/config"
	"simpleshop/controllers"
	"simpleshop/database"
	"simpleshop/logger"
	"simpleshop/middleware"
	"simpleshop/models"
	"simpleshop/repository"
	"simpleshop/routes"
	"simpleshop/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.L()

	client, db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn("mongo disconnect", zap.Error(err))
		}
	}()
	log.Info("connected to mongo", zap.String("db", cfg.DBName))

	cols := database.InitCollections(db)
	if err := database.EnsureIndexes(ctx, cols); err != nil {
		return err
	}

	productStore, closeStore := productListStore(ctx, cfg)
	defer closeStore()

	users := repository.NewUserRepository(cols.Users, cfg.DBTimeout)
	products := cache.NewCachedProductRepository(
		repository.NewProductRepository(cols.Products, cfg.DBTimeout),
		productStore, cfg.CacheTTL, time.Now,
	)
	userSvc := services.NewUserService(users, auth.NewUserChecker(users))

	limiter := middleware.NewRateLimiter(middleware.LimitStrict, middleware.BurstStrict)
	go limiter.RunCleanup(ctx, time.Minute)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(
		logger.RequestID(),
		logger.AccessLog(),
		logger.Recovery(),
		middleware.CORS(),
		middleware.BodyLimit(cfg.BodyLimitBytes),
	)

	routes.RegisterRoutes(r, routes.Deps{
		Products:  controllers.NewProductController(products),
		Orders:    controllers.NewOrderController(repository.NewOrderRepository(cols.Orders, cfg.DBTimeout)),
		Users:     controllers.NewUserController(userSvc, users),
		Reviews:   controllers.NewReviewController(repository.NewReviewRepository(cols.Reviews, cfg.DBTimeout)),
		Feedback:  controllers.NewFeedbackController(repository.NewFeedbackRepository(cols.Feedback, cfg.DBTimeout)),
		Admin:     controllers.NewAdminController(auth.NewSecretChecker(cfg.AdminPassword)),
		AuthLimit: limiter.Middleware(),
	})

	if cfg.AdminPassword == "" {
		log.Warn("ADMIN_PASSWORD is not set; admin check will always fail")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// productListStore picks Redis when REDIS_URL is set and reachable,
// otherwise the in-process slot.
func productListStore(ctx context.Context, cfg *config.Config) (cache.Store[[]models.Product], func()) {
	if cfg.RedisURL == "" {
		return cache.NewMemoryStore[[]models.Product](), func() {}
	}

	rdb, err := cache.ConnectRedis(ctx, cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.L().Warn("redis unavailable, caching products in memory", zap.Error(err))
		return cache.NewMemoryStore[[]models.Product](), func() {}
	}

	logger.L().Info("caching products in redis", zap.String("key", cache.ProductsKey))
	return cache.NewRedisStore[[]models.Product](rdb, cache.ProductsKey, cfg.CacheTTL), func() { _ = rdb.Close() }
}
