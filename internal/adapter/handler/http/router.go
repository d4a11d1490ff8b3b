package http

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sklep-internetowy/backend/internal/adapter/config"
	"github.com/sklep-internetowy/backend/internal/core/port"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Router struct {
	*gin.Engine
}

func NewOrderRouter(
	conf *config.Config,
	verifier port.TokenVerifier,
	orderHandler *OrderHandler,
	log *zap.Logger) (*Router, error) {

	router := newBaseRouter(conf, log)

	orders := router.Group("/orders")
	{
		orders.Use(authCheck(verifier))
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("/user/:userId", orderHandler.ListOrdersByUser)
		orders.GET("/:orderId", orderHandler.GetOrder)
		orders.PUT("/:orderId/status", roleCheck(conf.Auth.AdminRole), orderHandler.UpdateOrderStatus)
	}

	return &Router{router}, nil
}

func NewProductRouter(
	conf *config.Config,
	verifier port.TokenVerifier,
	productHandler *ProductHandler,
	log *zap.Logger) (*Router, error) {

	router := newBaseRouter(conf, log)

	products := router.Group("/products")
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/:id", productHandler.GetProduct)

		protected := products.Group("")
		protected.Use(authCheck(verifier), roleCheck(conf.Auth.AdminRole))
		protected.POST("", productHandler.CreateProduct)
		protected.PUT("/:id", productHandler.UpdateProduct)
		protected.DELETE("/:id", productHandler.DeleteProduct)
	}

	return &Router{router}, nil
}

func newBaseRouter(conf *config.Config, log *zap.Logger) *gin.Engine {
	if conf.App.Mode == config.AppModeProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log), cors.New(corsConfig()))

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", HealthCheck)

	return router
}

// corsConfig opens the API to the storefront: any origin, bearer
// tokens allowed on preflighted requests.
func corsConfig() cors.Config {
	conf := cors.DefaultConfig()
	conf.AllowAllOrigins = true
	conf.AllowHeaders = append(conf.AllowHeaders, "Authorization")
	return conf
}

// Serve starts the HTTP server and shuts it down cleanly on SIGINT or
// SIGTERM.
func (r *Router) Serve(listenAddr string) error {
	srv := &http.Server{Addr: listenAddr, Handler: r}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sig:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
