package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/storefront/internal/analytics"
	analyticsdomain "github.com/smallbiznis/storefront/internal/analytics/domain"
	"github.com/smallbiznis/storefront/internal/catalog"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	"github.com/smallbiznis/storefront/internal/config"
	"github.com/smallbiznis/storefront/internal/customer"
	customerdomain "github.com/smallbiznis/storefront/internal/customer/domain"
	"github.com/smallbiznis/storefront/internal/observability"
	obsmiddleware "github.com/smallbiznis/storefront/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/storefront/internal/observability/metrics"
	obstracing "github.com/smallbiznis/storefront/internal/observability/tracing"
	"github.com/smallbiznis/storefront/internal/order"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	"github.com/smallbiznis/storefront/internal/providers/pdf"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	customer.Module,
	catalog.Module,
	order.Module,
	analytics.Module,
	pdf.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	genID        *snowflake.Node
	customerSvc  customerdomain.Service
	catalogSvc   catalogdomain.Service
	orderSvc     orderdomain.Service
	analyticsSvc analyticsdomain.Service
	pdfProvider  pdf.Provider
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	GenID        *snowflake.Node
	CustomerSvc  customerdomain.Service
	CatalogSvc   catalogdomain.Service
	OrderSvc     orderdomain.Service
	AnalyticsSvc analyticsdomain.Service
	PDFProvider  pdf.Provider
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		genID:        p.GenID,
		customerSvc:  p.CustomerSvc,
		catalogSvc:   p.CatalogSvc,
		orderSvc:     p.OrderSvc,
		analyticsSvc: p.AnalyticsSvc,
		pdfProvider:  p.PDFProvider,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	customers := api.Group("/customers")
	customers.POST("/register", s.RegisterCustomer)
	customers.POST("/login", s.LoginCustomer)
	customers.GET("/:id", s.GetCustomerByID)

	products := api.Group("/products")
	products.GET("", s.ListProducts)
	products.POST("", s.CreateProduct)
	products.GET("/popular", s.PopularProducts)
	products.GET("/search", s.SearchProducts)
	products.GET("/category/:category", s.ListProductsByCategory)
	products.GET("/:id", s.GetProductByID)
	products.PUT("/:id", s.UpdateProduct)
	products.DELETE("/:id", s.DeleteProduct)
	products.GET("/:id/orders", s.ProductOrders)
	products.GET("/:id/customers", s.ProductCustomers)
	products.GET("/:id/sales-stats", s.ProductSalesStats)

	orders := api.Group("/orders")
	orders.POST("", s.PlaceOrder)
	orders.GET("/:id", s.GetOrderByID)
	orders.GET("/:id/receipt", s.OrderReceipt)
}
