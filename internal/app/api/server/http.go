package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/reelhouse/rental/docs"
	"github.com/reelhouse/rental/internal/app/api/handlers"
	mw "github.com/reelhouse/rental/internal/app/api/middleware"
	"github.com/reelhouse/rental/internal/app/service/history"
	"github.com/reelhouse/rental/internal/app/service/movie"
	"github.com/reelhouse/rental/internal/app/service/rent"
	"github.com/reelhouse/rental/internal/app/service/user"
	cfgpkg "github.com/reelhouse/rental/pkg/config"
	"github.com/reelhouse/rental/pkg/metrics"
)

func newEngine(cfg *cfgpkg.Config) *gin.Engine {
	if cfg.Env == cfgpkg.EnvProd {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(mw.TraceMiddleware())
	r.Use(mw.RateLimitMiddleware(cfg.RateLimitRPS))
	return r
}

func registerRoutes(
	r *gin.Engine,
	log *zap.SugaredLogger,
	cfg *cfgpkg.Config,
	movies *movie.Service,
	users *user.Service,
	rents *rent.Service,
	histories *history.Service,
) {
	if cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(log)
		r.Use(p.Middleware())
		p.Serve(cfg.MetricsAddr)
		log.Infow("metrics started", "addr", cfg.MetricsAddr)
	}

	api := r.Group("/")
	api.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(log))

	handlers.RegisterHealthRoutes(api)
	handlers.RegisterMovieRoutes(api, movies, histories)
	handlers.RegisterUserRoutes(api, users)
	handlers.RegisterRentRoutes(api, rents)

	docs.SwaggerInfo.BasePath = "/"
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
