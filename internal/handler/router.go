package handler

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wasp/youtube-channel-api/internal/metrics"
	"github.com/wasp/youtube-channel-api/internal/middleware"
	"github.com/wasp/youtube-channel-api/internal/validation"
)

var registerTagNames sync.Once

// RouterConfig carries the dependencies of the HTTP API.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type RouterConfig struct {
	Channels ChannelService
	Videos   VideoService
	DB       Pinger
	Broker   BrokerHealth
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	APIKeys  []string
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	registerTagNames.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			validation.RegisterJSONTagNames(v)
		}
	})

	r := gin.New()
	r.Use(middleware.RequestLogger())
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	r.Use(middleware.ErrorTranslator(cfg.Metrics))

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(middleware.ErrNoRoute)
	})

	NewHealthHandler(cfg.DB, cfg.Broker).RegisterRoutes(r)
	if cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("")
	if len(cfg.APIKeys) > 0 {
		api.Use(middleware.NewAPIKeyAuth(cfg.APIKeys).WritesOnly())
	}
	NewChannelHandler(cfg.Channels).RegisterRoutes(api)
	NewVideoHandler(cfg.Videos).RegisterRoutes(api)

	return r
}
