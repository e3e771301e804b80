package cache

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"momentumRider/internal/api/http/pipeline"
	"momentumRider/internal/ports"
	"momentumRider/internal/ratelimit"
	"momentumRider/internal/validation"
)

var emptySchema = validation.Schema{Name: "empty"}

// HealthResponse: состояние кэша.
type HealthResponse struct {
	Status     string    `json:"status"`
	Tier       string    `json:"tier"`
	Configured bool      `json:"configured"`
	CheckedAt  time.Time `json:"checkedAt"`
}

// WarmResponse: итог прогрева.
type WarmResponse struct {
	Warmed int `json:"warmed"`
}

// Controller: служебные маршруты кэша.
type Controller struct {
	uc      ports.IMomentumUseCase
	limiter *ratelimit.Limiter
	resp    *pipeline.Responder
	log     *slog.Logger
}

// New создаёт контроллер кэша.
func New(uc ports.IMomentumUseCase, limiter *ratelimit.Limiter, resp *pipeline.Responder, log *slog.Logger) *Controller {
	return &Controller{uc: uc, limiter: limiter, resp: resp, log: log}
}

// RegisterRoutes реализует http.Controller: регистрирует маршруты на роутере.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/cache")

	api.GET("/health", c.health)
	api.POST("/warm", c.warm)
}

// @Summary Состояние кэша
// @Tags cache
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 429 {object} pipeline.ErrorResponse
// @Router /api/cache/health [get]
func (c *Controller) health(ctx *gin.Context) {
	var values map[string]any
	err := pipeline.Run(ctx,
		pipeline.Validate(emptySchema, pipeline.Query, &values),
		pipeline.Admit(c.limiter, ratelimit.ClassRead),
		func(ctx *gin.Context) error {
			h := c.uc.CacheHealth(ctx.Request.Context())
			ctx.JSON(http.StatusOK, HealthResponse{
				Status:     string(h.Status),
				Tier:       string(h.Tier),
				Configured: h.Configured,
				CheckedAt:  h.CheckedAt,
			})
			return nil
		},
	)
	if err != nil {
		c.resp.Fail(ctx, err)
	}
}

// @Summary Прогреть кэш горячих инструментов
// @Tags cache
// @Produce json
// @Success 200 {object} WarmResponse
// @Failure 429 {object} pipeline.ErrorResponse
// @Failure 500 {object} pipeline.ErrorResponse
// @Router /api/cache/warm [post]
func (c *Controller) warm(ctx *gin.Context) {
	var values map[string]any
	err := pipeline.Run(ctx,
		pipeline.Validate(emptySchema, pipeline.QueryAndBody, &values),
		pipeline.Admit(c.limiter, ratelimit.ClassCompute),
		func(ctx *gin.Context) error {
			n, err := c.uc.Warm(ctx.Request.Context())
			if err != nil {
				return err
			}
			c.log.Info("cache warmed on request", "warmed", n)
			ctx.JSON(http.StatusOK, WarmResponse{Warmed: n})
			return nil
		},
	)
	if err != nil {
		c.resp.Fail(ctx, err)
	}
}
