package system

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"momentumRider/internal/ports"
)

// Controller: системные маршруты: liveness, readiness.
type Controller struct {
	registry ports.IInstrumentRegistry
	log      *slog.Logger
}

// New создаёт системный контроллер. Готовность определяется доступностью реестра инструментов;
// кэш на готовность не влияет, он деградирует до локального уровня.
func New(registry ports.IInstrumentRegistry, log *slog.Logger) *Controller {
	return &Controller{registry: registry, log: log}
}

// RegisterRoutes реализует http.Controller: регистрирует маршруты на роутере.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	r.GET("/liveness", c.live)
	r.GET("/readyness", c.ready)
}

func (c *Controller) live(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (c *Controller) ready(ctx *gin.Context) {
	if err := c.registry.Ping(ctx.Request.Context()); err != nil {
		c.log.Warn("ready check failed", "error", err)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
}
