package momentum

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"momentumRider/internal/api/http/pipeline"
	"momentumRider/internal/domain"
	"momentumRider/internal/ports"
	"momentumRider/internal/ratelimit"
	"momentumRider/internal/validation"
)

var scoreSchema = validation.Schema{
	Name: "momentum",
	Fields: []validation.Field{
		{Name: "ticker", Type: validation.TypeString, Rules: "ticker"},
		{Name: "includeName", Type: validation.TypeBool, Default: false},
		{Name: "refresh", Type: validation.TypeBool, Default: false},
	},
}

// Controller: маршруты скоров.
type Controller struct {
	uc      ports.IMomentumUseCase
	limiter *ratelimit.Limiter
	resp    *pipeline.Responder
	log     *slog.Logger
}

// New создаёт контроллер скоров.
func New(uc ports.IMomentumUseCase, limiter *ratelimit.Limiter, resp *pipeline.Responder, log *slog.Logger) *Controller {
	return &Controller{uc: uc, limiter: limiter, resp: resp, log: log}
}

// RegisterRoutes реализует http.Controller: регистрирует маршруты на роутере.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.GET("/momentum/:ticker", c.handle(pipeline.Query))
	api.POST("/momentum", c.handle(pipeline.QueryAndBody))
}

// @Summary Momentum score инструмента
// @Description Доходности по горизонтам (1w, 4w, 12w) и композитный скор. Результат кэшируется.
// @Tags momentum
// @Produce json
// @Param ticker path string true "Тикер"
// @Param includeName query bool false "Добавить название инструмента"
// @Param refresh query bool false "Пересчитать, минуя кэш"
// @Success 200 {object} ScoreResponse
// @Failure 400 {object} pipeline.ErrorResponse "Невалидный запрос"
// @Failure 404 {object} pipeline.ErrorResponse "Неизвестный тикер"
// @Failure 429 {object} pipeline.ErrorResponse "Лимит запросов, см. Retry-After"
// @Failure 500 {object} pipeline.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/momentum/{ticker} [get]
//
// POST /api/momentum принимает те же поля JSON-телом ({"ticker", "includeName", "refresh"});
// поля тела важнее query. Тело проверяется той же схемой, отдельной структуры запроса нет.
func (c *Controller) handle(collect pipeline.Collector) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var values map[string]any
		err := pipeline.Run(ctx,
			pipeline.Validate(scoreSchema, collect, &values),
			pipeline.Admit(c.limiter, ratelimit.ClassCompute),
			func(ctx *gin.Context) error {
				score, err := c.uc.Score(ctx.Request.Context(), domain.ScoreQuery{
					Ticker:      validation.String(values, "ticker"),
					IncludeName: validation.Bool(values, "includeName"),
					Refresh:     validation.Bool(values, "refresh"),
				})
				if err != nil {
					return err
				}
				ctx.JSON(http.StatusOK, toResponse(score))
				return nil
			},
		)
		if err != nil {
			c.resp.Fail(ctx, err)
		}
	}
}
