package pipeline

import (
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"momentumRider/internal/domain"
)

const internalMessage = "internal server error"

var errorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_errors_total",
		Help: "Error responses by error code",
	},
	[]string{"code"},
)

// ErrorResponse: тело ответа с ошибкой.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Responder переводит ошибки в HTTP-ответы. Текст внутренних ошибок виден клиенту только в development.
type Responder struct {
	log         *slog.Logger
	development bool
}

// NewResponder создаёт Responder.
func NewResponder(log *slog.Logger, development bool) *Responder {
	return &Responder{log: log, development: development}
}

// Fail пишет ответ с ошибкой и прерывает обработку. Ошибки вне таксономии считаются внутренними.
func (r *Responder) Fail(ctx *gin.Context, err error) {
	e, ok := domain.AsError(err)
	if !ok {
		e = domain.NewInternalError(internalMessage, err)
	}

	errorsTotal.WithLabelValues(e.Code).Inc()
	resp := ErrorResponse{Error: e.Code, Message: e.Message, Fields: e.Fields}
	if e.Kind == domain.KindRateLimited {
		ctx.Header("Retry-After", strconv.Itoa(e.RetryAfterSeconds()))
	}
	if e.Status >= 500 {
		r.log.Error("request failed", "path", ctx.FullPath(), "error", err)
		resp.Message = internalMessage
		if r.development {
			resp.Message = e.Error()
		}
	} else {
		r.log.Warn("request rejected", "path", ctx.FullPath(), "kind", e.Kind, "error", err)
	}
	ctx.AbortWithStatusJSON(e.Status, resp)
}
