package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"momentumRider/internal/api/http/middlewares"
)

// ServerConfig: настройки HTTP-сервера. Переменные: MOMENTUM_SERVER_HOST, MOMENTUM_SERVER_PORT и т.д.
// Env=development открывает клиенту текст внутренних ошибок.
type ServerConfig struct {
	Host         string `envconfig:"HOST" default:"0.0.0.0"`
	Port         string `envconfig:"PORT" default:"8080"`
	Env          string `envconfig:"ENV" default:"production"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS" default:"http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173"`
}

// Development: режим разработки.
func (c ServerConfig) Development() bool {
	return strings.EqualFold(c.Env, "development")
}

func (c ServerConfig) origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Controller: контракт: контроллер регистрирует свои маршруты на роутере.
type Controller interface {
	RegisterRoutes(r *gin.Engine)
}

// Server: API-сервер: конфиг и список контроллеров.
type Server struct {
	cfg         ServerConfig
	controllers []Controller
	srv         *http.Server
	log         *slog.Logger
}

// NewServer создаёт сервер с конфигом.
func NewServer(cfg ServerConfig, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{cfg: cfg, log: log}
}

// AddController добавляет один или несколько контроллеров.
func (s *Server) AddController(c ...Controller) {
	s.controllers = append(s.controllers, c...)
}

// Handler собирает роутер: мидлвари, маршруты контроллеров и /metrics.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	// CORS-мидлварь: зачем и как, см. комментарий в конце файла.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.origins(),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middlewares.RequestIDHeader},
		ExposeHeaders:    []string{"Retry-After", middlewares.RequestIDHeader},
		AllowCredentials: false,
	}))
	r.Use(middlewares.RequestLogger(s.log))
	r.Use(middlewares.PrometheusMetrics(middlewares.DefaultMetricsSkip...))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	for _, c := range s.controllers {
		c.RegisterRoutes(r)
	}
	return r
}

// Start поднимает роутер, запускает сервер и блокируется до отмены ctx (SIGINT/SIGTERM), затем делает graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:         s.cfg.Host + ":" + s.cfg.Port,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.log.Error("http server failed", "error", err)
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// --- CORS ---
//
// Фронт (3000 или Vite 5173) и API (8080) живут на разных origin, поэтому браузер перед POST с
// Content-Type: application/json шлёт preflight OPTIONS. Мидлварь отвечает на него 204 с
// Allow-Origin/Methods/Headers до роутера; на обычные ответы добавляет Allow-Origin и
// Expose-Headers, чтобы клиент видел Retry-After у 429.
