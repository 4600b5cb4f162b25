// Package api отладочный HTTP-интерфейс симуляции: состояние, ввод, метрики.
// Ядро симуляции ничего о нем не знает.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/annel0/voxelworld/internal/logging"
	"github.com/annel0/voxelworld/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/prometheus/client_golang/prometheus"
)

// Controls приемник ввода для POST /api/input
type Controls interface {
	KeyDown(key string) bool
	KeyUp(key string)
	Click()
	Look(dir mgl64.Vec3)
}

// Config содержит конфигурацию для REST сервера
type Config struct {
	Addr       string
	Store      *SnapshotStore
	Controls   Controls // nil отключает /api/input
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	Logger     *logging.Logger
}

// RestServer представляет отладочный REST сервер
type RestServer struct {
	router  *gin.Engine
	server  *http.Server
	store   *SnapshotStore
	input   Controls
	metrics *ServerMetrics
	logger  *logging.Logger
}

// NewRestServer создает сервер и настраивает маршруты
func NewRestServer(cfg Config) *RestServer {
	if cfg.Addr == "" {
		cfg.Addr = ":2112"
	}
	if cfg.Store == nil {
		cfg.Store = NewSnapshotStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.GetAPILogger()
	}

	gin.SetMode(gin.ReleaseMode)

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery
	router.Use(middleware.NewRequestLogger(cfg.Logger).Handler())

	promMw := middleware.NewPrometheusMiddleware("voxel_api", cfg.Registerer)
	router.Use(promMw.Handler())
	if cfg.Gatherer != nil {
		promMw.RegisterMetricsEndpoint(router, cfg.Gatherer)
	}

	rs := &RestServer{
		router:  router,
		store:   cfg.Store,
		input:   cfg.Controls,
		metrics: NewServerMetrics(),
		logger:  cfg.Logger,
	}
	rs.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	rs.setupRoutes()
	return rs
}

func (rs *RestServer) setupRoutes() {
	rs.router.GET("/health", rs.handleHealth)

	api := rs.router.Group("/api")
	{
		api.GET("/state", rs.handleState)
		api.GET("/chunks", rs.handleChunks)
		api.GET("/stats", rs.handleStats)
		if rs.input != nil {
			api.POST("/input", rs.handleInput)
		}
	}
}

// Handler возвращает http.Handler (для тестов)
func (rs *RestServer) Handler() http.Handler {
	return rs.router
}

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

func (rs *RestServer) handleState(c *gin.Context) {
	snap, ok := rs.store.Latest()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, GenericResponse{
			Success: false,
			Message: "Симуляция еще не запущена",
		})
		return
	}
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "ok", Data: snap})
}

func (rs *RestServer) handleChunks(c *gin.Context) {
	snap, ok := rs.store.Latest()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, GenericResponse{
			Success: false,
			Message: "Симуляция еще не запущена",
		})
		return
	}
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "ok",
		Data: gin.H{
			"center": snap.Center,
			"chunks": snap.Chunks,
			"total":  len(snap.Chunks),
		},
	})
}

func (rs *RestServer) handleStats(c *gin.Context) {
	stats := gin.H{
		"uptime": rs.metrics.GetUptime(),
		"memory": rs.metrics.GetDetailedMemoryStats(),
	}
	if cpu, err := rs.metrics.GetCPUUsage(); err == nil {
		stats["cpu_percent"] = cpu
	}
	if rss, err := rs.metrics.GetRSS(); err == nil {
		stats["rss_mb"] = rss
	}
	if snap, ok := rs.store.Latest(); ok {
		stats["frame"] = snap.Frame
		stats["chunks"] = len(snap.Chunks)
	}
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "ok", Data: stats})
}

// InputRequest пакет ввода для следующего кадра
type InputRequest struct {
	Down  []string    `json:"down"`
	Up    []string    `json:"up"`
	Click bool        `json:"click"`
	Look  *[3]float64 `json:"look"`
}

func (rs *RestServer) handleInput(c *gin.Context) {
	var req InputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неверный формат запроса: " + err.Error(),
		})
		return
	}

	var unknown []string
	for _, key := range req.Down {
		if !rs.input.KeyDown(key) {
			unknown = append(unknown, key)
		}
	}
	for _, key := range req.Up {
		rs.input.KeyUp(key)
	}
	if req.Look != nil {
		rs.input.Look(mgl64.Vec3(*req.Look))
	}
	if req.Click {
		rs.input.Click()
	}

	c.JSON(http.StatusAccepted, GenericResponse{
		Success: true,
		Message: "Ввод принят",
		Data:    gin.H{"unknown": unknown},
	})
}

// Start запускает сервер и блокируется до остановки
func (rs *RestServer) Start() error {
	rs.logger.Info("🌐 REST сервер слушает %s", rs.server.Addr)
	if err := rs.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop корректно останавливает сервер
func (rs *RestServer) Stop(ctx context.Context) error {
	return rs.server.Shutdown(ctx)
}
