package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	commonmw "github.com/OrangesCloud/wealist-advanced-go-pkg/middleware"

	"kanban-board-api/internal/events"
	"kanban-board-api/internal/handler"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/middleware"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/storage"
)

// Config holds router configuration
type Config struct {
	Backend        storage.Backend
	Logger         *zap.Logger
	BasePath       string
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	// Gatherer serves /metrics; defaults to the prometheus default registry
	Gatherer prometheus.Gatherer
	// Hub serves the change feed; nil disables the events route
	Hub *events.Hub
	// Publisher receives change events; defaults to Hub
	Publisher events.Publisher
	// Ready reports backend reachability for /ready; nil means always reachable
	Ready func(ctx context.Context) error
	// ProjectRepo and CourseRepo are built over Backend when nil
	ProjectRepo repository.ProjectRepository
	CourseRepo  repository.CourseRepository
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(commonmw.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	projectRepo, courseRepo := cfg.ProjectRepo, cfg.CourseRepo
	if projectRepo == nil || courseRepo == nil {
		projectRepo, courseRepo = NewRepositories(cfg.Backend, cfg.Metrics)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "kanban-board-api"})
	})
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if cfg.Ready != nil {
			if err := cfg.Ready(ctx); err != nil {
				cfg.Logger.Warn("Readiness check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "service": "kanban-board-api"})
				return
			}
		}
		// A corrupt document makes every board request fail, so it fails readiness too
		if _, err := projectRepo.CountStats(ctx); err != nil {
			cfg.Logger.Warn("Readiness check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "service": "kanban-board-api"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "service": "kanban-board-api"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	services := NewServices(projectRepo, courseRepo, publisherFor(cfg), cfg.Metrics, cfg.Logger)
	registerRoutes(r.Group(cfg.BasePath), services, cfg)

	return r
}

func publisherFor(cfg Config) events.Publisher {
	switch {
	case cfg.Publisher != nil:
		return cfg.Publisher
	case cfg.Hub != nil:
		return cfg.Hub
	default:
		return events.NopPublisher{}
	}
}

func registerRoutes(api *gin.RouterGroup, s *Services, cfg Config) {
	projectHandler := handler.NewProjectHandler(s.Projects, cfg.Logger)
	columnHandler := handler.NewColumnHandler(s.Columns, cfg.Logger)
	taskHandler := handler.NewTaskHandler(s.Tasks, cfg.Logger)
	courseHandler := handler.NewCourseHandler(s.Courses, cfg.Logger)

	projects := api.Group("/projects")
	{
		projects.GET("", projectHandler.ListProjects)
		projects.POST("", projectHandler.CreateProject)
		projects.GET("/:id", projectHandler.GetProject)
		projects.PUT("/:id", projectHandler.UpdateProject)
		projects.DELETE("/:id", projectHandler.DeleteProject)
		projects.GET("/:id/summary", projectHandler.GetBoardSummary)

		projects.POST("/:id/columns", columnHandler.AddColumn)
		projects.DELETE("/:id/columns", columnHandler.DeleteColumn)
		projects.POST("/:id/columns/reorder", columnHandler.ReorderColumns)

		projects.POST("/:id/tasks", taskHandler.AddTask)
		projects.POST("/:id/tasks/reorder", taskHandler.MoveTask)
		projects.PUT("/:id/tasks/:taskId", taskHandler.UpdateTask)
		projects.DELETE("/:id/tasks/:taskId", taskHandler.DeleteTask)

		if cfg.Hub != nil {
			eventsHandler := handler.NewEventsHandler(cfg.Hub, s.Projects, cfg.Logger)
			projects.GET("/:id/events", eventsHandler.Subscribe)
		}
	}

	courses := api.Group("/courses")
	{
		courses.GET("", courseHandler.ListCourses)
		courses.POST("", courseHandler.CreateCourse)
		courses.GET("/:id", courseHandler.GetCourse)
		courses.PUT("/:id", courseHandler.UpdateCourse)
		courses.DELETE("/:id", courseHandler.DeleteCourse)
	}
}
