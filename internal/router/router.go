package router

import (
	"time"

	"wagebook/internal/config"
	"wagebook/internal/handler"
	"wagebook/internal/middleware"
	"wagebook/internal/repository"
	"wagebook/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.FrontendOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	workerRepo := repository.NewWorkerRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	workerSvc := service.NewWorkerService(workerRepo)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, workerRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	workersH := handler.NewWorkersHandler(workerSvc)
	attendanceH := handler.NewAttendanceHandler(attendanceSvc, rdb,
		time.Duration(cfg.DayCacheTTLMinutes)*time.Minute)

	// ── Routes ───────────────────────────────────────────────────────────────
	api := r.Group("/api")
	{
		api.GET("/health", handler.Health(db, rdb))

		workers := api.Group("/workers")
		{
			workers.GET("", workersH.List)
			workers.POST("", workersH.Create)
			workers.GET("/:id", workersH.Get)
			workers.PUT("/:id", workersH.Update)
			workers.DELETE("/:id", workersH.Delete)
		}

		attendance := api.Group("/attendance")
		{
			attendance.GET("", attendanceH.List)
			attendance.GET("/summary", attendanceH.Summary)
			attendance.GET("/by-date/:date", attendanceH.ByDate)
			attendance.GET("/by-date/:date/status", attendanceH.DayStatus)
			attendance.POST("/save", attendanceH.SaveDay)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
