package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

type Status struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Services  []Service `json:"services"`
}

type Service struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Pinger is satisfied by the redis provider.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Checker pings the backing services. A nil Redis is skipped.
type Checker struct {
	DB    *gorm.DB
	Redis Pinger
}

func (h *Checker) Check(ctx context.Context) Status {
	services := make([]Service, 0, 2)
	overall := StatusHealthy

	if h.DB != nil {
		services = append(services, probe(ctx, "PostgreSQL", func(ctx context.Context) error {
			sqlDB, err := h.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}))
	}

	if h.Redis != nil {
		services = append(services, probe(ctx, "Redis", h.Redis.Ping))
	}

	for _, s := range services {
		if s.Status != "up" {
			overall = StatusDegraded
		}
	}

	return Status{
		Status:    overall,
		Timestamp: time.Now().UTC(),
		Services:  services,
	}
}

func probe(ctx context.Context, name string, ping func(context.Context) error) Service {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	service := Service{Name: name, Status: "up"}
	if err := ping(ctx); err != nil {
		service.Status = "down"
		service.Message = err.Error()
	}
	return service
}

type Handler struct {
	checker *Checker
}

func NewHandler(checker *Checker) *Handler {
	return &Handler{checker: checker}
}

// Check godoc
// @Summary Health check
// @Description Check the health status of the application
// @Tags Health
// @Produce json
// @Success 200 {object} health.Status
// @Failure 503 {object} health.Status
// @Router /api/health [get]
func (h *Handler) Check(c *gin.Context) {
	status := h.checker.Check(c.Request.Context())
	if status.Status == StatusHealthy {
		c.JSON(http.StatusOK, status)
		return
	}
	c.JSON(http.StatusServiceUnavailable, status)
}

func RegisterRoutes(rg gin.IRoutes, h *Handler) {
	rg.GET("/health", h.Check)
}
