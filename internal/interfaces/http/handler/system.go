package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/dotmart/backend/internal/infrastructure/logger"
	"github.com/dotmart/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Version is reported by the welcome endpoint
const Version = "1.0.0"

var errNoDatabase = errors.New("no database configured")

// Pinger checks a backing store
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves the welcome, health and fallback endpoints
type SystemHandler struct {
	startTime time.Time
	db        Pinger
	hostname  string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger) *SystemHandler {
	hostname, _ := os.Hostname()
	return &SystemHandler{
		startTime: time.Now(),
		db:        db,
		hostname:  hostname,
	}
}

// ClientDetails describes the caller of the welcome endpoint
type ClientDetails struct {
	IPAddress  string `json:"ipAddress"`
	AccessedAt string `json:"accessedAt"`
}

// ServerDetails describes the serving process
type ServerDetails struct {
	Hostname string `json:"hostname"`
	Platform string `json:"platform"`
	Uptime   string `json:"uptime"`
}

// DatabaseDetails reports the database reachability
type DatabaseDetails struct {
	Status string `json:"status"`
}

// WelcomeResponse is the body of GET /
type WelcomeResponse struct {
	Success       bool            `json:"success"`
	Message       string          `json:"message"`
	Version       string          `json:"version"`
	ClientDetails ClientDetails   `json:"clientDetails"`
	ServerDetails ServerDetails   `json:"serverDetails"`
	Database      DatabaseDetails `json:"database"`
}

// Welcome godoc
// @Summary      Welcome banner with server and database status
// @Tags         system
// @Produce      json
// @Success      200 {object} WelcomeResponse
// @Router       / [get]
func (h *SystemHandler) Welcome(c *gin.Context) {
	status := "connected"
	if err := h.ping(c.Request.Context()); err != nil {
		logger.L(c.Request.Context()).Warn("database ping failed", zap.Error(err))
		status = "disconnected"
	}
	c.JSON(http.StatusOK, WelcomeResponse{
		Success: true,
		Message: "Welcome to the Love & Gift Corner",
		Version: Version,
		ClientDetails: ClientDetails{
			IPAddress:  c.ClientIP(),
			AccessedAt: time.Now().Format(time.RFC3339),
		},
		ServerDetails: ServerDetails{
			Hostname: h.hostname,
			Platform: runtime.GOOS,
			Uptime:   formatUptime(time.Since(h.startTime)),
		},
		Database: DatabaseDetails{Status: status},
	})
}

// Health godoc
// @Summary      Liveness and database check
// @Tags         system
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      503 {object} map[string]string
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	now := time.Now().Format(time.RFC3339)
	if err := h.ping(c.Request.Context()); err != nil {
		logger.L(c.Request.Context()).Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"time":     now,
			"database": "error",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"time":     now,
		"database": "ok",
	})
}

// NotFound answers unmatched routes
func (h *SystemHandler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.Response{Success: false, Message: "API Not Found"})
}

func (h *SystemHandler) ping(ctx context.Context) error {
	if h.db == nil {
		return errNoDatabase
	}
	return h.db.Ping(ctx)
}

func formatUptime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%d hours %d minutes", hours, minutes)
}
