// Package health exposes the liveness endpoint the load balancer polls.
package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	pkgredis "github.com/meridian-institute/core/internal/pkg/redis"
	"gorm.io/gorm"
)

func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, rc *pkgredis.Client) {
	rg.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		dbOK := err == nil && sqlDB.PingContext(c.Request.Context()) == nil

		redisOK := true
		if rc != nil {
			redisOK = rc.Ping(c.Request.Context()) == nil
		}

		status := "ok"
		code := http.StatusOK
		if !dbOK {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":   status,
			"database": dbOK,
			"redis":    redisOK,
		})
	})
}
