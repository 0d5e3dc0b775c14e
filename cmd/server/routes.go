package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	chatcore "github.com/emasjid/gateway/internal/chat"
	"github.com/emasjid/gateway/internal/db"
	"github.com/emasjid/gateway/internal/dispatch"
	"github.com/emasjid/gateway/internal/http/api"
	adminapi "github.com/emasjid/gateway/internal/http/api/admin"
	chatapi "github.com/emasjid/gateway/internal/http/api/chat"
	"github.com/emasjid/gateway/internal/reminder"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store,
	interpreter *chatcore.Interpreter, dispatcher *dispatch.Dispatcher,
	broadcaster *reminder.Broadcaster) {

	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/chat",
	},
		chatapi.WebhookModule(store, interpreter, dispatcher),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: env.SecretKey,
	},
		adminapi.RemindersModule(broadcaster),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}
