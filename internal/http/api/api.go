package api

import (
	"github.com/gin-gonic/gin"

	"github.com/emasjid/gateway/internal/http/middleware"
)

// Module is a pluggable feature that attaches its endpoints to a router
// group.
type Module interface {
	Mount(r gin.IRoutes)
}

// ModuleFunc lets you define a Module with a simple function.
type ModuleFunc func(r gin.IRoutes)

func (f ModuleFunc) Mount(r gin.IRoutes) { f(r) }

// GroupConfig tells the api package how to mount a group.
type GroupConfig struct {
	Prefix     string
	Auth       bool
	SecretKey  string            // required if Auth == true
	Middleware []gin.HandlerFunc // optional additional middleware
}

// MountGroup mounts one or more Modules under a prefix with optional auth.
func MountGroup(r *gin.Engine, cfg GroupConfig, modules ...Module) {
	grp := r.Group(cfg.Prefix)
	if cfg.Auth {
		grp.Use(middleware.TokenMiddleware(cfg.SecretKey))
	}
	for _, mw := range cfg.Middleware {
		grp.Use(mw)
	}
	for _, m := range modules {
		m.Mount(grp)
	}
}
