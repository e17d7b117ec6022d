// Package router wires handlers into the gin engine.
package router

import "github.com/gin-gonic/gin"

// RouteRegistrar registers routes on a group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router registers domain groups under a common prefix
type Router struct {
	engine     *gin.Engine
	prefix     string
	middleware []gin.HandlerFunc
	registrars []RouteRegistrar
}

// Option configures a Router
type Option func(*Router)

// WithPrefix sets the path prefix shared by all registrars (default "/admin")
func WithPrefix(prefix string) Option {
	return func(r *Router) {
		r.prefix = prefix
	}
}

// WithMiddleware adds middleware to the prefixed group only, e.g. auth
func WithMiddleware(mw ...gin.HandlerFunc) Option {
	return func(r *Router) {
		r.middleware = append(r.middleware, mw...)
	}
}

// NewRouter creates a Router on engine
func NewRouter(engine *gin.Engine, opts ...Option) *Router {
	r := &Router{engine: engine, prefix: "/admin"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues registrar for Setup
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup creates the prefixed group and registers every queued registrar
func (r *Router) Setup() {
	group := r.engine.Group(r.prefix)
	if len(r.middleware) > 0 {
		group.Use(r.middleware...)
	}
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(group)
	}
}

// DomainGroup is a named set of read routes under one sub-prefix
type DomainGroup struct {
	name       string
	prefix     string
	routes     []route
	middleware []gin.HandlerFunc
}

type route struct {
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a DomainGroup
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use adds middleware to this group
func (dg *DomainGroup) Use(mw ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, mw...)
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, route{path: path, handlers: handlers})
	return dg
}

// RegisterRoutes implements RouteRegistrar
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)
	if len(dg.middleware) > 0 {
		group.Use(dg.middleware...)
	}
	for _, rt := range dg.routes {
		group.GET(rt.path, rt.handlers...)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}
