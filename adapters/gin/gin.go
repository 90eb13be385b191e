// Package hxassetgin provides Gin integration for hxasset.
//
//	r := gin.New()
//	r.Use(hxassetgin.Middleware(cfg.SetupFunc(funcs)))
//	r.GET("/", func(c *gin.Context) {
//	    hxassetgin.Render(c, http.StatusOK, views.Home())
//	})
package hxassetgin

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"

	"github.com/pthm/hxasset"
	"github.com/pthm/hxasset/page"
)

// Middleware returns page.Middleware as Gin middleware. The rest of the
// chain sees the request context carrying the registry and page host. A
// failing setup aborts the chain.
func Middleware(setup page.SetupFunc, opts ...page.MiddlewareOption) gin.HandlerFunc {
	mw := page.Middleware(setup, opts...)
	return func(c *gin.Context) {
		called := false
		mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			c.Request = r
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)

		if !called {
			c.Abort()
		}
	}
}

// Registry returns the request's asset registry, or nil outside Middleware.
func Registry(c *gin.Context) *hxasset.Registry {
	return hxasset.FromContext(c.Request.Context())
}

// Assets returns the request's page host, or nil outside Middleware.
func Assets(c *gin.Context) *page.Assets {
	return page.FromContext(c.Request.Context())
}

// Render writes a templ component with the given status.
func Render(c *gin.Context, status int, component templ.Component) error {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	return component.Render(c.Request.Context(), c.Writer)
}
