package handler

import "github.com/gin-gonic/gin"

// NewRouter builds the engine serving h. Requests with a known path but an
// unsupported method get 405 rather than 404.
func NewRouter(h *UserHandler, middlewares ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middlewares...)
	h.Routes(r)
	return r
}
