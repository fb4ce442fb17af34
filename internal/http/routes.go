package http

import (
	"github.com/gin-gonic/gin"
)

// RouteGroup is one registrable slice of the API surface. The basket
// and catalog route sets implement it so the router can mount whichever
// services are configured.
type RouteGroup interface {
	RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}
