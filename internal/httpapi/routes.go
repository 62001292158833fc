package httpapi

import (
	"github.com/gin-gonic/gin"

	"click2dial/internal/rbac"
)

// Register wires every route. authMW must verify the bearer token and put
// the identity in the request context.
func Register(r gin.IRouter, h Handlers, authMW gin.HandlerFunc) {
	r.GET("/healthz", h.Healthz)

	v1 := r.Group("/v1")
	if h.DevTokens {
		v1.POST("/auth/token", h.IssueDevToken)
	}

	api := v1.Group("")
	api.Use(authMW)
	{
		dial := api.Group("")
		dial.Use(rbac.Chain(rbac.RoleAgent, rbac.RoleOwner)...)
		dial.POST("/calls", h.PlaceCall)
		dial.POST("/numbers/normalize", h.Normalize)
		dial.PUT("/parties/:id", h.PutParty)

		admin := api.Group("/admin")
		admin.Use(rbac.Chain(rbac.RoleOwner)...)
		admin.GET("/switches", h.ListSwitches)
		admin.PUT("/switches/:id", h.PutSwitch)
		admin.GET("/users/:id", h.GetUser)
		admin.PUT("/users/:id", h.PutUser)

		reports := api.Group("/reports")
		reports.Use(rbac.Chain(rbac.RoleOwner, rbac.RoleAnalyst)...)
		reports.GET("/dials", h.DialReport)
	}
}
