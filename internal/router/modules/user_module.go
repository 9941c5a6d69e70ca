package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/mkwon-dev/user-account-service/internal/interface/http"
)

// Module wires user HTTP handlers into routes.
// POST /api/users, GET /api/users/:id, GET /api/users/:id/verify,
// GET /api/users/me, PUT /api/users/me, GET /api/users/search
// All routes are registered under the given RouterGroup (usually /api).

type Module struct {
	Handler *handlers.UserHandler
}

func New(h *handlers.UserHandler) *Module {
	return &Module{Handler: h}
}

func (m *Module) Register(rg *gin.RouterGroup) {
	rg.POST("/users", m.Handler.Create)
	// Fixed paths before the :id wildcard so gin does not shadow them.
	rg.GET("/users/me", m.Handler.GetMe)
	rg.PUT("/users/me", m.Handler.UpdateMe)
	rg.GET("/users/search", m.Handler.Search)
	rg.GET("/users/:id", m.Handler.GetByID)
	rg.GET("/users/:id/verify", m.Handler.Verify)
}
