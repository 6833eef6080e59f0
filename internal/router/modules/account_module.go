package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/shopgrid/accounts-api/internal/interface/http"
	"github.com/shopgrid/accounts-api/internal/interface/middleware"
	"github.com/shopgrid/accounts-api/pkg/helpers"
)

// AccountModule wires the account endpoints.
// Public: POST /api/auth/register, POST /api/auth/login,
// POST /api/auth/verify/confirm. Protected: GET /api/auth/me.
type AccountModule struct {
	Handler *handlers.AccountHandler
	JWT     *helpers.JWTManager
}

func NewAccountModule(h *handlers.AccountHandler, jwt *helpers.JWTManager) *AccountModule {
	return &AccountModule{Handler: h, JWT: jwt}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/register", m.Handler.Register)
	rg.POST("/auth/login", m.Handler.Login)
	rg.POST("/auth/verify/confirm", m.Handler.VerifyConfirm)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/auth/me", m.Handler.Me)
	}
}
