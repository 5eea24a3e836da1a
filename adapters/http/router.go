package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/apex-portal/internal/application/service"
	"github.com/khoahotran/apex-portal/pkg/auth"
	"github.com/khoahotran/apex-portal/pkg/logger"
)

type RouterDeps struct {
	AuthHandler    *AuthHandler
	ProfileHandler *ProfileHandler
	JWTService     *auth.JWTService
	Sessions       service.SessionStore
	Logger         logger.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(deps.Logger), ErrorMiddleware(deps.Logger))

	authMiddleware := AuthMiddleware(deps.JWTService, deps.Sessions, deps.Logger)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		public := api.Group("/public")
		{
			public.GET("/landing", Landing)
		}

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", deps.AuthHandler.SignUp)
			authGroup.POST("/login", deps.AuthHandler.Login)

			authPrivate := authGroup.Group("")
			authPrivate.Use(authMiddleware)
			{
				authPrivate.POST("/logout", deps.AuthHandler.Logout)
				authPrivate.GET("/me", deps.AuthHandler.Me)
			}
		}

		portal := api.Group("/portal")
		portal.Use(authMiddleware)
		{
			portal.GET("/home", deps.ProfileHandler.Home)
			portal.GET("/profile", deps.ProfileHandler.GetProfile)
			portal.GET("/company", deps.ProfileHandler.GetCompany)
			portal.PUT("/company", deps.ProfileHandler.LinkCompany)
			portal.POST("/company/skip", deps.ProfileHandler.SkipCompany)
			portal.GET("/preferences", deps.ProfileHandler.GetPreferences)
			portal.PUT("/preferences", deps.ProfileHandler.SavePreferences)
			portal.GET("/opportunities", deps.ProfileHandler.Opportunities)
		}
	}

	return router
}
