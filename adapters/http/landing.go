package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/apex-portal/internal/domain/profile"
)

type landingStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Route       string `json:"route"`
}

var landingSteps = []landingStep{
	{Title: "Create your account", Description: "Sign up with your email and a password.", Route: profile.RouteLogin},
	{Title: "Link your company", Description: "Add your Companies House number so searches fit your business.", Route: profile.RouteLinkCompany},
	{Title: "Define your focus", Description: "Pick industries, funding types, a region and a minimum amount.", Route: profile.RoutePreferences},
}

// Landing serves the static copy for the public landing view.
func Landing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"product": "Apex",
		"tagline": "Grant matching for UK businesses",
		"steps":   landingSteps,
		"cta":     profile.RouteLogin,
	})
}
