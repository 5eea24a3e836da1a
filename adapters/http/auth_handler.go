package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/apex-portal/internal/application/usecase/auth"
	"github.com/khoahotran/apex-portal/pkg/apperror"
	"github.com/khoahotran/apex-portal/pkg/logger"
)

type AuthHandler struct {
	signUpUseCase      *auth.SignUpUseCase
	loginUseCase       *auth.LoginUseCase
	logoutUseCase      *auth.LogoutUseCase
	currentUserUseCase *auth.CurrentUserUseCase
	logger             logger.Logger
}

func NewAuthHandler(
	signUpUC *auth.SignUpUseCase,
	loginUC *auth.LoginUseCase,
	logoutUC *auth.LogoutUseCase,
	currentUserUC *auth.CurrentUserUseCase,
	log logger.Logger,
) *AuthHandler {
	return &AuthHandler{
		signUpUseCase:      signUpUC,
		loginUseCase:       loginUC,
		logoutUseCase:      logoutUC,
		currentUserUseCase: currentUserUC,
		logger:             log,
	}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	h.session(c, h.signUpUseCase.Execute, http.StatusCreated)
}

func (h *AuthHandler) Login(c *gin.Context) {
	h.session(c, h.loginUseCase.Execute, http.StatusOK)
}

func (h *AuthHandler) session(c *gin.Context, exec func(context.Context, auth.Credentials) (*auth.SessionOutput, error), status int) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body", err))
		return
	}

	output, err := exec(c.Request.Context(), auth.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(status, gin.H{
		"access_token": output.AccessToken,
		"user":         ToUserDTO(output.User),
		"redirect":     output.Redirect,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := GetClaimsFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("claims not found in context"))
		return
	}

	output, err := h.logoutUseCase.Execute(c.Request.Context(), claims)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"redirect": output.Redirect})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	u, err := h.currentUserUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": ToUserDTO(u)})
}
