package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	profileUC "github.com/khoahotran/apex-portal/internal/application/usecase/profile"
	"github.com/khoahotran/apex-portal/internal/domain/profile"
	"github.com/khoahotran/apex-portal/pkg/apperror"
	"github.com/khoahotran/apex-portal/pkg/logger"
)

const companyNumberHint = "Enter your Companies House number (e.g. 12345678 or SC123456)."

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	logger         logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
		logger:         log,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	output, err := h.profileUseCase.ExecuteGetProfile(c.Request.Context(), profileUC.GetProfileInput{UserID: userID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": ToProfileDTO(output.Profile),
		"exists":  output.Exists,
	})
}

func (h *ProfileHandler) GetCompany(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	output, err := h.profileUseCase.ExecuteGetCompanyForm(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, CompanyFormDTO{
		CompanyNumber: output.CompanyNumber,
		Status:        output.Status.State(),
		Hint:          companyNumberHint,
	})
}

func (h *ProfileHandler) LinkCompany(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req LinkCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for company link", err))
		return
	}

	output, err := h.profileUseCase.ExecuteLinkCompany(c.Request.Context(), profileUC.LinkCompanyInput{
		UserID:        userID,
		CompanyNumber: req.CompanyNumber,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToMutationResponse(output))
}

func (h *ProfileHandler) SkipCompany(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	output, err := h.profileUseCase.ExecuteSkipCompanyLinking(c.Request.Context(), profileUC.SkipCompanyInput{UserID: userID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToMutationResponse(output))
}

func (h *ProfileHandler) GetPreferences(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	output, err := h.profileUseCase.ExecuteGetPreferencesForm(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToPreferencesFormDTO(output))
}

func (h *ProfileHandler) SavePreferences(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req SavePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for preferences", err))
		return
	}

	output, err := h.profileUseCase.ExecuteSavePreferences(c.Request.Context(), profileUC.SavePreferencesInput{
		UserID:       userID,
		Industries:   req.Industries,
		FundingTypes: req.FundingTypes,
		Region:       req.Region,
		MinAmount:    string(req.MinAmount),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToMutationResponse(output))
}

func (h *ProfileHandler) Home(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}
	email := ""
	if claims, ok := GetClaimsFromGinContext(c); ok {
		email = claims.Email
	}

	output, err := h.profileUseCase.ExecuteHome(c.Request.Context(), profileUC.HomeInput{UserID: userID, Email: email})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToHomeDTO(output))
}

func (h *ProfileHandler) Opportunities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"opportunities": emptyOpportunities(),
		"back":          profile.RouteHome,
	})
}
