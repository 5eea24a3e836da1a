package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/apex-portal/internal/application/service"
	"github.com/khoahotran/apex-portal/internal/domain/profile"
	"github.com/khoahotran/apex-portal/pkg/apperror"
	"github.com/khoahotran/apex-portal/pkg/logger"
)

type ProfileUseCaseSuite struct {
	suite.Suite
	repo      *memoryProfileRepo
	cache     *memoryCache
	publisher *recordingPublisher
	uc        *ProfileUseCase
	userID    uuid.UUID
	ctx       context.Context
}

func (s *ProfileUseCaseSuite) SetupTest() {
	s.repo = newMemoryProfileRepo()
	s.cache = newMemoryCache()
	s.publisher = &recordingPublisher{}
	s.uc = NewProfileUseCase(s.repo, s.cache, s.publisher, logger.NewNopLogger())
	s.uc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	s.userID = uuid.New()
	s.ctx = context.Background()
}

func TestProfileUseCase(t *testing.T) {
	suite.Run(t, new(ProfileUseCaseSuite))
}

func (s *ProfileUseCaseSuite) awaitEvents(want ...service.ProfileEventType) {
	s.Require().Eventually(func() bool {
		return len(s.publisher.types()) == len(want)
	}, time.Second, 10*time.Millisecond)
	s.ElementsMatch(want, s.publisher.types())
}

func (s *ProfileUseCaseSuite) Test_GetProfile_MissingRowIsEmpty() {
	out, err := s.uc.ExecuteGetProfile(s.ctx, GetProfileInput{UserID: s.userID})
	s.Require().NoError(err)
	s.False(out.Exists)
	s.Equal(s.userID, out.Profile.UserID)
	s.Empty(out.Profile.Industries)
}

func (s *ProfileUseCaseSuite) Test_GetProfile_UsesCache() {
	_, err := s.uc.ExecuteLinkCompany(s.ctx, LinkCompanyInput{UserID: s.userID, CompanyNumber: "12345678"})
	s.Require().NoError(err)
	readsAfterWrite := s.repo.reads

	_, err = s.uc.ExecuteGetProfile(s.ctx, GetProfileInput{UserID: s.userID})
	s.Require().NoError(err)
	_, err = s.uc.ExecuteGetProfile(s.ctx, GetProfileInput{UserID: s.userID})
	s.Require().NoError(err)

	s.Equal(readsAfterWrite, s.repo.reads)
}

func (s *ProfileUseCaseSuite) Test_SlowReadCannotOverwriteSavedPreferences() {
	_, err := s.uc.ExecuteLinkCompany(s.ctx, LinkCompanyInput{UserID: s.userID, CompanyNumber: "12345678"})
	s.Require().NoError(err)
	s.Require().NoError(s.cache.Invalidate(s.ctx, s.userID))

	gated := newGatedProfileRepo(s.repo)
	uc := NewProfileUseCase(gated, s.cache, nil, logger.NewNopLogger())

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		_, _ = uc.ExecuteGetProfile(s.ctx, GetProfileInput{UserID: s.userID})
	}()
	<-gated.started

	_, err = uc.ExecuteSavePreferences(s.ctx, SavePreferencesInput{
		UserID:       s.userID,
		Industries:   []string{"Construction"},
		FundingTypes: []string{"Decarbonisation"},
		Region:       "Wales",
		MinAmount:    "1000",
	})
	s.Require().NoError(err)

	close(gated.release)
	<-readDone

	home, err := uc.ExecuteHome(s.ctx, HomeInput{UserID: s.userID})
	s.Require().NoError(err)
	s.True(home.Status.PreferencesSet)
	s.True(home.Status.MonitoringActive)
}

func (s *ProfileUseCaseSuite) Test_LinkCompany_NormalizesAndRedirects() {
	out, err := s.uc.ExecuteLinkCompany(s.ctx, LinkCompanyInput{UserID: s.userID, CompanyNumber: " sc123456 "})
	s.Require().NoError(err)

	s.Equal(profile.RouteHome, out.Redirect)
	s.True(out.Refetch)
	s.Require().NotNil(out.Profile)
	s.Equal("SC123456", *out.Profile.CompanyNumber)
	s.True(out.Profile.CompanyLinked)
	s.False(out.Profile.CompanyLinkingSkipped)
	s.Equal(s.uc.now(), out.Profile.UpdatedAt)
	cached, hit, err := s.cache.Get(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Require().True(hit)
	s.Equal("SC123456", *cached.CompanyNumber)
	s.awaitEvents(service.ProfileEventCompanyLinked)
}

func (s *ProfileUseCaseSuite) Test_LinkCompany_IsIdempotent() {
	for i := 0; i < 2; i++ {
		_, err := s.uc.ExecuteLinkCompany(s.ctx, LinkCompanyInput{UserID: s.userID, CompanyNumber: "12345678"})
		s.Require().NoError(err)
	}
	s.Len(s.repo.rows, 1)
	s.Equal("12345678", *s.repo.rows[s.userID].CompanyNumber)
}

func (s *ProfileUseCaseSuite) Test_LinkCompany_ValidationBlocksWrite() {
	for _, in := range []string{"1234567", "ABCDEFGH", ""} {
		_, err := s.uc.ExecuteLinkCompany(s.ctx, LinkCompanyInput{UserID: s.userID, CompanyNumber: in})
		s.Require().Error(err)
		s.ErrorIs(err, apperror.ErrInvalidInput)
	}
	s.Empty(s.repo.rows)

	_, err := s.uc.ExecuteLinkCompany(s.ctx, LinkCompanyInput{UserID: s.userID, CompanyNumber: "1234567"})
	var appErr *apperror.AppError
	s.Require().True(errors.As(err, &appErr))
	s.Equal(profile.ErrCompanyNumberFormat.Message, appErr.Message)
}

func (s *ProfileUseCaseSuite) Test_LinkCompany_StoreErrorIsVerbatim() {
	s.repo.writeErr = errStore

	_, err := s.uc.ExecuteLinkCompany(s.ctx, LinkCompanyInput{UserID: s.userID, CompanyNumber: "12345678"})
	var appErr *apperror.AppError
	s.Require().True(errors.As(err, &appErr))
	s.Equal(errStore.Error(), appErr.Details)
	s.Empty(s.publisher.types())
}

func (s *ProfileUseCaseSuite) Test_Skip_LeavesLinkedFlagAlone() {
	_, err := s.uc.ExecuteSkipCompanyLinking(s.ctx, SkipCompanyInput{UserID: s.userID})
	s.Require().NoError(err)
	row := s.repo.rows[s.userID]
	s.True(row.CompanyLinkingSkipped)
	s.False(row.CompanyLinked)

	_, err = s.uc.ExecuteLinkCompany(s.ctx, LinkCompanyInput{UserID: s.userID, CompanyNumber: "12345678"})
	s.Require().NoError(err)
	out, err := s.uc.ExecuteSkipCompanyLinking(s.ctx, SkipCompanyInput{UserID: s.userID})
	s.Require().NoError(err)

	s.True(out.Profile.CompanyLinkingSkipped)
	s.True(out.Profile.CompanyLinked)
	s.Equal(profile.LinkStateLinked, out.Profile.LinkStatus().State())
	s.awaitEvents(service.ProfileEventLinkingSkipped, service.ProfileEventCompanyLinked, service.ProfileEventLinkingSkipped)
}

func (s *ProfileUseCaseSuite) Test_SavePreferences() {
	out, err := s.uc.ExecuteSavePreferences(s.ctx, SavePreferencesInput{
		UserID:       s.userID,
		Industries:   []string{"Construction", "Construction", "Retail"},
		FundingTypes: []string{"Decarbonisation"},
		Region:       "Scotland",
		MinAmount:    "1234.5",
	})
	s.Require().NoError(err)

	s.True(out.Profile.PreferencesSet)
	s.Equal([]string{"Construction", "Retail"}, out.Profile.Industries)
	s.Equal(int64(1235), *out.Profile.MinAmount)
	s.Equal("Scotland", *out.Profile.Region)
	s.awaitEvents(service.ProfileEventPrefsSaved)

	home, err := s.uc.ExecuteHome(s.ctx, HomeInput{UserID: s.userID})
	s.Require().NoError(err)
	s.True(home.Status.PreferencesSet)
	s.Equal("Complete", home.Badges[1].Status)
}

func (s *ProfileUseCaseSuite) Test_SavePreferences_RequiresAllThree() {
	inputs := []SavePreferencesInput{
		{UserID: s.userID, Industries: []string{"Retail"}},
		{UserID: s.userID, FundingTypes: []string{"Decarbonisation"}},
		{UserID: s.userID, Region: "Wales"},
	}
	for _, in := range inputs {
		_, err := s.uc.ExecuteSavePreferences(s.ctx, in)
		s.ErrorIs(err, apperror.ErrInvalidInput)
	}
	s.Empty(s.repo.rows)
}

func (s *ProfileUseCaseSuite) Test_SavePreferences_UnparsableAmountIsZero() {
	out, err := s.uc.ExecuteSavePreferences(s.ctx, SavePreferencesInput{
		UserID:       s.userID,
		Industries:   []string{"Retail"},
		FundingTypes: []string{"Training funding"},
		Region:       "UK-wide",
		MinAmount:    "lots",
	})
	s.Require().NoError(err)
	s.Equal(int64(0), *out.Profile.MinAmount)
}

func (s *ProfileUseCaseSuite) Test_PreferencesForm_Defaults() {
	form, err := s.uc.ExecuteGetPreferencesForm(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal("UK-wide", form.Region)
	s.Equal("50000", form.MinAmount)
	s.Empty(form.Industries)
	s.False(form.PreferencesSet)
}

func (s *ProfileUseCaseSuite) Test_Home_ProgressAndMonitoring() {
	home, err := s.uc.ExecuteHome(s.ctx, HomeInput{UserID: s.userID, Email: "a@example.com"})
	s.Require().NoError(err)
	s.Equal(0, home.Status.Progress)
	s.Equal(profile.StageNoProfile, home.Status.Stage)
	s.Equal("a@example.com", home.Email)

	_, err = s.uc.ExecuteLinkCompany(s.ctx, LinkCompanyInput{UserID: s.userID, CompanyNumber: "12345678"})
	s.Require().NoError(err)
	home, err = s.uc.ExecuteHome(s.ctx, HomeInput{UserID: s.userID})
	s.Require().NoError(err)
	s.Equal(50, home.Status.Progress)
	s.Equal("12345678", home.CompanyNumber)
	s.False(home.Status.MonitoringActive)

	_, err = s.uc.ExecuteSavePreferences(s.ctx, SavePreferencesInput{
		UserID: s.userID, Industries: []string{"Retail"}, FundingTypes: []string{"Capital grants"}, Region: "Wales",
	})
	s.Require().NoError(err)
	home, err = s.uc.ExecuteHome(s.ctx, HomeInput{UserID: s.userID})
	s.Require().NoError(err)
	s.Equal(100, home.Status.Progress)
	s.True(home.Status.MonitoringActive)
	s.Equal(profile.StageFullSetup, home.Status.Stage)
}

func (s *ProfileUseCaseSuite) Test_Home_ReadErrorFallsBackToDefaults() {
	s.repo.readErr = errors.New("connection refused")

	home, err := s.uc.ExecuteHome(s.ctx, HomeInput{UserID: s.userID})
	s.Require().NoError(err)
	s.Equal(0, home.Status.Progress)
	s.Equal("Not yet", home.Badges[0].Status)
}

func TestProfileUseCase_WithoutCacheOrPublisher(t *testing.T) {
	repo := newMemoryProfileRepo()
	uc := NewProfileUseCase(repo, nil, nil, logger.NewNopLogger())
	userID := uuid.New()

	out, err := uc.ExecuteLinkCompany(context.Background(), LinkCompanyInput{UserID: userID, CompanyNumber: "NI123456"})
	require.NoError(t, err)
	assert.Equal(t, "NI123456", *out.Profile.CompanyNumber)

	form, err := uc.ExecuteGetCompanyForm(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "NI123456", form.CompanyNumber)
	assert.True(t, form.Status.IsLinked())
}
