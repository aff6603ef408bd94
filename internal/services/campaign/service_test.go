package campaign_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/pokesheet/internal/entities"
	apperr "github.com/KirkDiggler/pokesheet/internal/errors"
	mockcampaigns "github.com/KirkDiggler/pokesheet/internal/repositories/campaigns/mock"
	"github.com/KirkDiggler/pokesheet/internal/rulesets"
	"github.com/KirkDiggler/pokesheet/internal/services/campaign"
	"github.com/KirkDiggler/pokesheet/internal/testutils"
	mockuuid "github.com/KirkDiggler/pokesheet/internal/uuid/mock"
)

type CampaignServiceTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	mockRepository *mockcampaigns.MockRepository
	mockUUID       *mockuuid.MockGenerator
	service        campaign.Service
	ctx            context.Context
}

func (s *CampaignServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepository = mockcampaigns.NewMockRepository(s.ctrl)
	s.mockUUID = mockuuid.NewMockGenerator(s.ctrl)
	s.ctx = context.Background()

	s.service = campaign.NewService(&campaign.ServiceConfig{
		Repository:    s.mockRepository,
		UUIDGenerator: s.mockUUID,
	})
}

func (s *CampaignServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestCampaignServiceSuite(t *testing.T) {
	suite.Run(t, new(CampaignServiceTestSuite))
}

func (s *CampaignServiceTestSuite) TestCreateCampaign() {
	s.mockUUID.EXPECT().New().Return("c1")
	s.mockRepository.EXPECT().Create(s.ctx, gomock.Any()).Return(nil)

	c, err := s.service.CreateCampaign(s.ctx, &campaign.CreateCampaignInput{OwnerID: "gm", Name: "Johto"})
	s.Require().NoError(err)
	s.Equal("c1", c.ID)
	s.Nil(c.Ruleset)
}

func (s *CampaignServiceTestSuite) TestCreateCampaign_InvalidInput() {
	_, err := s.service.CreateCampaign(s.ctx, &campaign.CreateCampaignInput{OwnerID: "gm"})
	s.True(apperr.IsInvalidArgument(err))

	_, err = s.service.CreateCampaign(s.ctx, nil)
	s.True(apperr.IsInvalidArgument(err))

	broken := rulesets.Default()
	broken.Trainer.MaxHP = "{level} +"
	_, err = s.service.CreateCampaign(s.ctx, &campaign.CreateCampaignInput{OwnerID: "gm", Name: "Johto", Ruleset: broken})
	s.True(apperr.IsValidation(err))
}

func (s *CampaignServiceTestSuite) TestUpdateRuleset() {
	ruleset := rulesets.Default()
	ruleset.Name = "house"
	ruleset.Pokemon.MaxHP = "{level} * 2 + {total_hp} * 4"

	s.mockRepository.EXPECT().Get(s.ctx, "c1").Return(testutils.CreateTestCampaign("c1", "gm", "Johto"), nil)
	s.mockRepository.EXPECT().Update(s.ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, c *entities.Campaign) error {
			s.Equal("house", c.Ruleset.Name)
			return nil
		})

	c, err := s.service.UpdateRuleset(s.ctx, "c1", ruleset)
	s.Require().NoError(err)
	s.Equal("house", c.Ruleset.Name)
}

func (s *CampaignServiceTestSuite) TestUpdateRuleset_RejectsBadFormula() {
	ruleset := rulesets.Default()
	ruleset.Pokemon.SpeedEvasion = "eval({speed})"

	_, err := s.service.UpdateRuleset(s.ctx, "c1", ruleset)
	s.True(apperr.IsValidation(err))
}

func (s *CampaignServiceTestSuite) TestRuleset() {
	s.Run("empty campaign", func() {
		rs, err := s.service.Ruleset(s.ctx, "")
		s.Require().NoError(err)
		s.Equal("ptu-1.05", rs.Name)
	})

	s.Run("campaign without ruleset", func() {
		s.mockRepository.EXPECT().Get(s.ctx, "c1").Return(testutils.CreateTestCampaign("c1", "gm", "Johto"), nil)
		rs, err := s.service.Ruleset(s.ctx, "c1")
		s.Require().NoError(err)
		s.Equal("ptu-1.05", rs.Name)
	})

	s.Run("custom ruleset", func() {
		c := testutils.CreateTestCampaign("c2", "gm", "Kanto")
		c.Ruleset = rulesets.Default()
		c.Ruleset.Name = "house"
		s.mockRepository.EXPECT().Get(s.ctx, "c2").Return(c, nil)

		rs, err := s.service.Ruleset(s.ctx, "c2")
		s.Require().NoError(err)
		s.Equal("house", rs.Name)
	})

	s.Run("missing campaign", func() {
		s.mockRepository.EXPECT().Get(s.ctx, "gone").Return(nil, apperr.NotFound("not found"))
		_, err := s.service.Ruleset(s.ctx, "gone")
		s.True(apperr.IsNotFound(err))
	})
}

func (s *CampaignServiceTestSuite) TestListAndDelete() {
	s.mockRepository.EXPECT().GetByOwner(s.ctx, "gm").Return([]*entities.Campaign{
		testutils.CreateTestCampaign("c1", "gm", "Johto"),
	}, nil)
	list, err := s.service.ListCampaigns(s.ctx, "gm")
	s.Require().NoError(err)
	s.Len(list, 1)

	s.mockRepository.EXPECT().Delete(s.ctx, "c1").Return(nil)
	s.NoError(s.service.DeleteCampaign(s.ctx, "c1"))

	_, err = s.service.ListCampaigns(s.ctx, "")
	s.True(apperr.IsInvalidArgument(err))
}
