package mock_test

import (
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"

	clienttypes "github.com/cosmos/ibc-core/modules/core/02-client/types"
	ibcerrors "github.com/cosmos/ibc-core/modules/core/errors"
	"github.com/cosmos/ibc-core/modules/core/exported"
	mockclient "github.com/cosmos/ibc-core/modules/light-clients/00-mock"
	ibctesting "github.com/cosmos/ibc-core/testing"
)

func (s *MockTestSuite) TestGetSelfConsensusState() {
	var height exported.Height

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{
			"success",
			func() {},
			nil,
		},
		{
			"revision number does not match chain id",
			func() {
				height = clienttypes.NewHeight(height.GetRevisionNumber()+1, height.GetRevisionHeight())
			},
			clienttypes.ErrInvalidHeight,
		},
		{
			"header not committed",
			func() {
				height = height.Increment()
			},
			mockclient.ErrHistoricalInfoNotFound,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			height = s.chainA.GetSelfHeight()

			tc.malleate()

			consensusHost := mockclient.NewConsensusHost(s.chainA.App)
			bz, err := consensusHost.GetSelfConsensusState(s.chainA.GetContext(), height)

			if tc.expErr == nil {
				s.Require().NoError(err)

				var consensusState mockclient.ConsensusState
				s.Require().NoError(clienttypes.UnmarshalAny(bz, mockclient.ConsensusStateTypeURL, &consensusState))
				s.Require().Equal(s.chainA.LastHeader.AppHash, consensusState.Root.Hash)
				s.Require().True(s.chainA.LastHeader.Time.Equal(consensusState.GetTime()))
			} else {
				s.Require().ErrorIs(err, tc.expErr)
			}
		})
	}

	s.Run("height of wrong type", func() {
		_, err := mockclient.NewConsensusHost(s.chainA.App).GetSelfConsensusState(s.chainA.GetContext(), nil)
		s.Require().ErrorIs(err, ibcerrors.ErrInvalidType)
	})
}

func (s *MockTestSuite) TestValidateSelfClient() {
	var clientState *mockclient.ClientState

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{
			"success",
			func() {},
			nil,
		},
		{
			"frozen client",
			func() {
				clientState.FrozenHeight = mockclient.FrozenHeight
			},
			clienttypes.ErrClientFrozen,
		},
		{
			"wrong chain id",
			func() {
				clientState.ChainId = s.chainB.ChainID
			},
			clienttypes.ErrInvalidClient,
		},
		{
			"wrong revision",
			func() {
				clientState.LatestHeight.RevisionNumber++
			},
			clienttypes.ErrInvalidClient,
		},
		{
			"latest height not below chain height",
			func() {
				clientState.LatestHeight = clienttypes.NewHeight(clientState.LatestHeight.RevisionNumber, uint64(s.chainA.GetContext().BlockHeight()))
			},
			clienttypes.ErrInvalidClient,
		},
		{
			"zero trusting period",
			func() {
				clientState.TrustingPeriod = 0
			},
			clienttypes.ErrInvalidClient,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			clientState = mockclient.NewClientState(s.chainA.ChainID, s.chainA.GetSelfHeight(), ibctesting.TrustingPeriod)

			tc.malleate()

			clientStateAny, err := clienttypes.PackAny(clientState)
			s.Require().NoError(err)

			err = mockclient.NewConsensusHost(s.chainA.App).ValidateSelfClient(s.chainA.GetContext(), clientStateAny)

			if tc.expErr == nil {
				s.Require().NoError(err)
			} else {
				s.Require().ErrorIs(err, tc.expErr)
			}
		})
	}

	s.Run("nil client state", func() {
		err := mockclient.NewConsensusHost(s.chainA.App).ValidateSelfClient(s.chainA.GetContext(), nil)
		s.Require().ErrorIs(err, clienttypes.ErrInvalidClient)
	})

	s.Run("not a mock client", func() {
		err := mockclient.NewConsensusHost(s.chainA.App).ValidateSelfClient(s.chainA.GetContext(), &codectypes.Any{TypeUrl: "/ibc.lightclients.tendermint.v1.ClientState"})
		s.Require().ErrorIs(err, clienttypes.ErrInvalidClient)
	})
}
