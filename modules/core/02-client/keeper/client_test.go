package keeper_test

import (
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/cosmos/ibc-core/modules/core/23-commitment/types"
	"github.com/cosmos/ibc-core/modules/core/exported"
	mockclient "github.com/cosmos/ibc-core/modules/light-clients/00-mock"
	ibctesting "github.com/cosmos/ibc-core/testing"
)

func (s *KeeperTestSuite) TestCreateClient() {
	var (
		clientType     string
		clientState    *mockclient.ClientState
		consensusState *mockclient.ConsensusState
	)

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
			"failure: client type not in allowlist",
			func() {
				s.keeper().SetParams(s.chainA.GetContext(), types.NewParams(exported.Tendermint))
			},
			types.ErrInvalidClientType,
		},
		{
			"failure: client type without a route",
			func() {
				clientType = exported.Tendermint
				s.keeper().SetParams(s.chainA.GetContext(), types.NewParams(exported.Tendermint))
			},
			types.ErrRouteNotFound,
		},
		{
			"failure: invalid client state",
			func() {
				clientState.ChainId = ""
			},
			mockclient.ErrInvalidChainID,
		},
		{
			"failure: frozen client state",
			func() {
				clientState.FrozenHeight = mockclient.FrozenHeight
			},
			types.ErrClientFrozen,
		},
		{
			"failure: client is created expired",
			func() {
				consensusState.Timestamp = uint64(s.chainA.GetContext().BlockTime().Add(-ibctesting.TrustingPeriod).UnixNano())
			},
			types.ErrClientNotActive,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()

			clientType = exported.Mock
			header := s.chainB.CurrentMockHeader()
			clientState = mockclient.NewClientState(s.chainB.ChainID, header.Height, ibctesting.TrustingPeriod)
			consensusState = header.ConsensusState()

			tc.malleate()

			clientStateBz, err := clientState.Marshal()
			s.Require().NoError(err)
			consensusStateBz, err := consensusState.Marshal()
			s.Require().NoError(err)

			ctx := s.chainA.GetContext()
			expClientID := types.FormatClientIdentifier(clientType, s.keeper().GetNextClientSequence(ctx))

			clientID, err := s.keeper().CreateClient(ctx, clientType, clientStateBz, consensusStateBz)

			if tc.expErr == nil {
				s.Require().NoError(err)
				s.Require().Equal(expClientID, clientID)
				s.Require().True(s.keeper().HasClient(ctx, clientID))
				s.Require().Equal(exported.Active, s.keeper().GetClientStatus(ctx, clientID))

				_, found := s.keeper().GetProcessedTime(ctx, clientID, header.Height)
				s.Require().True(found)
			} else {
				s.Require().ErrorIs(err, tc.expErr)
				s.Require().Empty(clientID)
			}
		})
	}
}

func (s *KeeperTestSuite) TestUpdateClient() {
	var (
		path      *ibctesting.Path
		clientMsg exported.ClientMessage
	)

	testCases := []struct {
		name      string
		malleate  func()
		expErr    error
		expFreeze bool
	}{
		{
			"valid update",
			func() {},
			nil,
			false,
		},
		{
			"valid update for a past height",
			func() {
				latest := path.EndpointA.GetClientLatestHeight()
				pastHeight := types.NewHeight(latest.RevisionNumber, latest.RevisionHeight-1)
				clientMsg = mockclient.NewHeader(pastHeight, s.chainB.LastHeader.Time.Add(-time.Minute), []byte("past root"))
			},
			nil,
			false,
		},
		{
			"misbehaviour freezes the client",
			func() {
				header := s.chainB.CurrentMockHeader()
				clientMsg = mockclient.NewMisbehaviour(header, mockclient.NewHeader(header.Height, header.ConsensusState().GetTime(), []byte("conflicting root")))
			},
			nil,
			true,
		},
		{
			"conflicting header freezes the client",
			func() {
				height := path.EndpointA.GetClientLatestHeight()
				consensusState := path.EndpointA.GetConsensusState(height)
				clientMsg = mockclient.NewHeader(height, consensusState.GetTime(), []byte("conflicting root"))
			},
			nil,
			true,
		},
		{
			"client is frozen",
			func() {
				clientState := path.EndpointA.GetClientState()
				clientState.FrozenHeight = mockclient.FrozenHeight
				path.EndpointA.SetClientState(clientState)
			},
			types.ErrClientNotActive,
			false,
		},
		{
			"client is expired",
			func() {
				s.coordinator.IncrementTimeBy(ibctesting.TrustingPeriod)
			},
			types.ErrClientNotActive,
			false,
		},
		{
			"invalid header",
			func() {
				header := s.chainB.CurrentMockHeader()
				header.Root = nil
				clientMsg = header
			},
			mockclient.ErrInvalidHeader,
			false,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			path = ibctesting.NewPath(s.chainA, s.chainB)
			path.SetupClients()

			s.coordinator.CommitBlock(s.chainB)
			clientMsg = s.chainB.CurrentMockHeader()

			tc.malleate()

			ctx := s.chainA.GetContext()
			prevLatest := path.EndpointA.GetClientLatestHeight()

			err := s.keeper().UpdateClient(ctx, path.EndpointA.ClientID, clientMsg)

			if tc.expErr != nil {
				s.Require().ErrorIs(err, tc.expErr)
				return
			}

			s.Require().NoError(err)

			if tc.expFreeze {
				s.Require().Equal(exported.Frozen, s.keeper().GetClientStatus(ctx, path.EndpointA.ClientID))
				s.Require().Equal(prevLatest, s.keeper().GetClientLatestHeight(ctx, path.EndpointA.ClientID))
				assertEventType(s, ctx, types.EventTypeSubmitMisbehaviour)
				return
			}

			header := clientMsg.(*mockclient.Header)
			s.Require().Equal(exported.Active, s.keeper().GetClientStatus(ctx, path.EndpointA.ClientID))

			consensusState, found := s.chainA.GetConsensusState(path.EndpointA.ClientID, header.Height)
			s.Require().True(found)
			s.Require().Equal(commitmenttypes.NewMerkleRoot(header.Root), consensusState.Root)

			_, found = s.keeper().GetProcessedTime(ctx, path.EndpointA.ClientID, header.Height)
			s.Require().True(found)

			expLatest := prevLatest
			if header.Height.GT(prevLatest) {
				expLatest = header.Height
			}
			s.Require().Equal(expLatest, s.keeper().GetClientLatestHeight(ctx, path.EndpointA.ClientID))
			assertEventType(s, ctx, types.EventTypeUpdateClient)
		})
	}
}

// assertEventType requires an event of the given type to have been emitted on ctx.
func assertEventType(s *KeeperTestSuite, ctx sdk.Context, eventType string) {
	s.T().Helper()

	for _, event := range ctx.EventManager().Events() {
		if event.Type == eventType {
			return
		}
	}
	s.Require().Failf("event not emitted", "expected event of type %s", eventType)
}
