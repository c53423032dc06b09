package mock_test

import (
	"time"

	clienttypes "github.com/cosmos/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/cosmos/ibc-core/modules/core/23-commitment/types"
	mockclient "github.com/cosmos/ibc-core/modules/light-clients/00-mock"
	ibctesting "github.com/cosmos/ibc-core/testing"
)

func (s *MockTestSuite) TestClientStateValidate() {
	testCases := []struct {
		name        string
		clientState *mockclient.ClientState
		expErr      error
	}{
		{
			"valid client",
			mockclient.NewClientState("testchain2-1", clienttypes.NewHeight(1, 10), ibctesting.TrustingPeriod),
			nil,
		},
		{
			"empty chain id",
			mockclient.NewClientState("  ", clienttypes.NewHeight(0, 10), ibctesting.TrustingPeriod),
			mockclient.ErrInvalidChainID,
		},
		{
			"chain id too long",
			mockclient.NewClientState(ibctesting.LongString, clienttypes.NewHeight(0, 10), ibctesting.TrustingPeriod),
			mockclient.ErrInvalidChainID,
		},
		{
			"zero trusting period",
			mockclient.NewClientState("testchain2-1", clienttypes.NewHeight(1, 10), 0),
			mockclient.ErrInvalidTrustingPeriod,
		},
		{
			"negative trusting period",
			mockclient.NewClientState("testchain2-1", clienttypes.NewHeight(1, 10), -time.Second),
			mockclient.ErrInvalidTrustingPeriod,
		},
		{
			"revision number does not match chain id",
			mockclient.NewClientState("testchain2-1", clienttypes.NewHeight(2, 10), ibctesting.TrustingPeriod),
			mockclient.ErrInvalidHeaderHeight,
		},
		{
			"zero revision height",
			mockclient.NewClientState("testchain2-1", clienttypes.NewHeight(1, 0), ibctesting.TrustingPeriod),
			mockclient.ErrInvalidHeaderHeight,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.clientState.Validate()

			if tc.expErr == nil {
				s.Require().NoError(err)
			} else {
				s.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

func (s *MockTestSuite) TestIsExpired() {
	clientState := mockclient.NewClientState("testchain2-1", clienttypes.NewHeight(1, 10), time.Hour)
	latest := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)

	s.Require().False(clientState.IsExpired(latest, latest))
	s.Require().False(clientState.IsExpired(latest, latest.Add(time.Hour-time.Nanosecond)))
	s.Require().True(clientState.IsExpired(latest, latest.Add(time.Hour)))
	s.Require().True(clientState.IsExpired(latest, latest.Add(2*time.Hour)))
}

func (s *MockTestSuite) TestClientStateEncoding() {
	clientState := mockclient.NewClientState("testchain2-1", clienttypes.NewHeight(1, 10), ibctesting.TrustingPeriod)
	clientState.FrozenHeight = mockclient.FrozenHeight

	bz, err := clientState.Marshal()
	s.Require().NoError(err)

	var decoded mockclient.ClientState
	s.Require().NoError(decoded.Unmarshal(bz))
	s.Require().Equal(*clientState, decoded)
}

func (s *MockTestSuite) TestConsensusStateValidateBasic() {
	now := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name           string
		consensusState *mockclient.ConsensusState
		expErr         error
	}{
		{"valid consensus state", mockclient.NewConsensusState(now, commitmenttypes.NewMerkleRoot([]byte("root"))), nil},
		{"empty root", mockclient.NewConsensusState(now, commitmenttypes.MerkleRoot{}), clienttypes.ErrInvalidConsensus},
		{"zero timestamp", &mockclient.ConsensusState{Root: commitmenttypes.NewMerkleRoot([]byte("root"))}, clienttypes.ErrInvalidConsensus},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.consensusState.ValidateBasic()

			if tc.expErr == nil {
				s.Require().NoError(err)
				s.Require().Equal(now, tc.consensusState.GetTime())
			} else {
				s.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

func (s *MockTestSuite) TestMisbehaviourValidateBasic() {
	now := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	height := clienttypes.NewHeight(1, 10)

	testCases := []struct {
		name         string
		misbehaviour *mockclient.Misbehaviour
		expErr       error
	}{
		{
			"conflicting roots",
			mockclient.NewMisbehaviour(mockclient.NewHeader(height, now, []byte("a")), mockclient.NewHeader(height, now, []byte("b"))),
			nil,
		},
		{
			"conflicting timestamps",
			mockclient.NewMisbehaviour(mockclient.NewHeader(height, now, []byte("a")), mockclient.NewHeader(height, now.Add(time.Second), []byte("a"))),
			nil,
		},
		{
			"identical headers",
			mockclient.NewMisbehaviour(mockclient.NewHeader(height, now, []byte("a")), mockclient.NewHeader(height, now, []byte("a"))),
			mockclient.ErrInvalidMisbehaviour,
		},
		{
			"different heights",
			mockclient.NewMisbehaviour(mockclient.NewHeader(height, now, []byte("a")), mockclient.NewHeader(height.Increment().(clienttypes.Height), now, []byte("b"))),
			mockclient.ErrInvalidMisbehaviour,
		},
		{
			"invalid header",
			mockclient.NewMisbehaviour(mockclient.NewHeader(height, now, nil), mockclient.NewHeader(height, now, []byte("b"))),
			mockclient.ErrInvalidHeader,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.misbehaviour.ValidateBasic()

			if tc.expErr == nil {
				s.Require().NoError(err)
			} else {
				s.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}
