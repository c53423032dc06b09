package mock_test

import (
	"time"

	clienttypes "github.com/cosmos/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/cosmos/ibc-core/modules/core/23-commitment/types"
	host "github.com/cosmos/ibc-core/modules/core/24-host"
	ibcerrors "github.com/cosmos/ibc-core/modules/core/errors"
	"github.com/cosmos/ibc-core/modules/core/exported"
	mockclient "github.com/cosmos/ibc-core/modules/light-clients/00-mock"
	ibctesting "github.com/cosmos/ibc-core/testing"
)

const newClientID = "00-mock-100"

func (s *MockTestSuite) TestUnmarshalClientMessage() {
	lightClientModule := mockclient.NewLightClientModule()
	header := s.chainB.CurrentMockHeader()

	headerBz, err := header.Marshal()
	s.Require().NoError(err)

	clientMsg, err := lightClientModule.UnmarshalClientMessage(mockclient.HeaderTypeURL, headerBz)
	s.Require().NoError(err)
	s.Require().Equal(header, clientMsg)

	misbehaviour := mockclient.NewMisbehaviour(header, mockclient.NewHeader(header.Height, time.Unix(1, 0), []byte("other")))
	misbehaviourBz, err := misbehaviour.Marshal()
	s.Require().NoError(err)

	clientMsg, err = lightClientModule.UnmarshalClientMessage(mockclient.MisbehaviourTypeURL, misbehaviourBz)
	s.Require().NoError(err)
	s.Require().Equal(misbehaviour, clientMsg)

	_, err = lightClientModule.UnmarshalClientMessage(mockclient.HeaderTypeURL, []byte{0xff})
	s.Require().ErrorIs(err, ibcerrors.ErrUnpackAny)

	_, err = lightClientModule.UnmarshalClientMessage("/ibc.lightclients.unknown.v1.Header", headerBz)
	s.Require().ErrorIs(err, mockclient.ErrInvalidClientMsg)
}

func (s *MockTestSuite) TestInitialize() {
	var (
		clientID       string
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
			"invalid client state",
			func() {
				clientState.TrustingPeriod = 0
			},
			mockclient.ErrInvalidTrustingPeriod,
		},
		{
			"frozen client state",
			func() {
				clientState.FrozenHeight = mockclient.FrozenHeight
			},
			clienttypes.ErrClientFrozen,
		},
		{
			"invalid consensus state",
			func() {
				consensusState.Root = commitmenttypes.MerkleRoot{}
			},
			clienttypes.ErrInvalidConsensus,
		},
		{
			"client already exists",
			func() {
				clientID = s.setupClient().EndpointA.ClientID
			},
			clienttypes.ErrClientExists,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()

			clientID = newClientID
			header := s.chainB.CurrentMockHeader()
			clientState = mockclient.NewClientState(s.chainB.ChainID, header.Height, ibctesting.TrustingPeriod)
			consensusState = header.ConsensusState()

			tc.malleate()

			clientStateBz, err := clientState.Marshal()
			s.Require().NoError(err)
			consensusStateBz, err := consensusState.Marshal()
			s.Require().NoError(err)

			lightClientModule := s.lightClientModule(clientID)
			err = lightClientModule.Initialize(s.chainA.GetContext(), clientID, clientStateBz, consensusStateBz)

			if tc.expErr == nil {
				s.Require().NoError(err)
				s.Require().Equal(clientState, s.chainA.GetMockClientState(clientID))

				stored, found := s.chainA.GetConsensusState(clientID, clientState.LatestHeight)
				s.Require().True(found)
				s.Require().Equal(consensusState, stored)
				s.Require().Equal(exported.Active, lightClientModule.Status(s.chainA.GetContext(), clientID))
			} else {
				s.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

func (s *MockTestSuite) TestVerifyClientMessage() {
	var clientMsg exported.ClientMessage

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{
			"valid header",
			func() {},
			nil,
		},
		{
			"valid misbehaviour",
			func() {
				header := s.chainB.CurrentMockHeader()
				clientMsg = mockclient.NewMisbehaviour(header, mockclient.NewHeader(header.Height, header.ConsensusState().GetTime(), []byte("other")))
			},
			nil,
		},
		{
			"header revision does not match client revision",
			func() {
				header := s.chainB.CurrentMockHeader()
				header.Height.RevisionNumber++
				clientMsg = header
			},
			mockclient.ErrInvalidHeaderHeight,
		},
		{
			"header with zero timestamp",
			func() {
				header := s.chainB.CurrentMockHeader()
				header.Timestamp = 0
				clientMsg = header
			},
			mockclient.ErrInvalidTimestamp,
		},
		{
			"misbehaviour without conflict",
			func() {
				header := s.chainB.CurrentMockHeader()
				clientMsg = mockclient.NewMisbehaviour(header, header)
			},
			mockclient.ErrInvalidMisbehaviour,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			path := s.setupClient()

			s.coordinator.CommitBlock(s.chainB)
			clientMsg = s.chainB.CurrentMockHeader()

			tc.malleate()

			lightClientModule := s.lightClientModule(path.EndpointA.ClientID)
			err := lightClientModule.VerifyClientMessage(s.chainA.GetContext(), path.EndpointA.ClientID, clientMsg)

			if tc.expErr == nil {
				s.Require().NoError(err)
			} else {
				s.Require().ErrorIs(err, tc.expErr)
			}
		})
	}

	s.Run("client not found", func() {
		s.SetupTest()

		err := s.lightClientModule(newClientID).VerifyClientMessage(s.chainA.GetContext(), newClientID, s.chainB.CurrentMockHeader())
		s.Require().ErrorIs(err, clienttypes.ErrClientNotFound)
	})
}

func (s *MockTestSuite) TestCheckForMisbehaviour() {
	var clientMsg exported.ClientMessage

	testCases := []struct {
		name            string
		malleate        func(path *ibctesting.Path)
		expMisbehaviour bool
	}{
		{
			"header for a new height",
			func(path *ibctesting.Path) {
				s.coordinator.CommitBlock(s.chainB)
				clientMsg = s.chainB.CurrentMockHeader()
			},
			false,
		},
		{
			"header matching a stored consensus state",
			func(path *ibctesting.Path) {
				height := path.EndpointA.GetClientLatestHeight()
				consensusState := path.EndpointA.GetConsensusState(height)
				clientMsg = mockclient.NewHeader(height, consensusState.GetTime(), consensusState.Root.Hash)
			},
			false,
		},
		{
			"header conflicting with a stored consensus state",
			func(path *ibctesting.Path) {
				height := path.EndpointA.GetClientLatestHeight()
				consensusState := path.EndpointA.GetConsensusState(height)
				clientMsg = mockclient.NewHeader(height, consensusState.GetTime(), []byte("conflicting root"))
			},
			true,
		},
		{
			"header with a conflicting timestamp",
			func(path *ibctesting.Path) {
				height := path.EndpointA.GetClientLatestHeight()
				consensusState := path.EndpointA.GetConsensusState(height)
				clientMsg = mockclient.NewHeader(height, consensusState.GetTime().Add(time.Second), consensusState.Root.Hash)
			},
			true,
		},
		{
			"misbehaviour",
			func(path *ibctesting.Path) {
				header := s.chainB.CurrentMockHeader()
				clientMsg = mockclient.NewMisbehaviour(header, mockclient.NewHeader(header.Height, header.ConsensusState().GetTime(), []byte("other")))
			},
			true,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			path := s.setupClient()

			tc.malleate(path)

			lightClientModule := s.lightClientModule(path.EndpointA.ClientID)
			found := lightClientModule.CheckForMisbehaviour(s.chainA.GetContext(), path.EndpointA.ClientID, clientMsg)
			s.Require().Equal(tc.expMisbehaviour, found)
		})
	}
}

func (s *MockTestSuite) TestUpdateStateOnMisbehaviour() {
	path := s.setupClient()
	lightClientModule := s.lightClientModule(path.EndpointA.ClientID)

	ctx := s.chainA.GetContext()
	lightClientModule.UpdateStateOnMisbehaviour(ctx, path.EndpointA.ClientID, nil)

	clientState := s.chainA.GetMockClientState(path.EndpointA.ClientID)
	s.Require().Equal(mockclient.FrozenHeight, clientState.FrozenHeight)
	s.Require().Equal(exported.Frozen, lightClientModule.Status(ctx, path.EndpointA.ClientID))

	s.Require().Panics(func() {
		lightClientModule.UpdateStateOnMisbehaviour(ctx, newClientID, nil)
	})
}

func (s *MockTestSuite) TestUpdateState() {
	var (
		header       *mockclient.Header
		expLatest    clienttypes.Height
		expConsensus *mockclient.ConsensusState
	)

	testCases := []struct {
		name     string
		malleate func(path *ibctesting.Path)
	}{
		{
			"header advances the latest height",
			func(path *ibctesting.Path) {
				s.coordinator.CommitBlock(s.chainB)
				header = s.chainB.CurrentMockHeader()
				expLatest = header.Height
				expConsensus = header.ConsensusState()
			},
		},
		{
			"header below the latest height keeps the latest height",
			func(path *ibctesting.Path) {
				latest := path.EndpointA.GetClientLatestHeight()
				header = s.newHeader(latest.RevisionHeight - 1)
				header.Root = []byte("older root")
				expLatest = latest
				expConsensus = header.ConsensusState()
			},
		},
		{
			"duplicate height is a no-op",
			func(path *ibctesting.Path) {
				latest := path.EndpointA.GetClientLatestHeight()
				expConsensus = path.EndpointA.GetConsensusState(latest)
				header = s.newHeader(latest.RevisionHeight)
				header.Root = []byte("replacement root")
				expLatest = latest
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			path := s.setupClient()

			tc.malleate(path)

			lightClientModule := s.lightClientModule(path.EndpointA.ClientID)
			heights := lightClientModule.UpdateState(s.chainA.GetContext(), path.EndpointA.ClientID, header)

			s.Require().Equal([]exported.Height{header.Height}, heights)
			s.Require().Equal(expLatest, path.EndpointA.GetClientLatestHeight())
			s.Require().Equal(expConsensus, path.EndpointA.GetConsensusState(header.Height))
		})
	}

	s.Run("misbehaviour message panics", func() {
		s.SetupTest()
		path := s.setupClient()
		header := s.chainB.CurrentMockHeader()

		s.Require().Panics(func() {
			s.lightClientModule(path.EndpointA.ClientID).UpdateState(s.chainA.GetContext(), path.EndpointA.ClientID, mockclient.NewMisbehaviour(header, header))
		})
	})
}

func (s *MockTestSuite) TestVerifyMembership() {
	var (
		proofHeight exported.Height
		proof       []byte
		path        exported.Path
		value       []byte
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
			"proof height greater than latest height",
			func() {
				proofHeight = proofHeight.Increment()
			},
			ibcerrors.ErrInvalidHeight,
		},
		{
			"consensus state not found",
			func() {
				proofHeight = clienttypes.NewHeight(proofHeight.GetRevisionNumber(), 1)
			},
			clienttypes.ErrConsensusStateNotFound,
		},
		{
			"proof cannot be decoded",
			func() {
				proof = []byte("invalid proof")
			},
			commitmenttypes.ErrInvalidProof,
		},
		{
			"path is not a merkle path",
			func() {
				path = nil
			},
			ibcerrors.ErrInvalidType,
		},
		{
			"value does not match",
			func() {
				value = []byte("invalid value")
			},
			commitmenttypes.ErrInvalidProof,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			testPath := ibctesting.NewPath(s.chainA, s.chainB)
			testPath.SetupConnections()

			key := host.ConnectionKey(testPath.EndpointB.ConnectionID)
			value = s.chainB.GetContext().KVStore(s.chainB.App.GetKey(exported.StoreKey)).Get(key)
			s.Require().NotEmpty(value)

			proof, proofHeight = testPath.EndpointB.QueryProof(key)

			merklePath, err := commitmenttypes.ApplyPrefix(s.chainB.GetPrefix(), commitmenttypes.NewMerklePath([]byte(host.ConnectionPath(testPath.EndpointB.ConnectionID))))
			s.Require().NoError(err)
			path = merklePath

			tc.malleate()

			lightClientModule := s.lightClientModule(testPath.EndpointA.ClientID)
			err = lightClientModule.VerifyMembership(s.chainA.GetContext(), testPath.EndpointA.ClientID, proofHeight, proof, path, value)

			if tc.expErr == nil {
				s.Require().NoError(err)
			} else {
				s.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

func (s *MockTestSuite) TestVerifyNonMembership() {
	var (
		proofHeight exported.Height
		proof       []byte
		path        exported.Path
	)

	testCases := []struct {
		name     string
		malleate func(testPath *ibctesting.Path)
		expErr   error
	}{
		{
			"success",
			func(_ *ibctesting.Path) {},
			nil,
		},
		{
			"proof height greater than latest height",
			func(_ *ibctesting.Path) {
				proofHeight = proofHeight.Increment()
			},
			ibcerrors.ErrInvalidHeight,
		},
		{
			"empty proof",
			func(_ *ibctesting.Path) {
				proof = nil
			},
			commitmenttypes.ErrInvalidMerkleProof,
		},
		{
			"key exists",
			func(testPath *ibctesting.Path) {
				merklePath, err := commitmenttypes.ApplyPrefix(s.chainB.GetPrefix(), commitmenttypes.NewMerklePath([]byte(host.ConnectionPath(testPath.EndpointB.ConnectionID))))
				s.Require().NoError(err)
				path = merklePath
				proof, proofHeight = testPath.EndpointB.QueryProof(host.ConnectionKey(testPath.EndpointB.ConnectionID))
			},
			commitmenttypes.ErrInvalidProof,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			testPath := ibctesting.NewPath(s.chainA, s.chainB)
			testPath.SetupConnections()

			key := host.PacketReceiptKey(ibctesting.MockPort, ibctesting.FirstChannelID, 1)
			proof, proofHeight = testPath.EndpointB.QueryProof(key)

			merklePath, err := commitmenttypes.ApplyPrefix(s.chainB.GetPrefix(), commitmenttypes.NewMerklePath([]byte(host.PacketReceiptPath(ibctesting.MockPort, ibctesting.FirstChannelID, 1))))
			s.Require().NoError(err)
			path = merklePath

			tc.malleate(testPath)

			lightClientModule := s.lightClientModule(testPath.EndpointA.ClientID)
			err = lightClientModule.VerifyNonMembership(s.chainA.GetContext(), testPath.EndpointA.ClientID, proofHeight, proof, path)

			if tc.expErr == nil {
				s.Require().NoError(err)
			} else {
				s.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

func (s *MockTestSuite) TestStatus() {
	var clientID string

	testCases := []struct {
		name      string
		malleate  func(path *ibctesting.Path)
		expStatus exported.Status
	}{
		{
			"client is active",
			func(_ *ibctesting.Path) {},
			exported.Active,
		},
		{
			"client is frozen",
			func(path *ibctesting.Path) {
				clientState := path.EndpointA.GetClientState()
				clientState.FrozenHeight = mockclient.FrozenHeight
				path.EndpointA.SetClientState(clientState)
			},
			exported.Frozen,
		},
		{
			"client is expired",
			func(_ *ibctesting.Path) {
				s.coordinator.IncrementTimeBy(ibctesting.TrustingPeriod)
			},
			exported.Expired,
		},
		{
			"frozen takes precedence over expired",
			func(path *ibctesting.Path) {
				clientState := path.EndpointA.GetClientState()
				clientState.FrozenHeight = mockclient.FrozenHeight
				path.EndpointA.SetClientState(clientState)
				s.coordinator.IncrementTimeBy(ibctesting.TrustingPeriod)
			},
			exported.Frozen,
		},
		{
			"latest consensus state missing",
			func(path *ibctesting.Path) {
				clientState := path.EndpointA.GetClientState()
				clientState.LatestHeight = clientState.LatestHeight.Increment().(clienttypes.Height)
				path.EndpointA.SetClientState(clientState)
			},
			exported.Expired,
		},
		{
			"client not found",
			func(_ *ibctesting.Path) {
				clientID = newClientID
			},
			exported.Unknown,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			path := s.setupClient()
			clientID = path.EndpointA.ClientID

			tc.malleate(path)

			status := s.lightClientModule(clientID).Status(s.chainA.GetContext(), clientID)
			s.Require().Equal(tc.expStatus, status)
		})
	}
}

func (s *MockTestSuite) TestLatestHeight() {
	path := s.setupClient()
	lightClientModule := s.lightClientModule(path.EndpointA.ClientID)

	s.Require().Equal(path.EndpointA.GetClientLatestHeight(), lightClientModule.LatestHeight(s.chainA.GetContext(), path.EndpointA.ClientID))

	s.Require().NoError(path.EndpointA.UpdateClient())
	s.Require().Equal(s.chainB.GetSelfHeight(), lightClientModule.LatestHeight(s.chainA.GetContext(), path.EndpointA.ClientID))

	s.Require().True(lightClientModule.LatestHeight(s.chainA.GetContext(), newClientID).IsZero())
}

func (s *MockTestSuite) TestTimestampAtHeight() {
	var (
		clientID string
		height   exported.Height
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
			"consensus state not found",
			func() {
				height = height.Increment()
			},
			clienttypes.ErrConsensusStateNotFound,
		},
		{
			"client not found",
			func() {
				clientID = newClientID
			},
			clienttypes.ErrClientNotFound,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			path := s.setupClient()
			clientID = path.EndpointA.ClientID
			height = path.EndpointA.GetClientLatestHeight()

			tc.malleate()

			timestamp, err := s.lightClientModule(clientID).TimestampAtHeight(s.chainA.GetContext(), clientID, height)

			if tc.expErr == nil {
				s.Require().NoError(err)
				s.Require().Equal(path.EndpointA.GetConsensusState(height).GetTimestamp(), timestamp)
			} else {
				s.Require().ErrorIs(err, tc.expErr)
				s.Require().Zero(timestamp)
			}
		})
	}
}
