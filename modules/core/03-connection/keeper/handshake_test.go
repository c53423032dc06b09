package keeper_test

import (
	"time"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"

	clienttypes "github.com/cosmos/ibc-core/modules/core/02-client/types"
	"github.com/cosmos/ibc-core/modules/core/03-connection/types"
	host "github.com/cosmos/ibc-core/modules/core/24-host"
	"github.com/cosmos/ibc-core/modules/core/exported"
	ibctesting "github.com/cosmos/ibc-core/testing"
)

// TestConnOpenInit - chainA initializes (INIT state) a connection with
// chainB which is yet UNINITIALIZED
func (s *KeeperTestSuite) TestConnOpenInit() {
	var (
		path        *ibctesting.Path
		version     *types.Version
		delayPeriod uint64
	)

	testCases := []struct {
		msg      string
		malleate func()
		expErr   error
	}{
		{"success", func() {}, nil},
		{"success with non empty version", func() {
			version = types.GetCompatibleVersions()[0]
		}, nil},
		{"success with non zero delayPeriod", func() {
			delayPeriod = uint64(time.Hour.Nanoseconds())
		}, nil},
		{"invalid version", func() {
			version = &types.Version{}
		}, types.ErrInvalidVersion},
		{"unsupported feature", func() {
			version = types.NewVersion(types.DefaultIBCVersionIdentifier, []string{"ORDER_DAG"})
		}, types.ErrInvalidVersion},
		{"client not found", func() {
			path.EndpointA.ClientID = "00-mock-10"
		}, clienttypes.ErrClientNotFound},
		{"unauthorized client", func() {
			disallowClients(s.chainA)
		}, clienttypes.ErrClientNotActive},
		{"frozen client", func() {
			freezeClient(path.EndpointA)
		}, clienttypes.ErrClientNotActive},
	}

	for _, tc := range testCases {
		s.Run(tc.msg, func() {
			s.SetupTest() // reset
			version = nil
			delayPeriod = 0
			path = ibctesting.NewPath(s.chainA, s.chainB)
			path.SetupClients()

			tc.malleate()

			connectionKeeper := s.chainA.App.GetIBCKeeper().ConnectionKeeper
			versions, err := connectionKeeper.ConnOpenInit(s.chainA.GetContext(), path.EndpointA.ClientID, version)

			if tc.expErr == nil {
				s.Require().NoError(err)
				if version != nil {
					s.Require().Equal([]*types.Version{version}, versions)
				} else {
					s.Require().Equal(types.GetCompatibleVersions(), versions)
				}

				// validation does not allocate an identifier
				s.Require().Equal(uint64(0), connectionKeeper.GetNextConnectionSequence(s.chainA.GetContext()))

				counterparty := types.NewCounterparty(path.EndpointB.ClientID, "", s.chainB.GetPrefix())
				connectionID := connectionKeeper.WriteOpenInitConnection(s.chainA.GetContext(), path.EndpointA.ClientID, counterparty, versions, delayPeriod)
				s.Require().Equal(ibctesting.FirstConnectionID, connectionID)

				connection, found := connectionKeeper.GetConnection(s.chainA.GetContext(), connectionID)
				s.Require().True(found)
				s.Require().Equal(types.NewConnectionEnd(types.INIT, path.EndpointA.ClientID, counterparty, versions, delayPeriod), connection)

				paths, found := connectionKeeper.GetClientConnectionPaths(s.chainA.GetContext(), path.EndpointA.ClientID)
				s.Require().True(found)
				s.Require().Equal([]string{connectionID}, paths)
			} else {
				s.Require().ErrorIs(err, tc.expErr)
				s.Require().Nil(versions)
			}
		})
	}
}

// TestConnOpenTry - chainB calls ConnOpenTry to verify the state of
// connection on chainA is INIT
func (s *KeeperTestSuite) TestConnOpenTry() {
	var (
		path                 *ibctesting.Path
		delayPeriod          uint64
		counterpartyClient   *codectypes.Any
		counterpartyVersions []*types.Version
		initProof            []byte
		clientProof          []byte
		consensusProof       []byte
		proofHeight          exported.Height
		consensusHeight      exported.Height
	)

	testCases := []struct {
		msg      string
		malleate func()
		expErr   error
	}{
		{"success", func() {}, nil},
		{"consensus height >= latest height", func() {
			consensusHeight = clienttypes.GetSelfHeight(s.chainB.GetContext())
		}, types.ErrInvalidConsensusHeight},
		{"self client validation failed: wrong chain id", func() {
			clientState := path.EndpointA.GetClientState()
			clientState.ChainId = "wrongchain-2"
			counterpartyClient = clienttypes.MustPackAny(clientState)
		}, clienttypes.ErrInvalidClient},
		{"self client validation failed: frozen client", func() {
			clientState := path.EndpointA.GetClientState()
			clientState.FrozenHeight = clienttypes.NewHeight(0, 1)
			counterpartyClient = clienttypes.MustPackAny(clientState)
		}, clienttypes.ErrClientFrozen},
		{"self client validation failed: not a mock client", func() {
			counterpartyClient = &codectypes.Any{TypeUrl: "/ibc.lightclients.solomachine.v3.ClientState"}
		}, clienttypes.ErrInvalidClient},
		{"self consensus state not found", func() {
			// revision does not match the chain id of chainB
			consensusHeight = clienttypes.NewHeight(0, 1)
		}, clienttypes.ErrInvalidHeight},
		{"version negotiation failed", func() {
			counterpartyVersions = []*types.Version{types.NewVersion("0.0", nil)}
		}, types.ErrVersionNegotiationFailed},
		{"connection state verification failed: delay period differs", func() {
			delayPeriod = 1
		}, clienttypes.ErrFailedConnectionStateVerification},
		{"connection state verification failed: proof height not tracked", func() {
			proofHeight = malleateHeight(proofHeight, 1)
		}, clienttypes.ErrFailedConnectionStateVerification},
		{"connection state verification failed: invalid proof", func() {
			initProof = clientProof
		}, clienttypes.ErrFailedConnectionStateVerification},
		{"client state verification failed", func() {
			clientState := path.EndpointA.GetClientState()
			clientState.TrustingPeriod *= 2
			counterpartyClient = clienttypes.MustPackAny(clientState)
		}, clienttypes.ErrFailedClientStateVerification},
		{"consensus state verification failed", func() {
			consensusProof = clientProof
		}, clienttypes.ErrFailedClientConsensusStateVerification},
		{"client of chainB frozen", func() {
			freezeClient(path.EndpointB)
		}, clienttypes.ErrClientNotActive},
		{"client of chainB unauthorized", func() {
			disallowClients(s.chainB)
		}, clienttypes.ErrClientNotActive},
	}

	for _, tc := range testCases {
		s.Run(tc.msg, func() {
			s.SetupTest() // reset
			delayPeriod = 0

			path = ibctesting.NewPath(s.chainA, s.chainB)
			path.SetupClients()

			err := path.EndpointA.ConnOpenInit()
			s.Require().NoError(err)

			err = path.EndpointB.UpdateClient()
			s.Require().NoError(err)

			counterpartyVersions = path.EndpointA.GetConnection().Versions
			counterpartyClient, clientProof, consensusProof, consensusHeight, initProof, proofHeight = path.EndpointB.QueryConnectionHandshakeProof()

			tc.malleate()

			counterparty := types.NewCounterparty(path.EndpointA.ClientID, path.EndpointA.ConnectionID, s.chainA.GetPrefix())

			connectionKeeper := s.chainB.App.GetIBCKeeper().ConnectionKeeper
			version, err := connectionKeeper.ConnOpenTry(
				s.chainB.GetContext(), counterparty, delayPeriod, path.EndpointB.ClientID, counterpartyClient,
				counterpartyVersions, initProof, clientProof, consensusProof,
				proofHeight, consensusHeight,
			)

			if tc.expErr == nil {
				s.Require().NoError(err)
				s.Require().Equal(ibctesting.ConnectionVersion, version)
				s.Require().Equal(uint64(0), connectionKeeper.GetNextConnectionSequence(s.chainB.GetContext()))

				connectionID := connectionKeeper.WriteOpenTryConnection(s.chainB.GetContext(), path.EndpointB.ClientID, counterparty, version, delayPeriod)
				s.Require().Equal(ibctesting.FirstConnectionID, connectionID)

				connection, found := connectionKeeper.GetConnection(s.chainB.GetContext(), connectionID)
				s.Require().True(found)
				s.Require().Equal(types.TRYOPEN, connection.State)
				s.Require().Equal(counterparty, connection.Counterparty)
				s.Require().Equal([]*types.Version{version}, connection.Versions)
			} else {
				s.Require().ErrorIs(err, tc.expErr)
				s.Require().Nil(version)
			}
		})
	}
}

// TestConnOpenAck - Chain A (ID #1) calls TestConnOpenAck to acknowledge (ACK state)
// the initialization (TRYINIT) of the connection on  Chain B (ID #2).
func (s *KeeperTestSuite) TestConnOpenAck() {
	var (
		path               *ibctesting.Path
		connectionID       string
		version            *types.Version
		counterpartyClient *codectypes.Any
		tryProof           []byte
		clientProof        []byte
		consensusProof     []byte
		proofHeight        exported.Height
		consensusHeight    exported.Height
	)

	testCases := []struct {
		msg      string
		malleate func()
		expErr   error
	}{
		{"success", func() {}, nil},
		{"consensus height >= latest height", func() {
			consensusHeight = clienttypes.GetSelfHeight(s.chainA.GetContext())
		}, types.ErrInvalidConsensusHeight},
		{"connection not found", func() {
			connectionID = ibctesting.InvalidID
		}, types.ErrConnectionNotFound},
		{"connection state is not INIT", func() {
			connection := path.EndpointA.GetConnection()
			connection.State = types.TRYOPEN
			path.EndpointA.SetConnection(connection)
		}, types.ErrInvalidConnectionState},
		{"selected version not supported by INIT versions", func() {
			version = types.NewVersion("2.0", []string{"ORDER_ORDERED"})
		}, types.ErrInvalidConnectionState},
		{"self client validation failed", func() {
			clientState := path.EndpointB.GetClientState()
			clientState.ChainId = "wrongchain-2"
			counterpartyClient = clienttypes.MustPackAny(clientState)
		}, clienttypes.ErrInvalidClient},
		{"self consensus state not found", func() {
			consensusHeight = clienttypes.NewHeight(0, 1)
		}, clienttypes.ErrInvalidHeight},
		{"connection state verification failed: version differs from TRYOPEN", func() {
			version = types.NewVersion(types.DefaultIBCVersionIdentifier, []string{"ORDER_ORDERED"})
		}, clienttypes.ErrFailedConnectionStateVerification},
		{"connection state verification failed: proof height not tracked", func() {
			proofHeight = malleateHeight(proofHeight, 1)
		}, clienttypes.ErrFailedConnectionStateVerification},
		{"client state verification failed", func() {
			clientState := path.EndpointB.GetClientState()
			clientState.TrustingPeriod *= 2
			counterpartyClient = clienttypes.MustPackAny(clientState)
		}, clienttypes.ErrFailedClientStateVerification},
		{"consensus state verification failed", func() {
			consensusProof = clientProof
		}, clienttypes.ErrFailedClientConsensusStateVerification},
		{"client of chainA frozen", func() {
			freezeClient(path.EndpointA)
		}, clienttypes.ErrClientNotActive},
	}

	for _, tc := range testCases {
		s.Run(tc.msg, func() {
			s.SetupTest() // reset

			path = ibctesting.NewPath(s.chainA, s.chainB)
			path.SetupClients()

			err := path.EndpointA.ConnOpenInit()
			s.Require().NoError(err)

			err = path.EndpointB.ConnOpenTry()
			s.Require().NoError(err)

			err = path.EndpointA.UpdateClient()
			s.Require().NoError(err)

			connectionID = path.EndpointA.ConnectionID
			version = path.EndpointB.GetConnection().Versions[0]
			counterpartyClient, clientProof, consensusProof, consensusHeight, tryProof, proofHeight = path.EndpointA.QueryConnectionHandshakeProof()

			tc.malleate()

			connectionKeeper := s.chainA.App.GetIBCKeeper().ConnectionKeeper
			err = connectionKeeper.ConnOpenAck(
				s.chainA.GetContext(), connectionID, counterpartyClient, version, path.EndpointB.ConnectionID,
				tryProof, clientProof, consensusProof, proofHeight, consensusHeight,
			)

			if tc.expErr == nil {
				s.Require().NoError(err)

				// validation does not modify the connection
				s.Require().Equal(types.INIT, path.EndpointA.GetConnection().State)

				connectionKeeper.WriteOpenAckConnection(s.chainA.GetContext(), connectionID, version, path.EndpointB.ConnectionID)

				connection := path.EndpointA.GetConnection()
				s.Require().Equal(types.OPEN, connection.State)
				s.Require().Equal(path.EndpointB.ConnectionID, connection.Counterparty.ConnectionId)
				s.Require().Equal([]*types.Version{version}, connection.Versions)
			} else {
				s.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestConnOpenConfirm - chainB calls ConnOpenConfirm to confirm that
// chainA state is now OPEN.
func (s *KeeperTestSuite) TestConnOpenConfirm() {
	var (
		path         *ibctesting.Path
		connectionID string
		ackProof     []byte
		proofHeight  exported.Height
	)

	testCases := []struct {
		msg      string
		malleate func()
		expErr   error
	}{
		{"success", func() {}, nil},
		{"connection not found", func() {
			connectionID = ibctesting.InvalidID
		}, types.ErrConnectionNotFound},
		{"connection state is not TRYOPEN", func() {
			connection := path.EndpointB.GetConnection()
			connection.State = types.INIT
			path.EndpointB.SetConnection(connection)
		}, types.ErrInvalidConnectionState},
		{"counterparty connection is not OPEN", func() {
			connection := path.EndpointA.GetConnection()
			connection.State = types.INIT
			path.EndpointA.SetConnection(connection)

			err := path.EndpointB.UpdateClient()
			s.Require().NoError(err)

			ackProof, proofHeight = path.EndpointA.QueryProof(host.ConnectionKey(path.EndpointA.ConnectionID))
		}, clienttypes.ErrFailedConnectionStateVerification},
		{"proof height not tracked", func() {
			proofHeight = malleateHeight(proofHeight, 1)
		}, clienttypes.ErrFailedConnectionStateVerification},
		{"client frozen", func() {
			freezeClient(path.EndpointB)
		}, clienttypes.ErrClientNotActive},
	}

	for _, tc := range testCases {
		s.Run(tc.msg, func() {
			s.SetupTest() // reset

			path = ibctesting.NewPath(s.chainA, s.chainB)
			path.SetupClients()

			err := path.EndpointA.ConnOpenInit()
			s.Require().NoError(err)

			err = path.EndpointB.ConnOpenTry()
			s.Require().NoError(err)

			err = path.EndpointA.ConnOpenAck()
			s.Require().NoError(err)

			err = path.EndpointB.UpdateClient()
			s.Require().NoError(err)

			connectionID = path.EndpointB.ConnectionID
			ackProof, proofHeight = path.EndpointA.QueryProof(host.ConnectionKey(path.EndpointA.ConnectionID))

			tc.malleate()

			connectionKeeper := s.chainB.App.GetIBCKeeper().ConnectionKeeper
			err = connectionKeeper.ConnOpenConfirm(s.chainB.GetContext(), connectionID, ackProof, proofHeight)

			if tc.expErr == nil {
				s.Require().NoError(err)
				s.Require().Equal(types.TRYOPEN, path.EndpointB.GetConnection().State)

				connectionKeeper.WriteOpenConfirmConnection(s.chainB.GetContext(), connectionID)
				s.Require().Equal(types.OPEN, path.EndpointB.GetConnection().State)
			} else {
				s.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

func (s *KeeperTestSuite) TestWriteOpenAckConnectionPanics() {
	s.Require().Panics(func() {
		s.chainA.App.GetIBCKeeper().ConnectionKeeper.WriteOpenAckConnection(s.chainA.GetContext(), ibctesting.FirstConnectionID, ibctesting.ConnectionVersion, ibctesting.FirstConnectionID)
	})
	s.Require().Panics(func() {
		s.chainA.App.GetIBCKeeper().ConnectionKeeper.WriteOpenConfirmConnection(s.chainA.GetContext(), ibctesting.FirstConnectionID)
	})
}

// TestConnectionHandshake opens a connection through the message handlers and
// checks both ends agree on the negotiated parameters.
func (s *KeeperTestSuite) TestConnectionHandshake() {
	path := ibctesting.NewPath(s.chainA, s.chainB)
	path.EndpointA.ConnectionConfig.DelayPeriod = uint64(time.Minute.Nanoseconds())
	path.EndpointB.ConnectionConfig.DelayPeriod = uint64(time.Minute.Nanoseconds())
	path.SetupConnections()

	connectionA := path.EndpointA.GetConnection()
	connectionB := path.EndpointB.GetConnection()

	s.Require().Equal(types.OPEN, connectionA.State)
	s.Require().Equal(types.OPEN, connectionB.State)
	s.Require().Equal(path.EndpointB.ConnectionID, connectionA.Counterparty.ConnectionId)
	s.Require().Equal(path.EndpointA.ConnectionID, connectionB.Counterparty.ConnectionId)
	s.Require().Equal(path.EndpointB.ClientID, connectionA.Counterparty.ClientId)
	s.Require().Equal(path.EndpointA.ClientID, connectionB.Counterparty.ClientId)
	s.Require().Equal(connectionA.Versions, connectionB.Versions)
	s.Require().Equal(uint64(time.Minute.Nanoseconds()), connectionA.DelayPeriod)
	s.Require().Equal(connectionA.DelayPeriod, connectionB.DelayPeriod)

	// a second confirm fails since the connection is already OPEN
	err := path.EndpointB.ConnOpenConfirm()
	s.Require().ErrorIs(err, types.ErrInvalidConnectionState)
}
