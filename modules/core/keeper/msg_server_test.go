package keeper_test

import (
	"errors"
	"strings"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/cosmos/ibc-core/modules/core/02-client/types"
	connectiontypes "github.com/cosmos/ibc-core/modules/core/03-connection/types"
	channeltypes "github.com/cosmos/ibc-core/modules/core/04-channel/types"
	commitmenttypes "github.com/cosmos/ibc-core/modules/core/23-commitment/types"
	host "github.com/cosmos/ibc-core/modules/core/24-host"
	ibcerrors "github.com/cosmos/ibc-core/modules/core/errors"
	"github.com/cosmos/ibc-core/modules/core/exported"
	"github.com/cosmos/ibc-core/modules/core/types"
	mockclient "github.com/cosmos/ibc-core/modules/light-clients/00-mock"
	ibctesting "github.com/cosmos/ibc-core/testing"
	ibcmock "github.com/cosmos/ibc-core/testing/mock"
)

var (
	timeoutHeight = clienttypes.NewHeight(1, 10000)

	errCallback = errors.New("callback failed")
)

// hasTestKey reports whether the mock application wrote to its store while
// processing a received packet.
func hasTestKey(chain *ibctesting.TestChain) bool {
	return chain.GetContext().KVStore(chain.App.GetKey(ibcmock.StoreKey)).Has(ibcmock.TestKey)
}

// tests the IBC handler receiving a packet on ordered and unordered channels.
// It verifies that the storing of an acknowledgement on success occurs. It
// tests high level properties like ordering and basic sanity checks. More
// rigorous testing of 'RecvPacket' can be found in the
// 04-channel/keeper/packet_test.go.
func (s *KeeperTestSuite) TestHandleRecvPacket() {
	var (
		packet    channeltypes.Packet
		path      *ibctesting.Path
		async     bool // indicate no ack written
		expRevert bool // indicate the application state is discarded
	)

	sendPacket := func(data []byte) {
		sequence, err := path.EndpointA.SendPacket(timeoutHeight, 0, data)
		s.Require().NoError(err)

		packet = channeltypes.NewPacket(data, sequence, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, timeoutHeight, 0)
	}

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{"success: ORDERED", func() {
			path.SetChannelOrdered()
			path.Setup()

			sendPacket(ibcmock.MockPacketData)
		}, nil},
		{"success: UNORDERED", func() {
			path.Setup()

			sendPacket(ibcmock.MockPacketData)
		}, nil},
		{"success: UNORDERED out of order packet", func() {
			// setup uses an UNORDERED channel
			path.Setup()

			// attempts to receive packet with sequence 10 without receiving packet with sequence 1
			for i := 0; i < 10; i++ {
				sendPacket(ibcmock.MockPacketData)
			}
		}, nil},
		{"success: OnRecvPacket callback returns error acknowledgement", func() {
			path.Setup()
			expRevert = true

			sendPacket(ibcmock.MockFailPacketData)
		}, nil},
		{"success: ORDERED - async acknowledgement", func() {
			path.SetChannelOrdered()
			path.Setup()
			async = true

			sendPacket(ibcmock.MockAsyncPacketData)
		}, nil},
		{"success: UNORDERED - async acknowledgement", func() {
			path.Setup()
			async = true

			sendPacket(ibcmock.MockAsyncPacketData)
		}, nil},
		{"failure: ORDERED out of order packet", func() {
			path.SetChannelOrdered()
			path.Setup()

			// attempts to receive packet with sequence 10 without receiving packet with sequence 1
			for i := 0; i < 10; i++ {
				sendPacket(ibcmock.MockPacketData)
			}
		}, channeltypes.ErrPacketSequenceOutOfOrder},
		{"channel does not exist", func() {
			// any non-nil value of packet is valid
			s.Require().NotNil(packet)
		}, channeltypes.ErrChannelNotFound},
		{"packet not sent", func() {
			path.Setup()
			packet = channeltypes.NewPacket(ibcmock.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, timeoutHeight, 0)
		}, clienttypes.ErrFailedPacketCommitmentVerification},
		{"ORDERED: packet already received (replay)", func() {
			path.SetChannelOrdered()
			path.Setup()

			sendPacket(ibcmock.MockPacketData)

			err := path.EndpointB.RecvPacket(packet)
			s.Require().NoError(err)
		}, channeltypes.ErrPacketSequenceOutOfOrder},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest() // reset
			async = false
			expRevert = false
			packet = channeltypes.NewPacket(ibcmock.MockPacketData, 1, ibctesting.MockPort, "channel-0", ibctesting.MockPort, "channel-0", timeoutHeight, 0)

			path = ibctesting.NewPath(s.chainA, s.chainB)

			tc.malleate()

			// state written by a recv that succeeded during setup must survive a rejected replay
			hadTestKey := hasTestKey(s.chainB)

			var (
				proof       []byte
				proofHeight clienttypes.Height
			)
			// get proof of packet commitment from chainA
			packetKey := host.PacketCommitmentKey(packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence())
			if path.EndpointA.ChannelID != "" {
				proof, proofHeight = path.EndpointA.QueryProof(packetKey)
			} else {
				proof, proofHeight = []byte("proof"), clienttypes.NewHeight(0, 1)
			}

			msg := channeltypes.NewMsgRecvPacket(packet, proof, proofHeight, s.chainB.Signer())

			_, err := s.chainB.SendMsgs(msg)

			if tc.expErr == nil {
				s.Require().NoError(err)

				// replay should not fail since it will be treated as a no-op
				if path.EndpointB.ChannelConfig.Order == channeltypes.UNORDERED {
					res, err := s.chainB.App.GetIBCKeeper().ExecuteMsg(s.chainB.GetContext(), msg)
					s.Require().NoError(err)
					s.Require().Equal(channeltypes.NOOP, res.(*channeltypes.MsgRecvPacketResponse).Result)
				}

				// check that the mock application state was kept only for successful acknowledgements
				s.Require().Equal(!expRevert, hasTestKey(s.chainB))

				// verify ack was written
				ack, found := s.chainB.App.GetIBCKeeper().ChannelKeeper.GetPacketAcknowledgement(s.chainB.GetContext(), packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
				if async {
					s.Require().Nil(ack)
					s.Require().False(found)
				} else {
					s.Require().NotNil(ack)
					s.Require().True(found)
				}
			} else {
				s.Require().ErrorIs(err, tc.expErr)
				s.Require().Equal(hadTestKey, hasTestKey(s.chainB))
			}
		})
	}
}

// TestRecvPacketErrorAcknowledgementEvents checks that the events emitted by
// an application returning an error acknowledgement are converted into error
// events.
func (s *KeeperTestSuite) TestRecvPacketErrorAcknowledgementEvents() {
	path := ibctesting.NewPath(s.chainA, s.chainB)
	path.Setup()

	sequence, err := path.EndpointA.SendPacket(timeoutHeight, 0, ibcmock.MockFailPacketData)
	s.Require().NoError(err)

	packet := channeltypes.NewPacket(ibcmock.MockFailPacketData, sequence, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, timeoutHeight, 0)

	events, err := path.EndpointB.RecvPacketWithResult(packet)
	s.Require().NoError(err)

	expectedEvents := types.ConvertToErrorEvents(sdk.Events{ibcmock.NewMockRecvPacketEvent()}).ToABCIEvents()
	ibctesting.AssertEvents(&s.Suite, expectedEvents, events)

	for _, event := range events {
		if event.Type != ibcmock.MockEventTypeRecvPacket {
			continue
		}
		for _, attr := range event.Attributes {
			s.Require().True(strings.HasSuffix(attr.Key, types.ErrorAttributeKeySuffix))
		}
	}
}

// tests the IBC handler acknowledgement of a packet on ordered and unordered
// channels. It verifies that the deletion of packet commitments from state
// occurs. It test high level properties like ordering and basic sanity
// checks. More rigorous testing of 'AcknowledgePacket'
// can be found in the 04-channel/keeper/packet_test.go.
func (s *KeeperTestSuite) TestHandleAcknowledgePacket() {
	var (
		packet channeltypes.Packet
		path   *ibctesting.Path
		noop   bool
	)

	relayPacket := func() {
		sequence, err := path.EndpointA.SendPacket(timeoutHeight, 0, ibcmock.MockPacketData)
		s.Require().NoError(err)

		packet = channeltypes.NewPacket(ibcmock.MockPacketData, sequence, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, timeoutHeight, 0)
		err = path.EndpointB.RecvPacket(packet)
		s.Require().NoError(err)
	}

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{"success: ORDERED", func() {
			path.SetChannelOrdered()
			path.Setup()

			relayPacket()
		}, nil},
		{"success: UNORDERED", func() {
			path.Setup()

			relayPacket()
		}, nil},
		{"success: UNORDERED acknowledge out of order packet", func() {
			// setup uses an UNORDERED channel
			path.Setup()

			// attempts to acknowledge ack with sequence 10 without acknowledging ack with sequence 1 (removing packet commitment)
			for i := 0; i < 10; i++ {
				relayPacket()
			}
		}, nil},
		{"success: no-op on packet already acknowledged (replay)", func() {
			path.Setup()

			relayPacket()

			err := path.EndpointA.AcknowledgePacket(packet, ibcmock.MockAcknowledgement.Acknowledgement())
			s.Require().NoError(err)

			noop = true
		}, nil},
		{"failure: ORDERED acknowledge out of order packet", func() {
			path.SetChannelOrdered()
			path.Setup()

			// attempts to acknowledge ack with sequence 10 without acknowledging ack with sequence 1 (removing packet commitment
			for i := 0; i < 10; i++ {
				relayPacket()
			}
		}, channeltypes.ErrPacketSequenceOutOfOrder},
		{"channel does not exist", func() {
			// any non-nil value of packet is valid
			s.Require().NotNil(packet)
		}, channeltypes.ErrChannelNotFound},
		{"packet not received", func() {
			path.Setup()

			sequence, err := path.EndpointA.SendPacket(timeoutHeight, 0, ibcmock.MockPacketData)
			s.Require().NoError(err)

			packet = channeltypes.NewPacket(ibcmock.MockPacketData, sequence, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, timeoutHeight, 0)
		}, clienttypes.ErrFailedPacketAckVerification},
		{"application validation callback fails", func() {
			path.Setup()

			relayPacket()

			s.chainA.App.MockModule.IBCApp.OnAcknowledgementPacketValidate = func(sdk.Context, string, channeltypes.Packet, []byte, sdk.AccAddress) error {
				return errCallback
			}
		}, errCallback},
		{"application execution callback fails", func() {
			path.Setup()

			relayPacket()

			s.chainA.App.MockModule.IBCApp.OnAcknowledgementPacketExecute = func(sdk.Context, string, channeltypes.Packet, []byte, sdk.AccAddress) error {
				return errCallback
			}
		}, errCallback},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest() // reset
			noop = false
			packet = channeltypes.NewPacket(ibcmock.MockPacketData, 1, ibctesting.MockPort, "channel-0", ibctesting.MockPort, "channel-0", timeoutHeight, 0)

			path = ibctesting.NewPath(s.chainA, s.chainB)

			tc.malleate()

			var (
				proof       []byte
				proofHeight clienttypes.Height
			)
			packetKey := host.PacketAcknowledgementKey(packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
			if path.EndpointB.ChannelID != "" {
				proof, proofHeight = path.EndpointB.QueryProof(packetKey)
			} else {
				proof, proofHeight = []byte("proof"), clienttypes.NewHeight(0, 1)
			}

			msg := channeltypes.NewMsgAcknowledgement(packet, ibcmock.MockAcknowledgement.Acknowledgement(), proof, proofHeight, s.chainA.Signer())

			res, err := s.chainA.App.GetIBCKeeper().ExecuteMsg(s.chainA.GetContext(), msg)

			if tc.expErr == nil {
				s.Require().NoError(err)

				expResult := channeltypes.SUCCESS
				if noop {
					expResult = channeltypes.NOOP
				}
				s.Require().Equal(expResult, res.(*channeltypes.MsgAcknowledgementResponse).Result)

				// verify packet commitment was deleted on source chain
				has := s.chainA.App.GetIBCKeeper().ChannelKeeper.HasPacketCommitment(s.chainA.GetContext(), packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence())
				s.Require().False(has)
			} else {
				s.Require().ErrorIs(err, tc.expErr)

				if path.EndpointA.ChannelID != "" && tc.expErr == errCallback {
					// the failed execution left the commitment in place
					has := s.chainA.App.GetIBCKeeper().ChannelKeeper.HasPacketCommitment(s.chainA.GetContext(), packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence())
					s.Require().True(has)
				}
			}
		})
	}
}

// tests the IBC handler timing out a packet on ordered and unordered channels.
// It verifies that the deletion of a packet commitment occurs. It tests
// high level properties like ordering and basic sanity checks. More
// rigorous testing of 'TimeoutPacket' and 'TimeoutExecuted' can be found in
// the 04-channel/keeper/timeout_test.go.
func (s *KeeperTestSuite) TestHandleTimeoutPacket() {
	var (
		packet    channeltypes.Packet
		packetKey []byte
		path      *ibctesting.Path
		noop      bool
	)

	sendTimedOut := func() {
		timeoutHeight := clienttypes.GetSelfHeight(s.chainB.GetContext())

		sequence, err := path.EndpointA.SendPacket(timeoutHeight, 0, ibcmock.MockPacketData)
		s.Require().NoError(err)

		packet = channeltypes.NewPacket(ibcmock.MockPacketData, sequence, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, timeoutHeight, 0)

		// need to update chainA client to prove missing ack
		err = path.EndpointA.UpdateClient()
		s.Require().NoError(err)
	}

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{"success: ORDERED", func() {
			path.SetChannelOrdered()
			path.Setup()

			sendTimedOut()
			packetKey = host.NextSequenceRecvKey(packet.GetDestPort(), packet.GetDestChannel())
		}, nil},
		{"success: UNORDERED", func() {
			path.Setup()

			sendTimedOut()
			packetKey = host.PacketReceiptKey(packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
		}, nil},
		{"success: UNORDERED timeout out of order packet", func() {
			// setup uses an UNORDERED channel
			path.Setup()

			// attempts to timeout the last packet sent without timing out the first packet
			// packet sequences begin at 1
			for i := 0; i < 10; i++ {
				sendTimedOut()
			}

			packetKey = host.PacketReceiptKey(packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
		}, nil},
		{"success: no-op on packet already timed out (replay)", func() {
			path.Setup()

			sendTimedOut()
			packetKey = host.PacketReceiptKey(packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())

			err := path.EndpointA.TimeoutPacket(packet)
			s.Require().NoError(err)

			noop = true
		}, nil},
		{"channel does not exist", func() {
			// any value of packet is valid
			packetKey = host.NextSequenceRecvKey(packet.GetDestPort(), packet.GetDestChannel())
		}, channeltypes.ErrChannelNotFound},
		{"timeout not reached", func() {
			path.Setup()

			sequence, err := path.EndpointA.SendPacket(timeoutHeight, 0, ibcmock.MockPacketData)
			s.Require().NoError(err)

			packet = channeltypes.NewPacket(ibcmock.MockPacketData, sequence, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, timeoutHeight, 0)
			packetKey = host.PacketReceiptKey(packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())

			err = path.EndpointA.UpdateClient()
			s.Require().NoError(err)
		}, channeltypes.ErrTimeoutNotReached},
		{"application validation callback fails", func() {
			path.Setup()

			sendTimedOut()
			packetKey = host.PacketReceiptKey(packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())

			s.chainA.App.MockModule.IBCApp.OnTimeoutPacketValidate = func(sdk.Context, string, channeltypes.Packet, sdk.AccAddress) error {
				return errCallback
			}
		}, errCallback},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest() // reset
			noop = false
			packet = channeltypes.NewPacket(ibcmock.MockPacketData, 1, ibctesting.MockPort, "channel-0", ibctesting.MockPort, "channel-0", timeoutHeight, 0)

			path = ibctesting.NewPath(s.chainA, s.chainB)

			tc.malleate()

			var (
				proof       []byte
				proofHeight clienttypes.Height
			)
			if path.EndpointB.ChannelID != "" {
				proof, proofHeight = path.EndpointB.QueryProof(packetKey)
			} else {
				proof, proofHeight = []byte("proof"), clienttypes.NewHeight(0, 1)
			}

			msg := channeltypes.NewMsgTimeout(packet, 1, proof, proofHeight, s.chainA.Signer())

			res, err := s.chainA.App.GetIBCKeeper().ExecuteMsg(s.chainA.GetContext(), msg)

			if tc.expErr == nil {
				s.Require().NoError(err)

				expResult := channeltypes.SUCCESS
				if noop {
					expResult = channeltypes.NOOP
				}
				s.Require().Equal(expResult, res.(*channeltypes.MsgTimeoutResponse).Result)

				// replay should not return an error as it is treated as a no-op, the
				// ORDERED channel is closed by the timeout
				if path.EndpointA.ChannelConfig.Order == channeltypes.UNORDERED {
					res, err = s.chainA.App.GetIBCKeeper().ExecuteMsg(s.chainA.GetContext(), msg)
					s.Require().NoError(err)
					s.Require().Equal(channeltypes.NOOP, res.(*channeltypes.MsgTimeoutResponse).Result)
				}

				// verify packet commitment was deleted on source chain
				has := s.chainA.App.GetIBCKeeper().ChannelKeeper.HasPacketCommitment(s.chainA.GetContext(), packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence())
				s.Require().False(has)
			} else {
				s.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// tests the IBC handler timing out a packet via channel closure on ordered
// and unordered channels. It verifies that the deletion of a packet
// commitment occurs. It tests high level properties like ordering and basic
// sanity checks. More rigorous testing of 'TimeoutOnClose' and
// 'TimeoutExecuted' can be found in the 04-channel/keeper/timeout_test.go.
func (s *KeeperTestSuite) TestHandleTimeoutOnClosePacket() {
	var (
		packet     channeltypes.Packet
		packetKey  []byte
		path       *ibctesting.Path
		timeoutCbs int
	)

	sendAndClose := func() {
		sequence, err := path.EndpointA.SendPacket(timeoutHeight, 0, ibcmock.MockPacketData)
		s.Require().NoError(err)

		packet = channeltypes.NewPacket(ibcmock.MockPacketData, sequence, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, timeoutHeight, 0)

		// close counterparty channel
		err = path.EndpointB.SetChannelState(channeltypes.CLOSED)
		s.Require().NoError(err)
	}

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{"success: ORDERED", func() {
			path.SetChannelOrdered()
			path.Setup()

			sendAndClose()
			packetKey = host.NextSequenceRecvKey(packet.GetDestPort(), packet.GetDestChannel())
		}, nil},
		{"success: UNORDERED", func() {
			path.Setup()

			sendAndClose()
			packetKey = host.PacketReceiptKey(packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
		}, nil},
		{"channel does not exist", func() {
			// any value of packet is valid
			packetKey = host.NextSequenceRecvKey(packet.GetDestPort(), packet.GetDestChannel())
		}, channeltypes.ErrChannelNotFound},
		{"counterparty channel not closed", func() {
			path.Setup()

			sequence, err := path.EndpointA.SendPacket(timeoutHeight, 0, ibcmock.MockPacketData)
			s.Require().NoError(err)

			packet = channeltypes.NewPacket(ibcmock.MockPacketData, sequence, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, timeoutHeight, 0)
			packetKey = host.PacketReceiptKey(packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())

			err = path.EndpointA.UpdateClient()
			s.Require().NoError(err)
		}, clienttypes.ErrFailedChannelStateVerification},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest() // reset
			timeoutCbs = 0
			packet = channeltypes.NewPacket(ibcmock.MockPacketData, 1, ibctesting.MockPort, "channel-0", ibctesting.MockPort, "channel-0", timeoutHeight, 0)

			path = ibctesting.NewPath(s.chainA, s.chainB)

			s.chainA.App.MockModule.IBCApp.OnTimeoutPacketExecute = func(sdk.Context, string, channeltypes.Packet, sdk.AccAddress) error {
				timeoutCbs++
				return nil
			}

			tc.malleate()

			var (
				proof       []byte
				closedProof []byte
				proofHeight clienttypes.Height
			)
			if path.EndpointB.ChannelID != "" {
				proof, proofHeight = path.EndpointB.QueryProof(packetKey)

				channelKey := host.ChannelKey(packet.GetDestPort(), packet.GetDestChannel())
				closedProof, _ = path.EndpointB.QueryProofAtHeight(channelKey, proofHeight.GetRevisionHeight())
			} else {
				proof, closedProof, proofHeight = []byte("proof"), []byte("proof"), clienttypes.NewHeight(0, 1)
			}

			msg := channeltypes.NewMsgTimeoutOnClose(packet, 1, proof, closedProof, proofHeight, s.chainA.Signer())

			_, err := s.chainA.SendMsgs(msg)

			if tc.expErr == nil {
				s.Require().NoError(err)
				s.Require().Equal(1, timeoutCbs)

				// replay should not return an error as it will be treated as a no-op
				res, err := s.chainA.App.GetIBCKeeper().ExecuteMsg(s.chainA.GetContext(), msg)
				s.Require().NoError(err)
				s.Require().Equal(channeltypes.NOOP, res.(*channeltypes.MsgTimeoutOnCloseResponse).Result)
				s.Require().Equal(1, timeoutCbs)

				// verify packet commitment was deleted on source chain
				has := s.chainA.App.GetIBCKeeper().ChannelKeeper.HasPacketCommitment(s.chainA.GetContext(), packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence())
				s.Require().False(has)
			} else {
				s.Require().ErrorIs(err, tc.expErr)
				s.Require().Zero(timeoutCbs)
			}
		})
	}
}

func (s *KeeperTestSuite) TestCreateClient() {
	var msg *clienttypes.MsgCreateClient

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{"success", func() {}, nil},
		{"client type not allowed", func() {
			params := s.chainA.App.GetIBCKeeper().ClientKeeper.GetParams(s.chainA.GetContext())
			params.AllowedClients = []string{}
			s.chainA.App.GetIBCKeeper().ClientKeeper.SetParams(s.chainA.GetContext(), params)
		}, clienttypes.ErrInvalidClientType},
		{"no light client module for client state", func() {
			msg.ClientState = &codectypes.Any{TypeUrl: "/ibc.lightclients.unknown.v1.ClientState", Value: []byte("value")}
		}, clienttypes.ErrRouteNotFound},
		{"empty consensus state", func() {
			msg.ConsensusState = nil
		}, clienttypes.ErrInvalidConsensus},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()

			clientState := mockclient.NewClientState(s.chainB.ChainID, s.chainB.GetSelfHeight(), ibctesting.TrustingPeriod)
			consensusState := mockclient.NewConsensusState(s.chainB.LastHeader.Time, commitmenttypes.NewMerkleRoot(s.chainB.LastHeader.AppHash))
			msg = clienttypes.NewMsgCreateClient(clienttypes.MustPackAny(clientState), clienttypes.MustPackAny(consensusState), s.chainA.Signer())

			tc.malleate()

			events, err := s.chainA.SendMsgs(msg)

			if tc.expErr == nil {
				s.Require().NoError(err)

				clientID, err := ibctesting.ParseClientIDFromEvents(events)
				s.Require().NoError(err)
				s.Require().Equal(exported.Active, s.chainA.App.GetIBCKeeper().ClientKeeper.GetClientStatus(s.chainA.GetContext(), clientID))
			} else {
				s.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

func (s *KeeperTestSuite) TestUpdateClient() {
	var (
		path *ibctesting.Path
		msg  *clienttypes.MsgUpdateClient
	)

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{"success", func() {}, nil},
		{"client not found", func() {
			msg.ClientId = ibctesting.InvalidID
		}, clienttypes.ErrClientNotActive},
		{"client frozen", func() {
			clientState := path.EndpointA.GetClientState()
			clientState.FrozenHeight = mockclient.FrozenHeight
			path.EndpointA.SetClientState(clientState)
		}, clienttypes.ErrClientNotActive},
		{"invalid client message type", func() {
			msg.ClientMessage = &codectypes.Any{TypeUrl: "/ibc.lightclients.unknown.v1.Header", Value: []byte("value")}
		}, mockclient.ErrInvalidClientMsg},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()

			path = ibctesting.NewPath(s.chainA, s.chainB)
			path.SetupClients()

			s.coordinator.CommitBlock(s.chainB)
			header := clienttypes.MustPackAny(s.chainB.CurrentMockHeader())
			msg = clienttypes.NewMsgUpdateClient(path.EndpointA.ClientID, header, s.chainA.Signer())

			tc.malleate()

			_, err := s.chainA.SendMsgs(msg)

			if tc.expErr == nil {
				s.Require().NoError(err)
				s.Require().Equal(s.chainB.GetSelfHeight(), path.EndpointA.GetClientLatestHeight())
			} else {
				s.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestDeliverMsgsAtomic checks that a transaction either commits every
// message or none of them.
func (s *KeeperTestSuite) TestDeliverMsgsAtomic() {
	path := ibctesting.NewPath(s.chainA, s.chainB)
	path.SetupClients()

	connectionKeeper := s.chainA.App.GetIBCKeeper().ConnectionKeeper

	validMsg := connectiontypes.NewMsgConnectionOpenInit(
		path.EndpointA.ClientID, path.EndpointB.ClientID,
		s.chainB.GetPrefix(), ibctesting.DefaultOpenInitVersion, 0, s.chainA.Signer(),
	)
	invalidMsg := connectiontypes.NewMsgConnectionOpenInit(
		ibctesting.InvalidID, path.EndpointB.ClientID,
		s.chainB.GetPrefix(), ibctesting.DefaultOpenInitVersion, 0, s.chainA.Signer(),
	)

	_, err := s.chainA.SendMsgs(validMsg, invalidMsg)
	s.Require().ErrorIs(err, clienttypes.ErrClientNotFound)
	s.Require().ErrorContains(err, "message 1")

	s.Require().Equal(uint64(0), connectionKeeper.GetNextConnectionSequence(s.chainA.GetContext()))
	s.Require().False(connectionKeeper.HasConnection(s.chainA.GetContext(), ibctesting.FirstConnectionID))

	// later messages observe the writes of earlier ones
	_, err = s.chainA.SendMsgs(validMsg, validMsg)
	s.Require().NoError(err)
	s.Require().Equal(uint64(2), connectionKeeper.GetNextConnectionSequence(s.chainA.GetContext()))
}

func (s *KeeperTestSuite) TestDeliverMsgsErrors() {
	ibcKeeper := s.chainA.App.GetIBCKeeper()

	_, err := ibcKeeper.DeliverMsgs(s.chainA.GetContext(), nil)
	s.Require().ErrorIs(err, ibcerrors.ErrInvalidRequest)

	_, err = ibcKeeper.DeliverMsgs(s.chainA.GetContext(), []*codectypes.Any{{TypeUrl: "/unknown.Msg"}})
	s.Require().ErrorIs(err, ibcerrors.ErrUnknownRequest)

	_, err = ibcKeeper.DeliverMsgs(s.chainA.GetContext(), []*codectypes.Any{{TypeUrl: channeltypes.TypeURLMsgRecvPacket, Value: []byte{0xff}}})
	s.Require().ErrorIs(err, ibcerrors.ErrUnpackAny)
}

// TestValidateDoesNotWrite checks that validating a message leaves both the
// core state and the application state untouched.
func (s *KeeperTestSuite) TestValidateDoesNotWrite() {
	path := ibctesting.NewPath(s.chainA, s.chainB)
	path.Setup()

	var validated bool
	s.chainB.App.MockModule.IBCApp.OnChanCloseInitValidate = func(ctx sdk.Context, _, _ string) error {
		validated = true
		ctx.KVStore(s.chainB.App.GetKey(ibcmock.StoreKey)).Set(ibcmock.TestKey, ibcmock.TestValue)
		return nil
	}

	sequence, err := path.EndpointA.SendPacket(timeoutHeight, 0, ibcmock.MockPacketData)
	s.Require().NoError(err)
	packet := channeltypes.NewPacket(ibcmock.MockPacketData, sequence, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, timeoutHeight, 0)

	proof, proofHeight := path.EndpointA.QueryProof(host.PacketCommitmentKey(packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence()))
	recvMsg, err := types.PackMsg(channeltypes.NewMsgRecvPacket(packet, proof, proofHeight, s.chainB.Signer()))
	s.Require().NoError(err)

	closeMsg, err := types.PackMsg(channeltypes.NewMsgChannelCloseInit(path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, s.chainB.Signer()))
	s.Require().NoError(err)

	ctx := s.chainB.GetContext()
	ibcKeeper := s.chainB.App.GetIBCKeeper()

	s.Require().NoError(ibcKeeper.Validate(ctx, recvMsg))
	s.Require().NoError(ibcKeeper.Validate(ctx, closeMsg))
	s.Require().True(validated)

	_, found := ibcKeeper.ChannelKeeper.GetPacketReceipt(ctx, packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
	s.Require().False(found)
	s.Require().False(hasTestKey(s.chainB))
	s.Require().Equal(channeltypes.OPEN, path.EndpointB.GetChannel().State)

	res, err := ibcKeeper.Execute(ctx, recvMsg)
	s.Require().NoError(err)
	s.Require().Equal(channeltypes.SUCCESS, res.(*channeltypes.MsgRecvPacketResponse).Result)

	_, found = ibcKeeper.ChannelKeeper.GetPacketReceipt(ctx, packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
	s.Require().True(found)
}

// TestChannelCloseCallbackFailure checks that a failing application callback
// aborts the close without touching the channel.
func (s *KeeperTestSuite) TestChannelCloseCallbackFailure() {
	path := ibctesting.NewPath(s.chainA, s.chainB)
	path.Setup()

	s.chainA.App.MockModule.IBCApp.OnChanCloseInitExecute = func(sdk.Context, string, string) error {
		return errCallback
	}

	msg := channeltypes.NewMsgChannelCloseInit(path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, s.chainA.Signer())

	_, err := s.chainA.SendMsgs(msg)
	s.Require().ErrorIs(err, errCallback)
	s.Require().Equal(channeltypes.OPEN, path.EndpointA.GetChannel().State)
}
