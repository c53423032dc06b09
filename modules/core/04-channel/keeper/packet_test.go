package keeper_test

import (
	clienttypes "github.com/cosmos/ibc-core/modules/core/02-client/types"
	connectiontypes "github.com/cosmos/ibc-core/modules/core/03-connection/types"
	"github.com/cosmos/ibc-core/modules/core/04-channel/types"
	host "github.com/cosmos/ibc-core/modules/core/24-host"
	"github.com/cosmos/ibc-core/modules/core/exported"
	mockclient "github.com/cosmos/ibc-core/modules/light-clients/00-mock"
	ibctesting "github.com/cosmos/ibc-core/testing"
	ibcmock "github.com/cosmos/ibc-core/testing/mock"
)

var (
	disabledTimeoutTimestamp = uint64(0)
	disabledTimeoutHeight    = clienttypes.ZeroHeight()
	defaultTimeoutHeight     = clienttypes.NewHeight(1, 100)
)

// emptyAcknowledgement is an acknowledgement whose bytes are empty.
type emptyAcknowledgement struct{}

func (emptyAcknowledgement) Success() bool           { return true }
func (emptyAcknowledgement) Acknowledgement() []byte { return []byte{} }

// TestSendPacket tests SendPacket from chainA to chainB
func (s *KeeperTestSuite) TestSendPacket() {
	var (
		path             *ibctesting.Path
		sourcePort       string
		sourceChannel    string
		packetData       []byte
		timeoutHeight    clienttypes.Height
		timeoutTimestamp uint64
	)

	testCases := []testCase{
		{"success: UNORDERED channel", func() {
			path.Setup()
			sourceChannel = path.EndpointA.ChannelID
		}, nil},
		{"success: ORDERED channel", func() {
			path.SetChannelOrdered()
			path.Setup()
			sourceChannel = path.EndpointA.ChannelID
		}, nil},
		{"success: timestamp only timeout", func() {
			path.Setup()
			sourceChannel = path.EndpointA.ChannelID

			timeoutHeight = disabledTimeoutHeight
			timeoutTimestamp = s.chainB.GetTimeoutTimestamp()
		}, nil},
		{"packet basic validation failed, empty packet data", func() {
			path.Setup()
			sourceChannel = path.EndpointA.ChannelID

			packetData = []byte{}
		}, types.ErrInvalidPacket},
		{"packet basic validation failed, no timeout", func() {
			path.Setup()
			sourceChannel = path.EndpointA.ChannelID

			timeoutHeight = disabledTimeoutHeight
			timeoutTimestamp = disabledTimeoutTimestamp
		}, types.ErrInvalidPacket},
		{"channel not found", func() {
			// use wrong channel naming
			path.Setup()
			sourceChannel = ibctesting.InvalidID
		}, types.ErrChannelNotFound},
		{"channel is in CLOSED state", func() {
			path.Setup()
			sourceChannel = path.EndpointA.ChannelID

			err := path.EndpointA.SetChannelState(types.CLOSED)
			s.Require().NoError(err)
		}, types.ErrInvalidChannelState},
		{"channel is in INIT state", func() {
			path.SetupConnections()

			err := path.EndpointA.ChanOpenInit()
			s.Require().NoError(err)
			sourceChannel = path.EndpointA.ChannelID
		}, types.ErrInvalidChannelState},
		{"connection not found", func() {
			path.Setup()
			sourceChannel = path.EndpointA.ChannelID

			// pass channel check
			channel := path.EndpointA.GetChannel()
			channel.ConnectionHops[0] = "invalid-connection"
			path.EndpointA.SetChannel(channel)
		}, connectiontypes.ErrConnectionNotFound},
		{"client state is frozen", func() {
			path.Setup()
			sourceChannel = path.EndpointA.ChannelID

			clientState := path.EndpointA.GetClientState()
			clientState.FrozenHeight = mockclient.FrozenHeight
			path.EndpointA.SetClientState(clientState)
		}, clienttypes.ErrClientNotActive},
		{"client state not allowed", func() {
			path.Setup()
			sourceChannel = path.EndpointA.ChannelID

			params := s.chainA.App.GetIBCKeeper().ClientKeeper.GetParams(s.chainA.GetContext())
			params.AllowedClients = []string{}
			s.chainA.App.GetIBCKeeper().ClientKeeper.SetParams(s.chainA.GetContext(), params)
		}, clienttypes.ErrClientNotActive},
		{"timeout height passed", func() {
			path.Setup()
			sourceChannel = path.EndpointA.ChannelID

			timeoutHeight = path.EndpointA.GetClientLatestHeight()
		}, types.ErrTimeoutElapsed},
		{"timeout timestamp passed", func() {
			path.Setup()
			sourceChannel = path.EndpointA.ChannelID

			latestHeight := path.EndpointA.GetClientLatestHeight()
			timeoutHeight = disabledTimeoutHeight
			timeoutTimestamp = path.EndpointA.GetConsensusState(latestHeight).GetTimestamp()
		}, types.ErrTimeoutElapsed},
		{"timeout timestamp passed with a future timeout height", func() {
			path.Setup()
			sourceChannel = path.EndpointA.ChannelID

			latestHeight := path.EndpointA.GetClientLatestHeight()
			timeoutTimestamp = path.EndpointA.GetConsensusState(latestHeight).GetTimestamp()
		}, types.ErrTimeoutElapsed},
	}

	for _, tc := range testCases {
		s.Run(tc.msg, func() {
			s.SetupTest() // reset
			path = ibctesting.NewPath(s.chainA, s.chainB)

			// set default send packet arguments
			// sourceChannel is set after path is setup
			sourcePort = path.EndpointA.ChannelConfig.PortID
			timeoutHeight = s.chainB.GetTimeoutHeight()
			timeoutTimestamp = disabledTimeoutTimestamp
			packetData = ibcmock.MockPacketData

			// malleate may modify send packet arguments above
			tc.malleate()

			// only check if nextSequenceSend exists in no error case since it is a tested error case above.
			expectedSequence, ok := s.chainA.App.GetIBCKeeper().ChannelKeeper.GetNextSequenceSend(s.chainA.GetContext(), sourcePort, sourceChannel)

			sequence, err := s.chainA.App.GetIBCKeeper().ChannelKeeper.SendPacket(s.chainA.GetContext(),
				sourcePort, sourceChannel, timeoutHeight, timeoutTimestamp, packetData)

			if tc.expErr == nil {
				s.Require().NoError(err)
				// verify that the returned sequence matches expected value
				s.Require().True(ok)
				s.Require().Equal(expectedSequence, sequence, "send packet did not return the expected sequence of the outgoing packet")

				nextSequenceSend, found := s.chainA.App.GetIBCKeeper().ChannelKeeper.GetNextSequenceSend(s.chainA.GetContext(), sourcePort, sourceChannel)
				s.Require().True(found)
				s.Require().Equal(expectedSequence+1, nextSequenceSend)

				channel := path.EndpointA.GetChannel()
				packet := types.NewPacket(packetData, sequence, sourcePort, sourceChannel,
					channel.Counterparty.PortId, channel.Counterparty.ChannelId, timeoutHeight, timeoutTimestamp)

				commitment := s.chainA.App.GetIBCKeeper().ChannelKeeper.GetPacketCommitment(s.chainA.GetContext(), sourcePort, sourceChannel, sequence)
				s.Require().Equal(types.CommitPacket(packet), commitment)
			} else {
				s.Require().Error(err)
				s.Require().ErrorIs(err, tc.expErr)
				s.Require().Equal(uint64(0), sequence)
			}
		})
	}
}

// TestSendPacketSequences tests that every send allocates the next sequence
// and that failed sends do not consume one.
func (s *KeeperTestSuite) TestSendPacketSequences() {
	path := ibctesting.NewPath(s.chainA, s.chainB)
	path.Setup()

	timeoutHeight := s.chainB.GetTimeoutHeight()

	for expected := uint64(1); expected <= 3; expected++ {
		sequence, err := path.EndpointA.SendPacket(timeoutHeight, disabledTimeoutTimestamp, ibcmock.MockPacketData)
		s.Require().NoError(err)
		s.Require().Equal(expected, sequence)
	}

	_, err := path.EndpointA.SendPacket(disabledTimeoutHeight, disabledTimeoutTimestamp, ibcmock.MockPacketData)
	s.Require().ErrorIs(err, types.ErrInvalidPacket)

	sequence, err := path.EndpointA.SendPacket(timeoutHeight, disabledTimeoutTimestamp, ibcmock.MockPacketData)
	s.Require().NoError(err)
	s.Require().Equal(uint64(4), sequence)

	commitments := s.chainA.App.GetIBCKeeper().ChannelKeeper.GetAllPacketCommitmentsAtChannel(s.chainA.GetContext(), path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID)
	s.Require().Len(commitments, 4)
}

// TestRecvPacket test RecvPacket on chainB. Since packet commitment verification will always
// occur last (resource intensive), only tests expected to succeed and packet commitment
// verification tests need to simulate sending a packet from chainA to chainB.
func (s *KeeperTestSuite) TestRecvPacket() {
	var (
		path   *ibctesting.Path
		packet types.Packet
	)

	send := func() {
		sequence, err := path.EndpointA.SendPacket(defaultTimeoutHeight, disabledTimeoutTimestamp, ibcmock.MockPacketData)
		s.Require().NoError(err)

		packet = types.NewPacket(ibcmock.MockPacketData, sequence, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
			path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
	}

	testCases := []testCase{
		{"success: ORDERED channel", func() {
			path.SetChannelOrdered()
			path.Setup()
			send()
		}, nil},
		{"success UNORDERED channel", func() {
			// setup uses an UNORDERED channel
			path.Setup()
			send()
		}, nil},
		{"success with out of order packet: UNORDERED channel", func() {
			// setup uses an UNORDERED channel
			path.Setup()

			// send 2 packets, receive the second one first
			send()
			send()
		}, nil},
		{"packet already relayed: UNORDERED channel (no-op)", func() {
			path.Setup()
			send()

			err := path.EndpointB.RecvPacket(packet)
			s.Require().NoError(err)
		}, types.ErrNoOpMsg},
		{"packet already relayed: ORDERED channel", func() {
			path.SetChannelOrdered()
			path.Setup()
			send()

			err := path.EndpointB.RecvPacket(packet)
			s.Require().NoError(err)
		}, types.ErrPacketSequenceOutOfOrder},
		{"out of order packet failure with ORDERED channel", func() {
			path.SetChannelOrdered()
			path.Setup()

			// send 2 packets, only the first can be received
			send()
			send()
		}, types.ErrPacketSequenceOutOfOrder},
		{"channel not found", func() {
			// use wrong channel naming
			path.Setup()
			packet = types.NewPacket(ibcmock.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
				path.EndpointB.ChannelConfig.PortID, ibctesting.InvalidID, defaultTimeoutHeight, disabledTimeoutTimestamp)
		}, types.ErrChannelNotFound},
		{"channel not open", func() {
			path.Setup()
			send()

			err := path.EndpointB.SetChannelState(types.CLOSED)
			s.Require().NoError(err)
		}, types.ErrInvalidChannelState},
		{"packet source port ≠ channel counterparty port", func() {
			path.Setup()

			// use wrong port for dest
			packet = types.NewPacket(ibcmock.MockPacketData, 1, ibctesting.InvalidID, path.EndpointA.ChannelID,
				path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
		}, types.ErrInvalidPacket},
		{"packet source channel ID ≠ channel counterparty channel ID", func() {
			path.Setup()

			// use wrong channel for dest
			packet = types.NewPacket(ibcmock.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, ibctesting.InvalidID,
				path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
		}, types.ErrInvalidPacket},
		{"connection not found", func() {
			path.Setup()
			send()

			// pass channel check
			channel := path.EndpointB.GetChannel()
			channel.ConnectionHops[0] = ibctesting.InvalidID
			path.EndpointB.SetChannel(channel)
		}, connectiontypes.ErrConnectionNotFound},
		{"connection not OPEN", func() {
			path.Setup()
			send()

			connection := path.EndpointB.GetConnection()
			connection.State = connectiontypes.INIT
			path.EndpointB.SetConnection(connection)
		}, connectiontypes.ErrInvalidConnectionState},
		{"timeout height passed", func() {
			path.Setup()
			packet = types.NewPacket(ibcmock.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
				path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, clienttypes.GetSelfHeight(s.chainB.GetContext()), disabledTimeoutTimestamp)
		}, types.ErrTimeoutElapsed},
		{"timeout timestamp passed", func() {
			path.Setup()
			packet = types.NewPacket(ibcmock.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
				path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, disabledTimeoutHeight, uint64(s.chainB.GetContext().BlockTime().UnixNano()))
		}, types.ErrTimeoutElapsed},
		{"validation failed", func() {
			// packet commitment not set resulting in invalid proof
			path.Setup()
			packet = types.NewPacket(ibcmock.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
				path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
		}, clienttypes.ErrFailedPacketCommitmentVerification},
		{"client is frozen", func() {
			path.Setup()
			send()

			clientState := path.EndpointB.GetClientState()
			clientState.FrozenHeight = mockclient.FrozenHeight
			path.EndpointB.SetClientState(clientState)
		}, clienttypes.ErrClientNotActive},
	}

	for _, tc := range testCases {
		s.Run(tc.msg, func() {
			s.SetupTest() // reset
			path = ibctesting.NewPath(s.chainA, s.chainB)

			tc.malleate()

			// get proof of packet commitment from chainA
			packetKey := host.PacketCommitmentKey(packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence())
			proof, proofHeight := path.EndpointA.QueryProof(packetKey)

			ctx := s.chainB.GetContext()
			err := s.chainB.App.GetIBCKeeper().ChannelKeeper.RecvPacket(ctx, packet, proof, proofHeight)

			if tc.expErr == nil {
				s.Require().NoError(err)

				s.chainB.App.GetIBCKeeper().ChannelKeeper.WriteRecvPacket(ctx, packet)

				channel := path.EndpointB.GetChannel()
				nextSeqRecv, found := s.chainB.App.GetIBCKeeper().ChannelKeeper.GetNextSequenceRecv(ctx, packet.GetDestPort(), packet.GetDestChannel())
				s.Require().True(found)
				receipt, receiptStored := s.chainB.App.GetIBCKeeper().ChannelKeeper.GetPacketReceipt(ctx, packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())

				if channel.Ordering == types.ORDERED {
					s.Require().Equal(packet.GetSequence()+1, nextSeqRecv, "sequence not incremented in ordered channel")
					s.Require().False(receiptStored, "packet receipt stored on ORDERED channel")
				} else {
					s.Require().Equal(uint64(1), nextSeqRecv, "sequence incremented for UNORDERED channel")
					s.Require().True(receiptStored, "packet receipt not stored after RecvPacket in UNORDERED channel")
					s.Require().Equal(string([]byte{byte(1)}), receipt, "packet receipt is not empty string")
				}

				// receiving again is rejected
				err = s.chainB.App.GetIBCKeeper().ChannelKeeper.RecvPacket(ctx, packet, proof, proofHeight)
				s.Require().Error(err)
			} else {
				s.Require().Error(err)
				s.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestWriteAcknowledgement tests the WriteAcknowledgement call on chainB.
func (s *KeeperTestSuite) TestWriteAcknowledgement() {
	var (
		path   *ibctesting.Path
		ack    exported.Acknowledgement
		packet types.Packet
	)

	testCases := []testCase{
		{
			"success",
			func() {
				path.Setup()
				packet = types.NewPacket(ibcmock.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
				ack = ibcmock.MockAcknowledgement
			},
			nil,
		},
		{
			"success: error acknowledgement",
			func() {
				path.Setup()
				packet = types.NewPacket(ibcmock.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
				ack = ibcmock.MockFailAcknowledgement
			},
			nil,
		},
		{
			"channel not found",
			func() {
				// use wrong channel naming
				path.Setup()
				packet = types.NewPacket(ibcmock.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, ibctesting.InvalidID, defaultTimeoutHeight, disabledTimeoutTimestamp)
				ack = ibcmock.MockAcknowledgement
			},
			types.ErrChannelNotFound,
		},
		{
			"channel not open",
			func() {
				path.Setup()
				packet = types.NewPacket(ibcmock.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
				ack = ibcmock.MockAcknowledgement

				err := path.EndpointB.SetChannelState(types.CLOSED)
				s.Require().NoError(err)
			},
			types.ErrInvalidChannelState,
		},
		{
			"no-op, already acked",
			func() {
				path.Setup()
				packet = types.NewPacket(ibcmock.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
				ack = ibcmock.MockAcknowledgement
				s.chainB.App.GetIBCKeeper().ChannelKeeper.SetPacketAcknowledgement(s.chainB.GetContext(), packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence(), types.CommitAcknowledgement(ack.Acknowledgement()))
			},
			types.ErrAcknowledgementExists,
		},
		{
			"nil acknowledgement",
			func() {
				path.Setup()
				packet = types.NewPacket(ibcmock.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
				ack = nil
			},
			types.ErrInvalidAcknowledgement,
		},
		{
			"empty acknowledgement",
			func() {
				path.Setup()
				packet = types.NewPacket(ibcmock.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
				ack = emptyAcknowledgement{}
			},
			types.ErrInvalidAcknowledgement,
		},
	}
	for _, tc := range testCases {
		s.Run(tc.msg, func() {
			s.SetupTest() // reset
			path = ibctesting.NewPath(s.chainA, s.chainB)

			tc.malleate()

			err := s.chainB.App.GetIBCKeeper().ChannelKeeper.WriteAcknowledgement(s.chainB.GetContext(), packet, ack)

			if tc.expErr == nil {
				s.Require().NoError(err)

				ackHash, found := s.chainB.App.GetIBCKeeper().ChannelKeeper.GetPacketAcknowledgement(s.chainB.GetContext(), packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
				s.Require().True(found)
				s.Require().Equal(types.CommitAcknowledgement(ack.Acknowledgement()), ackHash)

				// writing a second acknowledgement fails
				err = s.chainB.App.GetIBCKeeper().ChannelKeeper.WriteAcknowledgement(s.chainB.GetContext(), packet, ack)
				s.Require().ErrorIs(err, types.ErrAcknowledgementExists)
			} else {
				s.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestAcknowledgePacket tests the call AcknowledgePacket on chainA.
func (s *KeeperTestSuite) TestAcknowledgePacket() {
	var (
		path   *ibctesting.Path
		packet types.Packet
		ack    []byte
	)

	send := func() {
		sequence, err := path.EndpointA.SendPacket(defaultTimeoutHeight, disabledTimeoutTimestamp, ibcmock.MockPacketData)
		s.Require().NoError(err)

		packet = types.NewPacket(ibcmock.MockPacketData, sequence, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
			path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
	}

	sendAndReceive := func() {
		send()

		err := path.EndpointB.RecvPacket(packet)
		s.Require().NoError(err)
	}

	testCases := []testCase{
		{"success on ordered channel", func() {
			path.SetChannelOrdered()
			path.Setup()
			sendAndReceive()
		}, nil},
		{"success on unordered channel", func() {
			// setup uses an UNORDERED channel
			path.Setup()
			sendAndReceive()
		}, nil},
		{"packet already acknowledged ordered channel (no-op)", func() {
			path.SetChannelOrdered()
			path.Setup()
			sendAndReceive()

			err := path.EndpointA.AcknowledgePacket(packet, ack)
			s.Require().NoError(err)
		}, types.ErrNoOpMsg},
		{"packet already acknowledged unordered channel (no-op)", func() {
			path.Setup()
			sendAndReceive()

			err := path.EndpointA.AcknowledgePacket(packet, ack)
			s.Require().NoError(err)
		}, types.ErrNoOpMsg},
		{"channel not found", func() {
			// use wrong channel naming
			path.Setup()
			packet = types.NewPacket(ibcmock.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, ibctesting.InvalidID,
				path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
		}, types.ErrChannelNotFound},
		{"channel not open", func() {
			path.Setup()
			sendAndReceive()

			err := path.EndpointA.SetChannelState(types.CLOSED)
			s.Require().NoError(err)
		}, types.ErrInvalidChannelState},
		{"packet destination port ≠ channel counterparty port", func() {
			path.Setup()

			// use wrong port for dest
			packet = types.NewPacket(ibcmock.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
				ibctesting.InvalidID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
		}, types.ErrInvalidPacket},
		{"packet destination channel ID ≠ channel counterparty channel ID", func() {
			path.Setup()

			// use wrong channel for dest
			packet = types.NewPacket(ibcmock.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
				path.EndpointB.ChannelConfig.PortID, ibctesting.InvalidID, defaultTimeoutHeight, disabledTimeoutTimestamp)
		}, types.ErrInvalidPacket},
		{"connection not found", func() {
			path.Setup()
			sendAndReceive()

			// pass channel check
			channel := path.EndpointA.GetChannel()
			channel.ConnectionHops[0] = ibctesting.InvalidID
			path.EndpointA.SetChannel(channel)
		}, connectiontypes.ErrConnectionNotFound},
		{"connection not OPEN", func() {
			path.Setup()
			sendAndReceive()

			connection := path.EndpointA.GetConnection()
			connection.State = connectiontypes.INIT
			path.EndpointA.SetConnection(connection)
		}, connectiontypes.ErrInvalidConnectionState},
		{"packet hasn't been sent (no-op)", func() {
			// packet commitment never written
			path.Setup()
			packet = types.NewPacket(ibcmock.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
				path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
		}, types.ErrNoOpMsg},
		{"packet commitment bytes do not match", func() {
			path.Setup()
			sendAndReceive()

			s.chainA.App.GetIBCKeeper().ChannelKeeper.SetPacketCommitment(s.chainA.GetContext(), packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence(), []byte("invalid packet commitment"))
		}, types.ErrInvalidPacket},
		{"packet ack verification failed", func() {
			// ack never written
			path.Setup()
			send()
		}, clienttypes.ErrFailedPacketAckVerification},
		{"packet ack differs from the written ack", func() {
			path.Setup()
			sendAndReceive()

			ack = ibcmock.MockFailAcknowledgement.Acknowledgement()
		}, clienttypes.ErrFailedPacketAckVerification},
		{"next ack sequence mismatch ORDERED", func() {
			path.SetChannelOrdered()
			path.Setup()
			sendAndReceive()

			// set ack sequence to a value different from the packet sequence
			s.chainA.App.GetIBCKeeper().ChannelKeeper.SetNextSequenceAck(s.chainA.GetContext(), path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, 10)
		}, types.ErrPacketSequenceOutOfOrder},
		{"client is frozen", func() {
			path.Setup()
			sendAndReceive()

			clientState := path.EndpointA.GetClientState()
			clientState.FrozenHeight = mockclient.FrozenHeight
			path.EndpointA.SetClientState(clientState)
		}, clienttypes.ErrClientNotActive},
	}

	for _, tc := range testCases {
		s.Run(tc.msg, func() {
			s.SetupTest() // reset
			path = ibctesting.NewPath(s.chainA, s.chainB)
			ack = ibcmock.MockAcknowledgement.Acknowledgement()

			tc.malleate()

			packetKey := host.PacketAcknowledgementKey(packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
			proof, proofHeight := path.EndpointB.QueryProof(packetKey)

			ctx := s.chainA.GetContext()
			err := s.chainA.App.GetIBCKeeper().ChannelKeeper.AcknowledgePacket(ctx, packet, ack, proof, proofHeight)

			if tc.expErr == nil {
				s.Require().NoError(err)

				s.chainA.App.GetIBCKeeper().ChannelKeeper.WriteAcknowledgePacket(ctx, packet)

				pc := s.chainA.App.GetIBCKeeper().ChannelKeeper.GetPacketCommitment(ctx, packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence())
				s.Require().Nil(pc)

				channel := path.EndpointA.GetChannel()
				nextSequenceAck, found := s.chainA.App.GetIBCKeeper().ChannelKeeper.GetNextSequenceAck(ctx, packet.GetSourcePort(), packet.GetSourceChannel())
				s.Require().True(found)

				if channel.Ordering == types.ORDERED {
					s.Require().Equal(packet.GetSequence()+1, nextSequenceAck, "sequence not incremented in ordered channel")
				} else {
					s.Require().Equal(uint64(1), nextSequenceAck, "sequence incremented for UNORDERED channel")
				}

				// acknowledging again is a no-op
				err = s.chainA.App.GetIBCKeeper().ChannelKeeper.AcknowledgePacket(ctx, packet, ack, proof, proofHeight)
				s.Require().ErrorIs(err, types.ErrNoOpMsg)
			} else {
				s.Require().Error(err)
				s.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestPacketLifecycle relays packets in both directions and checks that no
// commitment is left behind once every acknowledgement has been processed.
func (s *KeeperTestSuite) TestPacketLifecycle() {
	for _, order := range []types.Order{types.UNORDERED, types.ORDERED} {
		s.Run(order.String(), func() {
			s.SetupTest()

			path := ibctesting.NewPath(s.chainA, s.chainB)
			path.EndpointA.ChannelConfig.Order = order
			path.EndpointB.ChannelConfig.Order = order
			path.Setup()

			for _, p := range []*ibctesting.Path{path, path.Reversed()} {
				timeoutHeight := p.EndpointB.Chain.GetTimeoutHeight()
				sequence, err := p.EndpointA.SendPacket(timeoutHeight, disabledTimeoutTimestamp, ibcmock.MockPacketData)
				s.Require().NoError(err)

				packet := types.NewPacket(ibcmock.MockPacketData, sequence, p.EndpointA.ChannelConfig.PortID, p.EndpointA.ChannelID,
					p.EndpointB.ChannelConfig.PortID, p.EndpointB.ChannelID, timeoutHeight, disabledTimeoutTimestamp)

				s.Require().True(p.EndpointA.Chain.App.GetIBCKeeper().ChannelKeeper.HasInflightPackets(p.EndpointA.Chain.GetContext(), packet.SourcePort, packet.SourceChannel))

				err = p.RelayPacket(packet)
				s.Require().NoError(err)

				s.Require().False(p.EndpointA.Chain.App.GetIBCKeeper().ChannelKeeper.HasInflightPackets(p.EndpointA.Chain.GetContext(), packet.SourcePort, packet.SourceChannel))
				s.Require().True(p.EndpointB.Chain.App.GetIBCKeeper().ChannelKeeper.HasPacketAcknowledgement(p.EndpointB.Chain.GetContext(), packet.DestinationPort, packet.DestinationChannel, sequence))
			}
		})
	}
}
