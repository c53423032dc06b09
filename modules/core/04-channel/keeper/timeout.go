package keeper

import (
	"bytes"
	"fmt"
	"strconv"

	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/cosmos/ibc-core/modules/core/02-client/types"
	connectiontypes "github.com/cosmos/ibc-core/modules/core/03-connection/types"
	"github.com/cosmos/ibc-core/modules/core/04-channel/types"
	"github.com/cosmos/ibc-core/modules/core/exported"
)

// TimeoutPacket is called by a module which originally attempted to send a
// packet to a counterparty module, where the timeout height has passed on the
// counterparty chain without the packet being committed, to prove that the
// packet can no longer be executed and to allow the calling module to safely
// perform appropriate state transitions. It only validates; TimeoutExecuted
// applies the result.
//
// types.ErrNoOpMsg is returned when the commitment has already been removed.
func (k *Keeper) TimeoutPacket(
	ctx sdk.Context,
	packet types.Packet,
	proof []byte,
	proofHeight exported.Height,
	nextSequenceRecv uint64,
) error {
	channel, connectionEnd, err := k.timeoutChannel(ctx, packet)
	if err != nil {
		return err
	}

	if channel.State != types.OPEN {
		return errorsmod.Wrapf(types.ErrInvalidChannelState, "channel state is not OPEN (got %s)", channel.State)
	}

	if err := k.checkCommitment(ctx, packet); err != nil {
		return err
	}

	// check that timeout height or timeout timestamp has passed on the other end
	proofTimestamp, err := k.clientKeeper.GetClientTimestampAtHeight(ctx, connectionEnd.ClientId, proofHeight)
	if err != nil {
		return err
	}

	proofClientHeight, ok := proofHeight.(clienttypes.Height)
	if !ok {
		return errorsmod.Wrapf(clienttypes.ErrInvalidHeight, "invalid height type %T", proofHeight)
	}

	timeout := types.NewTimeout(packet.TimeoutHeight, packet.TimeoutTimestamp)
	if !timeout.Elapsed(proofClientHeight, proofTimestamp) {
		return errorsmod.Wrap(timeout.ErrTimeoutNotReached(proofClientHeight, proofTimestamp), "packet timeout not reached")
	}

	return k.verifyNotReceived(ctx, channel, connectionEnd, packet, proof, proofHeight, nextSequenceRecv)
}

// TimeoutOnClose is called by a module in order to prove that the channel to
// which an unreceived packet was addressed has been closed, so the packet will
// never be received (even if the timeoutHeight has not yet been reached).
// It only validates; TimeoutOnCloseExecuted applies the result.
//
// types.ErrNoOpMsg is returned when the commitment has already been removed.
func (k *Keeper) TimeoutOnClose(
	ctx sdk.Context,
	packet types.Packet,
	proof,
	closedProof []byte,
	proofHeight exported.Height,
	nextSequenceRecv uint64,
) error {
	channel, connectionEnd, err := k.timeoutChannel(ctx, packet)
	if err != nil {
		return err
	}

	if err := k.checkCommitment(ctx, packet); err != nil {
		return err
	}

	counterpartyHops := []string{connectionEnd.Counterparty.ConnectionId}

	counterparty := types.NewCounterparty(packet.GetSourcePort(), packet.GetSourceChannel())
	expectedChannel := types.NewChannel(
		types.CLOSED, channel.Ordering, counterparty, counterpartyHops, channel.Version,
	)

	// check that the opposing channel end has closed
	if err := k.connectionKeeper.VerifyChannelState(
		ctx, connectionEnd, proofHeight, closedProof,
		channel.Counterparty.PortId, channel.Counterparty.ChannelId,
		expectedChannel,
	); err != nil {
		return err
	}

	return k.verifyNotReceived(ctx, channel, connectionEnd, packet, proof, proofHeight, nextSequenceRecv)
}

// TimeoutExecuted deletes the commitment of a packet validated by TimeoutPacket.
// If the timed-out packet came from an ORDERED channel then this channel will be
// closed.
func (k *Keeper) TimeoutExecuted(ctx sdk.Context, packet types.Packet) {
	k.timeoutExecuted(ctx, packet, emitTimeoutPacketEvent)
}

// TimeoutOnCloseExecuted deletes the commitment of a packet validated by
// TimeoutOnClose. An ORDERED channel is closed as well.
func (k *Keeper) TimeoutOnCloseExecuted(ctx sdk.Context, packet types.Packet) {
	k.timeoutExecuted(ctx, packet, emitTimeoutOnClosePacketEvent)
}

func (k *Keeper) timeoutExecuted(ctx sdk.Context, packet types.Packet, emit func(sdk.Context, types.Packet, types.Channel)) {
	channel, found := k.GetChannel(ctx, packet.GetSourcePort(), packet.GetSourceChannel())
	if !found {
		panic(fmt.Errorf("could not find existing channel when timing out packet, channelID: %s, portID: %s", packet.GetSourceChannel(), packet.GetSourcePort()))
	}

	k.deletePacketCommitment(ctx, packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence())

	if channel.Ordering == types.ORDERED && channel.State != types.CLOSED {
		previousState := channel.State
		channel.State = types.CLOSED
		k.SetChannel(ctx, packet.GetSourcePort(), packet.GetSourceChannel(), channel)

		k.Logger(ctx).Info("channel state updated", "port-id", packet.GetSourcePort(), "channel-id", packet.GetSourceChannel(), "previous-state", previousState, "new-state", types.CLOSED)

		emitChannelClosedEvent(ctx, packet, channel)
	}

	k.Logger(ctx).Info(
		"packet timed-out",
		"sequence", strconv.FormatUint(packet.GetSequence(), 10),
		"src_port", packet.GetSourcePort(),
		"src_channel", packet.GetSourceChannel(),
		"dst_port", packet.GetDestPort(),
		"dst_channel", packet.GetDestChannel(),
	)

	emit(ctx, packet, channel)
}

// timeoutChannel loads the source channel and connection of packet and checks
// that the packet was addressed to the channel's counterparty.
func (k *Keeper) timeoutChannel(ctx sdk.Context, packet types.Packet) (types.Channel, connectiontypes.ConnectionEnd, error) {
	channel, found := k.GetChannel(ctx, packet.GetSourcePort(), packet.GetSourceChannel())
	if !found {
		return types.Channel{}, connectiontypes.ConnectionEnd{}, errorsmod.Wrapf(
			types.ErrChannelNotFound,
			"port ID (%s) channel ID (%s)", packet.GetSourcePort(), packet.GetSourceChannel(),
		)
	}

	if packet.GetDestPort() != channel.Counterparty.PortId {
		return types.Channel{}, connectiontypes.ConnectionEnd{}, errorsmod.Wrapf(
			types.ErrInvalidPacket,
			"packet destination port doesn't match the counterparty's port (%s ≠ %s)", packet.GetDestPort(), channel.Counterparty.PortId,
		)
	}

	if packet.GetDestChannel() != channel.Counterparty.ChannelId {
		return types.Channel{}, connectiontypes.ConnectionEnd{}, errorsmod.Wrapf(
			types.ErrInvalidPacket,
			"packet destination channel doesn't match the counterparty's channel (%s ≠ %s)", packet.GetDestChannel(), channel.Counterparty.ChannelId,
		)
	}

	connectionEnd, err := k.GetConnection(ctx, channel.ConnectionHops[0])
	if err != nil {
		return types.Channel{}, connectiontypes.ConnectionEnd{}, err
	}

	return channel, connectionEnd, nil
}

func (k *Keeper) checkCommitment(ctx sdk.Context, packet types.Packet) error {
	commitment := k.GetPacketCommitment(ctx, packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence())
	if len(commitment) == 0 {
		// This error indicates that the timeout has already been relayed
		// or there is a misconfigured relayer attempting to prove a timeout
		// for a packet never sent. Core IBC will treat this error as a no-op in order to
		// prevent an entire relay transaction from failing and consuming unnecessary fees.
		return types.ErrNoOpMsg
	}

	packetCommitment := types.CommitPacket(packet)

	// verify we sent the packet and haven't cleared it out yet
	if !bytes.Equal(commitment, packetCommitment) {
		return errorsmod.Wrapf(types.ErrInvalidPacket, "packet commitment bytes are not equal: got (%v), expected (%v)", commitment, packetCommitment)
	}

	return nil
}

// verifyNotReceived proves the counterparty never received packet: through the
// next receive sequence on ORDERED channels, through the absence of a receipt
// on UNORDERED ones.
func (k *Keeper) verifyNotReceived(
	ctx sdk.Context,
	channel types.Channel,
	connectionEnd connectiontypes.ConnectionEnd,
	packet types.Packet,
	proof []byte,
	proofHeight exported.Height,
	nextSequenceRecv uint64,
) error {
	switch channel.Ordering {
	case types.ORDERED:
		// check that packet has not been received
		if nextSequenceRecv > packet.GetSequence() {
			return errorsmod.Wrapf(
				types.ErrPacketReceived,
				"packet already received, next sequence receive > packet sequence (%d > %d)", nextSequenceRecv, packet.GetSequence(),
			)
		}

		// check that the recv sequence is as claimed
		return k.connectionKeeper.VerifyNextSequenceRecv(
			ctx, connectionEnd, proofHeight, proof,
			packet.GetDestPort(), packet.GetDestChannel(), nextSequenceRecv,
		)
	case types.UNORDERED:
		return k.connectionKeeper.VerifyPacketReceiptAbsence(
			ctx, connectionEnd, proofHeight, proof,
			packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence(),
		)
	default:
		panic(fmt.Errorf("invalid channel ordering: %s", channel.Ordering))
	}
}
