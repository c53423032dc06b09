package keeper

import (
	errorsmod "cosmossdk.io/errors"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/cosmos/ibc-core/modules/core/02-client/types"
	"github.com/cosmos/ibc-core/modules/core/03-connection/types"
	channeltypes "github.com/cosmos/ibc-core/modules/core/04-channel/types"
	commitmenttypes "github.com/cosmos/ibc-core/modules/core/23-commitment/types"
	host "github.com/cosmos/ibc-core/modules/core/24-host"
	"github.com/cosmos/ibc-core/modules/core/exported"
)

// VerifyClientState verifies a proof of a client state of the running machine
// stored on the target machine
func (k *Keeper) VerifyClientState(
	ctx sdk.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	proof []byte,
	clientState *codectypes.Any,
) error {
	clientID := connection.ClientId
	if err := k.requireActiveClient(ctx, clientID); err != nil {
		return err
	}

	merklePath := commitmenttypes.NewMerklePath([]byte(host.FullClientStatePath(connection.Counterparty.ClientId)))
	merklePath, err := commitmenttypes.ApplyPrefix(connection.Counterparty.Prefix, merklePath)
	if err != nil {
		return err
	}

	bz, err := clientState.Marshal()
	if err != nil {
		return err
	}

	if err := k.clientKeeper.VerifyMembership(ctx, clientID, height, proof, merklePath, bz); err != nil {
		return errorsmod.Wrapf(clienttypes.ErrFailedClientStateVerification, "failed client state verification for target client %s: %v", clientID, err)
	}

	return nil
}

// VerifyClientConsensusState verifies a proof of the consensus state of the
// specified client stored on the target machine.
func (k *Keeper) VerifyClientConsensusState(
	ctx sdk.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	consensusHeight exported.Height,
	proof []byte,
	consensusState []byte,
) error {
	clientID := connection.ClientId
	if err := k.requireActiveClient(ctx, clientID); err != nil {
		return err
	}

	merklePath := commitmenttypes.NewMerklePath([]byte(host.FullConsensusStatePath(connection.Counterparty.ClientId, consensusHeight)))
	merklePath, err := commitmenttypes.ApplyPrefix(connection.Counterparty.Prefix, merklePath)
	if err != nil {
		return err
	}

	if err := k.clientKeeper.VerifyMembership(ctx, clientID, height, proof, merklePath, consensusState); err != nil {
		return errorsmod.Wrapf(clienttypes.ErrFailedClientConsensusStateVerification, "failed consensus state verification for client (%s): %v", clientID, err)
	}

	return nil
}

// VerifyConnectionState verifies a proof of the connection state of the
// specified connection end stored on the target machine.
func (k *Keeper) VerifyConnectionState(
	ctx sdk.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	proof []byte,
	connectionID string,
	counterpartyConnection types.ConnectionEnd, // opposite connection
) error {
	clientID := connection.ClientId
	if err := k.requireActiveClient(ctx, clientID); err != nil {
		return err
	}

	merklePath := commitmenttypes.NewMerklePath([]byte(host.ConnectionPath(connectionID)))
	merklePath, err := commitmenttypes.ApplyPrefix(connection.Counterparty.Prefix, merklePath)
	if err != nil {
		return err
	}

	bz, err := counterpartyConnection.Marshal()
	if err != nil {
		return err
	}

	if err := k.clientKeeper.VerifyMembership(ctx, clientID, height, proof, merklePath, bz); err != nil {
		return errorsmod.Wrapf(clienttypes.ErrFailedConnectionStateVerification, "failed connection state verification for client (%s): %v", clientID, err)
	}

	return nil
}

// VerifyChannelState verifies a proof of the channel state of the specified
// channel end, under the specified port, stored on the target machine.
func (k *Keeper) VerifyChannelState(
	ctx sdk.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	proof []byte,
	portID,
	channelID string,
	channel channeltypes.Channel,
) error {
	clientID := connection.ClientId
	if err := k.requireActiveClient(ctx, clientID); err != nil {
		return err
	}

	merklePath := commitmenttypes.NewMerklePath([]byte(host.ChannelPath(portID, channelID)))
	merklePath, err := commitmenttypes.ApplyPrefix(connection.Counterparty.Prefix, merklePath)
	if err != nil {
		return err
	}

	bz, err := channel.Marshal()
	if err != nil {
		return err
	}

	if err := k.clientKeeper.VerifyMembership(ctx, clientID, height, proof, merklePath, bz); err != nil {
		return errorsmod.Wrapf(clienttypes.ErrFailedChannelStateVerification, "failed channel state verification for client (%s): %v", clientID, err)
	}

	return nil
}

// VerifyPacketCommitment verifies a proof of an outgoing packet commitment at
// the specified port, specified channel, and specified sequence.
func (k *Keeper) VerifyPacketCommitment(
	ctx sdk.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	proof []byte,
	portID,
	channelID string,
	sequence uint64,
	commitmentBytes []byte,
) error {
	clientID := connection.ClientId
	if err := k.requireActiveClient(ctx, clientID); err != nil {
		return err
	}

	if err := k.VerifyConnDelayPassed(ctx, connection, height); err != nil {
		return err
	}

	merklePath := commitmenttypes.NewMerklePath([]byte(host.PacketCommitmentPath(portID, channelID, sequence)))
	merklePath, err := commitmenttypes.ApplyPrefix(connection.Counterparty.Prefix, merklePath)
	if err != nil {
		return err
	}

	if err := k.clientKeeper.VerifyMembership(ctx, clientID, height, proof, merklePath, commitmentBytes); err != nil {
		return errorsmod.Wrapf(clienttypes.ErrFailedPacketCommitmentVerification, "failed packet commitment verification for client (%s): %v", clientID, err)
	}

	return nil
}

// VerifyPacketAcknowledgement verifies a proof of an incoming packet
// acknowledgement at the specified port, specified channel, and specified sequence.
func (k *Keeper) VerifyPacketAcknowledgement(
	ctx sdk.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	proof []byte,
	portID,
	channelID string,
	sequence uint64,
	acknowledgement []byte,
) error {
	clientID := connection.ClientId
	if err := k.requireActiveClient(ctx, clientID); err != nil {
		return err
	}

	if err := k.VerifyConnDelayPassed(ctx, connection, height); err != nil {
		return err
	}

	merklePath := commitmenttypes.NewMerklePath([]byte(host.PacketAcknowledgementPath(portID, channelID, sequence)))
	merklePath, err := commitmenttypes.ApplyPrefix(connection.Counterparty.Prefix, merklePath)
	if err != nil {
		return err
	}

	if err := k.clientKeeper.VerifyMembership(
		ctx, clientID, height, proof, merklePath, channeltypes.CommitAcknowledgement(acknowledgement),
	); err != nil {
		return errorsmod.Wrapf(clienttypes.ErrFailedPacketAckVerification, "failed packet acknowledgement verification for client (%s): %v", clientID, err)
	}

	return nil
}

// VerifyPacketReceiptAbsence verifies a proof of the absence of an
// incoming packet receipt at the specified port, specified channel, and
// specified sequence.
func (k *Keeper) VerifyPacketReceiptAbsence(
	ctx sdk.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	proof []byte,
	portID,
	channelID string,
	sequence uint64,
) error {
	clientID := connection.ClientId
	if err := k.requireActiveClient(ctx, clientID); err != nil {
		return err
	}

	if err := k.VerifyConnDelayPassed(ctx, connection, height); err != nil {
		return err
	}

	merklePath := commitmenttypes.NewMerklePath([]byte(host.PacketReceiptPath(portID, channelID, sequence)))
	merklePath, err := commitmenttypes.ApplyPrefix(connection.Counterparty.Prefix, merklePath)
	if err != nil {
		return err
	}

	if err := k.clientKeeper.VerifyNonMembership(ctx, clientID, height, proof, merklePath); err != nil {
		return errorsmod.Wrapf(clienttypes.ErrFailedPacketReceiptVerification, "failed packet receipt absence verification for client (%s): %v", clientID, err)
	}

	return nil
}

// VerifyNextSequenceRecv verifies a proof of the next sequence number to be
// received of the specified channel at the specified port.
func (k *Keeper) VerifyNextSequenceRecv(
	ctx sdk.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	proof []byte,
	portID,
	channelID string,
	nextSequenceRecv uint64,
) error {
	clientID := connection.ClientId
	if err := k.requireActiveClient(ctx, clientID); err != nil {
		return err
	}

	if err := k.VerifyConnDelayPassed(ctx, connection, height); err != nil {
		return err
	}

	merklePath := commitmenttypes.NewMerklePath([]byte(host.NextSequenceRecvPath(portID, channelID)))
	merklePath, err := commitmenttypes.ApplyPrefix(connection.Counterparty.Prefix, merklePath)
	if err != nil {
		return err
	}

	if err := k.clientKeeper.VerifyMembership(
		ctx, clientID, height, proof, merklePath, sdk.Uint64ToBigEndian(nextSequenceRecv),
	); err != nil {
		return errorsmod.Wrapf(clienttypes.ErrFailedNextSeqRecvVerification, "failed next sequence receive verification for client (%s): %v", clientID, err)
	}

	return nil
}

// VerifyConnDelayPassed checks that both the time and the block delay of the
// connection have passed since the consensus state at proofHeight was
// processed by the client. Connections without a delay period are not checked.
func (k *Keeper) VerifyConnDelayPassed(ctx sdk.Context, connection types.ConnectionEnd, proofHeight exported.Height) error {
	if connection.DelayPeriod == 0 {
		return nil
	}

	clientID := connection.ClientId

	// check that executing chain's timestamp has passed consensusState's processed time + delay time period
	processedTime, ok := k.clientKeeper.GetProcessedTime(ctx, clientID, proofHeight)
	if !ok {
		return errorsmod.Wrapf(clienttypes.ErrProcessedTimeNotFound, "processed time not found for height: %s", proofHeight)
	}

	currentTimestamp := uint64(ctx.BlockTime().UnixNano())
	validTime := processedTime + connection.DelayPeriod

	// NOTE: delay time period is inclusive, so if currentTimestamp is validTime, then we return no error
	if currentTimestamp < validTime {
		return errorsmod.Wrapf(types.ErrDelayPeriodNotPassed, "cannot verify packet until time: %d, current time: %d",
			validTime, currentTimestamp)
	}

	// check that executing chain's height has passed consensusState's processed height + delay block period
	processedHeight, ok := k.clientKeeper.GetProcessedHeight(ctx, clientID, proofHeight)
	if !ok {
		return errorsmod.Wrapf(clienttypes.ErrProcessedHeightNotFound, "processed height not found for height: %s", proofHeight)
	}

	currentHeight := clienttypes.GetSelfHeight(ctx)
	validHeight := clienttypes.NewHeight(processedHeight.GetRevisionNumber(), processedHeight.GetRevisionHeight()+k.getBlockDelay(ctx, connection))

	// NOTE: delay block period is inclusive, so if currentHeight is validHeight, then we return no error
	if currentHeight.LT(validHeight) {
		return errorsmod.Wrapf(types.ErrDelayPeriodNotPassed, "cannot verify packet until height: %s, current height: %s",
			validHeight, currentHeight)
	}

	return nil
}

// getBlockDelay calculates the block delay period from the time delay of the connection
// and the maximum expected time per block.
func (k *Keeper) getBlockDelay(ctx sdk.Context, connection types.ConnectionEnd) uint64 {
	// expectedTimePerBlock should never be zero, however if it is then return a 0 block delay for safety
	// as the expectedTimePerBlock parameter was not set.
	expectedTimePerBlock := k.GetParams(ctx).MaxExpectedTimePerBlock
	if expectedTimePerBlock == 0 {
		return 0
	}

	// calculate minimum block delay by dividing time delay period
	// by the expected time per block. Round up the block delay.
	timeDelay := connection.DelayPeriod
	blockDelay := timeDelay / expectedTimePerBlock
	if timeDelay%expectedTimePerBlock != 0 {
		blockDelay++
	}
	return blockDelay
}
