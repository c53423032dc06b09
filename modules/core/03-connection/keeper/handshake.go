package keeper

import (
	errorsmod "cosmossdk.io/errors"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/cosmos/ibc-core/modules/core/02-client/types"
	"github.com/cosmos/ibc-core/modules/core/03-connection/types"
	commitmenttypes "github.com/cosmos/ibc-core/modules/core/23-commitment/types"
	"github.com/cosmos/ibc-core/modules/core/exported"
)

// ConnOpenInit validates a connection attempt on chain A and returns the
// versions that WriteOpenInitConnection must store. It does not modify state.
//
// NOTE: Msg validation verifies the supplied identifiers and ensures that the counterparty
// connection identifier is empty.
func (k *Keeper) ConnOpenInit(
	ctx sdk.Context,
	clientID string,
	version *types.Version,
) ([]*types.Version, error) {
	versions := types.GetCompatibleVersions()
	if version != nil {
		if !types.IsSupportedVersion(types.GetCompatibleVersions(), version) {
			return nil, errorsmod.Wrap(types.ErrInvalidVersion, "version is not supported")
		}

		versions = []*types.Version{version}
	}

	if !k.clientKeeper.HasClient(ctx, clientID) {
		return nil, errorsmod.Wrap(clienttypes.ErrClientNotFound, clientID)
	}

	if err := k.requireActiveClient(ctx, clientID); err != nil {
		return nil, err
	}

	return versions, nil
}

// WriteOpenInitConnection allocates a connection identifier and stores chain A's
// ConnectionEnd in INIT. The generated connection identifier is returned.
func (k *Keeper) WriteOpenInitConnection(
	ctx sdk.Context,
	clientID string,
	counterparty types.Counterparty, // counterpartyPrefix, counterpartyClientIdentifier
	versions []*types.Version,
	delayPeriod uint64,
) string {
	connectionID := k.GenerateConnectionIdentifier(ctx)
	k.addConnectionToClient(ctx, clientID, connectionID)

	// connection defines chain A's ConnectionEnd
	connection := types.NewConnectionEnd(types.INIT, clientID, counterparty, versions, delayPeriod)
	k.SetConnection(ctx, connectionID, connection)

	k.Logger(ctx).Info("connection state updated", "connection-id", connectionID, "previous-state", types.UNINITIALIZED, "new-state", types.INIT)

	defer telemetry.IncrCounter(1, "ibc", "connection", "open-init")

	emitConnectionOpenInitEvent(ctx, connectionID, clientID, counterparty)

	return connectionID
}

// ConnOpenTry verifies the notice of a connection attempt on chain A (this
// code is executed on chain B). It returns the version chain B picked from
// the counterparty versions. No state is modified.
//
// NOTE:
//   - Here chain A acts as the counterparty
//   - Identifiers are checked on msg validation
func (k *Keeper) ConnOpenTry(
	ctx sdk.Context,
	counterparty types.Counterparty, // counterpartyConnectionIdentifier, counterpartyPrefix and counterpartyClientIdentifier
	delayPeriod uint64,
	clientID string, // clientID of chainA
	clientState *codectypes.Any, // clientState that chainA has for chainB
	counterpartyVersions []*types.Version, // supported versions of chain A
	initProof []byte, // proof that chainA stored connectionEnd in state (on ConnOpenInit)
	clientProof []byte, // proof that chainA stored a light client of chainB
	consensusProof []byte, // proof that chainA stored chainB's consensus state at consensus height
	proofHeight exported.Height, // height at which relayer constructs proof of A storing connectionEnd in state
	consensusHeight exported.Height, // latest height of chain B which chain A has stored in its chain B client
) (*types.Version, error) {
	selfHeight := clienttypes.GetSelfHeight(ctx)
	if consensusHeight.GTE(selfHeight) {
		return nil, errorsmod.Wrapf(
			types.ErrInvalidConsensusHeight,
			"consensus height is greater than or equal to the current block height (%s >= %s)", consensusHeight, selfHeight,
		)
	}

	// validate client parameters of a chainB client stored on chainA
	if err := k.clientKeeper.ValidateSelfClient(ctx, clientState); err != nil {
		return nil, err
	}

	expectedConsensusState, err := k.clientKeeper.GetSelfConsensusState(ctx, consensusHeight)
	if err != nil {
		return nil, errorsmod.Wrapf(err, "self consensus state not found for height %s", consensusHeight)
	}

	// chain B picks a version from Chain A's available versions that is compatible
	// with Chain B's supported IBC versions. PickVersion will select the intersection
	// of the supported versions and the counterparty versions.
	version, err := types.PickVersion(types.GetCompatibleVersions(), counterpartyVersions)
	if err != nil {
		return nil, err
	}

	// expectedConnection defines Chain A's ConnectionEnd
	// NOTE: chain A's counterparty is chain B (i.e where this code is executed)
	// NOTE: chainA and chainB must have the same delay period
	prefix := k.GetCommitmentPrefix()
	expectedCounterparty := types.NewCounterparty(clientID, "", commitmenttypes.NewMerklePrefix(prefix.Bytes()))
	expectedConnection := types.NewConnectionEnd(types.INIT, counterparty.ClientId, expectedCounterparty, counterpartyVersions, delayPeriod)

	// connection defines chain B's ConnectionEnd
	connection := types.NewConnectionEnd(types.TRYOPEN, clientID, counterparty, []*types.Version{version}, delayPeriod)

	// Check that ChainA committed expectedConnectionEnd to its state
	if err := k.VerifyConnectionState(
		ctx, connection, proofHeight, initProof, counterparty.ConnectionId,
		expectedConnection,
	); err != nil {
		return nil, err
	}

	// Check that ChainA stored the clientState provided in the msg
	if err := k.VerifyClientState(ctx, connection, proofHeight, clientProof, clientState); err != nil {
		return nil, err
	}

	// Check that ChainA stored the correct ConsensusState of chainB at the given consensusHeight
	if err := k.VerifyClientConsensusState(
		ctx, connection, proofHeight, consensusHeight, consensusProof, expectedConsensusState,
	); err != nil {
		return nil, err
	}

	return version, nil
}

// WriteOpenTryConnection allocates a connection identifier on chain B and
// stores its ConnectionEnd in TRYOPEN. The generated identifier is returned.
func (k *Keeper) WriteOpenTryConnection(
	ctx sdk.Context,
	clientID string,
	counterparty types.Counterparty,
	version *types.Version,
	delayPeriod uint64,
) string {
	connectionID := k.GenerateConnectionIdentifier(ctx)
	k.addConnectionToClient(ctx, clientID, connectionID)

	connection := types.NewConnectionEnd(types.TRYOPEN, clientID, counterparty, []*types.Version{version}, delayPeriod)
	k.SetConnection(ctx, connectionID, connection)

	k.Logger(ctx).Info("connection state updated", "connection-id", connectionID, "previous-state", types.UNINITIALIZED, "new-state", types.TRYOPEN)

	defer telemetry.IncrCounter(1, "ibc", "connection", "open-try")

	emitConnectionOpenTryEvent(ctx, connectionID, clientID, counterparty)

	return connectionID
}

// ConnOpenAck verifies the acceptance of a connection open attempt from chain B
// back to chain A (this code is executed on chain A). No state is modified.
//
// NOTE: Identifiers are checked on msg validation.
func (k *Keeper) ConnOpenAck(
	ctx sdk.Context,
	connectionID string,
	clientState *codectypes.Any, // client state for chainA on chainB
	version *types.Version, // version that ChainB chose in ConnOpenTry
	counterpartyConnectionID string,
	tryProof []byte, // proof that connectionEnd was added to ChainB state in ConnOpenTry
	clientProof []byte, // proof of client state on chainB for chainA
	consensusProof []byte, // proof that chainB has stored ConsensusState of chainA on its client
	proofHeight exported.Height, // height that relayer constructed proofTry
	consensusHeight exported.Height, // latest height of chainA that chainB has stored on its chainA client
) error {
	// check that the consensus height the counterparty chain is using to store a representation
	// of this chain's consensus state is at a height in the past
	selfHeight := clienttypes.GetSelfHeight(ctx)
	if consensusHeight.GTE(selfHeight) {
		return errorsmod.Wrapf(
			types.ErrInvalidConsensusHeight,
			"consensus height is greater than or equal to the current block height (%s >= %s)", consensusHeight, selfHeight,
		)
	}

	// Retrieve connection
	connection, found := k.GetConnection(ctx, connectionID)
	if !found {
		return errorsmod.Wrap(types.ErrConnectionNotFound, connectionID)
	}

	// verify the previously set connection state
	if connection.State != types.INIT {
		return errorsmod.Wrapf(
			types.ErrInvalidConnectionState,
			"connection state is not INIT (got %s)", connection.State,
		)
	}

	// ensure selected version is supported
	if !types.IsSupportedVersion(connection.Versions, version) {
		return errorsmod.Wrapf(
			types.ErrInvalidConnectionState,
			"the counterparty selected version %s is not supported by versions selected on INIT", version,
		)
	}

	// validate client parameters of a chainA client stored on chainB
	if err := k.clientKeeper.ValidateSelfClient(ctx, clientState); err != nil {
		return err
	}

	// Retrieve chainA's consensus state at consensusheight
	expectedConsensusState, err := k.clientKeeper.GetSelfConsensusState(ctx, consensusHeight)
	if err != nil {
		return errorsmod.Wrapf(err, "self consensus state not found for height %s", consensusHeight)
	}

	prefix := k.GetCommitmentPrefix()
	expectedCounterparty := types.NewCounterparty(connection.ClientId, connectionID, commitmenttypes.NewMerklePrefix(prefix.Bytes()))
	expectedConnection := types.NewConnectionEnd(types.TRYOPEN, connection.Counterparty.ClientId, expectedCounterparty, []*types.Version{version}, connection.DelayPeriod)

	// Ensure that ChainB stored expected connectionEnd in its state during ConnOpenTry
	if err := k.VerifyConnectionState(
		ctx, connection, proofHeight, tryProof, counterpartyConnectionID,
		expectedConnection,
	); err != nil {
		return err
	}

	// Check that ChainB stored the clientState provided in the msg
	if err := k.VerifyClientState(ctx, connection, proofHeight, clientProof, clientState); err != nil {
		return err
	}

	// Ensure that ChainB has stored the correct ConsensusState for chainA at the consensusHeight
	return k.VerifyClientConsensusState(
		ctx, connection, proofHeight, consensusHeight, consensusProof, expectedConsensusState,
	)
}

// WriteOpenAckConnection transitions chain A's connection to OPEN and records
// the counterparty connection identifier and the negotiated version.
func (k *Keeper) WriteOpenAckConnection(
	ctx sdk.Context,
	connectionID string,
	version *types.Version,
	counterpartyConnectionID string,
) {
	connection, found := k.GetConnection(ctx, connectionID)
	if !found {
		panic(errorsmod.Wrap(types.ErrConnectionNotFound, connectionID))
	}

	k.Logger(ctx).Info("connection state updated", "connection-id", connectionID, "previous-state", connection.State, "new-state", types.OPEN)

	defer telemetry.IncrCounter(1, "ibc", "connection", "open-ack")

	// Update connection state to Open
	connection.State = types.OPEN
	connection.Versions = []*types.Version{version}
	connection.Counterparty.ConnectionId = counterpartyConnectionID
	k.SetConnection(ctx, connectionID, connection)

	emitConnectionOpenAckEvent(ctx, connectionID, connection)
}

// ConnOpenConfirm verifies the opening of a connection on chain A to chain B,
// after which the connection is open on both chains (this code is executed on
// chain B). No state is modified.
//
// NOTE: Identifiers are checked on msg validation.
func (k *Keeper) ConnOpenConfirm(
	ctx sdk.Context,
	connectionID string,
	ackProof []byte, // proof that connection opened on ChainA during ConnOpenAck
	proofHeight exported.Height, // height that relayer constructed proofAck
) error {
	// Retrieve connection
	connection, found := k.GetConnection(ctx, connectionID)
	if !found {
		return errorsmod.Wrap(types.ErrConnectionNotFound, connectionID)
	}

	// Check that connection state on ChainB is on state: TRYOPEN
	if connection.State != types.TRYOPEN {
		return errorsmod.Wrapf(
			types.ErrInvalidConnectionState,
			"connection state is not TRYOPEN (got %s)", connection.State,
		)
	}

	prefix := k.GetCommitmentPrefix()
	expectedCounterparty := types.NewCounterparty(connection.ClientId, connectionID, commitmenttypes.NewMerklePrefix(prefix.Bytes()))
	expectedConnection := types.NewConnectionEnd(types.OPEN, connection.Counterparty.ClientId, expectedCounterparty, connection.Versions, connection.DelayPeriod)

	// Check that connection on ChainA is open
	return k.VerifyConnectionState(
		ctx, connection, proofHeight, ackProof, connection.Counterparty.ConnectionId,
		expectedConnection,
	)
}

// WriteOpenConfirmConnection transitions chain B's connection to OPEN.
func (k *Keeper) WriteOpenConfirmConnection(ctx sdk.Context, connectionID string) {
	connection, found := k.GetConnection(ctx, connectionID)
	if !found {
		panic(errorsmod.Wrap(types.ErrConnectionNotFound, connectionID))
	}

	// Update ChainB's connection to Open
	connection.State = types.OPEN
	k.SetConnection(ctx, connectionID, connection)
	k.Logger(ctx).Info("connection state updated", "connection-id", connectionID, "previous-state", types.TRYOPEN, "new-state", types.OPEN)

	defer telemetry.IncrCounter(1, "ibc", "connection", "open-confirm")

	emitConnectionOpenConfirmEvent(ctx, connectionID, connection)
}
