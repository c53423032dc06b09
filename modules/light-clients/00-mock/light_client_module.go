package mock

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/cosmos/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/cosmos/ibc-core/modules/core/23-commitment/types"
	host "github.com/cosmos/ibc-core/modules/core/24-host"
	ibcerrors "github.com/cosmos/ibc-core/modules/core/errors"
	"github.com/cosmos/ibc-core/modules/core/exported"
)

var _ exported.LightClientModule = (*LightClientModule)(nil)

// LightClientModule implements the core IBC exported.LightClientModule interface.
type LightClientModule struct {
	storeProvider exported.ClientStoreProvider
}

// NewLightClientModule creates and returns a new 00-mock LightClientModule.
func NewLightClientModule() *LightClientModule {
	return &LightClientModule{}
}

// RegisterStoreProvider is called by core IBC when a LightClientModule is added to the router.
// It allows the LightClientModule to set a ClientStoreProvider which supplies isolated prefix client stores
// to IBC light client instances.
func (l *LightClientModule) RegisterStoreProvider(storeProvider exported.ClientStoreProvider) {
	l.storeProvider = storeProvider
}

// ClientStateTypeURL returns the type url of the mock ClientState.
func (LightClientModule) ClientStateTypeURL() string {
	return ClientStateTypeURL
}

// UnmarshalClientMessage decodes a mock Header or Misbehaviour.
func (LightClientModule) UnmarshalClientMessage(typeURL string, bz []byte) (exported.ClientMessage, error) {
	switch typeURL {
	case HeaderTypeURL:
		header := &Header{}
		if err := header.Unmarshal(bz); err != nil {
			return nil, errorsmod.Wrapf(ibcerrors.ErrUnpackAny, "failed to decode mock header: %v", err)
		}
		return header, nil
	case MisbehaviourTypeURL:
		misbehaviour := &Misbehaviour{}
		if err := misbehaviour.Unmarshal(bz); err != nil {
			return nil, errorsmod.Wrapf(ibcerrors.ErrUnpackAny, "failed to decode mock misbehaviour: %v", err)
		}
		return misbehaviour, nil
	default:
		return nil, errorsmod.Wrapf(ErrInvalidClientMsg, "unsupported client message type url %s", typeURL)
	}
}

// Initialize unmarshals the provided client and consensus states and performs basic validation.
// The client state, initial consensus state and processed metadata are stored in the client store.
func (l LightClientModule) Initialize(ctx sdk.Context, clientID string, clientStateBz, consensusStateBz []byte) error {
	var clientState ClientState
	if err := clientState.Unmarshal(clientStateBz); err != nil {
		return fmt.Errorf("failed to unmarshal client state bytes into client state: %w", err)
	}

	if err := clientState.Validate(); err != nil {
		return err
	}

	if !clientState.FrozenHeight.IsZero() {
		return errorsmod.Wrap(clienttypes.ErrClientFrozen, "cannot create a frozen client")
	}

	var consensusState ConsensusState
	if err := consensusState.Unmarshal(consensusStateBz); err != nil {
		return fmt.Errorf("failed to unmarshal consensus state bytes into consensus state: %w", err)
	}

	if err := consensusState.ValidateBasic(); err != nil {
		return err
	}

	clientStore := l.storeProvider.ClientStore(ctx, clientID)
	if clientStore.Has(host.ClientStateKey()) {
		return errorsmod.Wrapf(clienttypes.ErrClientExists, "client %s already exists", clientID)
	}

	setClientState(clientStore, &clientState)
	setConsensusState(clientStore, &consensusState, clientState.LatestHeight)

	return nil
}

// VerifyClientMessage checks if the clientMessage is of a supported type and is well formed.
// Headers are trusted as-is, Misbehaviour must contain two conflicting headers.
func (l LightClientModule) VerifyClientMessage(ctx sdk.Context, clientID string, clientMsg exported.ClientMessage) error {
	clientStore := l.storeProvider.ClientStore(ctx, clientID)
	clientState, found := getClientState(clientStore)
	if !found {
		return errorsmod.Wrap(clienttypes.ErrClientNotFound, clientID)
	}

	switch msg := clientMsg.(type) {
	case *Header:
		if err := msg.ValidateBasic(); err != nil {
			return err
		}
		if msg.Height.RevisionNumber != clientState.LatestHeight.RevisionNumber {
			return errorsmod.Wrapf(ErrInvalidHeaderHeight, "header revision %d does not match client revision %d",
				msg.Height.RevisionNumber, clientState.LatestHeight.RevisionNumber)
		}
		return nil
	case *Misbehaviour:
		return msg.ValidateBasic()
	default:
		return errorsmod.Wrapf(ErrInvalidClientMsg, "invalid client message type %T", clientMsg)
	}
}

// CheckForMisbehaviour detects a Misbehaviour message or a Header conflicting
// with an already stored consensus state. It assumes the ClientMessage has
// already been verified.
func (l LightClientModule) CheckForMisbehaviour(ctx sdk.Context, clientID string, clientMsg exported.ClientMessage) bool {
	clientStore := l.storeProvider.ClientStore(ctx, clientID)

	switch msg := clientMsg.(type) {
	case *Misbehaviour:
		return true
	case *Header:
		existing, found := GetConsensusState(clientStore, msg.Height)
		if !found {
			return false
		}
		return !existing.equal(msg.ConsensusState())
	default:
		return false
	}
}

// UpdateStateOnMisbehaviour freezes the client.
func (l LightClientModule) UpdateStateOnMisbehaviour(ctx sdk.Context, clientID string, _ exported.ClientMessage) {
	clientStore := l.storeProvider.ClientStore(ctx, clientID)
	clientState, found := getClientState(clientStore)
	if !found {
		panic(errorsmod.Wrap(clienttypes.ErrClientNotFound, clientID))
	}

	clientState.FrozenHeight = FrozenHeight
	setClientState(clientStore, clientState)
}

// UpdateState stores the consensus state carried by the header and advances
// the latest height if the header is newer. A header for an already stored
// height is a no-op. It assumes the ClientMessage has already been verified.
func (l LightClientModule) UpdateState(ctx sdk.Context, clientID string, clientMsg exported.ClientMessage) []exported.Height {
	header, ok := clientMsg.(*Header)
	if !ok {
		panic(fmt.Errorf("expected type %T, got %T", &Header{}, clientMsg))
	}

	clientStore := l.storeProvider.ClientStore(ctx, clientID)
	clientState, found := getClientState(clientStore)
	if !found {
		panic(errorsmod.Wrap(clienttypes.ErrClientNotFound, clientID))
	}

	// check for duplicate update
	if _, found := GetConsensusState(clientStore, header.Height); found {
		// perform no-op
		return []exported.Height{header.Height}
	}

	if header.Height.GT(clientState.LatestHeight) {
		clientState.LatestHeight = header.Height
		setClientState(clientStore, clientState)
	}

	setConsensusState(clientStore, header.ConsensusState(), header.Height)

	return []exported.Height{header.Height}
}

// VerifyMembership verifies a proof of the existence of a value at the given
// path against the commitment root of the consensus state at height.
func (l LightClientModule) VerifyMembership(
	ctx sdk.Context,
	clientID string,
	height exported.Height,
	proof []byte,
	path exported.Path,
	value []byte,
) error {
	merkleProof, merklePath, consensusState, err := l.verificationArgs(ctx, clientID, height, proof, path)
	if err != nil {
		return err
	}

	return merkleProof.VerifyMembership(commitmenttypes.GetSDKSpecs(), consensusState.GetRoot(), merklePath, value)
}

// VerifyNonMembership verifies a proof of the absence of the given path
// against the commitment root of the consensus state at height.
func (l LightClientModule) VerifyNonMembership(
	ctx sdk.Context,
	clientID string,
	height exported.Height,
	proof []byte,
	path exported.Path,
) error {
	merkleProof, merklePath, consensusState, err := l.verificationArgs(ctx, clientID, height, proof, path)
	if err != nil {
		return err
	}

	return merkleProof.VerifyNonMembership(commitmenttypes.GetSDKSpecs(), consensusState.GetRoot(), merklePath)
}

// verificationArgs decodes the proof and path and loads the consensus state
// at the proof height. If a zero proof height is passed in, it will fail to
// retrieve the associated consensus state.
func (l LightClientModule) verificationArgs(
	ctx sdk.Context,
	clientID string,
	height exported.Height,
	proof []byte,
	path exported.Path,
) (commitmenttypes.MerkleProof, commitmenttypes.MerklePath, *ConsensusState, error) {
	clientStore := l.storeProvider.ClientStore(ctx, clientID)
	clientState, found := getClientState(clientStore)
	if !found {
		return commitmenttypes.MerkleProof{}, commitmenttypes.MerklePath{}, nil, errorsmod.Wrap(clienttypes.ErrClientNotFound, clientID)
	}

	if clientState.LatestHeight.LT(height) {
		return commitmenttypes.MerkleProof{}, commitmenttypes.MerklePath{}, nil, errorsmod.Wrapf(
			ibcerrors.ErrInvalidHeight,
			"client state height < proof height (%s < %s), please ensure the client has been updated", clientState.LatestHeight, height,
		)
	}

	var merkleProof commitmenttypes.MerkleProof
	if err := merkleProof.Unmarshal(proof); err != nil {
		return commitmenttypes.MerkleProof{}, commitmenttypes.MerklePath{}, nil, errorsmod.Wrap(commitmenttypes.ErrInvalidProof, "failed to unmarshal proof into ICS 23 commitment merkle proof")
	}

	merklePath, ok := path.(commitmenttypes.MerklePath)
	if !ok {
		return commitmenttypes.MerkleProof{}, commitmenttypes.MerklePath{}, nil, errorsmod.Wrapf(ibcerrors.ErrInvalidType, "expected %T, got %T", commitmenttypes.MerklePath{}, path)
	}

	consensusState, found := GetConsensusState(clientStore, height)
	if !found {
		return commitmenttypes.MerkleProof{}, commitmenttypes.MerklePath{}, nil, errorsmod.Wrap(clienttypes.ErrConsensusStateNotFound, "please ensure the proof was constructed against a height that exists on the client")
	}

	return merkleProof, merklePath, consensusState, nil
}

// Status returns the status of the mock client: Frozen once misbehaviour has
// been submitted, Expired once the trusting period has passed since the
// latest consensus state and Active otherwise.
func (l LightClientModule) Status(ctx sdk.Context, clientID string) exported.Status {
	clientStore := l.storeProvider.ClientStore(ctx, clientID)
	clientState, found := getClientState(clientStore)
	if !found {
		return exported.Unknown
	}

	latestConsensusState, _ := GetConsensusState(clientStore, clientState.LatestHeight)
	return clientState.status(ctx.BlockTime(), latestConsensusState)
}

// LatestHeight returns the latest height for the client state for the given client identifier.
// If no client is present for the provided client identifier a zero value height is returned.
func (l LightClientModule) LatestHeight(ctx sdk.Context, clientID string) exported.Height {
	clientStore := l.storeProvider.ClientStore(ctx, clientID)
	clientState, found := getClientState(clientStore)
	if !found {
		return clienttypes.ZeroHeight()
	}

	return clientState.LatestHeight
}

// TimestampAtHeight returns the timestamp in nanoseconds of the consensus state at the given height.
func (l LightClientModule) TimestampAtHeight(ctx sdk.Context, clientID string, height exported.Height) (uint64, error) {
	clientStore := l.storeProvider.ClientStore(ctx, clientID)
	if _, found := getClientState(clientStore); !found {
		return 0, errorsmod.Wrap(clienttypes.ErrClientNotFound, clientID)
	}

	consensusState, found := GetConsensusState(clientStore, height)
	if !found {
		return 0, errorsmod.Wrapf(clienttypes.ErrConsensusStateNotFound, "height (%s)", height)
	}

	return consensusState.GetTimestamp(), nil
}
