package keeper

import (
	"errors"
	"fmt"

	corestore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ibc-core/internal/encoding"
	"github.com/cosmos/ibc-core/modules/core/02-client/types"
	host "github.com/cosmos/ibc-core/modules/core/24-host"
	"github.com/cosmos/ibc-core/modules/core/exported"
)

// Keeper represents a type that grants read and write permissions to any client
// state information
type Keeper struct {
	storeService  corestore.KVStoreService
	router        *types.Router
	consensusHost types.ConsensusHost
}

// NewKeeper creates a new NewKeeper instance
func NewKeeper(storeService corestore.KVStoreService, consensusHost types.ConsensusHost) *Keeper {
	if consensusHost == nil {
		panic(errors.New("cannot initialize IBC client keeper: empty consensus host"))
	}

	return &Keeper{
		storeService:  storeService,
		router:        types.NewRouter(types.NewStoreProvider(storeService)),
		consensusHost: consensusHost,
	}
}

// Logger returns a module-specific logger.
func (Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+exported.ModuleName+"/"+types.SubModuleName)
}

// GetRouter returns the light client router.
func (k *Keeper) GetRouter() *types.Router {
	return k.router
}

// AddRoute adds a new route to the underlying router.
func (k *Keeper) AddRoute(clientType string, module exported.LightClientModule) {
	k.router.AddRoute(clientType, module)
}

// SetConsensusHost sets a custom ConsensusHost for self client state and consensus state validation.
func (k *Keeper) SetConsensusHost(consensusHost types.ConsensusHost) {
	if consensusHost == nil {
		panic(errors.New("cannot set a nil self consensus host"))
	}

	k.consensusHost = consensusHost
}

// GenerateClientIdentifier returns the next client identifier.
func (k *Keeper) GenerateClientIdentifier(ctx sdk.Context, clientType string) string {
	nextClientSeq := k.GetNextClientSequence(ctx)
	clientID := types.FormatClientIdentifier(clientType, nextClientSeq)

	nextClientSeq++
	k.SetNextClientSequence(ctx, nextClientSeq)
	return clientID
}

// GetNextClientSequence gets the next client sequence from the store.
func (k *Keeper) GetNextClientSequence(ctx sdk.Context) uint64 {
	store := k.storeService.OpenKVStore(ctx)
	bz, err := store.Get([]byte(types.KeyNextClientSequence))
	if err != nil {
		panic(err)
	}

	if len(bz) == 0 {
		panic(errors.New("next client sequence is nil"))
	}

	return sdk.BigEndianToUint64(bz)
}

// SetNextClientSequence sets the next client sequence to the store.
func (k *Keeper) SetNextClientSequence(ctx sdk.Context, sequence uint64) {
	store := k.storeService.OpenKVStore(ctx)
	bz := sdk.Uint64ToBigEndian(sequence)
	if err := store.Set([]byte(types.KeyNextClientSequence), bz); err != nil {
		panic(err)
	}
}

// GetParams returns the total set of ibc-client parameters.
func (k *Keeper) GetParams(ctx sdk.Context) types.Params {
	store := k.storeService.OpenKVStore(ctx)
	bz, err := store.Get([]byte(types.ParamsKey))
	if err != nil {
		panic(err)
	}
	if bz == nil { // only panic on unset params and not on empty params
		panic(errors.New("client params are not set in store"))
	}

	var params types.Params
	if err := params.Unmarshal(bz); err != nil {
		panic(err)
	}
	return params
}

// SetParams sets the total set of ibc-client parameters.
func (k *Keeper) SetParams(ctx sdk.Context, params types.Params) {
	store := k.storeService.OpenKVStore(ctx)
	if err := store.Set([]byte(types.ParamsKey), encoding.MustMarshal(params)); err != nil {
		panic(err)
	}
}

// ClientStore returns isolated prefix store for each client so they can read/write in separate
// namespace without being able to read/write other client's data
func (k *Keeper) ClientStore(ctx sdk.Context, clientID string) storetypes.KVStore {
	return types.NewStoreProvider(k.storeService).ClientStore(ctx, clientID)
}

// HasClient returns true if a client state is stored for the given client identifier.
func (k *Keeper) HasClient(ctx sdk.Context, clientID string) bool {
	return k.ClientStore(ctx, clientID).Has(host.ClientStateKey())
}

// GetLightClientModule returns the light client module for the given client identifier.
func (k *Keeper) GetLightClientModule(clientID string) (exported.LightClientModule, error) {
	clientType, _, err := types.ParseClientIdentifier(clientID)
	if err != nil {
		return nil, errorsmod.Wrapf(err, "unable to parse client identifier %s", clientID)
	}

	lightClientModule, found := k.router.GetRoute(clientID)
	if !found {
		return nil, errorsmod.Wrapf(types.ErrRouteNotFound, "no light client module registered for client type %s", clientType)
	}

	return lightClientModule, nil
}

// GetClientStatus returns the status for a client state given a client identifier. If the client type is not in the allowed
// clients param field, Unauthorized is returned, otherwise the client state status is returned.
func (k *Keeper) GetClientStatus(ctx sdk.Context, clientID string) exported.Status {
	clientType, _, err := types.ParseClientIdentifier(clientID)
	if err != nil {
		return exported.Unauthorized
	}

	if !k.GetParams(ctx).IsAllowedClient(clientType) {
		return exported.Unauthorized
	}

	clientModule, found := k.router.GetRoute(clientID)
	if !found {
		return exported.Unauthorized
	}

	return clientModule.Status(ctx, clientID)
}

// GetClientLatestHeight returns the latest height of a client state for a given client identifier. If the client type is not in the allowed
// clients param field, a zero value height is returned, otherwise the client state latest height is returned.
func (k *Keeper) GetClientLatestHeight(ctx sdk.Context, clientID string) types.Height {
	clientType, _, err := types.ParseClientIdentifier(clientID)
	if err != nil {
		return types.ZeroHeight()
	}

	if !k.GetParams(ctx).IsAllowedClient(clientType) {
		return types.ZeroHeight()
	}

	clientModule, found := k.router.GetRoute(clientID)
	if !found {
		return types.ZeroHeight()
	}

	latestHeight, ok := clientModule.LatestHeight(ctx, clientID).(types.Height)
	if !ok {
		return types.ZeroHeight()
	}
	return latestHeight
}

// GetClientTimestampAtHeight returns the timestamp in nanoseconds of the consensus state at the given height.
func (k *Keeper) GetClientTimestampAtHeight(ctx sdk.Context, clientID string, height exported.Height) (uint64, error) {
	clientType, _, err := types.ParseClientIdentifier(clientID)
	if err != nil {
		return 0, errorsmod.Wrapf(types.ErrClientNotFound, "clientID (%s)", clientID)
	}

	if !k.GetParams(ctx).IsAllowedClient(clientType) {
		return 0, errorsmod.Wrapf(types.ErrInvalidClientType, "client state type %s is not registered in the allowlist", clientType)
	}

	clientModule, found := k.router.GetRoute(clientID)
	if !found {
		return 0, errorsmod.Wrap(types.ErrRouteNotFound, clientType)
	}

	return clientModule.TimestampAtHeight(ctx, clientID, height)
}

// SetProcessedTime stores the block time in nanoseconds at which the consensus
// state for the given height was processed.
func (k *Keeper) SetProcessedTime(ctx sdk.Context, clientID string, height exported.Height, timeNs uint64) {
	k.ClientStore(ctx, clientID).Set(host.ProcessedTimeKey(height), sdk.Uint64ToBigEndian(timeNs))
}

// GetProcessedTime gets the time (in nanoseconds) at which the consensus state
// for the given height was processed.
func (k *Keeper) GetProcessedTime(ctx sdk.Context, clientID string, height exported.Height) (uint64, bool) {
	bz := k.ClientStore(ctx, clientID).Get(host.ProcessedTimeKey(height))
	if len(bz) == 0 {
		return 0, false
	}

	return sdk.BigEndianToUint64(bz), true
}

// SetProcessedHeight stores the self height at which the consensus state for
// the given height was processed.
func (k *Keeper) SetProcessedHeight(ctx sdk.Context, clientID string, consHeight, processedHeight types.Height) {
	k.ClientStore(ctx, clientID).Set(host.ProcessedHeightKey(consHeight), encoding.MustMarshal(processedHeight))
}

// GetProcessedHeight gets the self height at which the consensus state for the
// given height was processed.
func (k *Keeper) GetProcessedHeight(ctx sdk.Context, clientID string, height exported.Height) (types.Height, bool) {
	bz := k.ClientStore(ctx, clientID).Get(host.ProcessedHeightKey(height))
	if len(bz) == 0 {
		return types.Height{}, false
	}

	var processedHeight types.Height
	if err := processedHeight.Unmarshal(bz); err != nil {
		panic(fmt.Errorf("failed to decode processed height for client %s: %w", clientID, err))
	}

	return processedHeight, true
}

// setProcessedMetadata records the current block time and self height for
// each newly stored consensus height.
func (k *Keeper) setProcessedMetadata(ctx sdk.Context, clientID string, consensusHeights []exported.Height) {
	selfHeight := types.GetSelfHeight(ctx)
	processedTime := uint64(ctx.BlockTime().UnixNano())

	for _, height := range consensusHeights {
		k.SetProcessedTime(ctx, clientID, height, processedTime)
		k.SetProcessedHeight(ctx, clientID, height.(types.Height), selfHeight)
	}
}

// VerifyMembership retrieves the light client module for the clientID and verifies the proof of the existence of a key-value pair at a specified height.
func (k *Keeper) VerifyMembership(ctx sdk.Context, clientID string, height exported.Height, proof []byte, path exported.Path, value []byte) error {
	clientModule, err := k.verificationModule(ctx, clientID, height)
	if err != nil {
		return err
	}

	return clientModule.VerifyMembership(ctx, clientID, height, proof, path, value)
}

// VerifyNonMembership retrieves the light client module for the clientID and verifies the absence of a given key at a specified height.
func (k *Keeper) VerifyNonMembership(ctx sdk.Context, clientID string, height exported.Height, proof []byte, path exported.Path) error {
	clientModule, err := k.verificationModule(ctx, clientID, height)
	if err != nil {
		return err
	}

	return clientModule.VerifyNonMembership(ctx, clientID, height, proof, path)
}

// verificationModule checks that the client is active and that the proof
// height does not exceed its latest height.
func (k *Keeper) verificationModule(ctx sdk.Context, clientID string, height exported.Height) (exported.LightClientModule, error) {
	if status := k.GetClientStatus(ctx, clientID); status != exported.Active {
		return nil, errorsmod.Wrapf(types.ErrClientNotActive, "client (%s) status is %s", clientID, status)
	}

	clientModule, err := k.GetLightClientModule(clientID)
	if err != nil {
		return nil, err
	}

	if latestHeight := clientModule.LatestHeight(ctx, clientID); latestHeight.LT(height) {
		return nil, errorsmod.Wrapf(types.ErrInvalidHeight,
			"client state height < proof height (%s < %s), please ensure the client has been updated", latestHeight, height)
	}

	return clientModule, nil
}

// GetSelfConsensusState introspects the (self) past historical info at a given height
// and returns the expected consensus state at that height.
func (k *Keeper) GetSelfConsensusState(ctx sdk.Context, height exported.Height) ([]byte, error) {
	return k.consensusHost.GetSelfConsensusState(ctx, height)
}

// ValidateSelfClient validates the client parameters for a client of the running chain.
// This function is only used to validate the client state the counterparty stores for this chain.
func (k *Keeper) ValidateSelfClient(ctx sdk.Context, clientState *codectypes.Any) error {
	return k.consensusHost.ValidateSelfClient(ctx, clientState)
}
