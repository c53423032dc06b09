package mock

import (
	"fmt"

	storetypes "cosmossdk.io/store/types"

	clienttypes "github.com/cosmos/ibc-core/modules/core/02-client/types"
	host "github.com/cosmos/ibc-core/modules/core/24-host"
	"github.com/cosmos/ibc-core/modules/core/exported"
)

// setClientState stores the client state
func setClientState(clientStore storetypes.KVStore, clientState *ClientState) {
	key := host.ClientStateKey()
	val, err := clienttypes.MarshalAny(clientState)
	if err != nil {
		panic(fmt.Errorf("failed to encode mock client state: %w", err))
	}
	clientStore.Set(key, val)
}

// getClientState retrieves the client state from the store. It returns false
// if no client state is stored.
func getClientState(clientStore storetypes.KVStore) (*ClientState, bool) {
	bz := clientStore.Get(host.ClientStateKey())
	if len(bz) == 0 {
		return nil, false
	}

	var clientState ClientState
	if err := clienttypes.UnmarshalAny(bz, ClientStateTypeURL, &clientState); err != nil {
		panic(fmt.Errorf("failed to decode mock client state: %w", err))
	}

	return &clientState, true
}

// setConsensusState stores the consensus state at the given height.
func setConsensusState(clientStore storetypes.KVStore, consensusState *ConsensusState, height exported.Height) {
	key := host.ConsensusStateKey(height)
	val, err := clienttypes.MarshalAny(consensusState)
	if err != nil {
		panic(fmt.Errorf("failed to encode mock consensus state: %w", err))
	}
	clientStore.Set(key, val)
}

// GetConsensusState retrieves the consensus state from the client prefixed store.
// If the ConsensusState does not exist in state for the provided height, false is returned.
func GetConsensusState(store storetypes.KVStore, height exported.Height) (*ConsensusState, bool) {
	bz := store.Get(host.ConsensusStateKey(height))
	if len(bz) == 0 {
		return nil, false
	}

	var consensusState ConsensusState
	if err := clienttypes.UnmarshalAny(bz, ConsensusStateTypeURL, &consensusState); err != nil {
		panic(fmt.Errorf("failed to decode mock consensus state: %w", err))
	}

	return &consensusState, true
}
