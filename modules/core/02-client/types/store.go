package types

import (
	"fmt"

	corestore "cosmossdk.io/core/store"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"

	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"

	host "github.com/cosmos/ibc-core/modules/core/24-host"
	"github.com/cosmos/ibc-core/modules/core/exported"
)

var _ exported.ClientStoreProvider = (*storeProvider)(nil)

// storeProvider implements the exported.ClientStoreProvider interface and encapsulates the IBC core store service.
type storeProvider struct {
	storeService corestore.KVStoreService
}

// NewStoreProvider creates and returns a new ClientStoreProvider.
func NewStoreProvider(storeService corestore.KVStoreService) exported.ClientStoreProvider {
	return storeProvider{
		storeService: storeService,
	}
}

// ClientStore returns isolated prefix store for each client so they can read/write in separate namespaces.
func (s storeProvider) ClientStore(ctx sdk.Context, clientID string) storetypes.KVStore {
	clientPrefix := []byte(fmt.Sprintf("%s/%s/", host.KeyClientStorePrefix, clientID))
	return prefix.NewStore(runtime.KVStoreAdapter(s.storeService.OpenKVStore(ctx)), clientPrefix)
}
