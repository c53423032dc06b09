package connection

import (
	"slices"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ibc-core/modules/core/03-connection/keeper"
	"github.com/cosmos/ibc-core/modules/core/03-connection/types"
)

// InitGenesis initializes the ibc connection submodule's state from a provided genesis
// state.
func InitGenesis(ctx sdk.Context, k *keeper.Keeper, gs types.GenesisState) {
	for _, connection := range gs.Connections {
		k.SetConnection(ctx, connection.Id, connection.ConnectionEnd)
	}
	for _, connPaths := range gs.ClientConnectionPaths {
		k.SetClientConnectionPaths(ctx, connPaths.ClientId, connPaths.Paths)
	}
	k.SetNextConnectionSequence(ctx, gs.NextConnectionSequence)
	k.SetParams(ctx, gs.Params)
}

// ExportGenesis returns the ibc connection submodule's exported genesis.
func ExportGenesis(ctx sdk.Context, k *keeper.Keeper) types.GenesisState {
	connections := k.GetAllConnections(ctx)

	var clientIDs []string
	for _, connection := range connections {
		if !slices.Contains(clientIDs, connection.ClientId) {
			clientIDs = append(clientIDs, connection.ClientId)
		}
	}
	slices.Sort(clientIDs)

	connPaths := []types.ConnectionPaths{}
	for _, clientID := range clientIDs {
		if paths, found := k.GetClientConnectionPaths(ctx, clientID); found {
			connPaths = append(connPaths, types.NewConnectionPaths(clientID, paths))
		}
	}

	return types.NewGenesisState(connections, connPaths, k.GetNextConnectionSequence(ctx), k.GetParams(ctx))
}
