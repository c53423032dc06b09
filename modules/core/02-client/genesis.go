package client

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ibc-core/modules/core/02-client/keeper"
	"github.com/cosmos/ibc-core/modules/core/02-client/types"
)

// InitGenesis initializes the ibc client submodule's state from a provided genesis
// state.
func InitGenesis(ctx sdk.Context, k *keeper.Keeper, gs types.GenesisState) {
	k.SetParams(ctx, gs.Params)
	k.SetNextClientSequence(ctx, gs.NextClientSequence)
}

// ExportGenesis returns the ibc client submodule's exported genesis.
func ExportGenesis(ctx sdk.Context, k *keeper.Keeper) types.GenesisState {
	return types.NewGenesisState(k.GetParams(ctx), k.GetNextClientSequence(ctx))
}
