package types

import (
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/cosmos/ibc-core/modules/core/02-client/types"
	"github.com/cosmos/ibc-core/modules/core/exported"
)

// ClientKeeper expected account IBC client keeper
type ClientKeeper interface {
	GetClientStatus(ctx sdk.Context, clientID string) exported.Status
	GetClientLatestHeight(ctx sdk.Context, clientID string) clienttypes.Height
	GetClientTimestampAtHeight(ctx sdk.Context, clientID string, height exported.Height) (uint64, error)
	HasClient(ctx sdk.Context, clientID string) bool
	GetProcessedTime(ctx sdk.Context, clientID string, height exported.Height) (uint64, bool)
	GetProcessedHeight(ctx sdk.Context, clientID string, height exported.Height) (clienttypes.Height, bool)
	VerifyMembership(ctx sdk.Context, clientID string, height exported.Height, proof []byte, path exported.Path, value []byte) error
	VerifyNonMembership(ctx sdk.Context, clientID string, height exported.Height, proof []byte, path exported.Path) error
	GetSelfConsensusState(ctx sdk.Context, height exported.Height) ([]byte, error)
	ValidateSelfClient(ctx sdk.Context, clientState *codectypes.Any) error
}
