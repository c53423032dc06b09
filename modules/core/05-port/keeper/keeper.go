package keeper

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ibc-core/modules/core/05-port/types"
	host "github.com/cosmos/ibc-core/modules/core/24-host"
	"github.com/cosmos/ibc-core/modules/core/exported"
)

// Keeper defines the IBC port keeper
type Keeper struct {
	Router *types.Router
}

// NewKeeper creates a new IBC port Keeper instance
func NewKeeper() *Keeper {
	return &Keeper{
		Router: types.NewRouter(),
	}
}

// Logger returns a module-specific logger.
func (Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+exported.ModuleName+"/"+types.SubModuleName)
}

// LookupModuleByPort returns the name and callbacks of the module bound to
// portID.
func (k *Keeper) LookupModuleByPort(portID string) (string, types.IBCModule, error) {
	if err := host.PortIdentifierValidator(portID); err != nil {
		return "", nil, errorsmod.Wrap(types.ErrInvalidPort, err.Error())
	}

	module, cbs, ok := k.Router.Route(portID)
	if !ok {
		return "", nil, errorsmod.Wrapf(types.ErrInvalidRoute, "route not found to module for port %s", portID)
	}

	return module, cbs, nil
}

// Route returns the IBCModule bound to portID.
func (k *Keeper) Route(portID string) (types.IBCModule, error) {
	_, cbs, err := k.LookupModuleByPort(portID)
	return cbs, err
}
