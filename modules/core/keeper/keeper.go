package keeper

import (
	"errors"
	"reflect"

	corestore "cosmossdk.io/core/store"
	"cosmossdk.io/log"

	sdk "github.com/cosmos/cosmos-sdk/types"

	clientkeeper "github.com/cosmos/ibc-core/modules/core/02-client/keeper"
	clienttypes "github.com/cosmos/ibc-core/modules/core/02-client/types"
	connectionkeeper "github.com/cosmos/ibc-core/modules/core/03-connection/keeper"
	channelkeeper "github.com/cosmos/ibc-core/modules/core/04-channel/keeper"
	portkeeper "github.com/cosmos/ibc-core/modules/core/05-port/keeper"
	porttypes "github.com/cosmos/ibc-core/modules/core/05-port/types"
	"github.com/cosmos/ibc-core/modules/core/exported"
)

// Keeper defines each ICS keeper for IBC
type Keeper struct {
	ClientKeeper     *clientkeeper.Keeper
	ConnectionKeeper *connectionkeeper.Keeper
	ChannelKeeper    *channelkeeper.Keeper
	PortKeeper       *portkeeper.Keeper

	handlers map[string]msgHandler
}

// NewKeeper creates a new ibc Keeper
func NewKeeper(storeService corestore.KVStoreService, consensusHost clienttypes.ConsensusHost) *Keeper {
	// panic if any of the dependencies passed in is empty
	if consensusHost == nil || isEmpty(consensusHost) {
		panic(errors.New("cannot initialize IBC keeper: empty consensus host"))
	}

	clientKeeper := clientkeeper.NewKeeper(storeService, consensusHost)
	connectionKeeper := connectionkeeper.NewKeeper(storeService, clientKeeper)
	portKeeper := portkeeper.NewKeeper()
	channelKeeper := channelkeeper.NewKeeper(storeService, clientKeeper, connectionKeeper)

	k := &Keeper{
		ClientKeeper:     clientKeeper,
		ConnectionKeeper: connectionKeeper,
		ChannelKeeper:    channelKeeper,
		PortKeeper:       portKeeper,
	}
	k.handlers = k.msgHandlers()

	return k
}

// Logger returns a module-specific logger.
func (Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+exported.ModuleName)
}

// SetRouter sets the Router in IBC Keeper and seals it. The method panics if
// there is an existing router that's already sealed.
func (k *Keeper) SetRouter(rtr *porttypes.Router) {
	if k.PortKeeper.Router != nil && k.PortKeeper.Router.Sealed() {
		panic(errors.New("cannot reset a sealed router"))
	}

	k.PortKeeper.Router = rtr
	k.PortKeeper.Router.Seal()
}

// isEmpty checks if the interface is an empty struct or a pointer pointing
// to an empty struct
func isEmpty(keeper any) bool {
	switch reflect.TypeOf(keeper).Kind() {
	case reflect.Ptr:
		if reflect.ValueOf(keeper).Elem().IsZero() {
			return true
		}
	default:
		if reflect.ValueOf(keeper).IsZero() {
			return true
		}
	}
	return false
}
