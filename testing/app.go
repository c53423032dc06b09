package ibctesting

import (
	"fmt"
	"testing"

	dbm "github.com/cosmos/cosmos-db"
	"github.com/stretchr/testify/require"

	"cosmossdk.io/log"
	"cosmossdk.io/store/metrics"
	"cosmossdk.io/store/rootmulti"
	storetypes "cosmossdk.io/store/types"

	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"

	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"

	ibc "github.com/cosmos/ibc-core/modules/core"
	porttypes "github.com/cosmos/ibc-core/modules/core/05-port/types"
	"github.com/cosmos/ibc-core/modules/core/exported"
	ibckeeper "github.com/cosmos/ibc-core/modules/core/keeper"
	"github.com/cosmos/ibc-core/modules/core/types"
	ibcmock "github.com/cosmos/ibc-core/modules/light-clients/00-mock"
	"github.com/cosmos/ibc-core/testing/mock"
)

// TestingApp is the application run by a TestChain. It holds the ibc store
// and the store of the mock application in a commit multistore backed by an
// in-memory database, and records the header of every committed block.
type TestingApp struct {
	cms       *rootmulti.Store
	keys      map[string]*storetypes.KVStoreKey
	logger    log.Logger
	ibcKeeper *ibckeeper.Keeper
	headers   map[int64]cmtproto.Header

	// MockModule is the application bound to the mock port. Its IBCApp
	// callbacks may be overridden by tests.
	MockModule mock.IBCModule
}

var _ ibcmock.HistoryKeeper = (*TestingApp)(nil)

// SetupTestingApp mounts the stores, wires the ibc keeper with the 00-mock
// light client and the mock application and initializes the default genesis.
// The returned application has not committed any block yet.
func SetupTestingApp(tb testing.TB, chainID string) *TestingApp {
	tb.Helper()

	app := &TestingApp{
		cms:     rootmulti.NewStore(dbm.NewMemDB(), log.NewNopLogger(), metrics.NewNoOpMetrics()),
		keys:    storetypes.NewKVStoreKeys(exported.StoreKey, mock.StoreKey),
		logger:  log.NewNopLogger(),
		headers: make(map[int64]cmtproto.Header),
	}

	for _, key := range app.keys {
		app.cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	require.NoError(tb, app.cms.LoadLatestVersion())

	app.ibcKeeper = ibckeeper.NewKeeper(
		runtime.NewKVStoreService(app.keys[exported.StoreKey]),
		ibcmock.NewConsensusHost(app),
	)
	app.ibcKeeper.ClientKeeper.AddRoute(ibcmock.ModuleName, ibcmock.NewLightClientModule())

	app.MockModule = mock.NewIBCModule(runtime.NewKVStoreService(app.keys[mock.StoreKey]), mock.NewIBCApp(mock.PortID))

	router := porttypes.NewRouter()
	router.AddRoute(mock.ModuleName, app.MockModule)
	app.ibcKeeper.SetRouter(router)

	genesisState := types.DefaultGenesisState()
	genesisState.ClientGenesis.Params.AllowedClients = []string{ibcmock.ModuleName}

	ctx := app.NewContext(cmtproto.Header{ChainID: chainID, Height: 1})
	require.NoError(tb, ibc.InitGenesis(ctx, app.ibcKeeper, genesisState))

	return app
}

// GetIBCKeeper returns the ibc keeper of the application.
func (app *TestingApp) GetIBCKeeper() *ibckeeper.Keeper {
	return app.ibcKeeper
}

// GetKey returns the store key registered under the given name.
func (app *TestingApp) GetKey(storeKey string) *storetypes.KVStoreKey {
	return app.keys[storeKey]
}

// NewContext returns a context writing directly to the uncommitted state of
// the block described by header.
func (app *TestingApp) NewContext(header cmtproto.Header) sdk.Context {
	return sdk.NewContext(app.cms, header, false, app.logger)
}

// Commit persists the pending writes as a new version of the multistore and
// records header with the resulting app hash. The recorded header is returned.
func (app *TestingApp) Commit(header cmtproto.Header) cmtproto.Header {
	commitID := app.cms.Commit()
	if commitID.Version != header.Height {
		panic(fmt.Errorf("committed version %d does not match block height %d", commitID.Version, header.Height))
	}

	header.AppHash = commitID.Hash
	app.headers[header.Height] = header

	return header
}

// LastBlockHeight returns the height of the latest committed block.
func (app *TestingApp) LastBlockHeight() int64 {
	return app.cms.LastCommitID().Version
}

// GetHistoricalHeader implements the 00-mock HistoryKeeper interface.
func (app *TestingApp) GetHistoricalHeader(_ sdk.Context, height int64) (cmtproto.Header, bool) {
	header, found := app.headers[height]
	return header, found
}

// Query performs a store query against the committed state.
func (app *TestingApp) Query(req *storetypes.RequestQuery) (*storetypes.ResponseQuery, error) {
	return app.cms.Query(req)
}
