package ibctesting

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	storetypes "cosmossdk.io/store/types"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	abci "github.com/cometbft/cometbft/abci/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"

	clienttypes "github.com/cosmos/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/cosmos/ibc-core/modules/core/23-commitment/types"
	host "github.com/cosmos/ibc-core/modules/core/24-host"
	"github.com/cosmos/ibc-core/modules/core/exported"
	"github.com/cosmos/ibc-core/modules/core/types"
	ibcmock "github.com/cosmos/ibc-core/modules/light-clients/00-mock"
)

// TestChain is a testing struct that wraps a TestingApp with the last committed
// header and the header of the block currently being built. It is the chain a
// counterparty 00-mock light client tracks: the consensus state of a height
// is the block time and the app hash committed at that height.
type TestChain struct {
	testing.TB

	Coordinator    *Coordinator
	App            *TestingApp
	ChainID        string
	LastHeader     cmtproto.Header // header for last block height committed
	ProposedHeader cmtproto.Header // proposed (uncommitted) header for current block height

	// SenderAccount signs and relays every message sent by the chain.
	SenderAccount sdk.AccAddress
}

// NewTestChain initializes a new test chain with a default of 1 committed
// block. The chain starts at the coordinator's current time.
func NewTestChain(tb testing.TB, coord *Coordinator, chainID string) *TestChain {
	tb.Helper()

	app := SetupTestingApp(tb, chainID)

	chain := &TestChain{
		TB:          tb,
		Coordinator: coord,
		App:         app,
		ChainID:     chainID,
		ProposedHeader: cmtproto.Header{
			ChainID: chainID,
			Height:  1,
			Time:    coord.CurrentTime.UTC(),
		},
		SenderAccount: sdk.AccAddress([]byte(RelayerAddress)),
	}

	coord.CommitBlock(chain)

	return chain
}

// GetContext returns the current context for the application.
func (chain *TestChain) GetContext() sdk.Context {
	return chain.App.NewContext(chain.ProposedHeader)
}

// Signer returns the bech32 address of the sender account.
func (chain *TestChain) Signer() string {
	return chain.SenderAccount.String()
}

// QueryProof performs an abci query with the given key and returns the proto encoded merkle proof
// for the query and the height at which the proof will succeed on a 00-mock light client.
func (chain *TestChain) QueryProof(key []byte) ([]byte, clienttypes.Height) {
	return chain.QueryProofAtHeight(key, chain.LastHeader.Height)
}

// QueryProofAtHeight performs an abci query with the given key and returns the proto encoded merkle proof
// for the query and the height at which the proof will succeed on a 00-mock light client. The
// commitment root of a height commits to the state written up to and including that height.
func (chain *TestChain) QueryProofAtHeight(key []byte, height int64) ([]byte, clienttypes.Height) {
	res, err := chain.App.Query(&storetypes.RequestQuery{
		Path:   fmt.Sprintf("/%s/key", exported.StoreKey),
		Height: height,
		Data:   key,
		Prove:  true,
	})
	require.NoError(chain.TB, err)

	merkleProof, err := commitmenttypes.ConvertProofs(res.ProofOps)
	require.NoError(chain.TB, err)

	proof, err := merkleProof.Marshal()
	require.NoError(chain.TB, err)

	revision := clienttypes.ParseChainID(chain.ChainID)

	return proof, clienttypes.NewHeight(revision, uint64(res.Height))
}

// NextBlock commits the current block and sets up the header of the next one.
// The committed header, carrying the app hash, becomes LastHeader.
func (chain *TestChain) NextBlock() {
	chain.LastHeader = chain.App.Commit(chain.ProposedHeader)

	chain.ProposedHeader = cmtproto.Header{
		ChainID: chain.ChainID,
		Height:  chain.App.LastBlockHeight() + 1,
		Time:    chain.ProposedHeader.Time,
	}
}

// SendMsgs delivers the messages as a single transaction, then commits the
// block and increments the global time. A failed transaction leaves the state
// untouched and no block is committed. The events of the transaction are
// returned.
func (chain *TestChain) SendMsgs(msgs ...types.Msg) ([]abci.Event, error) {
	// ensure the chain has the latest time
	chain.Coordinator.UpdateTimeForChain(chain)

	anyMsgs := make([]*codectypes.Any, len(msgs))
	for i, msg := range msgs {
		anyMsg, err := types.PackMsg(msg)
		require.NoError(chain.TB, err)
		anyMsgs[i] = anyMsg
	}

	ctx := chain.GetContext()
	if _, err := chain.App.GetIBCKeeper().DeliverMsgs(ctx, anyMsgs); err != nil {
		return nil, err
	}

	chain.Coordinator.CommitBlock(chain)

	return ctx.EventManager().ABCIEvents(), nil
}

// sendMsgs delivers a transaction and discards its events.
func (chain *TestChain) sendMsgs(msgs ...types.Msg) error {
	_, err := chain.SendMsgs(msgs...)
	return err
}

// GetClientState retrieves the client state for the provided clientID as the
// Any stored by its light client module. The client is expected to exist
// otherwise testing will fail.
func (chain *TestChain) GetClientState(clientID string) *codectypes.Any {
	bz := chain.App.GetIBCKeeper().ClientKeeper.ClientStore(chain.GetContext(), clientID).Get(host.ClientStateKey())
	require.NotEmpty(chain.TB, bz, "client state for %s not found", clientID)

	var clientState codectypes.Any
	require.NoError(chain.TB, clientState.Unmarshal(bz))

	return &clientState
}

// GetMockClientState returns the decoded 00-mock client state of clientID.
func (chain *TestChain) GetMockClientState(clientID string) *ibcmock.ClientState {
	var clientState ibcmock.ClientState
	require.NoError(chain.TB, clientState.Unmarshal(chain.GetClientState(clientID).Value))

	return &clientState
}

// GetConsensusState retrieves the 00-mock consensus state stored for clientID at height.
func (chain *TestChain) GetConsensusState(clientID string, height exported.Height) (*ibcmock.ConsensusState, bool) {
	return ibcmock.GetConsensusState(chain.App.GetIBCKeeper().ClientKeeper.ClientStore(chain.GetContext(), clientID), height)
}

// GetSelfHeight returns the height of the last committed block.
func (chain *TestChain) GetSelfHeight() clienttypes.Height {
	return clienttypes.NewHeight(clienttypes.ParseChainID(chain.ChainID), uint64(chain.LastHeader.Height))
}

// GetTimeoutHeight is a convenience function which returns a IBC packet timeout height
// to be used for testing. It returns the current IBC height + 100 blocks
func (chain *TestChain) GetTimeoutHeight() clienttypes.Height {
	return clienttypes.NewHeight(clienttypes.ParseChainID(chain.ChainID), uint64(chain.GetContext().BlockHeight())+100)
}

// GetTimeoutTimestamp is a convenience function which returns a IBC packet timeout timestamp
// to be used for testing. It returns the current block timestamp + default timestamp delta (1 hour).
func (chain *TestChain) GetTimeoutTimestamp() uint64 {
	return uint64(chain.GetContext().BlockTime().UnixNano()) + uint64(time.Hour.Nanoseconds())
}

// CurrentMockHeader returns the 00-mock header a counterparty client is
// updated with to track the last committed block of the chain.
func (chain *TestChain) CurrentMockHeader() *ibcmock.Header {
	return ibcmock.NewHeader(chain.GetSelfHeight(), chain.LastHeader.Time, chain.LastHeader.AppHash)
}

// GetPrefix returns the prefix for used by a chain in connection creation
func (chain *TestChain) GetPrefix() commitmenttypes.MerklePrefix {
	return commitmenttypes.NewMerklePrefix(chain.App.GetIBCKeeper().ConnectionKeeper.GetCommitmentPrefix().Bytes())
}
