package mock

import (
	errorsmod "cosmossdk.io/errors"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"

	clienttypes "github.com/cosmos/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/cosmos/ibc-core/modules/core/23-commitment/types"
	ibcerrors "github.com/cosmos/ibc-core/modules/core/errors"
	"github.com/cosmos/ibc-core/modules/core/exported"
)

var _ clienttypes.ConsensusHost = (*ConsensusHost)(nil)

// HistoryKeeper defines the expected interface providing the committed block
// headers of the host chain.
type HistoryKeeper interface {
	// GetHistoricalHeader returns the header committed at the given height.
	// The header app hash is the commitment root of the IBC store at that height.
	GetHistoricalHeader(ctx sdk.Context, height int64) (cmtproto.Header, bool)
}

// ConsensusHost implements the 02-client clienttypes.ConsensusHost interface
// for chains tracked by mock light clients.
type ConsensusHost struct {
	historyKeeper HistoryKeeper
}

// NewConsensusHost creates and returns a new ConsensusHost for chains tracked by mock light clients.
func NewConsensusHost(historyKeeper HistoryKeeper) clienttypes.ConsensusHost {
	return &ConsensusHost{
		historyKeeper: historyKeeper,
	}
}

// GetSelfConsensusState implements the 02-client clienttypes.ConsensusHost interface.
// It returns the Any encoded mock consensus state a counterparty client stores for this chain.
func (c *ConsensusHost) GetSelfConsensusState(ctx sdk.Context, height exported.Height) ([]byte, error) {
	selfHeight, ok := height.(clienttypes.Height)
	if !ok {
		return nil, errorsmod.Wrapf(ibcerrors.ErrInvalidType, "expected %T, got %T", clienttypes.Height{}, height)
	}

	// check that height revision matches chainID revision
	revision := clienttypes.ParseChainID(ctx.ChainID())
	if revision != height.GetRevisionNumber() {
		return nil, errorsmod.Wrapf(clienttypes.ErrInvalidHeight, "chainID revision number does not match height revision number: expected %d, got %d", revision, height.GetRevisionNumber())
	}

	header, found := c.historyKeeper.GetHistoricalHeader(ctx, int64(selfHeight.RevisionHeight))
	if !found {
		return nil, errorsmod.Wrapf(ErrHistoricalInfoNotFound, "height %d", selfHeight.RevisionHeight)
	}

	consensusState := NewConsensusState(header.Time, commitmenttypes.NewMerkleRoot(header.GetAppHash()))
	return clienttypes.MarshalAny(consensusState)
}

// ValidateSelfClient implements the 02-client clienttypes.ConsensusHost interface.
func (*ConsensusHost) ValidateSelfClient(ctx sdk.Context, clientState *codectypes.Any) error {
	if clientState == nil {
		return errorsmod.Wrap(clienttypes.ErrInvalidClient, "client state cannot be nil")
	}

	if clientState.TypeUrl != ClientStateTypeURL {
		return errorsmod.Wrapf(clienttypes.ErrInvalidClient, "client must be a mock client, expected: %s, got: %s", ClientStateTypeURL, clientState.TypeUrl)
	}

	var mockClient ClientState
	if err := mockClient.Unmarshal(clientState.Value); err != nil {
		return errorsmod.Wrapf(clienttypes.ErrInvalidClient, "failed to decode mock client state: %v", err)
	}

	if !mockClient.FrozenHeight.IsZero() {
		return clienttypes.ErrClientFrozen
	}

	if ctx.ChainID() != mockClient.ChainId {
		return errorsmod.Wrapf(clienttypes.ErrInvalidClient, "invalid chain-id. expected: %s, got: %s",
			ctx.ChainID(), mockClient.ChainId)
	}

	revision := clienttypes.ParseChainID(ctx.ChainID())

	// client must be in the same revision as executing chain
	if mockClient.LatestHeight.RevisionNumber != revision {
		return errorsmod.Wrapf(clienttypes.ErrInvalidClient, "client is not in the same revision as the chain. expected revision: %d, got: %d",
			revision, mockClient.LatestHeight.RevisionNumber)
	}

	selfHeight := clienttypes.NewHeight(revision, uint64(ctx.BlockHeight()))
	if mockClient.LatestHeight.GTE(selfHeight) {
		return errorsmod.Wrapf(clienttypes.ErrInvalidClient, "client has LatestHeight %s greater than or equal to chain height %s",
			mockClient.LatestHeight, selfHeight)
	}

	if mockClient.TrustingPeriod <= 0 {
		return errorsmod.Wrap(clienttypes.ErrInvalidClient, "trusting period must be greater than zero")
	}

	return nil
}
