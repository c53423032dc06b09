package types

import (
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ibc-core/modules/core/exported"
)

// ConsensusHost defines an interface which encapsulates methods required to
// introspect the host chain's own consensus during the connection handshake.
type ConsensusHost interface {
	// GetSelfConsensusState returns the encoded consensus state of the host
	// chain at the given height, in the form a counterparty light client
	// tracking this chain would have stored it.
	GetSelfConsensusState(ctx sdk.Context, height exported.Height) ([]byte, error)

	// ValidateSelfClient validates the client state a counterparty uses to
	// track this chain.
	ValidateSelfClient(ctx sdk.Context, clientState *codectypes.Any) error
}
