package mock

import (
	"bytes"
	"time"

	errorsmod "cosmossdk.io/errors"

	"github.com/cosmos/ibc-core/internal/encoding"
	clienttypes "github.com/cosmos/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/cosmos/ibc-core/modules/core/23-commitment/types"
	"github.com/cosmos/ibc-core/modules/core/exported"
)

// ConsensusStateTypeURL is the type url of the mock ConsensusState.
const ConsensusStateTypeURL = "/ibc.lightclients.mock.v1.ConsensusState"

// ConsensusState defines the consensus state of the counterparty at a height:
// the block timestamp and the commitment root of its store.
type ConsensusState struct {
	// timestamp in nanoseconds since the unix epoch
	Timestamp uint64
	Root      commitmenttypes.MerkleRoot
}

// NewConsensusState creates a new ConsensusState instance.
func NewConsensusState(timestamp time.Time, root commitmenttypes.MerkleRoot) *ConsensusState {
	return &ConsensusState{
		Timestamp: uint64(timestamp.UnixNano()),
		Root:      root,
	}
}

// ClientType returns the mock client type.
func (ConsensusState) ClientType() string {
	return ModuleName
}

// TypeURL returns the type url of the consensus state.
func (ConsensusState) TypeURL() string {
	return ConsensusStateTypeURL
}

// GetRoot returns the commitment Root for the specific
func (cs ConsensusState) GetRoot() exported.Root {
	return cs.Root
}

// GetTimestamp returns block time in nanoseconds of the header that created consensus state
func (cs ConsensusState) GetTimestamp() uint64 {
	return cs.Timestamp
}

// GetTime returns the block time of the header that created consensus state.
func (cs ConsensusState) GetTime() time.Time {
	return time.Unix(0, int64(cs.Timestamp)).UTC()
}

// ValidateBasic defines a basic validation for the mock consensus state.
func (cs ConsensusState) ValidateBasic() error {
	if cs.Root.Empty() {
		return errorsmod.Wrap(clienttypes.ErrInvalidConsensus, "root cannot be empty")
	}
	if cs.Timestamp == 0 {
		return errorsmod.Wrap(clienttypes.ErrInvalidConsensus, "timestamp cannot be zero Unix time")
	}
	return nil
}

// Marshal encodes the consensus state as ibc.lightclients.mock.v1.ConsensusState.
func (cs ConsensusState) Marshal() ([]byte, error) {
	return encoding.NewEncoder().
		Uint64(1, cs.Timestamp).
		Message(2, cs.Root).
		Finish()
}

// Unmarshal decodes an ibc.lightclients.mock.v1.ConsensusState.
func (cs *ConsensusState) Unmarshal(bz []byte) error {
	*cs = ConsensusState{}
	return encoding.Range(bz, func(f encoding.Field) (err error) {
		switch f.Num {
		case 1:
			cs.Timestamp, err = f.AsUint64()
		case 2:
			err = f.Into(&cs.Root)
		}
		return err
	})
}

// equal returns true if both consensus states commit to the same block.
func (cs ConsensusState) equal(other *ConsensusState) bool {
	return cs.Timestamp == other.Timestamp && bytes.Equal(cs.Root.Hash, other.Root.Hash)
}
