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

// HeaderTypeURL is the type url of the mock Header.
const HeaderTypeURL = "/ibc.lightclients.mock.v1.Header"

var _ exported.ClientMessage = (*Header)(nil)

// Header carries the height, block time and commitment root of a block of
// the counterparty chain.
type Header struct {
	Height clienttypes.Height
	// timestamp in nanoseconds since the unix epoch
	Timestamp uint64
	Root      []byte
}

// NewHeader creates a new Header instance.
func NewHeader(height clienttypes.Height, timestamp time.Time, root []byte) *Header {
	return &Header{
		Height:    height,
		Timestamp: uint64(timestamp.UnixNano()),
		Root:      root,
	}
}

// ClientType defines that the Header is a mock consensus algorithm
func (Header) ClientType() string {
	return ModuleName
}

// TypeURL returns the type url of the header.
func (Header) TypeURL() string {
	return HeaderTypeURL
}

// ConsensusState returns the consensus state associated with the header
func (h Header) ConsensusState() *ConsensusState {
	return &ConsensusState{
		Timestamp: h.Timestamp,
		Root:      commitmenttypes.NewMerkleRoot(h.Root),
	}
}

// ValidateBasic calls the header ValidateBasic function and checks
// that the height and timestamp are set.
func (h Header) ValidateBasic() error {
	if h.Height.RevisionHeight == 0 {
		return errorsmod.Wrap(ErrInvalidHeaderHeight, "header revision height cannot be zero")
	}
	if h.Timestamp == 0 {
		return errorsmod.Wrap(ErrInvalidTimestamp, "header timestamp cannot be zero")
	}
	if len(h.Root) == 0 {
		return errorsmod.Wrap(ErrInvalidHeader, "header root cannot be empty")
	}
	return nil
}

// conflicts returns true if both headers are for the same height but commit
// to different blocks.
func (h Header) conflicts(other Header) bool {
	return h.Height.EQ(other.Height) && (h.Timestamp != other.Timestamp || !bytes.Equal(h.Root, other.Root))
}

// Marshal encodes the header as ibc.lightclients.mock.v1.Header.
func (h Header) Marshal() ([]byte, error) {
	return encoding.NewEncoder().
		Message(1, h.Height).
		Uint64(2, h.Timestamp).
		Bytes(3, h.Root).
		Finish()
}

// Unmarshal decodes an ibc.lightclients.mock.v1.Header.
func (h *Header) Unmarshal(bz []byte) error {
	*h = Header{}
	return encoding.Range(bz, func(f encoding.Field) (err error) {
		switch f.Num {
		case 1:
			err = f.Into(&h.Height)
		case 2:
			h.Timestamp, err = f.AsUint64()
		case 3:
			h.Root, err = f.AsBytes()
		}
		return err
	})
}
