package types

import (
	errorsmod "cosmossdk.io/errors"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"

	"github.com/cosmos/ibc-core/internal/encoding"
	ibcerrors "github.com/cosmos/ibc-core/modules/core/errors"
)

// TypedMessage is a message that knows its own protobuf type url. Client
// states, consensus states and client messages of light client modules
// implement it so they can be packed into Any.
type TypedMessage interface {
	encoding.Marshaler
	TypeURL() string
}

// PackAny constructs a new Any packed with the given message value.
func PackAny(msg TypedMessage) (*codectypes.Any, error) {
	if msg == nil {
		return nil, errorsmod.Wrap(ibcerrors.ErrPackAny, "cannot pack nil message")
	}

	bz, err := msg.Marshal()
	if err != nil {
		return nil, errorsmod.Wrapf(ibcerrors.ErrPackAny, "failed to marshal %s: %v", msg.TypeURL(), err)
	}

	return &codectypes.Any{
		TypeUrl: msg.TypeURL(),
		Value:   bz,
	}, nil
}

// MustPackAny calls PackAny and panics on error.
func MustPackAny(msg TypedMessage) *codectypes.Any {
	anyMsg, err := PackAny(msg)
	if err != nil {
		panic(err)
	}

	return anyMsg
}

// MarshalAny packs the message into an Any and returns the encoded Any. This
// is the representation light clients store and the one proofs commit to.
func MarshalAny(msg TypedMessage) ([]byte, error) {
	anyMsg, err := PackAny(msg)
	if err != nil {
		return nil, err
	}

	return anyMsg.Marshal()
}

// UnmarshalAny decodes an encoded Any and checks its type url before decoding
// the value into msg.
func UnmarshalAny(bz []byte, typeURL string, msg encoding.Unmarshaler) error {
	var anyMsg codectypes.Any
	if err := anyMsg.Unmarshal(bz); err != nil {
		return errorsmod.Wrapf(ibcerrors.ErrUnpackAny, "failed to decode Any: %v", err)
	}

	if anyMsg.TypeUrl != typeURL {
		return errorsmod.Wrapf(ibcerrors.ErrInvalidType, "expected type url %s, got %s", typeURL, anyMsg.TypeUrl)
	}

	if err := msg.Unmarshal(anyMsg.Value); err != nil {
		return errorsmod.Wrapf(ibcerrors.ErrUnpackAny, "failed to decode %s: %v", typeURL, err)
	}

	return nil
}
