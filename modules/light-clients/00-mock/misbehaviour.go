package mock

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/cosmos/ibc-core/internal/encoding"
	"github.com/cosmos/ibc-core/modules/core/exported"
)

// MisbehaviourTypeURL is the type url of the mock Misbehaviour.
const MisbehaviourTypeURL = "/ibc.lightclients.mock.v1.Misbehaviour"

var _ exported.ClientMessage = (*Misbehaviour)(nil)

// Misbehaviour is a wrapper over two conflicting Headers
// that implements Misbehaviour interface expected by ICS-02
type Misbehaviour struct {
	Header1 Header
	Header2 Header
}

// NewMisbehaviour creates a new Misbehaviour instance.
func NewMisbehaviour(header1, header2 *Header) *Misbehaviour {
	return &Misbehaviour{
		Header1: *header1,
		Header2: *header2,
	}
}

// ClientType is the mock client type
func (Misbehaviour) ClientType() string {
	return ModuleName
}

// TypeURL returns the type url of the misbehaviour.
func (Misbehaviour) TypeURL() string {
	return MisbehaviourTypeURL
}

// ValidateBasic implements Misbehaviour interface
func (misbehaviour Misbehaviour) ValidateBasic() error {
	if err := misbehaviour.Header1.ValidateBasic(); err != nil {
		return errorsmod.Wrap(err, "header 1 failed validation")
	}
	if err := misbehaviour.Header2.ValidateBasic(); err != nil {
		return errorsmod.Wrap(err, "header 2 failed validation")
	}

	if !misbehaviour.Header1.conflicts(misbehaviour.Header2) {
		return errorsmod.Wrap(ErrInvalidMisbehaviour, "headers must be for the same height and commit to different blocks")
	}

	return nil
}

// Marshal encodes the misbehaviour as ibc.lightclients.mock.v1.Misbehaviour.
func (misbehaviour Misbehaviour) Marshal() ([]byte, error) {
	return encoding.NewEncoder().
		Message(1, misbehaviour.Header1).
		Message(2, misbehaviour.Header2).
		Finish()
}

// Unmarshal decodes an ibc.lightclients.mock.v1.Misbehaviour.
func (misbehaviour *Misbehaviour) Unmarshal(bz []byte) error {
	*misbehaviour = Misbehaviour{}
	return encoding.Range(bz, func(f encoding.Field) error {
		switch f.Num {
		case 1:
			return f.Into(&misbehaviour.Header1)
		case 2:
			return f.Into(&misbehaviour.Header2)
		}
		return nil
	})
}
