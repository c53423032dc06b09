package types

import (
	"encoding/json"
	"fmt"
	"strings"

	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ibc-core/modules/core/exported"
)

const (
	// ackErrorString defines a string constant included in error acknowledgements
	// NOTE: Changing this const is state machine breaking as acknowledgements are written into state.
	ackErrorString = "error handling packet: see events for details"
)

var _ exported.Acknowledgement = Acknowledgement{}

// Acknowledgement is the recommended acknowledgement format to be used by
// app-specific protocols. Exactly one of Result or Error is set.
type Acknowledgement struct {
	Result []byte `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// NewResultAcknowledgement returns a new instance of Acknowledgement using an Acknowledgement_Result
// type in the Response field.
func NewResultAcknowledgement(result []byte) Acknowledgement {
	return Acknowledgement{Result: result}
}

// NewErrorAcknowledgement returns a new instance of Acknowledgement using an Acknowledgement_Error
// type in the Response field.
// NOTE: Acknowledgements are written into state and thus, changes made to error strings included in packet acknowledgements
// risk an app hash divergence when nodes in a network are running different patch versions of software.
func NewErrorAcknowledgement(err error) Acknowledgement {
	// the ABCI code is included in the abcitypes.ResponseDeliverTx hash
	// constructed in Tendermint and is therefore deterministic
	_, code, _ := errorsmod.ABCIInfo(err, false) // discard non-determinstic codespace and log values

	return Acknowledgement{
		Error: fmt.Sprintf("ABCI code: %d: %s", code, ackErrorString),
	}
}

// ValidateBasic performs a basic validation of the acknowledgement
func (ack Acknowledgement) ValidateBasic() error {
	switch {
	case ack.Result != nil && ack.Error != "":
		return errorsmod.Wrap(ErrInvalidAcknowledgement, "acknowledgement cannot contain both a result and an error")
	case ack.Result != nil:
		if len(ack.Result) == 0 {
			return errorsmod.Wrap(ErrInvalidAcknowledgement, "acknowledgement result cannot be empty")
		}
	case ack.Error != "":
		if strings.TrimSpace(ack.Error) == "" {
			return errorsmod.Wrap(ErrInvalidAcknowledgement, "acknowledgement error cannot be empty")
		}
	default:
		return errorsmod.Wrap(ErrInvalidAcknowledgement, "acknowledgement must contain a result or an error")
	}
	return nil
}

// Success implements the Acknowledgement interface. The acknowledgement is
// considered successful if it is a ResultAcknowledgement. Otherwise it is
// considered a failed acknowledgement.
func (ack Acknowledgement) Success() bool {
	return ack.Result != nil && ack.Error == ""
}

// Acknowledgement implements the Acknowledgement interface. It returns the
// acknowledgement serialised using JSON.
func (ack Acknowledgement) Acknowledgement() []byte {
	bz, err := json.Marshal(ack)
	if err != nil {
		panic(err)
	}
	return sdk.MustSortJSON(bz)
}

// UnmarshalAcknowledgement decodes acknowledgement bytes produced by
// Acknowledgement.
func UnmarshalAcknowledgement(bz []byte) (Acknowledgement, error) {
	var ack Acknowledgement
	if err := json.Unmarshal(bz, &ack); err != nil {
		return Acknowledgement{}, errorsmod.Wrap(ErrInvalidAcknowledgement, err.Error())
	}
	return ack, nil
}
