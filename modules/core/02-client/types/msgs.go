package types

import (
	errorsmod "cosmossdk.io/errors"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ibc-core/internal/encoding"
	host "github.com/cosmos/ibc-core/modules/core/24-host"
	ibcerrors "github.com/cosmos/ibc-core/modules/core/errors"
)

// Type URLs of the client messages routed by the core dispatcher.
const (
	TypeURLMsgCreateClient = "/ibc.core.client.v1.MsgCreateClient"
	TypeURLMsgUpdateClient = "/ibc.core.client.v1.MsgUpdateClient"
)

// MsgCreateClient defines a message to create an IBC client
type MsgCreateClient struct {
	// light client state
	ClientState *codectypes.Any
	// consensus state associated with the client that corresponds to a given
	// height.
	ConsensusState *codectypes.Any
	// signer address
	Signer string
}

// MsgCreateClientResponse defines the Msg/CreateClient response type.
type MsgCreateClientResponse struct {
	ClientId string
}

// MsgUpdateClient defines an sdk.Msg to update a IBC client state using
// the given client message.
type MsgUpdateClient struct {
	// client unique identifier
	ClientId string
	// client message to update the light client
	ClientMessage *codectypes.Any
	// signer address
	Signer string
}

// MsgUpdateClientResponse defines the Msg/UpdateClient response type.
type MsgUpdateClientResponse struct{}

// NewMsgCreateClient creates a new MsgCreateClient instance
func NewMsgCreateClient(clientState, consensusState *codectypes.Any, signer string) *MsgCreateClient {
	return &MsgCreateClient{
		ClientState:    clientState,
		ConsensusState: consensusState,
		Signer:         signer,
	}
}

// ValidateBasic performs stateless checks on the message. Validation of the
// client and consensus state contents is left to the light client module.
func (msg MsgCreateClient) ValidateBasic() error {
	_, err := sdk.AccAddressFromBech32(msg.Signer)
	if err != nil {
		return errorsmod.Wrapf(ibcerrors.ErrInvalidAddress, "string could not be parsed as address: %v", err)
	}
	if msg.ClientState == nil || msg.ClientState.TypeUrl == "" {
		return errorsmod.Wrap(ErrInvalidClient, "client state cannot be empty")
	}
	if msg.ConsensusState == nil || msg.ConsensusState.TypeUrl == "" {
		return errorsmod.Wrap(ErrInvalidConsensus, "consensus state cannot be empty")
	}
	return nil
}

// Marshal encodes the message as ibc.core.client.v1.MsgCreateClient.
func (msg MsgCreateClient) Marshal() ([]byte, error) {
	return encoding.NewEncoder().
		OptionalMessage(1, msg.ClientState, msg.ClientState != nil).
		OptionalMessage(2, msg.ConsensusState, msg.ConsensusState != nil).
		String(3, msg.Signer).
		Finish()
}

// Unmarshal decodes an ibc.core.client.v1.MsgCreateClient.
func (msg *MsgCreateClient) Unmarshal(bz []byte) error {
	*msg = MsgCreateClient{}
	return encoding.Range(bz, func(f encoding.Field) (err error) {
		switch f.Num {
		case 1:
			msg.ClientState = &codectypes.Any{}
			err = f.Into(msg.ClientState)
		case 2:
			msg.ConsensusState = &codectypes.Any{}
			err = f.Into(msg.ConsensusState)
		case 3:
			msg.Signer, err = f.AsString()
		}
		return err
	})
}

// Marshal encodes the response as ibc.core.client.v1.MsgCreateClientResponse.
func (res MsgCreateClientResponse) Marshal() ([]byte, error) {
	return encoding.NewEncoder().String(1, res.ClientId).Finish()
}

// NewMsgUpdateClient creates a new MsgUpdateClient instance
func NewMsgUpdateClient(id string, clientMsg *codectypes.Any, signer string) *MsgUpdateClient {
	return &MsgUpdateClient{
		ClientId:      id,
		ClientMessage: clientMsg,
		Signer:        signer,
	}
}

// ValidateBasic performs stateless checks on the message.
func (msg MsgUpdateClient) ValidateBasic() error {
	_, err := sdk.AccAddressFromBech32(msg.Signer)
	if err != nil {
		return errorsmod.Wrapf(ibcerrors.ErrInvalidAddress, "string could not be parsed as address: %v", err)
	}
	if msg.ClientMessage == nil || msg.ClientMessage.TypeUrl == "" {
		return errorsmod.Wrap(ErrInvalidHeader, "client message cannot be empty")
	}
	return host.ClientIdentifierValidator(msg.ClientId)
}

// Marshal encodes the message as ibc.core.client.v1.MsgUpdateClient.
func (msg MsgUpdateClient) Marshal() ([]byte, error) {
	return encoding.NewEncoder().
		String(1, msg.ClientId).
		OptionalMessage(2, msg.ClientMessage, msg.ClientMessage != nil).
		String(3, msg.Signer).
		Finish()
}

// Unmarshal decodes an ibc.core.client.v1.MsgUpdateClient.
func (msg *MsgUpdateClient) Unmarshal(bz []byte) error {
	*msg = MsgUpdateClient{}
	return encoding.Range(bz, func(f encoding.Field) (err error) {
		switch f.Num {
		case 1:
			msg.ClientId, err = f.AsString()
		case 2:
			msg.ClientMessage = &codectypes.Any{}
			err = f.Into(msg.ClientMessage)
		case 3:
			msg.Signer, err = f.AsString()
		}
		return err
	})
}

// Marshal encodes the empty ibc.core.client.v1.MsgUpdateClientResponse.
func (MsgUpdateClientResponse) Marshal() ([]byte, error) {
	return []byte{}, nil
}
