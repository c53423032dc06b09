package types

import (
	errorsmod "cosmossdk.io/errors"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ibc-core/internal/encoding"
	clienttypes "github.com/cosmos/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/cosmos/ibc-core/modules/core/23-commitment/types"
	host "github.com/cosmos/ibc-core/modules/core/24-host"
	ibcerrors "github.com/cosmos/ibc-core/modules/core/errors"
)

// Type URLs of the connection handshake messages.
const (
	TypeURLMsgConnectionOpenInit    = "/ibc.core.connection.v1.MsgConnectionOpenInit"
	TypeURLMsgConnectionOpenTry     = "/ibc.core.connection.v1.MsgConnectionOpenTry"
	TypeURLMsgConnectionOpenAck     = "/ibc.core.connection.v1.MsgConnectionOpenAck"
	TypeURLMsgConnectionOpenConfirm = "/ibc.core.connection.v1.MsgConnectionOpenConfirm"
)

// MsgConnectionOpenInit defines the msg sent by an account on Chain A to
// initialize a connection with Chain B.
type MsgConnectionOpenInit struct {
	ClientId     string
	Counterparty Counterparty
	Version      *Version
	DelayPeriod  uint64
	Signer       string
}

// MsgConnectionOpenInitResponse defines the Msg/ConnectionOpenInit response type.
type MsgConnectionOpenInitResponse struct{}

// MsgConnectionOpenTry defines a msg sent by a Relayer to try to open a
// connection on Chain B.
type MsgConnectionOpenTry struct {
	ClientId string
	// client state of this chain as tracked by the counterparty
	ClientState          *codectypes.Any
	Counterparty         Counterparty
	DelayPeriod          uint64
	CounterpartyVersions []*Version
	ProofHeight          clienttypes.Height
	// proof of the initialization the connection on Chain A: `UNINITIALIZED ->
	// INIT`
	ProofInit []byte
	// proof of client state included in message
	ProofClient []byte
	// proof of client consensus state
	ProofConsensus  []byte
	ConsensusHeight clienttypes.Height
	Signer          string
}

// MsgConnectionOpenTryResponse defines the Msg/ConnectionOpenTry response type.
type MsgConnectionOpenTryResponse struct{}

// MsgConnectionOpenAck defines a msg sent by a Relayer to Chain A to
// acknowledge the change of connection state to TRYOPEN on Chain B.
type MsgConnectionOpenAck struct {
	ConnectionId             string
	CounterpartyConnectionId string
	Version                  *Version
	ClientState              *codectypes.Any
	ProofHeight              clienttypes.Height
	// proof of the initialization the connection on Chain B: `UNINITIALIZED ->
	// TRYOPEN`
	ProofTry []byte
	// proof of client state included in message
	ProofClient []byte
	// proof of client consensus state
	ProofConsensus  []byte
	ConsensusHeight clienttypes.Height
	Signer          string
}

// MsgConnectionOpenAckResponse defines the Msg/ConnectionOpenAck response type.
type MsgConnectionOpenAckResponse struct{}

// MsgConnectionOpenConfirm defines a msg sent by a Relayer to Chain B to
// acknowledge the change of connection state to OPEN on Chain A.
type MsgConnectionOpenConfirm struct {
	ConnectionId string
	// proof for the change of the connection state on Chain A: `INIT -> OPEN`
	ProofAck    []byte
	ProofHeight clienttypes.Height
	Signer      string
}

// MsgConnectionOpenConfirmResponse defines the Msg/ConnectionOpenConfirm response type.
type MsgConnectionOpenConfirmResponse struct{}

// NewMsgConnectionOpenInit creates a new MsgConnectionOpenInit instance. It sets the
// counterparty connection identifier to be empty.
func NewMsgConnectionOpenInit(
	clientID, counterpartyClientID string,
	counterpartyPrefix commitmenttypes.MerklePrefix,
	version *Version, delayPeriod uint64, signer string,
) *MsgConnectionOpenInit {
	// counterparty must have the same delay period
	counterparty := NewCounterparty(counterpartyClientID, "", counterpartyPrefix)
	return &MsgConnectionOpenInit{
		ClientId:     clientID,
		Counterparty: counterparty,
		Version:      version,
		DelayPeriod:  delayPeriod,
		Signer:       signer,
	}
}

// ValidateBasic performs stateless checks on the message.
func (msg MsgConnectionOpenInit) ValidateBasic() error {
	if err := host.ClientIdentifierValidator(msg.ClientId); err != nil {
		return errorsmod.Wrap(err, "invalid client ID")
	}
	if msg.Counterparty.ConnectionId != "" {
		return errorsmod.Wrap(ErrInvalidCounterparty, "counterparty connection identifier must be empty")
	}

	// NOTE: Version can be nil on MsgConnectionOpenInit
	if msg.Version != nil {
		if err := ValidateVersion(msg.Version); err != nil {
			return errorsmod.Wrap(err, "basic validation of the provided version failed")
		}
	}
	if _, err := sdk.AccAddressFromBech32(msg.Signer); err != nil {
		return errorsmod.Wrapf(ibcerrors.ErrInvalidAddress, "string could not be parsed as address: %v", err)
	}
	return msg.Counterparty.ValidateBasic()
}

// Marshal encodes the message as ibc.core.connection.v1.MsgConnectionOpenInit.
func (msg MsgConnectionOpenInit) Marshal() ([]byte, error) {
	return encoding.NewEncoder().
		String(1, msg.ClientId).
		Message(2, msg.Counterparty).
		OptionalMessage(3, msg.Version, msg.Version != nil).
		Uint64(4, msg.DelayPeriod).
		String(5, msg.Signer).
		Finish()
}

// Unmarshal decodes an ibc.core.connection.v1.MsgConnectionOpenInit.
func (msg *MsgConnectionOpenInit) Unmarshal(bz []byte) error {
	*msg = MsgConnectionOpenInit{}
	return encoding.Range(bz, func(f encoding.Field) (err error) {
		switch f.Num {
		case 1:
			msg.ClientId, err = f.AsString()
		case 2:
			err = f.Into(&msg.Counterparty)
		case 3:
			msg.Version = &Version{}
			err = f.Into(msg.Version)
		case 4:
			msg.DelayPeriod, err = f.AsUint64()
		case 5:
			msg.Signer, err = f.AsString()
		}
		return err
	})
}

// NewMsgConnectionOpenTry creates a new MsgConnectionOpenTry instance
func NewMsgConnectionOpenTry(
	clientID, counterpartyConnectionID, counterpartyClientID string,
	counterpartyClient *codectypes.Any,
	counterpartyPrefix commitmenttypes.MerklePrefix,
	counterpartyVersions []*Version, delayPeriod uint64,
	initProof, clientProof, consensusProof []byte,
	proofHeight, consensusHeight clienttypes.Height, signer string,
) *MsgConnectionOpenTry {
	counterparty := NewCounterparty(counterpartyClientID, counterpartyConnectionID, counterpartyPrefix)
	return &MsgConnectionOpenTry{
		ClientId:             clientID,
		ClientState:          counterpartyClient,
		Counterparty:         counterparty,
		CounterpartyVersions: counterpartyVersions,
		DelayPeriod:          delayPeriod,
		ProofInit:            initProof,
		ProofClient:          clientProof,
		ProofConsensus:       consensusProof,
		ProofHeight:          proofHeight,
		ConsensusHeight:      consensusHeight,
		Signer:               signer,
	}
}

// ValidateBasic performs stateless checks on the message.
func (msg MsgConnectionOpenTry) ValidateBasic() error {
	if err := host.ClientIdentifierValidator(msg.ClientId); err != nil {
		return errorsmod.Wrap(err, "invalid client ID")
	}
	// counterparty validate basic allows empty counterparty connection identifiers
	if err := host.ConnectionIdentifierValidator(msg.Counterparty.ConnectionId); err != nil {
		return errorsmod.Wrap(err, "invalid counterparty connection ID")
	}
	if msg.ClientState == nil || msg.ClientState.TypeUrl == "" {
		return errorsmod.Wrap(clienttypes.ErrInvalidClient, "counterparty client is nil")
	}
	if len(msg.CounterpartyVersions) == 0 {
		return errorsmod.Wrap(ibcerrors.ErrInvalidVersion, "empty counterparty versions")
	}
	for i, version := range msg.CounterpartyVersions {
		if err := ValidateVersion(version); err != nil {
			return errorsmod.Wrapf(err, "basic validation failed on version with index %d", i)
		}
	}
	if len(msg.ProofInit) == 0 {
		return errorsmod.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty proof init")
	}
	if len(msg.ProofClient) == 0 {
		return errorsmod.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit empty proof client")
	}
	if len(msg.ProofConsensus) == 0 {
		return errorsmod.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty proof of consensus state")
	}
	if msg.ConsensusHeight.IsZero() {
		return errorsmod.Wrap(ibcerrors.ErrInvalidHeight, "consensus height must be non-zero")
	}
	if _, err := sdk.AccAddressFromBech32(msg.Signer); err != nil {
		return errorsmod.Wrapf(ibcerrors.ErrInvalidAddress, "string could not be parsed as address: %v", err)
	}
	return msg.Counterparty.ValidateBasic()
}

// Marshal encodes the message as ibc.core.connection.v1.MsgConnectionOpenTry.
func (msg MsgConnectionOpenTry) Marshal() ([]byte, error) {
	enc := encoding.NewEncoder().
		String(1, msg.ClientId).
		OptionalMessage(3, msg.ClientState, msg.ClientState != nil).
		Message(4, msg.Counterparty).
		Uint64(5, msg.DelayPeriod)
	for _, version := range msg.CounterpartyVersions {
		enc = enc.Message(6, version)
	}
	return enc.
		Message(7, msg.ProofHeight).
		Bytes(8, msg.ProofInit).
		Bytes(9, msg.ProofClient).
		Bytes(10, msg.ProofConsensus).
		Message(11, msg.ConsensusHeight).
		String(12, msg.Signer).
		Finish()
}

// Unmarshal decodes an ibc.core.connection.v1.MsgConnectionOpenTry.
func (msg *MsgConnectionOpenTry) Unmarshal(bz []byte) error {
	*msg = MsgConnectionOpenTry{}
	return encoding.Range(bz, func(f encoding.Field) (err error) {
		switch f.Num {
		case 1:
			msg.ClientId, err = f.AsString()
		case 3:
			msg.ClientState = &codectypes.Any{}
			err = f.Into(msg.ClientState)
		case 4:
			err = f.Into(&msg.Counterparty)
		case 5:
			msg.DelayPeriod, err = f.AsUint64()
		case 6:
			version := &Version{}
			if err = f.Into(version); err == nil {
				msg.CounterpartyVersions = append(msg.CounterpartyVersions, version)
			}
		case 7:
			err = f.Into(&msg.ProofHeight)
		case 8:
			msg.ProofInit, err = f.AsBytes()
		case 9:
			msg.ProofClient, err = f.AsBytes()
		case 10:
			msg.ProofConsensus, err = f.AsBytes()
		case 11:
			err = f.Into(&msg.ConsensusHeight)
		case 12:
			msg.Signer, err = f.AsString()
		}
		return err
	})
}

// NewMsgConnectionOpenAck creates a new MsgConnectionOpenAck instance
func NewMsgConnectionOpenAck(
	connectionID, counterpartyConnectionID string, counterpartyClient *codectypes.Any,
	tryProof, clientProof, consensusProof []byte,
	proofHeight, consensusHeight clienttypes.Height,
	version *Version,
	signer string,
) *MsgConnectionOpenAck {
	return &MsgConnectionOpenAck{
		ConnectionId:             connectionID,
		CounterpartyConnectionId: counterpartyConnectionID,
		ClientState:              counterpartyClient,
		ProofTry:                 tryProof,
		ProofClient:              clientProof,
		ProofConsensus:           consensusProof,
		ProofHeight:              proofHeight,
		ConsensusHeight:          consensusHeight,
		Version:                  version,
		Signer:                   signer,
	}
}

// ValidateBasic performs stateless checks on the message.
func (msg MsgConnectionOpenAck) ValidateBasic() error {
	if !IsValidConnectionID(msg.ConnectionId) {
		return ErrInvalidConnectionIdentifier
	}
	if err := host.ConnectionIdentifierValidator(msg.CounterpartyConnectionId); err != nil {
		return errorsmod.Wrap(err, "invalid counterparty connection ID")
	}
	if err := ValidateVersion(msg.Version); err != nil {
		return err
	}
	if msg.ClientState == nil || msg.ClientState.TypeUrl == "" {
		return errorsmod.Wrap(clienttypes.ErrInvalidClient, "counterparty client is nil")
	}
	if len(msg.ProofTry) == 0 {
		return errorsmod.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty proof try")
	}
	if len(msg.ProofClient) == 0 {
		return errorsmod.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit empty proof client")
	}
	if len(msg.ProofConsensus) == 0 {
		return errorsmod.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty proof of consensus state")
	}
	if msg.ConsensusHeight.IsZero() {
		return errorsmod.Wrap(ibcerrors.ErrInvalidHeight, "consensus height must be non-zero")
	}
	if _, err := sdk.AccAddressFromBech32(msg.Signer); err != nil {
		return errorsmod.Wrapf(ibcerrors.ErrInvalidAddress, "string could not be parsed as address: %v", err)
	}
	return nil
}

// Marshal encodes the message as ibc.core.connection.v1.MsgConnectionOpenAck.
func (msg MsgConnectionOpenAck) Marshal() ([]byte, error) {
	return encoding.NewEncoder().
		String(1, msg.ConnectionId).
		String(2, msg.CounterpartyConnectionId).
		OptionalMessage(3, msg.Version, msg.Version != nil).
		OptionalMessage(4, msg.ClientState, msg.ClientState != nil).
		Message(5, msg.ProofHeight).
		Bytes(6, msg.ProofTry).
		Bytes(7, msg.ProofClient).
		Bytes(8, msg.ProofConsensus).
		Message(9, msg.ConsensusHeight).
		String(10, msg.Signer).
		Finish()
}

// Unmarshal decodes an ibc.core.connection.v1.MsgConnectionOpenAck.
func (msg *MsgConnectionOpenAck) Unmarshal(bz []byte) error {
	*msg = MsgConnectionOpenAck{}
	return encoding.Range(bz, func(f encoding.Field) (err error) {
		switch f.Num {
		case 1:
			msg.ConnectionId, err = f.AsString()
		case 2:
			msg.CounterpartyConnectionId, err = f.AsString()
		case 3:
			msg.Version = &Version{}
			err = f.Into(msg.Version)
		case 4:
			msg.ClientState = &codectypes.Any{}
			err = f.Into(msg.ClientState)
		case 5:
			err = f.Into(&msg.ProofHeight)
		case 6:
			msg.ProofTry, err = f.AsBytes()
		case 7:
			msg.ProofClient, err = f.AsBytes()
		case 8:
			msg.ProofConsensus, err = f.AsBytes()
		case 9:
			err = f.Into(&msg.ConsensusHeight)
		case 10:
			msg.Signer, err = f.AsString()
		}
		return err
	})
}

// NewMsgConnectionOpenConfirm creates a new MsgConnectionOpenConfirm instance
func NewMsgConnectionOpenConfirm(
	connectionID string, ackProof []byte, proofHeight clienttypes.Height,
	signer string,
) *MsgConnectionOpenConfirm {
	return &MsgConnectionOpenConfirm{
		ConnectionId: connectionID,
		ProofAck:     ackProof,
		ProofHeight:  proofHeight,
		Signer:       signer,
	}
}

// ValidateBasic performs stateless checks on the message.
func (msg MsgConnectionOpenConfirm) ValidateBasic() error {
	if !IsValidConnectionID(msg.ConnectionId) {
		return ErrInvalidConnectionIdentifier
	}
	if len(msg.ProofAck) == 0 {
		return errorsmod.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty proof ack")
	}
	if _, err := sdk.AccAddressFromBech32(msg.Signer); err != nil {
		return errorsmod.Wrapf(ibcerrors.ErrInvalidAddress, "string could not be parsed as address: %v", err)
	}
	return nil
}

// Marshal encodes the message as ibc.core.connection.v1.MsgConnectionOpenConfirm.
func (msg MsgConnectionOpenConfirm) Marshal() ([]byte, error) {
	return encoding.NewEncoder().
		String(1, msg.ConnectionId).
		Bytes(2, msg.ProofAck).
		Message(3, msg.ProofHeight).
		String(4, msg.Signer).
		Finish()
}

// Unmarshal decodes an ibc.core.connection.v1.MsgConnectionOpenConfirm.
func (msg *MsgConnectionOpenConfirm) Unmarshal(bz []byte) error {
	*msg = MsgConnectionOpenConfirm{}
	return encoding.Range(bz, func(f encoding.Field) (err error) {
		switch f.Num {
		case 1:
			msg.ConnectionId, err = f.AsString()
		case 2:
			msg.ProofAck, err = f.AsBytes()
		case 3:
			err = f.Into(&msg.ProofHeight)
		case 4:
			msg.Signer, err = f.AsString()
		}
		return err
	})
}

// Marshal encodes the empty ibc.core.connection.v1.MsgConnectionOpenInitResponse.
func (MsgConnectionOpenInitResponse) Marshal() ([]byte, error) { return []byte{}, nil }

// Marshal encodes the empty ibc.core.connection.v1.MsgConnectionOpenTryResponse.
func (MsgConnectionOpenTryResponse) Marshal() ([]byte, error) { return []byte{}, nil }

// Marshal encodes the empty ibc.core.connection.v1.MsgConnectionOpenAckResponse.
func (MsgConnectionOpenAckResponse) Marshal() ([]byte, error) { return []byte{}, nil }

// Marshal encodes the empty ibc.core.connection.v1.MsgConnectionOpenConfirmResponse.
func (MsgConnectionOpenConfirmResponse) Marshal() ([]byte, error) { return []byte{}, nil }
