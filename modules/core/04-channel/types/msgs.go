package types

import (
	"encoding/base64"
	"fmt"

	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ibc-core/internal/encoding"
	clienttypes "github.com/cosmos/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/cosmos/ibc-core/modules/core/23-commitment/types"
	host "github.com/cosmos/ibc-core/modules/core/24-host"
	ibcerrors "github.com/cosmos/ibc-core/modules/core/errors"
)

// Type URLs of the channel handshake and packet messages.
const (
	TypeURLMsgChannelOpenInit     = "/ibc.core.channel.v1.MsgChannelOpenInit"
	TypeURLMsgChannelOpenTry      = "/ibc.core.channel.v1.MsgChannelOpenTry"
	TypeURLMsgChannelOpenAck      = "/ibc.core.channel.v1.MsgChannelOpenAck"
	TypeURLMsgChannelOpenConfirm  = "/ibc.core.channel.v1.MsgChannelOpenConfirm"
	TypeURLMsgChannelCloseInit    = "/ibc.core.channel.v1.MsgChannelCloseInit"
	TypeURLMsgChannelCloseConfirm = "/ibc.core.channel.v1.MsgChannelCloseConfirm"
	TypeURLMsgRecvPacket          = "/ibc.core.channel.v1.MsgRecvPacket"
	TypeURLMsgAcknowledgement     = "/ibc.core.channel.v1.MsgAcknowledgement"
	TypeURLMsgTimeout             = "/ibc.core.channel.v1.MsgTimeout"
	TypeURLMsgTimeoutOnClose      = "/ibc.core.channel.v1.MsgTimeoutOnClose"
)

// ResponseResultType defines the possible outcomes of the execution of a message
type ResponseResultType int32

const (
	// UNSPECIFIED is the default zero value enumeration
	UNSPECIFIED ResponseResultType = 0
	// NOOP means the message did not call the IBC application callbacks
	// and state was not updated
	NOOP ResponseResultType = 1
	// SUCCESS means the message was executed successfully
	SUCCESS ResponseResultType = 2
	// FAILURE means the message was executed unsuccessfully
	FAILURE ResponseResultType = 3
)

var responseResultTypeNames = map[ResponseResultType]string{
	UNSPECIFIED: "RESPONSE_RESULT_TYPE_UNSPECIFIED",
	NOOP:        "RESPONSE_RESULT_TYPE_NOOP",
	SUCCESS:     "RESPONSE_RESULT_TYPE_SUCCESS",
	FAILURE:     "RESPONSE_RESULT_TYPE_FAILURE",
}

// String implements the Stringer interface.
func (r ResponseResultType) String() string {
	if name, ok := responseResultTypeNames[r]; ok {
		return name
	}
	return fmt.Sprintf("%d", int32(r))
}

// MsgChannelOpenInit defines an sdk.Msg to initialize a channel handshake. It
// is called by a relayer on Chain A.
type MsgChannelOpenInit struct {
	PortId  string
	Channel Channel
	Signer  string
}

// MsgChannelOpenInitResponse defines the Msg/ChannelOpenInit response type.
type MsgChannelOpenInitResponse struct {
	ChannelId string
	Version   string
}

// MsgChannelOpenTry defines a msg sent by a Relayer to try to open a channel
// on Chain B.
type MsgChannelOpenTry struct {
	PortId              string
	Channel             Channel
	CounterpartyVersion string
	ProofInit           []byte
	ProofHeight         clienttypes.Height
	Signer              string
}

// MsgChannelOpenTryResponse defines the Msg/ChannelOpenTry response type.
type MsgChannelOpenTryResponse struct {
	Version   string
	ChannelId string
}

// MsgChannelOpenAck defines a msg sent by a Relayer to Chain A to acknowledge
// the change of channel state to TRYOPEN on Chain B.
type MsgChannelOpenAck struct {
	PortId                string
	ChannelId             string
	CounterpartyChannelId string
	CounterpartyVersion   string
	ProofTry              []byte
	ProofHeight           clienttypes.Height
	Signer                string
}

// MsgChannelOpenAckResponse defines the Msg/ChannelOpenAck response type.
type MsgChannelOpenAckResponse struct{}

// MsgChannelOpenConfirm defines a msg sent by a Relayer to Chain B to
// acknowledge the change of channel state to OPEN on Chain A.
type MsgChannelOpenConfirm struct {
	PortId      string
	ChannelId   string
	ProofAck    []byte
	ProofHeight clienttypes.Height
	Signer      string
}

// MsgChannelOpenConfirmResponse defines the Msg/ChannelOpenConfirm response type.
type MsgChannelOpenConfirmResponse struct{}

// MsgChannelCloseInit defines a msg sent by a Relayer to Chain A
// to close a channel with Chain B.
type MsgChannelCloseInit struct {
	PortId    string
	ChannelId string
	Signer    string
}

// MsgChannelCloseInitResponse defines the Msg/ChannelCloseInit response type.
type MsgChannelCloseInitResponse struct{}

// MsgChannelCloseConfirm defines a msg sent by a Relayer to Chain B
// to acknowledge the change of channel state to CLOSED on Chain A.
type MsgChannelCloseConfirm struct {
	PortId      string
	ChannelId   string
	ProofInit   []byte
	ProofHeight clienttypes.Height
	Signer      string
}

// MsgChannelCloseConfirmResponse defines the Msg/ChannelCloseConfirm response type.
type MsgChannelCloseConfirmResponse struct{}

// MsgRecvPacket receives incoming IBC packet
type MsgRecvPacket struct {
	Packet          Packet
	ProofCommitment []byte
	ProofHeight     clienttypes.Height
	Signer          string
}

// MsgRecvPacketResponse defines the Msg/RecvPacket response type.
type MsgRecvPacketResponse struct {
	Result ResponseResultType
}

// MsgTimeout receives timed-out packet
type MsgTimeout struct {
	Packet           Packet
	ProofUnreceived  []byte
	ProofHeight      clienttypes.Height
	NextSequenceRecv uint64
	Signer           string
}

// MsgTimeoutResponse defines the Msg/Timeout response type.
type MsgTimeoutResponse struct {
	Result ResponseResultType
}

// MsgTimeoutOnClose timed-out packet upon counterparty channel closure.
type MsgTimeoutOnClose struct {
	Packet           Packet
	ProofUnreceived  []byte
	ProofClose       []byte
	ProofHeight      clienttypes.Height
	NextSequenceRecv uint64
	Signer           string
}

// MsgTimeoutOnCloseResponse defines the Msg/TimeoutOnClose response type.
type MsgTimeoutOnCloseResponse struct {
	Result ResponseResultType
}

// MsgAcknowledgement receives incoming IBC acknowledgement
type MsgAcknowledgement struct {
	Packet          Packet
	Acknowledgement []byte
	ProofAcked      []byte
	ProofHeight     clienttypes.Height
	Signer          string
}

// MsgAcknowledgementResponse defines the Msg/Acknowledgement response type.
type MsgAcknowledgementResponse struct {
	Result ResponseResultType
}

// NewMsgChannelOpenInit creates a new MsgChannelOpenInit. It sets the counterparty channel
// identifier to be empty.
func NewMsgChannelOpenInit(
	portID, version string, channelOrder Order, connectionHops []string,
	counterpartyPortID string, signer string,
) *MsgChannelOpenInit {
	counterparty := NewCounterparty(counterpartyPortID, "")
	channel := NewChannel(INIT, channelOrder, counterparty, connectionHops, version)
	return &MsgChannelOpenInit{
		PortId:  portID,
		Channel: channel,
		Signer:  signer,
	}
}

// ValidateBasic performs stateless checks on the message. A counterparty
// channel identifier is tolerated here and discarded by the handler.
func (msg MsgChannelOpenInit) ValidateBasic() error {
	if err := host.PortIdentifierValidator(msg.PortId); err != nil {
		return errorsmod.Wrap(err, "invalid port ID")
	}
	if msg.Channel.State != INIT {
		return errorsmod.Wrapf(ErrInvalidChannelState,
			"channel state must be INIT in MsgChannelOpenInit. expected: %s, got: %s",
			INIT, msg.Channel.State,
		)
	}
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}

	// the counterparty channel ID is ignored on INIT and stored empty
	channel := msg.Channel
	channel.Counterparty.ChannelId = ""
	return channel.ValidateBasic()
}

// Marshal encodes the message as ibc.core.channel.v1.MsgChannelOpenInit.
func (msg MsgChannelOpenInit) Marshal() ([]byte, error) {
	return encoding.NewEncoder().
		String(1, msg.PortId).
		Message(2, msg.Channel).
		String(3, msg.Signer).
		Finish()
}

// Unmarshal decodes an ibc.core.channel.v1.MsgChannelOpenInit.
func (msg *MsgChannelOpenInit) Unmarshal(bz []byte) error {
	*msg = MsgChannelOpenInit{}
	return encoding.Range(bz, func(f encoding.Field) (err error) {
		switch f.Num {
		case 1:
			msg.PortId, err = f.AsString()
		case 2:
			err = f.Into(&msg.Channel)
		case 3:
			msg.Signer, err = f.AsString()
		}
		return err
	})
}

// Marshal encodes the response as ibc.core.channel.v1.MsgChannelOpenInitResponse.
func (res MsgChannelOpenInitResponse) Marshal() ([]byte, error) {
	return encoding.NewEncoder().
		String(1, res.ChannelId).
		String(2, res.Version).
		Finish()
}

// NewMsgChannelOpenTry creates a new MsgChannelOpenTry instance
func NewMsgChannelOpenTry(
	portID, version string, channelOrder Order, connectionHops []string,
	counterpartyPortID, counterpartyChannelID, counterpartyVersion string,
	initProof []byte, proofHeight clienttypes.Height, signer string,
) *MsgChannelOpenTry {
	counterparty := NewCounterparty(counterpartyPortID, counterpartyChannelID)
	channel := NewChannel(TRYOPEN, channelOrder, counterparty, connectionHops, version)
	return &MsgChannelOpenTry{
		PortId:              portID,
		Channel:             channel,
		CounterpartyVersion: counterpartyVersion,
		ProofInit:           initProof,
		ProofHeight:         proofHeight,
		Signer:              signer,
	}
}

// ValidateBasic performs stateless checks on the message.
func (msg MsgChannelOpenTry) ValidateBasic() error {
	if err := host.PortIdentifierValidator(msg.PortId); err != nil {
		return errorsmod.Wrap(err, "invalid port ID")
	}
	if len(msg.ProofInit) == 0 {
		return errorsmod.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty init proof")
	}
	if msg.Channel.State != TRYOPEN {
		return errorsmod.Wrapf(ErrInvalidChannelState,
			"channel state must be TRYOPEN in MsgChannelOpenTry. expected: %s, got: %s",
			TRYOPEN, msg.Channel.State,
		)
	}
	// counterparty validate basic allows empty counterparty channel identifiers
	if err := host.ChannelIdentifierValidator(msg.Channel.Counterparty.ChannelId); err != nil {
		return errorsmod.Wrap(err, "invalid counterparty channel ID")
	}
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}
	return msg.Channel.ValidateBasic()
}

// Marshal encodes the message as ibc.core.channel.v1.MsgChannelOpenTry.
func (msg MsgChannelOpenTry) Marshal() ([]byte, error) {
	return encoding.NewEncoder().
		String(1, msg.PortId).
		Message(3, msg.Channel).
		String(4, msg.CounterpartyVersion).
		Bytes(5, msg.ProofInit).
		Message(6, msg.ProofHeight).
		String(7, msg.Signer).
		Finish()
}

// Unmarshal decodes an ibc.core.channel.v1.MsgChannelOpenTry.
func (msg *MsgChannelOpenTry) Unmarshal(bz []byte) error {
	*msg = MsgChannelOpenTry{}
	return encoding.Range(bz, func(f encoding.Field) (err error) {
		switch f.Num {
		case 1:
			msg.PortId, err = f.AsString()
		case 3:
			err = f.Into(&msg.Channel)
		case 4:
			msg.CounterpartyVersion, err = f.AsString()
		case 5:
			msg.ProofInit, err = f.AsBytes()
		case 6:
			err = f.Into(&msg.ProofHeight)
		case 7:
			msg.Signer, err = f.AsString()
		}
		return err
	})
}

// Marshal encodes the response as ibc.core.channel.v1.MsgChannelOpenTryResponse.
func (res MsgChannelOpenTryResponse) Marshal() ([]byte, error) {
	return encoding.NewEncoder().
		String(1, res.Version).
		String(2, res.ChannelId).
		Finish()
}

// NewMsgChannelOpenAck creates a new MsgChannelOpenAck instance
func NewMsgChannelOpenAck(
	portID, channelID, counterpartyChannelID string, cpv string, tryProof []byte, proofHeight clienttypes.Height,
	signer string,
) *MsgChannelOpenAck {
	return &MsgChannelOpenAck{
		PortId:                portID,
		ChannelId:             channelID,
		CounterpartyChannelId: counterpartyChannelID,
		CounterpartyVersion:   cpv,
		ProofTry:              tryProof,
		ProofHeight:           proofHeight,
		Signer:                signer,
	}
}

// ValidateBasic performs stateless checks on the message.
func (msg MsgChannelOpenAck) ValidateBasic() error {
	if err := host.PortIdentifierValidator(msg.PortId); err != nil {
		return errorsmod.Wrap(err, "invalid port ID")
	}
	if !IsValidChannelID(msg.ChannelId) {
		return ErrInvalidChannelIdentifier
	}
	if err := host.ChannelIdentifierValidator(msg.CounterpartyChannelId); err != nil {
		return errorsmod.Wrap(err, "invalid counterparty channel ID")
	}
	if len(msg.ProofTry) == 0 {
		return errorsmod.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty try proof")
	}
	return validateSigner(msg.Signer)
}

// Marshal encodes the message as ibc.core.channel.v1.MsgChannelOpenAck.
func (msg MsgChannelOpenAck) Marshal() ([]byte, error) {
	return encoding.NewEncoder().
		String(1, msg.PortId).
		String(2, msg.ChannelId).
		String(3, msg.CounterpartyChannelId).
		String(4, msg.CounterpartyVersion).
		Bytes(5, msg.ProofTry).
		Message(6, msg.ProofHeight).
		String(7, msg.Signer).
		Finish()
}

// Unmarshal decodes an ibc.core.channel.v1.MsgChannelOpenAck.
func (msg *MsgChannelOpenAck) Unmarshal(bz []byte) error {
	*msg = MsgChannelOpenAck{}
	return encoding.Range(bz, func(f encoding.Field) (err error) {
		switch f.Num {
		case 1:
			msg.PortId, err = f.AsString()
		case 2:
			msg.ChannelId, err = f.AsString()
		case 3:
			msg.CounterpartyChannelId, err = f.AsString()
		case 4:
			msg.CounterpartyVersion, err = f.AsString()
		case 5:
			msg.ProofTry, err = f.AsBytes()
		case 6:
			err = f.Into(&msg.ProofHeight)
		case 7:
			msg.Signer, err = f.AsString()
		}
		return err
	})
}

// NewMsgChannelOpenConfirm creates a new MsgChannelOpenConfirm instance
func NewMsgChannelOpenConfirm(
	portID, channelID string, ackProof []byte, proofHeight clienttypes.Height,
	signer string,
) *MsgChannelOpenConfirm {
	return &MsgChannelOpenConfirm{
		PortId:      portID,
		ChannelId:   channelID,
		ProofAck:    ackProof,
		ProofHeight: proofHeight,
		Signer:      signer,
	}
}

// ValidateBasic performs stateless checks on the message.
func (msg MsgChannelOpenConfirm) ValidateBasic() error {
	if err := host.PortIdentifierValidator(msg.PortId); err != nil {
		return errorsmod.Wrap(err, "invalid port ID")
	}
	if !IsValidChannelID(msg.ChannelId) {
		return ErrInvalidChannelIdentifier
	}
	if len(msg.ProofAck) == 0 {
		return errorsmod.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty acknowledgement proof")
	}
	return validateSigner(msg.Signer)
}

// Marshal encodes the message as ibc.core.channel.v1.MsgChannelOpenConfirm.
func (msg MsgChannelOpenConfirm) Marshal() ([]byte, error) {
	return encoding.NewEncoder().
		String(1, msg.PortId).
		String(2, msg.ChannelId).
		Bytes(3, msg.ProofAck).
		Message(4, msg.ProofHeight).
		String(5, msg.Signer).
		Finish()
}

// Unmarshal decodes an ibc.core.channel.v1.MsgChannelOpenConfirm.
func (msg *MsgChannelOpenConfirm) Unmarshal(bz []byte) error {
	*msg = MsgChannelOpenConfirm{}
	return encoding.Range(bz, func(f encoding.Field) (err error) {
		switch f.Num {
		case 1:
			msg.PortId, err = f.AsString()
		case 2:
			msg.ChannelId, err = f.AsString()
		case 3:
			msg.ProofAck, err = f.AsBytes()
		case 4:
			err = f.Into(&msg.ProofHeight)
		case 5:
			msg.Signer, err = f.AsString()
		}
		return err
	})
}

// NewMsgChannelCloseInit creates a new MsgChannelCloseInit instance
func NewMsgChannelCloseInit(portID string, channelID string, signer string) *MsgChannelCloseInit {
	return &MsgChannelCloseInit{
		PortId:    portID,
		ChannelId: channelID,
		Signer:    signer,
	}
}

// ValidateBasic performs stateless checks on the message.
func (msg MsgChannelCloseInit) ValidateBasic() error {
	if err := host.PortIdentifierValidator(msg.PortId); err != nil {
		return errorsmod.Wrap(err, "invalid port ID")
	}
	if !IsValidChannelID(msg.ChannelId) {
		return ErrInvalidChannelIdentifier
	}
	return validateSigner(msg.Signer)
}

// Marshal encodes the message as ibc.core.channel.v1.MsgChannelCloseInit.
func (msg MsgChannelCloseInit) Marshal() ([]byte, error) {
	return encoding.NewEncoder().
		String(1, msg.PortId).
		String(2, msg.ChannelId).
		String(3, msg.Signer).
		Finish()
}

// Unmarshal decodes an ibc.core.channel.v1.MsgChannelCloseInit.
func (msg *MsgChannelCloseInit) Unmarshal(bz []byte) error {
	*msg = MsgChannelCloseInit{}
	return encoding.Range(bz, func(f encoding.Field) (err error) {
		switch f.Num {
		case 1:
			msg.PortId, err = f.AsString()
		case 2:
			msg.ChannelId, err = f.AsString()
		case 3:
			msg.Signer, err = f.AsString()
		}
		return err
	})
}

// NewMsgChannelCloseConfirm creates a new MsgChannelCloseConfirm instance
func NewMsgChannelCloseConfirm(
	portID, channelID string, initProof []byte, proofHeight clienttypes.Height,
	signer string,
) *MsgChannelCloseConfirm {
	return &MsgChannelCloseConfirm{
		PortId:      portID,
		ChannelId:   channelID,
		ProofInit:   initProof,
		ProofHeight: proofHeight,
		Signer:      signer,
	}
}

// ValidateBasic performs stateless checks on the message.
func (msg MsgChannelCloseConfirm) ValidateBasic() error {
	if err := host.PortIdentifierValidator(msg.PortId); err != nil {
		return errorsmod.Wrap(err, "invalid port ID")
	}
	if !IsValidChannelID(msg.ChannelId) {
		return ErrInvalidChannelIdentifier
	}
	if len(msg.ProofInit) == 0 {
		return errorsmod.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty init proof")
	}
	return validateSigner(msg.Signer)
}

// Marshal encodes the message as ibc.core.channel.v1.MsgChannelCloseConfirm.
func (msg MsgChannelCloseConfirm) Marshal() ([]byte, error) {
	return encoding.NewEncoder().
		String(1, msg.PortId).
		String(2, msg.ChannelId).
		Bytes(3, msg.ProofInit).
		Message(4, msg.ProofHeight).
		String(5, msg.Signer).
		Finish()
}

// Unmarshal decodes an ibc.core.channel.v1.MsgChannelCloseConfirm.
func (msg *MsgChannelCloseConfirm) Unmarshal(bz []byte) error {
	*msg = MsgChannelCloseConfirm{}
	return encoding.Range(bz, func(f encoding.Field) (err error) {
		switch f.Num {
		case 1:
			msg.PortId, err = f.AsString()
		case 2:
			msg.ChannelId, err = f.AsString()
		case 3:
			msg.ProofInit, err = f.AsBytes()
		case 4:
			err = f.Into(&msg.ProofHeight)
		case 5:
			msg.Signer, err = f.AsString()
		}
		return err
	})
}

// NewMsgRecvPacket constructs new MsgRecvPacket
func NewMsgRecvPacket(
	packet Packet, commitmentProof []byte, proofHeight clienttypes.Height,
	signer string,
) *MsgRecvPacket {
	return &MsgRecvPacket{
		Packet:          packet,
		ProofCommitment: commitmentProof,
		ProofHeight:     proofHeight,
		Signer:          signer,
	}
}

// ValidateBasic performs stateless checks on the message.
func (msg MsgRecvPacket) ValidateBasic() error {
	if len(msg.ProofCommitment) == 0 {
		return errorsmod.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty commitment proof")
	}
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}
	return msg.Packet.ValidateBasic()
}

// GetDataSignBytes returns the base64-encoded bytes used for the
// data field when signing the packet.
func (msg MsgRecvPacket) GetDataSignBytes() []byte {
	s := "\"" + base64.StdEncoding.EncodeToString(msg.Packet.Data) + "\""
	return []byte(s)
}

// Marshal encodes the message as ibc.core.channel.v1.MsgRecvPacket.
func (msg MsgRecvPacket) Marshal() ([]byte, error) {
	return encoding.NewEncoder().
		Message(1, msg.Packet).
		Bytes(2, msg.ProofCommitment).
		Message(3, msg.ProofHeight).
		String(4, msg.Signer).
		Finish()
}

// Unmarshal decodes an ibc.core.channel.v1.MsgRecvPacket.
func (msg *MsgRecvPacket) Unmarshal(bz []byte) error {
	*msg = MsgRecvPacket{}
	return encoding.Range(bz, func(f encoding.Field) (err error) {
		switch f.Num {
		case 1:
			err = f.Into(&msg.Packet)
		case 2:
			msg.ProofCommitment, err = f.AsBytes()
		case 3:
			err = f.Into(&msg.ProofHeight)
		case 4:
			msg.Signer, err = f.AsString()
		}
		return err
	})
}

// NewMsgTimeout constructs new MsgTimeout
func NewMsgTimeout(
	packet Packet, nextSequenceRecv uint64, unreceivedProof []byte,
	proofHeight clienttypes.Height, signer string,
) *MsgTimeout {
	return &MsgTimeout{
		Packet:           packet,
		NextSequenceRecv: nextSequenceRecv,
		ProofUnreceived:  unreceivedProof,
		ProofHeight:      proofHeight,
		Signer:           signer,
	}
}

// ValidateBasic performs stateless checks on the message.
func (msg MsgTimeout) ValidateBasic() error {
	if len(msg.ProofUnreceived) == 0 {
		return errorsmod.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty unreceived proof")
	}
	if msg.NextSequenceRecv == 0 {
		return errorsmod.Wrap(ibcerrors.ErrInvalidSequence, "next sequence receive cannot be 0")
	}
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}
	return msg.Packet.ValidateBasic()
}

// Marshal encodes the message as ibc.core.channel.v1.MsgTimeout.
func (msg MsgTimeout) Marshal() ([]byte, error) {
	return encoding.NewEncoder().
		Message(1, msg.Packet).
		Bytes(2, msg.ProofUnreceived).
		Message(3, msg.ProofHeight).
		Uint64(4, msg.NextSequenceRecv).
		String(5, msg.Signer).
		Finish()
}

// Unmarshal decodes an ibc.core.channel.v1.MsgTimeout.
func (msg *MsgTimeout) Unmarshal(bz []byte) error {
	*msg = MsgTimeout{}
	return encoding.Range(bz, func(f encoding.Field) (err error) {
		switch f.Num {
		case 1:
			err = f.Into(&msg.Packet)
		case 2:
			msg.ProofUnreceived, err = f.AsBytes()
		case 3:
			err = f.Into(&msg.ProofHeight)
		case 4:
			msg.NextSequenceRecv, err = f.AsUint64()
		case 5:
			msg.Signer, err = f.AsString()
		}
		return err
	})
}

// NewMsgTimeoutOnClose constructs new MsgTimeoutOnClose
func NewMsgTimeoutOnClose(
	packet Packet, nextSequenceRecv uint64,
	unreceivedProof, closeProof []byte,
	proofHeight clienttypes.Height, signer string,
) *MsgTimeoutOnClose {
	return &MsgTimeoutOnClose{
		Packet:           packet,
		NextSequenceRecv: nextSequenceRecv,
		ProofUnreceived:  unreceivedProof,
		ProofClose:       closeProof,
		ProofHeight:      proofHeight,
		Signer:           signer,
	}
}

// ValidateBasic performs stateless checks on the message.
func (msg MsgTimeoutOnClose) ValidateBasic() error {
	if msg.NextSequenceRecv == 0 {
		return errorsmod.Wrap(ibcerrors.ErrInvalidSequence, "next sequence receive cannot be 0")
	}
	if len(msg.ProofUnreceived) == 0 {
		return errorsmod.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty unreceived proof")
	}
	if len(msg.ProofClose) == 0 {
		return errorsmod.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty proof of closed counterparty channel end")
	}
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}
	return msg.Packet.ValidateBasic()
}

// Marshal encodes the message as ibc.core.channel.v1.MsgTimeoutOnClose.
func (msg MsgTimeoutOnClose) Marshal() ([]byte, error) {
	return encoding.NewEncoder().
		Message(1, msg.Packet).
		Bytes(2, msg.ProofUnreceived).
		Bytes(3, msg.ProofClose).
		Message(4, msg.ProofHeight).
		Uint64(5, msg.NextSequenceRecv).
		String(6, msg.Signer).
		Finish()
}

// Unmarshal decodes an ibc.core.channel.v1.MsgTimeoutOnClose.
func (msg *MsgTimeoutOnClose) Unmarshal(bz []byte) error {
	*msg = MsgTimeoutOnClose{}
	return encoding.Range(bz, func(f encoding.Field) (err error) {
		switch f.Num {
		case 1:
			err = f.Into(&msg.Packet)
		case 2:
			msg.ProofUnreceived, err = f.AsBytes()
		case 3:
			msg.ProofClose, err = f.AsBytes()
		case 4:
			err = f.Into(&msg.ProofHeight)
		case 5:
			msg.NextSequenceRecv, err = f.AsUint64()
		case 6:
			msg.Signer, err = f.AsString()
		}
		return err
	})
}

// NewMsgAcknowledgement constructs a new MsgAcknowledgement
func NewMsgAcknowledgement(
	packet Packet,
	ack, ackedProof []byte,
	proofHeight clienttypes.Height,
	signer string,
) *MsgAcknowledgement {
	return &MsgAcknowledgement{
		Packet:          packet,
		Acknowledgement: ack,
		ProofAcked:      ackedProof,
		ProofHeight:     proofHeight,
		Signer:          signer,
	}
}

// ValidateBasic performs stateless checks on the message.
func (msg MsgAcknowledgement) ValidateBasic() error {
	if len(msg.ProofAcked) == 0 {
		return errorsmod.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty acknowledgement proof")
	}
	if len(msg.Acknowledgement) == 0 {
		return errorsmod.Wrap(ErrInvalidAcknowledgement, "ack bytes cannot be empty")
	}
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}
	return msg.Packet.ValidateBasic()
}

// Marshal encodes the message as ibc.core.channel.v1.MsgAcknowledgement.
func (msg MsgAcknowledgement) Marshal() ([]byte, error) {
	return encoding.NewEncoder().
		Message(1, msg.Packet).
		Bytes(2, msg.Acknowledgement).
		Bytes(3, msg.ProofAcked).
		Message(4, msg.ProofHeight).
		String(5, msg.Signer).
		Finish()
}

// Unmarshal decodes an ibc.core.channel.v1.MsgAcknowledgement.
func (msg *MsgAcknowledgement) Unmarshal(bz []byte) error {
	*msg = MsgAcknowledgement{}
	return encoding.Range(bz, func(f encoding.Field) (err error) {
		switch f.Num {
		case 1:
			err = f.Into(&msg.Packet)
		case 2:
			msg.Acknowledgement, err = f.AsBytes()
		case 3:
			msg.ProofAcked, err = f.AsBytes()
		case 4:
			err = f.Into(&msg.ProofHeight)
		case 5:
			msg.Signer, err = f.AsString()
		}
		return err
	})
}

// Marshal encodes the response as ibc.core.channel.v1.MsgRecvPacketResponse.
func (res MsgRecvPacketResponse) Marshal() ([]byte, error) {
	return encoding.NewEncoder().Enum(1, int32(res.Result)).Finish()
}

// Marshal encodes the response as ibc.core.channel.v1.MsgTimeoutResponse.
func (res MsgTimeoutResponse) Marshal() ([]byte, error) {
	return encoding.NewEncoder().Enum(1, int32(res.Result)).Finish()
}

// Marshal encodes the response as ibc.core.channel.v1.MsgTimeoutOnCloseResponse.
func (res MsgTimeoutOnCloseResponse) Marshal() ([]byte, error) {
	return encoding.NewEncoder().Enum(1, int32(res.Result)).Finish()
}

// Marshal encodes the response as ibc.core.channel.v1.MsgAcknowledgementResponse.
func (res MsgAcknowledgementResponse) Marshal() ([]byte, error) {
	return encoding.NewEncoder().Enum(1, int32(res.Result)).Finish()
}

// Marshal encodes the empty handshake response.
func (MsgChannelOpenAckResponse) Marshal() ([]byte, error) { return []byte{}, nil }

// Marshal encodes the empty handshake response.
func (MsgChannelOpenConfirmResponse) Marshal() ([]byte, error) { return []byte{}, nil }

// Marshal encodes the empty handshake response.
func (MsgChannelCloseInitResponse) Marshal() ([]byte, error) { return []byte{}, nil }

// Marshal encodes the empty handshake response.
func (MsgChannelCloseConfirmResponse) Marshal() ([]byte, error) { return []byte{}, nil }

func validateSigner(signer string) error {
	if _, err := sdk.AccAddressFromBech32(signer); err != nil {
		return errorsmod.Wrapf(ibcerrors.ErrInvalidAddress, "string could not be parsed as address: %v", err)
	}
	return nil
}
