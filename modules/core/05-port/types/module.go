package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	channeltypes "github.com/cosmos/ibc-core/modules/core/04-channel/types"
	"github.com/cosmos/ibc-core/modules/core/exported"
)

// IBCModule defines an interface that implements all the callbacks
// that modules must define as specified in ICS-26.
//
// Every handshake step and the acknowledgement and timeout callbacks come as a
// Validate/Execute pair. Validate callbacks run before core IBC writes any
// state and must not write state themselves; Execute callbacks run after core
// IBC has committed to the step and may write application state.
type IBCModule interface {
	// OnChanOpenInitValidate will verify that the relayer-chosen parameters
	// are valid. It may return an error if the chosen parameters are invalid
	// in which case the handshake is aborted.
	// If the provided version string is non-empty, it should return
	// the version string if valid or an error if the provided version is invalid.
	// If the version string is empty, it is expected to return a default
	// version string representing the version(s) it supports.
	OnChanOpenInitValidate(
		ctx sdk.Context,
		order channeltypes.Order,
		connectionHops []string,
		portID string,
		channelID string,
		counterparty channeltypes.Counterparty,
		version string,
	) (string, error)

	// OnChanOpenInitExecute performs custom INIT logic with the version
	// returned by OnChanOpenInitValidate.
	OnChanOpenInitExecute(
		ctx sdk.Context,
		order channeltypes.Order,
		connectionHops []string,
		portID string,
		channelID string,
		counterparty channeltypes.Counterparty,
		version string,
	) error

	// OnChanOpenTryValidate will verify the relayer-chosen parameters along with the
	// counterparty-chosen version string. If the counterparty-chosen version is not
	// compatible with this modules supported versions, the callback must return
	// an error to abort the handshake. If the versions are compatible, the callback
	// must select the final version string and return it to core IBC.
	OnChanOpenTryValidate(
		ctx sdk.Context,
		order channeltypes.Order,
		connectionHops []string,
		portID,
		channelID string,
		counterparty channeltypes.Counterparty,
		counterpartyVersion string,
	) (version string, err error)

	// OnChanOpenTryExecute performs custom TRY logic with the version returned
	// by OnChanOpenTryValidate.
	OnChanOpenTryExecute(
		ctx sdk.Context,
		order channeltypes.Order,
		connectionHops []string,
		portID,
		channelID string,
		counterparty channeltypes.Counterparty,
		version string,
	) error

	// OnChanOpenAckValidate will error if the counterparty selected version string
	// is invalid to abort the handshake.
	OnChanOpenAckValidate(
		ctx sdk.Context,
		portID,
		channelID string,
		counterpartyChannelID string,
		counterpartyVersion string,
	) error

	// OnChanOpenAckExecute performs custom ACK logic.
	OnChanOpenAckExecute(
		ctx sdk.Context,
		portID,
		channelID string,
		counterpartyChannelID string,
		counterpartyVersion string,
	) error

	OnChanOpenConfirmValidate(ctx sdk.Context, portID, channelID string) error
	OnChanOpenConfirmExecute(ctx sdk.Context, portID, channelID string) error

	OnChanCloseInitValidate(ctx sdk.Context, portID, channelID string) error
	OnChanCloseInitExecute(ctx sdk.Context, portID, channelID string) error

	OnChanCloseConfirmValidate(ctx sdk.Context, portID, channelID string) error
	OnChanCloseConfirmExecute(ctx sdk.Context, portID, channelID string) error

	// OnRecvPacketExecute must return an acknowledgement that implements the Acknowledgement interface.
	// In the case of an asynchronous acknowledgement, nil should be returned.
	// If the acknowledgement returned is successful, the state changes on callback are written,
	// otherwise the application state changes are discarded. In either case the packet is received
	// and the acknowledgement is written (in synchronous cases).
	OnRecvPacketExecute(
		ctx sdk.Context,
		channelVersion string,
		packet channeltypes.Packet,
		relayer sdk.AccAddress,
	) exported.Acknowledgement

	OnAcknowledgementPacketValidate(
		ctx sdk.Context,
		channelVersion string,
		packet channeltypes.Packet,
		acknowledgement []byte,
		relayer sdk.AccAddress,
	) error

	OnAcknowledgementPacketExecute(
		ctx sdk.Context,
		channelVersion string,
		packet channeltypes.Packet,
		acknowledgement []byte,
		relayer sdk.AccAddress,
	) error

	OnTimeoutPacketValidate(
		ctx sdk.Context,
		channelVersion string,
		packet channeltypes.Packet,
		relayer sdk.AccAddress,
	) error

	OnTimeoutPacketExecute(
		ctx sdk.Context,
		channelVersion string,
		packet channeltypes.Packet,
		relayer sdk.AccAddress,
	) error
}
