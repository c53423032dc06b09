package mock

import (
	"bytes"
	"strings"

	corestore "cosmossdk.io/core/store"

	sdk "github.com/cosmos/cosmos-sdk/types"

	channeltypes "github.com/cosmos/ibc-core/modules/core/04-channel/types"
	porttypes "github.com/cosmos/ibc-core/modules/core/05-port/types"
	"github.com/cosmos/ibc-core/modules/core/exported"
)

var _ porttypes.IBCModule = (*IBCModule)(nil)

// IBCModule implements the ICS26 callbacks for testing/mock.
type IBCModule struct {
	storeService corestore.KVStoreService
	IBCApp       *IBCApp // base application of an IBC middleware stack
}

// NewIBCModule creates a new IBCModule given the underlying mock IBC application and
// the store the application writes to on packet receipt.
func NewIBCModule(storeService corestore.KVStoreService, app *IBCApp) IBCModule {
	return IBCModule{
		storeService: storeService,
		IBCApp:       app,
	}
}

// OnChanOpenInitValidate implements the IBCModule interface.
func (im IBCModule) OnChanOpenInitValidate(
	ctx sdk.Context, order channeltypes.Order, connectionHops []string, portID string,
	channelID string, counterparty channeltypes.Counterparty, version string,
) (string, error) {
	if strings.TrimSpace(version) == "" {
		version = Version
	}

	if im.IBCApp.OnChanOpenInitValidate != nil {
		return im.IBCApp.OnChanOpenInitValidate(ctx, order, connectionHops, portID, channelID, counterparty, version)
	}

	return version, nil
}

// OnChanOpenInitExecute implements the IBCModule interface.
func (im IBCModule) OnChanOpenInitExecute(
	ctx sdk.Context, order channeltypes.Order, connectionHops []string, portID string,
	channelID string, counterparty channeltypes.Counterparty, version string,
) error {
	if im.IBCApp.OnChanOpenInitExecute != nil {
		return im.IBCApp.OnChanOpenInitExecute(ctx, order, connectionHops, portID, channelID, counterparty, version)
	}

	ctx.EventManager().EmitEvent(NewMockChanOpenEvent("init", portID, channelID))

	return nil
}

// OnChanOpenTryValidate implements the IBCModule interface.
func (im IBCModule) OnChanOpenTryValidate(
	ctx sdk.Context, order channeltypes.Order, connectionHops []string, portID string,
	channelID string, counterparty channeltypes.Counterparty, counterpartyVersion string,
) (version string, err error) {
	if im.IBCApp.OnChanOpenTryValidate != nil {
		return im.IBCApp.OnChanOpenTryValidate(ctx, order, connectionHops, portID, channelID, counterparty, counterpartyVersion)
	}

	return Version, nil
}

// OnChanOpenTryExecute implements the IBCModule interface.
func (im IBCModule) OnChanOpenTryExecute(
	ctx sdk.Context, order channeltypes.Order, connectionHops []string, portID string,
	channelID string, counterparty channeltypes.Counterparty, version string,
) error {
	if im.IBCApp.OnChanOpenTryExecute != nil {
		return im.IBCApp.OnChanOpenTryExecute(ctx, order, connectionHops, portID, channelID, counterparty, version)
	}

	ctx.EventManager().EmitEvent(NewMockChanOpenEvent("try", portID, channelID))

	return nil
}

// OnChanOpenAckValidate implements the IBCModule interface.
func (im IBCModule) OnChanOpenAckValidate(ctx sdk.Context, portID string, channelID string, counterpartyChannelID string, counterpartyVersion string) error {
	if im.IBCApp.OnChanOpenAckValidate != nil {
		return im.IBCApp.OnChanOpenAckValidate(ctx, portID, channelID, counterpartyChannelID, counterpartyVersion)
	}

	return nil
}

// OnChanOpenAckExecute implements the IBCModule interface.
func (im IBCModule) OnChanOpenAckExecute(ctx sdk.Context, portID string, channelID string, counterpartyChannelID string, counterpartyVersion string) error {
	if im.IBCApp.OnChanOpenAckExecute != nil {
		return im.IBCApp.OnChanOpenAckExecute(ctx, portID, channelID, counterpartyChannelID, counterpartyVersion)
	}

	ctx.EventManager().EmitEvent(NewMockChanOpenEvent("ack", portID, channelID))

	return nil
}

// OnChanOpenConfirmValidate implements the IBCModule interface.
func (im IBCModule) OnChanOpenConfirmValidate(ctx sdk.Context, portID, channelID string) error {
	if im.IBCApp.OnChanOpenConfirmValidate != nil {
		return im.IBCApp.OnChanOpenConfirmValidate(ctx, portID, channelID)
	}

	return nil
}

// OnChanOpenConfirmExecute implements the IBCModule interface.
func (im IBCModule) OnChanOpenConfirmExecute(ctx sdk.Context, portID, channelID string) error {
	if im.IBCApp.OnChanOpenConfirmExecute != nil {
		return im.IBCApp.OnChanOpenConfirmExecute(ctx, portID, channelID)
	}

	ctx.EventManager().EmitEvent(NewMockChanOpenEvent("confirm", portID, channelID))

	return nil
}

// OnChanCloseInitValidate implements the IBCModule interface.
func (im IBCModule) OnChanCloseInitValidate(ctx sdk.Context, portID, channelID string) error {
	if im.IBCApp.OnChanCloseInitValidate != nil {
		return im.IBCApp.OnChanCloseInitValidate(ctx, portID, channelID)
	}

	return nil
}

// OnChanCloseInitExecute implements the IBCModule interface.
func (im IBCModule) OnChanCloseInitExecute(ctx sdk.Context, portID, channelID string) error {
	if im.IBCApp.OnChanCloseInitExecute != nil {
		return im.IBCApp.OnChanCloseInitExecute(ctx, portID, channelID)
	}

	return nil
}

// OnChanCloseConfirmValidate implements the IBCModule interface.
func (im IBCModule) OnChanCloseConfirmValidate(ctx sdk.Context, portID, channelID string) error {
	if im.IBCApp.OnChanCloseConfirmValidate != nil {
		return im.IBCApp.OnChanCloseConfirmValidate(ctx, portID, channelID)
	}

	return nil
}

// OnChanCloseConfirmExecute implements the IBCModule interface.
func (im IBCModule) OnChanCloseConfirmExecute(ctx sdk.Context, portID, channelID string) error {
	if im.IBCApp.OnChanCloseConfirmExecute != nil {
		return im.IBCApp.OnChanCloseConfirmExecute(ctx, portID, channelID)
	}

	return nil
}

// OnRecvPacketExecute implements the IBCModule interface. The mock application
// writes TestKey to its store so tests can observe whether the application
// state changes were kept.
func (im IBCModule) OnRecvPacketExecute(ctx sdk.Context, channelVersion string, packet channeltypes.Packet, relayer sdk.AccAddress) exported.Acknowledgement {
	if im.IBCApp.OnRecvPacketExecute != nil {
		return im.IBCApp.OnRecvPacketExecute(ctx, channelVersion, packet, relayer)
	}

	if err := im.storeService.OpenKVStore(ctx).Set(TestKey, TestValue); err != nil {
		panic(err)
	}

	ctx.EventManager().EmitEvent(NewMockRecvPacketEvent())

	if bytes.Equal(MockPacketData, packet.GetData()) {
		return MockAcknowledgement
	} else if bytes.Equal(MockAsyncPacketData, packet.GetData()) {
		return nil
	}

	return MockFailAcknowledgement
}

// OnAcknowledgementPacketValidate implements the IBCModule interface.
func (im IBCModule) OnAcknowledgementPacketValidate(ctx sdk.Context, channelVersion string, packet channeltypes.Packet, acknowledgement []byte, relayer sdk.AccAddress) error {
	if im.IBCApp.OnAcknowledgementPacketValidate != nil {
		return im.IBCApp.OnAcknowledgementPacketValidate(ctx, channelVersion, packet, acknowledgement, relayer)
	}

	return nil
}

// OnAcknowledgementPacketExecute implements the IBCModule interface.
func (im IBCModule) OnAcknowledgementPacketExecute(ctx sdk.Context, channelVersion string, packet channeltypes.Packet, acknowledgement []byte, relayer sdk.AccAddress) error {
	if im.IBCApp.OnAcknowledgementPacketExecute != nil {
		return im.IBCApp.OnAcknowledgementPacketExecute(ctx, channelVersion, packet, acknowledgement, relayer)
	}

	ctx.EventManager().EmitEvent(NewMockAckPacketEvent())

	return nil
}

// OnTimeoutPacketValidate implements the IBCModule interface.
func (im IBCModule) OnTimeoutPacketValidate(ctx sdk.Context, channelVersion string, packet channeltypes.Packet, relayer sdk.AccAddress) error {
	if im.IBCApp.OnTimeoutPacketValidate != nil {
		return im.IBCApp.OnTimeoutPacketValidate(ctx, channelVersion, packet, relayer)
	}

	return nil
}

// OnTimeoutPacketExecute implements the IBCModule interface.
func (im IBCModule) OnTimeoutPacketExecute(ctx sdk.Context, channelVersion string, packet channeltypes.Packet, relayer sdk.AccAddress) error {
	if im.IBCApp.OnTimeoutPacketExecute != nil {
		return im.IBCApp.OnTimeoutPacketExecute(ctx, channelVersion, packet, relayer)
	}

	ctx.EventManager().EmitEvent(NewMockTimeoutPacketEvent())

	return nil
}
