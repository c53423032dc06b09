package keeper

import (
	"encoding/hex"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ibc-core/modules/core/04-channel/types"
)

// emitChannelOpenInitEvent emits a channel open init event
func emitChannelOpenInitEvent(ctx sdk.Context, portID string, channelID string, channel types.Channel) {
	emitChannelHandshakeEvent(ctx, types.EventTypeChannelOpenInit, portID, channelID, channel)
}

// emitChannelOpenTryEvent emits a channel open try event
func emitChannelOpenTryEvent(ctx sdk.Context, portID string, channelID string, channel types.Channel) {
	emitChannelHandshakeEvent(ctx, types.EventTypeChannelOpenTry, portID, channelID, channel)
}

// emitChannelOpenAckEvent emits a channel open acknowledge event
func emitChannelOpenAckEvent(ctx sdk.Context, portID string, channelID string, channel types.Channel) {
	emitChannelHandshakeEvent(ctx, types.EventTypeChannelOpenAck, portID, channelID, channel)
}

// emitChannelOpenConfirmEvent emits a channel open confirm event
func emitChannelOpenConfirmEvent(ctx sdk.Context, portID string, channelID string, channel types.Channel) {
	emitChannelHandshakeEvent(ctx, types.EventTypeChannelOpenConfirm, portID, channelID, channel)
}

// emitChannelCloseInitEvent emits a channel close init event
func emitChannelCloseInitEvent(ctx sdk.Context, portID string, channelID string, channel types.Channel) {
	emitChannelHandshakeEvent(ctx, types.EventTypeChannelCloseInit, portID, channelID, channel)
}

// emitChannelCloseConfirmEvent emits a channel close confirm event
func emitChannelCloseConfirmEvent(ctx sdk.Context, portID string, channelID string, channel types.Channel) {
	emitChannelHandshakeEvent(ctx, types.EventTypeChannelCloseConfirm, portID, channelID, channel)
}

func emitChannelHandshakeEvent(ctx sdk.Context, eventType, portID, channelID string, channel types.Channel) {
	attributes := []sdk.Attribute{
		sdk.NewAttribute(types.AttributeKeyPortID, portID),
		sdk.NewAttribute(types.AttributeKeyChannelID, channelID),
		sdk.NewAttribute(types.AttributeCounterpartyPortID, channel.Counterparty.PortId),
		sdk.NewAttribute(types.AttributeCounterpartyChannelID, channel.Counterparty.ChannelId),
		sdk.NewAttribute(types.AttributeKeyConnectionID, channel.ConnectionHops[0]),
	}
	if eventType == types.EventTypeChannelOpenInit || eventType == types.EventTypeChannelOpenTry {
		attributes = append(attributes, sdk.NewAttribute(types.AttributeKeyVersion, channel.Version))
	}

	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(eventType, attributes...),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		),
	})
}

// emitSendPacketEvent emits an event with packet data along with other packet information for relayer
// to pick up and relay to other chain
func emitSendPacketEvent(ctx sdk.Context, packet types.Packet, channel types.Channel) {
	emitPacketEvent(ctx, types.EventTypeSendPacket, packet, channel, true)
}

// emitRecvPacketEvent emits a receive packet event. It will be emitted both the first time a packet
// is received for a certain sequence and for all duplicate receives.
func emitRecvPacketEvent(ctx sdk.Context, packet types.Packet, channel types.Channel) {
	emitPacketEvent(ctx, types.EventTypeRecvPacket, packet, channel, true)
}

// emitWriteAcknowledgementEvent emits an event that the relayer can query for
func emitWriteAcknowledgementEvent(ctx sdk.Context, packet types.Packet, channel types.Channel, acknowledgement []byte) {
	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypeWriteAck,
			append(
				packetAttributes(packet, channel, true),
				sdk.NewAttribute(types.AttributeKeyAckHex, hex.EncodeToString(acknowledgement)),
			)...,
		),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		),
	})
}

// emitAcknowledgePacketEvent emits an acknowledge packet event. It will be emitted both the first time
// a packet is acknowledged for a certain sequence and for all duplicate acknowledgements.
func emitAcknowledgePacketEvent(ctx sdk.Context, packet types.Packet, channel types.Channel) {
	emitPacketEvent(ctx, types.EventTypeAcknowledgePacket, packet, channel, false)
}

// emitTimeoutPacketEvent emits a timeout packet event.
func emitTimeoutPacketEvent(ctx sdk.Context, packet types.Packet, channel types.Channel) {
	emitPacketEvent(ctx, types.EventTypeTimeoutPacket, packet, channel, false)
}

// emitTimeoutOnClosePacketEvent emits a timeout on close packet event.
func emitTimeoutOnClosePacketEvent(ctx sdk.Context, packet types.Packet, channel types.Channel) {
	emitPacketEvent(ctx, types.EventTypeTimeoutPacketOnClose, packet, channel, false)
}

// emitChannelClosedEvent emits a channel closed event.
func emitChannelClosedEvent(ctx sdk.Context, packet types.Packet, channel types.Channel) {
	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypeChannelClosed,
			sdk.NewAttribute(types.AttributeKeyPortID, packet.GetSourcePort()),
			sdk.NewAttribute(types.AttributeKeyChannelID, packet.GetSourceChannel()),
			sdk.NewAttribute(types.AttributeCounterpartyPortID, channel.Counterparty.PortId),
			sdk.NewAttribute(types.AttributeCounterpartyChannelID, channel.Counterparty.ChannelId),
			sdk.NewAttribute(types.AttributeKeyConnectionID, channel.ConnectionHops[0]),
			sdk.NewAttribute(types.AttributeKeyChannelOrdering, channel.Ordering.String()),
		),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		),
	})
}

func emitPacketEvent(ctx sdk.Context, eventType string, packet types.Packet, channel types.Channel, withData bool) {
	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(eventType, packetAttributes(packet, channel, withData)...),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		),
	})
}

func packetAttributes(packet types.Packet, channel types.Channel, withData bool) []sdk.Attribute {
	var attributes []sdk.Attribute
	if withData {
		attributes = append(attributes, sdk.NewAttribute(types.AttributeKeyDataHex, hex.EncodeToString(packet.GetData())))
	}

	return append(attributes,
		sdk.NewAttribute(types.AttributeKeyTimeoutHeight, packet.GetTimeoutHeight().String()),
		sdk.NewAttribute(types.AttributeKeyTimeoutTimestamp, fmt.Sprintf("%d", packet.GetTimeoutTimestamp())),
		sdk.NewAttribute(types.AttributeKeySequence, fmt.Sprintf("%d", packet.GetSequence())),
		sdk.NewAttribute(types.AttributeKeySrcPort, packet.GetSourcePort()),
		sdk.NewAttribute(types.AttributeKeySrcChannel, packet.GetSourceChannel()),
		sdk.NewAttribute(types.AttributeKeyDstPort, packet.GetDestPort()),
		sdk.NewAttribute(types.AttributeKeyDstChannel, packet.GetDestChannel()),
		sdk.NewAttribute(types.AttributeKeyChannelOrdering, channel.Ordering.String()),
		sdk.NewAttribute(types.AttributeKeyConnectionID, channel.ConnectionHops[0]),
	)
}
