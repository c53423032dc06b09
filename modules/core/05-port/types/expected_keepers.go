package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/cosmos/ibc-core/modules/core/02-client/types"
	channeltypes "github.com/cosmos/ibc-core/modules/core/04-channel/types"
	"github.com/cosmos/ibc-core/modules/core/exported"
)

// ChannelKeeper defines the channel keeper surface applications use to send
// packets and to write asynchronous acknowledgements.
type ChannelKeeper interface {
	GetChannel(ctx sdk.Context, portID, channelID string) (channeltypes.Channel, bool)
	SendPacket(ctx sdk.Context, portID, channelID string, timeoutHeight clienttypes.Height, timeoutTimestamp uint64, data []byte) (uint64, error)
	WriteAcknowledgement(
		ctx sdk.Context,
		packet channeltypes.Packet,
		acknowledgement exported.Acknowledgement,
	) error
}
