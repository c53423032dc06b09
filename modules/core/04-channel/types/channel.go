package types

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"

	"github.com/cosmos/ibc-core/internal/encoding"
	host "github.com/cosmos/ibc-core/modules/core/24-host"
	ibcerrors "github.com/cosmos/ibc-core/modules/core/errors"
	"github.com/cosmos/ibc-core/modules/core/exported"
)

var (
	_ exported.ChannelI             = (*Channel)(nil)
	_ exported.CounterpartyChannelI = (*Counterparty)(nil)
)

// State defines if a channel is in one of the following states:
// CLOSED, INIT, TRYOPEN, OPEN or UNINITIALIZED.
type State int32

const (
	// UNINITIALIZED is the default State, used to indicate a channel that does
	// not exist.
	UNINITIALIZED State = 0
	// INIT is the state of a channel end that has just started the opening
	// handshake.
	INIT State = 1
	// TRYOPEN is the state of a channel end that has acknowledged the handshake
	// step on the counterparty chain.
	TRYOPEN State = 2
	// OPEN is the state of a channel end that has completed the handshake and
	// is ready to send and receive packets.
	OPEN State = 3
	// CLOSED is the state of a channel end that has been closed. Packets can no
	// longer be sent or received on it.
	CLOSED State = 4
)

var stateNames = map[State]string{
	UNINITIALIZED: "STATE_UNINITIALIZED_UNSPECIFIED",
	INIT:          "STATE_INIT",
	TRYOPEN:       "STATE_TRYOPEN",
	OPEN:          "STATE_OPEN",
	CLOSED:        "STATE_CLOSED",
}

// String implements the Stringer interface.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("%d", int32(s))
}

// Order defines if a channel is ORDERED or UNORDERED
type Order int32

const (
	// NONE is the zero-value of Order and is invalid.
	NONE Order = 0
	// UNORDERED packets can be delivered in any order, which may differ from
	// the order in which they were sent.
	UNORDERED Order = 1
	// ORDERED packets are delivered exactly in the order which they were sent
	ORDERED Order = 2
)

var orderNames = map[Order]string{
	NONE:      "ORDER_NONE_UNSPECIFIED",
	UNORDERED: "ORDER_UNORDERED",
	ORDERED:   "ORDER_ORDERED",
}

// String implements the Stringer interface. The names are also the feature
// strings negotiated in connection versions.
func (o Order) String() string {
	if name, ok := orderNames[o]; ok {
		return name
	}
	return fmt.Sprintf("%d", int32(o))
}

// Channel defines pipeline for exactly-once packet delivery between specific
// modules on separate blockchains, which has at least one end capable of
// sending packets and one end capable of receiving packets.
type Channel struct {
	// current state of the channel end
	State State
	// whether the channel is ordered or unordered
	Ordering Order
	// counterparty channel end
	Counterparty Counterparty
	// list of connection identifiers, in order, along which packets sent on
	// this channel will travel
	ConnectionHops []string
	// opaque channel version, which is agreed upon during the handshake
	Version string
}

// NewChannel creates a new Channel instance
func NewChannel(
	state State, ordering Order, counterparty Counterparty,
	hops []string, version string,
) Channel {
	return Channel{
		State:          state,
		Ordering:       ordering,
		Counterparty:   counterparty,
		ConnectionHops: hops,
		Version:        version,
	}
}

// GetState implements Channel interface.
func (ch Channel) GetState() int32 {
	return int32(ch.State)
}

// GetOrdering implements Channel interface.
func (ch Channel) GetOrdering() int32 {
	return int32(ch.Ordering)
}

// GetCounterparty implements Channel interface.
func (ch Channel) GetCounterparty() exported.CounterpartyChannelI {
	return ch.Counterparty
}

// GetConnectionHops implements Channel interface.
func (ch Channel) GetConnectionHops() []string {
	return ch.ConnectionHops
}

// GetVersion implements Channel interface.
func (ch Channel) GetVersion() string {
	return ch.Version
}

// ValidateBasic performs a basic validation of the channel fields
func (ch Channel) ValidateBasic() error {
	if ch.State == UNINITIALIZED {
		return ErrInvalidChannelState
	}
	if !(ch.Ordering == ORDERED || ch.Ordering == UNORDERED) {
		return errorsmod.Wrap(ErrInvalidChannelOrdering, ch.Ordering.String())
	}
	if len(ch.ConnectionHops) != 1 {
		return errorsmod.Wrapf(
			ErrTooManyConnectionHops,
			"current IBC version only supports one connection hop, got %d", len(ch.ConnectionHops),
		)
	}
	if err := host.ConnectionIdentifierValidator(ch.ConnectionHops[0]); err != nil {
		return errorsmod.Wrap(err, "invalid connection hop ID")
	}
	return ch.Counterparty.ValidateBasic()
}

// Marshal encodes the channel as ibc.core.channel.v1.Channel. These are the
// bytes committed to the store and verified by the counterparty.
func (ch Channel) Marshal() ([]byte, error) {
	return encoding.NewEncoder().
		Enum(1, int32(ch.State)).
		Enum(2, int32(ch.Ordering)).
		Message(3, ch.Counterparty).
		Strings(4, ch.ConnectionHops).
		String(5, ch.Version).
		Finish()
}

// Unmarshal decodes an ibc.core.channel.v1.Channel.
func (ch *Channel) Unmarshal(bz []byte) error {
	*ch = Channel{}
	return encoding.Range(bz, func(f encoding.Field) (err error) {
		switch f.Num {
		case 1:
			var state int32
			state, err = f.AsInt32()
			ch.State = State(state)
		case 2:
			var order int32
			order, err = f.AsInt32()
			ch.Ordering = Order(order)
		case 3:
			err = f.Into(&ch.Counterparty)
		case 4:
			var hop string
			hop, err = f.AsString()
			ch.ConnectionHops = append(ch.ConnectionHops, hop)
		case 5:
			ch.Version, err = f.AsString()
		}
		return err
	})
}

// Counterparty defines a channel end counterparty
type Counterparty struct {
	// port on the counterparty chain which owns the other end of the channel.
	PortId string
	// channel end on the counterparty chain
	ChannelId string
}

// NewCounterparty returns a new Counterparty instance
func NewCounterparty(portID, channelID string) Counterparty {
	return Counterparty{
		PortId:    portID,
		ChannelId: channelID,
	}
}

// GetPortID implements CounterpartyChannelI interface
func (c Counterparty) GetPortID() string {
	return c.PortId
}

// GetChannelID implements CounterpartyChannelI interface
func (c Counterparty) GetChannelID() string {
	return c.ChannelId
}

// ValidateBasic performs a basic validation check of the identifiers
func (c Counterparty) ValidateBasic() error {
	if err := host.PortIdentifierValidator(c.PortId); err != nil {
		return errorsmod.Wrap(err, "invalid counterparty port ID")
	}

	if c.ChannelId != "" {
		if err := host.ChannelIdentifierValidator(c.ChannelId); err != nil {
			return errorsmod.Wrap(err, "invalid counterparty channel ID")
		}
	}

	return nil
}

// Marshal encodes the counterparty as ibc.core.channel.v1.Counterparty.
func (c Counterparty) Marshal() ([]byte, error) {
	return encoding.NewEncoder().
		String(1, c.PortId).
		String(2, c.ChannelId).
		Finish()
}

// Unmarshal decodes an ibc.core.channel.v1.Counterparty.
func (c *Counterparty) Unmarshal(bz []byte) error {
	*c = Counterparty{}
	return encoding.Range(bz, func(f encoding.Field) (err error) {
		switch f.Num {
		case 1:
			c.PortId, err = f.AsString()
		case 2:
			c.ChannelId, err = f.AsString()
		}
		return err
	})
}

// IdentifiedChannel defines a channel with additional port and channel
// identifier fields.
type IdentifiedChannel struct {
	Channel
	PortId    string
	ChannelId string
}

// NewIdentifiedChannel creates a new IdentifiedChannel instance
func NewIdentifiedChannel(portID, channelID string, ch Channel) IdentifiedChannel {
	return IdentifiedChannel{
		Channel:   ch,
		PortId:    portID,
		ChannelId: channelID,
	}
}

// ValidateBasic performs a basic validation of the identifiers and channel fields.
func (ic IdentifiedChannel) ValidateBasic() error {
	if err := host.ChannelIdentifierValidator(ic.ChannelId); err != nil {
		return errorsmod.Wrap(err, "invalid channel ID")
	}
	if err := host.PortIdentifierValidator(ic.PortId); err != nil {
		return errorsmod.Wrap(err, "invalid port ID")
	}
	return ic.Channel.ValidateBasic()
}

// Marshal encodes the channel as ibc.core.channel.v1.IdentifiedChannel.
func (ic IdentifiedChannel) Marshal() ([]byte, error) {
	return encoding.NewEncoder().
		Enum(1, int32(ic.State)).
		Enum(2, int32(ic.Ordering)).
		Message(3, ic.Counterparty).
		Strings(4, ic.ConnectionHops).
		String(5, ic.Version).
		String(6, ic.PortId).
		String(7, ic.ChannelId).
		Finish()
}

// Unmarshal decodes an ibc.core.channel.v1.IdentifiedChannel.
func (ic *IdentifiedChannel) Unmarshal(bz []byte) error {
	*ic = IdentifiedChannel{}
	if err := ic.Channel.Unmarshal(bz); err != nil {
		return err
	}
	return encoding.Range(bz, func(f encoding.Field) (err error) {
		switch f.Num {
		case 6:
			ic.PortId, err = f.AsString()
		case 7:
			ic.ChannelId, err = f.AsString()
		}
		return err
	})
}

// ValidateVersion checks that the application version negotiated for a
// channel is not longer than the maximum accepted length.
func ValidateVersion(version string) error {
	if len(version) > MaximumVersionLength {
		return errorsmod.Wrapf(ibcerrors.ErrInvalidVersion, "version length must not exceed %d bytes", MaximumVersionLength)
	}
	return nil
}

// MaximumVersionLength is the largest channel version accepted in a handshake.
const MaximumVersionLength = 8192
