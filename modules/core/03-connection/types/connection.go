package types

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"

	"github.com/cosmos/ibc-core/internal/encoding"
	commitmenttypes "github.com/cosmos/ibc-core/modules/core/23-commitment/types"
	host "github.com/cosmos/ibc-core/modules/core/24-host"
	ibcerrors "github.com/cosmos/ibc-core/modules/core/errors"
)

// State defines if a connection is in one of the following states:
// INIT, TRYOPEN, OPEN or UNINITIALIZED.
type State int32

const (
	// UNINITIALIZED is the default State, used to indicate a connection that
	// does not exist.
	UNINITIALIZED State = 0
	// INIT is the state of a connection end that has just started the opening
	// handshake.
	INIT State = 1
	// TRYOPEN is the state of a connection end that has acknowledged the
	// handshake step on the counterparty chain.
	TRYOPEN State = 2
	// OPEN is the state of a connection end that has completed the handshake.
	OPEN State = 3
)

var stateNames = map[State]string{
	UNINITIALIZED: "STATE_UNINITIALIZED_UNSPECIFIED",
	INIT:          "STATE_INIT",
	TRYOPEN:       "STATE_TRYOPEN",
	OPEN:          "STATE_OPEN",
}

// String implements the Stringer interface.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("%d", int32(s))
}

// ConnectionEnd defines a stateful object on a chain connected to another
// separate one.
type ConnectionEnd struct {
	// client associated with this connection.
	ClientId string
	// IBC version which can be utilised to determine encodings or protocols for
	// channels or packets utilising this connection.
	Versions []*Version
	// current state of the connection end.
	State State
	// counterparty chain associated with this connection.
	Counterparty Counterparty
	// delay period that must pass before a consensus state can be used for
	// packet-verification NOTE: delay period logic is only implemented by some
	// clients.
	DelayPeriod uint64
}

// NewConnectionEnd creates a new ConnectionEnd instance.
func NewConnectionEnd(state State, clientID string, counterparty Counterparty, versions []*Version, delayPeriod uint64) ConnectionEnd {
	return ConnectionEnd{
		ClientId:     clientID,
		Versions:     versions,
		State:        state,
		Counterparty: counterparty,
		DelayPeriod:  delayPeriod,
	}
}

// ValidateBasic implements the Connection interface.
// NOTE: the protocol supports that the connection and client IDs match the
// counterparty's.
func (c ConnectionEnd) ValidateBasic() error {
	if err := host.ClientIdentifierValidator(c.ClientId); err != nil {
		return errorsmod.Wrap(err, "invalid client ID")
	}
	if len(c.Versions) == 0 {
		return errorsmod.Wrap(ibcerrors.ErrInvalidVersion, "empty connection versions")
	}
	for _, version := range c.Versions {
		if err := ValidateVersion(version); err != nil {
			return err
		}
	}
	return c.Counterparty.ValidateBasic()
}

// Marshal encodes the connection end as ibc.core.connection.v1.ConnectionEnd.
// These are the bytes committed to the store and verified by the counterparty.
func (c ConnectionEnd) Marshal() ([]byte, error) {
	enc := encoding.NewEncoder().String(1, c.ClientId)
	for _, version := range c.Versions {
		enc = enc.Message(2, version)
	}
	return enc.
		Enum(3, int32(c.State)).
		Message(4, c.Counterparty).
		Uint64(5, c.DelayPeriod).
		Finish()
}

// Unmarshal decodes an ibc.core.connection.v1.ConnectionEnd.
func (c *ConnectionEnd) Unmarshal(bz []byte) error {
	*c = ConnectionEnd{}
	return encoding.Range(bz, func(f encoding.Field) (err error) {
		switch f.Num {
		case 1:
			c.ClientId, err = f.AsString()
		case 2:
			version := &Version{}
			if err = f.Into(version); err == nil {
				c.Versions = append(c.Versions, version)
			}
		case 3:
			var state int32
			state, err = f.AsInt32()
			c.State = State(state)
		case 4:
			err = f.Into(&c.Counterparty)
		case 5:
			c.DelayPeriod, err = f.AsUint64()
		}
		return err
	})
}

// Counterparty defines the counterparty chain associated with a connection end.
type Counterparty struct {
	// identifies the client on the counterparty chain associated with a given
	// connection.
	ClientId string
	// identifies the connection end on the counterparty chain associated with a
	// given connection.
	ConnectionId string
	// commitment merkle prefix of the counterparty chain.
	Prefix commitmenttypes.MerklePrefix
}

// NewCounterparty creates a new Counterparty instance.
func NewCounterparty(clientID, connectionID string, prefix commitmenttypes.MerklePrefix) Counterparty {
	return Counterparty{
		ClientId:     clientID,
		ConnectionId: connectionID,
		Prefix:       prefix,
	}
}

// ValidateBasic performs a basic validation check of the identifiers and prefix
func (c Counterparty) ValidateBasic() error {
	if c.ConnectionId != "" {
		if err := host.ConnectionIdentifierValidator(c.ConnectionId); err != nil {
			return errorsmod.Wrap(err, "invalid counterparty connection ID")
		}
	}
	if err := host.ClientIdentifierValidator(c.ClientId); err != nil {
		return errorsmod.Wrap(err, "invalid counterparty client ID")
	}
	if c.Prefix.Empty() {
		return errorsmod.Wrap(ErrInvalidCounterparty, "counterparty prefix cannot be empty")
	}
	return nil
}

// Marshal encodes the counterparty as ibc.core.connection.v1.Counterparty.
func (c Counterparty) Marshal() ([]byte, error) {
	return encoding.NewEncoder().
		String(1, c.ClientId).
		String(2, c.ConnectionId).
		Message(3, c.Prefix).
		Finish()
}

// Unmarshal decodes an ibc.core.connection.v1.Counterparty.
func (c *Counterparty) Unmarshal(bz []byte) error {
	*c = Counterparty{}
	return encoding.Range(bz, func(f encoding.Field) (err error) {
		switch f.Num {
		case 1:
			c.ClientId, err = f.AsString()
		case 2:
			c.ConnectionId, err = f.AsString()
		case 3:
			err = f.Into(&c.Prefix)
		}
		return err
	})
}

// IdentifiedConnection defines a connection with additional connection
// identifier field.
type IdentifiedConnection struct {
	ConnectionEnd
	// connection identifier.
	Id string
}

// NewIdentifiedConnection creates a new IdentifiedConnection instance
func NewIdentifiedConnection(connectionID string, conn ConnectionEnd) IdentifiedConnection {
	return IdentifiedConnection{
		ConnectionEnd: conn,
		Id:            connectionID,
	}
}

// ValidateBasic performs a basic validation of the connection identifier and connection fields.
func (ic IdentifiedConnection) ValidateBasic() error {
	if err := host.ConnectionIdentifierValidator(ic.Id); err != nil {
		return errorsmod.Wrap(err, "invalid connection ID")
	}
	return ic.ConnectionEnd.ValidateBasic()
}

// ClientPaths define all the connection paths for a client state.
type ClientPaths struct {
	Paths []string
}

// Marshal encodes the paths as ibc.core.connection.v1.ClientPaths.
func (cp ClientPaths) Marshal() ([]byte, error) {
	return encoding.NewEncoder().Strings(1, cp.Paths).Finish()
}

// Unmarshal decodes an ibc.core.connection.v1.ClientPaths.
func (cp *ClientPaths) Unmarshal(bz []byte) error {
	*cp = ClientPaths{}
	return encoding.Range(bz, func(f encoding.Field) error {
		if f.Num != 1 {
			return nil
		}
		path, err := f.AsString()
		cp.Paths = append(cp.Paths, path)
		return err
	})
}
