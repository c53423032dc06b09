package ibctesting

import (
	"time"

	connectiontypes "github.com/cosmos/ibc-core/modules/core/03-connection/types"
	channeltypes "github.com/cosmos/ibc-core/modules/core/04-channel/types"
	"github.com/cosmos/ibc-core/testing/mock"
)

// ClientConfig holds the parameters of the 00-mock client an endpoint creates
// to track its counterparty.
type ClientConfig struct {
	TrustingPeriod time.Duration
}

func NewClientConfig() *ClientConfig {
	return &ClientConfig{
		TrustingPeriod: TrustingPeriod,
	}
}

type ConnectionConfig struct {
	DelayPeriod uint64
	Version     *connectiontypes.Version
}

func NewConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		DelayPeriod: DefaultDelayPeriod,
		Version:     ConnectionVersion,
	}
}

type ChannelConfig struct {
	PortID  string
	Version string
	Order   channeltypes.Order
}

func NewChannelConfig() *ChannelConfig {
	return &ChannelConfig{
		PortID:  mock.PortID,
		Version: DefaultChannelVersion,
		Order:   channeltypes.UNORDERED,
	}
}
