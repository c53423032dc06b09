package mock

import (
	"errors"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	channeltypes "github.com/cosmos/ibc-core/modules/core/04-channel/types"
)

const (
	ModuleName = "mock"

	// StoreKey is the name of the store the mock application writes to.
	StoreKey = ModuleName

	PortID = ModuleName

	Version = "mock-version"
)

var (
	MockAcknowledgement     = channeltypes.NewResultAcknowledgement([]byte("mock acknowledgement"))
	MockFailAcknowledgement = channeltypes.NewErrorAcknowledgement(errors.New("mock failed acknowledgement"))
	MockPacketData          = []byte("mock packet data")
	MockFailPacketData      = []byte("mock failed packet data")
	MockAsyncPacketData     = []byte("mock async packet data")
	// MockApplicationCallbackError should be returned when an application callback should fail. It is possible to
	// test that this error was returned using ErrorIs.
	MockApplicationCallbackError error = &applicationCallbackError{}
)

var (
	TestKey   = []byte("test-key")
	TestValue = []byte("test-value")
)

const (
	MockEventTypeRecvPacket            = "mock-recv-packet"
	MockEventTypeAcknowledgementPacket = "mock-ack-packet"
	MockEventTypeTimeoutPacket         = "mock-timeout-packet"
	MockEventTypeChanOpen              = "mock-chan-open"
)

// applicationCallbackError is a custom error type that will be unique for testing purposes.
type applicationCallbackError struct{}

func (applicationCallbackError) Error() string {
	return "mock application callback failed"
}

// NewMockRecvPacketEvent returns a mock receive packet event
func NewMockRecvPacketEvent() sdk.Event {
	return newMockEvent(MockEventTypeRecvPacket)
}

// NewMockAckPacketEvent returns a mock acknowledgement packet event
func NewMockAckPacketEvent() sdk.Event {
	return newMockEvent(MockEventTypeAcknowledgementPacket)
}

// NewMockTimeoutPacketEvent emits a mock timeout packet event
func NewMockTimeoutPacketEvent() sdk.Event {
	return newMockEvent(MockEventTypeTimeoutPacket)
}

// NewMockChanOpenEvent returns the event emitted when the mock application
// executes a handshake step.
func NewMockChanOpenEvent(step, portID, channelID string) sdk.Event {
	return sdk.NewEvent(
		MockEventTypeChanOpen,
		sdk.NewAttribute("step", step),
		sdk.NewAttribute("port_id", portID),
		sdk.NewAttribute("channel_id", channelID),
	)
}

func newMockEvent(eventType string) sdk.Event {
	return sdk.NewEvent(
		eventType,
		sdk.NewAttribute("key", "value"),
		sdk.NewAttribute("key-bytes", fmt.Sprintf("%x", TestValue)),
	)
}
