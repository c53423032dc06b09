package ibctesting

import (
	"encoding/hex"
	"errors"
	"slices"

	testifysuite "github.com/stretchr/testify/suite"

	abci "github.com/cometbft/cometbft/abci/types"

	clienttypes "github.com/cosmos/ibc-core/modules/core/02-client/types"
	connectiontypes "github.com/cosmos/ibc-core/modules/core/03-connection/types"
	channeltypes "github.com/cosmos/ibc-core/modules/core/04-channel/types"
)

// ParseClientIDFromEvents returns the identifier allocated by a MsgCreateClient.
func ParseClientIDFromEvents(events []abci.Event) (string, error) {
	if clientID, found := findAttribute(events, clienttypes.AttributeKeyClientID, clienttypes.EventTypeCreateClient); found {
		return clientID, nil
	}
	return "", errors.New("client identifier event attribute not found")
}

// ParseConnectionIDFromEvents returns the identifier allocated by a
// MsgConnectionOpenInit or MsgConnectionOpenTry.
func ParseConnectionIDFromEvents(events []abci.Event) (string, error) {
	connectionID, found := findAttribute(events, connectiontypes.AttributeKeyConnectionID,
		connectiontypes.EventTypeConnectionOpenInit, connectiontypes.EventTypeConnectionOpenTry)
	if found {
		return connectionID, nil
	}
	return "", errors.New("connection identifier event attribute not found")
}

// ParseChannelIDFromEvents returns the identifier allocated by a
// MsgChannelOpenInit or MsgChannelOpenTry.
func ParseChannelIDFromEvents(events []abci.Event) (string, error) {
	channelID, found := findAttribute(events, channeltypes.AttributeKeyChannelID,
		channeltypes.EventTypeChannelOpenInit, channeltypes.EventTypeChannelOpenTry)
	if found {
		return channelID, nil
	}
	return "", errors.New("channel identifier event attribute not found")
}

// ParseAckFromEvents returns the acknowledgement bytes of the first
// write_acknowledgement event. Async receives emit none.
func ParseAckFromEvents(events []abci.Event) ([]byte, error) {
	ackHex, found := findAttribute(events, channeltypes.AttributeKeyAckHex, channeltypes.EventTypeWriteAck)
	if !found {
		return nil, errors.New("acknowledgement event attribute not found")
	}
	return hex.DecodeString(ackHex)
}

// AssertEvents requires every expected event to appear in actual with the same
// number of attributes and every expected key/value pair.
func AssertEvents(
	suite *testifysuite.Suite,
	expected []abci.Event,
	actual []abci.Event,
) {
	for _, expectedEvent := range expected {
		found := slices.ContainsFunc(actual, func(actualEvent abci.Event) bool {
			if expectedEvent.Type != actualEvent.Type || len(expectedEvent.Attributes) != len(actualEvent.Attributes) {
				return false
			}
			for _, expectedAttr := range expectedEvent.Attributes {
				// indexed flags depend on how the events were collected and are ignored
				if !slices.ContainsFunc(actualEvent.Attributes, func(attr abci.EventAttribute) bool {
					return attr.Key == expectedAttr.Key && attr.Value == expectedAttr.Value
				}) {
					return false
				}
			}
			return true
		})
		suite.Require().True(found, "event: %s was not found in events", expectedEvent.Type)
	}
}

// findAttribute returns the value of key on the first event of one of the
// given types carrying it.
func findAttribute(events []abci.Event, key string, eventTypes ...string) (string, bool) {
	for _, ev := range events {
		if !slices.Contains(eventTypes, ev.Type) {
			continue
		}
		for _, attr := range ev.Attributes {
			if attr.Key == key {
				return attr.Value, true
			}
		}
	}
	return "", false
}
