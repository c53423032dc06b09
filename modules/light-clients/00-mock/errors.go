package mock

import (
	errorsmod "cosmossdk.io/errors"
)

// IBC mock client sentinel errors
var (
	ErrInvalidChainID         = errorsmod.Register(ModuleName, 2, "invalid chain-id")
	ErrInvalidTrustingPeriod  = errorsmod.Register(ModuleName, 3, "invalid trusting period")
	ErrInvalidHeaderHeight    = errorsmod.Register(ModuleName, 4, "invalid header height")
	ErrInvalidHeader          = errorsmod.Register(ModuleName, 5, "invalid header")
	ErrInvalidClientMsg       = errorsmod.Register(ModuleName, 6, "invalid client message type")
	ErrInvalidTimestamp       = errorsmod.Register(ModuleName, 7, "invalid timestamp")
	ErrInvalidMisbehaviour    = errorsmod.Register(ModuleName, 8, "invalid misbehaviour")
	ErrHistoricalInfoNotFound = errorsmod.Register(ModuleName, 9, "historical header not found")
	ErrConsensusStateMismatch = errorsmod.Register(ModuleName, 10, "consensus state does not match stored consensus state")
)
