package types

import "fmt"

// GenesisState defines the ibc client submodule's genesis state. Client and
// consensus states are owned by the light client modules and are not part of
// it.
type GenesisState struct {
	Params Params
	// the sequence for the next generated client identifier
	NextClientSequence uint64
}

// NewGenesisState creates a GenesisState instance.
func NewGenesisState(params Params, nextClientSequence uint64) GenesisState {
	return GenesisState{
		Params:             params,
		NextClientSequence: nextClientSequence,
	}
}

// DefaultGenesisState returns the ibc client submodule's default genesis state.
func DefaultGenesisState() GenesisState {
	return GenesisState{
		Params:             DefaultParams(),
		NextClientSequence: 0,
	}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("invalid client params: %w", err)
	}
	return nil
}
