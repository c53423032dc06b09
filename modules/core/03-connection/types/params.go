package types

import (
	"errors"
	"time"

	"github.com/cosmos/ibc-core/internal/encoding"
)

// DefaultTimePerBlock is the default value for maximum expected time per block (in nanoseconds).
const DefaultTimePerBlock = 30 * time.Second

// Params defines the set of Connection parameters.
type Params struct {
	// maximum expected time per block (in nanoseconds), used to enforce block delay. This parameter should reflect the
	// largest amount of time that the chain might reasonably take to produce the next block under normal operating
	// conditions. A safe choice is 3-5x the expected time per block.
	MaxExpectedTimePerBlock uint64
}

// NewParams creates a new parameter configuration for the ibc connection module
func NewParams(timePerBlock uint64) Params {
	return Params{
		MaxExpectedTimePerBlock: timePerBlock,
	}
}

// DefaultParams is the default parameter configuration for the ibc connection module
func DefaultParams() Params {
	return NewParams(uint64(DefaultTimePerBlock))
}

// Validate ensures MaxExpectedTimePerBlock is non-zero
func (p Params) Validate() error {
	if p.MaxExpectedTimePerBlock == 0 {
		return errors.New("MaxExpectedTimePerBlock cannot be zero")
	}
	return nil
}

// Marshal encodes the params as ibc.core.connection.v1.Params.
func (p Params) Marshal() ([]byte, error) {
	return encoding.NewEncoder().Uint64(1, p.MaxExpectedTimePerBlock).Finish()
}

// Unmarshal decodes an ibc.core.connection.v1.Params.
func (p *Params) Unmarshal(bz []byte) error {
	*p = Params{}
	return encoding.Range(bz, func(f encoding.Field) (err error) {
		if f.Num == 1 {
			p.MaxExpectedTimePerBlock, err = f.AsUint64()
		}
		return err
	})
}
