package mock

import (
	"strings"
	"time"

	errorsmod "cosmossdk.io/errors"

	cmttypes "github.com/cometbft/cometbft/types"

	"github.com/cosmos/ibc-core/internal/encoding"
	clienttypes "github.com/cosmos/ibc-core/modules/core/02-client/types"
	"github.com/cosmos/ibc-core/modules/core/exported"
)

const (
	// ModuleName is the client type of the mock light client.
	ModuleName = exported.Mock

	// ClientStateTypeURL is the type url of the mock ClientState.
	ClientStateTypeURL = "/ibc.lightclients.mock.v1.ClientState"
)

// FrozenHeight is the height a client is frozen at once misbehaviour is
// detected. Any non-zero height would do.
var FrozenHeight = clienttypes.NewHeight(0, 1)

// ClientState tracks a counterparty chain by the headers submitted to it.
type ClientState struct {
	ChainId        string
	LatestHeight   clienttypes.Height
	FrozenHeight   clienttypes.Height
	TrustingPeriod time.Duration
}

// NewClientState creates a new ClientState instance
func NewClientState(chainID string, latestHeight clienttypes.Height, trustingPeriod time.Duration) *ClientState {
	return &ClientState{
		ChainId:        chainID,
		LatestHeight:   latestHeight,
		TrustingPeriod: trustingPeriod,
	}
}

// ClientType is the mock client type.
func (ClientState) ClientType() string {
	return ModuleName
}

// TypeURL returns the type url of the client state.
func (ClientState) TypeURL() string {
	return ClientStateTypeURL
}

// Validate performs a basic validation of the client state fields.
func (cs ClientState) Validate() error {
	if strings.TrimSpace(cs.ChainId) == "" {
		return errorsmod.Wrap(ErrInvalidChainID, "chain id cannot be empty string")
	}
	if len(cs.ChainId) > cmttypes.MaxChainIDLen {
		return errorsmod.Wrapf(ErrInvalidChainID, "chainID is too long; got: %d, max: %d", len(cs.ChainId), cmttypes.MaxChainIDLen)
	}
	if cs.TrustingPeriod <= 0 {
		return errorsmod.Wrap(ErrInvalidTrustingPeriod, "trusting period must be greater than zero")
	}

	// the latest height revision number must match the chain id revision number
	if cs.LatestHeight.RevisionNumber != clienttypes.ParseChainID(cs.ChainId) {
		return errorsmod.Wrapf(ErrInvalidHeaderHeight,
			"latest height revision number must match chain id revision number (%d != %d)", cs.LatestHeight.RevisionNumber, clienttypes.ParseChainID(cs.ChainId))
	}
	if cs.LatestHeight.RevisionHeight == 0 {
		return errorsmod.Wrap(ErrInvalidHeaderHeight, "mock client's latest height revision height cannot be zero")
	}

	return nil
}

// status returns the status of the mock client.
// The client may be:
// - Active: FrozenHeight is zero and client is not expired
// - Frozen: Frozen Height is not zero
// - Expired: the latest consensus state timestamp + trusting period <= current time
//
// A frozen client will become expired, so the Frozen status
// has higher precedence.
func (cs ClientState) status(now time.Time, latestConsensusState *ConsensusState) exported.Status {
	if !cs.FrozenHeight.IsZero() {
		return exported.Frozen
	}

	if latestConsensusState == nil {
		// if the client state does not have an associated consensus state for its latest height
		// then it must be expired
		return exported.Expired
	}

	if cs.IsExpired(latestConsensusState.GetTime(), now) {
		return exported.Expired
	}

	return exported.Active
}

// IsExpired returns whether or not the client has passed the trusting period since the last
// update (in which case no headers are considered valid).
func (cs ClientState) IsExpired(latestTimestamp, now time.Time) bool {
	expirationTime := latestTimestamp.Add(cs.TrustingPeriod)
	return !expirationTime.After(now)
}

// Marshal encodes the client state as ibc.lightclients.mock.v1.ClientState.
func (cs ClientState) Marshal() ([]byte, error) {
	return encoding.NewEncoder().
		String(1, cs.ChainId).
		Message(2, cs.LatestHeight).
		Message(3, cs.FrozenHeight).
		Uint64(4, uint64(cs.TrustingPeriod)).
		Finish()
}

// Unmarshal decodes an ibc.lightclients.mock.v1.ClientState.
func (cs *ClientState) Unmarshal(bz []byte) error {
	*cs = ClientState{}
	return encoding.Range(bz, func(f encoding.Field) (err error) {
		switch f.Num {
		case 1:
			cs.ChainId, err = f.AsString()
		case 2:
			err = f.Into(&cs.LatestHeight)
		case 3:
			err = f.Into(&cs.FrozenHeight)
		case 4:
			var period uint64
			period, err = f.AsUint64()
			cs.TrustingPeriod = time.Duration(period)
		}
		return err
	})
}
