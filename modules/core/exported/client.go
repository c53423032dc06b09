package exported

import (
	storetypes "cosmossdk.io/store/types"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Status represents the status of a client
type Status string

const (
	// Mock is the client type of the consensus-free light client used by
	// the testing package.
	Mock string = "00-mock"

	// Tendermint is used to indicate that the client uses the Tendermint Consensus Algorithm.
	Tendermint string = "07-tendermint"

	// Active is a status type of a client. An active client is allowed to be used.
	Active Status = "Active"

	// Frozen is a status type of a client. A frozen client is not allowed to be used.
	Frozen Status = "Frozen"

	// Expired is a status type of a client. An expired client is not allowed to be used.
	Expired Status = "Expired"

	// Unknown indicates there was an error in determining the status of a client.
	Unknown Status = "Unknown"

	// Unauthorized indicates that the client type is not registered as an allowed client type.
	Unauthorized Status = "Unauthorized"
)

// LightClientModule is the capability set a concrete light client must
// implement to be pluggable into core IBC. Every call is scoped to a single
// client instance identified by clientID; the module reads and writes its
// client and consensus states through the ClientStoreProvider it is given
// when registered on the 02-client router.
type LightClientModule interface {
	// RegisterStoreProvider is called by core IBC when the module is added to the router.
	RegisterStoreProvider(storeProvider ClientStoreProvider)

	// ClientStateTypeURL returns the type url of the client state accepted by Initialize.
	ClientStateTypeURL() string

	// UnmarshalClientMessage decodes a header, misbehaviour or any other client
	// message accepted by the module from its type url and encoded value.
	UnmarshalClientMessage(typeURL string, bz []byte) (ClientMessage, error)

	// Initialize is called upon client creation, it allows the client to perform validation on the client state and initial consensus state.
	// The light client module is responsible for setting any client-specific data in the store. This includes the client state,
	// initial consensus state and any associated metadata.
	Initialize(ctx sdk.Context, clientID string, clientState, consensusState []byte) error

	// VerifyClientMessage must verify a ClientMessage. A ClientMessage could be a Header, Misbehaviour, or batch update.
	// It must handle each type of ClientMessage appropriately. Calls to CheckForMisbehaviour, UpdateState, and UpdateStateOnMisbehaviour
	// will assume that the content of the ClientMessage has been verified and can be trusted. An error should be returned
	// if the ClientMessage fails to verify.
	VerifyClientMessage(ctx sdk.Context, clientID string, clientMsg ClientMessage) error

	// CheckForMisbehaviour checks for evidence of a misbehaviour in Header or Misbehaviour type. It assumes the ClientMessage
	// has already been verified.
	CheckForMisbehaviour(ctx sdk.Context, clientID string, clientMsg ClientMessage) bool

	// UpdateStateOnMisbehaviour should perform appropriate state changes on a client state given that misbehaviour has been detected and verified
	UpdateStateOnMisbehaviour(ctx sdk.Context, clientID string, clientMsg ClientMessage)

	// UpdateState updates and stores as necessary any associated information for an IBC client, such as the ClientState and corresponding ConsensusState.
	// Upon successful update, a list of consensus heights is returned. It assumes the ClientMessage has already been verified.
	UpdateState(ctx sdk.Context, clientID string, clientMsg ClientMessage) []Height

	// VerifyMembership verifies a proof of the existence of a value at the given path
	// against the consensus root stored for height.
	// The caller is expected to construct the full path from a CommitmentPrefix and a standardized path (as defined in ICS 24).
	VerifyMembership(
		ctx sdk.Context,
		clientID string,
		height Height,
		proof []byte,
		path Path,
		value []byte,
	) error

	// VerifyNonMembership verifies a proof of the absence of a given path
	// against the consensus root stored for height.
	VerifyNonMembership(
		ctx sdk.Context,
		clientID string,
		height Height,
		proof []byte,
		path Path,
	) error

	// Status must return the status of the client. Only Active clients are allowed to process packets.
	Status(ctx sdk.Context, clientID string) Status

	// LatestHeight returns the latest height of the client. If no client is present for the provided client identifier a zero value height may be returned.
	LatestHeight(ctx sdk.Context, clientID string) Height

	// TimestampAtHeight must return the timestamp for the consensus state associated with the provided height.
	TimestampAtHeight(ctx sdk.Context, clientID string, height Height) (uint64, error)
}

// ClientStoreProvider defines an interface for providing isolated,
// prefixed client stores to light client instances.
type ClientStoreProvider interface {
	ClientStore(ctx sdk.Context, clientID string) storetypes.KVStore
}

// ClientMessage is an interface used to update an IBC client.
// The update may be done by a single header, a batch of headers, misbehaviour, or any type which when verified produces
// a change to state of the IBC client
type ClientMessage interface {
	ClientType() string
	ValidateBasic() error
}

// Height is a wrapper interface over clienttypes.Height
// all clients must use the concrete implementation in types
type Height interface {
	IsZero() bool
	LT(Height) bool
	LTE(Height) bool
	EQ(Height) bool
	GT(Height) bool
	GTE(Height) bool
	GetRevisionNumber() uint64
	GetRevisionHeight() uint64
	Increment() Height
	Decrement() (Height, bool)
	String() string
}

// String returns the string representation of a client status.
func (s Status) String() string {
	return string(s)
}
