/*
This file contains the variables, constants, and default values
used in the testing package and commonly defined in tests.
*/
package ibctesting

import (
	"time"

	connectiontypes "github.com/cosmos/ibc-core/modules/core/03-connection/types"
	ibcmock "github.com/cosmos/ibc-core/modules/light-clients/00-mock"
	"github.com/cosmos/ibc-core/testing/mock"
)

const (
	FirstClientID     = "00-mock-0"
	SecondClientID    = "00-mock-1"
	FirstChannelID    = "channel-0"
	FirstConnectionID = "connection-0"

	// Default params constants used to create a 00-mock client
	TrustingPeriod time.Duration = time.Hour * 24 * 7 * 2

	// DefaultDelayPeriod is the connection delay period used by default, no delay is enforced
	DefaultDelayPeriod uint64 = 0

	DefaultChannelVersion = mock.Version
	InvalidID             = "IDisInvalid"

	MockPort = mock.PortID

	// RelayerAddress is the raw 20 byte address of the account signing every relayed message
	RelayerAddress = "relayer_____________"

	LongString = "LoremipsumdolorsitameconsecteturadipiscingeliseddoeiusmodtemporincididuntutlaboreetdoloremagnaaliquUtenimadminimveniamquisnostrudexercitationullamcolaborisnisiutaliquipexeacommodoconsequDuisauteiruredolorinreprehenderitinvoluptateelitsseillumoloreufugiatnullaariaturEcepteurintoccaectupidatatonroidentuntnulpaquiofficiaeseruntmollitanimidestlaborum"
)

var (
	// ClientType is the light client type used by every test chain
	ClientType = ibcmock.ModuleName

	// DefaultOpenInitVersion lets the chain on which OpenInit is called pick the connection version
	DefaultOpenInitVersion *connectiontypes.Version

	// ConnectionVersion is the default connection version used by the testing package
	ConnectionVersion = connectiontypes.GetCompatibleVersions()[0]
)
