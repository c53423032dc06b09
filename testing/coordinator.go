package ibctesting

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	ChainIDPrefix = "testchain"
	// ChainIDSuffix carries the revision number; set it to "" for revision 0 chain ids
	ChainIDSuffix   = "-1"
	globalStartTime = time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	TimeIncrement   = time.Second * 5
)

// Coordinator owns a set of TestChains sharing one clock. Every chain proposes
// its next header at CurrentTime, so mock clients tracking one chain from
// another see consistent timestamps.
type Coordinator struct {
	*testing.T

	CurrentTime time.Time
	Chains      map[string]*TestChain
}

// NewCoordinator creates n chains named by GetChainID(1..n).
func NewCoordinator(t *testing.T, n int) *Coordinator {
	t.Helper()

	coord := &Coordinator{
		T:           t,
		CurrentTime: globalStartTime,
		Chains:      make(map[string]*TestChain, n),
	}
	for i := 1; i <= n; i++ {
		chainID := GetChainID(i)
		coord.Chains[chainID] = NewTestChain(t, coord, chainID)
	}
	return coord
}

// IncrementTime advances the shared clock by TimeIncrement.
func (coord *Coordinator) IncrementTime() {
	coord.IncrementTimeBy(TimeIncrement)
}

// IncrementTimeBy advances the shared clock and moves every chain's proposed
// header to it. Advancing past a client's trusting period expires it.
func (coord *Coordinator) IncrementTimeBy(increment time.Duration) {
	coord.CurrentTime = coord.CurrentTime.Add(increment).UTC()
	for _, chain := range coord.Chains {
		coord.UpdateTimeForChain(chain)
	}
}

// UpdateTimeForChain sets the proposed header time of chain to the shared clock.
func (coord *Coordinator) UpdateTimeForChain(chain *TestChain) {
	chain.ProposedHeader.Time = coord.CurrentTime.UTC()
}

// CreateMockChannels opens channels bound to the mock application port on
// both ends of an already connected path.
func (*Coordinator) CreateMockChannels(path *Path) {
	path.EndpointA.ChannelConfig.PortID = MockPort
	path.EndpointB.ChannelConfig.PortID = MockPort

	path.CreateChannels()
}

// GetChain returns the chain with chainID, failing the test if it is unknown.
func (coord *Coordinator) GetChain(chainID string) *TestChain {
	chain, found := coord.Chains[chainID]
	require.Truef(coord.T, found, "%s chain does not exist", chainID)
	return chain
}

// GetChainID returns the chain id of the chain created at index.
func GetChainID(index int) string {
	return ChainIDPrefix + strconv.Itoa(index) + ChainIDSuffix
}

// CommitBlock commits one block on each chain and then advances the clock once.
// Chains must not repeat.
func (coord *Coordinator) CommitBlock(chains ...*TestChain) {
	for _, chain := range chains {
		chain.NextBlock()
	}
	coord.IncrementTime()
}

// CommitNBlocks commits n blocks on chain, advancing the clock after each.
func (coord *Coordinator) CommitNBlocks(chain *TestChain, n uint64) {
	for i := uint64(0); i < n; i++ {
		chain.NextBlock()
		coord.IncrementTime()
	}
}
