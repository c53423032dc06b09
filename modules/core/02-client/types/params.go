package types

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cosmos/ibc-core/internal/encoding"
	"github.com/cosmos/ibc-core/modules/core/exported"
)

// DefaultAllowedClients are the default clients for the AllowedClients parameter.
var DefaultAllowedClients = []string{exported.Mock, exported.Tendermint}

// Params defines the set of IBC light client parameters.
type Params struct {
	// AllowedClients defines the list of allowed client state types which can be created
	// and interacted with. A client type not on the list is reported as Unauthorized.
	AllowedClients []string
}

// NewParams creates a new parameter configuration for the ibc client module
func NewParams(allowedClients ...string) Params {
	return Params{
		AllowedClients: allowedClients,
	}
}

// DefaultParams is the default parameter configuration for the ibc-client module.
func DefaultParams() Params {
	return NewParams(DefaultAllowedClients...)
}

// Validate all ibc-client module parameters
func (p Params) Validate() error {
	return validateClients(p.AllowedClients)
}

// IsAllowedClient checks if the given client type is registered on the allowlist.
func (p Params) IsAllowedClient(clientType string) bool {
	return slices.Contains(p.AllowedClients, clientType)
}

// Marshal encodes the params as ibc.core.client.v1.Params.
func (p Params) Marshal() ([]byte, error) {
	return encoding.NewEncoder().Strings(1, p.AllowedClients).Finish()
}

// Unmarshal decodes an ibc.core.client.v1.Params.
func (p *Params) Unmarshal(bz []byte) error {
	*p = Params{}
	return encoding.Range(bz, func(f encoding.Field) error {
		if f.Num != 1 {
			return nil
		}
		clientType, err := f.AsString()
		if err != nil {
			return err
		}
		p.AllowedClients = append(p.AllowedClients, clientType)
		return nil
	})
}

// validateClients checks that the given clients are not blank and there are no duplicates.
func validateClients(clients []string) error {
	foundClients := make(map[string]bool, len(clients))
	for i, clientType := range clients {
		if strings.TrimSpace(clientType) == "" {
			return fmt.Errorf("client type %d cannot be blank", i)
		}
		if foundClients[clientType] {
			return fmt.Errorf("duplicate client type: %s", clientType)
		}
		foundClients[clientType] = true
	}

	return nil
}
