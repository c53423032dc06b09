package types

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cosmos/ibc-core/modules/core/exported"
)

// Router is a map from a light client type to its LightClientModule, which
// contains all the callbacks core IBC requires from a light client.
type Router struct {
	routes        map[string]exported.LightClientModule
	storeProvider exported.ClientStoreProvider
}

// NewRouter returns an instance of the Router.
func NewRouter(storeProvider exported.ClientStoreProvider) *Router {
	return &Router{
		routes:        make(map[string]exported.LightClientModule),
		storeProvider: storeProvider,
	}
}

// AddRoute adds LightClientModule for a given client type. It returns the Router
// so AddRoute calls can be linked. It will panic if the client type has already
// been registered or is invalid.
func (rtr *Router) AddRoute(clientType string, module exported.LightClientModule) *Router {
	if err := ValidateClientType(clientType); err != nil {
		panic(fmt.Errorf("failed to add route: %w", err))
	}

	if rtr.HasRoute(clientType) {
		panic(fmt.Errorf("route %s has already been registered", clientType))
	}

	if module == nil {
		panic(errors.New("light client module cannot be nil"))
	}

	rtr.routes[clientType] = module

	module.RegisterStoreProvider(rtr.storeProvider)
	return rtr
}

// HasRoute returns true if the Router has a module registered for the client type or false otherwise.
func (rtr *Router) HasRoute(clientType string) bool {
	_, ok := rtr.routes[clientType]
	return ok
}

// GetRoute returns the LightClientModule registered for the client type of
// the given client identifier.
func (rtr *Router) GetRoute(clientID string) (exported.LightClientModule, bool) {
	clientType, _, err := ParseClientIdentifier(clientID)
	if err != nil {
		return nil, false
	}

	module, ok := rtr.routes[clientType]
	return module, ok
}

// RouteByClientStateTypeURL returns the client type and LightClientModule
// whose client state type url matches typeURL.
func (rtr *Router) RouteByClientStateTypeURL(typeURL string) (string, exported.LightClientModule, bool) {
	for _, clientType := range rtr.ClientTypes() {
		module := rtr.routes[clientType]
		if module.ClientStateTypeURL() == typeURL {
			return clientType, module, true
		}
	}
	return "", nil, false
}

// ClientTypes returns the registered client types in sorted order.
func (rtr *Router) ClientTypes() []string {
	clientTypes := make([]string, 0, len(rtr.routes))
	for clientType := range rtr.routes {
		clientTypes = append(clientTypes, clientType)
	}
	sort.Strings(clientTypes)
	return clientTypes
}
