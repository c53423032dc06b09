/*
Package client implements the ICS 02 - Client Semantics specification
(https://github.com/cosmos/ibc/tree/master/spec/core/ics-002-client-semantics). This
concrete implementation defines types and methods to store and update light
clients which tracks on other chain's state.
*/
package client
