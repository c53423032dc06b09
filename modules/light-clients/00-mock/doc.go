/*
Package mock implements a consensus-free light client. Headers submitted to
it are trusted as-is: the client records the height, timestamp and commitment
root they carry and verifies ICS-23 membership proofs against those roots.
Two headers for the same height with different roots are misbehaviour and
freeze the client.

The client is meant for chains whose block history is known to the verifying
side, such as the in-process chains of the testing package, and for
exercising the core handshake and packet logic without a full consensus
verification algorithm.
*/
package mock
