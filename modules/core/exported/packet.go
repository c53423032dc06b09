package exported

// PacketI defines the standard interface for IBC packets
type PacketI interface {
	GetSequence() uint64
	GetTimeoutHeight() Height
	GetTimeoutTimestamp() uint64
	GetSourcePort() string
	GetSourceChannel() string
	GetDestPort() string
	GetDestChannel() string
	GetData() []byte
	ValidateBasic() error
}

// Acknowledgement defines the interface used to return
// acknowledgements in the OnRecvPacketExecute callback.
type Acknowledgement interface {
	// Success tells core IBC if the application state changes made while
	// processing the packet should be written to state or not.
	// This is independent of application level success/error which is encoded in the acknowledgement
	// bytes in a protocol specific way.
	Success() bool
	Acknowledgement() []byte
}
