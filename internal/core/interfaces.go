package core

// Frame is a raw serialized event pushed to one connection.
type Frame []byte

// SignalConnection abstracts a system messaging transport endpoint.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}
