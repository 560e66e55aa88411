package types

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

// StreamFragment is one incremental piece of a streamed model reply.
// The channel carrying fragments is closed on end-of-stream; a fragment
// with Err set is always the last one delivered.
type StreamFragment struct {
	Text string
	Err  error
}
