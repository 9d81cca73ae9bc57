// Package stt turns streamed audio frames into transcript text.
package stt

import "context"

// Transcriber opens one Stream per audio connection.
type Transcriber interface {
	Name() string
	Open() Stream
}

// Stream receives audio frames in arrival order. Feed and Close return the
// transcript text that became available, or "" when there is none yet.
type Stream interface {
	Feed(ctx context.Context, frame []byte) (string, error)
	Close(ctx context.Context) (string, error)
}
