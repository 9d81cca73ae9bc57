package stt

import "context"

const (
	MockName = "none"
	MockText = "(audio)"
)

// Mock emits a fixed placeholder for every non-empty frame.
type Mock struct{}

func NewMock() *Mock { return &Mock{} }

func (m *Mock) Name() string { return MockName }

func (m *Mock) Open() Stream { return mockStream{} }

type mockStream struct{}

func (mockStream) Feed(ctx context.Context, frame []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(frame) == 0 {
		return "", nil
	}
	return MockText, nil
}

func (mockStream) Close(context.Context) (string, error) { return "", nil }
