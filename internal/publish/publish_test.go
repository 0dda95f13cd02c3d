package publish

import (
	"context"
	"errors"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/pebbe/zmq4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/kwpic"
	"github.com/simonhull/kwpic/internal/export"
	"github.com/simonhull/kwpic/internal/kwtest"
	"github.com/simonhull/kwpic/internal/types"
)

type mockSocket struct {
	sent   [][]byte
	failAt int
	closed bool
}

func (m *mockSocket) SendBytes(data []byte, _ zmq4.Flag) (int, error) {
	if m.failAt > 0 && len(m.sent)+1 == m.failAt {
		return 0, errors.New("resource temporarily unavailable")
	}
	m.sent = append(m.sent, append([]byte(nil), data...))
	return len(data), nil
}

func (m *mockSocket) Close() error {
	m.closed = true
	return nil
}

func openLoop(t *testing.T, opts ...kwpic.Option) *kwpic.Stream {
	t.Helper()
	h := types.Header{Code: "Y", Comps: 1, Interleave: 1, LenX: 2, LenY: 1, LenZ: 3}
	path := kwtest.WriteFile(t, "loop.kw", kwtest.EncodeTagged(kwtest.HeaderRecords(h), nil, make([]byte, 6)))
	s, err := kwpic.Open(path, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func messageType(t *testing.T, payload []byte) string {
	t.Helper()
	var msg struct {
		Type string `cbor:"type"`
	}
	require.NoError(t, cbor.Unmarshal(payload, &msg))
	return msg.Type
}

func TestPublish(t *testing.T) {
	sock := &mockSocket{}
	p := New(sock, nil)

	n, err := p.Publish(context.Background(), openLoop(t), 0)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.Len(t, sock.sent, 5)
	assert.Equal(t, export.TypeStart, messageType(t, sock.sent[0]))
	for _, payload := range sock.sent[1:4] {
		assert.Equal(t, export.TypeImage, messageType(t, payload))
	}

	var end export.EndMessage
	require.NoError(t, cbor.Unmarshal(sock.sent[4], &end))
	assert.Equal(t, 3, end.Frames)

	var img export.ImageMessage
	require.NoError(t, cbor.Unmarshal(sock.sent[2], &img))
	assert.Equal(t, 1, img.ImageID)
	r, err := export.DecodeRaster(img.Data[export.PixelsKey])
	require.NoError(t, err)
	assert.Equal(t, []float64{128, 128}, r.Pix)

	require.NoError(t, p.Close())
	assert.True(t, sock.closed)
}

func TestPublish_Limit(t *testing.T) {
	sock := &mockSocket{}
	n, err := New(sock, nil).Publish(context.Background(), openLoop(t, kwpic.WithLooping(kwpic.LoopReverse)), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Len(t, sock.sent, 9)
}

func TestPublish_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sock := &mockSocket{}
	n, err := New(sock, nil).Publish(ctx, openLoop(t, kwpic.WithLooping(kwpic.LoopRepeat)), 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, n)
	assert.Equal(t, export.TypeEnd, messageType(t, sock.sent[len(sock.sent)-1]))
}

func TestPublish_SendError(t *testing.T) {
	sock := &mockSocket{failAt: 2}
	n, err := New(sock, nil).Publish(context.Background(), openLoop(t), 0)
	assert.ErrorContains(t, err, "zmq send")
	assert.Zero(t, n)
}
