package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRevisionSource struct {
	mock.Mock
}

func (m *MockRevisionSource) GetRevisionMarker() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func receiveRefresh(t *testing.T, ch chan []byte) string {
	t.Helper()
	select {
	case msg := <-ch:
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("expected a refresh signal")
		return ""
	}
}

func TestRevisionPoller_FirstTickOnlyPrimes(t *testing.T) {
	source := &MockRevisionSource{}
	source.On("GetRevisionMarker").Return(int64(7), nil).Once()

	hub := NewSSEHub()
	clientChan := hub.RegisterClient()
	defer hub.UnregisterClient(clientChan)

	poller := NewRevisionPoller(source, hub)
	poller.tick()

	assert.Empty(t, clientChan)
}

func TestRevisionPoller_BroadcastsOnGreaterMarker(t *testing.T) {
	source := &MockRevisionSource{}
	source.On("GetRevisionMarker").Return(int64(7), nil).Once()
	source.On("GetRevisionMarker").Return(int64(9), nil).Once()

	hub := NewSSEHub()
	clientChan := hub.RegisterClient()
	defer hub.UnregisterClient(clientChan)

	poller := NewRevisionPoller(source, hub)
	poller.tick()
	poller.tick()

	msg := receiveRefresh(t, clientChan)
	assert.Contains(t, msg, "event: refresh")
	assert.Contains(t, msg, `"revision":9`)
}

func TestRevisionPoller_UnchangedMarkerIsSilent(t *testing.T) {
	source := &MockRevisionSource{}
	source.On("GetRevisionMarker").Return(int64(7), nil)

	hub := NewSSEHub()
	clientChan := hub.RegisterClient()
	defer hub.UnregisterClient(clientChan)

	poller := NewRevisionPoller(source, hub)
	poller.tick()
	poller.tick()
	poller.tick()

	assert.Empty(t, clientChan)
}

func TestRevisionPoller_SwallowsPollErrors(t *testing.T) {
	source := &MockRevisionSource{}
	source.On("GetRevisionMarker").Return(int64(0), errors.New("connection refused")).Once()
	source.On("GetRevisionMarker").Return(int64(3), nil).Once()
	source.On("GetRevisionMarker").Return(int64(4), nil).Once()

	hub := NewSSEHub()
	clientChan := hub.RegisterClient()
	defer hub.UnregisterClient(clientChan)

	poller := NewRevisionPoller(source, hub)
	poller.tick() // error: swallowed, not primed
	poller.tick() // primes at 3
	poller.tick() // 4 > 3: broadcast

	msg := receiveRefresh(t, clientChan)
	assert.Contains(t, msg, `"revision":4`)
}

func TestRevisionPoller_StartStop(t *testing.T) {
	source := &MockRevisionSource{}
	source.On("GetRevisionMarker").Return(int64(1), nil)

	poller := NewRevisionPoller(source, NewSSEHub())
	poller.SetInterval(10 * time.Millisecond)
	poller.Start()

	time.Sleep(35 * time.Millisecond)
	poller.Stop()

	// The prime read plus at least one ticker read
	require.GreaterOrEqual(t, len(source.Calls), 2)
}

func TestSSEHub_NonBlockingBroadcast(t *testing.T) {
	hub := NewSSEHub()
	clientChan := hub.RegisterClient()
	defer hub.UnregisterClient(clientChan)

	// Fill the client buffer well past capacity; broadcast must not block
	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			hub.BroadcastRefresh(int64(i))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a slow client")
	}
}
