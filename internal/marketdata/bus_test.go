package marketdata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusFanOut(t *testing.T) {
	bus := NewBus()
	a := bus.Subscribe()
	b := bus.Subscribe()

	bus.Publish(Event{Type: "observation", Ticker: "ALPH"})

	assert.Equal(t, "ALPH", (<-a).Ticker)
	assert.Equal(t, "ALPH", (<-b).Ticker)
}

func TestBusUnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus()
	ch := bus.Subscribe()
	bus.Unsubscribe(ch)
	_, open := <-ch
	assert.False(t, open)

	// publishing after unsubscribe must not panic
	bus.Publish(Event{Type: "observation"})
}

func TestBusSlowSubscriberDropsEvents(t *testing.T) {
	bus := NewBus()
	ch := bus.Subscribe()
	for i := 0; i < 200; i++ {
		bus.Publish(Event{Type: "observation"})
	}
	assert.Len(t, ch, 100, "buffer caps at capacity without blocking the publisher")
}

func TestObservationUnmarshal(t *testing.T) {
	raw := []byte(`{"ticker":"ALPH","open":"10.5","high":null,"low":"9.8","close":"10.2","previousclose":"10.0","date":"2026-08-28"}`)
	var obs Observation
	require.NoError(t, json.Unmarshal(raw, &obs))
	assert.Equal(t, "ALPH", obs.Ticker)
	assert.Nil(t, obs.High)
	require.NotNil(t, obs.Close)
	assert.Equal(t, "10.2", obs.Close.String())
}
