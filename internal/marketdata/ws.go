package marketdata

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

// StreamWS streams bus events to websocket clients, optionally filtered to
// one ticker via the "ticker" query parameter.
type StreamWS struct {
	bus      *Bus
	upgrader websocket.Upgrader
}

func NewStreamWS(origin string, bus *Bus) *StreamWS {
	return &StreamWS{
		bus: bus,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool {
			return allowOrigin(r, origin)
		}},
	}
}

func allowOrigin(r *http.Request, origin string) bool {
	if origin == "*" {
		return true
	}
	return strings.EqualFold(r.Header.Get("Origin"), origin)
}

func (h *StreamWS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	ticker := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("ticker")))

	ch := h.bus.Subscribe()
	defer h.bus.Unsubscribe(ch)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	for {
		select {
		case evt, ok := <-ch:
			if !ok {
				return
			}
			if ticker != "" && evt.Ticker != ticker {
				continue
			}
			if err := conn.WriteJSON(evt); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
