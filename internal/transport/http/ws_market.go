package http

import (
	"log"
	"net/http"
)

// serveMarketWS streams simulator snapshots to the client. The stream is
// read-only; orders go through the REST endpoints.
func (h *Handler) serveMarketWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, cancel := h.sim.Subscribe()
	defer cancel()

	readerGone := make(chan struct{})
	go func() {
		defer close(readerGone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := conn.WriteJSON(outboundMessage[any]{Type: "snapshot", Payload: h.sim.Snapshot()}); err != nil {
		return
	}
	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(outboundMessage[any]{Type: "snapshot", Payload: snap}); err != nil {
				return
			}
		case <-readerGone:
			return
		}
	}
}
