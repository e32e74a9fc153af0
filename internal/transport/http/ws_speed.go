package http

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"civiccents-service/internal/game/speed"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type answerPayload struct {
	Answer string `json:"answer"`
}

type tickPayload struct {
	TimeLeft int `json:"timeLeft"`
}

type finalPayload struct {
	Score     int `json:"score"`
	TotalXP   int `json:"totalXP"`
	Completed int `json:"completed"`
}

// serveSpeedWS runs one timed challenge per connection. The server owns the
// countdown: a one-second ticker drives the game clock, so a stalled client
// cannot stretch its round.
func (h *Handler) serveSpeedWS(w http.ResponseWriter, r *http.Request) {
	mode := speed.Mode(r.URL.Query().Get("game"))
	if mode != speed.ModeMath && mode != speed.ModeWord {
		http.Error(w, "game must be math or word", http.StatusBadRequest)
		return
	}
	diff := speed.Difficulty(r.URL.Query().Get("difficulty"))
	switch diff {
	case speed.Easy, speed.Medium, speed.Hard:
	default:
		http.Error(w, "difficulty must be easy, medium, or hard", http.StatusBadRequest)
		return
	}
	name := r.URL.Query().Get("name")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	var mu sync.Mutex
	game := speed.NewGame(mode, diff, rand.New(rand.NewSource(time.Now().UnixNano())))

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	tickerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(tickerDone)
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				mu.Lock()
				if game.Phase != speed.PhaseActive {
					mu.Unlock()
					continue
				}
				expired := game.Tick()
				timeLeft := game.TimeLeft
				final := finalPayload{Score: game.Score, TotalXP: game.TotalXP, Completed: game.Completed}
				mu.Unlock()

				var msg outboundMessage[any]
				if expired {
					h.recordScore(r.Context(), string(mode), name, final.Score)
					msg = outboundMessage[any]{Type: "expired", Payload: final}
				} else {
					msg = outboundMessage[any]{Type: "tick", Payload: tickPayload{TimeLeft: timeLeft}}
				}
				select {
				case send <- msg:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "state", Payload: *game}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "start":
			mu.Lock()
			game.Start()
			state := *game
			mu.Unlock()
			send <- outboundMessage[any]{Type: "state", Payload: state}
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}}
				continue
			}
			mu.Lock()
			result, err := game.Submit(payload.Answer)
			state := *game
			mu.Unlock()
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage[any]{Type: "result", Payload: result}
			send <- outboundMessage[any]{Type: "state", Payload: state}
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(closeSignals)
	<-tickerDone
	close(send)
	<-writerDone
}

func (h *Handler) recordScore(ctx context.Context, game, name string, score int) {
	if h.leaderboard == nil || name == "" {
		return
	}
	if err := h.leaderboard.Record(ctx, game, name, score); err != nil {
		log.Printf("record %s score for %s: %v", game, name, err)
	}
}
