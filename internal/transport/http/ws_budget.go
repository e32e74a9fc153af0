package http

import (
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"civiccents-service/internal/domain"
	"civiccents-service/internal/game/budget"
)

type startPayload struct {
	Income float64 `json:"income"`
}

type choicePayload struct {
	Index int `json:"index"`
}

type budgetState struct {
	*budget.Session
	GoalReached bool `json:"goalReached"`
}

// serveBudgetWS runs one budget challenge per connection. The session is
// single-player and mutated only by the read loop, so frames are written
// inline without a writer goroutine.
func (h *Handler) serveBudgetWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session := budget.NewSession(budget.Catalog(), rand.New(rand.NewSource(time.Now().UnixNano())))

	sendState := func() bool {
		msg := outboundMessage[any]{Type: "state", Payload: budgetState{Session: session, GoalReached: session.GoalReached()}}
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("ws write error: %v", err)
			return false
		}
		return true
	}
	sendError := func(msg string) bool {
		if err := conn.WriteJSON(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: msg}}); err != nil {
			log.Printf("ws write error: %v", err)
			return false
		}
		return true
	}

	if !sendState() {
		return
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		switch inbound.Type {
		case "start":
			var payload startPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				if !sendError("invalid start payload") {
					return
				}
				continue
			}
			if err := session.Start(payload.Income); err != nil {
				if !sendError(startErrorMessage(err)) {
					return
				}
				continue
			}
		case "choice":
			var payload choicePayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				if !sendError("invalid choice payload") {
					return
				}
				continue
			}
			err := session.ApplyChoice(payload.Index)
			switch {
			case errors.Is(err, domain.ErrInsufficientFunds):
				// The session froze into game over; fall through to the
				// state frame so the client sees the terminal status.
			case err != nil:
				if !sendError("no active scenario to decide") {
					return
				}
				continue
			}
		case "next-month":
			if err := session.AdvanceMonth(); err != nil {
				if !sendError("finish the month before advancing") {
					return
				}
				continue
			}
		case "reset":
			session.Reset()
		default:
			if !sendError("unsupported message type") {
				return
			}
			continue
		}

		if !sendState() {
			return
		}
	}
}

func startErrorMessage(err error) string {
	if errors.Is(err, domain.ErrIncomeOutOfRange) {
		return "income must be between 1000 and 10000"
	}
	return "challenge already started"
}
