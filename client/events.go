package client

import (
	"encoding/json"
	"fmt"

	"codeberg.org/tslocum/pips/model"
)

// EventConnected is sent after the hub handshake completes.
type EventConnected struct{}

// EventReconnecting is sent when the connection was lost and will be retried.
type EventReconnecting struct {
	Err error
}

// EventDisconnected is sent once the client stops.
type EventDisconnected struct{}

// EventState carries a full game state.
type EventState struct {
	State *model.Snapshot
}

// EventGameStart carries the initial game state.
type EventGameStart struct {
	State *model.Snapshot
}

// EventRole assigns the local player's seat and colour.
type EventRole struct {
	Player model.PlayerID
	Color  model.Color
}

// EventWaiting is sent while waiting for an opponent.
type EventWaiting struct{}

// EventTurn changes whose turn it is.
type EventTurn struct {
	Player model.PlayerID
}

// EventError is an error reported by the server.
type EventError struct {
	Message string
}

// EventInvalidMove reports a rejected move.
type EventInvalidMove struct {
	Reason string
}

// EventGameOver ends the game.
type EventGameOver struct {
	Winner model.PlayerID
}

// decodeEvent decodes an invocation sent by the server.
func decodeEvent(target string, args []json.RawMessage) (interface{}, error) {
	arg := func(i int, v interface{}) error {
		if i >= len(args) {
			return fmt.Errorf("%s: missing argument %d", target, i+1)
		}
		err := json.Unmarshal(args[i], v)
		if err != nil {
			return fmt.Errorf("%s: argument %d: %w", target, i+1, err)
		}
		return nil
	}

	switch target {
	case "UpdateGameState", "GameStart":
		if len(args) == 0 {
			return nil, fmt.Errorf("%s: missing game state", target)
		}
		s, err := model.DecodeSnapshot(args[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", target, err)
		}
		if target == "GameStart" {
			return &EventGameStart{State: s}, nil
		}
		return &EventState{State: s}, nil
	case "AssignPlayerRole":
		ev := &EventRole{}
		if err := arg(0, &ev.Player); err != nil {
			return nil, err
		}
		if err := arg(1, &ev.Color); err != nil {
			return nil, err
		}
		return ev, nil
	case "WaitingForOpponent":
		return &EventWaiting{}, nil
	case "NotifyTurn":
		ev := &EventTurn{}
		return ev, arg(0, &ev.Player)
	case "NotifyError":
		ev := &EventError{}
		return ev, arg(0, &ev.Message)
	case "InvalidMove":
		ev := &EventInvalidMove{}
		return ev, arg(0, &ev.Reason)
	case "GameOver":
		ev := &EventGameOver{}
		return ev, arg(0, &ev.Winner)
	default:
		return nil, fmt.Errorf("unknown hub method %q", target)
	}
}
