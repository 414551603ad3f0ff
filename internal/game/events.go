package game

import (
	"fmt"

	"github.com/vovakirdan/tetris-core/internal/config"
)

// EventKind names a game event. The values match the effect keys in config.
type EventKind string

const (
	EventLineClear EventKind = config.EventLineClear
	EventTetris    EventKind = config.EventTetris
	EventCombo     EventKind = config.EventCombo
	EventScore     EventKind = config.EventScore
	EventLevelUp   EventKind = config.EventLevelUp
	EventHardDrop  EventKind = config.EventHardDrop
	EventGameOver  EventKind = config.EventGameOver
)

// Event is something that happened during a lock or drop.
type Event struct {
	Kind  EventKind
	Lines int // rows cleared
	Combo int // consecutive clearing locks after the first
	Level int // level after the event
	Score int // points awarded by the event
}

func (e Event) String() string {
	switch e.Kind {
	case EventLineClear, EventTetris:
		return fmt.Sprintf("%s(%d lines, +%d)", e.Kind, e.Lines, e.Score)
	case EventCombo:
		return fmt.Sprintf("combo(x%d, +%d)", e.Combo, e.Score)
	case EventLevelUp:
		return fmt.Sprintf("level-up(%d)", e.Level)
	case EventHardDrop, EventScore:
		return fmt.Sprintf("%s(+%d)", e.Kind, e.Score)
	default:
		return string(e.Kind)
	}
}
