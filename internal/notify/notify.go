// Package notify — события об изменениях для дашбордов и фронтенда.
// Доставка at-most-once: потребители перечитывают состояние целиком,
// поэтому потерянное событие не ломает ничего, кроме свежести экрана.
package notify

import "sync"

type Event struct {
	Entity string `json:"entity"` // "client", "post", "guard", "assignment"
	ID     uint   `json:"id"`
	Action string `json:"action"` // "create", "update", "delete", "assign", "reassign", "unassign"
}

type Notifier interface {
	Publish(ev Event)
}

// Noop — заглушка, когда Redis не настроен.
type Noop struct{}

func (Noop) Publish(Event) {}

// Recorder копит события в памяти, используется в тестах.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
