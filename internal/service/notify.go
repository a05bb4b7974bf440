// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"sync"
)

// Change kinds carried by ProfessorEvent.
const (
	ProfessorAdded          = "added"
	ProfessorUpdated        = "updated"
	ProfessorPictureChanged = "picture_changed"
	ProfessorDeleted        = "deleted"
)

// ProfessorEvent describes a mutation of a professor record. OldName is set
// only for renames.
type ProfessorEvent struct {
	Kind    string
	Name    string
	OldName string
}

// Notifier fans professor-change events out to subscribed views. It replaces
// the ad-hoc "tell every open window" registry of the legacy application:
// consumers subscribe explicitly and get a cancel func to unsubscribe when
// their window closes.
type Notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]func(ProfessorEvent)
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func(ProfessorEvent))}
}

// Subscribe registers fn to receive future events and returns a cancel
// function. Cancel is idempotent.
func (n *Notifier) Subscribe(fn func(ProfessorEvent)) (cancel func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	n.subs[id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// publish delivers ev to every subscriber, synchronously and in no
// particular order.
func (n *Notifier) publish(ev ProfessorEvent) {
	n.mu.Lock()
	fns := make([]func(ProfessorEvent), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
