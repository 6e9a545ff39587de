package notify

import (
	"slices"
	"time"
)

// State is the full notification state. Values returned from the Store are
// snapshots; mutating their slices does not affect the store.
type State struct {
	Notifications     []Notification
	Toasts            []Toast
	UnreadCount       int
	Settings          Settings
	RealtimeConnected bool
	Loading           bool
	Error             *string
	LastSyncTime      *time.Time

	// Version increases by one on every applied op.
	Version uint64
}

// NewState returns an empty state using the given settings.
func NewState(s Settings) State {
	return State{
		Notifications: []Notification{},
		Toasts:        []Toast{},
		Settings:      s,
	}
}

// Clone returns a deep copy of the collections so the result can be handed
// to observers without sharing backing arrays.
func (s State) Clone() State {
	out := s
	out.Notifications = make([]Notification, len(s.Notifications))
	for i, n := range s.Notifications {
		n.Actions = slices.Clone(n.Actions)
		out.Notifications[i] = n
	}
	out.Toasts = make([]Toast, len(s.Toasts))
	for i, t := range s.Toasts {
		t.Actions = slices.Clone(t.Actions)
		out.Toasts[i] = t
	}
	if s.Error != nil {
		e := *s.Error
		out.Error = &e
	}
	if s.LastSyncTime != nil {
		ts := *s.LastSyncTime
		out.LastSyncTime = &ts
	}
	return out
}

// Notification returns the notification with the given ID.
func (s State) Notification(id string) (Notification, bool) {
	for _, n := range s.Notifications {
		if n.ID == id {
			return n, true
		}
	}
	return Notification{}, false
}

// Toast returns the toast with the given ID.
func (s State) Toast(id string) (Toast, bool) {
	for _, t := range s.Toasts {
		if t.ID == id {
			return t, true
		}
	}
	return Toast{}, false
}

// Stats summarizes the durable collection.
type Stats struct {
	Total       int              `json:"total"`
	Unread      int              `json:"unread"`
	ByType      map[Type]int     `json:"by_type"`
	ByPriority  map[Priority]int `json:"by_priority"`
	LastCreated *time.Time       `json:"last_created,omitempty"`
}

// Stats derives summary counts from the durable collection.
func (s State) Stats() Stats {
	st := Stats{
		Total:      len(s.Notifications),
		Unread:     s.UnreadCount,
		ByType:     make(map[Type]int),
		ByPriority: make(map[Priority]int),
	}
	for _, n := range s.Notifications {
		st.ByType[n.Type]++
		st.ByPriority[n.Priority]++
		if st.LastCreated == nil || n.Timestamp.After(*st.LastCreated) {
			ts := n.Timestamp
			st.LastCreated = &ts
		}
	}
	return st
}

func countUnread(ns []Notification) int {
	c := 0
	for _, n := range ns {
		if !n.Read {
			c++
		}
	}
	return c
}
