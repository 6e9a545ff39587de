package notify

import "time"

// NotificationInput is the caller-facing shape of a new durable notification.
// Zero values are replaced by defaults in BuildNotification.
type NotificationInput struct {
	ID        string    `json:"id,omitempty"`
	Type      Type      `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Priority  Priority  `json:"priority,omitempty"`
	Timestamp time.Time `json:"timestamp,omitzero"`
	Actions   []Action  `json:"actions,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// ToastInput is the caller-facing shape of a new toast. A nil Duration or an
// empty Position means "use the configured default"; a Duration pointing at
// zero makes the toast sticky.
type ToastInput struct {
	ID         string
	Type       Type
	Title      string
	Message    string
	Priority   Priority
	Timestamp  time.Time
	Persistent bool
	Actions    []Action
	Data       any
	Duration   *time.Duration
	Position   Position
}

// BuildNotification applies the notification defaults to in. ID and
// Timestamp are taken as given; the store resolves them before building.
func BuildNotification(in NotificationInput) Notification {
	n := Notification{
		ID:         in.ID,
		Type:       in.Type,
		Title:      in.Title,
		Message:    in.Message,
		Priority:   in.Priority,
		Timestamp:  in.Timestamp,
		Read:       false,
		Persistent: true,
		Actions:    cloneActions(in.Actions),
		Data:       in.Data,
	}
	if n.Type == "" {
		n.Type = TypeInfo
	}
	if n.Priority == "" {
		n.Priority = PriorityMedium
	}
	return n
}

// BuildToast applies the toast defaults to in, falling back to s for the
// duration and position.
func BuildToast(in ToastInput, s Settings) Toast {
	t := Toast{
		ID:         in.ID,
		Type:       in.Type,
		Title:      in.Title,
		Message:    in.Message,
		Priority:   in.Priority,
		Timestamp:  in.Timestamp,
		Persistent: in.Persistent,
		Actions:    cloneActions(in.Actions),
		Data:       in.Data,
		Duration:   s.DefaultDuration,
		Position:   in.Position,
	}
	if in.Duration != nil {
		t.Duration = *in.Duration
	}
	if t.Duration < 0 {
		t.Duration = 0
	}
	if t.Position == "" {
		t.Position = s.Position
	}
	if t.Type == "" {
		t.Type = TypeInfo
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	return t
}

// CompanionToast builds the toast that accompanies an elevated realtime
// notification. Emergencies stay on screen until dismissed.
func CompanionToast(n Notification, s Settings) Toast {
	duration := ElevatedToastDuration
	persistent := false
	if n.Priority == PriorityEmergency {
		duration = 0
		persistent = true
	}

	return BuildToast(ToastInput{
		ID:         n.ID + CompanionToastIDSuffix,
		Type:       n.Type,
		Title:      n.Title,
		Message:    n.Message,
		Priority:   n.Priority,
		Timestamp:  n.Timestamp,
		Persistent: persistent,
		Actions:    n.Actions,
		Data:       n.Data,
		Duration:   &duration,
	}, s)
}

// DurationPtr is a small helper for populating ToastInput.Duration.
func DurationPtr(d time.Duration) *time.Duration {
	return &d
}

func cloneActions(in []Action) []Action {
	out := make([]Action, len(in))
	copy(out, in)
	return out
}
