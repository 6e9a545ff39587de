package notify

import "time"

// Reduce applies op to s and returns the resulting state. It never mutates
// s: collections are copied before they are changed. Ops that do not change
// anything (unknown IDs, already-read notifications) return s unchanged,
// including its Version.
func Reduce(s State, op Op) State {
	next, changed := reduce(s, op)
	if !changed {
		return s
	}
	next.Version = s.Version + 1
	return next
}

func reduce(s State, op Op) (State, bool) {
	switch op := op.(type) {
	case AddNotification:
		return addNotification(s, BuildNotification(op.Input)), true

	case MarkNotificationRead:
		return markRead(s, op.ID, nil)

	case RemoveNotification:
		return removeNotification(s, op.ID)

	case MarkAllRead:
		ns := make([]Notification, len(s.Notifications))
		for i, n := range s.Notifications {
			n.Read = true
			ns[i] = n
		}
		s.Notifications = ns
		s.UnreadCount = 0
		return s, true

	case ClearNotifications:
		s.Notifications = []Notification{}
		s.UnreadCount = 0
		return s, true

	case AddToast:
		return pushToast(s, BuildToast(op.Input, s.Settings)), true

	case RemoveToast:
		return removeToast(s, op.ID)

	case ClearToasts:
		s.Toasts = []Toast{}
		return s, true

	case AddRealTimeNotification:
		n := BuildNotification(op.Input)
		s = addNotification(s, n)
		if n.Priority.Elevated() {
			s = pushToast(s, CompanionToast(n, s.Settings))
		}
		return s, true

	case UpdateSettings:
		s.Settings = op.Patch.Apply(s.Settings)
		s.Toasts = capToasts(s.Toasts, s.Settings.MaxToasts)
		return s, true

	case SetLoading:
		s.Loading = op.Loading
		return s, true

	case SetError:
		s.Error = op.Err
		return s, true

	case ClearError:
		s.Error = nil
		return s, true

	case SetRealtimeConnected:
		s.RealtimeConnected = op.Connected
		return s, true

	case UpdateLastSyncTime:
		at := op.At
		s.LastSyncTime = &at
		return s, true

	case FetchStarted:
		s.Loading = true
		s.Error = nil
		return s, true

	case FetchSucceeded:
		ns := make([]Notification, 0, min(len(op.Items), MaxNotifications))
		for _, n := range op.Items {
			if len(ns) == MaxNotifications {
				break
			}
			n.Actions = cloneActions(n.Actions)
			ns = append(ns, n)
		}
		at := op.At
		s.Notifications = ns
		s.UnreadCount = countUnread(ns)
		s.LastSyncTime = &at
		s.Loading = false
		s.Error = nil
		return s, true

	case FetchFailed:
		reason := op.Reason
		s.Error = &reason
		s.Loading = false
		return s, true

	case Acknowledged:
		at := op.At
		return markRead(s, op.ID, &at)
	}

	return s, false
}

// addNotification prepends n. An entry already holding n.ID is replaced so
// IDs stay unique when a hub redelivers a push or a push races a fetch.
func addNotification(s State, n Notification) State {
	ns := make([]Notification, 0, len(s.Notifications)+1)
	ns = append(ns, n)

	unread := s.UnreadCount
	for _, existing := range s.Notifications {
		if existing.ID == n.ID {
			if !existing.Read {
				unread--
			}
			continue
		}
		ns = append(ns, existing)
	}

	if !n.Read {
		unread++
	}

	if len(ns) > MaxNotifications {
		unread -= countUnread(ns[MaxNotifications:])
		ns = ns[:MaxNotifications]
	}

	s.Notifications = ns
	s.UnreadCount = max(unread, 0)
	return s
}

func markRead(s State, id string, acknowledgedAt *time.Time) (State, bool) {
	idx := indexOfNotification(s.Notifications, id)
	if idx < 0 || s.Notifications[idx].Read {
		return s, false
	}

	ns := make([]Notification, len(s.Notifications))
	copy(ns, s.Notifications)
	ns[idx].Read = true
	if acknowledgedAt != nil {
		at := *acknowledgedAt
		ns[idx].AcknowledgedOn = &at
	}

	s.Notifications = ns
	s.UnreadCount = max(s.UnreadCount-1, 0)
	return s, true
}

func removeNotification(s State, id string) (State, bool) {
	idx := indexOfNotification(s.Notifications, id)
	if idx < 0 {
		return s, false
	}

	wasUnread := !s.Notifications[idx].Read
	ns := make([]Notification, 0, len(s.Notifications)-1)
	ns = append(ns, s.Notifications[:idx]...)
	ns = append(ns, s.Notifications[idx+1:]...)

	s.Notifications = ns
	if wasUnread {
		s.UnreadCount = max(s.UnreadCount-1, 0)
	}
	return s, true
}

// pushToast prepends t, replacing any toast that already uses its ID, and
// trims the tail down to the configured cap.
func pushToast(s State, t Toast) State {
	ts := make([]Toast, 0, len(s.Toasts)+1)
	ts = append(ts, t)
	for _, existing := range s.Toasts {
		if existing.ID == t.ID {
			continue
		}
		ts = append(ts, existing)
	}
	s.Toasts = capToasts(ts, s.Settings.MaxToasts)
	return s
}

func removeToast(s State, id string) (State, bool) {
	idx := -1
	for i, t := range s.Toasts {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, false
	}

	ts := make([]Toast, 0, len(s.Toasts)-1)
	ts = append(ts, s.Toasts[:idx]...)
	ts = append(ts, s.Toasts[idx+1:]...)
	s.Toasts = ts
	return s, true
}

// capToasts keeps at least one toast so a fresh insert is never evicted by
// its own arrival.
func capToasts(ts []Toast, limit int) []Toast {
	limit = max(limit, 1)
	if len(ts) <= limit {
		return ts
	}
	return ts[:limit]
}

func indexOfNotification(ns []Notification, id string) int {
	for i, n := range ns {
		if n.ID == id {
			return i
		}
	}
	return -1
}
