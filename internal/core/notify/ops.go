package notify

import "time"

// Op is a single state transition. The set of ops is closed; Reduce handles
// every implementation in this package.
type Op interface {
	isOp()
}

// AddNotification prepends a durable notification. Input.ID and
// Input.Timestamp must already be resolved.
type AddNotification struct {
	Input NotificationInput
}

// MarkNotificationRead flips a single unread notification to read.
type MarkNotificationRead struct {
	ID string
}

// RemoveNotification deletes a notification by ID.
type RemoveNotification struct {
	ID string
}

// MarkAllRead flips every notification to read.
type MarkAllRead struct{}

// ClearNotifications empties the durable collection.
type ClearNotifications struct{}

// AddToast prepends a toast. Input.ID and Input.Timestamp must already be
// resolved.
type AddToast struct {
	Input ToastInput
}

// RemoveToast deletes a toast by ID.
type RemoveToast struct {
	ID string
}

// ClearToasts empties the toast collection.
type ClearToasts struct{}

// AddRealTimeNotification behaves like AddNotification and additionally
// raises a companion toast for elevated priorities.
type AddRealTimeNotification struct {
	Input NotificationInput
}

// UpdateSettings shallow-merges Patch into the settings.
type UpdateSettings struct {
	Patch SettingsPatch
}

type SetLoading struct {
	Loading bool
}

type SetError struct {
	Err *string
}

type ClearError struct{}

// SetRealtimeConnected records the outcome of a connect or disconnect
// attempt.
type SetRealtimeConnected struct {
	Connected bool
}

type UpdateLastSyncTime struct {
	At time.Time
}

// FetchStarted marks the beginning of a remote fetch.
type FetchStarted struct{}

// FetchSucceeded replaces the durable collection with Items.
type FetchSucceeded struct {
	Items []Notification
	At    time.Time
}

// FetchFailed records the failure reason of a remote fetch.
type FetchFailed struct {
	Reason string
}

// Acknowledged marks a notification read after the remote service accepted
// the acknowledgement.
type Acknowledged struct {
	ID string
	At time.Time
}

func (AddNotification) isOp()         {}
func (MarkNotificationRead) isOp()    {}
func (RemoveNotification) isOp()      {}
func (MarkAllRead) isOp()             {}
func (ClearNotifications) isOp()      {}
func (AddToast) isOp()                {}
func (RemoveToast) isOp()             {}
func (ClearToasts) isOp()             {}
func (AddRealTimeNotification) isOp() {}
func (UpdateSettings) isOp()          {}
func (SetLoading) isOp()              {}
func (SetError) isOp()                {}
func (ClearError) isOp()              {}
func (SetRealtimeConnected) isOp()    {}
func (UpdateLastSyncTime) isOp()      {}
func (FetchStarted) isOp()            {}
func (FetchSucceeded) isOp()          {}
func (FetchFailed) isOp()             {}
func (Acknowledged) isOp()            {}
