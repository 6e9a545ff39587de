// Package notify holds the front desk notification model: durable
// notifications, ephemeral toasts, the settings that govern them, and the
// reducer that moves the combined state forward.
package notify

import "time"

// Type is the kind of a notification or toast. The first five values are
// generic severities, the rest are visitor-management domain kinds.
type Type string

const (
	TypeSuccess         Type = "success"
	TypeError           Type = "error"
	TypeWarning         Type = "warning"
	TypeInfo            Type = "info"
	TypeLoading         Type = "loading"
	TypeVisitorCheckin  Type = "visitor_checkin"
	TypeVisitorCheckout Type = "visitor_checkout"
	TypeVisitorOverdue  Type = "visitor_overdue"
	TypeSecurityAlert   Type = "security_alert"
	TypeInvitationSent  Type = "invitation_sent"
	TypeSystemAlert     Type = "system_alert"
)

// Priority orders notifications by urgency.
type Priority string

const (
	PriorityLow       Priority = "low"
	PriorityMedium    Priority = "medium"
	PriorityHigh      Priority = "high"
	PriorityCritical  Priority = "critical"
	PriorityEmergency Priority = "emergency"
)

// Elevated reports whether p is high enough to surface a companion toast
// when the notification arrives over the realtime channel.
func (p Priority) Elevated() bool {
	switch p {
	case PriorityHigh, PriorityCritical, PriorityEmergency:
		return true
	default:
		return false
	}
}

// Position is a screen corner (or edge center) where toasts are stacked.
type Position string

const (
	PositionTopLeft      Position = "top-left"
	PositionTopCenter    Position = "top-center"
	PositionTopRight     Position = "top-right"
	PositionBottomLeft   Position = "bottom-left"
	PositionBottomCenter Position = "bottom-center"
	PositionBottomRight  Position = "bottom-right"
)

// AllPositions lists every valid Position.
var AllPositions = []Position{
	PositionTopLeft,
	PositionTopCenter,
	PositionTopRight,
	PositionBottomLeft,
	PositionBottomCenter,
	PositionBottomRight,
}

// Valid reports whether p is one of AllPositions.
func (p Position) Valid() bool {
	for _, v := range AllPositions {
		if v == p {
			return true
		}
	}
	return false
}

// Action is a labelled call-to-action attached to a notification. Action is
// an identifier the UI resolves, e.g. "extend_visit".
type Action struct {
	Label  string `json:"label"`
	Action string `json:"action"`
}

// Notification is a durable notification. It survives until it is removed
// explicitly, cleared, or evicted by the collection cap.
type Notification struct {
	ID             string     `json:"id"`
	Type           Type       `json:"type"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	Priority       Priority   `json:"priority"`
	Timestamp      time.Time  `json:"timestamp"`
	Read           bool       `json:"read"`
	Persistent     bool       `json:"persistent"`
	Actions        []Action   `json:"actions"`
	Data           any        `json:"data"`
	AcknowledgedOn *time.Time `json:"acknowledgedOn,omitempty"`
}

// Toast is an ephemeral, UI-only message. A Duration of zero means the
// toast stays until dismissed.
type Toast struct {
	ID         string
	Type       Type
	Title      string
	Message    string
	Priority   Priority
	Timestamp  time.Time
	Persistent bool
	Actions    []Action
	Data       any
	Duration   time.Duration
	Position   Position
}

// Sticky reports whether the toast never auto-dismisses.
func (t Toast) Sticky() bool {
	return t.Duration == 0
}

// QuietHours suppresses desktop notifications inside a daily window.
// Start and End use 24h "HH:MM".
type QuietHours struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Start   string `json:"start"   yaml:"start"`
	End     string `json:"end"     yaml:"end"`
}

// Settings is the single process-wide notification configuration.
type Settings struct {
	Desktop         bool
	Email           bool
	Sound           bool
	Position        Position
	MaxToasts       int
	DefaultDuration time.Duration
	QuietHours      QuietHours
}

const (
	// MaxNotifications caps the durable collection.
	MaxNotifications = 100

	DefaultMaxToasts       = 5
	DefaultToastDuration   = 4 * time.Second
	ElevatedToastDuration  = 8 * time.Second
	CompanionToastIDSuffix = "-toast"
)

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Desktop:         true,
		Email:           false,
		Sound:           true,
		Position:        PositionTopRight,
		MaxToasts:       DefaultMaxToasts,
		DefaultDuration: DefaultToastDuration,
		QuietHours: QuietHours{
			Enabled: false,
			Start:   "22:00",
			End:     "08:00",
		},
	}
}

// SettingsPatch is a shallow partial update to Settings. Nil fields are left
// untouched.
type SettingsPatch struct {
	Desktop         *bool
	Email           *bool
	Sound           *bool
	Position        *Position
	MaxToasts       *int
	DefaultDuration *time.Duration
	QuietHours      *QuietHours
}

// Apply returns s with every non-nil field of p merged in.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.Desktop != nil {
		s.Desktop = *p.Desktop
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Sound != nil {
		s.Sound = *p.Sound
	}
	if p.Position != nil {
		s.Position = *p.Position
	}
	if p.MaxToasts != nil {
		s.MaxToasts = *p.MaxToasts
	}
	if p.DefaultDuration != nil {
		s.DefaultDuration = *p.DefaultDuration
	}
	if p.QuietHours != nil {
		s.QuietHours = *p.QuietHours
	}
	return s
}

// PatchFrom builds a patch that overwrites every field with the values in s.
func PatchFrom(s Settings) SettingsPatch {
	return SettingsPatch{
		Desktop:         &s.Desktop,
		Email:           &s.Email,
		Sound:           &s.Sound,
		Position:        &s.Position,
		MaxToasts:       &s.MaxToasts,
		DefaultDuration: &s.DefaultDuration,
		QuietHours:      &s.QuietHours,
	}
}
