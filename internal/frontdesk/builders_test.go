package frontdesk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/frontdesk/internal/core/notify"
)

func TestHelperDefaults(t *testing.T) {
	tests := []struct {
		name       string
		in         notify.ToastInput
		typ        notify.Type
		duration   time.Duration
		persistent bool
	}{
		{name: "success", in: SuccessToast("Saved", "ok"), typ: notify.TypeSuccess, duration: 4 * time.Second},
		{name: "error", in: ErrorToast("Failed", "nope"), typ: notify.TypeError, duration: 0, persistent: true},
		{name: "warning", in: WarningToast("Careful", "hmm"), typ: notify.TypeWarning, duration: 6 * time.Second},
		{name: "info", in: InfoToast("FYI", "note"), typ: notify.TypeInfo, duration: 4 * time.Second},
		{name: "loading", in: LoadingToast("Importing", "please wait"), typ: notify.TypeLoading, duration: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.typ, tt.in.Type)
			require.NotNil(t, tt.in.Duration)
			assert.Equal(t, tt.duration, *tt.in.Duration)
			assert.Equal(t, tt.persistent, tt.in.Persistent)
			assert.Empty(t, tt.in.ID, "helpers leave ID generation to the store")
		})
	}
}

func TestHelperOptionsOverrideDefaults(t *testing.T) {
	data := map[string]int{"visitors": 3}
	in := ErrorToast("Failed", "nope",
		WithID("err-1"),
		WithDuration(10*time.Second),
		WithPersistent(false),
		WithPosition(notify.PositionBottomLeft),
		WithPriority(notify.PriorityLow),
		WithActions(notify.Action{Label: "Retry", Action: "retry"}),
		WithData(data),
	)

	assert.Equal(t, "err-1", in.ID)
	assert.Equal(t, 10*time.Second, *in.Duration)
	assert.False(t, in.Persistent)
	assert.Equal(t, notify.PositionBottomLeft, in.Position)
	assert.Equal(t, notify.PriorityLow, in.Priority)
	assert.Equal(t, []notify.Action{{Label: "Retry", Action: "retry"}}, in.Actions)
	assert.Equal(t, data, in.Data)
	assert.Equal(t, notify.TypeError, in.Type, "options do not change the helper type")
}

func TestDomainHelpers(t *testing.T) {
	t.Run("checked in", func(t *testing.T) {
		in := VisitorCheckedInToast("Ada Lovelace", "Grace Hopper")
		assert.Equal(t, notify.TypeVisitorCheckin, in.Type)
		assert.Equal(t, "Visitor Checked In", in.Title)
		assert.Equal(t, "Ada Lovelace has checked in to see Grace Hopper", in.Message)
	})

	t.Run("checked out", func(t *testing.T) {
		in := VisitorCheckedOutToast("Ada")
		assert.Equal(t, notify.TypeVisitorCheckout, in.Type)
		assert.Equal(t, "Ada has checked out", in.Message)
	})

	t.Run("overdue carries the two actions", func(t *testing.T) {
		in := VisitorOverdueToast("Ada", 25)
		assert.Equal(t, notify.TypeVisitorOverdue, in.Type)
		assert.Equal(t, "Ada is 25 minutes past their scheduled departure", in.Message)
		assert.Equal(t, notify.PriorityHigh, in.Priority)
		assert.Equal(t, time.Duration(0), *in.Duration)
		require.Len(t, in.Actions, 2)
		assert.Equal(t, ActionContactVisitor, in.Actions[0].Action)
		assert.Equal(t, ActionExtendVisit, in.Actions[1].Action)
	})

	t.Run("security alert", func(t *testing.T) {
		in := SecurityAlertToast("Door forced at dock B")
		assert.Equal(t, notify.TypeSecurityAlert, in.Type)
		assert.Equal(t, notify.PriorityCritical, in.Priority)
		assert.True(t, in.Persistent)
	})

	t.Run("invitation sent", func(t *testing.T) {
		in := InvitationSentToast("ada@example.com")
		assert.Equal(t, notify.TypeInvitationSent, in.Type)
		assert.Contains(t, in.Message, "ada@example.com")
	})

	t.Run("invitations imported", func(t *testing.T) {
		ok := InvitationsImportedToast(12, 0)
		assert.Equal(t, notify.TypeSuccess, ok.Type)
		assert.Equal(t, "12 invitations sent", ok.Message)

		partial := InvitationsImportedToast(10, 2)
		assert.Equal(t, notify.TypeWarning, partial.Type)
		assert.Equal(t, "10 invitations sent, 2 failed", partial.Message)
	})

	t.Run("upload failed", func(t *testing.T) {
		in := UploadFailedToast("passport.pdf", "file too large")
		assert.Equal(t, notify.TypeError, in.Type)
		assert.Equal(t, "Could not upload passport.pdf: file too large", in.Message)
		assert.Equal(t, "Could not upload passport.pdf", UploadFailedToast("passport.pdf", "").Message)
	})
}

func TestSecurityAlertNotification(t *testing.T) {
	in := SecurityAlertNotification("Door forced", "Dock B")
	assert.Equal(t, notify.PriorityEmergency, in.Priority)
	assert.Equal(t, "Door forced (Dock B)", in.Message)
	assert.Equal(t, map[string]string{"location": "Dock B"}, in.Data)

	bare := SecurityAlertNotification("Door forced", "")
	assert.Equal(t, "Door forced", bare.Message)
	assert.Nil(t, bare.Data)
}

func TestHelpersArePure(t *testing.T) {
	a := VisitorOverdueToast("Ada", 5)
	b := VisitorOverdueToast("Ada", 5)
	assert.Equal(t, a, b)

	a.Actions[0].Label = "changed"
	assert.Equal(t, "Contact Visitor", VisitorOverdueToast("Ada", 5).Actions[0].Label)
}
