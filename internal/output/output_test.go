package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestUI() (*UI, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &UI{Out: out, ErrOut: errOut}, out, errOut
}

func TestInfo(t *testing.T) {
	u, out, _ := newTestUI()
	u.Info("hello %s", "world")
	assert.Contains(t, out.String(), "hello world")
}

func TestSuccess(t *testing.T) {
	u, out, _ := newTestUI()
	u.Success("done %d", 42)
	assert.Contains(t, out.String(), "done 42")
}

func TestWarning(t *testing.T) {
	u, _, errOut := newTestUI()
	u.Warning("careful %s", "now")
	assert.Contains(t, errOut.String(), "careful now")
}

func TestError(t *testing.T) {
	u, _, errOut := newTestUI()
	u.Error("failed %s", "badly")
	assert.Contains(t, errOut.String(), "failed badly")
}

func TestVerboseLog_Enabled(t *testing.T) {
	u, out, _ := newTestUI()
	u.Verbose = true
	u.VerboseLog("detail %d", 1)
	assert.Contains(t, out.String(), "detail 1")
}

func TestVerboseLog_Disabled(t *testing.T) {
	u, out, _ := newTestUI()
	u.Verbose = false
	u.VerboseLog("detail %d", 1)
	assert.Empty(t, out.String())
}

func TestDryRunMsg_Enabled(t *testing.T) {
	u, _, errOut := newTestUI()
	u.DryRun = true
	u.DryRunMsg("would delete %s", "T-1024")
	assert.Contains(t, errOut.String(), "[DRY-RUN]")
	assert.Contains(t, errOut.String(), "would delete T-1024")
}

func TestDryRunMsg_Disabled(t *testing.T) {
	u, _, errOut := newTestUI()
	u.DryRunMsg("would delete %s", "T-1024")
	assert.Empty(t, errOut.String())
}

func TestStatusColors_PassThroughUnknown(t *testing.T) {
	assert.Equal(t, "WEIRD", TicketStatusColor("WEIRD"))
	assert.Equal(t, "WEIRD", PriorityColor("WEIRD"))
	assert.Equal(t, "WEIRD", VersionStatusColor("WEIRD"))
	assert.Equal(t, "WEIRD", OutboundStatusColor("WEIRD"))
}

func TestStatusColors_KnownValues(t *testing.T) {
	// Colors are disabled in tests (no TTY); the text must survive.
	for _, s := range []string{"OPEN", "IN_PROGRESS", "RESOLVED", "CLOSED"} {
		assert.Contains(t, TicketStatusColor(s), s)
	}
	for _, s := range []string{"PLANNING", "DEVELOPING", "UAT_READY", "UAT_VERIFYING", "RELEASED", "DELIVERED", "ARCHIVED"} {
		assert.Contains(t, VersionStatusColor(s), s)
	}
	for _, s := range []string{"PENDING", "APPROVED", "REJECTED"} {
		assert.Contains(t, OutboundStatusColor(s), s)
	}
}

func TestHealthColor(t *testing.T) {
	assert.Contains(t, HealthColor(95), "95")
	assert.Contains(t, HealthColor(60), "60")
	assert.Contains(t, HealthColor(10), "10")
}

func TestTable_RendersHeadersAndRows(t *testing.T) {
	u, out, _ := newTestUI()
	table := u.Table([]string{"ID", "TITLE"})
	table.Append([]string{"T-1", "Slow login"})
	table.Render()

	s := out.String()
	assert.True(t, strings.Contains(s, "T-1"))
	assert.True(t, strings.Contains(s, "Slow login"))
}
