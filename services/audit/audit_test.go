package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/maqomuz/maktab/core"
	"github.com/maqomuz/maktab/storage/local"
)

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Debug(string, ...interface{})      {}
func (l *recordingLogger) Info(string, ...interface{})       {}
func (l *recordingLogger) Warn(msg string, _ ...interface{}) { l.warnings = append(l.warnings, msg) }
func (l *recordingLogger) Error(string, ...interface{})      {}
func (l *recordingLogger) Fatal(string, ...interface{})      {}

func testConf() core.AuditConfig {
	return core.AuditConfig{
		MaxEntries:           1000,
		AlertWindow:          15 * time.Minute,
		FailedLoginThreshold: 5,
		SuspiciousThreshold:  3,
		SessionTimeout:       30 * time.Minute,
	}
}

func setup(t *testing.T) (*Logger, *recordingLogger, *time.Time) {
	t.Helper()

	kv, err := local.Open(filepath.Join(t.TempDir(), "kv.json"))
	if err != nil {
		t.Fatalf("local.Open() failed: %v", err)
	}

	log := &recordingLogger{}
	l := NewLogger(kv, testConf(), log)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l.SetClock(func() time.Time { return now })
	return l, log, &now
}

func TestLogger_Log(t *testing.T) {
	l, _, _ := setup(t)

	l.Log(EventLogin, map[string]string{"email": "admin@test.test"}, "10.0.0.1", "Mozilla/5.0")

	entries := l.Entries()
	if len(entries) != 1 {
		t.Fatalf("got %d entries; want 1", len(entries))
	}
	e := entries[0]
	if e.ID == "" {
		t.Error("entry has no ID")
	}
	if e.Event != EventLogin || e.RemoteAddr != "10.0.0.1" || e.Details["email"] != "admin@test.test" {
		t.Errorf("entry = %+v", e)
	}
}

func TestLogger_boundedLog(t *testing.T) {
	l, _, _ := setup(t)

	for i := 0; i < 1010; i++ {
		l.Log(EventAdminAccess, nil, "", "")
	}
	if got := len(l.Entries()); got != 1000 {
		t.Errorf("got %d entries; the log must stay bounded at 1000", got)
	}
}

func TestLogger_failedLoginAlert(t *testing.T) {
	l, log, _ := setup(t)

	for i := 0; i < 4; i++ {
		l.Log(EventFailedLogin, nil, "10.0.0.1", "")
	}
	if len(log.warnings) != 0 {
		t.Fatalf("alert fired after 4 failed logins; threshold is 5")
	}

	l.Log(EventFailedLogin, nil, "10.0.0.1", "")
	if len(log.warnings) == 0 {
		t.Fatal("no alert after 5 failed logins in the window")
	}

	entries := l.Entries()
	if entries[len(entries)-1].Event != EventSecurityAlert {
		t.Error("alert was not recorded in the log itself")
	}
}

func TestLogger_failedLoginAlert_windowExpires(t *testing.T) {
	l, log, now := setup(t)

	for i := 0; i < 4; i++ {
		l.Log(EventFailedLogin, nil, "", "")
	}
	*now = now.Add(16 * time.Minute) // old failures age out of the window

	l.Log(EventFailedLogin, nil, "", "")
	if len(log.warnings) != 0 {
		t.Error("alert fired on failures outside the 15-minute window")
	}
}

func TestLogger_suspiciousAlert(t *testing.T) {
	l, log, _ := setup(t)

	for i := 0; i < 3; i++ {
		l.Log(EventSuspiciousAgent, nil, "", "curl/7.0")
	}
	if len(log.warnings) == 0 {
		t.Fatal("no alert after 3 suspicious events in the window")
	}
}

func TestLogger_Touch_sessionTimeout(t *testing.T) {
	l, _, now := setup(t)

	l.Touch()
	*now = now.Add(31 * time.Minute)
	l.Touch()

	var found bool
	for _, e := range l.Entries() {
		if e.Event == EventSessionTimeout {
			found = true
		}
	}
	if !found {
		t.Error("a 31-minute gap must be logged as a session timeout")
	}
}

func TestLogger_Touch_withinTimeout(t *testing.T) {
	l, _, now := setup(t)

	l.Touch()
	*now = now.Add(29 * time.Minute)
	l.Touch()

	for _, e := range l.Entries() {
		if e.Event == EventSessionTimeout {
			t.Fatal("a 29-minute gap logged as a timeout")
		}
	}
}

func TestLogger_Report(t *testing.T) {
	l, _, now := setup(t)

	l.Log(EventFailedLogin, nil, "", "")
	l.Log(EventSuspiciousAgent, nil, "", "")
	l.Log(EventLogin, nil, "", "")

	*now = now.Add(time.Hour)
	rep := l.Report()
	if rep.TotalEvents != 3 || rep.FailedLogins != 1 || rep.Suspicious != 1 {
		t.Errorf("Report() = %+v", rep)
	}

	// events older than 24h drop out
	*now = now.Add(25 * time.Hour)
	rep = l.Report()
	if rep.TotalEvents != 0 {
		t.Errorf("TotalEvents = %d after 24h; want 0", rep.TotalEvents)
	}
}

func TestLogger_persistence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kv.json")

	kv, err := local.Open(path)
	if err != nil {
		t.Fatalf("local.Open() failed: %v", err)
	}
	l := NewLogger(kv, testConf(), &recordingLogger{})
	l.Log(EventLogin, nil, "", "")

	// a fresh process sees the persisted log
	kv2, err := local.Open(path)
	if err != nil {
		t.Fatalf("local.Open() failed: %v", err)
	}
	l2 := NewLogger(kv2, testConf(), &recordingLogger{})
	if got := len(l2.Entries()); got != 1 {
		t.Errorf("got %d entries after reload; want 1", got)
	}
}
