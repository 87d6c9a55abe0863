// Package audit records browser/admin security events to the local key-value
// store and raises threshold-based alerts. It is self-contained: no
// interaction with the content data layer.
package audit

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/maqomuz/maktab/core"
	"github.com/maqomuz/maktab/core/backend"
)

// Event names. Handlers log these; the alert checks match on them.
const (
	EventAdminAccess     = "admin panel accessed"
	EventFailedLogin     = "failed login attempt"
	EventLogin           = "login"
	EventLogout          = "logout"
	EventSuspiciousAgent = "suspicious user agent detected"
	EventSessionTimeout  = "session timeout detected"
	EventSecurityAlert   = "security alert"
)

// KV keys, kept from the original site's localStorage layout.
const (
	logsKey         = "securityLogs"
	lastActivityKey = "lastActivity"
	sessionStartKey = "sessionStart"
)

type (
	Entry struct {
		ID         string            `json:"id"`
		Timestamp  time.Time         `json:"timestamp"`
		Event      string            `json:"event"`
		Details    map[string]string `json:"details,omitempty"`
		RemoteAddr string            `json:"remote_addr,omitempty"`
		UserAgent  string            `json:"user_agent,omitempty"`
	}

	Report struct {
		TotalEvents     int           `json:"total_events"`
		FailedLogins    int           `json:"failed_logins"`
		Suspicious      int           `json:"suspicious"`
		SecurityAlerts  int           `json:"security_alerts"`
		LastActivity    time.Time     `json:"last_activity"`
		SessionDuration time.Duration `json:"session_duration"`
	}

	Logger struct {
		mu      sync.Mutex
		entries []Entry
		kv      backend.KV
		conf    core.AuditConfig
		log     core.Logger
		now     func() time.Time
	}
)

// NewLogger loads any persisted log from kv and marks the session start.
func NewLogger(kv backend.KV, conf core.AuditConfig, log core.Logger) *Logger {
	l := &Logger{
		kv:   kv,
		conf: conf,
		log:  log,
		now:  time.Now,
	}
	if err := kv.Get(logsKey, &l.entries); err != nil && err != backend.ErrNoValue {
		log.Warn("loading audit log", err)
	}
	_ = kv.Put(sessionStartKey, l.now().UTC())
	return l
}

// SetClock overrides the time source. Tests only.
func (l *Logger) SetClock(now func() time.Time) { l.now = now }

// Log appends an entry (bounded to the configured maximum, oldest dropped),
// persists the log and runs the alert checks.
func (l *Logger) Log(event string, details map[string]string, remoteAddr, userAgent string) {
	l.mu.Lock()
	entry := Entry{
		ID:         uuid.New().String(),
		Timestamp:  l.now().UTC(),
		Event:      event,
		Details:    details,
		RemoteAddr: remoteAddr,
		UserAgent:  userAgent,
	}
	l.entries = append(l.entries, entry)
	if len(l.entries) > l.conf.MaxEntries {
		l.entries = l.entries[len(l.entries)-l.conf.MaxEntries:]
	}
	l.persist()
	l.mu.Unlock()

	l.checkAlerts(event)
}

// Touch records admin activity; an inactivity gap longer than the session
// timeout is itself logged. Checked lazily, no background poller.
func (l *Logger) Touch() {
	now := l.now().UTC()

	var last time.Time
	if err := l.kv.Get(lastActivityKey, &last); err == nil && !last.IsZero() {
		if now.Sub(last) > l.conf.SessionTimeout {
			l.Log(EventSessionTimeout, map[string]string{"idle": now.Sub(last).String()}, "", "")
		}
	}
	_ = l.kv.Put(lastActivityKey, now)
}

func (l *Logger) checkAlerts(event string) {
	if event == EventSecurityAlert {
		return
	}
	recent := l.recent(l.conf.AlertWindow)

	var failed, suspicious int
	for _, e := range recent {
		switch e.Event {
		case EventFailedLogin:
			failed++
		case EventSuspiciousAgent, EventSessionTimeout:
			suspicious++
		}
	}

	if failed >= l.conf.FailedLoginThreshold {
		l.alert("multiple failed login attempts detected", failed)
	}
	if suspicious >= l.conf.SuspiciousThreshold {
		l.alert("suspicious activity detected", suspicious)
	}
}

func (l *Logger) alert(message string, count int) {
	l.log.Warn("SECURITY ALERT: "+message, map[string]interface{}{"count": count})
	l.mu.Lock()
	l.entries = append(l.entries, Entry{
		ID:        uuid.New().String(),
		Timestamp: l.now().UTC(),
		Event:     EventSecurityAlert,
		Details:   map[string]string{"message": message},
	})
	l.persist()
	l.mu.Unlock()
}

func (l *Logger) recent(window time.Duration) []Entry {
	cutoff := l.now().UTC().Add(-window)

	l.mu.Lock()
	defer l.mu.Unlock()

	recent := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		if e.Timestamp.After(cutoff) {
			recent = append(recent, e)
		}
	}
	return recent
}

// Summarize counts the security-relevant events of the last 24 hours.
func Summarize(entries []Entry, now time.Time) Report {
	cutoff := now.UTC().Add(-24 * time.Hour)

	var rep Report
	for _, e := range entries {
		if !e.Timestamp.After(cutoff) {
			continue
		}
		rep.TotalEvents++
		switch e.Event {
		case EventFailedLogin:
			rep.FailedLogins++
		case EventSuspiciousAgent, EventSessionTimeout:
			rep.Suspicious++
		case EventSecurityAlert:
			rep.SecurityAlerts++
		}
	}
	return rep
}

// ClearEntries deletes the persisted log.
func ClearEntries(kv backend.KV) error {
	return kv.Delete(logsKey)
}

// LoadEntries reads the persisted log; an absent log is empty, not an error.
func LoadEntries(kv backend.KV) ([]Entry, error) {
	var entries []Entry
	if err := kv.Get(logsKey, &entries); err != nil && err != backend.ErrNoValue {
		return nil, err
	}
	return entries, nil
}

// Report summarizes the last 24 hours.
func (l *Logger) Report() Report {
	rep := Summarize(l.Entries(), l.now())

	_ = l.kv.Get(lastActivityKey, &rep.LastActivity)
	var start time.Time
	if err := l.kv.Get(sessionStartKey, &start); err == nil && !start.IsZero() {
		rep.SessionDuration = l.now().UTC().Sub(start)
	}
	return rep
}

// Entries returns a copy of the recorded log, newest last.
func (l *Logger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Clear wipes the log. Admin CLI only.
func (l *Logger) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = nil
	return l.kv.Delete(logsKey)
}

// persist is called with l.mu held.
func (l *Logger) persist() {
	if err := l.kv.Put(logsKey, l.entries); err != nil {
		l.log.Error("persisting audit log", err)
	}
}
