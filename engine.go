package riotauth

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/MrEthical07/riotauth/session"
)

// Engine defines a public type used by riotauth APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
// One Engine holds one identity's session; Authorize and Reauthorize
// serialize on an internal mutex, so the session is never mutated by two
// runs at once.
type Engine struct {
	config       Config
	httpClient   *http.Client
	jar          *session.Jar
	sess         *session.Session
	store        session.Store
	codeProvider CodeProvider
	audit        *auditDispatcher
	metrics      *Metrics

	mu sync.Mutex
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters: map[MetricID]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

// Session returns a copy of the current session's token fields.
func (e *Engine) Session() session.Session {
	if e == nil {
		return session.Session{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return *e.sess
}

// State returns the serializable snapshot of the current session, including
// the recorded cookies. Suitable for [session.Store.Save] or
// [Builder.WithSessionState].
func (e *Engine) State() session.State {
	if e == nil {
		return session.State{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return session.Snapshot(e.sess, e.jar)
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) emitAudit(ctx context.Context, step, runID string, success bool, err error, metadata map[string]string) {
	if e == nil || e.audit == nil {
		return
	}

	event := AuditEvent{
		Timestamp: time.Now(),
		Step:      step,
		RunID:     runID,
		UserID:    e.sess.UserID,
		Label:     auditLabelFromContext(ctx),
		Success:   success,
		Metadata:  metadata,
	}
	if err != nil {
		event.Error = err.Error()
	}

	e.audit.Emit(event)
}
