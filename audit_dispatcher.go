package riotauth

import (
	"context"
	"sync"
	"sync/atomic"
)

// auditDispatcher decouples protocol steps from sink latency. Runs on one
// engine are serialized, so an emit must never stall the flow mid-protocol:
// events that do not fit the buffer are dropped and counted instead.
type auditDispatcher struct {
	sink    AuditSink
	events  chan AuditEvent
	quit    chan struct{}
	drained chan struct{}
	dropped atomic.Uint64
	once    sync.Once
}

func newAuditDispatcher(cfg AuditConfig, sink AuditSink) *auditDispatcher {
	if !cfg.Enabled {
		return nil
	}
	if sink == nil {
		sink = NoOpSink{}
	}
	buffer := cfg.BufferSize
	if buffer <= 0 {
		buffer = 1
	}

	d := &auditDispatcher{
		sink:    sink,
		events:  make(chan AuditEvent, buffer),
		quit:    make(chan struct{}),
		drained: make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *auditDispatcher) run() {
	defer close(d.drained)

	for {
		select {
		case event := <-d.events:
			d.sink.Emit(context.Background(), event)
		case <-d.quit:
			for {
				select {
				case event := <-d.events:
					d.sink.Emit(context.Background(), event)
				default:
					return
				}
			}
		}
	}
}

// Emit hands the event to the worker without blocking.
func (d *auditDispatcher) Emit(event AuditEvent) {
	if d == nil {
		return
	}

	select {
	case d.events <- event:
	case <-d.quit:
	default:
		d.dropped.Add(1)
	}
}

// Close flushes buffered events into the sink and stops the worker.
// Subsequent calls are no-ops.
func (d *auditDispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() {
		close(d.quit)
		<-d.drained
	})
}

// Dropped reports how many events were discarded because the buffer was full.
func (d *auditDispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
