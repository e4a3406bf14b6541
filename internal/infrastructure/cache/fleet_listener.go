package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// fleetChannel is the NOTIFY channel raised by the fleet table triggers.
const fleetChannel = "fleet_changed"

// FleetListener watches PostgreSQL LISTEN/NOTIFY for fleet data changes
// and invokes a callback so the snapshot cache can be invalidated.
// The snapshot TTL remains the fallback when the connection drops.
type FleetListener struct {
	mu       sync.Mutex
	connStr  string
	listener *pq.Listener
	onChange func()
	logger   *zap.Logger
	stopCh   chan struct{}
	stopped  bool
}

// NewFleetListener creates a new FleetListener.
// connStr is the PostgreSQL connection string; onChange is called once per
// notification, from the listener goroutine.
func NewFleetListener(connStr string, onChange func(), logger *zap.Logger) *FleetListener {
	return &FleetListener{
		connStr:  connStr,
		onChange: onChange,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// Start opens the listener connection and begins processing notifications.
func (l *FleetListener) Start() error {
	reportProblem := func(ev pq.ListenerEventType, err error) {
		if err != nil {
			// The listener reconnects on its own; the snapshot TTL
			// covers the gap.
			l.logger.Warn("fleet listener connection problem", zap.Error(err))
		}
	}

	l.listener = pq.NewListener(l.connStr, 10*time.Second, time.Minute, reportProblem)

	if err := l.listener.Listen(fleetChannel); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", fleetChannel, err)
	}

	go l.handleNotifications()

	return nil
}

// Stop stops the listener and cleans up resources.
func (l *FleetListener) Stop() error {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return nil
	}
	l.stopped = true
	close(l.stopCh)
	l.mu.Unlock()

	if l.listener != nil {
		return l.listener.Close()
	}
	return nil
}

// handleNotifications processes incoming NOTIFY events.
func (l *FleetListener) handleNotifications() {
	for {
		select {
		case <-l.stopCh:
			return
		case notification := <-l.listener.Notify:
			if notification == nil {
				// Connection lost, listener will reconnect automatically
				continue
			}
			l.logger.Debug("fleet data changed",
				zap.String("table", notification.Extra))
			l.onChange()
		case <-time.After(90 * time.Second):
			// Periodic ping to keep connection alive
			go func() {
				if err := l.listener.Ping(); err != nil {
					l.logger.Warn("fleet listener ping failed", zap.Error(err))
				}
			}()
		}
	}
}
