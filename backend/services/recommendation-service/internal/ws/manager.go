package ws

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Manager tracks dashboard connections.
type Manager struct {
	mu          sync.RWMutex
	connections map[string]*Connection
	logger      *zap.Logger
}

// NewManager builds connection manager.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		connections: make(map[string]*Connection),
		logger:      logger,
	}
}

// Add registers new connection.
func (m *Manager) Add(conn *Connection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connections[conn.ClientID()] = conn
}

// Remove removes connection.
func (m *Manager) Remove(clientID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.connections, clientID)
}

// Count returns the number of connected dashboards.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.connections)
}

// Broadcast queues msg on every connection and returns how many accepted it.
func (m *Manager) Broadcast(msg []byte) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sent := 0
	for _, conn := range m.connections {
		if conn.Send(msg) {
			sent++
		}
	}
	return sent
}

// Start blocks until ctx is done, then closes every connection.
func (m *Manager) Start(ctx context.Context) {
	<-ctx.Done()

	m.mu.RLock()
	conns := make([]*Connection, 0, len(m.connections))
	for _, conn := range m.connections {
		conns = append(conns, conn)
	}
	m.mu.RUnlock()

	for _, conn := range conns {
		conn.Close()
	}
}

type catalogEvent struct {
	Event    string `json:"event"`
	Source   string `json:"source"`
	Stations int    `json:"stations"`
}

// ObserveCatalogRefresh tells dashboards a new catalog is live so they can re-query.
func (m *Manager) ObserveCatalogRefresh(source string, stations int, err error) {
	if err != nil {
		return
	}
	payload, mErr := json.Marshal(catalogEvent{Event: "catalog_refreshed", Source: source, Stations: stations})
	if mErr != nil {
		m.logger.Warn("failed to encode catalog event", zap.Error(mErr))
		return
	}
	if n := m.Broadcast(payload); n > 0 {
		m.logger.Debug("catalog refresh pushed to dashboards", zap.Int("clients", n))
	}
}
