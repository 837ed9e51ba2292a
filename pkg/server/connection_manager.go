package server

import (
	"context"
	"sync"
	"time"

	"causes-api/internal/config"
)

// ConnectionManager keeps one Container alive across warm Lambda invocations
type ConnectionManager struct {
	container *Container
	lastUsed  time.Time
	mu        sync.Mutex
	loadCfg   func() (*config.Config, error)
}

var (
	globalConnectionManager *ConnectionManager
	connectionManagerOnce   sync.Once
)

// GetConnectionManager returns the global connection manager instance
func GetConnectionManager() *ConnectionManager {
	connectionManagerOnce.Do(func() {
		globalConnectionManager = NewConnectionManager(config.GetOptimizedConfig)
	})
	return globalConnectionManager
}

// NewConnectionManager creates a connection manager that loads its
// configuration with loadCfg on first use
func NewConnectionManager(loadCfg func() (*config.Config, error)) *ConnectionManager {
	return &ConnectionManager{loadCfg: loadCfg}
}

// GetContainer returns the service container, building it on first use. A
// failed build is not cached, so the next invocation tries again.
func (cm *ConnectionManager) GetContainer(ctx context.Context) (*Container, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil {
		cm.lastUsed = time.Now()
		return cm.container, nil
	}

	cfg, err := cm.loadCfg()
	if err != nil {
		return nil, err
	}

	container, err := NewContainer(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cm.container = container
	cm.lastUsed = time.Now()
	return container, nil
}

// IsHealthy reports whether a container is held and was used in the last five minutes
func (cm *ConnectionManager) IsHealthy() bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container == nil {
		return false
	}
	return time.Since(cm.lastUsed) < 5*time.Minute
}

// Cleanup closes the held container
func (cm *ConnectionManager) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container == nil {
		return nil
	}

	err := cm.container.Close()
	cm.container = nil
	return err
}
