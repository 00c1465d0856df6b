package algorithms

import (
	"context"
	"fmt"
	"image"
	"sync"
)

// Algorithm defines the interface for image processing algorithms.
type Algorithm interface {
	Process(input *image.NRGBA, params map[string]interface{}) (*image.NRGBA, error)
	ValidateParameters(params map[string]interface{}) error
	GetDefaultParameters() map[string]interface{}
	GetName() string
}

// ContextualAlgorithm extends Algorithm with context support for cancellation.
type ContextualAlgorithm interface {
	Algorithm
	ProcessWithContext(ctx context.Context, input *image.NRGBA, params map[string]interface{}) (*image.NRGBA, error)
}

// Manager is a registry of the named algorithms the endpoints dispatch to.
type Manager struct {
	algorithms map[string]Algorithm
	mu         sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		algorithms: make(map[string]Algorithm),
	}
}

// Register adds an algorithm under its own name. Later registrations under
// the same name win.
func (m *Manager) Register(algorithm Algorithm) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.algorithms[algorithm.GetName()] = algorithm
}

func (m *Manager) GetAlgorithm(name string) (Algorithm, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if algorithm, exists := m.algorithms[name]; exists {
		return algorithm, nil
	}

	return nil, fmt.Errorf("unknown algorithm: %s", name)
}

func (m *Manager) GetAvailableAlgorithms() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	algorithms := make([]string, 0, len(m.algorithms))
	for name := range m.algorithms {
		algorithms = append(algorithms, name)
	}

	return algorithms
}

// MergedParameters overlays the caller's parameters on the algorithm's
// defaults, so every processor sees a complete parameter set.
func (m *Manager) MergedParameters(name string, params map[string]interface{}) (map[string]interface{}, error) {
	algorithm, err := m.GetAlgorithm(name)
	if err != nil {
		return nil, err
	}

	merged := algorithm.GetDefaultParameters()
	for k, v := range params {
		merged[k] = v
	}
	return merged, nil
}
