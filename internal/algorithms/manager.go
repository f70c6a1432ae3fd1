package algorithms

import (
	"fmt"
	"sort"
	"sync"

	"seam-carver/internal/algorithms/seam"
	"seam-carver/internal/logger"
	"seam-carver/internal/processing/filters"
)

type Manager struct {
	algorithms map[string]Algorithm
	parameters map[string]map[string]interface{}
	mu         sync.RWMutex
}

func NewManager(log logger.Logger) *Manager {
	manager := &Manager{
		algorithms: make(map[string]Algorithm),
		parameters: make(map[string]map[string]interface{}),
	}

	manager.registerAlgorithms(log)

	return manager
}

func (m *Manager) registerAlgorithms(log logger.Logger) {
	all := []Algorithm{
		seam.NewProcessor(log),
		&filterAlgorithm{filter: filters.NewGrayscaleConverter(), prefix: "grey."},
		&filterAlgorithm{filter: filters.NewSepiaFilter(), prefix: "sepia."},
		&filterAlgorithm{
			filter:   filters.NewRowRemover(),
			prefix:   "h_removed.",
			defaults: map[string]interface{}{"frequency": 2},
			validate: validateFrequency,
		},
		&filterAlgorithm{
			filter:   filters.NewColumnRemover(),
			prefix:   "v_removed.",
			defaults: map[string]interface{}{"frequency": 2},
			validate: validateFrequency,
		},
	}

	for _, alg := range all {
		m.Register(alg)
	}
}

// Register adds alg under its name, replacing any algorithm already
// registered there, and resets its parameters to the algorithm's defaults.
func (m *Manager) Register(alg Algorithm) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.algorithms[alg.GetName()] = alg
	m.parameters[alg.GetName()] = alg.GetDefaultParameters()
}

// GetParameters returns a copy of the defaults for algorithm.
func (m *Manager) GetParameters(algorithm string) map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]interface{})
	for k, v := range m.parameters[algorithm] {
		result[k] = v
	}
	return result
}

// SetParameter overrides a default for later GetParameters calls. Only
// parameters the algorithm declares a default for can be set.
func (m *Manager) SetParameter(algorithm, name string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	params, exists := m.parameters[algorithm]
	if !exists {
		return fmt.Errorf("unknown algorithm: %s", algorithm)
	}
	if _, known := params[name]; !known {
		return fmt.Errorf("algorithm %s has no parameter %q", algorithm, name)
	}

	params[name] = value
	return nil
}

// MergeParameters layers overrides on top of the defaults for algorithm.
func (m *Manager) MergeParameters(algorithm string, overrides map[string]interface{}) map[string]interface{} {
	params := m.GetParameters(algorithm)
	for k, v := range overrides {
		params[k] = v
	}
	return params
}

func (m *Manager) GetAlgorithm(name string) (Algorithm, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if algorithm, exists := m.algorithms[name]; exists {
		return algorithm, nil
	}

	return nil, fmt.Errorf("unknown algorithm: %s", name)
}

// GetAvailableAlgorithms lists registered names in sorted order.
func (m *Manager) GetAvailableAlgorithms() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	algorithms := make([]string, 0, len(m.algorithms))
	for name := range m.algorithms {
		algorithms = append(algorithms, name)
	}
	sort.Strings(algorithms)

	return algorithms
}
