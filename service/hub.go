package service

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
)

var (
	ErrDuplicate         = errors.New("service already registered")
	ErrUnknownDependency = errors.New("dependency not registered")
	ErrCycle             = errors.New("circular service dependency")
)

// Hub owns the site's services and runs their lifecycle in dependency order
type Hub struct {
	mu       sync.RWMutex
	services map[string]Service
	order    []string
	live     []string // initialised or started, in order; unwound by rollback and StopAll
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{services: make(map[string]Service)}
}

// Register adds a service; names are unique
func (h *Hub) Register(svc Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, ok := h.services[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	h.services[name] = svc
	h.order = nil
	return nil
}

// Get looks up a service by name
func (h *Hub) Get(name string) (Service, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	svc, ok := h.services[name]
	return svc, ok
}

// MustGet returns the named service as T, panicking when absent or of another type
func MustGet[T any](h *Hub, name string) T {
	svc, ok := h.Get(name)
	if !ok {
		panic(fmt.Sprintf("service not found: %s", name))
	}
	typed, ok := svc.(T)
	if !ok {
		panic(fmt.Sprintf("service %s is %T", name, svc))
	}
	return typed
}

// InitAll initialises every service after its dependencies, passing args[name]
// A failure stops the services initialised so far, newest first
func (h *Hub) InitAll(args map[string][]any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.order == nil {
		order, err := h.resolve()
		if err != nil {
			return err
		}
		h.order = order
	}

	h.live = h.live[:0]
	for _, name := range h.order {
		if err := h.services[name].Init(args[name]...); err != nil {
			h.rollback()
			return fmt.Errorf("init %s: %w", name, err)
		}
		h.live = append(h.live, name)
	}
	return nil
}

// StartAll starts every service in dependency order
// A failure stops the services started so far, newest first
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.live = h.live[:0]
	for _, name := range h.order {
		if err := h.services[name].Start(); err != nil {
			h.rollback()
			return fmt.Errorf("start %s: %w", name, err)
		}
		h.live = append(h.live, name)
	}
	return nil
}

// StopAll stops started services newest first; stop errors are logged, not returned
func (h *Hub) StopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rollback()
}

func (h *Hub) rollback() {
	for i := len(h.live) - 1; i >= 0; i-- {
		name := h.live[i]
		if err := h.services[name].Stop(); err != nil {
			log.Printf("service %s stop: %v", name, err)
		}
	}
	h.live = h.live[:0]
}

// resolve orders services depth-first so each follows its dependencies
// Roots and dependencies are visited by name for a stable order
func (h *Hub) resolve() ([]string, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(h.services))
	order := make([]string, 0, len(h.services))

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w at %s", ErrCycle, name)
		}
		state[name] = visiting

		deps := append([]string(nil), h.services[name].Dependencies()...)
		sort.Strings(deps)
		for _, dep := range deps {
			if _, ok := h.services[dep]; !ok {
				return fmt.Errorf("%w: %s needs %s", ErrUnknownDependency, name, dep)
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		state[name] = done
		order = append(order, name)
		return nil
	}

	names := make([]string, 0, len(h.services))
	for name := range h.services {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}
