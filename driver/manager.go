// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package driver

import (
	"fmt"
	"slices"
	"sync"
)

// HandleSource represents the firmware handle database.
type HandleSource interface {
	Handles() ([]Handle, error)
}

// Binding state of a registered driver
type entry struct {
	driver      Driver
	controllers []Handle
}

// Manager connects registered drivers to the controller handles of a handle
// database.
type Manager struct {
	// Source provides the controller handles
	Source HandleSource

	mu      sync.Mutex
	entries []*entry
}

func name(d Driver) string {
	if n, err := d.DriverName(LanguageEnglish); err == nil {
		return n
	}

	return fmt.Sprintf("%T", d)
}

func (m *Manager) lookup(index int) (*entry, error) {
	if index < 0 || index >= len(m.entries) || m.entries[index] == nil {
		return nil, fmt.Errorf("driver %d, %w", index, ErrNotFound)
	}

	return m.entries[index], nil
}

// Register adds a driver to the manager and returns its index.
func (m *Manager) Register(d Driver) (index int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.entries {
		if e == nil {
			m.entries[i] = &entry{driver: d}
			return i
		}
	}

	m.entries = append(m.entries, &entry{driver: d})

	return len(m.entries) - 1
}

// Info represents a registered driver state.
type Info struct {
	Index       int
	Name        string
	Version     uint32
	Controllers []Handle
}

// Drivers returns the state of all registered drivers.
func (m *Manager) Drivers() (drivers []Info) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.entries {
		if e == nil {
			continue
		}

		drivers = append(drivers, Info{
			Index:       i,
			Name:        name(e.driver),
			Version:     e.driver.Version(),
			Controllers: slices.Clone(e.controllers),
		})
	}

	return
}

// Connect starts the argument driver on every supported controller which it
// is not already bound to, it returns the newly started controllers.
func (m *Manager) Connect(index int) (started []Handle, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.lookup(index)

	if err != nil {
		return
	}

	handles, err := m.Source.Handles()

	if err != nil {
		return nil, fmt.Errorf("could not list handles, %v", err)
	}

	for _, h := range handles {
		if slices.Contains(e.controllers, h) {
			continue
		}

		if e.driver.Supported(h) != nil {
			continue
		}

		if err = e.driver.Start(h); err != nil {
			return started, fmt.Errorf("could not start %s on %#x, %v", name(e.driver), uint64(h), err)
		}

		e.controllers = append(e.controllers, h)
		started = append(started, h)
	}

	if len(started) == 0 {
		return nil, fmt.Errorf("no supported controller, %w", ErrNotFound)
	}

	return
}

// Disconnect stops the argument driver on every controller it is bound to.
func (m *Manager) Disconnect(index int) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.lookup(index)

	if err != nil {
		return
	}

	return m.disconnect(e)
}

func (m *Manager) disconnect(e *entry) (err error) {
	if len(e.controllers) == 0 {
		return ErrNotStarted
	}

	for len(e.controllers) > 0 {
		h := e.controllers[0]

		if err = e.driver.Stop(h); err != nil {
			return fmt.Errorf("could not stop %s on %#x, %v", name(e.driver), uint64(h), err)
		}

		e.controllers = e.controllers[1:]
	}

	return
}

// Unload disconnects the argument driver, when bound, and removes it from
// the manager.
func (m *Manager) Unload(index int) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.lookup(index)

	if err != nil {
		return
	}

	if len(e.controllers) > 0 {
		if err = m.disconnect(e); err != nil {
			return
		}
	}

	m.entries[index] = nil

	return
}
