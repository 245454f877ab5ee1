package levels

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pushstone/sokoban/game/engine"
	"github.com/pushstone/sokoban/game/service"
)

var (
	ErrPackNotFound = errors.New("level pack not found")
	ErrInvalidPack  = errors.New("invalid level pack")
)

// defaultPackName is the pack loaded as the default when present on disk.
const defaultPackName = "classic"

// Manager handles level pack loading and caching
type Manager struct {
	packsDir    string
	defaultPack *engine.LevelPack
	defaultName string
	packs       map[string]*engine.LevelPack
	mu          sync.RWMutex
}

// NewManager creates a new level pack manager reading from packsDir. The
// directory is created when missing, and the built-in pack is written
// there on first run so a fresh install has something to play.
func NewManager(packsDir string) (*Manager, error) {
	if err := os.MkdirAll(packsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create packs directory %s: %w", packsDir, err)
	}

	m := &Manager{
		packsDir: packsDir,
		packs:    make(map[string]*engine.LevelPack),
	}

	if err := m.loadDefaultPack(); err != nil {
		return nil, fmt.Errorf("failed to load default pack: %w", err)
	}

	return m, nil
}

// LoadPack loads a level pack by name
func (m *Manager) LoadPack(name string) (*engine.LevelPack, error) {
	name = strings.TrimSuffix(name, ".json")

	m.mu.RLock()
	if pack, exists := m.packs[name]; exists {
		m.mu.RUnlock()
		return pack, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if pack, exists := m.packs[name]; exists {
		return pack, nil
	}

	packPath := filepath.Join(m.packsDir, engine.PackFilename(name))

	data, err := os.ReadFile(packPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPackNotFound
		}
		return nil, fmt.Errorf("failed to read pack file: %w", err)
	}

	var pack engine.LevelPack
	if err := json.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("failed to parse pack: %w", err)
	}

	if err := engine.ValidateLevelPack(&pack); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}

	m.packs[name] = &pack
	return &pack, nil
}

// ListPacks returns information about all available level packs
func (m *Manager) ListPacks() ([]*service.PackInfo, error) {
	entries, err := os.ReadDir(m.packsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read packs directory: %w", err)
	}

	var packs []*service.PackInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")
		pack, err := m.LoadPack(name)
		if err != nil {
			// Skip invalid packs
			continue
		}

		packs = append(packs, &service.PackInfo{
			Filename:    entry.Name(),
			PackID:      name, // This is the identifier to use for session creation
			Name:        pack.Name,
			Description: pack.Description,
			LevelCount:  len(pack.Levels),
		})
	}

	return packs, nil
}

// GetDefault returns the default level pack
func (m *Manager) GetDefault() *engine.LevelPack {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultPack
}

// DefaultName returns the pack id of the default pack
func (m *Manager) DefaultName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultName
}

// SetDefault sets the default level pack by name
func (m *Manager) SetDefault(name string) error {
	pack, err := m.LoadPack(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultPack = pack
	m.defaultName = strings.TrimSuffix(name, ".json")
	return nil
}

// RefreshCache reloads all cached packs from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.packs = make(map[string]*engine.LevelPack)
	m.mu.Unlock()

	return m.loadDefaultPack()
}

// Count returns the number of cached packs
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.packs)
}

// loadDefaultPack loads the default pack, seeding the built-in one on a
// fresh packs directory.
func (m *Manager) loadDefaultPack() error {
	pack, err := m.LoadPack(defaultPackName)
	if err == nil {
		m.mu.Lock()
		m.defaultPack = pack
		m.defaultName = defaultPackName
		m.mu.Unlock()
		return nil
	}

	// Try the first available pack on disk.
	packs, listErr := m.ListPacks()
	if listErr == nil && len(packs) > 0 {
		pack, err = m.LoadPack(packs[0].PackID)
		if err == nil {
			m.mu.Lock()
			m.defaultPack = pack
			m.defaultName = packs[0].PackID
			m.mu.Unlock()
			return nil
		}
	}

	// Nothing usable on disk: seed the built-in pack.
	builtin := engine.DefaultPack()
	if err := m.SavePack(defaultPackName, builtin); err != nil {
		// Read-only packs dir; still serve the built-in pack from memory.
		m.mu.Lock()
		m.defaultPack = builtin
		m.defaultName = defaultPackName
		m.mu.Unlock()
		return nil
	}

	m.mu.Lock()
	m.defaultPack = builtin
	m.defaultName = defaultPackName
	m.mu.Unlock()
	return nil
}

// SavePack saves a level pack to disk
func (m *Manager) SavePack(name string, pack *engine.LevelPack) error {
	if err := engine.ValidateLevelPack(pack); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}

	name = strings.TrimSuffix(name, ".json")
	packPath := filepath.Join(m.packsDir, engine.PackFilename(name))

	data, err := json.MarshalIndent(pack, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal pack: %w", err)
	}

	if err := os.WriteFile(packPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write pack file: %w", err)
	}

	m.mu.Lock()
	m.packs[name] = pack
	m.mu.Unlock()

	return nil
}
