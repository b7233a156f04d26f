package template

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"finparse/stmt-ledger/internal/fileutils"
	"finparse/stmt-ledger/internal/logging"
	"finparse/stmt-ledger/internal/models"
)

// Store persists template profiles and mappings as YAML files under one
// directory. Hand-written mappings may also arrive as JSON payloads.
type Store struct {
	Dir string
}

// NewStore creates a store rooted at the given templates directory.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Resolve locates a template file: an explicit path is used as given, then
// the store directory, then the per-user config directory.
func (s *Store) Resolve(name string) (string, error) {
	if fileutils.FileExists(name) {
		return name, nil
	}

	candidates := []string{
		filepath.Join(s.Dir, name+".yaml"),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(homeDir, ".config", "stmt-ledger", "templates", name+".yaml"))
	}
	for _, candidate := range candidates {
		if fileutils.FileExists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("template '%s' not found (looked in %s)", name, s.Dir)
}

// SaveProfile writes a learned profile to the store.
func (s *Store) SaveProfile(name string, profile *models.TemplateProfile) error {
	data, err := yaml.Marshal(profile)
	if err != nil {
		return fmt.Errorf("error encoding profile '%s': %w", name, err)
	}
	return s.write(name, data)
}

// LoadProfile reads a profile by name or path.
func (s *Store) LoadProfile(name string) (*models.TemplateProfile, error) {
	data, path, err := s.read(name)
	if err != nil {
		return nil, err
	}
	var profile models.TemplateProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("error parsing profile '%s': %w", path, err)
	}
	return &profile, nil
}

// SaveMapping writes a field-to-column mapping to the store.
func (s *Store) SaveMapping(name string, mapping models.TemplateMapping) error {
	data, err := yaml.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("error encoding mapping '%s': %w", name, err)
	}
	return s.write(name, data)
}

// LoadMapping reads a mapping by name or path. Files with a .json extension
// decode as JSON; everything else is YAML.
func (s *Store) LoadMapping(name string) (models.TemplateMapping, error) {
	data, path, err := s.read(name)
	if err != nil {
		return nil, err
	}
	var mapping models.TemplateMapping
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &mapping); err != nil {
			return nil, fmt.Errorf("error parsing mapping '%s': %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("error parsing mapping '%s': %w", path, err)
	}
	if len(mapping) == 0 {
		return nil, fmt.Errorf("mapping '%s' binds no fields", path)
	}
	return mapping, nil
}

// List returns the template names stored in the directory, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error listing templates in %s: %w", s.Dir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) write(name string, data []byte) error {
	if err := fileutils.EnsureDirectoryExists(s.Dir); err != nil {
		return err
	}
	path := filepath.Join(s.Dir, name+".yaml")
	if err := os.WriteFile(path, data, models.PermissionTemplateFile); err != nil {
		return fmt.Errorf("error writing template '%s': %w", path, err)
	}
	log.Debug("saved template",
		logging.Field{Key: logging.FieldTemplate, Value: name},
		logging.Field{Key: logging.FieldFile, Value: path})
	return nil
}

func (s *Store) read(name string) ([]byte, string, error) {
	path, err := s.Resolve(name)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("error reading template '%s': %w", path, err)
	}
	return data, path, nil
}
