package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/bedstat-cli/internal/core/domain"
	"github.com/custodia-labs/bedstat-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// EnvConfigPath names the environment variable consulted when no config
// path is given explicitly.
const EnvConfigPath = "BEDBASE_CONFIG"

// ConfigStore is a file-based implementation of driven.ConfigStore using TOML.
// Nested tables are exposed as dotted keys, e.g. [path] bedstat_output
// becomes "path.bedstat_output".
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// ResolvePath picks the configuration file: explicit first, then
// $BEDBASE_CONFIG, then ~/.bedstat/config.toml.
func ResolvePath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".bedstat", "config.toml"), nil
}

// NewConfigStore creates a TOML-based config store for the file at path,
// resolved with ResolvePath. A missing file is not an error; the store
// starts empty and Save creates it.
func NewConfigStore(path string) (*ConfigStore, error) {
	filePath, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filePath,
		data:     make(map[string]any),
	}

	if err := s.Load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	val, ok := s.Get(key)
	if !ok {
		return ""
	}

	str, ok := val.(string)
	if !ok {
		return ""
	}
	return str
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	val, ok := s.Get(key)
	if !ok {
		return 0
	}

	// TOML integers are parsed as int64
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	val, ok := s.Get(key)
	if !ok {
		return false
	}

	b, ok := val.(bool)
	if !ok {
		return false
	}
	return b
}

// GetStringSlice retrieves a string slice configuration value.
func (s *ConfigStore) GetStringSlice(key string) []string {
	val, ok := s.Get(key)
	if !ok {
		return nil
	}

	// TOML arrays are parsed as []any
	switch v := val.(type) {
	case []string:
		return v
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	default:
		return nil
	}
}

// Set stores a configuration value and persists immediately. A key that
// would turn an existing value into a table, or a table into a value, is
// rejected with domain.ErrInvalidInput and nothing is changed.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if other, ok := conflictingKey(s.data, key); ok {
		return fmt.Errorf("%w: config key %q conflicts with existing key %q", domain.ErrInvalidInput, key, other)
	}

	prev, existed := s.data[key]
	s.data[key] = value
	if err := s.save(); err != nil {
		if existed {
			s.data[key] = prev
		} else {
			delete(s.data, key)
		}
		return err
	}
	return nil
}

// conflictingKey returns a key in data that is a table prefix of key, or
// that has key as its table prefix.
func conflictingKey(data map[string]any, key string) (string, bool) {
	for k := range data {
		if strings.HasPrefix(key, k+".") || strings.HasPrefix(k, key+".") {
			return k, true
		}
	}
	return "", false
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
// Dotted keys are written back as nested tables.
func (s *ConfigStore) save() error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0700); err != nil {
		return err
	}

	nested, err := nestMap(s.data)
	if err != nil {
		return err
	}
	data, err := toml.Marshal(nested)
	if err != nil {
		return err
	}

	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads configuration from the TOML file.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file yet - that's fine, start empty
			s.data = make(map[string]any)
			return nil
		}
		return fmt.Errorf("reading config %s: %w", s.filePath, err)
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parsing config %s: %w", s.filePath, err)
	}

	if loaded == nil {
		loaded = make(map[string]any)
	}

	// Flatten nested maps into dot-notation keys for easier access
	s.data = flattenMap(loaded, "")
	return nil
}

// FlattenMap converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func flattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)

	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			// Recursively flatten nested maps
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}

	return result
}

// nestMap is the inverse of flattenMap. It fails rather than let a value
// and a table share a name.
func nestMap(flat map[string]any) (map[string]any, error) {
	result := make(map[string]any)
	for key, value := range flat {
		parts := strings.Split(key, ".")
		cur := result
		for _, p := range parts[:len(parts)-1] {
			existing, present := cur[p]
			next, ok := existing.(map[string]any)
			if !ok {
				if present {
					return nil, fmt.Errorf("%w: config key %q is both a value and a table", domain.ErrInvalidInput, p)
				}
				next = make(map[string]any)
				cur[p] = next
			}
			cur = next
		}
		last := parts[len(parts)-1]
		if _, isTable := cur[last].(map[string]any); isTable {
			return nil, fmt.Errorf("%w: config key %q is both a value and a table", domain.ErrInvalidInput, key)
		}
		cur[last] = value
	}
	return result, nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
