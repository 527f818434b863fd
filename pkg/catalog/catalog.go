// Package catalog holds attack module metadata: the built-in modules
// plus any loaded from YAML files. It feeds search, the CLI module
// listing and report headers.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/promptraid/promptraid/pkg/analyze"
	"github.com/promptraid/promptraid/pkg/defaults"
	"github.com/promptraid/promptraid/pkg/rank"
)

// Severity grades the impact of a successful attack.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Category groups modules by attack class.
type Category string

const (
	CategoryInjection  Category = "injection"
	CategoryJailbreak  Category = "jailbreak"
	CategoryExtraction Category = "extraction"
	CategoryDoS        Category = "dos"
)

// Module describes one attack module: what it tests, the payloads it
// sends and the indicators that classify responses.
type Module struct {
	Name        string                `yaml:"name" json:"name"`
	Description string                `yaml:"description,omitempty" json:"description,omitempty"`
	Author      string                `yaml:"author,omitempty" json:"author,omitempty"`
	Category    Category              `yaml:"category,omitempty" json:"category,omitempty"`
	Severity    Severity              `yaml:"severity,omitempty" json:"severity,omitempty"`
	Tags        []string              `yaml:"tags,omitempty" json:"tags,omitempty"`
	References  []string              `yaml:"references,omitempty" json:"references,omitempty"`
	Payloads    []string              `yaml:"payloads,omitempty" json:"payloads,omitempty"`
	Techniques  []string              `yaml:"techniques,omitempty" json:"techniques,omitempty"`
	Indicators  analyze.IndicatorSpec `yaml:"indicators,omitempty" json:"indicators,omitempty"`
}

// ErrDuplicateModule reports a second registration under an existing
// name.
var ErrDuplicateModule = errors.New("catalog: duplicate module")

// Catalog is a named, ordered collection of modules. Safe for
// concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	modules []Module
	byName  map[string]int
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{byName: make(map[string]int)}
}

// Builtin returns a catalog pre-populated with the built-in modules.
func Builtin() *Catalog {
	c := New()
	for _, m := range builtinModules {
		// Built-in names are unique by construction.
		_ = c.Add(m)
	}
	return c
}

// Add registers a module. Name is required and must be unique.
func (c *Catalog) Add(m Module) error {
	if m.Name == "" {
		return fmt.Errorf("catalog: module missing required field: name")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.byName[m.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateModule, m.Name)
	}
	c.byName[m.Name] = len(c.modules)
	c.modules = append(c.modules, m)
	return nil
}

// Get looks a module up by exact name.
func (c *Catalog) Get(name string) (Module, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.byName[name]
	if !ok {
		return Module{}, false
	}
	return c.modules[idx], true
}

// Modules returns all modules in registration order.
func (c *Catalog) Modules() []Module {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Module, len(c.modules))
	copy(out, c.modules)
	return out
}

// Len reports the number of registered modules.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.modules)
}

// Categories returns the distinct categories present, sorted.
func (c *Catalog) Categories() []Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := make(map[Category]struct{})
	for _, m := range c.modules {
		if m.Category != "" {
			seen[m.Category] = struct{}{}
		}
	}
	cats := make([]Category, 0, len(seen))
	for cat := range seen {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

// LoadFile parses one YAML module definition and registers it.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read module: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return c.Add(*m)
}

// LoadDir registers every .yaml/.yml file under dir, recursively. A
// missing directory is not an error so a default path can be probed.
func (c *Catalog) LoadDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		return c.LoadFile(path)
	})
}

// Parse decodes a YAML module definition and validates required fields.
func Parse(data []byte) (*Module, error) {
	var m Module
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse module: %w", err)
	}
	if m.Name == "" {
		return nil, fmt.Errorf("module missing required field: name")
	}
	return &m, nil
}

// SearchResult pairs a module with its relevance to a query.
type SearchResult struct {
	Module Module  `json:"module"`
	Score  float64 `json:"score"`
}

// Search ranks modules against query by name, tags and description.
// An empty query returns every module in registration order; otherwise
// candidates scoring below the minimum cutoff are dropped.
func (c *Catalog) Search(query string) []SearchResult {
	modules := c.Modules()
	candidates := make([]rank.Candidate, len(modules))
	for i, m := range modules {
		candidates[i] = rank.Candidate{
			ID:          m.Name,
			Name:        m.Name,
			Description: m.Description,
			Tags:        m.Tags,
		}
	}

	scored := rank.Rank(query, candidates)
	results := make([]SearchResult, 0, len(scored))
	for _, sc := range scored {
		if query != "" && sc.Score < defaults.RankMinScore {
			continue
		}
		m, _ := c.Get(sc.ID)
		results = append(results, SearchResult{Module: m, Score: sc.Score})
	}
	return results
}
