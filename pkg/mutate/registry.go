// Package mutate generates textual variants of attack payloads using
// named mutation techniques. Techniques are plugins behind a registry;
// attack modules request variants by technique tag without knowing how
// a technique transforms text.
package mutate

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/promptraid/promptraid/pkg/defaults"
)

var (
	// ErrUnknownTechnique reports a technique tag with no registered
	// implementation. Unknown tags fail loudly; a silent no-op would let
	// a typo disable a whole attack dimension.
	ErrUnknownTechnique = errors.New("mutate: unknown technique")

	// ErrInvalidArgument reports an out-of-range argument such as a
	// variant count beyond defaults.VariantCountMax.
	ErrInvalidArgument = errors.New("mutate: invalid argument")
)

// Technique is the interface all mutation plugins implement.
type Technique interface {
	// Name returns the unique technique tag (e.g. "unicode-homoglyph")
	Name() string

	// Description returns a human-readable description
	Description() string

	// Apply produces one variant of base. rng drives which positions or
	// family members are chosen; the same rng state always yields the
	// same variant.
	Apply(base string, rng *rand.Rand) string
}

// Registry holds registered techniques.
type Registry struct {
	mu         sync.RWMutex
	techniques map[string]Technique
}

// NewRegistry creates an empty technique registry.
func NewRegistry() *Registry {
	return &Registry{techniques: make(map[string]Technique)}
}

// Register adds a technique to the registry.
func (r *Registry) Register(t Technique) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.techniques[t.Name()]; exists {
		return fmt.Errorf("technique %q already registered", t.Name())
	}
	r.techniques[t.Name()] = t
	return nil
}

// Get retrieves a technique by tag.
func (r *Registry) Get(name string) (Technique, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.techniques[name]
	return t, ok
}

// Names returns all registered technique tags, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.techniques))
	for name := range r.techniques {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GenerateVariations produces up to count deduplicated variants of base
// using the named technique, seeded for reproducibility: the same
// (base, technique, count, seed) tuple yields byte-identical output on
// every run. Returns fewer than count variants when the technique space
// is exhausted; that is not an error. count == 0 returns an empty
// sequence.
func (r *Registry) GenerateVariations(base, technique string, count int, seed uint64) ([]string, error) {
	if count < 0 || count > defaults.VariantCountMax {
		return nil, fmt.Errorf("%w: count %d outside [0, %d]", ErrInvalidArgument, count, defaults.VariantCountMax)
	}

	tech, ok := r.Get(technique)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTechnique, technique)
	}

	return generate(base, count, seed, func(rng *rand.Rand) string {
		return tech.Apply(base, rng)
	}), nil
}

// GenerateVariationsRandom is the unseeded form. Output is still
// duplicate-free within one call, but not reproducible across calls.
func (r *Registry) GenerateVariationsRandom(base, technique string, count int) ([]string, error) {
	return r.GenerateVariations(base, technique, count, uint64(time.Now().UnixNano()))
}

// Mutate applies a mix of techniques: each variant slot picks one of
// the given techniques at random (seeded). Unknown tags in the list
// fail the whole call.
func (r *Registry) Mutate(base string, techniques []string, count int, seed uint64) ([]string, error) {
	if count < 0 || count > defaults.VariantCountMax {
		return nil, fmt.Errorf("%w: count %d outside [0, %d]", ErrInvalidArgument, count, defaults.VariantCountMax)
	}
	if len(techniques) == 0 {
		return nil, fmt.Errorf("%w: empty technique list", ErrInvalidArgument)
	}

	picked := make([]Technique, len(techniques))
	for i, name := range techniques {
		tech, ok := r.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTechnique, name)
		}
		picked[i] = tech
	}

	return generate(base, count, seed, func(rng *rand.Rand) string {
		tech := picked[rng.Intn(len(picked))]
		return tech.Apply(base, rng)
	}), nil
}

// generate drives the dedup loop shared by all generation modes. The
// attempt budget bounds the walk when a technique's variant space is
// smaller than count.
func generate(base string, count int, seed uint64, produce func(*rand.Rand) string) []string {
	out := make([]string, 0, count)
	if count == 0 {
		return out
	}

	rng := rand.New(rand.NewSource(int64(seed)))
	seen := make(map[string]struct{}, count)
	budget := count * defaults.VariantAttemptsPerSlot

	for attempts := 0; len(out) < count && attempts < budget; attempts++ {
		variant := produce(rng)
		if variant == "" && base != "" {
			// Variants never collapse to empty unless the base itself is
			// empty.
			continue
		}
		if _, dup := seen[variant]; dup {
			continue
		}
		seen[variant] = struct{}{}
		out = append(out, variant)
	}
	return out
}

// DefaultRegistry carries the built-in techniques. Script techniques
// loaded at startup register here as well.
var DefaultRegistry = NewRegistry()

// Register adds a technique to the default registry.
func Register(t Technique) error {
	return DefaultRegistry.Register(t)
}

// GenerateVariations generates variants from the default registry.
func GenerateVariations(base, technique string, count int, seed uint64) ([]string, error) {
	return DefaultRegistry.GenerateVariations(base, technique, count, seed)
}

// Mutate accumulates variants across techniques from the default
// registry.
func Mutate(base string, techniques []string, count int, seed uint64) ([]string, error) {
	return DefaultRegistry.Mutate(base, techniques, count, seed)
}
