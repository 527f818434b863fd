package mutate

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// ScriptTechnique wraps a Tengo script as a Technique implementation,
// letting users ship custom mutation techniques as .tengo files without
// recompiling. Scripts run in a sandboxed VM with only safe stdlib
// modules: no file I/O, no network, no OS access.
type ScriptTechnique struct {
	name        string
	description string
	compiled    *tengo.Compiled
}

var safeModules = stdlib.GetModuleMap("text", "fmt", "math", "times")

const scriptMaxAllocs = 10_000_000

// LoadScriptTechnique compiles a .tengo file and extracts metadata.
// The script must define: name (string), description (string), and
// transform (function taking the payload and a seed int, returning the
// variant string).
func LoadScriptTechnique(path string) (*ScriptTechnique, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read technique script %s: %w", path, err)
	}

	meta := tengo.NewScript(data)
	meta.SetImports(safeModules)
	meta.SetMaxAllocs(scriptMaxAllocs)

	ran, err := meta.Run()
	if err != nil {
		return nil, fmt.Errorf("compile technique script %s: %w", path, err)
	}

	nameVar := ran.Get("name")
	if nameVar.IsUndefined() {
		return nil, fmt.Errorf("technique script %s: missing 'name' variable", path)
	}
	descVar := ran.Get("description")
	if descVar.IsUndefined() {
		return nil, fmt.Errorf("technique script %s: missing 'description' variable", path)
	}
	if ran.Get("transform").IsUndefined() {
		return nil, fmt.Errorf("technique script %s: missing 'transform' function", path)
	}

	st := &ScriptTechnique{
		name:        nameVar.String(),
		description: descVar.String(),
	}

	// Compile a wrapper once; Apply only needs Clone()+Run, avoiding
	// per-variant recompilation.
	wrapper := fmt.Sprintf("%s\n__result__ := transform(__input__, __seed__)\n", string(data))
	script := tengo.NewScript([]byte(wrapper))
	script.SetImports(safeModules)
	script.SetMaxAllocs(scriptMaxAllocs)
	_ = script.Add("__input__", "")
	_ = script.Add("__seed__", 0)

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("precompile technique %s: %w", st.name, err)
	}
	st.compiled = compiled

	return st, nil
}

func (s *ScriptTechnique) Name() string        { return s.name }
func (s *ScriptTechnique) Description() string { return s.description }

// Apply runs the script's transform. The per-variant seed drawn from
// rng is handed to the script so scripted techniques can vary output
// across variants while staying reproducible.
func (s *ScriptTechnique) Apply(base string, rng *rand.Rand) string {
	clone := s.compiled.Clone()
	if err := clone.Set("__input__", base); err != nil {
		return base
	}
	if err := clone.Set("__seed__", rng.Int63()); err != nil {
		return base
	}
	if err := clone.Run(); err != nil {
		// A failing script yields the payload unchanged; generation-level
		// dedup drops the no-op variant.
		return base
	}
	return clone.Get("__result__").String()
}

// LoadScriptDir loads every *.tengo file in dir into the registry.
// Returns the names of loaded techniques. A missing directory is not an
// error; broken scripts are.
func LoadScriptDir(r *Registry, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read technique dir %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".tengo") {
			continue
		}
		st, err := LoadScriptTechnique(filepath.Join(dir, entry.Name()))
		if err != nil {
			return names, err
		}
		if err := r.Register(st); err != nil {
			return names, err
		}
		names = append(names, st.Name())
	}
	return names, nil
}
