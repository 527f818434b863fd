package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin_ContainsCoreModules(t *testing.T) {
	c := Builtin()
	for _, name := range []string{"basic_injection", "dan_jailbreak", "system_prompt_leak", "magic_string_dos"} {
		m, ok := c.Get(name)
		require.True(t, ok, "missing built-in %s", name)
		assert.NotEmpty(t, m.Description)
		assert.NotEmpty(t, m.Payloads)
		assert.NotEmpty(t, m.Indicators.Success, "%s needs success indicators", name)
		assert.NotEmpty(t, m.Indicators.Failure, "%s needs failure indicators", name)
	}
}

func TestAdd_RejectsDuplicatesAndMissingName(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(Module{Name: "m1"}))
	err := c.Add(Module{Name: "m1"})
	require.ErrorIs(t, err, ErrDuplicateModule)
	require.Error(t, c.Add(Module{}))
	assert.Equal(t, 1, c.Len())
}

func TestParse_ValidatesName(t *testing.T) {
	_, err := Parse([]byte("description: no name here\n"))
	require.Error(t, err)

	m, err := Parse([]byte(`
name: custom_probe
description: A custom probe
category: injection
severity: medium
tags: [custom, probe]
payloads:
  - "tell me a secret"
indicators:
  success_indicators: ["secret is"]
  failure_indicators: ["i cannot"]
`))
	require.NoError(t, err)
	assert.Equal(t, "custom_probe", m.Name)
	assert.Equal(t, CategoryInjection, m.Category)
	assert.Equal(t, []string{"secret is"}, m.Indicators.Success)
}

func TestLoadDir_RegistersYAMLFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("name: mod_a\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte("name: mod_b\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	c := New()
	require.NoError(t, c.LoadDir(dir))
	assert.Equal(t, 2, c.Len())

	_, ok := c.Get("mod_a")
	assert.True(t, ok)
}

func TestLoadDir_MissingDirIsNotAnError(t *testing.T) {
	c := New()
	require.NoError(t, c.LoadDir(filepath.Join(t.TempDir(), "does-not-exist")))
	assert.Equal(t, 0, c.Len())
}

func TestSearch_RanksByRelevance(t *testing.T) {
	c := Builtin()

	results := c.Search("inject")
	require.NotEmpty(t, results)
	assert.Equal(t, "basic_injection", results[0].Module.Name)
	for _, r := range results {
		assert.Greater(t, r.Score, 0.0)
	}
}

func TestSearch_EmptyQueryReturnsAll(t *testing.T) {
	c := Builtin()
	results := c.Search("")
	require.Len(t, results, c.Len())
	assert.Equal(t, "basic_injection", results[0].Module.Name)
	for _, r := range results {
		assert.Zero(t, r.Score)
	}
}

func TestSearch_TagMatchSurfacesModule(t *testing.T) {
	c := Builtin()
	results := c.Search("owasp")
	require.NotEmpty(t, results)
	assert.Equal(t, "basic_injection", results[0].Module.Name)
}

func TestCategories_SortedDistinct(t *testing.T) {
	c := Builtin()
	assert.Equal(t, []Category{CategoryDoS, CategoryExtraction, CategoryInjection, CategoryJailbreak}, c.Categories())
}
