package syntax

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Select(t *testing.T) {
	reg := DefaultRegistry()

	tests := []struct {
		filename string
		want     string
	}{
		{"main.c", "c"},
		{"include/list.h", "c"},
		{"server.go", "go"},
		{"tool.py", "python"},
		{"notes.txt", ""},
		{"", ""},
		{"Makefile", ""},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got := reg.Select(tt.filename)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestProfile_MatchesSubstring(t *testing.T) {
	p := &Profile{Name: "make", FileMatch: []string{"Makefile"}}
	assert.True(t, p.Matches("src/Makefile"))
	assert.True(t, p.Matches("Makefile.am"))
	assert.False(t, p.Matches("makefile"))
}

func TestRegistry_PrependOverrides(t *testing.T) {
	reg := DefaultRegistry()
	custom := &Profile{Name: "my-c", FileMatch: []string{".c"}}
	reg.Prepend(custom)

	got := reg.Select("a.c")
	require.NotNil(t, got)
	assert.Equal(t, "my-c", got.Name)
	assert.Equal(t, "c", reg.Select("a.h").Name)
}

const languagesYAML = `
languages:
  - name: lua
    filematch: [".lua"]
    keywords: [local, function, end, if, then]
    types: [nil, true, false]
    line_comment: "--"
    block_comment:
      start: "--[["
      end: "]]"
    numbers: true
    strings: true
  - name: ini
    filematch: [".ini", "config"]
    line_comment: ";"
`

func TestParseProfiles(t *testing.T) {
	profiles, err := ParseProfiles([]byte(languagesYAML))
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	lua := profiles[0]
	assert.Equal(t, "lua", lua.Name)
	assert.Equal(t, "--", lua.LineComment)
	assert.Equal(t, "--[[", lua.BlockStart)
	assert.Equal(t, "]]", lua.BlockEnd)
	assert.Equal(t, HighlightNumbers|HighlightStrings, lua.Flags)
	require.Len(t, lua.Keywords, 8)
	assert.Equal(t, "function", lua.Keywords[0].Word)

	classes := map[string]Class{}
	for _, kw := range lua.Keywords {
		classes[kw.Word] = kw.Class
	}
	assert.Equal(t, Primary, classes["local"])
	assert.Equal(t, Secondary, classes["nil"])

	ini := profiles[1]
	assert.Zero(t, ini.Flags)
	assert.Empty(t, ini.BlockStart)
}

func TestParseProfiles_Invalid(t *testing.T) {
	_, err := ParseProfiles([]byte("languages:\n  - filematch: [\".x\"]\n"))
	assert.Error(t, err)

	_, err = ParseProfiles([]byte("languages:\n  - name: x\n    block_comment:\n      start: \"(*\"\n"))
	assert.Error(t, err)

	_, err = ParseProfiles([]byte("languages: [unclosed"))
	assert.Error(t, err)
}

func TestLoadProfiles(t *testing.T) {
	dir := t.TempDir()

	profiles, err := LoadProfiles(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, profiles)

	path := filepath.Join(dir, "languages.yaml")
	require.NoError(t, os.WriteFile(path, []byte(languagesYAML), 0o644))
	profiles, err = LoadProfiles(path)
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
}
