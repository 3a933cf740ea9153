package syntax

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Class separates the two keyword groups a profile may define.
type Class int

const (
	Primary Class = iota
	Secondary
)

// Flags enable optional scanners of a profile.
type Flags int

const (
	HighlightNumbers Flags = 1 << iota
	HighlightStrings
)

// Keyword is a single word recognised by a profile.
type Keyword struct {
	Word  string
	Class Class
}

// Profile describes the lexical rules of one language. A profile is never
// mutated after Compile; buffers only hold a reference to it.
type Profile struct {
	Name        string
	FileMatch   []string
	Keywords    []Keyword
	LineComment string
	BlockStart  string
	BlockEnd    string
	Flags       Flags
}

// Compile orders keywords longest first so that the longest candidate wins
// at any position. Words of equal length keep their declared order.
func (p *Profile) Compile() *Profile {
	sort.SliceStable(p.Keywords, func(i, j int) bool {
		return len(p.Keywords[i].Word) > len(p.Keywords[j].Word)
	})
	return p
}

func (p *Profile) matchKeyword(text []byte, at int) (Keyword, bool) {
	for _, kw := range p.Keywords {
		n := len(kw.Word)
		if n == 0 || at+n > len(text) {
			continue
		}
		if string(text[at:at+n]) != kw.Word {
			continue
		}
		var next byte
		if at+n < len(text) {
			next = text[at+n]
		}
		if IsSeparator(next) {
			return kw, true
		}
	}
	return Keyword{}, false
}

// Matches reports whether the profile applies to filename. Patterns starting
// with a dot must equal the file extension, others match as a substring.
func (p *Profile) Matches(filename string) bool {
	if filename == "" {
		return false
	}
	ext := filepath.Ext(filename)
	for _, pattern := range p.FileMatch {
		if strings.HasPrefix(pattern, ".") {
			if ext != "" && ext == pattern {
				return true
			}
			continue
		}
		if strings.Contains(filename, pattern) {
			return true
		}
	}
	return false
}

// Registry is an ordered set of profiles; the first match wins.
type Registry struct {
	profiles []*Profile
}

// NewRegistry creates a registry from already compiled profiles.
func NewRegistry(profiles ...*Profile) *Registry {
	return &Registry{profiles: profiles}
}

// Prepend puts profiles in front of the existing ones, so user definitions
// override the built-in ones.
func (r *Registry) Prepend(profiles ...*Profile) {
	for _, p := range profiles {
		p.Compile()
	}
	r.profiles = append(append([]*Profile{}, profiles...), r.profiles...)
}

// Profiles returns the registered profiles in priority order.
func (r *Registry) Profiles() []*Profile {
	return r.profiles
}

// Select returns the profile for filename or nil.
func (r *Registry) Select(filename string) *Profile {
	if r == nil {
		return nil
	}
	for _, p := range r.profiles {
		if p.Matches(filename) {
			return p
		}
	}
	return nil
}

// profileFile is the YAML layout of a languages file.
type profileFile struct {
	Languages []profileEntry `yaml:"languages"`
}

type profileEntry struct {
	Name         string   `yaml:"name"`
	FileMatch    []string `yaml:"filematch"`
	Keywords     []string `yaml:"keywords"`
	Types        []string `yaml:"types"`
	LineComment  string   `yaml:"line_comment"`
	BlockComment struct {
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	} `yaml:"block_comment"`
	Numbers bool `yaml:"numbers"`
	Strings bool `yaml:"strings"`
}

// ParseProfiles decodes a YAML languages document.
func ParseProfiles(data []byte) ([]*Profile, error) {
	var file profileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse languages: %w", err)
	}
	profiles := make([]*Profile, 0, len(file.Languages))
	for i, entry := range file.Languages {
		if strings.TrimSpace(entry.Name) == "" {
			return nil, fmt.Errorf("parse languages: entry %d has no name", i)
		}
		if (entry.BlockComment.Start == "") != (entry.BlockComment.End == "") {
			return nil, fmt.Errorf("parse languages: %s: block comment needs both start and end", entry.Name)
		}
		p := &Profile{
			Name:        entry.Name,
			FileMatch:   entry.FileMatch,
			LineComment: entry.LineComment,
			BlockStart:  entry.BlockComment.Start,
			BlockEnd:    entry.BlockComment.End,
		}
		for _, w := range entry.Keywords {
			p.Keywords = append(p.Keywords, Keyword{Word: w, Class: Primary})
		}
		for _, w := range entry.Types {
			p.Keywords = append(p.Keywords, Keyword{Word: w, Class: Secondary})
		}
		if entry.Numbers {
			p.Flags |= HighlightNumbers
		}
		if entry.Strings {
			p.Flags |= HighlightStrings
		}
		profiles = append(profiles, p.Compile())
	}
	return profiles, nil
}

// LoadProfiles reads a YAML languages file. A missing file is not an error.
func LoadProfiles(path string) ([]*Profile, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read languages %s: %w", path, err)
	}
	return ParseProfiles(data)
}
