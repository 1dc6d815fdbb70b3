// Package sets loads the list of named, coded sets the game asks the player to identify.
package sets

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/sets.yaml
var defaultSetsYAML []byte

// ErrNoSets is returned when a set list is empty.
var ErrNoSets = errors.New("sets: no sets defined")

// Set is one answer key: the player must type Name before its icon lands.
type Set struct {
	Name     string `yaml:"name"`
	Code     string `yaml:"code"`
	IconURL  string `yaml:"icon_url,omitempty"`
	Released string `yaml:"released,omitempty"`
}

// file is the on-disk layout of a set list.
type file struct {
	IconURLTemplate string `yaml:"icon_url_template"`
	Sets            []Set  `yaml:"sets"`
}

// Load reads a set list from path, or the embedded default list when path is empty.
func Load(path string) ([]Set, error) {
	data := defaultSetsYAML
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("sets: cannot read %s: %w", path, err)
		}
	}
	list, err := Parse(data)
	if err != nil {
		if path == "" {
			path = "embedded list"
		}
		return nil, fmt.Errorf("sets: %s: %w", path, err)
	}
	return list, nil
}

// Parse decodes and validates a YAML set list.
// Sets without an icon_url get one from icon_url_template, where {code} is
// replaced by the lowercase set code.
func Parse(data []byte) ([]Set, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	list := make([]Set, 0, len(f.Sets))
	for _, s := range f.Sets {
		s.Name = strings.TrimSpace(s.Name)
		s.Code = strings.ToUpper(strings.TrimSpace(s.Code))
		if s.IconURL == "" && f.IconURLTemplate != "" {
			s.IconURL = strings.ReplaceAll(f.IconURLTemplate, "{code}", strings.ToLower(s.Code))
		}
		list = append(list, s)
	}

	if err := Validate(list); err != nil {
		return nil, err
	}
	return list, nil
}

// Validate checks that every set has a name and code, and that codes and
// case-insensitive names are unique. Answer matching relies on unique names.
func Validate(list []Set) error {
	if len(list) == 0 {
		return ErrNoSets
	}

	codes := make(map[string]bool, len(list))
	names := make(map[string]bool, len(list))
	for i, s := range list {
		if s.Name == "" || s.Code == "" {
			return fmt.Errorf("set %d: name and code are required", i)
		}
		if codes[s.Code] {
			return fmt.Errorf("set %d: duplicate code %q", i, s.Code)
		}
		key := Normalize(s.Name)
		if names[key] {
			return fmt.Errorf("set %d: duplicate name %q", i, s.Name)
		}
		codes[s.Code] = true
		names[key] = true
	}
	return nil
}

// Normalize trims and lowercases an answer or set name for comparison.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Codes returns the set codes in list order.
func Codes(list []Set) []string {
	codes := make([]string, len(list))
	for i, s := range list {
		codes[i] = s.Code
	}
	return codes
}

// ByCode indexes a set list by code.
func ByCode(list []Set) map[string]Set {
	m := make(map[string]Set, len(list))
	for _, s := range list {
		m[s.Code] = s
	}
	return m
}
