package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"clockify-cli/internal/domain"
)

const preferencesFile = "config.yaml"

// PreferenceFile implements ports.PreferenceStore on top of a YAML file.
type PreferenceFile struct {
	path string
}

// NewPreferenceFile keeps preferences in dir/config.yaml.
func NewPreferenceFile(dir string) *PreferenceFile {
	return &PreferenceFile{path: filepath.Join(dir, preferencesFile)}
}

// Path returns the location of the file.
func (f *PreferenceFile) Path() string { return f.path }

// Load returns the stored preferences, writing the defaults on first run.
func (f *PreferenceFile) Load() (domain.Preferences, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			p := domain.DefaultPreferences()
			return p, f.Save(p)
		}
		return domain.Preferences{}, fmt.Errorf("read preferences: %w", err)
	}

	p := domain.DefaultPreferences()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return domain.Preferences{}, fmt.Errorf("parse preferences %s: %w", f.path, err)
	}
	return p, nil
}

// Save overwrites the file.
func (f *PreferenceFile) Save(p domain.Preferences) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	return os.Chmod(f.path, 0o600)
}

// Reset restores the defaults and returns them.
func (f *PreferenceFile) Reset() (domain.Preferences, error) {
	p := domain.DefaultPreferences()
	return p, f.Save(p)
}

// setters maps user-facing keys to validated assignments.
var setters = map[string]func(*domain.Preferences, string) error{
	"time_format": func(p *domain.Preferences, v string) error {
		switch v {
		case domain.TimeFormat24h, domain.TimeFormat12h:
			p.TimeFormat = v
			return nil
		}
		return domain.Errorf(domain.KindInvalidInput, "time_format must be %q or %q", domain.TimeFormat24h, domain.TimeFormat12h)
	},
	"default_billable": func(p *domain.Preferences, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return domain.Errorf(domain.KindInvalidInput, "default_billable must be true or false")
		}
		p.DefaultBillable = b
		return nil
	},
	"require_project": func(p *domain.Preferences, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return domain.Errorf(domain.KindInvalidInput, "require_project must be true or false")
		}
		p.RequireProject = b
		return nil
	},
	"workspace_id": func(p *domain.Preferences, v string) error {
		p.WorkspaceID = v
		return nil
	},
}

// Keys lists the settable preference names.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set assigns one preference by name and persists the record.
func (f *PreferenceFile) Set(key, value string) (domain.Preferences, error) {
	set, ok := setters[strings.ToLower(key)]
	if !ok {
		return domain.Preferences{}, domain.Errorf(domain.KindInvalidInput,
			"unknown setting %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	p, err := f.Load()
	if err != nil {
		return domain.Preferences{}, err
	}
	if err := set(&p, strings.TrimSpace(value)); err != nil {
		return domain.Preferences{}, err
	}
	return p, f.Save(p)
}
