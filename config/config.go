// Package config loads checklist definitions from YAML files.
//
// A definition names a policy, its words or replacement mapping, and the
// matching options:
//
//	mode: replace
//	replacements:
//	  abc: new1
//	  foo: new2
//	match_substrings: false
//	word_boundary: '\b'
//	case_sensitive: false
//	engine: regexp2
//	prefilter: true
//
// Deny and allow definitions list their words under keys, or in a separate
// file (one word per line) under keys_file. A relative keys_file is resolved
// against the directory of the definition.
package config

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/coregx/retrie"
	"github.com/coregx/retrie/engine"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid checklist definition")

// File is a decoded checklist definition.
type File struct {
	Mode         string            `mapstructure:"mode" yaml:"mode"`
	Keys         []string          `mapstructure:"keys" yaml:"keys,omitempty"`
	KeysFile     string            `mapstructure:"keys_file" yaml:"keys_file,omitempty"`
	Replacements map[string]string `mapstructure:"replacements" yaml:"replacements,omitempty"`

	MatchSubstrings bool `mapstructure:"match_substrings" yaml:"match_substrings,omitempty"`

	// WordBoundary is nil when the definition omits it, which selects \b.
	WordBoundary *string `mapstructure:"word_boundary" yaml:"word_boundary,omitempty"`

	CaseSensitive bool   `mapstructure:"case_sensitive" yaml:"case_sensitive,omitempty"`
	Engine        string `mapstructure:"engine" yaml:"engine,omitempty"`

	// Prefilter is nil when omitted, which enables prefiltering.
	Prefilter *bool `mapstructure:"prefilter" yaml:"prefilter,omitempty"`
}

// Load reads and decodes the definition at path, then reads its keys_file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading checklist definition")
	}
	f, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if f.KeysFile != "" {
		keysPath := f.KeysFile
		if !filepath.IsAbs(keysPath) {
			keysPath = filepath.Join(filepath.Dir(path), keysPath)
		}
		keys, err := ReadKeysFile(keysPath)
		if err != nil {
			return nil, err
		}
		f.Keys = append(f.Keys, keys...)
	}
	return f, nil
}

// Parse decodes a YAML definition. Scalars are converted loosely (a numeric
// replacement value becomes a string) but unknown fields are an error.
// keys_file is recorded, not read; Load reads it.
func Parse(data []byte) (*File, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "decoding YAML")
	}

	f := &File{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           f,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating decoder")
	}
	if err := dec.Decode(raw); err != nil {
		return nil, errors.Wrap(err, "decoding checklist definition")
	}
	return f, nil
}

// Marshal encodes f as YAML. Parse(Marshal(f)) yields f again.
func (f *File) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, errors.Wrap(err, "encoding checklist definition")
	}
	return data, nil
}

// Policy returns the parsed mode. An empty mode means deny.
func (f *File) Policy() (retrie.Policy, error) {
	if f.Mode == "" {
		return retrie.Deny, nil
	}
	p, err := retrie.ParsePolicy(f.Mode)
	if err != nil {
		return 0, errors.Wrap(ErrInvalid, err.Error())
	}
	return p, nil
}

// Validate checks that the mode, engine, and word fields agree.
func (f *File) Validate() error {
	p, err := f.Policy()
	if err != nil {
		return err
	}
	if _, err := engine.Lookup(f.Engine); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}

	switch p {
	case retrie.Replace:
		if len(f.Keys) > 0 || f.KeysFile != "" {
			return errors.Wrap(ErrInvalid, "replace mode takes replacements, not keys")
		}
	default:
		if len(f.Replacements) > 0 {
			return errors.Wrapf(ErrInvalid, "%s mode takes keys, not replacements", p)
		}
	}
	return nil
}

// RetrieConfig translates the matching options.
func (f *File) RetrieConfig() (retrie.Config, error) {
	c := retrie.DefaultConfig()
	if f.WordBoundary != nil {
		c.WordBoundary = *f.WordBoundary
	}
	c.MatchSubstrings = f.MatchSubstrings
	if f.CaseSensitive {
		c.Flags &^= retrie.FlagIgnoreCase
	}
	if f.Prefilter != nil {
		c.Prefilter = *f.Prefilter
	}

	eng, err := engine.Lookup(f.Engine)
	if err != nil {
		return c, errors.Wrap(ErrInvalid, err.Error())
	}
	c.Engine = eng
	return c, nil
}

// Build validates f and constructs its checklist.
func (f *File) Build() (*retrie.Checklist, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	p, err := f.Policy()
	if err != nil {
		return nil, err
	}
	c, err := f.RetrieConfig()
	if err != nil {
		return nil, err
	}

	var list *retrie.Checklist
	if p == retrie.Replace {
		list, err = retrie.NewReplacer(f.Replacements, c)
	} else {
		list, err = retrie.NewChecklist(p, f.Keys, c)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "building %s checklist", p)
	}
	return list, nil
}

// ReadKeys reads one key per line. Blank lines are skipped and a trailing
// carriage return is dropped; other whitespace is part of the key.
func ReadKeys(r io.Reader) ([]string, error) {
	var keys []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		keys = append(keys, line)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading keys")
	}
	return keys, nil
}

// ReadKeysFile is ReadKeys on the named file.
func ReadKeysFile(path string) ([]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening keys file")
	}
	defer fh.Close()

	keys, err := ReadKeys(fh)
	if err != nil {
		return nil, errors.Wrapf(err, "in %s", path)
	}
	return keys, nil
}
