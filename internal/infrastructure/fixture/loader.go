// Package fixture loads YAML fixtures for the business flows.
package fixture

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/data.yaml"

var (
	ErrUnknownUser    = errors.New("unknown user")
	ErrMissingMessage = errors.New("missing expected message")
)

type Credentials struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type Fixtures struct {
	BaseURL  string                 `yaml:"base_url"`
	Users    map[string]Credentials `yaml:"users"`
	Messages map[string]string      `yaml:"messages"`
}

func (f *Fixtures) User(name string) (Credentials, error) {
	creds, ok := f.Users[name]
	if !ok {
		return Credentials{}, fmt.Errorf("%w: %s", ErrUnknownUser, name)
	}
	return creds, nil
}

// Message returns the named expected message. An absent or empty entry is
// an error, since an empty expectation matches any text.
func (f *Fixtures) Message(name string) (string, error) {
	msg := f.Messages[name]
	if msg == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingMessage, name)
	}
	return msg, nil
}

// Load decodes an arbitrary YAML document into a generic map.
func Load(path string) (map[string]any, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read test data: %w", err)
	}

	out := map[string]any{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse test data %s: %w", path, err)
	}
	return out, nil
}

func LoadFixtures(path string) (*Fixtures, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open fixtures: %w", err)
	}
	defer f.Close()

	var fixtures Fixtures
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fixtures); err != nil {
		return nil, fmt.Errorf("parse fixtures %s: %w", path, err)
	}
	return &fixtures, nil
}

// Default mirrors config/data.yaml so flows can run without the file.
func Default() *Fixtures {
	return &Fixtures{
		BaseURL: "https://www.saucedemo.com/",
		Users: map[string]Credentials{
			"standard": {Username: "standard_user", Password: "secret_sauce"},
			"invalid":  {Username: "standard_user", Password: "wrong_password"},
		},
		Messages: map[string]string{
			"invalid_login": "Epic sadface: Username and password do not match any user in this service",
		},
	}
}
