package scenario

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tlind/krakenprobe/internal/shape"
)

// Scenario defines one named API check.
// Scenarios are immutable after loading and carry everything the runner
// needs: the request to build and the expected response shape.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Request describes the HTTP request to issue.
	Request Request `yaml:"request"`

	// Expect describes the expected response.
	Expect Expect `yaml:"expect"`
}

// Request describes the HTTP request for a scenario.
type Request struct {
	// Method is the HTTP method. Defaults to GET.
	// Kraken private endpoints take signed POST requests.
	Method string `yaml:"method,omitempty"`

	// Path is the endpoint path, e.g. "/0/public/Time".
	Path string `yaml:"path"`

	// Params are query parameters for public requests,
	// e.g. pair: xbtusd for the ticker endpoint.
	Params map[string]string `yaml:"params,omitempty"`

	// Auth marks the request as authenticated. Authenticated requests
	// must have credentials attached before they are sent.
	Auth bool `yaml:"auth,omitempty"`
}

// Expect describes the expected response for a scenario.
type Expect struct {
	// Status is the expected HTTP status. Defaults to 200.
	Status int `yaml:"status,omitempty"`

	// Shape is the response-shape tag (time|ticker|orders).
	Shape string `yaml:"shape"`
}

// Pair returns the trading pair the scenario asks for, if any.
func (s *Scenario) Pair() string {
	return s.Request.Params["pair"]
}

// Load reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expects:" vs "expect:".
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	sc.applyDefaults()

	if err := validate(&sc); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &sc, nil
}

// applyDefaults fills in the defaulted fields: GET and status 200.
func (s *Scenario) applyDefaults() {
	if s.Request.Method == "" {
		s.Request.Method = http.MethodGet
	}
	if s.Expect.Status == 0 {
		s.Expect.Status = http.StatusOK
	}
}

// validate checks that required fields are present and valid.
func validate(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch s.Request.Method {
	case http.MethodGet, http.MethodPost:
	default:
		return fmt.Errorf("request.method must be GET or POST, got %q", s.Request.Method)
	}

	if s.Request.Path == "" {
		return fmt.Errorf("request.path is required")
	}
	if !strings.HasPrefix(s.Request.Path, "/") {
		return fmt.Errorf("request.path must start with /, got %q", s.Request.Path)
	}

	if s.Expect.Shape == "" {
		return fmt.Errorf("expect.shape is required")
	}
	if !shape.Known(shape.Tag(s.Expect.Shape)) {
		return fmt.Errorf("expect.shape %q is not a known shape (known: %v)",
			s.Expect.Shape, shape.Tags())
	}

	if s.Expect.Status < 100 || s.Expect.Status > 599 {
		return fmt.Errorf("expect.status %d is not a valid HTTP status", s.Expect.Status)
	}

	return nil
}

// Discover finds all YAML scenario files in a directory.
// The filter, if non-empty, is a glob pattern matched against the file
// base name without extension.
func Discover(dir string, filter string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// LoadDir discovers and loads all scenarios under dir.
// Load failures do not abort the walk; they are returned keyed by file
// path so the caller can report each broken file independently.
func LoadDir(dir string, filter string) ([]*Scenario, map[string]error, error) {
	files, err := Discover(dir, filter)
	if err != nil {
		return nil, nil, err
	}

	var scenarios []*Scenario
	failures := make(map[string]error)
	for _, f := range files {
		sc, err := Load(f)
		if err != nil {
			failures[f] = err
			continue
		}
		scenarios = append(scenarios, sc)
	}

	return scenarios, failures, nil
}
