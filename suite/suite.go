// Package suite loads YAML acceptance suites and runs them against a
// pattern compiler.
//
// A suite lists patterns with inputs each must accept or reject, or marks a
// pattern as invalid:
//
//	cases:
//	  - pattern: "a{2,3}"
//	    accept: ["aa", "aaa"]
//	    reject: ["a", "aaaa"]
//	  - pattern: "[z-a]"
//	    invalid: true
package suite

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSuite indicates a malformed suite document.
var ErrInvalidSuite = errors.New("invalid suite")

// Matcher decides whole-string acceptance.
type Matcher interface {
	Matches(input string) bool
}

// CompileFunc compiles a pattern into a Matcher.
type CompileFunc func(pattern string) (Matcher, error)

// Case is one pattern and its expectations.
type Case struct {
	Name    string   `yaml:"name,omitempty"`
	Pattern string   `yaml:"pattern"`
	Accept  []string `yaml:"accept,omitempty"`
	Reject  []string `yaml:"reject,omitempty"`
	Invalid bool     `yaml:"invalid,omitempty"`
}

// Label returns the case name, or the quoted pattern if unnamed.
func (c Case) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("%q", c.Pattern)
}

// Suite is a list of cases.
type Suite struct {
	Name  string `yaml:"name,omitempty"`
	Cases []Case `yaml:"cases"`
}

// Load decodes a suite from r. Unknown fields are rejected.
func Load(r io.Reader) (*Suite, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Suite
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidSuite)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSuite, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile loads the suite stored at path.
func LoadFile(path string) (*Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening suite: %w", err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate rejects suites without cases and invalid cases that also list
// inputs.
func (s *Suite) Validate() error {
	if len(s.Cases) == 0 {
		return fmt.Errorf("%w: no cases", ErrInvalidSuite)
	}
	for i, c := range s.Cases {
		if c.Invalid && (len(c.Accept) > 0 || len(c.Reject) > 0) {
			return fmt.Errorf("%w: case %d (%s) is invalid but lists inputs", ErrInvalidSuite, i, c.Label())
		}
	}
	return nil
}

// Failure is one unmet expectation.
type Failure struct {
	Case    int    // index into Suite.Cases
	Label   string // Case.Label()
	Compile bool   // the failure is about compilation, Input is unused
	Input   string
	Reason  string
}

// String formats the failure for display.
func (f Failure) String() string {
	if f.Compile {
		return fmt.Sprintf("case %d %s: %s", f.Case, f.Label, f.Reason)
	}
	return fmt.Sprintf("case %d %s: input %q: %s", f.Case, f.Label, f.Input, f.Reason)
}

// Report summarizes a run.
type Report struct {
	Cases    int
	Checks   int
	Failures []Failure
}

// Passed reports whether every expectation held.
func (r Report) Passed() bool {
	return len(r.Failures) == 0
}

// String returns a one-line summary.
func (r Report) String() string {
	return fmt.Sprintf("%d cases, %d checks, %d failures", r.Cases, r.Checks, len(r.Failures))
}

// Run compiles every case and checks its expectations.
func (s *Suite) Run(compile CompileFunc) Report {
	rep := Report{Cases: len(s.Cases)}
	for i, c := range s.Cases {
		fail := func(f Failure) {
			f.Case, f.Label = i, c.Label()
			rep.Failures = append(rep.Failures, f)
		}

		rep.Checks++
		m, err := compile(c.Pattern)
		switch {
		case c.Invalid && err == nil:
			fail(Failure{Compile: true, Reason: "compiled, want an error"})
			continue
		case c.Invalid:
			continue
		case err != nil:
			fail(Failure{Compile: true, Reason: fmt.Sprintf("compile error: %v", err)})
			continue
		}

		for _, in := range c.Accept {
			rep.Checks++
			if !m.Matches(in) {
				fail(Failure{Input: in, Reason: "rejected, want accepted"})
			}
		}
		for _, in := range c.Reject {
			rep.Checks++
			if m.Matches(in) {
				fail(Failure{Input: in, Reason: "accepted, want rejected"})
			}
		}
	}
	return rep
}
