// Package plan contains the declarative provisioning plan model. A plan is
// an ordered list of steps plus a list of external artifacts, parsed from a
// YAML document. Plans are immutable once parsed: the executor and the
// fetcher only ever read them.
package plan

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// SchemaConstraint is the range of plan schema versions this binary knows
// how to apply.
const SchemaConstraint = ">= 1.0.0, < 2.0.0"

// Step is one discrete, ordered provisioning action. Steps run exactly once
// per run, in declaration order.
type Step struct {
	Name              string            `yaml:"name"`
	Command           string            `yaml:"command"`
	Args              []string          `yaml:"args,omitempty"`
	Env               map[string]string `yaml:"env,omitempty"`
	Dir               string            `yaml:"dir,omitempty"`
	ExpectedExitCodes []int             `yaml:"expectedExitCodes,omitempty"`
	BestEffort        bool              `yaml:"bestEffort,omitempty"`
}

// ExitCodeExpected reports whether code counts as a success for this step.
// An empty expected list means only zero is a success.
func (s *Step) ExitCodeExpected(code int) bool {
	if len(s.ExpectedExitCodes) == 0 {
		return code == 0
	}
	for _, c := range s.ExpectedExitCodes {
		if c == code {
			return true
		}
	}
	return false
}

// Artifact is an externally hosted file the target environment needs. It is
// fetched, verified, installed at Destination and then its download is
// discarded.
type Artifact struct {
	Name        string   `yaml:"name"`
	URL         string   `yaml:"url"`
	SHA256      string   `yaml:"sha256,omitempty"`
	Destination string   `yaml:"destination"`
	Archive     bool     `yaml:"archive,omitempty"`
	BinLinks    []string `yaml:"binLinks,omitempty"`
}

// Plan is a full provisioning plan.
type Plan struct {
	SchemaVersion string     `yaml:"schemaVersion"`
	Name          string     `yaml:"name"`
	Steps         []Step     `yaml:"steps,omitempty"`
	Artifacts     []Artifact `yaml:"artifacts,omitempty"`
}

// Parse parses a plan from the given file and validates it.
func Parse(fpath string) (*Plan, error) {
	data, err := os.ReadFile(fpath)
	if err != nil {
		return nil, fmt.Errorf("unable to read plan file: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes parses a plan from raw YAML and validates it. Unknown fields
// are rejected so typos in plans fail loudly instead of being ignored.
func ParseBytes(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.UnmarshalStrict(data, &p); err != nil {
		return nil, fmt.Errorf("unable to unmarshal plan: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the plan for structural problems. It does not touch the
// filesystem or the network.
func (p *Plan) Validate() error {
	if p.Name == "" {
		return errors.New("plan has no name")
	}
	if err := p.validateSchemaVersion(); err != nil {
		return err
	}
	seen := map[string]bool{}
	for i, step := range p.Steps {
		if step.Name == "" {
			return errors.Errorf("step %d has no name", i)
		}
		if step.Command == "" {
			return errors.Errorf("step %q has no command", step.Name)
		}
		if seen[step.Name] {
			return errors.Errorf("duplicate step name %q", step.Name)
		}
		seen[step.Name] = true
	}
	for i, artifact := range p.Artifacts {
		if err := artifact.Validate(); err != nil {
			return errors.Wrapf(err, "artifact %d", i)
		}
	}
	return nil
}

func (p *Plan) validateSchemaVersion() error {
	if p.SchemaVersion == "" {
		return errors.New("plan has no schemaVersion")
	}
	version, err := semver.NewVersion(p.SchemaVersion)
	if err != nil {
		return errors.Wrapf(err, "invalid schemaVersion %q", p.SchemaVersion)
	}
	constraint, err := semver.NewConstraint(SchemaConstraint)
	if err != nil {
		return errors.Wrap(err, "parse schema constraint")
	}
	if !constraint.Check(version) {
		return errors.Errorf("unsupported schemaVersion %q, supported range is %q", p.SchemaVersion, SchemaConstraint)
	}
	return nil
}

// Validate checks a single artifact descriptor.
func (a *Artifact) Validate() error {
	if a.Name == "" {
		return errors.New("artifact has no name")
	}
	if a.Destination == "" {
		return errors.Errorf("artifact %q has no destination", a.Name)
	}
	if !filepath.IsAbs(a.Destination) {
		return errors.Errorf("artifact %q destination %q is not absolute", a.Name, a.Destination)
	}
	parsed, err := url.Parse(a.URL)
	if err != nil {
		return errors.Wrapf(err, "artifact %q has an invalid url", a.Name)
	}
	switch parsed.Scheme {
	case "http", "https", "s3", "file":
	default:
		return errors.Errorf("artifact %q has unsupported url scheme %q", a.Name, parsed.Scheme)
	}
	if len(a.BinLinks) > 0 && !a.Archive {
		return errors.Errorf("artifact %q declares binLinks but is not an archive", a.Name)
	}
	return nil
}
