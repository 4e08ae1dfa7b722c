// Package document reads YAML schedule documents and loads them into
// named timelines
package document

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type (
	// Document describes one named timeline and the events to place on it
	Document struct {
		Name   string  `yaml:"name"`
		Mode   Mode    `yaml:"mode,omitempty"`
		Policy Policy  `yaml:"policy,omitempty"`
		Axis   Axis    `yaml:"axis,omitempty"`
		Events []Event `yaml:"events"`
	}

	// Event is an event as written in a Document. Times are kept as text
	// until the Document's Axis parses them
	Event struct {
		Start    string `yaml:"start,omitempty"`
		End      string `yaml:"end,omitempty"`
		Duration string `yaml:"duration,omitempty"`
		Subject  any    `yaml:"subject,omitempty"`
		Active   *bool  `yaml:"active,omitempty"`
	}

	// Defaults fill in the settings a Document leaves blank
	Defaults struct {
		Mode   Mode
		Policy Policy
		Axis   Axis
	}

	// Mode selects the kind of timeline a Document is loaded into
	Mode string

	// Policy selects how an exclusive timeline resolves conflicts
	Policy string
)

const (
	ModeOverlap   Mode = "overlap"
	ModeExclusive Mode = "exclusive"

	PolicyDiscard Policy = "discard"
	PolicyDelay   Policy = "delay"
)

var (
	// ErrUnknownMode is returned when a Document names an unknown mode
	ErrUnknownMode = errors.New("unknown mode")

	// ErrUnknownPolicy is returned when a Document names an unknown policy
	ErrUnknownPolicy = errors.New("unknown policy")

	// ErrUnknownAxis is returned when a Document names an unknown axis
	ErrUnknownAxis = errors.New("unknown axis")

	// ErrBadEvent is returned when an event's times can't be parsed
	ErrBadEvent = errors.New("bad event")

	// ErrMissingName is returned when a Document has no name
	ErrMissingName = errors.New("document name is required")
)

// DefaultDefaults returns the settings used when neither the Document nor
// the caller chooses one
func DefaultDefaults() Defaults {
	return Defaults{
		Mode:   ModeOverlap,
		Policy: PolicyDiscard,
		Axis:   AxisInt,
	}
}

// Parse decodes a Document from YAML and validates its settings
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if doc.Name == "" {
		return nil, ErrMissingName
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and parses the Document stored at path
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// WithDefaults returns a copy of the Document with blank settings taken
// from d
func (doc *Document) WithDefaults(d Defaults) *Document {
	res := *doc
	if res.Mode == "" {
		res.Mode = d.Mode
	}
	if res.Policy == "" {
		res.Policy = d.Policy
	}
	if res.Axis == "" {
		res.Axis = d.Axis
	}
	return &res
}

func (doc *Document) validate() error {
	switch doc.Mode {
	case "", ModeOverlap, ModeExclusive:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, doc.Mode)
	}
	switch doc.Policy {
	case "", PolicyDiscard, PolicyDelay:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPolicy, doc.Policy)
	}
	if doc.Axis != "" && !doc.Axis.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownAxis, doc.Axis)
	}
	return nil
}

func (e Event) isActive() bool {
	return e.Active == nil || *e.Active
}
