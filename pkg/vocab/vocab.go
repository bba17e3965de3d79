// Package vocab defines the Domain Vocabulary: the external, swappable
// set of keyword, label and synonym tables that adapts the generic
// journey engine to one business domain. Vocabulary = data, not code;
// the engine has no domain-specific branches.
package vocab

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoLabels is returned when a vocabulary declares no event labels.
	ErrNoLabels = errors.New("vocab: vocabulary has no event labels")

	// ErrNoDefault is returned when the default label is missing or not
	// part of the label set.
	ErrNoDefault = errors.New("vocab: default label missing from label set")

	// ErrUnknownTrigger is returned when a value trigger references a
	// label outside the canonical set.
	ErrUnknownTrigger = errors.New("vocab: value trigger references unknown label")

	// ErrUnknownCaseStart is returned when a case-start label is not part
	// of the canonical set.
	ErrUnknownCaseStart = errors.New("vocab: case-start label not in label set")
)

// Vocabulary is supplied once per analysis run and never mutated by the
// engine. All matching is case-insensitive.
type Vocabulary struct {
	// Domain names the business domain (e.g. "banking").
	Domain string `yaml:"domain"`

	// TimestampKeywords mark timestamp-bearing column names (substring
	// match); TimestampExclusions veto columns such as birth dates.
	TimestampKeywords   []string `yaml:"timestamp_keywords"`
	TimestampExclusions []string `yaml:"timestamp_exclusions"`

	// EventLabels is the canonical label set.
	EventLabels []string `yaml:"event_labels"`

	// ValueTriggers maps a canonical label to free-text substrings whose
	// presence in a row value signals that event.
	ValueTriggers map[string][]string `yaml:"value_triggers"`

	// CaseStartLabels conventionally begin a new lifecycle.
	CaseStartLabels []string `yaml:"case_start_labels"`

	// ColumnEvents maps a (suffix-stripped) column name to an event
	// label, for tables whose schema is one column per event.
	ColumnEvents map[string]string `yaml:"column_events"`

	// EntityIDPatterns is the ranked list of identifier-style column
	// name patterns probed for the entity id.
	EntityIDPatterns []string `yaml:"entity_id_patterns"`

	// CaseIDPatterns detect explicit case/session/journey id columns.
	CaseIDPatterns []string `yaml:"case_id_patterns"`

	// EventColumnNames are names of declared event columns
	// (event_name, action, status, ...).
	EventColumnNames []string `yaml:"event_column_names"`

	// DefaultLabel is the domain's most generic event, used when every
	// other inference rule fails. Always a member of EventLabels.
	DefaultLabel string `yaml:"default_label"`

	// Explanations maps a canonical label to a short English phrase used
	// in per-activity explanation text.
	Explanations map[string]string `yaml:"explanations"`
}

// Validate enforces the structural contract. A violation is a
// programming error surfaced to the caller immediately, never recovered.
func (v *Vocabulary) Validate() error {
	if len(v.EventLabels) == 0 {
		return ErrNoLabels
	}
	if v.DefaultLabel == "" || !v.HasLabel(v.DefaultLabel) {
		return fmt.Errorf("%w: %q", ErrNoDefault, v.DefaultLabel)
	}
	for label := range v.ValueTriggers {
		if !v.HasLabel(label) {
			return fmt.Errorf("%w: %q", ErrUnknownTrigger, label)
		}
	}
	for _, label := range v.CaseStartLabels {
		if !v.HasLabel(label) {
			return fmt.Errorf("%w: %q", ErrUnknownCaseStart, label)
		}
	}
	return nil
}

// HasLabel reports whether label is in the canonical set (case-insensitive).
func (v *Vocabulary) HasLabel(label string) bool {
	for _, l := range v.EventLabels {
		if strings.EqualFold(l, label) {
			return true
		}
	}
	return false
}

// IsCaseStart reports whether label conventionally begins a new lifecycle.
func (v *Vocabulary) IsCaseStart(label string) bool {
	for _, l := range v.CaseStartLabels {
		if strings.EqualFold(l, label) {
			return true
		}
	}
	return false
}

// Canonical maps a free-form label to the nearest canonical entry:
// exact match first, then substring either way. Falls back to the input
// unchanged when nothing matches.
func (v *Vocabulary) Canonical(label string) string {
	lower := strings.ToLower(strings.TrimSpace(label))
	for _, l := range v.EventLabels {
		if strings.ToLower(l) == lower {
			return l
		}
	}
	for _, l := range v.EventLabels {
		ll := strings.ToLower(l)
		if strings.Contains(lower, ll) || strings.Contains(ll, lower) {
			return l
		}
	}
	return label
}

// TriggerFor scans a raw value for any value-trigger substring and
// returns the trigger's canonical label. Labels are checked in the
// declared EventLabels order so matching is deterministic.
func (v *Vocabulary) TriggerFor(value string) (string, bool) {
	lower := strings.ToLower(value)
	if lower == "" {
		return "", false
	}
	for _, label := range v.EventLabels {
		for _, trigger := range v.ValueTriggers[label] {
			if trigger != "" && strings.Contains(lower, strings.ToLower(trigger)) {
				return label, true
			}
		}
	}
	return "", false
}

// TriggerTokens returns every trigger substring, used by the extractor
// to gauge whether a declared event column speaks this vocabulary.
func (v *Vocabulary) TriggerTokens() []string {
	var tokens []string
	for _, label := range v.EventLabels {
		tokens = append(tokens, v.ValueTriggers[label]...)
	}
	return tokens
}

// Explain returns the explanation phrase for a canonical label, falling
// back to a generic phrase derived from the label itself.
func (v *Vocabulary) Explain(label string) string {
	if phrase, ok := v.Explanations[label]; ok {
		return phrase
	}
	return fmt.Sprintf("The %s step was recorded", strings.ToLower(label))
}

// Load reads and validates a vocabulary from a YAML file.
func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates a vocabulary from YAML bytes.
func Parse(data []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("vocab: decode: %w", err)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &v, nil
}

// Save writes the vocabulary as YAML.
func (v *Vocabulary) Save(path string) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
