package policy

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/robert-at-pretension-io/vapi/internal/extractor"
	"github.com/robert-at-pretension-io/vapi/internal/parser"
)

func facts(t *testing.T, content string) extractor.FileFacts {
	t.Helper()
	f, err := extractor.New(parser.Options{}).ExtractSource("top.vhd", []byte(content))
	if err != nil {
		t.Fatalf("ExtractSource() error: %v", err)
	}
	return f
}

func evaluate(t *testing.T, severities map[string]string, files ...extractor.FileFacts) *Result {
	t.Helper()
	engine, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	result, err := engine.Evaluate(context.Background(), NewInput(severities, files...))
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	return result
}

func rulesOf(vs []Violation) []string {
	var rules []string
	for _, v := range vs {
		rules = append(rules, v.Rule)
	}
	return rules
}

func TestRules(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		rule     string
		severity string
		line     int
		message  string
	}{
		{
			name:     "entity name mismatch",
			source:   "entity top is end bottom;",
			rule:     "entity_name_mismatch",
			severity: "warning",
			line:     1,
			message:  `entity "top" is closed as "bottom"`,
		},
		{
			name:     "duplicate port",
			source:   "entity top is\nport( a : in bit;\n      A : out bit );\nend;",
			rule:     "duplicate_port",
			severity: "error",
			line:     3,
			message:  `port "A" declared more than once in entity "top"`,
		},
		{
			name:     "null downto range",
			source:   "entity top is\nport( d : in bit_vector(0 downto 7) );\nend;",
			rule:     "null_range",
			severity: "warning",
			line:     2,
			message:  `port "d" has a null range (0 downto 7)`,
		},
		{
			name:     "null to range",
			source:   "entity top is port( d : in bit_vector(3 to 1) ); end;",
			rule:     "null_range",
			severity: "warning",
			line:     1,
			message:  `port "d" has a null range (3 to 1)`,
		},
		{
			name:     "port without mode",
			source:   "entity top is port( a : bit ); end;",
			rule:     "port_without_mode",
			severity: "info",
			line:     1,
			message:  `port "a" has no mode and defaults to in`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := evaluate(t, nil, facts(t, tt.source))
			if len(result.Violations) != 1 {
				t.Fatalf("got %d violations %v, want 1", len(result.Violations), rulesOf(result.Violations))
			}
			v := result.Violations[0]
			if v.Rule != tt.rule {
				t.Errorf("Rule = %q, want %q", v.Rule, tt.rule)
			}
			if v.Severity != tt.severity {
				t.Errorf("Severity = %q, want %q", v.Severity, tt.severity)
			}
			if def := DefaultSeverities[tt.rule]; def != v.Severity {
				t.Errorf("DefaultSeverities[%q] = %q, rule reports %q", tt.rule, def, v.Severity)
			}
			if v.File != "top.vhd" {
				t.Errorf("File = %q, want %q", v.File, "top.vhd")
			}
			if v.Line != tt.line {
				t.Errorf("Line = %d, want %d", v.Line, tt.line)
			}
			if v.Message != tt.message {
				t.Errorf("Message = %q, want %q", v.Message, tt.message)
			}
			if result.Summary.TotalViolations != 1 {
				t.Errorf("TotalViolations = %d, want 1", result.Summary.TotalViolations)
			}
		})
	}
}

func TestCleanEntity(t *testing.T) {
	result := evaluate(t, nil, facts(t, "entity top is port( clk : in bit; q : out bit_vector(7 downto 0) ); end entity TOP;"))
	if result.Violations == nil {
		t.Fatal("Violations is nil, want empty slice")
	}
	if len(result.Violations) != 0 {
		t.Errorf("got violations %v, want none", rulesOf(result.Violations))
	}
	if result.Summary != (Summary{}) {
		t.Errorf("Summary = %+v, want zero", result.Summary)
	}
}

func TestSeverityOverrides(t *testing.T) {
	src := facts(t, "entity top is port( a : bit;\n a : in bit ); end bottom;")

	result := evaluate(t, nil, src)
	if got := strings.Join(rulesOf(result.Violations), ","); got != "entity_name_mismatch,port_without_mode,duplicate_port" {
		t.Fatalf("default rules = %s", got)
	}
	if result.Summary.Errors != 1 || result.Summary.Warnings != 1 || result.Summary.Info != 1 {
		t.Errorf("Summary = %+v", result.Summary)
	}

	result = evaluate(t, map[string]string{
		"port_without_mode":    "off",
		"entity_name_mismatch": "error",
	}, src)
	if got := strings.Join(rulesOf(result.Violations), ","); got != "entity_name_mismatch,duplicate_port" {
		t.Fatalf("overridden rules = %s", got)
	}
	for _, v := range result.Violations {
		if v.Severity != "error" {
			t.Errorf("%s severity = %q, want error", v.Rule, v.Severity)
		}
	}
	if result.Summary.Errors != 2 || result.Summary.TotalViolations != 2 {
		t.Errorf("Summary = %+v", result.Summary)
	}
}

func TestViolationsSortedAcrossFiles(t *testing.T) {
	b, err := extractor.New(parser.Options{}).ExtractSource("b.vhd", []byte("entity x is end y;"))
	if err != nil {
		t.Fatal(err)
	}
	a, err := extractor.New(parser.Options{}).ExtractSource("a.vhd", []byte("entity x is\nport( p : bit );\nend z;"))
	if err != nil {
		t.Fatal(err)
	}

	result := evaluate(t, nil, b, a)
	var got []string
	for _, v := range result.Violations {
		got = append(got, v.File+":"+v.Rule)
	}
	want := "a.vhd:entity_name_mismatch,a.vhd:port_without_mode,b.vhd:entity_name_mismatch"
	if strings.Join(got, ",") != want {
		t.Errorf("order = %v, want %s", got, want)
	}
}

func TestNewFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"custom/only.rego": &fstest.MapFile{Data: []byte(`package vapi.lint

import rego.v1

all_violations := [{"rule": "always", "severity": "info", "file": e.file, "line": e.line, "message": "seen"} |
	some e in input.entities
]

summary := {"total_violations": count(all_violations), "errors": 0, "warnings": 0, "info": count(all_violations)}
`)},
	}

	engine, err := NewFromFS(fsys, "custom")
	if err != nil {
		t.Fatalf("NewFromFS() error: %v", err)
	}
	result, err := engine.Evaluate(context.Background(), NewInput(nil, facts(t, "entity top is end;")))
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	if len(result.Violations) != 1 || result.Violations[0].Rule != "always" {
		t.Errorf("Violations = %+v", result.Violations)
	}
	if result.Summary.Info != 1 {
		t.Errorf("Summary = %+v", result.Summary)
	}

	if _, err := NewFromFS(fstest.MapFS{}, "missing"); err == nil {
		t.Error("NewFromFS() expected error for empty directory")
	}
}

func TestNewInput(t *testing.T) {
	overrides := map[string]string{"null_range": "off"}
	input := NewInput(overrides, facts(t, "entity top is port( a, b : out bit_vector(3 downto 0) ); end;"))
	overrides["null_range"] = "error"

	if input.Severities["null_range"] != "off" {
		t.Errorf("Severities not copied: %v", input.Severities)
	}
	if len(input.Entities) != 1 {
		t.Fatalf("got %d entities, want 1", len(input.Entities))
	}
	ports := input.Entities[0].Ports
	if len(ports) != 2 || ports[0].Name != "a" || ports[1].Name != "b" {
		t.Fatalf("Ports = %+v", ports)
	}
	if ports[1].Range == nil || ports[1].Range.Left != 3 || ports[1].Range.Direction != "downto" {
		t.Errorf("Range = %+v", ports[1].Range)
	}

	empty := NewInput(nil)
	if empty.Entities == nil || empty.Severities == nil {
		t.Error("NewInput(nil) should produce non-nil collections")
	}
}
