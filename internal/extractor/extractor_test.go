package extractor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/robert-at-pretension-io/vapi/internal/parser"
)

func TestExtractorEntitiesAndPorts(t *testing.T) {
	vhdl := `-- simple counter
entity counter is
  port(
    clk, rst : in std_logic;
    en       : in bit := 1;
    count    : out std_logic_vector(7 downto 0);
    shared_q : inout word bus
  );
end entity counter;

entity empty_top is
end;
`

	facts := parseVHDL(t, vhdl)

	if len(facts.Entities) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(facts.Entities))
	}
	counter, ok := findEntity(facts.Entities, "counter")
	if !ok {
		t.Fatalf("expected entity counter")
	}
	if counter.Line != 2 || counter.Column != 1 {
		t.Fatalf("expected counter at 2:1, got %d:%d", counter.Line, counter.Column)
	}
	if counter.EndName != "counter" {
		t.Fatalf("expected end name counter, got %q", counter.EndName)
	}
	if len(counter.Ports) != 5 {
		t.Fatalf("expected 5 ports on counter, got %d", len(counter.Ports))
	}
	if len(facts.Ports) != 5 {
		t.Fatalf("expected 5 flattened ports, got %d", len(facts.Ports))
	}

	rst := mustFindPort(t, facts.Ports, "rst")
	if rst.Direction != "in" || rst.Type != "std_logic" || rst.Width != 1 {
		t.Fatalf("unexpected rst port: %+v", rst)
	}
	if rst.Line != 4 {
		t.Fatalf("expected rst on line 4, got %d", rst.Line)
	}
	if rst.InEntity != "counter" {
		t.Fatalf("expected rst in counter, got %q", rst.InEntity)
	}

	count := mustFindPort(t, facts.Ports, "count")
	if count.Range == nil {
		t.Fatalf("expected range on count")
	}
	if count.Range.Left != 7 || count.Range.Direction != "downto" || count.Range.Right != 0 {
		t.Fatalf("unexpected count range: %+v", *count.Range)
	}
	if count.Width != 8 {
		t.Fatalf("expected count width 8, got %d", count.Width)
	}

	shared := mustFindPort(t, facts.Ports, "shared_q")
	if !shared.Bus || shared.Direction != "inout" || shared.Width != 0 {
		t.Fatalf("unexpected shared_q port: %+v", shared)
	}

	empty, ok := findEntity(facts.Entities, "empty_top")
	if !ok {
		t.Fatalf("expected entity empty_top")
	}
	if empty.Ports == nil || len(empty.Ports) != 0 {
		t.Fatalf("expected empty non-nil port list, got %#v", empty.Ports)
	}
}

func TestExtractorPortDefaults(t *testing.T) {
	vhdl := `entity top is
  port(
    a : in integer := -3;
    b : in integer
  );
end entity;
`
	facts := parseVHDL(t, vhdl)
	portA := mustFindPort(t, facts.Ports, "a")
	if portA.Default == nil || *portA.Default != -3 {
		t.Fatalf("expected port a default -3, got %v", portA.Default)
	}
	portB := mustFindPort(t, facts.Ports, "b")
	if portB.Default != nil {
		t.Fatalf("expected port b without default, got %d", *portB.Default)
	}
}

func TestExtractorFragments(t *testing.T) {
	vhdl := "entity a is end;\n-- between\nentity b is port( x : out bit ); end entity b;\n"
	facts := parseVHDL(t, vhdl)

	want := []string{"entity a is end;", "entity b is port( x : out bit ); end entity b;"}
	if len(facts.Fragments) != len(want) {
		t.Fatalf("expected %d fragments, got %v", len(want), facts.Fragments)
	}
	for i, f := range want {
		if facts.Fragments[i] != f {
			t.Fatalf("fragment %d = %q, want %q", i, facts.Fragments[i], f)
		}
		if !strings.Contains(vhdl, facts.Fragments[i]) {
			t.Fatalf("fragment %q not found in source", facts.Fragments[i])
		}
	}
}

func TestExtractorSyntaxError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.vhd")
	if err := os.WriteFile(path, []byte("entity bad is port( a : in b ) end;"), 0o600); err != nil {
		t.Fatalf("write vhdl: %v", err)
	}

	facts, err := New(parser.Options{}).Extract(path)
	if !errors.Is(err, parser.ErrSyntax) {
		t.Fatalf("expected syntax error, got %v", err)
	}
	diag, ok := parser.DiagnosticOf(err)
	if !ok {
		t.Fatalf("expected diagnostic for %v", err)
	}
	if diag.File != path {
		t.Fatalf("expected diagnostic file %s, got %s", path, diag.File)
	}
	if facts.File != path || len(facts.Entities) != 0 {
		t.Fatalf("expected empty facts for %s, got %+v", path, facts)
	}
}

func TestExtractorMissingFile(t *testing.T) {
	_, err := New(parser.Options{}).Extract(filepath.Join(t.TempDir(), "missing.vhd"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if errors.Is(err, parser.ErrSyntax) {
		t.Fatalf("I/O failure must not look like a syntax error: %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist error, got %v", err)
	}
}

func TestExtractSourceMatchesExtract(t *testing.T) {
	vhdl := "entity e is port( p : in bit ); end;"
	fromFile := parseVHDL(t, vhdl)
	fromMemory, err := New(parser.Options{}).ExtractSource(fromFile.File, []byte(vhdl))
	if err != nil {
		t.Fatalf("extract source: %v", err)
	}
	if len(fromMemory.Ports) != 1 || fromMemory.Ports[0] != fromFile.Ports[0] {
		t.Fatalf("expected identical ports, got %+v and %+v", fromMemory.Ports, fromFile.Ports)
	}
}

func parseVHDL(t *testing.T, src string) FileFacts {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.vhd")
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatalf("write vhdl: %v", err)
	}

	ext := New(parser.Options{})
	facts, err := ext.Extract(path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	return facts
}

func findEntity(entities []Entity, name string) (Entity, bool) {
	for _, e := range entities {
		if e.Name == name {
			return e, true
		}
	}
	return Entity{}, false
}

func mustFindPort(t *testing.T, ports []Port, name string) Port {
	t.Helper()
	for _, p := range ports {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("port %s not found", name)
	return Port{}
}
