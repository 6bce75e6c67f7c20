package extractor

import (
	"fmt"
	"os"

	"github.com/robert-at-pretension-io/vapi/internal/parser"
)

// Extractor reads VHDL files, runs the entity grammar over them and
// flattens the result into facts. One file is parsed per call.
type Extractor struct {
	opts parser.Options
}

// FileFacts contains all extracted information from a single VHDL file
type FileFacts struct {
	File      string   `json:"file"`
	Entities  []Entity `json:"entities"`
	Ports     []Port   `json:"ports"`
	Fragments []string `json:"fragments"`
}

// Entity represents a VHDL entity declaration
type Entity struct {
	Name      string `json:"name"`
	EndName   string `json:"end_name,omitempty"`
	Statement string `json:"statement,omitempty"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	Ports     []Port `json:"ports"`
}

// Port represents one name of an entity's interface signal declaration
type Port struct {
	Name      string `json:"name"`
	Direction string `json:"direction"` // in, out, inout, buffer, linkage or empty
	Type      string `json:"type"`
	Range     *Range `json:"range,omitempty"`
	Width     int    `json:"width"`
	Bus       bool   `json:"bus"`
	Default   *int64 `json:"default,omitempty"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	InEntity  string `json:"in_entity"`
}

// Range is a port's range constraint
type Range struct {
	Left      int64  `json:"left"`
	Direction string `json:"direction"`
	Right     int64  `json:"right"`
}

// New creates a new Extractor
func New(opts parser.Options) *Extractor {
	return &Extractor{opts: opts}
}

// Extract reads a VHDL file and extracts facts. Parse failures are returned
// unchanged so callers can match parser.ErrSyntax and render diagnostics.
func (e *Extractor) Extract(filePath string) (FileFacts, error) {
	facts := newFileFacts(filePath)

	content, err := os.ReadFile(filePath)
	if err != nil {
		return facts, fmt.Errorf("reading file: %w", err)
	}

	return e.ExtractSource(filePath, content)
}

// ExtractSource extracts facts from in-memory content
func (e *Extractor) ExtractSource(name string, content []byte) (FileFacts, error) {
	res, err := parser.Parse(parser.NewSource(name, content), e.opts)
	if err != nil {
		return newFileFacts(name), err
	}
	return FromResult(res), nil
}

// FromResult flattens a parse result. Every name of a multi-name signal
// declaration becomes its own Port.
func FromResult(res *parser.Result) FileFacts {
	facts := newFileFacts(res.File)
	facts.Fragments = append(facts.Fragments, res.Fragments()...)

	for _, pe := range res.Entities {
		entity := Entity{
			Name:      pe.Name,
			EndName:   pe.EndName,
			Statement: pe.Statement,
			Line:      pe.Pos.Line,
			Column:    pe.Pos.Column,
			Ports:     []Port{},
		}
		for _, sig := range pe.Signals {
			for _, name := range sig.Names {
				port := extractPort(sig, name, pe.Name)
				entity.Ports = append(entity.Ports, port)
				facts.Ports = append(facts.Ports, port)
			}
		}
		facts.Entities = append(facts.Entities, entity)
	}

	return facts
}

func extractPort(sig parser.Signal, name, entity string) Port {
	port := Port{
		Name:      name,
		Direction: string(sig.Mode),
		Type:      sig.Type.TypeMark,
		Bus:       sig.Bus,
		Line:      sig.Pos.Line,
		Column:    sig.Pos.Column,
		InEntity:  entity,
	}
	if c := sig.Type.Constraint; c != nil {
		port.Range = &Range{
			Left:      c.Left.Value,
			Direction: string(c.Direction),
			Right:     c.Right.Value,
		}
	}
	if sig.Default != nil {
		v := sig.Default.Value
		port.Default = &v
	}
	port.Width = CalculateWidth(sig.Type)
	return port
}

// newFileFacts returns facts with non-nil slices so the JSON form always
// carries arrays.
func newFileFacts(file string) FileFacts {
	return FileFacts{
		File:      file,
		Entities:  []Entity{},
		Ports:     []Port{},
		Fragments: []string{},
	}
}
