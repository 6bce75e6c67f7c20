package parser

import (
	"fmt"
	"strings"
)

// Mode is the data-flow direction of a port.
type Mode string

const (
	ModeNone    Mode = ""
	ModeIn      Mode = "in"
	ModeOut     Mode = "out"
	ModeInout   Mode = "inout"
	ModeBuffer  Mode = "buffer"
	ModeLinkage Mode = "linkage"
)

// Direction is the ascending/descending qualifier of a range constraint.
type Direction string

const (
	DirectionTo     Direction = "to"
	DirectionDownto Direction = "downto"
)

// Expression is the simplified VHDL expression: an integer literal.
type Expression struct {
	Value int64    `json:"value"`
	Text  string   `json:"text"`
	Pos   Position `json:"pos"`
}

// Constraint is a range constraint such as (7 downto 0).
type Constraint struct {
	Left      Expression `json:"left"`
	Direction Direction  `json:"direction"`
	Right     Expression `json:"right"`
}

// IsNull reports whether the range contains no values.
func (c Constraint) IsNull() bool {
	if c.Direction == DirectionDownto {
		return c.Left.Value < c.Right.Value
	}
	return c.Left.Value > c.Right.Value
}

func (c Constraint) String() string {
	return fmt.Sprintf("(%s %s %s)", c.Left.Text, c.Direction, c.Right.Text)
}

// SubtypeIndication is a type mark with an optional range constraint.
type SubtypeIndication struct {
	TypeMark   string      `json:"type_mark"`
	Constraint *Constraint `json:"constraint,omitempty"`
}

func (s SubtypeIndication) String() string {
	if s.Constraint == nil {
		return s.TypeMark
	}
	return s.TypeMark + s.Constraint.String()
}

// Signal is one interface signal declaration of a port clause.
// Names holds every identifier of the declaration's identifier list.
type Signal struct {
	Names   []string          `json:"names"`
	Mode    Mode              `json:"mode,omitempty"`
	Type    SubtypeIndication `json:"type"`
	Bus     bool              `json:"bus,omitempty"`
	Default *Expression       `json:"default,omitempty"`
	Pos     Position          `json:"pos"`
}

// Entity is a parsed entity declaration header.
type Entity struct {
	Name string `json:"name"`
	// EndName is the optional simple name after "end [entity]". It is not
	// required to match Name.
	EndName   string   `json:"end_name,omitempty"`
	Statement string   `json:"statement,omitempty"`
	Signals   []Signal `json:"signals"`
	// Fragment is the raw source text from the entity keyword through ";".
	Fragment string   `json:"fragment"`
	Pos      Position `json:"pos"`
	End      Position `json:"end"`
}

// Result is the outcome of a successful parse.
type Result struct {
	File     string   `json:"file"`
	Entities []Entity `json:"entities"`
}

// Fragments returns the matched text of every entity in input order.
func (r *Result) Fragments() []string {
	fragments := make([]string, 0, len(r.Entities))
	for _, e := range r.Entities {
		fragments = append(fragments, e.Fragment)
	}
	return fragments
}

// String joins the fragments with ", ".
func (r *Result) String() string {
	return strings.Join(r.Fragments(), ", ")
}
