package parser

// =============================================================================
// ENTITY GRAMMAR
// =============================================================================
//
// Ordered-choice recursive descent over the entity-header subset of VHDL-93:
//
//   start          := entity*
//   entity         := "entity" ! identifier "is" entity_header
//                     ["begin" statement] "end" ["entity"] [simple_name] ";"
//   entity_header  := [port_clause]
//   port_clause    := "port" ! "(" interface_list ")" ";"
//   interface_list := interface_signal_declaration (";" interface_signal_declaration)*
//   interface_signal_declaration :=
//                     ["signal"] ! identifier_list ":" [mode] subtype ["bus"] [":=" expression]
//   identifier_list:= identifier ("," identifier)*
//   subtype        := type_mark [constraint]
//   constraint     := "(" ! expression direction expression ")"
//
// "!" is a commit point. Before it a rule fails softly with errNoMatch and
// the cursor is restored; after it every required element that fails
// returns a *SyntaxError and the whole parse stops.
// =============================================================================

func (p *parser) start() ([]Entity, error) {
	var entities []Entity
	for {
		e, err := p.entity()
		if err == errNoMatch {
			return entities, nil
		}
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
}

func (p *parser) entity() (Entity, error) {
	return rule(p, "entity", func() (Entity, error) {
		var e Entity
		begin := p.skipped()
		if !p.keyword("entity") {
			return e, errNoMatch
		}
		e.Pos = p.position(begin)

		name, err := p.identifier()
		if err != nil {
			return e, p.fail(expectRule("identifier"))
		}
		e.Name = name

		if !p.keyword("is") {
			return e, p.fail(expectRule("is"))
		}

		if e.Signals, err = p.entityHeader(); err != nil {
			return e, err
		}

		if p.keyword("begin") {
			if e.Statement, err = p.entityStatementPart(); err != nil {
				return e, p.fail(expectRule("statement"))
			}
		}

		if !p.keyword("end") {
			return e, p.fail(expectRule("end"))
		}
		p.keyword("entity")
		if name, err := p.entitySimpleName(); err == nil {
			e.EndName = name
		}
		if !p.literal(";") {
			return e, p.fail(expectLiteral(";"))
		}

		e.End = p.position(p.pos)
		e.Fragment = string(p.buf[begin:p.pos])
		return e, nil
	})
}

// entityHeader holds the optional port clause. Generic clauses are not
// recognized.
func (p *parser) entityHeader() ([]Signal, error) {
	return rule(p, "entity-header", func() ([]Signal, error) {
		signals, err := p.portClause()
		if err == errNoMatch {
			return []Signal{}, nil
		}
		return signals, err
	})
}

func (p *parser) portClause() ([]Signal, error) {
	return rule(p, "port-clause", func() ([]Signal, error) {
		if !p.keyword("port") {
			return nil, errNoMatch
		}
		if !p.literal("(") {
			return nil, p.fail(expectLiteral("("))
		}
		signals, err := p.portList()
		if err != nil {
			if err == errNoMatch {
				return nil, p.fail(expectRule("port-list"))
			}
			return nil, err
		}
		if !p.literal(")") {
			return nil, p.fail(expectLiteral(")"))
		}
		if !p.literal(";") {
			return nil, p.fail(expectLiteral(";"))
		}
		return signals, nil
	})
}

func (p *parser) portList() ([]Signal, error) {
	return rule(p, "port-list", p.interfaceList)
}

// interfaceList parses elements separated by ";". A separator is only
// consumed together with the element that follows it.
func (p *parser) interfaceList() ([]Signal, error) {
	return rule(p, "interface-list", func() ([]Signal, error) {
		first, err := p.interfaceElement()
		if err != nil {
			return nil, err
		}
		signals := []Signal{first}
		for {
			mark := p.pos
			if !p.literal(";") {
				return signals, nil
			}
			next, err := p.interfaceElement()
			if err == errNoMatch {
				p.pos = mark
				return signals, nil
			}
			if err != nil {
				return nil, err
			}
			signals = append(signals, next)
		}
	})
}

// interfaceElement only knows signal declarations; constant, variable and
// file interface declarations are not part of the grammar.
func (p *parser) interfaceElement() (Signal, error) {
	return rule(p, "interface-element", p.interfaceSignalDeclaration)
}

func (p *parser) interfaceSignalDeclaration() (Signal, error) {
	return rule(p, "interface-signal-declaration", func() (Signal, error) {
		var s Signal
		p.keyword("signal")
		s.Pos = p.position(p.skipped())

		names, err := p.identifierList()
		if err != nil {
			return s, p.fail(expectRule("identifier-list"))
		}
		s.Names = names

		if !p.literal(":") {
			return s, p.fail(expectLiteral(":"))
		}

		if mode, err := p.mode(); err == nil {
			s.Mode = mode
		}

		if s.Type, err = p.subtypeIndication(); err != nil {
			if err == errNoMatch {
				return s, p.fail(expectRule("subtype"))
			}
			return s, err
		}

		s.Bus = p.keyword("bus")

		if p.literal(":=") {
			def, err := p.expression()
			if err != nil {
				return s, p.fail(expectRule("expression"))
			}
			s.Default = &def
		}
		return s, nil
	})
}

func (p *parser) identifierList() ([]string, error) {
	return rule(p, "identifier-list", func() ([]string, error) {
		first, err := p.identifier()
		if err != nil {
			return nil, err
		}
		names := []string{first}
		for {
			mark := p.pos
			if !p.literal(",") {
				return names, nil
			}
			name, err := p.identifier()
			if err != nil {
				p.pos = mark
				return names, nil
			}
			names = append(names, name)
		}
	})
}

func (p *parser) subtypeIndication() (SubtypeIndication, error) {
	return rule(p, "subtype", func() (SubtypeIndication, error) {
		var st SubtypeIndication
		typeMark, err := p.typeMark()
		if err != nil {
			return st, errNoMatch
		}
		st.TypeMark = typeMark

		c, err := p.constraint()
		switch {
		case err == nil:
			st.Constraint = &c
		case err != errNoMatch:
			return st, err
		}
		return st, nil
	})
}

// typeMark stands in for type and subtype name resolution.
func (p *parser) typeMark() (string, error) {
	return rule(p, "type", p.identifier)
}

// constraint is the simplified range constraint "(" expr dir expr ")".
func (p *parser) constraint() (Constraint, error) {
	return rule(p, "constraint", func() (Constraint, error) {
		var c Constraint
		if !p.literal("(") {
			return c, errNoMatch
		}
		var err error
		if c.Left, err = p.expression(); err != nil {
			return c, p.fail(expectRule("expression"))
		}
		if c.Direction, err = p.direction(); err != nil {
			return c, p.fail(expectRule("direction"))
		}
		if c.Right, err = p.expression(); err != nil {
			return c, p.fail(expectRule("expression"))
		}
		if !p.literal(")") {
			return c, p.fail(expectLiteral(")"))
		}
		return c, nil
	})
}

// entityStatementPart accepts a single identifier in place of the
// concurrent statement grammar.
func (p *parser) entityStatementPart() (string, error) {
	return rule(p, "statement", p.identifier)
}

func (p *parser) entitySimpleName() (string, error) {
	return rule(p, "simple-name", p.identifier)
}

// expression accepts an integer literal only.
func (p *parser) expression() (Expression, error) {
	return rule(p, "expression", func() (Expression, error) {
		at := p.skipped()
		v, end, ok := scanInteger(p.buf, at)
		if !ok {
			return Expression{}, errNoMatch
		}
		p.pos = end
		return Expression{Value: v, Text: string(p.buf[at:end]), Pos: p.position(at)}, nil
	})
}

// identifier takes the longest identifier-shaped lexeme and rejects it only
// if the whole lexeme is a keyword.
func (p *parser) identifier() (string, error) {
	return rule(p, "identifier", func() (string, error) {
		at := p.skipped()
		end := scanIdentifier(p.buf, at)
		if end == at {
			return "", errNoMatch
		}
		word := string(p.buf[at:end])
		if IsKeyword(word) {
			return "", errNoMatch
		}
		p.pos = end
		return word, nil
	})
}

var modes = []Mode{ModeInout, ModeIn, ModeOut, ModeBuffer, ModeLinkage}

func (p *parser) mode() (Mode, error) {
	return rule(p, "mode", func() (Mode, error) {
		for _, m := range modes {
			if p.keyword(string(m)) {
				return m, nil
			}
		}
		return ModeNone, errNoMatch
	})
}

func (p *parser) direction() (Direction, error) {
	return rule(p, "direction", func() (Direction, error) {
		for _, d := range []Direction{DirectionTo, DirectionDownto} {
			if p.keyword(string(d)) {
				return d, nil
			}
		}
		return "", errNoMatch
	})
}
