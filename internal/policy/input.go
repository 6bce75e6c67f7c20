package policy

import "github.com/robert-at-pretension-io/vapi/internal/extractor"

// Input is the data structure passed to OPA
type Input struct {
	Entities []Entity `json:"entities"`
	// Severities overrides rule severities; "off" disables a rule.
	Severities map[string]string `json:"severities"`
}

// Entity is the OPA view of an entity declaration
type Entity struct {
	Name    string `json:"name"`
	EndName string `json:"end_name"`
	File    string `json:"file"`
	Line    int    `json:"line"`
	Ports   []Port `json:"ports"`
}

// Port is the OPA view of an entity port
type Port struct {
	Name      string `json:"name"`
	Direction string `json:"direction"`
	Type      string `json:"type"`
	Range     *Range `json:"range,omitempty"`
	Line      int    `json:"line"`
}

type Range struct {
	Left      int64  `json:"left"`
	Direction string `json:"direction"`
	Right     int64  `json:"right"`
}

// NewInput builds policy input from extracted facts
func NewInput(severities map[string]string, files ...extractor.FileFacts) Input {
	input := Input{
		Entities:   []Entity{},
		Severities: map[string]string{},
	}
	for rule, sev := range severities {
		input.Severities[rule] = sev
	}

	for _, f := range files {
		for _, e := range f.Entities {
			entity := Entity{
				Name:    e.Name,
				EndName: e.EndName,
				File:    f.File,
				Line:    e.Line,
				Ports:   []Port{},
			}
			for _, p := range e.Ports {
				port := Port{
					Name:      p.Name,
					Direction: p.Direction,
					Type:      p.Type,
					Line:      p.Line,
				}
				if p.Range != nil {
					port.Range = &Range{Left: p.Range.Left, Direction: p.Range.Direction, Right: p.Range.Right}
				}
				entity.Ports = append(entity.Ports, port)
			}
			input.Entities = append(input.Entities, entity)
		}
	}
	return input
}
