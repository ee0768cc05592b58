package formats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/blockbot/internal/games/blocks/core"
)

// ProgramFile is a parsed program file.
type ProgramFile struct {
	Level   int // Level the program was written for; 0 if unspecified
	Program core.Program
}

// YAMLProgram represents the YAML structure for a program file. The file
// may also be a bare list of steps.
//
//	level: 3
//	program:
//	  - forward
//	  - loop: 3
//	    do: [jump, turnLeft]
//	  - use
type YAMLProgram struct {
	Level   int        `yaml:"level,omitempty"`
	Program []yamlStep `yaml:"program"`
}

// yamlStep is a single step: an action name or a {loop, do} mapping.
type yamlStep struct {
	step core.Step
}

func (s *yamlStep) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		k, err := core.ParseKind(n.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		if k == core.KindLoop {
			return fmt.Errorf("line %d: loop needs a count and a body", n.Line)
		}
		s.step = core.Step{Kind: k}
		return nil

	case yaml.MappingNode:
		var m struct {
			Loop int        `yaml:"loop"`
			Do   []yamlStep `yaml:"do"`
		}
		if err := n.Decode(&m); err != nil {
			return err
		}
		step, err := core.NewLoop(m.Loop, steps(m.Do)...)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		s.step = step
		return nil

	default:
		return fmt.Errorf("line %d: expected an action name or a loop", n.Line)
	}
}

func (s yamlStep) MarshalYAML() (any, error) {
	if s.step.Kind != core.KindLoop {
		return s.step.Kind.String(), nil
	}
	return struct {
		Loop int        `yaml:"loop"`
		Do   []yamlStep `yaml:"do,flow"`
	}{s.step.Iterations, wrap(s.step.Body)}, nil
}

func steps(in []yamlStep) core.Program {
	out := make(core.Program, len(in))
	for i, s := range in {
		out[i] = s.step
	}
	return out
}

func wrap(in []core.Step) []yamlStep {
	out := make([]yamlStep, len(in))
	for i, s := range in {
		out[i] = yamlStep{step: s}
	}
	return out
}

// ParseYAMLProgram parses a YAML program file.
func ParseYAMLProgram(data []byte) (ProgramFile, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return ProgramFile{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if len(doc.Content) == 0 {
		return ProgramFile{Program: core.Program{}}, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		var list []yamlStep
		if err := root.Decode(&list); err != nil {
			return ProgramFile{}, err
		}
		return ProgramFile{Program: steps(list)}, nil
	}

	var yp YAMLProgram
	if err := root.Decode(&yp); err != nil {
		return ProgramFile{}, err
	}
	return ProgramFile{Level: yp.Level, Program: steps(yp.Program)}, nil
}

// MarshalYAMLProgram encodes a program in the YAML program format.
func MarshalYAMLProgram(level int, p core.Program) ([]byte, error) {
	return yaml.Marshal(YAMLProgram{Level: level, Program: wrap(p)})
}

// ParseProgramFile parses a program by file extension: YAML for .yaml and
// .yml, the text syntax for everything else.
func ParseProgramFile(data []byte, ext string) (ProgramFile, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return ParseYAMLProgram(data)
	default:
		prog, err := core.ParseProgram(string(data))
		if err != nil {
			return ProgramFile{}, err
		}
		return ProgramFile{Program: prog}, nil
	}
}
