package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Kind identifies an action block.
type Kind uint8

const (
	KindForward Kind = iota + 1
	KindTurnLeft
	KindTurnRight
	KindJump
	KindUse
	KindLoop
)

// String returns the canonical action name.
func (k Kind) String() string {
	switch k {
	case KindForward:
		return "forward"
	case KindTurnLeft:
		return "turnLeft"
	case KindTurnRight:
		return "turnRight"
	case KindJump:
		return "jump"
	case KindUse:
		return "use"
	case KindLoop:
		return "loop"
	default:
		return "unknown"
	}
}

// IsPrimitive reports whether k is a single atomic action.
func (k Kind) IsPrimitive() bool {
	return k >= KindForward && k <= KindUse
}

// ParseKind parses an action name. Matching ignores case, dashes and underscores.
func ParseKind(s string) (Kind, error) {
	norm := strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return -1
		}
		return unicode.ToLower(r)
	}, strings.TrimSpace(s))

	switch norm {
	case "forward", "fwd", "move":
		return KindForward, nil
	case "turnleft", "left":
		return KindTurnLeft, nil
	case "turnright", "right":
		return KindTurnRight, nil
	case "jump":
		return KindJump, nil
	case "use":
		return KindUse, nil
	case "loop", "repeat":
		return KindLoop, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// Step is one entry of a program: a primitive action or a loop.
// For loops, Iterations and Body are set; Body may itself contain loops.
type Step struct {
	Kind       Kind
	Iterations int
	Body       []Step
}

// Primitive steps.
var (
	Forward   = Step{Kind: KindForward}
	TurnLeft  = Step{Kind: KindTurnLeft}
	TurnRight = Step{Kind: KindTurnRight}
	Jump      = Step{Kind: KindJump}
	Use       = Step{Kind: KindUse}
)

// Loop builds a loop step without validation. Use NewLoop when the
// iteration count comes from user input.
func Loop(iterations int, body ...Step) Step {
	return Step{Kind: KindLoop, Iterations: iterations, Body: body}
}

// NewLoop builds a loop step, rejecting non-positive iteration counts.
func NewLoop(iterations int, body ...Step) (Step, error) {
	if iterations <= 0 {
		return Step{}, invalid("INVALID_LOOP", ErrInvalidLoop, "loop has %d iterations", iterations)
	}
	return Loop(iterations, body...), nil
}

// String returns the step in program text syntax.
func (s Step) String() string {
	if s.Kind != KindLoop {
		return s.Kind.String()
	}
	return fmt.Sprintf("loop %d [%s]", s.Iterations, Program(s.Body).String())
}

// Program is the ordered sequence of steps submitted for one run.
type Program []Step

// String returns the program in the syntax accepted by ParseProgram.
func (p Program) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}

// Blocks counts the blocks a player placed: every primitive and every loop
// counts once, loop bodies are counted by their own blocks.
func (p Program) Blocks() int {
	n := 0
	for _, s := range p {
		n++
		if s.Kind == KindLoop {
			n += Program(s.Body).Blocks()
		}
	}
	return n
}

// Depth returns the deepest loop nesting level (0 for a flat program).
func (p Program) Depth() int {
	deepest := 0
	for _, s := range p {
		if s.Kind != KindLoop {
			continue
		}
		if d := 1 + Program(s.Body).Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest
}

// Flatten expands every loop into the primitive sequence it stands for.
func (p Program) Flatten() []Kind {
	var out []Kind
	for _, s := range p {
		if s.Kind == KindLoop {
			inner := Program(s.Body).Flatten()
			for i := 0; i < s.Iterations; i++ {
				out = append(out, inner...)
			}
			continue
		}
		out = append(out, s.Kind)
	}
	return out
}

// Validate checks loop iteration counts and nesting depth.
// maxDepth <= 0 means unlimited nesting.
func (p Program) Validate(maxDepth int) error {
	if maxDepth > 0 {
		if d := p.Depth(); d > maxDepth {
			return invalid("LOOP_TOO_DEEP", ErrLoopTooDeep, "loops nested %d deep, limit is %d", d, maxDepth)
		}
	}
	return p.validateSteps()
}

func (p Program) validateSteps() error {
	for i, s := range p {
		switch {
		case s.Kind == KindLoop:
			if s.Iterations <= 0 {
				return invalid("INVALID_LOOP", ErrInvalidLoop, "step %d: loop has %d iterations", i+1, s.Iterations)
			}
			if err := Program(s.Body).validateSteps(); err != nil {
				return err
			}
		case !s.Kind.IsPrimitive():
			return invalid("UNKNOWN_ACTION", ErrUnknownAction, "step %d has unknown kind %d", i+1, s.Kind)
		}
	}
	return nil
}

// CheckAllowed verifies every block in the program is offered by the level.
func (p Program) CheckAllowed(l *Level) error {
	for _, s := range p {
		if !l.Allows(s.Kind) {
			return invalid("ACTION_NOT_ALLOWED", ErrActionNotAllowed,
				"level %d does not offer %q", l.Index, s.Kind)
		}
		if s.Kind == KindLoop {
			if err := Program(s.Body).CheckAllowed(l); err != nil {
				return err
			}
		}
	}
	return nil
}

// ParseProgram parses program text. Actions are separated by whitespace or
// commas; loops are written "loop N [ ... ]" (or "repeat N ( ... )").
//
//	forward forward loop 3 [jump turnLeft] use
func ParseProgram(text string) (Program, error) {
	p := &programParser{tokens: tokenize(text)}
	prog, err := p.parseSeq(false)
	if err != nil {
		return nil, err
	}
	return prog, nil
}

type programParser struct {
	tokens []string
	pos    int
}

func (p *programParser) parseSeq(nested bool) (Program, error) {
	prog := Program{}
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		if tok == "]" || tok == ")" {
			if !nested {
				return nil, fmt.Errorf("unexpected %q at token %d", tok, p.pos+1)
			}
			p.pos++
			return prog, nil
		}
		p.pos++

		kind, err := ParseKind(tok)
		if err != nil {
			return nil, err
		}
		if kind != KindLoop {
			prog = append(prog, Step{Kind: kind})
			continue
		}

		loop, err := p.parseLoop()
		if err != nil {
			return nil, err
		}
		prog = append(prog, loop)
	}
	if nested {
		return nil, fmt.Errorf("unterminated loop body")
	}
	return prog, nil
}

func (p *programParser) parseLoop() (Step, error) {
	if p.pos >= len(p.tokens) {
		return Step{}, fmt.Errorf("loop is missing an iteration count")
	}
	n, err := strconv.Atoi(p.tokens[p.pos])
	if err != nil {
		return Step{}, fmt.Errorf("loop iteration count %q: %w", p.tokens[p.pos], err)
	}
	p.pos++

	if p.pos >= len(p.tokens) || (p.tokens[p.pos] != "[" && p.tokens[p.pos] != "(") {
		return Step{}, fmt.Errorf("loop %d is missing its body", n)
	}
	p.pos++

	body, err := p.parseSeq(true)
	if err != nil {
		return Step{}, err
	}
	return NewLoop(n, body...)
}

// tokenize splits program text into words and bracket tokens.
func tokenize(text string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range text {
		switch {
		case r == '[' || r == ']' || r == '(' || r == ')':
			flush()
			tokens = append(tokens, string(r))
		case r == ',' || r == ';' || unicode.IsSpace(r):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}
