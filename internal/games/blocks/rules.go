package blocks

import (
	"github.com/vovakirdan/blockbot/internal/games/blocks/core"
)

// Rules are the program constraints enforced before a run starts.
type Rules struct {
	MaxLoopDepth   int  // 0 = unlimited
	EnforceAllowed bool // Reject blocks the level does not offer
}

// Check validates program against the rules for level.
func (r Rules) Check(program core.Program, level *core.Level) error {
	if err := program.Validate(r.MaxLoopDepth); err != nil {
		return err
	}
	if r.EnforceAllowed {
		return program.CheckAllowed(level)
	}
	return nil
}

// Compile parses program text and checks it.
func (r Rules) Compile(text string, level *core.Level) (core.Program, error) {
	program, err := core.ParseProgram(text)
	if err != nil {
		return nil, err
	}
	if err := r.Check(program, level); err != nil {
		return nil, err
	}
	return program, nil
}
