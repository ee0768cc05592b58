package blocks

import (
	"errors"
	"testing"

	"github.com/vovakirdan/blockbot/internal/games/blocks/core"
)

func TestRulesCompile(t *testing.T) {
	lvl := testLevel(t, "S.o.F")
	lvl.Actions = []core.Kind{core.KindForward, core.KindJump}

	tests := []struct {
		name    string
		rules   Rules
		text    string
		wantErr error
	}{
		{"plain", Rules{MaxLoopDepth: 1}, "forward jump forward", nil},
		{"loop allowed by depth", Rules{MaxLoopDepth: 1}, "loop 2 [forward]", nil},
		{"too deep", Rules{MaxLoopDepth: 1}, "loop 2 [loop 2 [forward]]", core.ErrLoopTooDeep},
		{"unlimited depth", Rules{}, "loop 2 [loop 2 [forward]]", nil},
		{"zero iterations", Rules{}, "loop 0 [forward]", core.ErrInvalidLoop},
		{"not offered", Rules{EnforceAllowed: true}, "forward use", core.ErrActionNotAllowed},
		{"loop not offered", Rules{EnforceAllowed: true}, "loop 2 [forward]", core.ErrActionNotAllowed},
		{"not enforced", Rules{}, "forward use", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.rules.Compile(tc.text, lvl)
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestRulesCompileSyntaxError(t *testing.T) {
	lvl := testLevel(t, "S.F")
	if _, err := (Rules{}).Compile("loop 2 [forward", lvl); err == nil {
		t.Error("expected a parse error for an unclosed loop")
	}
}
