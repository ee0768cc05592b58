package core

// Color is the role of a screen cell. The platform layer decides how each
// role is drawn, so a monochrome theme can ignore some of them.
type Color uint8

const (
	ColorDefault Color = iota
	ColorText          // Program line, overlay text
	ColorMuted         // Frames, separators, key hints
	ColorHUD

	// Board squares
	ColorPath
	ColorGround
	ColorStart
	ColorFinish
	ColorKey
	ColorLock
	ColorObstacle

	// Robot
	ColorPlayer
	ColorJump

	// Run outcome
	ColorSuccess
	ColorFailure
	ColorTitle
)
