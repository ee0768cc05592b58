package core

import (
	"slices"
)

// Apply executes one primitive action and returns the resulting state.
// A terminal state is returned unchanged. Loop steps are not primitives;
// Apply ignores them (see Execution for loop expansion).
func Apply(s *State, level *Level, k Kind) *State {
	if s.Done() || !k.IsPrimitive() {
		return s
	}

	var n *State
	switch k {
	case KindForward:
		n = moveForward(s.next(), level, false)
	case KindTurnLeft:
		n = s.next()
		n.Facing = s.Facing.Left()
		n.logf("Turned left, now facing %s", n.Facing)
	case KindTurnRight:
		n = s.next()
		n.Facing = s.Facing.Right()
		n.logf("Turned right, now facing %s", n.Facing)
	case KindJump:
		n = s.next()
		n.logf(LogJumping)
		n = moveForward(n, level, true)
		n.Jumping = true
	case KindUse:
		n = use(s.next())
	}
	n.Actions++
	return n
}

// moveForward moves n one cell in its facing direction. An invalid target
// fails the run; the player never moves off a path cell.
func moveForward(n *State, level *Level, jumping bool) *State {
	target := n.Position.Step(n.Facing)
	if !IsValidPosition(target, level.Terrain, n.Objects, jumping) {
		n.Failed = true
		n.logf(LogInvalidMove)
		return n
	}

	n.Position = target
	n.logf("Moved forward to %s", target)

	switch n.Objects.Get(target) {
	case ObjectKey:
		n.Objects = n.Objects.Clone()
		n.Objects.Set(target, ObjectNone)
		n.Inventory = append(slices.Clip(n.Inventory), ItemKey)
		n.logf(LogPickedUpKey)
	case ObjectFinish:
		n.Complete = true
		n.logf(LogReachedGoal)
	}
	return n
}

// use interacts with the cell in front of the player. It never moves the
// player and never fails the run.
func use(n *State) *State {
	target := n.Position.Step(n.Facing)
	if !n.Objects.InBounds(target) {
		n.logf(LogNothingToUse)
		return n
	}

	if n.Objects.Get(target) != ObjectLock {
		n.logf(LogNothingHere)
		return n
	}

	i := slices.Index(n.Inventory, ItemKey)
	if i < 0 {
		n.logf(LogNeedKey)
		return n
	}

	n.Inventory = slices.Delete(slices.Clone(n.Inventory), i, i+1)
	n.Objects = n.Objects.Clone()
	n.Objects.Set(target, ObjectNone)
	n.logf(LogUnlocked)
	return n
}
