package sim

import "errors"

// Setup errors. Runtime requests made in the wrong phase are ignored rather
// than reported.
var (
	// ErrDuplicateBody is returned when a body name is registered twice.
	ErrDuplicateBody = errors.New("sim: duplicate body")

	// ErrUnknownBody is returned when a role references a body that was never created.
	ErrUnknownBody = errors.New("sim: unknown body")

	// ErrNoHero indicates Start was called before SetHero.
	ErrNoHero = errors.New("sim: hero not set")

	// ErrNoTarget indicates Start was called before SetTarget.
	ErrNoTarget = errors.New("sim: target not set")

	// ErrInvalidSetup covers role assignments that contradict each other.
	ErrInvalidSetup = errors.New("sim: invalid setup")

	// ErrStarted is returned by setup calls made after Start.
	ErrStarted = errors.New("sim: world already started")

	// ErrInvalidParams indicates a parameter outside its valid range.
	ErrInvalidParams = errors.New("sim: invalid parameters")

	// ErrNotAiming is returned by the runner when the world cannot launch.
	ErrNotAiming = errors.New("sim: world is not ready to launch")

	// ErrSnapshotLevel indicates a snapshot taken on a different level.
	ErrSnapshotLevel = errors.New("sim: snapshot belongs to another level")
)
