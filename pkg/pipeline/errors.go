package pipeline

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrDuplicateSlot is returned by SchemaBuilder.Build when two slots of the
	// same direction share a name within one schema composition.
	ErrDuplicateSlot = errors.New("duplicate slot name")

	// ErrDuplicateStage is returned by Pipeline.Add when an explicitly named
	// stage collides with a stage already in the pipeline.
	ErrDuplicateStage = errors.New("duplicate stage name")

	// ErrBadPassthrough is returned by SchemaBuilder.Build when a passthrough
	// schema declares anything but one value input and one output.
	ErrBadPassthrough = errors.New("passthrough schema must have exactly one input and one output")

	ErrForeignSlot = errors.New("slot descriptor does not belong to this stage")
	ErrNotInput    = errors.New("slot is not an input")
	ErrNotOutput   = errors.New("slot is not an output")
	ErrDetached    = errors.New("stage does not belong to the pipeline")
	ErrCycle       = errors.New("pipeline graph contains a cycle")

	// ErrInvalidValue is returned when a value fails a slot's message type
	// check, before anything is sent to the engine.
	ErrInvalidValue = errors.New("invalid slot value")

	ErrSlotNotFound  = errors.New("slot not found")
	ErrStageNotFound = errors.New("stage not found")
	ErrUnknownTag    = errors.New("unknown message tag")

	// ErrProtocol is returned when the engine response violates the documented
	// contract. It indicates an engine/client version skew and is fatal to the
	// Run call that observed it.
	ErrProtocol = errors.New("invalid engine response")

	ErrEngineMustBeSet = errors.New("engine must be set")
	ErrNoOutputs       = errors.New("at least one output must be requested")
)

// RemoteError is an opaque failure surfaced by the execution engine. It is
// passed through to the caller with the engine-provided diagnostics and is
// never retried by this package.
type RemoteError struct {
	Message          string
	ServerStackTrace string
	RequestURI       string
}

func (e *RemoteError) Error() string {
	if e.RequestURI == "" {
		return fmt.Sprintf("engine error: %s", e.Message)
	}

	return fmt.Sprintf("engine error: %s (request %s)", e.Message, e.RequestURI)
}
