package pipeline

import (
	"github.com/pkg/errors"
)

// Stage is one node of the computation graph: a schema, a name, and the values
// currently bound to its input slots. A bound value is either a concrete value
// accepted by the slot's message type, or a descriptor of another stage's
// output of the same type, which declares a graph edge.
//
// A Stage is not safe for concurrent mutation.
type Stage struct {
	schema      *Schema
	values      map[string]any
	inputDescs  map[string]*SlotDescriptor
	outputDescs map[string]*SlotDescriptor
}

// NewStage creates a bare stage of the given class schema.
func NewStage(schema *Schema) *Stage {
	s := &Stage{
		schema:      schema,
		values:      make(map[string]any),
		inputDescs:  make(map[string]*SlotDescriptor, len(schema.inputs)),
		outputDescs: make(map[string]*SlotDescriptor, len(schema.outputs)),
	}

	// every declared slot gets its descriptor up front; the maps are never
	// written again, so concurrent runs can resolve ports without locking
	for _, slot := range schema.inputs {
		s.inputDescs[slot.Name] = &SlotDescriptor{stage: s, name: slot.Name, isInput: true}
	}
	for _, slot := range schema.outputs {
		s.outputDescs[slot.Name] = &SlotDescriptor{stage: s, name: slot.Name, isInput: false}
	}

	return s
}

// Schema returns the stage's class schema.
func (s *Stage) Schema() *Schema { return s.schema }

// Class returns the stage class name.
func (s *Stage) Class() string { return s.schema.class }

// InputSlot returns the descriptor of the named input slot. Repeated lookups
// return the same descriptor instance.
func (s *Stage) InputSlot(name string) (*SlotDescriptor, error) {
	return s.descriptor(name, true)
}

// OutputSlot returns the descriptor of the named output slot. Repeated lookups
// return the same descriptor instance.
func (s *Stage) OutputSlot(name string) (*SlotDescriptor, error) {
	return s.descriptor(name, false)
}

// MustInput is InputSlot for slots known to exist, typically the typed
// accessors of concrete stage types.
func (s *Stage) MustInput(name string) *SlotDescriptor {
	d, err := s.InputSlot(name)
	if err != nil {
		panic(err)
	}

	return d
}

// MustOutput is OutputSlot for slots known to exist.
func (s *Stage) MustOutput(name string) *SlotDescriptor {
	d, err := s.OutputSlot(name)
	if err != nil {
		panic(err)
	}

	return d
}

func (s *Stage) descriptor(name string, isInput bool) (*SlotDescriptor, error) {
	descs := s.outputDescs
	if isInput {
		descs = s.inputDescs
	}
	if d, ok := descs[name]; ok {
		return d, nil
	}

	// not minted, so not declared: surface the schema lookup error
	_, err := s.schema.Slot(name, isInput)
	if err != nil {
		return nil, err
	}

	return nil, errors.Wrapf(ErrSlotNotFound, "%s slot %q in class %s", direction(isInput), name, s.schema.class)
}

// Slot returns the declared slot with the given name and direction.
func (s *Stage) Slot(name string, isInput bool) (Slot, error) {
	return s.schema.Slot(name, isInput)
}

// SetInput binds a value to one of this stage's input slots. The descriptor
// must belong to this stage and point at an input; the value must satisfy the
// slot's message type, where a descriptor of a compatible output elsewhere in
// the graph is also accepted.
func (s *Stage) SetInput(d *SlotDescriptor, v any) error {
	if err := s.checkOwnInput(d); err != nil {
		return err
	}
	if !d.MessageType().IsValid(v) {
		return errors.Wrapf(ErrInvalidValue, "slot %s rejects value of type %T", d.FullName(), v)
	}

	s.values[d.name] = v

	return nil
}

// SetInputs binds values by slot name, resolving each name on this stage.
func (s *Stage) SetInputs(values map[string]any) error {
	for name, v := range values {
		d, err := s.InputSlot(name)
		if err != nil {
			return err
		}
		if err := s.SetInput(d, v); err != nil {
			return err
		}
	}

	return nil
}

// Input returns the value currently bound to the given input slot, or nil when
// the slot is unbound.
func (s *Stage) Input(d *SlotDescriptor) (any, error) {
	if err := s.checkOwnInput(d); err != nil {
		return nil, err
	}

	return s.values[d.name], nil
}

// InputOr returns the bound value, or def when the slot is unbound.
func (s *Stage) InputOr(d *SlotDescriptor, def any) (any, error) {
	v, err := s.Input(d)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return def, nil
	}

	return v, nil
}

func (s *Stage) checkOwnInput(d *SlotDescriptor) error {
	if d == nil || d.stage != s {
		return errors.Wrapf(ErrForeignSlot, "%v on stage %q", d, s.Name())
	}
	if !d.isInput {
		return errors.Wrapf(ErrNotInput, "%v", d)
	}

	return nil
}

// SetName sets the stage name; sugar over the reserved name slot.
func (s *Stage) SetName(name string) error {
	return s.SetInput(s.MustInput(nameSlot), name)
}

// Name returns the stage name, empty until the stage is named or added to a
// pipeline.
func (s *Stage) Name() string {
	if v, ok := s.values[nameSlot].(string); ok {
		return v
	}

	return ""
}

// ToWire serializes the stage. Only input slots holding a non-nil value are
// included; the reserved name slot is surfaced as the top-level name field
// instead.
func (s *Stage) ToWire() (*StageWire, error) {
	inputs := make(map[string]*Message)
	for _, slot := range s.schema.inputs {
		if slot.Name == nameSlot {
			continue
		}
		v := s.values[slot.Name]
		if v == nil {
			continue
		}
		msg, err := slot.Type.Encode(v)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to encode slot %s:%s", s.Name(), slot.WireName)
		}
		inputs[slot.WireName] = msg
	}

	return &StageWire{
		Name:       s.Name(),
		StageClass: s.schema.class,
		Inputs:     inputs,
		Outputs:    map[string]*Message{},
	}, nil
}
