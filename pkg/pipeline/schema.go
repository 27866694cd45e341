package pipeline

import (
	"github.com/pkg/errors"
)

// Slot is one declared port of a stage type. It belongs to the schema, not to
// any stage instance.
type Slot struct {
	Name     string
	Type     MessageType
	WireName string
	IsInput  bool
}

// InputSlot declares an input port. An empty wireName defaults to the slot
// name.
func InputSlot(name string, t MessageType, wireName string) Slot {
	if wireName == "" {
		wireName = name
	}

	return Slot{Name: name, Type: t, WireName: wireName, IsInput: true}
}

// OutputSlot declares an output port. An empty wireName defaults to the slot
// name.
func OutputSlot(name string, t MessageType, wireName string) Slot {
	if wireName == "" {
		wireName = name
	}

	return Slot{Name: name, Type: t, WireName: wireName, IsInput: false}
}

// Capability is a reusable, named group of slot declarations. Stage schemas
// are composed from an explicit ordered list of capabilities plus their own
// slots; there is no implicit inheritance.
type Capability struct {
	name  string
	slots []Slot
}

// NewCapability groups the given slots under a name.
func NewCapability(name string, slots ...Slot) Capability {
	return Capability{name: name, slots: slots}
}

// base carries the reserved name slot present on every stage.
var base = NewCapability("stage", InputSlot(nameSlot, ValueType(""), ""))

const nameSlot = "name"

// Schema is the immutable slot layout of one stage class. Build one per
// concrete stage type, once, at package init.
type Schema struct {
	class       string
	inputs      []Slot
	outputs     []Slot
	inputIdx    map[string]int
	outputIdx   map[string]int
	passthrough bool
}

// Class returns the stage class name sent to the engine.
func (s *Schema) Class() string { return s.class }

// Inputs returns the declared input slots in composition order.
func (s *Schema) Inputs() []Slot {
	out := make([]Slot, len(s.inputs))
	copy(out, s.inputs)

	return out
}

// Outputs returns the declared output slots in composition order.
func (s *Schema) Outputs() []Slot {
	out := make([]Slot, len(s.outputs))
	copy(out, s.outputs)

	return out
}

// Slot returns the declared slot with the given name and direction.
func (s *Schema) Slot(name string, isInput bool) (Slot, error) {
	if isInput {
		if i, ok := s.inputIdx[name]; ok {
			return s.inputs[i], nil
		}
	} else {
		if i, ok := s.outputIdx[name]; ok {
			return s.outputs[i], nil
		}
	}

	return Slot{}, errors.Wrapf(ErrSlotNotFound, "%s slot %q in class %s", direction(isInput), name, s.class)
}

func direction(isInput bool) string {
	if isInput {
		return "input"
	}

	return "output"
}

// SchemaBuilder assembles a Schema from capabilities and per-class slots.
type SchemaBuilder struct {
	class       string
	slots       []Slot
	passthrough bool
}

// NewSchema starts a schema for the given stage class. The base capability
// (the reserved name slot) is always composed first.
func NewSchema(class string) *SchemaBuilder {
	b := &SchemaBuilder{class: class}

	return b.Compose(base)
}

// Compose appends every slot of the given capabilities, in order.
func (b *SchemaBuilder) Compose(caps ...Capability) *SchemaBuilder {
	for _, c := range caps {
		b.slots = append(b.slots, c.slots...)
	}

	return b
}

// Input declares an input slot owned by this class.
func (b *SchemaBuilder) Input(name string, t MessageType, wireName string) *SchemaBuilder {
	b.slots = append(b.slots, InputSlot(name, t, wireName))

	return b
}

// Output declares an output slot owned by this class.
func (b *SchemaBuilder) Output(name string, t MessageType, wireName string) *SchemaBuilder {
	b.slots = append(b.slots, OutputSlot(name, t, wireName))

	return b
}

// Passthrough marks the class as a pure passthrough: exactly one input and one
// output of the same type, no transformation. Run uses it to translate feed
// keys given as the output side of a placeholder.
func (b *SchemaBuilder) Passthrough() *SchemaBuilder {
	b.passthrough = true

	return b
}

// Build resolves the composition. Two slots of the same direction sharing a
// name, including duplicates introduced transitively through capabilities, are
// a configuration error.
func (b *SchemaBuilder) Build() (*Schema, error) {
	s := &Schema{
		class:       b.class,
		inputIdx:    make(map[string]int),
		outputIdx:   make(map[string]int),
		passthrough: b.passthrough,
	}

	for _, slot := range b.slots {
		idx := s.outputIdx
		if slot.IsInput {
			idx = s.inputIdx
		}
		if _, ok := idx[slot.Name]; ok {
			return nil, errors.Wrapf(ErrDuplicateSlot, "%s slot %q in class %s", direction(slot.IsInput), slot.Name, b.class)
		}

		if slot.IsInput {
			idx[slot.Name] = len(s.inputs)
			s.inputs = append(s.inputs, slot)
		} else {
			idx[slot.Name] = len(s.outputs)
			s.outputs = append(s.outputs, slot)
		}
	}

	if b.passthrough && (len(s.inputs) != 2 || len(s.outputs) != 1) {
		// the name slot plus exactly one value input
		return nil, errors.Wrapf(ErrBadPassthrough, "class %s", b.class)
	}

	return s, nil
}

// MustBuild is Build for package-level schema definitions, where a duplicate
// slot is fatal.
func (b *SchemaBuilder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}

	return s
}

// valueInput returns the single non-name input slot of a passthrough schema.
func (s *Schema) valueInput() (Slot, bool) {
	if !s.passthrough {
		return Slot{}, false
	}
	for _, slot := range s.inputs {
		if slot.Name != nameSlot {
			return slot, true
		}
	}

	return Slot{}, false
}
