package pipeline

import "fmt"

// SlotDescriptor identifies one port of one stage instance. The stage mints
// one descriptor per declared slot at construction, so two lookups of the same
// port return the same descriptor and it can serve as a map key.
//
// A descriptor holds a plain back-reference to its stage; it does not own it.
type SlotDescriptor struct {
	stage   *Stage
	name    string
	isInput bool
}

// Stage returns the stage this descriptor belongs to.
func (d *SlotDescriptor) Stage() *Stage { return d.stage }

// SlotName returns the declared slot name.
func (d *SlotDescriptor) SlotName() string { return d.name }

// IsInput reports the slot direction.
func (d *SlotDescriptor) IsInput() bool { return d.isInput }

// ParentName returns the current name of the parent stage. It is looked up
// live, renaming the stage is reflected in every descriptor pointing at it.
func (d *SlotDescriptor) ParentName() string { return d.stage.Name() }

// WireName returns the name the engine knows this slot by.
func (d *SlotDescriptor) WireName() string { return d.slot().WireName }

// FullName returns "<parent name>:<wire name>", the key format used for feeds.
func (d *SlotDescriptor) FullName() string {
	return d.ParentName() + ":" + d.WireName()
}

// MessageType returns the declared type of this slot.
func (d *SlotDescriptor) MessageType() MessageType { return d.slot().Type }

// Equal reports whether two descriptors identify the same port: same stage
// instance, same slot name, same direction.
func (d *SlotDescriptor) Equal(o *SlotDescriptor) bool {
	if d == nil || o == nil {
		return d == o
	}

	return d.stage == o.stage && d.name == o.name && d.isInput == o.isInput
}

// ToWire returns the engine-side reference to this port, always based on the
// parent's current name.
func (d *SlotDescriptor) ToWire() OutputRef {
	return OutputRef{StageName: d.ParentName(), OutputName: d.WireName()}
}

func (d *SlotDescriptor) String() string {
	if d == nil {
		return "<nil slot>"
	}

	return fmt.Sprintf("%s(%s %s:%s)", d.stage.Class(), direction(d.isInput), d.ParentName(), d.name)
}

// slot resolves the declared slot in the parent schema. Descriptors are only
// minted for declared slots, so the lookup cannot fail.
func (d *SlotDescriptor) slot() Slot {
	s, err := d.stage.schema.Slot(d.name, d.isInput)
	if err != nil {
		panic(err)
	}

	return s
}
