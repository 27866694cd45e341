package pipeline

// Placeholder is a stage with a single input and a single output of the same
// type and no transformation. It stands for a pipeline input whose value is
// supplied only at run time through the feeds map; downstream stages wire to
// its output side.
type Placeholder struct {
	*Stage
}

const (
	placeholderIn  = "inputVal"
	placeholderOut = "outputVal"
)

func newPlaceholder(class string, t MessageType) *Placeholder {
	schema := NewSchema(class).
		Input(placeholderIn, t, "").
		Output(placeholderOut, t, "").
		Passthrough().
		MustBuild()

	return &Placeholder{Stage: NewStage(schema)}
}

// NewValuePlaceholder creates a placeholder for a plain value. The subtype is
// the usual Value encoding hint ("array", "double", ...) and may be empty.
func NewValuePlaceholder(subtype string) *Placeholder {
	return newPlaceholder("ValuePlaceholder", ValueType(subtype))
}

// NewDataframePlaceholder creates a placeholder for a dataframe.
func NewDataframePlaceholder() *Placeholder {
	return newPlaceholder("DataframePlaceholder", DataframeType)
}

// NewColumnPlaceholder creates a placeholder for a column expression.
func NewColumnPlaceholder() *Placeholder {
	return newPlaceholder("ColumnPlaceholder", ColumnType)
}

// Value returns the output side of the placeholder, the port downstream
// stages wire their inputs to.
func (p *Placeholder) Value() *SlotDescriptor {
	return p.MustOutput(placeholderOut)
}

// FeedSlot returns the input side of the placeholder, the port a run-time
// feed actually fills. Run accepts either side as a feed key.
func (p *Placeholder) FeedSlot() *SlotDescriptor {
	return p.MustInput(placeholderIn)
}
