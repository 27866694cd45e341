package pipeline

import (
	"encoding/json"
	"reflect"

	"github.com/pkg/errors"
)

// Kind enumerates the message kinds understood by the engine.
type Kind int

const (
	KindValue Kind = iota
	KindStageOutput
	KindDataframe
	KindSample
	KindModel
	KindColumn
)

const (
	tagValue       = "ValueDef"
	tagStageOutput = "StageOutputDef"
	tagDataframe   = "DataframeMessageDef"
	tagSample      = "SampleMessageDef"
	tagModel       = "ModelMessageDef"
	tagColumn      = "ColumnDef"
)

// Tag returns the wire tag of the kind.
func (k Kind) Tag() string {
	switch k {
	case KindValue:
		return tagValue
	case KindStageOutput:
		return tagStageOutput
	case KindDataframe:
		return tagDataframe
	case KindSample:
		return tagSample
	case KindModel:
		return tagModel
	case KindColumn:
		return tagColumn
	}

	return "UnknownDef"
}

func (k Kind) String() string { return k.Tag() }

// KindFromTag maps a wire tag back to its kind. Unknown tags are reported with
// a typed error so callers can catch and ignore them.
func KindFromTag(tag string) (Kind, error) {
	switch tag {
	case tagValue:
		return KindValue, nil
	case tagStageOutput:
		return KindStageOutput, nil
	case tagDataframe:
		return KindDataframe, nil
	case tagSample:
		return KindSample, nil
	case tagModel:
		return KindModel, nil
	case tagColumn:
		return KindColumn, nil
	}

	return 0, errors.Wrapf(ErrUnknownTag, "%q", tag)
}

// MessageType is the value domain of a slot: a kind plus an optional element
// subtype used purely as an encoding hint for Value slots (e.g. "array",
// "double").
type MessageType struct {
	Kind    Kind
	Subtype string
}

var (
	StageOutputType = MessageType{Kind: KindStageOutput}
	DataframeType   = MessageType{Kind: KindDataframe}
	SampleType      = MessageType{Kind: KindSample}
	ModelType       = MessageType{Kind: KindModel}
	ColumnType      = MessageType{Kind: KindColumn}
)

// ValueType returns the Value message type with the given encoding hint.
// An empty subtype is valid and common.
func ValueType(subtype string) MessageType {
	return MessageType{Kind: KindValue, Subtype: subtype}
}

// IsValid reports whether the given value can be bound to a slot of this type.
//
// A *SlotDescriptor is accepted in place of a concrete value when it points at
// an output slot whose own declared kind equals this kind; this is how one
// stage's output is wired into another's input. A StageOutput slot accepts any
// output descriptor.
func (t MessageType) IsValid(v any) bool {
	if d, ok := v.(*SlotDescriptor); ok {
		if d == nil || d.IsInput() {
			return false
		}
		if t.Kind == KindStageOutput {
			return true
		}

		return d.MessageType().Kind == t.Kind
	}

	switch t.Kind {
	case KindValue:
		return isPlainValue(v)
	case KindDataframe:
		df, ok := v.(*Dataframe)
		return ok && df != nil
	case KindSample:
		sp, ok := v.(*Sample)
		return ok && sp != nil
	case KindModel:
		m, ok := v.(*Model)
		return ok && m != nil
	case KindColumn:
		c, ok := v.(*Column)
		return ok && c != nil
	case KindStageOutput:
		return false
	}

	return false
}

func isPlainValue(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Slice, reflect.Array, reflect.Map:
		return true
	default:
		return false
	}
}

// Encode serializes a valid value to its tagged wire message. A nil value
// encodes to a nil message.
//
// Note the two-level tagging: a descriptor bound to a slot of any kind is
// re-tagged as StageOutputDef on the wire, the wire always distinguishes a
// literal value from a reference to another stage's output.
func (t MessageType) Encode(v any) (*Message, error) {
	if v == nil {
		return nil, nil
	}
	if !t.IsValid(v) {
		return nil, errors.Wrapf(ErrInvalidValue, "value of type %T does not satisfy %s", v, t.Kind)
	}

	if d, ok := v.(*SlotDescriptor); ok {
		payload, err := json.Marshal(d.ToWire())
		if err != nil {
			return nil, errors.Wrap(err, "unable to marshal stage output reference")
		}

		return &Message{Tag: tagStageOutput, Payload: payload}, nil
	}

	var (
		payload []byte
		err     error
	)
	switch t.Kind {
	case KindValue:
		// the subtype is an encoding hint only, the payload is plain JSON
		payload, err = json.Marshal(v)
	case KindDataframe:
		payload, err = v.(*Dataframe).toWire()
	case KindSample:
		payload, err = v.(*Sample).toWire()
	case KindModel:
		payload, err = v.(*Model).toWire()
	case KindColumn:
		payload, err = v.(*Column).toWire()
	default:
		return nil, errors.Wrapf(ErrInvalidValue, "kind %s has no literal encoding", t.Kind)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to encode %s payload", t.Kind)
	}

	return &Message{Tag: t.Kind.Tag(), Payload: payload}, nil
}

// Decode turns a tagged wire message back into a client value, dispatching on
// the message's own tag. Stage output references decode to an OutputRef since
// the originating descriptor cannot be reconstructed client side.
func Decode(m *Message) (any, error) {
	if m == nil {
		return nil, nil
	}
	k, err := KindFromTag(m.Tag)
	if err != nil {
		return nil, err
	}

	switch k {
	case KindValue:
		var v any
		if err := json.Unmarshal(m.Payload, &v); err != nil {
			return nil, errors.Wrap(err, "unable to decode value payload")
		}

		return v, nil
	case KindStageOutput:
		var ref OutputRef
		if err := json.Unmarshal(m.Payload, &ref); err != nil {
			return nil, errors.Wrap(err, "unable to decode stage output reference")
		}

		return ref, nil
	case KindDataframe:
		return DataframeFromWire(m.Payload)
	case KindSample:
		return SampleFromWire(m.Payload)
	case KindModel:
		return ModelFromWire(m.Payload)
	case KindColumn:
		return ColumnFromWire(m.Payload)
	}

	return nil, errors.Wrapf(ErrUnknownTag, "%q", m.Tag)
}

// DecodeAs is the strict variant of Decode: it additionally rejects messages
// whose tag is neither this type's own tag nor a stage output reference.
func (t MessageType) DecodeAs(m *Message) (any, error) {
	if m != nil && m.Tag != t.Kind.Tag() && m.Tag != tagStageOutput {
		return nil, errors.Wrapf(ErrProtocol, "tag %q cannot decode into %s", m.Tag, t.Kind)
	}

	return Decode(m)
}
