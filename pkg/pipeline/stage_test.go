package pipeline_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-pipeline-client/pkg/pipeline"
	"github.com/askiada/go-pipeline-client/pkg/pipeline/stages"
)

func TestStageSetInput(t *testing.T) {
	t.Parallel()

	drop := stages.NewDrop()
	require.NoError(t, drop.SetInput(drop.ColNames(), []string{"a", "b"}))

	got, err := drop.Input(drop.ColNames())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestStageSetInputForeignDescriptor(t *testing.T) {
	t.Parallel()

	drop := stages.NewDrop()
	other := stages.NewDrop()

	err := drop.SetInput(other.ColNames(), []string{"a"})
	require.Error(t, err)
	assert.ErrorIs(t, err, pipeline.ErrForeignSlot)

	_, err = drop.Input(other.ColNames())
	require.Error(t, err)
	assert.ErrorIs(t, err, pipeline.ErrForeignSlot)
}

func TestStageSetInputWrongDirection(t *testing.T) {
	t.Parallel()

	drop := stages.NewDrop()
	err := drop.SetInput(drop.OutputDf(), &pipeline.Dataframe{ID: "df"})
	require.Error(t, err)
	assert.ErrorIs(t, err, pipeline.ErrNotInput)
}

func TestStageSetInputInvalidValue(t *testing.T) {
	t.Parallel()

	drop := stages.NewDrop()
	err := drop.SetInput(drop.InputDf(), "not a dataframe")
	require.Error(t, err)
	assert.ErrorIs(t, err, pipeline.ErrInvalidValue)
	assert.Contains(t, err.Error(), "inputDf")
}

func TestStageSetInputs(t *testing.T) {
	t.Parallel()

	drop := stages.NewDrop()
	err := drop.SetInputs(map[string]any{
		"inputDf":  &pipeline.Dataframe{ID: "df"},
		"colNames": []string{"a"},
	})
	require.NoError(t, err)

	err = drop.SetInputs(map[string]any{"missing": 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, pipeline.ErrSlotNotFound)
}

func TestStageInputOr(t *testing.T) {
	t.Parallel()

	drop := stages.NewDrop()
	got, err := drop.InputOr(drop.ColNames(), []string{"fallback"})
	require.NoError(t, err)
	assert.Equal(t, []string{"fallback"}, got)
}

func TestStageName(t *testing.T) {
	t.Parallel()

	drop := stages.NewDrop()
	assert.Equal(t, "", drop.Name())
	require.NoError(t, drop.SetName("drop_stage"))
	assert.Equal(t, "drop_stage", drop.Name())
}

func TestStageDescriptorsAreStable(t *testing.T) {
	t.Parallel()

	drop := stages.NewDrop()
	// repeated lookups return the same descriptor, so it is usable as a map
	// key
	assert.Same(t, drop.OutputDf(), drop.OutputDf())
	assert.Same(t, drop.ColNames(), drop.ColNames())
	assert.True(t, drop.OutputDf().Equal(drop.OutputDf()))
	assert.False(t, drop.OutputDf().Equal(drop.InputDf()))
}

func TestSlotDescriptorTracksRename(t *testing.T) {
	t.Parallel()

	drop := stages.NewDrop()
	out := drop.OutputDf()
	require.NoError(t, drop.SetName("first"))
	assert.Equal(t, "first", out.ParentName())
	assert.Equal(t, "first:outputDf", out.FullName())

	require.NoError(t, drop.SetName("second"))
	assert.Equal(t, "second", out.ParentName())
	assert.Equal(t, pipeline.OutputRef{StageName: "second", OutputName: "outputDf"}, out.ToWire())
}

func TestStageToWire(t *testing.T) {
	t.Parallel()

	drop := stages.NewDrop()
	require.NoError(t, drop.SetName("drop_stage"))
	require.NoError(t, drop.SetInput(drop.ColNames(), []string{"a", "b"}))

	wire, err := drop.ToWire()
	require.NoError(t, err)

	assert.Equal(t, "drop_stage", wire.Name)
	assert.Equal(t, "Drop", wire.StageClass)
	assert.Empty(t, wire.Outputs)

	// the reserved name slot never appears among the inputs
	assert.NotContains(t, wire.Inputs, "name")
	// unbound slots are skipped
	assert.NotContains(t, wire.Inputs, "inputDf")

	msg := wire.Inputs["colNames"]
	require.NotNil(t, msg)
	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `["ValueDef",["a","b"]]`, string(data))

	decoded, err := pipeline.Decode(msg)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, decoded)
}

func TestStageToWireReferenceEncoding(t *testing.T) {
	t.Parallel()

	producer := stages.NewDrop()
	require.NoError(t, producer.SetName("producer"))

	consumer := stages.NewDrop()
	require.NoError(t, consumer.SetName("consumer"))
	require.NoError(t, consumer.SetInput(consumer.InputDf(), producer.OutputDf()))

	wire, err := consumer.ToWire()
	require.NoError(t, err)

	// the slot's declared kind is dataframe, the wire message is a reference
	msg := wire.Inputs["inputDf"]
	require.NotNil(t, msg)
	assert.Equal(t, "StageOutputDef", msg.Tag)
	assert.JSONEq(t, `{"stageName":"producer","outputName":"outputDf"}`, string(msg.Payload))
}

func TestStageSlotLookup(t *testing.T) {
	t.Parallel()

	drop := stages.NewDrop()

	slot, err := drop.Slot("colNames", true)
	require.NoError(t, err)
	assert.Equal(t, "colNames", slot.WireName)

	_, err = drop.Slot("bogus", true)
	require.Error(t, err)
	assert.ErrorIs(t, err, pipeline.ErrSlotNotFound)

	_, err = drop.OutputSlot("bogus")
	require.Error(t, err)
	assert.ErrorIs(t, err, pipeline.ErrSlotNotFound)
}
