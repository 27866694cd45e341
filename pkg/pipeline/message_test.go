package pipeline_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/askiada/go-pipeline-client/pkg/pipeline"
)

func TestMessageJSONRoundTrip(t *testing.T) {
	t.Parallel()

	msg := &pipeline.Message{Tag: "ValueDef", Payload: json.RawMessage(`["a","b"]`)}
	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `["ValueDef",["a","b"]]`, string(data))

	var got pipeline.Message
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "ValueDef", got.Tag)
	assert.JSONEq(t, `["a","b"]`, string(got.Payload))
}

func TestMessageUnmarshalWrongShape(t *testing.T) {
	t.Parallel()

	var msg pipeline.Message
	err := json.Unmarshal([]byte(`["ValueDef"]`), &msg)
	require.Error(t, err)
	assert.ErrorIs(t, err, pipeline.ErrProtocol)
}

func TestDecodeDataframe(t *testing.T) {
	t.Parallel()

	df := &pipeline.Dataframe{ID: "df-42"}
	msg, err := pipeline.DataframeType.Encode(df)
	require.NoError(t, err)
	assert.Equal(t, "DataframeMessageDef", msg.Tag)

	got, err := pipeline.Decode(msg)
	require.NoError(t, err)
	assert.Equal(t, df, got)
}

func TestDecodeModel(t *testing.T) {
	t.Parallel()

	model := &pipeline.Model{
		ID:       "mdl-1",
		Inputs:   map[string]any{"regParam": 0.001},
		Metadata: map[string]any{"iterations": float64(10)},
	}
	msg, err := pipeline.ModelType.Encode(model)
	require.NoError(t, err)

	got, err := pipeline.Decode(msg)
	require.NoError(t, err)
	assert.Equal(t, model, got)
}

func TestDecodeColumn(t *testing.T) {
	t.Parallel()

	col := &pipeline.Column{Name: "price", Expr: json.RawMessage(`{"op":"mul"}`)}
	msg, err := pipeline.ColumnType.Encode(col)
	require.NoError(t, err)

	got, err := pipeline.Decode(msg)
	require.NoError(t, err)
	require.IsType(t, &pipeline.Column{}, got)
	assert.Equal(t, "price", got.(*pipeline.Column).Name)
	assert.JSONEq(t, `{"op":"mul"}`, string(got.(*pipeline.Column).Expr))
}

func TestDecodeNil(t *testing.T) {
	t.Parallel()

	got, err := pipeline.Decode(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDecodeUnknownTag(t *testing.T) {
	t.Parallel()

	_, err := pipeline.Decode(&pipeline.Message{Tag: "BogusDef", Payload: json.RawMessage(`null`)})
	require.Error(t, err)
	assert.ErrorIs(t, err, pipeline.ErrUnknownTag)
}

func TestDecodeAsRejectsForeignTag(t *testing.T) {
	t.Parallel()

	msg, err := pipeline.DataframeType.Encode(&pipeline.Dataframe{ID: "df"})
	require.NoError(t, err)

	_, err = pipeline.ValueType("").DecodeAs(msg)
	require.Error(t, err)
	assert.ErrorIs(t, err, pipeline.ErrProtocol)
}

func TestValueEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		value := rapid.SliceOf(rapid.String()).Draw(t, "value")

		msg, err := pipeline.ValueType("array").Encode(value)
		if err != nil {
			t.Fatalf("encode failed: %v", err)
		}

		decoded, err := pipeline.Decode(msg)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}

		got, ok := decoded.([]any)
		if !ok && decoded != nil {
			t.Fatalf("expected a slice, got %T", decoded)
		}
		if len(got) != len(value) {
			t.Fatalf("expected %d elements, got %d", len(value), len(got))
		}
		for i, v := range value {
			if got[i] != v {
				t.Fatalf("element %d: expected %q, got %v", i, v, got[i])
			}
		}
	})
}
