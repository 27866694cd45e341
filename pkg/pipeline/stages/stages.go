// Package stages is the catalog of concrete stage types understood by the
// execution engine, with typed accessors for their ports.
package stages

import (
	"github.com/askiada/go-pipeline-client/pkg/pipeline"
)

// Shared capabilities. A transformer consumes dataframes and produces one; an
// estimator additionally produces a trained model.
var (
	UnaryTransformer = pipeline.NewCapability("unaryTransformer",
		pipeline.InputSlot("inputDf", pipeline.DataframeType, ""),
		pipeline.OutputSlot("outputDf", pipeline.DataframeType, ""),
	)

	BinaryTransformer = pipeline.NewCapability("binaryTransformer",
		pipeline.InputSlot("leftDf", pipeline.DataframeType, ""),
		pipeline.InputSlot("rightDf", pipeline.DataframeType, ""),
		pipeline.OutputSlot("outputDf", pipeline.DataframeType, ""),
	)

	Estimator = pipeline.NewCapability("estimator",
		pipeline.InputSlot("inputDf", pipeline.DataframeType, ""),
		pipeline.OutputSlot("model", pipeline.ModelType, ""),
		pipeline.OutputSlot("outputDf", pipeline.DataframeType, ""),
	)
)

var dropSchema = pipeline.NewSchema("Drop").
	Compose(UnaryTransformer).
	Input("colNames", pipeline.ValueType("array"), "").
	MustBuild()

// Drop removes the given columns from a dataframe.
type Drop struct {
	*pipeline.Stage
}

func NewDrop() *Drop {
	return &Drop{Stage: pipeline.NewStage(dropSchema)}
}

func (d *Drop) InputDf() *pipeline.SlotDescriptor  { return d.MustInput("inputDf") }
func (d *Drop) ColNames() *pipeline.SlotDescriptor { return d.MustInput("colNames") }
func (d *Drop) OutputDf() *pipeline.SlotDescriptor { return d.MustOutput("outputDf") }

var limitSchema = pipeline.NewSchema("Limit").
	Compose(UnaryTransformer).
	Input("size", pipeline.ValueType("integer"), "").
	MustBuild()

// Limit keeps the first size rows of a dataframe.
type Limit struct {
	*pipeline.Stage
}

func NewLimit() *Limit {
	return &Limit{Stage: pipeline.NewStage(limitSchema)}
}

func (l *Limit) InputDf() *pipeline.SlotDescriptor  { return l.MustInput("inputDf") }
func (l *Limit) Size() *pipeline.SlotDescriptor     { return l.MustInput("size") }
func (l *Limit) OutputDf() *pipeline.SlotDescriptor { return l.MustOutput("outputDf") }

var joinSchema = pipeline.NewSchema("Join").
	Compose(BinaryTransformer).
	Input("joinColumns", pipeline.ValueType("array"), "").
	Input("joinType", pipeline.ValueType("string"), "").
	MustBuild()

// Join joins two dataframes on the given columns.
type Join struct {
	*pipeline.Stage
}

func NewJoin() *Join {
	return &Join{Stage: pipeline.NewStage(joinSchema)}
}

func (j *Join) LeftDf() *pipeline.SlotDescriptor      { return j.MustInput("leftDf") }
func (j *Join) RightDf() *pipeline.SlotDescriptor     { return j.MustInput("rightDf") }
func (j *Join) JoinColumns() *pipeline.SlotDescriptor { return j.MustInput("joinColumns") }
func (j *Join) JoinType() *pipeline.SlotDescriptor    { return j.MustInput("joinType") }
func (j *Join) OutputDf() *pipeline.SlotDescriptor    { return j.MustOutput("outputDf") }

var vectorAssemblerSchema = pipeline.NewSchema("VectorAssembler").
	Compose(UnaryTransformer).
	Input("inputCols", pipeline.ValueType("array"), "").
	Input("outputCol", pipeline.ValueType("string"), "").
	MustBuild()

// VectorAssembler packs the given columns into a single vector column.
type VectorAssembler struct {
	*pipeline.Stage
}

func NewVectorAssembler() *VectorAssembler {
	return &VectorAssembler{Stage: pipeline.NewStage(vectorAssemblerSchema)}
}

func (v *VectorAssembler) InputDf() *pipeline.SlotDescriptor   { return v.MustInput("inputDf") }
func (v *VectorAssembler) InputCols() *pipeline.SlotDescriptor { return v.MustInput("inputCols") }
func (v *VectorAssembler) OutputCol() *pipeline.SlotDescriptor { return v.MustInput("outputCol") }
func (v *VectorAssembler) OutputDf() *pipeline.SlotDescriptor  { return v.MustOutput("outputDf") }

var linearRegressionSchema = pipeline.NewSchema("LinearRegression").
	Compose(Estimator).
	Input("featuresCol", pipeline.ValueType("string"), "").
	Input("labelCol", pipeline.ValueType("string"), "").
	Input("predictionCol", pipeline.ValueType("string"), "").
	Input("regParam", pipeline.ValueType("double"), "").
	Input("maxIter", pipeline.ValueType("integer"), "").
	MustBuild()

// LinearRegression fits a linear model and scores the input dataframe.
type LinearRegression struct {
	*pipeline.Stage
}

func NewLinearRegression() *LinearRegression {
	return &LinearRegression{Stage: pipeline.NewStage(linearRegressionSchema)}
}

func (l *LinearRegression) InputDf() *pipeline.SlotDescriptor       { return l.MustInput("inputDf") }
func (l *LinearRegression) FeaturesCol() *pipeline.SlotDescriptor   { return l.MustInput("featuresCol") }
func (l *LinearRegression) LabelCol() *pipeline.SlotDescriptor      { return l.MustInput("labelCol") }
func (l *LinearRegression) PredictionCol() *pipeline.SlotDescriptor { return l.MustInput("predictionCol") }
func (l *LinearRegression) RegParam() *pipeline.SlotDescriptor      { return l.MustInput("regParam") }
func (l *LinearRegression) MaxIter() *pipeline.SlotDescriptor       { return l.MustInput("maxIter") }
func (l *LinearRegression) Model() *pipeline.SlotDescriptor         { return l.MustOutput("model") }
func (l *LinearRegression) OutputDf() *pipeline.SlotDescriptor      { return l.MustOutput("outputDf") }
