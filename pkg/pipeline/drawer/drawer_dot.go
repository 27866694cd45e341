package drawer

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint
)

// DotDrawer renders the stage graph to a Graphviz dot file. Edges are
// coloured by the message kind flowing over them.
type DotDrawer struct {
	graph       graph.Graph[string, string]
	dotFileName string
}

// NewDotDrawer creates a drawer writing to the given dot file.
func NewDotDrawer(dotFileName string) *DotDrawer {
	return &DotDrawer{
		dotFileName: dotFileName,
		graph:       graph.New(graph.StringHash, graph.Directed()),
	}
}

// AddStage adds a stage node to the graph.
func (d *DotDrawer) AddStage(name, class string) error {
	err := d.graph.AddVertex(name, graph.VertexAttribute("label", fmt.Sprintf("%s\\n%s", name, class)))
	if err != nil {
		return errors.Wrapf(err, "unable to add vertex %s", name)
	}

	return nil
}

// AddEdge adds a data dependency between two stages.
func (d *DotDrawer) AddEdge(fromStage, toStage, kindTag string) error {
	colour, err := kindColour(kindTag)
	if err != nil {
		return err
	}

	err = d.graph.AddEdge(fromStage, toStage,
		graph.EdgeAttribute("label", kindTag),
		graph.EdgeAttribute("color", colour),
	)
	if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
		return errors.Wrapf(err, "unable to add edge from %s to %s", fromStage, toStage)
	}

	return nil
}

// Draw creates the dot file with the pipeline graph.
func (d *DotDrawer) Draw() error {
	file, err := os.Create(d.dotFileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.dotFileName)
	}
	defer file.Close()

	err = dot(d.graph, file)
	if err != nil {
		return errors.Wrapf(err, "unable to render dot file %s", d.dotFileName)
	}

	return nil
}

func kindColour(kindTag string) (string, error) {
	var r, g, b uint8
	switch kindTag {
	case "DataframeMessageDef":
		r, g, b = 0, 0, 200
	case "ModelMessageDef":
		r, g, b = 200, 0, 0
	case "ColumnDef":
		r, g, b = 0, 160, 0
	case "SampleMessageDef":
		r, g, b = 230, 140, 0
	default:
		r, g, b = 120, 120, 120
	}

	colour, err := colors.RGB(r, g, b) //nolint
	if err != nil {
		return "", errors.Wrap(err, "unable to get colour")
	}

	return colour.ToHEX().String(), nil
}

const dotTemplate = `strict {{.GraphType}} {
	{{range $k, $v := .Attributes}}
		{{$k}}="{{$v}}";
	{{end}}
	{{range $s := .Statements}}
		"{{.Source}}" {{if .Target}}{{$.EdgeOperator}} "{{.Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.EdgeWeight}} ]{{else}}[ {{range $k, $v := .SourceAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.SourceWeight}} ]{{end}};
	{{end}}
	}
	`

type description struct {
	GraphType    string
	Attributes   map[string]string
	EdgeOperator string
	Statements   []statement
}

type statement struct {
	Source           interface{}
	Target           interface{}
	SourceWeight     int
	SourceAttributes map[string]string
	EdgeWeight       int
	EdgeAttributes   map[string]string
}

func dot(g graph.Graph[string, string], w io.Writer) error {
	desc := description{
		GraphType:    "digraph",
		EdgeOperator: "->",
		Attributes:   map[string]string{},
	}

	adjacencyMap, err := g.AdjacencyMap()
	if err != nil {
		return errors.Wrap(err, "unable to get adjacency map")
	}

	for vertex, adjacencies := range adjacencyMap {
		_, properties, err := g.VertexWithProperties(vertex)
		if err != nil {
			return errors.Wrapf(err, "unable to get vertex %s", vertex)
		}

		desc.Statements = append(desc.Statements, statement{
			Source:           vertex,
			SourceWeight:     properties.Weight,
			SourceAttributes: properties.Attributes,
		})

		for adjacency, e := range adjacencies {
			desc.Statements = append(desc.Statements, statement{
				Source:         vertex,
				Target:         adjacency,
				EdgeWeight:     e.Properties.Weight,
				EdgeAttributes: e.Properties.Attributes,
			})
		}
	}

	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return errors.Wrap(err, "unable to parse template")
	}

	err = tpl.Execute(w, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var _ Drawer = (*DotDrawer)(nil)
