package drawer

// Drawer renders the stage graph of a pipeline.
type Drawer interface {
	// AddStage adds one stage node, labelled with its name and class.
	AddStage(name, class string) error
	// AddEdge adds one data dependency, labelled with the message kind tag
	// flowing over it.
	AddEdge(fromStage, toStage, kindTag string) error
	// Draw writes the rendered graph out.
	Draw() error
}
