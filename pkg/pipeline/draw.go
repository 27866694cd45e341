package pipeline

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-pipeline-client/pkg/pipeline/drawer"
)

// Draw renders the current stage graph with the given drawer. Stages appear in
// insertion order; edges carry the kind of the message flowing over them.
func (p *Pipeline) Draw(d drawer.Drawer) error {
	for _, st := range p.stages {
		if err := d.AddStage(st.Name(), st.Class()); err != nil {
			return errors.Wrapf(err, "unable to draw stage %q", st.Name())
		}
	}

	edges, err := p.edges()
	if err != nil {
		return err
	}
	for _, e := range edges {
		if err := d.AddEdge(e.from, e.to, e.kindTag); err != nil {
			return errors.Wrapf(err, "unable to draw edge from %q to %q", e.from, e.to)
		}
	}

	err = d.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw pipeline")
	}

	return nil
}
