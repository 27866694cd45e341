// Package pipeline declaratively builds named, typed computation graphs and
// submits them to a remote execution engine.
//
// A pipeline is assembled from stages, each declaring typed input and output
// slots through an immutable per-class schema. Wiring one stage's output
// descriptor into another stage's input declares a data dependency; a
// Placeholder stands for an input bound only at run time through the feeds
// map. The package validates every binding against the slot's message type
// before anything touches the network, so type mismatches surface at the call
// that caused them rather than as engine errors.
//
// Run serializes the whole graph, sends it with the feed overrides and the
// list of requested output ports, and demultiplexes the tagged results back
// into typed client values, matched by port identity rather than position.
// Remote values (dataframes, models, columns) come back as opaque handles;
// the engine owns their semantics.
package pipeline
