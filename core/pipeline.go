package core

// Pipeline is a named unit of processing that produces the event stream for
// one run. Run emits events incrementally through the RunContext as they are
// produced; it must not buffer the whole run.
//
// Pipelines surface failures by returning an error. They never emit RunError
// themselves; translating failures into the terminal RUN_ERROR event is the
// run coordinator's exclusive responsibility so that every run ends with
// exactly one terminal event.
type Pipeline interface {
	// Name returns the agent kind this pipeline serves.
	Name() string

	// Run drives the pipeline for one request. It returns nil on natural
	// completion, the context error on cancellation, or the underlying
	// failure otherwise.
	Run(rc *RunContext) error
}
