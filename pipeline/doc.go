// Package pipeline contains the concrete processing pipelines selectable by
// agent kind. Each pipeline turns one run's input into an ordered stream of
// events, consulting the generation capability and the artifact cache as
// needed. Pipelines are constructed fresh per run by the dispatch package
// and hold no state shared across runs.
package pipeline
