package pipeline

import (
	"errors"
	"fmt"

	"github.com/hupe1980/agentwire/artifact"
	"github.com/hupe1980/agentwire/core"
)

// AuthorOptions configures the authoring pipeline.
type AuthorOptions struct {
	// ArtifactKind labels emitted artifact references (e.g. "document").
	ArtifactKind string
	// Language is the content hint attached to newly created artifacts.
	Language string
	// Instructions is the system prompt prepended to every generation call.
	Instructions string
}

// Author is the authoring pipeline: it routes each run to one of three
// branches (create, edit, plain reply) based on the latest input message and
// whether an artifact handle was supplied, streams the generated text, and
// keeps the artifact cache in sync with the produced content.
type Author struct {
	generator core.Generator
	cache     core.ArtifactCache
	opts      AuthorOptions
}

var _ core.Pipeline = (*Author)(nil)

// NewAuthor constructs the authoring pipeline with optional overrides.
func NewAuthor(generator core.Generator, cache core.ArtifactCache, optFns ...func(o *AuthorOptions)) *Author {
	opts := AuthorOptions{
		ArtifactKind: "document",
		Instructions: "You are a writing assistant. Produce the requested content directly, without preamble.",
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Author{generator: generator, cache: cache, opts: opts}
}

// Name implements core.Pipeline.
func (a *Author) Name() string { return "author" }

// Run implements core.Pipeline. An explicit routing hint on the context
// wins; otherwise the deterministic keyword classifier picks the branch.
func (a *Author) Run(rc *core.RunContext) error {
	intent, ok := ParseIntentHint(rc.Hint)
	if !ok {
		intent = ClassifyIntent(rc.LatestUserMessage(), rc.ArtifactID != "")
	}
	rc.Logger.Debug("authoring branch selected", "intent", intent.String(), "artifact_id", rc.ArtifactID)

	switch intent {
	case IntentEdit:
		return a.edit(rc)
	case IntentCreate:
		return a.create(rc)
	default:
		return a.reply(rc)
	}
}

// create streams fresh content and stores it under a new artifact id.
func (a *Author) create(rc *core.RunContext) error {
	messageID := core.NewID()
	seed := a.seedMessages(rc, a.opts.Instructions)

	content, err := streamText(rc, a.generator, seed, messageID)
	if err != nil {
		return err
	}

	id, err := a.cache.Create(content, rc.ThreadID, titleFor(rc.LatestUserMessage()), a.opts.Language)
	if err != nil {
		return fmt.Errorf("cache artifact: %w", err)
	}
	return rc.EmitEvent(core.NewArtifactRefEvent(rc.ThreadID, rc.RunID, messageID, id, a.opts.ArtifactKind, a.opts.Language))
}

// edit regenerates the referenced artifact's content and replaces it in
// place under the same id. A missing or expired handle falls back to the
// create branch instead of failing the run.
func (a *Author) edit(rc *core.RunContext) error {
	prior, err := a.cache.Get(rc.ArtifactID)
	if errors.Is(err, artifact.ErrNotFound) {
		rc.Logger.Warn("referenced artifact not found, creating fresh", "artifact_id", rc.ArtifactID)
		return a.create(rc)
	}
	if err != nil {
		return fmt.Errorf("load artifact: %w", err)
	}

	messageID := core.NewID()
	instructions := fmt.Sprintf("%s\n\nRevise the following content according to the user's request. Return the complete revised version.\n\n%s",
		a.opts.Instructions, prior.Content)
	seed := a.seedMessages(rc, instructions)

	content, err := streamText(rc, a.generator, seed, messageID)
	if err != nil {
		return err
	}

	if err := a.cache.Update(prior.ID, content); err != nil {
		if errors.Is(err, artifact.ErrNotFound) {
			// Entry expired while the run was streaming. Store the result
			// under a fresh handle so the content is not lost.
			id, cerr := a.cache.Create(content, rc.ThreadID, prior.Title, prior.Language)
			if cerr != nil {
				return fmt.Errorf("cache artifact: %w", cerr)
			}
			return rc.EmitEvent(core.NewArtifactRefEvent(rc.ThreadID, rc.RunID, messageID, id, a.opts.ArtifactKind, prior.Language))
		}
		return fmt.Errorf("update artifact: %w", err)
	}
	return rc.EmitEvent(core.NewArtifactRefEvent(rc.ThreadID, rc.RunID, messageID, prior.ID, a.opts.ArtifactKind, prior.Language))
}

// reply streams an ordinary text answer with no artifact involvement.
func (a *Author) reply(rc *core.RunContext) error {
	_, err := streamText(rc, a.generator, rc.Messages, core.NewID())
	return err
}

func (a *Author) seedMessages(rc *core.RunContext, instructions string) []core.Message {
	seed := make([]core.Message, 0, len(rc.Messages)+1)
	if instructions != "" {
		seed = append(seed, core.Message{Role: core.RoleSystem, Content: instructions})
	}
	return append(seed, rc.Messages...)
}
