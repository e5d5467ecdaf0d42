package pipeline

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hupe1980/agentwire/core"
	"github.com/hupe1980/agentwire/logging"
)

// streamText drives one generation call and frames its output as a streamed
// textual message (start, zero or more content fragments, end). It returns
// the accumulated full text so callers can persist it. The generation call
// runs under the context derived by rc.GenerateContext, so the configured
// per-call timeout applies.
func streamText(rc *core.RunContext, gen core.Generator, messages []core.Message, messageID string) (string, error) {
	if err := rc.EmitEvent(core.NewTextMessageStartEvent(rc.ThreadID, rc.RunID, messageID)); err != nil {
		return "", err
	}

	ctx, cancel := rc.GenerateContext()
	defer cancel()

	start := time.Now()
	chunks, errs := gen.StreamGenerate(ctx, messages)

	var full strings.Builder
	for chunk := range chunks {
		full.WriteString(chunk)
		if err := rc.EmitEvent(core.NewTextMessageContentEvent(rc.ThreadID, rc.RunID, messageID, chunk)); err != nil {
			return "", err
		}
	}
	if err := <-errs; err != nil {
		logging.LogGenerateCall(rc.Logger, time.Since(start), err)
		return "", err
	}
	logging.LogGenerateCall(rc.Logger, time.Since(start), nil)

	if err := rc.EmitEvent(core.NewTextMessageEndEvent(rc.ThreadID, rc.RunID, messageID)); err != nil {
		return "", err
	}
	return full.String(), nil
}

// titleFor derives a short artifact title from the request that produced it.
// Truncation backs up to a rune boundary so the title stays valid UTF-8.
func titleFor(request string) string {
	title := strings.TrimSpace(request)
	if title == "" {
		return "Untitled"
	}
	const maxTitle = 60
	if len(title) > maxTitle {
		cut := maxTitle
		for cut > 0 && !utf8.RuneStart(title[cut]) {
			cut--
		}
		title = strings.TrimSpace(title[:cut])
	}
	return title
}
