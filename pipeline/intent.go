package pipeline

import "strings"

// Intent is the branch selected for an authoring run.
type Intent int

const (
	// IntentReply streams an ordinary reply with no artifact involvement.
	IntentReply Intent = iota
	// IntentCreate generates new content and stores it as a fresh artifact.
	IntentCreate
	// IntentEdit regenerates an existing artifact's content in place.
	IntentEdit
)

// String returns a stable label for logging.
func (i Intent) String() string {
	switch i {
	case IntentCreate:
		return "create"
	case IntentEdit:
		return "edit"
	default:
		return "reply"
	}
}

// createKeywords signal that the user wants new content produced.
var createKeywords = []string{
	"write", "create", "draft", "compose", "generate", "make",
	"haiku", "poem", "essay", "story", "script", "document", "article",
	"code", "snippet", "readme", "outline",
}

// editKeywords signal that the user wants existing content changed.
var editKeywords = []string{
	"edit", "change", "update", "revise", "rewrite", "modify", "fix",
	"improve", "adjust", "refactor", "make it", "instead",
	"shorter", "longer", "simpler",
}

// ClassifyIntent selects the authoring branch for the latest input message.
// The rule is deterministic, keyword based:
//
//   - With an artifact handle supplied, the default is IntentEdit; only when
//     creation keywords strictly outnumber edit keywords does the run create
//     a fresh artifact instead.
//   - Without an artifact handle, any creation keyword selects IntentCreate,
//     otherwise the run is a plain IntentReply.
//
// Keyword matching is case-insensitive substring containment; each keyword
// counts at most once.
func ClassifyIntent(latest string, hasArtifact bool) Intent {
	text := strings.ToLower(latest)
	createScore := keywordScore(text, createKeywords)
	editScore := keywordScore(text, editKeywords)

	if hasArtifact {
		if createScore > editScore {
			return IntentCreate
		}
		return IntentEdit
	}
	if createScore > 0 {
		return IntentCreate
	}
	return IntentReply
}

// ParseIntentHint maps an explicit routing hint to an Intent, bypassing the
// keyword heuristic. Unknown hints report ok=false.
func ParseIntentHint(hint string) (Intent, bool) {
	switch strings.ToLower(hint) {
	case "create":
		return IntentCreate, true
	case "edit":
		return IntentEdit, true
	case "reply", "chat":
		return IntentReply, true
	default:
		return IntentReply, false
	}
}

func keywordScore(text string, keywords []string) int {
	score := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			score++
		}
	}
	return score
}
