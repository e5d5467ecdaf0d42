package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		name        string
		latest      string
		hasArtifact bool
		want        Intent
	}{
		{"creation request", "Write a haiku about autumn", false, IntentCreate},
		{"creation verb only", "draft an email to my landlord", false, IntentCreate},
		{"plain question", "What is the capital of France?", false, IntentReply},
		{"greeting", "hello there", false, IntentReply},
		{"artifact default edit", "Make it sadder", true, IntentEdit},
		{"artifact explicit edit", "please fix the second stanza", true, IntentEdit},
		{"artifact but creation dominates", "write a brand new poem, different topic", true, IntentCreate},
		{"artifact neutral message", "hmm, interesting", true, IntentEdit},
		{"empty input", "", false, IntentReply},
		{"case insensitive", "WRITE A STORY", false, IntentCreate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIntent(tt.latest, tt.hasArtifact))
		})
	}
}

func TestClassifyIntent_Deterministic(t *testing.T) {
	first := ClassifyIntent("Write a haiku", false)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, ClassifyIntent("Write a haiku", false))
	}
}

func TestParseIntentHint(t *testing.T) {
	for hint, want := range map[string]Intent{"create": IntentCreate, "edit": IntentEdit, "reply": IntentReply, "chat": IntentReply} {
		got, ok := ParseIntentHint(hint)
		assert.True(t, ok, hint)
		assert.Equal(t, want, got, hint)
	}

	_, ok := ParseIntentHint("")
	assert.False(t, ok)
	_, ok = ParseIntentHint("unknown")
	assert.False(t, ok)
}
