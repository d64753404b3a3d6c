package task

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPromptEmbedsContentVerbatim(t *testing.T) {
	contents := []string{
		"def add(a,b): return a+b",
		"100% of the tests use %s and %d verbs",
		"line one\n\nline two\twith tab",
		"日本語のテキスト",
	}
	for _, k := range Kinds() {
		for _, content := range contents {
			prompt, err := BuildPrompt(k, content, "What is it?")
			require.NoError(t, err)
			assert.True(t, strings.Contains(prompt, content), "%s prompt lost content %q", k, content)
		}
	}
}

func TestBuildPromptQuestionAnswer(t *testing.T) {
	prompt, err := BuildPrompt(QuestionAnswer, "The sky is blue.", "What colour is the sky?")

	require.NoError(t, err)
	assert.Contains(t, prompt, "###\nThe sky is blue.\n###")
	assert.True(t, strings.HasSuffix(prompt, "What colour is the sky?"))
	assert.Contains(t, prompt, `say "The answer cannot be found in the given text."`)
	assert.Contains(t, prompt, "For 1 Question give 1 answer as priority.")
	assert.Equal(t, 2, strings.Count(prompt, `"`), "instruction quote should be balanced")
}

func TestBuildPromptQuestionAnswerNeedsQuestion(t *testing.T) {
	for _, q := range []string{"", "   ", "\n"} {
		_, err := BuildPrompt(QuestionAnswer, "The sky is blue.", q)
		assert.ErrorIs(t, err, ErrMissingQuestion)
	}
}

func TestBuildPromptIgnoresQuestionForOtherTasks(t *testing.T) {
	prompt, err := BuildPrompt(Summarize, "text", "stray question")

	require.NoError(t, err)
	assert.NotContains(t, prompt, "stray question")
}

func TestBuildPromptUnknownKind(t *testing.T) {
	_, err := BuildPrompt(Kind(42), "text", "")
	assert.Error(t, err)
}
