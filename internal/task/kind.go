package task

import "fmt"

// Kind enumerates the supported generation tasks.
type Kind int

const (
	CodeExplain Kind = iota + 1
	Summarize
	Quiz
	QuestionAnswer
)

// Kinds lists every task kind in display order.
func Kinds() []Kind {
	return []Kind{CodeExplain, Summarize, Quiz, QuestionAnswer}
}

var kindInfo = map[Kind]struct {
	slug, label, heading string
}{
	CodeExplain:    {"code_explain", "Code Refactor", "Generated Code Refactor"},
	Summarize:      {"summarize", "Summary Generator", "Generated Summary"},
	Quiz:           {"quiz", "Quiz Generator", "Generated Quiz"},
	QuestionAnswer: {"question_answer", "Q/A Generator", "Generated Q/A"},
}

// String returns the wire name used in forms, JSON and events.
func (k Kind) String() string {
	if info, ok := kindInfo[k]; ok {
		return info.slug
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Label is the selector text shown to the user.
func (k Kind) Label() string {
	return kindInfo[k].label
}

// Heading is shown above a generated response.
func (k Kind) Heading() string {
	return kindInfo[k].heading
}

// NeedsQuestion reports whether the task requires a question besides content.
func (k Kind) NeedsQuestion() bool {
	return k == QuestionAnswer
}

// ParseKind maps a wire name back to its Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown task %q", s)
}
