package task

import "smartstudy/internal/llm"

const defaultGraniteModel = "ibm/granite-13b-chat-v2"

// Profile is the fixed per-task configuration: where the invoker finds its
// key and identifiers, and how the model should decode.
type Profile struct {
	Kind Kind
	// Name is used in user-facing messages, e.g. "quiz".
	Name string

	APIKeySlot    string
	ProjectKey    string
	ModelKey      string
	DefaultModel  string
	DeploymentKey string

	Params llm.Params
}

// UsesDeployment reports whether the task targets a deployment instead of a model.
func (p Profile) UsesDeployment() bool {
	return p.DeploymentKey != ""
}

var profiles = map[Kind]Profile{
	CodeExplain: {
		Kind:         CodeExplain,
		Name:         "code summary",
		APIKeySlot:   "API_KEY_CODE_SUMMARY",
		ProjectKey:   "PROJECT_ID_CODE_SUMMARY",
		ModelKey:     "MODEL_ID_CODE_SUMMARY",
		DefaultModel: defaultGraniteModel,
		Params: llm.Params{
			DecodingMethod:    llm.DecodingGreedy,
			MaxNewTokens:      700,
			RepetitionPenalty: 1.0,
			Guardrails:        true,
		},
	},
	Summarize: {
		Kind:       Summarize,
		Name:       "document summary",
		APIKeySlot: "API_KEY_DOC_SUMMARY",
		ProjectKey: "PROJECT_ID_DOC_SUMMARY",
		ModelKey:   "MODEL_ID_DOC_SUMMARY",
		Params: llm.Params{
			DecodingMethod:    llm.DecodingGreedy,
			MaxNewTokens:      2000,
			RepetitionPenalty: 1.05,
			Guardrails:        true,
		},
	},
	// Quiz questions rephrase content the user already supplied, so output
	// moderation is off.
	Quiz: {
		Kind:         Quiz,
		Name:         "quiz",
		APIKeySlot:   "API_KEY_MCQ",
		ProjectKey:   "PROJECT_ID_MCQ",
		ModelKey:     "MODEL_ID_MCQ",
		DefaultModel: defaultGraniteModel,
		Params: llm.Params{
			DecodingMethod:    llm.DecodingGreedy,
			MaxNewTokens:      900,
			RepetitionPenalty: 1.05,
			Guardrails:        false,
		},
	},
	QuestionAnswer: {
		Kind:          QuestionAnswer,
		Name:          "Q/A",
		APIKeySlot:    "API_KEY_QA",
		ProjectKey:    "PROJECT_ID_QA",
		DeploymentKey: "DEPLOYMENT_ID_QA",
		Params: llm.Params{
			DecodingMethod:    llm.DecodingGreedy,
			MaxNewTokens:      500,
			RepetitionPenalty: 1.0,
			StopSequences:     []string{"\n\n"},
			Guardrails:        true,
		},
	},
}

// ProfileFor returns the profile of k. The bool is false for unknown kinds.
func ProfileFor(k Kind) (Profile, bool) {
	p, ok := profiles[k]
	if ok {
		p.Params.StopSequences = append([]string(nil), p.Params.StopSequences...)
	}
	return p, ok
}
