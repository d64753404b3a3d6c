package task

import (
	"fmt"
	"strings"
)

const codeExplainPrompt = "Provide a detailed explanation of how the following code functions. " +
	"Additionally, suggest improvements to enhance its efficiency, readability, or structure. " +
	"Finally, present a revised version of the code incorporating these improvements.\n\n%s"

const summarizePrompt = "You are Granite AI, a powerful summarization tool. Please read the following detailed text " +
	"and provide a concise summary in bullet points, keeping the summary within 250 words. " +
	"Use a 1, 2, 3 format for the points:\n\n" +
	"Content to summarize:\n\n%s"

const quizPrompt = "You are Granite Chat, an AI language model developed by IBM. You will be provided with summaries " +
	"of up to 250 words, and your task is to create 3 multiple-choice questions (MCQs) or short questions " +
	"based on each summary.\n\n%s"

const questionAnswerPrompt = `Answer the following question using strictly only information from the article. ` +
	`If there is no good answer in the article, say "The answer cannot be found in the given text." ` +
	`Don't jump on giving answers on your own. For 1 Question give 1 answer as priority.

Article:
###
%s
###

%s`

// BuildPrompt embeds content, and for Q&A the question, verbatim into the
// task's instruction template.
func BuildPrompt(k Kind, content, question string) (string, error) {
	switch k {
	case CodeExplain:
		return fmt.Sprintf(codeExplainPrompt, content), nil
	case Summarize:
		return fmt.Sprintf(summarizePrompt, content), nil
	case Quiz:
		return fmt.Sprintf(quizPrompt, content), nil
	case QuestionAnswer:
		if strings.TrimSpace(question) == "" {
			return "", ErrMissingQuestion
		}
		return fmt.Sprintf(questionAnswerPrompt, content, question), nil
	default:
		return "", fmt.Errorf("no prompt for %s", k)
	}
}
