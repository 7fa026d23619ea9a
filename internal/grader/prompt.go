package grader

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a strict but fair grader evaluating a student's answer to a quiz question.

Rules:
- Judge only whether the student's answer demonstrates the required knowledge. Ignore spelling and grammar unless they change the meaning.
- When a reference answer is given, grade against it; an answer that is equivalent in meaning earns full credit even if worded differently.
- Award partial credit for partially correct answers.
- "correct" is true only when the answer deserves full credit.
- "score" is the points earned, between 0 and the maximum points.
- "feedback" is one or two sentences addressed to the student explaining the grade.
- Respond with only a raw JSON object of the form {"correct": boolean, "score": number, "feedback": string}. No markdown fences, no commentary outside the JSON.`

// buildUserMessage constructs the grading request message. Pure string
// building: the same request always produces the same message.
func buildUserMessage(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Question: %s\n", req.QuestionText)
	fmt.Fprintf(&b, "Maximum points: %d\n", req.Points)

	if req.ReferenceAnswer != "" {
		fmt.Fprintf(&b, "Reference answer: %s\n", req.ReferenceAnswer)
	}

	b.WriteString("\nStudent's answer:\n")
	b.WriteString(req.UserAnswer)

	return b.String()
}
