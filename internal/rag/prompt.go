package rag

import (
	"fmt"
	"strings"

	"studyhall/backend/internal/index"
)

const personaPrompt = "You are a helpful study assistant."

// personalizationClause renders the student's profile for the prompt.
// Returns "" when nothing is known.
func personalizationClause(majors []string, year string) string {
	var clause string
	switch len(majors) {
	case 0:
	case 1:
		clause = fmt.Sprintf("The student is a %s major", majors[0])
	case 2:
		clause = fmt.Sprintf("The student is double majoring in %s and %s", majors[0], majors[1])
	default:
		clause = fmt.Sprintf("The student is majoring in %s", oxfordJoin(majors))
	}

	if year != "" {
		if clause == "" {
			clause = fmt.Sprintf("The student is in their %s year", year)
		} else {
			clause += fmt.Sprintf(", currently in their %s year", year)
		}
	}
	if clause == "" {
		return ""
	}
	return clause + ". Tailor examples to their background where it helps."
}

// oxfordJoin renders "A, B, and C".
func oxfordJoin(items []string) string {
	if len(items) < 3 {
		return strings.Join(items, " and ")
	}
	return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
}

// buildGroundedPrompt numbers the retrieved chunks as sources and instructs
// the model to cite them.
func buildGroundedPrompt(question string, results []index.SearchResult, personalization string) string {
	var sb strings.Builder
	sb.WriteString("Answer the following question based on the provided context from the student's study materials.\n\n")
	if personalization != "" {
		sb.WriteString(personalization)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Context:\n")
	for i, r := range results {
		fmt.Fprintf(&sb, "[Source %d]: %s\n\n", i+1, r.Text)
	}
	fmt.Fprintf(&sb, "Question: %s\n\n", question)
	sb.WriteString("Provide a clear, concise answer. If the context doesn't contain enough information, say so. ")
	sb.WriteString("Cite which sources you used (e.g., \"According to Source 1...\").")
	return sb.String()
}

// buildGeneralKnowledgePrompt is used when the corpus has data but nothing
// relevant matched: the model must disclose that the answer is not drawn
// from the student's documents.
func buildGeneralKnowledgePrompt(question string, personalization string) string {
	var sb strings.Builder
	sb.WriteString("The student's uploaded study materials contain nothing relevant to the following question, ")
	sb.WriteString("so answer from general knowledge instead.\n\n")
	if personalization != "" {
		sb.WriteString(personalization)
		sb.WriteString("\n\n")
	}
	fmt.Fprintf(&sb, "Question: %s\n\n", question)
	sb.WriteString("Begin by noting that this answer comes from general knowledge rather than their uploaded documents, ")
	sb.WriteString("then give a clear, concise answer.")
	return sb.String()
}

func buildQuizPrompt(numQuestions int, questionType, context string) string {
	return fmt.Sprintf(`Generate %d %s questions based on the following study material.

Study Material:
%s

Generate questions that test understanding, not just memorization. For multiple choice questions, provide 4 options and indicate the correct answer.

Format your response as JSON with this structure:
{
  "questions": [
    {
      "question": "Question text",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correct_answer": 0,
      "explanation": "Why this answer is correct"
    }
  ]
}`, numQuestions, questionType, context)
}

func buildFlashcardPrompt(numCards int, context string) string {
	return fmt.Sprintf(`Create %d flashcards from the following study material. Each flashcard should have:
- A clear question on the front
- A concise answer on the back
- A difficulty level (easy, medium, hard)
- An importance score (0.0 to 1.0)

Study Material:
%s

Format as JSON:
{
  "cards": [
    {
      "front": "Question",
      "back": "Answer",
      "difficulty": "medium",
      "importance": 0.8
    }
  ]
}`, numCards, context)
}
