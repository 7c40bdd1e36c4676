package completeness

import "github.com/jonathan/resume-engine/internal/types"

// questionTexts is the fixed field-to-question map. Questions are generated
// fresh per run and never persisted.
var questionTexts = map[string]string{
	"profile":      "What contact details should be included? (name, email, phone)",
	"summary":      "How would you describe yourself professionally in a sentence or two?",
	"experience":   "Can you describe your work experience? (role, company, duration)",
	"education":    "What is your educational background? (degree, major, institution)",
	"skills":       "What skills would you like to include?",
	"projects":     "Have you worked on any projects you'd like to mention?",
	"certificates": "Do you have any certifications?",
	"publications": "Do you have any publications to list?",
	"interests":    "What are your interests or hobbies?",
	"volunteering": "Have you done any volunteer work?",
	"references":   "Would you like to include references?",
}

// Questions maps missing field names to user-facing questions, preserving
// input order. Fields with no mapped question are skipped silently.
func Questions(missing []string) []types.Question {
	var questions []types.Question
	for _, field := range missing {
		text, ok := questionTexts[field]
		if !ok {
			continue
		}
		questions = append(questions, types.Question{Field: field, Question: text})
	}
	return questions
}
