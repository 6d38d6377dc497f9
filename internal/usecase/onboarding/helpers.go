package onboarding

import "github.com/pantrypal/onboarding-backend/internal/entity"

// BuildQAPairs joins answers to question text by questionId, one pair per answer
// in submission order. Unknown ids fall back to the answer's own question text.
func BuildQAPairs(questions []entity.Question, answers []entity.Answer) []entity.QAPair {
	byID := make(map[string]string, len(questions))
	for _, q := range questions {
		if _, seen := byID[q.QuestionID]; !seen {
			byID[q.QuestionID] = q.Question
		}
	}

	pairs := make([]entity.QAPair, 0, len(answers))
	for _, a := range answers {
		text, ok := byID[a.QuestionID]
		if !ok {
			text = a.Question
		}
		pairs = append(pairs, entity.QAPair{
			QuestionID: a.QuestionID,
			Question:   text,
			Answer:     a.Answer,
		})
	}

	return pairs
}

func toAnswers(inputs []entity.AnswerInput) []entity.Answer {
	answers := make([]entity.Answer, 0, len(inputs))
	for _, in := range inputs {
		answers = append(answers, entity.Answer{
			QuestionID: in.QuestionID,
			Question:   in.Question,
			Answer:     deref(in.Answer),
		})
	}
	return answers
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
