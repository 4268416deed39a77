package service

import (
	"math"
	"strings"
	"unicode/utf8"

	"medquiz/internal/domain"
)

const (
	// WrittenMatchRatio is the share of expected-answer words a written
	// answer must contain to count as correct.
	WrittenMatchRatio = 0.5

	// FeedbackHistoryLimit caps how many past attempts feed the improving rule.
	FeedbackHistoryLimit = 10

	shortExpectedRunes = 3
	minMatchWordRunes  = 2
)

const (
	feedbackExcellent = "Excellent! You've mastered this material. Keep revising to stay sharp."
	feedbackWellDone  = "Well done! You're on the right track. Review the questions you missed to strengthen weak areas."
	feedbackGood      = "Good effort. Focus on the explanations below for the questions you got wrong—you'll do even better next time."
	feedbackKeepGoing = "Keep going! Use the 'Learn' sections below to understand each topic, then try 'Continue Quiz' for more practice."
	feedbackImproving = "You're improving compared to your last attempts. Review the wrong answers and try again."
	feedbackDontGive  = "Don't give up! Study the explanations for each wrong answer—understanding beats memorization."
)

// GradeResult is a scored batch.
type GradeResult struct {
	Answers []domain.GradedAnswer
	Score   int
	Total   int
}

// Grade scores questions against the parallel responses. Missing responses
// count as unanswered. Grading is pure.
func Grade(batch domain.QuestionBatch, responses []domain.Response) GradeResult {
	result := GradeResult{
		Answers: make([]domain.GradedAnswer, 0, len(batch.Questions)),
		Total:   len(batch.Questions),
	}

	for i, q := range batch.Questions {
		var resp domain.Response
		if i < len(responses) {
			resp = responses[i]
		}

		var answer domain.GradedAnswer
		switch q := q.(type) {
		case *domain.MultipleChoiceQuestion:
			selected := -1
			if resp.SelectedIndex != nil {
				selected = *resp.SelectedIndex
			}
			answer = domain.GradedAnswer{
				Question:        q.Prompt,
				Options:         append([]string(nil), q.Options[:]...),
				CorrectIndex:    q.CorrectIndex,
				UserAnswerIndex: selected,
				Correct:         resp.SelectedIndex != nil && selected == q.CorrectIndex,
				Explanation:     q.Explanation,
			}
		case *domain.WrittenQuestion:
			answer = domain.GradedAnswer{
				Question:          q.Prompt,
				Options:           []string{},
				CorrectIndex:      -1,
				UserAnswerIndex:   -1,
				Correct:           MatchWrittenAnswer(resp.WrittenAnswer, q.ExpectedAnswer),
				Explanation:       q.Explanation,
				ExpectedAnswer:    q.ExpectedAnswer,
				UserWrittenAnswer: resp.WrittenAnswer,
			}
		}

		if answer.Correct {
			result.Score++
		}
		result.Answers = append(result.Answers, answer)
	}
	return result
}

// MatchWrittenAnswer compares a free-text answer with the expected phrase.
// Very short expected answers need a substring hit; longer ones need at least
// WrittenMatchRatio of their words (longer than two characters) to appear in
// the answer, and never fewer than one.
func MatchWrittenAnswer(userAnswer, expected string) bool {
	u := normalizeAnswer(userAnswer)
	e := normalizeAnswer(expected)
	if u == "" {
		return false
	}
	if u == e {
		return true
	}
	if utf8.RuneCountInString(e) <= shortExpectedRunes {
		return strings.Contains(u, e)
	}

	var words []string
	for _, w := range strings.Split(e, " ") {
		if utf8.RuneCountInString(w) > minMatchWordRunes {
			words = append(words, w)
		}
	}
	matched := 0
	for _, w := range words {
		if strings.Contains(u, w) {
			matched++
		}
	}
	required := int(math.Ceil(float64(len(words)) * WrittenMatchRatio))
	if required < 1 {
		required = 1
	}
	return matched >= required
}

func normalizeAnswer(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// FeedbackMessage picks the message shown after grading. history is the
// user's previous attempts, newest first; only the first ten are considered.
func FeedbackMessage(score, total int, history []domain.AttemptSummary) string {
	pct := domain.RoundedPercentage(float64(score), float64(total))
	switch {
	case pct >= 90:
		return feedbackExcellent
	case pct >= 75:
		return feedbackWellDone
	case pct >= 60:
		return feedbackGood
	case pct >= 40:
		return feedbackKeepGoing
	}

	if len(history) > FeedbackHistoryLimit {
		history = history[:FeedbackHistoryLimit]
	}
	if len(history) > 0 {
		sum := 0.0
		for _, h := range history {
			sum += h.Percentage()
		}
		if float64(pct) > sum/float64(len(history)) {
			return feedbackImproving
		}
	}
	return feedbackDontGive
}
