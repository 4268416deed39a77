package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"medquiz/internal/domain"
)

const (
	templateMCQCap      = 3
	templateWrittenCap  = 5
	minSentenceRunes    = 20
	blankMarker         = "_____"
	promptQuoteRunes    = 80
	explanationRunes    = 120
	writtenKeywordRunes = 3
	mcqKeywordRunes     = 4
	keywordPosition     = 2
	snippetFollowWords  = 2
)

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// TemplateQuestions builds a quiz straight from the note text without any
// provider. It is deterministic and always returns at least one question.
func TemplateQuestions(noteText string, style domain.QuestionStyle) []domain.Question {
	sentences := templateSentences(noteText)

	if style == domain.StyleWritten {
		if len(sentences) == 0 {
			return []domain.Question{&domain.WrittenQuestion{
				Prompt:         "Summarize the key points of your notes in your own words.",
				ExpectedAnswer: "key points",
				Explanation:    "Add more detailed notes to get questions built from your material.",
			}}
		}
		out := make([]domain.Question, 0, templateWrittenCap)
		for _, s := range sentences {
			if len(out) == templateWrittenCap {
				break
			}
			out = append(out, writtenFromSentence(s))
		}
		return out
	}

	if len(sentences) == 0 {
		return []domain.Question{&domain.MultipleChoiceQuestion{
			Prompt:       "Your note is too short to build a quiz. Add more content and try again.",
			Options:      placeholderOptions(),
			CorrectIndex: 0,
			Explanation:  "Add at least one full sentence to your notes.",
		}}
	}
	out := make([]domain.Question, 0, templateMCQCap)
	for _, s := range sentences {
		if len(out) == templateMCQCap {
			break
		}
		out = append(out, mcqFromSentence(s))
	}
	return out
}

func templateSentences(noteText string) []string {
	parts := sentenceSplitRe.Split(noteText, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if utf8.RuneCountInString(p) > minSentenceRunes {
			out = append(out, p)
		}
	}
	return out
}

func writtenFromSentence(s string) *domain.WrittenQuestion {
	return &domain.WrittenQuestion{
		Prompt:         fmt.Sprintf("Explain: \"%s...\"", TruncateRunes(s, promptQuoteRunes)),
		ExpectedAnswer: writtenKeyPhrase(s),
		Explanation:    TruncateRunes(s, explanationRunes),
	}
}

// writtenKeyPhrase picks the keyword among words longer than three characters
// and appends the words that follow it in the sentence.
func writtenKeyPhrase(s string) string {
	tokens := strings.Fields(s)
	idx := pickKeyword(tokens, writtenKeywordRunes)
	if idx < 0 {
		return strings.Join(tokens[:min(len(tokens), snippetFollowWords+1)], " ")
	}
	phrase := []string{cleanWord(tokens[idx])}
	for _, t := range tokens[idx+1 : min(len(tokens), idx+1+snippetFollowWords)] {
		if w := cleanWord(t); w != "" {
			phrase = append(phrase, w)
		}
	}
	return strings.Join(phrase, " ")
}

func mcqFromSentence(s string) *domain.MultipleChoiceQuestion {
	tokens := strings.Fields(s)
	idx := pickKeyword(tokens, mcqKeywordRunes)
	if idx < 0 {
		opts := placeholderOptions()
		return &domain.MultipleChoiceQuestion{
			Prompt:       s,
			Options:      opts,
			CorrectIndex: 0,
			Explanation:  fmt.Sprintf("The answer is \"%s\".", opts[0]),
		}
	}

	word := cleanWord(tokens[idx])
	tokens[idx] = strings.Replace(tokens[idx], word, blankMarker, 1)
	return &domain.MultipleChoiceQuestion{
		Prompt:       strings.Join(tokens, " "),
		Options:      [domain.MCQOptionCount]string{word, "Option B", "Option C", "Option D"},
		CorrectIndex: 0,
		Explanation:  fmt.Sprintf("The missing word is \"%s\".", word),
	}
}

// pickKeyword returns the token index of the candidate at position
// min(2, n-1) among words longer than minRunes, or -1 when there is none.
func pickKeyword(tokens []string, minRunes int) int {
	var candidates []int
	for i, t := range tokens {
		if utf8.RuneCountInString(cleanWord(t)) > minRunes {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return -1
	}
	return candidates[min(keywordPosition, len(candidates)-1)]
}

func cleanWord(token string) string {
	return strings.TrimFunc(token, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func placeholderOptions() [domain.MCQOptionCount]string {
	var opts [domain.MCQOptionCount]string
	for i := range opts {
		opts[i] = fmt.Sprintf("Option %c", 'A'+i)
	}
	return opts
}
