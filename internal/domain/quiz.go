package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Difficulty selects the instruction sent to providers. Unknown values are
// coerced to DifficultyNormal by ParseDifficulty.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

var difficultyInstructions = map[Difficulty]string{
	DifficultyEasy:   "Easy level: basic recall and definitions.",
	DifficultyNormal: "Normal level: standard MBBS/Nursing questions.",
	DifficultyHard:   "Hard level: clinical application based questions.",
	DifficultyExpert: "Expert level: advanced clinical reasoning questions.",
}

func ParseDifficulty(s string) Difficulty {
	d := Difficulty(strings.TrimSpace(s))
	if _, ok := difficultyInstructions[d]; ok {
		return d
	}
	return DifficultyNormal
}

// Instruction returns the sentence describing this level to a provider.
func (d Difficulty) Instruction() string {
	if inst, ok := difficultyInstructions[d]; ok {
		return inst
	}
	return difficultyInstructions[DifficultyNormal]
}

type QuestionStyle string

const (
	StyleMCQ     QuestionStyle = "mcq"
	StyleWritten QuestionStyle = "written"
)

// ParseQuestionStyle maps "written" to StyleWritten and anything else to StyleMCQ.
func ParseQuestionStyle(s string) QuestionStyle {
	if strings.TrimSpace(s) == string(StyleWritten) {
		return StyleWritten
	}
	return StyleMCQ
}

// MCQOptionCount is the number of options every multiple-choice question carries.
const MCQOptionCount = 4

// Question is either a *MultipleChoiceQuestion or a *WrittenQuestion.
type Question interface {
	Style() QuestionStyle
	Text() string
	isQuestion()
}

type MultipleChoiceQuestion struct {
	Prompt       string
	Options      [MCQOptionCount]string
	CorrectIndex int
	Explanation  string
}

func (q *MultipleChoiceQuestion) Style() QuestionStyle { return StyleMCQ }
func (q *MultipleChoiceQuestion) Text() string         { return q.Prompt }
func (q *MultipleChoiceQuestion) isQuestion()          {}

func (q *MultipleChoiceQuestion) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Question     string   `json:"question"`
		Options      []string `json:"options"`
		CorrectIndex int      `json:"correctIndex"`
		Explanation  string   `json:"explanation,omitempty"`
	}{q.Prompt, q.Options[:], q.CorrectIndex, q.Explanation})
}

type WrittenQuestion struct {
	Prompt         string
	ExpectedAnswer string
	Explanation    string
}

func (q *WrittenQuestion) Style() QuestionStyle { return StyleWritten }
func (q *WrittenQuestion) Text() string         { return q.Prompt }
func (q *WrittenQuestion) isQuestion()          {}

func (q *WrittenQuestion) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Question       string `json:"question"`
		ExpectedAnswer string `json:"expectedAnswer"`
		Explanation    string `json:"explanation,omitempty"`
	}{q.Prompt, q.ExpectedAnswer, q.Explanation})
}

// QuestionBatch is one generated quiz. Every question matches Style.
type QuestionBatch struct {
	Style     QuestionStyle
	Questions []Question
}

// wireQuestion accepts the loose shapes produced by providers and clients.
type wireQuestion struct {
	Question       json.RawMessage `json:"question"`
	Options        []interface{}   `json:"options"`
	CorrectIndex   json.RawMessage `json:"correctIndex"`
	ExpectedAnswer json.RawMessage `json:"expectedAnswer"`
	Explanation    json.RawMessage `json:"explanation"`
}

// DecodeQuestion reads one question object in the requested style. Fields are
// trusted as given; multiple-choice options are padded or truncated to four and
// an out-of-range correctIndex falls back to 0.
func DecodeQuestion(style QuestionStyle, raw json.RawMessage) (Question, error) {
	var w wireQuestion
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode question: %w", err)
	}
	prompt := rawString(w.Question)
	explanation := rawString(w.Explanation)

	if style == StyleWritten {
		return &WrittenQuestion{
			Prompt:         prompt,
			ExpectedAnswer: rawString(w.ExpectedAnswer),
			Explanation:    explanation,
		}, nil
	}

	q := &MultipleChoiceQuestion{Prompt: prompt, Explanation: explanation}
	for i := 0; i < MCQOptionCount; i++ {
		if i < len(w.Options) && w.Options[i] != nil {
			q.Options[i] = fmt.Sprint(w.Options[i])
			continue
		}
		q.Options[i] = fmt.Sprintf("Option %c", 'A'+i)
	}
	if idx, ok := rawIndex(w.CorrectIndex); ok && idx >= 0 && idx < MCQOptionCount {
		q.CorrectIndex = idx
	}
	return q, nil
}

// DecodeQuestions reads a JSON array of question objects.
func DecodeQuestions(style QuestionStyle, raw json.RawMessage) ([]Question, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	out := make([]Question, 0, len(items))
	for i, item := range items {
		q, err := DecodeQuestion(style, item)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		out = append(out, q)
	}
	return out, nil
}

// rawIndex accepts 2, 2.0 and "2".
func rawIndex(raw json.RawMessage) (int, bool) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	f, err := n.Float64()
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// Response is one user answer. SelectedIndex is used for multiple-choice
// questions, WrittenAnswer for written ones.
type Response struct {
	SelectedIndex *int   `json:"selectedIndex,omitempty"`
	WrittenAnswer string `json:"writtenAnswer,omitempty"`
}
