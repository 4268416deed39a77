package validation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"medquiz/internal/domain"
	"medquiz/internal/dto"
)

const (
	MaxNoteTextRunes = 200000
	MaxTopicRunes    = 200
	MaxHistoryLimit  = 50
	MaxQuestionRunes = 2000
)

var (
	validULID = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

	// KnownProviders are the values accepted for a notes request's provider.
	KnownProviders = []string{"auto", "openai", "gemini", "mistral", "groq", "anthropic", "ollama"}
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateQuizRequest checks sizes only. Missing input and unknown
// difficulty or style values are handled by the quiz service.
func (v *Validator) ValidateGenerateQuizRequest(req *dto.GenerateQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if n := utf8.RuneCountInString(req.NoteText); n > MaxNoteTextRunes {
		errors = append(errors, domain.NewOutOfRangeError("noteText", n, 0, MaxNoteTextRunes))
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(req.Topic)); n > MaxTopicRunes {
		errors = append(errors, domain.NewOutOfRangeError("topic", n, 0, MaxTopicRunes))
	}

	return errors
}

// ValidateGenerateNotesRequest validates the notes request
func (v *Validator) ValidateGenerateNotesRequest(req *dto.GenerateNotesRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		errors = append(errors, domain.NewMissingFieldError("topic"))
	} else if n := utf8.RuneCountInString(topic); n > MaxTopicRunes {
		errors = append(errors, domain.NewOutOfRangeError("topic", n, 1, MaxTopicRunes))
	}

	if p := strings.ToLower(strings.TrimSpace(req.Provider)); p != "" && !isKnownProvider(p) {
		errors = append(errors, domain.NewInvalidFormatError("provider", req.Provider))
	}

	return errors
}

// ValidateTutorRequest requires a question and bounds both fields.
func (v *Validator) ValidateTutorRequest(req *dto.TutorRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	question := strings.TrimSpace(req.Question)
	if question == "" {
		errors = append(errors, domain.NewMissingFieldError("question"))
	} else if n := utf8.RuneCountInString(question); n > MaxQuestionRunes {
		errors = append(errors, domain.NewOutOfRangeError("question", n, 1, MaxQuestionRunes))
	}
	if n := utf8.RuneCountInString(req.Notes); n > MaxNoteTextRunes {
		errors = append(errors, domain.NewOutOfRangeError("notes", n, 0, MaxNoteTextRunes))
	}

	return errors
}

// ValidateHistoryLimit parses the limit query value. An empty value yields 0,
// which the attempt service replaces with its default.
func (v *Validator) ValidateHistoryLimit(raw string) (int, domain.ValidationErrors) {
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError("limit", raw)}
	}
	if limit < 1 || limit > MaxHistoryLimit {
		return 0, domain.ValidationErrors{domain.NewOutOfRangeError("limit", limit, 1, MaxHistoryLimit)}
	}
	return limit, nil
}

// ValidateResultID validates an anonymous result identifier
func (v *Validator) ValidateResultID(resultID string) domain.ValidationErrors {
	if strings.TrimSpace(resultID) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("id")}
	}
	if !isValidULID(resultID) {
		return domain.ValidationErrors{domain.NewInvalidFormatError("id", resultID)}
	}
	return nil
}

// isValidULID checks for 26 characters of Crockford base32
func isValidULID(s string) bool {
	return validULID.MatchString(s)
}

func isKnownProvider(p string) bool {
	for _, known := range KnownProviders {
		if p == known {
			return true
		}
	}
	return false
}
