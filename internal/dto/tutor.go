package dto

// TutorRequest is a student's doubt for the AI tutor
// @Description Question for the AI tutor, optionally with the notes being revised
type TutorRequest struct {
	Question string `json:"question"`
	Notes    string `json:"notes,omitempty"`
}

// TutorResponse carries the tutor's explanation
// @Description Tutor answer and the backend that produced it
type TutorResponse struct {
	Answer string `json:"answer"`
	Source string `json:"source"` // provider name or "template"
}
