package dto

// GenerateNotesRequest represents a study notes request
// @Description Request body for generating study notes on a topic
type GenerateNotesRequest struct {
	Topic    string `json:"topic"`
	Provider string `json:"provider"` // provider name, "auto" or empty
}

// NotesResponse represents generated study notes
// @Description Generated study notes in markdown
type NotesResponse struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Source  string `json:"source"`
}
