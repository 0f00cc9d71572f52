package notes

// CreateNoteRequest is the POST /notes body.
type CreateNoteRequest struct {
	ItemID  string `json:"itemId"`
	Content string `json:"content"`
	User    string `json:"user"`
}
