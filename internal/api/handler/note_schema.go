package handler

// createNoteRequest carries no validate tags: emptiness and length are
// checked by the note service so create and update report them alike.
type createNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// updateNoteRequest distinguishes absent fields (nil) from empty ones.
type updateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}
