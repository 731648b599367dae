package docgen

// PrepareResponse carries the populated letter HTML for admin editing.
type PrepareResponse struct {
	HTML string `json:"html"`
}

// GenerateDraftRequest carries the (possibly admin-edited) HTML to render.
type GenerateDraftRequest struct {
	HTML string `json:"html" validate:"required"`
}

// DraftResponse returns the hosted draft location.
type DraftResponse struct {
	DraftDocumentURL string `json:"draft_document_url"`
}

// SendResponse returns the final letter location after handoff.
type SendResponse struct {
	FinalDocumentURL string `json:"final_document_url"`
}
