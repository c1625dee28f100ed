package lead

// LeadResponse is the body returned for an accepted submission
type LeadResponse struct {
	Message string `json:"message"`
	PdfURL  string `json:"pdfUrl,omitempty"`
}
