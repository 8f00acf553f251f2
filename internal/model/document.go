package model

// Document mirrors the backend document resource. Immutable after upload
// except for document_type and original_filename, which the metadata update
// endpoint may change.
type Document struct {
	ID               int    `json:"id"`
	ProjectID        int    `json:"project_id"`
	Filename         string `json:"filename"`
	OriginalFilename string `json:"original_filename"`
	FileSize         int64  `json:"file_size"`
	MimeType         string `json:"mime_type"`
	DocumentType     string `json:"document_type"`
	CreatedAt        string `json:"created_at"`
}

// DisplayName prefers the name the file was uploaded under.
func (d Document) DisplayName() string {
	if d.OriginalFilename != "" {
		return d.OriginalFilename
	}
	return d.Filename
}

// DocumentMetadata is returned by the metadata endpoint for the viewer
// sidebar. The backend merges the document record itself with the
// extraction info, so the document fields ride along flattened.
type DocumentMetadata struct {
	Document
	PageCount  int    `json:"page_count"`
	TextSample string `json:"text_sample"`
}

// ExtractedText is the full-text extraction payload.
type ExtractedText struct {
	DocumentID int    `json:"document_id"`
	Text       string `json:"text"`
}

// SectionAnalysis carries the quantities and materials the backend spotted
// in an extracted specification section.
type SectionAnalysis struct {
	Quantities []string `json:"quantities"`
	Materials  []string `json:"materials"`
}

// ExtractedSection is the section extraction payload.
type ExtractedSection struct {
	DocumentID  int              `json:"document_id"`
	SectionName string           `json:"section_name"`
	Text        string           `json:"text"`
	Analysis    *SectionAnalysis `json:"analysis"`
}
