package gateway

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/navigatingnc/bid-management-system/internal/model"
)

// DocumentUpload is one multipart upload: the file body, the owning
// project, and an optional explicit document type. The backend classifies
// by filename when Type is empty.
type DocumentUpload struct {
	ProjectID int
	Filename  string
	Type      string
	Content   io.Reader
}

// DocumentUpdate carries the mutable metadata fields.
type DocumentUpdate struct {
	DocumentType     *string `json:"document_type,omitempty"`
	OriginalFilename *string `json:"original_filename,omitempty"`
}

// Download is a streamed document body. Callers own Body and must close it.
type Download struct {
	Body        io.ReadCloser
	ContentType string
	Filename    string
	Size        int64
}

func (c *Client) ListDocuments(ctx context.Context, projectID *int) ([]model.Document, error) {
	query := url.Values{}
	if projectID != nil {
		query.Set("project_id", strconv.Itoa(*projectID))
	}

	var documents []model.Document
	if err := c.getJSON(ctx, "/documents/", query, &documents); err != nil {
		return nil, err
	}
	return documents, nil
}

func (c *Client) GetDocument(ctx context.Context, documentID int) (*model.Document, error) {
	var document model.Document
	if err := c.getJSON(ctx, fmt.Sprintf("/documents/%d", documentID), nil, &document); err != nil {
		return nil, err
	}
	return &document, nil
}

// UploadDocument posts one file as multipart form data. Multi-file uploads
// are one call per file, each independent.
func (c *Client) UploadDocument(ctx context.Context, upload DocumentUpload) (*model.Document, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := func() error {
			if err := mw.WriteField("project_id", strconv.Itoa(upload.ProjectID)); err != nil {
				return err
			}
			if upload.Type != "" {
				if err := mw.WriteField("document_type", upload.Type); err != nil {
					return err
				}
			}
			part, err := mw.CreateFormFile("file", upload.Filename)
			if err != nil {
				return err
			}
			if _, err := io.Copy(part, upload.Content); err != nil {
				return err
			}
			return mw.Close()
		}()
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/documents/", nil), pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var document model.Document
	if err := decodeJSON(resp.Body, &document); err != nil {
		return nil, err
	}
	return &document, nil
}

func (c *Client) UpdateDocument(ctx context.Context, documentID int, update DocumentUpdate) (*model.Document, error) {
	var document model.Document
	if err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/documents/%d", documentID), update, &document); err != nil {
		return nil, err
	}
	return &document, nil
}

func (c *Client) DeleteDocument(ctx context.Context, documentID int) error {
	return c.delete(ctx, fmt.Sprintf("/documents/%d", documentID))
}

// DownloadDocument streams the stored file. The console proxies this to the
// browser, which handles PDF rendering natively.
func (c *Client) DownloadDocument(ctx context.Context, documentID int) (*Download, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(fmt.Sprintf("/documents/%d/download", documentID), nil), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}

	filename := ""
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		filename = params["filename"]
	}

	return &Download{
		Body:        resp.Body,
		ContentType: resp.Header.Get("Content-Type"),
		Filename:    filename,
		Size:        resp.ContentLength,
	}, nil
}

func (c *Client) ExtractText(ctx context.Context, documentID int) (*model.ExtractedText, error) {
	var extracted model.ExtractedText
	if err := c.getJSON(ctx, fmt.Sprintf("/proposals/document/%d/extract", documentID), nil, &extracted); err != nil {
		return nil, err
	}
	return &extracted, nil
}

func (c *Client) ExtractSection(ctx context.Context, documentID int, sectionName string) (*model.ExtractedSection, error) {
	query := url.Values{}
	query.Set("section", sectionName)

	var section model.ExtractedSection
	if err := c.getJSON(ctx, fmt.Sprintf("/proposals/document/%d/section", documentID), query, &section); err != nil {
		return nil, err
	}
	return &section, nil
}

func (c *Client) GetDocumentMetadata(ctx context.Context, documentID int) (*model.DocumentMetadata, error) {
	var metadata model.DocumentMetadata
	if err := c.getJSON(ctx, fmt.Sprintf("/proposals/document/%d/metadata", documentID), nil, &metadata); err != nil {
		return nil, err
	}
	return &metadata, nil
}
