// Package extract converts uploaded document bytes into normalized text.
// PDF, plain-text and DOCX uploads are parsed for real; images and other
// binaries go through a filename heuristic that either rejects the file
// or substitutes a synthetic role-themed document. The Provenance field
// records which path produced the text so downstream consumers can tell
// real extraction from the placeholder.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"resumelens-backend/internal/shared/apperror"
)

// Provenance records how a document's text was obtained.
type Provenance string

const (
	ProvenancePDF              Provenance = "pdf"
	ProvenancePlainText        Provenance = "plainText"
	ProvenanceDOCX             Provenance = "docx"
	ProvenanceImageHeuristic   Provenance = "imageHeuristic"
	ProvenanceGenericHeuristic Provenance = "genericHeuristic"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Document is the normalized extraction output. It is ephemeral: built
// per upload and never persisted as-is.
type Document struct {
	SourceName string     `json:"sourceName"`
	MimeClass  string     `json:"mimeClass"`
	PageCount  int        `json:"pageCount,omitempty"`
	Text       string     `json:"text"`
	Provenance Provenance `json:"provenance"`
}

// Extractor converts uploaded bytes into a Document.
type Extractor struct {
	// GenericDelay simulates processing time on the heuristic path for
	// word-processor and unknown binary formats.
	GenericDelay time.Duration
}

// New constructs an Extractor with the default heuristic-path delay.
func New() *Extractor {
	return &Extractor{GenericDelay: 1500 * time.Millisecond}
}

// Extract converts data into normalized text based on the declared mime
// type. An empty extraction result is always an error, never forwarded.
func (e *Extractor) Extract(ctx context.Context, data []byte, mimeType, fileName string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	if len(data) == 0 {
		return Document{}, apperror.Extraction("empty document", nil)
	}

	doc, err := e.dispatch(ctx, data, normalizeMime(mimeType), fileName)
	if err != nil {
		return Document{}, err
	}
	if strings.TrimSpace(doc.Text) == "" {
		return Document{}, apperror.Extraction("no text could be extracted from "+fileName, nil)
	}
	return doc, nil
}

func (e *Extractor) dispatch(ctx context.Context, data []byte, mimeType, fileName string) (Document, error) {
	switch {
	case mimeType == mimePDF:
		return extractPDF(data, fileName)
	case mimeType == "text/plain":
		return extractPlainText(data, fileName)
	case mimeType == mimeDOCX:
		doc, err := extractDOCX(data, fileName)
		if err == nil {
			return doc, nil
		}
		// Unparseable DOCX falls back to the filename heuristic rather
		// than failing outright, matching the generic binary path.
		return e.extractGeneric(ctx, fileName)
	case strings.HasPrefix(mimeType, "image/"):
		return extractImage(data, fileName)
	default:
		return e.extractGeneric(ctx, fileName)
	}
}

func extractPDF(data []byte, fileName string) (doc Document, err error) {
	// The pdf reader panics on some malformed cross-reference tables.
	defer func() {
		if rec := recover(); rec != nil {
			err = apperror.Extraction(fmt.Sprintf("failed to extract text from PDF %s", fileName), fmt.Errorf("%v", rec))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Document{}, apperror.Extraction(fmt.Sprintf("failed to read PDF %s", fileName), err)
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		content := page.Content()
		items := make([]string, 0, len(content.Text))
		for _, item := range content.Text {
			items = append(items, item.S)
		}
		pages = append(pages, strings.Join(items, " "))
	}

	return Document{
		SourceName: fileName,
		MimeClass:  "pdf",
		PageCount:  numPages,
		Text:       FormatPDF(fileName, pages),
		Provenance: ProvenancePDF,
	}, nil
}

// FormatPDF renders per-page text in the pipeline's PDF layout: a header
// naming the document, then one block per page.
func FormatPDF(fileName string, pages []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[PDF DOCUMENT: %s - %d pages]\n\n", fileName, len(pages))
	for i, pageText := range pages {
		fmt.Fprintf(&b, "--- Page %d ---\n%s\n\n", i+1, pageText)
	}
	return b.String()
}

func extractPlainText(data []byte, fileName string) (Document, error) {
	if !utf8.Valid(data) {
		return Document{}, apperror.Extraction(fmt.Sprintf("file %s is not valid UTF-8 text", fileName), nil)
	}
	return Document{
		SourceName: fileName,
		MimeClass:  "text",
		Text:       string(data),
		Provenance: ProvenancePlainText,
	}, nil
}

func extractDOCX(data []byte, fileName string) (Document, error) {
	reader, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Document{}, apperror.Extraction(fmt.Sprintf("failed to parse DOCX %s", fileName), err)
	}
	defer reader.Close()

	text := stripDocxXML(reader.Editable().GetContent())
	if strings.TrimSpace(text) == "" {
		return Document{}, apperror.Extraction(fmt.Sprintf("no text in DOCX %s", fileName), nil)
	}
	return Document{
		SourceName: fileName,
		MimeClass:  "docx",
		Text:       text,
		Provenance: ProvenanceDOCX,
	}, nil
}

func extractImage(data []byte, fileName string) (Document, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Document{}, apperror.Extraction(fmt.Sprintf("failed to load image %s", fileName), err)
	}

	tag := fmt.Sprintf("[Image Analysis: %s - %dx%dpx]", fileName, cfg.Width, cfg.Height)

	if !isResumeFilename(fileName) {
		return Document{
			SourceName: fileName,
			MimeClass:  "image",
			Text:       tag + "\n\n" + imageNotResumeMessage,
			Provenance: ProvenanceImageHeuristic,
		}, nil
	}

	// No real OCR happens here; a synthetic role-themed document stands
	// in for the image content and is tagged as such.
	return Document{
		SourceName: fileName,
		MimeClass:  "image",
		Text:       tag + "\n\n" + syntheticResume(fileName),
		Provenance: ProvenanceImageHeuristic,
	}, nil
}

func (e *Extractor) extractGeneric(ctx context.Context, fileName string) (Document, error) {
	if e.GenericDelay > 0 {
		select {
		case <-time.After(e.GenericDelay):
		case <-ctx.Done():
			return Document{}, ctx.Err()
		}
	}

	if !isResumeFilename(fileName) {
		return Document{
			SourceName: fileName,
			MimeClass:  "binary",
			Text:       fmt.Sprintf("The uploaded document %q does not appear to be a resume. Please upload a resume document for analysis.", fileName),
			Provenance: ProvenanceGenericHeuristic,
		}, nil
	}

	return Document{
		SourceName: fileName,
		MimeClass:  "binary",
		Text:       syntheticResume(fileName),
		Provenance: ProvenanceGenericHeuristic,
	}, nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>`)
	docxTag          = regexp.MustCompile(`<[^>]+>`)
)

// stripDocxXML flattens document.xml markup into plain text, one line
// per paragraph.
func stripDocxXML(content string) string {
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = docxTag.ReplaceAllString(content, "")
	content = strings.ReplaceAll(content, "&amp;", "&")
	content = strings.ReplaceAll(content, "&lt;", "<")
	content = strings.ReplaceAll(content, "&gt;", ">")
	content = strings.ReplaceAll(content, "&quot;", `"`)
	content = strings.ReplaceAll(content, "&apos;", "'")
	return strings.TrimSpace(content)
}

func normalizeMime(mimeType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
}
