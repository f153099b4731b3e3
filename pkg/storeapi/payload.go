package storeapi

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// Field is one scalar form entry. Repeated keys are legal and are how
// multi-valued selections (tags, sizes) travel.
type Field struct {
	Key   string
	Value string
}

// FilePart is one staged upload attached to the payload.
type FilePart struct {
	FieldName   string
	FileName    string
	ContentType string
	Content     []byte
}

// ProductPayload is an ordered multipart body for product create/update.
// Field order and file order are preserved exactly as appended.
type ProductPayload struct {
	Fields []Field
	Files  []FilePart
}

func (p *ProductPayload) AddField(key, value string) {
	p.Fields = append(p.Fields, Field{Key: key, Value: value})
}

func (p *ProductPayload) AddFile(fieldName, fileName, contentType string, content []byte) {
	p.Files = append(p.Files, FilePart{
		FieldName:   fieldName,
		FileName:    fileName,
		ContentType: contentType,
		Content:     content,
	})
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Encode renders the payload as a multipart/form-data body. The returned
// content type carries the boundary and must be set on the request verbatim.
func (p *ProductPayload) Encode() (io.Reader, string, error) {

	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for _, field := range p.Fields {
		if err := writer.WriteField(field.Key, field.Value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %q: %w", field.Key, err)
		}
	}

	for _, file := range p.Files {

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(file.FieldName), quoteEscaper.Replace(file.FileName)))
		header.Set("Content-Type", file.ContentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create part for %q: %w", file.FileName, err)
		}

		if _, err := part.Write(file.Content); err != nil {
			return nil, "", fmt.Errorf("failed to write file %q: %w", file.FileName, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}
