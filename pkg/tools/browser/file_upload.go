package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/voyager/pkg/tools"
)

// FileUploadTool sets the files of a file input element.
type FileUploadTool struct {
	manager *SessionManager
}

// NewFileUploadTool creates a new file-upload tool.
func NewFileUploadTool(manager *SessionManager) *FileUploadTool {
	return &FileUploadTool{manager: manager}
}

// Name returns the tool name.
func (t *FileUploadTool) Name() string {
	return "browser_file_upload"
}

// Description returns the tool description.
func (t *FileUploadTool) Description() string {
	return "Upload one or more files through a file input element. Paths must be absolute paths on the machine running the browser."
}

// Schema returns the tool's JSON schema.
func (t *FileUploadTool) Schema() map[string]interface{} {
	properties := refSchemaProperties()
	properties["session"] = sessionSchemaProperty()
	properties["paths"] = map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "string"},
		"description": "Absolute paths of the files to upload",
	}
	return tools.BaseToolSchema(properties, []string{"element", "paths"})
}

// FileUploadInput defines the input parameters for uploading files.
type FileUploadInput struct {
	XMLName  xml.Name `xml:"arguments"`
	Session  string   `xml:"session"`
	Element  string   `xml:"element"`
	Role     string   `xml:"role"`
	ElemName string   `xml:"name"`
	Selector string   `xml:"selector"`
	Index    *int     `xml:"index"`
	Paths    []string `xml:"paths>path"`
}

// Execute uploads the files.
func (t *FileUploadTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input FileUploadInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if len(input.Paths) == 0 {
		return "", nil, fmt.Errorf("at least one path is required")
	}

	key := sessionOrDefault(input.Session)
	session, err := t.manager.Resolve(key)
	if err != nil {
		return "", nil, err
	}

	ref := ElementRef{
		Role:     input.Role,
		Name:     input.ElemName,
		Selector: input.Selector,
		Index:    input.Index,
	}
	result, err := session.Upload(ref, input.Paths)
	if err != nil {
		return failure(t.manager, key, err, input.Element), nil, nil
	}
	return result.JSON(), nil, nil
}
