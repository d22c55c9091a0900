package parsing

import (
	"embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/HRC-Manu/bewerbungs-core/internal/types"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var schemaFiles = map[types.DocumentType]string{
	types.TypeResume:      "schemas/resume.json",
	types.TypeJobPosting:  "schemas/job_posting.json",
	types.TypeCoverLetter: "schemas/cover_letter.json",
}

// ValidateDocument checks jsonContent against the embedded schema for the
// given document type. A nil return means the payload conforms.
func ValidateDocument(docType types.DocumentType, jsonContent string) error {
	file, ok := schemaFiles[docType]
	if !ok {
		return fmt.Errorf("no schema registered for document type %s", docType)
	}

	schemaContent, err := schemaFS.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read embedded schema %s: %w", file, err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &ParseError{Message: "schema validation could not run", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	first := result.Errors()[0]
	field := first.Field()
	if field == "" {
		field = "(root)"
	}
	return &ValidationError{Field: field, Message: first.Description()}
}
