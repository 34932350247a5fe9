package schemas

import (
	"fmt"

	"Backend-Formgenie-007/src/models"
)

// choiceTypes are the field types that must carry at least one option.
var choiceTypes = map[models.FieldType]bool{
	models.FieldRadio:    true,
	models.FieldSelect:   true,
	models.FieldDropdown: true,
}

// Validate checks a generation-time schema for structural well-formedness.
// When Sections is non-empty it is canonical and the legacy flat Fields list
// is ignored, exactly as conversion and compilation ignore it.
func Validate(schema *models.GenerationSchema) error {
	if schema == nil {
		return &models.SchemaValidationError{Path: "schema", Reason: "schema is missing"}
	}
	if schema.Title == "" {
		return &models.SchemaValidationError{Path: "title", Reason: "title must not be empty"}
	}

	if len(schema.Sections) > 0 {
		for i, sec := range schema.Sections {
			for j := range sec.Fields {
				path := fmt.Sprintf("sections[%d].fields[%d]", i, j)
				if err := validateField(&sec.Fields[j], path); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for i := range schema.Fields {
		if err := validateField(&schema.Fields[i], fmt.Sprintf("fields[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func validateField(field *models.Field, path string) error {
	if field.Label == "" {
		return &models.SchemaValidationError{Path: path + ".label", Reason: "label must not be empty"}
	}
	if !models.KnownFieldTypes[field.Type] {
		return &models.SchemaValidationError{
			Path:   path + ".type",
			Reason: fmt.Sprintf("unrecognized field type %q", field.Type),
		}
	}
	if choiceTypes[field.Type] && len(field.Options) == 0 {
		return &models.SchemaValidationError{
			Path:   path + ".options",
			Reason: fmt.Sprintf("options are required for %s fields", field.Type),
		}
	}
	return nil
}

// ValidateStorage checks a persisted schema before it is compiled or re-fed
// to the prompt engine.
func ValidateStorage(schema *models.StorageSchema) error {
	if schema == nil {
		return &models.SchemaValidationError{Path: "schema", Reason: "schema is missing"}
	}
	if schema.Title == "" {
		return &models.SchemaValidationError{Path: "title", Reason: "title must not be empty"}
	}
	for i, q := range schema.Questions {
		path := fmt.Sprintf("questions[%d]", i)
		if q.ID == "" {
			return &models.SchemaValidationError{Path: path + ".id", Reason: "question id must not be empty"}
		}
		if q.Label == "" {
			return &models.SchemaValidationError{Path: path + ".label", Reason: "label must not be empty"}
		}
		switch q.Type {
		case models.QuestionShortAnswer:
		case models.QuestionDropdown:
			if len(q.Options) == 0 {
				return &models.SchemaValidationError{
					Path:   path + ".options",
					Reason: "options are required for dropdown questions",
				}
			}
		default:
			return &models.SchemaValidationError{
				Path:   path + ".type",
				Reason: fmt.Sprintf("unrecognized question type %q", q.Type),
			}
		}
	}
	return nil
}
