package schemas

import (
	"Backend-Formgenie-007/src/models"

	"github.com/google/uuid"
)

// ToStorage reduces a generation-time schema to the persisted shape.
//
// The conversion is lossy on purpose: sections are flattened in order
// (section titles, descriptions and conditions are discarded), and the
// twelve field types collapse to two question types. Every question and
// option receives a fresh opaque id here — ids are never derived from
// label text, so regenerating a similar schema never reuses an id.
func ToStorage(schema *models.GenerationSchema) models.StorageSchema {
	storage := models.StorageSchema{
		Title:       schema.Title,
		Description: schema.Description,
	}

	for _, field := range schema.AllFields() {
		question := models.Question{
			ID:    uuid.NewString(),
			Label: field.Label,
		}

		switch field.Type {
		case models.FieldSelect, models.FieldRadio, models.FieldDropdown:
			question.Type = models.QuestionDropdown
			for _, opt := range field.Options {
				text := opt.Value
				if text == "" {
					text = opt.Text
				}
				if text == "" {
					text = opt.Label
				}
				question.Options = append(question.Options, models.Option{
					ID:   uuid.NewString(),
					Text: text,
				})
			}
		default:
			// Everything else, rating and checkbox included, persists as a
			// short answer; options do not survive the reduction.
			question.Type = models.QuestionShortAnswer
		}

		storage.Questions = append(storage.Questions, question)
	}

	return storage
}

// ToGeneration lifts a storage schema back toward the producer-facing shape
// so the prompt engine can revise it. This is a best-effort upgrade, not an
// inverse: multi-section structure, conditions and the richer field types
// lost by ToStorage are gone for good. The result is a single section whose
// title and description mirror the top level.
func ToGeneration(schema *models.StorageSchema) models.GenerationSchema {
	section := models.Section{
		Title:       schema.Title,
		Description: schema.Description,
	}

	for _, q := range schema.Questions {
		field := models.Field{Label: q.Label}
		if q.Type == models.QuestionDropdown {
			field.Type = models.FieldDropdown
			for _, opt := range q.Options {
				field.Options = append(field.Options, models.FieldOption{Value: opt.Text})
			}
		} else {
			field.Type = models.FieldText
		}
		section.Fields = append(section.Fields, field)
	}

	return models.GenerationSchema{
		Title:       schema.Title,
		Description: schema.Description,
		Sections:    []models.Section{section},
	}
}
