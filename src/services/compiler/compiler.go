package compiler

import (
	"Backend-Formgenie-007/src/models"
	"Backend-Formgenie-007/src/services/schemas"
)

const defaultScaleHigh = 5

// Compile turns a generation-time schema into the ordered operation batch
// the forms gateway applies. Compilation is total over well-formed input:
// every field type has a mapping (with a plain-text default), so the only
// possible failure is the schema failing structural validation up front.
//
// The leading info update is emitted once, first, and has no index. When
// sections are present, each section after the first is preceded by a page
// break; every section gets a header carrying its title and description.
// Question indices come from a single running counter over the whole
// schema, never reset at section boundaries.
func Compile(schema *models.GenerationSchema) ([]Operation, error) {
	if err := schemas.Validate(schema); err != nil {
		return nil, err
	}

	var ops []Operation
	ops = append(ops, Operation{UpdateInfo: &UpdateInfoOp{
		Title:       schema.Title,
		Description: schema.Description,
	}})

	index := 0
	if len(schema.Sections) > 0 {
		for i, sec := range schema.Sections {
			if i > 0 {
				ops = append(ops, Operation{PageBreak: &PageBreakOp{}})
			}
			ops = append(ops, Operation{SectionHeader: &SectionHeaderOp{
				Title:       sec.Title,
				Description: sec.Description,
			}})
			for j := range sec.Fields {
				ops = append(ops, Operation{CreateItem: &CreateItemOp{
					Index: index,
					Item:  compileField(&sec.Fields[j]),
				}})
				index++
			}
		}
		return ops, nil
	}

	for j := range schema.Fields {
		ops = append(ops, Operation{CreateItem: &CreateItemOp{
			Index: index,
			Item:  compileField(&schema.Fields[j]),
		}})
		index++
	}
	return ops, nil
}

// compileField maps one abstract field to a provider-native item. The switch
// must stay exhaustive over models.FieldType; the default branch catches
// anything new so compilation can never fail mid-batch.
func compileField(field *models.Field) Item {
	item := Item{Title: field.Label, Required: field.Required}

	switch field.Type {
	case models.FieldTextarea:
		item.Kind = KindParagraph
	case models.FieldDate:
		item.Kind = KindDate
	case models.FieldTime:
		item.Kind = KindTime
	case models.FieldCheckbox:
		// Single yes-option checkbox; the provider rejects choice questions
		// without options.
		item.Kind = KindChoice
		item.Choice = &ChoiceConfig{Type: ChoiceCheckbox, Options: []string{"Yes"}}
	case models.FieldRadio:
		item.Kind = KindChoice
		item.Choice = &ChoiceConfig{Type: ChoiceRadio, Options: choiceValues(field.Options)}
	case models.FieldSelect, models.FieldDropdown:
		item.Kind = KindChoice
		item.Choice = &ChoiceConfig{Type: ChoiceDropdown, Options: choiceValues(field.Options)}
	case models.FieldRating:
		high := field.Scale
		if high <= 0 {
			high = defaultScaleHigh
		}
		item.Kind = KindScale
		item.Scale = &ScaleConfig{Low: 1, High: high}
	default:
		// text, email, number, tel, url — and any future type — publish as
		// a plain text question.
		item.Kind = KindText
	}

	return item
}

func choiceValues(options []models.FieldOption) []string {
	if len(options) == 0 {
		return []string{"Option 1"}
	}
	values := make([]string, 0, len(options))
	for _, opt := range options {
		values = append(values, opt.Display())
	}
	return values
}
