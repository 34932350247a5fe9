package compiler

import (
	"testing"

	"Backend-Formgenie-007/src/models"
	"Backend-Formgenie-007/src/services/schemas"

	"github.com/stretchr/testify/assert"
)

func allFieldTypes() []models.Field {
	options := []models.FieldOption{{Value: "A"}, {Value: "B"}}
	return []models.Field{
		{Label: "text", Type: models.FieldText},
		{Label: "textarea", Type: models.FieldTextarea},
		{Label: "email", Type: models.FieldEmail},
		{Label: "number", Type: models.FieldNumber},
		{Label: "tel", Type: models.FieldTel},
		{Label: "date", Type: models.FieldDate},
		{Label: "time", Type: models.FieldTime},
		{Label: "url", Type: models.FieldURL},
		{Label: "checkbox", Type: models.FieldCheckbox},
		{Label: "radio", Type: models.FieldRadio, Options: options},
		{Label: "select", Type: models.FieldSelect, Options: options},
		{Label: "dropdown", Type: models.FieldDropdown, Options: options},
		{Label: "rating", Type: models.FieldRating, Scale: 7},
	}
}

func insertOps(ops []Operation) []*CreateItemOp {
	var items []*CreateItemOp
	for _, op := range ops {
		if op.CreateItem != nil {
			items = append(items, op.CreateItem)
		}
	}
	return items
}

func TestCompileTotalityPerFieldType(t *testing.T) {
	for _, field := range allFieldTypes() {
		schema := &models.GenerationSchema{
			Title:       "T",
			Description: "D",
			Sections: []models.Section{
				{Title: "S", Fields: []models.Field{field}},
			},
		}

		ops, err := Compile(schema)
		assert.NoError(t, err, "type %s", field.Type)

		// Leading info update, first, without an index.
		assert.NotNil(t, ops[0].UpdateInfo, "type %s", field.Type)

		items := insertOps(ops)
		assert.Len(t, items, 1, "type %s", field.Type)
		assert.Equal(t, 0, items[0].Index, "type %s", field.Type)
	}
}

func TestCompileIndexMonotonicityAcrossSections(t *testing.T) {
	schema := &models.GenerationSchema{
		Title: "Survey",
		Sections: []models.Section{
			{Title: "A", Fields: []models.Field{
				{Label: "a1", Type: models.FieldText},
				{Label: "a2", Type: models.FieldTextarea},
			}},
			{Title: "B", Fields: []models.Field{
				{Label: "b1", Type: models.FieldDate},
			}},
			{Title: "C", Fields: []models.Field{
				{Label: "c1", Type: models.FieldTime},
				{Label: "c2", Type: models.FieldCheckbox},
				{Label: "c3", Type: models.FieldRating},
			}},
		},
	}

	ops, err := Compile(schema)
	assert.NoError(t, err)

	items := insertOps(ops)
	assert.Len(t, items, 6)
	for i, item := range items {
		assert.Equal(t, i, item.Index, "indices run 0..N-1 regardless of section boundaries")
	}

	breaks, headers := 0, 0
	for _, op := range ops {
		if op.PageBreak != nil {
			breaks++
		}
		if op.SectionHeader != nil {
			headers++
		}
	}
	assert.Equal(t, 2, breaks, "page break before every section except the first")
	assert.Equal(t, 3, headers)
}

func TestCompileEmissionOrder(t *testing.T) {
	schema := &models.GenerationSchema{
		Title: "T",
		Sections: []models.Section{
			{Title: "First", Fields: []models.Field{{Label: "f", Type: models.FieldText}}},
			{Title: "Second", Description: "page two", Fields: []models.Field{{Label: "g", Type: models.FieldText}}},
		},
	}

	ops, err := Compile(schema)
	assert.NoError(t, err)

	// updateInfo, header, item, pageBreak, header, item
	assert.NotNil(t, ops[0].UpdateInfo)
	assert.NotNil(t, ops[1].SectionHeader)
	assert.NotNil(t, ops[2].CreateItem)
	assert.NotNil(t, ops[3].PageBreak)
	assert.NotNil(t, ops[4].SectionHeader)
	assert.NotNil(t, ops[5].CreateItem)
	assert.Equal(t, "Second", ops[4].SectionHeader.Title)
	assert.Equal(t, "page two", ops[4].SectionHeader.Description)
}

func TestCompileFlatFieldsWithoutSections(t *testing.T) {
	schema := &models.GenerationSchema{
		Title: "T",
		Fields: []models.Field{
			{Label: "one", Type: models.FieldText},
			{Label: "two", Type: models.FieldText},
		},
	}

	ops, err := Compile(schema)
	assert.NoError(t, err)

	for _, op := range ops {
		assert.Nil(t, op.PageBreak)
		assert.Nil(t, op.SectionHeader)
	}
	items := insertOps(ops)
	assert.Len(t, items, 2)
	assert.Equal(t, 0, items[0].Index)
	assert.Equal(t, 1, items[1].Index)
}

func TestCompileDropdownFromStorageSchema(t *testing.T) {
	storage := models.StorageSchema{
		Title:       "T",
		Description: "D",
		Questions: []models.Question{
			{ID: "q1", Type: models.QuestionDropdown, Label: "Color", Options: []models.Option{
				{ID: "o1", Text: "Red"},
				{ID: "o2", Text: "Blue"},
			}},
		},
	}

	generation := schemas.ToGeneration(&storage)
	ops, err := Compile(&generation)
	assert.NoError(t, err)

	items := insertOps(ops)
	assert.Len(t, items, 1)
	item := items[0].Item
	assert.Equal(t, "Color", item.Title)
	assert.Equal(t, KindChoice, item.Kind)
	assert.Equal(t, ChoiceDropdown, item.Choice.Type)
	assert.Equal(t, []string{"Red", "Blue"}, item.Choice.Options)
}

func TestCompileFieldMappings(t *testing.T) {
	checkbox := compileField(&models.Field{Label: "agree", Type: models.FieldCheckbox})
	assert.Equal(t, KindChoice, checkbox.Kind)
	assert.Equal(t, ChoiceCheckbox, checkbox.Choice.Type)
	assert.Equal(t, []string{"Yes"}, checkbox.Choice.Options)

	radio := compileField(&models.Field{Label: "pick", Type: models.FieldRadio, Options: []models.FieldOption{{Label: "via label"}}})
	assert.Equal(t, ChoiceRadio, radio.Choice.Type)
	assert.Equal(t, []string{"via label"}, radio.Choice.Options)

	rating := compileField(&models.Field{Label: "stars", Type: models.FieldRating})
	assert.Equal(t, KindScale, rating.Kind)
	assert.Equal(t, 1, rating.Scale.Low)
	assert.Equal(t, 5, rating.Scale.High, "scale defaults to 5")

	rating10 := compileField(&models.Field{Label: "stars", Type: models.FieldRating, Scale: 10})
	assert.Equal(t, 10, rating10.Scale.High)

	unknown := compileField(&models.Field{Label: "??", Type: "holographic"})
	assert.Equal(t, KindText, unknown.Kind, "unrecognized types fall back to plain text")
}

func TestChoiceValuesPlaceholder(t *testing.T) {
	assert.Equal(t, []string{"Option 1"}, choiceValues(nil), "empty options become a single placeholder")
}

func TestCompileRejectsMalformedSchema(t *testing.T) {
	_, err := Compile(&models.GenerationSchema{})
	var sve *models.SchemaValidationError
	assert.ErrorAs(t, err, &sve)
}
