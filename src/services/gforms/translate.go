package gforms

import "Backend-Formgenie-007/src/services/compiler"

// --- Google Forms API wire shapes (the subset this service uses) ---

type formInfo struct {
	Title         string `json:"title,omitempty"`
	DocumentTitle string `json:"documentTitle,omitempty"`
	Description   string `json:"description,omitempty"`
}

type createFormRequest struct {
	Info formInfo `json:"info"`
}

type formResource struct {
	FormID       string   `json:"formId"`
	ResponderURI string   `json:"responderUri"`
	Info         formInfo `json:"info"`
}

type batchUpdateRequest struct {
	Requests []request `json:"requests"`
}

type request struct {
	UpdateFormInfo *updateFormInfoRequest `json:"updateFormInfo,omitempty"`
	CreateItem     *createItemRequest     `json:"createItem,omitempty"`
}

type updateFormInfoRequest struct {
	Info       formInfo `json:"info"`
	UpdateMask string   `json:"updateMask"`
}

type createItemRequest struct {
	Item     item     `json:"item"`
	Location location `json:"location"`
}

type location struct {
	Index int `json:"index"`
}

type item struct {
	Title         string        `json:"title,omitempty"`
	Description   string        `json:"description,omitempty"`
	QuestionItem  *questionItem `json:"questionItem,omitempty"`
	PageBreakItem *struct{}     `json:"pageBreakItem,omitempty"`
	TextItem      *struct{}     `json:"textItem,omitempty"`
}

type questionItem struct {
	Question question `json:"question"`
}

type question struct {
	Required       bool            `json:"required,omitempty"`
	TextQuestion   *textQuestion   `json:"textQuestion,omitempty"`
	ChoiceQuestion *choiceQuestion `json:"choiceQuestion,omitempty"`
	ScaleQuestion  *scaleQuestion  `json:"scaleQuestion,omitempty"`
	DateQuestion   *struct{}       `json:"dateQuestion,omitempty"`
	TimeQuestion   *struct{}       `json:"timeQuestion,omitempty"`
}

type textQuestion struct {
	Paragraph bool `json:"paragraph,omitempty"`
}

type choiceQuestion struct {
	Type    string         `json:"type"`
	Options []choiceOption `json:"options"`
}

type choiceOption struct {
	Value string `json:"value"`
}

type scaleQuestion struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// translate resolves the compiler batch into Forms API requests.
//
// The compiler indexes question items only; Google counts every created
// item, page breaks and headers included. So translation keeps its own
// running location counter over everything it creates, preserving the
// compiler's emission order — the API resolves each index against the form
// state as of that point in the batch.
func translate(ops []compiler.Operation) batchUpdateRequest {
	var batch batchUpdateRequest
	loc := 0

	for _, op := range ops {
		switch {
		case op.UpdateInfo != nil:
			batch.Requests = append(batch.Requests, request{
				UpdateFormInfo: &updateFormInfoRequest{
					Info: formInfo{
						Title:       op.UpdateInfo.Title,
						Description: op.UpdateInfo.Description,
					},
					UpdateMask: "title,description",
				},
			})

		case op.PageBreak != nil:
			batch.Requests = append(batch.Requests, request{
				CreateItem: &createItemRequest{
					Item:     item{PageBreakItem: &struct{}{}},
					Location: location{Index: loc},
				},
			})
			loc++

		case op.SectionHeader != nil:
			batch.Requests = append(batch.Requests, request{
				CreateItem: &createItemRequest{
					Item: item{
						Title:       op.SectionHeader.Title,
						Description: op.SectionHeader.Description,
						TextItem:    &struct{}{},
					},
					Location: location{Index: loc},
				},
			})
			loc++

		case op.CreateItem != nil:
			batch.Requests = append(batch.Requests, request{
				CreateItem: &createItemRequest{
					Item:     translateItem(op.CreateItem.Item),
					Location: location{Index: loc},
				},
			})
			loc++
		}
	}

	return batch
}

func translateItem(it compiler.Item) item {
	q := question{Required: it.Required}

	switch it.Kind {
	case compiler.KindParagraph:
		q.TextQuestion = &textQuestion{Paragraph: true}
	case compiler.KindDate:
		q.DateQuestion = &struct{}{}
	case compiler.KindTime:
		q.TimeQuestion = &struct{}{}
	case compiler.KindChoice:
		cq := &choiceQuestion{Type: string(it.Choice.Type)}
		for _, value := range it.Choice.Options {
			cq.Options = append(cq.Options, choiceOption{Value: value})
		}
		q.ChoiceQuestion = cq
	case compiler.KindScale:
		q.ScaleQuestion = &scaleQuestion{Low: it.Scale.Low, High: it.Scale.High}
	default:
		q.TextQuestion = &textQuestion{}
	}

	return item{
		Title:        it.Title,
		QuestionItem: &questionItem{Question: q},
	}
}
