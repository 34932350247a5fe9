package compiler

// QuestionKind is the provider-native question category an item compiles to.
type QuestionKind string

const (
	KindText      QuestionKind = "TEXT"
	KindParagraph QuestionKind = "PARAGRAPH_TEXT"
	KindDate      QuestionKind = "DATE"
	KindTime      QuestionKind = "TIME"
	KindChoice    QuestionKind = "CHOICE"
	KindScale     QuestionKind = "SCALE"
)

// ChoiceType mirrors the provider's choice question subtypes.
type ChoiceType string

const (
	ChoiceCheckbox ChoiceType = "CHECKBOX"
	ChoiceRadio    ChoiceType = "RADIO"
	ChoiceDropdown ChoiceType = "DROP_DOWN"
)

// Operation is a tagged union: exactly one member is non-nil. The gateway
// applies operations in slice order, so the batch must never be reordered.
type Operation struct {
	UpdateInfo    *UpdateInfoOp    `json:"updateInfo,omitempty"`
	PageBreak     *PageBreakOp     `json:"pageBreak,omitempty"`
	SectionHeader *SectionHeaderOp `json:"sectionHeader,omitempty"`
	CreateItem    *CreateItemOp    `json:"createItem,omitempty"`
}

// UpdateInfoOp sets the form title/description. It carries no index and
// never advances the item counter.
type UpdateInfoOp struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PageBreakOp marks a page boundary before the next inserted item.
type PageBreakOp struct{}

// SectionHeaderOp labels the page that follows a break.
type SectionHeaderOp struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// CreateItemOp inserts one question item. Index is the question's final
// position in the published form; indices are assigned by one running
// counter across the whole batch and are strictly increasing.
type CreateItemOp struct {
	Index int  `json:"index"`
	Item  Item `json:"item"`
}

type Item struct {
	Title    string        `json:"title"`
	Required bool          `json:"required,omitempty"`
	Kind     QuestionKind  `json:"kind"`
	Choice   *ChoiceConfig `json:"choice,omitempty"`
	Scale    *ScaleConfig  `json:"scale,omitempty"`
}

type ChoiceConfig struct {
	Type    ChoiceType `json:"type"`
	Options []string   `json:"options"`
}

type ScaleConfig struct {
	Low  int `json:"low"`
	High int `json:"high"`
}
