package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxRevisions จำกัดจำนวนรอบการแก้ไข schema ต่อฟอร์ม
const MaxRevisions = 3

// --- Form ---
// A form is created once on successful generation. After that only History
// and RevisionHistory grow; nothing is ever rewritten or removed.
type Form struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
	Prompt string             `bson:"prompt" json:"prompt"`

	// History[0] is the initial generation; each revision appends one schema.
	History []StorageSchema `bson:"history" json:"history"`
	// RevisionHistory runs parallel to History[1:], so
	// len(RevisionHistory) == len(History) - 1 always holds.
	RevisionHistory []RevisionEntry `bson:"revisionHistory" json:"revisionHistory"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// --- RevisionEntry ---
type RevisionEntry struct {
	Prompt    string    `bson:"prompt" json:"prompt"`
	RevisedAt time.Time `bson:"revisedAt" json:"revisedAt"`
}

// LatestSchema returns the newest entry in History.
func (f *Form) LatestSchema() StorageSchema {
	return f.History[len(f.History)-1]
}
