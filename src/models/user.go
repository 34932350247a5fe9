package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/oauth2"
)

// DailyGenerationLimit จำนวนครั้งที่ user สร้างฟอร์มได้ต่อวัน
const DailyGenerationLimit = 5

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password,omitempty" json:"-"` // ✅ รับจาก frontend ได้ แต่ไม่ส่งกลับ
	Name     string             `bson:"name,omitempty" json:"name"`
	Role     string             `bson:"role" json:"role"`

	// GoogleToken is the Forms-scoped OAuth credential captured at the
	// Google callback. Nil until the user has connected their account.
	GoogleToken *oauth2.Token `bson:"googleToken,omitempty" json:"-"`

	// FinalizedForms is the append-only publish log. Entries are never
	// mutated or removed by this service.
	FinalizedForms []FinalizedForm `bson:"finalizedForms,omitempty" json:"finalizedForms,omitempty"`
}

// --- FinalizedForm ---
// One successful finalize = one entry, snapshotting the schema that was
// published together with the external identifiers.
type FinalizedForm struct {
	Schema               StorageSchema `bson:"schema" json:"schema"`
	ExternalFormID       string        `bson:"externalFormId" json:"externalFormId"`
	ExternalResponderURI string        `bson:"externalResponderUri" json:"externalResponderUri"`
	FinalizedAt          time.Time     `bson:"finalizedAt" json:"finalizedAt"`
}

// --- QuotaCounter ---
// Per-user daily generation counter. Date is the calendar day (YYYY-MM-DD);
// a stale date means the counter resets to zero for the current day.
type QuotaCounter struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
	Count  int                `bson:"count" json:"count"`
	Date   string             `bson:"date" json:"date"`
}
