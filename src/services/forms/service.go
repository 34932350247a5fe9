package forms

import (
	"context"
	"time"

	"Backend-Formgenie-007/src/models"
	"Backend-Formgenie-007/src/services/compiler"
	"Backend-Formgenie-007/src/services/schemas"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/oauth2"
)

// PromptEngine produces and revises generation-time schemas from natural
// language. Failures propagate as-is; an empty schema is never substituted.
type PromptEngine interface {
	Generate(ctx context.Context, prompt string) (*models.GenerationSchema, error)
	Revise(ctx context.Context, prior *models.GenerationSchema, prompt string) (*models.GenerationSchema, error)
}

// Gateway publishes compiled batches to the external forms provider using a
// caller-supplied credential.
type Gateway interface {
	CreateForm(ctx context.Context, token *oauth2.Token, title, documentTitle string) (string, error)
	ApplyBatch(ctx context.Context, token *oauth2.Token, formID string, ops []compiler.Operation) error
	GetPublicLink(ctx context.Context, token *oauth2.Token, formID string) (string, error)
}

// Service owns the generate → revise (≤3) → finalize lifecycle, the daily
// generation quota and the per-form revision cap. All limit checks go
// through conditional updates in the store so concurrent requests cannot
// sneak past them.
type Service struct {
	store   Store
	engine  PromptEngine
	gateway Gateway
	now     func() time.Time
}

func NewService(store Store, engine PromptEngine, gateway Gateway) *Service {
	return &Service{store: store, engine: engine, gateway: gateway, now: time.Now}
}

// Generate creates a new form from a prompt, consuming one quota slot.
// The slot is claimed atomically up front and handed back if generation or
// persistence fails, so a failed call never costs the user a slot.
func (s *Service) Generate(ctx context.Context, userID primitive.ObjectID, prompt string) (*models.Form, error) {
	day := s.today()

	ok, err := s.store.IncrementQuota(ctx, userID, day, models.DailyGenerationLimit)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.ErrQuotaExceeded
	}

	schema, err := s.engine.Generate(ctx, prompt)
	if err != nil {
		_ = s.store.DecrementQuota(ctx, userID, day)
		return nil, err
	}

	now := s.now()
	form := &models.Form{
		UserID:          userID,
		Prompt:          prompt,
		History:         []models.StorageSchema{schemas.ToStorage(schema)},
		RevisionHistory: []models.RevisionEntry{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.InsertForm(ctx, form); err != nil {
		_ = s.store.DecrementQuota(ctx, userID, day)
		return nil, err
	}
	return form, nil
}

// Revise feeds the form's latest schema back to the prompt engine with a
// revision instruction and appends the result to the history. The fourth
// attempt fails with ErrRevisionLimitExceeded and leaves the form untouched.
func (s *Service) Revise(ctx context.Context, formID primitive.ObjectID, prompt string) (*models.Form, error) {
	form, err := s.store.FindForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	if len(form.RevisionHistory) >= models.MaxRevisions {
		return nil, models.ErrRevisionLimitExceeded
	}

	latest := form.LatestSchema()
	prior := schemas.ToGeneration(&latest)
	revised, err := s.engine.Revise(ctx, &prior, prompt)
	if err != nil {
		return nil, err
	}

	storage := schemas.ToStorage(revised)
	entry := models.RevisionEntry{Prompt: prompt, RevisedAt: s.now()}

	ok, err := s.store.AppendRevision(ctx, formID, storage, entry)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost a race: the cap filled up between the read and the append.
		return nil, models.ErrRevisionLimitExceeded
	}

	form.History = append(form.History, storage)
	form.RevisionHistory = append(form.RevisionHistory, entry)
	form.UpdatedAt = entry.RevisedAt
	return form, nil
}

// Finalize compiles the latest schema and publishes it as a Google form.
// Nothing internal is written until every external call succeeds, so a
// failed finalize is always safe to retry. Finalize stays repeatable by
// design: each success publishes an independent external form and appends
// its own log entry.
func (s *Service) Finalize(ctx context.Context, formID, userID primitive.ObjectID) (*models.FinalizedForm, error) {
	form, err := s.store.FindForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	user, err := s.store.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.GoogleToken == nil {
		return nil, models.ErrGoogleAuthRequired
	}

	latest := form.LatestSchema()
	generation := schemas.ToGeneration(&latest)
	ops, err := compiler.Compile(&generation)
	if err != nil {
		return nil, err
	}

	externalID, err := s.gateway.CreateForm(ctx, user.GoogleToken, latest.Title, latest.Title)
	if err != nil {
		return nil, err
	}
	if err := s.gateway.ApplyBatch(ctx, user.GoogleToken, externalID, ops); err != nil {
		return nil, err
	}
	link, err := s.gateway.GetPublicLink(ctx, user.GoogleToken, externalID)
	if err != nil {
		return nil, err
	}

	entry := models.FinalizedForm{
		Schema:               latest,
		ExternalFormID:       externalID,
		ExternalResponderURI: link,
		FinalizedAt:          s.now(),
	}
	if err := s.store.AppendFinalized(ctx, userID, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetForm returns one form record.
func (s *Service) GetForm(ctx context.Context, formID primitive.ObjectID) (*models.Form, error) {
	return s.store.FindForm(ctx, formID)
}

// UserForms lists a user's drafts, newest first.
func (s *Service) UserForms(ctx context.Context, userID primitive.ObjectID) ([]models.Form, error) {
	return s.store.ListForms(ctx, userID)
}

// FinalizedForms returns the user's append-only publish log.
func (s *Service) FinalizedForms(ctx context.Context, userID primitive.ObjectID) ([]models.FinalizedForm, error) {
	user, err := s.store.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.FinalizedForms, nil
}

// Quota reports how many generations the user has used today.
func (s *Service) Quota(ctx context.Context, userID primitive.ObjectID) (used, limit int, err error) {
	used, err = s.store.QuotaCount(ctx, userID, s.today())
	return used, models.DailyGenerationLimit, err
}

func (s *Service) today() string {
	return s.now().Format("2006-01-02")
}
