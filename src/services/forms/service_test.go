package forms

import (
	"context"
	"errors"
	"testing"
	"time"

	"Backend-Formgenie-007/src/models"
	"Backend-Formgenie-007/src/services/compiler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/oauth2"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) InsertForm(ctx context.Context, form *models.Form) error {
	return m.Called(ctx, form).Error(0)
}

func (m *mockStore) FindForm(ctx context.Context, id primitive.ObjectID) (*models.Form, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Form), args.Error(1)
}

func (m *mockStore) ListForms(ctx context.Context, userID primitive.ObjectID) ([]models.Form, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Form), args.Error(1)
}

func (m *mockStore) AppendRevision(ctx context.Context, id primitive.ObjectID, schema models.StorageSchema, entry models.RevisionEntry) (bool, error) {
	args := m.Called(ctx, id, schema, entry)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) IncrementQuota(ctx context.Context, userID primitive.ObjectID, day string, limit int) (bool, error) {
	args := m.Called(ctx, userID, day, limit)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) DecrementQuota(ctx context.Context, userID primitive.ObjectID, day string) error {
	return m.Called(ctx, userID, day).Error(0)
}

func (m *mockStore) QuotaCount(ctx context.Context, userID primitive.ObjectID, day string) (int, error) {
	args := m.Called(ctx, userID, day)
	return args.Int(0), args.Error(1)
}

func (m *mockStore) FindUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockStore) AppendFinalized(ctx context.Context, userID primitive.ObjectID, entry models.FinalizedForm) error {
	return m.Called(ctx, userID, entry).Error(0)
}

type mockEngine struct{ mock.Mock }

func (m *mockEngine) Generate(ctx context.Context, prompt string) (*models.GenerationSchema, error) {
	args := m.Called(ctx, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GenerationSchema), args.Error(1)
}

func (m *mockEngine) Revise(ctx context.Context, prior *models.GenerationSchema, prompt string) (*models.GenerationSchema, error) {
	args := m.Called(ctx, prior, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GenerationSchema), args.Error(1)
}

type mockGateway struct{ mock.Mock }

func (m *mockGateway) CreateForm(ctx context.Context, token *oauth2.Token, title, documentTitle string) (string, error) {
	args := m.Called(ctx, token, title, documentTitle)
	return args.String(0), args.Error(1)
}

func (m *mockGateway) ApplyBatch(ctx context.Context, token *oauth2.Token, formID string, ops []compiler.Operation) error {
	return m.Called(ctx, token, formID, ops).Error(0)
}

func (m *mockGateway) GetPublicLink(ctx context.Context, token *oauth2.Token, formID string) (string, error) {
	args := m.Called(ctx, token, formID)
	return args.String(0), args.Error(1)
}

func newTestService(store *mockStore, engine *mockEngine, gateway *mockGateway) *Service {
	svc := NewService(store, engine, gateway)
	svc.now = func() time.Time {
		return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func simpleSchema() *models.GenerationSchema {
	return &models.GenerationSchema{
		Title: "Feedback",
		Sections: []models.Section{
			{Title: "Main", Fields: []models.Field{
				{Label: "Tell us about your experience", Type: models.FieldTextarea},
			}},
		},
	}
}

func TestGenerateHappyPath(t *testing.T) {
	store := new(mockStore)
	engine := new(mockEngine)
	svc := newTestService(store, engine, new(mockGateway))
	userID := primitive.NewObjectID()
	ctx := context.Background()

	store.On("IncrementQuota", ctx, userID, "2025-06-15", models.DailyGenerationLimit).Return(true, nil)
	engine.On("Generate", ctx, "customer feedback").Return(simpleSchema(), nil)
	store.On("InsertForm", ctx, mock.AnythingOfType("*models.Form")).Return(nil)

	form, err := svc.Generate(ctx, userID, "customer feedback")
	assert.NoError(t, err)
	assert.Equal(t, userID, form.UserID)
	assert.Equal(t, "customer feedback", form.Prompt)
	assert.Len(t, form.History, 1)
	assert.Empty(t, form.RevisionHistory)

	stored := form.History[0]
	assert.Len(t, stored.Questions, 1)
	assert.Equal(t, models.QuestionShortAnswer, stored.Questions[0].Type)
	assert.Equal(t, "Tell us about your experience", stored.Questions[0].Label)
	assert.NotEmpty(t, stored.Questions[0].ID)

	store.AssertExpectations(t)
	engine.AssertExpectations(t)
}

func TestGenerateQuotaExceededSkipsEngine(t *testing.T) {
	store := new(mockStore)
	engine := new(mockEngine)
	svc := newTestService(store, engine, new(mockGateway))
	userID := primitive.NewObjectID()
	ctx := context.Background()

	store.On("IncrementQuota", ctx, userID, "2025-06-15", models.DailyGenerationLimit).Return(false, nil)

	_, err := svc.Generate(ctx, userID, "anything")
	assert.ErrorIs(t, err, models.ErrQuotaExceeded)

	engine.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "InsertForm", mock.Anything, mock.Anything)
}

func TestGenerateRefundsQuotaOnEngineFailure(t *testing.T) {
	store := new(mockStore)
	engine := new(mockEngine)
	svc := newTestService(store, engine, new(mockGateway))
	userID := primitive.NewObjectID()
	ctx := context.Background()

	boom := errors.New("model unavailable")
	store.On("IncrementQuota", ctx, userID, "2025-06-15", models.DailyGenerationLimit).Return(true, nil)
	engine.On("Generate", ctx, "x").Return(nil, boom)
	store.On("DecrementQuota", ctx, userID, "2025-06-15").Return(nil)

	_, err := svc.Generate(ctx, userID, "x")
	assert.ErrorIs(t, err, boom)

	store.AssertCalled(t, "DecrementQuota", ctx, userID, "2025-06-15")
	store.AssertNotCalled(t, "InsertForm", mock.Anything, mock.Anything)
}

func TestReviseAppendsToHistory(t *testing.T) {
	store := new(mockStore)
	engine := new(mockEngine)
	svc := newTestService(store, engine, new(mockGateway))
	formID := primitive.NewObjectID()
	ctx := context.Background()

	existing := &models.Form{
		ID:      formID,
		History: []models.StorageSchema{{Title: "Feedback", Questions: []models.Question{{ID: "q1", Type: models.QuestionShortAnswer, Label: "Name"}}}},
	}
	store.On("FindForm", ctx, formID).Return(existing, nil)
	engine.On("Revise", ctx, mock.AnythingOfType("*models.GenerationSchema"), "add email").Return(simpleSchema(), nil)
	store.On("AppendRevision", ctx, formID, mock.AnythingOfType("models.StorageSchema"), mock.AnythingOfType("models.RevisionEntry")).Return(true, nil)

	form, err := svc.Revise(ctx, formID, "add email")
	assert.NoError(t, err)
	assert.Len(t, form.History, 2)
	assert.Len(t, form.RevisionHistory, 1)
	assert.Equal(t, "add email", form.RevisionHistory[0].Prompt)
}

func TestReviseFourthAttemptFails(t *testing.T) {
	store := new(mockStore)
	engine := new(mockEngine)
	svc := newTestService(store, engine, new(mockGateway))
	formID := primitive.NewObjectID()
	ctx := context.Background()

	full := &models.Form{
		ID:      formID,
		History: []models.StorageSchema{{Title: "T"}, {Title: "T"}, {Title: "T"}, {Title: "T"}},
		RevisionHistory: []models.RevisionEntry{
			{Prompt: "one"}, {Prompt: "two"}, {Prompt: "three"},
		},
	}
	store.On("FindForm", ctx, formID).Return(full, nil)

	_, err := svc.Revise(ctx, formID, "four")
	assert.ErrorIs(t, err, models.ErrRevisionLimitExceeded)

	engine.AssertNotCalled(t, "Revise", mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "AppendRevision", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReviseLosesRaceOnCap(t *testing.T) {
	store := new(mockStore)
	engine := new(mockEngine)
	svc := newTestService(store, engine, new(mockGateway))
	formID := primitive.NewObjectID()
	ctx := context.Background()

	existing := &models.Form{
		ID:              formID,
		History:         []models.StorageSchema{{Title: "T", Questions: []models.Question{{ID: "q1", Type: models.QuestionShortAnswer, Label: "Name"}}}},
		RevisionHistory: []models.RevisionEntry{{Prompt: "one"}, {Prompt: "two"}},
	}
	store.On("FindForm", ctx, formID).Return(existing, nil)
	engine.On("Revise", ctx, mock.Anything, "late").Return(simpleSchema(), nil)
	// Another request filled the last slot between the read and the append.
	store.On("AppendRevision", ctx, formID, mock.Anything, mock.Anything).Return(false, nil)

	_, err := svc.Revise(ctx, formID, "late")
	assert.ErrorIs(t, err, models.ErrRevisionLimitExceeded)
}

func TestFinalizeHappyPath(t *testing.T) {
	store := new(mockStore)
	gateway := new(mockGateway)
	svc := newTestService(store, new(mockEngine), gateway)
	formID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	ctx := context.Background()
	token := &oauth2.Token{AccessToken: "ya29.test"}

	latest := models.StorageSchema{
		Title: "Feedback",
		Questions: []models.Question{
			{ID: "q1", Type: models.QuestionShortAnswer, Label: "Name"},
		},
	}
	store.On("FindForm", ctx, formID).Return(&models.Form{ID: formID, History: []models.StorageSchema{latest}}, nil)
	store.On("FindUser", ctx, userID).Return(&models.User{ID: userID, GoogleToken: token}, nil)
	gateway.On("CreateForm", ctx, token, "Feedback", "Feedback").Return("ext-form-1", nil)
	gateway.On("ApplyBatch", ctx, token, "ext-form-1", mock.AnythingOfType("[]compiler.Operation")).Return(nil)
	gateway.On("GetPublicLink", ctx, token, "ext-form-1").Return("https://docs.google.com/forms/d/e/abc/viewform", nil)
	store.On("AppendFinalized", ctx, userID, mock.AnythingOfType("models.FinalizedForm")).Return(nil)

	entry, err := svc.Finalize(ctx, formID, userID)
	assert.NoError(t, err)
	assert.Equal(t, "ext-form-1", entry.ExternalFormID)
	assert.Equal(t, "https://docs.google.com/forms/d/e/abc/viewform", entry.ExternalResponderURI)
	assert.Equal(t, latest, entry.Schema)

	store.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestFinalizeWithoutGoogleToken(t *testing.T) {
	store := new(mockStore)
	gateway := new(mockGateway)
	svc := newTestService(store, new(mockEngine), gateway)
	formID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	ctx := context.Background()

	store.On("FindForm", ctx, formID).Return(&models.Form{ID: formID, History: []models.StorageSchema{{Title: "T", Questions: []models.Question{{ID: "q1", Type: models.QuestionShortAnswer, Label: "x"}}}}}, nil)
	store.On("FindUser", ctx, userID).Return(&models.User{ID: userID}, nil)

	_, err := svc.Finalize(ctx, formID, userID)
	assert.ErrorIs(t, err, models.ErrGoogleAuthRequired)

	gateway.AssertNotCalled(t, "CreateForm", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFinalizeWritesNothingOnGatewayFailure(t *testing.T) {
	store := new(mockStore)
	gateway := new(mockGateway)
	svc := newTestService(store, new(mockEngine), gateway)
	formID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	ctx := context.Background()
	token := &oauth2.Token{AccessToken: "ya29.test"}

	store.On("FindForm", ctx, formID).Return(&models.Form{ID: formID, History: []models.StorageSchema{{Title: "T", Questions: []models.Question{{ID: "q1", Type: models.QuestionShortAnswer, Label: "x"}}}}}, nil)
	store.On("FindUser", ctx, userID).Return(&models.User{ID: userID, GoogleToken: token}, nil)
	gateway.On("CreateForm", ctx, token, "T", "T").Return("ext-1", nil)
	gateway.On("ApplyBatch", ctx, token, "ext-1", mock.Anything).Return(models.ErrFormsAPI)

	_, err := svc.Finalize(ctx, formID, userID)
	assert.ErrorIs(t, err, models.ErrFormsAPI)

	store.AssertNotCalled(t, "AppendFinalized", mock.Anything, mock.Anything, mock.Anything)
}

func TestFinalizeFormNotFound(t *testing.T) {
	store := new(mockStore)
	svc := newTestService(store, new(mockEngine), new(mockGateway))
	formID := primitive.NewObjectID()
	ctx := context.Background()

	store.On("FindForm", ctx, formID).Return(nil, models.ErrFormNotFound)

	_, err := svc.Finalize(ctx, formID, primitive.NewObjectID())
	assert.ErrorIs(t, err, models.ErrFormNotFound)
}

func TestQuotaReportsUsage(t *testing.T) {
	store := new(mockStore)
	svc := newTestService(store, new(mockEngine), new(mockGateway))
	userID := primitive.NewObjectID()
	ctx := context.Background()

	store.On("QuotaCount", ctx, userID, "2025-06-15").Return(3, nil)

	used, limit, err := svc.Quota(ctx, userID)
	assert.NoError(t, err)
	assert.Equal(t, 3, used)
	assert.Equal(t, models.DailyGenerationLimit, limit)
}
