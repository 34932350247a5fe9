package prompt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"Backend-Formgenie-007/src/models"
	"Backend-Formgenie-007/src/services/schemas"
)

const defaultModel = "gpt-4o-mini"

const systemPrompt = `You are a form designer. Given a description of a form, reply with a single JSON object and nothing else. The object has keys "title", "description" and "sections". Each section has "title", "description" and "fields". Each field has "label", "type" and optional "required", "options", "scale", "min", "max", "minLength", "maxLength". Allowed types: text, textarea, email, number, tel, date, time, url, checkbox, radio, select, rating. radio/select/dropdown fields must include a non-empty "options" array of strings.`

// Engine turns natural-language prompts into generation-time schemas.
type Engine struct {
	client *Client
	model  string
}

// NewEngine builds an engine from OPENAI_API_KEY / OPENAI_MODEL.
func NewEngine() *Engine {
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = defaultModel
	}
	return &Engine{
		client: NewClient(os.Getenv("OPENAI_API_KEY")),
		model:  model,
	}
}

// NewEngineWithClient is used by tests and alternate deployments.
func NewEngineWithClient(client *Client, model string) *Engine {
	return &Engine{client: client, model: model}
}

// Generate asks the model for a fresh schema from a user prompt.
func (e *Engine) Generate(ctx context.Context, userPrompt string) (*models.GenerationSchema, error) {
	return e.complete(ctx, []ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: "Create a form for: " + userPrompt},
	})
}

// Revise asks the model to amend a prior schema following an instruction.
func (e *Engine) Revise(ctx context.Context, prior *models.GenerationSchema, userPrompt string) (*models.GenerationSchema, error) {
	priorJSON, err := json.Marshal(prior)
	if err != nil {
		return nil, fmt.Errorf("failed to encode prior schema: %w", err)
	}
	return e.complete(ctx, []ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf("Here is the current form schema:\n%s\n\nRevise it as follows: %s\nReply with the complete revised schema.", priorJSON, userPrompt)},
	})
}

func (e *Engine) complete(ctx context.Context, messages []ChatMessage) (*models.GenerationSchema, error) {
	resp, err := e.client.CreateChatCompletion(ctx, &ChatCompletionRequest{
		Model:          e.model,
		Messages:       messages,
		Temperature:    0.2,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		// Provider failures propagate as generation failures; never fall
		// back to an empty schema.
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("prompt engine returned no choices")
	}
	return ParseSchema(resp.Choices[0].Message.Content)
}

// ParseSchema extracts and validates the JSON schema from a model reply,
// tolerating markdown code fences around the object.
func ParseSchema(content string) (*models.GenerationSchema, error) {
	raw := extractJSON(content)
	if raw == "" {
		return nil, fmt.Errorf("prompt engine reply contains no JSON object")
	}
	var schema models.GenerationSchema
	if err := json.Unmarshal([]byte(raw), &schema); err != nil {
		return nil, fmt.Errorf("prompt engine returned invalid JSON: %w", err)
	}
	if err := schemas.Validate(&schema); err != nil {
		return nil, err
	}
	return &schema, nil
}

func extractJSON(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return ""
	}
	return content[start : end+1]
}
