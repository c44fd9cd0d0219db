package advisor

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

// Advisor turns a summary into natural-language advice.
type Advisor interface {
	Generate(ctx context.Context, summary Summary) (Advice, error)
}

// Gemini generates advice through the Google GenAI API. The response
// schema pins the model to the {analysis, tips} contract; ParseAdvice
// still verifies the shape since the schema is a request, not a
// guarantee.
type Gemini struct {
	apiKey string
	model  string
}

func NewGemini(apiKey, model string) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{apiKey: apiKey, model: model}
}

func (g *Gemini) Generate(ctx context.Context, summary Summary) (Advice, error) {
	if g.apiKey == "" {
		return Advice{}, ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      g.apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return Advice{}, fmt.Errorf("%w: create genai client: %v", ErrRequestFailed, err)
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"analysis": {Type: genai.TypeString},
				"tips":     {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			},
			Required: []string{"analysis", "tips"},
		},
	}
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: Prompt(summary)}},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return Advice{}, fmt.Errorf("%w: generate content: %v", ErrRequestFailed, err)
	}

	text := resp.Text()
	if text == "" {
		return Advice{}, fmt.Errorf("%w: empty response from model", ErrRequestFailed)
	}
	return ParseAdvice([]byte(text))
}
