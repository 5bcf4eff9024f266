package generator

import (
	"context"

	"github.com/shouni/go-gemini-client/gemini"
	"google.golang.org/genai"
)

// --- Mocks ---

type mockTextModel struct {
	text       string
	err        error
	lastPrompt string
	lastModel  string
	calls      int
}

func (m *mockTextModel) GenerateContent(ctx context.Context, model string, prompt string) (*gemini.Response, error) {
	m.calls++
	m.lastPrompt = prompt
	m.lastModel = model
	if m.err != nil {
		return nil, m.err
	}
	return textOnlyResponse(m.text), nil
}

type mockImageModel struct {
	resp      *gemini.Response
	err       error
	lastParts []*genai.Part
	lastOpts  gemini.GenerateOptions
	calls     int
}

func (m *mockImageModel) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	m.calls++
	m.lastParts = parts
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func imageResponse(mimeType string, data []byte) *gemini.Response {
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{
					Parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}},
				},
			}},
		},
	}
}

func textOnlyResponse(text string) *gemini.Response {
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{
					Parts: []*genai.Part{{Text: text}},
				},
			}},
		},
	}
}
