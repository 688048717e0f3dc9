package gemini

import (
	"context"
	"errors"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type IGemini interface {
	GenerateReply(ctx context.Context, systemPrompt string, history []Message, userMessage string) (string, error)
}

// Message is one prior turn. Role follows the Gemini convention: "user" or
// "model".
type Message struct {
	Role    string
	Content string
}

type geminiClient struct {
	apiKey    string
	modelName string
	client    *genai.Client
}

func NewGeminiClient() (IGemini, error) {

	apiKey := os.Getenv("GEMINI_API_KEY")

	modelName := os.Getenv("GEMINI_MODEL_NAME")
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &geminiClient{
		apiKey:    apiKey,
		modelName: modelName,
		client:    client,
	}, nil
}

func (g *geminiClient) GenerateReply(ctx context.Context, systemPrompt string, history []Message, userMessage string) (string, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	chat := model.StartChat()
	for _, msg := range history {
		chat.History = append(chat.History, &genai.Content{
			Role:  msg.Role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	res, err := chat.SendMessage(ctx, genai.Text(userMessage))
	if err != nil {
		return "", err
	}

	if len(res.Candidates) == 0 || len(res.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no response from Gemini API")
	}

	text, ok := res.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", errors.New("unexpected response format from Gemini API")
	}

	return string(text), nil
}

func (g *geminiClient) Close() {
	if g.client != nil {
		g.client.Close()
	}
}
