package openai

import (
	"context"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"
)

type IChatGPT interface {
	GenerateReply(ctx context.Context, systemPrompt string, history []ConversationMessage, userMessage string) (string, error)
}

type ConversationMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

type chatGPTService struct {
	client *openai.Client
	model  string
}

func NewChatGPT() IChatGPT {
	apiKey := os.Getenv("OPENAI_API_KEY")
	model := os.Getenv("OPENAI_CHAT_MODEL")

	if model == "" {
		model = openai.GPT4oMini
	}

	return &chatGPTService{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// GenerateReply produces the next assistant turn. The system prompt carries
// the client's sales persona and service catalog; history is the trimmed
// recent conversation window.
func (c *chatGPTService) GenerateReply(
	ctx context.Context,
	systemPrompt string,
	history []ConversationMessage,
	userMessage string,
) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		},
	}

	for _, msg := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: 0.7,
			MaxTokens:   300,
		},
	)

	if err != nil {
		return "", fmt.Errorf("ChatGPT API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from ChatGPT")
	}

	return resp.Choices[0].Message.Content, nil
}
