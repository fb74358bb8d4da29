package provider

import (
	"duet/model"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
)

// ConvertToAnthropicMessages converts duet messages to Anthropic message params.
// The system directive is not part of the list; Anthropic takes it separately.
func ConvertToAnthropicMessages(messages []model.Message) []anthropic.MessageParam {
	result := make([]anthropic.MessageParam, 0, len(messages))
	for _, msg := range messages {
		block := anthropic.NewTextBlock(msg.Content)
		switch msg.Role {
		case model.RoleAssistant:
			result = append(result, anthropic.NewAssistantMessage(block))
		default:
			result = append(result, anthropic.NewUserMessage(block))
		}
	}
	return result
}

// ConvertToOpenAIMessages converts duet messages to OpenAI chat messages with
// the system directive prepended. An empty system directive is omitted.
func ConvertToOpenAIMessages(system string, messages []model.Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)+1)
	if system != "" {
		result = append(result, openai.SystemMessage(system))
	}

	for _, msg := range messages {
		switch msg.Role {
		case model.RoleAssistant:
			result = append(result, openai.AssistantMessage(msg.Content))
		default:
			result = append(result, openai.UserMessage(msg.Content))
		}
	}
	return result
}

// ConvertToOllamaMessages converts duet messages to Ollama api.Message with
// the system directive prepended. An empty system directive is omitted.
func ConvertToOllamaMessages(system string, messages []model.Message) []api.Message {
	result := make([]api.Message, 0, len(messages)+1)
	if system != "" {
		result = append(result, api.Message{Role: "system", Content: system})
	}

	for _, msg := range messages {
		result = append(result, api.Message{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return result
}
