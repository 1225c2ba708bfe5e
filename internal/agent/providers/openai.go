package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/vtcode/vtcode/internal/agent"
	"github.com/vtcode/vtcode/pkg/models"
	"github.com/vtcode/vtcode/pkg/vtmodels"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements the LLMProvider interface for OpenAI's API.
type OpenAIProvider struct {
	client     *openai.Client
	apiKey     string
	maxRetries int
	retryDelay time.Duration
	breaker    *StreamCircuitBreaker
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	if apiKey == "" {
		return &OpenAIProvider{
			apiKey:     "",
			maxRetries: 3,
			retryDelay: time.Second,
			breaker:    NewStreamCircuitBreaker(0, 0),
		}
	}

	return &OpenAIProvider{
		client:     openai.NewClient(apiKey),
		apiKey:     apiKey,
		maxRetries: 3,
		retryDelay: time.Second,
		breaker:    NewStreamCircuitBreaker(0, 0),
	}
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Models returns available OpenAI models.
func (p *OpenAIProvider) Models() []agent.Model {
	return []agent.Model{
		{
			ID:             "gpt-4o",
			Name:           "GPT-4o",
			ContextSize:    128000,
			SupportsVision: true,
		},
		{
			ID:             "gpt-4-turbo",
			Name:           "GPT-4 Turbo",
			ContextSize:    128000,
			SupportsVision: true,
		},
		{
			ID:             "gpt-3.5-turbo",
			Name:           "GPT-3.5 Turbo",
			ContextSize:    16385,
			SupportsVision: false,
		},
		{
			ID:             "gpt-4",
			Name:           "GPT-4",
			ContextSize:    8192,
			SupportsVision: false,
		},
	}
}

// SupportsTools returns whether OpenAI supports tool use.
func (p *OpenAIProvider) SupportsTools() bool {
	return true
}

// Complete sends a completion request and returns a streaming response.
// When the stream circuit breaker is open (DefaultStreamFailureThreshold
// consecutive stream failures within DefaultStreamCooldown), it falls back
// to a single non-streaming call instead of attempting another stream.
func (p *OpenAIProvider) Complete(ctx context.Context, req *agent.CompletionRequest) (<-chan *agent.CompletionChunk, error) {
	if p.client == nil {
		return nil, errors.New("OpenAI API key not configured")
	}

	messages, err := p.convertToOpenAIMessages(req.Messages, req.System)
	if err != nil {
		return nil, fmt.Errorf("failed to convert messages: %w", err)
	}

	chatReq := openai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: messages,
	}
	if req.MaxTokens > 0 {
		chatReq.MaxTokens = req.MaxTokens
	}
	if len(req.Tools) > 0 {
		chatReq.Tools = p.convertToOpenAITools(req.Tools)
	}

	if !p.breaker.AllowStream() {
		return p.completeNonStream(ctx, chatReq)
	}

	chatReq.Stream = true

	var stream *openai.ChatCompletionStream
	var lastErr error
	for attempt := 0; attempt < p.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(p.retryDelay * time.Duration(attempt)):
			}
		}

		stream, lastErr = p.client.CreateChatCompletionStream(ctx, chatReq)
		if lastErr == nil {
			break
		}
		if !p.isRetryableError(lastErr) {
			return nil, p.wrapError(lastErr, req.Model)
		}
	}

	if lastErr != nil {
		p.breaker.RecordFailure()
		return nil, p.wrapError(lastErr, req.Model)
	}

	chunks := make(chan *agent.CompletionChunk)
	go p.processStream(ctx, stream, chunks, req.Model)

	return chunks, nil
}

// completeNonStream drives chatReq through a single blocking call and
// replays the result as the same chunk shape a stream would have
// produced, so callers don't need to branch on how the response arrived.
func (p *OpenAIProvider) completeNonStream(ctx context.Context, chatReq openai.ChatCompletionRequest) (<-chan *agent.CompletionChunk, error) {
	chatReq.Stream = false
	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("non-stream fallback request failed: %w", err)
	}

	chunks := make(chan *agent.CompletionChunk, len(resp.Choices)+2)
	if len(resp.Choices) > 0 {
		choice := resp.Choices[0]
		if choice.Message.Content != "" {
			chunks <- &agent.CompletionChunk{Text: choice.Message.Content}
		}
		for _, tc := range choice.Message.ToolCalls {
			chunks <- &agent.CompletionChunk{ToolCall: &models.ToolCall{
				ID:    tc.ID,
				Name:  tc.Function.Name,
				Input: json.RawMessage(tc.Function.Arguments),
			}}
		}
	}
	chunks <- &agent.CompletionChunk{Done: true}
	close(chunks)
	return chunks, nil
}

// processStream decodes the OpenAI SSE stream into vtmodels.StreamEvent
// values and folds them into agent.CompletionChunk via streamEventToChunk,
// so the normalized event model is what actually drives the run-loop
// instead of staying a disconnected type. Records the outcome on the
// provider's circuit breaker so repeated transport failures eventually
// divert new requests to the non-stream fallback.
func (p *OpenAIProvider) processStream(ctx context.Context, stream *openai.ChatCompletionStream, chunks chan<- *agent.CompletionChunk, model string) {
	defer close(chunks)
	defer stream.Close()

	toolCalls := make(map[string]*models.ToolCall)

	for {
		select {
		case <-ctx.Done():
			chunks <- &agent.CompletionChunk{Error: ctx.Err(), Done: true}
			return
		default:
		}

		response, err := stream.Recv()
		if err != nil {
			if err == io.EOF {
				flushPendingToolCalls(toolCalls, chunks)
				chunks <- &agent.CompletionChunk{Done: true}
				p.breaker.RecordSuccess()
				return
			}
			chunks <- &agent.CompletionChunk{Error: p.wrapError(err, model), Done: true}
			p.breaker.RecordFailure()
			return
		}
		if len(response.Choices) == 0 {
			continue
		}
		choice := response.Choices[0]
		delta := choice.Delta

		if delta.Content != "" {
			if chunk := streamEventToChunk(vtmodels.StreamEvent{
				Kind:      vtmodels.StreamEventTextDelta,
				TextDelta: delta.Content,
			}, toolCalls); chunk != nil {
				chunks <- chunk
			}
		}

		for _, tc := range delta.ToolCalls {
			id := tc.ID
			if id == "" {
				id = fmt.Sprintf("tool_call_%d", derefIndex(tc.Index))
			}
			if _, exists := toolCalls[id]; !exists && (tc.ID != "" || tc.Function.Name != "") {
				streamEventToChunk(vtmodels.StreamEvent{
					Kind:       vtmodels.StreamEventToolCallStart,
					ToolCallID: id,
					ToolName:   tc.Function.Name,
				}, toolCalls)
			}
			if tc.Function.Arguments != "" || tc.Function.Name != "" {
				streamEventToChunk(vtmodels.StreamEvent{
					Kind:       vtmodels.StreamEventToolCallDelta,
					ToolCallID: id,
					ToolName:   tc.Function.Name,
					ArgsDelta:  tc.Function.Arguments,
				}, toolCalls)
			}
		}

		if choice.FinishReason == "tool_calls" {
			flushPendingToolCalls(toolCalls, chunks)
		}
	}
}

// derefIndex returns *i or 0 when i is nil, for OpenAI's pointer-typed
// tool-call index field.
func derefIndex(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

// convertToOpenAIMessages converts internal messages to OpenAI format.
func (p *OpenAIProvider) convertToOpenAIMessages(messages []agent.CompletionMessage, system string) ([]openai.ChatCompletionMessage, error) {
	result := make([]openai.ChatCompletionMessage, 0, len(messages)+1)

	// Add system message if provided
	if system != "" {
		result = append(result, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}

	// Convert each message
	for _, msg := range messages {
		oaiMsg := openai.ChatCompletionMessage{
			Role: msg.Role,
		}

		// Handle different message types
		switch msg.Role {
		case "user", "system":
			// Check if message has image attachments (vision support)
			if len(msg.Attachments) > 0 {
				hasImages := false
				for _, att := range msg.Attachments {
					if att.Type == "image" {
						hasImages = true
						break
					}
				}

				if hasImages {
					// Use multi-content format for vision
					contentParts := make([]openai.ChatMessagePart, 0)

					// Add text content first if present
					if msg.Content != "" {
						contentParts = append(contentParts, openai.ChatMessagePart{
							Type: openai.ChatMessagePartTypeText,
							Text: msg.Content,
						})
					}

					// Add image attachments
					for _, att := range msg.Attachments {
						if att.Type == "image" {
							contentParts = append(contentParts, openai.ChatMessagePart{
								Type: openai.ChatMessagePartTypeImageURL,
								ImageURL: &openai.ChatMessageImageURL{
									URL:    att.URL,
									Detail: openai.ImageURLDetailAuto,
								},
							})
						}
					}

					oaiMsg.MultiContent = contentParts
				} else {
					oaiMsg.Content = msg.Content
				}
			} else {
				oaiMsg.Content = msg.Content
			}

		case "assistant":
			oaiMsg.Content = msg.Content
			// Handle tool calls from assistant
			if len(msg.ToolCalls) > 0 {
				oaiMsg.ToolCalls = make([]openai.ToolCall, len(msg.ToolCalls))
				for i, tc := range msg.ToolCalls {
					oaiMsg.ToolCalls[i] = openai.ToolCall{
						ID:   tc.ID,
						Type: openai.ToolTypeFunction,
						Function: openai.FunctionCall{
							Name:      tc.Name,
							Arguments: string(tc.Input),
						},
					}
				}
			}

		case "tool":
			// Handle tool results
			if len(msg.ToolResults) > 0 {
				// OpenAI expects one message per tool result
				for _, tr := range msg.ToolResults {
					result = append(result, openai.ChatCompletionMessage{
						Role:       openai.ChatMessageRoleTool,
						Content:    tr.Content,
						ToolCallID: tr.ToolCallID,
					})
				}
				continue // Skip the append below
			}
		}

		result = append(result, oaiMsg)
	}

	return result, nil
}

// convertToOpenAITools converts internal tools to OpenAI format.
func (p *OpenAIProvider) convertToOpenAITools(tools []agent.Tool) []openai.Tool {
	result := make([]openai.Tool, len(tools))

	for i, tool := range tools {
		// Parse the schema
		var schemaMap map[string]any
		if err := json.Unmarshal(tool.Schema(), &schemaMap); err != nil {
			// Use empty schema if parsing fails
			schemaMap = map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			}
		}

		result[i] = openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        tool.Name(),
				Description: tool.Description(),
				Parameters:  schemaMap,
			},
		}
	}

	return result
}

// isRetryableError checks if an error should be retried.
func (p *OpenAIProvider) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Check for specific OpenAI API errors that are retryable
	errMsg := err.Error()

	// Rate limit errors
	if contains(errMsg, "rate limit") || contains(errMsg, "429") {
		return true
	}

	// Server errors
	if contains(errMsg, "500") || contains(errMsg, "502") || contains(errMsg, "503") || contains(errMsg, "504") {
		return true
	}

	// Timeout errors
	if contains(errMsg, "timeout") || contains(errMsg, "deadline exceeded") {
		return true
	}

	return false
}

// contains checks if a string contains a substring (case-insensitive).
func contains(s, substr string) bool {
	return len(s) >= len(substr) &&
		(s == substr || len(s) > len(substr) &&
			(findSubstring(s, substr) >= 0))
}

func findSubstring(s, substr string) int {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

// wrapError normalizes an OpenAI SDK error into a ProviderError carrying a
// FailoverReason, the shape FailoverOrchestrator inspects to decide whether
// to fail over to another provider.
func (p *OpenAIProvider) wrapError(err error, model string) error {
	if err == nil {
		return nil
	}
	if IsProviderError(err) {
		return err
	}

	providerErr := NewProviderError("openai", model, err)

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		providerErr = providerErr.WithStatus(apiErr.HTTPStatusCode).WithMessage(apiErr.Message)
		if code, ok := apiErr.Code.(string); ok && code != "" {
			providerErr = providerErr.WithCode(code)
		}
		return providerErr
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return providerErr.WithStatus(reqErr.HTTPStatusCode)
	}

	return providerErr
}
