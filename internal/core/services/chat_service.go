package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"expense-management/internal/config"
	"expense-management/internal/core/domain"
	"expense-management/internal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Fixed chat replies
const (
	NotConfiguredMessage = "GenAI services are not configured. Please run deploy-with-chat.sh to deploy Azure OpenAI and enable the chat experience."
	NoResponseMessage    = "I couldn't generate a response."
	TooManyStepsMessage  = "Sorry, answering that needed more steps than I'm allowed. Please try a simpler or more specific question."
	modelErrorFormat     = "Sorry, there was an error communicating with the AI service: %v"
)

const (
	defaultChatTimeout   = 60 * time.Second
	defaultChatMaxRounds = 8
)

const systemPrompt = `You are an AI assistant for the Expense Management System. You help users manage their expenses.

You have access to the following functions to interact with the expense database:
- list_expenses: Retrieves all expenses, optionally filtered by status or category
- list_pending_expenses: Retrieves expenses awaiting approval
- list_categories: Retrieves available expense categories
- create_expense: Creates a new expense entry
- approve_expense: Approves a submitted expense
- reject_expense: Rejects a submitted expense

When listing expenses or data, format them nicely:
- Use numbered lists for multiple items
- Show amounts in £ format
- Include relevant details like date, category, and status

Be helpful, concise, and proactive in suggesting actions the user might want to take.`

// chatState is a step of the tool-calling loop
type chatState int

const (
	stateAwaitingModel chatState = iota
	stateDispatchingTools
	stateDone
)

// ChatService answers chat messages with a function-calling model that can
// read and change expenses through the workflow facade
type ChatService struct {
	client     ChatCompleter
	configured bool
	deployment string
	timeout    time.Duration
	maxRounds  int
	tools      []openai.Tool
	toolbox    *toolbox
	logger     *zap.Logger
	now        func() time.Time
}

// NewChatService creates a chat service. No client is built when the
// endpoint or deployment is missing, and every message then gets
// NotConfiguredMessage.
func NewChatService(cfg config.OpenAIConfig, expenses ExpenseWorkflow, logger *zap.Logger) *ChatService {
	var client ChatCompleter
	if cfg.Endpoint != "" && cfg.DeploymentName != "" {
		client = newOpenAIClient(cfg)
		logger.Info("chat model configured",
			zap.String("endpoint", cfg.Endpoint),
			zap.String("deployment", cfg.DeploymentName),
			zap.Bool("azure", isAzureEndpoint(cfg.Endpoint)),
		)
		if cfg.ManagedIdentityClientID != "" && cfg.APIKey == "" {
			logger.Warn("managed identity credentials are not supported, set OPENAI_API_KEY",
				zap.String("client_id", cfg.ManagedIdentityClientID))
		}
	} else {
		logger.Info("chat model not configured, chat is disabled")
	}
	return NewChatServiceWithClient(cfg, client, expenses, logger)
}

// NewChatServiceWithClient creates a chat service around an existing client
func NewChatServiceWithClient(cfg config.OpenAIConfig, client ChatCompleter, expenses ExpenseWorkflow, logger *zap.Logger) *ChatService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultChatTimeout
	}
	maxRounds := cfg.MaxRounds
	if maxRounds <= 0 {
		maxRounds = defaultChatMaxRounds
	}

	logger = logger.Named("chat_service")
	return &ChatService{
		client:     client,
		configured: client != nil && cfg.Endpoint != "" && cfg.DeploymentName != "",
		deployment: cfg.DeploymentName,
		timeout:    timeout,
		maxRounds:  maxRounds,
		tools:      chatTools(),
		toolbox:    &toolbox{expenses: expenses, logger: logger, now: time.Now},
		logger:     logger,
		now:        time.Now,
	}
}

// newOpenAIClient targets Azure OpenAI for *.azure.com endpoints and any
// OpenAI-compatible endpoint otherwise
func newOpenAIClient(cfg config.OpenAIConfig) *openai.Client {
	if isAzureEndpoint(cfg.Endpoint) {
		azure := openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
		if cfg.APIVersion != "" {
			azure.APIVersion = cfg.APIVersion
		}
		deployment := cfg.DeploymentName
		azure.AzureModelMapperFunc = func(model string) string {
			return deployment
		}
		return openai.NewClientWithConfig(azure)
	}

	c := openai.DefaultConfig(cfg.APIKey)
	c.BaseURL = strings.TrimRight(cfg.Endpoint, "/")
	return openai.NewClientWithConfig(c)
}

func isAzureEndpoint(endpoint string) bool {
	u, err := url.Parse(endpoint)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return strings.HasSuffix(host, ".openai.azure.com") || strings.HasSuffix(host, ".cognitiveservices.azure.com")
}

// IsConfigured reports whether a model endpoint and deployment are set
func (s *ChatService) IsConfigured() bool {
	return s.configured
}

// Chat answers one user message. Prior user and assistant turns are replayed
// as context. Model failures come back as an apology, never as an error.
func (s *ChatService) Chat(ctx context.Context, message string, history []domain.ChatMessage) string {
	if !s.configured {
		metrics.ChatRequest("not_configured")
		return NotConfiguredMessage
	}

	logger := s.logger.With(zap.String("chat_id", uuid.NewString()))
	messages := s.buildMessages(message, history)

	var (
		state   = stateAwaitingModel
		pending []openai.ToolCall
		rounds  int
		reply   string
		outcome = metrics.OutcomeSuccess
	)

	for state != stateDone {
		switch state {
		case stateAwaitingModel:
			resp, err := s.complete(ctx, messages)
			if err != nil {
				logger.Error("chat completion failed", zap.Int("round", rounds), zap.Error(err))
				reply, outcome, state = fmt.Sprintf(modelErrorFormat, err), metrics.OutcomeError, stateDone
				continue
			}
			if len(resp.Choices) == 0 {
				reply, state = NoResponseMessage, stateDone
				continue
			}

			choice := resp.Choices[0]
			if len(choice.Message.ToolCalls) == 0 {
				reply = choice.Message.Content
				if strings.TrimSpace(reply) == "" {
					reply = NoResponseMessage
				}
				state = stateDone
				continue
			}

			if rounds >= s.maxRounds {
				logger.Warn("chat tool rounds exhausted", zap.Int("max_rounds", s.maxRounds))
				reply, outcome, state = TooManyStepsMessage, "round_limit", stateDone
				continue
			}

			// The assistant turn carrying the tool calls must precede their results
			messages = append(messages, choice.Message)
			pending = choice.Message.ToolCalls
			state = stateDispatchingTools

		case stateDispatchingTools:
			rounds++
			for _, call := range pending {
				logger.Info("dispatching tool call",
					zap.Int("round", rounds),
					zap.String("tool", call.Function.Name),
					zap.String("tool_call_id", call.ID),
				)
				messages = append(messages, openai.ChatCompletionMessage{
					Role:       openai.ChatMessageRoleTool,
					Content:    s.toolbox.dispatch(ctx, call),
					ToolCallID: call.ID,
				})
			}
			pending = nil
			state = stateAwaitingModel
		}
	}

	metrics.ChatRequest(outcome)
	metrics.ChatRounds(rounds)
	logger.Info("chat answered", zap.Int("rounds", rounds), zap.String("outcome", outcome))
	return reply
}

func (s *ChatService) complete(ctx context.Context, messages []openai.ChatCompletionMessage) (openai.ChatCompletionResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    s.deployment,
		Messages: messages,
		Tools:    s.tools,
	})
}

func (s *ChatService) buildMessages(message string, history []domain.ChatMessage) []openai.ChatCompletionMessage {
	prompt := systemPrompt + "\n\nToday's date is " + s.now().Format(domain.DateLayout) + "."

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: prompt,
	})

	for _, m := range history {
		switch m.Role {
		case openai.ChatMessageRoleUser, openai.ChatMessageRoleAssistant:
			messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
		}
	}

	return append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})
}
