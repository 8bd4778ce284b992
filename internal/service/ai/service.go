package ai

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/Opirel/finalProj-dnd-backend/internal/config"
	"github.com/Opirel/finalProj-dnd-backend/internal/model/session"
	"github.com/Opirel/finalProj-dnd-backend/internal/observability"
)

// Service produces one bot completion per call by replaying a session
// transcript through the configured chat model.
type Service struct {
	chain   compose.Runnable[map[string]any, *schema.Message]
	timeout time.Duration
	metrics *observability.Metrics
}

// NewService compiles the persona prompt chain against the configured model.
func NewService(ctx context.Context, cfg config.AIConfig, metrics *observability.Metrics) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("compile chat chain: %w", err)
	}

	return &Service{
		chain:   runnable,
		timeout: cfg.Timeout,
		metrics: metrics,
	}, nil
}

// Reply replays the full transcript, treating the final message as the
// trigger, and returns the model's completion. The model is stateless per
// invocation: no conversation handle is reused between calls.
func (s *Service) Reply(ctx context.Context, msgs []session.Message) (string, error) {
	if len(msgs) == 0 {
		return "", fmt.Errorf("empty transcript: no trigger message")
	}
	trigger := msgs[len(msgs)-1].Text

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	response, err := s.chain.Invoke(ctx, buildChainInput(msgs, trigger))
	if err != nil {
		s.countTurn("error")
		return "", fmt.Errorf("run model chain: %w", err)
	}
	if response.Content == "" {
		s.countTurn("error")
		return "", fmt.Errorf("model returned an empty completion")
	}

	s.countTurn("ok")
	log.Printf("[ai] generated completion, history=%d, length=%d", len(msgs), len(response.Content))
	return response.Content, nil
}

func (s *Service) countTurn(outcome string) {
	if s.metrics != nil {
		s.metrics.AITurns.WithLabelValues(outcome).Inc()
	}
}
