// File: internal/service/factory.go
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xkilldash9x/scanlens/api/schemas"
	"github.com/xkilldash9x/scanlens/internal/advisor"
	"github.com/xkilldash9x/scanlens/internal/config"
)

// LLMMode says whether a command needs the LLM collaborators.
type LLMMode int

const (
	// LLMNone skips the collaborators entirely.
	LLMNone LLMMode = iota
	// LLMOptional builds them when possible and carries on without them otherwise.
	LLMOptional
	// LLMRequired fails Create when they cannot be built.
	LLMRequired
)

// Options tune a Create call.
type Options struct {
	// Now anchors the built-in mock data set. Zero means the wall clock.
	Now time.Time
	LLM LLMMode
}

// ComponentFactory creates the components for a command. The abstraction lets
// the commands be tested against fakes.
type ComponentFactory interface {
	Create(ctx context.Context, cfg config.Interface, logger *zap.Logger, opts Options) (*Components, error)
}

// LLMInitializer builds an LLM client from the agent configuration.
type LLMInitializer func(ctx context.Context, cfg config.AgentConfig, logger *zap.Logger) (schemas.LLMClient, error)

// concreteFactory is the production implementation of the ComponentFactory.
type concreteFactory struct {
	newLLM LLMInitializer
}

// NewComponentFactory creates the production component factory.
func NewComponentFactory() ComponentFactory {
	return &concreteFactory{newLLM: InitializeLLMClient}
}

// NewComponentFactoryWithLLM creates a factory that builds LLM clients with
// newLLM instead of the configured provider.
func NewComponentFactoryWithLLM(newLLM LLMInitializer) ComponentFactory {
	return &concreteFactory{newLLM: newLLM}
}

// Create builds the result source and, per opts.LLM, the collaborators. On
// failure anything already built is shut down.
func (f *concreteFactory) Create(ctx context.Context, cfg config.Interface, logger *zap.Logger, opts Options) (_ *Components, err error) {
	components := &Components{}
	defer func() {
		if err != nil {
			logger.Warn("Initialization failed, shutting down partially created components.", zap.Error(err))
			_ = components.Shutdown()
		}
	}()

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	// 1. Result source
	source, err := InitializeSource(ctx, cfg, now, logger)
	if err != nil {
		return nil, err
	}
	components.Source = source
	logger.Debug("Result source initialized.", zap.String("source", string(cfg.Data().Source)))

	// 2. LLM collaborators
	if opts.LLM == LLMNone {
		return components, nil
	}
	logger.Debug("Initializing LLM collaborators.", zap.Stringer("mode", opts.LLM))
	llm, err := f.newLLM(ctx, cfg.Agent(), logger)
	if err != nil {
		if opts.LLM == LLMRequired {
			return nil, err
		}
		logger.Warn("LLM collaborators unavailable; analysis endpoints are disabled.", zap.Error(err))
		return components, nil
	}
	components.LLM = llm
	components.Summarizer = advisor.NewSummarizer(logger, llm)
	components.Advisor = advisor.NewAdvisor(logger, llm)
	logger.Debug("LLM collaborators initialized.")

	return components, nil
}

// String names the mode for logs and errors.
func (m LLMMode) String() string {
	switch m {
	case LLMNone:
		return "none"
	case LLMOptional:
		return "optional"
	case LLMRequired:
		return "required"
	}
	return fmt.Sprintf("LLMMode(%d)", int(m))
}
