// File: internal/service/components.go
package service

import (
	"errors"

	"go.uber.org/zap"

	"github.com/xkilldash9x/scanlens/api/schemas"
	"github.com/xkilldash9x/scanlens/internal/advisor"
	"github.com/xkilldash9x/scanlens/internal/observability"
)

// Components holds the services a command or the API server needs and
// centralizes their lifecycle.
type Components struct {
	Source schemas.ResultSource
	// LLM, Summarizer and Advisor are nil when the collaborators were not
	// requested, or were optional and could not be initialized.
	LLM        schemas.LLMClient
	Summarizer *advisor.Summarizer
	Advisor    *advisor.Advisor
}

// HasCollaborators reports whether the LLM collaborators are available.
func (c *Components) HasCollaborators() bool {
	return c.LLM != nil
}

// Shutdown releases the LLM client and then the result source. Both are
// attempted even if the first fails.
func (c *Components) Shutdown() error {
	logger := observability.GetLogger()
	logger.Debug("Beginning components shutdown sequence.")

	var errs []error
	if c.LLM != nil {
		if err := c.LLM.Close(); err != nil {
			logger.Warn("Error closing LLM client.", zap.Error(err))
			errs = append(errs, err)
		}
	}
	if c.Source != nil {
		if err := c.Source.Close(); err != nil {
			logger.Warn("Error closing result source.", zap.Error(err))
			errs = append(errs, err)
		}
	}

	logger.Debug("Components shut down.")
	return errors.Join(errs...)
}
