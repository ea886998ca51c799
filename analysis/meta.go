package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/scopegate/ai"
	"github.com/poiesic/scopegate/core"
)

// MetaAnalyzer produces one cross-role narrative characterizing how the same
// query resolved differently under each role's credential.
type MetaAnalyzer struct {
	completer ai.Completer
	logger    *slog.Logger
}

// MetaOption configures a MetaAnalyzer.
type MetaOption func(*MetaAnalyzer)

// WithMetaLogger sets a custom logger.
// Default is slog.Default().
func WithMetaLogger(logger *slog.Logger) MetaOption {
	return func(m *MetaAnalyzer) {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
	}
}

// NewMetaAnalyzer creates a cross-role meta-analyzer.
func NewMetaAnalyzer(completer ai.Completer, opts ...MetaOption) (*MetaAnalyzer, error) {
	if completer == nil {
		return nil, ErrCompleterRequired
	}

	m := &MetaAnalyzer{
		completer: completer,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// MetaAnalyze produces the three-section cross-role report.
//
// An empty input returns a fixed literal without invoking the completion
// service. Roles whose per-role analysis failed are excluded from the prompt;
// meta-analysis runs with the remaining roles. A completion error carrying
// the still-starting signature is downgraded to a fixed "try again shortly"
// literal; all other failures propagate.
func (m *MetaAnalyzer) MetaAnalyze(ctx context.Context, query string, roleResults []core.RoleResult, descriptions map[core.Role]string) (string, error) {
	included := make([]core.RoleResult, 0, len(roleResults))
	for _, rr := range roleResults {
		if rr.Err != nil {
			m.logger.Warn("excluding role with failed analysis from meta-analysis",
				"role", rr.Role, "err", rr.Err)
			continue
		}
		included = append(included, rr)
	}
	if len(included) == 0 {
		return NothingToAnalyze, nil
	}

	narrative, err := m.completer.Complete(ctx, metaSystemPrompt, buildMetaPrompt(query, included, descriptions), nil)
	if err != nil {
		if ai.IsStartingUp(err) {
			m.logger.Warn("completion service still starting", "err", err)
			return ServiceStartingUp, nil
		}
		return "", fmt.Errorf("meta-analysis: %w", err)
	}
	return narrative, nil
}
