// Package chat implements the budtender assistant: strain questions answered
// by a chat completion provider, grounded in catalog data.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/verdant-cloud/strainrec/internal/domain"
	"github.com/verdant-cloud/strainrec/internal/domain/match"
)

const systemPrompt = "You are a knowledgeable, responsible budtender. " +
	"Answer questions about cannabis strains, their effects, terpenes, and " +
	"possible relief uses. Keep answers short and factual. Always remind " +
	"users to consume responsibly and follow local laws when relevant."

// Service handles budtender chat requests. The completer is optional; when
// it is nil every request fails with ErrChatUnavailable.
type Service struct {
	completer Completer
	snapshots SnapshotProvider
	resolver  *match.Resolver
}

// New creates a chat service.
func New(completer Completer, snapshots SnapshotProvider, threshold int) *Service {
	return &Service{
		completer: completer,
		snapshots: snapshots,
		resolver:  match.NewResolver(threshold),
	}
}

// Enabled reports whether a chat provider is configured.
func (s *Service) Enabled() bool { return s.completer != nil }

// Ask answers a strain question. When strainName resolves against the
// catalog, the strain's attributes are injected into the system prompt so
// the model grounds its answer in catalog data.
func (s *Service) Ask(ctx context.Context, question, strainName string) (string, error) {
	if s.completer == nil {
		return "", domain.ErrChatUnavailable
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("%w: question is required", domain.ErrInvalidInput)
	}

	prompt := systemPrompt
	if strainName != "" {
		if grounding, err := s.strainContext(ctx, strainName); err == nil && grounding != "" {
			prompt += "\n\n" + grounding
		}
	}

	answer, err := s.completer.Complete(ctx, prompt, question)
	if err != nil {
		return "", fmt.Errorf("complete: %w", err)
	}
	return answer, nil
}

// strainContext renders the resolved strain's attributes for the system
// prompt. Unknown strains yield no context rather than an error: the model
// can still answer generically.
func (s *Service) strainContext(ctx context.Context, strainName string) (string, error) {
	snap, _, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	canonical, _, ok := s.resolver.Resolve(strainName, snap.Names())
	if !ok {
		return "", nil
	}
	strain, ok := snap.ByName(canonical)
	if !ok {
		return "", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Catalog data for %q:", strain.Name)
	if strain.Type != "" {
		fmt.Fprintf(&b, " type %s.", strain.Type)
	}
	if len(strain.Effects) > 0 {
		fmt.Fprintf(&b, " Effects: %s.", strings.Join(strain.Effects, ", "))
	}
	if len(strain.Terpenes) > 0 {
		fmt.Fprintf(&b, " Terpenes: %s.", strings.Join(strain.Terpenes, ", "))
	}
	if len(strain.MayRelieve) > 0 {
		fmt.Fprintf(&b, " May relieve: %s.", strings.Join(strain.MayRelieve, ", "))
	}
	return b.String(), nil
}
