package interactive

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/tvk-deploy/internal/domain"
	"github.com/trebuchet-org/tvk-deploy/internal/domain/config"
	"github.com/trebuchet-org/tvk-deploy/internal/usecase"
)

// SelectorAdapter lets the operator choose between ambiguous artifacts
type SelectorAdapter struct {
	config   *config.RuntimeConfig
	terminal func() bool
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{
		config:   cfg,
		terminal: stdinIsTerminal,
	}
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SelectArtifact prompts for one of the matching artifacts.
// Without a terminal the ambiguity error is returned unchanged.
func (s *SelectorAdapter) SelectArtifact(ctx context.Context, ambiguous domain.AmbiguousContractErr) (domain.ArtifactRef, error) {
	matches := sortedMatches(ambiguous.Matches)
	if len(matches) == 0 {
		return domain.ArtifactRef{}, fmt.Errorf("no artifacts provided for selection")
	}
	if len(matches) == 1 {
		return matches[0], nil
	}

	if (s.config != nil && s.config.NonInteractive) || !s.terminal() {
		return domain.ArtifactRef{}, ambiguous
	}

	options := formatArtifactOptions(matches)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             fmt.Sprintf("Multiple artifacts named %s, select one to deploy", ambiguous.Name),
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(options),
		Stdout:            os.Stderr,
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return domain.ArtifactRef{}, fmt.Errorf("selection cancelled: %w", err)
	}

	return matches[index], nil
}

func sortedMatches(refs []domain.ArtifactRef) []domain.ArtifactRef {
	sorted := make([]domain.ArtifactRef, len(refs))
	copy(sorted, refs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].SourceName < sorted[j].SourceName
	})
	return sorted
}

// formatArtifactOptions renders "Name (source) artifact-path" lines
func formatArtifactOptions(refs []domain.ArtifactRef) []string {
	options := make([]string, len(refs))
	for i, ref := range refs {
		name := color.New(color.FgWhite, color.Bold).Sprint(ref.ContractName)
		source := color.New(color.FgBlue).Sprint(ref.SourceName)
		options[i] = fmt.Sprintf("%s (%s) %s", name, source, color.New(color.Faint).Sprint(ref.Path))
	}
	return options
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		// Empty search shows all items
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.ArtifactSelector = (*SelectorAdapter)(nil)
