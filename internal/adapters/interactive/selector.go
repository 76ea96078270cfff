package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/zkmochi/mochi-cli/internal/domain/config"
	"github.com/zkmochi/mochi-cli/internal/domain/models"
	"github.com/zkmochi/mochi-cli/internal/usecase"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectDeployment picks one recorded deployment
func (s *SelectorAdapter) SelectDeployment(ctx context.Context, records []*models.DeploymentRecord, prompt string) (*models.DeploymentRecord, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no deployments to select from")
	}
	if len(records) == 1 {
		return records[0], nil
	}
	if s.config.NonInteractive {
		return nil, fmt.Errorf("%d deployments match, name one explicitly in non-interactive mode", len(records))
	}

	options := formatDeploymentOptions(records)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return records[index], nil
}

// formatDeploymentOptions renders "Contract at 0x... [status]" lines
func formatDeploymentOptions(records []*models.DeploymentRecord) []string {
	options := make([]string, len(records))
	for i, record := range records {
		name := color.New(color.FgWhite, color.Bold).Sprint(record.ContractName)
		address := color.New(color.FgBlue).Sprint(record.Address)

		statusColor := color.New(color.FgYellow)
		if record.Verification.Status == models.VerificationStatusVerified {
			statusColor = color.New(color.FgGreen)
		}
		status := statusColor.Sprintf("[%s]", strings.ToLower(string(record.Verification.Status)))

		options[i] = fmt.Sprintf("%s at %s %s", name, address, status)
	}
	return options
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
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

var _ usecase.DeploymentSelector = (*SelectorAdapter)(nil)
