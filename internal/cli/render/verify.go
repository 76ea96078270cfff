package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/zkmochi/mochi-cli/internal/domain/models"
	"github.com/zkmochi/mochi-cli/internal/usecase"
)

// VerifyRenderer handles rendering of verification results
type VerifyRenderer struct {
	out         io.Writer
	interactive bool
}

// NewVerifyRenderer creates a new verify renderer
func NewVerifyRenderer(out io.Writer, interactive bool) *VerifyRenderer {
	return &VerifyRenderer{
		out:         out,
		interactive: interactive,
	}
}

// RenderVerifyAllResult renders the result of verifying all deployments
func (r *VerifyRenderer) RenderVerifyAllResult(result *usecase.VerifyAllResult, options usecase.VerifyOptions) error {
	if len(result.Skipped) > 0 {
		fmt.Fprintln(r.out, paint(r.interactive, color.New(color.FgCyan, color.Bold),
			fmt.Sprintf("Skipping %d verified contracts:", len(result.Skipped))))
		for _, skipped := range result.Skipped {
			fmt.Fprintf(r.out, "  ⏭️  %s at %s\n", skipped.ID, skipped.Address)
		}
		fmt.Fprintln(r.out)
	}

	if len(result.Results) == 0 {
		if options.Force {
			fmt.Fprintln(r.out, paint(r.interactive, color.New(color.FgYellow), "No deployed contracts found to verify."))
		} else {
			fmt.Fprintln(r.out, paint(r.interactive, color.New(color.FgYellow), "No unverified deployed contracts found. Use --force to re-verify all contracts."))
		}
		return nil
	}

	for i, res := range result.Results {
		fmt.Fprintf(r.out, "  %s %s at %s\n", r.statusIcon(res), res.Record.ID, res.Record.Address)
		r.renderOutcome(res, "    ")
		if i < len(result.Results)-1 {
			fmt.Fprintln(r.out)
		}
	}

	fmt.Fprintf(r.out, "\nVerification complete: %d/%d successful\n", result.SuccessCount, len(result.Results))
	return nil
}

// RenderVerifyResult renders the result of verifying a specific deployment
func (r *VerifyRenderer) RenderVerifyResult(result *usecase.VerifyResult, options usecase.VerifyOptions) error {
	if result.AlreadyVerified {
		fmt.Fprintln(r.out, paint(r.interactive, color.New(color.FgYellow),
			fmt.Sprintf("Contract %s is already verified. Use --force to re-verify.", result.Record.ID)))
		return nil
	}

	r.renderOutcome(result, "")
	return nil
}

func (r *VerifyRenderer) renderOutcome(result *usecase.VerifyResult, indent string) {
	v := result.Record.Verification
	if result.Success {
		fmt.Fprintln(r.out, indent+paint(r.interactive, color.New(color.FgGreen), "✓ Verification completed"))
	} else {
		for _, err := range result.Errors {
			fmt.Fprintln(r.out, indent+paint(r.interactive, color.New(color.FgRed), "✗ "+err))
		}
	}
	fmt.Fprintf(r.out, "%sStatus: %s", indent, statusTitle(string(v.Status)))
	if v.VerificationID != "" {
		fmt.Fprintf(r.out, " (id %s)", v.VerificationID)
	}
	fmt.Fprintln(r.out)
}

func (r *VerifyRenderer) statusIcon(result *usecase.VerifyResult) string {
	switch {
	case result.Success:
		return "✅"
	case result.Record.Verification.Status == models.VerificationStatusFailed:
		return "⚠️"
	default:
		return "⏳"
	}
}
