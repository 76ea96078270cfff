package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/zkmochi/mochi-cli/internal/usecase"
)

// DeployRenderer renders the outcome of mochi deploy
type DeployRenderer struct {
	out   io.Writer
	color bool
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer, color bool) *DeployRenderer {
	return &DeployRenderer{out: out, color: color}
}

var _ Renderer[*usecase.DeployResult] = (*DeployRenderer)(nil)

// Render prints the estimate for a dry run or the deployment summary
func (r *DeployRenderer) Render(result *usecase.DeployResult) error {
	label := color.New(color.FgHiBlack)
	value := color.New(color.FgWhite, color.Bold)

	fmt.Fprintf(r.out, "%s %s\n", paint(r.color, label, "Network: "), paint(r.color, value, fmt.Sprintf("%s (chain %d)", result.Network.Name, result.Network.ChainID)))
	fmt.Fprintf(r.out, "%s %s\n", paint(r.color, label, "Deployer:"), result.Deployer)
	fmt.Fprintf(r.out, "%s %s\n", paint(r.color, label, "Contract:"), result.Artifact.FullyQualifiedName())
	if result.Estimate != nil {
		fmt.Fprintf(r.out, "%s %s ETH (%d gas)\n", paint(r.color, label, "Estimate:"), result.Estimate.Ether(), result.Estimate.GasLimit)
	}

	if result.Deployment == nil {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, paint(r.color, color.New(color.FgYellow), "Dry run, nothing was deployed."))
		return nil
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s was deployed to %s", result.Artifact.ContractName, result.Deployment.ContractAddress)))
	fmt.Fprintf(r.out, "   Transaction: %s\n", result.Deployment.TransactionHash)
	fmt.Fprintf(r.out, "   Block:       %d\n", result.Deployment.BlockNumber)
	if result.Deployment.ConstructorEncoding != "" && result.Deployment.ConstructorEncoding != "0x" {
		fmt.Fprintf(r.out, "   Constructor: %s\n", result.Deployment.ConstructorEncoding)
	}

	if v := result.Verification; v != nil {
		switch {
		case !v.Attempted:
			fmt.Fprintf(r.out, "   Verification skipped: %s\n", v.SkipReason)
		case v.Err != nil:
			fmt.Fprintln(r.out, FormatWarning(v.Err.Error()))
			if v.VerificationID != "" {
				fmt.Fprintf(r.out, "   Verification ID: %s\n", v.VerificationID)
			}
		default:
			fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Verified on %s (id %s)", result.Network.Name, v.VerificationID)))
		}
	}

	for _, warning := range result.Warnings {
		fmt.Fprintln(r.out, FormatWarning(warning))
	}

	return nil
}
