package render

import (
	"fmt"
	"io"
	"regexp"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/zkmochi/mochi-cli/internal/domain/models"
	"github.com/zkmochi/mochi-cli/internal/usecase"
)

// Color styles for table format
var (
	networkBg          = color.BgCyan
	networkHeader      = color.New(networkBg, color.FgBlack)
	networkHeaderBold  = color.New(networkBg, color.FgBlack, color.Bold)
	contractStyle      = color.New(color.FgGreen, color.Bold)
	addressStyle       = color.New(color.FgWhite)
	timestampStyle     = color.New(color.Faint)
	pendingStyle       = color.New(color.FgYellow)
	verifiedStyle      = color.New(color.FgGreen)
	notVerifiedStyle   = color.New(color.FgRed)
	sectionHeaderStyle = color.New(color.Bold, color.FgHiWhite)
)

type TableData [][]string

// DeploymentsRenderer renders deployment lists as tables grouped by network
type DeploymentsRenderer struct {
	out   io.Writer
	color bool
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer, color bool) *DeploymentsRenderer {
	return &DeploymentsRenderer{
		out:   out,
		color: color,
	}
}

// RenderDeploymentList renders deployments in the tree-style format
func (r *DeploymentsRenderer) RenderDeploymentList(result *usecase.DeploymentListResult) error {
	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	r.displayTableFormat(result.Deployments, result.OnChain)

	fmt.Fprintf(r.out, "Total deployments: %d", result.Summary.Total)
	if result.Summary.Unverified > 0 {
		fmt.Fprintf(r.out, " (%d unverified)", result.Summary.Unverified)
	}
	fmt.Fprintln(r.out)
	return nil
}

// displayTableFormat shows deployments grouped by network, in the order received
func (r *DeploymentsRenderer) displayTableFormat(deployments []*models.DeploymentRecord, onChain map[string]usecase.OnChainStatus) {
	groups := lo.GroupBy(deployments, func(d *models.DeploymentRecord) string { return d.Network })
	networks := lo.Uniq(lo.Map(deployments, func(d *models.DeploymentRecord, _ int) string { return d.Network }))

	// Build all tables first so columns line up across networks
	tables := make([]TableData, 0, len(networks))
	for _, network := range networks {
		tables = append(tables, r.buildDeploymentTable(groups[network], onChain))
	}
	widths := calculateTableColumnWidths(tables)

	for i, network := range networks {
		isLast := i == len(networks)-1
		treePrefix := "├─"
		continuationPrefix := "│ "
		if isLast {
			treePrefix = "└─"
			continuationPrefix = "  "
		}

		label := fmt.Sprintf("%-10s", "network:")
		value := fmt.Sprintf("%-30s", fmt.Sprintf("%s (%d)", network, groups[network][0].ChainID))
		fmt.Fprintf(r.out, "%s%s%s\n", treePrefix,
			paint(r.color, networkHeader, fmt.Sprintf(" ⛓ %s ", label)),
			paint(r.color, networkHeaderBold, value))
		fmt.Fprintln(r.out, continuationPrefix)
		fmt.Fprintf(r.out, "%s%s\n", continuationPrefix, paint(r.color, sectionHeaderStyle, "CONTRACTS"))
		fmt.Fprint(r.out, renderTableWithWidths(tables[i], widths, continuationPrefix))
		fmt.Fprintln(r.out)
		if !isLast {
			fmt.Fprintln(r.out, continuationPrefix)
		} else {
			fmt.Fprintln(r.out)
		}
	}
}

// buildDeploymentTable creates a TableData for the deployments of one network
func (r *DeploymentsRenderer) buildDeploymentTable(deployments []*models.DeploymentRecord, onChain map[string]usecase.OnChainStatus) TableData {
	tableData := make(TableData, 0, len(deployments))
	for _, d := range deployments {
		row := []string{
			paint(r.color, contractStyle, d.ContractName),
			paint(r.color, addressStyle, d.Address),
			r.verificationCell(d.Verification),
		}
		if onChain != nil {
			row = append(row, r.onChainCell(onChain[d.ID]))
		}
		row = append(row, paint(r.color, timestampStyle, d.CreatedAt.Local().Format("2006-01-02 15:04:05")))
		tableData = append(tableData, row)
	}
	return tableData
}

func (r *DeploymentsRenderer) onChainCell(status usecase.OnChainStatus) string {
	switch {
	case status.Err != nil:
		return paint(r.color, pendingStyle, "? unreachable")
	case status.Exists:
		return paint(r.color, verifiedStyle, "● on chain")
	default:
		return paint(r.color, notVerifiedStyle, "○ no code")
	}
}

func (r *DeploymentsRenderer) verificationCell(v models.VerificationInfo) string {
	switch v.Status {
	case models.VerificationStatusVerified:
		return paint(r.color, verifiedStyle, "✓ verified")
	case models.VerificationStatusFailed:
		return paint(r.color, notVerifiedStyle, "✗ failed")
	case models.VerificationStatusSkipped:
		return paint(r.color, pendingStyle, "- skipped")
	default:
		return paint(r.color, pendingStyle, "⏳ unverified")
	}
}

// renderTableWithWidths renders a table with specific column widths
func renderTableWithWidths(tableData TableData, columnWidths []int, continuationPrefix string) string {
	if len(tableData) == 0 {
		return ""
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}

	colConfigs := make([]table.ColumnConfig, len(columnWidths))
	for i, width := range columnWidths {
		if i == 0 {
			width += len([]rune(continuationPrefix))
		}
		colConfigs[i] = table.ColumnConfig{
			Number:   i + 1,
			Align:    text.AlignLeft,
			WidthMin: width,
			WidthMax: width,
		}
	}
	t.SetColumnConfigs(colConfigs)

	for _, row := range tableData {
		tableRow := make(table.Row, len(row))
		for i, cell := range row {
			if i == 0 {
				tableRow[i] = continuationPrefix + cell
			} else {
				tableRow[i] = cell
			}
		}
		t.AppendRow(tableRow)
	}

	return t.Render()
}

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[mGKHF]`)

// stripAnsiCodes removes ANSI escape sequences from a string
func stripAnsiCodes(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// calculateTableColumnWidths calculates column widths for multiple tables
func calculateTableColumnWidths(tables []TableData) []int {
	maxCols := 0
	for _, t := range tables {
		for _, row := range t {
			maxCols = max(maxCols, len(row))
		}
	}

	widths := make([]int, maxCols)
	for _, t := range tables {
		for _, row := range t {
			for colIdx, cell := range row {
				widths[colIdx] = max(widths[colIdx], text.RuneWidthWithoutEscSequences(stripAnsiCodes(cell)))
			}
		}
	}
	return widths
}
