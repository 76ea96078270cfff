package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/zkmochi/mochi-cli/internal/domain/models"
	"github.com/zkmochi/mochi-cli/internal/usecase"
)

// MintRenderer renders the batches confirmed by mochi mint
type MintRenderer struct {
	out   io.Writer
	color bool
}

// NewMintRenderer creates a new mint renderer
func NewMintRenderer(out io.Writer, color bool) *MintRenderer {
	return &MintRenderer{out: out, color: color}
}

var _ Renderer[*usecase.MintResult] = (*MintRenderer)(nil)

// Render prints one row per confirmed batch and a summary line
func (r *MintRenderer) Render(result *usecase.MintResult) error {
	if result.Plan.BatchCount() == 0 {
		fmt.Fprintln(r.out, "Nothing to mint.")
		return nil
	}

	if len(result.Batches) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(r.out)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"#", "Units", "Block", "Transaction"})
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 1, Align: text.AlignRight},
			{Number: 2, Align: text.AlignRight},
			{Number: 3, Align: text.AlignRight},
		})
		for _, b := range result.Batches {
			t.AppendRow(table.Row{b.Index + 1, b.Units, b.BlockNumber, b.TransactionHash})
		}
		t.Render()
	}

	minted := lo.SumBy(result.Batches, func(b *models.BatchResult) uint64 { return b.Units })
	summary := fmt.Sprintf("Minted %d of %d units to %s in %d of %d batches",
		minted, result.Plan.TotalUnits, result.Recipient, len(result.Batches), result.Plan.BatchCount())
	if len(result.Batches) == result.Plan.BatchCount() {
		fmt.Fprintln(r.out, FormatSuccess(summary))
	} else {
		fmt.Fprintln(r.out, paint(r.color, color.New(color.FgYellow), summary))
	}
	return nil
}
