package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/zkmochi/mochi-cli/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out   io.Writer
	color bool
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, color bool) *NetworksRenderer {
	return &NetworksRenderer{
		out:   out,
		color: color,
	}
}

// RenderNetworksList renders the available networks, marking the selected one
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	checked := lo.SomeBy(result.Networks, func(n usecase.NetworkStatus) bool {
		return n.LiveChainID != 0 || n.CheckError != nil
	})

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	header := table.Row{"", "Network", "Chain ID", "RPC URL", "L1", "Verify"}
	if checked {
		header = append(header, "Live")
	}
	t.AppendHeader(header)

	for _, network := range result.Networks {
		marker := ""
		if network.Name == result.Current {
			marker = paint(r.color, color.New(color.FgGreen, color.Bold), "*")
		}
		if network.Error != nil {
			t.AppendRow(table.Row{marker, network.Name, "", paint(r.color, color.New(color.FgRed), network.Error.Error()), "", ""})
			continue
		}
		verifies := "no"
		if network.Verifies {
			verifies = "yes"
		}
		row := table.Row{marker, network.Name, network.ChainID, network.RPCURL, network.L1Network, verifies}
		if checked {
			row = append(row, r.liveCell(network))
		}
		t.AppendRow(row)
	}
	t.Render()

	return nil
}

func (r *NetworksRenderer) liveCell(network usecase.NetworkStatus) string {
	switch {
	case network.CheckError != nil:
		return paint(r.color, color.New(color.FgRed), "✗ unreachable")
	case network.ChainMismatch():
		return paint(r.color, color.New(color.FgYellow), fmt.Sprintf("⚠ chain %d", network.LiveChainID))
	case network.LiveChainID != 0:
		return paint(r.color, color.New(color.FgGreen), "✓")
	default:
		return ""
	}
}
