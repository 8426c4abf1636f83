package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/tvk-deploy/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out   io.Writer
	color bool
	json  bool
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, color, asJSON bool) *NetworksRenderer {
	return &NetworksRenderer{
		out:   out,
		color: color,
		json:  asJSON,
	}
}

type networkJSON struct {
	Name        string `json:"name"`
	ChainID     uint64 `json:"chainId,omitempty"`
	RPCURL      string `json:"rpcUrl,omitempty"`
	RPCSource   string `json:"rpcSource,omitempty"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
	Selected    bool   `json:"selected,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Render renders the list of networks as a table or JSON
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if r.json {
		return r.renderJSON(result)
	}

	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.AppendHeader(table.Row{"", "NETWORK", "CHAIN ID", "RPC", "SOURCE", "EXPLORER"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
	})

	for _, status := range result.Networks {
		marker := ""
		if status.Name == result.Selected {
			marker = "*"
		}

		if status.Error != nil {
			t.AppendRow(table.Row{marker, status.Name, "-", r.paint(color.FgRed, status.Error.Error()), "", ""})
			continue
		}

		n := status.Network
		chainID := "any"
		if n.ChainID != 0 {
			chainID = strconv.FormatUint(n.ChainID, 10)
		}
		t.AppendRow(table.Row{marker, r.paint(color.FgCyan, status.Name), chainID, n.RPCURL, n.RPCSource, n.ExplorerURL})
	}

	t.Render()
	return nil
}

func (r *NetworksRenderer) renderJSON(result *usecase.ListNetworksResult) error {
	rows := make([]networkJSON, 0, len(result.Networks))
	for _, status := range result.Networks {
		row := networkJSON{
			Name:     status.Name,
			Selected: status.Name == result.Selected,
		}
		if status.Error != nil {
			row.Error = status.Error.Error()
		} else {
			row.ChainID = status.Network.ChainID
			row.RPCURL = status.Network.RPCURL
			row.RPCSource = status.Network.RPCSource
			row.ExplorerURL = status.Network.ExplorerURL
		}
		rows = append(rows, row)
	}

	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func (r *NetworksRenderer) paint(attr color.Attribute, s string) string {
	if !r.color {
		return s
	}
	return color.New(attr).Sprint(s)
}

var _ Renderer[*usecase.ListNetworksResult] = (*NetworksRenderer)(nil)
