package render

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/poiesic/essaysearch/core"
)

var essayTableHeader = []string{"ID", "Title", "URL"}

// EssayTable renders essay catalogue listings.
type EssayTable struct {
	table *tablewriter.Table
	rows  [][]string
}

// NewEssayTable creates a table writing to w.
func NewEssayTable(w io.Writer) *EssayTable {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)

	return &EssayTable{table: table}
}

// Add appends essays as rows.
func (t *EssayTable) Add(essays ...core.EssaySummary) {
	for _, essay := range essays {
		t.rows = append(t.rows, []string{
			strconv.FormatUint(uint64(essay.Id), 10),
			essay.Title,
			essay.URL,
		})
	}
}

// Render outputs the table.
func (t *EssayTable) Render() error {
	t.table.Header(essayTableHeader)
	if err := t.table.Bulk(t.rows); err != nil {
		return err
	}
	return t.table.Render()
}
