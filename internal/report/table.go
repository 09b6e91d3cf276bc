package report

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

type tableMode int

const (
	tableText tableMode = iota
	tableMarkdown
)

var (
	baseHeaders     = []string{"Start Time (ms)", "End Time (ms)", "Channel", "TimeStamp", "Content"}
	baseAligns      = []columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignLeft}
	activityHeaders = []string{"Left (ms)", "Right (ms)"}
)

// Headers returns the table column titles for the given activity setting.
func Headers(showActivity bool) []string {
	headers := append([]string(nil), baseHeaders...)
	if showActivity {
		headers = append(headers, activityHeaders...)
	}
	return headers
}

func renderTable(doc Document, opts Options, mode tableMode) string {
	headers := Headers(opts.ShowActivity)
	aligns := append([]columnAlignment(nil), baseAligns...)
	if opts.ShowActivity {
		aligns = append(aligns, alignRight, alignRight)
	}

	tw := newTableWriter(headers, cueRows(doc, opts), aligns)
	if mode == tableMarkdown {
		return tw.RenderMarkdown()
	}

	style := tableStyle(opts.TableStyle)
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)
	out := tw.Render()
	if opts.ShowActivity {
		s := doc.Summary
		out += fmt.Sprintf("\ncues: %d  left: %d  right: %d  none: %d  left active: %d ms  right active: %d ms",
			s.Cues, s.Left, s.Right, s.None, s.LeftActiveMS, s.RightActiveMS)
	}
	return out
}

func cueRows(doc Document, opts Options) [][]string {
	rows := make([][]string, 0, len(doc.Cues))
	for _, cue := range doc.Cues {
		row := []string{
			strconv.FormatInt(cue.StartMS, 10),
			strconv.FormatInt(cue.EndMS, 10),
			cue.Channel.Short(),
			cue.Timing,
			cue.Text,
		}
		if opts.ShowActivity {
			row = append(row,
				strconv.FormatInt(cue.LeftActiveMS, 10),
				strconv.FormatInt(cue.RightActiveMS, 10),
			)
		}
		rows = append(rows, row)
	}
	return rows
}

func newTableWriter(headers []string, rows [][]string, aligns []columnAlignment) table.Writer {
	columns := len(headers)
	tw := table.NewWriter()

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)
	return tw
}

func tableStyle(name string) table.Style {
	switch name {
	case "light":
		return table.StyleLight
	case "default":
		return table.StyleDefault
	case "bold":
		return table.StyleBold
	case "double":
		return table.StyleDouble
	default:
		return table.StyleRounded
	}
}
