package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/neurotopo/trisect/pkg/cluster"
	"github.com/neurotopo/trisect/pkg/pipeline"
)

// printReport renders the partition result for terminal consumption.
func printReport(res *pipeline.Result) {
	run := res.Run
	result := run.Result

	printStats(run.Nodes, run.Edges, result.Candidates, res.CacheInfo.SearchHit)
	printNewline()

	if result.Best == nil {
		printWarning("No candidate pair qualified")
		return
	}

	printSuccess("Partition found")
	printCluster("R", result.R, styleClusterR)
	printCluster("B", result.B, styleClusterB)
	printConnectors(result.GSize())
	printNewline()

	printRecords(result)
}

// printCluster prints one cluster's members on a labeled line.
func printCluster(name string, members []string, style lipgloss.Style) {
	label := fmt.Sprintf("%s (%d):", name, len(members))
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(16)
	fmt.Println(keyStyle.Render(label) + " " + style.Render(strings.Join(members, " ")))
}

// printConnectors prints the G count. Connector membership is implicit,
// every node outside R and B.
func printConnectors(count int) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(16)
	fmt.Println(keyStyle.Render("G:") + " " + styleClusterG.Render(fmt.Sprintf("%d connectors", count)))
}

// printRecords renders the label/value sequences from the result.
//
// Max mode yields one flat record; threshold mode yields one record per
// qualifier, printed in candidate order.
func printRecords(result *cluster.Result) {
	info := result.Info()
	if len(info) == 0 {
		return
	}

	if _, ok := info[0].([]any); !ok {
		printRecord(info)
		return
	}

	for i, rec := range info {
		if i > 0 {
			printNewline()
		}
		printDetail("Qualifier %d of %d", i+1, len(info))
		printRecord(rec.([]any))
	}
}

// printRecord prints one flat label/value sequence as aligned lines.
func printRecord(rec []any) {
	for i := 0; i+1 < len(rec); i += 2 {
		printKeyValue(fmt.Sprint(rec[i]), fmt.Sprint(rec[i+1]))
	}
}
