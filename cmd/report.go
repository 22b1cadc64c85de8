package cmd

import (
	"bytes"
	"fmt"

	"github.com/achilleasa/go-pathtrace/scene"
	"github.com/achilleasa/go-pathtrace/scene/compiler"
	"github.com/olekukonko/tablewriter"
)

// printBVReport renders aggregate BV-intersection statistics for a
// full-frame primary-ray sweep over sc, at sc's configured resolution.
func printBVReport(sc *scene.Scene) error {
	stats := compiler.ComputeBVStats(sc, int(sc.ResX), int(sc.ResY))

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Resolution", fmt.Sprintf("%dx%d", sc.ResX, sc.ResY)})
	table.Append([]string{"BV leaves", fmt.Sprintf("%d", stats.LeafCount)})
	table.Append([]string{"Avg triangles/leaf", fmt.Sprintf("%.2f", stats.AvgTriCount)})
	table.Append([]string{"Primary rays", fmt.Sprintf("%d", stats.Rays)})
	table.Append([]string{"Rays hitting >=1 leaf", fmt.Sprintf("%.2f %%", stats.HitRate()*100)})
	table.Append([]string{"BV tests, min", fmt.Sprintf("%d", stats.MinTests)})
	table.Append([]string{"BV tests, avg", fmt.Sprintf("%.2f", stats.AvgTests())})
	table.Append([]string{"BV tests, max", fmt.Sprintf("%d", stats.MaxTests)})
	table.SetFooter([]string{"TOTAL BV tests", fmt.Sprintf("%d", stats.TotalTests)})

	table.Render()
	logger.Noticef("bv efficiency report\n%s", buf.String())
	return nil
}
