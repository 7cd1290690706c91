package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/prodhub/workbench/internal/projection"
	"github.com/prodhub/workbench/internal/timeline"
)

// ganttWidth is the character width of the roadmap lane.
const ganttWidth = 48

var roadmapArchived bool

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Show the version roadmap",
	Long: `Show a Gantt-style roadmap of product versions.

The window runs from the start of last month through the end of the
month three months out. Versions without parseable dates inside the
window are omitted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return roadmapRun(time.Now())
	},
}

func init() {
	roadmapCmd.Flags().BoolVar(&roadmapArchived, "archived", false, "Include archived versions")
	rootCmd.AddCommand(roadmapCmd)
}

func roadmapRun(now time.Time) error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	versions, err := s.ListVersions(ctx)
	if err != nil {
		return err
	}

	w := timeline.DefaultWindow(now)
	fmt.Fprintf(ui.Out, "Roadmap %s to %s\n\n", w.Start.Format(timeline.DateFormat), w.End.Format(timeline.DateFormat))
	fmt.Fprintf(ui.Out, "  %-28s %s\n", "", monthHeader(w))

	shown := 0
	for _, v := range projection.FilterVersions(versions, "", roadmapArchived) {
		bar, ok := timeline.BarPosition(w, v.StartDate, v.EndDate)
		if !ok {
			continue
		}
		label := fmt.Sprintf("%s %s", v.ProductName, v.Version)
		if len(label) > 28 {
			label = label[:28]
		}
		fmt.Fprintf(ui.Out, "  %-28s %s %d%%\n", label, ganttLane(bar), v.Progress)
		shown++
	}

	if shown == 0 {
		ui.Info("No versions fall inside the roadmap window.")
	}
	return nil
}

// monthHeader renders month labels spaced across the lane width.
func monthHeader(w timeline.Window) string {
	months := w.Months()
	cell := ganttWidth / len(months)
	var b strings.Builder
	for _, m := range months {
		label := m.Format("Jan")
		if len(label) > cell {
			label = label[:cell]
		}
		b.WriteString(label)
		b.WriteString(strings.Repeat(" ", cell-len(label)))
	}
	return b.String()
}

// ganttLane renders a bar's window position as a fixed-width text lane.
func ganttLane(bar timeline.Bar) string {
	start := int(bar.LeftPercent / 100 * ganttWidth)
	span := int(bar.WidthPercent / 100 * ganttWidth)
	if span < 1 {
		span = 1
	}
	if start+span > ganttWidth {
		span = ganttWidth - start
	}

	lane := []byte(strings.Repeat(".", ganttWidth))
	for i := start; i < start+span; i++ {
		lane[i] = '='
	}
	return string(lane)
}
