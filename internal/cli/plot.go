package cli

import (
	"fmt"
	"os"

	"github.com/relab/majority/internal/roundlog"
	"github.com/relab/majority/metrics/plotting"
	"github.com/spf13/cobra"
)

var (
	plotInput  string
	plotOutput string
)

// plotCmd represents the plot command
var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Plot the winners of a round log.",
	Long: `The plot command reads a round log written by 'majority bench --output'
and draws a bar chart of how many rounds each value won.
The image format is chosen by the extension of the output file (png, svg, pdf, ...).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f, err := os.Open(plotInput)
		if err != nil {
			return err
		}
		defer f.Close()

		records, err := roundlog.ReadAll(f)
		if err != nil {
			return err
		}

		wins := plotting.NewWinsPlot()
		for _, rec := range records {
			wins.Add(rec)
		}
		if err := wins.Plot(plotOutput); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "plotted %d rounds to %s\n", wins.Rounds(), plotOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)

	plotCmd.Flags().StringVar(&plotInput, "input", "", "round log to read")
	plotCmd.Flags().StringVar(&plotOutput, "output", "wins.png", "file to save the plot to")
	cobra.CheckErr(plotCmd.MarkFlagRequired("input"))
}
