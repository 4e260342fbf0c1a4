package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mergington.GO/model/seed"
)

var seedFile string

var activitiesListCmd = &cobra.Command{
	Use:   "activities:list",
	Short: "Validate the activity seed and print its roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		acts, err := seed.Load(seedFile)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ACTIVITY\tSCHEDULE\tSIGNED UP\tPARTICIPANTS")
		for _, a := range acts {
			fmt.Fprintf(w, "%s\t%s\t%d/%d\t%s\n",
				a.Name, a.Schedule, len(a.Participants), a.MaxParticipants,
				strings.Join(a.Participants, ", "))
		}
		return w.Flush()
	},
}

func init() {
	activitiesListCmd.Flags().StringVar(&seedFile, "seed", "", "YAML seed file (defaults to the embedded roster)")
	Register(activitiesListCmd)
}
