/*
Copyright © 2025 StuLang Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stulang/stulang/internal/entity"
)

var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Manage the current study cycle",
}

var cycleStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a new study cycle",
	Long: `Start a new time-boxed study cycle. The duration is the sum of the
--days, --hours, --minutes and --seconds flags and must be positive.
Only one cycle may run at a time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authedRuntime()
		if err != nil {
			return err
		}

		d := entity.CycleDuration{}
		d.Days, _ = cmd.Flags().GetInt("days")
		d.Hours, _ = cmd.Flags().GetInt("hours")
		d.Minutes, _ = cmd.Flags().GetInt("minutes")
		d.Seconds, _ = cmd.Flags().GetInt("seconds")

		cycle, err := c.Cycles.Create(cmd.Context(), d)
		if err != nil {
			if errors.Is(err, entity.ErrCycleConflict) {
				return fmt.Errorf("%w; wait for it to end before starting another", err)
			}
			return err
		}
		cmd.Printf("Cycle #%d started, ends %s\n", cycle.ID, cycle.End.Local().Format(time.RFC1123))
		return nil
	},
}

var cycleStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active cycle and its remaining time",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authedRuntime()
		if err != nil {
			return err
		}

		cycle, err := c.Cycles.Current(cmd.Context())
		if errors.Is(err, entity.ErrNoActiveCycle) {
			cmd.Println("No active cycle. Start one with 'stulang cycle start'.")
			return nil
		}
		if err != nil {
			return err
		}

		cmd.Printf("Cycle #%d\n", cycle.ID)
		cmd.Printf("  started: %s\n", cycle.Start.Local().Format(time.RFC1123))
		cmd.Printf("  ends:    %s\n", cycle.End.Local().Format(time.RFC1123))
		if cd, running := cycle.Remaining(time.Now()); running {
			cmd.Printf("  left:    %s\n", cd)
		} else {
			cmd.Println("  left:    expired")
		}
		return nil
	},
}

var cycleWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show a live countdown until the cycle ends",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authedRuntime()
		if err != nil {
			return err
		}

		cycle, err := c.Cycles.Current(cmd.Context())
		if errors.Is(err, entity.ErrNoActiveCycle) {
			cmd.Println("No active cycle. Start one with 'stulang cycle start'.")
			return nil
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		c.Cycles.Watch(cmd.Context(), *cycle, time.Second, func(cd entity.Countdown, running bool) {
			if running {
				fmt.Fprintf(out, "\rCycle #%d ends in %s  ", cycle.ID, cd)
			} else {
				fmt.Fprintf(out, "\rCycle #%d has ended.          \n", cycle.ID)
			}
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cycleCmd)
	cycleCmd.AddCommand(cycleStartCmd)
	cycleCmd.AddCommand(cycleStatusCmd)
	cycleCmd.AddCommand(cycleWatchCmd)

	cycleStartCmd.Flags().IntP("days", "d", 0, "cycle length in days")
	cycleStartCmd.Flags().Int("hours", 0, "additional hours")
	cycleStartCmd.Flags().Int("minutes", 0, "additional minutes")
	cycleStartCmd.Flags().Int("seconds", 0, "additional seconds")
}
