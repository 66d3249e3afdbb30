package cmd

import (
	"fmt"
	"os"

	"github.com/nxadm/tail"
	"github.com/spf13/cobra"

	"jinspect/internal/logging"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the debug log",
	Long: `Show the debug log written when JINSPECT_LOG_TO_FILE=1 is set.
With --follow the command keeps the log open and streams new lines.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		follow, _ := cmd.Flags().GetBool("follow")

		if !follow {
			data, err := os.ReadFile(logging.DebugLogFile)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("no log file found, run with JINSPECT_LOG_TO_FILE=1 first")
				}
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		}

		t, err := tail.TailFile(logging.DebugLogFile, tail.Config{
			Follow: true,
			ReOpen: true,
			Logger: tail.DiscardingLogger,
		})
		if err != nil {
			return fmt.Errorf("failed to tail log file: %v", err)
		}
		defer t.Cleanup()

		for line := range t.Lines {
			if line.Err != nil {
				return line.Err
			}
			fmt.Println(line.Text)
		}
		return nil
	},
}

func init() {
	logsCmd.Flags().BoolP("follow", "f", false, "Stream new log lines as they are written")
	rootCmd.AddCommand(logsCmd)
}
