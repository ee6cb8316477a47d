package main

import (
	"github.com/spf13/cobra"

	"github.com/pavanmanishd/earlyalloc/internal/trace"
)

// referenceScript exercises both cursors over [0, 0x2000) with 4 KiB pages,
// ending with a page request that underflows the page cursor.
const referenceScript = `# two-page region, bytes up from 0, pages down from 0x2000
init      0 0x2000
alloc     16 8          # -> 0x0
pages     1 12          # -> 0x1000
dealloc   0 16 8        # count drops to 0, byte region resets
pages     1 12          # -> 0x0, cursors meet
pages     1 12          # page cursor underflows: invalid parameter
`

func (a *app) newScenarioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario",
		Short: "Run the built-in reference scenario",
		Long: `The scenario command replays a fixed script over a two-page region
and prints each step. With the default 4 KiB page size it shows the cursors
meeting and the final underflow being reported as an invalid parameter.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := trace.ParseString(referenceScript)
			if err != nil {
				return err
			}
			return a.runReplay(cmd, ops, replayFlags{})
		},
	}
}
