package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pavanmanishd/earlyalloc/internal/trace"
)

func (a *app) newLayoutCmd() *cobra.Command {
	var (
		width int
		steps bool
	)
	cmd := &cobra.Command{
		Use:   "layout <script>",
		Short: "Draw the arena map after a script",
		Long: `The layout command replays a script and draws the arena as a bar:
'#' is the byte region, '.' the free gap and '=' the page region.

Example:
  earlyalloc layout boot.trace
  earlyalloc layout --steps --width 32 boot.trace`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := readScript(cmd, args[0])
			if err != nil {
				return err
			}
			arena, err := a.newArena(cmd)
			if err != nil {
				return err
			}
			st, fatal := trace.Replay(arena, ops)

			out := cmd.OutOrStdout()
			if steps {
				for _, s := range st {
					fmt.Fprintf(out, "%4d %s %s\n", s.Op.Line, trace.Map(s.After, width), s.Op)
				}
			} else {
				fmt.Fprintf(out, "%s\n", trace.Map(arena.Cursors(), width))
			}
			fmt.Fprintln(out, arena.Cursors())
			return fatal
		},
	}
	cmd.Flags().IntVar(&width, "width", 64, "Bar width in cells")
	cmd.Flags().BoolVar(&steps, "steps", false, "Draw the map after every operation")
	return cmd
}
