package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pavanmanishd/earlyalloc"
	"github.com/pavanmanishd/earlyalloc/internal/trace"
	"github.com/pavanmanishd/earlyalloc/region"
)

// fillPattern is written into every byte block when replaying over mapped memory.
const fillPattern = 0xA5

type replayFlags struct {
	start  uint64
	size   uint64
	mapped bool
}

func (a *app) newReplayCmd() *cobra.Command {
	var f replayFlags
	cmd := &cobra.Command{
		Use:   "replay <script>",
		Short: "Replay an allocation script",
		Long: `The replay command runs every operation in the script and prints the
result and the cursors after each one. Use "-" to read the script from stdin.

With --size the arena is initialized over [--start, --start+--size) before
the script runs. With --mmap the region is mapped from the OS instead and
every byte block is filled, so the returned addresses are really usable.

Example:
  earlyalloc replay boot.trace
  earlyalloc replay --size 0x200000 --mmap boot.trace
  earlyalloc replay --json - < boot.trace`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := readScript(cmd, args[0])
			if err != nil {
				return err
			}
			return a.runReplay(cmd, ops, f)
		},
	}
	cmd.Flags().Uint64Var(&f.start, "start", 0, "Region start address")
	cmd.Flags().Uint64Var(&f.size, "size", 0, "Region size in bytes; 0 leaves initialization to the script")
	cmd.Flags().BoolVar(&f.mapped, "mmap", false, "Back the region with anonymous memory (requires --size)")
	return cmd
}

func (a *app) runReplay(cmd *cobra.Command, ops []trace.Op, f replayFlags) error {
	arena, err := a.newArena(cmd)
	if err != nil {
		return err
	}

	var mem *region.Region
	switch {
	case f.mapped:
		if f.size == 0 {
			return errors.New("--mmap requires --size")
		}
		for _, op := range ops {
			if op.Kind == trace.KindInit {
				return fmt.Errorf("line %d: init is not allowed with --mmap", op.Line)
			}
		}
		mem, err = region.Map(uintptr(f.size))
		if err != nil {
			return err
		}
		defer mem.Close()
		arena.Init(mem.Start(), mem.Size())
	case f.size != 0:
		arena.Init(uintptr(f.start), uintptr(f.size))
	}

	steps, fatal := trace.Replay(arena, ops)
	if mem != nil {
		if err := fill(mem, steps); err != nil {
			return err
		}
	}
	if err := a.report(cmd, steps, arena.Metrics(), fatal); err != nil {
		return err
	}
	return fatal
}

// fill writes fillPattern over every successful byte allocation.
func fill(mem *region.Region, steps []trace.Step) error {
	for _, st := range steps {
		if st.Op.Kind != trace.KindAlloc || !st.HasAddr {
			continue
		}
		b, err := mem.Bytes(st.Addr, st.Op.Args[0])
		if err != nil {
			return fmt.Errorf("line %d: %w", st.Op.Line, err)
		}
		for i := range b {
			b[i] = fillPattern
		}
	}
	return nil
}

func (a *app) report(cmd *cobra.Command, steps []trace.Step, m earlyalloc.Metrics, fatal error) error {
	out := cmd.OutOrStdout()
	if a.jsonOut {
		return printJSON(out, toJSON(steps, m, fatal))
	}
	if err := printSteps(out, steps); err != nil {
		return err
	}
	fmt.Fprintln(out)
	printMetrics(out, m)
	return nil
}
