package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
)

var errQuit = errors.New("quit")

// Shell is the interactive stepper. Plain lines are fed to the region one
// symbol per tick, lines starting with / are commands.
type Shell struct {
	runner *runner
	rl     *readline.Instance
	out    io.Writer
	color  bool
}

// NewShell creates a readline backed shell.
func NewShell(r *runner, historyFile string) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mhtmseq>\033[0m ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("/stats"),
			readline.PcItem("/segments"),
			readline.PcItem("/cell"),
			readline.PcItem("/snapshot", readline.PcItem("all")),
			readline.PcItem("/reset"),
			readline.PcItem("/learn", readline.PcItem("on"), readline.PcItem("off")),
			readline.PcItem("/grid"),
			readline.PcItem("/help"),
			readline.PcItem("/quit"),
		),
	})
	if err != nil {
		return nil, err
	}

	return &Shell{
		runner: r,
		rl:     rl,
		out:    rl.Stdout(),
		color:  isTerminalWriter(rl.Config.Stdout),
	}, nil
}

// Run reads lines until EOF, /quit or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	defer s.rl.Close()

	go func() {
		<-ctx.Done()
		s.rl.Close()
	}()

	fmt.Fprintln(s.out, "Type symbols to feed them one per tick. /help lists commands.")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				return nil
			}
			return err
		}

		if err := s.handleLine(ctx, line); err != nil {
			if err == errQuit {
				return nil
			}
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
}

func (s *Shell) handleLine(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if strings.HasPrefix(line, "/") {
		return s.handleCommand(line)
	}

	results, err := s.runner.feed(ctx, line)
	for _, res := range results {
		fmt.Fprintf(s.out, "%5d  %q  bursting %d/%d  next %s\n",
			res.Iteration, res.Symbol, res.Bursting, len(res.Active), formatPrediction(res))
	}
	return err
}

func (s *Shell) handleCommand(line string) error {
	parts := strings.Fields(line)
	region := s.runner.region

	switch parts[0] {
	case "/quit", "/exit", "/q":
		return errQuit

	case "/help", "/h":
		s.printHelp()

	case "/stats":
		stats := region.Stats()
		fmt.Fprint(s.out, stats.ToString())
		fmt.Fprintf(s.out, "avg bursting %.3f\n", stats.AvgBurstingFraction())
		for _, m := range s.runner.methods {
			bs := s.runner.baseline.Stats(m)
			fmt.Fprintf(s.out, "baseline %-6s missing %5.1f%%  extra %5.1f%%\n", m, bs.AvgPctMissing(), bs.AvgPctExtra())
		}

	case "/segments":
		s.printSegmentStats()

	case "/cell":
		if len(parts) != 3 {
			return fmt.Errorf("usage: /cell <column> <cell>")
		}
		col, err := strconv.Atoi(parts[1])
		if err != nil {
			return fmt.Errorf("bad column %q: %w", parts[1], err)
		}
		idx, err := strconv.Atoi(parts[2])
		if err != nil {
			return fmt.Errorf("bad cell %q: %w", parts[2], err)
		}
		if col < 0 || col >= region.NumColumns() || idx < 0 || idx >= len(region.Columns()[col].Cells()) {
			return fmt.Errorf("no cell %d in column %d", idx, col)
		}
		fmt.Fprintln(s.out, region.SprintCell(col, idx, false))

	case "/snapshot":
		return s.printSnapshot(parts[1:])

	case "/reset":
		s.runner.reset()
		fmt.Fprintln(s.out, "Sequence reset.")

	case "/learn":
		if len(parts) > 1 {
			switch parts[1] {
			case "on":
				region.SetLearning(true)
			case "off":
				region.SetLearning(false)
			default:
				return fmt.Errorf("usage: /learn on|off")
			}
		}
		fmt.Fprintf(s.out, "Learning: %v\n", region.Learning())

	case "/grid":
		return renderGrid(s.out, region, s.color)

	default:
		fmt.Fprintf(s.out, "Unknown command: %s\n", parts[0])
	}

	return nil
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, "Commands:")
	fmt.Fprintln(s.out, "  /stats              prediction stats and baselines")
	fmt.Fprintln(s.out, "  /segments           distal segment statistics")
	fmt.Fprintln(s.out, "  /cell <col> <idx>   dump one cell's segments")
	fmt.Fprintln(s.out, "  /snapshot [col|all] cell state counts, one column or every matrix")
	fmt.Fprintln(s.out, "  /reset              start a new sequence")
	fmt.Fprintln(s.out, "  /learn on|off       toggle learning")
	fmt.Fprintln(s.out, "  /grid               draw the column grid")
	fmt.Fprintln(s.out, "  /quit               exit")
}

func (s *Shell) printSegmentStats() {
	stats := s.runner.region.CalcSegmentStats(true)
	fmt.Fprintf(s.out, "segments %d  synapses %d  connected %d  mean permanence %.3f\n",
		stats.NumSegments, stats.NumSynapses, stats.NumConnectedSynapses, stats.MeanPermanence)
	fmt.Fprintf(s.out, "active segments %d  active synapses %d\n", stats.NumActiveSegments, stats.NumActiveSynapses)
	fmt.Fprintf(s.out, "segments per cell %s\n", formatHistogram(stats.DistNumSegsPerCell))
	fmt.Fprintf(s.out, "segment sizes     %s\n", formatHistogram(stats.DistSegSizes))
	fmt.Fprintf(s.out, "permanence tenths %s\n", formatHistogram(stats.DistPermValues))

	if conns := s.runner.region.ProximalConnections(); conns != nil {
		fmt.Fprintf(s.out, "proximal: %d connected synapses on %d columns\n",
			conns.TotalNonZeroCount(), len(conns.NonZeroRows()))
	}
}

func (s *Shell) printSnapshot(args []string) error {
	snap := s.runner.region.Snapshot()
	if len(args) == 0 {
		fmt.Fprintln(s.out, snap.Summary())
		return nil
	}
	if args[0] == "all" {
		fmt.Fprint(s.out, snap.ToString())
		return nil
	}

	col, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("bad column %q: %w", args[0], err)
	}
	if col < 0 || col >= s.runner.region.NumColumns() {
		return fmt.Errorf("no column %d", col)
	}
	fmt.Fprint(s.out, snap.DescribeColumn(col))
	return nil
}

func formatHistogram(dist map[int]int) string {
	keys := make([]int, 0, len(dist))
	for k := range dist {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%d:%d", k, dist[k])
	}
	return strings.Join(parts, " ")
}
