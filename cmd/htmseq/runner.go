package main

import (
	"context"
	"fmt"
	"io"
	"log"

	htm "github.com/htm-community/htmseq"
	"github.com/htm-community/htmseq/encoders"
)

// tickResult describes one compute of the region.
type tickResult struct {
	Iteration       int
	Symbol          string
	Active          []int
	Predicted       []int
	Bursting        int
	ActiveCells     []htm.SparseEntry
	PredictiveCells []htm.SparseEntry
	PredictedSymbol string
	Confidence      float64
}

// runner feeds symbols through the encoder and region and keeps the
// baseline predictors in step.
type runner struct {
	cfg      *Config
	region   *htm.Region
	encoder  *encoders.SymbolEncoder
	baseline *htm.TrivialPredictor
	methods  []htm.PredictorMethod
	hub      *Hub
	runID    string
	out      io.Writer
}

func newRunner(cfg *Config, runID string, logger *log.Logger, out io.Writer) (*runner, error) {
	enc, err := encoders.NewSymbolEncoder(cfg.Encoder.Params())
	if err != nil {
		return nil, fmt.Errorf("failed to create encoder: %w", err)
	}

	region, err := htm.NewRegion(cfg.Region.Params(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create region: %w", err)
	}
	if err := region.Initialize(enc.Width()); err != nil {
		return nil, fmt.Errorf("failed to initialize region: %w", err)
	}

	methods, err := cfg.Run.BaselineMethods()
	if err != nil {
		return nil, err
	}
	baseline := htm.NewTrivialPredictor(region.NumColumns(), methods, cfg.Region.Seed)
	if logger != nil {
		baseline.Logger = logger
	}
	baseline.Verbosity = cfg.Region.Verbosity

	return &runner{
		cfg:      cfg,
		region:   region,
		encoder:  enc,
		baseline: baseline,
		methods:  methods,
		runID:    runID,
		out:      out,
	}, nil
}

// step runs one symbol through the region.
func (r *runner) step(symbol string) (tickResult, error) {
	if err := r.region.Compute(r.encoder.EncodeIntoArray(symbol)); err != nil {
		return tickResult{}, fmt.Errorf("compute %q: %w", symbol, err)
	}

	active := r.region.ActiveColumnIndices()
	r.baseline.Learn(active)

	stats := r.region.Stats()
	snap := r.region.Snapshot()
	decoded := r.encoder.Decode(r.region.PredictedInput())
	res := tickResult{
		Iteration:       r.region.Iteration(),
		Symbol:          symbol,
		Active:          active,
		Predicted:       r.region.PredictedColumnIndices(),
		Bursting:        stats.CurBurstingCols,
		ActiveCells:     snap.ActiveCells.Entries(),
		PredictiveCells: snap.PredictiveCells.Entries(),
		PredictedSymbol: decoded.Symbol,
		Confidence:      decoded.Confidence,
	}

	if r.hub != nil {
		if err := r.hub.BroadcastTick(r.runID, res); err != nil {
			return res, fmt.Errorf("broadcast tick: %w", err)
		}
	}
	return res, nil
}

// feed steps through text one rune at a time.
func (r *runner) feed(ctx context.Context, text string) ([]tickResult, error) {
	results := make([]tickResult, 0, len(text))
	for _, ch := range text {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := r.step(string(ch))
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// reset marks a sequence boundary for the region and the baselines.
func (r *runner) reset() {
	r.region.Reset()
	r.baseline.Reset()
	if r.hub != nil {
		r.hub.BroadcastReset(r.runID, r.region.Iteration())
	}
}

// runPasses feeds text passes times and prints one summary line per pass.
func (r *runner) runPasses(ctx context.Context, text string, passes int) error {
	if text == "" {
		return fmt.Errorf("nothing to run: empty text")
	}

	for pass := 1; pass <= passes; pass++ {
		if r.cfg.Run.ResetEachPass {
			r.reset()
		}
		r.region.ResetStats()
		r.baseline.ResetStats()

		results, err := r.feed(ctx, text)
		if err != nil {
			return err
		}

		stats := r.region.Stats()
		last := results[len(results)-1]
		fmt.Fprintf(r.out, "pass %3d  bursting %.3f  missing %5.1f%%  extra %5.1f%%  next %s",
			pass, stats.AvgBurstingFraction(), stats.AvgPctMissing(), stats.AvgPctExtra(),
			formatPrediction(last))
		for _, m := range r.methods {
			bs := r.baseline.Stats(m)
			fmt.Fprintf(r.out, "  %s missing %5.1f%%", m, bs.AvgPctMissing())
		}
		fmt.Fprintln(r.out)
	}
	return nil
}

func formatPrediction(res tickResult) string {
	if res.PredictedSymbol == "" {
		return "-"
	}
	return fmt.Sprintf("%q (%.2f)", res.PredictedSymbol, res.Confidence)
}
