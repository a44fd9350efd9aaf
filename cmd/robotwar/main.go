package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"robotwar/internal/combat"
	"robotwar/internal/config"
	"robotwar/internal/prefs"
	"robotwar/internal/render"
	"robotwar/internal/storage"
	"robotwar/internal/util"
)

const (
	exitOK          = 0
	exitConfig      = 1
	exitOutput      = 2
	exitInterrupted = 130
)

var (
	flagConfig  string
	flagSeed    int64
	flagSteps   int
	flagAgain   bool
	flagOut     string // JSON: {init, events, result}
	flagStore   string
	flagDB      string
	flagList    bool
	flagTUI     bool
	flagDelay   time.Duration
	flagQuiet   bool
	flagPrefs   bool
	flagN       int
	flagWorkers int
	flagVerbose bool
)

func init() {
	flag.StringVar(&flagConfig, "config", "", "battle config (.yaml/.yml or the line format); empty plays the built-in battle")
	flag.Int64Var(&flagSeed, "seed", 0, "random seed (0 = config seed, else now)")
	flag.IntVar(&flagSteps, "steps", 0, "override the configured number of turns")
	flag.BoolVar(&flagAgain, "again", false, "replay the last run's config and seed")
	flag.StringVar(&flagOut, "out", "", "write the run as JSON to file; batch mode writes its summary here (empty: stdout for batch)")
	flag.StringVar(&flagStore, "store", "", "archive backend: memory|sqlite (empty: no archive)")
	flag.StringVar(&flagDB, "db", "robotwar.db", "sqlite archive path")
	flag.BoolVar(&flagList, "list", false, "list archived runs and exit")
	flag.BoolVar(&flagTUI, "tui", false, "draw the battle live in the terminal")
	flag.DurationVar(&flagDelay, "delay", 200*time.Millisecond, "pause between turns in -tui mode")
	flag.BoolVar(&flagQuiet, "quiet", false, "no narration, summary only")
	flag.BoolVar(&flagPrefs, "prefs", true, "remember the last run for -again")
	flag.IntVar(&flagN, "n", 1, "number of battles; more than 1 runs a batch")
	flag.IntVar(&flagWorkers, "workers", 8, "batch worker goroutines")
	flag.BoolVar(&flagVerbose, "v", false, "debug logging")
}

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if flagList {
		return listRuns(ctx)
	}

	pm := openPrefs()
	cfgPath, seed := flagConfig, flagSeed
	if flagAgain {
		last, ok, err := pm.Load()
		switch {
		case err != nil:
			slog.Warn("cannot read last run", "err", err)
		case !ok:
			slog.Warn("no previous run recorded")
		default:
			if cfgPath == "" {
				cfgPath = last.Config
			}
			if seed == 0 {
				seed = last.Seed
			}
			if flagSteps == 0 {
				flagSteps = last.Steps
			}
		}
	}

	b, err := loadBattle(cfgPath)
	if err != nil {
		slog.Error("load config", "path", cfgPath, "err", err)
		return exitConfig
	}
	if flagSteps > 0 {
		b.Steps = flagSteps
	}
	seed = chooseSeed(seed, b.Seed)
	slog.Debug("config loaded", "source", b.Source, "width", b.Battlefield.Width, "height", b.Battlefield.Height, "robots", len(b.Robots), "steps", b.Steps, "seed", seed)

	if flagN > 1 {
		return runBatch(ctx, b, seed)
	}
	return runOne(ctx, b, seed, pm)
}

func loadBattle(path string) (*config.Battle, error) {
	if path == "" || path == "builtin" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func chooseSeed(flagSeed, cfgSeed int64) int64 {
	switch {
	case flagSeed != 0:
		return flagSeed
	case cfgSeed != 0:
		return cfgSeed
	default:
		return time.Now().UnixNano()
	}
}

func openPrefs() *prefs.Manager {
	if !flagPrefs {
		return prefs.New(nil)
	}
	pm, err := prefs.Open("robotwar")
	if err != nil {
		slog.Warn("prefs degraded, last run will not be remembered", "err", err)
	}
	return pm
}

type dump struct {
	Seed   int64            `json:"seed"`
	Init   combat.InitState `json:"init"`
	Events []combat.Event   `json:"events"`
	Result combat.SimResult `json:"result"`
}

func runOne(ctx context.Context, b *config.Battle, seed int64, pm *prefs.Manager) int {
	e, rejected, err := combat.Setup(b, util.New(seed))
	if err != nil {
		slog.Error("setup battle", "err", err)
		return exitConfig
	}
	for _, r := range rejected {
		slog.Warn("placement rejected", "err", r)
	}
	if len(e.Snapshot()) == 0 {
		slog.Error("no robot could be placed", "source", b.Source)
		return exitConfig
	}
	start := combat.InitOf(e)
	w, h := start.Width, start.Height

	var live *render.LiveView
	if flagTUI {
		if live, err = render.OpenLiveView(); err != nil {
			slog.Warn("live view unavailable, narrating instead", "err", err)
			live = nil
		}
	}
	narrate := !flagQuiet && live == nil
	if narrate {
		fmt.Print(render.Board(w, h, e.Snapshot()))
	}
	e.Emit = func(ev combat.Event) {
		switch {
		case live != nil:
			live.Observe(ev)
			if ev.Kind == combat.EvTurnEnd {
				live.Draw(ev.Turn, w, h, e.Snapshot())
				time.Sleep(flagDelay)
			}
		case narrate:
			logf(ev)
			if ev.Kind == combat.EvTurnEnd {
				fmt.Print(render.Board(w, h, e.Snapshot()))
			}
		}
	}

	res, runErr := combat.RunSingle(ctx, e, b.Steps, true)
	if live != nil {
		if runErr == nil {
			live.WaitKey()
		}
		live.Close()
	}
	if runErr != nil {
		slog.Warn("battle interrupted", "turns", res.TurnsPlayed, "err", runErr)
	}
	fmt.Print(render.Summary(res, seed))

	code := exitOK
	if flagOut != "" {
		out := dump{Seed: seed, Init: start, Events: e.Events(), Result: res}
		out.Result.Events = nil
		if err := os.WriteFile(flagOut, combat.MarshalPretty(out), 0644); err != nil {
			slog.Error("write output", "path", flagOut, "err", err)
			code = exitOutput
		} else {
			slog.Info("saved JSON", "path", flagOut)
		}
	}

	runID := ""
	if id, err := archive(ctx, storage.NewRun(seed, b.Source, b.Steps, start, res, e.Events())); err != nil {
		slog.Error("archive run", "store", flagStore, "err", err)
		code = exitOutput
	} else {
		runID = id
	}

	if err := pm.Save(prefs.LastRun{Seed: seed, Config: b.Source, Steps: b.Steps, RunID: runID}); err != nil {
		slog.Warn("save prefs", "err", err)
	}

	if errors.Is(runErr, context.Canceled) && code == exitOK {
		return exitInterrupted
	}
	return code
}

// logf prints one narrated event, the way the battle log reads on screen.
func logf(ev combat.Event) {
	if line := render.Narrate(ev); line != "" {
		fmt.Printf("[T%02d] %s\n", ev.Turn, line)
	}
}
