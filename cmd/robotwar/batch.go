package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"

	"robotwar/internal/combat"
	"robotwar/internal/config"
	"robotwar/internal/util"
)

type batchSummary struct {
	Runs     int                `json:"runs"`
	Seed     int64              `json:"seed"`
	AvgTurns float64            `json:"avg_turns"`
	Survival map[string]float64 `json:"survival"`
	Kills    map[string]float64 `json:"kills"`
	Failed   int                `json:"failed,omitempty"`
}

type batchStat struct {
	runs     int
	failed   int
	sumTurns int
	alive    map[string]int
	kills    map[string]int
}

// runBatch plays flagN battles with seeds seed, seed+1, ... on a worker
// pool. Every run owns its engine and RNG; only the tally is shared.
func runBatch(ctx context.Context, b *config.Battle, seed int64) int {
	first, _, err := combat.Setup(b, util.New(seed))
	if err != nil {
		slog.Error("setup battle", "err", err)
		return exitConfig
	}
	if len(first.Snapshot()) == 0 {
		slog.Error("no robot could be placed", "source", b.Source)
		return exitConfig
	}

	st := batchStat{alive: map[string]int{}, kills: map[string]int{}}
	names := make([]string, 0, len(b.Robots))
	for _, r := range b.Robots {
		names = append(names, r.Name)
	}

	var mu sync.Mutex
	wg := sync.WaitGroup{}
	workers := flagWorkers
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan int, flagN)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				e, _, err := combat.Setup(b, util.New(seed+int64(i)))
				if err != nil {
					slog.Debug("batch setup", "run", i, "err", err)
					mu.Lock()
					st.failed++
					mu.Unlock()
					continue
				}
				res, err := combat.RunSingle(ctx, e, b.Steps, false)
				if err != nil {
					continue
				}

				mu.Lock()
				st.runs++
				st.sumTurns += res.TurnsPlayed
				for _, r := range res.Final {
					st.alive[r.Name]++
				}
				for name, k := range res.Kills {
					st.kills[name] += k
				}
				mu.Unlock()
			}
		}()
	}
	for i := 0; i < flagN; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	sum := batchSummary{
		Runs:     st.runs,
		Seed:     seed,
		Survival: map[string]float64{},
		Kills:    map[string]float64{},
		Failed:   st.failed,
	}
	if st.runs > 0 {
		sum.AvgTurns = float64(st.sumTurns) / float64(st.runs)
		for _, name := range names {
			sum.Survival[name] = float64(st.alive[name]) / float64(st.runs)
			sum.Kills[name] = float64(st.kills[name]) / float64(st.runs)
		}
	}

	data := combat.MarshalPretty(sum)
	if flagOut == "" {
		os.Stdout.Write(append(data, '\n'))
	} else if err := os.WriteFile(flagOut, data, 0644); err != nil {
		slog.Error("write batch summary", "path", flagOut, "err", err)
		return exitOutput
	}
	if !flagQuiet {
		printBatch(sum, names)
	}
	if ctx.Err() != nil {
		slog.Warn("batch interrupted", "completed", st.runs, "requested", flagN)
		return exitInterrupted
	}
	return exitOK
}

func printBatch(sum batchSummary, names []string) {
	sorted := append([]string(nil), names...)
	sort.SliceStable(sorted, func(i, j int) bool { return sum.Survival[sorted[i]] > sum.Survival[sorted[j]] })
	fmt.Fprintf(os.Stderr, "Batch %d done, avg %.1f turns\n", sum.Runs, sum.AvgTurns)
	for _, name := range sorted {
		fmt.Fprintf(os.Stderr, "  %-12s survives %5.1f%%  kills %.2f/run\n", name, 100*sum.Survival[name], sum.Kills[name])
	}
}
