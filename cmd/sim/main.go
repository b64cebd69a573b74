package main

import (
	"context"
	"flag"
	"log"
	"math"
	"sort"
	"sync"

	"github.com/milk9111/slingshot/common"
	"github.com/milk9111/slingshot/prefabs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// sim sweeps launch angles against a level without a window and reports how
// many obstacles each shot destroys.
func main() {
	bird := flag.String("bird", "", "bird prefab to launch; empty sweeps every configured bird")
	level := flag.Int("level", 0, "level index")
	frames := flag.Int("frames", 600, "fixed steps per shot")
	angles := flag.Int("angles", 9, "launch angles between 0 and 80 degrees")
	pull := flag.Float64("pull", 80, "pull length")
	parallel := flag.Int("parallel", 4, "worlds simulated at once")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger, err := common.NewLogger(*debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		logger.Fatal("load game spec", zap.Error(err))
	}

	birds := spec.Launcher.Birds
	if *bird != "" {
		birds = []string{*bird}
	}

	var shots []shot
	for _, b := range birds {
		for i := 0; i < *angles; i++ {
			deg := 0.0
			if *angles > 1 {
				deg = 80 * float64(i) / float64(*angles-1)
			}
			shots = append(shots, shot{Bird: b, Angle: deg * math.Pi / 180, Pull: *pull})
		}
	}

	var (
		mu      sync.Mutex
		results []outcome
	)
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(1, *parallel))
	for _, s := range shots {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := simulate(spec, *level, s, *frames, logger)
			if err != nil {
				return err
			}
			mu.Lock()
			results = append(results, out)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Bird != results[j].Bird {
			return results[i].Bird < results[j].Bird
		}
		return results[i].Angle < results[j].Angle
	})
	for _, r := range results {
		logger.Info("shot",
			zap.String("bird", r.Bird),
			zap.Float64("angle_deg", r.Angle*180/math.Pi),
			zap.Int("destroyed", r.Destroyed()),
			zap.Int("remaining", r.Remaining),
			zap.Bool("power_used", r.PowerUsed),
		)
	}
}
