package cmd

import (
	"fmt"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/humanmotion/api/schemas"
	"github.com/xkilldash9x/humanmotion/internal/config"
	"github.com/xkilldash9x/humanmotion/internal/motion"
	"github.com/xkilldash9x/humanmotion/internal/observability"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// nowFn is injectable for tests.
var nowFn = time.Now

func newGenerateCommand() *cobra.Command {
	var gen config.GenerateConfig

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate trajectories and emit them as JSON.",
		Long: `Plans one or more movements between the given coordinates and writes
the resulting trajectories (points, durations, pauses) as a JSON array.
Each invocation re-randomizes every shape and timing parameter, so two
runs with identical flags produce different output.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			appConfig.Generate = gen
			return runGenerate(cmd, appConfig)
		},
	}

	cmd.Flags().Float64Var(&gen.FromX, "from-x", 0, "start X coordinate")
	cmd.Flags().Float64Var(&gen.FromY, "from-y", 0, "start Y coordinate")
	cmd.Flags().Float64Var(&gen.ToX, "to-x", 800, "destination X coordinate")
	cmd.Flags().Float64Var(&gen.ToY, "to-y", 450, "destination Y coordinate")
	cmd.Flags().Float64Var(&gen.TargetW, "target-w", 0, "target box width (enables click planning context)")
	cmd.Flags().Float64Var(&gen.TargetH, "target-h", 0, "target box height")
	cmd.Flags().IntVarP(&gen.Count, "count", "n", 1, "number of trajectories to generate")
	cmd.Flags().BoolVar(&gen.Steady, "steady", false, "suppress curvature (near-linear path, reduced jitter)")
	cmd.Flags().BoolVar(&gen.Click, "click", false, "sample the destination inside the target box and add a pre-action delay")
	cmd.Flags().StringVarP(&gen.Output, "out", "o", "-", "output file, or - for stdout")
	return cmd
}

// runGenerate plans gen.Count trajectories concurrently. Movement contexts
// must not be shared across concurrent sessions, so every worker owns an
// independent one.
func runGenerate(cmd *cobra.Command, cfg *config.Config) error {
	logger := observability.GetLogger().Named("generate")
	engine := motion.New(engineConfig(cfg.Engine), logger)
	gen := cfg.Generate

	if gen.Count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", gen.Count)
	}
	if gen.Click && (gen.TargetW <= 0 || gen.TargetH <= 0) {
		return fmt.Errorf("--click requires positive --target-w and --target-h")
	}

	start := motion.Vector2D{X: gen.FromX, Y: gen.FromY}

	trajs := make([]*schemas.Trajectory, gen.Count)

	g, _ := errgroup.WithContext(cmd.Context())
	for i := 0; i < gen.Count; i++ {
		g.Go(func() error {
			mc := motion.NewMovementContext(nowFn())
			var (
				traj *schemas.Trajectory
				err  error
			)
			if gen.Click {
				target := schemas.TargetRegion{X: gen.ToX, Y: gen.ToY, W: gen.TargetW, H: gen.TargetH}
				traj, _, err = engine.PlanClick(start, target, mc, gen.Steady)
			} else {
				req := motion.MoveRequest{
					Start:  start,
					End:    motion.Vector2D{X: gen.ToX, Y: gen.ToY},
					Steady: gen.Steady,
				}
				if gen.TargetW > 0 {
					req.Target = &schemas.TargetRegion{X: gen.ToX, Y: gen.ToY, W: gen.TargetW, H: gen.TargetH}
				}
				traj, _, err = engine.PlanMove(req, mc)
			}
			if err != nil {
				return err
			}
			trajs[i] = traj
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("trajectory generation failed: %w", err)
	}

	out, closer, err := openOutput(gen.Output)
	if err != nil {
		return err
	}
	defer closer()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(trajs); err != nil {
		return fmt.Errorf("failed to encode trajectories: %w", err)
	}

	logger.Info("generated trajectories",
		zap.Int("count", gen.Count),
		zap.Bool("click", gen.Click),
		zap.Bool("steady", gen.Steady),
		zap.String("output", gen.Output),
	)
	return nil
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func engineConfig(ec config.EngineConfig) motion.Config {
	return motion.Config{
		ViewportWidth:           ec.ViewportWidth,
		ViewportHeight:          ec.ViewportHeight,
		FittsAMin:               ec.FittsAMin,
		FittsAMax:               ec.FittsAMax,
		FittsBMin:               ec.FittsBMin,
		FittsBMax:               ec.FittsBMax,
		DefaultTargetWidth:      ec.DefaultTargetWidth,
		DistortionStdDevMin:     ec.DistortionStdDevMin,
		DistortionStdDevMax:     ec.DistortionStdDevMax,
		DistortionFreqMin:       ec.DistortionFreqMin,
		DistortionFreqMax:       ec.DistortionFreqMax,
		PerlinAmplitude:         ec.PerlinAmplitude,
		SteadyJitterScale:       ec.SteadyJitterScale,
		MaxOvershootProbability: ec.MaxOvershootProbability,
		PauseMinMs:              ec.PauseMinMs,
		PauseMaxMs:              ec.PauseMaxMs,
		PreActionMinMs:          ec.PreActionMinMs,
		PreActionMaxMs:          ec.PreActionMaxMs,
	}
}
