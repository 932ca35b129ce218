package cmd

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/karto-app/karto/pkg/gestures"
	"github.com/karto-app/karto/pkg/graphics"
	"github.com/karto-app/karto/pkg/platform"
	"github.com/karto-app/karto/pkg/sheet"
	kartotest "github.com/karto-app/karto/pkg/testing"
)

// holdBeforeRelease is how long a zero-velocity drag rests before lifting.
const holdBeforeRelease = 150 * time.Millisecond

var (
	simulateDrag     float64
	simulateVelocity float64
	simulateMaxTime  time.Duration
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay a handle drag headlessly and log every frame",
	Long: `Open the sheet on a simulated clock, drag its handle down by --drag
points and release at roughly --velocity points per second. Every frame's
offset, backdrop opacity and state is logged, followed by the outcome.

A velocity of 0 drags, rests and then lifts, so only the distance decides.

Examples:
  karto simulate --drag 200 --velocity 0
  karto simulate --drag 40 --velocity 1500`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().Float64Var(&simulateDrag, "drag", 200, "downward drag distance in points")
	simulateCmd.Flags().Float64Var(&simulateVelocity, "velocity", 0, "release velocity in points per second")
	simulateCmd.Flags().DurationVar(&simulateMaxTime, "max-time", 2*time.Second, "stop logging after this much animation time")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if simulateDrag <= 0 {
		return fmt.Errorf("--drag must be positive")
	}
	if simulateVelocity < 0 {
		return fmt.Errorf("--velocity must not be negative")
	}

	pump := kartotest.NewFramePump()
	metrics := platform.NewMetricsService(cfg.Metrics())
	closed := false
	opts := append(cfg.SheetOptions(),
		sheet.WithLogger(logger.WithPrefix("sheet")),
		sheet.WithOnClose(func() { closed = true }),
	)
	s := sheet.New(pump.Scheduler(), metrics, opts...)
	defer s.Dispose()

	s.SetVisible(true)
	if err := pump.Settle(600); err != nil {
		return err
	}
	t0 := pump.Clock().Now()
	logFrame := func(phase string) {
		logger.Info(phase,
			"t", pump.Clock().Now().Sub(t0),
			"offset", math.Round(s.Offset()*10)/10,
			"backdrop", math.Round(s.BackdropOpacity()*1000)/1000,
			"state", s.Visibility(),
			"drag", s.Drag().Phase(),
		)
	}
	logFrame("open")

	handle := s.Frame().Panel.Handle
	start := graphics.Offset{X: (handle.Left + handle.Right) / 2, Y: (handle.Top + handle.Bottom) / 2}

	duration := 200 * time.Millisecond
	if simulateVelocity > 0 {
		duration = time.Duration(simulateDrag / simulateVelocity * float64(time.Second))
	}
	steps := max(int(duration/kartotest.FrameInterval), 1)
	step := duration / time.Duration(steps)

	send := func(phase gestures.PointerPhase, y float64) {
		s.HandlePointer(gestures.PointerEvent{
			PointerID: 1,
			Phase:     phase,
			Position:  graphics.Offset{X: start.X, Y: y},
			Time:      pump.Clock().Now(),
		})
	}

	send(gestures.PointerPhaseDown, start.Y)
	for i := 1; i <= steps; i++ {
		pump.Pump(step)
		send(gestures.PointerPhaseMove, start.Y+simulateDrag*float64(i)/float64(steps))
		logFrame("drag")
	}
	end := start.Y + simulateDrag
	if simulateVelocity == 0 {
		pump.Pump(holdBeforeRelease)
		send(gestures.PointerPhaseMove, end)
		logFrame("hold")
	}
	send(gestures.PointerPhaseUp, end)
	logFrame("release")

	for elapsed := time.Duration(0); s.IsAnimating() && elapsed < simulateMaxTime; elapsed += kartotest.FrameInterval {
		pump.Pump(kartotest.FrameInterval)
		logFrame("settle")
	}

	outcome := "snapped back"
	if closed {
		outcome = "dismissed"
	}
	logger.Info("simulation finished",
		"outcome", outcome,
		"mounted", s.IsMounted(),
		"closes", s.Closes(),
		"frames", pump.Frames(),
	)
	return nil
}
