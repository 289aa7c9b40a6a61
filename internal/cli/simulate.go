package cli

import (
	"cmp"
	"fmt"
	"image"
	"math"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/tiling"
	"github.com/gogpu/tiling/host"
	"github.com/gogpu/tiling/internal/config"
)

// nearestShown is how many upcoming tiles each frame report lists.
const nearestShown = 5

// scroll describes a viewport moving over a layer at constant velocity.
type scroll struct {
	frames   int
	interval time.Duration
	vx, vy   float64 // layer pixels per second
}

// frameReport summarizes one simulated frame.
type frameReport struct {
	Frame    int
	Viewport tiling.RectF
	Tiles    int
	Live     int
	Visible  int
	Declined int
	Nearest  []tileReport
}

// tileReport is the priority of one tile that is not yet visible.
type tileReport struct {
	Index    tiling.TileIndex
	Priority tiling.Priority
}

// simulate scrolls the configured viewport over t and runs one pending
// priority update and activation per frame.
func simulate(t *tiling.Tiling, client *host.Client, cfg *config.Config, s scroll) []frameReport {
	scale := t.ContentsScale()
	vw := float64(cfg.Viewport.Width)
	vh := float64(cfg.Viewport.Height)
	maxX := math.Max(0, float64(t.LayerBounds().X)-vw)
	maxY := math.Max(0, float64(t.LayerBounds().Y)-vh)

	device := image.Pt(int(math.Ceil(vw*scale)), int(math.Ceil(vh*scale)))

	dt := s.interval.Seconds()
	var lastX, lastY float64
	reports := make([]frameReport, 0, s.frames)

	for frame := range s.frames {
		x := clamp(float64(frame)*s.vx*dt, 0, maxX)
		y := clamp(float64(frame)*s.vy*dt, 0, maxY)
		if frame == 0 {
			lastX, lastY = x, y
		}

		client.BeginFrame()
		declinedBefore := client.Stats().Declined
		viewport := tiling.NewRectF(x, y, vw, vh)
		t.CreateTilesFromLayerRect(tiling.ToEnclosingRect(viewport))

		t.UpdateTilePriorities(tiling.PendingTree, tiling.PriorityUpdate{
			DeviceViewport:            device,
			ViewportInLayerSpace:      viewport,
			LastLayerContentsScale:    scale,
			CurrentLayerContentsScale: scale,
			LastScreenTransform:       tiling.Translate(-lastX*scale, -lastY*scale),
			CurrentScreenTransform:    tiling.Translate(-x*scale, -y*scale),
			TimeDelta:                 s.interval,
		})

		report := frameReport{
			Frame:    frame,
			Viewport: viewport,
			Tiles:    t.TileCount(),
			Declined: client.Stats().Declined - declinedBefore,
		}
		for idx, tile := range t.Tiles() {
			p := tile.Priority(tiling.PendingTree)
			if !p.Live {
				continue
			}
			report.Live++
			if p.DistanceToVisible == 0 {
				report.Visible++
				continue
			}
			report.Nearest = append(report.Nearest, tileReport{Index: idx, Priority: p})
		}
		slices.SortStableFunc(report.Nearest, func(a, b tileReport) int {
			if c := cmp.Compare(a.Priority.TimeToVisible, b.Priority.TimeToVisible); c != 0 {
				return c
			}
			return cmp.Compare(a.Priority.DistanceToVisible, b.Priority.DistanceToVisible)
		})
		if len(report.Nearest) > nearestShown {
			report.Nearest = report.Nearest[:nearestShown]
		}
		reports = append(reports, report)

		// Commit: the pending tree becomes active on a fresh pile.
		client.SetPile(client.Pile().Next())
		t.DidBecomeActive()

		lastX, lastY = x, y
	}
	return reports
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func newSimulateCmd() *cobra.Command {
	var (
		frames   int
		velocity string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Scroll the viewport and print tile priorities per frame",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			logger := loggerFromContext(cmd.Context())

			s := scroll{
				frames:   cfg.Simulate.Frames,
				interval: cfg.Simulate.FrameInterval,
				vx:       cfg.Simulate.VelocityX,
				vy:       cfg.Simulate.VelocityY,
			}
			if cmd.Flags().Changed("frames") {
				if frames < 0 {
					return fmt.Errorf("frames must not be negative, got %d", frames)
				}
				s.frames = frames
			}
			if velocity != "" {
				vx, vy, err := parseVector(velocity)
				if err != nil {
					return err
				}
				s.vx, s.vy = vx, vy
			}

			t, client := buildTiling(cfg)
			logger.Debug("simulating", "frames", s.frames, "velocity", fmt.Sprintf("%g,%g", s.vx, s.vy),
				"interval", s.interval)

			w := cmd.OutOrStdout()
			for _, r := range simulate(t, client, cfg, s) {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				printTitle(w, "Frame %d  viewport (%.0f,%.0f)", r.Frame, r.Viewport.X, r.Viewport.Y)
				printKeyValue(w, "tiles", fmt.Sprintf("%d (%d live, %d visible, %d declined)",
					r.Tiles, r.Live, r.Visible, r.Declined))
				for _, n := range r.Nearest {
					printDetail(w, "%-8s in %-7s distance %.0f", n.Index, formatSeconds(n.Priority.TimeToVisible),
						n.Priority.DistanceToVisible)
				}
			}

			stats := client.Stats()
			printKeyValue(w, "created", fmt.Sprintf("%d", stats.Created))
			printKeyValue(w, "rebased", fmt.Sprintf("%d", stats.Rebased))
			return nil
		},
	}

	cmd.Flags().IntVar(&frames, "frames", 0, "number of frames to simulate (default from config)")
	cmd.Flags().StringVar(&velocity, "velocity", "", "scroll velocity as vx,vy in layer pixels per second")
	return cmd
}
