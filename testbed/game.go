package testbed

import (
	"fmt"
	"time"

	"github.com/spaghettifunk/sketchbook/engine"
	"github.com/spaghettifunk/sketchbook/engine/assets"
	"github.com/spaghettifunk/sketchbook/engine/core"
	"github.com/spaghettifunk/sketchbook/engine/math"
)

// TestGame renders a contact sheet of the loaded assets after every batch.
type TestGame struct {
	*engine.Game
}

type gameState struct {
	outputPath string
	options    SheetOptions
	renders    int
	lastRender time.Time
}

// NewTestGame builds the demo. An empty outputPath only logs a summary.
func NewTestGame(app *engine.ApplicationConfig, outputPath string) (*TestGame, error) {
	if app == nil {
		return nil, fmt.Errorf("application config is required")
	}
	opts := DefaultSheetOptions()
	if app.Name != "" {
		opts.Title = app.Name
	}

	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: app,
			State: &gameState{
				outputPath: outputPath,
				options:    opts,
			},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnOnLoaded = tg.OnLoaded
	tg.FnShutdown = tg.Shutdown

	return tg, nil
}

func (g *TestGame) Initialize(c *assets.Coordinator) error {
	core.LogDebug("TestGame Initialize fn....")
	if c == nil {
		return fmt.Errorf("the engine is not yet initialized with a coordinator")
	}
	return nil
}

func (g *TestGame) OnLoaded(c *assets.Coordinator, done assets.Completion) error {
	state := g.State.(*gameState)
	for _, f := range c.RecentFailures() {
		if f.BatchID == done.BatchID {
			core.LogWarn("%s", f.Error())
		}
	}
	if state.outputPath == "" {
		core.LogInfo("%d assets stored", len(c.IDs()))
		return nil
	}

	img, err := RenderSheet(c, state.options)
	if err != nil {
		return err
	}
	if g.ApplicationConfig.Watch {
		b := img.Bounds()
		r := float64(state.options.Cell) / 4
		badge := fmt.Sprintf("live · %d", state.renders+1)
		if err := DrawBadge(img, badge, math.NewVec2(float64(b.Dx())-r-8, r+8), r); err != nil {
			return err
		}
	}
	if err := WriteSheet(state.outputPath, img); err != nil {
		return err
	}
	state.renders++
	state.lastRender = time.Now()
	core.LogInfo("contact sheet written to '%s'", state.outputPath)
	return nil
}

// Renders reports how many sheets were written.
func (g *TestGame) Renders() int {
	return g.State.(*gameState).renders
}

func (g *TestGame) Shutdown() error {
	state := g.State.(*gameState)
	if state.renders > 0 {
		core.LogDebug("last contact sheet rendered at %s", state.lastRender.Format(time.RFC3339))
	}
	return nil
}
