package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spaghettifunk/sketchbook/engine/assets"
	"github.com/spaghettifunk/sketchbook/engine/core"
	"github.com/spaghettifunk/sketchbook/engine/ui"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	mu           sync.Mutex
	currentStage Stage
	gameInstance *Game
	config       core.Config
	coordinator  *assets.Coordinator
	program      *tea.Program
	clock        *core.Clock
	logFile      *os.File

	ctx    context.Context
	cancel context.CancelFunc

	// completions queues batch completions for the engine goroutine.
	completions chan assets.Completion
}

func New(g *Game) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, fmt.Errorf("game and application config are required")
	}
	app := g.ApplicationConfig

	cfg, err := core.LoadConfig(app.ConfigPath)
	if err != nil {
		core.LogError("%s", err.Error())
		return nil, err
	}
	if app.Watch {
		cfg.Preloader.Watch = true
	}
	if app.LogLevel != "" {
		cfg.Log.Level = app.LogLevel
	}
	level, err := core.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	core.SetLogLevel(level)

	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		config:       cfg,
		clock:        core.NewClock(),
		ctx:          ctx,
		cancel:       cancel,
		completions:  make(chan assets.Completion, 16),
	}, nil
}

func (e *Engine) Stage() Stage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentStage
}

func (e *Engine) setStage(s Stage) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.currentStage = s
}

func (e *Engine) Config() core.Config {
	return e.config
}

func (e *Engine) Coordinator() *assets.Coordinator {
	return e.coordinator
}

func (e *Engine) Initialize() error {
	if e.Stage() != EngineStageUninitialized {
		return fmt.Errorf("engine already initialized")
	}
	e.setStage(EngineStageInitializing)

	c, err := assets.NewCoordinator(e.config.Preloader)
	if err != nil {
		core.LogError("%s", err.Error())
		return err
	}
	e.coordinator = c

	c.OnComplete(func(done assets.Completion) {
		select {
		case e.completions <- done:
		case <-e.ctx.Done():
		}
	})

	if fn := e.gameInstance.FnInitialize; fn != nil {
		if err := fn(c); err != nil {
			core.LogError("failed to initialize game: %s", err)
			return err
		}
	}

	e.setStage(EngineStageInitialized)
	core.LogInfo("engine initialized with %d workers", e.config.Preloader.Workers)
	return nil
}

// Run loads the manifest and blocks until the first batch completes, or
// until Shutdown when watching for changes.
func (e *Engine) Run() error {
	e.mu.Lock()
	if e.currentStage != EngineStageInitialized {
		e.mu.Unlock()
		return fmt.Errorf("engine is not initialized")
	}
	e.currentStage = EngineStageRunning
	e.clock.Start()
	e.mu.Unlock()

	app := e.gameInstance.ApplicationConfig
	descriptors, err := assets.LoadManifest(app.ManifestPath)
	if err != nil {
		return err
	}

	uiDone := make(chan error, 1)
	if app.Interactive {
		if err := e.redirectLogs(app.LogFile); err != nil {
			return err
		}
		e.program = tea.NewProgram(ui.NewModel(app.Name, !e.config.Preloader.Watch), tea.WithContext(e.ctx))
		detach := ui.Attach(e.program, e.coordinator)
		defer detach()
		go func() {
			_, err := e.program.Run()
			uiDone <- err
		}()
	} else {
		id := e.coordinator.OnProgress(func(p assets.Progress) {
			core.LogInfo("loaded %d/%d assets (%.0f%%)", p.Loaded, p.Total, p.Fraction*100)
		})
		defer e.coordinator.RemoveListener(id)
	}

	batch, err := e.coordinator.Register(e.ctx, descriptors)
	if err != nil {
		return err
	}
	core.LogInfo("registered batch %s with %d assets", batch.ID(), batch.Total())

	if e.config.Preloader.Watch {
		if err := e.coordinator.Watch(e.config.Preloader.BaseDir); err != nil {
			return err
		}
		core.LogInfo("watching '%s' for changes", e.config.Preloader.BaseDir)
	}

	for {
		select {
		case done := <-e.completions:
			e.report(done)
			if fn := e.gameInstance.FnOnLoaded; fn != nil {
				if err := fn(e.coordinator, done); err != nil {
					core.LogError("asset hook failed: %s", err)
				}
			}
			if !e.config.Preloader.Watch && done.BatchID == batch.ID() {
				return e.waitUI(uiDone)
			}
		case err := <-uiDone:
			// The user quit the progress view.
			e.program = nil
			if err != nil && err != tea.ErrProgramKilled {
				return err
			}
			if !e.config.Preloader.Watch {
				return nil
			}
			uiDone = nil
		case <-e.ctx.Done():
			return nil
		}
	}
}

func (e *Engine) waitUI(uiDone <-chan error) error {
	if e.program == nil {
		return nil
	}
	err := <-uiDone
	if err == tea.ErrProgramKilled {
		return nil
	}
	return err
}

func (e *Engine) report(done assets.Completion) {
	stats := e.coordinator.Stats()
	if done.Failed > 0 {
		core.LogWarn("batch %s finished in %s with %d/%d failures", done.BatchID, done.Elapsed, done.Failed, done.Total)
	} else {
		core.LogInfo("batch %s finished in %s", done.BatchID, done.Elapsed)
	}
	core.LogDebug("stored=%d loaded=%d failed=%d bytes=%d", stats.Stored, stats.ItemsLoaded, stats.ItemsFailed, stats.BytesFetched)
}

func (e *Engine) redirectLogs(path string) error {
	if path == "" {
		core.SetLogOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	e.logFile = f
	core.SetLogOutput(f)
	return nil
}

// Shutdown stops the run loop, the progress view and the coordinator.
// It is safe to call more than once.
func (e *Engine) Shutdown() error {
	e.mu.Lock()
	if e.currentStage == EngineStageShuttingDown {
		e.mu.Unlock()
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.clock.Stop()
	e.mu.Unlock()

	e.cancel()

	var err error
	if fn := e.gameInstance.FnShutdown; fn != nil {
		err = fn()
	}
	if e.coordinator != nil {
		if cerr := e.coordinator.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if e.logFile != nil {
		core.SetLogOutput(os.Stderr)
		_ = e.logFile.Close()
	}
	core.LogInfo("engine shut down after %s", e.clock.Elapsed())
	return err
}
