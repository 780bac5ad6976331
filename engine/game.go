package engine

import (
	"github.com/spaghettifunk/sketchbook/engine/assets"
)

// Game is the application plugged into the engine. Every hook is optional.
type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnOnLoaded        OnLoaded
	FnShutdown        Shutdown
}

type Initialize func(c *assets.Coordinator) error

// OnLoaded runs on the engine goroutine after each batch completes.
type OnLoaded func(c *assets.Coordinator, done assets.Completion) error
type Shutdown func() error
