package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/lixenwraith/spacejam/audio"
	"github.com/lixenwraith/spacejam/config"
	"github.com/lixenwraith/spacejam/core"
	"github.com/lixenwraith/spacejam/game"
	"github.com/lixenwraith/spacejam/input"
	"github.com/lixenwraith/spacejam/logging"
	"github.com/lixenwraith/spacejam/manifest"
)

// Game binds a session to the terminal, speaker and key table
type Game struct {
	screen  tcell.Screen
	session *game.Session
	sound   *audio.SoundManager
	keys    *input.KeyTable
	hold    *input.HoldTracker
	log     zerolog.Logger

	logFile *os.File
}

func NewGame(cfg *config.Config) (*Game, error) {
	id := uuid.New()

	log, logFile, err := logging.Setup(cfg.Debug, cfg.LogDir, id.String())
	if err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}
	g := &Game{
		log:     log,
		logFile: logFile,
		keys:    input.DefaultKeyTable(),
		hold:    input.NewHoldTracker(0, 0),
	}

	if err := g.keys.Apply(cfg.Keys); err != nil {
		g.closeLog()
		return nil, fmt.Errorf("applying key bindings: %w", err)
	}

	scene, err := manifest.Load(cfg.Manifest)
	if err != nil {
		g.closeLog()
		return nil, err
	}

	acfg := audio.DefaultAudioConfig()
	acfg.Enabled = !cfg.Mute
	g.sound = audio.NewSoundManager(acfg)
	if err := g.sound.Initialize(); err != nil {
		// Non-fatal, game can run without sound
		log.Warn().Err(err).Msg("audio initialization failed")
	}

	g.session, err = game.NewSession(game.Options{
		ID:     id,
		Config: cfg,
		Scene:  scene,
		Sound:  g.sound,
		Logger: log,
	})
	if err != nil {
		g.sound.Cleanup()
		g.closeLog()
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		g.cleanupAudioLog()
		return nil, err
	}
	if err := screen.Init(); err != nil {
		g.cleanupAudioLog()
		return nil, err
	}
	screen.HideCursor()
	// Focus loss releases held keys
	screen.EnableFocus()
	g.screen = screen
	core.SetCrashTerminal(screen)

	return g, nil
}

// handleInput forwards a terminal event to the session bus, false ends the game
func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		name, ok := g.keys.Resolve(ev)
		if !ok {
			return true
		}
		if !input.IsHoldKey(name) {
			g.session.Send(name)
			return !g.session.Quitting()
		}
		if g.hold.Press(name, ev.When()) {
			g.session.Send(name)
		}

	case *tcell.EventFocus:
		if !ev.Focused {
			g.release(g.hold.ReleaseAll())
		}

	case *tcell.EventResize:
		g.screen.Sync()
	}

	return true
}

// release sends the up event for each key the hold tracker let go
func (g *Game) release(keys []string) {
	for _, k := range keys {
		g.session.Send(input.UpEvent(k))
	}
}

func (g *Game) run(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 256)
	done := make(chan struct{})
	defer close(done)
	core.Go(func() { pollEvents(g.screen.PollEvent, eventChan, done) })

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}

		case now := <-ticker.C:
			g.release(g.hold.Expire(now))
			g.session.Step(now.Sub(last))
			last = now
			drawHUD(g.screen, g.session.ID, g.session.Status())
		}
	}
}

// pollEvents forwards events until poll returns nil (after Fini) or done is closed
func pollEvents(poll func() tcell.Event, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

func (g *Game) cleanup() {
	g.release(g.hold.ReleaseAll())
	core.SetCrashTerminal(nil)
	g.screen.Fini()
	g.cleanupAudioLog()
}

func (g *Game) cleanupAudioLog() {
	g.sound.Cleanup()
	g.log.Info().Msg("session closed")
	g.closeLog()
}

func (g *Game) closeLog() {
	if g.logFile != nil {
		g.logFile.Close()
	}
}

func main() {
	fs := config.Flags()
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "spacejam: %v\n", err)
		os.Exit(2)
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spacejam: %v\n", err)
		os.Exit(1)
	}

	g, err := NewGame(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer g.cleanup()
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	g.run(cfg.FrameInterval())
}
