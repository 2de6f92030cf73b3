package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ratsign/audio"
	"github.com/lixenwraith/ratsign/config"
	"github.com/lixenwraith/ratsign/core"
	"github.com/lixenwraith/ratsign/engine"
	"github.com/lixenwraith/ratsign/input"
	"github.com/lixenwraith/ratsign/render"
	"github.com/lixenwraith/ratsign/scene"
	"github.com/lixenwraith/ratsign/status"
)

var (
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/ratsign.log")
	configFlag = flag.String("config", "ratsign.yaml", "YAML config path, a missing file uses the defaults")
	colorFlag  = flag.String("color", "auto", "Color mode: auto, truecolor, 256, mono")
	actorsFlag = flag.Int("actors", 0, "Override the actor count")
	seedFlag   = flag.Uint64("seed", 0, "Override the random seed")
	muteFlag   = flag.Bool("mute", false, "Disable sound")
)

func main() {
	// Crashes on the main goroutine get the same terminal reset as core.Go goroutines
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ratsign: %v\n", err)
		os.Exit(1)
	}
	if *actorsFlag > 0 {
		cfg.Actors = *actorsFlag
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "ratsign: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Printf("ratsign: seed %d, %d actors", seed, cfg.Actors)
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	tuning := cfg.Tuning()
	pieces := scene.BuildPieces(scene.ParseGlyphs(cfg.Logo), cfg.SceneLayout(), tuning, rng)
	world := scene.NewWorld(pieces, cfg.Actors, tuning, rng)
	// The sign starts assembled; the opening scatter knocks it down
	world.Assemble()

	reg := status.NewRegistry()
	settings := cfg.Settings()
	sim := engine.NewSimulation(world, reg, settings)

	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			log.Printf("ratsign: audio unavailable, continuing without: %v", err)
		} else {
			defer sm.Cleanup()
			sim.RegisterEventHandler(audio.NewCueHandler(sm))
		}
	}

	switch *colorFlag {
	case "truecolor":
		os.Setenv("COLORTERM", "truecolor")
	case "256":
		os.Setenv("TCELL_TRUECOLOR", "disable")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	core.SetCrashCleanup(screen.Fini)
	screen.EnableMouse()
	screen.HideCursor()

	renderer := render.NewTerminalRenderer(screen, reg, *colorFlag == "mono")
	clock := engine.NewPausableClock(engine.NewMonotonicTimeProvider())
	loop := engine.NewLoop(sim, clock, settings, func() {
		sim.View(renderer.RenderFrame)
	})
	throttle := input.NewThrottle(engine.NewMonotonicTimeProvider(), cfg.Scatter.Throttle)

	loop.Start()
	defer loop.Stop()

	for {
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch input.Classify(ev) {
		case input.IntentQuit:
			return nil
		case input.IntentScatter:
			if throttle.Allow() {
				loop.RequestScatter()
			}
		case input.IntentPause:
			loop.RequestPauseToggle()
		case input.IntentResize:
			screen.Sync()
		}
	}
}
