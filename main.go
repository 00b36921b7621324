/*
kiki draws a night sky: a spinning moon, three pulsing stars and kiki
flying away to the left.
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/profile"
	"github.com/spaghettifunk/kiki/engine"
	"github.com/spaghettifunk/kiki/engine/core"
	"github.com/spaghettifunk/kiki/nightsky"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the toml configuration")
	profileMode := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	flag.Parse()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		core.LogFatal("unknown profile mode %q, expected cpu or mem", *profileMode)
	}

	config, err := engine.LoadApplicationConfig(*configPath)
	if err != nil {
		core.LogFatal("failed to load the configuration: %s", err)
	}

	sky := nightsky.New(config)

	e, err := engine.New(sky.Game)
	if err != nil {
		core.LogFatal("failed to create the engine: %s", err)
	}

	if err := e.Initialize(); err != nil {
		_ = e.Shutdown()
		core.LogFatal("failed to initialize: %s", err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	// the loop picks the quit up on its next iteration
	go func() {
		<-sigCh
		core.EventPost(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
	}()

	runErr := e.Run()
	if err := e.Shutdown(); err != nil {
		core.LogError("shutdown: %s", err)
	}
	if runErr != nil {
		core.LogFatal("engine stopped: %s", runErr)
	}
}
