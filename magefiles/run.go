//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the night sky demo with config.toml.
func (Run) Demo() error {
	fmt.Println("Run demo...")
	if _, err := executeCmd("go", withArgs("run", ".", "-config", "config.toml"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the demo with the cpu profiler on.
func (Run) Profile() error {
	if _, err := executeCmd("go", withArgs("run", ".", "-config", "config.toml", "-profile", "cpu"), withStream()); err != nil {
		return err
	}
	return nil
}
