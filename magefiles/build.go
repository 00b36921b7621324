//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Downloads the modules and builds the kiki binary into bin/.
func (Build) Binary() error {
	if err := goModDownload(); err != nil {
		return err
	}
	fmt.Println("Building kiki...")
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/kiki", "."), withStream()); err != nil {
		return err
	}
	return nil
}
