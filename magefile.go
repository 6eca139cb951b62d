//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Build compiles the hancorpus binary.
func Build() error {
	fmt.Println("Building hancorpus...")
	return sh.RunV("go", "build", "-o", "hancorpus", "./cmd/hancorpus")
}

// Test runs all tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet over the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs vet and the tests.
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Install puts the binary into GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	return sh.RunV("go", "install", "./cmd/hancorpus")
}

// Clean removes build artifacts.
func Clean() error {
	return sh.Rm("hancorpus")
}
