package main

import (
	"context"
	"io"
	"os"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Context context.Context
	Stdout  io.Writer
	Stderr  io.Writer
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Context: context.Background(),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}
