package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// commands lists the sub-commands understood by runMain.
var commands = map[string]bool{
	"build":   true,
	"version": true,
	"help":    true,
}

// isCommand reports whether arg names a sub-command.
func isCommand(arg string) bool {
	return commands[arg]
}

// runMain dispatches to a sub-command and returns the process exit code.
// With no command, or when the first argument is a flag, it builds.
func runMain(args []string, env *Environment) int {
	if len(args) > 0 {
		args = args[1:]
	}

	cmd := "build"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		if !isCommand(args[0]) {
			fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
			printUsage(env.Stderr)
			return ExitUsage
		}
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "version":
		fmt.Fprintf(env.Stdout, "mdblog %s\n", Version)
		return ExitSuccess
	case "help":
		return runHelp(args, env)
	}

	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}
	if len(positional) > 0 {
		fmt.Fprintf(env.Stderr, "unexpected argument: %s (use --source and --output)\n", positional[0])
		return ExitUsage
	}

	parent := env.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := notifyContext(parent)
	defer stop()

	if err := runBuild(ctx, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}
