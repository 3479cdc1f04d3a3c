package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	confPath := flag.String("awconf", defaultConfPath(), "Path to the wallsync configuration file.")

	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	cmd, rest := args[0], args[1:]

	a, err := newApp(*confPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "wallsync:", err)
		os.Exit(1)
	}

	switch cmd {
	case "random":
		err = a.cmdRandom(rest)
	case "sync":
		err = a.cmdSync(rest)
	case "preview":
		err = a.cmdPreview(rest)
	case "list-monitors":
		err = a.cmdListMonitors(rest)
	case "show-gpus":
		err = a.cmdShowGPUs(rest)
	case "interactive":
		err = a.cmdInteractive(rest)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		a.log.Error("command failed", "command", cmd, "error", err)
		fmt.Fprintln(os.Stderr, "wallsync:", err)
		os.Exit(1)
	}

	// A worker pool panic recovers internally and only sets the closing
	// flag; it never returns as an error from the command itself, so it
	// must be checked for separately to give a panic the same non-zero
	// exit code a returned error would.
	if a.closing.Closed() {
		a.log.Error("command failed", "command", cmd, "error", "a background task panicked")
		fmt.Fprintln(os.Stderr, "wallsync: a background task panicked; see the log for details")
		os.Exit(1)
	}
}

func defaultConfPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + "/wallsync/config.toml"
	}
	return "wallsync.toml"
}

func usage() {
	fmt.Fprintln(os.Stderr, `wallsync: desktop wallpaper cache builder and display tool

Usage:
  wallsync [--awconf FILE] <command> [args]

Commands:
  random                          display a random selection from the library
  sync [--clean-monitors]         rebuild and reconcile the full on-disk cache
  preview FILE [flags]            build and display a single image without caching it
  list-monitors                   print the attached displays
  show-gpus                       print GPU resizer availability
  interactive FILE                not implemented by this core; see the Shuffler/interactive notes in the design doc
`)
}
