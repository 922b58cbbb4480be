package main

import (
	"fmt"
	"os"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: flightreduce <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run       Count flights per passenger in a CSV file")
	fmt.Fprintln(os.Stderr, "  top       Show the passengers with the most flights for a saved run")
	fmt.Fprintln(os.Stderr, "  history   List saved runs")
	fmt.Fprintln(os.Stderr, "  show      Show details of a saved run")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Run 'flightreduce <command> -h' for command flags.")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	args := os.Args[2:]

	switch os.Args[1] {
	case "run":
		runCommand(args)
	case "top":
		topCommand(args)
	case "history":
		historyCommand(args)
	case "show":
		showCommand(args)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}
