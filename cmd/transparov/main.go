// Command transparov is a UCI-speaking chess engine: a parallel,
// iterative-deepening negamax searcher with aspiration windows, a shared
// lock-free transposition table, quiescence search, and Lazy-SMP worker
// voting.
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ahoem/transparov/engine"
	"github.com/ahoem/transparov/uci"
)

const defaultHashMB = 64

func main() {
	logger, err := engine.NewLogger("engine.log")
	if err != nil {
		fmt.Fprintln(os.Stderr, "transparov: failed to open log file:", err)
		os.Exit(1)
	}
	defer logger.Close()

	eng := engine.NewEngine(defaultHashMB, uci.NewWriter(os.Stdout), logger)

	in := make(chan uci.InMessage, 64)
	go readStdin(in)
	go forwardSignals(in)

	eng.Run(in)
}

// readStdin is the UCI I/O reader thread: it parses each line and forwards
// the typed message.
func readStdin(out chan<- uci.InMessage) {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		out <- uci.Parse(scanner.Text())
	}
	close(out)
}

// forwardSignals injects a synthetic quit on SIGINT/SIGTERM.
func forwardSignals(out chan<- uci.InMessage) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	defer func() { recover() }() // out may already be closed by readStdin
	out <- uci.InMessage{Kind: uci.Quit}
}
