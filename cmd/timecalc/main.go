package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/columbia6/time/internal/domain/entity"
)

// calculator drives the interactive time calculator loop
type calculator struct {
	rl *readline.Instance
}

func main() {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "timecalc> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	c := &calculator{rl: rl}
	c.run()
}

// run starts the interactive command loop
func (c *calculator) run() {
	c.printHelp()

	for {
		line, err := c.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			c.printHelp()

		case "parse", "p":
			c.cmdParse(args)

		case "format", "f":
			c.cmdFormat(args)

		case "date", "d":
			c.cmdDate(args)

		case "parsedate", "pd":
			c.cmdParseDate(args)

		case "delay":
			c.cmdDelay(args)

		case "quit", "exit", "q":
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			return

		default:
			fmt.Fprintf(c.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

// cmdParse converts a duration string to milliseconds
func (c *calculator) cmdParse(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: parse <duration>  (e.g. parse 1h30m)")
		return
	}

	input := strings.Join(args, " ")
	ms, err := entity.ParseDuration(input)
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "error: %v\n", err)
		return
	}

	fmt.Fprintf(c.rl.Stdout(), "%s ms  (%s)\n", formatNumber(ms), entity.FormatDuration(ms))
}

// cmdFormat renders a millisecond count as a duration string
func (c *calculator) cmdFormat(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: format <milliseconds>  (e.g. format 5400000)")
		return
	}

	ms, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "error: not a number: %s\n", args[0])
		return
	}

	fmt.Fprintln(c.rl.Stdout(), entity.FormatDuration(ms))
}

// cmdDate formats the current moment with a pattern
func (c *calculator) cmdDate(args []string) {
	pattern := entity.DefaultDateFormat
	if len(args) > 0 {
		pattern = strings.Join(args, " ")
	}

	now := entity.MomentFromTime(time.Now().UTC())
	fmt.Fprintln(c.rl.Stdout(), entity.FormatDate(now, pattern))
}

// cmdParseDate parses a date string, optionally against a custom pattern
func (c *calculator) cmdParseDate(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: parsedate <input> [pattern]")
		return
	}

	input := args[0]
	pattern := ""
	if len(args) > 1 {
		pattern = args[1]
	}

	m, err := entity.ParseDate(input, pattern)
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "error: %v\n", err)
		return
	}

	fmt.Fprintf(c.rl.Stdout(), "%s  (unix ms %d)\n",
		entity.FormatDate(m, "yyyy-MM-dd HH:mm:ss.SSS"), m.UnixMilli())
}

// cmdDelay waits inline for the given duration; Ctrl-C cancels the wait
func (c *calculator) cmdDelay(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: delay <milliseconds>")
		return
	}

	ms, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "error: not a number: %s\n", args[0])
		return
	}

	fmt.Fprintf(c.rl.Stdout(), "waiting %s (Ctrl-C to cancel)...\n", entity.FormatDuration(ms))

	sig := entity.NewSignal()
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	done := make(chan struct{})
	go func() {
		select {
		case <-interrupt:
			sig.Cancel("interrupted")
		case <-done:
		}
	}()

	start := time.Now()
	err = entity.Delay(context.Background(), ms, sig)
	close(done)
	signal.Stop(interrupt)

	waited := entity.FormatDuration(entity.DurationToMillis(time.Since(start)))
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "cancelled after %s: %v\n", waited, err)
		return
	}
	fmt.Fprintf(c.rl.Stdout(), "done after %s\n", waited)
}

// formatNumber renders a millisecond value without a trailing .000000
func formatNumber(ms float64) string {
	if ms == float64(int64(ms)) {
		return strconv.FormatInt(int64(ms), 10)
	}
	return strconv.FormatFloat(ms, 'f', -1, 64)
}

func (c *calculator) printHelp() {
	fmt.Fprintln(c.rl.Stdout(), `
Time Calculator Commands:
  parse <duration>          - Parse a duration string to milliseconds (e.g. "1h 30m", "1.5s")
  format <milliseconds>     - Format milliseconds as a duration string
  date [pattern]            - Format the current time (default pattern: yyyy-MM-dd HH:mm:ss)
  parsedate <input> [pattern] - Parse a date string (default pattern: yyyy-MM-dd HH:mm:ss)
  delay <milliseconds>      - Wait inline; Ctrl-C cancels

  help                      - Show this help
  exit                      - Leave the calculator`)
}
