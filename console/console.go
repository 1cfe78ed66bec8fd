// Package console is a small text console: plain output plus prompted line
// input delivered through callbacks.
//
// Input is read on a background goroutine, but callbacks only run from Poll
// or Next, on the caller's goroutine, so they may touch a sketch scene
// directly.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/phanxgames/sketch"
)

// clearScreen moves the cursor home and erases the display.
const clearScreen = "\x1b[H\x1b[2J"

// Console writes text to an output stream and answers input requests from
// an input stream, one line per request.
type Console struct {
	mu       sync.Mutex
	out      io.Writer
	in       *bufio.Reader
	requests []request
	reading  bool
	eof      bool
	ready    chan answer
	done     chan struct{}
}

type request struct {
	prompt string
	fn     func(string)
}

type answer struct {
	fn   func(string)
	line string
}

// New creates a Console reading from in and writing to out.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		out:   out,
		in:    bufio.NewReader(in),
		ready: make(chan answer, 16),
		done:  make(chan struct{}),
	}
}

// Std returns a Console on the process's standard input and output.
func Std() *Console {
	return New(os.Stdin, os.Stdout)
}

// Clear erases the terminal. Output redirected to a regular file is left
// alone.
func (c *Console) Clear() {
	if f, ok := c.out.(*os.File); ok && !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return
	}
	c.Write(clearScreen)
}

// Log sends s to the package logger (see sketch.SetLogger) instead of the
// console output.
func (c *Console) Log(s string) {
	sketch.Logger().Info(s, "source", "console")
}

// Print writes s without a trailing newline.
func (c *Console) Print(s string) {
	c.Write(s)
}

// Println writes s followed by a newline.
func (c *Console) Println(s string) {
	c.Write(s + "\n")
}

// Write writes s verbatim.
func (c *Console) Write(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.write(s)
}

// Printf formats according to a format specifier and writes the result.
func (c *Console) Printf(format string, args ...any) {
	c.Write(fmt.Sprintf(format, args...))
}

func (c *Console) write(s string) {
	if _, err := io.WriteString(c.out, s); err != nil {
		sketch.Logger().Warn("console write failed", "error", err)
	}
}

// RequestInput shows prompt and arranges for fn to receive the next input
// line, without its line terminator. Requests are answered in order; a
// request's prompt is shown once the requests before it are answered. When
// the input is exhausted pending requests are dropped.
func (c *Console) RequestInput(prompt string, fn func(string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.eof {
		sketch.Logger().Debug("console input closed; request dropped", "prompt", prompt)
		return
	}
	c.requests = append(c.requests, request{prompt: prompt, fn: fn})
	if c.reading {
		return
	}
	c.reading = true
	c.write(prompt)
	go c.readLoop()
}

func (c *Console) readLoop() {
	for {
		line, err := c.in.ReadString('\n')
		c.mu.Lock()
		if err != nil && line == "" {
			if !errors.Is(err, io.EOF) {
				sketch.Logger().Warn("console read failed", "error", err)
			}
			c.closeInput()
			c.mu.Unlock()
			close(c.done)
			return
		}
		req := c.requests[0]
		c.requests = c.requests[1:]
		if err != nil {
			// Final unterminated line.
			c.closeInput()
		}
		c.mu.Unlock()

		c.ready <- answer{fn: req.fn, line: strings.TrimRight(line, "\r\n")}
		if err != nil {
			close(c.done)
			return
		}

		c.mu.Lock()
		if len(c.requests) == 0 {
			c.reading = false
			c.mu.Unlock()
			return
		}
		c.write(c.requests[0].prompt)
		c.mu.Unlock()
	}
}

// closeInput drops pending requests once the input is exhausted. c.mu must
// be held.
func (c *Console) closeInput() {
	if n := len(c.requests); n > 0 {
		sketch.Logger().Debug("console input closed", "dropped", n)
	}
	c.requests = nil
	c.reading = false
	c.eof = true
}

// Pending returns the number of requests waiting for input.
func (c *Console) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

// Poll runs the callbacks of every answered request without blocking and
// returns how many ran.
func (c *Console) Poll() int {
	n := 0
	for {
		select {
		case a := <-c.ready:
			a.fn(a.line)
			n++
		default:
			return n
		}
	}
}

// Next blocks until one answered request's callback has run. It returns
// io.EOF once the input is exhausted and every answer has been delivered, or
// ctx's error when ctx is done first.
func (c *Console) Next(ctx context.Context) error {
	select {
	case a := <-c.ready:
		a.fn(a.line)
		return nil
	case <-c.done:
		select {
		case a := <-c.ready:
			a.fn(a.line)
			return nil
		default:
			return io.EOF
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}
