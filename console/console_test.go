package console

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the reader goroutine's prompts.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func next(t *testing.T, c *Console) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Next(ctx); err != nil {
		t.Fatalf("Next: %v", err)
	}
}

func TestOutput(t *testing.T) {
	out := &syncBuffer{}
	c := New(strings.NewReader(""), out)
	c.Print("a")
	c.Println("b")
	c.Write("c")
	c.Printf(" %d", 42)
	c.Log("not on the console")
	if got, want := out.String(), "ab\nc 42"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	c.Clear()
	if !strings.HasSuffix(out.String(), clearScreen) {
		t.Errorf("Clear did not write the clear sequence: %q", out.String())
	}
}

func TestRequestInputInOrder(t *testing.T) {
	out := &syncBuffer{}
	c := New(strings.NewReader("alice\r\nblue\n"), out)

	var got []string
	c.RequestInput("name? ", func(s string) { got = append(got, "name="+s) })
	c.RequestInput("color? ", func(s string) { got = append(got, "color="+s) })

	next(t, c)
	next(t, c)
	if len(got) != 2 || got[0] != "name=alice" || got[1] != "color=blue" {
		t.Fatalf("answers = %q", got)
	}
	if want := "name? color? "; out.String() != want {
		t.Errorf("prompts = %q, want %q", out.String(), want)
	}
	if c.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", c.Pending())
	}
}

func TestCallbacksWaitForPoll(t *testing.T) {
	r, w := io.Pipe()
	c := New(r, &syncBuffer{})

	var got string
	c.RequestInput("> ", func(s string) { got = s })
	if n := c.Poll(); n != 0 {
		t.Fatalf("Poll before input = %d, want 0", n)
	}
	if _, err := io.WriteString(w, "hello\n"); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for c.Poll() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("answer never delivered")
		}
		time.Sleep(time.Millisecond)
	}
	if got != "hello" {
		t.Errorf("answer = %q, want hello", got)
	}
	w.Close()
}

func TestEOFDropsRequests(t *testing.T) {
	c := New(strings.NewReader("last"), &syncBuffer{})

	var got []string
	c.RequestInput("1 ", func(s string) { got = append(got, s) })
	c.RequestInput("2 ", func(s string) { got = append(got, s) })
	next(t, c)
	if len(got) != 1 || got[0] != "last" {
		t.Fatalf("answers = %q, want [last]", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Next(ctx); err != io.EOF {
		t.Fatalf("Next after EOF = %v, want io.EOF", err)
	}

	c.RequestInput("3 ", func(string) { t.Error("request after EOF answered") })
	if c.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", c.Pending())
	}
}

func TestClearSkipsRegularFiles(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	c := New(strings.NewReader(""), f)
	c.Clear()
	c.Print("x")

	data, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "x" {
		t.Errorf("file = %q, want %q", data, "x")
	}
}
