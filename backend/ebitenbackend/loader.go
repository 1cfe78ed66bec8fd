package ebitenbackend

import (
	"image"
	"sync"

	"github.com/phanxgames/sketch"
)

// Loader implements sketch.ImageLoader by decoding files on background
// goroutines. Completion callbacks run on the game goroutine during the next
// Update, so they may safely mutate the scene.
type Loader struct {
	decode func(path string) (image.Image, error)

	mu      sync.Mutex
	results []loadResult
	pending sync.WaitGroup
}

type loadResult struct {
	img  image.Image
	err  error
	done func(image.Image, error)
}

// NewLoader creates a Loader that decodes local files with sketch.DecodeFile.
func NewLoader() *Loader {
	return &Loader{decode: sketch.DecodeFile}
}

// LoadImage implements sketch.ImageLoader.
func (l *Loader) LoadImage(source string, done func(image.Image, error)) {
	l.pending.Add(1)
	go func() {
		defer l.pending.Done()
		img, err := l.decode(source)
		l.mu.Lock()
		l.results = append(l.results, loadResult{img: img, err: err, done: done})
		l.mu.Unlock()
	}()
}

// Wait blocks until every started load has finished decoding. Callbacks
// still run on the next drain.
func (l *Loader) Wait() {
	l.pending.Wait()
}

// drain delivers finished loads in completion order and returns how many
// callbacks ran.
func (l *Loader) drain() int {
	l.mu.Lock()
	results := l.results
	l.results = nil
	l.mu.Unlock()
	for _, r := range results {
		r.done(r.img, r.err)
	}
	return len(results)
}
