package pool

import (
	"io"
	"runtime"
	"sync"
	"sync/atomic"
)

// parallelizeAlone calculates the result of f count times
func parallelizeAlone(f func(int) interface{}, count int) []interface{} {
	results := make([]interface{}, count)
	for i := 0; i < len(results); i++ {
		results[i] = f(i)
	}
	return results
}

// searchAlone queries f until count successes are found, on the current thread.
func searchAlone(f func() interface{}, count int) []interface{} {
	results := make([]interface{}, count)
	for found := 0; found < count; {
		if res := f(); res != nil {
			results[found] = res
			found++
		}
	}
	return results
}

// task asks a worker to evaluate f at index i, and to store the result.
type task struct {
	i       int
	f       func(int) interface{}
	results []interface{}
	done    *sync.WaitGroup
}

// worker starts up a new worker, listening to tasks until the pool is torn down.
func worker(tasks <-chan task) {
	for t := range tasks {
		t.results[t.i] = t.f(t.i)
		t.done.Done()
	}
}

// Pool represents a pool of workers, used for parallelizing functions.
//
// Functions needing a *Pool will work with a nil receiver, doing the equivalent
// work on the current thread instead.
//
// By creating a pool, you avoid the overhead of spinning up goroutines for
// each new operation.
type Pool struct {
	// The common channel used to send tasks to the workers.
	//
	// This effectively makes a work stealing pool.
	tasks chan task
	// This holds the number of workers we've created
	workerCount int
	once        sync.Once
}

// NewPool creates a new pool, with a certain number of workers.
//
// If count <= 0, this will use the number of available CPUs instead.
func NewPool(count int) *Pool {
	if count <= 0 {
		count = runtime.NumCPU()
	}

	p := &Pool{
		tasks:       make(chan task),
		workerCount: count,
	}

	for i := 0; i < count; i++ {
		go worker(p.tasks)
	}

	return p
}

// Workers returns the number of goroutines serving the pool, or 1 for a nil pool.
func (p *Pool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workerCount
}

// TearDown cleanly tears down a pool, closing channels, etc.
//
// It is safe to call TearDown more than once.
func (p *Pool) TearDown() {
	if p == nil {
		return
	}
	p.once.Do(func() { close(p.tasks) })
}

// Search queries the function f, until count successes are found.
//
// f is supposed to try a single candidate, returning nil if that candidate isn't
// successful. Every worker keeps trying candidates until enough were found.
//
// The result will be an array containing the first count successes.
func (p *Pool) Search(count int, f func() interface{}) []interface{} {
	if p == nil {
		return searchAlone(f, count)
	}

	results := make([]interface{}, count)
	ctr := int64(count)
	search := func(int) interface{} {
		for atomic.LoadInt64(&ctr) > 0 {
			res := f()
			if res == nil {
				continue
			}
			if i := atomic.AddInt64(&ctr, -1); i >= 0 {
				results[i] = res
			}
		}
		return nil
	}

	// each worker runs a single search task
	scratch := make([]interface{}, p.workerCount)
	var done sync.WaitGroup
	done.Add(p.workerCount)
	for i := 0; i < p.workerCount; i++ {
		p.tasks <- task{
			i:       i,
			f:       search,
			results: scratch,
			done:    &done,
		}
	}
	done.Wait()

	return results
}

// Parallelize calls a function count times, passing in indices from 0..count-1.
//
// The result will be a slice containing [f(0), f(1), ..., f(count - 1)].
func (p *Pool) Parallelize(count int, f func(int) interface{}) []interface{} {
	if p == nil {
		return parallelizeAlone(f, count)
	}

	results := make([]interface{}, count)
	var done sync.WaitGroup
	done.Add(count)
	for i := 0; i < count; i++ {
		p.tasks <- task{
			i:       i,
			f:       f,
			results: results,
			done:    &done,
		}
	}
	done.Wait()

	return results
}

// LockedReader wraps an io.Reader to be safe for concurrent reads.
//
// This type implements io.Reader, returning the same output.
//
// This means acquiring a lock whenever a read happens, so be aware of that
// for performance or concurrency reasons.
type LockedReader struct {
	reader io.Reader
	m      sync.Mutex
}

// NewLockedReader creates a LockedReader by wrapping an underlying value.
func NewLockedReader(r io.Reader) *LockedReader {
	// the zero value of m is ok
	return &LockedReader{reader: r}
}

// Read implements io.Reader for LockedReader
//
// The behavior is to return the same output as the underlying reader. The difference
// is that it's safe to call this function concurrently.
//
// Naturally, when calling this function concurrently, what value ends up getting
// read is raced, but you won't end up reading the same value twice, or otherwise
// messing up the state of the reader.
func (r *LockedReader) Read(p []byte) (int, error) {
	r.m.Lock()
	defer r.m.Unlock()
	return r.reader.Read(p)
}
