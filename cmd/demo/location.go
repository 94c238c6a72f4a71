package main

import "sync"

// memLocation is an in-memory stand-in for a browser address bar: there's no
// DOM here, so Push/Replace just record the latest URL for the /api/state
// endpoint to report, and OnPopState never fires (nothing outside the
// process ever changes the "address bar" on its own).
type memLocation struct {
	mu  sync.Mutex
	url string
}

func (l *memLocation) Push(url string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.url = url
}

func (l *memLocation) Replace(url string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.url = url
}

func (l *memLocation) OnPopState(fn func(url string)) (unsubscribe func()) {
	return func() {}
}

func (l *memLocation) current() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.url
}
