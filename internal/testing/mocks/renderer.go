// Package mocks provides shared test doubles for dist packages.
package mocks

import (
	"sync"
	"sync/atomic"
)

// Renderer implements ci.Renderer for testing.
// Use NewRenderer() to create instances with a fluent builder API.
type Renderer struct {
	text string
	err  error

	// RenderFunc is called by Render. If nil, Render returns the configured text and error.
	RenderFunc func(name string, data any) (string, error)

	renderCount int32
	mu          sync.Mutex
	names       []string
	data        []any
}

// NewRenderer creates a renderer that returns text for every template.
func NewRenderer(text string) *Renderer {
	return &Renderer{text: text}
}

// WithError makes Render fail with err.
func (m *Renderer) WithError(err error) *Renderer {
	m.err = err
	return m
}

// WithRenderFunc sets the function called by Render.
func (m *Renderer) WithRenderFunc(fn func(name string, data any) (string, error)) *Renderer {
	m.RenderFunc = fn
	return m
}

func (m *Renderer) Render(name string, data any) (string, error) {
	atomic.AddInt32(&m.renderCount, 1)
	m.mu.Lock()
	m.names = append(m.names, name)
	m.data = append(m.data, data)
	m.mu.Unlock()

	if m.RenderFunc != nil {
		return m.RenderFunc(name, data)
	}
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

// Test inspection methods

// RenderCount returns the number of times Render was called.
func (m *Renderer) RenderCount() int32 {
	return atomic.LoadInt32(&m.renderCount)
}

// Names returns the template names passed to Render, in call order.
func (m *Renderer) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.names))
	copy(result, m.names)
	return result
}

// LastData returns the data passed to the most recent Render call.
func (m *Renderer) LastData() any {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.data) == 0 {
		return nil
	}
	return m.data[len(m.data)-1]
}

// Reset clears call tracking state.
func (m *Renderer) Reset() {
	atomic.StoreInt32(&m.renderCount, 0)
	m.mu.Lock()
	m.names = nil
	m.data = nil
	m.mu.Unlock()
}
