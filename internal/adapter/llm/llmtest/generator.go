// Package llmtest provides a scripted domain.TextGenerator for tests of code
// that drives the provider chain.
package llmtest

import (
	"context"
	"errors"
	"sync"

	"medquiz/internal/domain"
)

// ErrNoResponse is returned once a Generator has used up its script.
var ErrNoResponse = errors.New("llmtest: no response queued")

// Response is one scripted Generate result.
type Response struct {
	Text string
	Err  error
}

// Generator replays its responses in order and records every request.
type Generator struct {
	name      string
	mu        sync.Mutex
	responses []Response
	Calls     []domain.GenerationRequest
}

func NewGenerator(name string, responses ...Response) *Generator {
	return &Generator{name: name, responses: responses}
}

func (g *Generator) Name() string {
	return g.name
}

func (g *Generator) Generate(_ context.Context, req domain.GenerationRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.Calls = append(g.Calls, req)
	if len(g.responses) == 0 {
		return "", ErrNoResponse
	}
	resp := g.responses[0]
	g.responses = g.responses[1:]
	return resp.Text, resp.Err
}

func (g *Generator) CallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Calls)
}
