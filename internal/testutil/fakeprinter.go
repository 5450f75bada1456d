package testutil

import (
	"context"
	"errors"
	"sync"
)

// ErrPrintFailed is the default error returned for failing jobs.
var ErrPrintFailed = errors.New("printer offline")

// FakePrinter records print jobs and fails on chosen calls.
type FakePrinter struct {
	mu   sync.Mutex
	jobs []string

	// FailOn maps a 1-based call number to the error it returns.
	FailOn map[int]error
}

// NewFakePrinter creates a printer that always succeeds.
func NewFakePrinter() *FakePrinter {
	return &FakePrinter{FailOn: make(map[int]error)}
}

// FailCall makes the n-th call (1-based) fail with ErrPrintFailed.
func (p *FakePrinter) FailCall(n int) {
	p.FailOn[n] = ErrPrintFailed
}

// Print implements printer.Printer.
// Failed calls are recorded too.
func (p *FakePrinter) Print(ctx context.Context, content string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, content)
	if err, ok := p.FailOn[len(p.jobs)]; ok {
		return err
	}
	return nil
}

// Jobs returns the contents sent so far, in order.
func (p *FakePrinter) Jobs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.jobs))
	copy(out, p.jobs)
	return out
}
