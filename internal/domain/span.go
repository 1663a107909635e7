package domain

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type Span struct {
	Name    string    `json:"name"`
	startTs time.Time

	Elapsed *int64 `json:"elapsedMs"`
}

func (s *Span) End() {
	if s.Elapsed == nil {
		t := time.Since(s.startTs).Milliseconds()
		s.Elapsed = &t
	}
}

type profileKey struct{}

// Profile is an ordered list of timed spans for one request. spans may be
// added from several goroutines
type Profile struct {
	mu      sync.Mutex
	startTs time.Time

	Spans   []*Span `json:"spans"`
	TotalMs *int64  `json:"totalMs"`
}

func NewProfile() (newProfile *Profile, endNewProfile func()) {
	newProfile = &Profile{
		Spans:   []*Span{},
		startTs: time.Now(),
	}

	return newProfile, newProfile.End
}

func (p *Profile) End() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.TotalMs == nil {
		t := time.Since(p.startTs).Milliseconds()
		p.TotalMs = &t
	}
}

// StartSpan begins a span that runs alongside any others
func (p *Profile) StartSpan(name string) (*Span, func()) {
	s := &Span{
		Name:    name,
		startTs: time.Now(),
	}

	p.mu.Lock()
	p.Spans = append(p.Spans, s)
	p.mu.Unlock()

	return s, s.End
}

// StartNewSpan ends the last span and begins a new one
func (p *Profile) StartNewSpan(name string) (*Span, func()) {
	p.mu.Lock()
	if len(p.Spans) > 0 {
		p.Spans[len(p.Spans)-1].End()
	}
	p.mu.Unlock()

	return p.StartSpan(name)
}

func (p *Profile) ToJsonBytes() ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return json.Marshal(p)
}

func NewCtxWithProfile(ctx context.Context, p *Profile) context.Context {
	return context.WithValue(ctx, profileKey{}, p)
}

// ProfileFromContext returns the request's profile, or a fresh one if the
// caller did not attach any
func ProfileFromContext(ctx context.Context) *Profile {
	if p, ok := ctx.Value(profileKey{}).(*Profile); ok {
		return p
	}
	p, _ := NewProfile()
	return p
}
