package translate

import (
	"fmt"
	"sync/atomic"

	"github.com/f3rmion/emojify/internal/dictionary"
	"github.com/f3rmion/emojify/internal/emojify"
)

// Session holds the current Translator for a long-lived process. Reloads
// build a complete new Translator and swap it in; translations already
// running keep using the one they started with.
type Session struct {
	current atomic.Pointer[Translator]
}

// NewSession creates a session serving t.
func NewSession(t *Translator) *Session {
	s := &Session{}
	s.current.Store(t)
	return s
}

// Translator returns the translator currently in use.
func (s *Session) Translator() *Translator {
	return s.current.Load()
}

// Swap installs t and returns the previous translator.
func (s *Session) Swap(t *Translator) *Translator {
	return s.current.Swap(t)
}

// Reload compiles d with the current policy and swaps the result in.
// On error the session keeps its current translator.
func (s *Session) Reload(d *dictionary.Dictionary) (*Translator, error) {
	maps := dictionary.Compile(d)
	return s.update(func(cur *Translator) (*Translator, error) {
		policy := emojify.Sequential
		if cur != nil {
			policy = cur.Policy()
		}
		return New(maps, WithPolicy(policy))
	})
}

// SetPolicy rebuilds the current maps with policy p and swaps the result
// in. A Reload that lands meanwhile is kept: its maps get the new policy.
func (s *Session) SetPolicy(p emojify.Policy) (*Translator, error) {
	return s.update(func(cur *Translator) (*Translator, error) {
		if cur.Policy() == p {
			return cur, nil
		}
		return New(cur.Maps(), WithPolicy(p))
	})
}

// update swaps in build(current), starting over when another update
// replaced the translator while build ran.
func (s *Session) update(build func(cur *Translator) (*Translator, error)) (*Translator, error) {
	for {
		cur := s.current.Load()
		t, err := build(cur)
		if err != nil {
			return nil, fmt.Errorf("rebuilding translator: %w", err)
		}
		if s.current.CompareAndSwap(cur, t) {
			return t, nil
		}
	}
}

// Translate translates input with the current translator.
func (s *Session) Translate(dir emojify.Direction, input string) (string, error) {
	return s.Translator().Translate(dir, input)
}
