// File: registry.go
// Title: Priority Rule Registry
// Description: Generic registry of named rules with stable priority order.
//              Safe for concurrent use.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-02-14
//
// Change History:
// - 2025-01-25 v0.1.0: TCOL object registry
// - 2025-02-14 v0.2.0: Generic priority registry for grammar rules

package registry

import (
	"sort"
	"sync"

	mdwerror "github.com/msto63/acid/foundation/core/error"
	"github.com/msto63/acid/foundation/core/log"
	mdwstringx "github.com/msto63/acid/foundation/utils/stringx"
)

// Options configures registry behavior
type Options struct {
	Name   string // Used in log output and error details
	Logger *log.Logger
}

// Rule is a named entry. Lower Priority values are tried first.
type Rule[F any] struct {
	Name     string
	Priority int
	Consume  F

	seq int
}

// Registry holds rules of one grammar tier
type Registry[F any] struct {
	name   string
	rules  []Rule[F]
	byName map[string]int
	nextID int
	logger *log.Logger
	mutex  sync.RWMutex
}

// New creates an empty registry
func New[F any](opts Options) *Registry[F] {
	if opts.Logger == nil {
		opts.Logger = log.GetDefault()
	}
	if opts.Name == "" {
		opts.Name = "rules"
	}
	return &Registry[F]{
		name:   opts.Name,
		byName: make(map[string]int),
		logger: opts.Logger.WithField("component", "acid-registry").WithField("registry", opts.Name),
	}
}

// Register adds a rule. Names must be unique and priorities start at 1.
func (r *Registry[F]) Register(name string, priority int, consume F) error {
	if mdwstringx.IsBlank(name) {
		return mdwerror.New("rule name cannot be empty").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("registry.Register").
			WithDetail("registry", r.name)
	}
	if priority < 1 {
		return mdwerror.Newf("rule %s: priority must be at least 1, got %d", name, priority).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("registry.Register").
			WithDetail("registry", r.name).
			WithDetail("rule", name)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.byName[name]; exists {
		return mdwerror.Newf("rule %s already registered", name).
			WithCode(mdwerror.CodeDuplicateEntry).
			WithOperation("registry.Register").
			WithDetail("registry", r.name).
			WithDetail("rule", name)
	}

	r.byName[name] = len(r.rules)
	r.rules = append(r.rules, Rule[F]{Name: name, Priority: priority, Consume: consume, seq: r.nextID})
	r.nextID++

	r.logger.Trace("Rule registered", log.Fields{"rule": name, "priority": priority})
	return nil
}

// MustRegister is Register for static rule tables; it panics on error
func (r *Registry[F]) MustRegister(name string, priority int, consume F) *Registry[F] {
	if err := r.Register(name, priority, consume); err != nil {
		panic(err)
	}
	return r
}

// Has reports whether a rule with that name exists
func (r *Registry[F]) Has(name string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	_, ok := r.byName[name]
	return ok
}

// Get returns the rule registered under name
func (r *Registry[F]) Get(name string) (Rule[F], error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	idx, ok := r.byName[name]
	if !ok {
		return Rule[F]{}, mdwerror.Newf("rule %s not found", name).
			WithCode(mdwerror.CodeNotFound).
			WithOperation("registry.Get").
			WithDetail("registry", r.name).
			WithDetail("rule", name)
	}
	return r.rules[idx], nil
}

// Len returns the number of registered rules
func (r *Registry[F]) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.rules)
}

// Name returns the registry name
func (r *Registry[F]) Name() string {
	return r.name
}

// Ordered returns a snapshot of the rules in trial order
func (r *Registry[F]) Ordered() []Rule[F] {
	r.mutex.RLock()
	out := make([]Rule[F], len(r.rules))
	copy(out, r.rules)
	r.mutex.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].seq < out[j].seq
	})
	return out
}

// Names returns the rule names in trial order
func (r *Registry[F]) Names() []string {
	ordered := r.Ordered()
	names := make([]string, len(ordered))
	for i, rule := range ordered {
		names[i] = rule.Name
	}
	return names
}
