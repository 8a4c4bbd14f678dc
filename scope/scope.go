// Package scope implements minilang's environment: a chain of name->value
// bindings with a parent link, the mechanism behind lexical scoping and
// closures.
package scope

import "github.com/minilang-go/minilang/objects"

// Scope is one link in the environment chain. A nil Parent marks the root
// (global) scope.
type Scope struct {
	vars   map[string]objects.Object
	Parent *Scope
}

// New creates a scope whose enclosing scope is parent. Pass nil to create
// a root scope.
func New(parent *Scope) *Scope {
	return &Scope{vars: make(map[string]objects.Object), Parent: parent}
}

// Define binds name to v in this scope only. It fails if name is already
// bound in this scope — minilang rejects re-declaration within a scope,
// though shadowing an outer scope's binding is fine.
func (s *Scope) Define(name string, v objects.Object) *objects.Signal {
	if _, exists := s.vars[name]; exists {
		return objects.Errorf("`%s` already defined.", name)
	}
	s.vars[name] = v
	return nil
}

// Assign updates an existing binding, searching this scope then parents,
// and writes to the scope that owns the name. It fails if name is bound
// nowhere in the chain.
func (s *Scope) Assign(name string, v objects.Object) *objects.Signal {
	for sc := s; sc != nil; sc = sc.Parent {
		if _, ok := sc.vars[name]; ok {
			sc.vars[name] = v
			return nil
		}
	}
	return objects.Errorf("`%s` not defined.", name)
}

// Get looks up name, searching this scope then parents.
func (s *Scope) Get(name string) (objects.Object, *objects.Signal) {
	for sc := s; sc != nil; sc = sc.Parent {
		if v, ok := sc.vars[name]; ok {
			return v, nil
		}
	}
	return nil, objects.Errorf("`%s` not defined.", name)
}
