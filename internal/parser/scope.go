package parser

import "riptide/internal/ir"

// scopeStack maps surface names to graph nodes across nested blocks.
// Every binding owns one keep-pin on its node, so eager dead-code
// elimination cannot collect a value the program can still name.
type scopeStack struct {
	levels []map[string]ir.NodeID
}

func newScopeStack() *scopeStack {
	return &scopeStack{levels: []map[string]ir.NodeID{{}}}
}

func (s *scopeStack) push() {
	s.levels = append(s.levels, map[string]ir.NodeID{})
}

// pop снимает верхний уровень, отпуская пины его значений.
func (s *scopeStack) pop(b *ir.Builder) {
	top := s.levels[len(s.levels)-1]
	s.levels = s.levels[:len(s.levels)-1]
	for _, id := range top {
		b.Unkeep(id)
		b.KillIfUnused(id)
	}
}

func (s *scopeStack) depth() int { return len(s.levels) }

// declare binds name in the top level. Returns false when the name is
// already declared there.
func (s *scopeStack) declare(b *ir.Builder, name string, id ir.NodeID) bool {
	top := s.levels[len(s.levels)-1]
	if _, dup := top[name]; dup {
		return false
	}
	b.Keep(id)
	top[name] = id
	return true
}

// assign rebinds the innermost visible name. Returns false when the
// name is not in scope.
func (s *scopeStack) assign(b *ir.Builder, name string, id ir.NodeID) bool {
	for i := len(s.levels) - 1; i >= 0; i-- {
		if old, ok := s.levels[i][name]; ok {
			if old == id {
				return true
			}
			b.Keep(id)
			s.levels[i][name] = id
			b.Unkeep(old)
			b.KillIfUnused(old)
			return true
		}
	}
	return false
}

// lookup resolves name through the stack, innermost first.
func (s *scopeStack) lookup(name string) (ir.NodeID, bool) {
	for i := len(s.levels) - 1; i >= 0; i-- {
		if id, ok := s.levels[i][name]; ok {
			return id, true
		}
	}
	return ir.NoNode, false
}

// capture deep-copies the stack, taking an extra pin on every binding.
// The copy stays valid while the live stack mutates underneath it.
func (s *scopeStack) capture(b *ir.Builder) *scopeStack {
	cp := &scopeStack{levels: make([]map[string]ir.NodeID, len(s.levels))}
	for i, lvl := range s.levels {
		m := make(map[string]ir.NodeID, len(lvl))
		for name, id := range lvl {
			b.Keep(id)
			m[name] = id
		}
		cp.levels[i] = m
	}
	return cp
}

// replace drops every binding of the live stack and adopts ns, pins
// included. ns is consumed and must not be used afterwards.
func (s *scopeStack) replace(b *ir.Builder, ns *scopeStack) {
	for _, lvl := range s.levels {
		for _, id := range lvl {
			b.Unkeep(id)
			b.KillIfUnused(id)
		}
	}
	s.levels = ns.levels
	ns.levels = nil
}

// release drops a captured copy, returning its pins.
func (s *scopeStack) release(b *ir.Builder) {
	for _, lvl := range s.levels {
		for _, id := range lvl {
			b.Unkeep(id)
			b.KillIfUnused(id)
		}
	}
	s.levels = nil
}
