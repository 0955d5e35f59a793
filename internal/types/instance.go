package types

// InstanceMap associates TypeParameters (by name) with a resolved Type
// at one particular use site. A declaration's own ParamInstances field
// is either nil or an empty map that is never mutated once checking
// begins — every call site and generic instantiation works from a
// freshly allocated InstanceMap (§3.2, §8 testable property).
type InstanceMap struct {
	bindings map[string]Type
}

// NewInstanceMap allocates an empty, fresh instance map.
func NewInstanceMap() *InstanceMap {
	return &InstanceMap{bindings: map[string]Type{}}
}

// Get returns the type bound to name, if any.
func (m *InstanceMap) Get(name string) (Type, bool) {
	if m == nil {
		return nil, false
	}
	t, ok := m.bindings[name]
	return t, ok
}

// Bind records name -> t. It does not check for conflicting re-binds;
// call-argument checking (§4.5) uses BindIfUnbound instead, so a later
// argument never replaces the first binding and is checked against it.
func (m *InstanceMap) Bind(name string, t Type) {
	m.bindings[name] = t
}

// BindIfUnbound binds name -> t only if it is not already bound, and
// reports whether a binding happened. It never overwrites an existing
// binding — this is the "already-bound parameters are not re-bound"
// rule used while initializing parameters from argument types.
func (m *InstanceMap) BindIfUnbound(name string, t Type) bool {
	if _, bound := m.bindings[name]; bound {
		return false
	}
	m.bindings[name] = t
	return true
}

// Names returns the bound parameter names, in no particular order.
func (m *InstanceMap) Names() []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, len(m.bindings))
	for n := range m.bindings {
		names = append(names, n)
	}
	return names
}

// Len reports the number of bindings, used by tests asserting a
// declaration's map stays empty after a call (§8).
func (m *InstanceMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.bindings)
}

// Instantiate produces a fresh InstanceMap binding each parameter in
// params to the corresponding entry of args. It never touches any
// existing map owned by a declaration. len(params) and len(args) must
// match; callers are responsible for the arity check (ArityMismatch
// diagnostic) before calling this.
func Instantiate(params []*TypeParameter, args []Type) *InstanceMap {
	inst := NewInstanceMap()
	n := len(params)
	if len(args) < n {
		n = len(args)
	}
	for i := 0; i < n; i++ {
		inst.Bind(params[i].Name, args[i])
	}
	return inst
}

// ResolveParam resolves a TypeParameter reference against an instance
// map. If the parameter is unbound in the map, the parameter itself is
// returned unchanged — uninstantiated generics do not eagerly bind
// downstream parameters (§4.1.2, §8 test S5).
func ResolveParam(tp *TypeParameter, inst *InstanceMap) Type {
	if inst != nil {
		if bound, ok := inst.Get(tp.Name); ok {
			return bound
		}
	}
	return tp
}

// Resolve walks t, replacing any TypeParameter it finds with its bound
// value in inst (falling back to the parameter itself when unbound),
// and recursing into Optional/Block structure. Object/Trait nominal
// identity is left untouched: resolving a generic argument never
// rewrites the declaration it names, only the type returned to the
// caller.
func Resolve(t Type, inst *InstanceMap) Type {
	switch v := t.(type) {
	case *TypeParameter:
		return ResolveParam(v, inst)
	case *Optional:
		return NewOptional(Resolve(v.Inner, inst))
	case *Block:
		return resolveBlock(v, inst)
	default:
		return t
	}
}

func resolveBlock(b *Block, inst *InstanceMap) *Block {
	out := &Block{
		Kind:           b.Kind,
		TypeParameters: b.TypeParameters,
		MethodBounds:   b.MethodBounds,
		ParamInstances: b.ParamInstances,
	}
	out.Parameters = make([]*Parameter, len(b.Parameters))
	for i, p := range b.Parameters {
		out.Parameters[i] = &Parameter{
			Name:       p.Name,
			Type:       Resolve(p.Type, inst),
			Mutable:    p.Mutable,
			HasDefault: p.HasDefault,
			Rest:       p.Rest,
		}
	}
	if b.ThrowType != nil {
		out.ThrowType = Resolve(b.ThrowType, inst)
	}
	if b.ReturnType != nil {
		out.ReturnType = Resolve(b.ReturnType, inst)
	}
	return out
}
