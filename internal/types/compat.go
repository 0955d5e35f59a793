package types

// Compatible decides whether a value of type value may flow into a
// position of type target, per the ten rules of §4.1.1. selfType is the
// type currently bound to Self in the enclosing scope (nil if there is
// none); it is substituted into both sides before any structural
// comparison (rule 9).
func Compatible(value, target Type, selfType Type) bool {
	value = SubstituteSelf(value, selfType)
	target = SubstituteSelf(target, selfType)
	return compatible(value, target)
}

func compatible(value, target Type) bool {
	// Rule 1: Error absorbs everything.
	if IsError(value) || IsError(target) {
		return true
	}
	// Rule 2: Dynamic absorbs everything.
	if IsDynamic(value) || IsDynamic(target) {
		return true
	}
	// Rule 10: Void / Never.
	if IsNever(value) || IsNever(target) {
		return true
	}
	if IsVoid(value) {
		return true
	}

	switch t := target.(type) {
	case *Optional:
		return compatibleWithOptional(value, t)
	case *TypeParameter:
		return compatibleWithTypeParameter(value, t)
	case *Trait:
		return compatibleWithTrait(value, t)
	}

	switch v := value.(type) {
	case *Optional:
		// Rule 6: ?T is NOT compatible with T except via explicit
		// dereference; an Optional target was handled above, so an
		// Optional value reaching this point is never compatible.
		if ot, ok := target.(*Optional); ok {
			return compatible(v.Inner, ot.Inner)
		}
		return false
	case *Object:
		return compatibleObject(v, target)
	case *Block:
		tb, ok := target.(*Block)
		if !ok {
			return false
		}
		return compatibleBlock(v, tb)
	case *TypeParameter:
		// A type parameter flowing into a concrete target is only
		// compatible if the target is the identical parameter, or the
		// parameter's requirements already satisfy the target via the
		// trait/type-parameter rules above (handled when target was a
		// Trait/TypeParameter). Otherwise not compatible.
		if tp, ok := target.(*TypeParameter); ok {
			return v == tp
		}
		return false
	case *Trait:
		if tt, ok := target.(*Trait); ok {
			return v == tt && identicalInstances(v.ParamInstances, tt.ParamInstances)
		}
		return false
	}

	// Rule 3 fallback: structural/identity equality for anything else.
	return identical(value, target)
}

func compatibleWithOptional(value Type, target *Optional) bool {
	if opt, ok := value.(*Optional); ok {
		// Rule 7.
		return compatible(opt.Inner, target.Inner)
	}
	// Rule 6: T is compatible with ?T (lifting).
	return compatible(value, target.Inner)
}

func compatibleWithTypeParameter(value Type, target *TypeParameter) bool {
	for _, req := range target.RequiredTraits {
		if !Implements(value, req) {
			return false
		}
	}
	return true
}

func compatibleWithTrait(value Type, target *Trait) bool {
	switch v := value.(type) {
	case *Object:
		impl, ok := v.ImplementedTraits[canonicalTrait(target)]
		if !ok {
			return false
		}
		return traitArgsCompatible(impl, target)
	case *Trait:
		if canonicalTrait(v) == canonicalTrait(target) {
			return true
		}
		for _, req := range v.RequiredTraits {
			if canonicalTrait(req) == canonicalTrait(target) {
				return true
			}
		}
		return false
	}
	return false
}

// canonicalTrait resolves t back to the declaration pointer
// ImplementedTraits is keyed by, following Declaration through an
// explicit `Trait!(Args)` instantiation (§4.1.1 rule 4).
func canonicalTrait(t *Trait) *Trait {
	if t.Declaration != nil {
		return t.Declaration
	}
	return t
}

// traitArgsCompatible checks an object's recorded implementation
// arguments against target's own resolved instantiation, not just their
// count (§4.1.1 rule 4: "with matching parameter instantiation"). A
// bare, uninstantiated target (no ParamInstances of its own) falls back
// to the previous arity-only check.
func traitArgsCompatible(impl *TraitImplementation, target *Trait) bool {
	decl := canonicalTrait(target)
	if len(impl.Arguments) != len(decl.TypeParameters) {
		return false
	}
	if target.ParamInstances == nil || target.ParamInstances.Len() == 0 {
		return true
	}
	for i, tp := range decl.TypeParameters {
		want, ok := target.ParamInstances.Get(tp.Name)
		if !ok {
			continue
		}
		if !identical(impl.Arguments[i], want) {
			return false
		}
	}
	return true
}

func compatibleObject(v *Object, target Type) bool {
	if to, ok := target.(*Object); ok {
		return v == to && identicalInstances(v.ParamInstances, to.ParamInstances)
	}
	return false
}

func compatibleBlock(v, t *Block) bool {
	if v.Kind != t.Kind {
		return false
	}
	if len(v.Parameters) != len(t.Parameters) {
		return false
	}
	if v.Kind == BlockKindLambda {
		// Lambda invariant: exact structural match on every component.
		for i := range v.Parameters {
			if !identical(v.Parameters[i].Type, t.Parameters[i].Type) {
				return false
			}
		}
		if !identical(v.ReturnType, t.ReturnType) {
			return false
		}
		return throwCompatible(v.ThrowType, t.ThrowType) && throwCompatible(t.ThrowType, v.ThrowType)
	}

	// Contravariant arguments: each argument of T compatible with the
	// corresponding argument of V.
	for i := range t.Parameters {
		if !compatible(t.Parameters[i].Type, v.Parameters[i].Type) {
			return false
		}
	}
	// Covariant return: V's return compatible with T's return.
	if !compatible(v.ReturnType, t.ReturnType) {
		return false
	}
	return throwCompatible(v.ThrowType, t.ThrowType)
}

// throwCompatible implements "V's throw type is compatible with T's
// throw type, or V throws nothing while T does".
func throwCompatible(vThrow, tThrow Type) bool {
	if vThrow == nil {
		return true
	}
	if tThrow == nil {
		return false
	}
	return compatible(vThrow, tThrow)
}

// identical reports strict structural/nominal identity (rule 3):
// identical nominal types with identical parameter instantiations.
func identical(a, b Type) bool {
	switch av := a.(type) {
	case *Object:
		bv, ok := b.(*Object)
		return ok && av == bv && identicalInstances(av.ParamInstances, bv.ParamInstances)
	case *Trait:
		bv, ok := b.(*Trait)
		return ok && av == bv && identicalInstances(av.ParamInstances, bv.ParamInstances)
	case *TypeParameter:
		bv, ok := b.(*TypeParameter)
		return ok && av == bv
	case *Optional:
		bv, ok := b.(*Optional)
		return ok && identical(av.Inner, bv.Inner)
	case *Block:
		bv, ok := b.(*Block)
		return ok && compatibleBlock(av, bv) && compatibleBlock(bv, av)
	default:
		return a == b
	}
}

func identicalInstances(a, b *InstanceMap) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return a.Len() == 0 && b.Len() == 0
	}
	if a.Len() != b.Len() {
		return false
	}
	for _, name := range a.Names() {
		at, _ := a.Get(name)
		bt, ok := b.Get(name)
		if !ok || !identical(at, bt) {
			return false
		}
	}
	return true
}

// Implements reports whether value's type implements trait req,
// following the rules used by rule 4/5: an Object implements a trait
// directly; a TypeParameter implements a trait when the trait is one of
// its required traits (or a required trait of those, transitively via
// the trait's own RequiredTraits); a Trait implements another trait when
// it lists it as required (or is itself that trait).
func Implements(value Type, req *Trait) bool {
	switch v := value.(type) {
	case *Object:
		impl, ok := v.ImplementedTraits[canonicalTrait(req)]
		if !ok {
			return false
		}
		return traitArgsCompatible(impl, req)
	case *TypeParameter:
		for _, t := range v.RequiredTraits {
			if traitSatisfies(t, req) {
				return true
			}
		}
		return false
	case *Trait:
		return traitSatisfies(v, req)
	}
	return false
}

func traitSatisfies(t, req *Trait) bool {
	if canonicalTrait(t) == canonicalTrait(req) {
		return true
	}
	for _, r := range t.RequiredTraits {
		if traitSatisfies(r, req) {
			return true
		}
	}
	return false
}

// SubstituteSelf recursively replaces every occurrence of the Self
// placeholder within t with selfType (rule 9). Nominal Object/Trait
// identity is preserved; only their recorded parameter instantiations
// and Block/Optional structure are walked.
func SubstituteSelf(t Type, selfType Type) Type {
	if t == nil {
		return nil
	}
	if IsSelf(t) {
		if selfType != nil {
			return selfType
		}
		return t
	}
	switch v := t.(type) {
	case *Optional:
		return NewOptional(SubstituteSelf(v.Inner, selfType))
	case *Block:
		return substituteSelfBlock(v, selfType)
	default:
		return t
	}
}

func substituteSelfBlock(b *Block, selfType Type) *Block {
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
			Type:       SubstituteSelf(p.Type, selfType),
			Mutable:    p.Mutable,
			HasDefault: p.HasDefault,
			Rest:       p.Rest,
		}
	}
	if b.ThrowType != nil {
		out.ThrowType = SubstituteSelf(b.ThrowType, selfType)
	}
	if b.ReturnType != nil {
		out.ReturnType = SubstituteSelf(b.ReturnType, selfType)
	}
	return out
}
