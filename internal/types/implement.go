package types

import "fmt"

// ImplementationError is returned by ImplementTrait when an impl block
// cannot be recorded. The pass layer (internal/pass) maps it to an
// InvalidImplementation diagnostic; types itself never depends on the
// diagnostics package.
type ImplementationError struct {
	Reason string
}

func (e *ImplementationError) Error() string { return e.Reason }

// ImplementTrait records "o implements trait with the given argument
// instantiation", after checking:
//   - arity of trait's type parameters against args
//   - every required method of trait implemented on o with a compatible
//     signature
//   - every required trait of trait already implemented by o
//   - no duplicate implementation of the same trait declaration
//
// selfType is o itself, used to resolve Self in required-method
// signatures before the compatibility check (rule 9).
func (o *Object) ImplementTrait(trait *Trait, args []Type) (*TraitImplementation, error) {
	decl := canonicalTrait(trait)
	if _, exists := o.ImplementedTraits[decl]; exists {
		return nil, &ImplementationError{Reason: fmt.Sprintf("%s already implements %s", o.Name, trait.Name)}
	}
	if len(args) != len(trait.TypeParameters) {
		return nil, &ImplementationError{Reason: fmt.Sprintf(
			"%s expects %d type argument(s), got %d", trait.Name, len(trait.TypeParameters), len(args))}
	}

	inst := Instantiate(trait.TypeParameters, args)

	for _, req := range trait.RequiredTraits {
		if _, ok := o.ImplementedTraits[canonicalTrait(req)]; !ok {
			return nil, &ImplementationError{Reason: fmt.Sprintf(
				"%s must implement %s before implementing %s", o.Name, req.Name, trait.Name)}
		}
	}

	for name, reqMethod := range trait.RequiredMethods {
		have, ok := o.LookupMethod(name)
		if !ok {
			return nil, &ImplementationError{Reason: fmt.Sprintf(
				"%s does not implement required method %q of %s", o.Name, name, trait.Name)}
		}
		want, _ := Resolve(reqMethod, inst).(*Block)
		if want == nil || !signatureCompatible(have, want, o) {
			return nil, &ImplementationError{Reason: fmt.Sprintf(
				"%s's %q has an incompatible signature with %s's required method", o.Name, name, trait.Name)}
		}
	}

	impl := &TraitImplementation{Trait: trait, Arguments: args}
	o.ImplementedTraits[decl] = impl
	return impl, nil
}

// signatureCompatible checks a candidate implementation's signature
// against a trait's required signature, resolving Self to the
// implementing object on both sides.
func signatureCompatible(have, want *Block, selfType Type) bool {
	return Compatible(have, want, selfType) && Compatible(want, have, selfType)
}

// EffectiveRequiredTraits returns the required traits for type parameter
// tp as seen from within a method that declares `where tp: bounds...`.
// The bounds shadow (are unioned with) but never mutate tp's own
// declaration.
func EffectiveRequiredTraits(tp *TypeParameter, bounds map[string][]*Trait) []*Trait {
	extra, ok := bounds[tp.Name]
	if !ok || len(extra) == 0 {
		return tp.RequiredTraits
	}
	seen := make(map[*Trait]bool, len(tp.RequiredTraits)+len(extra))
	out := make([]*Trait, 0, len(tp.RequiredTraits)+len(extra))
	for _, t := range tp.RequiredTraits {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, t := range extra {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// WithMethodBounds returns a TypeParameter whose RequiredTraits is the
// effective (bound-widened) list, without mutating tp. Used wherever the
// pass needs to hand a "view" of tp to Implements/Compatible within a
// bounded method body.
func WithMethodBounds(tp *TypeParameter, bounds map[string][]*Trait) *TypeParameter {
	eff := EffectiveRequiredTraits(tp, bounds)
	if len(eff) == len(tp.RequiredTraits) {
		same := true
		for i := range eff {
			if eff[i] != tp.RequiredTraits[i] {
				same = false
				break
			}
		}
		if same {
			return tp
		}
	}
	return &TypeParameter{Name: tp.Name, RequiredTraits: eff}
}
