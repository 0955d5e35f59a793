// Package types implements the Inko semantic core's type system: a
// tagged union of object, trait, type-parameter, block, optional and
// the small set of terminal types (Dynamic, Error, SelfType, Void,
// Never), plus the compatibility, instantiation and trait-implementation
// rules that relate them.
package types

import (
	"fmt"
	"strings"
)

// Type is the tagged union every semantic value's type belongs to.
type Type interface {
	String() string
	isType()
}

// BlockKind distinguishes a method from a closure from a lambda.
type BlockKind int

const (
	BlockKindMethod BlockKind = iota
	BlockKindClosure
	BlockKindLambda
)

func (k BlockKind) String() string {
	switch k {
	case BlockKindMethod:
		return "Method"
	case BlockKindClosure:
		return "Closure"
	case BlockKindLambda:
		return "Lambda"
	default:
		return "UnknownBlockKind"
	}
}

// Attribute is a named, typed slot on an Object or Trait.
type Attribute struct {
	Name string
	Type Type
}

// Object is a nominal type with attributes, methods, type parameters and
// the set of traits it implements.
type Object struct {
	Name      string
	Prototype Type // *Object or nil

	// AttributeOrder preserves insertion order; AttributeTable gives O(1) lookup.
	AttributeOrder []string
	AttributeTable map[string]*Attribute

	MethodOrder []string
	MethodTable map[string]*Block

	TypeParameters []*TypeParameter

	// ParamInstances is nil on the declaration; a fresh non-nil map is
	// produced per use site by Instantiate. Never mutate a declaration's
	// nil map in place — that is the whole point of §3.2.
	ParamInstances *InstanceMap

	// ImplementedTraits is keyed by the trait *declaration* identity
	// (the *Trait pointer), never by its parameterization — see the
	// open-question decision in DESIGN.md: at most one implementation
	// per (object, trait-declaration) pair.
	ImplementedTraits map[*Trait]*TraitImplementation
}

// NewObject creates an empty object declaration.
func NewObject(name string) *Object {
	return &Object{
		Name:              name,
		AttributeTable:    map[string]*Attribute{},
		MethodTable:       map[string]*Block{},
		ImplementedTraits: map[*Trait]*TraitImplementation{},
	}
}

func (o *Object) isType() {}

func (o *Object) String() string {
	if len(o.TypeParameters) == 0 {
		return o.Name
	}
	names := make([]string, len(o.TypeParameters))
	for i, p := range o.TypeParameters {
		names[i] = p.Name
	}
	return fmt.Sprintf("%s[%s]", o.Name, strings.Join(names, ", "))
}

// DefineAttribute adds a new attribute, returning false if one already
// exists under that name (the caller turns that into a Redefined
// diagnostic).
func (o *Object) DefineAttribute(name string, t Type) (*Attribute, bool) {
	if _, exists := o.AttributeTable[name]; exists {
		return nil, false
	}
	attr := &Attribute{Name: name, Type: t}
	o.AttributeTable[name] = attr
	o.AttributeOrder = append(o.AttributeOrder, name)
	return attr, true
}

// LookupAttribute searches this object, then its prototype chain.
func (o *Object) LookupAttribute(name string) (*Attribute, bool) {
	cur := o
	for cur != nil {
		if a, ok := cur.AttributeTable[name]; ok {
			return a, true
		}
		proto, _ := cur.Prototype.(*Object)
		cur = proto
	}
	return nil, false
}

// DefineMethod adds a method, returning false if one is already defined
// directly on this object (reopening an object augments this table —
// see ImplementTraits/define_type_signatures passes).
func (o *Object) DefineMethod(name string, b *Block) (*Block, bool) {
	if _, exists := o.MethodTable[name]; exists {
		return nil, false
	}
	o.MethodTable[name] = b
	o.MethodOrder = append(o.MethodOrder, name)
	return b, true
}

// LookupMethod searches this object, then its prototype chain.
func (o *Object) LookupMethod(name string) (*Block, bool) {
	cur := o
	for cur != nil {
		if m, ok := cur.MethodTable[name]; ok {
			return m, true
		}
		proto, _ := cur.Prototype.(*Object)
		cur = proto
	}
	return nil, false
}

// TraitImplementation records that an Object implements a Trait with a
// particular parameterization at the site the impl was declared.
type TraitImplementation struct {
	Trait     *Trait
	Arguments []Type // the trait's own type-parameter instantiation
}

// Trait is a nominal interface: required methods, required traits and
// its own type parameters.
type Trait struct {
	Name string

	AttributeOrder []string
	AttributeTable map[string]*Attribute

	MethodOrder []string
	MethodTable map[string]*Block // includes default (non-required) methods

	RequiredMethods map[string]*Block // subset of MethodTable with no body
	RequiredTraits  []*Trait

	TypeParameters []*TypeParameter
	ParamInstances *InstanceMap

	// Declaration points back at the canonical declaration pointer this
	// Trait was copied from (e.g. by an explicit `Trait!(Args)`
	// reference); nil on the declaration itself. ImplementedTraits is
	// keyed by declaration identity, so anything comparing against or
	// indexing by a *Trait must resolve through this first -- see
	// canonicalTrait in compat.go.
	Declaration *Trait
}

// NewTrait creates an empty trait declaration.
func NewTrait(name string) *Trait {
	return &Trait{
		Name:            name,
		AttributeTable:  map[string]*Attribute{},
		MethodTable:     map[string]*Block{},
		RequiredMethods: map[string]*Block{},
	}
}

func (t *Trait) isType() {}

func (t *Trait) String() string {
	if len(t.TypeParameters) == 0 {
		return t.Name
	}
	names := make([]string, len(t.TypeParameters))
	for i, p := range t.TypeParameters {
		names[i] = p.Name
	}
	return fmt.Sprintf("%s[%s]", t.Name, strings.Join(names, ", "))
}

// DefineMethod adds a method (required or with a default body) to the trait.
func (t *Trait) DefineMethod(name string, b *Block, required bool) (*Block, bool) {
	if _, exists := t.MethodTable[name]; exists {
		return nil, false
	}
	t.MethodTable[name] = b
	t.MethodOrder = append(t.MethodOrder, name)
	if required {
		t.RequiredMethods[name] = b
	}
	return b, true
}

// TypeParameter is a generic parameter with a fixed set of required traits.
type TypeParameter struct {
	Name           string
	RequiredTraits []*Trait
}

func NewTypeParameter(name string, required []*Trait) *TypeParameter {
	return &TypeParameter{Name: name, RequiredTraits: required}
}

func (p *TypeParameter) isType() {}

func (p *TypeParameter) String() string { return p.Name }

// Parameter is one entry of a Block's ordered argument table.
type Parameter struct {
	Name       string
	Type       Type
	Mutable    bool
	HasDefault bool
	Rest       bool // absorbs excess positional arguments (element type is Type)
}

// Block is the type of a method, closure or lambda.
type Block struct {
	Kind       BlockKind
	Parameters []*Parameter

	ThrowType  Type // nil when the block declares/infers no throw type
	ReturnType Type

	TypeParameters []*TypeParameter

	// MethodBounds holds `where P: Trait...` requirements that shadow
	// (without mutating) the owning type's declaration of P within this
	// method body only.
	MethodBounds map[string][]*Trait

	ParamInstances *InstanceMap
}

// NewBlock creates a block type with empty parameter/bounds tables.
func NewBlock(kind BlockKind) *Block {
	return &Block{Kind: kind, MethodBounds: map[string][]*Trait{}}
}

func (b *Block) isType() {}

func (b *Block) String() string {
	params := make([]string, len(b.Parameters))
	for i, p := range b.Parameters {
		params[i] = p.Type.String()
	}
	throw := ""
	if b.ThrowType != nil {
		throw = fmt.Sprintf(" !! %s", b.ThrowType.String())
	}
	ret := "Nil"
	if b.ReturnType != nil {
		ret = b.ReturnType.String()
	}
	kw := "do"
	switch b.Kind {
	case BlockKindMethod:
		kw = "def"
	case BlockKindLambda:
		kw = "lambda"
	}
	return fmt.Sprintf("%s (%s)%s -> %s", kw, strings.Join(params, ", "), throw, ret)
}

// ParameterByName finds a declared parameter by name, rest parameter
// included.
func (b *Block) ParameterByName(name string) (*Parameter, int) {
	for i, p := range b.Parameters {
		if p.Name == name {
			return p, i
		}
	}
	return nil, -1
}

// RestParameter returns the rest parameter, if any.
func (b *Block) RestParameter() *Parameter {
	for _, p := range b.Parameters {
		if p.Rest {
			return p
		}
	}
	return nil
}

// Optional wraps an inner type; ?Optional(T) always collapses to ?T.
type Optional struct {
	Inner Type
}

// NewOptional constructs an Optional, collapsing nested optionals.
func NewOptional(inner Type) Type {
	if opt, ok := inner.(*Optional); ok {
		return opt
	}
	return &Optional{Inner: inner}
}

func (o *Optional) isType() {}
func (o *Optional) String() string {
	return "?" + o.Inner.String()
}

// Dynamic is the escape-hatch type. It is a singleton per compilation,
// but since it carries no state a single process-wide value is safe to
// share across compilations too.
type dynamicType struct{}

func (dynamicType) isType()        {}
func (dynamicType) String() string { return "Dynamic" }

// DynamicType is the shared Dynamic instance.
var DynamicType Type = dynamicType{}

// errorType is the poison type. Compatible with everything in every
// direction; never triggers a secondary diagnostic.
type errorType struct{}

func (errorType) isType()        {}
func (errorType) String() string { return "Error" }

// ErrorType is the shared Error instance.
var ErrorType Type = errorType{}

// selfType is the structural placeholder for "the enclosing self_type".
// It is resolved against the current scope before any comparison
// (compatibility rule 9); see SubstituteSelf.
type selfType struct{}

func (selfType) isType()        {}
func (selfType) String() string { return "Self" }

// SelfType is the shared Self placeholder.
var SelfType Type = selfType{}

type voidType struct{}

func (voidType) isType()        {}
func (voidType) String() string { return "Void" }

// VoidType is the result type of statements (return, throw, assignment).
var VoidType Type = voidType{}

type neverType struct{}

func (neverType) isType()        {}
func (neverType) String() string { return "Never" }

// NeverType denotes an expression that never produces a value.
var NeverType Type = neverType{}

// IsSelf reports whether t is the Self placeholder.
func IsSelf(t Type) bool {
	_, ok := t.(selfType)
	return ok
}

// IsDynamic reports whether t is the Dynamic type.
func IsDynamic(t Type) bool {
	_, ok := t.(dynamicType)
	return ok
}

// IsError reports whether t is the Error poison type.
func IsError(t Type) bool {
	_, ok := t.(errorType)
	return ok
}

// IsVoid reports whether t is Void.
func IsVoid(t Type) bool {
	_, ok := t.(voidType)
	return ok
}

// IsNever reports whether t is Never.
func IsNever(t Type) bool {
	_, ok := t.(neverType)
	return ok
}
