package ast

// Literals ------------------------------------------------------------

type IntegerLit struct {
	typed
	Pos   Pos
	Value int64
}

func (n *IntegerLit) Position() Pos { return n.Pos }
func (n *IntegerLit) exprNode()     {}

type FloatLit struct {
	typed
	Pos   Pos
	Value float64
}

func (n *FloatLit) Position() Pos { return n.Pos }
func (n *FloatLit) exprNode()     {}

type StringLit struct {
	typed
	Pos   Pos
	Value string
}

func (n *StringLit) Position() Pos { return n.Pos }
func (n *StringLit) exprNode()     {}

// Constants -------------------------------------------------------------

// ConstantRef is `A` or, when Scope is non-nil, `A::B` (Scope is the `A`
// expression, Name is `B`).
type ConstantRef struct {
	typed
	Pos   Pos
	Name  string
	Scope Expr // non-nil for `A::B`
}

func (n *ConstantRef) Position() Pos { return n.Pos }
func (n *ConstantRef) exprNode()     {}

// TypeArgsRef is `A!(T...)`, a generic instantiation of a constant.
type TypeArgsRef struct {
	typed
	Pos     Pos
	Base    Expr
	TypeArg []Expr
}

func (n *TypeArgsRef) Position() Pos { return n.Pos }
func (n *TypeArgsRef) exprNode()     {}

// OptionalTypeRef is `?A`.
type OptionalTypeRef struct {
	typed
	Pos   Pos
	Inner Expr
}

func (n *OptionalTypeRef) Position() Pos { return n.Pos }
func (n *OptionalTypeRef) exprNode()     {}

// SelfExpr is the `Self` keyword used as a type or value reference.
type SelfExpr struct {
	typed
	Pos Pos
}

func (n *SelfExpr) Position() Pos { return n.Pos }
func (n *SelfExpr) exprNode()     {}

// Identifiers / attributes / globals -----------------------------------

type Identifier struct {
	typed
	Pos  Pos
	Name string
}

func (n *Identifier) Position() Pos { return n.Pos }
func (n *Identifier) exprNode()     {}

// AttributeRef is `@x`.
type AttributeRef struct {
	typed
	Pos  Pos
	Name string
}

func (n *AttributeRef) Position() Pos { return n.Pos }
func (n *AttributeRef) exprNode()     {}

// GlobalRef is `::name`.
type GlobalRef struct {
	typed
	Pos  Pos
	Name string
}

func (n *GlobalRef) Position() Pos { return n.Pos }
func (n *GlobalRef) exprNode()     {}

// Calls -----------------------------------------------------------------

// Argument is one actual argument at a call site: positional when Name
// is empty, keyword otherwise.
type Argument struct {
	Pos   Pos
	Name  string // empty for positional
	Value Expr
}

// Call is `recv.msg(args)` (Receiver non-nil) or `msg(args)` (Receiver nil).
type Call struct {
	typed
	Pos        Pos
	Receiver   Expr // nil for an implicit-self call
	Message    string
	TypeArgs   []Expr // explicit `msg!(T...)`
	Args       []*Argument

	// ResolvedMethod is filled in by DefineType: the *types.Block of the
	// method this call resolved to (§6.2 "every method-call node carries
	// a pointer to its resolved method type"). Stored as interface{} to
	// avoid ast depending on a specific internal/types alias cycle; in
	// practice it always holds a *types.Block.
	ResolvedMethod interface{}
}

func (n *Call) Position() Pos { return n.Pos }
func (n *Call) exprNode()     {}

// Closures / lambdas ------------------------------------------------------

type BlockKind int

const (
	BlockKindClosure BlockKind = iota
	BlockKindLambda
)

type ParamDecl struct {
	Pos         Pos
	Name        string
	Mutable     bool
	Type        Expr // declared type, nil if inferred
	Default     Expr // nil if none
	Rest        bool
}

// ClosureLit is a `do |args| { body }` / `lambda |args| { body }` literal.
// Whether it is ultimately typed as a Closure or a Lambda block depends
// both on the explicit Kind and on the expected type at its use site
// (§4.5 "An anonymous block passed to a lambda-typed parameter is
// re-typed as a lambda even without the lambda keyword").
type ClosureLit struct {
	typed
	Pos        Pos
	Kind       BlockKind
	Params     []*ParamDecl
	ThrowType  Expr // explicit `!! E`, nil if inferred
	ReturnType Expr // explicit `-> R`, nil if inferred
	Body       []Node
	Scope      Scope
}

func (n *ClosureLit) Position() Pos { return n.Pos }
func (n *ClosureLit) exprNode()     {}

// Method / object / trait definitions -------------------------------------

type TypeParamDecl struct {
	Pos      Pos
	Name     string
	Required []Expr // required-trait constant references
}

// WhereClause is a `where P: Trait + Trait` method bound.
type WhereClause struct {
	Pos      Pos
	Param    string
	Required []Expr
}

// MethodDef is `def name(args) -> R { body }`, a required method with no
// Body, or a static method (Static == true).
type MethodDef struct {
	typed
	Pos        Pos
	Name       string
	Static     bool
	TypeParams []*TypeParamDecl
	Where      []*WhereClause
	Params     []*ParamDecl
	ThrowType  Expr
	ReturnType Expr
	Body       []Node // nil for a required method
	Scope      Scope
}

func (n *MethodDef) Position() Pos { return n.Pos }
func (n *MethodDef) exprNode()     {}

// ObjectDef is `object Name[T...] { ... }` or, when Reopen is true,
// `impl Name { ... }` reopening an existing object.
type ObjectDef struct {
	typed
	Pos        Pos
	Name       string
	Reopen     bool
	TypeParams []*TypeParamDecl
	Body       []Node // MethodDef / LetDef(attribute) entries
	Scope      Scope
}

func (n *ObjectDef) Position() Pos { return n.Pos }
func (n *ObjectDef) exprNode()     {}

// TraitDef is `trait Name[T...] : Required { ... }`.
type TraitDef struct {
	typed
	Pos        Pos
	Name       string
	TypeParams []*TypeParamDecl
	Required   []Expr // required-trait constant references
	Body       []Node // MethodDef entries (required or with default body)
	Scope      Scope
}

func (n *TraitDef) Position() Pos { return n.Pos }
func (n *TraitDef) exprNode()     {}

// ImplDef is `impl Trait[Args] for Object { ... }`.
type ImplDef struct {
	typed
	Pos       Pos
	Trait     Expr // constant ref, possibly TypeArgsRef
	ForObject Expr // constant ref naming the implementing object
	Body      []Node
	Scope     Scope
}

func (n *ImplDef) Position() Pos { return n.Pos }
func (n *ImplDef) exprNode()     {}

// Variable definitions / reassignment --------------------------------------

// LetDef is `let x`, `let mut x`, `let @x` or `let X`.
type LetDef struct {
	typed
	Pos         Pos
	Name        string
	IsAttribute bool // `let @x`
	IsConstant  bool // `let X` (module-global constant)
	Mutable     bool
	Type        Expr // explicit annotation, nil if inferred
	Value       Expr
}

func (n *LetDef) Position() Pos { return n.Pos }
func (n *LetDef) exprNode()     {}

// Assign is `x = v` or `@x = v`.
type Assign struct {
	typed
	Pos         Pos
	Name        string
	IsAttribute bool
	Value       Expr
}

func (n *Assign) Position() Pos { return n.Pos }
func (n *Assign) exprNode()     {}

// Control flow --------------------------------------------------------------

// Return is `return e`.
type Return struct {
	typed
	Pos   Pos
	Value Expr // nil for a bare `return`
}

func (n *Return) Position() Pos { return n.Pos }
func (n *Return) exprNode()     {}

// Throw is `throw e`.
type Throw struct {
	typed
	Pos   Pos
	Value Expr
}

func (n *Throw) Position() Pos { return n.Pos }
func (n *Throw) exprNode()     {}

// Try is `try expr`, `try! expr` or `try expr else (err) { body }`.
type Try struct {
	typed
	Pos      Pos
	Value    Expr
	Bang     bool // `try!`
	HasElse  bool
	ErrName  string // bound name for the else-body's error argument
	ElseBody []Node
	ElseScope Scope

	// ElseType / ErrorSymbol are filled in by DefineType (§6.2: "every
	// try node carries its else-block type and error-argument symbol").
	ElseType    interface{} // types.Type
	ErrorSymbol interface{} // *symbols.Symbol
}

func (n *Try) Position() Pos { return n.Pos }
func (n *Try) exprNode()     {}

// Casts / dereference ---------------------------------------------------

// As is `expr as T`.
type As struct {
	typed
	Pos   Pos
	Value Expr
	Type  Expr
}

func (n *As) Position() Pos { return n.Pos }
func (n *As) exprNode()     {}

// Deref is `*expr`.
type Deref struct {
	typed
	Pos   Pos
	Value Expr
}

func (n *Deref) Position() Pos { return n.Pos }
func (n *Deref) exprNode()     {}

// Raw instructions ----------------------------------------------------------

// RawInstruction is `_INKOC.name(args...)`.
type RawInstruction struct {
	typed
	Pos  Pos
	Name string
	Args []Expr
}

func (n *RawInstruction) Position() Pos { return n.Pos }
func (n *RawInstruction) exprNode()     {}

// Block-type signatures -------------------------------------------------

// BlockTypeRef is `do (T) !! E -> R`, `lambda (T) !! E -> R` or, when
// Optional is true, `?do (T) ...`.
type BlockTypeRef struct {
	typed
	Pos        Pos
	Kind       BlockKind
	Optional   bool
	Params     []Expr
	ThrowType  Expr
	ReturnType Expr
}

func (n *BlockTypeRef) Position() Pos { return n.Pos }
func (n *BlockTypeRef) exprNode()     {}

// Array literals --------------------------------------------------------

type ArrayLit struct {
	typed
	Pos      Pos
	Elements []Expr
}

func (n *ArrayLit) Position() Pos { return n.Pos }
func (n *ArrayLit) exprNode()     {}

// ErrorExpr stands in for a construct the parser could not recover from;
// DefineType assigns it types.ErrorType immediately without visiting children.
type ErrorExpr struct {
	typed
	Pos Pos
}

func (n *ErrorExpr) Position() Pos { return n.Pos }
func (n *ErrorExpr) exprNode()     {}
