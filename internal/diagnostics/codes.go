// Package diagnostics implements the core's error/warning reporting:
// structured reports with stable codes, carried on a per-compilation
// sink and rendered either as colored text or JSON.
package diagnostics

// Kind enumerates the diagnostic kinds of spec.md §7.
type Kind string

const (
	KindUndefinedConstant      Kind = "SEMA001"
	KindUndefinedIdentifier    Kind = "SEMA002"
	KindUndefinedAttribute     Kind = "SEMA003"
	KindRedefined              Kind = "SEMA004"
	KindTypeMismatch           Kind = "SEMA005"
	KindArityMismatch          Kind = "SEMA006"
	KindInvalidKeywordArgument Kind = "SEMA007"
	KindReservedConstant       Kind = "SEMA008"
	KindInvalidTraitRequirement Kind = "SEMA009"
	KindInvalidImplementation  Kind = "SEMA010"
	KindInvalidReopen          Kind = "SEMA011"
	KindInvalidContext         Kind = "SEMA012"
	KindInvalidCast            Kind = "SEMA013"
	KindInvalidDereference     Kind = "SEMA014"
	KindUnknownRawInstruction  Kind = "SEMA015"
	KindUselessTry             Kind = "SEMA016" // warning only
)

// KindInfo carries the registry entry for a diagnostic kind.
type KindInfo struct {
	Code        Kind
	Phase       string
	Description string
	// DefaultSeverity is the severity this kind normally carries; most
	// kinds are always errors, but KindUselessTry is always a warning.
	DefaultSeverity Severity
}

// Registry maps every diagnostic kind this core can emit to its
// metadata, mirroring the teacher's ErrorRegistry (internal/errors/codes.go).
var Registry = map[Kind]KindInfo{
	KindUndefinedConstant:       {KindUndefinedConstant, "resolve", "Name lookup failed for a capitalized reference", SeverityError},
	KindUndefinedIdentifier:     {KindUndefinedIdentifier, "resolve", "Name lookup failed for a lowercase reference", SeverityError},
	KindUndefinedAttribute:      {KindUndefinedAttribute, "resolve", "@x is not defined on the current self_type", SeverityError},
	KindRedefined:               {KindRedefined, "define", "Same name defined twice in the same scope", SeverityError},
	KindTypeMismatch:            {KindTypeMismatch, "typecheck", "Compatibility check failed", SeverityError},
	KindArityMismatch:           {KindArityMismatch, "typecheck", "Wrong number of arguments or type arguments", SeverityError},
	KindInvalidKeywordArgument:  {KindInvalidKeywordArgument, "typecheck", "Keyword argument names a missing/rest/already-bound parameter", SeverityError},
	KindReservedConstant:        {KindReservedConstant, "define", "Attempt to redefine a reserved constant", SeverityError},
	KindInvalidTraitRequirement: {KindInvalidTraitRequirement, "define", "A trait requirement does not exist or is not a trait", SeverityError},
	KindInvalidImplementation:   {KindInvalidImplementation, "typecheck", "Missing required method/trait, or incompatible signature", SeverityError},
	KindInvalidReopen:           {KindInvalidReopen, "define", "Reopening a trait, or with mismatched type parameters", SeverityError},
	KindInvalidContext:          {KindInvalidContext, "typecheck", "Construct used outside its valid context", SeverityError},
	KindInvalidCast:             {KindInvalidCast, "typecheck", "`as` between incompatible types", SeverityError},
	KindInvalidDereference:      {KindInvalidDereference, "typecheck", "`*v` where v is not Optional", SeverityError},
	KindUnknownRawInstruction:   {KindUnknownRawInstruction, "typecheck", "_INKOC.name with an unknown name", SeverityError},
	KindUselessTry:              {KindUselessTry, "typecheck", "`try e` where e cannot throw", SeverityWarning},
}
