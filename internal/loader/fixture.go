package loader

import (
	"encoding/json"
	"fmt"

	"github.com/inko-lang/inko-sub002/internal/ast"
)

// envelope is the on-disk shape of one fixture node: a "kind"
// discriminator plus the kind's own fields, decoded a second time into
// the concrete struct once Kind is known. This mirrors the tagged-union
// shape diagnostics.Diagnostic already uses for its own JSON export
// (§1 "JSON fixture format"), applied here to the AST side instead.
type envelope struct {
	Kind string          `json:"kind"`
	Pos  ast.Pos         `json:"pos"`
	Raw  json.RawMessage `json:"-"`
}

// LoadFixture decodes a single JSON-encoded module fixture into an
// *ast.File. Fixtures are the stand-in for "a parser's output" this
// core's input contract names (§6.1) -- there is no lexer/parser here,
// so a test harness or the CLI's `check` command hands this function
// pre-serialized AST instead of source text.
func LoadFixture(data []byte) (*ast.File, error) {
	var raw struct {
		ModulePath string          `json:"module_path"`
		Pos        ast.Pos         `json:"pos"`
		Imports    []*ast.Import   `json:"imports"`
		Statements []json.RawMessage `json:"statements"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("loader: decoding fixture: %w", err)
	}

	file := &ast.File{
		Pos:        raw.Pos,
		ModulePath: raw.ModulePath,
		Imports:    raw.Imports,
	}
	for i, stmt := range raw.Statements {
		node, err := decodeNode(stmt)
		if err != nil {
			return nil, fmt.Errorf("loader: statement %d: %w", i, err)
		}
		file.Statements = append(file.Statements, node)
	}
	return file, nil
}

func unmarshalInto(data json.RawMessage, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("loader: decoding fixture node: %w", err)
	}
	return nil
}

func decodeEnvelope(data json.RawMessage) (envelope, error) {
	var e envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return e, err
	}
	e.Raw = data
	return e, nil
}

func decodeExpr(data json.RawMessage) (ast.Expr, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	node, err := decodeNode(data)
	if err != nil {
		return nil, err
	}
	expr, ok := node.(ast.Expr)
	if !ok {
		return nil, fmt.Errorf("node %T is not an expression", node)
	}
	return expr, nil
}

func decodeNodes(raws []json.RawMessage) ([]ast.Node, error) {
	out := make([]ast.Node, 0, len(raws))
	for i, r := range raws {
		n, err := decodeNode(r)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func decodeExprs(raws []json.RawMessage) ([]ast.Expr, error) {
	out := make([]ast.Expr, 0, len(raws))
	for i, r := range raws {
		e, err := decodeExpr(r)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// decodeNode is the dispatcher mirroring pass.DefineType's own switch:
// one case per ast node kind the fixture format can name.
func decodeNode(data json.RawMessage) (ast.Node, error) {
	env, err := decodeEnvelope(data)
	if err != nil {
		return nil, err
	}

	switch env.Kind {
	case "IntegerLit":
		var v struct {
			Value int64 `json:"value"`
		}
		if err := unmarshalInto(env.Raw, &v); err != nil {
			return nil, err
		}
		return &ast.IntegerLit{Pos: env.Pos, Value: v.Value}, nil

	case "FloatLit":
		var v struct {
			Value float64 `json:"value"`
		}
		if err := unmarshalInto(env.Raw, &v); err != nil {
			return nil, err
		}
		return &ast.FloatLit{Pos: env.Pos, Value: v.Value}, nil

	case "StringLit":
		var v struct {
			Value string `json:"value"`
		}
		if err := unmarshalInto(env.Raw, &v); err != nil {
			return nil, err
		}
		return &ast.StringLit{Pos: env.Pos, Value: v.Value}, nil

	case "ConstantRef":
		var v struct {
			Name  string          `json:"name"`
			Scope json.RawMessage `json:"scope"`
		}
		if err := unmarshalInto(env.Raw, &v); err != nil {
			return nil, err
		}
		scope, err := decodeExpr(v.Scope)
		if err != nil {
			return nil, err
		}
		return &ast.ConstantRef{Pos: env.Pos, Name: v.Name, Scope: scope}, nil

	case "TypeArgsRef":
		var v struct {
			Base    json.RawMessage   `json:"base"`
			TypeArg []json.RawMessage `json:"type_args"`
		}
		if err := unmarshalInto(env.Raw, &v); err != nil {
			return nil, err
		}
		base, err := decodeExpr(v.Base)
		if err != nil {
			return nil, err
		}
		args, err := decodeExprs(v.TypeArg)
		if err != nil {
			return nil, err
		}
		return &ast.TypeArgsRef{Pos: env.Pos, Base: base, TypeArg: args}, nil

	case "OptionalTypeRef":
		var v struct {
			Inner json.RawMessage `json:"inner"`
		}
		if err := unmarshalInto(env.Raw, &v); err != nil {
			return nil, err
		}
		inner, err := decodeExpr(v.Inner)
		if err != nil {
			return nil, err
		}
		return &ast.OptionalTypeRef{Pos: env.Pos, Inner: inner}, nil

	case "SelfExpr":
		return &ast.SelfExpr{Pos: env.Pos}, nil

	case "Identifier":
		var v struct {
			Name string `json:"name"`
		}
		if err := unmarshalInto(env.Raw, &v); err != nil {
			return nil, err
		}
		return &ast.Identifier{Pos: env.Pos, Name: v.Name}, nil

	case "AttributeRef":
		var v struct {
			Name string `json:"name"`
		}
		if err := unmarshalInto(env.Raw, &v); err != nil {
			return nil, err
		}
		return &ast.AttributeRef{Pos: env.Pos, Name: v.Name}, nil

	case "GlobalRef":
		var v struct {
			Name string `json:"name"`
		}
		if err := unmarshalInto(env.Raw, &v); err != nil {
			return nil, err
		}
		return &ast.GlobalRef{Pos: env.Pos, Name: v.Name}, nil

	case "Call":
		var v struct {
			Receiver json.RawMessage `json:"receiver"`
			Message  string          `json:"message"`
			TypeArgs []json.RawMessage `json:"type_args"`
			Args     []struct {
				Name  string          `json:"name"`
				Value json.RawMessage `json:"value"`
			} `json:"args"`
		}
		if err := unmarshalInto(env.Raw, &v); err != nil {
			return nil, err
		}
		recv, err := decodeExpr(v.Receiver)
		if err != nil {
			return nil, err
		}
		typeArgs, err := decodeExprs(v.TypeArgs)
		if err != nil {
			return nil, err
		}
		args := make([]*ast.Argument, 0, len(v.Args))
		for _, a := range v.Args {
			val, err := decodeExpr(a.Value)
			if err != nil {
				return nil, err
			}
			args = append(args, &ast.Argument{Name: a.Name, Value: val})
		}
		return &ast.Call{Pos: env.Pos, Receiver: recv, Message: v.Message, TypeArgs: typeArgs, Args: args}, nil

	case "ClosureLit":
		var v struct {
			Kind       string            `json:"block_kind"`
			Params     []rawParam        `json:"params"`
			ThrowType  json.RawMessage   `json:"throw_type"`
			ReturnType json.RawMessage   `json:"return_type"`
			Body       []json.RawMessage `json:"body"`
		}
		if err := unmarshalInto(env.Raw, &v); err != nil {
			return nil, err
		}
		params, err := decodeParams(v.Params)
		if err != nil {
			return nil, err
		}
		throwT, err := decodeExpr(v.ThrowType)
		if err != nil {
			return nil, err
		}
		retT, err := decodeExpr(v.ReturnType)
		if err != nil {
			return nil, err
		}
		body, err := decodeNodes(v.Body)
		if err != nil {
			return nil, err
		}
		kind := ast.BlockKindClosure
		if v.Kind == "lambda" {
			kind = ast.BlockKindLambda
		}
		return &ast.ClosureLit{Pos: env.Pos, Kind: kind, Params: params, ThrowType: throwT, ReturnType: retT, Body: body}, nil

	case "BlockTypeRef":
		var v struct {
			Kind       string            `json:"block_kind"`
			Optional   bool              `json:"optional"`
			Params     []json.RawMessage `json:"params"`
			ThrowType  json.RawMessage   `json:"throw_type"`
			ReturnType json.RawMessage   `json:"return_type"`
		}
		if err := unmarshalInto(env.Raw, &v); err != nil {
			return nil, err
		}
		params, err := decodeExprs(v.Params)
		if err != nil {
			return nil, err
		}
		throwT, err := decodeExpr(v.ThrowType)
		if err != nil {
			return nil, err
		}
		retT, err := decodeExpr(v.ReturnType)
		if err != nil {
			return nil, err
		}
		kind := ast.BlockKindClosure
		if v.Kind == "lambda" {
			kind = ast.BlockKindLambda
		}
		return &ast.BlockTypeRef{Pos: env.Pos, Kind: kind, Optional: v.Optional, Params: params, ThrowType: throwT, ReturnType: retT}, nil

	case "MethodDef":
		var v struct {
			Name       string            `json:"name"`
			Static     bool              `json:"static"`
			TypeParams []rawTypeParam    `json:"type_params"`
			Where      []rawWhereClause  `json:"where"`
			Params     []rawParam        `json:"params"`
			ThrowType  json.RawMessage   `json:"throw_type"`
			ReturnType json.RawMessage   `json:"return_type"`
			Body       []json.RawMessage `json:"body"`
		}
		if err := unmarshalInto(env.Raw, &v); err != nil {
			return nil, err
		}
		typeParams, err := decodeTypeParams(v.TypeParams)
		if err != nil {
			return nil, err
		}
		where, err := decodeWhereClauses(v.Where)
		if err != nil {
			return nil, err
		}
		params, err := decodeParams(v.Params)
		if err != nil {
			return nil, err
		}
		throwT, err := decodeExpr(v.ThrowType)
		if err != nil {
			return nil, err
		}
		retT, err := decodeExpr(v.ReturnType)
		if err != nil {
			return nil, err
		}
		var body []ast.Node
		if v.Body != nil {
			body, err = decodeNodes(v.Body)
			if err != nil {
				return nil, err
			}
		}
		return &ast.MethodDef{
			Pos: env.Pos, Name: v.Name, Static: v.Static,
			TypeParams: typeParams, Where: where, Params: params,
			ThrowType: throwT, ReturnType: retT, Body: body,
		}, nil

	case "ObjectDef":
		var v struct {
			Name       string            `json:"name"`
			Reopen     bool              `json:"reopen"`
			TypeParams []rawTypeParam    `json:"type_params"`
			Body       []json.RawMessage `json:"body"`
		}
		if err := unmarshalInto(env.Raw, &v); err != nil {
			return nil, err
		}
		typeParams, err := decodeTypeParams(v.TypeParams)
		if err != nil {
			return nil, err
		}
		body, err := decodeNodes(v.Body)
		if err != nil {
			return nil, err
		}
		return &ast.ObjectDef{Pos: env.Pos, Name: v.Name, Reopen: v.Reopen, TypeParams: typeParams, Body: body}, nil

	case "TraitDef":
		var v struct {
			Name       string            `json:"name"`
			TypeParams []rawTypeParam    `json:"type_params"`
			Required   []json.RawMessage `json:"required"`
			Body       []json.RawMessage `json:"body"`
		}
		if err := unmarshalInto(env.Raw, &v); err != nil {
			return nil, err
		}
		typeParams, err := decodeTypeParams(v.TypeParams)
		if err != nil {
			return nil, err
		}
		required, err := decodeExprs(v.Required)
		if err != nil {
			return nil, err
		}
		body, err := decodeNodes(v.Body)
		if err != nil {
			return nil, err
		}
		return &ast.TraitDef{Pos: env.Pos, Name: v.Name, TypeParams: typeParams, Required: required, Body: body}, nil

	case "ImplDef":
		var v struct {
			Trait     json.RawMessage   `json:"trait"`
			ForObject json.RawMessage   `json:"for_object"`
			Body      []json.RawMessage `json:"body"`
		}
		if err := unmarshalInto(env.Raw, &v); err != nil {
			return nil, err
		}
		trait, err := decodeExpr(v.Trait)
		if err != nil {
			return nil, err
		}
		forObject, err := decodeExpr(v.ForObject)
		if err != nil {
			return nil, err
		}
		body, err := decodeNodes(v.Body)
		if err != nil {
			return nil, err
		}
		return &ast.ImplDef{Pos: env.Pos, Trait: trait, ForObject: forObject, Body: body}, nil

	case "LetDef":
		var v struct {
			Name        string          `json:"name"`
			IsAttribute bool            `json:"is_attribute"`
			IsConstant  bool            `json:"is_constant"`
			Mutable     bool            `json:"mutable"`
			Type        json.RawMessage `json:"type"`
			Value       json.RawMessage `json:"value"`
		}
		if err := unmarshalInto(env.Raw, &v); err != nil {
			return nil, err
		}
		typ, err := decodeExpr(v.Type)
		if err != nil {
			return nil, err
		}
		val, err := decodeExpr(v.Value)
		if err != nil {
			return nil, err
		}
		return &ast.LetDef{
			Pos: env.Pos, Name: v.Name, IsAttribute: v.IsAttribute,
			IsConstant: v.IsConstant, Mutable: v.Mutable, Type: typ, Value: val,
		}, nil

	case "Assign":
		var v struct {
			Name        string          `json:"name"`
			IsAttribute bool            `json:"is_attribute"`
			Value       json.RawMessage `json:"value"`
		}
		if err := unmarshalInto(env.Raw, &v); err != nil {
			return nil, err
		}
		val, err := decodeExpr(v.Value)
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Pos: env.Pos, Name: v.Name, IsAttribute: v.IsAttribute, Value: val}, nil

	case "Return":
		var v struct {
			Value json.RawMessage `json:"value"`
		}
		if err := unmarshalInto(env.Raw, &v); err != nil {
			return nil, err
		}
		val, err := decodeExpr(v.Value)
		if err != nil {
			return nil, err
		}
		return &ast.Return{Pos: env.Pos, Value: val}, nil

	case "Throw":
		var v struct {
			Value json.RawMessage `json:"value"`
		}
		if err := unmarshalInto(env.Raw, &v); err != nil {
			return nil, err
		}
		val, err := decodeExpr(v.Value)
		if err != nil {
			return nil, err
		}
		return &ast.Throw{Pos: env.Pos, Value: val}, nil

	case "Try":
		var v struct {
			Value    json.RawMessage   `json:"value"`
			Bang     bool              `json:"bang"`
			HasElse  bool              `json:"has_else"`
			ErrName  string            `json:"err_name"`
			ElseBody []json.RawMessage `json:"else_body"`
		}
		if err := unmarshalInto(env.Raw, &v); err != nil {
			return nil, err
		}
		val, err := decodeExpr(v.Value)
		if err != nil {
			return nil, err
		}
		elseBody, err := decodeNodes(v.ElseBody)
		if err != nil {
			return nil, err
		}
		return &ast.Try{
			Pos: env.Pos, Value: val, Bang: v.Bang, HasElse: v.HasElse,
			ErrName: v.ErrName, ElseBody: elseBody,
		}, nil

	case "As":
		var v struct {
			Value json.RawMessage `json:"value"`
			Type  json.RawMessage `json:"type"`
		}
		if err := unmarshalInto(env.Raw, &v); err != nil {
			return nil, err
		}
		val, err := decodeExpr(v.Value)
		if err != nil {
			return nil, err
		}
		typ, err := decodeExpr(v.Type)
		if err != nil {
			return nil, err
		}
		return &ast.As{Pos: env.Pos, Value: val, Type: typ}, nil

	case "Deref":
		var v struct {
			Value json.RawMessage `json:"value"`
		}
		if err := unmarshalInto(env.Raw, &v); err != nil {
			return nil, err
		}
		val, err := decodeExpr(v.Value)
		if err != nil {
			return nil, err
		}
		return &ast.Deref{Pos: env.Pos, Value: val}, nil

	case "RawInstruction":
		var v struct {
			Name string            `json:"name"`
			Args []json.RawMessage `json:"args"`
		}
		if err := unmarshalInto(env.Raw, &v); err != nil {
			return nil, err
		}
		args, err := decodeExprs(v.Args)
		if err != nil {
			return nil, err
		}
		return &ast.RawInstruction{Pos: env.Pos, Name: v.Name, Args: args}, nil

	case "ArrayLit":
		var v struct {
			Elements []json.RawMessage `json:"elements"`
		}
		if err := unmarshalInto(env.Raw, &v); err != nil {
			return nil, err
		}
		elems, err := decodeExprs(v.Elements)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayLit{Pos: env.Pos, Elements: elems}, nil

	case "ErrorExpr", "":
		return &ast.ErrorExpr{Pos: env.Pos}, nil

	default:
		return nil, fmt.Errorf("unknown fixture node kind %q", env.Kind)
	}
}

type rawParam struct {
	Name    string          `json:"name"`
	Mutable bool            `json:"mutable"`
	Type    json.RawMessage `json:"type"`
	Default json.RawMessage `json:"default"`
	Rest    bool            `json:"rest"`
}

func decodeParams(raws []rawParam) ([]*ast.ParamDecl, error) {
	out := make([]*ast.ParamDecl, 0, len(raws))
	for _, r := range raws {
		typ, err := decodeExpr(r.Type)
		if err != nil {
			return nil, err
		}
		def, err := decodeExpr(r.Default)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.ParamDecl{Name: r.Name, Mutable: r.Mutable, Type: typ, Default: def, Rest: r.Rest})
	}
	return out, nil
}

type rawTypeParam struct {
	Name     string            `json:"name"`
	Required []json.RawMessage `json:"required"`
}

func decodeTypeParams(raws []rawTypeParam) ([]*ast.TypeParamDecl, error) {
	out := make([]*ast.TypeParamDecl, 0, len(raws))
	for _, r := range raws {
		required, err := decodeExprs(r.Required)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.TypeParamDecl{Name: r.Name, Required: required})
	}
	return out, nil
}

type rawWhereClause struct {
	Param    string            `json:"param"`
	Required []json.RawMessage `json:"required"`
}

func decodeWhereClauses(raws []rawWhereClause) ([]*ast.WhereClause, error) {
	out := make([]*ast.WhereClause, 0, len(raws))
	for _, r := range raws {
		required, err := decodeExprs(r.Required)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.WhereClause{Param: r.Param, Required: required})
	}
	return out, nil
}
