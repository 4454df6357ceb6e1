package golang

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/broady/enumext"
	"github.com/broady/enumext/enumgen/ir"
	"github.com/broady/enumext/enumgen/metadata"
	"github.com/broady/enumext/enumgen/naming"
	"github.com/stretchr/testify/require"
)

// runtimeStub declares the parts of the runtime package that generated code uses.
const runtimeStub = `package enumext

type Transform int

func (t Transform) Apply(s string) string { return s }

type ParseOptions struct {
	IgnoreCase            bool
	UseMetadataAttributes bool
	DisableNumberParsing  bool
}

type SerializationOptions struct {
	IgnoreMetadataAttributes bool
	Transform                Transform
}

type ParseError struct {
	Type  string
	Input string
}

func (e *ParseError) Error() string { return e.Type + ": " + e.Input }

func NewParseError(typeName, input string) *ParseError {
	return &ParseError{Type: typeName, Input: input}
}
`

var (
	stdOnce     sync.Once
	stdFset     *token.FileSet
	stdImporter types.Importer
)

// checker type-checks generated files against the standard library and the
// runtime stub.
type checker struct {
	fset *token.FileSet
	pkgs map[string]*types.Package
}

func newChecker(t *testing.T) *checker {
	t.Helper()
	stdOnce.Do(func() {
		stdFset = token.NewFileSet()
		stdImporter = importer.ForCompiler(stdFset, "source", nil)
	})
	c := &checker{fset: stdFset, pkgs: make(map[string]*types.Package)}
	c.check(t, RuntimeImportPath, runtimeStub)
	return c
}

func (c *checker) Import(path string) (*types.Package, error) {
	if p, ok := c.pkgs[path]; ok {
		return p, nil
	}
	return stdImporter.Import(path)
}

func (c *checker) check(t *testing.T, path string, sources ...string) *types.Package {
	t.Helper()
	var files []*ast.File
	for i, src := range sources {
		f, err := parser.ParseFile(c.fset, fmt.Sprintf("%s/file%d.go", path, i), src, parser.ParseComments)
		require.NoError(t, err, src)
		files = append(files, f)
	}
	conf := types.Config{Importer: c}
	pkg, err := conf.Check(path, c.fset, files, nil)
	require.NoError(t, err, strings.Join(sources, "\n----\n"))
	c.pkgs[path] = pkg
	return pkg
}

// enumSource declares d as Go source.
func enumSource(d *ir.EnumDescriptor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "package %s\n\ntype %s %s\n", d.Package(), d.Name, d.Underlying)
	if len(d.Members) > 0 {
		b.WriteString("\nconst (\n")
		for _, m := range d.Members {
			fmt.Fprintf(&b, "\t%s %s = %s\n", m.Name, d.Name, m.Value.Format(d.Underlying))
		}
		b.WriteString(")\n")
	}
	return b.String()
}

// generate runs d through the resolvers and the emitter.
func generate(t *testing.T, d *ir.EnumDescriptor, cfg ir.DefaultConfiguration, opts Options) *GeneratedUnit {
	t.Helper()
	require.Empty(t, d.Validate())
	resolved, _ := metadata.Resolve(d, cfg)
	id := naming.Resolve(d, cfg)
	opts.ExtensionMembers = opts.ExtensionMembers || cfg.ForceExtensionMembers
	unit, err := Emit(resolved, id, opts)
	require.NoError(t, err)
	return unit
}

// genFile evaluates lookups by reading the switch statements of a generated file.
type genFile struct {
	t    *testing.T
	file *ast.File
	recv string
}

func parseUnit(t *testing.T, u *GeneratedUnit) *genFile {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), u.Key, u.Source, parser.ParseComments)
	require.NoError(t, err, string(u.Source))
	return &genFile{t: t, file: f, recv: u.Identity.TypeName()}
}

func (g *genFile) method(recv, name string) *ast.FuncDecl {
	g.t.Helper()
	for _, decl := range g.file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil || fn.Name.Name != name {
			continue
		}
		if types.ExprString(fn.Recv.List[0].Type) == recv {
			return fn
		}
	}
	g.t.Fatalf("method %s.%s not found", recv, name)
	return nil
}

func (g *genFile) hasMethod(recv, name string) bool {
	for _, decl := range g.file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && fn.Recv != nil && fn.Name.Name == name &&
			types.ExprString(fn.Recv.List[0].Type) == recv {
			return true
		}
	}
	return false
}

type switchCase struct {
	keys   []string
	result string
}

// switches returns the switch statements of fn in source order.
func switches(fn *ast.FuncDecl) [][]switchCase {
	var out [][]switchCase
	ast.Inspect(fn.Body, func(n ast.Node) bool {
		sw, ok := n.(*ast.SwitchStmt)
		if !ok {
			return true
		}
		var cases []switchCase
		for _, stmt := range sw.Body.List {
			cc := stmt.(*ast.CaseClause)
			var sc switchCase
			for _, e := range cc.List {
				sc.keys = append(sc.keys, caseKey(e))
			}
			for _, s := range cc.Body {
				if ret, ok := s.(*ast.ReturnStmt); ok && len(ret.Results) > 0 {
					sc.result = types.ExprString(ret.Results[0])
					break
				}
			}
			cases = append(cases, sc)
		}
		out = append(out, cases)
		return true
	})
	return out
}

func caseKey(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.BasicLit:
		if e.Kind == token.STRING {
			s, _ := strconv.Unquote(e.Value)
			return s
		}
		return e.Value
	case *ast.CallExpr:
		return caseKey(e.Args[1])
	default:
		return types.ExprString(e)
	}
}

func lookup(cases []switchCase, key string, fold bool) (string, bool) {
	for _, c := range cases {
		for _, k := range c.keys {
			if k == key || (fold && strings.EqualFold(k, key)) {
				return c.result, true
			}
		}
	}
	return "", false
}

func unquote(s string) string {
	u, err := strconv.Unquote(s)
	if err != nil {
		return s
	}
	return u
}

// toStringFast evaluates ToStringFast for the value literal lit.
func (g *genFile) toStringFast(lit string) string {
	return g.stringSwitch("ToStringFast", lit)
}

func (g *genFile) stringSwitch(method, lit string) string {
	sw := switches(g.method(g.recv, method))
	if len(sw) > 0 {
		if r, ok := lookup(sw[0], lit, false); ok {
			return unquote(r)
		}
	}
	return lit
}

// tryParse evaluates TryParseWithOptions and returns the matched value literal.
func (g *genFile) tryParse(name string, opts enumext.ParseOptions) (string, bool) {
	sw := switches(g.method(g.recv, "TryParseWithOptions"))
	if len(sw) == 4 {
		names := sw[1]
		if opts.IgnoreCase {
			names = sw[0]
		}
		if r, ok := lookup(names, name, opts.IgnoreCase); ok {
			return r, true
		}
		if opts.UseMetadataAttributes {
			display := sw[3]
			if opts.IgnoreCase {
				display = sw[2]
			}
			if r, ok := lookup(display, name, opts.IgnoreCase); ok {
				return r, true
			}
		}
	}
	return g.parseNumber(name, opts)
}

// parseNumber evaluates the number fallback of TryParseWithOptions: it finds
// the strconv call guarded by DisableNumberParsing and runs it with the base
// and bit size written in the generated source.
func (g *genFile) parseNumber(input string, opts enumext.ParseOptions) (string, bool) {
	g.t.Helper()
	fn := g.method(g.recv, "TryParseWithOptions")
	params := fn.Type.Params.List
	nameParam, optsParam := params[0].Names[0].Name, params[1].Names[0].Name
	enumType := types.ExprString(fn.Type.Results.List[0].Type)

	for _, stmt := range fn.Body.List {
		guard, ok := stmt.(*ast.IfStmt)
		if !ok {
			continue
		}
		not, ok := guard.Cond.(*ast.UnaryExpr)
		if !ok || not.Op != token.NOT || types.ExprString(not.X) != optsParam+".DisableNumberParsing" {
			continue
		}
		if opts.DisableNumberParsing {
			return "0", false
		}

		parse := guard.Body.List[0].(*ast.IfStmt)
		assign := parse.Init.(*ast.AssignStmt)
		call := assign.Rhs[0].(*ast.CallExpr)
		fun := call.Fun.(*ast.SelectorExpr)
		require.Equal(g.t, g.importName("strconv"), types.ExprString(fun.X))
		require.Len(g.t, call.Args, 3)
		require.Equal(g.t, nameParam, types.ExprString(call.Args[0]))
		base := g.intLiteral(call.Args[1])
		bitSize := g.intLiteral(call.Args[2])

		ret := parse.Body.List[0].(*ast.ReturnStmt)
		conv := ret.Results[0].(*ast.CallExpr)
		require.Equal(g.t, enumType, types.ExprString(conv.Fun))
		require.Equal(g.t, types.ExprString(assign.Lhs[0]), types.ExprString(conv.Args[0]))

		switch fun.Sel.Name {
		case "ParseInt":
			n, err := strconv.ParseInt(input, base, bitSize)
			if err != nil {
				return "0", false
			}
			return strconv.FormatInt(n, 10), true
		case "ParseUint":
			n, err := strconv.ParseUint(input, base, bitSize)
			if err != nil {
				return "0", false
			}
			return strconv.FormatUint(n, 10), true
		default:
			g.t.Fatalf("unexpected number parser %s", types.ExprString(fun))
		}
	}
	g.t.Fatalf("TryParseWithOptions has no number fallback")
	return "", false
}

func (g *genFile) intLiteral(e ast.Expr) int {
	g.t.Helper()
	lit, ok := e.(*ast.BasicLit)
	require.True(g.t, ok && lit.Kind == token.INT, types.ExprString(e))
	n, err := strconv.Atoi(lit.Value)
	require.NoError(g.t, err)
	return n
}

// importName returns the name under which the file imports path.
func (g *genFile) importName(path string) string {
	g.t.Helper()
	for _, spec := range g.file.Imports {
		if unquote(spec.Path.Value) != path {
			continue
		}
		if spec.Name != nil {
			return spec.Name.Name
		}
		return ir.PackageNameOf(path)
	}
	g.t.Fatalf("%s is not imported", path)
	return ""
}

// isDefinedName evaluates IsDefinedName.
func (g *genFile) isDefinedName(name string) bool {
	sw := switches(g.method(g.recv, "IsDefinedName"))
	if len(sw) == 0 {
		return false
	}
	_, ok := lookup(sw[0], name, false)
	return ok
}

// isDefined evaluates IsDefined for the value literal lit.
func (g *genFile) isDefined(lit string) bool {
	sw := switches(g.method(g.recv, "IsDefined"))
	if len(sw) == 0 {
		return false
	}
	_, ok := lookup(sw[0], lit, false)
	return ok
}

// listResult returns the elements of the composite literal returned by method.
func (g *genFile) listResult(method string) []string {
	fn := g.method(g.recv, method)
	ret := fn.Body.List[len(fn.Body.List)-1].(*ast.ReturnStmt)
	lit := ret.Results[0].(*ast.CompositeLit)
	out := []string{}
	for _, e := range lit.Elts {
		out = append(out, unquote(types.ExprString(e)))
	}
	return out
}

// returnExpr returns the expression of the single return statement of method.
func (g *genFile) returnExpr(recv, method string) string {
	fn := g.method(recv, method)
	ret := fn.Body.List[len(fn.Body.List)-1].(*ast.ReturnStmt)
	return types.ExprString(ret.Results[0])
}

// evalBool evaluates a boolean expression over the integer constants value and flag.
func evalBool(t *testing.T, expr string, value, flag int64) bool {
	t.Helper()
	fset := token.NewFileSet()
	src := fmt.Sprintf("package p\n\nconst value, flag = %d, %d\n", value, flag)
	f, err := parser.ParseFile(fset, "p.go", src, 0)
	require.NoError(t, err)
	pkg, err := new(types.Config).Check("p", fset, []*ast.File{f}, nil)
	require.NoError(t, err)
	tv, err := types.Eval(fset, pkg, token.NoPos, expr)
	require.NoError(t, err, expr)
	require.Equal(t, constant.Bool, tv.Value.Kind())
	return constant.BoolVal(tv.Value)
}
