package semantic

import (
	"go/ast"
	"go/token"
)

type DeclKind string

const (
	KindStruct    DeclKind = "struct"
	KindInterface DeclKind = "interface"
	KindEnum      DeclKind = "enum"
	KindFunction  DeclKind = "function"
)

type MemberKind string

const (
	MemberProperty MemberKind = "property"
	MemberMethod   MemberKind = "method"
	MemberCase     MemberKind = "case"
)

type Member struct {
	Name string
	Kind MemberKind
	Line int
}

// DeclarationInfo is a typed view over one top-level declaration. Built in a
// single pass over the node; pure function of the tree, no I/O.
type DeclarationInfo struct {
	Name       string
	Kind       DeclKind
	Properties int
	Methods    int
	Cases      int
	Conforms   []string
	Line       int

	members []Member
}

// Member finds a nested member by name and kind.
func (d *DeclarationInfo) Member(name string, kind MemberKind) (Member, bool) {
	for _, m := range d.members {
		if m.Name == name && m.Kind == kind {
			return m, true
		}
	}
	return Member{}, false
}

// MembersOf returns all members of one kind in declaration order.
func (d *DeclarationInfo) MembersOf(kind MemberKind) []Member {
	var out []Member
	for _, m := range d.members {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

// Declarations builds views for every top-level type, enum-style const group
// and function in the file. Methods are attributed to their receiver type.
func Declarations(c *SourceContext) []DeclarationInfo {
	methods := methodsByReceiver(c)
	var out []DeclarationInfo
	for _, decl := range c.File.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			switch d.Tok {
			case token.TYPE:
				for _, spec := range d.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}
					if info, ok := describeType(c, ts, methods[ts.Name.Name]); ok {
						out = append(out, info)
					}
				}
			case token.CONST:
				if info, ok := describeConstGroup(c, d); ok {
					out = append(out, info)
				}
			}
		case *ast.FuncDecl:
			if d.Recv != nil {
				continue // counted on the receiver type
			}
			out = append(out, DeclarationInfo{
				Name: d.Name.Name,
				Kind: KindFunction,
				Line: c.LineFor(d.Pos()),
			})
		}
	}
	return out
}

func describeType(c *SourceContext, ts *ast.TypeSpec, methods []Member) (DeclarationInfo, bool) {
	info := DeclarationInfo{
		Name:    ts.Name.Name,
		Line:    c.LineFor(ts.Pos()),
		Methods: len(methods),
		members: methods,
	}
	switch t := ts.Type.(type) {
	case *ast.StructType:
		info.Kind = KindStruct
		for _, f := range t.Fields.List {
			if len(f.Names) == 0 {
				// embedded field: treated as a conformance-style relation
				info.Conforms = append(info.Conforms, typeName(f.Type))
				continue
			}
			for _, name := range f.Names {
				info.Properties++
				info.members = append(info.members, Member{
					Name: name.Name, Kind: MemberProperty, Line: c.LineFor(name.Pos()),
				})
			}
		}
	case *ast.InterfaceType:
		info.Kind = KindInterface
		for _, m := range t.Methods.List {
			if len(m.Names) == 0 {
				info.Conforms = append(info.Conforms, typeName(m.Type))
				continue
			}
			for _, name := range m.Names {
				info.Methods++
				info.members = append(info.members, Member{
					Name: name.Name, Kind: MemberMethod, Line: c.LineFor(name.Pos()),
				})
			}
		}
	default:
		return DeclarationInfo{}, false
	}
	return info, true
}

// describeConstGroup exposes a typed const block as an enum view: the group
// becomes one declaration named after the shared type, each constant a case.
func describeConstGroup(c *SourceContext, d *ast.GenDecl) (DeclarationInfo, bool) {
	var typ string
	info := DeclarationInfo{Kind: KindEnum, Line: c.LineFor(d.Pos())}
	for _, spec := range d.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		if vs.Type != nil {
			if t := typeName(vs.Type); typ == "" {
				typ = t
			} else if t != typ {
				return DeclarationInfo{}, false // mixed-type block, not an enum
			}
		}
		for _, name := range vs.Names {
			if name.Name == "_" {
				continue
			}
			info.Cases++
			info.members = append(info.members, Member{
				Name: name.Name, Kind: MemberCase, Line: c.LineFor(name.Pos()),
			})
		}
	}
	if typ == "" || info.Cases == 0 {
		return DeclarationInfo{}, false
	}
	info.Name = typ
	return info, true
}

func methodsByReceiver(c *SourceContext) map[string][]Member {
	out := map[string][]Member{}
	for _, decl := range c.File.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Recv == nil || len(fd.Recv.List) == 0 {
			continue
		}
		recv := typeName(fd.Recv.List[0].Type)
		out[recv] = append(out[recv], Member{
			Name: fd.Name.Name, Kind: MemberMethod, Line: c.LineFor(fd.Pos()),
		})
	}
	return out
}

func typeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return typeName(t.X)
	case *ast.SelectorExpr:
		return typeName(t.X) + "." + t.Sel.Name
	case *ast.IndexExpr:
		return typeName(t.X)
	default:
		return ""
	}
}
