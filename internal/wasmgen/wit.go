package wasmgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cancelei/aria-lang-sub001/internal/capability"
	"github.com/cancelei/aria-lang-sub001/internal/mir"
	"go.bytecodealliance.org/wit"
)

// RenderWIT produces the textual .wit world spec.md §4.5 describes: an
// import line per required capability interface, an export line per
// public function, kebab-case identifiers throughout. go.bytecodealliance.org/wit
// supplies the type shapes (see wittype.go); this function is the text
// serializer the package itself does not provide.
func RenderWIT(worldName string, program *mir.Program, imports []capability.Import) string {
	var b strings.Builder
	fmt.Fprintf(&b, "world %s {\n", kebabCase(worldName))

	for _, iface := range importInterfaces(imports) {
		fmt.Fprintf(&b, "  import %s;\n", iface)
	}

	for _, fn := range program.Functions {
		if !fn.IsPublic {
			continue
		}
		fmt.Fprintf(&b, "  export %s: func(%s) -> %s;\n",
			kebabCase(fn.Name), renderParams(fn, program), renderReturn(fn, program))
	}

	b.WriteString("}\n")
	return b.String()
}

// importInterfaces collects the distinct "wasi:pkg/iface" strings named by
// imports, sorted by name, one import line per interface rather than
// per function (a world imports an interface, not individual functions).
func importInterfaces(imports []capability.Import) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, imp := range imports {
		if _, ok := seen[imp.Module]; ok {
			continue
		}
		seen[imp.Module] = struct{}{}
		out = append(out, imp.Module)
	}
	sort.Strings(out)
	return out
}

func renderParams(fn *mir.Function, program *mir.Program) string {
	parts := make([]string, len(fn.Params))
	for i, id := range fn.Params {
		local := fn.Locals[id]
		name := local.Name
		if name == "" {
			name = fmt.Sprintf("arg%d", i)
		}
		parts[i] = fmt.Sprintf("%s: %s", kebabCase(name), renderWitType(ToWitType(local.Type, program)))
	}
	return strings.Join(parts, ", ")
}

func renderReturn(fn *mir.Function, program *mir.Program) string {
	if fn.ReturnType.Kind == mir.KindUnit {
		return "tuple<>"
	}
	return renderWitType(ToWitType(fn.ReturnType, program))
}

// renderWitType walks a wit.Type to its textual WIT surface, per spec.md
// §4.5's type-mapping table.
func renderWitType(t wit.Type) string {
	switch v := t.(type) {
	case wit.Bool:
		return "bool"
	case wit.S8:
		return "s8"
	case wit.U8:
		return "u8"
	case wit.S16:
		return "s16"
	case wit.U16:
		return "u16"
	case wit.S32:
		return "s32"
	case wit.U32:
		return "u32"
	case wit.S64:
		return "s64"
	case wit.U64:
		return "u64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.Char:
		return "char"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		return renderWitKind(v.Kind)
	case nil:
		return "tuple<>"
	default:
		return "u32"
	}
}

func renderWitKind(kind any) string {
	switch k := kind.(type) {
	case *wit.Record:
		fields := make([]string, len(k.Fields))
		for i, f := range k.Fields {
			fields[i] = fmt.Sprintf("%s: %s", kebabCase(f.Name), renderWitType(f.Type))
		}
		return fmt.Sprintf("record { %s }", strings.Join(fields, ", "))
	case *wit.List:
		return fmt.Sprintf("list<%s>", renderWitType(k.Type))
	case *wit.Tuple:
		if len(k.Types) == 0 {
			return "tuple<>"
		}
		parts := make([]string, len(k.Types))
		for i, t := range k.Types {
			parts[i] = renderWitType(t)
		}
		return fmt.Sprintf("tuple<%s>", strings.Join(parts, ", "))
	case *wit.Option:
		return fmt.Sprintf("option<%s>", renderWitType(k.Type))
	case *wit.Result:
		ok, errT := renderWitType(k.OK), renderWitType(k.Err)
		return fmt.Sprintf("result<%s, %s>", ok, errT)
	case *wit.Enum:
		cases := make([]string, len(k.Cases))
		for i, c := range k.Cases {
			cases[i] = kebabCase(c.Name)
		}
		return fmt.Sprintf("enum { %s }", strings.Join(cases, ", "))
	case *wit.Variant:
		cases := make([]string, len(k.Cases))
		for i, c := range k.Cases {
			if c.Type == nil {
				cases[i] = kebabCase(c.Name)
			} else {
				cases[i] = fmt.Sprintf("%s(%s)", kebabCase(c.Name), renderWitType(c.Type))
			}
		}
		return fmt.Sprintf("variant { %s }", strings.Join(cases, ", "))
	case *wit.Flags:
		flags := make([]string, len(k.Flags))
		for i, f := range k.Flags {
			flags[i] = kebabCase(f.Name)
		}
		return fmt.Sprintf("flags { %s }", strings.Join(flags, ", "))
	case *wit.Own:
		return "own<resource>"
	case *wit.Borrow:
		return "borrow<resource>"
	default:
		return "u32"
	}
}

// kebabCase converts a snake_case or PascalCase/camelCase identifier into
// WIT's kebab-case convention, per spec.md §4.5.
func kebabCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_':
			b.WriteByte('-')
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r - 'A' + 'a')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
