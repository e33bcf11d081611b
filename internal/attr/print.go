package attr

import (
	"encoding/hex"
	"strconv"
	"strings"

	"lattice/internal/types"
)

// String renders the attribute in the IR literal style, e.g.
// `dense<tensor<2x2xi32>, [1, 2, 3, 4]>` or
// `sparse<tensor<3x4xi32>, [[0, 0], [1, 2]], [1, 5]>`. The full textual
// grammar lives with the printer/parser; this form exists for dumps and
// debugging.
func (a Attr) String() string {
	if a.st == nil {
		return "<null>"
	}
	var sb strings.Builder
	a.print(&sb)
	return sb.String()
}

func (a Attr) print(sb *strings.Builder) {
	c := a.st.ctx
	switch a.st.kind {
	case KindUnit:
		sb.WriteString("unit")
	case KindBool:
		sb.WriteString(strconv.FormatBool(a.st.boolVal))
	case KindInt:
		ia := IntAttr{a}
		sb.WriteString(ia.Value().String())
		sb.WriteString(" : ")
		sb.WriteString(types.Label(c.typesIn, a.st.typ))
	case KindFloat:
		fa := FloatAttr{a}
		sb.WriteString(strconv.FormatFloat(fa.Value(), 'g', -1, 64))
		sb.WriteString(" : ")
		sb.WriteString(types.Label(c.typesIn, a.st.typ))
	case KindString:
		sb.WriteString(strconv.Quote(a.st.strVal))
	case KindType:
		sb.WriteString(types.Label(c.typesIn, a.st.typ))
	case KindArray:
		sb.WriteByte('[')
		for i, v := range a.st.arrVal {
			if i > 0 {
				sb.WriteString(", ")
			}
			v.print(sb)
		}
		sb.WriteByte(']')
	case KindAffineMap:
		sb.WriteString("affine_map<")
		sb.WriteString(a.st.mapVal.Repr)
		sb.WriteByte('>')
	case KindIntegerSet:
		sb.WriteString("integer_set<")
		sb.WriteString(a.st.setVal.Repr)
		sb.WriteByte('>')
	case KindFunction:
		fn := c.readFuncSlot(a.st.fnSlot)
		if fn == nil {
			sb.WriteString("@<deleted>")
			return
		}
		sb.WriteByte('@')
		sb.WriteString(fn.Name)
	case KindElements:
		a.printElements(sb)
	default:
		sb.WriteString("<invalid>")
	}
}

func (a Attr) printElements(sb *strings.Builder) {
	c := a.st.ctx
	label := types.Label(c.typesIn, a.st.typ)
	switch a.st.elems.kind {
	case ElementsSplat:
		sb.WriteString("splat<")
		sb.WriteString(label)
		sb.WriteString(", ")
		a.st.elems.splat.print(sb)
		sb.WriteByte('>')
	case ElementsDenseInt, ElementsDenseFloat:
		d := DenseAttr{ElementsAttr{a}}
		sb.WriteString("dense<")
		sb.WriteString(label)
		sb.WriteString(", ")
		printScalars(sb, d.Values())
		sb.WriteByte('>')
	case ElementsOpaque:
		sb.WriteString("opaque<\"")
		sb.WriteString(a.st.elems.dialect.Name)
		sb.WriteString("\", ")
		sb.WriteString(label)
		sb.WriteString(", \"0x")
		sb.WriteString(hex.EncodeToString(a.st.elems.data))
		sb.WriteString("\">")
	case ElementsSparse:
		s := SparseAttr{ElementsAttr{a}}
		sb.WriteString("sparse<")
		sb.WriteString(label)
		sb.WriteString(", ")
		printIndexRows(sb, s.Indices())
		sb.WriteString(", ")
		printScalars(sb, s.Values().Values())
		sb.WriteByte('>')
	}
}

// printScalars lists scalar element values without their type suffix.
func printScalars(sb *strings.Builder, values []Attr) {
	sb.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			sb.WriteString(", ")
		}
		switch v.Kind() {
		case KindBool:
			sb.WriteString(strconv.FormatBool(v.st.boolVal))
		case KindInt:
			sb.WriteString(IntAttr{v}.Value().String())
		case KindFloat:
			sb.WriteString(strconv.FormatFloat(FloatAttr{v}.Value(), 'g', -1, 64))
		default:
			v.print(sb)
		}
	}
	sb.WriteByte(']')
}

// printIndexRows renders a [N, rank] coordinate attribute as nested lists.
func printIndexRows(sb *strings.Builder, indices DenseIntAttr) {
	shape := indices.shape()
	rows, rank := shape[0], shape[1]
	it := indices.Iter()
	sb.WriteByte('[')
	for row := int64(0); row < rows; row++ {
		if row > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('[')
		for dim := int64(0); dim < rank; dim++ {
			if dim > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(it.Value().String())
			it = it.Next()
		}
		sb.WriteByte(']')
	}
	sb.WriteByte(']')
}
