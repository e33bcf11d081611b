package types

import (
	"strconv"
	"strings"
)

// Label returns a user-friendly label for a TypeID, e.g. "i32", "f16",
// "tensor<3x4xi32>".
func Label(typesIn *Interner, id TypeID) string {
	return labelDepth(typesIn, id, 0)
}

func labelDepth(typesIn *Interner, id TypeID, depth int) string {
	if id == NoTypeID || typesIn == nil {
		return "?"
	}
	if depth > 6 {
		return "..."
	}
	tt, ok := typesIn.Lookup(id)
	if !ok {
		return "?"
	}
	switch tt.Kind {
	case KindInt:
		return "i" + strconv.FormatUint(uint64(tt.Width), 10)
	case KindFloat:
		return tt.Format.String()
	case KindVector, KindTensor:
		var sb strings.Builder
		if tt.Kind == KindVector {
			sb.WriteString("vector<")
		} else {
			sb.WriteString("tensor<")
		}
		for _, d := range tt.Shape {
			sb.WriteString(strconv.FormatInt(d, 10))
			sb.WriteByte('x')
		}
		sb.WriteString(labelDepth(typesIn, tt.Elem, depth+1))
		sb.WriteByte('>')
		return sb.String()
	case KindFunction:
		info, ok := typesIn.FnInfoOf(id)
		if !ok {
			return "fn(?)"
		}
		var sb strings.Builder
		sb.WriteString("fn(")
		for i, p := range info.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(labelDepth(typesIn, p, depth+1))
		}
		sb.WriteString(")")
		if len(info.Results) > 0 {
			sb.WriteString(" -> ")
			for i, r := range info.Results {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(labelDepth(typesIn, r, depth+1))
			}
		}
		return sb.String()
	default:
		return "?"
	}
}
