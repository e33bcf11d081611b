package diag

import (
	"fmt"
)

type Code uint16

const (
	// UnknownCode covers diagnostics that carry no specific code.
	UnknownCode Code = 0

	// Attribute construction (checked factories).
	AttrInfo                  Code = 4000
	AttrFloatNotRepresentable Code = 4001
	AttrIntOutOfRange         Code = 4002
	AttrElementCountMismatch  Code = 4003

	// Opaque constant decoding.
	DecodeInfo          Code = 4100
	DecodeNoDialectHook Code = 4101
	DecodeBadPayload    Code = 4102
)

// ID returns the stable short identifier for the code.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 4000 && ic < 4100:
		return fmt.Sprintf("ATTR%04d", ic)
	case ic >= 4100 && ic < 4200:
		return fmt.Sprintf("DEC%04d", ic)
	}
	return "E0000"
}

// Title returns a короткий human-readable summary for the code.
func (c Code) Title() string {
	titles := map[Code]string{
		AttrInfo:                  "Attribute info",
		AttrFloatNotRepresentable: "Float constant not exactly representable in target format",
		AttrIntOutOfRange:         "Integer constant does not fit the element bit width",
		AttrElementCountMismatch:  "Element count does not match the shaped type",
		DecodeInfo:                "Decode info",
		DecodeNoDialectHook:       "Dialect provides no decode hook for opaque constant",
		DecodeBadPayload:          "Opaque constant payload is malformed",
	}
	if t, ok := titles[c]; ok {
		return t
	}
	return "Unknown diagnostic"
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
