package tree

import (
	"fmt"
	"strings"
)

// Class labels the broad family of a datatype.
type Class string

const (
	ClassInteger   Class = "integer"
	ClassFloat     Class = "float"
	ClassString    Class = "string"
	ClassReference Class = "reference"
	ClassOpaque    Class = "opaque"
)

// ByteOrder is the stored byte order of a numeric datatype.
type ByteOrder string

const (
	OrderLittleEndian ByteOrder = "LE"
	OrderBigEndian    ByteOrder = "BE"
	// OrderNone marks datatypes without a meaningful byte order.
	OrderNone ByteOrder = "NONE"
)

// Charset is the character set of a string datatype.
type Charset string

const (
	CharsetASCII Charset = "ascii"
	CharsetUTF8  Charset = "utf8"
)

// StrPad is the padding discipline of a fixed-size string datatype.
type StrPad string

const (
	PadNullTerm StrPad = "nullterm"
	PadNullPad  StrPad = "nullpad"
	PadSpacePad StrPad = "spacepad"
)

// Datatype is the datatype sum: Integer, Float, String, Reference, or Opaque.
// The set is closed; validators switch exhaustively over the variants.
type Datatype interface {
	isDatatype()

	// Class returns the broad datatype family.
	Class() Class

	// String returns a human-readable rendering for report messages,
	// e.g. "8-byte signed little-endian integer".
	String() string
}

// IntegerType describes a fixed-width integer datatype.
// Size is in bytes.
type IntegerType struct {
	Size   int
	Signed bool
	Order  ByteOrder
}

// FloatType describes an IEEE-style floating-point datatype.
// Size is in bytes; the bit-layout fields mirror the container's
// stored exponent and mantissa placement.
type FloatType struct {
	Size             int
	Order            ByteOrder
	SignBitLocation  int
	ExponentBits     int
	ExponentLocation int
	MantissaBits     int
	MantissaLocation int
}

// StringType describes a text datatype.
// Size is in bytes for fixed-size strings; Variable marks
// variable-length strings, whose Size is zero.
type StringType struct {
	Size     int
	Variable bool
	Cset     Charset
	Pad      StrPad
}

// ReferenceType describes an object or region reference datatype.
type ReferenceType struct{}

// OpaqueType covers datatype classes the canonical model does not interpret.
// Tag preserves the raw class name reported by the container.
type OpaqueType struct {
	Tag string
}

func (IntegerType) isDatatype()   {}
func (FloatType) isDatatype()     {}
func (StringType) isDatatype()    {}
func (ReferenceType) isDatatype() {}
func (OpaqueType) isDatatype()    {}

func (IntegerType) Class() Class   { return ClassInteger }
func (FloatType) Class() Class     { return ClassFloat }
func (StringType) Class() Class    { return ClassString }
func (ReferenceType) Class() Class { return ClassReference }
func (OpaqueType) Class() Class    { return ClassOpaque }

func (t IntegerType) String() string {
	sign := "unsigned"
	if t.Signed {
		sign = "signed"
	}
	return fmt.Sprintf("%d-byte %s %s integer", t.Size, sign, orderName(t.Order))
}

func (t FloatType) String() string {
	return fmt.Sprintf("%d-byte %s float", t.Size, orderName(t.Order))
}

func (t StringType) String() string {
	var b strings.Builder
	if t.Variable {
		b.WriteString("variable-length ")
	} else {
		fmt.Fprintf(&b, "%d-byte ", t.Size)
	}
	fmt.Fprintf(&b, "%s string (%s)", t.Cset, t.Pad)
	return b.String()
}

func (ReferenceType) String() string { return "object reference" }

func (t OpaqueType) String() string {
	if t.Tag == "" {
		return "opaque"
	}
	return "opaque (" + t.Tag + ")"
}

func orderName(o ByteOrder) string {
	switch o {
	case OrderLittleEndian:
		return "little-endian"
	case OrderBigEndian:
		return "big-endian"
	default:
		return "orderless"
	}
}

// Dataspace is the dataspace sum: Scalar or Simple.
type Dataspace interface {
	isDataspace()

	// String returns a human-readable rendering for report messages.
	String() string
}

// ScalarSpace is the zero-dimensional dataspace of a single element.
type ScalarSpace struct{}

// SimpleSpace is an N-dimensional dataspace.
type SimpleSpace struct {
	Dims []Dim
}

// Dim is one dimension of a SimpleSpace.
// Unlimited marks a dimension whose maximum extent is unbounded;
// Max is meaningless when Unlimited is set.
type Dim struct {
	Size      uint64
	Max       uint64
	Unlimited bool
}

func (ScalarSpace) isDataspace() {}
func (SimpleSpace) isDataspace() {}

func (ScalarSpace) String() string { return "scalar" }

func (s SimpleSpace) String() string {
	parts := make([]string, len(s.Dims))
	for i, d := range s.Dims {
		switch {
		case d.Unlimited:
			parts[i] = fmt.Sprintf("%d/unlimited", d.Size)
		case d.Max != d.Size:
			parts[i] = fmt.Sprintf("%d/%d", d.Size, d.Max)
		default:
			parts[i] = fmt.Sprintf("%d", d.Size)
		}
	}
	return "simple [" + strings.Join(parts, " ") + "]"
}

// Rank returns the number of dimensions.
func (s SimpleSpace) Rank() int { return len(s.Dims) }
