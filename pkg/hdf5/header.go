package hdf5

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// XML vocabulary of the DTD-style header dump ("h5dump -H -u").
// Identifier elements (OBJ-XID and friends), storage layout, and fill value
// information are deliberately unmapped: they describe the container's
// physical layout, not the format.
type xmlFile struct {
	XMLName xml.Name `xml:"HDF5-File"`
	Root    xmlGroup `xml:"RootGroup"`
}

type xmlGroup struct {
	Name       string         `xml:"Name,attr"`
	Attributes []xmlAttribute `xml:"Attribute"`
	Groups     []xmlGroup     `xml:"Group"`
	Datasets   []xmlDataset   `xml:"Dataset"`
}

type xmlDataset struct {
	Name       string         `xml:"Name,attr"`
	Attributes []xmlAttribute `xml:"Attribute"`
	Dataspace  xmlDataspace   `xml:"Dataspace"`
	DataType   xmlDataType    `xml:"DataType"`
}

type xmlAttribute struct {
	Name      string       `xml:"Name,attr"`
	Dataspace xmlDataspace `xml:"Dataspace"`
	DataType  xmlDataType  `xml:"DataType"`
}

type xmlDataspace struct {
	Scalar *xmlEmpty       `xml:"ScalarDataspace"`
	Simple *xmlSimpleSpace `xml:"SimpleDataspace"`
}

type xmlSimpleSpace struct {
	Ndims      int            `xml:"Ndims,attr"`
	Dimensions []xmlDimension `xml:"Dimension"`
}

type xmlDimension struct {
	DimSize    string `xml:"DimSize,attr"`
	MaxDimSize string `xml:"MaxDimSize,attr"`
}

type xmlDataType struct {
	Atomic   *xmlAtomicType `xml:"AtomicType"`
	Compound *xmlEmpty      `xml:"CompoundType"`
	VL       *xmlEmpty      `xml:"VLType"`
	Array    *xmlEmpty      `xml:"ArrayType"`
}

type xmlAtomicType struct {
	Integer   *xmlIntegerType `xml:"IntegerType"`
	Float     *xmlFloatType   `xml:"FloatType"`
	Str       *xmlStringType  `xml:"StringType"`
	Reference *xmlEmpty       `xml:"ReferenceType"`
	Time      *xmlEmpty       `xml:"TimeType"`
	Bitfield  *xmlEmpty       `xml:"BitfieldType"`
	Opaque    *xmlEmpty       `xml:"OpaqueType"`
	Enum      *xmlEmpty       `xml:"EnumType"`
}

type xmlIntegerType struct {
	ByteOrder string `xml:"ByteOrder,attr"`
	Sign      string `xml:"Sign,attr"`
	Size      int    `xml:"Size,attr"`
}

type xmlFloatType struct {
	ByteOrder        string `xml:"ByteOrder,attr"`
	Size             int    `xml:"Size,attr"`
	SignBitLocation  int    `xml:"SignBitLocation,attr"`
	ExponentBits     int    `xml:"ExponentBits,attr"`
	ExponentLocation int    `xml:"ExponentLocation,attr"`
	MantissaBits     int    `xml:"MantissaBits,attr"`
	MantissaLocation int    `xml:"MantissaLocation,attr"`
}

type xmlStringType struct {
	Cset    string `xml:"Cset,attr"`
	StrSize string `xml:"StrSize,attr"`
	StrPad  string `xml:"StrPad,attr"`
}

type xmlEmpty struct{}

// h5Variable is the StrSize marker for variable-length strings.
const h5Variable = "H5T_VARIABLE"

// parseHeaderXML converts the XML header dump into the raw object graph.
func parseHeaderXML(data []byte) (*Object, error) {
	var doc xmlFile
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid header XML: %w", err)
	}

	root := &Object{Kind: ObjectGroup, Name: "/"}

	// Iterative conversion; container depth never grows the call stack.
	type frame struct {
		src *xmlGroup
		dst *Object
	}
	stack := []frame{{src: &doc.Root, dst: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		attrs, err := convertAttributes(f.src.Attributes)
		if err != nil {
			return nil, err
		}
		f.dst.Attributes = attrs

		for i := range f.src.Datasets {
			ds, err := convertDataset(&f.src.Datasets[i])
			if err != nil {
				return nil, err
			}
			f.dst.Children = append(f.dst.Children, ds)
		}

		for i := range f.src.Groups {
			src := &f.src.Groups[i]
			child := &Object{Kind: ObjectGroup, Name: src.Name}
			f.dst.Children = append(f.dst.Children, child)
			stack = append(stack, frame{src: src, dst: child})
		}
	}
	return root, nil
}

func convertDataset(src *xmlDataset) (*Object, error) {
	attrs, err := convertAttributes(src.Attributes)
	if err != nil {
		return nil, err
	}
	dt := convertDatatype(&src.DataType)
	ds, err := convertDataspace(&src.Dataspace)
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", src.Name, err)
	}
	return &Object{
		Kind:       ObjectDataset,
		Name:       src.Name,
		Attributes: attrs,
		Datatype:   &dt,
		Dataspace:  &ds,
	}, nil
}

func convertAttributes(src []xmlAttribute) ([]Attribute, error) {
	if len(src) == 0 {
		return nil, nil
	}
	out := make([]Attribute, 0, len(src))
	for i := range src {
		space, err := convertDataspace(&src[i].Dataspace)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", src[i].Name, err)
		}
		out = append(out, Attribute{
			Name:      src[i].Name,
			Datatype:  convertDatatype(&src[i].DataType),
			Dataspace: space,
		})
	}
	return out, nil
}

func convertDatatype(src *xmlDataType) Datatype {
	switch {
	case src.Atomic != nil:
		return convertAtomicType(src.Atomic)
	case src.Compound != nil:
		return Datatype{Kind: TypeUnknown, Raw: "CompoundType"}
	case src.VL != nil:
		return Datatype{Kind: TypeUnknown, Raw: "VLType"}
	case src.Array != nil:
		return Datatype{Kind: TypeUnknown, Raw: "ArrayType"}
	default:
		return Datatype{Kind: TypeUnknown}
	}
}

func convertAtomicType(src *xmlAtomicType) Datatype {
	switch {
	case src.Integer != nil:
		return Datatype{
			Kind:      TypeInteger,
			Size:      src.Integer.Size,
			Signed:    src.Integer.Sign == "true",
			ByteOrder: src.Integer.ByteOrder,
		}
	case src.Float != nil:
		return Datatype{
			Kind:             TypeFloat,
			Size:             src.Float.Size,
			ByteOrder:        src.Float.ByteOrder,
			SignBitLocation:  src.Float.SignBitLocation,
			ExponentBits:     src.Float.ExponentBits,
			ExponentLocation: src.Float.ExponentLocation,
			MantissaBits:     src.Float.MantissaBits,
			MantissaLocation: src.Float.MantissaLocation,
		}
	case src.Str != nil:
		dt := Datatype{
			Kind:   TypeString,
			Cset:   src.Str.Cset,
			StrPad: src.Str.StrPad,
		}
		if src.Str.StrSize == h5Variable {
			dt.Variable = true
		} else if n, err := strconv.Atoi(src.Str.StrSize); err == nil {
			dt.StrSize = n
		}
		return dt
	case src.Reference != nil:
		return Datatype{Kind: TypeReference}
	case src.Time != nil:
		return Datatype{Kind: TypeUnknown, Raw: "TimeType"}
	case src.Bitfield != nil:
		return Datatype{Kind: TypeUnknown, Raw: "BitfieldType"}
	case src.Opaque != nil:
		return Datatype{Kind: TypeUnknown, Raw: "OpaqueType"}
	case src.Enum != nil:
		return Datatype{Kind: TypeUnknown, Raw: "EnumType"}
	default:
		return Datatype{Kind: TypeUnknown}
	}
}

func convertDataspace(src *xmlDataspace) (Dataspace, error) {
	if src.Scalar != nil {
		return Dataspace{Scalar: true}, nil
	}
	if src.Simple == nil {
		return Dataspace{}, fmt.Errorf("unsupported dataspace")
	}

	out := Dataspace{Dims: make([]Dimension, 0, len(src.Simple.Dimensions))}
	for _, d := range src.Simple.Dimensions {
		size, err := strconv.ParseUint(d.DimSize, 10, 64)
		if err != nil {
			return Dataspace{}, fmt.Errorf("invalid dimension size %q", d.DimSize)
		}
		dim := Dimension{Size: size}
		if d.MaxDimSize == "UNLIMITED" {
			dim.Unlimited = true
		} else if m, err := strconv.ParseUint(d.MaxDimSize, 10, 64); err == nil {
			dim.Max = m
		} else {
			dim.Max = size
		}
		out.Dims = append(out.Dims, dim)
	}
	return out, nil
}
