// Package canonicalizer converts the raw object graph reported by a
// container introspector into the canonical tree consumed by the structural
// and semantic validation layers.
//
// Canonicalization sorts children and attributes into lexicographic order,
// maps the container's datatype vocabulary onto the closed sums of pkg/tree,
// and resolves scalar attribute values through the container handle. Datatype
// classes the model does not interpret become tree.OpaqueType with the raw
// class name preserved. Dataset payloads are never read here.
package canonicalizer

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	apperrors "github.com/seismicdata/asdf-validate/pkg/errors"
	"github.com/seismicdata/asdf-validate/pkg/hdf5"
	"github.com/seismicdata/asdf-validate/pkg/tree"
)

// frame is one raw object scheduled for conversion, with a link to its
// parent's frame index.
type frame struct {
	src    *hdf5.Object
	path   string
	parent int
}

// Canonicalize builds the canonical tree for an open container. Scalar
// string, integer, and float attribute values are read through the handle;
// array-valued attributes and uninterpreted datatypes carry a null value.
//
// A failing attribute read aborts canonicalization with an introspection
// error. A value that reads fine but does not decode is demoted to null so
// a single malformed attribute cannot block validation of the rest of the
// container.
func Canonicalize(ctx context.Context, c hdf5.Container) (*tree.Node, error) {
	root := c.Root()
	if root == nil {
		return nil, apperrors.New(apperrors.ErrCodeIntrospection, "container has no root object")
	}

	// Flatten the raw graph in preorder, keeping parent links.
	frames := []frame{{src: root, path: "/", parent: -1}}
	stack := []int{0}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		f := frames[i]
		for _, child := range f.src.Children {
			frames = append(frames, frame{src: child, path: tree.Join(f.path, child.Name), parent: i})
			stack = append(stack, len(frames)-1)
		}
	}

	// Build leaf-first so every parent sees finished children. Constructors
	// sort, so accumulation order does not matter.
	children := make([][]*tree.Node, len(frames))
	var out *tree.Node
	for i := len(frames) - 1; i >= 0; i-- {
		f := frames[i]
		attrs, err := convertAttributes(ctx, c, f.path, f.src.Attributes)
		if err != nil {
			return nil, err
		}

		var n *tree.Node
		switch {
		case f.src.Kind == hdf5.ObjectDataset:
			if f.src.Datatype == nil || f.src.Dataspace == nil {
				return nil, apperrors.New(apperrors.ErrCodeIntrospection,
					fmt.Sprintf("dataset %s is missing its datatype or dataspace", f.path))
			}
			n = tree.NewDataset(f.src.Name, attrs, convertDatatype(*f.src.Datatype), convertDataspace(*f.src.Dataspace))
		case i == 0:
			n = tree.NewRoot(attrs, children[0])
		default:
			n = tree.NewGroup(f.src.Name, attrs, children[i])
		}

		if f.parent >= 0 {
			children[f.parent] = append(children[f.parent], n)
		}
		out = n
	}
	return out, nil
}

func convertAttributes(ctx context.Context, c hdf5.Container, objectPath string, raw []hdf5.Attribute) ([]tree.Attribute, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]tree.Attribute, 0, len(raw))
	for _, a := range raw {
		dt := convertDatatype(a.Datatype)
		ds := convertDataspace(a.Dataspace)
		v, err := readValue(ctx, c, objectPath, a.Name, dt, ds)
		if err != nil {
			return nil, err
		}
		out = append(out, tree.Attribute{Name: a.Name, Datatype: dt, Dataspace: ds, Value: v})
	}
	return out, nil
}

// readValue resolves one attribute value. Only scalar string, integer, and
// float attributes are read; everything else is null without touching the
// container.
func readValue(ctx context.Context, c hdf5.Container, objectPath, name string, dt tree.Datatype, ds tree.Dataspace) (tree.Value, error) {
	if _, scalar := ds.(tree.ScalarSpace); !scalar {
		return tree.Null(), nil
	}
	switch dt.(type) {
	case tree.StringType, tree.IntegerType, tree.FloatType:
	default:
		return tree.Null(), nil
	}

	raw, err := c.ReadAttribute(ctx, objectPath, name)
	if err != nil {
		return nil, err
	}

	v, err := decodeScalar(raw, dt)
	if err != nil {
		slog.Debug("attribute value not decodable, keeping null",
			"object", objectPath,
			"attribute", name,
			"error", err)
		return tree.Null(), nil
	}
	return v, nil
}

func decodeScalar(raw string, dt tree.Datatype) (tree.Value, error) {
	switch dt.(type) {
	case tree.StringType:
		s, err := DecodeString(raw)
		if err != nil {
			return nil, err
		}
		return tree.Str(s), nil
	case tree.IntegerType:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("not a decodable integer: %q", raw)
		}
		return tree.Int(n), nil
	case tree.FloatType:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("not a decodable float: %q", raw)
		}
		return tree.Float(f), nil
	default:
		return tree.Null(), nil
	}
}

func convertDatatype(dt hdf5.Datatype) tree.Datatype {
	switch dt.Kind {
	case hdf5.TypeInteger:
		return tree.IntegerType{
			Size:   dt.Size,
			Signed: dt.Signed,
			Order:  convertOrder(dt.ByteOrder),
		}
	case hdf5.TypeFloat:
		return tree.FloatType{
			Size:             dt.Size,
			Order:            convertOrder(dt.ByteOrder),
			SignBitLocation:  dt.SignBitLocation,
			ExponentBits:     dt.ExponentBits,
			ExponentLocation: dt.ExponentLocation,
			MantissaBits:     dt.MantissaBits,
			MantissaLocation: dt.MantissaLocation,
		}
	case hdf5.TypeString:
		return tree.StringType{
			Size:     dt.StrSize,
			Variable: dt.Variable,
			Cset:     convertCset(dt.Cset),
			Pad:      convertPad(dt.StrPad),
		}
	case hdf5.TypeReference:
		return tree.ReferenceType{}
	default:
		return tree.OpaqueType{Tag: dt.Raw}
	}
}

func convertOrder(raw string) tree.ByteOrder {
	switch raw {
	case "LE":
		return tree.OrderLittleEndian
	case "BE":
		return tree.OrderBigEndian
	default:
		return tree.OrderNone
	}
}

func convertCset(raw string) tree.Charset {
	if raw == "H5T_CSET_UTF8" {
		return tree.CharsetUTF8
	}
	return tree.CharsetASCII
}

func convertPad(raw string) tree.StrPad {
	switch raw {
	case "H5T_STR_NULLPAD":
		return tree.PadNullPad
	case "H5T_STR_SPACEPAD":
		return tree.PadSpacePad
	default:
		return tree.PadNullTerm
	}
}

func convertDataspace(ds hdf5.Dataspace) tree.Dataspace {
	if ds.Scalar {
		return tree.ScalarSpace{}
	}
	dims := make([]tree.Dim, len(ds.Dims))
	for i, d := range ds.Dims {
		dims[i] = tree.Dim{Size: d.Size, Max: d.Max, Unlimited: d.Unlimited}
	}
	return tree.SimpleSpace{Dims: dims}
}
