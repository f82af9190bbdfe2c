// Package hdf5 is the container introspection layer: the only part of the
// system that touches the file under validation.
//
// The Introspector interface is deliberately narrow. Opening a container
// yields a handle exposing the raw object graph (groups, datasets,
// attributes, datatypes, dataspaces), textual attribute values, and raw
// dataset payloads. Everything downstream works on the canonical tree
// built from this raw graph; nothing else shells out or opens files.
//
// # h5dump backend
//
// The production implementation drives the h5dump tool from the HDF5
// distribution:
//
//   - the object graph comes from one "h5dump -H -u" run, parsed from its
//     DTD-style XML header output
//   - attribute values are read on demand with "h5dump -e -a <path>"
//   - dataset payloads are extracted with "h5dump -d <path> -b -o <tmp>"
//     through a per-handle temp directory that Close always removes
//
// The HDF5 signature check (Sniff) reads the file directly and needs no
// external tool.
//
// # In-memory backend
//
// Mem provides an in-memory implementation of the same interfaces for
// tests and tooling that need a container without a file.
package hdf5
