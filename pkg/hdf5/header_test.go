package hdf5

import (
	"testing"
)

// sampleHeader mirrors the DTD-style XML emitted by "h5dump -H -u" for a
// small seismic data container.
const sampleHeader = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE HDF5-File PUBLIC "HDF5-File.dtd" "HDF5-File.dtd">
<HDF5-File>
<RootGroup OBJ-XID="xid_1400_64">
   <Attribute Name="file_format">
      <Dataspace>
         <ScalarDataspace />
      </Dataspace>
      <DataType>
         <AtomicType>
            <StringType Cset="H5T_CSET_ASCII" StrSize="4" StrPad="H5T_STR_NULLTERM" />
         </AtomicType>
      </DataType>
   </Attribute>
   <Attribute Name="file_format_version">
      <Dataspace>
         <ScalarDataspace />
      </Dataspace>
      <DataType>
         <AtomicType>
            <StringType Cset="H5T_CSET_ASCII" StrSize="5" StrPad="H5T_STR_NULLTERM" />
         </AtomicType>
      </DataType>
   </Attribute>
   <Dataset Name="QuakeML" OBJ-XID="xid_5200_64" H5Path="/QuakeML" Parents="xid_1400_64" H5ParentPaths="/">
      <StorageLayout>
         <ContiguousLayout />
      </StorageLayout>
      <FillValueInfo FillTime="FillIfSet" AllocationTime="Late">
         <FillValue>
            <NoFill />
         </FillValue>
      </FillValueInfo>
      <Dataspace>
         <SimpleDataspace Ndims="1">
            <Dimension DimSize="8192" MaxDimSize="UNLIMITED" />
         </SimpleDataspace>
      </Dataspace>
      <DataType>
         <AtomicType>
            <IntegerType ByteOrder="LE" Sign="true" Size="1" />
         </AtomicType>
      </DataType>
   </Dataset>
   <Group Name="Waveforms" OBJ-XID="xid_6000_64">
      <Group Name="IU.ANMO" OBJ-XID="xid_6100_64">
         <Dataset Name="IU.ANMO..BHZ__2020-01-01T00:00:00__2020-01-01T01:00:00__raw" OBJ-XID="xid_6200_64">
            <StorageLayout>
               <ChunkedLayout Ndims="1">
                  <ChunkDimension DimSize="4096" />
                  <RequiredFilter>
                     <Deflate CompressionLevel="2" />
                  </RequiredFilter>
               </ChunkedLayout>
            </StorageLayout>
            <FillValueInfo FillTime="FillIfSet" AllocationTime="Incremental">
               <FillValue>
                  <NoFill />
               </FillValue>
            </FillValueInfo>
            <Attribute Name="starttime">
               <Dataspace>
                  <ScalarDataspace />
               </Dataspace>
               <DataType>
                  <AtomicType>
                     <IntegerType ByteOrder="LE" Sign="true" Size="8" />
                  </AtomicType>
               </DataType>
            </Attribute>
            <Attribute Name="sampling_rate">
               <Dataspace>
                  <ScalarDataspace />
               </Dataspace>
               <DataType>
                  <AtomicType>
                     <FloatType ByteOrder="LE" Size="8" SignBitLocation="63" ExponentBits="11" ExponentLocation="52" MantissaBits="52" MantissaLocation="0" />
                  </AtomicType>
               </DataType>
            </Attribute>
            <Attribute Name="provenance_id">
               <Dataspace>
                  <ScalarDataspace />
               </Dataspace>
               <DataType>
                  <AtomicType>
                     <StringType Cset="H5T_CSET_ASCII" StrSize="H5T_VARIABLE" StrPad="H5T_STR_NULLTERM" />
                  </AtomicType>
               </DataType>
            </Attribute>
            <Dataspace>
               <SimpleDataspace Ndims="1">
                  <Dimension DimSize="144000" MaxDimSize="144000" />
               </SimpleDataspace>
            </Dataspace>
            <DataType>
               <AtomicType>
                  <IntegerType ByteOrder="LE" Sign="true" Size="4" />
               </AtomicType>
            </DataType>
         </Dataset>
         <Dataset Name="StationXML" OBJ-XID="xid_6300_64">
            <Dataspace>
               <SimpleDataspace Ndims="1">
                  <Dimension DimSize="4217" MaxDimSize="4217" />
               </SimpleDataspace>
            </Dataspace>
            <DataType>
               <AtomicType>
                  <IntegerType ByteOrder="LE" Sign="true" Size="1" />
               </AtomicType>
            </DataType>
         </Dataset>
      </Group>
   </Group>
   <Group Name="AuxiliaryData" OBJ-XID="xid_7000_64">
      <Group Name="CrossCorrelations" OBJ-XID="xid_7100_64">
         <Dataset Name="ANMO_COLA" OBJ-XID="xid_7200_64">
            <Dataspace>
               <SimpleDataspace Ndims="2">
                  <Dimension DimSize="2" MaxDimSize="2" />
                  <Dimension DimSize="32" MaxDimSize="32" />
               </SimpleDataspace>
            </Dataspace>
            <DataType>
               <CompoundType>
                  <Field FieldName="real">
                     <DataType>
                        <AtomicType>
                           <FloatType ByteOrder="LE" Size="4" SignBitLocation="31" ExponentBits="8" ExponentLocation="23" MantissaBits="23" MantissaLocation="0" />
                        </AtomicType>
                     </DataType>
                  </Field>
               </CompoundType>
            </DataType>
         </Dataset>
      </Group>
   </Group>
</RootGroup>
</HDF5-File>
`

func TestParseHeaderXML(t *testing.T) {
	root, err := parseHeaderXML([]byte(sampleHeader))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	if root.Kind != ObjectGroup || root.Name != "/" {
		t.Fatalf("unexpected root: %+v", root)
	}
	if len(root.Attributes) != 2 {
		t.Fatalf("expected 2 root attributes, got %d", len(root.Attributes))
	}

	ff, ok := root.Attribute("file_format")
	if !ok {
		t.Fatal("expected file_format attribute")
	}
	if ff.Datatype.Kind != TypeString || ff.Datatype.StrSize != 4 {
		t.Errorf("unexpected file_format datatype: %+v", ff.Datatype)
	}
	if ff.Datatype.Cset != "H5T_CSET_ASCII" || ff.Datatype.StrPad != "H5T_STR_NULLTERM" {
		t.Errorf("unexpected string datatype metadata: %+v", ff.Datatype)
	}
	if !ff.Dataspace.Scalar {
		t.Error("expected scalar dataspace for file_format")
	}

	quakeml, ok := root.Child("QuakeML")
	if !ok {
		t.Fatal("expected QuakeML dataset")
	}
	if quakeml.Kind != ObjectDataset {
		t.Errorf("expected dataset, got %s", quakeml.Kind)
	}
	if quakeml.Datatype.Kind != TypeInteger || quakeml.Datatype.Size != 1 || !quakeml.Datatype.Signed {
		t.Errorf("unexpected QuakeML datatype: %+v", quakeml.Datatype)
	}
	if len(quakeml.Dataspace.Dims) != 1 {
		t.Fatalf("expected 1-D dataspace, got %+v", quakeml.Dataspace)
	}
	if quakeml.Dataspace.Dims[0].Size != 8192 || !quakeml.Dataspace.Dims[0].Unlimited {
		t.Errorf("unexpected QuakeML dataspace: %+v", quakeml.Dataspace)
	}
}

func TestParseHeaderXMLWaveform(t *testing.T) {
	root, err := parseHeaderXML([]byte(sampleHeader))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	waveforms, ok := root.Child("Waveforms")
	if !ok {
		t.Fatal("expected Waveforms group")
	}
	station, ok := waveforms.Child("IU.ANMO")
	if !ok {
		t.Fatal("expected IU.ANMO station group")
	}
	if len(station.Children) != 2 {
		t.Fatalf("expected 2 station children, got %d", len(station.Children))
	}

	waveform, ok := station.Child("IU.ANMO..BHZ__2020-01-01T00:00:00__2020-01-01T01:00:00__raw")
	if !ok {
		t.Fatal("expected waveform dataset")
	}

	starttime, ok := waveform.Attribute("starttime")
	if !ok {
		t.Fatal("expected starttime attribute")
	}
	if starttime.Datatype.Kind != TypeInteger || starttime.Datatype.Size != 8 ||
		!starttime.Datatype.Signed || starttime.Datatype.ByteOrder != "LE" {
		t.Errorf("unexpected starttime datatype: %+v", starttime.Datatype)
	}

	rate, ok := waveform.Attribute("sampling_rate")
	if !ok {
		t.Fatal("expected sampling_rate attribute")
	}
	if rate.Datatype.Kind != TypeFloat || rate.Datatype.Size != 8 {
		t.Errorf("unexpected sampling_rate datatype: %+v", rate.Datatype)
	}
	if rate.Datatype.ExponentBits != 11 || rate.Datatype.MantissaBits != 52 {
		t.Errorf("unexpected float layout: %+v", rate.Datatype)
	}

	prov, ok := waveform.Attribute("provenance_id")
	if !ok {
		t.Fatal("expected provenance_id attribute")
	}
	if prov.Datatype.Kind != TypeString || !prov.Datatype.Variable {
		t.Errorf("expected variable-length string, got %+v", prov.Datatype)
	}
}

func TestParseHeaderXMLCompound(t *testing.T) {
	root, err := parseHeaderXML([]byte(sampleHeader))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	aux, ok := root.Child("AuxiliaryData")
	if !ok {
		t.Fatal("expected AuxiliaryData group")
	}
	typeGroup, ok := aux.Child("CrossCorrelations")
	if !ok {
		t.Fatal("expected CrossCorrelations group")
	}
	entry, ok := typeGroup.Child("ANMO_COLA")
	if !ok {
		t.Fatal("expected ANMO_COLA dataset")
	}

	if entry.Datatype.Kind != TypeUnknown || entry.Datatype.Raw != "CompoundType" {
		t.Errorf("expected unmapped compound datatype, got %+v", entry.Datatype)
	}
	if len(entry.Dataspace.Dims) != 2 {
		t.Errorf("expected 2-D dataspace, got %+v", entry.Dataspace)
	}
}

func TestParseHeaderXMLInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not xml", "this is not xml"},
		{"wrong root", "<NotHDF5></NotHDF5>"},
		{"bad dimension", `<HDF5-File><RootGroup><Dataset Name="x"><Dataspace><SimpleDataspace Ndims="1"><Dimension DimSize="abc" MaxDimSize="1"/></SimpleDataspace></Dataspace><DataType><AtomicType><IntegerType ByteOrder="LE" Sign="true" Size="1"/></AtomicType></DataType></Dataset></RootGroup></HDF5-File>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseHeaderXML([]byte(tt.input)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestScalarFromDump(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		found    bool
	}{
		{
			name: "string attribute",
			input: `ATTRIBUTE "file_format" {
   DATATYPE  H5T_STRING {
      STRSIZE 4;
   }
   DATASPACE  SCALAR
   DATA {
   (0): "ASDF"
   }
}`,
			expected: `"ASDF"`,
			found:    true,
		},
		{
			name:     "integer attribute",
			input:    "   DATA {\n   (0): 1577836800000000000\n   }\n",
			expected: "1577836800000000000",
			found:    true,
		},
		{
			name:  "no data line",
			input: "ATTRIBUTE \"x\" {\n}\n",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := scalarFromDump(tt.input)
			if ok != tt.found {
				t.Fatalf("found = %v, expected %v", ok, tt.found)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
