package plane

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// ToProto encodes the frame as a list of row structs.
func ToProto(f *Frame) (*structpb.ListValue, error) {
	out := &structpb.ListValue{Values: make([]*structpb.Value, 0, f.rows)}
	for i, rec := range f.Records() {
		s, err := structpb.NewStruct(rec)
		if err != nil {
			return nil, fmt.Errorf("plane: row %d: %w", i, err)
		}
		out.Values = append(out.Values, structpb.NewStructValue(s))
	}
	return out, nil
}

// FromProto decodes a list of row structs. Non-struct entries are rejected.
func FromProto(l *structpb.ListValue) (*Frame, error) {
	recs := make([]map[string]any, 0, len(l.GetValues()))
	for i, v := range l.GetValues() {
		s := v.GetStructValue()
		if s == nil {
			return nil, fmt.Errorf("plane: row %d is not an object", i)
		}
		recs = append(recs, s.AsMap())
	}
	return FromRecords(recs), nil
}
