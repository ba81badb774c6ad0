package pricing

import (
	"strings"

	"google.golang.org/protobuf/types/known/structpb"
)

// requireFields fails with InvalidArgument naming the first missing or blank field.
func requireFields(f fields, names ...string) error {
	for _, name := range names {
		v := f.value(name)
		if v == nil {
			return invalidArg("%s is required", name)
		}
		if s, ok := v.GetKind().(*structpb.Value_StringValue); ok && strings.TrimSpace(s.StringValue) == "" {
			return invalidArg("%s is required", name)
		}
	}
	return nil
}
