package reporting

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"
	"logistics/internal/service/filters"
)

// toParams приводит поля Struct к строкам, чтобы работал тот же компоновщик
// фильтров, что и для query-параметров REST. Списки склеиваются через запятую.
func toParams(in *structpb.Struct) filters.Params {
	params := make(filters.Params, len(in.GetFields()))
	for key, value := range in.GetFields() {
		if s, ok := valueString(value); ok {
			params[key] = s
		}
	}
	return params
}

func valueString(v *structpb.Value) (string, bool) {
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return kind.StringValue, true
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(kind.NumberValue, 'f', -1, 64), true
	case *structpb.Value_BoolValue:
		return strconv.FormatBool(kind.BoolValue), true
	case *structpb.Value_ListValue:
		parts := make([]string, 0, len(kind.ListValue.GetValues()))
		for _, item := range kind.ListValue.GetValues() {
			if s, ok := valueString(item); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ","), true
	default:
		return "", false
	}
}

// toStruct кодирует REST-представление, так что ответы обоих транспортов совпадают.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal response: %w", err)
	}

	out := new(structpb.Struct)
	if err := out.UnmarshalJSON(raw); err != nil {
		return nil, fmt.Errorf("build response struct: %w", err)
	}
	return out, nil
}
