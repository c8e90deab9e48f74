package filters

import (
	"net/url"
	"strings"
)

// Имена распознаваемых параметров.
const (
	ParamStatus             = "status"
	ParamTransportModel     = "transport_model"
	ParamPackageType        = "package_type"
	ParamTechnicalCondition = "technical_condition"
	ParamStartDate          = "start_date"
	ParamEndDate            = "end_date"
	ParamServices           = "services"
	ParamCargoTypes         = "cargo_types"
	ParamMinDuration        = "min_duration"
	ParamMaxDuration        = "max_duration"
	ParamSearch             = "search"
	ParamOrdering           = "ordering"
)

// Params - транспортно-независимый набор фильтров "имя -> строка".
type Params map[string]string

// ParamsFromQuery берёт последнее значение каждого ключа.
func ParamsFromQuery(q url.Values) Params {
	p := make(Params, len(q))
	for key, values := range q {
		if len(values) == 0 {
			continue
		}
		p[key] = values[len(values)-1]
	}
	return p
}

// lookup возвращает значение без пробелов по краям; пустое считается отсутствующим.
func (p Params) lookup(key string) (string, bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
