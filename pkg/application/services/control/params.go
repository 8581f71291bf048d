package control

import "github.com/chain-stock/suppy/pkg/domain/entities"

// intParam reads key from data, failing with IncompatibleStrategy if it is
// absent or not a number. Accepts float64 too, since a node.Data built by
// the JSON parser decodes numeric fields that way.
func intParam(strategyName string, data map[string]any, key string) (int, error) {
	v, ok := data[key]
	if !ok {
		return 0, &entities.IncompatibleStrategy{Strategy: strategyName, Missing: key}
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		return int(n), nil
	default:
		return 0, &entities.IncompatibleStrategy{Strategy: strategyName, Missing: key}
	}
}
