package analytics

import "errors"

var (
	ErrAggregationFailed = errors.New("aggregation failed")
	ErrInvalidRecord     = errors.New("invalid analytics record")
)
