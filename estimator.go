package memo

import (
	"fmt"
	"unsafe"
)

// SizeEstimator is implemented by value types that know their own
// in-memory footprint. EstimateSize consults it before falling back
// to built-in heuristics.
type SizeEstimator interface {
	// EstimateMemory returns the estimated footprint in bytes,
	// including heap allocations the value owns.
	EstimateMemory() uint64
}

// EstimateSize estimates the in-memory footprint of a value in bytes.
// It is the default estimator for memory-budgeted eviction and can be
// overridden per cache via Config.Estimator.
//
// Values implementing SizeEstimator report their own size. Strings
// and byte slices count their length plus header overhead; numeric
// and boolean values count their machine size. Other types fall back
// to the length of their debug formatting, which is approximate:
// supply a custom estimator for types where the budget must be
// accurate.
func EstimateSize(value any) uint64 {
	if est, ok := value.(SizeEstimator); ok {
		return est.EstimateMemory()
	}

	const (
		stringHeader = uint64(unsafe.Sizeof(""))
		sliceHeader  = uint64(unsafe.Sizeof([]byte(nil)))
	)

	switch v := value.(type) {
	case nil:
		return 0
	case string:
		return stringHeader + uint64(len(v))
	case []byte:
		return sliceHeader + uint64(len(v))
	case bool, int8, uint8:
		return 1
	case int16, uint16:
		return 2
	case int32, uint32, float32:
		return 4
	case int, uint, int64, uint64, float64, uintptr, complex64:
		return 8
	case complex128:
		return 16
	default:
		return stringHeader + uint64(len(fmt.Sprintf("%+v", value)))
	}
}
