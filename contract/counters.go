package contract

import (
	"fmt"
	"strconv"

	"unfair_dao/sdk"
)

// getCount reads the decimal counter under key and defaults to zero.
func getCount(sess *sdk.Session, key string) (uint64, error) {
	data, err := sess.Get(key)
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, nil
	}
	n, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("counter %s: %w", key, err)
	}
	return n, nil
}

// setCount stores counters as decimal text so they stay readable in any backend.
func setCount(sess *sdk.Session, key string, n uint64) {
	sess.Set(key, []byte(strconv.FormatUint(n, 10)))
}

// UInt64ToString turns an id back into decimal text for keys and logs.
// Example payload: UInt64ToString(9001)
func UInt64ToString(val uint64) string {
	return strconv.FormatUint(val, 10)
}
