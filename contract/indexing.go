package contract

// maintaining index keys for listing accounts, written in the same session as the account

import (
	"fmt"

	"unfair_dao/sdk"
)

// appendIndex adds addr as the next entry of the index and bumps its counter.
func appendIndex(sess *sdk.Session, countKey, base string, addr sdk.Pubkey) error {
	n, err := getCount(sess, countKey)
	if err != nil {
		return err
	}
	// the counter read guards the slot, a concurrent append fails on commit
	sess.Set(indexKey(base, n), []byte(addr.String()))
	setCount(sess, countKey, n+1)
	return nil
}

// readIndex returns every account key of the index in insertion order.
func readIndex(sess *sdk.Session, countKey, base string) ([]sdk.Pubkey, error) {
	n, err := getCount(sess, countKey)
	if err != nil {
		return nil, err
	}
	out := make([]sdk.Pubkey, 0, n)
	for i := uint64(0); i < n; i++ {
		key := indexKey(base, i)
		data, err := sess.Get(key)
		if err != nil {
			return nil, err
		}
		if data == nil {
			// entry written by a commit that is not visible yet
			continue
		}
		addr, err := sdk.ParsePubkey(string(data))
		if err != nil {
			return nil, fmt.Errorf("index %s: %w", key, err)
		}
		out = append(out, addr)
	}
	return out, nil
}
