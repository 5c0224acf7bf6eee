package contract

import (
	"fmt"

	"unfair_dao/contract/dao"
	"unfair_dao/sdk"
)

// createMember stages a new member account, failing if the key is taken.
func createMember(sess *sdk.Session, addr sdk.Pubkey, member *dao.Member) error {
	data, err := encodeRecord(dao.EncodeMember(member))
	if err != nil {
		return err
	}
	return sess.Create(accountKey(addr), data)
}

// saveMember overwrites an existing member account.
func saveMember(sess *sdk.Session, addr sdk.Pubkey, member *dao.Member) error {
	data, err := encodeRecord(dao.EncodeMember(member))
	if err != nil {
		return err
	}
	sess.Set(accountKey(addr), data)
	return nil
}

// loadMember returns ErrNotFound when no member lives at addr.
func loadMember(sess *sdk.Session, addr sdk.Pubkey) (*dao.Member, error) {
	data, err := sess.Get(accountKey(addr))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fail(ErrNotFound, "member %s", addr)
	}
	member, err := dao.DecodeMember(data)
	if err != nil {
		return nil, fmt.Errorf("decode member %s: %w", addr, err)
	}
	return member, nil
}

// encodeRecord turns codec length errors into input errors.
func encodeRecord(data []byte, err error) ([]byte, error) {
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return data, nil
}
