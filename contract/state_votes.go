package contract

import (
	"fmt"

	"unfair_dao/contract/dao"
	"unfair_dao/sdk"
)

// createVote stages the one vote a member may cast on a proposal.
func createVote(sess *sdk.Session, addr sdk.Pubkey, vote *dao.Vote) error {
	data, err := encodeRecord(dao.EncodeVote(vote))
	if err != nil {
		return err
	}
	return sess.Create(accountKey(addr), data)
}

func loadVote(sess *sdk.Session, addr sdk.Pubkey) (*dao.Vote, error) {
	data, err := sess.Get(accountKey(addr))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fail(ErrNotFound, "vote %s", addr)
	}
	vote, err := dao.DecodeVote(data)
	if err != nil {
		return nil, fmt.Errorf("decode vote %s: %w", addr, err)
	}
	return vote, nil
}
