package contract

import (
	"fmt"

	"unfair_dao/contract/dao"
	"unfair_dao/sdk"
)

func createProposal(sess *sdk.Session, addr sdk.Pubkey, prpsl *dao.Proposal) error {
	data, err := encodeRecord(dao.EncodeProposal(prpsl))
	if err != nil {
		return err
	}
	return sess.Create(accountKey(addr), data)
}

// saveProposal rewrites the proposal blob, used for tally updates.
func saveProposal(sess *sdk.Session, addr sdk.Pubkey, prpsl *dao.Proposal) error {
	data, err := encodeRecord(dao.EncodeProposal(prpsl))
	if err != nil {
		return err
	}
	sess.Set(accountKey(addr), data)
	return nil
}

func loadProposal(sess *sdk.Session, addr sdk.Pubkey) (*dao.Proposal, error) {
	data, err := sess.Get(accountKey(addr))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fail(ErrNotFound, "proposal %s", addr)
	}
	prpsl, err := dao.DecodeProposal(data)
	if err != nil {
		return nil, fmt.Errorf("decode proposal %s: %w", addr, err)
	}
	return prpsl, nil
}
