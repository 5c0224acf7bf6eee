package contract

import (
	"unfair_dao/contract/dao"
	"unfair_dao/sdk"
)

// RegisterMemberArgs creates the caller's member account. Scores take any uint16.
type RegisterMemberArgs struct {
	FairScore   uint16
	SocialScore uint16
	WalletScore uint16
	Tier        dao.Tier `validate:"lte=3"`
	Username    string   `validate:"maxbytes=16"`
	XUsername   string   `validate:"maxbytes=16"`
}

// UpdateMemberArgs overwrites the mutable member fields. A zero Member means
// the member account derived from the caller.
type UpdateMemberArgs struct {
	FairScore   uint16
	SocialScore uint16
	WalletScore uint16
	Tier        dao.Tier `validate:"lte=3"`
	Member      sdk.Pubkey
}

// SubmitProposalArgs creates a proposal by Author, which defaults to the
// caller's member account. Nothing checks that the window or end time make sense.
type SubmitProposalArgs struct {
	Title          string `validate:"maxbytes=64"`
	Description    string `validate:"maxbytes=1028"`
	ScoreLimit     uint16
	ScoreThreshold uint16
	Quorum         uint32
	EndTime        int64
	Author         sdk.Pubkey
}

// VoteProposalArgs casts Member's vote, Member defaults to the caller's member account.
type VoteProposalArgs struct {
	Proposal sdk.Pubkey
	Vote     dao.VoteChoice `validate:"lte=1"`
	Member   sdk.Pubkey
}
