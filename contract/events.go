package contract

import (
	"fmt"

	"unfair_dao/contract/dao"
	"unfair_dao/sdk"
)

// emitMemberRegisteredEvent writes a tiny "mr" line so watchers see a new member without scanning state.
func emitMemberRegisteredEvent(sess *sdk.Session, memberKey sdk.Pubkey, m *dao.Member) {
	sess.Log(fmt.Sprintf(
		"mr|id:%s|by:%s|f:%d|t:%s",
		memberKey,
		m.Wallet,
		m.FairScore,
		m.Tier,
	))
}

// emitMemberUpdatedEvent mirrors the register line with the new scores.
func emitMemberUpdatedEvent(sess *sdk.Session, memberKey sdk.Pubkey, m *dao.Member) {
	sess.Log(fmt.Sprintf(
		"mu|id:%s|by:%s|f:%d|s:%d|w:%d|t:%s",
		memberKey,
		m.Wallet,
		m.FairScore,
		m.SocialScore,
		m.WalletScore,
		m.Tier,
	))
}

func emitProposalCreatedEvent(sess *sdk.Session, proposalKey sdk.Pubkey, p *dao.Proposal) {
	sess.Log(fmt.Sprintf(
		"pc|id:%s|by:%s|lo:%d|hi:%d",
		proposalKey,
		p.Author,
		p.ScoreThreshold,
		p.ScoreLimit,
	))
}

// emitVoteEvent logs the vote plus the new tally so explorers can follow along.
func emitVoteEvent(sess *sdk.Session, v *dao.Vote, p *dao.Proposal) {
	sess.Log(fmt.Sprintf(
		"v|id:%s|by:%s|c:%s|w:%d|for:%d|against:%d",
		v.Proposal,
		v.Member,
		v.Vote,
		v.Weight,
		p.VotesFor,
		p.VotesAgainst,
	))
}
