package contract

import (
	"context"
	"math"

	"unfair_dao/contract/dao"
	"unfair_dao/sdk"
)

// -----------------------------------------------------------------------------
// Voting
// -----------------------------------------------------------------------------

// VoteProposal records the member's one vote on a proposal and bumps the tally.
// The member's fair score must lie strictly between the proposal's threshold
// and limit. The vote keeps the fair score at cast time as its weight.
func (c *Contract) VoteProposal(ctx context.Context, caller sdk.Pubkey, args *VoteProposalArgs) (*dao.Vote, error) {
	if err := c.checkArgs(args); err != nil {
		return nil, err
	}
	if args.Proposal.IsZero() {
		return nil, fail(ErrInvalidInput, "proposal key required")
	}
	var vote *dao.Vote
	err := c.exec(ctx, caller, ActionVoteProposal, func(inv *invocation) error {
		memberKey, member, err := inv.ownedMember(args.Member)
		if err != nil {
			return err
		}
		prpsl, err := loadProposal(inv.sess, args.Proposal)
		if err != nil {
			return err
		}
		if !qualifies(member.FairScore, prpsl) {
			return fail(ErrUnqualified, "fair score %d outside (%d, %d)",
				member.FairScore, prpsl.ScoreThreshold, prpsl.ScoreLimit)
		}
		if err := tally(prpsl, args.Vote); err != nil {
			return err
		}
		if err := saveProposal(inv.sess, args.Proposal, prpsl); err != nil {
			return err
		}

		addr, bump, err := VoteAddress(inv.programID, args.Proposal, memberKey)
		if err != nil {
			return err
		}
		vote = &dao.Vote{
			Bump:     bump,
			Weight:   member.FairScore,
			Vote:     args.Vote,
			Proposal: args.Proposal,
			Member:   memberKey,
		}
		if err := createVote(inv.sess, addr, vote); err != nil {
			return err
		}
		if err := appendIndex(inv.sess, VotesCount, idxVotes, addr); err != nil {
			return err
		}
		emitVoteEvent(inv.sess, vote, prpsl)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vote, nil
}

// qualifies is the eligibility window, exclusive on both ends.
func qualifies(fairScore uint16, p *dao.Proposal) bool {
	return fairScore > p.ScoreThreshold && fairScore < p.ScoreLimit
}

// tally bumps the counter for choice. On overflow the proposal is left as is.
func tally(p *dao.Proposal, choice dao.VoteChoice) error {
	switch choice {
	case dao.VoteApprove:
		next, err := checkedIncrement(p.VotesFor)
		if err != nil {
			return err
		}
		p.VotesFor = next
	case dao.VoteReject:
		next, err := checkedIncrement(p.VotesAgainst)
		if err != nil {
			return err
		}
		p.VotesAgainst = next
	default:
		return fail(ErrInvalidInput, "vote choice %d", choice)
	}
	return nil
}

func checkedIncrement(n uint32) (uint32, error) {
	if n == math.MaxUint32 {
		return n, fail(ErrCountOutOfRange, "counter at %d", n)
	}
	return n + 1, nil
}
