package contract

import (
	"context"

	"unfair_dao/contract/dao"
	"unfair_dao/sdk"
)

// -----------------------------------------------------------------------------
// Proposal Ledger
// -----------------------------------------------------------------------------

// SubmitProposal creates a proposal keyed by title and author member. New
// proposals are always Active with empty tallies. Quorum and end time are
// stored as given and never checked.
func (c *Contract) SubmitProposal(ctx context.Context, caller sdk.Pubkey, args *SubmitProposalArgs) (*dao.Proposal, error) {
	if err := c.checkArgs(args); err != nil {
		return nil, err
	}
	var prpsl *dao.Proposal
	err := c.exec(ctx, caller, ActionSubmitProposal, func(inv *invocation) error {
		author, _, err := inv.ownedMember(args.Author)
		if err != nil {
			return err
		}
		addr, bump, err := ProposalAddress(inv.programID, args.Title, author)
		if err != nil {
			return err
		}
		prpsl = &dao.Proposal{
			Bump:           bump,
			ScoreLimit:     args.ScoreLimit,
			ScoreThreshold: args.ScoreThreshold,
			VotesAgainst:   0,
			VotesFor:       0,
			Quorum:         args.Quorum,
			EndTime:        args.EndTime,
			Status:         dao.ProposalActive,
			Title:          args.Title,
			Description:    args.Description,
			Author:         author,
		}
		if err := createProposal(inv.sess, addr, prpsl); err != nil {
			return err
		}
		if err := appendIndex(inv.sess, ProposalsCount, idxProposals, addr); err != nil {
			return err
		}
		emitProposalCreatedEvent(inv.sess, addr, prpsl)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return prpsl, nil
}
