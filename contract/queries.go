package contract

import (
	"context"
	"errors"
	"sort"

	"unfair_dao/contract/dao"
	"unfair_dao/sdk"
)

// -----------------------------------------------------------------------------
// Read-only queries, none of them commit
// -----------------------------------------------------------------------------

// MemberEntry pairs a member with its account key.
type MemberEntry struct {
	Key    sdk.Pubkey
	Member *dao.Member
}

type ProposalEntry struct {
	Key      sdk.Pubkey
	Proposal *dao.Proposal
}

type VoteEntry struct {
	Key  sdk.Pubkey
	Vote *dao.Vote
}

// GetMember loads the member registered by wallet.
func (c *Contract) GetMember(ctx context.Context, wallet sdk.Pubkey) (*MemberEntry, error) {
	key, _, err := MemberAddress(c.programID, wallet)
	if err != nil {
		return nil, err
	}
	return c.GetMemberByKey(ctx, key)
}

func (c *Contract) GetMemberByKey(ctx context.Context, key sdk.Pubkey) (*MemberEntry, error) {
	m, err := loadMember(c.view(ctx), key)
	if err != nil {
		return nil, err
	}
	return &MemberEntry{Key: key, Member: m}, nil
}

func (c *Contract) GetProposal(ctx context.Context, key sdk.Pubkey) (*ProposalEntry, error) {
	p, err := loadProposal(c.view(ctx), key)
	if err != nil {
		return nil, err
	}
	return &ProposalEntry{Key: key, Proposal: p}, nil
}

// FindProposal derives the proposal key from the title and the author's wallet.
func (c *Contract) FindProposal(ctx context.Context, title string, authorWallet sdk.Pubkey) (*ProposalEntry, error) {
	author, _, err := MemberAddress(c.programID, authorWallet)
	if err != nil {
		return nil, err
	}
	key, _, err := ProposalAddress(c.programID, title, author)
	if err != nil {
		return nil, err
	}
	return c.GetProposal(ctx, key)
}

// GetVote loads the vote of a member account on a proposal.
func (c *Contract) GetVote(ctx context.Context, proposal, member sdk.Pubkey) (*VoteEntry, error) {
	key, _, err := VoteAddress(c.programID, proposal, member)
	if err != nil {
		return nil, err
	}
	v, err := loadVote(c.view(ctx), key)
	if err != nil {
		return nil, err
	}
	return &VoteEntry{Key: key, Vote: v}, nil
}

// ListMembers returns every member in registration order.
func (c *Contract) ListMembers(ctx context.Context) ([]MemberEntry, error) {
	sess := c.view(ctx)
	keys, err := readIndex(sess, MembersCount, idxMembers)
	if err != nil {
		return nil, err
	}
	out := make([]MemberEntry, 0, len(keys))
	for _, key := range keys {
		m, err := loadMember(sess, key)
		if skipMissing(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, MemberEntry{Key: key, Member: m})
	}
	return out, nil
}

// Leaderboard returns up to limit members by fair score, highest first. Ties
// are ordered by username.
func (c *Contract) Leaderboard(ctx context.Context, limit int) ([]MemberEntry, error) {
	members, err := c.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(members, func(i, j int) bool {
		a, b := members[i].Member, members[j].Member
		if a.FairScore != b.FairScore {
			return a.FairScore > b.FairScore
		}
		return a.Username < b.Username
	})
	if limit > 0 && len(members) > limit {
		members = members[:limit]
	}
	return members, nil
}

// ListProposals returns every proposal in submission order.
func (c *Contract) ListProposals(ctx context.Context) ([]ProposalEntry, error) {
	return c.listProposals(ctx, func(*dao.Proposal) bool { return true })
}

// ListProposalsByAuthor returns the proposals submitted by the member of wallet.
func (c *Contract) ListProposalsByAuthor(ctx context.Context, wallet sdk.Pubkey) ([]ProposalEntry, error) {
	author, _, err := MemberAddress(c.programID, wallet)
	if err != nil {
		return nil, err
	}
	return c.listProposals(ctx, func(p *dao.Proposal) bool { return p.Author == author })
}

func (c *Contract) listProposals(ctx context.Context, keep func(*dao.Proposal) bool) ([]ProposalEntry, error) {
	sess := c.view(ctx)
	keys, err := readIndex(sess, ProposalsCount, idxProposals)
	if err != nil {
		return nil, err
	}
	out := make([]ProposalEntry, 0, len(keys))
	for _, key := range keys {
		p, err := loadProposal(sess, key)
		if skipMissing(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if keep(p) {
			out = append(out, ProposalEntry{Key: key, Proposal: p})
		}
	}
	return out, nil
}

// ListVotesByMember returns the votes cast by the member of wallet.
func (c *Contract) ListVotesByMember(ctx context.Context, wallet sdk.Pubkey) ([]VoteEntry, error) {
	member, _, err := MemberAddress(c.programID, wallet)
	if err != nil {
		return nil, err
	}
	sess := c.view(ctx)
	keys, err := readIndex(sess, VotesCount, idxVotes)
	if err != nil {
		return nil, err
	}
	out := make([]VoteEntry, 0)
	for _, key := range keys {
		v, err := loadVote(sess, key)
		if skipMissing(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if v.Member == member {
			out = append(out, VoteEntry{Key: key, Vote: v})
		}
	}
	return out, nil
}

// skipMissing tolerates index entries whose account is not visible.
func skipMissing(err error) bool {
	return errors.Is(err, ErrNotFound)
}
