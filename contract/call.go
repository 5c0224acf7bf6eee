package contract

import (
	"context"
	"fmt"

	"unfair_dao/contract/dao"
	"unfair_dao/sdk"

	"github.com/CosmWasm/tinyjson"
	"github.com/JustinKnueppel/go-result"
)

// Call runs action with a pipe-delimited payload and returns the JSON view of
// the result. This is the surface the CLI and the HTTP api use.
//
//	register_member  fair|social|wallet|tier|username|x_username
//	update_member    fair|social|wallet|tier[|memberKey]
//	submit_proposal  title|score_limit|score_threshold|quorum|end_time|authorKey|description
//	vote_proposal    proposalKey|approve|reject[|memberKey]
//	get_member       wallet
//	get_proposal     proposalKey
//	list_members
//	leaderboard      [limit]
//	list_proposals   [authorWallet]
//	list_votes       memberWallet
func (c *Contract) Call(ctx context.Context, caller sdk.Pubkey, action string, payload string) result.Result[string] {
	switch action {
	case ActionRegisterMember:
		return result.AndThen(
			resultWrap(decodeRegisterMemberArgs(payload)),
			func(args *RegisterMemberArgs) result.Result[string] {
				return result.AndThen(resultWrap(c.RegisterMember(ctx, caller, args)), c.renderMember)
			},
		)
	case ActionUpdateMember:
		return result.AndThen(
			resultWrap(decodeUpdateMemberArgs(payload)),
			func(args *UpdateMemberArgs) result.Result[string] {
				return result.AndThen(resultWrap(c.UpdateMember(ctx, caller, args)), c.renderMember)
			},
		)
	case ActionSubmitProposal:
		return result.AndThen(
			resultWrap(decodeSubmitProposalArgs(payload)),
			func(args *SubmitProposalArgs) result.Result[string] {
				return result.AndThen(resultWrap(c.SubmitProposal(ctx, caller, args)), c.renderProposal)
			},
		)
	case ActionVoteProposal:
		return result.AndThen(
			resultWrap(decodeVoteProposalArgs(payload)),
			func(args *VoteProposalArgs) result.Result[string] {
				return result.AndThen(resultWrap(c.VoteProposal(ctx, caller, args)), c.renderVote)
			},
		)

	case ActionGetMember:
		return result.AndThen(
			resultWrap(parseKeyPayload(payload, "wallet")),
			func(wallet sdk.Pubkey) result.Result[string] {
				return result.AndThen(resultWrap(c.GetMember(ctx, wallet)), renderEntry[*MemberEntry])
			},
		)
	case ActionGetProposal:
		return result.AndThen(
			resultWrap(parseKeyPayload(payload, "proposal key")),
			func(key sdk.Pubkey) result.Result[string] {
				return result.AndThen(resultWrap(c.GetProposal(ctx, key)), renderEntry[*ProposalEntry])
			},
		)
	case ActionListMembers:
		return result.AndThen(resultWrap(c.ListMembers(ctx)), renderMembers)
	case ActionLeaderboard:
		return result.AndThen(
			resultWrap(parseLimitField(unwrapPayload(payload), DefaultLeaderboardLimit)),
			func(limit int) result.Result[string] {
				return result.AndThen(resultWrap(c.Leaderboard(ctx, limit)), renderMembers)
			},
		)
	case ActionListProposals:
		author, err := parseOptionalKeyField(unwrapPayload(payload), "author wallet")
		if err != nil {
			return result.Err[string](err)
		}
		if author.IsZero() {
			return result.AndThen(resultWrap(c.ListProposals(ctx)), renderProposals)
		}
		return result.AndThen(resultWrap(c.ListProposalsByAuthor(ctx, author)), renderProposals)
	case ActionListVotes:
		return result.AndThen(
			resultWrap(parseKeyPayload(payload, "member wallet")),
			func(wallet sdk.Pubkey) result.Result[string] {
				return result.AndThen(resultWrap(c.ListVotesByMember(ctx, wallet)), renderVotes)
			},
		)
	}
	return result.Err[string](fail(ErrInvalidInput, "unknown action %q", action))
}

func (c *Contract) renderMember(m *dao.Member) result.Result[string] {
	key, _, err := MemberAddress(c.programID, m.Wallet)
	if err != nil {
		return result.Err[string](err)
	}
	return resultWrap(ToJSON(MemberEntry{Key: key, Member: m}))
}

func (c *Contract) renderProposal(p *dao.Proposal) result.Result[string] {
	key, _, err := ProposalAddress(c.programID, p.Title, p.Author)
	if err != nil {
		return result.Err[string](err)
	}
	return resultWrap(ToJSON(ProposalEntry{Key: key, Proposal: p}))
}

func (c *Contract) renderVote(v *dao.Vote) result.Result[string] {
	key, _, err := VoteAddress(c.programID, v.Proposal, v.Member)
	if err != nil {
		return result.Err[string](err)
	}
	return resultWrap(ToJSON(VoteEntry{Key: key, Vote: v}))
}

func renderEntry[T tinyjson.Marshaler](v T) result.Result[string] {
	return resultWrap(ToJSON(v))
}

func renderMembers(l []MemberEntry) result.Result[string] {
	return resultWrap(ToJSON(MemberList(l)))
}

func renderProposals(l []ProposalEntry) result.Result[string] {
	return resultWrap(ToJSON(ProposalList(l)))
}

func renderVotes(l []VoteEntry) result.Result[string] {
	return resultWrap(ToJSON(VoteList(l)))
}

func parseKeyPayload(payload string, field string) (sdk.Pubkey, error) {
	raw := unwrapPayload(payload)
	if raw == "" {
		return sdk.Pubkey{}, fail(ErrInvalidInput, "%s required", field)
	}
	key, err := sdk.ParsePubkey(raw)
	if err != nil {
		return sdk.Pubkey{}, fmt.Errorf("%w: %s: %v", ErrInvalidInput, field, err)
	}
	return key, nil
}

func resultWrap[T any](res T, err error) result.Result[T] {
	if err != nil {
		return result.Err[T](err)
	}
	return result.Ok(res)
}
