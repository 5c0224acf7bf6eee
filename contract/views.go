package contract

import (
	"unfair_dao/contract/dao"
	"unfair_dao/sdk"

	"github.com/CosmWasm/tinyjson"
	"github.com/CosmWasm/tinyjson/jwriter"
)

// JSON views returned by Call and the HTTP api. Written by hand against
// jwriter, field names follow the account layout.

func writeKey(w *jwriter.Writer, name string, first bool) {
	if !first {
		w.RawByte(',')
	}
	w.String(name)
	w.RawByte(':')
}

func writePubkey(w *jwriter.Writer, k sdk.Pubkey) {
	w.String(k.String())
}

func writeMember(w *jwriter.Writer, key sdk.Pubkey, m *dao.Member) {
	w.RawByte('{')
	writeKey(w, "key", true)
	writePubkey(w, key)
	writeKey(w, "wallet", false)
	writePubkey(w, m.Wallet)
	writeKey(w, "username", false)
	w.String(m.Username)
	writeKey(w, "x_username", false)
	w.String(m.XUsername)
	writeKey(w, "fair_score", false)
	w.Uint16(m.FairScore)
	writeKey(w, "social_score", false)
	w.Uint16(m.SocialScore)
	writeKey(w, "wallet_score", false)
	w.Uint16(m.WalletScore)
	writeKey(w, "tier", false)
	w.String(m.Tier.String())
	writeKey(w, "bump", false)
	w.Uint8(m.Bump)
	w.RawByte('}')
}

func writeProposal(w *jwriter.Writer, key sdk.Pubkey, p *dao.Proposal) {
	w.RawByte('{')
	writeKey(w, "key", true)
	writePubkey(w, key)
	writeKey(w, "author", false)
	writePubkey(w, p.Author)
	writeKey(w, "title", false)
	w.String(p.Title)
	writeKey(w, "description", false)
	w.String(p.Description)
	writeKey(w, "score_limit", false)
	w.Uint16(p.ScoreLimit)
	writeKey(w, "score_threshold", false)
	w.Uint16(p.ScoreThreshold)
	writeKey(w, "votes_for", false)
	w.Uint32(p.VotesFor)
	writeKey(w, "votes_against", false)
	w.Uint32(p.VotesAgainst)
	writeKey(w, "quorum", false)
	w.Uint32(p.Quorum)
	writeKey(w, "end_time", false)
	w.Int64(p.EndTime)
	writeKey(w, "status", false)
	w.String(p.Status.String())
	writeKey(w, "bump", false)
	w.Uint8(p.Bump)
	w.RawByte('}')
}

func writeVote(w *jwriter.Writer, key sdk.Pubkey, v *dao.Vote) {
	w.RawByte('{')
	writeKey(w, "key", true)
	writePubkey(w, key)
	writeKey(w, "proposal", false)
	writePubkey(w, v.Proposal)
	writeKey(w, "member", false)
	writePubkey(w, v.Member)
	writeKey(w, "vote", false)
	w.String(v.Vote.String())
	writeKey(w, "weight", false)
	w.Uint16(v.Weight)
	writeKey(w, "bump", false)
	w.Uint8(v.Bump)
	w.RawByte('}')
}

func (e MemberEntry) MarshalTinyJSON(w *jwriter.Writer) { writeMember(w, e.Key, e.Member) }

func (e ProposalEntry) MarshalTinyJSON(w *jwriter.Writer) { writeProposal(w, e.Key, e.Proposal) }

func (e VoteEntry) MarshalTinyJSON(w *jwriter.Writer) { writeVote(w, e.Key, e.Vote) }

type MemberList []MemberEntry

func (l MemberList) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawByte('[')
	for i, e := range l {
		if i > 0 {
			w.RawByte(',')
		}
		e.MarshalTinyJSON(w)
	}
	w.RawByte(']')
}

type ProposalList []ProposalEntry

func (l ProposalList) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawByte('[')
	for i, e := range l {
		if i > 0 {
			w.RawByte(',')
		}
		e.MarshalTinyJSON(w)
	}
	w.RawByte(']')
}

type VoteList []VoteEntry

func (l VoteList) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawByte('[')
	for i, e := range l {
		if i > 0 {
			w.RawByte(',')
		}
		e.MarshalTinyJSON(w)
	}
	w.RawByte(']')
}

// ToJSON renders one of the views above.
func ToJSON(v tinyjson.Marshaler) (string, error) {
	data, err := tinyjson.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
