package dao

import (
	"fmt"
	"strings"

	"unfair_dao/sdk"
)

// Maximum byte lengths of the variable sized record fields.
const (
	MaxUsernameLen    = 16
	MaxXUsernameLen   = 16
	MaxTitleLen       = 64
	MaxDescriptionLen = 1028
)

// Tier is the coarse reputation bracket carried on a member.
type Tier uint8

const (
	TierBronze   Tier = 0
	TierSilver   Tier = 1
	TierGold     Tier = 2
	TierPlatinum Tier = 3
)

func (t Tier) String() string {
	switch t {
	case TierBronze:
		return "bronze"
	case TierSilver:
		return "silver"
	case TierGold:
		return "gold"
	case TierPlatinum:
		return "platinum"
	default:
		return fmt.Sprintf("tier(%d)", uint8(t))
	}
}

func (t Tier) Valid() bool { return t <= TierPlatinum }

// ParseTier accepts the lower-case name (any case) or the digit.
// Example payload: ParseTier("gold")
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bronze", "0":
		return TierBronze, nil
	case "silver", "1":
		return TierSilver, nil
	case "gold", "2":
		return TierGold, nil
	case "platinum", "3":
		return TierPlatinum, nil
	}
	return 0, fmt.Errorf("unknown tier %q", s)
}

// ProposalStatus captures a proposal's lifecycle. Only Active is ever written.
type ProposalStatus uint8

const (
	ProposalActive   ProposalStatus = 0
	ProposalApproved ProposalStatus = 1
	ProposalRejected ProposalStatus = 2
)

func (ps ProposalStatus) String() string {
	switch ps {
	case ProposalActive:
		return "active"
	case ProposalApproved:
		return "approved"
	case ProposalRejected:
		return "rejected"
	default:
		return fmt.Sprintf("status(%d)", uint8(ps))
	}
}

func (ps ProposalStatus) Valid() bool { return ps <= ProposalRejected }

// VoteChoice is the side a member took on a proposal.
type VoteChoice uint8

const (
	VoteApprove VoteChoice = 0
	VoteReject  VoteChoice = 1
)

func (v VoteChoice) String() string {
	switch v {
	case VoteApprove:
		return "approve"
	case VoteReject:
		return "reject"
	default:
		return fmt.Sprintf("vote(%d)", uint8(v))
	}
}

func (v VoteChoice) Valid() bool { return v <= VoteReject }

// ParseVoteChoice reads the vote field of a payload. Digits are the enum values.
// Example payload: ParseVoteChoice("for")
func ParseVoteChoice(s string) (VoteChoice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approve", "for", "yes", "0":
		return VoteApprove, nil
	case "reject", "against", "no", "1":
		return VoteReject, nil
	}
	return 0, fmt.Errorf("unknown vote choice %q", s)
}

// Member is the per wallet reputation record.
type Member struct {
	Bump        uint8
	FairScore   uint16
	SocialScore uint16
	WalletScore uint16
	Tier        Tier
	Username    string
	XUsername   string
	Wallet      sdk.Pubkey
}

// Proposal is keyed by title and author member key.
// Quorum, EndTime and Status are stored but no operation acts on them.
type Proposal struct {
	Bump           uint8
	ScoreLimit     uint16
	ScoreThreshold uint16
	VotesAgainst   uint32
	VotesFor       uint32
	Quorum         uint32
	EndTime        int64
	Status         ProposalStatus
	Title          string
	Description    string
	Author         sdk.Pubkey
}

// Vote is written once per proposal and member. Weight is the member's fair
// score at the time the vote was cast.
type Vote struct {
	Bump     uint8
	Weight   uint16
	Vote     VoteChoice
	Proposal sdk.Pubkey
	Member   sdk.Pubkey
}
