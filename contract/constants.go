package contract

import "unfair_dao/sdk"

// -----------------------------------------------------------------------------
// Program Identity
// -----------------------------------------------------------------------------

// DefaultProgramID is the program id from the deployed program keypair. Every
// derived account key depends on it.
var DefaultProgramID = sdk.MustPubkey("9M2SG9z7A4S4hmrU4fDFjzLBAGw4A8LFRjK13E5BupN7")

// -----------------------------------------------------------------------------
// Derivation Tags
// -----------------------------------------------------------------------------

const (
	seedMember   = "member"
	seedProposal = "proposal"
	seedVote     = "vote"
)

// -----------------------------------------------------------------------------
// Storage Keys
// -----------------------------------------------------------------------------

const (
	// accountPrefix precedes the base58 form of every derived account key.
	accountPrefix = "acct:"

	// MembersCount and friends hold how many entries an index has.
	MembersCount   = "count:members"
	ProposalsCount = "count:proposals"
	VotesCount     = "count:votes"

	idxMembers   = "idx:members:"   // + n		// member account keys in registration order
	idxProposals = "idx:proposals:" // + n		// proposal account keys in submission order
	idxVotes     = "idx:votes:"     // + n		// vote account keys in cast order
)

// -----------------------------------------------------------------------------
// Actions
// -----------------------------------------------------------------------------

const (
	ActionRegisterMember = "register_member"
	ActionUpdateMember   = "update_member"
	ActionSubmitProposal = "submit_proposal"
	ActionVoteProposal   = "vote_proposal"

	ActionGetMember     = "get_member"
	ActionGetProposal   = "get_proposal"
	ActionListMembers   = "list_members"
	ActionLeaderboard   = "leaderboard"
	ActionListProposals = "list_proposals"
	ActionListVotes     = "list_votes"
)

// DefaultLeaderboardLimit is used when a leaderboard call gives no limit.
const DefaultLeaderboardLimit = 10
