package contract

import "unfair_dao/sdk"

// MemberAddress derives the member account of a wallet.
func MemberAddress(programID, wallet sdk.Pubkey) (sdk.Pubkey, uint8, error) {
	return sdk.FindProgramAddress([][]byte{
		[]byte(seedMember),
		wallet.Bytes(),
	}, programID)
}

// ProposalAddress derives the proposal account for a title by an author member.
func ProposalAddress(programID sdk.Pubkey, title string, author sdk.Pubkey) (sdk.Pubkey, uint8, error) {
	return sdk.FindProgramAddress([][]byte{
		[]byte(seedProposal),
		[]byte(title),
		author.Bytes(),
	}, programID)
}

// VoteAddress derives the vote account of a member on a proposal.
func VoteAddress(programID, proposal, member sdk.Pubkey) (sdk.Pubkey, uint8, error) {
	return sdk.FindProgramAddress([][]byte{
		[]byte(seedVote),
		proposal.Bytes(),
		member.Bytes(),
	}, programID)
}

// accountKey is the store key of a derived account.
func accountKey(addr sdk.Pubkey) string {
	return accountPrefix + addr.String()
}

// indexKey builds the n-th entry key of an index.
func indexKey(base string, n uint64) string {
	return base + UInt64ToString(n)
}
