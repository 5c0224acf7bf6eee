package contract_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"unfair_dao/contract"
	"unfair_dao/contract/dao"
	"unfair_dao/sdk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Voting
// =============================================================================

func TestVoteApprove(t *testing.T) {
	ct := SetupContractTest()
	memberKey := registerMember(t, ct, alice, 50, "alice")
	proposalKey := submitProposal(t, ct, alice, "first", 10, 100)

	v, err := vote(ct, alice, proposalKey, dao.VoteApprove)
	require.NoError(t, err)
	assert.Equal(t, uint16(50), v.Weight)
	assert.Equal(t, dao.VoteApprove, v.Vote)
	assert.Equal(t, proposalKey, v.Proposal)
	assert.Equal(t, memberKey, v.Member)

	p, err := ct.GetProposal(context.Background(), proposalKey)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), p.Proposal.VotesFor)
	assert.Equal(t, uint32(0), p.Proposal.VotesAgainst)

	stored, err := ct.GetVote(context.Background(), proposalKey, memberKey)
	require.NoError(t, err)
	assert.Equal(t, v, stored.Vote)
	assert.Contains(t, ct.Logs.String(), "v|id:"+proposalKey.String())
}

func TestVoteReject(t *testing.T) {
	ct := SetupContractTest()
	registerMember(t, ct, alice, 50, "alice")
	registerMember(t, ct, bob, 60, "bob")
	proposalKey := submitProposal(t, ct, alice, "first", 10, 100)

	_, err := vote(ct, alice, proposalKey, dao.VoteReject)
	require.NoError(t, err)
	_, err = vote(ct, bob, proposalKey, dao.VoteApprove)
	require.NoError(t, err)

	p, err := ct.GetProposal(context.Background(), proposalKey)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), p.Proposal.VotesFor)
	assert.Equal(t, uint32(1), p.Proposal.VotesAgainst)
}

func TestVoteWindowIsExclusive(t *testing.T) {
	cases := []struct {
		name      string
		fair      uint16
		threshold uint16
		limit     uint16
		ok        bool
	}{
		{"equal to threshold", 10, 10, 100, false},
		{"equal to limit", 100, 10, 100, false},
		{"below threshold", 5, 10, 100, false},
		{"above limit", 65535, 10, 100, false},
		{"just above threshold", 11, 10, 100, true},
		{"just below limit", 99, 10, 100, true},
		{"empty window", 10, 10, 11, false},
		{"inverted window", 50, 100, 10, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ct := SetupContractTest()
			registerMember(t, ct, alice, tc.fair, "alice")
			proposalKey := submitProposal(t, ct, alice, "window", tc.threshold, tc.limit)
			before := ct.State.Snapshot()

			_, err := vote(ct, alice, proposalKey, dao.VoteApprove)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, contract.ErrUnqualified)
			assert.Equal(t, "unqualified", contract.Symbol(err))
			assert.Equal(t, before, ct.State.Snapshot())
		})
	}
}

func TestDoubleVoteFails(t *testing.T) {
	ct := SetupContractTest()
	registerMember(t, ct, alice, 50, "alice")
	proposalKey := submitProposal(t, ct, alice, "first", 10, 100)

	_, err := vote(ct, alice, proposalKey, dao.VoteApprove)
	require.NoError(t, err)
	before := ct.State.Snapshot()

	_, err = vote(ct, alice, proposalKey, dao.VoteReject)
	assert.ErrorIs(t, err, contract.ErrAlreadyExists)
	assert.Equal(t, before, ct.State.Snapshot())

	p, err := ct.GetProposal(context.Background(), proposalKey)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), p.Proposal.VotesFor)
	assert.Equal(t, uint32(0), p.Proposal.VotesAgainst)
}

func TestConcurrentDoubleVote(t *testing.T) {
	ct := SetupContractTest()
	registerMember(t, ct, alice, 50, "alice")
	proposalKey := submitProposal(t, ct, alice, "race", 10, 100)
	// a second contract over the same store behaves like another process
	other := contract.New(ct.State, contract.WithProgramID(ct.ProgramID()))

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := ct.Contract
			if i%2 == 1 {
				c = other
			}
			_, errs[i] = c.VoteProposal(context.Background(), alice, &contract.VoteProposalArgs{
				Proposal: proposalKey,
				Vote:     dao.VoteApprove,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, contract.ErrAlreadyExists), "unexpected error %v", err)
	}
	assert.Equal(t, 1, succeeded)

	p, err := ct.GetProposal(context.Background(), proposalKey)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), p.Proposal.VotesFor)
}

func TestVoteWeightIsASnapshot(t *testing.T) {
	ct := SetupContractTest()
	memberKey := registerMember(t, ct, alice, 50, "alice")
	proposalKey := submitProposal(t, ct, alice, "first", 10, 100)
	_, err := vote(ct, alice, proposalKey, dao.VoteApprove)
	require.NoError(t, err)

	_, err = ct.UpdateMember(context.Background(), alice, &contract.UpdateMemberArgs{FairScore: 90})
	require.NoError(t, err)

	v, err := ct.GetVote(context.Background(), proposalKey, memberKey)
	require.NoError(t, err)
	assert.Equal(t, uint16(50), v.Vote.Weight)
}

func TestVoteMissingAccounts(t *testing.T) {
	ct := SetupContractTest()
	registerMember(t, ct, alice, 50, "alice")
	proposalKey := submitProposal(t, ct, alice, "first", 10, 100)

	_, err := vote(ct, bob, proposalKey, dao.VoteApprove)
	assert.ErrorIs(t, err, contract.ErrNotFound)

	_, err = vote(ct, alice, sdk.Pubkey{0x42}, dao.VoteApprove)
	assert.ErrorIs(t, err, contract.ErrNotFound)

	_, err = vote(ct, alice, sdk.Pubkey{}, dao.VoteApprove)
	assert.ErrorIs(t, err, contract.ErrInvalidInput)
}

func TestVoteWithSomeoneElsesMember(t *testing.T) {
	ct := SetupContractTest()
	aliceKey := registerMember(t, ct, alice, 50, "alice")
	registerMember(t, ct, bob, 50, "bob")
	proposalKey := submitProposal(t, ct, alice, "first", 10, 100)

	_, err := ct.VoteProposal(context.Background(), bob, &contract.VoteProposalArgs{
		Proposal: proposalKey,
		Vote:     dao.VoteApprove,
		Member:   aliceKey,
	})
	assert.ErrorIs(t, err, contract.ErrUnauthorized)
}

func TestVoteOnlyTouchesItsOwnProposal(t *testing.T) {
	ct := SetupContractTest()
	registerMember(t, ct, alice, 50, "alice")
	registerMember(t, ct, carol, 20, "carol")
	first := submitProposal(t, ct, alice, "first", 10, 100)
	second := submitProposal(t, ct, carol, "second", 10, 100)

	_, err := vote(ct, carol, first, dao.VoteReject)
	require.NoError(t, err)

	p, err := ct.GetProposal(context.Background(), second)
	require.NoError(t, err)
	assert.Zero(t, p.Proposal.VotesFor)
	assert.Zero(t, p.Proposal.VotesAgainst)
}
