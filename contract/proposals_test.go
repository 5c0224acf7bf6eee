package contract_test

import (
	"context"
	"strings"
	"testing"

	"unfair_dao/contract"
	"unfair_dao/contract/dao"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitProposalStartsActiveAndEmpty(t *testing.T) {
	ct := SetupContractTest()
	authorKey := registerMember(t, ct, alice, 50, "alice")

	// inverted window, zero quorum and an end time in the past are all accepted
	p, err := ct.SubmitProposal(context.Background(), alice, &contract.SubmitProposalArgs{
		Title:          "fund the docs",
		Description:    "pay someone | to write docs",
		ScoreLimit:     5,
		ScoreThreshold: 500,
		Quorum:         0,
		EndTime:        -100,
	})
	require.NoError(t, err)
	assert.Equal(t, dao.ProposalActive, p.Status)
	assert.Zero(t, p.VotesFor)
	assert.Zero(t, p.VotesAgainst)
	assert.Equal(t, authorKey, p.Author)

	found, err := ct.FindProposal(context.Background(), "fund the docs", alice)
	require.NoError(t, err)
	assert.Equal(t, p, found.Proposal)
	assert.Contains(t, ct.Logs.String(), "pc|id:"+found.Key.String())
}

func TestSubmitProposalDuplicateTitle(t *testing.T) {
	ct := SetupContractTest()
	registerMember(t, ct, alice, 50, "alice")
	registerMember(t, ct, bob, 50, "bob")
	submitProposal(t, ct, alice, "same title", 10, 100)

	_, err := ct.SubmitProposal(context.Background(), alice, &contract.SubmitProposalArgs{Title: "same title"})
	assert.ErrorIs(t, err, contract.ErrAlreadyExists)

	// the key includes the author, so another member may reuse the title
	submitProposal(t, ct, bob, "same title", 10, 100)

	all, err := ct.ListProposals(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSubmitProposalNeedsMember(t *testing.T) {
	ct := SetupContractTest()
	_, err := ct.SubmitProposal(context.Background(), alice, &contract.SubmitProposalArgs{Title: "orphan"})
	assert.ErrorIs(t, err, contract.ErrNotFound)
	assert.Equal(t, 0, ct.State.Len())
}

func TestSubmitProposalForAnotherAuthor(t *testing.T) {
	ct := SetupContractTest()
	aliceKey := registerMember(t, ct, alice, 50, "alice")
	registerMember(t, ct, bob, 50, "bob")

	_, err := ct.SubmitProposal(context.Background(), bob, &contract.SubmitProposalArgs{
		Title:  "in alice's name",
		Author: aliceKey,
	})
	assert.ErrorIs(t, err, contract.ErrUnauthorized)
}

func TestSubmitProposalLengthLimits(t *testing.T) {
	ct := SetupContractTest()
	registerMember(t, ct, alice, 50, "alice")

	_, err := ct.SubmitProposal(context.Background(), alice, &contract.SubmitProposalArgs{
		Title: strings.Repeat("t", dao.MaxTitleLen+1),
	})
	assert.ErrorIs(t, err, contract.ErrInvalidInput)

	_, err = ct.SubmitProposal(context.Background(), alice, &contract.SubmitProposalArgs{
		Title:       "ok",
		Description: strings.Repeat("d", dao.MaxDescriptionLen+1),
	})
	assert.ErrorIs(t, err, contract.ErrInvalidInput)

	_, err = ct.SubmitProposal(context.Background(), alice, &contract.SubmitProposalArgs{
		Title:       strings.Repeat("t", dao.MaxTitleLen),
		Description: strings.Repeat("d", dao.MaxDescriptionLen),
	})
	assert.NoError(t, err)
}
