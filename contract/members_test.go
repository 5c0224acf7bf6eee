package contract_test

import (
	"context"
	"strings"
	"testing"

	"unfair_dao/contract"
	"unfair_dao/contract/dao"
	"unfair_dao/sdk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Registration
// =============================================================================

func TestRegisterMember(t *testing.T) {
	ct := SetupContractTest()
	m, err := ct.RegisterMember(context.Background(), alice, &contract.RegisterMemberArgs{
		FairScore:   65535,
		SocialScore: 0,
		WalletScore: 12,
		Tier:        dao.TierPlatinum,
		Username:    "alice",
		XUsername:   "alice_x",
	})
	require.NoError(t, err)
	assert.Equal(t, alice, m.Wallet)
	assert.Equal(t, uint16(65535), m.FairScore)

	entry, err := ct.GetMember(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, m, entry.Member)

	key, bump, err := contract.MemberAddress(ct.ProgramID(), alice)
	require.NoError(t, err)
	assert.Equal(t, key, entry.Key)
	assert.Equal(t, bump, entry.Member.Bump)
	assert.Contains(t, ct.Logs.String(), "mr|id:"+key.String())
}

func TestRegisterMemberTwiceFails(t *testing.T) {
	ct := SetupContractTest()
	registerMember(t, ct, alice, 10, "alice")
	before := ct.State.Snapshot()

	_, err := ct.RegisterMember(context.Background(), alice, &contract.RegisterMemberArgs{FairScore: 99, Username: "other"})
	assert.ErrorIs(t, err, contract.ErrAlreadyExists)
	assert.Equal(t, "already_exists", contract.Symbol(err))
	assert.Equal(t, before, ct.State.Snapshot())

	entry, err := ct.GetMember(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, uint16(10), entry.Member.FairScore)
	assert.Equal(t, "alice", entry.Member.Username)
}

func TestRegisterMemberRejectsLongNames(t *testing.T) {
	ct := SetupContractTest()
	_, err := ct.RegisterMember(context.Background(), alice, &contract.RegisterMemberArgs{
		Username: strings.Repeat("a", dao.MaxUsernameLen+1),
	})
	assert.ErrorIs(t, err, contract.ErrInvalidInput)

	_, err = ct.RegisterMember(context.Background(), alice, &contract.RegisterMemberArgs{
		XUsername: strings.Repeat("ü", 9),
	})
	assert.ErrorIs(t, err, contract.ErrInvalidInput)
	assert.Equal(t, 0, ct.State.Len())

	// exactly at the limit is fine
	_, err = ct.RegisterMember(context.Background(), alice, &contract.RegisterMemberArgs{
		Username:  strings.Repeat("a", dao.MaxUsernameLen),
		XUsername: strings.Repeat("b", dao.MaxXUsernameLen),
	})
	assert.NoError(t, err)
}

func TestRegisterMemberNeedsCaller(t *testing.T) {
	ct := SetupContractTest()
	_, err := ct.RegisterMember(context.Background(), sdk.Pubkey{}, &contract.RegisterMemberArgs{})
	assert.ErrorIs(t, err, contract.ErrUnauthorized)

	_, err = ct.RegisterMember(context.Background(), alice, nil)
	assert.ErrorIs(t, err, contract.ErrInvalidInput)
}

// =============================================================================
// Update
// =============================================================================

func TestUpdateMemberOverwritesScoresOnly(t *testing.T) {
	ct := SetupContractTest()
	key := registerMember(t, ct, alice, 10, "alice")

	m, err := ct.UpdateMember(context.Background(), alice, &contract.UpdateMemberArgs{
		FairScore:   70,
		SocialScore: 71,
		WalletScore: 72,
		Tier:        dao.TierGold,
	})
	require.NoError(t, err)

	entry, err := ct.GetMemberByKey(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, m, entry.Member)
	assert.Equal(t, uint16(70), entry.Member.FairScore)
	assert.Equal(t, uint16(71), entry.Member.SocialScore)
	assert.Equal(t, uint16(72), entry.Member.WalletScore)
	assert.Equal(t, dao.TierGold, entry.Member.Tier)
	assert.Equal(t, "alice", entry.Member.Username)
	assert.Equal(t, "x_alice", entry.Member.XUsername)
	assert.Equal(t, alice, entry.Member.Wallet)
}

func TestUpdateMemberNotFound(t *testing.T) {
	ct := SetupContractTest()
	_, err := ct.UpdateMember(context.Background(), alice, &contract.UpdateMemberArgs{FairScore: 1})
	assert.ErrorIs(t, err, contract.ErrNotFound)
	assert.Equal(t, "not_found", contract.Symbol(err))
}

func TestUpdateMemberOfSomeoneElse(t *testing.T) {
	ct := SetupContractTest()
	aliceKey := registerMember(t, ct, alice, 10, "alice")
	registerMember(t, ct, bob, 20, "bob")

	_, err := ct.UpdateMember(context.Background(), bob, &contract.UpdateMemberArgs{
		FairScore: 999,
		Member:    aliceKey,
	})
	assert.ErrorIs(t, err, contract.ErrUnauthorized)

	entry, err := ct.GetMember(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, uint16(10), entry.Member.FairScore)
}
