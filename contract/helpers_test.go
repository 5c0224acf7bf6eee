package contract_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"unfair_dao/contract"
	"unfair_dao/contract/dao"
	"unfair_dao/sdk"
	"unfair_dao/store"

	"github.com/JustinKnueppel/go-result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = sdk.Pubkey{0xa1, 0x01}
	bob   = sdk.Pubkey{0xb0, 0x02}
	carol = sdk.Pubkey{0xc0, 0x03}
)

var defaultTimestamp = time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)

type ContractTest struct {
	*contract.Contract
	State *store.Memory
	Logs  *bytes.Buffer
}

// SetupContractTest builds a contract over a fresh in-memory store.
func SetupContractTest() *ContractTest {
	state := store.NewMemory()
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := contract.New(state,
		contract.WithLogger(logger),
		contract.WithClock(func() time.Time { return defaultTimestamp }),
	)
	return &ContractTest{Contract: c, State: state, Logs: logs}
}

// CallContract runs an action through the dispatcher and asserts the outcome.
func CallContract(t *testing.T, ct *ContractTest, action string, payload string, caller sdk.Pubkey, expectedResult bool) result.Result[string] {
	t.Helper()
	res := ct.Call(context.Background(), caller, action, payload)
	if expectedResult {
		if res.IsErr() {
			t.Fatalf("%s failed with %v", action, res.UnwrapErr())
		}
	} else {
		assert.True(t, res.IsErr(), "%s did not fail (as expected)", action)
	}
	return res
}

// decodeView unpacks a JSON view into a generic map.
func decodeView(t *testing.T, res result.Result[string]) map[string]any {
	t.Helper()
	require.True(t, res.IsOk())
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Unwrap()), &out))
	return out
}

func decodeList(t *testing.T, res result.Result[string]) []map[string]any {
	t.Helper()
	require.True(t, res.IsOk())
	var out []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Unwrap()), &out))
	return out
}

// registerMember registers wallet with the given fair score and returns its member key.
func registerMember(t *testing.T, ct *ContractTest, wallet sdk.Pubkey, fair uint16, username string) sdk.Pubkey {
	t.Helper()
	_, err := ct.RegisterMember(context.Background(), wallet, &contract.RegisterMemberArgs{
		FairScore:   fair,
		SocialScore: 1,
		WalletScore: 2,
		Tier:        dao.TierBronze,
		Username:    username,
		XUsername:   "x_" + username,
	})
	require.NoError(t, err)
	key, _, err := contract.MemberAddress(ct.ProgramID(), wallet)
	require.NoError(t, err)
	return key
}

// submitProposal submits a proposal with the given window and returns its key.
func submitProposal(t *testing.T, ct *ContractTest, author sdk.Pubkey, title string, threshold, limit uint16) sdk.Pubkey {
	t.Helper()
	p, err := ct.SubmitProposal(context.Background(), author, &contract.SubmitProposalArgs{
		Title:          title,
		Description:    fmt.Sprintf("description of %s", title),
		ScoreLimit:     limit,
		ScoreThreshold: threshold,
		Quorum:         3,
		EndTime:        defaultTimestamp.Add(24 * time.Hour).Unix(),
	})
	require.NoError(t, err)
	key, _, err := contract.ProposalAddress(ct.ProgramID(), title, p.Author)
	require.NoError(t, err)
	return key
}

func vote(ct *ContractTest, voter sdk.Pubkey, proposal sdk.Pubkey, choice dao.VoteChoice) (*dao.Vote, error) {
	return ct.VoteProposal(context.Background(), voter, &contract.VoteProposalArgs{
		Proposal: proposal,
		Vote:     choice,
	})
}
