package contract

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"unfair_dao/contract/dao"
	"unfair_dao/sdk"

	"github.com/go-playground/validator/v10"
)

// newValidator registers maxbytes, since the stock max tag counts runes and
// the record limits are in bytes.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})
	return v
}

// checkArgs runs the struct tags of an entry point's args.
func (c *Contract) checkArgs(args any) error {
	if args == nil {
		return fail(ErrInvalidInput, "missing args")
	}
	err := c.validate.Struct(args)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		}
		return fail(ErrInvalidInput, "%s", strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

type payloadFields []string

// splitPayload splits a pipe-delimited payload. With keepRest the n-th field
// takes the rest of the string, so descriptions may contain pipes.
func splitPayload(payload string, n int, keepRest bool) payloadFields {
	raw := unwrapPayload(payload)
	if raw == "" {
		return payloadFields{}
	}
	if keepRest {
		return strings.SplitN(raw, "|", n)
	}
	return strings.Split(raw, "|")
}

func (p payloadFields) get(i int) string {
	if i < len(p) {
		return strings.TrimSpace(p[i])
	}
	return ""
}

// raw keeps surrounding whitespace, used for free text.
func (p payloadFields) raw(i int) string {
	if i < len(p) {
		return p[i]
	}
	return ""
}

// decodeRegisterMemberArgs reads `fair|social|wallet|tier|username|x_username`.
func decodeRegisterMemberArgs(payload string) (*RegisterMemberArgs, error) {
	parts := splitPayload(payload, 6, false)
	if len(parts) < 4 || len(parts) > 6 {
		return nil, fail(ErrInvalidInput, "register payload requires fair|social|wallet|tier|username|x_username")
	}
	args := &RegisterMemberArgs{
		Username:  parts.get(4),
		XUsername: parts.get(5),
	}
	var err error
	if args.FairScore, err = parseScoreField(parts.get(0), "fair score"); err != nil {
		return nil, err
	}
	if args.SocialScore, err = parseScoreField(parts.get(1), "social score"); err != nil {
		return nil, err
	}
	if args.WalletScore, err = parseScoreField(parts.get(2), "wallet score"); err != nil {
		return nil, err
	}
	if args.Tier, err = parseTierField(parts.get(3)); err != nil {
		return nil, err
	}
	return args, nil
}

// decodeUpdateMemberArgs reads `fair|social|wallet|tier[|memberKey]`.
func decodeUpdateMemberArgs(payload string) (*UpdateMemberArgs, error) {
	parts := splitPayload(payload, 5, false)
	if len(parts) < 4 || len(parts) > 5 {
		return nil, fail(ErrInvalidInput, "update payload requires fair|social|wallet|tier[|memberKey]")
	}
	args := &UpdateMemberArgs{}
	var err error
	if args.FairScore, err = parseScoreField(parts.get(0), "fair score"); err != nil {
		return nil, err
	}
	if args.SocialScore, err = parseScoreField(parts.get(1), "social score"); err != nil {
		return nil, err
	}
	if args.WalletScore, err = parseScoreField(parts.get(2), "wallet score"); err != nil {
		return nil, err
	}
	if args.Tier, err = parseTierField(parts.get(3)); err != nil {
		return nil, err
	}
	if args.Member, err = parseOptionalKeyField(parts.get(4), "member key"); err != nil {
		return nil, err
	}
	return args, nil
}

// decodeSubmitProposalArgs reads
// `title|score_limit|score_threshold|quorum|end_time|authorKey|description`.
func decodeSubmitProposalArgs(payload string) (*SubmitProposalArgs, error) {
	parts := splitPayload(payload, 7, true)
	if len(parts) < 5 {
		return nil, fail(ErrInvalidInput, "proposal payload requires title|score_limit|score_threshold|quorum|end_time|authorKey|description")
	}
	args := &SubmitProposalArgs{
		Title:       parts.get(0),
		Description: strings.TrimSpace(parts.raw(6)),
	}
	var err error
	if args.ScoreLimit, err = parseScoreField(parts.get(1), "score limit"); err != nil {
		return nil, err
	}
	if args.ScoreThreshold, err = parseScoreField(parts.get(2), "score threshold"); err != nil {
		return nil, err
	}
	quorum, err := strconv.ParseUint(orZero(parts.get(3)), 10, 32)
	if err != nil {
		return nil, fail(ErrInvalidInput, "invalid quorum")
	}
	args.Quorum = uint32(quorum)
	if args.EndTime, err = strconv.ParseInt(orZero(parts.get(4)), 10, 64); err != nil {
		return nil, fail(ErrInvalidInput, "invalid end time")
	}
	if args.Author, err = parseOptionalKeyField(parts.get(5), "author key"); err != nil {
		return nil, err
	}
	return args, nil
}

// decodeVoteProposalArgs reads `proposalKey|approve|reject[|memberKey]`.
func decodeVoteProposalArgs(payload string) (*VoteProposalArgs, error) {
	parts := splitPayload(payload, 3, false)
	if len(parts) < 2 {
		return nil, fail(ErrInvalidInput, "vote payload requires proposalKey|approve|reject")
	}
	proposal, err := sdk.ParsePubkey(parts.get(0))
	if err != nil {
		return nil, fail(ErrInvalidInput, "invalid proposal key")
	}
	choice, err := dao.ParseVoteChoice(parts.get(1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	member, err := parseOptionalKeyField(parts.get(2), "member key")
	if err != nil {
		return nil, err
	}
	return &VoteProposalArgs{Proposal: proposal, Vote: choice, Member: member}, nil
}

// unwrapPayload trims quotes and whitespace so JSON encoded strings work too.
func unwrapPayload(payload string) string {
	raw := strings.TrimSpace(payload)
	if len(raw) >= 2 {
		first := raw[0]
		last := raw[len(raw)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			if unquoted, err := strconv.Unquote(raw); err == nil {
				return unquoted
			}
			raw = strings.TrimSpace(raw[1 : len(raw)-1])
		}
	}
	return raw
}

// parseScoreField accepts 0 to 65535, empty counts as zero.
func parseScoreField(val string, field string) (uint16, error) {
	n, err := strconv.ParseUint(orZero(val), 10, 16)
	if err != nil {
		return 0, fail(ErrInvalidInput, "invalid %s", field)
	}
	return uint16(n), nil
}

func parseTierField(val string) (dao.Tier, error) {
	tier, err := dao.ParseTier(val)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return tier, nil
}

// parseOptionalKeyField returns the zero key for an empty field.
func parseOptionalKeyField(val string, field string) (sdk.Pubkey, error) {
	if val == "" {
		return sdk.Pubkey{}, nil
	}
	key, err := sdk.ParsePubkey(val)
	if err != nil {
		return sdk.Pubkey{}, fail(ErrInvalidInput, "invalid %s", field)
	}
	return key, nil
}

// parseLimitField reads an optional positive list limit.
func parseLimitField(val string, fallback int) (int, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return 0, fail(ErrInvalidInput, "invalid limit")
	}
	return n, nil
}

func orZero(val string) string {
	if val == "" {
		return "0"
	}
	return val
}
