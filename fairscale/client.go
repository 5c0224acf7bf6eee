package fairscale

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"unfair_dao/contract"
	"unfair_dao/contract/dao"
	"unfair_dao/sdk"

	"github.com/go-playground/validator/v10"
)

const DefaultBaseURL = "https://api.fairscale.xyz"

// KeyHeader is the header the api key travels in.
const KeyHeader = "fairkey"

var ErrRequestFailed = errors.New("fairscale request failed")

type Badge struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Tier        string `json:"tier"`
}

type Features struct {
	LstPercentileScore    float64 `json:"lst_percentile_score"`
	MajorPercentileScore  float64 `json:"major_percentile_score"`
	NativeSolPercentile   float64 `json:"native_sol_percentile"`
	StablePercentileScore float64 `json:"stable_percentile_score"`
	TxCount               float64 `json:"tx_count"`
	ActiveDays            float64 `json:"active_days"`
	MedianGapHours        float64 `json:"median_gap_hours"`
	TempoCV               float64 `json:"tempo_cv"`
	BurstRatio            float64 `json:"burst_ratio"`
	NetSolFlow30d         float64 `json:"net_sol_flow_30d"`
	MedianHoldDays        float64 `json:"median_hold_days"`
	NoInstantDumps        float64 `json:"no_instant_dumps"`
	ConvictionRatio       float64 `json:"conviction_ratio"`
	PlatformDiversity     float64 `json:"platform_diversity"`
	WalletAgeDays         float64 `json:"wallet_age_days"`
}

// Score is the /score response.
type Score struct {
	Wallet        string   `json:"wallet" validate:"required"`
	FairScoreBase float64  `json:"fairscore_base" validate:"gte=0"`
	SocialScore   float64  `json:"social_score" validate:"gte=0"`
	FairScore     float64  `json:"fairscore" validate:"gte=0"`
	Tier          string   `json:"tier" validate:"required,oneof=bronze silver gold platinum"`
	Badges        []Badge  `json:"badges"`
	Timestamp     string   `json:"timestamp"`
	Features      Features `json:"features"`
}

type Client struct {
	baseURL  string
	key      string
	http     *http.Client
	validate *validator.Validate
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL, key string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:  baseURL,
		key:      key,
		http:     &http.Client{Timeout: 15 * time.Second},
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchScore asks FairScale for the scores of wallet. twitter may be empty.
func (c *Client) FetchScore(ctx context.Context, wallet, twitter string) (*Score, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}
	u = u.JoinPath("score")
	q := u.Query()
	q.Set("wallet", wallet)
	q.Set("twitter", twitter)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(KeyHeader, c.key)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		buf := bytes.Buffer{}
		if _, err := io.Copy(&buf, io.LimitReader(res.Body, 4096)); err != nil {
			return nil, fmt.Errorf("failed to read error message: %w", err)
		}
		return nil, fmt.Errorf("%w\n\tstatus: %s\n\tresponse: %s", ErrRequestFailed, res.Status, buf.String())
	}

	score := new(Score)
	if err := json.NewDecoder(res.Body).Decode(score); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(score); err != nil {
		return nil, err
	}
	return score, nil
}

// ToRegisterArgs builds the registration for this score. The wallet score is
// the base fair score; every score is truncated and clamped to uint16.
func (s *Score) ToRegisterArgs(username, xUsername string) (*contract.RegisterMemberArgs, error) {
	tier, err := dao.ParseTier(s.Tier)
	if err != nil {
		return nil, err
	}
	return &contract.RegisterMemberArgs{
		FairScore:   clampScore(s.FairScore),
		SocialScore: clampScore(s.SocialScore),
		WalletScore: clampScore(s.FairScoreBase),
		Tier:        tier,
		Username:    username,
		XUsername:   xUsername,
	}, nil
}

func clampScore(v float64) uint16 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= math.MaxUint16:
		return math.MaxUint16
	}
	return uint16(math.Floor(v))
}

// ToUpdateArgs builds the score update for member.
func (s *Score) ToUpdateArgs(member sdk.Pubkey) (*contract.UpdateMemberArgs, error) {
	tier, err := dao.ParseTier(s.Tier)
	if err != nil {
		return nil, err
	}
	return &contract.UpdateMemberArgs{
		FairScore:   clampScore(s.FairScore),
		SocialScore: clampScore(s.SocialScore),
		WalletScore: clampScore(s.FairScoreBase),
		Tier:        tier,
		Member:      member,
	}, nil
}

// Differs reports whether any of the three stored scores is out of date.
// The tier alone never triggers a resync.
func (s *Score) Differs(m *dao.Member) bool {
	return m.FairScore != clampScore(s.FairScore) ||
		m.SocialScore != clampScore(s.SocialScore) ||
		m.WalletScore != clampScore(s.FairScoreBase)
}
