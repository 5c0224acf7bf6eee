package contract

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"unfair_dao/sdk"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Contract runs the DAO entry points against an account store. Calls are
// serialized, each one runs in its own session and either commits all of its
// writes or none of them.
type Contract struct {
	mu        sync.Mutex
	state     sdk.State
	programID sdk.Pubkey
	logger    *slog.Logger
	now       func() time.Time
	validate  *validator.Validate
}

type Option func(*Contract)

// WithProgramID changes the program id every account key is derived from.
func WithProgramID(id sdk.Pubkey) Option {
	return func(c *Contract) { c.programID = id }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Contract) { c.logger = logger }
}

// WithClock overrides the invocation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Contract) { c.now = now }
}

func New(state sdk.State, opts ...Option) *Contract {
	c := &Contract{
		state:     state,
		programID: DefaultProgramID,
		now:       time.Now,
		validate:  newValidator(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = resolveLogger(c.logger)
	return c
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

func (c *Contract) ProgramID() sdk.Pubkey { return c.programID }

// invocation is everything a handler sees while it runs: the tx env and the
// staged session.
type invocation struct {
	env       sdk.Env
	sess      *sdk.Session
	programID sdk.Pubkey
}

func (inv *invocation) caller() sdk.Pubkey { return inv.env.Caller }

// exec runs fn as one invocation. Any error rolls the session back, so no
// partial writes or events escape.
func (c *Contract) exec(ctx context.Context, caller sdk.Pubkey, action string, fn func(inv *invocation) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if caller.IsZero() {
		return fail(ErrUnauthorized, "no caller for %s", action)
	}
	inv := &invocation{
		env: sdk.Env{
			TxId:      uuid.NewString(),
			Caller:    caller,
			Timestamp: c.now().Unix(),
		},
		sess:      sdk.NewSession(ctx, c.state),
		programID: c.programID,
	}

	if err := fn(inv); err != nil {
		inv.sess.Rollback()
		err = mapStoreError(err)
		c.logger.Info("call reverted",
			"action", action,
			"tx", inv.env.TxId,
			"caller", caller.String(),
			"symbol", Symbol(err),
			"error", err,
		)
		return err
	}

	logs, err := inv.sess.Commit()
	if err != nil {
		err = mapStoreError(err)
		c.logger.Error("call commit failed",
			"action", action,
			"tx", inv.env.TxId,
			"caller", caller.String(),
			"symbol", Symbol(err),
			"error", err,
		)
		return err
	}
	for _, line := range logs {
		c.logger.Info(line, "action", action, "tx", inv.env.TxId, "ts", inv.env.Timestamp)
	}
	return nil
}

// view opens a session that is never committed, for read-only queries.
func (c *Contract) view(ctx context.Context) *sdk.Session {
	return sdk.NewSession(ctx, c.state)
}
