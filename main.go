package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"unfair_dao/api"
	"unfair_dao/config"
	"unfair_dao/contract"
	"unfair_dao/contract/dao"
	"unfair_dao/fairscale"
	"unfair_dao/sdk"
	"unfair_dao/store"

	"github.com/JustinKnueppel/go-result"
)

func main() {
	a := parseArgs(flag.CommandLine, os.Args[1:]).MapErr(func(err error) error {
		fmt.Println("args error:", err)
		flag.Usage()
		os.Exit(1)
		return nil
	}).Unwrap()

	if err := run(a); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(a args) error {
	conf := config.New(config.DefaultAppConfig(), a.configDir)
	if err := conf.Init(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	app := conf.Get().WithEnv()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: app.SlogLevel()}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	state, err := store.Open(ctx, store.Options{
		Backend:       app.Backend,
		FilePath:      app.FilePath,
		RedisURL:      app.RedisURL,
		RedisPrefix:   app.RedisPrefix,
		SQLDSN:        app.SQLDSN,
		MongoURI:      app.MongoURI,
		MongoDatabase: app.MongoDatabase,
	})
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer state.Close()

	opts := []contract.Option{contract.WithLogger(logger)}
	if app.ProgramID != "" {
		id, err := sdk.ParsePubkey(app.ProgramID)
		if err != nil {
			return fmt.Errorf("program id: %w", err)
		}
		opts = append(opts, contract.WithProgramID(id))
	}
	ct := contract.New(state, opts...)

	if a.serve {
		return api.New(ct, api.Options{
			Addr:        app.HTTPAddr,
			CORSOrigins: app.CORSOrigins,
			Logger:      logger,
		}).Run(ctx)
	}

	res := runAction(ctx, ct, fairscale.New(app.FairScaleURL, app.FairScaleKey), a)
	if res.IsErr() {
		err := res.UnwrapErr()
		return fmt.Errorf("%s: %w", contract.Symbol(err), err)
	}
	fmt.Println(res.Unwrap())
	return nil
}

func runAction(ctx context.Context, ct *contract.Contract, fs *fairscale.Client, a args) result.Result[string] {
	switch a.action {
	case ActionFairScaleRegister:
		return registerFromFairScale(ctx, ct, fs, a)
	case ActionFairScaleSync:
		return syncFromFairScale(ctx, ct, fs, a)
	}
	return ct.Call(ctx, a.caller, a.action, a.payload)
}

func registerFromFairScale(ctx context.Context, ct *contract.Contract, fs *fairscale.Client, a args) result.Result[string] {
	username, xUsername, _ := strings.Cut(a.payload, "|")
	score, err := fs.FetchScore(ctx, a.caller.String(), xUsername)
	if err != nil {
		return result.Err[string](err)
	}
	regArgs, err := score.ToRegisterArgs(username, xUsername)
	if err != nil {
		return result.Err[string](err)
	}
	member, err := ct.RegisterMember(ctx, a.caller, regArgs)
	if err != nil {
		return result.Err[string](err)
	}
	return renderMember(ct, member)
}

func syncFromFairScale(ctx context.Context, ct *contract.Contract, fs *fairscale.Client, a args) result.Result[string] {
	score, err := fs.FetchScore(ctx, a.caller.String(), strings.TrimSpace(a.payload))
	if err != nil {
		return result.Err[string](err)
	}
	entry, err := ct.GetMember(ctx, a.caller)
	if err != nil {
		return result.Err[string](err)
	}
	if !score.Differs(entry.Member) {
		return resultWrap(contract.ToJSON(*entry))
	}
	updArgs, err := score.ToUpdateArgs(entry.Key)
	if err != nil {
		return result.Err[string](err)
	}
	member, err := ct.UpdateMember(ctx, a.caller, updArgs)
	if err != nil {
		return result.Err[string](err)
	}
	return renderMember(ct, member)
}

func renderMember(ct *contract.Contract, member *dao.Member) result.Result[string] {
	key, _, err := contract.MemberAddress(ct.ProgramID(), member.Wallet)
	if err != nil {
		return result.Err[string](err)
	}
	return resultWrap(contract.ToJSON(contract.MemberEntry{Key: key, Member: member}))
}
