package main

import (
	"errors"
	"flag"

	"unfair_dao/sdk"

	"github.com/JustinKnueppel/go-result"
)

// ActionFairScaleRegister registers the caller with the scores FairScale
// reports for them. Its payload is username|x_username.
const ActionFairScaleRegister = "fairscale_register"

// ActionFairScaleSync refreshes the caller's scores from FairScale and only
// writes when one of them changed. Its payload is the x_username.
const ActionFairScaleSync = "fairscale_sync"

type args struct {
	configDir string
	caller    sdk.Pubkey
	action    string
	payload   string
	serve     bool
}

func resultWrap[T any](res T, err error) result.Result[T] {
	if err != nil {
		return result.Err[T](err)
	}
	return result.Ok(res)
}

var ErrActionRequired = errors.New("action required unless -serve is set")

func parseArgs(fs *flag.FlagSet, argv []string) result.Result[args] {
	configDir := fs.String("config", "data/config", "directory holding AppConfig.json")
	caller := fs.String("caller", "", "base58 wallet the call runs as")
	action := fs.String("action", "", "contract action, e.g. register_member or leaderboard")
	payload := fs.String("payload", "", "pipe separated action payload")
	serve := fs.Bool("serve", false, "start the http api instead of running one call")
	if err := fs.Parse(argv); err != nil {
		return result.Err[args](err)
	}
	if !*serve && *action == "" {
		return result.Err[args](ErrActionRequired)
	}

	parsed := args{
		configDir: *configDir,
		action:    *action,
		payload:   *payload,
		serve:     *serve,
	}
	if *caller == "" {
		return result.Ok(parsed)
	}
	return result.Map(
		resultWrap(sdk.ParsePubkey(*caller)),
		func(wallet sdk.Pubkey) args {
			parsed.caller = wallet
			return parsed
		},
	)
}
