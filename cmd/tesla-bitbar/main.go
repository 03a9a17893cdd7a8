// tesla-bitbar renders Tesla vehicle status as a BitBar/xbar menu and
// dispatches one-shot commands when re-invoked by a menu click.
//
// Invocations:
//
//	tesla-bitbar                     render the status menu
//	tesla-bitbar login               interactive credential prompt
//	tesla-bitbar <index> <command>   wake vehicle <index>, then run <command>
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/therippa/tesla-bitbar/internal/log"
	"github.com/therippa/tesla-bitbar/pkg/cli"
	"github.com/therippa/tesla-bitbar/pkg/menu"
	"github.com/therippa/tesla-bitbar/pkg/owner"
	"github.com/therippa/tesla-bitbar/pkg/status"
)

func writeErr(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Fprintf(os.Stderr, "\n")
}

func main() {
	log.SetLevelFromEnv("TESLA_VERBOSE")

	cfg, err := cli.LoadConfig()
	if err != nil {
		writeErr("%s", err)
		os.Exit(1)
	}
	store, err := cli.OpenTokenStore()
	if err != nil {
		writeErr("%s", err)
		os.Exit(1)
	}
	os.Exit(run(context.Background(), cfg, store, os.Args, os.Stdin, os.Stdout))
}

func run(ctx context.Context, cfg cli.Config, store *cli.TokenStore, args []string, stdin io.Reader, stdout io.Writer) int {
	opts := cfg.MenuOptions(args[0])

	if len(args) > 1 && args[1] == "login" {
		if err := cli.PromptLogin(ctx, store, cfg.Proxy(), stdin, stdout); err != nil {
			writeErr("%s", err)
			return 1
		}
		fmt.Fprintln(stdout, "\nType \"exit\" and hit enter to close this window")
		return 0
	}

	if len(args) == 2 {
		writeErr("usage: %s [login | <vehicle-index> <command> [arg]]", args[0])
		return 1
	}
	commandMode := len(args) > 2

	token, err := store.Load()
	if err != nil {
		return reportError(err, commandMode, opts, stdout)
	}
	session, err := owner.NewSession(owner.Credentials{AccessToken: token}, cfg.Proxy())
	if err != nil {
		writeErr("%s", err)
		return 1
	}
	vehicles, err := owner.Vehicles(ctx, session)
	if err != nil {
		return reportError(err, commandMode, opts, stdout)
	}

	if commandMode {
		if err := dispatchCommand(ctx, session, vehicles, args); err != nil {
			writeErr("%s", err)
			return 1
		}
		return 0
	}

	statuses := make([]status.VehicleStatus, 0, len(vehicles))
	for _, v := range vehicles {
		st, err := status.Aggregate(ctx, v, owner.NewFacade(session, v))
		if err != nil {
			return reportError(err, false, opts, stdout)
		}
		statuses = append(statuses, st)
	}
	menu.Render(stdout, opts, statuses)
	return 0
}

// dispatchCommand wakes the selected vehicle and, unless the command is the
// literal wake marker, issues the command. No retries; a failure aborts the
// single operation.
func dispatchCommand(ctx context.Context, session *owner.Session, vehicles []owner.Vehicle, args []string) error {
	index, err := strconv.Atoi(args[1])
	if err != nil || index < 0 || index >= len(vehicles) {
		return fmt.Errorf("invalid vehicle index %q", args[1])
	}
	facade := owner.NewFacade(session, vehicles[index])
	if err := facade.WakeUp(ctx); err != nil {
		return err
	}
	name := args[2]
	if name == "wakeup" {
		return nil
	}
	if name == "set_charge_limit" && len(args) > 3 {
		percent, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("invalid charge limit %q", args[3])
		}
		return facade.SetChargeLimit(ctx, percent)
	}
	return facade.Command(ctx, name, nil)
}

// reportError applies the top-level error policy. An expired or rejected token
// becomes the login affordance in menu mode; everything else becomes a single
// user-visible error line, with the detail in the logs.
func reportError(err error, commandMode bool, opts menu.Options, stdout io.Writer) int {
	if errors.Is(err, owner.ErrAuthExpired) {
		if commandMode {
			writeErr("Login expired; run with \"login\" to re-authenticate")
			return 1
		}
		log.Info("Stored token unusable: %s", err)
		menu.RenderLoginPrompt(stdout, opts)
		return 0
	}

	log.Error("%s", err)
	if commandMode {
		writeErr("%s", err)
		return 1
	}
	var netErr *owner.NetworkError
	if errors.As(err, &netErr) {
		menu.RenderError(stdout, opts, "Tesla is unreachable (check your connection)")
	} else {
		menu.RenderError(stdout, opts, "Tesla API error")
	}
	return 1
}
