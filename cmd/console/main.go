// Command console is a terminal front end for the console core: it
// establishes a session (prompting for credentials when the stored token is
// missing or expired) and renders the first page of the user list through a
// list controller. It doubles as a smoke test of the core against a live
// backend.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/common-nighthawk/go-figure"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/jrsteele09/go-console-core/client"
	"github.com/jrsteele09/go-console-core/internal/config"
	"github.com/jrsteele09/go-console-core/listing"
	"github.com/jrsteele09/go-console-core/session"
	"github.com/jrsteele09/go-console-core/session/storefile"
	"github.com/jrsteele09/go-console-core/users"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("console exited")
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			debug.PrintStack()
			returnError = errors.Errorf("panic recovered: %v", r)
		}
	}()

	cfg := config.New()
	displayAppname(cfg.GetAppName())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sess := session.New(storefile.New(cfg.GetDataFolder()))

	if sess.IsTokenExpired() {
		if err := loginPrompt(ctx, cfg, sess); err != nil {
			return err
		}
	}

	user := sess.CurrentUser()
	log.Info().Str("user", user.Name).Strs("roles", user.Roles).Msg("session established")

	if !sess.HasPermission("users:read") {
		return errors.New("current user lacks the users:read permission")
	}

	return listUsers(ctx, client.New(cfg, sess))
}

func loginPrompt(ctx context.Context, cfg config.Config, sess *session.Context) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Phone: ")
	phone, err := reader.ReadString('\n')
	if err != nil {
		return errors.Wrap(err, "[loginPrompt] reading phone")
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return errors.Wrap(err, "[loginPrompt] reading password")
	}

	return client.Login(ctx, cfg, sess, strings.TrimSpace(phone), string(password))
}

func listUsers(ctx context.Context, api *client.Client) error {
	changed := make(chan struct{}, 1)
	collection := users.NewCollection(api, 20, listing.WithOnChange[users.User](func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}))

	collection.Controller.Load(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changed:
			state := collection.Controller.State()
			if state.IsLoading {
				continue
			}
			if state.Err != nil {
				return errors.Errorf("listing users: %s (%s)", state.Err.Message, state.Err.Kind)
			}
			printUsers(state.Items)
			return nil
		}
	}
}

func printUsers(page listing.Page[users.User]) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPHONE\tKYC\tROLES")
	for _, u := range page.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Phone, u.KYCStatus, strings.Join(u.Roles, ","))
	}
	w.Flush()
	fmt.Printf("\npage %d of %d (%d users)\n", page.Page+1, max(page.TotalPages, 1), page.TotalCount)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
