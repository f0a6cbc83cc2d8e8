package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/rmorgan-dev/folio/internal/logger"
	"github.com/rmorgan-dev/folio/internal/service"
	"github.com/rmorgan-dev/folio/models"
)

// App is the interactive journal client. It owns no transport or storage of
// its own: every command delegates to the session or journal service.
type App struct {
	services *service.ClientServices
	logger   *logger.Logger

	in  io.Reader
	out io.Writer
}

func NewApp(services *service.ClientServices, log *logger.Logger) (*App, error) {
	if services == nil {
		return nil, errors.New("no client services provided")
	}

	return &App{
		services: services,
		logger:   log,
		in:       os.Stdin,
		out:      os.Stdout,
	}, nil
}

// Run reconciles any persisted session with the server, then enters the
// command loop. It returns when the user quits, input ends, or the process
// receives a termination signal.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := a.services.Session.Run(ctx); err != nil {
		return fmt.Errorf("session startup: %w", err)
	}
	defer func() {
		if err := a.services.Session.Close(); err != nil {
			a.logger.Error().Err(err).Msg("closing session service")
		}
	}()

	if identity := a.services.Session.Identity(); identity != nil {
		fmt.Fprintf(a.out, "signed in as %s\n", identity.Email)
	} else {
		fmt.Fprintln(a.out, "not signed in; use: signin <email> <password>")
	}

	lines := make(chan string)
	go a.readLines(lines)

	for {
		fmt.Fprint(a.out, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(a.out)
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := a.dispatch(ctx, line, lines); quit {
				return nil
			}
		}
	}
}

func (a *App) readLines(lines chan<- string) {
	defer close(lines)

	scanner := bufio.NewScanner(a.in)
	for scanner.Scan() {
		lines <- scanner.Text()
	}
}

// dispatch executes one command line and reports whether the loop should
// exit. Commands that need more input (new) read it from lines, the single
// reader of standard input.
func (a *App) dispatch(ctx context.Context, line string, lines <-chan string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "help":
		a.printHelp()
	case "signup":
		a.signUp(ctx, args)
	case "signin":
		a.signIn(ctx, args)
	case "signout":
		a.signOut(ctx)
	case "whoami":
		a.whoAmI()
	case "list":
		a.list()
	case "refresh":
		a.refresh(ctx)
	case "new":
		a.newEntry(ctx, strings.Join(args, " "), lines)
	case "show":
		a.showEntry(ctx, args)
	case "rename":
		a.renameEntry(ctx, args)
	case "rm":
		a.removeEntry(ctx, args)
	case "quit", "exit":
		return true
	default:
		fmt.Fprintf(a.out, "unknown command %q; try help\n", cmd)
	}

	return false
}

func (a *App) printHelp() {
	fmt.Fprint(a.out, `commands:
  signup <email> <password> [full name]   create an account (does not sign in)
  signin <email> <password>               sign in
  signout                                 sign out
  whoami                                  show the current identity
  list                                    show the cached journal feed
  refresh                                 refetch the feed from the server
  new <title>                             create an entry (content read on the next line)
  show <id>                               fetch one entry from the server
  rename <id> <title>                     change an entry's title
  rm <id>                                 delete an entry
  quit                                    exit
`)
}

func (a *App) signUp(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "usage: signup <email> <password> [full name]")
		return
	}

	profile := models.Profile{FullName: strings.Join(args[2:], " ")}
	identity, err := a.services.Session.SignUp(ctx, args[0], args[1], profile)
	if err != nil {
		fmt.Fprintf(a.out, "sign-up failed: %v\n", err)
		return
	}

	fmt.Fprintf(a.out, "account created for %s; sign in to continue\n", identity.Email)
}

func (a *App) signIn(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "usage: signin <email> <password>")
		return
	}

	identity, err := a.services.Session.SignIn(ctx, args[0], args[1])
	if err != nil {
		fmt.Fprintf(a.out, "sign-in failed: %v\n", err)
		return
	}

	fmt.Fprintf(a.out, "signed in as %s\n", identity.Email)
}

func (a *App) signOut(ctx context.Context) {
	if err := a.services.Session.SignOut(ctx); err != nil {
		fmt.Fprintf(a.out, "sign-out failed: %v\n", err)
		return
	}

	fmt.Fprintln(a.out, "signed out")
}

func (a *App) whoAmI() {
	identity := a.services.Session.Identity()
	if identity == nil {
		fmt.Fprintln(a.out, "not signed in")
		return
	}

	fmt.Fprintf(a.out, "%s (%s)\n", identity.Email, identity.ID)
}

func (a *App) list() {
	state := a.services.Journal.State()
	if state == models.FeedErrored {
		fmt.Fprintf(a.out, "feed errored: %v (try refresh)\n", a.services.Journal.Err())
		return
	}

	entries := a.services.Journal.Entries()
	if len(entries) == 0 {
		fmt.Fprintf(a.out, "no entries (feed %s)\n", state)
		return
	}

	for _, e := range entries {
		fmt.Fprintf(a.out, "%s  %s  %s\n", e.ID, e.CreatedAt.Format("2006-01-02 15:04"), e.Title)
	}
}

func (a *App) refresh(ctx context.Context) {
	if err := a.services.Journal.FetchAll(ctx); err != nil {
		fmt.Fprintf(a.out, "refresh failed: %v\n", err)
		return
	}

	fmt.Fprintf(a.out, "%d entries\n", len(a.services.Journal.Entries()))
}

func (a *App) newEntry(ctx context.Context, title string, lines <-chan string) {
	if title == "" {
		fmt.Fprintln(a.out, "usage: new <title>")
		return
	}

	fmt.Fprint(a.out, "content: ")
	content, ok := <-lines
	if !ok {
		return
	}

	entry, err := a.services.Journal.CreateEntry(ctx, models.EntryDraft{
		Title:   title,
		Content: content,
	})
	if err != nil {
		fmt.Fprintf(a.out, "create failed: %v\n", err)
		return
	}

	fmt.Fprintf(a.out, "created %s\n", entry.ID)
}

func (a *App) showEntry(ctx context.Context, args []string) {
	id, ok := a.parseEntryID(args)
	if !ok {
		return
	}

	entry, err := a.services.Journal.GetEntry(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "fetch failed: %v\n", err)
		return
	}

	fmt.Fprintf(a.out, "%s\n%s\n", entry.Title, entry.Content)
}

func (a *App) renameEntry(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "usage: rename <id> <title>")
		return
	}

	id, ok := a.parseEntryID(args[:1])
	if !ok {
		return
	}

	title := strings.Join(args[1:], " ")
	entry, err := a.services.Journal.UpdateEntry(ctx, id, models.EntryPatch{Title: &title})
	if err != nil {
		fmt.Fprintf(a.out, "update failed: %v\n", err)
		return
	}

	fmt.Fprintf(a.out, "renamed to %q\n", entry.Title)
}

func (a *App) removeEntry(ctx context.Context, args []string) {
	id, ok := a.parseEntryID(args)
	if !ok {
		return
	}

	if err := a.services.Journal.DeleteEntry(ctx, id); err != nil {
		fmt.Fprintf(a.out, "delete failed: %v\n", err)
		return
	}

	fmt.Fprintln(a.out, "deleted")
}

func (a *App) parseEntryID(args []string) (uuid.UUID, bool) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "expected one entry id")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(args[0])
	if err != nil {
		fmt.Fprintf(a.out, "invalid entry id %q\n", args[0])
		return uuid.Nil, false
	}

	return id, true
}
