// Package commands implements the erpctl command tree.
package commands

import (
	"context"
	"io"
	"os"

	"erp/internal/client"
	"erp/internal/client/api"
	"erp/internal/client/credentials"
	"erp/internal/client/session"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const defaultServerURL = "http://localhost:8000"

// app is shared by every command of one process, including all lines of a shell.
type app struct {
	out    io.Writer
	prompt Prompter

	store *credentials.Store
	file  *credentials.File
	svc   *client.Service

	serverFlag string
	output     string
	inShell    bool
}

// Execute runs erpctl with os.Args.
func Execute() error {
	a := &app{out: os.Stdout, prompt: newTerminalPrompter()}

	return a.execute(context.Background(), a.newRootCmd())
}

// execute runs one command line and saves the session even when the command
// failed, since a timeout or a rejected token clears it.
func (a *app) execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if perr := a.persist(); perr != nil && err == nil {
		err = perr
	}

	return err
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "erpctl",
		Short:         "Manage your erp inventory from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ParseFormat(a.output); err != nil {
				return err
			}

			return a.setup()
		},
	}

	root.PersistentFlags().StringVar(&a.serverFlag, "server", "", "Server URL (default "+defaultServerURL+", remembered after login)")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "table", "Output format: table or json")

	root.AddCommand(
		a.newLoginCmd(),
		a.newLogoutCmd(),
		a.newRegisterCmd(),
		a.newMeCmd(),
		a.newItemsCmd(),
		a.newStatusCmd(),
	)
	if !a.inShell {
		root.AddCommand(a.newShellCmd())
	}

	return root
}

// setup loads the credentials file and builds the service once per process.
func (a *app) setup() error {
	if a.svc != nil {
		if a.serverFlag != "" && a.serverFlag != a.svc.BaseURL() {
			return errors.New("--server cannot change inside a shell; log out and restart erpctl")
		}

		return nil
	}

	if a.store == nil {
		store, err := credentials.NewStore()
		if err != nil {
			return err
		}
		a.store = store
	}

	file, err := a.store.Load()
	if err != nil {
		return err
	}
	a.file = file

	serverURL := a.serverFlag
	if serverURL == "" {
		serverURL = file.ServerURL
	}
	if serverURL == "" {
		serverURL = defaultServerURL
	}
	if file.ServerURL != "" && serverURL != file.ServerURL {
		// A session belongs to the server that issued it.
		file.Session = nil
	}
	file.ServerURL = serverURL

	cache := session.New()
	if file.Session != nil {
		cache.Restore(*file.Session)
	}
	a.svc = client.NewService(api.New(serverURL), cache)

	return nil
}

// persist writes the session back, so the idle clock carries across invocations.
func (a *app) persist() error {
	if a.svc == nil || a.store == nil || a.file == nil {
		return nil
	}

	a.file.Session = nil
	if snapshot, ok := a.svc.Session().Snapshot(); ok {
		a.file.Session = &snapshot
	}

	return a.store.Save(a.file)
}

func (a *app) ctx(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

func (a *app) format() Format {
	format, err := ParseFormat(a.output)
	if err != nil {
		return FormatTable
	}

	return format
}

func (a *app) printer() *printer {
	return &printer{out: a.out, format: a.format()}
}
