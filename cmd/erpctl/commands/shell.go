package commands

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func (a *app) newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run erpctl commands interactively",
		Long: `Start an interactive shell. Each line is an erpctl command without the
"erpctl" prefix, e.g. "items add --name bolt --price 0.1". Type "exit" to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(cmd)
		},
	}
}

func (a *app) runShell(parent *cobra.Command) error {
	a.inShell = true
	defer func() { a.inShell = false }()

	p := a.printer()
	p.println(`erpctl shell, type "help" for commands or "exit" to leave`)

	for {
		line, err := a.prompt.Line(a.shellPrompt())
		if err != nil {
			if errors.Is(err, ErrAborted) {
				return nil
			}

			return err
		}

		args, err := splitArgs(line)
		if err != nil {
			p.printf("Error: %v\n", err)

			continue
		}
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			return nil
		}

		root := a.newRootCmd()
		root.SetArgs(args)
		root.SetOut(a.out)
		root.SetErr(a.out)
		if err := a.execute(a.ctx(parent), root); err != nil {
			p.printf("Error: %v\n", err)
		}
	}
}

func (a *app) shellPrompt() string {
	if principal, ok := a.svc.Session().Profile(); ok {
		return fmt.Sprintf("erp (%s)", principal.Username)
	}

	return "erp"
}

// splitArgs splits a shell line on whitespace, honouring single and double
// quotes and backslash escapes outside single quotes.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		inArg   bool
		quote   rune
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inArg = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}

	if quote != 0 {
		return nil, errors.Errorf("unterminated %c quote", quote)
	}
	if escaped {
		return nil, errors.New("trailing backslash")
	}
	if inArg {
		args = append(args, current.String())
	}

	return args, nil
}
