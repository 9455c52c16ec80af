package commands

import (
	"erp/internal/client/session"
	"erp/internal/util"

	"github.com/spf13/cobra"
)

func (a *app) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session state and server health",
		Long: `Show whether a session is active, how long until it times out, and the
server's health. Running status does not count as activity.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache := a.svc.Session()
			report := statusReport{
				Server: a.svc.BaseURL(),
				State:  cache.State().String(),
			}
			if principal, ok := cache.Profile(); ok {
				report.Username = principal.Username
				report.IdleLeft = util.FormatDuration(cache.Remaining())
			}
			if report.State == session.StateExpired.String() {
				report.State += " (log in again)"
			}

			health, err := a.svc.Health(a.ctx(cmd))
			if err != nil {
				report.Health = "unreachable"
				report.HealthErr = err.Error()
			} else {
				report.Health = health.Status
				report.Database = health.Database
				report.HealthErr = health.Error
			}

			return a.printer().print(report)
		},
	}
}
