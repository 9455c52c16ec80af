package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"erp/internal/client/api"
	"erp/internal/util"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format is an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat parses the --output flag.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table", "":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", errors.Errorf("invalid output format: %q (valid: table, json, yaml)", s)
	}
}

// tableRenderer is implemented by values that can print as a table.
type tableRenderer interface {
	Headers() []string
	Rows() [][]string
}

type printer struct {
	out    io.Writer
	format Format
}

func (p *printer) print(data any) error {
	switch p.format {
	case FormatJSON:
		encoder := json.NewEncoder(p.out)
		encoder.SetIndent("", "  ")

		return errors.WithStack(encoder.Encode(data))
	case FormatYAML:
		encoder := yaml.NewEncoder(p.out)
		encoder.SetIndent(2)
		defer func() { _ = encoder.Close() }()

		return errors.WithStack(encoder.Encode(data))
	default:
		if renderer, ok := data.(tableRenderer); ok {
			printTable(p.out, renderer.Headers(), renderer.Rows())

			return nil
		}

		return errors.Errorf("cannot render %T as a table", data)
	}
}

func (p *printer) println(args ...any) {
	_, _ = fmt.Fprintln(p.out, args...)
}

func (p *printer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func printTable(w io.Writer, headers []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	table.AppendBulk(rows)
	table.Render()
}

type itemList []api.Item

func (l itemList) Headers() []string {
	return []string{"ID", "Name", "Quantity", "Price", "Description"}
}

func (l itemList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, item := range l {
		rows = append(rows, []string{
			item.ID,
			item.Name,
			fmt.Sprint(item.Quantity),
			util.FormatPrice(item.Price),
			util.OrDash(item.Description),
		})
	}

	return rows
}

type itemDetail api.Item

func (d itemDetail) Headers() []string {
	return []string{"Field", "Value"}
}

func (d itemDetail) Rows() [][]string {
	updated := "-"
	if d.DateUpdated != nil {
		updated = d.DateUpdated.Local().Format("2006-01-02 15:04:05")
	}

	return [][]string{
		{"ID", d.ID},
		{"Name", d.Name},
		{"Description", util.OrDash(d.Description)},
		{"Quantity", fmt.Sprint(d.Quantity)},
		{"Price", util.FormatPrice(d.Price)},
		{"Created", d.DateCreated.Local().Format("2006-01-02 15:04:05")},
		{"Updated", updated},
	}
}

type userDetail api.User

func (d userDetail) Headers() []string {
	return []string{"Field", "Value"}
}

func (d userDetail) Rows() [][]string {
	return [][]string{
		{"ID", d.ID},
		{"Username", d.Username},
		{"Email", util.OrDash(d.Email)},
		{"Active", fmt.Sprint(d.IsActive)},
		{"Joined", d.DateJoined.Local().Format("2006-01-02 15:04:05")},
	}
}

type statusReport struct {
	Server    string `json:"server" yaml:"server"`
	State     string `json:"state" yaml:"state"`
	Username  string `json:"username,omitempty" yaml:"username,omitempty"`
	IdleLeft  string `json:"idle_left,omitempty" yaml:"idle_left,omitempty"`
	Health    string `json:"health" yaml:"health"`
	Database  string `json:"database,omitempty" yaml:"database,omitempty"`
	HealthErr string `json:"health_error,omitempty" yaml:"health_error,omitempty"`
}

func (s statusReport) Headers() []string {
	return []string{"Field", "Value"}
}

func (s statusReport) Rows() [][]string {
	rows := [][]string{
		{"Server", s.Server},
		{"Session", s.State},
	}
	if s.Username != "" {
		rows = append(rows, []string{"User", s.Username}, []string{"Idle timeout in", s.IdleLeft})
	}
	rows = append(rows, []string{"Health", s.Health})
	if s.Database != "" {
		rows = append(rows, []string{"Database", s.Database})
	}
	if s.HealthErr != "" {
		rows = append(rows, []string{"Health error", s.HealthErr})
	}

	return rows
}
