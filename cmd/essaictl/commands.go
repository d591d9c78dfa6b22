package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"essaipanel/internal/app"
	"essaipanel/internal/app/browser"
	"essaipanel/internal/domain"
	"essaipanel/internal/ui"
)

type listOptions struct {
	search       string
	manufacturer string
	family       string
	class        string
}

type listPayload struct {
	Source  string            `json:"source"`
	Outcome string            `json:"outcome"`
	Total   int               `json:"total"`
	Shown   int               `json:"shown"`
	Tools   []domain.ToolItem `json:"tools"`
}

func newListCmd(opts *cliOptions) *cobra.Command {
	var listOpts listOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tools, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			criteria, err := listOpts.criteria()
			if err != nil {
				return err
			}
			return withSnapshot(cmd, opts, func(application *app.Application, result domain.LoadResult) error {
				reportLoadFailure(cmd, result)
				snapshot := application.State().Snapshot()
				visible := criteria.Filter(snapshot.Items)
				tools := make([]domain.ToolItem, 0, len(visible))
				for _, index := range visible {
					tools = append(tools, snapshot.Items[index])
				}

				if opts.format != formatText {
					return writeStructured(cmd.OutOrStdout(), opts.format, listPayload{
						Source:  string(result.Source.Kind),
						Outcome: string(result.Outcome),
						Total:   len(snapshot.Items),
						Shown:   len(tools),
						Tools:   tools,
					})
				}
				rows := make([][]string, 0, len(tools))
				for _, tool := range tools {
					rows = append(rows, []string{tool.Name, tool.EssaiPart, tool.Manufacturer, tool.HolderName, tool.Diameter})
				}
				return writeTable(cmd.OutOrStdout(), []string{"Tool", "Essai Part #", "Manufacturer", "Holder", "Diameter"}, rows)
			})
		},
	}
	cmd.Flags().StringVar(&listOpts.search, "search", "", "case-insensitive substring of the tool name")
	cmd.Flags().StringVar(&listOpts.manufacturer, "manufacturer", "", "exact manufacturer name")
	cmd.Flags().StringVar(&listOpts.family, "family", "", "essai part number of a tool family")
	cmd.Flags().StringVar(&listOpts.class, "class", "", "tool class as part,holder")
	return cmd
}

func (o listOptions) criteria() (domain.Criteria, error) {
	criteria := domain.Criteria{
		Manufacturer: strings.TrimSpace(o.manufacturer),
		Search:       o.search,
	}
	family := strings.TrimSpace(o.family)
	if family != "" && o.class != "" {
		return domain.Criteria{}, fmt.Errorf("%w: --family and --class are mutually exclusive", domain.ErrInvalidFilter)
	}
	if family != "" {
		filter := domain.FamilyFilter(family)
		criteria.Tool = &filter
	}
	if o.class != "" {
		filter, err := domain.ParseClassFilter(o.class)
		if err != nil {
			return domain.Criteria{}, err
		}
		criteria.Tool = &filter
	}
	return criteria, nil
}

type showSections struct {
	Solfex   *domain.Section `json:"Solfex,omitempty"`
	Milling  *domain.Section `json:"milling_tool,omitempty"`
	Drilling *domain.Section `json:"drilling_tool,omitempty"`
}

type showPayload struct {
	domain.ToolItem
	Sections showSections `json:"sections"`
}

func newShowCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <tool-name>",
		Short: "Show the details and schema tables of one tool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSnapshot(cmd, opts, func(application *app.Application, result domain.LoadResult) error {
				reportLoadFailure(cmd, result)
				snapshot := application.State().Snapshot()
				index, ok := snapshot.Find(args[0])
				if !ok {
					return exitWithMessage(1, ui.NewError(ui.ErrCodeToolNotFound, fmt.Sprintf("tool %q not found", args[0])).Error())
				}
				item, _ := snapshot.Item(index)

				if opts.format != formatText {
					return writeStructured(cmd.OutOrStdout(), opts.format, showPayload{
						ToolItem: item,
						Sections: showSections{Solfex: item.Solfex, Milling: item.Milling, Drilling: item.Drilling},
					})
				}

				var lines []string
				for _, group := range browser.DetailGroups(item) {
					lines = append(lines, group.Title)
					for _, row := range group.Rows {
						lines = append(lines, fmt.Sprintf("  %s: %s", row.Label, row.Value))
					}
				}
				if err := writeLines(cmd.OutOrStdout(), lines); err != nil {
					return err
				}
				for _, schema := range domain.AllSchemas() {
					rows := browser.SchemaTable(snapshot.Keys.For(schema), item.Section(schema))
					if len(rows) == 0 {
						continue
					}
					table := make([][]string, 0, len(rows))
					for _, row := range rows {
						table = append(table, []string{row.Key, row.Value})
					}
					if err := writeLines(cmd.OutOrStdout(), []string{"", schema.String()}); err != nil {
						return err
					}
					if err := writeTable(cmd.OutOrStdout(), []string{"Key", "Value"}, table); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

type keysPayload struct {
	Schema string   `json:"schema"`
	Keys   []string `json:"keys"`
}

func newKeysCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "keys <solfex|milling|drilling>",
		Short: "List the attribute keys seen across all tools for a schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := domain.ParseSchema(args[0])
			if err != nil {
				return err
			}
			return withSnapshot(cmd, opts, func(application *app.Application, result domain.LoadResult) error {
				reportLoadFailure(cmd, result)
				keys := application.State().Snapshot().Keys.For(schema)
				if keys == nil {
					keys = []string{}
				}
				if opts.format != formatText {
					return writeStructured(cmd.OutOrStdout(), opts.format, keysPayload{Schema: schema.String(), Keys: keys})
				}
				return writeLines(cmd.OutOrStdout(), keys)
			})
		},
	}
}

type manufacturersPayload struct {
	Manufacturers []string `json:"manufacturers"`
}

func newManufacturersCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "manufacturers",
		Short: "List the distinct manufacturers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSnapshot(cmd, opts, func(application *app.Application, result domain.LoadResult) error {
				reportLoadFailure(cmd, result)
				names := application.State().Snapshot().Manufacturers
				if names == nil {
					names = []string{}
				}
				if opts.format != formatText {
					return writeStructured(cmd.OutOrStdout(), opts.format, manufacturersPayload{Manufacturers: names})
				}
				return writeLines(cmd.OutOrStdout(), names)
			})
		},
	}
}

type validatePayload struct {
	Source      string `json:"source"`
	Location    string `json:"location"`
	Outcome     string `json:"outcome"`
	Records     int    `json:"records"`
	Fingerprint string `json:"fingerprint"`
	DurationMs  int64  `json:"durationMs"`
}

func newValidateCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the tool database and report whether it parsed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSnapshot(cmd, opts, func(application *app.Application, result domain.LoadResult) error {
				if result.IsEmpty() {
					mapped := ui.MapLoadError(result.Reason)
					return exitWithMessage(2, fmt.Sprintf("invalid tool database: %s", mapped.Error()))
				}
				snapshot := application.State().Snapshot()
				if opts.format != formatText {
					return writeStructured(cmd.OutOrStdout(), opts.format, validatePayload{
						Source:      string(result.Source.Kind),
						Location:    result.Source.Location,
						Outcome:     string(result.Outcome),
						Records:     len(snapshot.Items),
						Fingerprint: snapshot.Fingerprint,
						DurationMs:  result.Duration.Milliseconds(),
					})
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "ok: %d tools from %s database (%s)\n",
					len(snapshot.Items), result.Source.Kind.Label(), result.Source.Location)
				return err
			})
		},
	}
}

// reportLoadFailure keeps query commands fail-soft: the output is empty and
// the reason goes to stderr.
func reportLoadFailure(cmd *cobra.Command, result domain.LoadResult) {
	if !result.IsEmpty() {
		return
	}
	mapped := ui.MapLoadError(result.Reason)
	fmt.Fprintf(cmd.ErrOrStderr(), "load failed: %s\n", mapped.Error())
}
