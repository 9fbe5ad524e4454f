package main

import (
	"net/url"

	"github.com/hsm-textlab/workbench/internal/domain"
	"github.com/hsm-textlab/workbench/internal/form"
	"github.com/hsm-textlab/workbench/internal/usecase"
	"github.com/spf13/cobra"
)

func newFilterCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Inspect and edit filters on the backend",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List saved filters",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				items, err := c.filterUC().Available(cmd.Context())
				if err != nil {
					return err
				}
				return printItems(cmd.OutOrStdout(), items)
			},
		},
		&cobra.Command{
			Use:   "show <name>",
			Short: "Print a filter with defaults filled in",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				uc, d, err := c.selectFilter(cmd, args[0])
				if err != nil {
					return err
				}
				if err := uc.LoadCurrent(cmd.Context(), d); err != nil {
					return err
				}
				fields, err := uc.Fields()
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), fields)
			},
		},
		newFilterSaveCmd(c),
		&cobra.Command{
			Use:   "remove <name>",
			Short: "Remove a filter",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				uc, d, err := c.selectFilter(cmd, args[0])
				if err != nil {
					return err
				}
				return uc.RemoveCurrent(cmd.Context(), d)
			},
		},
		&cobra.Command{
			Use:   "preview <name>",
			Short: "Run a filter on a sample and print the stage fragments",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				uc, d, err := c.selectFilter(cmd, args[0])
				if err != nil {
					return err
				}
				preview, err := uc.PreviewSample(cmd.Context(), d)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), preview)
			},
		},
		&cobra.Command{
			Use:   "apply <name>",
			Short: "Apply a filter to all data",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				uc, d, err := c.selectFilter(cmd, args[0])
				if err != nil {
					return err
				}
				return uc.Apply(cmd.Context(), d)
			},
		},
		&cobra.Command{
			Use:   "graph",
			Short: "Print the filter dependency graph",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				graph, err := c.filterUC().Graph(cmd.Context(), c.dialog(cmd, false))
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), graph)
			},
		},
	)

	return cmd
}

func newFilterSaveCmd(c *cli) *cobra.Command {
	var (
		sets  []string
		merge bool
	)

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a filter built from --set values",
		Long: `Builds the filter record from defaults (or from the saved filter with --merge),
applies every --set key=value and sends the whole record.

Example:
  textlab filter save titles --set segment_name=body --set creates_segment=true`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseSets(sets)
			if err != nil {
				return err
			}

			uc, d, err := c.selectFilter(cmd, args[0])
			if err != nil {
				return err
			}
			if merge {
				if err := uc.LoadCurrent(cmd.Context(), d); err != nil {
					return err
				}
			} else if err := uc.New(); err != nil {
				return err
			}

			values.Set(filterNameField, args[0])
			if err := form.Edit(uc.Form(), domain.KindFilter, values); err != nil {
				return err
			}
			return uc.Save(cmd.Context(), d)
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field value as key=value (repeatable)")
	cmd.Flags().BoolVar(&merge, "merge", false, "Start from the saved filter instead of defaults")
	return cmd
}

const filterNameField = "filter_name"

func (c *cli) filterUC() *usecase.FilterUseCase {
	return usecase.NewFilterUC(c.gateway(), c.logger)
}

// selectFilter создает страницу фильтров с именем name в форме.
func (c *cli) selectFilter(cmd *cobra.Command, name string) (*usecase.FilterUseCase, *terminalDialog, error) {
	uc := c.filterUC()
	if err := form.Edit(uc.Form(), domain.KindFilter, url.Values{filterNameField: {name}}); err != nil {
		return nil, nil, err
	}
	return uc, c.dialog(cmd, false), nil
}

func (c *cli) dialog(cmd *cobra.Command, assumeYes bool) *terminalDialog {
	return newTerminalDialog(cmd.OutOrStdout(), cmd.InOrStdin(), assumeYes)
}
