package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/hsm-textlab/workbench/internal/domain"
	"github.com/hsm-textlab/workbench/internal/form"
	"github.com/hsm-textlab/workbench/internal/labels"
	"github.com/hsm-textlab/workbench/internal/usecase"
	"github.com/spf13/cobra"
)

const clustererNameField = "clusterer_name"

// previewFlags - параметры выборки для графика кластеризатора.
type previewFlags struct {
	n      int
	method string
}

func (p *previewFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&p.n, "sample-size", "n", 0, "Preview sample size (default from config)")
	cmd.Flags().StringVarP(&p.method, "method", "m", "", "Dimensionality reduction method (default from config)")
}

func (p *previewFlags) values() url.Values {
	values := url.Values{}
	if p.n != 0 {
		values.Set(form.PreviewSampleSize, strconv.Itoa(p.n))
	}
	if p.method != "" {
		values.Set(form.DimensionalityReduction, p.method)
	}
	return values
}

func newClustererCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clusterer",
		Short: "Inspect clusterers, plot samples and manage labels",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list [pattern]",
			Short: "List clusterers, * matches any substring",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				pattern := ""
				if len(args) == 1 {
					pattern = args[0]
				}
				items, err := c.clustererUC().List(cmd.Context(), pattern)
				if err != nil {
					return err
				}
				return printItems(cmd.OutOrStdout(), items)
			},
		},
		&cobra.Command{
			Use:   "show <name>",
			Short: "Print a clusterer with defaults filled in",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				uc, d, err := c.selectClusterer(cmd, args[0], nil)
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
		newClustererSaveCmd(c),
		newClustererUpdateCmd(c),
		newClustererPlotCmd(c),
		newClustererLabelCmd(c),
		newSaveLabelsCmd(c),
		newClearLabelsCmd(c),
		newExamplesCmd(c),
	)

	return cmd
}

func newClustererSaveCmd(c *cli) *cobra.Command {
	var (
		sets  []string
		merge bool
	)

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a clusterer built from --set values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseSets(sets)
			if err != nil {
				return err
			}

			uc, d, err := c.selectClusterer(cmd, args[0], nil)
			if err != nil {
				return err
			}
			if merge {
				if err := uc.LoadCurrent(cmd.Context(), d); err != nil {
					return err
				}
			}

			values.Set(clustererNameField, args[0])
			if err := form.Edit(uc.Form(), domain.KindClusterer, values); err != nil {
				return err
			}
			return uc.Save(cmd.Context(), d)
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field value as key=value (repeatable)")
	cmd.Flags().BoolVar(&merge, "merge", false, "Start from the saved clusterer instead of defaults")
	return cmd
}

func newClustererUpdateCmd(c *cli) *cobra.Command {
	var preview previewFlags

	cmd := &cobra.Command{
		Use:   "update <name>",
		Short: "Project a document sample and print the plot points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := c.updatedClusterer(cmd, args[0], &preview)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), uc.Markers())
		},
	}

	preview.register(cmd)
	return cmd
}

func newClustererPlotCmd(c *cli) *cobra.Command {
	var (
		preview     previewFlags
		hideUnknown bool
		output      string
	)

	cmd := &cobra.Command{
		Use:   "plot <name>",
		Short: "Project a document sample and render it as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := c.updatedClusterer(cmd, args[0], &preview)
			if err != nil {
				return err
			}
			if hideUnknown {
				uc.HideUnknown(cmd.Context())
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return uc.RenderPlot(w)
		},
	}

	preview.register(cmd)
	cmd.Flags().BoolVar(&hideUnknown, "hide-unknown", false, "Hide points labelled unknown")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "SVG file, - for stdout")
	return cmd
}

func newClustererLabelCmd(c *cli) *cobra.Command {
	var (
		preview     previewFlags
		points      []string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "label <name>",
		Short: "Relabel plot points and save the labels",
		Long: `Projects a sample, assigns labels and saves every labelled point.
Labels come from --point idx=label or, with --interactive, from a prompt for each
unknown point (empty input keeps the label, end of input stops).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assign, err := parseSets(points)
			if err != nil {
				return err
			}

			uc, err := c.updatedClusterer(cmd, args[0], &preview)
			if err != nil {
				return err
			}

			for key := range assign {
				idx, err := strconv.Atoi(key)
				if err != nil {
					return fmt.Errorf("invalid point index %q", key)
				}
				if err := uc.Relabel(cmd.Context(), idx, assign.Get(key)); err != nil {
					return err
				}
			}

			d := c.dialog(cmd, false)
			if interactive {
				if err := promptUnknown(cmd, uc, d); err != nil {
					return err
				}
			}
			return uc.SaveLabels(cmd.Context(), d)
		},
	}

	preview.register(cmd)
	cmd.Flags().StringArrayVar(&points, "point", nil, "Point label as idx=label (repeatable)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Prompt for every unknown point")
	return cmd
}

// promptUnknown спрашивает метку для каждой неразмеченной точки, пока не закончится ввод.
func promptUnknown(cmd *cobra.Command, uc *usecase.ClustererUseCase, d *terminalDialog) error {
	for _, m := range uc.Markers() {
		if !m.Point.IsUnknown() {
			continue
		}
		changed, err := uc.ClickPoint(cmd.Context(), m.Point.Idx, d)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
	}
	return nil
}

func newSaveLabelsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "save-labels <name> <labels.json>",
		Short: "Send a document to label map from a JSON file (- for stdin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[1] != "-" {
				f, err := os.Open(args[1])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			labelMap := domain.LabelMap{}
			if err := json.NewDecoder(r).Decode(&labelMap); err != nil {
				return fmt.Errorf("read labels: %w", err)
			}
			for doc, label := range labelMap {
				if label == domain.UnknownLabel {
					delete(labelMap, doc)
				}
			}

			encoded, err := labels.Encode(labelMap)
			if err != nil {
				return err
			}
			if err := c.gateway().SaveLabels(cmd.Context(), args[0], encoded); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), usecase.MsgSaved)
			return nil
		},
	}
}

func newClearLabelsCmd(c *cli) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear-labels <name>",
		Short: "Remove all labels of a clusterer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, _, err := c.selectClusterer(cmd, args[0], nil)
			if err != nil {
				return err
			}
			_, err = uc.ClearLabels(cmd.Context(), c.dialog(cmd, yes))
			return err
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newExamplesCmd(c *cli) *cobra.Command {
	var (
		preview previewFlags
		fetch   bool
	)

	cmd := &cobra.Command{
		Use:   "examples <name>",
		Short: "Print the examples page URL, or the page itself with --fetch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, _, err := c.selectClusterer(cmd, args[0], preview.values())
			if err != nil {
				return err
			}
			if fetch {
				page, err := uc.ViewExamples(cmd.Context())
				if err != nil {
					return err
				}
				_, err = io.WriteString(cmd.OutOrStdout(), page)
				return err
			}

			u, err := uc.ExamplesURL()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), u)
			return nil
		},
	}

	preview.register(cmd)
	cmd.Flags().BoolVar(&fetch, "fetch", false, "Download the page instead of printing its URL")
	return cmd
}

func (c *cli) clustererUC() *usecase.ClustererUseCase {
	return usecase.NewClustererUC(
		c.gateway(),
		usecase.NopPlotCache{},
		usecase.NopLabelJournal{},
		usecase.NopPlotExporter{},
		usecase.NopEventPublisher{},
		c.logger,
		c.cfg.Backend.DefaultSampleSize,
		c.cfg.Backend.DefaultMethod,
	)
}

// selectClusterer создает страницу кластеризатора с именем name и дополнительными полями extra в форме.
func (c *cli) selectClusterer(cmd *cobra.Command, name string, extra url.Values) (*usecase.ClustererUseCase, *terminalDialog, error) {
	values := url.Values{clustererNameField: {name}}
	for key, v := range extra {
		values[key] = v
	}

	uc := c.clustererUC()
	if err := form.Edit(uc.Form(), domain.KindClusterer, values); err != nil {
		return nil, nil, err
	}
	return uc, c.dialog(cmd, false), nil
}

func (c *cli) updatedClusterer(cmd *cobra.Command, name string, preview *previewFlags) (*usecase.ClustererUseCase, error) {
	uc, _, err := c.selectClusterer(cmd, name, preview.values())
	if err != nil {
		return nil, err
	}
	// "Updated!" уходит в stderr, чтобы не смешиваться с JSON и SVG в stdout.
	status := newTerminalDialog(cmd.ErrOrStderr(), strings.NewReader(""), false)
	if err := uc.UpdatePreview(cmd.Context(), status); err != nil {
		return nil, err
	}
	return uc, nil
}
