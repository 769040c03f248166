package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"shellmenu/internal/app"
)

type planOptions struct {
	Format string
}

func newPlanCommand() *cobra.Command {
	opts := planOptions{}
	cmd := &cobra.Command{
		Use:   "plan PATH...",
		Short: "Show how a selection would be partitioned without opening a menu",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd.Context(), cmd, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.Format, "format", "yaml", "Output format (yaml|text)")
	_ = viper.BindPFlag("plan.format", cmd.Flags().Lookup("format"))
	return cmd
}

func runPlan(ctx context.Context, cmd *cobra.Command, opts planOptions, paths []string) error {
	format := strings.ToLower(strings.TrimSpace(resolveString(cmd, opts.Format, "plan.format", "format")))
	if format == "" {
		format = "yaml"
	}
	if format != "yaml" && format != "text" {
		return invalidOption("format must be yaml or text")
	}

	service := newAppService()
	result, err := service.Plan(ctx, app.PlanRequest{Paths: paths})
	if err != nil {
		return err
	}
	if format == "text" {
		return writePlanText(cmd.OutOrStdout(), result)
	}
	return writePlanYAML(cmd.OutOrStdout(), result)
}

func writePlanYAML(out io.Writer, result app.PlanResult) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(result); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode plan").
			WithCause(err)
	}
	return encoder.Close()
}

func writePlanText(out io.Writer, result app.PlanResult) error {
	fmt.Fprintf(out, "strategy: %s\n", result.Strategy)
	fmt.Fprintf(out, "working directory: %s\n", result.WorkingDirectory)
	fmt.Fprintf(out, "intercept open: %t\n", result.InterceptOpen)
	fmt.Fprintf(out, "force extended verbs: %t\n", result.ForceExtendedVerbs)
	fmt.Fprintln(out, "parents:")
	for _, parent := range result.Parents {
		fmt.Fprintf(out, "- %s\n", parent)
	}
	fmt.Fprintln(out, "entries:")
	for _, entry := range result.Entries {
		kind := "file"
		if entry.IsDir {
			kind = "dir"
		}
		fmt.Fprintf(out, "- %s (%s)\n", entry.Path, kind)
	}
	return nil
}
