package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"shellmenu/internal/app"
	"shellmenu/internal/types"
)

type showOptions struct {
	X             int
	Y             int
	CommandFirst  int
	CommandLast   int
	Explore       bool
	ExtendedVerbs string
	NoAsync       bool
	NoUI          bool
}

func newShowCommand() *cobra.Command {
	defaults := types.DefaultMenuOptions()
	opts := showOptions{}
	cmd := &cobra.Command{
		Use:   "show PATH...",
		Short: "Show the context menu for the given paths and run the picked command",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.Context(), cmd, opts, args)
		},
	}
	cmd.Flags().IntVar(&opts.X, "x", 0, "Screen x coordinate (cursor when --x and --y are omitted)")
	cmd.Flags().IntVar(&opts.Y, "y", 0, "Screen y coordinate (cursor when --x and --y are omitted)")
	cmd.Flags().IntVar(&opts.CommandFirst, "command-first", int(defaults.CommandFirst), "First command id reserved for the menu")
	cmd.Flags().IntVar(&opts.CommandLast, "command-last", int(defaults.CommandLast), "Last command id reserved for the menu")
	cmd.Flags().BoolVar(&opts.Explore, "explore", defaults.Explore, "Request the Explorer tree-view variant of the menu")
	cmd.Flags().StringVar(&opts.ExtendedVerbs, "extended-verbs", string(defaults.ExtendedVerbs), "Extended verbs: auto (shift key), always, never")
	cmd.Flags().BoolVar(&opts.NoAsync, "no-async", defaults.NoAsync, "Wait for the invoked command to finish")
	cmd.Flags().BoolVar(&opts.NoUI, "no-ui", defaults.NoUI, "Suppress error dialogs from the invoked command")

	_ = viper.BindPFlag("menu.command_first", cmd.Flags().Lookup("command-first"))
	_ = viper.BindPFlag("menu.command_last", cmd.Flags().Lookup("command-last"))
	_ = viper.BindPFlag("menu.explore", cmd.Flags().Lookup("explore"))
	_ = viper.BindPFlag("menu.extended_verbs", cmd.Flags().Lookup("extended-verbs"))
	_ = viper.BindPFlag("invoke.no_async", cmd.Flags().Lookup("no-async"))
	_ = viper.BindPFlag("invoke.no_ui", cmd.Flags().Lookup("no-ui"))
	return cmd
}

func runShow(ctx context.Context, cmd *cobra.Command, opts showOptions, paths []string) error {
	options, err := menuOptions(cmd, opts)
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.Show(ctx, app.ShowRequest{
		Paths:    paths,
		X:        int32(opts.X),
		Y:        int32(opts.Y),
		AtCursor: !flagChanged(cmd, "x") && !flagChanged(cmd, "y"),
		Options:  options,
	})
	if err != nil {
		return err
	}
	if !result.Shown {
		fmt.Fprintln(cmd.OutOrStdout(), "context menu not shown")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "context menu shown: %s, %d entries\n", result.Strategy, result.Entries)
	return nil
}

func menuOptions(cmd *cobra.Command, opts showOptions) (types.MenuOptions, error) {
	options := types.DefaultMenuOptions()
	first := resolveInt(cmd, opts.CommandFirst, "menu.command_first", "command-first")
	last := resolveInt(cmd, opts.CommandLast, "menu.command_last", "command-last")
	if first < 0 || last < 0 {
		return types.MenuOptions{}, invalidOption("command ids must not be negative")
	}
	options.CommandFirst = uint32(first)
	options.CommandLast = uint32(last)
	options.Explore = resolveBool(cmd, opts.Explore, "menu.explore", "explore")
	options.NoAsync = resolveBool(cmd, opts.NoAsync, "invoke.no_async", "no-async")
	options.NoUI = resolveBool(cmd, opts.NoUI, "invoke.no_ui", "no-ui")

	mode, ok := types.ParseExtendedVerbsMode(resolveString(cmd, opts.ExtendedVerbs, "menu.extended_verbs", "extended-verbs"))
	if !ok {
		return types.MenuOptions{}, invalidOption("extended verbs must be one of auto, always, never")
	}
	options.ExtendedVerbs = mode
	return options, nil
}
