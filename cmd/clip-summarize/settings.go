package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"clip-summarize/internal/domain/entity"
	"clip-summarize/internal/i18n"
)

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the stored settings",
	}
	cmd.AddCommand(newSettingsShowCmd(a), newSettingsSetCmd(a), newSettingsPathCmd(a))
	return cmd
}

func newSettingsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.settings.Load(cmd.Context())
			if err != nil {
				return err
			}

			msgs := i18n.T(s.Language)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, key := range entity.SettingKeys {
				value, err := s.Get(key)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", settingLabel(msgs, key), key, value)
			}
			return tw.Flush()
		},
	}
}

func newSettingsSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Long: fmt.Sprintf(`Change one setting and save it.

Keys: %v`, entity.SettingKeys),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// environment fallbacks must not be persisted
			s, err := a.settings.LoadStored(ctx)
			if err != nil {
				return err
			}
			if err := s.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := a.settings.Save(ctx, s); err != nil {
				return err
			}

			value, err := s.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], value)
			return nil
		},
	}
}

func newSettingsPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), a.settings.Path())
		},
	}
}

// settingLabel returns the localized display name of a settings key.
func settingLabel(msgs *i18n.Messages, key string) string {
	switch key {
	case "api_key":
		return msgs.Settings.APIKeyName
	case "model":
		return msgs.Settings.ModelName
	case "auto_summarize":
		return msgs.Settings.AutoSummarizeName
	case "watch_folder":
		return msgs.Settings.WatchFolderName
	case "summary_position":
		return msgs.Settings.SummaryPositionName
	case "summary_length":
		return msgs.Settings.SummaryLengthName
	case "language":
		return msgs.Settings.LanguageName
	case "provider":
		return msgs.Settings.ProviderName
	default:
		return key
	}
}
