// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"codeberg.org/locstore/locstore/bundle"
	"codeberg.org/locstore/locstore/config"
	"codeberg.org/locstore/locstore/i18n"
	"codeberg.org/locstore/locstore/resource"
)

var (
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	extraStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// errStoresDiffer is returned by the diff command when the stores hold different keys.
var errStoresDiffer = errors.New("stores differ")

// newRootCmd builds the command tree. Every subcommand loads the configuration first.
func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "locstore",
		Short: "Inspect and convert translation stores",
		Long: `locstore works on translation store files: record streams holding a
locale, scalar translations, string lists and template patterns.

The record format follows the file extension:
  .yaml .yml   YAML mapping
  .po          gettext catalogue
  .toml        TOML array of records
  .tsv         tab separated values
  .db .sqlite  SQLite database
A trailing .zst compresses any format but SQLite.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Global.LoadConfig(cfgFile); err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			i18n.SetupLogger()
			bundle.SetupLogger()

			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "",
		"path to a locstore configuration file in YAML format (default: ./locstore.yaml)")

	root.AddCommand(
		newDumpCmd(),
		newConvertCmd(),
		newDiffCmd(),
		newLocalesCmd(),
		newNewCmd(),
		newVersionCmd(),
	)

	return root
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the records of a store file",
		Long: `Prints every record of a store file as key<TAB>value, one per line.
Line breaks and tabs inside values are shown escaped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := resource.Open(args[0])
			if err != nil {
				return err
			}
			defer r.Close()

			records, err := resource.ReadAll(r)
			if err != nil {
				return err
			}

			replacer := strings.NewReplacer("\\", `\\`, "\t", `\t`, "\n", `\n`)
			out := cmd.OutOrStdout()

			for _, rec := range records {
				fmt.Fprintf(out, "%s\t%s\n", replacer.Replace(rec.Key), replacer.Replace(rec.Value))
			}

			return nil
		},
	}
}

func newConvertCmd() *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Rewrite a store file in another format",
		Long: `Loads a store file and saves it again under a new name. The output
format follows the output file extension. An existing output file is
replaced only when the whole store was written.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := i18n.ReadFile(args[0])
			if err != nil {
				return err
			}

			if locale != "" {
				s.SetLocale(locale)
			}

			if err := s.SaveFile(args[1]); err != nil {
				return err
			}

			n := s.Len()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d scalars, %d lists, %d templates\n",
				args[1], n.Scalars, n.Lists, n.Templates)

			return nil
		},
	}

	cmd.Flags().StringVar(&locale, "locale", "", "replace the locale written to the output")

	return cmd
}

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "List keys added or removed between two store files",
		Long: `Loads <new> as a reload of <old> and prints the keys only <old> has,
prefixed with "-", and the keys only <new> has, prefixed with "+".
Lines are colored when writing to a terminal.
Exits with status 1 when the key sets differ.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			old, err := i18n.ReadFile(args[0])
			if err != nil {
				return err
			}

			_, d, err := old.LoadFile(args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			for _, key := range d.Missing {
				fmt.Fprintln(out, missingStyle.Render("- "+key))
			}

			for _, key := range d.Extra {
				fmt.Fprintln(out, extraStyle.Render("+ "+key))
			}

			if !d.Empty() {
				return errStoresDiffer
			}

			return nil
		},
	}
}

func newLocalesCmd() *cobra.Command {
	var match []string

	cmd := &cobra.Command{
		Use:   "locales",
		Short: "List the locales of the store directory",
		Long: `Loads every store file in the configured directory and prints each
locale with its table sizes. The default locale is listed first.

With --match, prints only the locale chosen for the given preferences,
for example --match "de-CH, fr;q=0.8".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := &config.Global

			b, err := bundle.Load(cmd.Context(), cfg.Store.Directory, bundle.Options{
				DefaultLocale:     cfg.Store.DefaultLocale,
				CacheSize:         cfg.Cache.Size,
				StrictMissingKeys: cfg.Internationalization.StrictMissingKeys,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if len(match) > 0 {
				_, tag := b.Match(match...)
				fmt.Fprintln(out, tag)

				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "LOCALE\tSCALARS\tLISTS\tTEMPLATES")

			for _, tag := range b.Languages() {
				s, _ := b.Store(tag)
				n := s.Len()
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", tag, n.Scalars, n.Lists, n.Templates)
			}

			return tw.Flush()
		},
	}

	cmd.Flags().StringArrayVar(&match, "match", nil, "language preferences to match against the loaded locales")

	return cmd
}

func newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <locale>",
		Short: "Create an empty store file for a locale",
		Long: `Creates an empty store for <locale> in the configured directory, using
the configured format and compression. Fails if the file already exists.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &config.Global
			s := i18n.New(args[0])

			if _, err := s.Tag(); err != nil {
				return err
			}

			path := cfg.LocalePath(args[0])
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s: %w", path, os.ErrExist)
			}

			if err := s.SaveFile(path); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)

			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "locstore %s (%s)\n", config.BuildVersion, config.Global.Build.Revision())

			return nil
		},
	}
}
