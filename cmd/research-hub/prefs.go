// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(context.Background(), false)
		if err != nil {
			return err
		}
		defer a.Close()

		theme, err := a.prefs.Theme()
		if err != nil {
			return err
		}
		loggedIn, err := a.prefs.Authenticated()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "theme:     %s\nlogged in: %t\n", theme, loggedIn)
		return nil
	},
}

var prefsThemeCmd = &cobra.Command{
	Use:       "theme [dark|light]",
	Short:     "Show or set the theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"dark", "light"},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(context.Background(), false)
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) == 1 {
			return a.prefs.SetTheme(args[0])
		}
		theme, err := a.prefs.Theme()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), theme)
		return nil
	},
}

var prefsLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Set the login flag (no credentials are checked)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(context.Background(), false)
		if err != nil {
			return err
		}
		defer a.Close()
		return a.prefs.Login()
	},
}

var prefsLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the login flag",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(context.Background(), false)
		if err != nil {
			return err
		}
		defer a.Close()
		return a.prefs.Logout()
	},
}

func init() {
	prefsCmd.AddCommand(prefsThemeCmd)
	prefsCmd.AddCommand(prefsLoginCmd)
	prefsCmd.AddCommand(prefsLogoutCmd)

	rootCmd.AddCommand(prefsCmd)
}
