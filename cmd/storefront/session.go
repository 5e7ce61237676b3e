package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/storefront/pkg/authsdk"
)

type sessionStatus struct {
	LoggedIn  bool       `json:"loggedIn"`
	Subject   string     `json:"subject,omitempty"`
	Role      string     `json:"role,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or change the shopper's session",
	}

	cmd.AddCommand(sessionStatusCmd())
	cmd.AddCommand(sessionLoginCmd())
	cmd.AddCommand(sessionLogoutCmd())

	return cmd
}

func sessionStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show who is logged in and when the access token expires",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := openApp()
			if err != nil {
				return err
			}
			defer application.Close()

			status := currentStatus(application.Session())

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return printJSON(cmd.OutOrStdout(), status)
			}

			out := cmd.OutOrStdout()
			if !status.LoggedIn {
				fmt.Fprintln(out, "Not logged in")
				return nil
			}
			fmt.Fprintf(out, "Subject:  %s\n", status.Subject)
			if status.Role != "" {
				fmt.Fprintf(out, "Role:     %s\n", status.Role)
			}
			if status.ExpiresAt != nil {
				fmt.Fprintf(out, "Expires:  %s\n", status.ExpiresAt.Format(time.RFC3339))
			}
			return nil
		},
	}

	cmd.Flags().BoolP("json", "j", false, "Output as JSON")

	return cmd
}

func sessionLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with a username and a password read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			if username == "" {
				return errors.New("--username is required")
			}

			password, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && password == "" {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = strings.TrimRight(password, "\r\n")

			application, err := openApp()
			if err != nil {
				return err
			}
			defer application.Close()

			cred, err := application.Session().Login(cmd.Context(), username, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", cred.Claims.SubjectID())
			return nil
		},
	}

	cmd.Flags().StringP("username", "u", "", "Shopper username")

	return cmd
}

func sessionLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := openApp()
			if err != nil {
				return err
			}
			defer application.Close()

			if err := application.Session().Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func currentStatus(session *authsdk.Session) sessionStatus {
	cred, ok := session.Current()
	if !ok {
		return sessionStatus{}
	}

	status := sessionStatus{
		LoggedIn: true,
		Subject:  cred.Claims.SubjectID(),
		Role:     cred.Claims.Role,
	}
	if exp := cred.Claims.ExpiresAtTime(); !exp.IsZero() {
		status.ExpiresAt = &exp
	}
	return status
}
