package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"diagram-editor-service/internal/core/domain"
)

func newLoginCmd(a *app) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session locally",
		Long: `Login authenticates against the backend and stores the session in the
data directory. The password is read from --password, then DIAGRAMCTL_PASSWORD,
then the first line of stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("DIAGRAMCTL_PASSWORD")
			}
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return domain.ErrInvalidLogin
				}
				password = strings.TrimRight(line, "\r\n")
			}

			sess, err := a.svc.Login(cmd.Context(), domain.SessionKey(""), domain.Credentials{
				Username: username,
				Password: password,
			})
			if err != nil {
				return fmt.Errorf("login: %s", domain.UserMessage(err, err.Error()))
			}
			return a.printSession(cmd, sess)
		},
	}
	cmd.Flags().StringVarP(&username, "user", "u", "", "user name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the backend session and forget it locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.Logout(cmd.Context(), domain.SessionKey("")); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session(cmd)
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
					return nil
				}
				return err
			}
			return a.printSession(cmd, sess)
		},
	}
}

func (a *app) printSession(cmd *cobra.Command, sess *domain.Session) error {
	out := cmd.OutOrStdout()
	if a.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"id_usuario":     sess.UserID,
			"nombre_usuario": sess.Username,
			"id_rol":         sess.RoleID,
			"nombre_rol":     sess.RoleName,
		})
	}
	fmt.Fprintf(out, "%s (id %d, role %s)\n", sess.Username, sess.UserID, sess.RoleName)
	return nil
}
