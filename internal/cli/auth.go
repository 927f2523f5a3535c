package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Log in to the shop API",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context(), terminalNavigator{out: cmd.ErrOrStderr()})
		if err != nil {
			return err
		}
		defer services.Close()

		in := bufio.NewReader(cmd.InOrStdin())

		email := ""
		if len(args) == 1 {
			email = args[0]
		} else {
			fmt.Fprint(cmd.OutOrStdout(), "Email: ")
			if email, err = readLine(in); err != nil {
				return fmt.Errorf("failed to read email: %w", err)
			}
		}

		password, err := readPassword(cmd, in)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		returnPath, err := services.Auth.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (profile %s)\n", strings.TrimSpace(email), profile)
		if returnPath != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Resume with: %s\n", returnPath)
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the stored tokens",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context(), terminalNavigator{out: cmd.ErrOrStderr()})
		if err != nil {
			return err
		}
		defer services.Close()

		if err := services.Auth.Logout(cmd.Context()); err != nil {
			return err
		}
		if err := services.Pages.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("failed to reset list state: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Logged out (profile %s)\n", profile)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context(), terminalNavigator{out: cmd.ErrOrStderr()})
		if err != nil {
			return err
		}
		defer services.Close()

		status, err := services.Auth.Status(cmd.Context())
		if err != nil {
			return err
		}

		if output == OutputJSON {
			return writeJSON(cmd.OutOrStdout(), status)
		}

		w := newTable(cmd.OutOrStdout())
		fmt.Fprintf(w, "PROFILE\t%s\n", status.SessionID)
		fmt.Fprintf(w, "AUTHENTICATED\t%t\n", status.Authenticated)
		if status.Email != "" {
			fmt.Fprintf(w, "EMAIL\t%s\n", status.Email)
		}
		if status.Subject != "" {
			fmt.Fprintf(w, "SUBJECT\t%s\n", status.Subject)
		}
		if len(status.Roles) > 0 {
			fmt.Fprintf(w, "ROLES\t%s\n", strings.Join(status.Roles, ", "))
		}
		if status.ExpiresAt != nil {
			fmt.Fprintf(w, "EXPIRES AT\t%s (expired: %t)\n", status.ExpiresAt.Local().Format(time.DateTime), status.Expired)
		}
		fmt.Fprintf(w, "REFRESH TOKEN\t%t\n", status.HasRefreshToken)
		return w.Flush()
	},
}

func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readPassword prompts without echo on a terminal and reads a plain line
// otherwise, so passwords can be piped in.
func readPassword(cmd *cobra.Command, in *bufio.Reader) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && f == os.Stdin && term.IsTerminal(int(syscall.Stdin)) {
		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		password, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", err
		}
		return string(password), nil
	}
	return readLine(in)
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
}
