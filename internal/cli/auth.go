package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long:  `Manage authentication with the Pulse backend.`,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login with email and password",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout and discard the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently logged-in user",
	RunE:  runWhoami,
}

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(whoamiCmd)

	loginCmd.Flags().String("email", "", "Login email (prompted when omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	client, sess, _, err := bootstrap()
	if err != nil {
		return err
	}

	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("Email: ")
		email, _ = reader.ReadString('\n')
		email = strings.TrimSpace(email)
	}

	fmt.Print("Password: ")
	passwordBytes, _ := term.ReadPassword(int(syscall.Stdin))
	password := string(passwordBytes)
	fmt.Println()

	fmt.Println("🔄 Logging in...")
	user, token, err := client.Login(context.Background(), email, password)
	if err != nil {
		return err
	}
	if err := sess.SetAuthenticated(user, token); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Printf("✅ Logged in as %s (%s)\n", user.FullName(), user.Role)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	client, sess, _, err := bootstrap()
	if err != nil {
		return err
	}

	if sess.Token() == "" {
		fmt.Println("Not logged in.")
		return nil
	}

	// Best effort server side; the local session goes away regardless.
	if err := client.Logout(context.Background()); err != nil {
		fmt.Printf("⚠️  Server logout failed: %v\n", err)
	}
	if err := sess.Clear(); err != nil {
		return err
	}

	fmt.Println("✅ Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	client, sess, _, err := bootstrap()
	if err != nil {
		return err
	}
	if err := requireLogin(sess); err != nil {
		return err
	}

	// Refresh from the backend so a stale token surfaces here.
	user, err := client.Me(context.Background())
	if err != nil {
		return err
	}
	if err := sess.SetUser(user); err != nil {
		return err
	}

	fmt.Printf("%s <%s>\n", user.FullName(), user.Email)
	fmt.Printf("Role: %s\n", user.Role)
	if user.CanApprove() {
		fmt.Println("Manager features enabled.")
	}
	return nil
}
