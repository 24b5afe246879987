package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/account"
)

var (
	flagUsername string
	flagEmail    string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and log in",
	Long: `Create a local account. Scores from this terminal are saved under
its username. The password is read from the terminal.

Examples:
  snake signup --username viper --email viper@example.com`,
	Args: cobra.NoArgs,
	Run:  runSignup,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to an existing account",
	Args:  cobra.NoArgs,
	Run:   runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out",
	Args:  cobra.NoArgs,
	Run:   runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	Args:  cobra.NoArgs,
	Run:   runWhoami,
}

func init() {
	signupCmd.Flags().StringVar(&flagUsername, "username", "", "Username (3-20 characters)")
	for _, c := range []*cobra.Command{signupCmd, loginCmd} {
		c.Flags().StringVar(&flagEmail, "email", "", "Email address")
	}
}

func runSignup(_ *cobra.Command, _ []string) {
	e, err := openEnv(newLogger())
	if err != nil {
		fatalf("opening database: %v", err)
	}
	defer e.store.Close()

	in := bufio.NewReader(os.Stdin)
	username := promptDefault(in, "Username", flagUsername)
	email := promptDefault(in, "Email", flagEmail)
	password := promptPassword(in, "Password")

	u, err := e.accounts.Signup(username, email, password)
	if err != nil {
		fatalf("%s", describeAccountError(err))
	}
	fmt.Printf("Welcome, %s! You are logged in.\n", u.Username)
}

func runLogin(_ *cobra.Command, _ []string) {
	e, err := openEnv(newLogger())
	if err != nil {
		fatalf("opening database: %v", err)
	}
	defer e.store.Close()

	in := bufio.NewReader(os.Stdin)
	email := promptDefault(in, "Email", flagEmail)
	password := promptPassword(in, "Password")

	u, err := e.accounts.Login(email, password)
	if err != nil {
		fatalf("%s", describeAccountError(err))
	}
	fmt.Printf("Logged in as %s.\n", u.Username)
}

func runLogout(_ *cobra.Command, _ []string) {
	e, err := openEnv(newLogger())
	if err != nil {
		fatalf("opening database: %v", err)
	}
	defer e.store.Close()

	if err := e.accounts.Logout(); err != nil {
		fatalf("%v", err)
	}
	fmt.Println("Logged out.")
}

func runWhoami(_ *cobra.Command, _ []string) {
	e, err := openEnv(newLogger())
	if err != nil {
		fatalf("opening database: %v", err)
	}
	defer e.store.Close()

	u, err := e.accounts.Current()
	if errors.Is(err, account.ErrNotLoggedIn) {
		fmt.Println("Not logged in. Scores are not saved.")
		return
	}
	if err != nil {
		fatalf("%v", err)
	}

	fmt.Printf("%s <%s>\n", u.Username, u.Email)
	if best, games, err := e.store.BestScore(u.Username); err == nil {
		fmt.Printf("Games: %d  Best: %d\n", games, best)
	}
}

func promptDefault(in *bufio.Reader, label, value string) string {
	if value != "" {
		return value
	}
	fmt.Printf("%s: ", label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

// promptPassword reads without echo when stdin is a terminal.
func promptPassword(in *bufio.Reader, label string) string {
	fmt.Printf("%s: ", label)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			fatalf("reading password: %v", err)
		}
		return string(b)
	}
	line, _ := in.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}

func describeAccountError(err error) string {
	var verr *account.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	return err.Error()
}
