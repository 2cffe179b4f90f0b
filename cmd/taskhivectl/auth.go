package main

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var registerCmd = &cobra.Command{
	Use:   "register <email>",
	Short: "Register a new account and print an access token",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegister,
}

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in and print an access token",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

type authResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        struct {
		ID    uint64 `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func runRegister(cmd *cobra.Command, args []string) error {
	return authenticate("/auth/register", args[0])
}

func runLogin(cmd *cobra.Command, args []string) error {
	return authenticate("/auth/login", args[0])
}

func authenticate(path, email string) error {
	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	client := newClient()
	var result authResult
	err = client.postJSON(path, map[string]string{
		"email":    email,
		"password": string(password),
	}, &result)
	if err != nil {
		return err
	}

	if outputFmt == "json" || outputFmt == "yaml" {
		return printOutput(result)
	}

	fmt.Printf("Authenticated as %s (id %d).\n", result.User.Email, result.User.ID)
	fmt.Printf("export TASKHIVE_TOKEN=%s\n", result.AccessToken)
	return nil
}
