package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jonathan/resume-analyzer/internal/config"
)

var hashPasswordCost int

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Generate a bcrypt hash for the operator password",
	Long: `Reads a password from the terminal and prints its bcrypt hash.
Store the hash in the OPERATOR_PASSWORD_HASH environment variable.`,
	RunE: runHashPassword,
}

func init() {
	hashPasswordCmd.Flags().IntVar(&hashPasswordCost, "cost", 12, "bcrypt cost (10-14)")
	rootCmd.AddCommand(hashPasswordCmd)
}

func runHashPassword(_ *cobra.Command, _ []string) error {
	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(password) == 0 {
		return fmt.Errorf("password is empty")
	}

	hash, err := config.HashPassword(string(password), hashPasswordCost)
	if err != nil {
		return err
	}

	fmt.Println(hash)
	return nil
}
