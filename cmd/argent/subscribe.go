package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"argentvault/internal/core"
)

var (
	flagName     string
	flagEmail    string
	flagInterest string
)

var subscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Subscribe to the newsletter",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		sub, err := app.newsletter.Subscribe(cmd.Context(), core.SubscriptionRequest{
			Name:     flagName,
			Email:    flagEmail,
			Interest: flagInterest,
		})
		var verr *core.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("invalid subscription:\n  %s", strings.Join(verr.Messages, "\n  "))
		}
		if err != nil {
			return err
		}
		fmt.Printf("  Subscribed %s <%s> to %s\n", sub.Name, sub.Email, sub.Interest)
		return nil
	},
}

func init() {
	subscribeCmd.Flags().StringVar(&flagName, "name", "", "Your name")
	subscribeCmd.Flags().StringVar(&flagEmail, "email", "", "Email address")
	subscribeCmd.Flags().StringVar(&flagInterest, "interest", "", "Topic of interest")
	rootCmd.AddCommand(subscribeCmd)
}
