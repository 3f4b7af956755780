package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"argentvault/internal/cli"
	"argentvault/internal/core"
	"argentvault/internal/services"
)

var budgetsCmd = &cobra.Command{
	Use:     "budgets",
	Aliases: []string{"b"},
	Short:   "List, show and delete saved budgets",
	Args:    cobra.NoArgs,
	RunE:    runBudgetsList,
}

var budgetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved budgets, newest first",
	Args:  cobra.NoArgs,
	RunE:  runBudgetsList,
}

var budgetsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one budget with its advice",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetsShow,
}

var budgetsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetsDelete,
}

func init() {
	budgetsCmd.AddCommand(budgetsListCmd, budgetsShowCmd, budgetsDeleteCmd)
	rootCmd.AddCommand(budgetsCmd)
}

func runBudgetsList(cmd *cobra.Command, _ []string) error {
	fmt.Println()
	fmt.Print(cli.RenderSnapshots(app.budgets.List(cmd.Context())))
	return nil
}

func runBudgetsShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	snap, err := app.budgets.Get(cmd.Context(), id)
	if services.IsNotFound(err) {
		return fmt.Errorf("no budget with id %d", id)
	}
	if err != nil {
		return err
	}
	comp := snap.Computation()
	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGET " + snap.IDString() + "  " + snap.CreatedAt.Local().Format("2006-01-02 15:04")))
	fmt.Println()
	fmt.Print(cli.RenderBudget(comp, core.TipsFor(comp)))
	return nil
}

func runBudgetsDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := app.budgets.Delete(cmd.Context(), id); err != nil {
		if services.IsNotFound(err) {
			return fmt.Errorf("no budget with id %d", id)
		}
		return err
	}
	fmt.Printf("  Deleted budget %d\n", id)
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid budget id %q", s)
	}
	return id, nil
}
