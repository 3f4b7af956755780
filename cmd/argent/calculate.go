package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"argentvault/internal/cli"
	"argentvault/internal/core"
)

var (
	flagFile     string
	flagIncome   string
	flagExpenses []string
	flagSave     bool
)

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Calculate a budget and print advice",
	Example: `  argent calculate --income 3000 --expense Rent=1200 --expense Groceries=400
  argent calculate --file budget.toml --save`,
	Args: cobra.NoArgs,
	RunE: runCalculate,
}

func init() {
	calculateCmd.Flags().StringVarP(&flagFile, "file", "f", "", "TOML budget file")
	calculateCmd.Flags().StringVarP(&flagIncome, "income", "i", "", "Monthly income (overrides the file)")
	calculateCmd.Flags().StringArrayVarP(&flagExpenses, "expense", "e", nil, "Expense as name=amount, repeatable")
	calculateCmd.Flags().BoolVarP(&flagSave, "save", "s", false, "Save the budget")
	rootCmd.AddCommand(calculateCmd)
}

func runCalculate(cmd *cobra.Command, _ []string) error {
	income, rows, err := budgetInput(cmd)
	if err != nil {
		return err
	}

	calc := app.budgets.Calculate(cmd.Context(), income, rows)
	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGET"))
	fmt.Println()
	fmt.Print(cli.RenderBudget(calc.Budget, calc.Tips))

	if !flagSave {
		return nil
	}
	saved, err := app.budgets.SaveInput(cmd.Context(), income, rows)
	if err != nil {
		return err
	}
	fmt.Printf("\n  Saved budget %s\n", saved.IDString())
	return nil
}

func budgetInput(cmd *cobra.Command) (string, []core.RawExpense, error) {
	var (
		income string
		rows   []core.RawExpense
	)
	if flagFile != "" {
		f, err := os.Open(flagFile)
		if err != nil {
			return "", nil, err
		}
		defer f.Close()
		bf, err := cli.ReadBudgetFile(f)
		if err != nil {
			return "", nil, fmt.Errorf("%s: %w", flagFile, err)
		}
		income, rows = bf.IncomeText(), bf.Rows()
	}
	if cmd.Flags().Changed("income") {
		income = flagIncome
	}
	for _, e := range flagExpenses {
		rows = append(rows, parseExpenseFlag(e))
	}
	if flagFile == "" && !cmd.Flags().Changed("income") && len(rows) == 0 {
		return "", nil, fmt.Errorf("nothing to calculate: pass --file, --income or --expense")
	}
	return income, rows, nil
}

// parseExpenseFlag splits name=amount at the last '='. A value without '='
// is an unnamed amount.
func parseExpenseFlag(v string) core.RawExpense {
	i := strings.LastIndex(v, "=")
	if i < 0 {
		return core.RawExpense{Amount: strings.TrimSpace(v)}
	}
	return core.RawExpense{
		Name:   strings.TrimSpace(v[:i]),
		Amount: strings.TrimSpace(v[i+1:]),
	}
}
