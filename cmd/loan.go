package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"debt-planner/domain"
	"debt-planner/export"
	"debt-planner/repository"
	"debt-planner/service"
)

var (
	flagAmount string
	flagRate   string
	flagMonths int
)

var loanCmd = &cobra.Command{
	Use:   "loan",
	Short: "Level monthly payment for a single loan",
	RunE:  runLoan,
}

func init() {
	loanCmd.Flags().StringVar(&flagAmount, "amount", "", "Loan amount")
	loanCmd.Flags().StringVar(&flagRate, "rate", "0", "Annual interest rate in percent")
	loanCmd.Flags().IntVar(&flagMonths, "months", 0, "Term in months")
	loanCmd.Flags().StringVarP(&flagFormat, "format", "f", "table", "Output format: table or json")
	_ = loanCmd.MarkFlagRequired("amount")
	_ = loanCmd.MarkFlagRequired("months")
	rootCmd.AddCommand(loanCmd)
}

func runLoan(cmd *cobra.Command, _ []string) error {
	amount, err := parseAmount("amount", flagAmount)
	if err != nil {
		return err
	}
	rate, err := parseAmount("rate", flagRate)
	if err != nil {
		return err
	}

	svc := service.NewLoanService(repository.NopCache{}, logger)
	result, err := svc.CalculateLoan(commandContext(cmd), domain.LoanInput{
		Amount:       amount,
		InterestRate: rate,
		TermMonths:   flagMonths,
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if flagFormat == "json" {
		return writeJSON(w, result)
	}
	table := export.Table{
		Title:   "Loan",
		Headers: []string{"", "Amount"},
		Rows: [][]string{
			{"Monthly payment", result.MonthlyPayment.StringFixed(2)},
			{"Total paid", result.TotalPayment.StringFixed(2)},
			{"Total interest", result.TotalInterest.StringFixed(2)},
		},
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, table.Render())
	return nil
}
