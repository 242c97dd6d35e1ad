// Package export renders schedules for people: CSV files for spreadsheets
// and bordered tables for the terminal.
package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"debt-planner/domain"
)

// MonthRow is one CSV line of the month-level schedule.
type MonthRow struct {
	Month              int             `csv:"month"`
	TotalPayment       decimal.Decimal `csv:"total_payment"`
	TotalPrincipal     decimal.Decimal `csv:"total_principal"`
	TotalInterest      decimal.Decimal `csv:"total_interest"`
	CumulativeInterest decimal.Decimal `csv:"cumulative_interest"`
	RemainingBalance   decimal.Decimal `csv:"remaining_balance"`
}

// PaymentRow is one CSV line of the per-debt schedule.
type PaymentRow struct {
	Month            int             `csv:"month"`
	DebtID           string          `csv:"debt_id"`
	Payment          decimal.Decimal `csv:"payment"`
	Principal        decimal.Decimal `csv:"principal"`
	Interest         decimal.Decimal `csv:"interest"`
	RemainingBalance decimal.Decimal `csv:"remaining_balance"`
	Closed           bool            `csv:"closed"`
}

func MonthRows(sched domain.Schedule) []MonthRow {
	rows := make([]MonthRow, 0, len(sched.Entries))
	for _, e := range sched.Entries {
		rows = append(rows, MonthRow{
			Month:              e.Month,
			TotalPayment:       e.TotalPayment,
			TotalPrincipal:     e.TotalPrincipal,
			TotalInterest:      e.TotalInterest,
			CumulativeInterest: e.CumulativeInterest,
			RemainingBalance:   e.RemainingBalance,
		})
	}
	return rows
}

func PaymentRows(sched domain.Schedule) []PaymentRow {
	var rows []PaymentRow
	for _, e := range sched.Entries {
		for _, p := range e.Payments {
			rows = append(rows, PaymentRow{
				Month:            e.Month,
				DebtID:           p.DebtID,
				Payment:          p.Payment,
				Principal:        p.Principal,
				Interest:         p.Interest,
				RemainingBalance: p.RemainingBalance,
				Closed:           p.Closed,
			})
		}
	}
	return rows
}

// WriteCSV writes the schedule as CSV, one line per month or, when detailed
// is set, one line per debt per month.
func WriteCSV(w io.Writer, sched domain.Schedule, detailed bool) error {
	var err error
	if detailed {
		rows := PaymentRows(sched)
		if rows == nil {
			rows = []PaymentRow{}
		}
		err = gocsv.Marshal(rows, w)
	} else {
		err = gocsv.Marshal(MonthRows(sched), w)
	}
	if err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}
