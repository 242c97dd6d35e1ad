// Package scenario reads debt lists and plan settings from YAML, TOML, JSON
// or CSV files so plans can be run from the command line.
package scenario

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"debt-planner/domain"
)

// Format names a scenario file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

var ErrUnsupportedFormat = errors.New("unsupported scenario format")

// DebtRecord is one debt as written in a scenario file.
type DebtRecord struct {
	ID        string          `yaml:"id" toml:"id" json:"id" csv:"id"`
	Name      string          `yaml:"name" toml:"name" json:"name" csv:"name"`
	Creditor  string          `yaml:"creditor" toml:"creditor" json:"creditor" csv:"creditor,omitempty"`
	Principal decimal.Decimal `yaml:"principal" toml:"principal" json:"principal" csv:"principal,omitempty"`
	Balance   decimal.Decimal `yaml:"balance" toml:"balance" json:"balance" csv:"balance"`
	Rate      decimal.Decimal `yaml:"rate" toml:"rate" json:"rate" csv:"rate"`
	Minimum   decimal.Decimal `yaml:"minimum" toml:"minimum" json:"minimum" csv:"minimum"`
}

// Scenario is a debt list plus the settings to plan it with. Zero values
// mean "use the default".
type Scenario struct {
	Strategy            string          `yaml:"strategy" toml:"strategy" json:"strategy"`
	ExtraMonthlyPayment decimal.Decimal `yaml:"extra_monthly_payment" toml:"extra_monthly_payment" json:"extraMonthlyPayment"`
	CapMonths           int             `yaml:"cap_months" toml:"cap_months" json:"capMonths"`
	Debts               []DebtRecord    `yaml:"debts" toml:"debts" json:"debts"`
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads and parses a scenario file.
func Load(path string) (Scenario, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Scenario{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading scenario: %w", err)
	}
	sc, err := Parse(data, format)
	if err != nil {
		return Scenario{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes a scenario. CSV input carries only the debt list.
func Parse(data []byte, format Format) (Scenario, error) {
	var sc Scenario
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &sc); err != nil {
			return Scenario{}, err
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &sc); err != nil {
			return Scenario{}, err
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&sc); err != nil {
			return Scenario{}, err
		}
	case FormatCSV:
		var records []DebtRecord
		if err := gocsv.UnmarshalBytes(data, &records); err != nil {
			return Scenario{}, err
		}
		sc.Debts = records
	default:
		return Scenario{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return sc, nil
}

// DomainDebts converts the records to domain debts. Records without an ID are
// numbered by position and a missing principal defaults to the balance.
func (s Scenario) DomainDebts() []domain.Debt {
	debts := make([]domain.Debt, len(s.Debts))
	for i, r := range s.Debts {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			id = fmt.Sprintf("debt-%d", i+1)
		}
		principal := r.Principal
		if principal.IsZero() {
			principal = r.Balance
		}
		debts[i] = domain.Debt{
			ID:                        id,
			Name:                      strings.TrimSpace(r.Name),
			Creditor:                  strings.TrimSpace(r.Creditor),
			Principal:                 principal,
			RemainingBalance:          r.Balance,
			AnnualInterestRatePercent: r.Rate,
			MinimumMonthlyPayment:     r.Minimum,
		}
	}
	return debts
}

// Input builds a repayment request. A strategy given here overrides the one
// in the file.
func (s Scenario) Input(strategy string) domain.RepaymentInput {
	if strategy == "" {
		strategy = s.Strategy
	}
	if strategy == "" {
		strategy = domain.StrategyAvalanche.String()
	}
	return domain.RepaymentInput{
		Debts:               s.DomainDebts(),
		Strategy:            strategy,
		ExtraMonthlyPayment: s.ExtraMonthlyPayment,
		CapMonths:           s.CapMonths,
	}
}
