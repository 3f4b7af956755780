package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/BurntSushi/toml"

	"argentvault/internal/core"
)

// BudgetFile is the TOML input accepted by `argent calculate --file`:
//
//	income = 3000
//
//	[[expenses]]
//	name = "Rent"
//	amount = "1200.50"
//
// Amounts may be written as strings, integers or floats.
type BudgetFile struct {
	Income   tomlAmount    `toml:"income"`
	Expenses []tomlExpense `toml:"expenses"`
}

type tomlExpense struct {
	Name   string     `toml:"name"`
	Amount tomlAmount `toml:"amount"`
}

type tomlAmount string

func (a *tomlAmount) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case string:
		*a = tomlAmount(x)
	case int64:
		*a = tomlAmount(strconv.FormatInt(x, 10))
	case float64:
		*a = tomlAmount(strconv.FormatFloat(x, 'f', -1, 64))
	default:
		return fmt.Errorf("amount must be a string or number, got %T", v)
	}
	return nil
}

// ReadBudgetFile decodes a TOML budget and rejects unknown keys.
func ReadBudgetFile(r io.Reader) (BudgetFile, error) {
	var f BudgetFile
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return BudgetFile{}, fmt.Errorf("decode budget file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return BudgetFile{}, fmt.Errorf("unknown keys in budget file: %v", undecoded)
	}
	return f, nil
}

// Rows returns the expenses in the raw form the engine expects.
func (f BudgetFile) Rows() []core.RawExpense {
	rows := make([]core.RawExpense, len(f.Expenses))
	for i, e := range f.Expenses {
		rows[i] = core.RawExpense{Name: e.Name, Amount: string(e.Amount)}
	}
	return rows
}

func (f BudgetFile) IncomeText() string {
	return string(f.Income)
}
