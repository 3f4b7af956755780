package core

import "fmt"

type (
	// Topic is an educational article teaser.
	Topic struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
		Difficulty  string `json:"difficulty"`
		Minutes     int    `json:"time"`
	}

	// ContentTip is a general money tip from the content collection, as
	// opposed to a Tip derived from a budget.
	ContentTip struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Category string `json:"category"`
		Action   string `json:"action"`
	}

	Address struct {
		Street  string `json:"street"`
		City    string `json:"city"`
		State   string `json:"state"`
		Country string `json:"country"`
		Zip     string `json:"zip"`
	}

	// Place is a point of interest shown on the discover page.
	Place struct {
		Name        string  `json:"name"`
		Address     Address `json:"address"`
		Description string  `json:"description"`
		Image       string  `json:"image"`
	}

	Content struct {
		Topics []Topic      `json:"topics"`
		Tips   []ContentTip `json:"tips"`
	}
)

// ContentLoadFailed is the message shown when content cannot be loaded.
const ContentLoadFailed = "Failed to load content. Please try again later."

// Line renders the address on one line, skipping an empty street.
func (a Address) Line() string {
	if a.Street == "" {
		return fmt.Sprintf("%s, %s %s", a.City, a.Country, a.Zip)
	}
	return fmt.Sprintf("%s %s, %s %s", a.Street, a.City, a.Country, a.Zip)
}

var defaultExpenseNames = []string{
	"Rent/Mortgage",
	"Utilities",
	"Groceries",
	"Transportation",
	"Entertainment",
	"Healthcare",
	"Insurance",
	"Debt Payment",
	"Savings",
	"Miscellaneous",
}

// DefaultExpenseName suggests a name for the expense row at 1-based
// position n.
func DefaultExpenseName(n int) string {
	if n >= 1 && n <= len(defaultExpenseNames) {
		return defaultExpenseNames[n-1]
	}
	return PlaceholderName(n)
}

// DefaultExpenseNames returns suggestions for the first n rows.
func DefaultExpenseNames(n int) []string {
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, DefaultExpenseName(i))
	}
	return out
}
