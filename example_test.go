package pairmatch_test

import (
	"fmt"
	"log"

	"github.com/hupe1980/pairmatch"
	"github.com/hupe1980/pairmatch/constraint"
	"github.com/hupe1980/pairmatch/table"
)

// Example enumerates replicate pairs: same compound, different plate.
func Example() {
	tbl, err := table.New(
		table.StringColumn("compound", "X", "X", "Y", "Y"),
		table.IntColumn("plate", 1, 2, 1, 2),
	)
	if err != nil {
		log.Fatal(err)
	}

	m, err := pairmatch.New(tbl, []string{"compound", "plate"}, 42)
	if err != nil {
		log.Fatal(err)
	}

	groups, err := m.GetAllPairs(constraint.Col("compound"), constraint.Col("plate"))
	if err != nil {
		log.Fatal(err)
	}
	for key, pairs := range groups.Groups() {
		fmt.Println(key, pairs)
	}
	// Output:
	// compound=X [{0 1}]
	// compound=Y [{2 3}]
}

// Example_nullPairs samples a background distribution of non-replicate
// pairs, reproducible per seed.
func Example_nullPairs() {
	tbl, err := table.New(
		table.StringColumn("compound", "X", "X", "Y", "Y"),
		table.IntColumn("plate", 1, 2, 1, 2),
	)
	if err != nil {
		log.Fatal(err)
	}

	m, err := pairmatch.New(tbl, []string{"compound", "plate"}, 42)
	if err != nil {
		log.Fatal(err)
	}

	pairs, err := m.NullPairs(constraint.Col("compound"), 1000)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(len(pairs))
	// Output:
	// 1000
}
