package app

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/henri123lemoine/trek/internal/grid"
	"github.com/henri123lemoine/trek/internal/i18n"
)

// Person is a row of the demo grid.
type Person struct {
	FirstName string `grid:"firstName"`
	LastName  string `grid:"lastName"`
	Age       *int   `grid:"age"`
}

// errFeedHiccup is emitted periodically by the demo stream.
var errFeedHiccup = errors.New("feed hiccup, keeping last rows")

// hiccupEvery is how many stream updates pass between two faults.
const hiccupEvery = 7

var demoNames = []struct{ first, last string }{
	{"Alice", "Smith"},
	{"Bob", "Johnson"},
	{"Charlie", "Brown"},
}

var newcomers = []struct{ first, last string }{
	{"Dana", "Lopez"},
	{"Eve", "Nakamura"},
	{"Frank", "Okafor"},
	{"Grace", "Hopper"},
	{"Hugo", "Martin"},
}

func age(n int) *int {
	return &n
}

// demoPeople returns the 33 demo rows. Charlie's age is unknown on every
// other row so sorting by age shows nulls trailing.
func demoPeople() []Person {
	ages := []int{30, 25, 35}
	rows := make([]Person, 0, 33)
	for i := range 33 {
		n := demoNames[i%3]
		p := Person{FirstName: n.first, LastName: n.last, Age: age(ages[i%3])}
		if i%3 == 2 && i%2 == 1 {
			p.Age = nil
		}
		rows = append(rows, p)
	}
	return rows
}

// peopleColumns returns the grid columns labelled in the active language.
func peopleColumns(tr *i18n.Translator) []grid.Column[Person] {
	return []grid.Column[Person]{
		grid.NewColumn[Person](tr.Translate("grid.firstName"), "firstName", true),
		grid.NewColumn[Person](tr.Translate("grid.lastName"), "lastName", true),
		{
			Name:     tr.Translate("grid.age"),
			Key:      "age",
			Sortable: true,
			Width:    5,
		},
	}
}

// peopleStream starts from the demo rows and, every interval, appends a
// newcomer. Every hiccupEvery-th update is a fault instead.
func peopleStream(interval time.Duration) grid.Stream[Person] {
	return func(ctx context.Context) <-chan grid.Emission[Person] {
		out := make(chan grid.Emission[Person])
		go func() {
			defer close(out)

			send := func(e grid.Emission[Person]) bool {
				select {
				case out <- e:
					return true
				case <-ctx.Done():
					return false
				}
			}

			rows := demoPeople()
			if !send(grid.Emission[Person]{Rows: slices.Clone(rows)}) {
				return
			}

			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for n := 1; ; n++ {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
				}

				e := grid.Emission[Person]{Err: errFeedHiccup}
				if n%hiccupEvery != 0 {
					p := newcomers[n%len(newcomers)]
					rows = append(rows, Person{FirstName: p.first, LastName: p.last, Age: age(20 + n%40)})
					e = grid.Emission[Person]{Rows: slices.Clone(rows)}
				}
				if !send(e) {
					return
				}
			}
		}()
		return out
	}
}
