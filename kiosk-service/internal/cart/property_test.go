package cart

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var taxMultiplier = decimal.RequireFromString("1.08")

func openQuiet(snapshots *memStore) *Store {
	return Open(context.Background(), snapshots, zap.NewNop())
}

func TestCartProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("n adds of one name yield one line with quantity n", prop.ForAll(
		func(n int) bool {
			s := openQuiet(newMemStore())
			defer s.Close(context.Background())
			for i := 0; i < n; i++ {
				s.AddOrMerge(input("apple", "2.99"))
			}
			items := s.Items()
			return len(items) == 1 && items[0].Quantity == n
		},
		gen.IntRange(1, 50),
	))

	properties.Property("quantity never drops below one", prop.ForAll(
		func(deltas []int) bool {
			s := openQuiet(newMemStore())
			defer s.Close(context.Background())
			item, _ := s.AddOrMerge(input("apple", "2.99"))
			for _, d := range deltas {
				s.UpdateQuantity(item.ID, d)
				if s.Items()[0].Quantity < 1 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(-5, 5)),
	))

	properties.Property("total equals subtotal times 1.08 to the cent", prop.ForAll(
		func(cents []int64) bool {
			s := openQuiet(newMemStore())
			defer s.Close(context.Background())
			for i, c := range cents {
				item, _ := s.AddOrMerge(input(fmt.Sprintf("item %d", i), decimal.New(c, -2).String()))
				s.UpdateQuantity(item.ID, i%4)
			}
			totals := s.Totals()
			return totals.Total.Round(2).Equal(totals.Subtotal.Mul(taxMultiplier).Round(2))
		},
		gen.SliceOf(gen.Int64Range(0, 100000)),
	))

	properties.Property("restoring a snapshot and saving it again is byte-identical", prop.ForAll(
		func(cents []int64) bool {
			snapshots := newMemStore()
			s := openQuiet(snapshots)
			for i, c := range cents {
				item, _ := s.AddOrMerge(input(fmt.Sprintf("item %d", i), decimal.New(c, -2).String()))
				s.UpdateQuantity(item.ID, i%3)
			}
			first, err := s.Snapshot()
			if err != nil || s.Close(context.Background()) != nil {
				return false
			}

			restored := openQuiet(snapshots)
			defer restored.Close(context.Background())
			second, err := restored.Snapshot()
			return err == nil && bytes.Equal(first, second)
		},
		gen.SliceOf(gen.Int64Range(0, 100000)),
	))

	properties.TestingRun(t)
}
