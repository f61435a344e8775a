package expiringmap_test

import (
	"context"
	"fmt"
	"time"

	expiringmap "github.com/karupanerura/expiring-map"
	"github.com/karupanerura/expiring-map/expiration"
	"github.com/karupanerura/expiring-map/scheduler/fakescheduler"
)

// Book represents a book entity
type Book struct {
	ID   int
	Name string
}

func ExampleExpiringMap_GetOrLoad() {
	s := fakescheduler.New(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	books, err := expiringmap.New(
		expiringmap.WithTimeout[int, *Book](expiration.After(time.Minute)),
		expiringmap.WithScheduler[int, *Book](s),
		expiringmap.WithClock[int, *Book](s),
	)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	// Simulates loading books from a database
	loadBook := func(_ context.Context, id int) (*Book, error) {
		fmt.Println("Loading book", id)
		return &Book{ID: id, Name: fmt.Sprintf("Book %d", id)}, nil
	}

	ctx := context.Background()
	book, _ := books.GetOrLoad(ctx, 1, loadBook)
	fmt.Println(book.Name)

	// Served from the map until the entry expires
	book, _ = books.GetOrLoad(ctx, 1, loadBook)
	fmt.Println(book.Name)

	s.Advance(time.Minute)
	book, _ = books.GetOrLoad(ctx, 1, loadBook)
	fmt.Println(book.Name)

	// Output:
	// Loading book 1
	// Book 1
	// Book 1
	// Loading book 1
	// Book 1
}
