package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"
)

func main() {
	days := flag.Int("days", 365, "Number of days to generate")
	stores := flag.Int("stores", 2, "Number of stores")
	products := flag.Int("products", 3, "Number of products per store")
	start := flag.String("start", "2022-01-01", "First date (YYYY-MM-DD)")
	seed := flag.Int64("seed", 1, "RNG seed")
	output := flag.String("output", "data/sales.csv", "Output CSV file path")
	flag.Parse()

	startDate, err := time.Parse("2006-01-02", *start)
	if err != nil {
		log.Fatalf("Invalid start date: %v", err)
	}

	if err := os.MkdirAll("data", 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	file, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Header matching the CSVProvider expected format
	writer.Write([]string{"Date", "store", "product", "number_sold"})

	rng := rand.New(rand.NewSource(*seed))
	rows := 0

	for d := 0; d < *days; d++ {
		date := startDate.AddDate(0, 0, d).Format("2006-01-02")
		for s := 1; s <= *stores; s++ {
			for p := 0; p < *products; p++ {
				// Base level per product plus weekly seasonality and noise
				base := 50.0 * float64(p+1)
				seasonal := 10.0 * float64(d%7)
				noise := rng.NormFloat64() * 5.0
				sold := base + seasonal + noise
				if sold < 0 {
					sold = 0
				}

				writer.Write([]string{
					date,
					strconv.Itoa(s),
					string(rune('A' + p)),
					strconv.FormatFloat(sold, 'f', 0, 64),
				})
				rows++
			}
		}
	}

	log.Printf("Wrote %d rows to %s", rows, *output)
	fmt.Printf("Run the demo with: go run ./cmd/lagdemo -csv %s\n", *output)
}
