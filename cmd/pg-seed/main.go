package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/venky2135/pg-management-system/internal/client"
	"github.com/venky2135/pg-management-system/internal/config"
	"github.com/venky2135/pg-management-system/internal/logger"
	"github.com/venky2135/pg-management-system/internal/model"
	"github.com/venky2135/pg-management-system/internal/sheet"
	"github.com/venky2135/pg-management-system/internal/validator"
)

var names = []string{
	"Aarav Sharma", "Priya Nair", "Rohan Gupta", "Ananya Iyer", "Vikram Singh",
	"Sneha Reddy", "Arjun Mehta", "Kavya Menon", "Rahul Verma", "Divya Pillai",
	"Karan Malhotra", "Meera Joshi", "Aditya Rao", "Pooja Desai", "Siddharth Bose",
	"Nisha Kulkarni", "Manish Yadav", "Ritu Chawla", "Harsh Patel", "Lakshmi Krishnan",
}

func main() {
	var (
		file   string
		count  int
		amount float64
	)
	flag.StringVar(&file, "file", "", "Workbook (.xlsx) with Name, Email, Phone and Room No columns")
	flag.IntVar(&count, "count", len(names), "Number of demo students when no -file is given")
	flag.Float64Var(&amount, "fee", 0, "Record one Cash payment of this amount for every created student")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	validator.Setup()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	httpClient := &http.Client{}
	students := client.NewStudentClient(cfg, httpClient, log)
	fees := client.NewFeeClient(cfg, httpClient, log)

	var (
		rows []sheet.Row
		err  error
	)
	if file != "" {
		fmt.Printf("=== Importing students from %s ===\n", file)
		rows, err = readFile(file)
		if err != nil {
			log.Fatal().Err(err).Str("file", file).Msg("Failed to read workbook")
		}
	} else {
		fmt.Printf("=== Seeding %d demo students ===\n", count)
		rows = demoRows(count)
	}

	res, err := sheet.Import(ctx, students, rows, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Import interrupted")
	}
	for _, failed := range res.Failed {
		fmt.Printf("Row %d: %s\n", failed.Line, failed.Message)
	}

	paid := 0
	if amount > 0 {
		today := time.Now().Format(model.DateLayout)
		for _, st := range res.Created {
			_, err := fees.Create(ctx, model.Fee{
				StudentID:   st.ID,
				Amount:      amount,
				PaymentDate: today,
				Mode:        model.PaymentModeCash,
			})
			if err != nil {
				fmt.Printf("Error recording fee for %s (ID: %d): %v\n", st.Name, st.ID, err)
				continue
			}
			paid++
		}
	}

	fmt.Printf("\nSeed completed! Added %d/%d students, recorded %d payments.\n", len(res.Created), len(rows), paid)
}

func readFile(path string) ([]sheet.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return sheet.ReadStudents(f)
}

// demoRows builds count students with unique emails, phones and rooms.
func demoRows(count int) []sheet.Row {
	rows := make([]sheet.Row, 0, count)
	for i := 0; i < count; i++ {
		name := names[i%len(names)]
		handle := strings.ToLower(strings.ReplaceAll(name, " ", "."))
		rows = append(rows, sheet.Row{
			Line: i + 1,
			Student: model.Student{
				Name:   name,
				Email:  fmt.Sprintf("%s%d@pg.example", handle, i+1),
				Phone:  fmt.Sprintf("98%08d", i+1),
				RoomNo: fmt.Sprintf("%c%d%02d", 'A'+rune(i/40%26), i/10%4+1, i%10+1),
			},
		})
	}
	return rows
}
