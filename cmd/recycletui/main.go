// Command recycletui scrolls a large list in the terminal. Each row is a
// recycled cell: the pool only holds about one and a half screens of rows.
//
// Usage:
//
//	go run ./cmd/recycletui --items 1000000
//
// Keys: arrows or j/k, PgUp/PgDn, Home/End or g/G, mouse wheel, q to quit.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/go-theft-auto/recycler"
)

func main() {
	var items int
	cmd := &cobra.Command{
		Use:           "recycletui",
		Short:         "Scroll a recycled list in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(items)
		},
	}
	cmd.Flags().IntVar(&items, "items", 100000, "number of rows")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rowFields(i int) []string {
	return []string{"row " + strconv.Itoa(i)}
}

func run(items int) error {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	rows := make([]int, max(items, 0))
	for i := range rows {
		rows[i] = i
	}
	// Log output would corrupt the alternate screen.
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	m, err := newModel(recycler.NewSliceSource(rows, rowFields), width, height, recycler.WithLogger(quiet))
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
