package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gutenku/gutenku/internal/app"
	"github.com/gutenku/gutenku/internal/config"
	"github.com/gutenku/gutenku/internal/puzzle"
)

var (
	puzzleDate      string
	puzzleJSON      bool
	puzzleRounds    []int
	puzzleEmoticons int
	puzzleHaikus    int
	revealIndex     int
	guessRef        string
	guessRound      int
)

var puzzleCmd = &cobra.Command{
	Use:   "puzzle",
	Short: "Play the daily book-guessing puzzle",
	Long: `Inspect and play the daily book-guessing puzzle. Every date maps to
one catalog book; hints unlock round by round and haiku lifelines are
generated from the book's own chapters.`,
}

var puzzleDailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Show the daily puzzle",
	RunE:  runPuzzleDaily,
}

var puzzleEmoticonCmd = &cobra.Command{
	Use:   "emoticons",
	Short: "Reveal the next emoticon of the daily book",
	RunE:  runPuzzleEmoticons,
}

var puzzleHaikuCmd = &cobra.Command{
	Use:   "haiku",
	Short: "Reveal a haiku lifeline",
	RunE:  runPuzzleHaiku,
}

var puzzleReduceCmd = &cobra.Command{
	Use:   "reduce",
	Short: "Narrow the answer list down",
	RunE:  runPuzzleReduce,
}

var puzzleGuessCmd = &cobra.Command{
	Use:   "guess",
	Short: "Submit a guess for the daily book",
	RunE:  runPuzzleGuess,
}

func init() {
	puzzleCmd.PersistentFlags().StringVar(&puzzleDate, "date", "", "Puzzle date as YYYY-MM-DD (default today)")

	puzzleDailyCmd.Flags().BoolVar(&puzzleJSON, "json", false, "Print the puzzle as JSON")
	puzzleDailyCmd.Flags().IntSliceVar(&puzzleRounds, "rounds", nil, "Hint rounds already revealed")
	puzzleDailyCmd.Flags().IntVar(&puzzleEmoticons, "emoticons", 0, "Emoticons already revealed")
	puzzleDailyCmd.Flags().IntVar(&puzzleHaikus, "haikus", 0, "Haiku lifelines already used")

	puzzleEmoticonCmd.Flags().IntVar(&puzzleEmoticons, "visible", puzzle.BaseVisibleEmoticons, "Emoticons visible after the reveal")
	puzzleHaikuCmd.Flags().IntVar(&revealIndex, "index", 0, "Lifeline index (0-based)")

	puzzleGuessCmd.Flags().StringVar(&guessRef, "book", "", "Guessed book reference")
	puzzleGuessCmd.Flags().IntVar(&guessRound, "round", 1, "Current hint round")
	puzzleGuessCmd.MarkFlagRequired("book")

	puzzleCmd.AddCommand(puzzleDailyCmd, puzzleEmoticonCmd, puzzleHaikuCmd, puzzleReduceCmd, puzzleGuessCmd)
	rootCmd.AddCommand(puzzleCmd)
}

func puzzleApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	application, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize app: %w", err)
	}
	return application, nil
}

func resolvedDate() string {
	if puzzleDate != "" {
		return puzzleDate
	}
	return time.Now().UTC().Format("2006-01-02")
}

func runPuzzleDaily(cmd *cobra.Command, args []string) error {
	application, err := puzzleApp(cmd)
	if err != nil {
		return err
	}
	defer application.Close()

	daily, err := application.Puzzle.Daily(cmd.Context(), puzzle.DailyRequest{
		Date:                 resolvedDate(),
		RevealedRounds:       puzzleRounds,
		VisibleEmoticonCount: puzzleEmoticons,
		RevealedHaikuCount:   puzzleHaikus,
	})
	if err != nil {
		return fmt.Errorf("daily puzzle: %w", err)
	}

	if puzzleJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(daily)
	}

	fmt.Printf("Puzzle #%d (%s)\n\n", daily.PuzzleNumber, daily.Date)
	for _, hint := range daily.Hints {
		fmt.Printf("  Round %d [%s]: %s\n", hint.Round, hint.Type, hint.Content)
	}
	for i, h := range daily.Haikus {
		fmt.Printf("\nLifeline %d:\n%s\n", i+1, h)
	}
	fmt.Printf("\nEmoticons in play: %d\n", daily.EmoticonCount)
	fmt.Printf("Candidate books: %d\n", len(daily.AvailableBooks))
	fmt.Printf("Next puzzle: %s\n", daily.NextPuzzleAvailableAt.Format(time.RFC3339))
	return nil
}

func runPuzzleEmoticons(cmd *cobra.Command, args []string) error {
	application, err := puzzleApp(cmd)
	if err != nil {
		return err
	}
	defer application.Close()

	revealed, total, err := application.Puzzle.Emoticons(resolvedDate(), puzzleEmoticons)
	if err != nil {
		return fmt.Errorf("reveal emoticons: %w", err)
	}

	fmt.Printf("%s (%d of %d)\n", revealed, puzzleEmoticons, total)
	return nil
}

func runPuzzleHaiku(cmd *cobra.Command, args []string) error {
	application, err := puzzleApp(cmd)
	if err != nil {
		return err
	}
	defer application.Close()

	haiku, err := application.Puzzle.Haiku(cmd.Context(), resolvedDate(), revealIndex)
	if err != nil {
		return fmt.Errorf("reveal haiku: %w", err)
	}
	if haiku == "" {
		fmt.Println("No more haiku lifelines for this book.")
		return nil
	}

	fmt.Println(haiku)
	return nil
}

func runPuzzleReduce(cmd *cobra.Command, args []string) error {
	application, err := puzzleApp(cmd)
	if err != nil {
		return err
	}
	defer application.Close()

	books, err := application.Puzzle.ReduceBooks(resolvedDate())
	if err != nil {
		return fmt.Errorf("reduce books: %w", err)
	}

	for _, b := range books {
		fmt.Printf("  %s — %s, %s\n", b.Reference, b.Title, b.Author)
	}
	fmt.Printf("\n%d books remain\n", len(books))
	return nil
}

func runPuzzleGuess(cmd *cobra.Command, args []string) error {
	application, err := puzzleApp(cmd)
	if err != nil {
		return err
	}
	defer application.Close()

	result, err := application.Puzzle.SubmitGuess(resolvedDate(), guessRef, guessRound)
	if err != nil {
		return fmt.Errorf("submit guess: %w", err)
	}

	if result.IsCorrect {
		fmt.Printf("Correct! %s — %s\n", result.CorrectBook.Title, result.CorrectBook.Author)
		return nil
	}

	if result.NextHint != nil {
		fmt.Printf("Wrong. Round %d hint [%s]: %s\n", result.NextHint.Round, result.NextHint.Type, result.NextHint.Content)
		return nil
	}

	fmt.Printf("Wrong. The answer was %s — %s\n", result.CorrectBook.Title, result.CorrectBook.Author)
	return nil
}
