package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/robalobadob/lexique/internal/game"
	"github.com/robalobadob/lexique/internal/lexicon"
)

var hangmanCmd = &cobra.Command{
	Use:   "hangman",
	Short: "Play hangman in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return playHangman(cmd.InOrStdin(), cmd.OutOrStdout(), lexicon.Default().Playable(), game.CryptoRand)
	},
}

// playHangman runs rounds until input ends or the player types "quit".
// Each line is one guess; after a finished round any line starting with "y" starts another.
func playHangman(in io.Reader, out io.Writer, entries []lexicon.Entry, rnd game.Rand) error {
	h, err := game.NewHangman(entries, rnd)
	if err != nil {
		return fmt.Errorf("start hangman: %w", err)
	}
	defer h.Close()

	sc := bufio.NewScanner(in)
	snap := h.Snapshot()
	renderHangman(out, snap)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.EqualFold(line, "quit") {
			return nil
		}
		if snap.State != game.StatePlaying {
			if !strings.HasPrefix(strings.ToLower(line), "y") {
				return nil
			}
			snap = h.Restart()
		} else {
			snap = h.Guess(line)
		}
		renderHangman(out, snap)
	}
	return sc.Err()
}

func renderHangman(out io.Writer, s game.HangmanSnapshot) {
	word := strings.Join(lo.Map(s.Tiles, func(t game.Tile, _ int) string { return t.Char }), " ")
	fmt.Fprintf(out, "\n  %s\n", word)
	if s.PartOfSpeech != "" {
		fmt.Fprintf(out, "  (%s)\n", s.PartOfSpeech)
	}
	fmt.Fprintf(out, "  errors %d/%d  guessed [%s]\n", s.Errors, s.MaxErrors, strings.Join(s.Guessed, " "))

	switch s.State {
	case game.StateWon:
		fmt.Fprintf(out, "Gagné ! %s = %s\nAgain? (y/n) ", s.Answer.Term, s.Answer.Translation)
	case game.StateLost:
		fmt.Fprintf(out, "Perdu. %s = %s\nAgain? (y/n) ", s.Answer.Term, s.Answer.Translation)
	default:
		fmt.Fprint(out, "letter> ")
	}
}

func init() {
	rootCmd.AddCommand(hangmanCmd)
}
