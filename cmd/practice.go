package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/speakplan/internal/planner"
	"github.com/abhisek/speakplan/internal/practice"
	"github.com/abhisek/speakplan/internal/ui/components"
	"github.com/abhisek/speakplan/internal/ui/layout"
	"github.com/abhisek/speakplan/internal/ui/theme"
)

var practiceCmd = &cobra.Command{
	Use:   "practice part1|part2|part3|random",
	Short: "Run a speaking practice round",
	Long: `Runs one practice round in the terminal. Part 1 gives 30 seconds per answer.
Part 2 gives one minute of preparation and up to two minutes of speaking.
Part 3 walks through discussion questions with no time limit: press Enter to
start or stop answering, n and p to move between questions, q to finish.
Random talk picks an open prompt. Press Ctrl+C to stop a timed round early.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(practice.KindPart1), string(practice.KindPart2), string(practice.KindPart3), string(practice.KindRandom)},
	RunE:      runPractice,
}

func init() {
	practiceCmd.Flags().Int("duration", practice.DefaultRandomTalkSeconds, "Random talk length in seconds (30, 60 or 120)")
	practiceCmd.Flags().Duration("tick", time.Second, "Clock interval")
	practiceCmd.Flags().MarkHidden("tick")
}

func runPractice(cmd *cobra.Command, args []string) error {
	kind := practice.RoundKind(args[0])
	seconds, _ := cmd.Flags().GetInt("duration")
	tick, _ := cmd.Flags().GetDuration("tick")
	if kind != practice.KindRandom {
		seconds = 0
	}

	round, err := practice.RoundFor(kind, seconds)
	if err != nil {
		return err
	}

	styled, width := terminalStyle(cmd)
	p := layout.Painter(styled)
	out := cmd.OutOrStdout()

	if kind == practice.KindPart3 {
		return runDiscussion(cmd.InOrStdin(), out, p)
	}

	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	fmt.Fprintln(out, p.Paint(theme.Title, promptTitle(kind)))
	fmt.Fprintln(out, p.Paint(theme.Body, promptFor(kind, rng)))
	fmt.Fprintln(out)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	rec := practice.NewRecorder(nil)
	results, err := round.Run(ctx, rec, tick, func(ph practice.Phase, t *practice.Timer) {
		renderTick(out, p, width, ph, t, rec)
	})
	fmt.Fprintln(out)

	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(out, p.Paint(theme.Hint, "Stopped."))
	} else if err != nil {
		return err
	}

	for _, r := range results {
		line := fmt.Sprintf("%-12s %s", r.Phase.Name, formatSeconds(r.Elapsed))
		if r.Phase.Records {
			line += fmt.Sprintf("  spoke %s", r.Spoken.Round(time.Second))
		}
		fmt.Fprintln(out, p.Paint(theme.Subtitle, line))
	}
	return nil
}

func renderTick(w io.Writer, p layout.Painter, width int, ph practice.Phase, t *practice.Timer, rec *practice.Recorder) {
	clock := t.Display()
	if t.Mode() == practice.Countdown && t.IsLow() {
		clock = p.Paint(theme.TimerLow, clock)
	} else {
		clock = p.Paint(theme.Body, clock)
	}

	bar := components.ProgressBar{Percent: t.Progress() / 100, Width: width / 3, Styled: bool(p)}

	status := ""
	if rec.State() == practice.RecorderRecording {
		status = "  " + p.Paint(theme.Recording, "● REC")
	}
	fmt.Fprintf(w, "\r%-12s %s  %s%s", ph.Name, clock, bar.View(), status)
}

func promptTitle(kind practice.RoundKind) string {
	switch kind {
	case practice.KindPart1:
		return "Part 1 · Interview"
	case practice.KindPart2:
		return "Part 2 · Cue card"
	case practice.KindPart3:
		return "Part 3 · Discussion"
	}
	return "Random talk"
}

func promptFor(kind practice.RoundKind, rng *rand.Rand) string {
	switch kind {
	case practice.KindPart1:
		pool := planner.TopicPools[planner.TypePart1]
		return "Let's talk about " + pool[rng.IntN(len(pool))] + "."
	case practice.KindPart2:
		pool := planner.TopicPools[planner.TypePart2]
		return pool[rng.IntN(len(pool))] + " you remember well."
	}
	return practice.RandomTopic(rng)
}

// runDiscussion drives an untimed Part 3 round from line commands on in.
// An empty line toggles recording. Input ending counts as q.
func runDiscussion(in io.Reader, out io.Writer, p layout.Painter) error {
	d, err := practice.NewDiscussion(practice.DiscussionTopic, practice.DiscussionQuestions, nil)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, p.Paint(theme.Title, promptTitle(practice.KindPart3)+" · "+d.Topic))
	fmt.Fprintln(out, p.Paint(theme.Hint, "Take your time, there is no strict limit for Part 3."))
	showQuestion(out, p, d)

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		switch strings.ToLower(strings.TrimSpace(sc.Text())) {
		case "":
			recording, err := d.Toggle()
			if err != nil {
				return err
			}
			if recording {
				fmt.Fprintln(out, p.Paint(theme.Recording, "● REC")+p.Paint(theme.Hint, "  press Enter when done"))
				continue
			}
			i, _ := d.Current()
			fmt.Fprintln(out, p.Paint(theme.Subtitle, fmt.Sprintf("Answered in %s · %s answered", d.Spoken(i).Round(time.Second), d.Tally())))
		case "n":
			if !d.Next() {
				fmt.Fprintln(out, p.Paint(theme.Hint, "That was the last question."))
				continue
			}
			showQuestion(out, p, d)
		case "p":
			if !d.Previous() {
				fmt.Fprintln(out, p.Paint(theme.Hint, "Already on the first question."))
				continue
			}
			showQuestion(out, p, d)
		case "q":
			return finishDiscussion(out, p, d)
		default:
			fmt.Fprintln(out, p.Paint(theme.Hint, "Enter toggles recording, n next, p previous, q quit."))
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return finishDiscussion(out, p, d)
}

func showQuestion(out io.Writer, p layout.Painter, d *practice.Discussion) {
	i, q := d.Current()
	fmt.Fprintln(out)
	fmt.Fprintln(out, p.Paint(theme.Subtitle, fmt.Sprintf("Question %d of %d", i+1, d.Total())))
	fmt.Fprintln(out, p.Paint(theme.Body, q))
}

func finishDiscussion(out io.Writer, p layout.Painter, d *practice.Discussion) error {
	fmt.Fprintln(out)
	fmt.Fprintln(out, p.Paint(theme.Subtitle, "Questions answered "+d.Tally()))
	return nil
}

func formatSeconds(s int) string {
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
