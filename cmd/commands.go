package main

import (
	"fmt"

	"github.com/okian/highscores/internal/adapters/render"
	"github.com/okian/highscores/internal/domain/types"
	"github.com/okian/highscores/pkg/logger"
	"github.com/urfave/cli/v2"
)

const scoresArgsUsage = "[score...]"

// newCommands returns fresh command definitions; cli mutates them on run.
func newCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "summary",
			Usage:     "Print the full report: scores, latest, personal best and top three",
			ArgsUsage: scoresArgsUsage,
			Action:    summaryAction,
		},
		{
			Name:      "latest",
			Usage:     "Print the most recent score, or - when there are none",
			ArgsUsage: scoresArgsUsage,
			Action:    latestAction,
		},
		{
			Name:      "best",
			Usage:     "Print the highest score, or - when there are none",
			ArgsUsage: scoresArgsUsage,
			Action:    bestAction,
		},
		{
			Name:      "top",
			Usage:     "Print up to three highest scores, highest first",
			ArgsUsage: scoresArgsUsage,
			Action:    topAction,
		},
	}
}

// scoresFromArgs parses the command arguments, falling back to the
// configured scores when none are given.
func scoresFromArgs(c *cli.Context) ([]uint32, error) {
	if c.Args().Len() == 0 {
		return getConfig(c).cfg.Scores, nil
	}
	scores, err := types.ParseScores(c.Args().Slice())
	if err != nil {
		logger.Get().Error(c.Context, "rejected scores", logger.Error(err))
		return nil, err
	}
	return scores, nil
}

func summaryAction(c *cli.Context) error {
	ac := getConfig(c)
	scores, err := scoresFromArgs(c)
	if err != nil {
		return err
	}

	r, err := render.New(ac.cfg.Format)
	if err != nil {
		return err
	}

	report, err := ac.svc.Summarize(c.Context, scores)
	if err != nil {
		return err
	}
	return r.Render(c.App.Writer, report)
}

func latestAction(c *cli.Context) error {
	scores, err := scoresFromArgs(c)
	if err != nil {
		return err
	}
	v, ok := getConfig(c).svc.Latest(c.Context, scores)
	return printOptional(c, v, ok)
}

func bestAction(c *cli.Context) error {
	scores, err := scoresFromArgs(c)
	if err != nil {
		return err
	}
	v, ok := getConfig(c).svc.PersonalBest(c.Context, scores)
	return printOptional(c, v, ok)
}

func topAction(c *cli.Context) error {
	scores, err := scoresFromArgs(c)
	if err != nil {
		return err
	}
	top := getConfig(c).svc.PersonalTopThree(c.Context, scores)
	_, err = fmt.Fprintln(c.App.Writer, render.JoinScores(top))
	return err
}

func printOptional(c *cli.Context, v uint32, ok bool) error {
	var p *uint32
	if ok {
		p = &v
	}
	_, err := fmt.Fprintln(c.App.Writer, render.Optional(p))
	return err
}
