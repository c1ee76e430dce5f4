package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bietkhonhungvandi212/pagesim/internal/driver"
	"github.com/bietkhonhungvandi212/pagesim/internal/paging"
	"github.com/chzyer/readline"
	"go.uber.org/zap"
)

var errQuit = errors.New("quit")

// shell maps command lines to engine and driver calls.
type shell struct {
	engine *paging.Engine
	driver *driver.Driver
	out    io.Writer
	logger *zap.Logger
}

const helpText = `Commands:
  new [frames] [pages]     start a process (configured frames, random page count by default)
  start <frames> <id>...   start a process with the given page ids
  algo [FIFO|LRU|Optimal|CLOCK]
                           show or select the replacement algorithm (reset first)
  access <id>              reference one page
  random [n]               reference n random pages (default 1)
  run <id>...              run a reference string at once
  play <id>...             replay a reference string step by step
  play -n <count>          play count random references step by step
  state                    frames, page table and replacement order
  stats [history]          counters, and the access history when asked
  validate                 check paging invariants
  reset                    discard the current process
  help
  quit / exit`

func (s *shell) completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("new"),
		readline.PcItem("start"),
		readline.PcItem("algo",
			readline.PcItem("FIFO"),
			readline.PcItem("LRU"),
			readline.PcItem("Optimal"),
			readline.PcItem("CLOCK"),
		),
		readline.PcItem("access"),
		readline.PcItem("random"),
		readline.PcItem("run"),
		readline.PcItem("play", readline.PcItem("-n")),
		readline.PcItem("state"),
		readline.PcItem("stats", readline.PcItem("history")),
		readline.PcItem("validate"),
		readline.PcItem("reset"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
		readline.PcItem("exit"),
	)
}

// execute runs one command. It returns errQuit when the shell should stop.
func (s *shell) execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return nil
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "new":
		return s.newProcess(rest)
	case "start":
		if len(rest) < 1 {
			return errors.New("start requires <frames> <id>...")
		}
		frames, err := strconv.Atoi(rest[0])
		if err != nil {
			return fmt.Errorf("frames: %w", err)
		}
		h, err := s.engine.StartProcess(frames, rest[1:])
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Process %d started: %d frames, %d pages, %s\n", h.Number, h.Capacity, len(h.Pages), h.Algorithm)
	case "algo":
		if len(rest) == 0 {
			fmt.Fprintf(s.out, "Algorithm: %s\n", s.engine.Algorithm())
			return nil
		}
		if err := s.engine.SetAlgorithm(rest[0]); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Algorithm: %s\n", s.engine.Algorithm())
	case "access":
		if len(rest) != 1 {
			return errors.New("access requires exactly one <id>")
		}
		rec, err := s.engine.Access(rest[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, rec)
	case "random":
		n := 1
		if len(rest) > 0 {
			v, err := strconv.Atoi(rest[0])
			if err != nil || v < 1 {
				return fmt.Errorf("random: invalid count %q", rest[0])
			}
			n = v
		}
		for range n {
			rec, err := s.driver.RandomAccess()
			if err != nil {
				return err
			}
			fmt.Fprintln(s.out, rec)
		}
	case "run":
		records, err := s.engine.RunSequence(rest)
		if err != nil {
			return err
		}
		renderRecords(s.out, records)
	case "play":
		return s.play(ctx, rest)
	case "state":
		renderState(s.out, s.engine.GetState())
	case "stats":
		withHistory := false
		if len(rest) > 0 {
			if len(rest) > 1 || rest[0] != "history" {
				return fmt.Errorf("stats: unknown argument %q", strings.Join(rest, " "))
			}
			withHistory = true
		}
		renderStats(s.out, s.engine.GetStatistics(), withHistory)
	case "validate":
		if err := s.engine.Validate(); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Invariants hold.")
	case "reset":
		s.engine.Reset()
		fmt.Fprintln(s.out, "Simulation reset.")
	case "help":
		fmt.Fprintln(s.out, helpText)
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q, type 'help' for a list of commands", cmd)
	}
	return nil
}

func (s *shell) newProcess(args []string) error {
	frames := s.engine.Options().Frames
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("frames: %w", err)
		}
		frames = v
	}

	var (
		h   paging.ProcessHandle
		err error
	)
	if len(args) > 1 {
		pages, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			return fmt.Errorf("pages: %w", convErr)
		}
		h, err = s.engine.SpawnProcess(frames, pages)
	} else {
		h, err = s.driver.NewProcess(frames)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Process %d started: %d frames, %d pages, %s\n", h.Number, h.Capacity, len(h.Pages), h.Algorithm)
	return nil
}

// play replays page ids verbatim. Random playback needs the explicit "-n <count>" form
// so numeric page ids are never mistaken for a count.
func (s *shell) play(ctx context.Context, args []string) error {
	ids := args
	if len(args) > 0 && args[0] == "-n" {
		if len(args) != 2 {
			return errors.New("play -n requires exactly one <count>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return fmt.Errorf("play: invalid count %q", args[1])
		}
		if ids, err = s.driver.RandomSequence(n); err != nil {
			return err
		}
	}

	tw := newTable(s.out)
	fmt.Fprintln(tw, "SEQ\tPAGE\tOUTCOME\tFRAME\tEVICTED")
	tw.Flush()
	records, err := s.driver.Play(ctx, ids, func(rec paging.AccessRecord) {
		writeRecordRow(tw, rec)
		tw.Flush()
	})
	s.logger.Debug("play finished", zap.Int("played", len(records)), zap.Error(err))
	return err
}
