package config

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ytget/yt-batch/internal/model"
	"github.com/ytget/yt-batch/internal/platform"
)

// Prompt limits
const (
	MaxRangeAttempts = 5
)

// Prompt texts
const (
	promptInputFile = "Enter video links filename (default: %s): "
	promptFolder    = "Enter download folder name (default: %s): "
	promptRange     = "Enter the range (start,end) e.g., '1,100': "
)

var (
	// ErrUsage is returned for argument counts the command does not understand
	ErrUsage = errors.New("expected: start end [input_file] [folder]")

	// ErrRangeArgs is returned when start or end is not an integer
	ErrRangeArgs = errors.New("please provide valid integers for start and end numbers")

	// ErrNoRange is returned when the range could not be obtained interactively
	ErrNoRange = errors.New("unable to get range input, please use command line arguments")
)

// Prompter asks the user a single question
type Prompter interface {
	Prompt(label string) (string, error)
}

// Resolver turns positional arguments and interactive answers into a Config
type Resolver struct {
	Prompter Prompter
	Out      io.Writer
}

// Resolve applies `start end [input_file] [folder]` to base. With fewer
// than two arguments every value is asked for. The returned Config has a structurally
// valid range and an existing input file; the range is checked against the
// list length later, once the list is loaded.
func (r *Resolver) Resolve(args []string, base Config) (Config, error) {
	cfg := base

	interactive := len(args) < 2

	switch {
	case interactive:
		if err := r.promptFiles(&cfg); err != nil {
			return Config{}, err
		}
	case len(args) >= 2 && len(args) <= 4:
		rng, err := parseRangeArgs(args[0], args[1])
		if err != nil {
			return Config{}, err
		}
		cfg.Range = rng
		if len(args) >= 3 && strings.TrimSpace(args[2]) != "" {
			cfg.InputFile = strings.TrimSpace(args[2])
		}
		if len(args) == 4 && strings.TrimSpace(args[3]) != "" {
			cfg.DownloadFolder = strings.TrimSpace(args[3])
		}
	default:
		return Config{}, ErrUsage
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if err := cfg.CheckInputFile(); err != nil {
		return Config{}, err
	}

	if interactive {
		rng, err := r.promptRange()
		if err != nil {
			return Config{}, err
		}
		cfg.Range = rng
	}
	return cfg, nil
}

// promptFiles asks for the list file and the folder. Closing the input
// keeps the current values.
func (r *Resolver) promptFiles(cfg *Config) error {
	if r.Prompter == nil {
		return ErrUsage
	}

	input, err := r.Prompter.Prompt(fmt.Sprintf(promptInputFile, cfg.InputFile))
	if errors.Is(err, platform.ErrPromptClosed) {
		r.printf("\nUsing default values: %s and %s folder\n", cfg.InputFile, cfg.DownloadFolder)
		return nil
	}
	if err != nil {
		return err
	}
	if input != "" {
		cfg.InputFile = input
	}

	folder, err := r.Prompter.Prompt(fmt.Sprintf(promptFolder, cfg.DownloadFolder))
	if errors.Is(err, platform.ErrPromptClosed) {
		r.printf("\nUsing default folder: %s\n", cfg.DownloadFolder)
		return nil
	}
	if err != nil {
		return err
	}
	if folder != "" {
		cfg.DownloadFolder = folder
	}
	return nil
}

// promptRange asks for "start,end" until it parses or attempts run out
func (r *Resolver) promptRange() (model.Range, error) {
	for attempt := 1; attempt <= MaxRangeAttempts; attempt++ {
		answer, err := r.Prompter.Prompt(promptRange)
		if errors.Is(err, platform.ErrPromptClosed) {
			return model.Range{}, ErrNoRange
		}
		if err != nil {
			return model.Range{}, err
		}

		rng, err := ParseRange(answer)
		if err == nil {
			return rng, nil
		}
		r.printf("Invalid input. Please enter in format: start,end (e.g., 1,100)\n")
	}
	return model.Range{}, fmt.Errorf("%w: no valid range after %d attempts", ErrNoRange, MaxRangeAttempts)
}

// ParseRange parses "start,end"
func ParseRange(s string) (model.Range, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return model.Range{}, fmt.Errorf("expected start,end: %q", s)
	}
	return parseRangeArgs(parts[0], parts[1])
}

func parseRangeArgs(startArg, endArg string) (model.Range, error) {
	start, err := strconv.Atoi(strings.TrimSpace(startArg))
	if err != nil {
		return model.Range{}, fmt.Errorf("%w: start %q", ErrRangeArgs, startArg)
	}
	end, err := strconv.Atoi(strings.TrimSpace(endArg))
	if err != nil {
		return model.Range{}, fmt.Errorf("%w: end %q", ErrRangeArgs, endArg)
	}
	return model.Range{Start: start, End: end}, nil
}

func (r *Resolver) printf(format string, args ...any) {
	if r.Out == nil {
		return
	}
	fmt.Fprintf(r.Out, format, args...)
}
