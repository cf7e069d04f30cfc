package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rubiojr/r2py/translate"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// Execute runs the r2py CLI with the given version string.
func Execute(version string) {
	cmd := &cli.Command{
		Name:                   "r2py",
		Usage:                  "Translate R scripts to Python",
		Version:                version,
		UseShortOptionHandling: true,
		Flags:                  convertFlags(),
		// Allow `r2py script.R` as shorthand for `r2py convert script.R`
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() > 0 && isRScript(cmd.Args().First()) {
				return convertAction(ctx, cmd)
			}
			return cli.DefaultShowRootCommandHelp(cmd)
		},
		Commands: []*cli.Command{
			{
				Name:      "convert",
				Usage:     "Translate an R file, writing a .py file",
				ArgsUsage: "<input.R> [output.py]",
				Flags:     convertFlags(),
				Action:    convertAction,
			},
			{
				Name:      "emit",
				Usage:     "Translate an R file to standard output",
				ArgsUsage: "<input.R>",
				Flags:     convertFlags(),
				Action:    emitAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func convertFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "indent",
			Aliases: []string{"i"},
			Usage:   "Spaces per indentation level",
			Value:   4,
		},
		&cli.BoolFlag{
			Name:    "annotate",
			Aliases: []string{"a"},
			Usage:   "Mark untranslated constructs with a manual-review comment",
		},
		&cli.BoolFlag{
			Name:    "no-color",
			Aliases: []string{"C"},
			Usage:   "Disable ANSI color output",
		},
	}
}

func convertAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: r2py convert <input.R> [output.py]")
	}
	setupColor(cmd)
	input := cmd.Args().First()
	output := cmd.Args().Get(1)
	if output == "" {
		output = defaultOutputPath(input)
	}

	res, err := translateFile(cmd, input)
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, []byte(res.Output), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	printWarnings(res)
	// Status shares stderr with the warnings; stdout carries only
	// translated output.
	color.New(color.FgGreen).Fprintf(os.Stderr, "conversion complete: %s\n", output)
	return nil
}

func emitAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: r2py emit <input.R>")
	}
	setupColor(cmd)
	res, err := translateFile(cmd, cmd.Args().First())
	if err != nil {
		return err
	}
	printWarnings(res)
	fmt.Print(res.Output)
	return nil
}

func translateFile(cmd *cli.Command, input string) (*translate.Result, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", input, err)
	}
	tr := translate.New(translate.Options{
		IndentWidth:       int(cmd.Int("indent")),
		AnnotateUnhandled: cmd.Bool("annotate"),
	})
	return tr.Translate(string(data)), nil
}

func printWarnings(res *translate.Result) {
	for _, w := range res.Warnings {
		color.New(color.FgYellow).Fprintf(os.Stderr, "warning: %s\n", w)
	}
}

// setupColor disables color when asked to, when NO_COLOR is set, or when
// stderr is not a terminal.
func setupColor(cmd *cli.Command) {
	if cmd.Bool("no-color") || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	} else if !term.IsTerminal(int(os.Stderr.Fd())) {
		color.NoColor = true
	}
}

// defaultOutputPath swaps the input's extension for .py.
func defaultOutputPath(input string) string {
	for _, ext := range []string{".R", ".r"} {
		if strings.HasSuffix(input, ext) {
			return strings.TrimSuffix(input, ext) + ".py"
		}
	}
	return input + ".py"
}

// isRScript checks whether the argument names an existing .R file, for
// the root-command shorthand.
func isRScript(path string) bool {
	if !strings.HasSuffix(path, ".R") && !strings.HasSuffix(path, ".r") {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
