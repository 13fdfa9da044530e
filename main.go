package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/RednibCoding/FlatBasic/errors"
	"github.com/RednibCoding/FlatBasic/frontend"
	"github.com/RednibCoding/FlatBasic/project"
	"github.com/RednibCoding/FlatBasic/repl"
	"github.com/alecthomas/repr"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
)

// sourceFile returns the file named on the command line, or the entry file
// of the project in the working directory.
func sourceFile(c *cli.Context) (string, error) {
	if file := c.Args().First(); file != "" {
		return file, nil
	}

	m, err := project.Load(".")
	if err != nil {
		return "", fmt.Errorf("no source file given and %w", err)
	}
	return m.EntryPath("."), nil
}

func readSource(c *cli.Context) (string, string, error) {
	file, err := sourceFile(c)
	if err != nil {
		return "", "", err
	}
	data, err := ioutil.ReadFile(file)
	if err != nil {
		return "", "", err
	}
	return string(data), file, nil
}

// report prints a front end error and turns it into the process exit code.
func report(c *cli.Context, err error) error {
	if c.Bool("trace") {
		tracerr.PrintSourceColor(err)
	}
	return cli.Exit(errors.Format(err), 1)
}

var traceFlag = &cli.BoolFlag{
	Name:  "trace",
	Usage: "print the Go stack trace of a failure",
	Value: false,
}

func main() {
	app := &cli.App{
		Name:  "flatbasic",
		Usage: "FlatBasic front end",
		ExitErrHandler: func(context *cli.Context, err error) {
			if err == nil {
				return
			}
			if exit, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, exit.Error())
				os.Exit(exit.ExitCode())
			}
			log.Fatalf("error with flatbasic: %v", err)
		},
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "init a project directory",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					m, err := project.Init(".", c.Args().First())
					if err != nil {
						return err
					}
					fmt.Printf("created %s with entry %s\n", project.ManifestName, m.Entry)
					return nil
				},
			},
			{
				Name:      "check",
				Usage:     "check that a program is well-formed",
				ArgsUsage: "[file]",
				Flags:     []cli.Flag{traceFlag},
				Action: func(c *cli.Context) error {
					file, err := sourceFile(c)
					if err != nil {
						return err
					}
					if _, err := frontend.CheckFile(file); err != nil {
						return report(c, err)
					}
					fmt.Printf("%s: ok\n", file)
					return nil
				},
			},
			{
				Name:      "ast",
				Usage:     "dump the syntax tree of a program",
				ArgsUsage: "[file]",
				Flags:     []cli.Flag{traceFlag},
				Action: func(c *cli.Context) error {
					text, file, err := readSource(c)
					if err != nil {
						return err
					}
					prog, err := frontend.Parse(text, file)
					if err != nil {
						return report(c, err)
					}
					repr.Println(prog, repr.Indent("  "), repr.OmitEmpty(true))
					return nil
				},
			},
			{
				Name:      "tokens",
				Usage:     "list the tokens of a program",
				ArgsUsage: "[file]",
				Flags:     []cli.Flag{traceFlag},
				Action: func(c *cli.Context) error {
					text, file, err := readSource(c)
					if err != nil {
						return err
					}
					toks, err := frontend.Tokenize(text, file)
					for _, tok := range toks {
						fmt.Printf("%d:%d\t%s\t%q\n", tok.Pos.Line, tok.Pos.Column, tok.Kind, tok.Text)
					}
					if err != nil {
						return report(c, err)
					}
					return nil
				},
			},
			{
				Name:  "repl",
				Usage: "check a program interactively, line by line",
				Action: func(c *cli.Context) error {
					repl.Run()
					return nil
				},
			},
		},
	}
	app.Run(os.Args)
}
