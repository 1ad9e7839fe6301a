package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/l5x-format/go-l5x/encode"
	"github.com/signadot/l5x-format/go-l5x/logix"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	from, err := loadTags(cfg.MainConfig, cc, args[0])
	if err != nil {
		return err
	}
	to, err := loadTags(cfg.MainConfig, cc, args[1])
	if err != nil {
		return err
	}
	a, err := render(from)
	if err != nil {
		return err
	}
	b, err := render(to)
	if err != nil {
		return err
	}
	differs, err := diffText(cc.Out, a, b, cfg.colored(cc.Out))
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func render(tags []*logix.Member) (string, error) {
	buf := &bytes.Buffer{}
	for _, tag := range tags {
		if err := encode.Text(tag, buf); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// diffText writes the lines that differ between a and b, prefixed by
// - and + respectively, and reports whether there were any.
func diffText(w io.Writer, a, b string, colored bool) (bool, error) {
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	del, ins := fmt.Sprint, fmt.Sprint
	if colored {
		del = color.New(color.FgRed).Sprint
		ins = color.New(color.FgGreen).Sprint
	}
	differs := false
	for _, d := range diffs {
		var mark string
		var paint func(...any) string
		switch d.Type {
		case diffpatch.DiffEqual:
			continue
		case diffpatch.DiffDelete:
			mark, paint = "-", del
		case diffpatch.DiffInsert:
			mark, paint = "+", ins
		}
		differs = true
		for _, ln := range strings.SplitAfter(d.Text, "\n") {
			if ln == "" {
				continue
			}
			if _, err := io.WriteString(w, paint(mark+ln)); err != nil {
				return differs, err
			}
			if !strings.HasSuffix(ln, "\n") {
				io.WriteString(w, "\n")
			}
		}
	}
	return differs, nil
}
