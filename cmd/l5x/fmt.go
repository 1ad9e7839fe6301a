package main

import (
	"fmt"

	"github.com/signadot/l5x-format/go-l5x/encode"
	"github.com/signadot/l5x-format/go-l5x/l5x"
	"github.com/signadot/l5x-format/go-l5x/logix"

	"github.com/beevik/etree"
	"github.com/scott-cotton/cli"
)

// fmtTags writes the tags of all files as one Tags element, normalized
// to the forms the encoder writes.
func fmtTags(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		cfg.Fmt.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	var encOpts []encode.EncodeOption
	if cfg.Data != "" {
		form, err := logix.ParseDataForm(cfg.Data)
		if err != nil {
			return fmt.Errorf("%w: -data: %w", cli.ErrUsage, err)
		}
		encOpts = append(encOpts, encode.StringDataForm(form))
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	root := doc.CreateElement(l5x.TagsElement)
	for _, file := range files(args) {
		tags, err := loadTags(cfg.MainConfig, cc, file)
		if err != nil {
			return err
		}
		for _, tag := range tags {
			el, err := encode.Tag(tag, encOpts...)
			if err != nil {
				return fmt.Errorf("error encoding %s in %s: %w", tag.Name(), file, err)
			}
			root.AddChild(el)
		}
	}
	doc.Indent(2)
	_, err = doc.WriteTo(cc.Out)
	return err
}
