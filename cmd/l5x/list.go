package main

import (
	"fmt"

	"github.com/signadot/l5x-format/go-l5x/logix"
	"github.com/signadot/l5x-format/go-l5x/logix/tagname"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"
)

func list(cfg *ListConfig, cc *cli.Context, args []string) error {
	args, err := cfg.List.Parse(cc, args)
	if err != nil {
		cfg.List.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	var prg *vm.Program
	if cfg.Where != "" {
		prg, err = expr.Compile(cfg.Where, expr.Env(listEnv(nil, "")), expr.AsBool())
		if err != nil {
			return fmt.Errorf("%w: -where: %w", cli.ErrUsage, err)
		}
	}
	var nameOpts []logix.NameOption
	if cfg.Bits {
		nameOpts = append(nameOpts, logix.IncludeBits())
	}
	for _, file := range files(args) {
		tags, err := loadTags(cfg.MainConfig, cc, file)
		if err != nil {
			return err
		}
		for _, tag := range tags {
			root := tagname.Combine(tag.Name())
			if err := listOne(cc, prg, tag, root); err != nil {
				return err
			}
			for p := range logix.AllNames(tag, nameOpts...) {
				if err := listOne(cc, prg, logix.Resolve(tag, p), root.Append(p.Segments()...)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func listOne(cc *cli.Context, prg *vm.Program, m *logix.Member, name tagname.TagName) error {
	if prg != nil {
		res, err := expr.Run(prg, listEnv(m, name))
		if err != nil {
			return fmt.Errorf("-where at %s: %w", name, err)
		}
		if !res.(bool) {
			return nil
		}
	}
	_, err := fmt.Fprintln(cc.Out, name)
	return err
}

// listEnv is the -where environment of m. A nil m gives the zero
// environment used to type check the expression.
func listEnv(m *logix.Member, name tagname.TagName) map[string]any {
	env := map[string]any{
		"name":  name.String(),
		"kind":  "",
		"type":  "",
		"value": "",
		"num":   float64(0),
		"depth": name.Depth(),
	}
	if m == nil {
		return env
	}
	v := m.Value()
	env["kind"] = v.Kind().String()
	env["type"] = v.TypeName()
	switch x := v.(type) {
	case logix.Atomic:
		env["value"] = x.String()
		env["num"] = x.Float64()
	case *logix.String:
		env["value"] = x.Text()
	}
	return env
}
