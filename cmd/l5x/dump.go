package main

import (
	"io"

	"github.com/signadot/l5x-format/go-l5x/logix"

	"github.com/goccy/go-yaml"
)

// tree is the yaml view of a member: atomics and strings become their
// formatted value, composites a mapping of their members in order.
func tree(m *logix.Member) any {
	switch v := m.Value().(type) {
	case *logix.Array, *logix.Structure:
		res := yaml.MapSlice{}
		for _, c := range v.Members() {
			res = append(res, yaml.MapItem{Key: c.Name(), Value: tree(c)})
		}
		return res
	case *logix.String:
		return v.Text()
	case logix.Atomic:
		return v.String()
	}
	return nil
}

func dump(cfg *MainConfig, w io.Writer, ms []*logix.Member, names []string) error {
	doc := yaml.MapSlice{}
	for i, m := range ms {
		doc = append(doc, yaml.MapItem{Key: names[i], Value: tree(m)})
	}
	var opts []yaml.EncodeOption
	if cfg.J {
		opts = append(opts, yaml.JSON())
	}
	d, err := yaml.MarshalWithOptions(doc, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}
