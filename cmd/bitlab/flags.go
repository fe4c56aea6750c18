package main

import (
	"github.com/spf13/pflag"

	"github.com/wippyai/bitlab"
)

// widthValue is a pflag.Value accepting only supported widths.
type widthValue struct {
	w *bitlab.Width
}

var _ pflag.Value = widthValue{}

func newWidthValue(p *bitlab.Width, def bitlab.Width) widthValue {
	*p = def
	return widthValue{w: p}
}

func (v widthValue) String() string {
	if v.w == nil {
		return ""
	}
	return v.w.String()
}

func (v widthValue) Set(s string) error {
	w, err := bitlab.ParseWidth(s)
	if err != nil {
		return err
	}
	*v.w = w
	return nil
}

func (widthValue) Type() string { return "width" }

// radixValue is a pflag.Value accepting 2, 8, 10 or 16.
type radixValue struct {
	r *bitlab.Radix
}

var _ pflag.Value = radixValue{}

func newRadixValue(p *bitlab.Radix, def bitlab.Radix) radixValue {
	*p = def
	return radixValue{r: p}
}

func (v radixValue) String() string {
	if v.r == nil {
		return ""
	}
	return v.r.String()
}

func (v radixValue) Set(s string) error {
	r, err := bitlab.ParseRadix(s)
	if err != nil {
		return err
	}
	*v.r = r
	return nil
}

func (radixValue) Type() string { return "radix" }
