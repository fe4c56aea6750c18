package main

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/bitlab"
	"github.com/wippyai/bitlab/adder"
	"github.com/wippyai/bitlab/bitwise"
	"github.com/wippyai/bitlab/compat"
	"github.com/wippyai/bitlab/errors"
	"github.com/wippyai/bitlab/fixed"
	"github.com/wippyai/bitlab/radix"
	"github.com/wippyai/bitlab/segment"
)

func newConvertCmd(a *app) *cobra.Command {
	var from, to bitlab.Radix

	cmd := &cobra.Command{
		Use:   "convert [VALUE]",
		Short: "Show a value in binary, octal, decimal and hexadecimal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := a.cfg.Converter.Value
			if len(args) == 1 {
				value = args[0]
			}
			if !cmd.Flags().Changed("from") {
				from = a.cfg.Converter.From
			}

			if cmd.Flags().Changed("to") {
				out, err := radix.Rebase(value, from, to)
				if err != nil {
					return err
				}
				return a.out.emit(map[string]any{"value": value, "from": from, "to": to, "digits": out}, func() {
					a.out.line("%s", out)
				})
			}

			rows := radix.Table(value, from)
			if rows[0].Digits == radix.ErrorSentinel {
				a.log.Warn("unparseable value", zap.String("value", value), zap.Stringer("from", from))
			}
			return a.out.emit(rows, func() {
				body := make([][]string, 0, len(rows))
				for _, r := range rows {
					body = append(body, []string{r.Radix.String(), r.Name, r.String()})
				}
				a.out.table([]string{"Base", "Name", "Value"}, body)
			})
		},
	}
	cmd.Flags().Var(newRadixValue(&from, bitlab.Decimal), "from", "radix VALUE is written in")
	cmd.Flags().Var(newRadixValue(&to, bitlab.Binary), "to", "print only this radix")
	return cmd
}

func newTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the built-in integer types",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.out.emit(fixed.DataTypes, func() {
				body := make([][]string, 0, len(fixed.DataTypes))
				for _, t := range fixed.DataTypes {
					body = append(body, []string{
						t.Name,
						t.Width.String(),
						strconv.FormatBool(t.Signed),
						strconv.Itoa(t.Bytes()),
						t.Summary(),
						t.Description,
					})
				}
				a.out.table([]string{"Type", "Bits", "Signed", "Bytes", "Range", "Description"}, body)
			})
		},
	}
}

type encodeResult struct {
	Type    fixed.DataType `json:"type"`
	Input   string         `json:"input"`
	Decimal *big.Int       `json:"decimal"`
	Clamped bool           `json:"clamped"`
	Binary  string         `json:"binary"`
	Bytes   []string       `json:"bytes"`
	Hex     string         `json:"hex"`
}

func newEncodeCmd(a *app) *cobra.Command {
	var (
		typeName string
		width    bitlab.Width
		signed   bool
	)

	cmd := &cobra.Command{
		Use:   "encode [VALUE]",
		Short: "Store a decimal value in a fixed-width type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := a.cfg.Encoder.Value
			if len(args) == 1 {
				input = args[0]
			}
			if !cmd.Flags().Changed("type") {
				typeName = a.cfg.Encoder.Type
			}

			t, err := fixed.LookupType(typeName)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("width") {
				t = fixed.DataType{
					Name:        "custom",
					Width:       width,
					Signed:      signed,
					Description: fmt.Sprintf("%d-bit %s integer", width, signedness(signed)),
				}
			}

			v, err := fixed.FromInput(input, t)
			if err != nil {
				return err
			}
			res := encodeResult{
				Type:    t,
				Input:   input,
				Decimal: v.Decimal(),
				Clamped: v.Decimal().Cmp(radix.ParseOrZero(input)) != 0,
				Binary:  v.Binary(),
				Bytes:   v.Bytes(),
				Hex:     radix.Format(new(big.Int).Mod(v.Decimal(), t.Width.Modulus()), bitlab.Hex),
			}
			return a.out.emit(res, func() {
				a.out.table([]string{"Field", "Value"}, [][]string{
					{"Type", fmt.Sprintf("%s (%s)", t.Name, t.Description)},
					{"Range", t.Summary()},
					{"Decimal", res.Decimal.String()},
					{"Clamped", strconv.FormatBool(res.Clamped)},
					{"Binary", strings.Join(res.Bytes, " ")},
					{"Hex", "0x" + res.Hex},
				})
			})
		},
	}
	cmd.Flags().StringVarP(&typeName, "type", "t", "int", "data type (see 'bitlab types')")
	cmd.Flags().Var(newWidthValue(&width, bitlab.Width8), "width", "custom width instead of a named type")
	cmd.Flags().BoolVar(&signed, "signed", false, "custom width is signed")
	return cmd
}

func signedness(signed bool) string {
	if signed {
		return "signed"
	}
	return "unsigned"
}

func newDecodeCmd(a *app) *cobra.Command {
	var signed bool

	cmd := &cobra.Command{
		Use:   "decode BITS",
		Short: "Read a bit string as an integer",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			v, err := fixed.Decode(args[0], signed)
			if err != nil {
				return err
			}
			return a.out.emit(map[string]any{"bits": args[0], "signed": signed, "decimal": v}, func() {
				a.out.line("%s", v)
			})
		},
	}
	cmd.Flags().BoolVar(&signed, "signed", false, "read as two's complement")
	return cmd
}

func newToggleCmd(a *app) *cobra.Command {
	var signed bool

	cmd := &cobra.Command{
		Use:   "toggle BITS POSITION",
		Short: "Flip one bit, counting from the most significant bit at 0",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			pos, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.New(errors.PhaseDecode, errors.KindInvalidInput).
					Input(args[1]).
					Detail("position must be an integer").
					Cause(err).
					Build()
			}
			bits, v, err := fixed.Toggle(args[0], pos, signed)
			if err != nil {
				return err
			}
			return a.out.emit(map[string]any{"bits": bits, "decimal": v}, func() {
				a.out.line("%s  (%s)", bits, v)
			})
		},
	}
	cmd.Flags().BoolVar(&signed, "signed", false, "read as two's complement")
	return cmd
}

type bitwiseRow struct {
	bitwise.Result
	Compat *int64 `json:"compat32,omitempty"`
}

func newBitwiseCmd(a *app) *cobra.Command {
	var (
		width      bitlab.Width
		withCompat bool
	)

	cmd := &cobra.Command{
		Use:   "bitwise [A] [B]",
		Short: "Apply AND, OR, XOR, NOT, shifts to two operands",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			as, bs := a.cfg.Bitwise.A, a.cfg.Bitwise.B
			if len(args) > 0 {
				as = args[0]
			}
			if len(args) > 1 {
				bs = args[1]
			}
			if !cmd.Flags().Changed("width") {
				width = a.cfg.Bitwise.Width
			}
			x, y := radix.ParseOrZero(as), radix.ParseOrZero(bs)

			results, err := bitwise.Evaluate(x, y, width)
			if err != nil {
				return err
			}
			rows := make([]bitwiseRow, len(results))
			for i, r := range results {
				rows[i].Result = r
			}

			if withCompat {
				ctx := cmd.Context()
				e, err := compat.New(ctx)
				if err != nil {
					return err
				}
				defer e.Close(ctx)
				for i := range rows {
					v, err := e.Apply(ctx, rows[i].Op, x, y, width)
					if err != nil {
						return err
					}
					rows[i].Compat = &v
				}
			}

			return a.out.emit(rows, func() {
				header := []string{"Op", "Symbol", "Decimal", "Binary"}
				if withCompat {
					header = append(header, "32-bit")
				}
				body := make([][]string, 0, len(rows))
				for _, r := range rows {
					line := []string{r.Op.Name(), r.Symbol, r.Value.String(), r.Binary}
					if r.Compat != nil {
						line = append(line, strconv.FormatInt(*r.Compat, 10))
					}
					body = append(body, line)
				}
				a.out.line("A = %s  %s", x, fixed.LowBits(x, width))
				a.out.line("B = %s  %s", y, fixed.LowBits(y, width))
				a.out.table(header, body)
			})
		},
	}
	cmd.Flags().Var(newWidthValue(&width, bitlab.Width8), "width", "operand width in bits")
	cmd.Flags().BoolVar(&withCompat, "compat", false, "also show the 32-bit reference results")
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	var width bitlab.Width

	cmd := &cobra.Command{
		Use:   "add [A] [B]",
		Short: "Add two values on a ripple-carry adder and show every carry",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			as, bs := a.cfg.Adder.A, a.cfg.Adder.B
			if len(args) > 0 {
				as = args[0]
			}
			if len(args) > 1 {
				bs = args[1]
			}
			if !cmd.Flags().Changed("width") {
				width = a.cfg.Adder.Width
			}

			r, err := adder.AddInput(as, bs, width)
			if err != nil {
				return err
			}
			return a.out.emit(r, func() {
				a.out.line("carry  %s", strings.Join(r.Carries, ""))
				a.out.line("A      %s  (%s)", r.BinaryA, r.A)
				a.out.line("B    + %s  (%s)", r.BinaryB, r.B)
				a.out.line("sum    %s  (%s)", r.BinarySum, r.Sum)
				if r.Overflow {
					a.out.line("overflow: %s + %s does not fit in %d bits", r.A, r.B, width)
				}

				body := make([][]string, 0, len(r.Steps))
				for i := len(r.Steps) - 1; i >= 0; i-- {
					s := r.Steps[i]
					body = append(body, []string{strconv.Itoa(s.Position), s.Operation()})
				}
				a.out.table([]string{"Position", "Operation"}, body)
			})
		},
	}
	cmd.Flags().Var(newWidthValue(&width, bitlab.Width4), "width", "adder width in bits")
	return cmd
}

func newSegmentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "segment TEXT",
		Short: "Draw hex digits on a seven-segment display",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			lit := make([]string, 0, len(args[0]))
			for _, p := range segment.Digits(args[0]) {
				lit = append(lit, p.Lit())
			}
			return a.out.emit(map[string]any{"text": args[0], "segments": lit}, func() {
				a.out.line("%s", segment.Render(args[0]))
			})
		},
	}
}
