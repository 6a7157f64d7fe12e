package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/born-ml/elementwise/internal/tensor"
	"github.com/born-ml/elementwise/unary"
)

type applyFlags struct {
	dtype    string
	outDtype string
	device   string
	mode     string
	shape    []int
	values   []string

	min, max string
	n, p     int
	exponent float64
}

func newApplyCmd(a *app) *cobra.Command {
	f := &applyFlags{}
	cmd := &cobra.Command{
		Use:   "apply <op>",
		Short: "Run one op on a tensor given on the command line",
		Long: `Builds a tensor from --values (0, 1, 2, ... when omitted) with the given --shape
and --dtype, runs <op> on it and prints the result.

Values are parsed as complex numbers, so "1+2i" is accepted for complex dtypes.
Parameterized ops read their parameters from flags:

  clamp       --min and/or --max
  clamp_min   --min
  clamp_max   --max
  polygamma   --n
  mvlgamma    --p
  pow         --exponent

real and imag return views of a complex input and only run with --mode functional.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.apply(cmd.OutOrStdout(), args[0], f)
		},
	}
	cmd.Flags().StringVar(&f.dtype, "dtype", "float32", "input dtype")
	cmd.Flags().StringVar(&f.outDtype, "out-dtype", "", "result dtype for --mode out (defaults to the input dtype)")
	cmd.Flags().StringVar(&f.device, "device", "cpu", "device of the input: cpu or webgpu")
	cmd.Flags().StringVar(&f.mode, "mode", "functional", "calling convention: functional, inplace or out")
	cmd.Flags().IntSliceVar(&f.shape, "shape", []int{4}, "input shape")
	cmd.Flags().StringSliceVar(&f.values, "values", nil, "input values in row-major order")
	cmd.Flags().StringVar(&f.min, "min", "", "lower bound for clamp and clamp_min")
	cmd.Flags().StringVar(&f.max, "max", "", "upper bound for clamp and clamp_max")
	cmd.Flags().IntVar(&f.n, "n", 0, "derivative order for polygamma")
	cmd.Flags().IntVar(&f.p, "p", 1, "dimension for mvlgamma")
	cmd.Flags().Float64Var(&f.exponent, "exponent", 2, "exponent for pow")
	return cmd
}

func (a *app) apply(w io.Writer, name string, f *applyFlags) error {
	if view, ok := a.views()[name]; ok {
		return a.applyView(w, name, view, f)
	}
	op, err := a.resolve(name, f)
	if err != nil {
		return err
	}
	input, err := buildInput(f)
	if err != nil {
		return err
	}

	var result *tensor.RawTensor
	switch f.mode {
	case "functional":
		result, err = op.Apply(input)
	case "inplace":
		result, err = op.InPlace(input)
	case "out":
		dtype := input.DType()
		if f.outDtype != "" {
			if dtype, err = parseDType(f.outDtype); err != nil {
				return err
			}
		}
		result, err = op.Out(tensor.Empty(dtype, input.Device()), input)
	default:
		return errors.Errorf("unknown mode %q (want functional, inplace or out)", f.mode)
	}
	if err != nil {
		return err
	}

	report(w, op.Name(), f.mode, input, result)
	return nil
}

// views maps the view ops to their functions. Views share storage with their input
// and have no in-place or out form.
func (a *app) views() map[string]func(*tensor.RawTensor) (*tensor.RawTensor, error) {
	return map[string]func(*tensor.RawTensor) (*tensor.RawTensor, error){
		"real": a.ops.Real,
		"imag": a.ops.Imag,
	}
}

func (a *app) applyView(w io.Writer, name string, view func(*tensor.RawTensor) (*tensor.RawTensor, error),
	f *applyFlags) error {
	if f.mode != "functional" {
		return errors.Errorf("%s is a view and only supports --mode functional", name)
	}
	input, err := buildInput(f)
	if err != nil {
		return err
	}
	result, err := view(input)
	if err != nil {
		return err
	}
	report(w, name, "view", input, result)
	return nil
}

func report(w io.Writer, name, mode string, input, result *tensor.RawTensor) {
	fmt.Fprintf(w, "op:     %s (%s)\n", name, mode)
	fmt.Fprintf(w, "input:  %s\n", formatValues(input))
	fmt.Fprintf(w, "result: %s\n", formatValues(result))
	fmt.Fprintf(w, "shape:  %v  dtype: %s  device: %s  storage: %s\n",
		result.Shape(), result.DType(), result.Device(), humanize.Bytes(uint64(result.StorageBytes())))
}

// resolve maps an op name to the Op it names, binding parameters from the flags.
func (a *app) resolve(name string, f *applyFlags) (unary.Op, error) {
	o := a.ops
	simple := map[string]unary.Op{
		"sin": o.Sin, "cos": o.Cos, "tan": o.Tan,
		"asin": o.Asin, "acos": o.Acos, "atan": o.Atan,
		"sinh": o.Sinh, "cosh": o.Cosh, "tanh": o.Tanh,
		"asinh": o.Asinh, "acosh": o.Acosh, "atanh": o.Atanh,
		"exp": o.Exp, "expm1": o.Expm1,
		"log": o.Log, "log2": o.Log2, "log10": o.Log10, "log1p": o.Log1p,
		"sqrt": o.Sqrt, "rsqrt": o.Rsqrt, "reciprocal": o.Reciprocal, "sigmoid": o.Sigmoid,
		"erf": o.Erf, "erfc": o.Erfc, "erfinv": o.Erfinv,
		"ceil": o.Ceil, "floor": o.Floor, "trunc": o.Trunc, "round": o.Round, "frac": o.Frac,
		"abs": o.Abs, "neg": o.Neg, "sign": o.Sign, "angle": o.Angle, "conj": o.Conj,
		"lgamma": o.Lgamma, "digamma": o.Digamma,
		"rad2deg": o.Rad2Deg, "deg2rad": o.Deg2Rad, "square": o.Square,
		"logical_not": o.LogicalNot, "bitwise_not": o.BitwiseNot,
	}
	if op, ok := simple[name]; ok {
		return op, nil
	}

	switch name {
	case "clamp", "clamp_min", "clamp_max":
		lo, err := parseBound(f.min)
		if err != nil {
			return unary.Op{}, err
		}
		hi, err := parseBound(f.max)
		if err != nil {
			return unary.Op{}, err
		}
		switch {
		case name == "clamp":
			return o.Clamp(lo, hi), nil
		case name == "clamp_min" && lo != nil:
			return o.ClampMin(*lo), nil
		case name == "clamp_max" && hi != nil:
			return o.ClampMax(*hi), nil
		}
		return unary.Op{}, errors.Errorf("%s needs --%s", name, strings.TrimPrefix(name, "clamp_"))
	case "polygamma":
		return o.Polygamma(f.n), nil
	case "mvlgamma":
		return o.Mvlgamma(f.p), nil
	case "pow":
		return o.PowScalar(tensor.ScalarFloat(f.exponent)), nil
	}
	return unary.Op{}, errors.Errorf("unknown op %q", name)
}

func parseBound(s string) (*tensor.Scalar, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid bound %q", s)
	}
	b := tensor.ScalarFloat(v)
	return &b, nil
}

func parseDType(s string) (tensor.DataType, error) {
	dt, ok := tensor.ParseDataType(s)
	if !ok {
		return 0, errors.Errorf("unknown dtype %q", s)
	}
	return dt, nil
}

func parseDevice(s string) (tensor.Device, error) {
	switch strings.ToLower(s) {
	case "cpu":
		return tensor.CPU, nil
	case "webgpu":
		return tensor.WebGPU, nil
	}
	return 0, errors.Errorf("unknown device %q (want cpu or webgpu)", s)
}

// buildInput creates the contiguous input tensor described by the flags.
func buildInput(f *applyFlags) (*tensor.RawTensor, error) {
	dtype, err := parseDType(f.dtype)
	if err != nil {
		return nil, err
	}
	device, err := parseDevice(f.device)
	if err != nil {
		return nil, err
	}
	x, err := tensor.NewRaw(tensor.Shape(f.shape), dtype, device)
	if err != nil {
		return nil, err
	}
	n := x.NumElements()
	if f.values != nil && len(f.values) != n {
		return nil, errors.Errorf("got %d values for shape %v (%d elements)", len(f.values), x.Shape(), n)
	}
	store := tensor.Storer(x)
	for i := 0; i < n; i++ {
		v := complex(float64(i), 0)
		if f.values != nil {
			if v, err = strconv.ParseComplex(strings.TrimSpace(f.values[i]), 128); err != nil {
				return nil, errors.Wrapf(err, "invalid value %q", f.values[i])
			}
		}
		store(i, v)
	}
	return x, nil
}

func formatValues(r *tensor.RawTensor) string {
	var parts []string
	if r.DType().IsComplex() {
		for _, v := range tensor.Values(r) {
			parts = append(parts, strconv.FormatComplex(v, 'g', 6, 128))
		}
	} else {
		for _, v := range tensor.RealValues(r) {
			parts = append(parts, strconv.FormatFloat(v, 'g', 6, 64))
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}
