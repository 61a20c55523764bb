package generator

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dave/jennifer/jen"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for a generator run.
type Config struct {
	ConfigFile string
	OutputFile string
}

// AdapterConfig describes the adapters to emit. It is loaded from YAML.
type AdapterConfig struct {
	// Package is the Go package name of the generated file.
	Package string `yaml:"package"`

	// MaxArity is the largest handler parameter count to support.
	MaxArity int `yaml:"max_arity"`

	// Constraint is the type constraint applied to every type parameter.
	Constraint string `yaml:"constraint"`

	// TypeParams names the type parameters, one per handler position.
	TypeParams []string `yaml:"type_params"`
}

// LoadConfig reads and validates the adapter configuration file.
func LoadConfig(path string) (*AdapterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg AdapterConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (c *AdapterConfig) validate() error {
	if c.Package == "" {
		return fmt.Errorf("package is required")
	}
	if c.Constraint == "" {
		return fmt.Errorf("constraint is required")
	}
	if c.MaxArity < 1 {
		return fmt.Errorf("max_arity must be at least 1")
	}
	if len(c.TypeParams) < c.MaxArity {
		return fmt.Errorf("need %d type_params, have %d", c.MaxArity, len(c.TypeParams))
	}
	return nil
}

// Run executes the generator.
func Run(cfg Config) error {
	ac, err := LoadConfig(cfg.ConfigFile)
	if err != nil {
		return err
	}
	f := Generate(ac)
	if cfg.OutputFile == "" || cfg.OutputFile == "-" {
		return f.Render(os.Stdout)
	}
	if err := f.Save(cfg.OutputFile); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.OutputFile, err)
	}
	return nil
}

// Render writes the generated source for ac to w.
func Render(w io.Writer, ac *AdapterConfig) error {
	return Generate(ac).Render(w)
}

// Generate builds the file holding ForEachN and TryForEachN for every arity
// from 1 to ac.MaxArity.
func Generate(ac *AdapterConfig) *jen.File {
	f := jen.NewFile(ac.Package)
	f.HeaderComment("Code generated by genforeach. DO NOT EDIT.")
	for n := 1; n <= ac.MaxArity; n++ {
		emitForEach(f, ac, n)
		emitTryForEach(f, ac, n)
	}
	return f
}

// typeParams returns the declaration list "A, B Column" for arity n.
func typeParams(ac *AdapterConfig, n int) []jen.Code {
	out := make([]jen.Code, n)
	for i := 0; i < n; i++ {
		out[i] = jen.Id(ac.TypeParams[i])
	}
	out[n-1] = jen.Id(ac.TypeParams[n-1]).Id(ac.Constraint)
	return out
}

func typeIDs(ac *AdapterConfig, n int) []jen.Code {
	out := make([]jen.Code, n)
	for i := 0; i < n; i++ {
		out[i] = jen.Id(ac.TypeParams[i])
	}
	return out
}

func emitForEach(f *jen.File, ac *AdapterConfig, n int) {
	var named, args []jen.Code
	for i := 0; i < n; i++ {
		p := strings.ToLower(ac.TypeParams[i])
		named = append(named, jen.Id(p).Id(ac.TypeParams[i]))
		args = append(args, jen.Id(p))
	}

	f.Commentf("ForEach%d runs s and calls fn once per result row with the first %d column(s)", n, n)
	f.Comment("converted to the handler's parameter types.")
	f.Func().Id(fmt.Sprintf("ForEach%d", n)).Types(typeParams(ac, n)...).Params(
		jen.Id("s").Op("*").Id("Statement"),
		jen.Id("fn").Func().Params(typeIDs(ac, n)...),
	).Error().Block(
		jen.Return(jen.Id(fmt.Sprintf("TryForEach%d", n)).Call(
			jen.Id("s"),
			jen.Func().Params(named...).Error().Block(
				jen.Id("fn").Call(args...),
				jen.Return(jen.Nil()),
			),
		)),
	)
}

func emitTryForEach(f *jen.File, ac *AdapterConfig, n int) {
	body := []jen.Code{
		jen.Id("strict").Op(":=").Id("s").Dot("strictNulls").Call(),
	}
	for i := 0; i < n; i++ {
		body = append(body, jen.Id(fmt.Sprintf("d%d", i)).Op(":=").
			Id("decoderFor").Types(jen.Id(ac.TypeParams[i])).Call(jen.Lit(i), jen.Id("strict")))
	}

	var perRow, values []jen.Code
	for i := 0; i < n; i++ {
		v := fmt.Sprintf("v%d", i)
		perRow = append(perRow,
			jen.List(jen.Id(v), jen.Err()).Op(":=").Id(fmt.Sprintf("d%d", i)).Call(
				jen.Id("r").Dot("values").Index(jen.Lit(i)),
			),
			jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err())),
		)
		values = append(values, jen.Id(v))
	}
	perRow = append(perRow, jen.Return(jen.Id("fn").Call(values...)))

	body = append(body, jen.Return(jen.Id("s").Dot("dispatch").Call(
		jen.Lit(n),
		jen.Func().Params(jen.Id("r").Op("*").Id("Row")).Error().Block(perRow...),
	)))

	f.Commentf("TryForEach%d is like ForEach%d but stops at the first non-nil error returned by fn.", n, n)
	f.Func().Id(fmt.Sprintf("TryForEach%d", n)).Types(typeParams(ac, n)...).Params(
		jen.Id("s").Op("*").Id("Statement"),
		jen.Id("fn").Func().Params(typeIDs(ac, n)...).Error(),
	).Error().Block(body...)
}
