package cmd

import (
	"encoding/json"
	"fmt"

	"jinspect/internal/bytecode"
	"jinspect/internal/classfile"
	"jinspect/internal/render"
)

// Report is the JSON output structure for regression testing
type Report struct {
	Digest       string         `json:"digest"`
	File         string         `json:"file"`
	ClassName    string         `json:"class_name"`
	SuperClass   string         `json:"super_class,omitempty"`
	Interfaces   []string       `json:"interfaces,omitempty"`
	JavaVersion  string         `json:"java_version"`
	MinorVersion uint16         `json:"minor_version"`
	MajorVersion uint16         `json:"major_version"`
	AccessFlags  []string       `json:"access_flags"`
	SourceFile   string         `json:"source_file,omitempty"`
	Fields       []FieldReport  `json:"fields,omitempty"`
	Methods      []MethodReport `json:"methods"`
}

// FieldReport describes one field of the class
type FieldReport struct {
	Name  string   `json:"name"`
	Type  string   `json:"type"`
	Flags []string `json:"flags,omitempty"`
}

// MethodReport describes one method and its decoded bytecode
type MethodReport struct {
	Name         string                 `json:"name"`
	Descriptor   string                 `json:"descriptor"`
	Signature    string                 `json:"signature"`
	Flags        []string               `json:"flags,omitempty"`
	Exceptions   []string               `json:"exceptions,omitempty"`
	MaxStack     int                    `json:"max_stack"`
	MaxLocals    int                    `json:"max_locals"`
	Instructions []bytecode.Instruction `json:"instructions,omitempty"`
	Listing      []string               `json:"listing,omitempty"`
	Error        string                 `json:"error,omitempty"`
}

// buildReport assembles the JSON report for a parsed class.
func buildReport(path, digest string, c *classfile.Class, opts inspectOptions) (Report, error) {
	report := Report{
		Digest:       digest,
		File:         path,
		ClassName:    c.ClassName,
		SuperClass:   c.SuperClass,
		Interfaces:   c.Interfaces,
		JavaVersion:  c.JavaVersion,
		MinorVersion: c.MinorVersion,
		MajorVersion: c.MajorVersion,
		AccessFlags:  c.AccessFlags,
		SourceFile:   c.SourceFile,
	}

	for _, f := range c.Fields {
		report.Fields = append(report.Fields, FieldReport{
			Name:  f.Name,
			Type:  f.Type,
			Flags: f.Flags,
		})
	}

	dec := opts.decoder()
	for _, m := range c.Methods {
		if !opts.matches(m.Name) {
			continue
		}
		mr := MethodReport{
			Name:       m.Name,
			Descriptor: m.Descriptor,
			Signature:  m.Signature(),
			Flags:      m.Flags,
			Exceptions: m.Exceptions,
			MaxStack:   m.MaxStack,
			MaxLocals:  m.MaxLocals,
		}
		if m.Code != nil {
			insts, err := dec.Decode(m.Code)
			if err != nil {
				if opts.strict {
					return report, fmt.Errorf("method %s: %v", m.Name, err)
				}
				mr.Error = err.Error()
			}
			mr.Instructions = insts
			for _, inst := range insts {
				mr.Listing = append(mr.Listing, render.LineWithPool(inst, c.Pool))
			}
		}
		report.Methods = append(report.Methods, mr)
	}

	return report, nil
}

// runJSON runs the inspector and prints a machine-readable report
func runJSON(path string, opts inspectOptions) error {
	c, err := classfile.Open(path)
	if err != nil {
		return fmt.Errorf("failed to parse class file: %v", err)
	}

	digest, err := fileDigest(path)
	if err != nil {
		return fmt.Errorf("failed to calculate digest: %v", err)
	}

	report, err := buildReport(path, digest, c, opts)
	if err != nil {
		return err
	}

	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %v", err)
	}

	fmt.Println(string(jsonData))
	return nil
}
