package meval

import (
	"fmt"

	"github.com/lyraproj/issue/issue"
	ym "gopkg.in/yaml.v2"
)

// LoadBindings reads a YAML document of the form
//
//	constants:
//	  g: 9.81
//	variables:
//	  r: 2
//
// and appends its entries to env, in document order. A cell is
// allocated for each variable, initialised with the document value;
// the bindings are returned so the caller can update them. Nothing is
// appended if the document has an error.
func LoadBindings(env *Environment, data []byte) ([]VariableBinding, error) {
	doc := make(ym.MapSlice, 0)
	if err := ym.Unmarshal(data, &doc); err != nil {
		return nil, issue.NewReported(BindingsParseError, issue.SEVERITY_ERROR, issue.H{`detail`: err.Error()}, nil)
	}

	var constants []ConstantBinding
	var variables []VariableBinding
	for _, section := range doc {
		key, entries, err := sectionEntries(section)
		if err != nil {
			return nil, err
		}
		switch key {
		case `constants`:
			for _, e := range entries {
				name, value, err := bindingValue(`constant`, e)
				if err != nil {
					return nil, err
				}
				constants = append(constants, ConstantBinding{Name: name, Value: value})
			}
		case `variables`:
			for _, e := range entries {
				name, value, err := bindingValue(`variable`, e)
				if err != nil {
					return nil, err
				}
				cell := new(float64)
				*cell = value
				variables = append(variables, VariableBinding{Name: name, Value: cell})
			}
		}
	}

	if err := env.AddConstants(constants...); err != nil {
		return nil, err
	}
	if err := env.AddVariables(variables...); err != nil {
		return nil, err
	}
	return variables, nil
}

func sectionEntries(section ym.MapItem) (string, ym.MapSlice, error) {
	key, ok := section.Key.(string)
	if !ok || key != `constants` && key != `variables` {
		return ``, nil, issue.NewReported(BindingsUnknownSection, issue.SEVERITY_ERROR,
			issue.H{`section`: fmt.Sprint(section.Key)}, nil)
	}
	switch v := section.Value.(type) {
	case nil:
		return key, nil, nil
	case ym.MapSlice:
		return key, v, nil
	}
	return ``, nil, issue.NewReported(BindingsParseError, issue.SEVERITY_ERROR,
		issue.H{`detail`: fmt.Sprintf(`'%s' must be a mapping of names to numbers`, key)}, nil)
}

func bindingValue(section string, item ym.MapItem) (string, float64, error) {
	// YAML 1.1 reads unquoted y, n, yes, no, on and off as booleans.
	name, ok := item.Key.(string)
	if !ok {
		return ``, 0, issue.NewReported(InvalidBindingName, issue.SEVERITY_ERROR,
			issue.H{`section`: section, `name`: fmt.Sprintf(`%v (a YAML %T, quote it)`, item.Key, item.Key)}, nil)
	}
	if err := checkBinding(section, name, true); err != nil {
		return ``, 0, err
	}
	switch v := item.Value.(type) {
	case int:
		return name, float64(v), nil
	case int64:
		return name, float64(v), nil
	case uint64:
		return name, float64(v), nil
	case float64:
		return name, v, nil
	}
	return ``, 0, issue.NewReported(BindingsInvalidValue, issue.SEVERITY_ERROR,
		issue.H{`section`: section, `name`: name, `value`: fmt.Sprintf(`%v`, item.Value)}, nil)
}
