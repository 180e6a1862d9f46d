package prompt

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/field"
)

// Collector asks for field descriptors and values through a Driver.
type Collector struct {
	driver Driver
	logger *zap.Logger
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) CollectorOption {
	return func(c *Collector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCollector binds a collector to driver.
func NewCollector(driver Driver, options ...CollectorOption) *Collector {
	c := &Collector{driver: driver, logger: zap.NewNop()}
	for _, option := range options {
		if option != nil {
			option(c)
		}
	}
	return c
}

// Descriptors asks for fields until an empty name is entered.
func (c *Collector) Descriptors(ctx context.Context) ([]field.Descriptor, error) {
	types := field.Types()
	options := make([]string, len(types))
	for idx, typ := range types {
		options[idx] = typ.String()
	}

	var out []field.Descriptor
	for {
		name, err := c.driver.Input(ctx, InputConfig{
			Message: "Field name (empty to finish)",
		})
		if err != nil {
			return nil, err
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return out, nil
		}

		label, err := c.driver.Input(ctx, InputConfig{Message: "Label", Default: field.Capitalize(name)})
		if err != nil {
			return nil, err
		}
		idx, err := c.driver.Select(ctx, SelectConfig{Message: "Type", Options: options})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(types) {
			return nil, fmt.Errorf("prompt: type selection %d out of range", idx)
		}

		d := field.Descriptor{Label: label, Name: name, Type: types[idx]}
		if err := c.options(ctx, &d); err != nil {
			return nil, err
		}
		c.logger.Debug("field collected", zap.String("name", d.Name), zap.String("type", d.Type.String()))
		out = append(out, d)
	}
}

func (c *Collector) options(ctx context.Context, d *field.Descriptor) error {
	switch d.Type {
	case field.Select, field.Multiselect, field.Checkboxes:
		raw, err := c.driver.Input(ctx, InputConfig{
			Message: "Choices (value:label, comma separated)",
			Validator: func(value string) error {
				if len(ParseChoices(value)) == 0 {
					return fmt.Errorf("at least one choice is required")
				}
				return nil
			},
		})
		if err != nil {
			return err
		}
		d.Options.Choices = ParseChoices(raw)
	case field.Radio:
		checked, err := c.driver.Confirm(ctx, ConfirmConfig{Message: "Checked?"})
		if err != nil {
			return err
		}
		d.Options.Checked = checked
	}

	switch d.Type {
	case field.Number, field.Select:
		readonly, err := c.driver.Confirm(ctx, ConfirmConfig{Message: "Read only?"})
		if err != nil {
			return err
		}
		d.Options.Readonly = readonly
	}
	return nil
}

// Values asks for the value of every field and returns the filled copies.
func (c *Collector) Values(ctx context.Context, fields []field.Descriptor) ([]field.Descriptor, error) {
	out := make([]field.Descriptor, len(fields))
	for idx, d := range fields {
		value, err := c.value(ctx, d)
		if err != nil {
			return nil, fmt.Errorf("prompt: value for %q: %w", d.Name, err)
		}
		d.Value = value
		out[idx] = d
	}
	return out, nil
}

func (c *Collector) value(ctx context.Context, d field.Descriptor) (any, error) {
	message := d.Label
	if message == "" {
		message = d.Name
	}

	switch d.Type {
	case field.Checkbox:
		return c.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: !field.IsEmpty(d.Value)})
	case field.Textarea:
		return c.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: field.Stringify(d.Value)})
	case field.Select, field.Radio:
		if len(d.Options.Choices) == 0 {
			break
		}
		labels, current := choiceLabels(d.Options.Choices, field.Strings(d.Value))
		defaultIdx := 0
		if len(current) > 0 {
			defaultIdx = current[0]
		}
		idx, err := c.driver.Select(ctx, SelectConfig{Message: message, Options: labels, DefaultIndex: defaultIdx})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(d.Options.Choices) {
			return nil, nil
		}
		return d.Options.Choices[idx].Value, nil
	case field.Multiselect, field.Checkboxes:
		labels, current := choiceLabels(d.Options.Choices, field.Strings(d.Value))
		indices, err := c.driver.MultiSelect(ctx, SelectConfig{Message: message, Options: labels, Defaults: current})
		if err != nil {
			return nil, err
		}
		values := make([]string, 0, len(indices))
		for _, idx := range indices {
			if idx >= 0 && idx < len(d.Options.Choices) {
				values = append(values, d.Options.Choices[idx].Value)
			}
		}
		return values, nil
	}
	return c.driver.Input(ctx, InputConfig{Message: message, Default: field.Stringify(d.Value)})
}

func choiceLabels(choices []field.Choice, selected []string) ([]string, []int) {
	labels := make([]string, len(choices))
	var current []int
	for idx, choice := range choices {
		labels[idx] = choice.Label
		for _, value := range selected {
			if value == choice.Value {
				current = append(current, idx)
				break
			}
		}
	}
	return labels, current
}

// ParseChoices reads "value:label" pairs separated by commas. A pair
// without a colon uses the value as label.
func ParseChoices(raw string) []field.Choice {
	var out []field.Choice
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, label, found := strings.Cut(part, ":")
		value = strings.TrimSpace(value)
		label = strings.TrimSpace(label)
		if !found || label == "" {
			label = value
		}
		if value == "" {
			continue
		}
		out = append(out, field.Choice{Value: value, Label: label})
	}
	return out
}
