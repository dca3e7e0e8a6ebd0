package service

import (
	"strings"

	"github.com/google/uuid"
)

// changeSet accumulates column updates from a partial payload along with the
// JSON names of the fields that were present.
type changeSet struct {
	updates map[string]interface{}
	fields  []string
}

func newChangeSet() *changeSet {
	return &changeSet{updates: map[string]interface{}{}}
}

func (c *changeSet) set(column, field string, value interface{}) {
	c.updates[column] = value
	c.fields = append(c.fields, field)
}

func (c *changeSet) setString(column, field string, value *string) {
	if value == nil {
		return
	}
	c.set(column, field, strings.TrimSpace(*value))
}

func (c *changeSet) setID(column, field string, value *uuid.UUID) {
	if value == nil {
		return
	}
	c.set(column, field, *value)
}

func (c *changeSet) metadata() map[string]interface{} {
	if len(c.fields) == 0 {
		return nil
	}
	return map[string]interface{}{"fields": c.fields}
}

// setNullableID records a nullable foreign key; an empty string clears it.
func (c *changeSet) setNullableID(column, field string, value *string) (*uuid.UUID, error) {
	if value == nil {
		return nil, nil
	}
	if strings.TrimSpace(*value) == "" {
		c.set(column, field, nil)
		return nil, nil
	}
	id, err := parseID(field, *value)
	if err != nil {
		return nil, err
	}
	c.set(column, field, id)
	return &id, nil
}

// setDate records a required date column.
func (c *changeSet) setDate(column, field string, value *string) error {
	if value == nil {
		return nil
	}
	parsed, err := parseDate(field, *value)
	if err != nil {
		return err
	}
	c.set(column, field, parsed)
	return nil
}

// setNullableDate records a nullable date column; an empty string clears it.
func (c *changeSet) setNullableDate(column, field string, value *string) error {
	if value == nil {
		return nil
	}
	parsed, err := optionalDate(field, *value)
	if err != nil {
		return err
	}
	if parsed == nil {
		c.set(column, field, nil)
		return nil
	}
	c.set(column, field, *parsed)
	return nil
}
