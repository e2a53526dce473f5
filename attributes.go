package odr2gml

import (
	"fmt"
	"strconv"
)

// Attribute is a single named value attached to a produced geometry
type Attribute struct {
	Key   string
	Value string
}

// AttributeList collects prefixed attributes for the downstream writer
type AttributeList struct {
	prefix     string
	attributes []Attribute
}

// NewAttributeList returns empty attribute list with given key prefix
func NewAttributeList(prefix string) *AttributeList {
	return &AttributeList{prefix: prefix}
}

// AddString appends a string attribute; empty values are skipped
func (al *AttributeList) AddString(key, value string) {
	if value == "" {
		return
	}
	al.attributes = append(al.attributes, Attribute{Key: al.prefix + key, Value: value})
}

// AddInt appends an integer attribute
func (al *AttributeList) AddInt(key string, value int) {
	al.attributes = append(al.attributes, Attribute{Key: al.prefix + key, Value: strconv.Itoa(value)})
}

// AddDouble appends a float attribute
func (al *AttributeList) AddDouble(key string, value float64) {
	al.attributes = append(al.attributes, Attribute{Key: al.prefix + key, Value: fmt.Sprintf("%f", value)})
}

// AddBool appends a boolean attribute
func (al *AttributeList) AddBool(key string, value bool) {
	al.attributes = append(al.attributes, Attribute{Key: al.prefix + key, Value: strconv.FormatBool(value)})
}

// Entries returns accumulated attributes in insertion order
func (al *AttributeList) Entries() []Attribute {
	return al.attributes
}

// Get returns the value for given unprefixed key
func (al *AttributeList) Get(key string) (string, bool) {
	for _, attr := range al.attributes {
		if attr.Key == al.prefix+key {
			return attr.Value, true
		}
	}
	return "", false
}
