package protocol

/* ---- Entry ---- */

// EntryAttribute is one attribute of a directory entry with its values
type EntryAttribute struct {
	Name   string
	Values []string
}

// MakeEntryAttribute creates EntryAttribute
func MakeEntryAttribute(name string, values ...string) *EntryAttribute {
	return &EntryAttribute{
		Name:   name,
		Values: values,
	}
}

// Entry is a directory entry returned by a search
type Entry struct {
	DN         string
	Attributes []*EntryAttribute
}

// MakeEntry creates Entry
func MakeEntry(dn string, attributes ...*EntryAttribute) *Entry {
	return &Entry{
		DN:         dn,
		Attributes: attributes,
	}
}

// GetAttributeValues returns all values of the named attribute,
// or nil if the entry does not carry it
func (e *Entry) GetAttributeValues(name string) []string {
	for _, attr := range e.Attributes {
		if attr.Name == name {
			return attr.Values
		}
	}
	return nil
}

// GetAttributeValue returns the first value of the named attribute,
// or "" if the entry does not carry it
func (e *Entry) GetAttributeValue(name string) string {
	values := e.GetAttributeValues(name)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

/* ---- Modification ---- */

// ModifyOperation selects how a Modification is applied to an attribute
type ModifyOperation int64

const (
	// AddAttribute adds values to the attribute, creating it if needed
	AddAttribute ModifyOperation = 0
	// DeleteAttribute removes the listed values, or the whole attribute if none are listed
	DeleteAttribute ModifyOperation = 1
	// ReplaceAttribute replaces all values of the attribute
	ReplaceAttribute ModifyOperation = 2
)

// Modification is one change to apply to a directory entry
type Modification struct {
	Operation ModifyOperation
	Attribute string
	Values    []string
}

// MakeModification creates Modification
func MakeModification(op ModifyOperation, attribute string, values ...string) *Modification {
	return &Modification{
		Operation: op,
		Attribute: attribute,
		Values:    values,
	}
}
