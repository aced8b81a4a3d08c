package importer

// FieldMap maps a canonical field name to the normalized header key that
// carries it in the current file. Optional fields without a matching column
// are simply absent from the map.
type FieldMap map[string]string

// ResolveFields matches the decoded header row against a level descriptor.
// It runs once per import; a required field without a column fails the whole
// batch before any row is processed.
func ResolveFields(headers []string, spec LevelSpec) (FieldMap, error) {
	present := make(map[string]struct{}, len(headers))
	for _, header := range headers {
		present[header] = struct{}{}
	}

	fields := make(FieldMap, len(spec.Fields))
	for _, field := range spec.Fields {
		for _, spelling := range field.Spellings {
			key := normalizeHeader(spelling)
			if _, ok := present[key]; ok {
				fields[field.Name] = key
				break
			}
		}
		if _, ok := fields[field.Name]; !ok && field.Required {
			return nil, &MissingColumnError{Field: field.Label}
		}
	}

	return fields, nil
}
